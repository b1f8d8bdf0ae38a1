/*
 * Rowan - An OpenFlow Controller
 *
 * Copyright (C) 2016 The Rowan Authors. All rights reserved.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation; either version 2 of the License, or
 * any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License along
 * with this program; if not, write to the Free Software Foundation, Inc.,
 * 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.
 */

package openflow

import (
	"encoding"
)

// Incoming is a control message decoded off the wire.
type Incoming interface {
	encoding.BinaryUnmarshaler
	TransactionID() uint32
}

// Outgoing is a control message that can be put on the wire. The transaction
// ID is assigned by whoever writes the message.
type Outgoing interface {
	encoding.BinaryMarshaler
	TransactionID() uint32
	SetTransactionID(xid uint32)
}

// Unknown preserves a message whose type this codec does not interpret.
// Unrecognized types are data, not errors: the session simply ignores them.
type Unknown struct {
	Header
	Data []byte
}

func (r *Unknown) UnmarshalBinary(data []byte) error {
	payload, err := r.Header.unmarshalPayload(data)
	if err != nil {
		return err
	}
	r.Data = make([]byte, len(payload))
	copy(r.Data, payload)

	return nil
}

// Parse decodes one complete framed message. packet must hold exactly the
// bytes the frame header declares; the per-message decoders enforce this.
func Parse(packet []byte) (Incoming, error) {
	if len(packet) < 8 {
		return nil, ErrProtocol
	}

	var msg Incoming
	switch packet[1] {
	case OFPT_HELLO:
		msg = new(Hello)
	case OFPT_ERROR:
		msg = new(Error)
	case OFPT_ECHO_REQUEST:
		msg = new(EchoRequest)
	case OFPT_ECHO_REPLY:
		msg = new(EchoReply)
	case OFPT_FEATURES_REQUEST:
		msg = new(FeaturesRequest)
	case OFPT_FEATURES_REPLY:
		msg = new(FeaturesReply)
	case OFPT_PACKET_IN:
		msg = new(PacketIn)
	case OFPT_PORT_STATUS:
		msg = new(PortStatus)
	case OFPT_FLOW_REMOVED:
		msg = new(FlowRemoved)
	default:
		msg = new(Unknown)
	}

	if err := msg.UnmarshalBinary(packet); err != nil {
		return nil, err
	}

	return msg, nil
}
