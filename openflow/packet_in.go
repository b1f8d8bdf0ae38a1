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
	"encoding/binary"

	"github.com/rowansdn/rowan/protocol"
)

type PacketInReason uint8

const (
	// ReasonNoMatch means no flow entry matched the packet.
	ReasonNoMatch PacketInReason = iota
	// ReasonAction means a flow entry explicitly sent the packet to us.
	ReasonAction
)

// PacketIn is a packet the switch forwarded to the controller. Data holds the
// raw frame bytes (possibly empty or partial when the switch buffered the
// packet); Frame holds the result of parsing them as Ethernet, or FrameErr
// the reason they would not parse. A frame that does not parse is data, not a
// decode failure of the message itself.
type PacketIn struct {
	Header
	BufferID    uint32
	TotalLength uint16 // length of the full frame on the wire
	InPort      uint16
	Reason      PacketInReason
	Data        []byte
	Frame       *protocol.Ethernet
	FrameErr    error
}

// Buffered reports whether the switch kept the packet in its own memory and
// sent us a buffer ID instead of the full frame.
func (r *PacketIn) Buffered() bool {
	return r.BufferID != NoBuffer
}

func (r *PacketIn) UnmarshalBinary(data []byte) error {
	payload, err := r.Header.unmarshalPayload(data)
	if err != nil {
		return err
	}
	if len(payload) < 10 {
		return ErrProtocol
	}

	r.BufferID = binary.BigEndian.Uint32(payload[0:4])
	r.TotalLength = binary.BigEndian.Uint16(payload[4:6])
	r.InPort = binary.BigEndian.Uint16(payload[6:8])
	r.Reason = PacketInReason(payload[8])
	// payload[9] is padding
	r.Data = make([]byte, len(payload)-10)
	copy(r.Data, payload[10:])

	frame := new(protocol.Ethernet)
	if err := frame.UnmarshalBinary(r.Data); err != nil {
		r.FrameErr = err
	} else {
		r.Frame = frame
	}

	return nil
}

func (r *PacketIn) MarshalBinary() ([]byte, error) {
	payload := make([]byte, 10+len(r.Data))
	binary.BigEndian.PutUint32(payload[0:4], r.BufferID)
	binary.BigEndian.PutUint16(payload[4:6], r.TotalLength)
	binary.BigEndian.PutUint16(payload[6:8], r.InPort)
	payload[8] = uint8(r.Reason)
	copy(payload[10:], r.Data)

	return r.Header.marshalPayload(payload)
}
