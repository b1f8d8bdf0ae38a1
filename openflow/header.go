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
	"errors"
)

// ErrProtocol is returned when a control message violates the wire protocol:
// its declared length disagrees with the received body, or the body itself is
// malformed. The failed message is discarded; whether the connection survives
// is the session's call.
var ErrProtocol = errors.New("openflow protocol violation")

// Header is the fixed 8-byte header carried by every OpenFlow message.
type Header struct {
	Version uint8
	Type    uint8
	Length  uint16 // total message length including this header
	Xid     uint32
}

func (r *Header) TransactionID() uint32 {
	return r.Xid
}

func (r *Header) SetTransactionID(xid uint32) {
	r.Xid = xid
}

func (r *Header) MarshalBinary() ([]byte, error) {
	v := make([]byte, 8)
	v[0] = r.Version
	v[1] = r.Type
	binary.BigEndian.PutUint16(v[2:4], r.Length)
	binary.BigEndian.PutUint32(v[4:8], r.Xid)

	return v, nil
}

func (r *Header) UnmarshalBinary(data []byte) error {
	if len(data) < 8 {
		return ErrProtocol
	}

	r.Version = data[0]
	r.Type = data[1]
	r.Length = binary.BigEndian.Uint16(data[2:4])
	r.Xid = binary.BigEndian.Uint32(data[4:8])

	return nil
}

// unmarshalPayload decodes the header and returns the message body. A body
// shorter or longer than the header declares is a protocol violation, not
// something to be silently tolerated.
func (r *Header) unmarshalPayload(data []byte) ([]byte, error) {
	if err := r.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	if r.Length < 8 || len(data) != int(r.Length) {
		return nil, ErrProtocol
	}

	return data[8:], nil
}

// marshalPayload frames payload with this header, filling in the length. The
// length field is 16 bits; a payload that does not fit is an error.
func (r *Header) marshalPayload(payload []byte) ([]byte, error) {
	if len(payload) > 0xFFFF-8 {
		return nil, errors.New("too long message payload")
	}
	r.Length = uint16(8 + len(payload))
	header, err := r.MarshalBinary()
	if err != nil {
		return nil, err
	}

	v := make([]byte, r.Length)
	copy(v[0:8], header)
	copy(v[8:], payload)

	return v, nil
}
