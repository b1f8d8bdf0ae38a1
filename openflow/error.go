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
	"fmt"
)

// Error is the OFPT_ERROR message a peer sends when it rejects something.
type Error struct {
	Header
	Type uint16
	Code uint16
	Data []byte
}

func NewError(errType, code uint16, data []byte) *Error {
	return &Error{
		Header: Header{Version: Version, Type: OFPT_ERROR},
		Type:   errType,
		Code:   code,
		Data:   data,
	}
}

func (r *Error) Error() string {
	return fmt.Sprintf("openflow error from peer: type=%v, code=%v", r.Type, r.Code)
}

func (r *Error) MarshalBinary() ([]byte, error) {
	payload := make([]byte, 4+len(r.Data))
	binary.BigEndian.PutUint16(payload[0:2], r.Type)
	binary.BigEndian.PutUint16(payload[2:4], r.Code)
	copy(payload[4:], r.Data)

	return r.Header.marshalPayload(payload)
}

func (r *Error) UnmarshalBinary(data []byte) error {
	payload, err := r.Header.unmarshalPayload(data)
	if err != nil {
		return err
	}
	if len(payload) < 4 {
		return ErrProtocol
	}

	r.Type = binary.BigEndian.Uint16(payload[0:2])
	r.Code = binary.BigEndian.Uint16(payload[2:4])
	r.Data = make([]byte, len(payload)-4)
	copy(r.Data, payload[4:])

	return nil
}
