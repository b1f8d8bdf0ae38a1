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

// Echo is the shared shape of echo request and reply: an optional opaque
// payload that the replier returns unchanged.
type Echo struct {
	Header
	Data []byte
}

func (r *Echo) MarshalBinary() ([]byte, error) {
	return r.Header.marshalPayload(r.Data)
}

func (r *Echo) UnmarshalBinary(data []byte) error {
	payload, err := r.Header.unmarshalPayload(data)
	if err != nil {
		return err
	}
	if len(payload) > 0 {
		r.Data = make([]byte, len(payload))
		copy(r.Data, payload)
	}

	return nil
}

type EchoRequest struct {
	Echo
}

func NewEchoRequest(data []byte) *EchoRequest {
	return &EchoRequest{
		Echo{
			Header: Header{Version: Version, Type: OFPT_ECHO_REQUEST},
			Data:   data,
		},
	}
}

type EchoReply struct {
	Echo
}

// NewEchoReply builds the reply to req: same transaction ID, same payload.
func NewEchoReply(req *EchoRequest) *EchoReply {
	return &EchoReply{
		Echo{
			Header: Header{Version: Version, Type: OFPT_ECHO_REPLY, Xid: req.Xid},
			Data:   req.Data,
		},
	}
}
