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

package protocol

import (
	"encoding/binary"
)

const udpHeaderLength = 8

// UDP is a UDP header plus its payload. Payload is an owned copy whose size
// is computed from the enclosing IP header: Length − 4*IHL − 8.
type UDP struct {
	SrcPort uint16
	DstPort uint16
	Payload []byte
}

func (*UDP) ipBody() {}

// unmarshal reads the UDP header and payloadLen payload bytes. The UDP
// length and checksum fields are consumed but not modeled.
func (r *UDP) unmarshal(c *reader, payloadLen int) error {
	if payloadLen < 0 {
		return ErrTruncated
	}
	srcPort, err := c.uint16()
	if err != nil {
		return err
	}
	dstPort, err := c.uint16()
	if err != nil {
		return err
	}
	if _, err := c.uint16(); err != nil { // length
		return err
	}
	if _, err := c.uint16(); err != nil { // checksum
		return err
	}
	payload, err := c.copyBytes(payloadLen)
	if err != nil {
		return err
	}

	r.SrcPort = srcPort
	r.DstPort = dstPort
	r.Payload = payload

	return nil
}

func (r *UDP) marshal() []byte {
	v := make([]byte, udpHeaderLength+len(r.Payload))
	binary.BigEndian.PutUint16(v[0:2], r.SrcPort)
	binary.BigEndian.PutUint16(v[2:4], r.DstPort)
	binary.BigEndian.PutUint16(v[4:6], uint16(udpHeaderLength+len(r.Payload)))
	// v[6:8] is checksum, left zero
	copy(v[8:], r.Payload)

	return v
}
