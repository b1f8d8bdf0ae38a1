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

// TCP models only the source and destination ports of a TCP segment. The
// sequence numbers, flags and payload are not retained.
type TCP struct {
	SrcPort uint16
	DstPort uint16
}

func (*TCP) ipBody() {}

func (r *TCP) unmarshal(c *reader) error {
	srcPort, err := c.uint16()
	if err != nil {
		return err
	}
	dstPort, err := c.uint16()
	if err != nil {
		return err
	}

	r.SrcPort = srcPort
	r.DstPort = dstPort

	return nil
}

func (r *TCP) marshal() []byte {
	v := make([]byte, 4)
	binary.BigEndian.PutUint16(v[0:2], r.SrcPort)
	binary.BigEndian.PutUint16(v[2:4], r.DstPort)

	return v
}
