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

// ICMP models only the type and code of an ICMP message. The checksum and
// rest-of-header that follow are skipped without a length check, so a short
// ICMP segment still decodes.
type ICMP struct {
	Type uint8
	Code uint8
}

func (*ICMP) ipBody() {}

func (r *ICMP) unmarshal(c *reader) error {
	icmpType, err := c.uint8()
	if err != nil {
		return err
	}
	code, err := c.uint8()
	if err != nil {
		return err
	}
	c.skip(6)

	r.Type = icmpType
	r.Code = code

	return nil
}

func (r *ICMP) marshal() []byte {
	v := make([]byte, 8)
	v[0] = r.Type
	v[1] = r.Code

	return v
}
