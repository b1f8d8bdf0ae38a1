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
	"errors"
	"net"
)

const (
	// EtherTypeIPv4 is the EtherType of an IPv4 payload.
	EtherTypeIPv4 = 0x0800
	// EtherTypeARP is the EtherType of an ARP payload.
	EtherTypeARP = 0x0806
	// etherTypeVLAN marks an IEEE 802.1Q tagged frame.
	etherTypeVLAN = 0x8100
)

// Ethernet is an Ethernet II frame. An 802.1Q tag, if present, is skipped on
// decode so that Type and Payload always describe the encapsulated packet.
type Ethernet struct {
	SrcMAC, DstMAC net.HardwareAddr
	Type           uint16
	Payload        []byte
}

func (r Ethernet) MarshalBinary() ([]byte, error) {
	if len(r.SrcMAC) != 6 || len(r.DstMAC) != 6 {
		return nil, errors.New("invalid MAC address")
	}

	v := make([]byte, 14+len(r.Payload))
	copy(v[0:6], r.DstMAC)
	copy(v[6:12], r.SrcMAC)
	binary.BigEndian.PutUint16(v[12:14], r.Type)
	copy(v[14:], r.Payload)

	return v, nil
}

func (r *Ethernet) UnmarshalBinary(data []byte) error {
	c := newReader(data)

	dst, err := c.copyBytes(6)
	if err != nil {
		return err
	}
	src, err := c.copyBytes(6)
	if err != nil {
		return err
	}
	etherType, err := c.uint16()
	if err != nil {
		return err
	}
	// IEEE 802.1Q-tagged frame?
	if etherType == etherTypeVLAN {
		c.skip(2) // TCI
		if etherType, err = c.uint16(); err != nil {
			return err
		}
	}

	r.DstMAC = dst
	r.SrcMAC = src
	r.Type = etherType
	r.Payload, err = c.copyBytes(c.remaining())
	if err != nil {
		return err
	}

	return nil
}
