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

// IP protocol numbers that get a typed body. Anything else decodes into
// RawBody.
const (
	IPProtocolICMP = 1
	IPProtocolTCP  = 6
	IPProtocolUDP  = 17
)

var (
	errNotTCP  = errors.New("not a TCP packet")
	errNotUDP  = errors.New("not a UDP packet")
	errNotICMP = errors.New("not an ICMP packet")
)

// IPBody is the classified payload of an IPv4 packet: *TCP, *UDP, *ICMP, or
// RawBody for any protocol number this package does not interpret.
type IPBody interface {
	ipBody()
}

// RawBody is an uninterpreted IP payload. It is an owned copy of exactly
// Length − 4*IHL bytes of the original packet.
type RawBody []byte

func (RawBody) ipBody() {}

// IPv4 is an IPv4 packet header plus its classified body.
//
// Known limitation: the transport header is assumed to begin immediately
// after the fixed 20-byte header. Packets carrying IP options (IHL > 5) are
// misparsed; the options bytes are read as the transport header. The header
// checksum is decoded but never verified.
type IPv4 struct {
	Version    uint8
	IHL        uint8 // header length in 32-bit words
	DSCP       uint8
	ECN        uint8
	Length     uint16 // total packet length in bytes
	ID         uint16
	Flags      uint8
	FragOffset uint16
	TTL        uint8
	Protocol   uint8
	Checksum   uint16
	SrcIP      net.IP
	DstIP      net.IP
	Body       IPBody
}

// TCP returns the body as a TCP header. It fails if the packet's protocol
// number classified the body as anything else.
func (r *IPv4) TCP() (*TCP, error) {
	v, ok := r.Body.(*TCP)
	if !ok {
		return nil, errNotTCP
	}

	return v, nil
}

// UDP returns the body as a UDP header and payload. It fails if the packet's
// protocol number classified the body as anything else.
func (r *IPv4) UDP() (*UDP, error) {
	v, ok := r.Body.(*UDP)
	if !ok {
		return nil, errNotUDP
	}

	return v, nil
}

// ICMP returns the body as an ICMP header. It fails if the packet's protocol
// number classified the body as anything else.
func (r *IPv4) ICMP() (*ICMP, error) {
	v, ok := r.Body.(*ICMP)
	if !ok {
		return nil, errNotICMP
	}

	return v, nil
}

func (r *IPv4) UnmarshalBinary(data []byte) error {
	c := newReader(data)

	verIHL, err := c.uint8()
	if err != nil {
		return err
	}
	version := (verIHL >> 4) & 0xF
	ihl := verIHL & 0xF
	if ihl < 5 {
		return errors.New("invalid IP header length")
	}
	tos, err := c.uint8()
	if err != nil {
		return err
	}
	length, err := c.uint16()
	if err != nil {
		return err
	}
	id, err := c.uint16()
	if err != nil {
		return err
	}
	flagsFrag, err := c.uint16()
	if err != nil {
		return err
	}
	ttl, err := c.uint8()
	if err != nil {
		return err
	}
	proto, err := c.uint8()
	if err != nil {
		return err
	}
	checksum, err := c.uint16()
	if err != nil {
		return err
	}
	src, err := c.copyBytes(4)
	if err != nil {
		return err
	}
	dst, err := c.copyBytes(4)
	if err != nil {
		return err
	}

	r.Version = version
	r.IHL = ihl
	r.DSCP = (tos >> 2) & 0x3F
	r.ECN = tos & 0x3
	r.Length = length
	r.ID = id
	r.Flags = uint8((flagsFrag >> 13) & 0x7)
	r.FragOffset = flagsFrag & 0x1FFF
	r.TTL = ttl
	r.Protocol = proto
	r.Checksum = checksum
	r.SrcIP = net.IP(src)
	r.DstIP = net.IP(dst)

	return r.unmarshalBody(c)
}

// unmarshalBody classifies the rest of the packet by the protocol number.
// Body sizes are computed from the header's own length fields, never taken
// from the caller.
func (r *IPv4) unmarshalBody(c *reader) error {
	bodyLen := int(r.Length) - 4*int(r.IHL)
	if bodyLen < 0 {
		return ErrTruncated
	}

	switch r.Protocol {
	case IPProtocolTCP:
		body := new(TCP)
		if err := body.unmarshal(c); err != nil {
			return err
		}
		r.Body = body
	case IPProtocolUDP:
		body := new(UDP)
		if err := body.unmarshal(c, bodyLen-udpHeaderLength); err != nil {
			return err
		}
		r.Body = body
	case IPProtocolICMP:
		body := new(ICMP)
		if err := body.unmarshal(c); err != nil {
			return err
		}
		r.Body = body
	default:
		raw, err := c.copyBytes(bodyLen)
		if err != nil {
			return err
		}
		r.Body = RawBody(raw)
	}

	return nil
}

func (r IPv4) MarshalBinary() ([]byte, error) {
	if len(r.SrcIP.To4()) != 4 || len(r.DstIP.To4()) != 4 {
		return nil, errors.New("invalid IP address")
	}
	if r.IHL < 5 {
		return nil, errors.New("invalid IP header length")
	}

	header := make([]byte, 20)
	header[0] = (r.Version&0xF)<<4 | r.IHL&0xF
	header[1] = (r.DSCP&0x3F)<<2 | r.ECN&0x3
	binary.BigEndian.PutUint16(header[2:4], r.Length)
	binary.BigEndian.PutUint16(header[4:6], r.ID)
	binary.BigEndian.PutUint16(header[6:8], (uint16(r.Flags)&0x7)<<13|r.FragOffset&0x1FFF)
	header[8] = r.TTL
	header[9] = r.Protocol
	copy(header[12:16], r.SrcIP.To4())
	copy(header[16:20], r.DstIP.To4())

	// A decoded header re-emits its checksum verbatim; only a freshly built
	// header gets one computed.
	checksum := r.Checksum
	if checksum == 0 {
		checksum = calculateChecksum(header)
	}
	binary.BigEndian.PutUint16(header[10:12], checksum)

	if r.Body == nil {
		return header, nil
	}
	body, err := marshalBody(r.Body)
	if err != nil {
		return nil, err
	}

	return append(header, body...), nil
}

func marshalBody(body IPBody) ([]byte, error) {
	switch v := body.(type) {
	case *TCP:
		return v.marshal(), nil
	case *UDP:
		return v.marshal(), nil
	case *ICMP:
		return v.marshal(), nil
	case RawBody:
		return []byte(v), nil
	default:
		return nil, errors.New("unknown IP body type")
	}
}
