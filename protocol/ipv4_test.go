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
	"bytes"
	"encoding/binary"
	"net"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

func serialize(t *testing.T, ls ...gopacket.SerializableLayer) []byte {
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{ComputeChecksums: true, FixLengths: true}
	if err := gopacket.SerializeLayers(buf, opts, ls...); err != nil {
		t.Fatalf("failed to serialize a test packet: %v", err)
	}

	return buf.Bytes()
}

// ipHeader builds a minimal 20-byte IPv4 header by hand for the malformed
// cases gopacket refuses to produce.
func ipHeader(totalLength uint16, proto uint8) []byte {
	v := make([]byte, 20)
	v[0] = 0x45
	binary.BigEndian.PutUint16(v[2:4], totalLength)
	v[8] = 64
	v[9] = proto
	copy(v[12:16], net.IP{10, 0, 0, 1})
	copy(v[16:20], net.IP{10, 0, 0, 2})

	return v
}

func TestIPv4WithTCP(t *testing.T) {
	ip := &layers.IPv4{
		Version:  4,
		IHL:      5,
		TTL:      64,
		Protocol: layers.IPProtocolTCP,
		SrcIP:    net.IP{192, 168, 0, 7},
		DstIP:    net.IP{10, 0, 0, 80},
	}
	tcp := &layers.TCP{SrcPort: 49152, DstPort: 80, Seq: 305419896, SYN: true, Window: 8192}
	if err := tcp.SetNetworkLayerForChecksum(ip); err != nil {
		t.Fatalf("failed to bind the TCP layer to its network layer: %v", err)
	}
	packet := serialize(t, ip, tcp, gopacket.Payload([]byte("GET / HTTP/1.0\r\n\r\n")))

	p := new(IPv4)
	if err := p.UnmarshalBinary(packet); err != nil {
		t.Fatalf("failed to unmarshal an IPv4 packet: %v", err)
	}
	if p.Version != 4 || p.IHL != 5 {
		t.Fatalf("unexpected version or IHL: %v", spew.Sdump(p))
	}
	if int(p.Length) != len(packet) {
		t.Fatalf("unexpected total length: expected %v, got %v", len(packet), p.Length)
	}
	if p.Protocol != IPProtocolTCP {
		t.Fatalf("unexpected protocol number: %v", p.Protocol)
	}
	if !p.SrcIP.Equal(net.IP{192, 168, 0, 7}) || !p.DstIP.Equal(net.IP{10, 0, 0, 80}) {
		t.Fatalf("unexpected addresses: %v", spew.Sdump(p))
	}

	body, err := p.TCP()
	if err != nil {
		t.Fatalf("failed to get the TCP body: %v", err)
	}
	if body.SrcPort != 49152 || body.DstPort != 80 {
		t.Fatalf("unexpected TCP ports: %v", spew.Sdump(body))
	}
	// The body is classified by the protocol number; the other extractors
	// should refuse it.
	if _, err := p.UDP(); err == nil {
		t.Fatal("UDP() should fail on a TCP packet")
	}
	if _, err := p.ICMP(); err == nil {
		t.Fatal("ICMP() should fail on a TCP packet")
	}
}

func TestIPv4UDPPayloadLength(t *testing.T) {
	for _, n := range []int{0, 1, 18, 1400} {
		payload := bytes.Repeat([]byte{0xA5}, n)
		ip := &layers.IPv4{
			Version:  4,
			IHL:      5,
			TTL:      64,
			Protocol: layers.IPProtocolUDP,
			SrcIP:    net.IP{10, 0, 0, 1},
			DstIP:    net.IP{10, 0, 0, 2},
		}
		udp := &layers.UDP{SrcPort: 520, DstPort: 520}
		if err := udp.SetNetworkLayerForChecksum(ip); err != nil {
			t.Fatalf("failed to bind the UDP layer to its network layer: %v", err)
		}
		packet := serialize(t, ip, udp, gopacket.Payload(payload))

		p := new(IPv4)
		if err := p.UnmarshalBinary(packet); err != nil {
			t.Fatalf("failed to unmarshal an IPv4 packet (payload=%v bytes): %v", n, err)
		}
		body, err := p.UDP()
		if err != nil {
			t.Fatalf("failed to get the UDP body: %v", err)
		}
		if body.SrcPort != 520 || body.DstPort != 520 {
			t.Fatalf("unexpected UDP ports: %v", spew.Sdump(body))
		}
		// The payload size comes from the IP header's own length fields.
		if len(body.Payload) != int(p.Length)-4*int(p.IHL)-8 {
			t.Fatalf("unexpected payload length: expected %v, got %v", int(p.Length)-4*int(p.IHL)-8, len(body.Payload))
		}
		if !bytes.Equal(body.Payload, payload) {
			t.Fatalf("corrupted payload: %v", spew.Sdump(body.Payload))
		}
	}
}

func TestIPv4WithICMP(t *testing.T) {
	ip := &layers.IPv4{
		Version:  4,
		IHL:      5,
		TTL:      64,
		Protocol: layers.IPProtocolICMPv4,
		SrcIP:    net.IP{10, 0, 0, 1},
		DstIP:    net.IP{10, 0, 0, 2},
	}
	icmp := &layers.ICMPv4{
		TypeCode: layers.CreateICMPv4TypeCode(layers.ICMPv4TypeEchoRequest, 0),
		Id:       1,
		Seq:      1,
	}
	packet := serialize(t, ip, icmp, gopacket.Payload([]byte("abcdefgh")))

	p := new(IPv4)
	if err := p.UnmarshalBinary(packet); err != nil {
		t.Fatalf("failed to unmarshal an IPv4 packet: %v", err)
	}
	body, err := p.ICMP()
	if err != nil {
		t.Fatalf("failed to get the ICMP body: %v", err)
	}
	if body.Type != 8 || body.Code != 0 {
		t.Fatalf("unexpected ICMP type and code: %v", spew.Sdump(body))
	}
}

func TestIPv4WithShortICMP(t *testing.T) {
	// A 4-byte ICMP segment: type, code, and checksum only. The skip over the
	// rest-of-header clamps at the end of the buffer, so this still decodes.
	packet := append(ipHeader(24, IPProtocolICMP), 3, 1, 0x00, 0x00)

	p := new(IPv4)
	if err := p.UnmarshalBinary(packet); err != nil {
		t.Fatalf("failed to unmarshal an IPv4 packet: %v", err)
	}
	body, err := p.ICMP()
	if err != nil {
		t.Fatalf("failed to get the ICMP body: %v", err)
	}
	if body.Type != 3 || body.Code != 1 {
		t.Fatalf("unexpected ICMP type and code: %v", spew.Sdump(body))
	}
}

func TestIPv4UnknownProtocol(t *testing.T) {
	body := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0A}
	packet := append(ipHeader(uint16(20+len(body)), 132), body...) // SCTP

	p := new(IPv4)
	if err := p.UnmarshalBinary(packet); err != nil {
		t.Fatalf("failed to unmarshal an IPv4 packet: %v", err)
	}
	raw, ok := p.Body.(RawBody)
	if !ok {
		t.Fatalf("expected a raw body, got %v", spew.Sdump(p.Body))
	}
	if len(raw) != int(p.Length)-4*int(p.IHL) {
		t.Fatalf("unexpected raw body length: expected %v, got %v", int(p.Length)-4*int(p.IHL), len(raw))
	}
	if !bytes.Equal(raw, body) {
		t.Fatalf("corrupted raw body: %v", spew.Sdump(raw))
	}
	if _, err := p.TCP(); err == nil {
		t.Fatal("TCP() should fail on an unclassified packet")
	}
}

func TestIPv4Truncated(t *testing.T) {
	tests := [][]byte{
		// Buffer shorter than the fixed header.
		ipHeader(20, IPProtocolTCP)[0:10],
		// Total length smaller than the header it declares.
		ipHeader(10, 132),
		// UDP body too short to hold the UDP header.
		append(ipHeader(26, IPProtocolUDP), 0x02, 0x08, 0x02, 0x08, 0x00, 0x06),
		// Raw body longer than the buffer.
		append(ipHeader(100, 132), bytes.Repeat([]byte{0}, 10)...),
	}
	for i, v := range tests {
		p := new(IPv4)
		if err := p.UnmarshalBinary(v); err != ErrTruncated {
			t.Fatalf("test #%v: expected ErrTruncated, got %v", i, err)
		}
	}
}

func TestIPv4RoundTrip(t *testing.T) {
	expected := &IPv4{
		Version:  4,
		IHL:      5,
		Length:   30,
		ID:       7,
		TTL:      64,
		Protocol: 89, // OSPF; decodes into a raw body
		SrcIP:    net.IP{10, 0, 0, 1},
		DstIP:    net.IP{10, 0, 0, 2},
		Body:     RawBody{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x11, 0x22, 0x33, 0x44, 0x55},
	}
	packet, err := expected.MarshalBinary()
	if err != nil {
		t.Fatalf("failed to marshal an IPv4 packet: %v", err)
	}
	// A freshly built header gets its checksum computed on marshal.
	expected.Checksum = binary.BigEndian.Uint16(packet[10:12])
	if expected.Checksum == 0 {
		t.Fatal("the marshaled header should carry a computed checksum")
	}

	decoded := new(IPv4)
	if err := decoded.UnmarshalBinary(packet); err != nil {
		t.Fatalf("failed to unmarshal an IPv4 packet: %v", err)
	}
	if !cmp.Equal(decoded, expected) {
		t.Fatalf("unexpected IPv4 packet!\nexpected: %v\ngot: %v", spew.Sdump(expected), spew.Sdump(decoded))
	}

	remarshaled, err := decoded.MarshalBinary()
	if err != nil {
		t.Fatalf("failed to re-marshal an IPv4 packet: %v", err)
	}
	if !bytes.Equal(packet, remarshaled) {
		t.Fatalf("unexpected re-marshaled packet: %v", spew.Sdump(remarshaled))
	}
}
