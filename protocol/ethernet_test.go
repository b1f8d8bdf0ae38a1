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
	"net"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
)

func TestEthernetVLANTag(t *testing.T) {
	payload := []byte{0x45, 0x00, 0x00, 0x14}
	frame := []byte{
		0x00, 0x1B, 0x21, 0x55, 0x66, 0x77, // destination
		0x00, 0x1B, 0x21, 0x11, 0x22, 0x33, // source
		0x81, 0x00, // 802.1Q TPID
		0x20, 0x64, // TCI: PCP=1, VID=100
		0x08, 0x00, // encapsulated EtherType
	}
	frame = append(frame, payload...)

	eth := new(Ethernet)
	if err := eth.UnmarshalBinary(frame); err != nil {
		t.Fatalf("failed to unmarshal an Ethernet frame: %v", err)
	}
	// The tag is skipped; Type and Payload describe the encapsulated packet.
	if eth.Type != EtherTypeIPv4 {
		t.Fatalf("unexpected EtherType: 0x%04X", eth.Type)
	}
	if !bytes.Equal(eth.Payload, payload) {
		t.Fatalf("unexpected payload: %v", spew.Sdump(eth.Payload))
	}
	if !bytes.Equal(eth.SrcMAC, net.HardwareAddr{0x00, 0x1B, 0x21, 0x11, 0x22, 0x33}) {
		t.Fatalf("unexpected source MAC: %v", eth.SrcMAC)
	}
	if !bytes.Equal(eth.DstMAC, net.HardwareAddr{0x00, 0x1B, 0x21, 0x55, 0x66, 0x77}) {
		t.Fatalf("unexpected destination MAC: %v", eth.DstMAC)
	}
}

func TestEthernetRoundTrip(t *testing.T) {
	expected := &Ethernet{
		SrcMAC:  net.HardwareAddr{0x00, 0x1B, 0x21, 0x11, 0x22, 0x33},
		DstMAC:  net.HardwareAddr{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
		Type:    EtherTypeARP,
		Payload: []byte{0x00, 0x01, 0x08, 0x00, 0x06, 0x04, 0x00, 0x01},
	}
	frame, err := expected.MarshalBinary()
	if err != nil {
		t.Fatalf("failed to marshal an Ethernet frame: %v", err)
	}

	decoded := new(Ethernet)
	if err := decoded.UnmarshalBinary(frame); err != nil {
		t.Fatalf("failed to unmarshal an Ethernet frame: %v", err)
	}
	if !cmp.Equal(decoded, expected) {
		t.Fatalf("unexpected Ethernet frame!\nexpected: %v\ngot: %v", spew.Sdump(expected), spew.Sdump(decoded))
	}
}

func TestEthernetTruncated(t *testing.T) {
	frame := []byte{0x00, 0x1B, 0x21, 0x55, 0x66, 0x77, 0x00, 0x1B}
	if err := new(Ethernet).UnmarshalBinary(frame); err != ErrTruncated {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}
