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
	"bytes"
	"encoding/binary"
	"net"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

func TestFlowRemovedDecoding(t *testing.T) {
	match := NewMatch()
	match.SetDstMAC(net.HardwareAddr{0x00, 0x1B, 0x21, 0x11, 0x22, 0x33})
	matchBytes, err := match.MarshalBinary()
	if err != nil {
		t.Fatalf("failed to marshal a match: %v", err)
	}

	packet := make([]byte, 88)
	copy(packet[0:8], []byte{0x01, 0x0B, 0x00, 0x58, 0x00, 0x00, 0x00, 0x07})
	copy(packet[8:48], matchBytes)
	binary.BigEndian.PutUint64(packet[48:56], 0xCAFE)           // cookie
	binary.BigEndian.PutUint16(packet[56:58], 10)               // priority
	packet[58] = 1                                              // hard timeout
	binary.BigEndian.PutUint32(packet[60:64], 300)              // duration_sec
	binary.BigEndian.PutUint32(packet[64:68], 123456)           // duration_nsec
	binary.BigEndian.PutUint16(packet[68:70], 30)               // idle_timeout
	binary.BigEndian.PutUint64(packet[72:80], 42)               // packet_count
	binary.BigEndian.PutUint64(packet[80:88], 4200)             // byte_count

	msg, err := Parse(packet)
	if err != nil {
		t.Fatalf("failed to parse a FLOW_REMOVED: %v", err)
	}
	v, ok := msg.(*FlowRemoved)
	if !ok {
		t.Fatalf("expected a FlowRemoved, got %v", spew.Sdump(msg))
	}

	if v.TransactionID() != 7 {
		t.Fatalf("unexpected transaction ID: %v", v.TransactionID())
	}
	if v.Cookie != 0xCAFE || v.Priority != 10 || v.Reason != FlowHardTimeout {
		t.Fatalf("unexpected FLOW_REMOVED: %v", spew.Sdump(v))
	}
	if v.DurationSec != 300 || v.IdleTimeout != 30 {
		t.Fatalf("unexpected durations: %v", spew.Sdump(v))
	}
	if v.PacketCount != 42 || v.ByteCount != 4200 {
		t.Fatalf("unexpected counters: %v", spew.Sdump(v))
	}
	wildcard, mac := v.Match.DstMAC()
	if wildcard {
		t.Fatal("the destination MAC should not be wildcarded")
	}
	if !bytes.Equal(mac, net.HardwareAddr{0x00, 0x1B, 0x21, 0x11, 0x22, 0x33}) {
		t.Fatalf("unexpected destination MAC: %v", mac)
	}
}

func TestFlowRemovedTooShort(t *testing.T) {
	packet := make([]byte, 40)
	copy(packet[0:8], []byte{0x01, 0x0B, 0x00, 0x28, 0x00, 0x00, 0x00, 0x01})

	if _, err := Parse(packet); err != ErrProtocol {
		t.Fatalf("expected ErrProtocol, got %v", err)
	}
}
