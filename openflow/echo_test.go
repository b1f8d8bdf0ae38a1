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
	"testing"
)

func TestEchoPayloadTooLong(t *testing.T) {
	// The 16-bit length field caps the whole message at 65535 bytes.
	echo := NewEchoRequest(make([]byte, 0xFFFF-8+1))
	if _, err := echo.MarshalBinary(); err == nil {
		t.Fatal("an echo payload that overflows the length field should be rejected")
	}

	echo = NewEchoRequest(make([]byte, 0xFFFF-8))
	packet, err := echo.MarshalBinary()
	if err != nil {
		t.Fatalf("failed to marshal a maximum-size echo: %v", err)
	}
	if len(packet) != 0xFFFF || binary.BigEndian.Uint16(packet[2:4]) != 0xFFFF {
		t.Fatalf("unexpected maximum-size echo framing: len=%v", len(packet))
	}
}

func TestEchoReplyMirrorsRequest(t *testing.T) {
	req := NewEchoRequest([]byte{0xDE, 0xAD})
	req.SetTransactionID(42)

	reply := NewEchoReply(req)
	if reply.TransactionID() != 42 {
		t.Fatalf("the reply must carry the request's transaction ID, got %v", reply.TransactionID())
	}
	packet, err := reply.MarshalBinary()
	if err != nil {
		t.Fatalf("failed to marshal an echo reply: %v", err)
	}
	if len(packet) != 10 || packet[1] != OFPT_ECHO_REPLY || packet[8] != 0xDE || packet[9] != 0xAD {
		t.Fatalf("unexpected echo reply encoding: %v", packet)
	}
}
