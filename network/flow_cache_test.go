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

package network

import (
	"net"
	"testing"
	"time"

	"github.com/rowansdn/rowan/openflow"
)

func testFlowEntry(mac net.HardwareAddr, outPort uint16) *openflow.FlowEntry {
	match := openflow.NewMatch()
	match.SetDstMAC(mac)

	entry := openflow.NewFlowEntry(match)
	entry.Priority = 10
	entry.Actions = []openflow.Action{&openflow.ActionOutput{Port: outPort}}

	return entry
}

func TestFlowCache(t *testing.T) {
	cache := newFlowCache(100 * time.Millisecond)
	mac := net.HardwareAddr{0x00, 0x1B, 0x21, 0x11, 0x22, 0x33}

	entry := testFlowEntry(mac, 1)
	if ok, err := cache.InProgress(entry); err != nil || ok {
		t.Fatalf("a never-installed rule should not be in progress (ok=%v, err=%v)", ok, err)
	}
	if err := cache.Add(entry); err != nil {
		t.Fatalf("failed to add a flow cache: %v", err)
	}
	// The same rule built from scratch hits the same key.
	if ok, err := cache.InProgress(testFlowEntry(mac, 1)); err != nil || !ok {
		t.Fatalf("an identical rule should be in progress (ok=%v, err=%v)", ok, err)
	}
	// A rule with a different action list is a different rule.
	if ok, err := cache.InProgress(testFlowEntry(mac, 2)); err != nil || ok {
		t.Fatalf("a different rule should not be in progress (ok=%v, err=%v)", ok, err)
	}

	time.Sleep(150 * time.Millisecond)
	if ok, err := cache.InProgress(entry); err != nil || ok {
		t.Fatalf("an expired install should not be in progress (ok=%v, err=%v)", ok, err)
	}
}
