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
	"errors"
)

// Timeout is a flow entry lifetime: never expire, or expire after a positive
// number of seconds. The zero value never expires.
type Timeout struct {
	seconds uint16
}

// Forever returns the timeout that never expires.
func Forever() Timeout {
	return Timeout{}
}

// ExpireAfter returns a timeout of the given number of seconds. Zero seconds
// with expiry semantics is a caller error, not something to clamp.
func ExpireAfter(seconds uint16) (Timeout, error) {
	if seconds == 0 {
		return Timeout{}, errors.New("zero-second expiry timeout")
	}
	return Timeout{seconds: seconds}, nil
}

// Never reports whether the timeout never expires.
func (r Timeout) Never() bool {
	return r.seconds == 0
}

// Seconds returns the wire encoding: 0 for never, else the second count.
func (r Timeout) Seconds() uint16 {
	return r.seconds
}

// FlowEntry describes one flow-table rule. It is pure data: the controller
// sends it once inside a FlowMod and holds no live reference afterwards
// beyond the cookie.
type FlowEntry struct {
	Match    *Match
	Priority uint16 // higher wins
	Actions  []Action
	// Cookie is an opaque caller-assigned correlation tag, echoed back in
	// flow-removed notifications.
	Cookie      uint64
	IdleTimeout Timeout
	HardTimeout Timeout
	// NotifyWhenRemoved asks the switch for a flow-removed message when the
	// entry expires or is deleted.
	NotifyWhenRemoved bool
	// BufferID names a switch-held packet to process with this rule as soon
	// as it is installed, or NoBuffer.
	BufferID uint32
	// CheckOverlap asks the switch to reject the entry if it overlaps an
	// existing one at the same priority.
	CheckOverlap bool
}

// NewFlowEntry returns an entry for match with no actions (drop), no
// timeouts, and no buffered packet to apply.
func NewFlowEntry(match *Match) *FlowEntry {
	if match == nil {
		panic("flow match is nil")
	}
	return &FlowEntry{
		Match:    match,
		BufferID: NoBuffer,
	}
}
