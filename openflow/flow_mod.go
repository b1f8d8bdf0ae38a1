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
	"errors"
)

// FlowMod installs, modifies or removes a flow entry on a switch.
type FlowMod struct {
	Header
	Command uint16
	Entry   *FlowEntry
	outPort uint16
}

// NewFlowAdd returns the message that installs entry.
func NewFlowAdd(entry *FlowEntry) *FlowMod {
	return &FlowMod{
		Header:  Header{Version: Version, Type: OFPT_FLOW_MOD},
		Command: OFPFC_ADD,
		Entry:   entry,
		outPort: PortNone,
	}
}

// NewFlowRemove returns the message that removes all entries matching match.
func NewFlowRemove(match *Match) *FlowMod {
	entry := NewFlowEntry(match)
	return &FlowMod{
		Header:  Header{Version: Version, Type: OFPT_FLOW_MOD},
		Command: OFPFC_DELETE,
		Entry:   entry,
		outPort: PortNone,
	}
}

func (r *FlowMod) MarshalBinary() ([]byte, error) {
	if r.Entry == nil || r.Entry.Match == nil {
		return nil, errors.New("empty flow entry")
	}

	match, err := r.Entry.Match.MarshalBinary()
	if err != nil {
		return nil, err
	}
	actions, err := marshalActions(r.Entry.Actions)
	if err != nil {
		return nil, err
	}
	if len(actions) > 0xFFFF-72 {
		return nil, errors.New("too many flow actions")
	}

	var flags uint16
	if r.Entry.NotifyWhenRemoved {
		flags |= OFPFF_SEND_FLOW_REM
	}
	if r.Entry.CheckOverlap {
		flags |= OFPFF_CHECK_OVERLAP
	}

	payload := make([]byte, 64+len(actions))
	copy(payload[0:40], match)
	binary.BigEndian.PutUint64(payload[40:48], r.Entry.Cookie)
	binary.BigEndian.PutUint16(payload[48:50], r.Command)
	binary.BigEndian.PutUint16(payload[50:52], r.Entry.IdleTimeout.Seconds())
	binary.BigEndian.PutUint16(payload[52:54], r.Entry.HardTimeout.Seconds())
	binary.BigEndian.PutUint16(payload[54:56], r.Entry.Priority)
	binary.BigEndian.PutUint32(payload[56:60], r.Entry.BufferID)
	binary.BigEndian.PutUint16(payload[60:62], r.outPort)
	binary.BigEndian.PutUint16(payload[62:64], flags)
	copy(payload[64:], actions)

	return r.Header.marshalPayload(payload)
}
