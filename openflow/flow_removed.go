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
)

type FlowRemovedReason uint8

const (
	// FlowIdleTimeout means the entry saw no traffic for its idle timeout.
	FlowIdleTimeout FlowRemovedReason = iota
	// FlowHardTimeout means the entry reached its hard lifetime.
	FlowHardTimeout
	// FlowDeleted means a flow-mod removed the entry.
	FlowDeleted
)

// FlowRemoved notifies the controller that an entry installed with
// NotifyWhenRemoved has left the flow table. The cookie correlates it with
// the FlowEntry the controller once sent.
type FlowRemoved struct {
	Header
	Match       Match
	Cookie      uint64
	Priority    uint16
	Reason      FlowRemovedReason
	DurationSec uint32
	IdleTimeout uint16
	PacketCount uint64
	ByteCount   uint64
}

func (r *FlowRemoved) UnmarshalBinary(data []byte) error {
	payload, err := r.Header.unmarshalPayload(data)
	if err != nil {
		return err
	}
	if len(payload) < 80 {
		return ErrProtocol
	}

	if err := r.Match.UnmarshalBinary(payload[0:40]); err != nil {
		return err
	}
	r.Cookie = binary.BigEndian.Uint64(payload[40:48])
	r.Priority = binary.BigEndian.Uint16(payload[48:50])
	r.Reason = FlowRemovedReason(payload[50])
	// payload[51] is padding
	r.DurationSec = binary.BigEndian.Uint32(payload[52:56])
	// payload[56:60] is duration_nsec
	r.IdleTimeout = binary.BigEndian.Uint16(payload[60:62])
	// payload[62:64] is padding
	r.PacketCount = binary.BigEndian.Uint64(payload[64:72])
	r.ByteCount = binary.BigEndian.Uint64(payload[72:80])

	return nil
}
