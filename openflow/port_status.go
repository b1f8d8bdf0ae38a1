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

type PortStatusReason uint8

const (
	PortAdded PortStatusReason = iota
	PortDeleted
	PortModified
)

// PortStatus announces that a switch port was added, removed, or changed.
type PortStatus struct {
	Header
	Reason PortStatusReason
	Port   PhysicalPort
}

func (r *PortStatus) UnmarshalBinary(data []byte) error {
	payload, err := r.Header.unmarshalPayload(data)
	if err != nil {
		return err
	}
	if len(payload) < 8+physicalPortLength {
		return ErrProtocol
	}

	r.Reason = PortStatusReason(payload[0])
	// payload[1:8] is padding
	return r.Port.UnmarshalBinary(payload[8 : 8+physicalPortLength])
}
