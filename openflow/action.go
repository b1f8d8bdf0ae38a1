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
	"net"
)

// Action is one element of the ordered action list applied by a flow entry
// or a packet-out command.
type Action interface {
	ActionType() uint16
	MarshalBinary() ([]byte, error)
}

// marshalActions concatenates the wire form of an ordered action list.
func marshalActions(actions []Action) ([]byte, error) {
	v := make([]byte, 0)
	for _, act := range actions {
		buf, err := act.MarshalBinary()
		if err != nil {
			return nil, err
		}
		v = append(v, buf...)
	}

	return v, nil
}

// ActionOutput sends the packet out of a port. Port may be a physical port
// number or one of the reserved ports (PortFlood, PortController, ...).
type ActionOutput struct {
	Port uint16
}

// FloodAction returns the action that floods a packet to all ports except
// the ingress port.
func FloodAction() *ActionOutput {
	return &ActionOutput{Port: PortFlood}
}

func (r *ActionOutput) ActionType() uint16 {
	return OFPAT_OUTPUT
}

func (r *ActionOutput) MarshalBinary() ([]byte, error) {
	v := make([]byte, 8)
	binary.BigEndian.PutUint16(v[0:2], OFPAT_OUTPUT)
	binary.BigEndian.PutUint16(v[2:4], 8)
	binary.BigEndian.PutUint16(v[4:6], r.Port)
	// max_len applies only to output-to-controller; ask for whole packets.
	binary.BigEndian.PutUint16(v[6:8], 0xFFFF)

	return v, nil
}

// ActionEnqueue sends the packet to a queue attached to a port.
type ActionEnqueue struct {
	Port    uint16
	QueueID uint32
}

func (r *ActionEnqueue) ActionType() uint16 {
	return OFPAT_ENQUEUE
}

func (r *ActionEnqueue) MarshalBinary() ([]byte, error) {
	v := make([]byte, 16)
	binary.BigEndian.PutUint16(v[0:2], OFPAT_ENQUEUE)
	binary.BigEndian.PutUint16(v[2:4], 16)
	binary.BigEndian.PutUint16(v[4:6], r.Port)
	// v[6:12] is padding
	binary.BigEndian.PutUint32(v[12:16], r.QueueID)

	return v, nil
}

// ActionSetSrcMAC rewrites the Ethernet source address.
type ActionSetSrcMAC struct {
	MAC net.HardwareAddr
}

func (r *ActionSetSrcMAC) ActionType() uint16 {
	return OFPAT_SET_DL_SRC
}

func (r *ActionSetSrcMAC) MarshalBinary() ([]byte, error) {
	return marshalMACAction(OFPAT_SET_DL_SRC, r.MAC)
}

// ActionSetDstMAC rewrites the Ethernet destination address.
type ActionSetDstMAC struct {
	MAC net.HardwareAddr
}

func (r *ActionSetDstMAC) ActionType() uint16 {
	return OFPAT_SET_DL_DST
}

func (r *ActionSetDstMAC) MarshalBinary() ([]byte, error) {
	return marshalMACAction(OFPAT_SET_DL_DST, r.MAC)
}

func marshalMACAction(t uint16, mac net.HardwareAddr) ([]byte, error) {
	if len(mac) != 6 {
		return nil, errors.New("invalid MAC address")
	}

	v := make([]byte, 16)
	binary.BigEndian.PutUint16(v[0:2], t)
	binary.BigEndian.PutUint16(v[2:4], 16)
	copy(v[4:10], mac)
	// v[10:16] is padding

	return v, nil
}
