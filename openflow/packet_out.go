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

// PacketOut commands a switch to emit a packet: either one the switch is
// already holding (buffer ID) or explicit frame bytes. Exactly one of the
// two is present; the constructors enforce the choice.
type PacketOut struct {
	Header
	bufferID uint32
	inPort   uint16
	actions  []Action
	data     []byte
}

// NewPacketOut commands the switch to process the given frame bytes. inPort
// is the port the frame was originally received on, or PortNone.
func NewPacketOut(frame []byte, inPort uint16, actions ...Action) *PacketOut {
	return &PacketOut{
		Header:   Header{Version: Version, Type: OFPT_PACKET_OUT},
		bufferID: NoBuffer,
		inPort:   inPort,
		actions:  actions,
		data:     frame,
	}
}

// NewBufferedPacketOut commands the switch to process a packet it already
// holds under bufferID, avoiding retransmission of the frame.
func NewBufferedPacketOut(bufferID uint32, inPort uint16, actions ...Action) *PacketOut {
	return &PacketOut{
		Header:   Header{Version: Version, Type: OFPT_PACKET_OUT},
		bufferID: bufferID,
		inPort:   inPort,
		actions:  actions,
	}
}

// ReceivedPacketOut builds the packet-out that handles an inbound packet:
// the buffered variant when the switch reported a buffer ID, otherwise the
// raw frame bytes. The ingress port becomes the in-port hint either way.
func ReceivedPacketOut(p *PacketIn, actions ...Action) *PacketOut {
	if p.Buffered() {
		return NewBufferedPacketOut(p.BufferID, p.InPort, actions...)
	}
	return NewPacketOut(p.Data, p.InPort, actions...)
}

// Buffered reports whether this command references a switch-held buffer
// instead of carrying frame bytes.
func (r *PacketOut) Buffered() bool {
	return r.bufferID != NoBuffer
}

func (r *PacketOut) BufferID() uint32 {
	return r.bufferID
}

func (r *PacketOut) InPort() uint16 {
	return r.inPort
}

func (r *PacketOut) Data() []byte {
	return r.data
}

func (r *PacketOut) MarshalBinary() ([]byte, error) {
	actions, err := marshalActions(r.actions)
	if err != nil {
		return nil, err
	}
	if len(r.data) > 0xFFFF-16-len(actions) {
		return nil, errors.New("too long packet-out data")
	}

	payload := make([]byte, 8+len(actions)+len(r.data))
	binary.BigEndian.PutUint32(payload[0:4], r.bufferID)
	binary.BigEndian.PutUint16(payload[4:6], r.inPort)
	binary.BigEndian.PutUint16(payload[6:8], uint16(len(actions)))
	copy(payload[8:], actions)
	if !r.Buffered() {
		copy(payload[8+len(actions):], r.data)
	}

	return r.Header.marshalPayload(payload)
}
