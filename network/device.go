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
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rowansdn/rowan/openflow"
)

const flowCacheExpiration = 5 * time.Second

// Device is the handle to a connected switch. It is created and owned by one
// session; applications only ever borrow it through EventListener callbacks
// and must not retain it past OnDeviceDown.
type Device struct {
	mutex      sync.RWMutex
	session    *session
	dpid       uint64
	numBuffers uint32
	numTables  uint8
	ports      map[uint16]openflow.PhysicalPort
	flowCache  *flowCache
	closed     bool
}

func newDevice(s *session) *Device {
	if s == nil {
		panic("Session is nil")
	}

	return &Device{
		session:   s,
		ports:     make(map[uint16]openflow.PhysicalPort),
		flowCache: newFlowCache(flowCacheExpiration),
	}
}

func (r *Device) String() string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	v := fmt.Sprintf("Device DPID=%v, NumBuffers=%v, NumTables=%v, # of ports=%v, Connected=%v\n", r.dpid, r.numBuffers, r.numTables, len(r.ports), !r.closed)
	for _, p := range r.ports {
		v += fmt.Sprintf("\tPort %v (%v): MAC=%v, AdminUp=%v, LinkUp=%v\n", p.Number, p.Name, p.MAC, !p.IsPortDown(), !p.IsLinkDown())
	}

	return v
}

// ID is the datapath ID in decimal form.
func (r *Device) ID() string {
	return strconv.FormatUint(r.DPID(), 10)
}

func (r *Device) DPID() uint64 {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.dpid
}

func (r *Device) NumBuffers() uint32 {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.numBuffers
}

func (r *Device) NumTables() uint8 {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.numTables
}

// Port may return nil if there is no port whose number is num.
func (r *Device) Port(num uint16) *openflow.PhysicalPort {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	p, ok := r.ports[num]
	if !ok {
		return nil
	}

	return &p
}

func (r *Device) Ports() []openflow.PhysicalPort {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	p := make([]openflow.PhysicalPort, 0, len(r.ports))
	for _, v := range r.ports {
		p = append(p, v)
	}

	return p
}

func (r *Device) setFeatures(v *openflow.FeaturesReply) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.dpid = v.DPID
	r.numBuffers = v.NumBuffers
	r.numTables = v.NumTables
	for _, p := range v.Ports {
		if p.Number > openflow.PortMax {
			continue
		}
		r.ports[p.Number] = p
	}
}

func (r *Device) updatePort(p openflow.PhysicalPort) {
	if p.Number > openflow.PortMax {
		return
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	logger.Debugf("Device=%v, PortNum=%v, AdminUp=%v, LinkUp=%v", r.dpid, p.Number, !p.IsPortDown(), !p.IsLinkDown())
	r.ports[p.Number] = p
}

// SendMessage assigns a fresh transaction ID to msg and puts it on the wire.
// Sends are serialized; they never block the receive path.
func (r *Device) SendMessage(msg openflow.Outgoing) error {
	if msg == nil {
		panic("Message is nil")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.closed {
		return ErrSessionClosed
	}
	msg.SetTransactionID(r.session.nextTransactionID())

	return r.session.write(msg)
}

// writeMessage sends msg without touching its transaction ID.
func (r *Device) writeMessage(msg openflow.Outgoing) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.closed {
		return ErrSessionClosed
	}

	return r.session.write(msg)
}

// InstallFlow sends a flow-add for entry. An install of the same rule that is
// still in flight is suppressed instead of being sent again.
func (r *Device) InstallFlow(entry *openflow.FlowEntry) error {
	ok, err := r.flowCache.InProgress(entry)
	if err != nil {
		return err
	}
	if ok {
		logger.Debugf("skipping a duplicated flow install on %v", r.ID())
		return nil
	}

	if err := r.SendMessage(openflow.NewFlowAdd(entry)); err != nil {
		return err
	}

	return r.flowCache.Add(entry)
}

// RemoveFlow removes all flow entries matching match.
func (r *Device) RemoveFlow(match *openflow.Match) error {
	r.flowCache.RemoveAll()
	return r.SendMessage(openflow.NewFlowRemove(match))
}

func (r *Device) SendPacketOut(out *openflow.PacketOut) error {
	return r.SendMessage(out)
}

// Flood sends the packet carried by p out of every port except the one it
// came in on.
func (r *Device) Flood(p *openflow.PacketIn) error {
	return r.SendMessage(openflow.ReceivedPacketOut(p, openflow.FloodAction()))
}

func (r *Device) SendEchoRequest(data []byte) error {
	return r.SendMessage(openflow.NewEchoRequest(data))
}

func (r *Device) IsClosed() bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.closed
}

// Close tears the session down. The receive loop observes end of stream and
// finishes; any send afterwards fails with ErrSessionClosed.
func (r *Device) Close() {
	r.mutex.Lock()
	if r.closed {
		r.mutex.Unlock()
		return
	}
	r.closed = true
	r.mutex.Unlock()

	r.session.stream.Close()
}
