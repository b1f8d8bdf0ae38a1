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

// Package l2switch is a transparent learning switch: it learns which port
// each source MAC address lives behind, floods frames for unknown
// destinations, and installs a flow rule so that further traffic to a known
// destination never reaches the controller again.
package l2switch

import (
	"bytes"
	"fmt"
	"net"

	"github.com/rowansdn/rowan/network"
	"github.com/rowansdn/rowan/openflow"
	"github.com/rowansdn/rowan/protocol"

	"github.com/op/go-logging"
	"github.com/pkg/errors"
)

var (
	logger = logging.MustGetLogger("l2switch")
)

const (
	// Learned flows expire on their own when the destination goes quiet.
	flowIdleTimeout = 30 // seconds
	flowPriority    = 10
)

type L2Switch struct {
	macTable *macTable
}

func New() *L2Switch {
	return &L2Switch{
		macTable: newMACTable(),
	}
}

func (r *L2Switch) Name() string {
	return "L2Switch"
}

func isBroadcast(eth *protocol.Ethernet) bool {
	return bytes.Compare(eth.DstMAC, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}) == 0
}

func (r *L2Switch) OnDeviceUp(device *network.Device) error {
	logger.Infof("new device is up: DPID=%v, # of ports=%v", device.ID(), len(device.Ports()))
	return nil
}

func (r *L2Switch) OnDeviceDown(device *network.Device) error {
	logger.Infof("device is down: DPID=%v", device.ID())
	r.macTable.removeDevice(device.ID())
	return nil
}

func (r *L2Switch) OnPacketIn(device *network.Device, p *openflow.PacketIn) error {
	if p.Frame == nil {
		logger.Debugf("ignoring PACKET_IN whose frame is not parsable: %v", p.FrameErr)
		return nil
	}
	eth := p.Frame
	logger.Debugf("PACKET_IN.. Device=%v, InPort=%v, SrcMAC=%v, DstMAC=%v", device.ID(), p.InPort, eth.SrcMAC, eth.DstMAC)

	// Learn the sender's location.
	r.macTable.add(device.ID(), eth.SrcMAC, p.InPort)

	if isBroadcast(eth) {
		logger.Debugf("broadcasting.. SrcMAC=%v, DstMAC=%v", eth.SrcMAC, eth.DstMAC)
		return device.Flood(p)
	}

	outPort, ok := r.macTable.get(device.ID(), eth.DstMAC)
	if !ok {
		// Unknown destination.
		logger.Debugf("unknown node! flooding.. SrcMAC=%v, DstMAC=%v", eth.SrcMAC, eth.DstMAC)
		return device.Flood(p)
	}
	if outPort == p.InPort {
		// Source and destination share a segment. Drop.
		logger.Debugf("dropping a packet that needs no switching (SrcMAC=%v, DstMAC=%v)", eth.SrcMAC, eth.DstMAC)
		return nil
	}

	if err := r.setFlow(device, eth.DstMAC, outPort); err != nil {
		return err
	}

	// Send this packet directly to the destination node.
	logger.Debugf("sending a packet (Src=%v, Dst=%v) to egress port %v..", eth.SrcMAC, eth.DstMAC, outPort)
	out := openflow.ReceivedPacketOut(p, &openflow.ActionOutput{Port: outPort})

	return device.SendPacketOut(out)
}

func (r *L2Switch) setFlow(device *network.Device, dstMAC net.HardwareAddr, outPort uint16) error {
	match := openflow.NewMatch()
	match.SetDstMAC(dstMAC)

	idle, err := openflow.ExpireAfter(flowIdleTimeout)
	if err != nil {
		return err
	}
	entry := openflow.NewFlowEntry(match)
	entry.Priority = flowPriority
	entry.Actions = []openflow.Action{&openflow.ActionOutput{Port: outPort}}
	entry.IdleTimeout = idle
	entry.NotifyWhenRemoved = true

	if err := device.InstallFlow(entry); err != nil {
		return errors.Wrap(err, fmt.Sprintf("installing a flow rule (DstMAC=%v, OutPort=%v)", dstMAC, outPort))
	}
	logger.Debugf("installed a new flow rule: Device=%v, DstMAC=%v, OutPort=%v", device.ID(), dstMAC, outPort)

	return nil
}

func (r *L2Switch) OnPortStatus(device *network.Device, v *openflow.PortStatus) error {
	port := v.Port
	logger.Debugf("PORT_STATUS.. Device=%v, PortNum=%v, AdminUp=%v, LinkUp=%v", device.ID(), port.Number, !port.IsPortDown(), !port.IsLinkDown())

	if port.IsPortDown() || port.IsLinkDown() {
		// Forget everything learned behind the dead port. The installed
		// flows expire by their idle timeout.
		r.macTable.removePort(device.ID(), port.Number)
	}

	return nil
}

func (r *L2Switch) OnFlowRemoved(device *network.Device, v *openflow.FlowRemoved) error {
	wildcard, mac := v.Match.DstMAC()
	if wildcard {
		return nil
	}
	logger.Debugf("FLOW_REMOVED.. Device=%v, DstMAC=%v, reason=%v", device.ID(), mac, v.Reason)
	r.macTable.remove(device.ID(), mac)

	return nil
}
