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

package l2switch

import (
	"bytes"
	"encoding/binary"
	"net"
	"testing"
	"time"

	"github.com/rowansdn/rowan/network"
	"github.com/rowansdn/rowan/openflow"
	"github.com/rowansdn/rowan/protocol"
)

var (
	hostA = net.HardwareAddr{0x00, 0x1B, 0x21, 0xAA, 0xAA, 0xAA}
	hostB = net.HardwareAddr{0x00, 0x1B, 0x21, 0xBB, 0xBB, 0xBB}
	hostC = net.HardwareAddr{0x00, 0x1B, 0x21, 0xCC, 0xCC, 0xCC}
)

// switchHarness plays the switch side of the wire so the tests can observe
// exactly which commands the application emits.
type switchHarness struct {
	t      *testing.T
	conn   net.Conn
	stream *openflow.Stream
}

func startSwitch(t *testing.T, dpid uint64) *switchHarness {
	left, right := net.Pipe()
	network.NewController(New()).AddConnection(left)

	stream := openflow.NewStream(right)
	stream.SetReadTimeout(5 * time.Second)
	stream.SetWriteTimeout(5 * time.Second)
	h := &switchHarness{t: t, conn: right, stream: stream}
	h.handshake(dpid)

	return h
}

func (r *switchHarness) handshake(dpid uint64) {
	if _, ok := r.read().(*openflow.Hello); !ok {
		r.t.Fatal("expected HELLO as the controller's first message")
	}
	r.write(openflow.NewHello())

	req, ok := r.read().(*openflow.FeaturesRequest)
	if !ok {
		r.t.Fatal("expected FEATURES_REQUEST after HELLO")
	}
	reply := openflow.NewFeaturesReply(req.TransactionID(), dpid)
	reply.NumBuffers = 256
	reply.NumTables = 1
	for i := uint16(1); i <= 3; i++ {
		reply.Ports = append(reply.Ports, openflow.PhysicalPort{
			Number: i,
			MAC:    net.HardwareAddr{0x00, 0x1B, 0x21, 0x00, 0x00, byte(i)},
		})
	}
	r.write(reply)
}

func (r *switchHarness) read() openflow.Incoming {
	packet, err := r.stream.ReadPacket()
	if err != nil {
		r.t.Fatalf("failed to read a message from the controller: %v", err)
	}
	msg, err := openflow.Parse(packet)
	if err != nil {
		r.t.Fatalf("failed to parse a message from the controller: %v", err)
	}

	return msg
}

func (r *switchHarness) write(msg openflow.Outgoing) {
	packet, err := msg.MarshalBinary()
	if err != nil {
		r.t.Fatalf("failed to marshal a message: %v", err)
	}
	if _, err := r.stream.Write(packet); err != nil {
		r.t.Fatalf("failed to write a message to the controller: %v", err)
	}
}

// readCommand reads the next controller-to-switch command. The codec decodes
// only switch-to-controller messages, so commands surface as Unknown and the
// tests assert on their raw payload.
func (r *switchHarness) readCommand() *openflow.Unknown {
	v, ok := r.read().(*openflow.Unknown)
	if !ok {
		r.t.Fatal("expected a controller-to-switch command")
	}

	return v
}

func (r *switchHarness) sendPacketIn(bufferID uint32, inPort uint16, src, dst net.HardwareAddr) {
	eth := protocol.Ethernet{
		SrcMAC:  src,
		DstMAC:  dst,
		Type:    protocol.EtherTypeIPv4,
		Payload: []byte{0x45, 0x00, 0x00, 0x14},
	}
	frame, err := eth.MarshalBinary()
	if err != nil {
		r.t.Fatalf("failed to marshal a frame: %v", err)
	}

	p := &openflow.PacketIn{
		Header:      openflow.Header{Version: openflow.Version, Type: openflow.OFPT_PACKET_IN},
		BufferID:    bufferID,
		TotalLength: uint16(len(frame)),
		InPort:      inPort,
		Data:        frame,
	}
	r.write(p)
}

func (r *switchHarness) sendFlowRemoved(dstMAC net.HardwareAddr) {
	match := openflow.NewMatch()
	match.SetDstMAC(dstMAC)
	matchBytes, err := match.MarshalBinary()
	if err != nil {
		r.t.Fatalf("failed to marshal a match: %v", err)
	}

	packet := make([]byte, 88)
	packet[0] = openflow.Version
	packet[1] = openflow.OFPT_FLOW_REMOVED
	packet[3] = 88
	copy(packet[8:48], matchBytes)

	if _, err := r.stream.Write(packet); err != nil {
		r.t.Fatalf("failed to write a FLOW_REMOVED: %v", err)
	}
}

func assertPacketOut(t *testing.T, v *openflow.Unknown, bufferID uint32, inPort, outPort uint16) {
	if v.Type != openflow.OFPT_PACKET_OUT {
		t.Fatalf("expected a PACKET_OUT, got message type %v", v.Type)
	}
	d := v.Data
	if binary.BigEndian.Uint32(d[0:4]) != bufferID {
		t.Fatalf("unexpected buffer ID: %v", binary.BigEndian.Uint32(d[0:4]))
	}
	if binary.BigEndian.Uint16(d[4:6]) != inPort {
		t.Fatalf("unexpected in port: %v", binary.BigEndian.Uint16(d[4:6]))
	}
	if binary.BigEndian.Uint16(d[6:8]) != 8 {
		t.Fatalf("expected a single output action, got %v action bytes", binary.BigEndian.Uint16(d[6:8]))
	}
	if binary.BigEndian.Uint16(d[12:14]) != outPort {
		t.Fatalf("unexpected output port: %v", binary.BigEndian.Uint16(d[12:14]))
	}
}

func assertFlowMod(t *testing.T, v *openflow.Unknown, dstMAC net.HardwareAddr, outPort uint16) {
	if v.Type != openflow.OFPT_FLOW_MOD {
		t.Fatalf("expected a FLOW_MOD, got message type %v", v.Type)
	}
	d := v.Data
	if !bytes.Equal(d[12:18], dstMAC) {
		t.Fatalf("unexpected match destination MAC: %v", net.HardwareAddr(d[12:18]))
	}
	if binary.BigEndian.Uint16(d[48:50]) != openflow.OFPFC_ADD {
		t.Fatalf("unexpected flow-mod command: %v", binary.BigEndian.Uint16(d[48:50]))
	}
	if binary.BigEndian.Uint16(d[50:52]) != flowIdleTimeout {
		t.Fatalf("unexpected idle timeout: %v", binary.BigEndian.Uint16(d[50:52]))
	}
	if binary.BigEndian.Uint16(d[62:64]) != openflow.OFPFF_SEND_FLOW_REM {
		t.Fatalf("the rule should ask for a removal notification, flags=%v", binary.BigEndian.Uint16(d[62:64]))
	}
	if binary.BigEndian.Uint16(d[68:70]) != outPort {
		t.Fatalf("unexpected action output port: %v", binary.BigEndian.Uint16(d[68:70]))
	}
}

func TestLearningSwitch(t *testing.T) {
	sw := startSwitch(t, 501)
	defer sw.conn.Close()

	// Host A on port 1 talks to the still unknown host B: flood.
	sw.sendPacketIn(openflow.NoBuffer, 1, hostA, hostB)
	assertPacketOut(t, sw.readCommand(), openflow.NoBuffer, 1, openflow.PortFlood)

	// Host B answers from port 2. A's location is known by now, so a flow
	// rule goes in and the packet is forwarded straight to port 1.
	sw.sendPacketIn(0x55, 2, hostB, hostA)
	assertFlowMod(t, sw.readCommand(), hostA, 1)
	assertPacketOut(t, sw.readCommand(), 0x55, 2, 1)
}

func TestBroadcastAlwaysFloods(t *testing.T) {
	sw := startSwitch(t, 502)
	defer sw.conn.Close()

	broadcast := net.HardwareAddr{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	sw.sendPacketIn(openflow.NoBuffer, 1, hostA, broadcast)
	assertPacketOut(t, sw.readCommand(), openflow.NoBuffer, 1, openflow.PortFlood)

	sw.sendPacketIn(openflow.NoBuffer, 2, hostB, broadcast)
	assertPacketOut(t, sw.readCommand(), openflow.NoBuffer, 2, openflow.PortFlood)
}

func TestSameSegmentDrop(t *testing.T) {
	sw := startSwitch(t, 503)
	defer sw.conn.Close()

	// Learn A behind port 1.
	sw.sendPacketIn(openflow.NoBuffer, 1, hostA, hostB)
	assertPacketOut(t, sw.readCommand(), openflow.NoBuffer, 1, openflow.PortFlood)

	// C shares port 1 with A; the switch there delivers the frame itself, so
	// nothing must go out for this packet.
	sw.sendPacketIn(0x77, 1, hostC, hostA)

	// The next command on the wire belongs to the broadcast below, not to the
	// dropped packet.
	broadcast := net.HardwareAddr{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	sw.sendPacketIn(openflow.NoBuffer, 2, hostB, broadcast)
	assertPacketOut(t, sw.readCommand(), openflow.NoBuffer, 2, openflow.PortFlood)
}

func TestFlowRemovalForgetsHost(t *testing.T) {
	sw := startSwitch(t, 504)
	defer sw.conn.Close()

	// Learn A behind port 1 and install the rule toward it.
	sw.sendPacketIn(openflow.NoBuffer, 1, hostA, hostB)
	assertPacketOut(t, sw.readCommand(), openflow.NoBuffer, 1, openflow.PortFlood)
	sw.sendPacketIn(openflow.NoBuffer, 2, hostB, hostA)
	assertFlowMod(t, sw.readCommand(), hostA, 1)
	assertPacketOut(t, sw.readCommand(), openflow.NoBuffer, 2, 1)

	// The rule expired; the switch no longer delivers to A on its own, and
	// the controller must fall back to flooding.
	sw.sendFlowRemoved(hostA)
	sw.sendPacketIn(openflow.NoBuffer, 2, hostB, hostA)
	assertPacketOut(t, sw.readCommand(), openflow.NoBuffer, 2, openflow.PortFlood)
}
