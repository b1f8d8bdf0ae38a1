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
	"net"
)

const matchLength = 40

// Wildcards tracks which match fields are "any". IP addresses are wildcarded
// by a count of low-order bits (0 = exact, 32 = any) rather than a flag.
type Wildcards struct {
	InPort       bool
	VLANID       bool
	SrcMAC       bool
	DstMAC       bool
	EtherType    bool
	Protocol     bool
	SrcPort      bool
	DstPort      bool
	VLANPriority bool
	TOS          bool
	SrcIP        uint8
	DstIP        uint8
}

func (r *Wildcards) MarshalBinary() ([]byte, error) {
	var v uint32

	if r.InPort {
		v |= OFPFW_IN_PORT
	}
	if r.VLANID {
		v |= OFPFW_DL_VLAN
	}
	if r.SrcMAC {
		v |= OFPFW_DL_SRC
	}
	if r.DstMAC {
		v |= OFPFW_DL_DST
	}
	if r.EtherType {
		v |= OFPFW_DL_TYPE
	}
	if r.Protocol {
		v |= OFPFW_NW_PROTO
	}
	if r.SrcPort {
		v |= OFPFW_TP_SRC
	}
	if r.DstPort {
		v |= OFPFW_TP_DST
	}
	if r.VLANPriority {
		v |= OFPFW_DL_VLAN_PCP
	}
	if r.TOS {
		v |= OFPFW_NW_TOS
	}
	srcIP := uint32(r.SrcIP)
	if srcIP > 32 {
		srcIP = 32
	}
	dstIP := uint32(r.DstIP)
	if dstIP > 32 {
		dstIP = 32
	}
	v |= srcIP << OFPFW_NW_SRC_SHIFT
	v |= dstIP << OFPFW_NW_DST_SHIFT

	data := make([]byte, 4)
	binary.BigEndian.PutUint32(data, v)

	return data, nil
}

func (r *Wildcards) UnmarshalBinary(data []byte) error {
	if len(data) < 4 {
		return ErrProtocol
	}
	v := binary.BigEndian.Uint32(data)

	r.InPort = v&OFPFW_IN_PORT != 0
	r.VLANID = v&OFPFW_DL_VLAN != 0
	r.SrcMAC = v&OFPFW_DL_SRC != 0
	r.DstMAC = v&OFPFW_DL_DST != 0
	r.EtherType = v&OFPFW_DL_TYPE != 0
	r.Protocol = v&OFPFW_NW_PROTO != 0
	r.SrcPort = v&OFPFW_TP_SRC != 0
	r.DstPort = v&OFPFW_TP_DST != 0
	r.VLANPriority = v&OFPFW_DL_VLAN_PCP != 0
	r.TOS = v&OFPFW_NW_TOS != 0
	r.SrcIP = uint8((v >> OFPFW_NW_SRC_SHIFT) & 0x3F)
	r.DstIP = uint8((v >> OFPFW_NW_DST_SHIFT) & 0x3F)

	return nil
}

// Match is the OpenFlow 1.0 flow match: a fixed 40-byte structure where every
// field not explicitly set stays wildcarded.
type Match struct {
	wildcards    Wildcards
	inPort       uint16
	srcMAC       net.HardwareAddr
	dstMAC       net.HardwareAddr
	vlanID       uint16
	vlanPriority uint8
	etherType    uint16
	tos          uint8
	protocol     uint8
	srcIP        net.IP
	dstIP        net.IP
	srcPort      uint16
	dstPort      uint16
}

// NewMatch returns a match with every field wildcarded.
func NewMatch() *Match {
	return &Match{
		wildcards: Wildcards{
			InPort:       true,
			VLANID:       true,
			SrcMAC:       true,
			DstMAC:       true,
			EtherType:    true,
			Protocol:     true,
			SrcPort:      true,
			DstPort:      true,
			VLANPriority: true,
			TOS:          true,
			SrcIP:        32,
			DstIP:        32,
		},
		srcMAC: net.HardwareAddr{0, 0, 0, 0, 0, 0},
		dstMAC: net.HardwareAddr{0, 0, 0, 0, 0, 0},
		srcIP:  net.IPv4zero.To4(),
		dstIP:  net.IPv4zero.To4(),
	}
}

func (r *Match) SetInPort(port uint16) {
	r.inPort = port
	r.wildcards.InPort = false
}

func (r *Match) InPort() (wildcard bool, port uint16) {
	return r.wildcards.InPort, r.inPort
}

func (r *Match) SetSrcMAC(mac net.HardwareAddr) {
	r.srcMAC = make(net.HardwareAddr, 6)
	copy(r.srcMAC, mac)
	r.wildcards.SrcMAC = false
}

func (r *Match) SrcMAC() (wildcard bool, mac net.HardwareAddr) {
	return r.wildcards.SrcMAC, r.srcMAC
}

func (r *Match) SetDstMAC(mac net.HardwareAddr) {
	r.dstMAC = make(net.HardwareAddr, 6)
	copy(r.dstMAC, mac)
	r.wildcards.DstMAC = false
}

func (r *Match) DstMAC() (wildcard bool, mac net.HardwareAddr) {
	return r.wildcards.DstMAC, r.dstMAC
}

func (r *Match) SetVLANID(id uint16) {
	r.vlanID = id
	r.wildcards.VLANID = false
}

func (r *Match) SetVLANPriority(p uint8) {
	r.vlanPriority = p
	r.wildcards.VLANPriority = false
}

func (r *Match) SetEtherType(t uint16) {
	r.etherType = t
	r.wildcards.EtherType = false
}

func (r *Match) EtherType() (wildcard bool, etherType uint16) {
	return r.wildcards.EtherType, r.etherType
}

func (r *Match) SetTOS(tos uint8) {
	r.tos = tos
	r.wildcards.TOS = false
}

func (r *Match) SetIPProtocol(p uint8) {
	r.protocol = p
	r.wildcards.Protocol = false
}

func (r *Match) IPProtocol() (wildcard bool, protocol uint8) {
	return r.wildcards.Protocol, r.protocol
}

func (r *Match) SetSrcIP(ip *net.IPNet) {
	r.srcIP = ip.IP.To4()
	netmaskBits, _ := ip.Mask.Size()
	if netmaskBits >= 32 {
		r.wildcards.SrcIP = 0
	} else {
		r.wildcards.SrcIP = uint8(32 - netmaskBits)
	}
}

func (r *Match) SrcIP() *net.IPNet {
	return &net.IPNet{
		IP:   r.srcIP,
		Mask: net.CIDRMask(32-int(r.wildcards.SrcIP), 32),
	}
}

func (r *Match) SetDstIP(ip *net.IPNet) {
	r.dstIP = ip.IP.To4()
	netmaskBits, _ := ip.Mask.Size()
	if netmaskBits >= 32 {
		r.wildcards.DstIP = 0
	} else {
		r.wildcards.DstIP = uint8(32 - netmaskBits)
	}
}

func (r *Match) DstIP() *net.IPNet {
	return &net.IPNet{
		IP:   r.dstIP,
		Mask: net.CIDRMask(32-int(r.wildcards.DstIP), 32),
	}
}

func (r *Match) SetSrcPort(p uint16) {
	r.srcPort = p
	r.wildcards.SrcPort = false
}

func (r *Match) SetDstPort(p uint16) {
	r.dstPort = p
	r.wildcards.DstPort = false
}

func (r *Match) MarshalBinary() ([]byte, error) {
	wildcard, err := r.wildcards.MarshalBinary()
	if err != nil {
		return nil, err
	}

	data := make([]byte, matchLength)
	copy(data[0:4], wildcard)
	binary.BigEndian.PutUint16(data[4:6], r.inPort)
	copy(data[6:12], r.srcMAC)
	copy(data[12:18], r.dstMAC)
	binary.BigEndian.PutUint16(data[18:20], r.vlanID)
	data[20] = r.vlanPriority
	// data[21] is padding
	binary.BigEndian.PutUint16(data[22:24], r.etherType)
	data[24] = r.tos
	data[25] = r.protocol
	// data[26:28] is padding
	copy(data[28:32], r.srcIP.To4())
	copy(data[32:36], r.dstIP.To4())
	binary.BigEndian.PutUint16(data[36:38], r.srcPort)
	binary.BigEndian.PutUint16(data[38:40], r.dstPort)

	return data, nil
}

func (r *Match) UnmarshalBinary(data []byte) error {
	if len(data) < matchLength {
		return ErrProtocol
	}

	if err := r.wildcards.UnmarshalBinary(data[0:4]); err != nil {
		return err
	}
	r.inPort = binary.BigEndian.Uint16(data[4:6])
	r.srcMAC = make(net.HardwareAddr, 6)
	copy(r.srcMAC, data[6:12])
	r.dstMAC = make(net.HardwareAddr, 6)
	copy(r.dstMAC, data[12:18])
	r.vlanID = binary.BigEndian.Uint16(data[18:20])
	r.vlanPriority = data[20]
	r.etherType = binary.BigEndian.Uint16(data[22:24])
	r.tos = data[24]
	r.protocol = data[25]
	r.srcIP = net.IPv4(data[28], data[29], data[30], data[31]).To4()
	r.dstIP = net.IPv4(data[32], data[33], data[34], data[35]).To4()
	r.srcPort = binary.BigEndian.Uint16(data[36:38])
	r.dstPort = binary.BigEndian.Uint16(data[38:40])

	return nil
}
