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

// FeaturesReply carries the switch's datapath identity and port list, the
// payload of the handshake.
type FeaturesReply struct {
	Header
	DPID         uint64
	NumBuffers   uint32
	NumTables    uint8
	capabilities uint32
	actions      uint32
	Ports        []PhysicalPort
}

type Capability struct {
	OFPC_FLOW_STATS   bool /* Flow statistics. */
	OFPC_TABLE_STATS  bool /* Table statistics. */
	OFPC_PORT_STATS   bool /* Port statistics. */
	OFPC_STP          bool /* 802.1d spanning tree. */
	OFPC_IP_REASM     bool /* Can reassemble IP fragments. */
	OFPC_QUEUE_STATS  bool /* Queue statistics. */
	OFPC_ARP_MATCH_IP bool /* Match IP addresses in ARP pkts. */
}

func (r *FeaturesReply) Capability() *Capability {
	return &Capability{
		OFPC_FLOW_STATS:   r.capabilities&OFPC_FLOW_STATS != 0,
		OFPC_TABLE_STATS:  r.capabilities&OFPC_TABLE_STATS != 0,
		OFPC_PORT_STATS:   r.capabilities&OFPC_PORT_STATS != 0,
		OFPC_STP:          r.capabilities&OFPC_STP != 0,
		OFPC_IP_REASM:     r.capabilities&OFPC_IP_REASM != 0,
		OFPC_QUEUE_STATS:  r.capabilities&OFPC_QUEUE_STATS != 0,
		OFPC_ARP_MATCH_IP: r.capabilities&OFPC_ARP_MATCH_IP != 0,
	}
}

type SupportedAction struct {
	OFPAT_OUTPUT       bool /* Output to switch port. */
	OFPAT_SET_VLAN_VID bool /* Set the 802.1q VLAN id. */
	OFPAT_SET_VLAN_PCP bool /* Set the 802.1q priority. */
	OFPAT_STRIP_VLAN   bool /* Strip the 802.1q header. */
	OFPAT_SET_DL_SRC   bool /* Ethernet source address. */
	OFPAT_SET_DL_DST   bool /* Ethernet destination address. */
	OFPAT_SET_NW_SRC   bool /* IP source address. */
	OFPAT_SET_NW_DST   bool /* IP destination address. */
	OFPAT_SET_NW_TOS   bool /* IP ToS (DSCP field, 6 bits). */
	OFPAT_SET_TP_SRC   bool /* TCP/UDP source port. */
	OFPAT_SET_TP_DST   bool /* TCP/UDP destination port. */
	OFPAT_ENQUEUE      bool /* Output to queue. */
}

func (r *FeaturesReply) SupportedActions() *SupportedAction {
	return &SupportedAction{
		OFPAT_OUTPUT:       r.actions&(1<<OFPAT_OUTPUT) != 0,
		OFPAT_SET_VLAN_VID: r.actions&(1<<OFPAT_SET_VLAN_VID) != 0,
		OFPAT_SET_VLAN_PCP: r.actions&(1<<OFPAT_SET_VLAN_PCP) != 0,
		OFPAT_STRIP_VLAN:   r.actions&(1<<OFPAT_STRIP_VLAN) != 0,
		OFPAT_SET_DL_SRC:   r.actions&(1<<OFPAT_SET_DL_SRC) != 0,
		OFPAT_SET_DL_DST:   r.actions&(1<<OFPAT_SET_DL_DST) != 0,
		OFPAT_SET_NW_SRC:   r.actions&(1<<OFPAT_SET_NW_SRC) != 0,
		OFPAT_SET_NW_DST:   r.actions&(1<<OFPAT_SET_NW_DST) != 0,
		OFPAT_SET_NW_TOS:   r.actions&(1<<OFPAT_SET_NW_TOS) != 0,
		OFPAT_SET_TP_SRC:   r.actions&(1<<OFPAT_SET_TP_SRC) != 0,
		OFPAT_SET_TP_DST:   r.actions&(1<<OFPAT_SET_TP_DST) != 0,
		OFPAT_ENQUEUE:      r.actions&(1<<OFPAT_ENQUEUE) != 0,
	}
}

// SetRawBitmaps sets the capability and supported-action bitmaps. It exists
// for building replies in tests and switch simulators.
func (r *FeaturesReply) SetRawBitmaps(capabilities, actions uint32) {
	r.capabilities = capabilities
	r.actions = actions
}

func NewFeaturesReply(xid uint32, dpid uint64) *FeaturesReply {
	return &FeaturesReply{
		Header: Header{Version: Version, Type: OFPT_FEATURES_REPLY, Xid: xid},
		DPID:   dpid,
	}
}

func (r *FeaturesReply) MarshalBinary() ([]byte, error) {
	payload := make([]byte, 24+len(r.Ports)*physicalPortLength)
	binary.BigEndian.PutUint64(payload[0:8], r.DPID)
	binary.BigEndian.PutUint32(payload[8:12], r.NumBuffers)
	payload[12] = r.NumTables
	// payload[13:16] is padding
	binary.BigEndian.PutUint32(payload[16:20], r.capabilities)
	binary.BigEndian.PutUint32(payload[20:24], r.actions)
	for i := range r.Ports {
		v, err := r.Ports[i].MarshalBinary()
		if err != nil {
			return nil, err
		}
		copy(payload[24+i*physicalPortLength:], v)
	}

	return r.Header.marshalPayload(payload)
}

func (r *FeaturesReply) UnmarshalBinary(data []byte) error {
	payload, err := r.Header.unmarshalPayload(data)
	if err != nil {
		return err
	}
	if len(payload) < 24 {
		return ErrProtocol
	}

	r.DPID = binary.BigEndian.Uint64(payload[0:8])
	r.NumBuffers = binary.BigEndian.Uint32(payload[8:12])
	r.NumTables = payload[12]
	r.capabilities = binary.BigEndian.Uint32(payload[16:20])
	r.actions = binary.BigEndian.Uint32(payload[20:24])

	nPorts := (len(payload) - 24) / physicalPortLength
	if nPorts == 0 {
		return nil
	}
	r.Ports = make([]PhysicalPort, nPorts)
	for i := 0; i < nPorts; i++ {
		buf := payload[24+i*physicalPortLength:]
		if err := r.Ports[i].UnmarshalBinary(buf[0:physicalPortLength]); err != nil {
			return err
		}
	}

	return nil
}
