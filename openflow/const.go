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

// Version is the only wire protocol version this codec speaks (OpenFlow 1.0).
const Version = 0x01

// NoBuffer means the switch did not buffer the packet (OFP_NO_BUFFER).
const NoBuffer = 0xFFFFFFFF

const (
	OFPT_HELLO = iota
	OFPT_ERROR
	OFPT_ECHO_REQUEST
	OFPT_ECHO_REPLY
	OFPT_VENDOR
	OFPT_FEATURES_REQUEST
	OFPT_FEATURES_REPLY
	OFPT_GET_CONFIG_REQUEST
	OFPT_GET_CONFIG_REPLY
	OFPT_SET_CONFIG
	OFPT_PACKET_IN
	OFPT_FLOW_REMOVED
	OFPT_PORT_STATUS
	OFPT_PACKET_OUT
	OFPT_FLOW_MOD
	OFPT_PORT_MOD
	OFPT_STATS_REQUEST
	OFPT_STATS_REPLY
	OFPT_BARRIER_REQUEST
	OFPT_BARRIER_REPLY
	OFPT_QUEUE_GET_CONFIG_REQUEST
	OFPT_QUEUE_GET_CONFIG_REPLY
)

// Reserved port numbers.
const (
	PortMax        = 0xFF00
	PortInPort     = 0xFFF8 // send back out the packet's ingress port
	PortTable      = 0xFFF9
	PortFlood      = 0xFFFB
	PortAll        = 0xFFFC
	PortController = 0xFFFD
	PortLocal      = 0xFFFE
	PortNone       = 0xFFFF
)

const (
	OFPAT_OUTPUT       = iota /* Output to switch port. */
	OFPAT_SET_VLAN_VID        /* Set the 802.1q VLAN id. */
	OFPAT_SET_VLAN_PCP        /* Set the 802.1q priority. */
	OFPAT_STRIP_VLAN          /* Strip the 802.1q header. */
	OFPAT_SET_DL_SRC          /* Ethernet source address. */
	OFPAT_SET_DL_DST          /* Ethernet destination address. */
	OFPAT_SET_NW_SRC          /* IP source address. */
	OFPAT_SET_NW_DST          /* IP destination address. */
	OFPAT_SET_NW_TOS          /* IP ToS (DSCP field, 6 bits). */
	OFPAT_SET_TP_SRC          /* TCP/UDP source port. */
	OFPAT_SET_TP_DST          /* TCP/UDP destination port. */
	OFPAT_ENQUEUE             /* Output to queue. */
)

const (
	OFPFW_IN_PORT      = 1 << 0 /* Switch input port. */
	OFPFW_DL_VLAN      = 1 << 1 /* VLAN id. */
	OFPFW_DL_SRC       = 1 << 2 /* Ethernet source address. */
	OFPFW_DL_DST       = 1 << 3 /* Ethernet destination address. */
	OFPFW_DL_TYPE      = 1 << 4 /* Ethernet frame type. */
	OFPFW_NW_PROTO     = 1 << 5 /* IP protocol. */
	OFPFW_TP_SRC       = 1 << 6 /* TCP/UDP source port. */
	OFPFW_TP_DST       = 1 << 7 /* TCP/UDP destination port. */
	OFPFW_NW_SRC_SHIFT = 8      /* # of wildcarded source address bits. */
	OFPFW_NW_DST_SHIFT = 14     /* # of wildcarded destination address bits. */
	OFPFW_DL_VLAN_PCP  = 1 << 20 /* VLAN priority. */
	OFPFW_NW_TOS       = 1 << 21 /* IP ToS (DSCP field, 6 bits). */
)

const (
	OFPFC_ADD = iota
	OFPFC_MODIFY
	OFPFC_MODIFY_STRICT
	OFPFC_DELETE
	OFPFC_DELETE_STRICT
)

const (
	OFPFF_SEND_FLOW_REM = 1 << 0 /* Send flow removed message when flow expires or is deleted. */
	OFPFF_CHECK_OVERLAP = 1 << 1 /* Check for overlapping entries first. */
	OFPFF_EMERG         = 1 << 2 /* Remark this is for emergency. */
)

const (
	OFPPC_PORT_DOWN = 1 << 0 /* Port is administratively down. */
)

const (
	OFPPS_LINK_DOWN = 1 << 0 /* No physical link present. */
)

const (
	OFPC_FLOW_STATS   = 1 << 0 /* Flow statistics. */
	OFPC_TABLE_STATS  = 1 << 1 /* Table statistics. */
	OFPC_PORT_STATS   = 1 << 2 /* Port statistics. */
	OFPC_STP          = 1 << 3 /* 802.1d spanning tree. */
	OFPC_RESERVED     = 1 << 4 /* Reserved, must be zero. */
	OFPC_IP_REASM     = 1 << 5 /* Can reassemble IP fragments. */
	OFPC_QUEUE_STATS  = 1 << 6 /* Queue statistics. */
	OFPC_ARP_MATCH_IP = 1 << 7 /* Match IP addresses in ARP pkts. */
)

const (
	OFPET_HELLO_FAILED    = iota /* Hello protocol failed. */
	OFPET_BAD_REQUEST            /* Request was not understood. */
	OFPET_BAD_ACTION             /* Error in action description. */
	OFPET_FLOW_MOD_FAILED        /* Problem modifying flow entry. */
	OFPET_PORT_MOD_FAILED        /* Port mod request failed. */
	OFPET_QUEUE_OP_FAILED        /* Queue operation failed. */
)

const (
	OFPHFC_INCOMPATIBLE = iota /* No compatible version. */
	OFPHFC_EPERM               /* Permissions error. */
)
