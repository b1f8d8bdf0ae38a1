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
	"fmt"
	"net"
	"strings"

	lru "github.com/hashicorp/golang-lru"
)

// macTable maps (device, MAC address) to the switch port the address was
// last seen behind. Old locations fall out by LRU eviction; a station that
// moves simply overwrites its entry.
type macTable struct {
	cache *lru.Cache
}

func newMACTable() *macTable {
	c, err := lru.New(8192)
	if err != nil {
		panic(fmt.Sprintf("LRU MAC table: %v", err))
	}

	return &macTable{
		cache: c,
	}
}

func (r *macTable) key(deviceID string, mac net.HardwareAddr) string {
	return fmt.Sprintf("%v/%v", deviceID, mac)
}

func (r *macTable) add(deviceID string, mac net.HardwareAddr, port uint16) {
	// Update if the key already exists.
	r.cache.Add(r.key(deviceID, mac), port)
}

func (r *macTable) get(deviceID string, mac net.HardwareAddr) (port uint16, ok bool) {
	v, ok := r.cache.Get(r.key(deviceID, mac))
	if !ok {
		return 0, false
	}

	return v.(uint16), true
}

func (r *macTable) remove(deviceID string, mac net.HardwareAddr) {
	r.cache.Remove(r.key(deviceID, mac))
}

func (r *macTable) removeDevice(deviceID string) {
	for _, k := range r.cache.Keys() {
		if strings.HasPrefix(k.(string), deviceID+"/") {
			r.cache.Remove(k)
		}
	}
}

func (r *macTable) removePort(deviceID string, port uint16) {
	for _, k := range r.cache.Keys() {
		if !strings.HasPrefix(k.(string), deviceID+"/") {
			continue
		}
		if v, ok := r.cache.Peek(k); ok && v.(uint16) == port {
			r.cache.Remove(k)
		}
	}
}
