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
	"sync"

	"golang.org/x/net/context"
)

var sessionCanceller = &canceller{elems: make(map[uint64]context.CancelFunc)}

// canceller maps a datapath ID to the cancel function of its live session,
// so that a duplicated connection from the same switch can kick the old one.
type canceller struct {
	mu    sync.Mutex
	elems map[uint64]context.CancelFunc
}

func pushCanceller(dpid uint64, cancel context.CancelFunc) {
	sessionCanceller.mu.Lock()
	defer sessionCanceller.mu.Unlock()

	sessionCanceller.elems[dpid] = cancel
}

func popCanceller(dpid uint64) (cancel context.CancelFunc, ok bool) {
	sessionCanceller.mu.Lock()
	defer sessionCanceller.mu.Unlock()

	cancel, ok = sessionCanceller.elems[dpid]
	if !ok {
		return nil, false
	}
	delete(sessionCanceller.elems, dpid)

	return cancel, true
}
