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
	"time"

	"github.com/rowansdn/rowan/openflow"

	lru "github.com/hashicorp/golang-lru"
)

// flowCache remembers recently installed flow entries so that a rule which
// is still being installed on the switch is not sent again.
type flowCache struct {
	cache      *lru.Cache
	expiration time.Duration
}

func newFlowCache(expiration time.Duration) *flowCache {
	c, err := lru.New(8192)
	if err != nil {
		panic(fmt.Sprintf("failed to init a LRU flow cache: %v", err))
	}

	return &flowCache{
		cache:      c,
		expiration: expiration,
	}
}

func (r *flowCache) key(entry *openflow.FlowEntry) (string, error) {
	match, err := entry.Match.MarshalBinary()
	if err != nil {
		return "", err
	}

	actions := make([]byte, 0)
	for _, a := range entry.Actions {
		v, err := a.MarshalBinary()
		if err != nil {
			return "", err
		}
		actions = append(actions, v...)
	}

	return fmt.Sprintf("%v/%v/%v", match, entry.Priority, actions), nil
}

func (r *flowCache) Add(entry *openflow.FlowEntry) error {
	key, err := r.key(entry)
	if err != nil {
		return err
	}

	t := time.Now()
	// Update if the key already exists.
	r.cache.Add(key, t)
	logger.Debugf("added a new flow cache: key=%v, timestamp=%v", key, t)

	return nil
}

func (r *flowCache) InProgress(entry *openflow.FlowEntry) (ok bool, err error) {
	key, err := r.key(entry)
	if err != nil {
		return false, err
	}

	v, ok := r.cache.Get(key)
	if !ok {
		return false, nil
	}
	timestamp := v.(time.Time)

	// Timeout?
	if time.Since(timestamp) > r.expiration {
		r.cache.Remove(key)
		logger.Debugf("removed the timed-out flow cache: key=%v", key)
		return false, nil
	}

	return true, nil
}

func (r *flowCache) RemoveAll() {
	r.cache.Purge()
	logger.Debug("removed all the flow caches")
}
