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

// Hello opens version negotiation. It carries no body beyond the header.
type Hello struct {
	Header
}

func NewHello() *Hello {
	return &Hello{
		Header: Header{Version: Version, Type: OFPT_HELLO},
	}
}

func (r *Hello) MarshalBinary() ([]byte, error) {
	return r.Header.marshalPayload(nil)
}

func (r *Hello) UnmarshalBinary(data []byte) error {
	// A HELLO from a newer peer may carry elements we don't speak; accept
	// and ignore them.
	return r.Header.UnmarshalBinary(data)
}

// FeaturesRequest asks the switch for its datapath ID and port list. It
// carries no body beyond the header.
type FeaturesRequest struct {
	Header
}

func NewFeaturesRequest() *FeaturesRequest {
	return &FeaturesRequest{
		Header: Header{Version: Version, Type: OFPT_FEATURES_REQUEST},
	}
}

func (r *FeaturesRequest) MarshalBinary() ([]byte, error) {
	return r.Header.marshalPayload(nil)
}

func (r *FeaturesRequest) UnmarshalBinary(data []byte) error {
	_, err := r.Header.unmarshalPayload(data)
	return err
}
