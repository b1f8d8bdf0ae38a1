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

package protocol

import (
	"encoding/binary"
	"errors"
)

// ErrTruncated is returned when a packet does not carry enough bytes for the
// header or body being decoded. It is always recoverable: the caller discards
// the malformed packet and carries on.
var ErrTruncated = errors.New("truncated packet")

// reader is a bounds-checked cursor over a packet buffer. Every read advances
// the offset by exactly the number of bytes consumed and fails with
// ErrTruncated on underrun.
type reader struct {
	buf []byte
	off int
}

func newReader(buf []byte) *reader {
	return &reader{buf: buf}
}

func (r *reader) remaining() int {
	return len(r.buf) - r.off
}

// bytes returns the next n bytes without copying them. Callers that retain
// the result beyond the lifetime of the packet buffer must copy it.
func (r *reader) bytes(n int) ([]byte, error) {
	if r.remaining() < n {
		return nil, ErrTruncated
	}
	v := r.buf[r.off : r.off+n]
	r.off += n

	return v, nil
}

// copyBytes returns an owned copy of the next n bytes.
func (r *reader) copyBytes(n int) ([]byte, error) {
	v, err := r.bytes(n)
	if err != nil {
		return nil, err
	}
	p := make([]byte, n)
	copy(p, v)

	return p, nil
}

func (r *reader) uint8() (uint8, error) {
	v, err := r.bytes(1)
	if err != nil {
		return 0, err
	}

	return v[0], nil
}

func (r *reader) uint16() (uint16, error) {
	v, err := r.bytes(2)
	if err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint16(v), nil
}

func (r *reader) uint32() (uint32, error) {
	v, err := r.bytes(4)
	if err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint32(v), nil
}

// skip advances the offset by up to n bytes. The skip is clamped at the end
// of the buffer instead of failing so that fields a decoder deliberately
// ignores never make a short packet an error.
func (r *reader) skip(n int) {
	if r.remaining() < n {
		n = r.remaining()
	}
	r.off += n
}
