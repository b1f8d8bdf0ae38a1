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
	"bufio"
	"encoding/binary"
	"io"
	"time"
)

// Stream is a buffered I/O channel that frames OpenFlow messages.
type Stream struct {
	channel      io.ReadWriteCloser
	reader       *bufio.Reader
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// Deadline is implemented by channels (net.Conn among them) that support I/O
// deadlines. Timeouts are silently skipped on channels that do not.
type Deadline interface {
	SetReadDeadline(time.Time) error
	SetWriteDeadline(time.Time) error
}

// NewStream returns a new buffered stream over an already-connected channel.
func NewStream(channel io.ReadWriteCloser) *Stream {
	return &Stream{
		channel: channel,
		reader:  bufio.NewReaderSize(channel, 0xFFFF),
	}
}

func (r *Stream) SetReadTimeout(t time.Duration) {
	r.readTimeout = t
}

func (r *Stream) SetWriteTimeout(t time.Duration) {
	r.writeTimeout = t
}

// ReadPacket reads exactly one framed message and returns its raw bytes,
// whose length is the length the frame header declares. A frame that
// declares a length shorter than its own header leaves the next frame
// boundary unknowable; that is reported as ErrProtocol and the caller should
// give up on the stream.
func (r *Stream) ReadPacket() ([]byte, error) {
	if r.readTimeout > 0 {
		if d, ok := r.channel.(Deadline); ok {
			d.SetReadDeadline(time.Now().Add(r.readTimeout))
			defer d.SetReadDeadline(time.Time{})
		}
	}

	header, err := r.reader.Peek(8)
	if err != nil {
		return nil, err
	}
	length := int(binary.BigEndian.Uint16(header[2:4]))
	if length < 8 {
		return nil, ErrProtocol
	}

	packet := make([]byte, length)
	if _, err := io.ReadFull(r.reader, packet); err != nil {
		return nil, err
	}

	return packet, nil
}

func (r *Stream) Write(p []byte) (n int, err error) {
	if r.writeTimeout > 0 {
		if d, ok := r.channel.(Deadline); ok {
			d.SetWriteDeadline(time.Now().Add(r.writeTimeout))
			defer d.SetWriteDeadline(time.Time{})
		}
	}

	return r.channel.Write(p)
}

func (r *Stream) Close() error {
	return r.channel.Close()
}
