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
	"io"
	"net"
	"sync/atomic"
	"time"

	"github.com/rowansdn/rowan/openflow"

	"github.com/pkg/errors"
	"golang.org/x/net/context"
)

var (
	// ErrHandshakeFailed means the peer sent something other than HELLO as
	// its first message.
	ErrHandshakeFailed = errors.New("openflow handshake failed")
	// ErrHandshakeTimeout means the peer did not complete the handshake in
	// time.
	ErrHandshakeTimeout = errors.New("openflow handshake timeout")
	// ErrStreamCorrupted means the frame boundary of the stream cannot be
	// trusted anymore.
	ErrStreamCorrupted = errors.New("corrupted openflow stream")
	// ErrSessionClosed is returned by sends on an already closed session.
	ErrSessionClosed = errors.New("already closed session")
)

const (
	handshakeTimeout = 10 * time.Second
	writeTimeout     = 30 * time.Second
)

type session struct {
	stream   *openflow.Stream
	device   *Device
	listener EventListener
	remote   net.Addr
	xid      uint32 // atomic
}

func newSession(conn net.Conn, listener EventListener) *session {
	if conn == nil {
		panic("Conn is nil")
	}
	if listener == nil {
		panic("Listener is nil")
	}

	stream := openflow.NewStream(conn)
	stream.SetWriteTimeout(writeTimeout)

	v := &session{
		stream:   stream,
		listener: listener,
		remote:   conn.RemoteAddr(),
	}
	v.device = newDevice(v)

	return v
}

func (r *session) nextTransactionID() uint32 {
	return atomic.AddUint32(&r.xid, 1)
}

// write puts msg on the wire with whatever transaction ID it already has.
// Callers serialize through the device.
func (r *session) write(msg openflow.Outgoing) error {
	packet, err := msg.MarshalBinary()
	if err != nil {
		return err
	}
	if _, err := r.stream.Write(packet); err != nil {
		return errors.Wrap(err, "writing an outgoing message")
	}

	return nil
}

// send assigns a fresh transaction ID and puts msg on the wire. Only the
// handshake uses this directly; everything after goes through the device.
func (r *session) send(msg openflow.Outgoing) error {
	msg.SetTransactionID(r.nextTransactionID())
	return r.write(msg)
}

func handshakeError(err error) error {
	if v, ok := errors.Cause(err).(net.Error); ok && v.Timeout() {
		return ErrHandshakeTimeout
	}
	return err
}

// handshake negotiates the protocol version and queries the switch identity:
// HELLO out, HELLO in, FEATURES_REQUEST out, FEATURES_REPLY in. The reply
// must answer our request's transaction ID; replies with a foreign ID are
// ignored until the deadline expires.
func (r *session) handshake() error {
	if err := r.send(openflow.NewHello()); err != nil {
		return err
	}

	deadline := time.Now().Add(handshakeTimeout)
	r.stream.SetReadTimeout(handshakeTimeout)
	defer r.stream.SetReadTimeout(0)

	packet, err := r.stream.ReadPacket()
	if err != nil {
		return handshakeError(err)
	}
	msg, err := openflow.Parse(packet)
	if err != nil {
		return errors.Wrap(ErrHandshakeFailed, err.Error())
	}
	if _, ok := msg.(*openflow.Hello); !ok {
		return errors.Wrap(ErrHandshakeFailed, fmt.Sprintf("expected HELLO, got %T", msg))
	}
	logger.Debugf("HELLO is received from %v", r.remote)

	request := openflow.NewFeaturesRequest()
	if err := r.send(request); err != nil {
		return err
	}

	for {
		remain := deadline.Sub(time.Now())
		if remain <= 0 {
			return ErrHandshakeTimeout
		}
		r.stream.SetReadTimeout(remain)

		packet, err := r.stream.ReadPacket()
		if err != nil {
			return handshakeError(err)
		}
		msg, err := openflow.Parse(packet)
		if err != nil {
			logger.Errorf("discarding a malformed message from %v: %v", r.remote, err)
			continue
		}

		switch v := msg.(type) {
		case *openflow.FeaturesReply:
			if v.TransactionID() != request.TransactionID() {
				logger.Debugf("ignoring FEATURES_REPLY whose xid is not ours (%v != %v)", v.TransactionID(), request.TransactionID())
				continue
			}
			r.device.setFeatures(v)
			return nil
		case *openflow.EchoRequest:
			if err := r.write(openflow.NewEchoReply(v)); err != nil {
				return err
			}
		default:
			logger.Debugf("ignoring a message received during the handshake: %T", msg)
		}
	}
}

// Run owns the connection until it dies. The session's lifetime is its own:
// it ends when the connection does, or when a duplicated datapath ID kicks it.
// Server shutdown stops accepting new connections but does not reach in here.
func (r *session) Run() {
	sessionCtx, canceller := context.WithCancel(context.Background())
	defer canceller()

	go func() {
		<-sessionCtx.Done()
		r.device.Close()
	}()

	if err := r.handshake(); err != nil {
		logger.Errorf("failed to handshake with %v: %v", r.remote, err)
		r.device.Close()
		return
	}
	logger.Infof("completed the handshake with %v (DPID=%v)", r.remote, r.device.ID())

	dpid := r.device.DPID()
	if cancel, ok := popCanceller(dpid); ok {
		// Disconnect the previous session. Sometimes a switch opens a new
		// fresh connection even if it already has an established one, and
		// does not work properly until the old one is gone.
		cancel()
		logger.Errorf("duplicated device DPID=%v, disconnecting both sessions..", dpid)
		r.device.Close()
		return
	}
	pushCanceller(dpid, canceller)

	if err := r.listener.OnDeviceUp(r.device); err != nil {
		logger.Errorf("OnDeviceUp: %v", err)
	}

	if err := r.run(); err != nil {
		logger.Errorf("closing the session with %v: %v", r.remote, err)
	}
	logger.Infof("disconnected device (DPID=%v)", r.device.ID())

	r.device.Close()
	popCanceller(dpid)
	if err := r.listener.OnDeviceDown(r.device); err != nil {
		logger.Errorf("OnDeviceDown: %v", err)
	}
}

// run is the receive loop. Messages are dispatched one at a time in arrival
// order. A message that fails to decode is dropped and the loop goes on; a
// frame whose boundary cannot be determined kills the stream.
func (r *session) run() error {
	for {
		packet, err := r.stream.ReadPacket()
		if err != nil {
			if r.device.IsClosed() || errors.Cause(err) == io.EOF {
				// Clean termination.
				return nil
			}
			if errors.Cause(err) == openflow.ErrProtocol {
				return ErrStreamCorrupted
			}
			return errors.Wrap(err, "reading the next message")
		}

		msg, err := openflow.Parse(packet)
		if err != nil {
			logger.Errorf("discarding a malformed message from %v: %v", r.device.ID(), err)
			continue
		}
		if err := r.dispatch(msg); err != nil {
			logger.Errorf("failed to handle an incoming message from %v: %v", r.device.ID(), err)
		}
	}
}

func (r *session) dispatch(msg openflow.Incoming) error {
	switch v := msg.(type) {
	case *openflow.EchoRequest:
		return r.handleEchoRequest(v)
	case *openflow.EchoReply:
		logger.Debugf("ECHO_REPLY is received (xid=%v)", v.TransactionID())
		return nil
	case *openflow.Error:
		logger.Errorf("ERROR from %v: %v", r.device.ID(), v)
		return nil
	case *openflow.FeaturesReply:
		// A response to a probe we sent after the handshake. Refresh the
		// port list.
		r.device.setFeatures(v)
		return nil
	case *openflow.PacketIn:
		return r.listener.OnPacketIn(r.device, v)
	case *openflow.PortStatus:
		r.device.updatePort(v.Port)
		return r.listener.OnPortStatus(r.device, v)
	case *openflow.FlowRemoved:
		return r.listener.OnFlowRemoved(r.device, v)
	case *openflow.Hello:
		// Ignore duplicated HELLO messages
		return nil
	case *openflow.Unknown:
		logger.Debugf("ignoring an unsupported message (type=%v)", v.Type)
		return nil
	default:
		return nil
	}
}

// handleEchoRequest replies with the request's own transaction ID and
// payload. The reply goes through the device's serialized write path, so it
// reaches the wire before any message queued after the request arrived.
func (r *session) handleEchoRequest(req *openflow.EchoRequest) error {
	logger.Debugf("ECHO_REQUEST is received (xid=%v)", req.TransactionID())
	return r.device.writeMessage(openflow.NewEchoReply(req))
}
