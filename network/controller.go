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
	"net"
	"time"

	"github.com/rowansdn/rowan/openflow"

	"github.com/op/go-logging"
	"github.com/pkg/errors"
	"golang.org/x/net/context"
)

var (
	logger = logging.MustGetLogger("network")
)

// EventListener receives switch events from the controller. Callbacks run on
// the session goroutine of the device that raised them; a returned error is
// logged and the session keeps running.
type EventListener interface {
	OnDeviceUp(*Device) error
	OnDeviceDown(*Device) error
	OnPacketIn(*Device, *openflow.PacketIn) error
	OnPortStatus(*Device, *openflow.PortStatus) error
	OnFlowRemoved(*Device, *openflow.FlowRemoved) error
}

type Controller struct {
	listener EventListener
}

func NewController(listener EventListener) *Controller {
	if listener == nil {
		panic("Listener is nil")
	}

	return &Controller{
		listener: listener,
	}
}

// AddConnection runs a new session on an already-accepted switch connection.
// It returns immediately; the session lives on its own goroutine until the
// connection dies.
func (r *Controller) AddConnection(c net.Conn) {
	session := newSession(c, r.listener)
	go session.Run()
}

// Listen accepts switch connections on the given TCP port until ctx is
// cancelled. Cancellation stops accepting without severing sessions that are
// already running. Failing to bind the port is the only fatal error.
func (r *Controller) Listen(ctx context.Context, port uint16) error {
	type KeepAliver interface {
		SetKeepAlive(keepalive bool) error
		SetKeepAlivePeriod(d time.Duration) error
	}

	listener, err := net.Listen("tcp", fmt.Sprintf(":%v", port))
	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("listening on %v port", port))
	}
	defer listener.Close()

	f := func(c chan<- net.Conn) {
		for {
			conn, err := listener.Accept()

			// Check shutdown signal
			select {
			case <-ctx.Done():
				if err == nil {
					// Accepted, but nobody will ever fetch it.
					conn.Close()
				}
				logger.Info("socket listener is finished by the shutdown signal")
				return
			default:
			}

			if err != nil {
				logger.Errorf("failed to accept a new connection: %v", err)
				continue
			}
			c <- conn
			logger.Infof("new device is connected from %v", conn.RemoteAddr())
		}
	}
	backlog := make(chan net.Conn, 32)
	go f(backlog)

	// Infinite loop
	for {
		select {
		case conn := <-backlog:
			logger.Debug("fetching a new connection from the backlog..")
			if v, ok := conn.(KeepAliver); ok {
				logger.Debug("trying to enable socket keepalive..")
				if err := v.SetKeepAlive(true); err == nil {
					logger.Debug("setting socket keepalive period...")
					// Makes a broken connection will be disconnected within 45 seconds.
					// http://felixge.de/2014/08/26/tcp-keepalive-with-golang.html
					v.SetKeepAlivePeriod(time.Duration(5) * time.Second)
				} else {
					logger.Errorf("failed to enable socket keepalive: %v", err)
				}
			}
			r.AddConnection(conn)
		case <-ctx.Done():
			// Stop accepting, then reap connections left in the backlog.
			listener.Close()
			for {
				select {
				case conn := <-backlog:
					conn.Close()
				default:
					return nil
				}
			}
		}
	}
}
