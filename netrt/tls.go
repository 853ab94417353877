// SPDX-License-Identifier: GPL-3.0-or-later

package netrt

import (
	"context"
	"crypto/tls"
	"net"
)

// TLSEngine builds a [TLSConn] for a client-side TLS handshake.
//
// TLS transport internals are out of scope for torcore (spec.md §1,
// §6): this interface is the named boundary, and this package
// supplies no concrete implementation of it. A host embedding torcore
// injects one through [Config.TLSEngine]; [dirpath.DialRelay] is the
// one caller within this module that needs one, and its tests inject
// a fake.
type TLSEngine interface {
	// Client builds a new client [TLSConn].
	Client(conn net.Conn, config *tls.Config) TLSConn

	// Name returns the engine name.
	Name() string

	// Parrot returns the configured parrot or an empty string.
	Parrot() string
}

// TLSConn abstracts over [*tls.Conn].
//
// By using an abstraction we allow for alternative TLS implementations.
type TLSConn interface {
	// ConnectionState returns the connection state.
	ConnectionState() tls.ConnectionState

	// HandshakeContext performs the handshake unless interrupted by the context.
	HandshakeContext(ctx context.Context) error

	// Embedding Conn means we can use this type as a [net.Conn].
	net.Conn
}
