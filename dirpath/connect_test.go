// SPDX-License-Identifier: GPL-3.0-or-later

package dirpath

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"net/netip"
	"testing"

	"github.com/bassosimone/netstub"
	"github.com/bassosimone/tlsstub"
	"github.com/gotorproject/torcore/netrt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeConn() *netstub.FuncConn {
	return &netstub.FuncConn{
		LocalAddrFunc:  func() net.Addr { return &net.TCPAddr{} },
		RemoteAddrFunc: func() net.Addr { return &net.TCPAddr{} },
		CloseFunc:      func() error { return nil },
	}
}

func fakeTLSEngine(conn netrt.TLSConn) *tlsstub.FuncTLSEngine[netrt.TLSConn] {
	return &tlsstub.FuncTLSEngine[netrt.TLSConn]{
		ClientFunc: func(c net.Conn, config *tls.Config) netrt.TLSConn { return conn },
		NameFunc:   func() string { return "mock" },
		ParrotFunc: func() string { return "" },
	}
}

// DialRelay dials the picked relay's address, then completes a TLS
// handshake over the resulting connection.
func TestDialRelaySuccess(t *testing.T) {
	relay := Relay{Addr: netip.MustParseAddrPort("192.0.2.1:9030")}

	var dialedNetwork, dialedAddress string
	cfg := netrt.NewConfig()
	cfg.Dialer = &netstub.FuncDialer{
		DialContextFunc: func(ctx context.Context, network, address string) (net.Conn, error) {
			dialedNetwork, dialedAddress = network, address
			return fakeConn(), nil
		},
	}

	wantState := tls.ConnectionState{Version: tls.VersionTLS13}
	mockTLSConn := &tlsstub.FuncTLSConn{
		FuncConn: fakeConn(),
		ConnectionStateFunc: func() tls.ConnectionState {
			return wantState
		},
		HandshakeContextFunc: func(ctx context.Context) error {
			return nil
		},
	}
	cfg.TLSEngine = fakeTLSEngine(mockTLSConn)

	conn, err := DialRelay(context.Background(), cfg, netrt.DefaultSLogger(), relay)

	require.NoError(t, err)
	require.NotNil(t, conn)
	assert.Equal(t, wantState, conn.ConnectionState())
	assert.Equal(t, "tcp", dialedNetwork)
	assert.Equal(t, "192.0.2.1:9030", dialedAddress)
}

// DialRelay propagates a dial failure without attempting the TLS
// handshake stage.
func TestDialRelayDialError(t *testing.T) {
	relay := Relay{Addr: netip.MustParseAddrPort("192.0.2.1:9030")}
	wantErr := errors.New("connection refused")

	cfg := netrt.NewConfig()
	cfg.Dialer = &netstub.FuncDialer{
		DialContextFunc: func(ctx context.Context, network, address string) (net.Conn, error) {
			return nil, wantErr
		},
	}
	cfg.TLSEngine = fakeTLSEngine(nil)

	conn, err := DialRelay(context.Background(), cfg, netrt.DefaultSLogger(), relay)

	require.Error(t, err)
	assert.Nil(t, conn)
}

// DialRelay propagates a TLS handshake failure, closing the
// underlying connection.
func TestDialRelayHandshakeError(t *testing.T) {
	relay := Relay{Addr: netip.MustParseAddrPort("192.0.2.1:9030")}
	wantErr := errors.New("handshake failed")

	cfg := netrt.NewConfig()
	cfg.Dialer = &netstub.FuncDialer{
		DialContextFunc: func(ctx context.Context, network, address string) (net.Conn, error) {
			return fakeConn(), nil
		},
	}

	closeCalled := false
	handshakeConn := fakeConn()
	handshakeConn.CloseFunc = func() error {
		closeCalled = true
		return nil
	}
	mockTLSConn := &tlsstub.FuncTLSConn{
		FuncConn: handshakeConn,
		ConnectionStateFunc: func() tls.ConnectionState {
			return tls.ConnectionState{}
		},
		HandshakeContextFunc: func(ctx context.Context) error {
			return wantErr
		},
	}
	cfg.TLSEngine = fakeTLSEngine(mockTLSConn)

	conn, err := DialRelay(context.Background(), cfg, nil, relay)

	require.Error(t, err)
	assert.Nil(t, conn)
	assert.True(t, closeCalled)
}
