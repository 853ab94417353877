// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: tor-circmgr/path/dirpath.rs (arti)
//

package dirpath

import (
	"context"
	"crypto/tls"

	"github.com/gotorproject/torcore/netrt"
)

// DialRelay opens and TLS-handshakes a connection to relay, the way a
// non-anonymous directory download reaches the relay
// [FallbackPicker.PickPath] chose.
//
// cfg.Dialer opens the TCP connection; cfg.TLSEngine completes the
// handshake over it. TLS transport is out of scope for torcore
// (spec.md §1), so cfg.TLSEngine has no default: the caller must
// inject one, as connect_test.go does with a fake.
func DialRelay(ctx context.Context, cfg *netrt.Config, logger netrt.SLogger, relay Relay) (netrt.TLSConn, error) {
	if logger == nil {
		logger = netrt.DefaultSLogger()
	}

	addr := relay.Addr.String()
	logger.Info("directoryDialStart", "remoteAddr", addr)
	conn, err := cfg.Dialer.DialContext(ctx, "tcp", addr)
	logger.Info("directoryDialDone",
		"remoteAddr", addr,
		"err", err,
		"errClass", cfg.ErrClassifier.Classify(err),
	)
	if err != nil {
		return nil, err
	}

	tlsConfig := &tls.Config{ServerName: relay.Addr.Addr().String()}
	tconn := cfg.TLSEngine.Client(conn, tlsConfig)

	logger.Info("directoryHandshakeStart", "remoteAddr", addr, "tlsEngine", cfg.TLSEngine.Name())
	err = tconn.HandshakeContext(ctx)
	logger.Info("directoryHandshakeDone",
		"remoteAddr", addr,
		"err", err,
		"errClass", cfg.ErrClassifier.Classify(err),
	)
	if err != nil {
		tconn.Close()
		return nil, err
	}
	return tconn, nil
}
