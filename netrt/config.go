// SPDX-License-Identifier: GPL-3.0-or-later

package netrt

import (
	"context"
	"net"
	"time"
)

// Dialer abstracts the [*net.Dialer] behavior.
//
// By making dial consumers depend on an abstract implementation we
// allow for unit testing and for using alternative dialers.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Config holds common configuration for netrt operations.
//
// Pass this to constructor functions to pre-wire dependencies.
// All fields except TLSEngine have sensible defaults set by [NewConfig].
type Config struct {
	// Dialer is the [Dialer] used to open TCP connections.
	//
	// Set by [NewConfig] to [*net.Dialer].
	Dialer Dialer

	// ErrClassifier classifies errors for structured logging.
	//
	// Set by [NewConfig] to [DefaultErrClassifier].
	ErrClassifier ErrClassifier

	// TimeNow returns the current time.
	//
	// Set by [NewConfig] to [time.Now].
	TimeNow func() time.Time

	// TLSEngine is the [TLSEngine] used to perform TLS handshakes.
	//
	// TLS transport is out of scope for torcore (spec.md §1); unlike
	// Dialer, [NewConfig] leaves this nil. A caller that needs a
	// [dirpath.DialRelay] connection must supply its own [TLSEngine].
	TLSEngine TLSEngine
}

// NewConfig creates a [*Config] with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Dialer:        &net.Dialer{},
		ErrClassifier: DefaultErrClassifier,
		TimeNow:       time.Now,
	}
}
