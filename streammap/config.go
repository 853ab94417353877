// SPDX-License-Identifier: GPL-3.0-or-later

package streammap

import "github.com/gotorproject/torcore/netrt"

// DefaultReceiveWindowInit is the receive-window size a fresh
// [HalfStream] is given at terminate time when no explicit
// [Config.ReceiveWindowInit] override is supplied.
const DefaultReceiveWindowInit = 500

// DefaultMaxStreamIDProbes is the number of candidate identifiers
// [StreamMap.AddEnt] probes before giving up with [IdRangeFullError],
// when no explicit [Config.MaxStreamIDProbes] override is supplied.
// This is one probe more than the 65535 non-zero identifiers in the
// 16-bit id space, and is the bound an established client's visible
// behavior depends on.
const DefaultMaxStreamIDProbes = 65536

// Config carries the tunable parameters a [StreamMap] needs besides
// its per-stream arguments.
type Config struct {
	// ReceiveWindowInit is the receive-window credit a freshly built
	// half-stream starts with, before subtracting the terminated
	// stream's dropped-message count. Zero means
	// [DefaultReceiveWindowInit].
	ReceiveWindowInit int

	// MaxStreamIDProbes bounds how many candidate identifiers
	// [StreamMap.AddEnt] will probe before failing with
	// [IdRangeFullError]. Zero means [DefaultMaxStreamIDProbes]. Kept
	// as a knob rather than narrowed, per the DESIGN NOTES open
	// question about whether the hard-coded bound is the desired
	// upper limit: wire compatibility requires the default to stay
	// 65536, but a caller willing to diverge from that can override
	// it.
	MaxStreamIDProbes int

	// Logger receives stream lifecycle events (open, end-received,
	// end-sent, terminated) at Info level. Nil means [netrt.DefaultSLogger].
	Logger netrt.SLogger
}

func (c Config) receiveWindowInit() int {
	if c.ReceiveWindowInit == 0 {
		return DefaultReceiveWindowInit
	}
	return c.ReceiveWindowInit
}

func (c Config) maxStreamIDProbes() int {
	if c.MaxStreamIDProbes == 0 {
		return DefaultMaxStreamIDProbes
	}
	return c.MaxStreamIDProbes
}

func (c Config) logger() netrt.SLogger {
	if c.Logger == nil {
		return netrt.DefaultSLogger()
	}
	return c.Logger
}
