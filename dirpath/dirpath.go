// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: tor-circmgr/path/dirpath.rs (arti)
//

package dirpath

import (
	"errors"
	"math/rand/v2"
	"net/netip"
)

// Relay is the subset of relay-descriptor information a directory
// download needs to know before connecting: where to reach it, and
// whether it is willing to serve as a directory cache.
type Relay struct {
	ID         [20]byte
	Addr       netip.AddrPort
	IsDirCache bool
}

// DirInfo is the two shapes a directory download can be told to pick
// from: a short static list of fallback relays hardcoded into the
// client, or a full network directory to filter down to caches.
//
// This mirrors an enum in the source this package is grounded on; Go
// represents it as a struct with one populated field instead, since
// the source's own code only ever inspects one arm at a time and a
// constructor keeps the two cases from being set simultaneously by
// accident.
type DirInfo struct {
	fallbacks []Relay
	directory []Relay
}

// FromFallbacks builds a DirInfo backed by a fixed fallback-relay
// list.
func FromFallbacks(relays []Relay) DirInfo {
	return DirInfo{fallbacks: relays}
}

// FromDirectory builds a DirInfo backed by relays drawn from a live
// network directory; PickPath will restrict its choice to those
// willing to act as directory caches.
func FromDirectory(relays []Relay) DirInfo {
	return DirInfo{directory: relays}
}

// ErrNoRelays is returned by PickPath when no relay in the given
// DirInfo can serve the download.
var ErrNoRelays = errors.New("dirpath: no relays found for use as directory cache")

// FallbackPicker is a path builder for non-anonymous directory
// downloads: a single hop straight to whichever relay it picks.
//
// TODO: this will need to learn about directory guards, and it
// currently weighs every eligible relay equally rather than by
// measured bandwidth.
type FallbackPicker struct{}

// NewFallbackPicker builds a FallbackPicker.
func NewFallbackPicker() FallbackPicker {
	return FallbackPicker{}
}

// PickPath chooses one relay to connect to directly. Given fallback
// info it picks uniformly among the fallback list; given directory
// info it picks uniformly among relays with IsDirCache set. It
// returns ErrNoRelays if the eligible set is empty.
func (FallbackPicker) PickPath(info DirInfo) (Relay, error) {
	if info.fallbacks != nil {
		if len(info.fallbacks) == 0 {
			return Relay{}, ErrNoRelays
		}
		return info.fallbacks[rand.N(len(info.fallbacks))], nil
	}

	var caches []Relay
	for _, r := range info.directory {
		if r.IsDirCache {
			caches = append(caches, r)
		}
	}
	if len(caches) == 0 {
		return Relay{}, ErrNoRelays
	}
	return caches[rand.N(len(caches))], nil
}
