// SPDX-License-Identifier: GPL-3.0-or-later

package dirpath

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkRelay(last byte, isDirCache bool) Relay {
	var id [20]byte
	id[19] = last
	return Relay{
		ID:         id,
		Addr:       netip.MustParseAddrPort("198.51.100.1:9001"),
		IsDirCache: isDirCache,
	}
}

func TestPickPathFromFallbacksPicksAMember(t *testing.T) {
	relays := []Relay{mkRelay(1, false), mkRelay(2, false), mkRelay(3, false)}
	info := FromFallbacks(relays)
	p := NewFallbackPicker()

	for i := 0; i < 20; i++ {
		r, err := p.PickPath(info)
		require.NoError(t, err)
		assert.Contains(t, relays, r)
	}
}

func TestPickPathFromFallbacksEmptyIsError(t *testing.T) {
	p := NewFallbackPicker()
	_, err := p.PickPath(FromFallbacks(nil))
	assert.ErrorIs(t, err, ErrNoRelays)
}

func TestPickPathFromDirectoryFiltersToDirCaches(t *testing.T) {
	cache := mkRelay(1, true)
	relays := []Relay{mkRelay(2, false), cache, mkRelay(3, false)}
	p := NewFallbackPicker()

	for i := 0; i < 20; i++ {
		r, err := p.PickPath(FromDirectory(relays))
		require.NoError(t, err)
		assert.Equal(t, cache, r)
	}
}

func TestPickPathFromDirectoryNoCachesIsError(t *testing.T) {
	relays := []Relay{mkRelay(1, false), mkRelay(2, false)}
	p := NewFallbackPicker()
	_, err := p.PickPath(FromDirectory(relays))
	assert.ErrorIs(t, err, ErrNoRelays)
}
