// SPDX-License-Identifier: GPL-3.0-or-later

package timeoutrack

import (
	"context"
	"testing"
	"time"

	"github.com/gotorproject/torcore/netrt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstantEarliestOfMany(t *testing.T) {
	base := time.Now()
	tr := NewInstant(base)

	assert.True(t, tr.Before(base.Add(5*time.Second)))
	assert.True(t, tr.Before(base.Add(2*time.Second)))
	assert.True(t, tr.Before(base.Add(8*time.Second)))

	d, ok := tr.Earliest()
	require.True(t, ok)
	assert.Equal(t, 2*time.Second, d)
}

func TestInstantNoComparisons(t *testing.T) {
	tr := NewInstant(time.Now())
	_, ok := tr.Earliest()
	assert.False(t, ok)
}

func TestInstantClampsPastDeadlines(t *testing.T) {
	base := time.Now()
	tr := NewInstant(base)
	assert.False(t, tr.Before(base.Add(-time.Hour)))
	d, ok := tr.Earliest()
	require.True(t, ok)
	assert.Equal(t, time.Duration(0), d)
}

func TestInstantCheckedSubSharesEarliest(t *testing.T) {
	base := time.Now()
	tr := NewInstant(base)
	offset := tr.CheckedSub(3 * time.Second)

	// "now - 3s < base+1s" <=> "now < base+4s"
	assert.True(t, offset.Before(base.Add(1*time.Second)))

	d, ok := tr.Earliest()
	require.True(t, ok)
	assert.Equal(t, 4*time.Second, d)
}

func TestWallEarliestOfMany(t *testing.T) {
	base := time.Now()
	w := NewWall(base)

	assert.True(t, w.Before(base.Add(5*time.Second)))
	assert.True(t, w.Before(base.Add(1*time.Second)))

	d, ok := w.Earliest()
	require.True(t, ok)
	assert.WithinDuration(t, base.Add(1*time.Second), d, time.Millisecond)
}

func TestInstantWaitForEarliest(t *testing.T) {
	base := time.Now()
	tr := NewInstant(base)
	tr.Update(base.Add(10 * time.Millisecond))

	sp := netrt.NewSleepProvider()
	start := time.Now()
	require.NoError(t, tr.WaitForEarliest(context.Background(), sp))
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}

func TestInstantWaitForEarliestNoComparisons(t *testing.T) {
	tr := NewInstant(time.Now())
	sp := netrt.NewSleepProvider()
	start := time.Now()
	require.NoError(t, tr.WaitForEarliest(context.Background(), sp))
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestCombinedWaitForEarliestPicksFirstToFire(t *testing.T) {
	base := time.Now()
	c := NewCombined(base, base)
	c.Mono.Update(base.Add(3 * time.Second))
	c.Wall.Update(base.Add(10 * time.Millisecond))

	sp := netrt.NewSleepProvider()
	start := time.Now()
	require.NoError(t, c.WaitForEarliest(context.Background(), sp))
	elapsed := time.Since(start)
	assert.GreaterOrEqual(t, elapsed, 10*time.Millisecond)
	assert.Less(t, elapsed, time.Second)
}

func TestCombinedWaitForEarliestNoComparisons(t *testing.T) {
	base := time.Now()
	c := NewCombined(base, base)
	sp := netrt.NewSleepProvider()
	start := time.Now()
	require.NoError(t, c.WaitForEarliest(context.Background(), sp))
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}
