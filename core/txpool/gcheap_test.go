// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGarbageCollectorOrdering(t *testing.T) {
	gc := newGarbageCollector()
	require.True(t, gc.isEmpty())

	gc.insertOrUpdate(addr(1), 0, 100)
	gc.insertOrUpdate(addr(2), 3, 50)
	gc.insertOrUpdate(addr(3), 3, 10)
	gc.insertOrUpdate(addr(4), 1, 5)

	require.Equal(t, 4, gc.size())

	// Highest stale_count wins; ties broken by older (smaller) timestamp.
	top, ok := gc.pop()
	require.True(t, ok)
	require.Equal(t, addr(3), top.sender)

	top, ok = gc.pop()
	require.True(t, ok)
	require.Equal(t, addr(2), top.sender)

	top, ok = gc.pop()
	require.True(t, ok)
	require.Equal(t, addr(4), top.sender)

	top, ok = gc.pop()
	require.True(t, ok)
	require.Equal(t, addr(1), top.sender)

	require.True(t, gc.isEmpty())
}

func TestGarbageCollectorUpsertAndRemove(t *testing.T) {
	gc := newGarbageCollector()
	gc.insertOrUpdate(addr(1), 0, 1)
	gc.insertOrUpdate(addr(1), 5, 2)

	ts, ok := gc.getTimestamp(addr(1))
	require.True(t, ok)
	require.Equal(t, uint64(2), ts)
	require.Equal(t, 1, gc.size())

	peek, ok := gc.peek()
	require.True(t, ok)
	require.Equal(t, 5, peek.staleCount)

	gc.remove(addr(1))
	require.True(t, gc.isEmpty())
	_, ok = gc.getTimestamp(addr(1))
	require.False(t, ok)
}

func TestGarbageCollectorClear(t *testing.T) {
	gc := newGarbageCollector()
	gc.insertOrUpdate(addr(1), 0, 1)
	gc.insertOrUpdate(addr(2), 0, 2)
	gc.clear()
	require.True(t, gc.isEmpty())
	require.Equal(t, 0, gc.size())
}
