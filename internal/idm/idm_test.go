package idm

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	i := New()
	assert.NotNil(t, i.inUse, "inUse is not initialized")
	assert.Equalf(t, 1, i.Next(), "unexpected next: got %d, want 1", i.Next())
	assert.Empty(t, i.Reusable())
}

func TestAllocate(t *testing.T) {
	i := New()

	assert.Equal(t, 1, i.Peek())
	o := i.Allocate()
	assert.Equalf(t, 1, o, "i.Allocate() = %v, want 1", o)

	o = i.Allocate()
	assert.Equalf(t, 2, o, "i.Allocate() = %v, want 2", o)

	o = i.Allocate()
	assert.Equalf(t, 3, o, "i.Allocate() = %v, want 3", o)

	require.NoError(t, i.Release(2))
	require.NoError(t, i.Release(1))
	assert.Equal(t, []int{1, 2}, i.Reusable())

	assert.Equal(t, 1, i.Peek(), "peek must not consume")
	assert.Equal(t, 1, i.Peek())

	o = i.Allocate()
	assert.Equalf(t, 1, o, "i.Allocate() = %v, want 1", o)
	o = i.Allocate()
	assert.Equalf(t, 2, o, "i.Allocate() = %v, want 2", o)
	o = i.Allocate()
	assert.Equalf(t, 4, o, "i.Allocate() = %v, want 4", o)
}

func TestRelease(t *testing.T) {
	i := New()
	o := i.Allocate()

	err := i.Release(o + 1)
	require.Error(t, err, "i.Release(...): releasing an unallocated id should fail")
	assert.True(t, IsErrNotAllocated(err))

	require.NoError(t, i.Release(o))
	err = i.Release(o)
	require.Error(t, err, "i.Release(...): double release should fail")
	assert.Equal(t, []int{o}, i.Reusable())
}

func TestUninitialized(t *testing.T) {
	i := &IDM{}

	assert.Equal(t, 1, i.Peek())
	assert.Equal(t, 1, i.Allocate())
	assert.NoError(t, i.Release(1))
	assert.Equal(t, 1, i.Allocate())
}

func TestRebuildReusePool(t *testing.T) {
	i := New()
	for _, id := range []int{1, 3, 7} {
		i.MarkPreexisting(id)
	}
	assert.Equal(t, 8, i.Next())

	i.RebuildReusePool()
	assert.Equal(t, 8, i.Next())
	assert.Equal(t, []int{2, 4, 5, 6}, i.Reusable())

	// no new preexisting entries: nothing changes
	o := i.Allocate()
	assert.Equal(t, 2, o)
	i.RebuildReusePool()
	assert.Equal(t, []int{4, 5, 6}, i.Reusable())

	for _, id := range []int{1, 3, 7} {
		assert.Truef(t, i.InUse(id), "preexisting id %d must stay in use", id)
	}
	for n := 0; n < 3; n++ {
		o := i.Allocate()
		assert.NotContains(t, []int{1, 3, 7}, o)
	}
	assert.Equal(t, 8, i.Allocate())
}

func TestMarkPreexistingRemovesReusable(t *testing.T) {
	i := New()
	for n := 0; n < 4; n++ {
		i.Allocate()
	}
	require.NoError(t, i.Release(2))
	require.NoError(t, i.Release(3))

	i.MarkPreexisting(2)
	assert.Equal(t, []int{3}, i.Reusable())
	assert.Equal(t, 3, i.Allocate())
	assert.Equal(t, 5, i.Allocate())
}

func TestReset(t *testing.T) {
	i := New()
	i.MarkPreexisting(5)
	i.Allocate()
	i.Reset()

	assert.Equal(t, 1, i.Next())
	assert.Empty(t, i.Reusable())
	assert.False(t, i.InUse(5))

	// rebuild after reset without preexisting ids is a no-op
	i.RebuildReusePool()
	assert.Empty(t, i.Reusable())
}

func TestAllocateNoDuplicates(t *testing.T) {
	i := New()
	r := rand.New(rand.NewSource(1))
	outstanding := make(map[int]struct{})

	for n := 0; n < 2000; n++ {
		if len(outstanding) > 0 && r.Intn(3) == 0 {
			var smallest int
			for id := range outstanding {
				if smallest == 0 || id < smallest {
					smallest = id
				}
			}
			reusable := i.Reusable()
			require.NoError(t, i.Release(smallest))
			delete(outstanding, smallest)

			o := i.Allocate()
			if len(reusable) == 0 || smallest < reusable[0] {
				require.Equalf(t, smallest, o, "allocate after releasing %d returned %d", smallest, o)
			} else {
				require.Equal(t, reusable[0], o)
			}
			outstanding[o] = struct{}{}
			continue
		}
		if len(outstanding) > 0 && r.Intn(2) == 0 {
			for id := range outstanding {
				require.NoError(t, i.Release(id))
				delete(outstanding, id)
				break
			}
			continue
		}
		o := i.Allocate()
		_, dup := outstanding[o]
		require.Falsef(t, dup, "id %d returned twice while outstanding", o)
		outstanding[o] = struct{}{}
	}
}
