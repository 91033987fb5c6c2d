package um

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeapAllocateIsZeroed(t *testing.T) {
	h := newHeap([]platter{0})
	id := h.allocate(4)
	require.NotZero(t, id)
	for i := platter(0); i < 4; i++ {
		v, f := h.read(id, i, 0)
		require.Nil(t, f)
		require.Zero(t, v)
	}
}

func TestHeapIdentifierReuseIsIndependent(t *testing.T) {
	h := newHeap([]platter{0})

	id := h.allocate(3)
	require.NoError(t, errOf(h.write(id, 0, 7, 0)))
	require.NoError(t, errOf(h.write(id, 1, 8, 0)))
	require.NoError(t, errOf(h.write(id, 2, 9, 0)))

	require.Nil(t, h.abandon(id, 0))

	reused := h.allocate(3)
	require.Equal(t, id, reused, "most-recently-freed id should be reissued first")

	v, f := h.read(reused, 0, 0)
	require.Nil(t, f)
	require.Zero(t, v, "reused array must not carry over the old contents")
}

func TestHeapAbandonArrayZeroIsInvalid(t *testing.T) {
	h := newHeap([]platter{0})
	f := h.abandon(0, 42)
	require.NotNil(t, f)
	require.Equal(t, InvalidOperation, f.Kind)
	require.Equal(t, 42, f.Finger)
}

func TestHeapAbandonNonLiveIsInvalid(t *testing.T) {
	h := newHeap([]platter{0})
	id := h.allocate(1)
	require.Nil(t, h.abandon(id, 0))

	f := h.abandon(id, 0)
	require.NotNil(t, f)
	require.Equal(t, InvalidOperation, f.Kind)
}

func TestHeapOutOfBoundsAccess(t *testing.T) {
	h := newHeap([]platter{0})
	id := h.allocate(2)

	_, f := h.read(id, 2, 0)
	require.NotNil(t, f)
	require.Equal(t, InvalidOperation, f.Kind)

	f = h.write(id, 5, 1, 0)
	require.NotNil(t, f)
	require.Equal(t, InvalidOperation, f.Kind)
}

func TestHeapLoadProgramIsolation(t *testing.T) {
	h := newHeap([]platter{1, 2, 3})
	src := h.allocate(3)
	require.NoError(t, errOf(h.write(src, 0, 99, 0)))

	_, f := h.loadProgram(src, 0)
	require.Nil(t, f)

	// mutate the new array 0 and confirm the source is untouched
	require.NoError(t, errOf(h.write(0, 0, 111, 0)))
	v, _ := h.read(src, 0, 0)
	require.EqualValues(t, 99, v)

	v0, _ := h.read(0, 0, 0)
	require.EqualValues(t, 111, v0)
}

func TestHeapFetchOffEndIsInvalid(t *testing.T) {
	h := newHeap([]platter{1, 2})
	_, f := h.fetch(2)
	require.NotNil(t, f)
	require.Equal(t, InvalidOperation, f.Kind)
}

// errOf adapts the heap's *Fault returns to a plain error for require.NoError.
func errOf(f *Fault) error {
	if f == nil {
		return nil
	}
	return f
}
