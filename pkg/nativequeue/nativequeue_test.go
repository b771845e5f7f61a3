package nativequeue

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i5heu/GoNativeCollections/internal/native"
	nerrors "github.com/i5heu/GoNativeCollections/pkg/errors"
)

const limit = 1000

func newQueue[T any](t *testing.T, capacity int) Queue[T] {
	t.Helper()
	q, err := New[T](capacity)
	require.NoError(t, err)
	return q
}

func randomInts(n int) []int32 {
	out := make([]int32, n)
	for i := range out {
		out[i] = rand.Int32()
	}
	return out
}

func TestNew_NonPositiveCapacityIsVoid(t *testing.T) {
	for _, capacity := range []int{0, -1, -rand.IntN(limit) - 1} {
		q := newQueue[int32](t, capacity)
		assert.True(t, q.Equal(Void[int32]()), "capacity %d", capacity)
		assert.Equal(t, 0, q.Capacity())
		assert.Equal(t, 0, q.Count())
		assert.True(t, q.IsEmpty())
		assert.Nil(t, q.Buffer())
	}
}

func TestNew_PositiveCapacityIsEmpty(t *testing.T) {
	capacity := rand.IntN(limit) + 1
	q := newQueue[int32](t, capacity)
	defer q.Dispose()

	assert.Equal(t, capacity, q.Capacity())
	assert.Equal(t, 0, q.Count())
	assert.True(t, q.IsEmpty())
	assert.False(t, q.IsFull())
	assert.Equal(t, 0, q.StartIndex())
	assert.Equal(t, -1, q.EndIndex())
	for _, v := range q.Buffer() {
		require.Zero(t, v)
	}
}

func TestFromSlice_DequeuesInSourceOrder(t *testing.T) {
	src := randomInts(rand.IntN(limit) + 1)
	q, err := FromSlice(src)
	require.NoError(t, err)
	defer q.Dispose()

	assert.Equal(t, len(src), q.Capacity())
	assert.True(t, q.IsFull())
	assert.Equal(t, len(src)-1, q.EndIndex())

	for i := range src {
		v, err := q.Dequeue()
		require.NoError(t, err)
		require.Equal(t, src[i], v)
	}
	assert.True(t, q.IsEmpty())
	assert.Equal(t, len(src), q.Capacity())
}

func TestFromSlice_EmptyIsVoid(t *testing.T) {
	q, err := FromSlice[int32](nil)
	require.NoError(t, err)
	assert.True(t, q.Equal(Void[int32]()))
}

func TestByteSizes(t *testing.T) {
	capacity := rand.IntN(limit) + 1
	count := rand.IntN(capacity + 1)
	q := newQueue[int32](t, capacity)
	defer q.Dispose()

	for i := 0; i < count; i++ {
		require.NoError(t, q.Enqueue(rand.Int32()))
	}
	assert.Equal(t, count*4, q.CurrentByteCount())
	assert.Equal(t, capacity*4, q.ByteCapacity())
}

func TestEnqueue_FullQueueFailsOutOfRange(t *testing.T) {
	capacity := rand.IntN(limit) + 1
	q := newQueue[int32](t, capacity)
	defer q.Dispose()

	for i := 0; i < capacity; i++ {
		require.NoError(t, q.Enqueue(rand.Int32()))
	}
	require.True(t, q.IsFull())

	err := q.Enqueue(1)
	require.Error(t, err)
	assert.ErrorIs(t, err, nerrors.ErrOutOfRange)
	assert.Equal(t, capacity, q.Count())
}

func TestTryEnqueue_ReturnsFalseWhenFull(t *testing.T) {
	capacity := rand.IntN(limit) + 1
	q := newQueue[int32](t, capacity)
	defer q.Dispose()

	for i := 0; i < capacity; i++ {
		require.True(t, q.TryEnqueue(rand.Int32()))
	}
	assert.True(t, q.IsFull())
	assert.False(t, q.TryEnqueue(1))
}

func TestDequeue_EmptyFailsInvalidOperation(t *testing.T) {
	q := newQueue[int32](t, 4)
	defer q.Dispose()

	_, err := q.Dequeue()
	assert.ErrorIs(t, err, nerrors.ErrInvalidOperation)

	v, ok := q.TryDequeue()
	assert.False(t, ok)
	assert.Zero(t, v)

	void := Void[int32]()
	_, err = void.Dequeue()
	assert.ErrorIs(t, err, nerrors.ErrInvalidOperation)
}

func TestDequeue_ZeroesSlotAndAdvancesStart(t *testing.T) {
	q, err := FromSlice([]int32{7, 8, 9})
	require.NoError(t, err)
	defer q.Dispose()

	v, err := q.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, int32(7), v)
	assert.Equal(t, []int32{0, 8, 9}, q.Buffer())
	assert.Equal(t, 1, q.StartIndex())
	assert.Equal(t, 2, q.Count())

	v, ok := q.TryDequeue()
	require.True(t, ok)
	assert.Equal(t, int32(8), v)

	v, ok = q.TryDequeue()
	require.True(t, ok)
	assert.Equal(t, int32(9), v)
	assert.Equal(t, 0, q.StartIndex(), "start wraps modulo capacity")
}

func TestFIFOOrder(t *testing.T) {
	capacity := rand.IntN(limit) + 1
	n := rand.IntN(capacity) + 1
	src := randomInts(n)

	q := newQueue[int32](t, capacity)
	defer q.Dispose()

	for _, v := range src {
		require.NoError(t, q.Enqueue(v))
	}
	for i := range src {
		v, err := q.Dequeue()
		require.NoError(t, err)
		require.Equal(t, src[i], v, "index %d", i)
	}
}

func TestPeek_DoesNotChangeCount(t *testing.T) {
	src := randomInts(rand.IntN(limit) + 1)
	q, err := FromSlice(src)
	require.NoError(t, err)
	defer q.Dispose()

	v, err := q.Peek()
	require.NoError(t, err)
	assert.Equal(t, src[0], v)
	assert.Equal(t, len(src), q.Count())

	v, ok := q.TryPeek()
	require.True(t, ok)
	assert.Equal(t, src[0], v)
	assert.Equal(t, len(src), q.Count())
}

func TestPeek_EmptyFails(t *testing.T) {
	q := Void[int32]()

	_, err := q.Peek()
	assert.ErrorIs(t, err, nerrors.ErrInvalidOperation)

	v, ok := q.TryPeek()
	assert.False(t, ok)
	assert.Zero(t, v)
}

func TestEnqueue_WritesAtPhysicalCount(t *testing.T) {
	q := newQueue[int32](t, 4)
	defer q.Dispose()

	for _, v := range []int32{1, 2, 3, 4} {
		require.NoError(t, q.Enqueue(v))
	}
	for i := 0; i < 3; i++ {
		_, err := q.Dequeue()
		require.NoError(t, err)
	}
	require.Equal(t, 3, q.StartIndex())
	require.Equal(t, 3, q.EndIndex())
	require.Equal(t, 1, q.Count())

	require.NoError(t, q.Enqueue(5))

	// The new element lands at physical slot Count (1), not at
	// (StartIndex+Count) mod Capacity (0), while EndIndex wraps to 0.
	assert.Equal(t, []int32{0, 5, 0, 4}, q.Buffer())
	assert.Equal(t, 0, q.EndIndex())
	assert.Equal(t, 3, q.StartIndex())
}

func TestCalibrate_ContiguousWindowMovesToZero(t *testing.T) {
	q := newQueue[int32](t, 4)
	defer q.Dispose()

	for _, v := range []int32{1, 2, 3} {
		require.NoError(t, q.Enqueue(v))
	}
	_, err := q.Dequeue()
	require.NoError(t, err)

	// Raw layout disagrees with logical order until calibration.
	require.Equal(t, []int32{0, 2, 3, 0}, q.Buffer())

	q.Calibrate()

	assert.Equal(t, []int32{2, 3, 0, 0}, q.Buffer())
	assert.Equal(t, 0, q.StartIndex())
	assert.Equal(t, 1, q.EndIndex())
	assert.Equal(t, 2, q.Count())

	v, err := q.Peek()
	require.NoError(t, err)
	assert.Equal(t, int32(2), v)
}

func TestCalibrate_WrappedWindowRotates(t *testing.T) {
	q := newQueue[int32](t, 4)
	defer q.Dispose()

	for _, v := range []int32{1, 2, 3, 4} {
		require.NoError(t, q.Enqueue(v))
	}
	for i := 0; i < 3; i++ {
		_, err := q.Dequeue()
		require.NoError(t, err)
	}
	require.NoError(t, q.Enqueue(5))
	require.Greater(t, q.StartIndex(), q.EndIndex())

	q.Calibrate()

	// The window [3, 0] is rotated down to [0, 1].
	assert.Equal(t, []int32{4, 0, 5, 0}, q.Buffer())
	assert.Equal(t, 0, q.StartIndex())
	assert.Equal(t, 1, q.EndIndex())

	v, err := q.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, int32(4), v)
}

func TestCalibrate_SingleElement(t *testing.T) {
	q := newQueue[int32](t, 5)
	defer q.Dispose()

	for _, v := range []int32{1, 2, 3} {
		require.NoError(t, q.Enqueue(v))
	}
	for i := 0; i < 2; i++ {
		_, err := q.Dequeue()
		require.NoError(t, err)
	}
	require.Equal(t, q.StartIndex(), q.EndIndex())

	q.Calibrate()

	assert.Equal(t, int32(3), q.Buffer()[0])
	assert.Equal(t, 0, q.StartIndex())
	assert.Equal(t, 0, q.EndIndex())
}

func TestCalibrate_Idempotent(t *testing.T) {
	q := newQueue[int32](t, 8)
	defer q.Dispose()

	for _, v := range []int32{1, 2, 3, 4, 5} {
		require.NoError(t, q.Enqueue(v))
	}
	for i := 0; i < 2; i++ {
		_, err := q.Dequeue()
		require.NoError(t, err)
	}

	q.Calibrate()
	once := q
	onceBuf := append([]int32(nil), q.Buffer()...)

	q.Calibrate()
	assert.True(t, q.Equal(once))
	assert.Equal(t, onceBuf, q.Buffer())
}

func TestCalibrate_NoOpWhenEmptyOrAligned(t *testing.T) {
	q := newQueue[int32](t, 4)
	defer q.Dispose()

	before := q
	q.Calibrate()
	assert.True(t, q.Equal(before), "empty queue")

	require.NoError(t, q.Enqueue(1))
	require.NoError(t, q.Enqueue(2))
	before = q
	q.Calibrate()
	assert.True(t, q.Equal(before), "start already 0")

	void := Void[int32]()
	void.Calibrate()
	assert.True(t, void.Equal(Void[int32]()))
}

func TestRoundTrip_DrainAndRefillThenCalibrate(t *testing.T) {
	capacity := rand.IntN(limit) + 2
	first := randomInts(capacity)
	second := randomInts(capacity)

	q := newQueue[int32](t, capacity)
	defer q.Dispose()

	for _, v := range first {
		require.NoError(t, q.Enqueue(v))
	}
	for range first {
		_, err := q.Dequeue()
		require.NoError(t, err)
	}
	require.True(t, q.IsEmpty())

	for _, v := range second {
		require.NoError(t, q.Enqueue(v))
	}
	require.True(t, q.IsFull())

	q.Calibrate()
	assert.Equal(t, second, q.Unsafe())

	ptr := q.Pin()
	require.NotNil(t, ptr)
	assert.Equal(t, second[0], *ptr)
}

func TestAsReadOnly_CalibratesFirst(t *testing.T) {
	q := newQueue[int32](t, 6)
	defer q.Dispose()

	for _, v := range []int32{10, 20, 30, 40} {
		require.NoError(t, q.Enqueue(v))
	}
	_, err := q.Dequeue()
	require.NoError(t, err)

	ro := q.AsReadOnly()
	assert.Equal(t, 0, q.StartIndex())
	assert.Equal(t, 3, ro.Count())
	assert.False(t, ro.Owned())
	assert.Equal(t, []int32{20, 30, 40}, ro.Unsafe())

	// Disposing the borrowed view must not free the queue's buffer.
	require.NoError(t, ro.Dispose())
	v, err := q.Peek()
	require.NoError(t, err)
	assert.Equal(t, int32(20), v)
}

func TestAsReadOnly_VoidQueue(t *testing.T) {
	q := Void[int32]()
	ro := q.AsReadOnly()
	assert.True(t, ro.IsEmpty())
	assert.Nil(t, ro.Pin())
}

func TestEnumerator_WalksInFIFOOrder(t *testing.T) {
	src := randomInts(rand.IntN(limit) + 1)
	q := newQueue[int32](t, len(src)+rand.IntN(limit)+1)
	defer q.Dispose()

	for _, v := range src {
		require.True(t, q.TryEnqueue(v))
	}

	count := 0
	e := q.Enumerator()
	for e.MoveNext() {
		require.Equal(t, src[count], e.Current())
		count++
	}
	assert.Equal(t, q.Count(), count)
	assert.NotEqual(t, q.Capacity(), count)

	count = 0
	for i, v := range q.All() {
		require.Equal(t, count, i)
		require.Equal(t, src[i], v)
		count++
	}
	assert.Equal(t, len(src), count)
}

func TestPin_VoidIsNil(t *testing.T) {
	q := Void[int32]()
	assert.Nil(t, q.Pin())
	assert.Nil(t, q.Unsafe())
}

func TestPin_PointsAtPeek(t *testing.T) {
	src := randomInts(rand.IntN(limit) + 1)
	q, err := FromSlice(src)
	require.NoError(t, err)
	defer q.Dispose()

	ptr := q.Pin()
	require.NotNil(t, ptr)
	v, err := q.Peek()
	require.NoError(t, err)
	assert.Equal(t, v, *ptr)
}

func TestClear(t *testing.T) {
	q, err := FromSlice([]int32{1, 2, 3})
	require.NoError(t, err)
	defer q.Dispose()

	_, err = q.Dequeue()
	require.NoError(t, err)
	q.Clear()

	assert.True(t, q.IsEmpty())
	assert.Equal(t, 3, q.Capacity())
	assert.Equal(t, 0, q.StartIndex())
	assert.Equal(t, -1, q.EndIndex())
	assert.Equal(t, []int32{0, 0, 0}, q.Buffer())
}

func TestEquality_IdentityNotContent(t *testing.T) {
	src := randomInts(rand.IntN(limit) + 1)
	q := newQueue[int32](t, len(src)+rand.IntN(limit)+1)
	defer q.Dispose()

	for _, v := range src {
		require.True(t, q.TryEnqueue(v))
	}

	copied := q
	assert.True(t, q.Equal(copied))
	assert.True(t, q == copied)
	assert.Equal(t, q.Hash(), copied.Hash())

	require.NoError(t, copied.Enqueue(rand.Int32()))
	assert.False(t, q.Equal(copied))
	assert.False(t, q == copied)
}

func TestEquality_DistinctBuffersWithSameContent(t *testing.T) {
	src := randomInts(16)
	a, err := FromSlice(src)
	require.NoError(t, err)
	defer a.Dispose()
	b, err := FromSlice(src)
	require.NoError(t, err)
	defer b.Dispose()

	assert.False(t, a.Equal(b))
	assert.NotEqual(t, a.Hash(), b.Hash())
}

func TestString_ContainsTypeElementCountAndCapacity(t *testing.T) {
	capacity := rand.IntN(limit) + 1
	q := newQueue[int32](t, capacity)
	defer q.Dispose()
	require.NoError(t, q.Enqueue(rand.Int32()))

	s := q.String()
	assert.Contains(t, s, "Queue")
	assert.Contains(t, s, "int32")
	assert.Contains(t, s, "Count: 1")
	assert.Contains(t, s, fmt.Sprintf("Capacity: %d", capacity))

	small := newQueue[int32](t, 3)
	defer small.Dispose()
	require.NoError(t, small.Enqueue(1))
	assert.Equal(t, "Queue[int32][Count: 1 | Capacity: 3]", small.String())
}

func TestDispose_IdempotentAndReleasesOnce(t *testing.T) {
	before := native.ReadStats()

	q := newQueue[int64](t, 64)
	require.Equal(t, before.LiveBlocks+1, native.ReadStats().LiveBlocks)

	require.NoError(t, q.Dispose())
	assert.True(t, q.Equal(Void[int64]()))
	assert.Equal(t, before.LiveBlocks, native.ReadStats().LiveBlocks)

	require.NoError(t, q.Dispose())
	assert.Equal(t, before.TotalFrees+1, native.ReadStats().TotalFrees)

	void := Void[int64]()
	assert.NoError(t, void.Dispose())
}

func TestNew_RejectsReferenceElements(t *testing.T) {
	_, err := New[*int](4)
	assert.ErrorIs(t, err, nerrors.ErrUnsupported)

	_, err = New[string](4)
	assert.ErrorIs(t, err, nerrors.ErrUnsupported)
}

type sample struct {
	ID    uint32
	Score float64
	Tags  [4]byte
}

func TestStructElements(t *testing.T) {
	q := newQueue[sample](t, 3)
	defer q.Dispose()

	in := sample{ID: 7, Score: 1.5, Tags: [4]byte{'a', 'b', 'c', 'd'}}
	require.NoError(t, q.Enqueue(in))
	out, err := q.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func BenchmarkEnqueueDequeue(b *testing.B) {
	q, err := New[int64](1024)
	require.NoError(b, err)
	defer q.Dispose()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !q.TryEnqueue(int64(i)) {
			for !q.IsEmpty() {
				q.TryDequeue()
			}
			q.TryEnqueue(int64(i))
		}
	}
}
