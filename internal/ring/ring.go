// Package ring provides a fixed-capacity circular sample buffer used by
// the overlay drivers to retain recent per-frame metric history for
// sparkline rendering. Push never allocates after construction and the
// buffer never grows, so it is safe to call on every frame.
package ring

// Sample constrains the element types the overlays store: plain scalar
// metric values. time.Duration is admitted through ~int64.
type Sample interface {
	~float64 | ~float32 | ~int | ~int64 | ~uint64
}

// Buffer is a fixed-capacity circular buffer with overwrite-oldest
// semantics. It is owned by a single overlay driver and is not safe for
// concurrent use.
type Buffer[T Sample] struct {
	data  []T
	head  int // next write position
	count int // valid entries, saturates at cap
}

// New allocates a buffer with the given capacity. Capacities below 1
// are clamped to 1.
func New[T Sample](capacity int) *Buffer[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer[T]{data: make([]T, capacity)}
}

// Push writes v at the cursor, overwriting the oldest entry once the
// buffer is full. O(1), no allocation.
func (b *Buffer[T]) Push(v T) {
	b.data[b.head] = v
	b.head = (b.head + 1) % len(b.data)
	if b.count < len(b.data) {
		b.count++
	}
}

// Len returns the number of valid entries, at most Cap.
func (b *Buffer[T]) Len() int { return b.count }

// Cap returns the fixed capacity.
func (b *Buffer[T]) Cap() int { return len(b.data) }

// Last returns the most recently pushed value, if any.
func (b *Buffer[T]) Last() (T, bool) {
	var zero T
	if b.count == 0 {
		return zero, false
	}
	idx := (b.head - 1 + len(b.data)) % len(b.data)
	return b.data[idx], true
}

// At returns the entry at logical position i, oldest first. i must be
// in [0, Len()).
func (b *Buffer[T]) At(i int) T {
	// The subtraction can go negative when the buffer has not wrapped
	// yet, so the capacity is added back before the modulo.
	idx := (b.head - b.count + i + len(b.data)) % len(b.data)
	return b.data[idx]
}

// Snapshot returns a freshly allocated chronological copy
// (oldest-to-newest) of the valid entries. The buffer is not mutated.
func (b *Buffer[T]) Snapshot() []T {
	return b.AppendTo(nil)
}

// AppendTo appends the valid entries in chronological order to dst and
// returns the extended slice. Callers on the frame path reuse a scratch
// slice to keep snapshots allocation-free.
func (b *Buffer[T]) AppendTo(dst []T) []T {
	for i := 0; i < b.count; i++ {
		dst = append(dst, b.At(i))
	}
	return dst
}

// Sum returns the sum of all valid entries.
func (b *Buffer[T]) Sum() T {
	var s T
	for i := 0; i < b.count; i++ {
		s += b.At(i)
	}
	return s
}

// Clear resets the buffer to logically empty and zeroes the backing
// storage. Capacity is unchanged.
func (b *Buffer[T]) Clear() {
	var zero T
	for i := range b.data {
		b.data[i] = zero
	}
	b.head = 0
	b.count = 0
}
