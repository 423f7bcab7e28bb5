package stats

// AllocEstimator derives a per-frame allocation estimate for the memory
// overlay. When the host exposes a direct "bytes allocated this period"
// counter the estimator uses it verbatim; otherwise it falls back to
// first-differencing a monotonic total-bytes reading.
//
// The fallback is approximate: allocation that happens and is collected
// within the same sampling interval is invisible to it. That is a known
// limitation of delta sampling, not something to correct for.
type AllocEstimator struct {
	// direct, when non-nil, returns the bytes allocated since its
	// previous read and whether the counter is currently readable.
	direct func() (uint64, bool)

	prev   uint64
	primed bool
}

// NewAllocEstimator creates an estimator. direct may be nil, in which
// case only the delta fallback is used.
func NewAllocEstimator(direct func() (uint64, bool)) *AllocEstimator {
	return &AllocEstimator{direct: direct}
}

// Sample returns the allocation estimate for this frame given the
// current monotonic total-bytes reading.
//
// A reading lower than the previous one means a collection freed
// memory; that is not allocation, so the estimate for such a frame is
// zero rather than a negative number. The first call establishes the
// baseline and also reports zero.
func (e *AllocEstimator) Sample(totalBytes uint64) uint64 {
	if e.direct != nil {
		if v, ok := e.direct(); ok {
			// Keep the baseline current so a later counter failure
			// degrades to delta mode without a bogus first delta.
			e.prev = totalBytes
			e.primed = true
			return v
		}
	}

	if !e.primed {
		e.prev = totalBytes
		e.primed = true
		return 0
	}

	var alloc uint64
	if totalBytes >= e.prev {
		alloc = totalBytes - e.prev
	}
	e.prev = totalBytes
	return alloc
}

// Reset forgets the baseline so the next Sample starts fresh. Called
// when the owning overlay is re-enabled.
func (e *AllocEstimator) Reset() {
	e.prev = 0
	e.primed = false
}
