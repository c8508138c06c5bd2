package rng

// Fixed is a Source that replays queued values, for tests. Once the queue is
// drained it returns 0. Values are reduced modulo n so they always stay in
// range.
type Fixed struct {
	values []int
	idx    int
}

var _ Source = (*Fixed)(nil)

// NewFixed creates a source that will return vals in order.
func NewFixed(vals ...int) *Fixed {
	return &Fixed{values: vals}
}

func (f *Fixed) Intn(n int) int {
	if f.idx >= len(f.values) {
		return 0
	}
	v := f.values[f.idx]
	f.idx++
	if v < 0 {
		v = -v
	}
	return v % n
}

// Queue appends values to replay.
func (f *Fixed) Queue(vals ...int) {
	f.values = append(f.values, vals...)
}

// Remaining is the number of values not yet returned.
func (f *Fixed) Remaining() int {
	return len(f.values) - f.idx
}
