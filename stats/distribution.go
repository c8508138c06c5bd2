package stats

import (
	"sort"

	"github.com/samber/lo"
)

// Distribution counts how often each integer outcome occurred.
type Distribution map[int]int

func (d Distribution) Add(v int) {
	d[v]++
}

// Keys returns the outcomes seen, ascending.
func (d Distribution) Keys() []int {
	ks := lo.Keys(map[int]int(d))
	sort.Ints(ks)
	return ks
}

// Total is the number of observations.
func (d Distribution) Total() int {
	return lo.Sum(lo.Values(map[int]int(d)))
}

// Mean is the count-weighted average outcome.
func (d Distribution) Mean() float64 {
	total := d.Total()
	if total == 0 {
		return 0
	}
	sum := 0
	for v, c := range d {
		sum += v * c
	}
	return float64(sum) / float64(total)
}

// Percent is the share of n taken by outcome v, in percent.
func (d Distribution) Percent(v, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(d[v]) * 100 / float64(n)
}
