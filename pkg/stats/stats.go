// Package stats summarizes per-node centrality scores.
package stats

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/dd0wney/cluso-simgraph/pkg/graph"
)

// Summary describes a sample of scores
type Summary struct {
	Count  int
	Mean   float64
	Median float64
	StdDev float64 // population standard deviation
	Min    float64
	Max    float64
}

// Summarize computes a Summary; empty input yields the zero Summary.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	mean, variance := stat.PopMeanVariance(sorted, nil)
	return Summary{
		Count:  len(sorted),
		Mean:   mean,
		Median: median(sorted),
		StdDev: math.Sqrt(variance),
		Min:    floats.Min(sorted),
		Max:    floats.Max(sorted),
	}
}

// median of sorted input, averaging the two middle values for even lengths
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// FromInts converts integer scores, such as degree counts, keyed by node.
func FromInts(scores map[graph.NodeID]int) map[graph.NodeID]float64 {
	out := make(map[graph.NodeID]float64, len(scores))
	for id, v := range scores {
		out[id] = float64(v)
	}
	return out
}

// FromMap returns the values of scores ordered by node id.
func FromMap(scores map[graph.NodeID]float64) []float64 {
	ids := make([]graph.NodeID, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	values := make([]float64, len(ids))
	for i, id := range ids {
		values[i] = scores[id]
	}
	return values
}

// Deviation is the node whose score lies furthest from the mean
type Deviation struct {
	ID      graph.NodeID
	Value   float64
	Mean    float64
	Offset  float64 // Value - Mean
	Percent float64 // Offset relative to Mean, in percent; 0 when Mean is 0
}

// MaxDeviation finds the node furthest from the mean score. Ties go to the
// smaller id. ok is false for empty input.
func MaxDeviation(scores map[graph.NodeID]float64) (dev Deviation, ok bool) {
	if len(scores) == 0 {
		return Deviation{}, false
	}

	values := FromMap(scores)
	mean := stat.Mean(values, nil)

	ids := make([]graph.NodeID, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	best := ids[0]
	for _, id := range ids[1:] {
		if math.Abs(scores[id]-mean) > math.Abs(scores[best]-mean) {
			best = id
		}
	}

	dev = Deviation{
		ID:     best,
		Value:  scores[best],
		Mean:   mean,
		Offset: scores[best] - mean,
	}
	if mean != 0 {
		dev.Percent = dev.Offset / mean * 100
	}
	return dev, true
}
