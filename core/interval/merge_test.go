package interval

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/gridwatt/stationuptime/core/model"
)

func iv(start, end model.Timestamp) model.Interval {
	return model.Interval{Start: start, End: end}
}

func TestMergeEmpty(t *testing.T) {
	if got := Merge(nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
	if got := Merge([]model.Interval{}); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestMergeTouching(t *testing.T) {
	got := Merge([]model.Interval{iv(0, 10), iv(10, 20)})
	want := []model.Interval{iv(0, 20)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestMergeOverlapping(t *testing.T) {
	got := Merge([]model.Interval{iv(0, 10), iv(5, 15), iv(15, 20)})
	want := []model.Interval{iv(0, 20)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestMergeOutOfOrderDisjoint(t *testing.T) {
	got := Merge([]model.Interval{iv(10, 20), iv(0, 5), iv(5, 10), iv(30, 40)})
	want := []model.Interval{iv(0, 20), iv(30, 40)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestMergeContained(t *testing.T) {
	got := Merge([]model.Interval{iv(0, 100), iv(10, 20), iv(30, 40)})
	want := []model.Interval{iv(0, 100)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestMergeZeroLength(t *testing.T) {
	got := Merge([]model.Interval{iv(5, 5)})
	want := []model.Interval{iv(5, 5)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if TotalLength(got) != 0 {
		t.Fatalf("zero-length interval should cover no time")
	}
}

func TestMergeDoesNotMutateInput(t *testing.T) {
	in := []model.Interval{iv(10, 20), iv(0, 5)}
	Merge(in)
	if in[0] != iv(10, 20) || in[1] != iv(0, 5) {
		t.Fatalf("input mutated: %v", in)
	}
}

func TestMergeIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		in := randomIntervals(rng, 50)
		once := Merge(in)
		twice := Merge(once)
		if !reflect.DeepEqual(once, twice) {
			t.Fatalf("merge not idempotent: %v vs %v", once, twice)
		}
	}
}

func TestMergeDisjointAndSorted(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		merged := Merge(randomIntervals(rng, 50))
		for j := 1; j < len(merged); j++ {
			if merged[j].Start <= merged[j-1].End {
				t.Fatalf("adjacent intervals not strictly disjoint: %v", merged)
			}
		}
	}
}

func TestMergePreservesUnionLength(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 100; i++ {
		in := randomIntervals(rng, 30)
		got := TotalLength(Merge(in))
		if want := bruteForceUnionLength(in); got != want {
			t.Fatalf("union length mismatch: got %d want %d for %v", got, want, in)
		}
	}
}

func randomIntervals(rng *rand.Rand, n int) []model.Interval {
	ivs := make([]model.Interval, rng.Intn(n))
	for i := range ivs {
		start := model.Timestamp(rng.Intn(200))
		ivs[i] = iv(start, start+model.Timestamp(rng.Intn(50)))
	}
	return ivs
}

// bruteForceUnionLength counts covered unit ticks one at a time. Slow but
// obviously correct for small inputs.
func bruteForceUnionLength(ivs []model.Interval) uint64 {
	covered := map[model.Timestamp]bool{}
	for _, iv := range ivs {
		for t := iv.Start; t < iv.End; t++ {
			covered[t] = true
		}
	}
	return uint64(len(covered))
}
