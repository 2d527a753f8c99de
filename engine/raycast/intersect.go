package raycast

import (
	"cmp"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// Hit is a single ray intersection.
type Hit struct {
	// Surface is the surface whose geometry was hit (a leaf when descending recursively).
	Surface Surface

	// Candidate is the top-level candidate the hit descends from.
	Candidate Surface

	// Index is Candidate's position in the slice passed to Intersect.
	Index int

	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
}

// Options control which intersections Intersect reports.
type Options struct {
	// OnlyVisible drops hits against surfaces that are currently hidden.
	OnlyVisible bool

	// FilterByNormals drops hits whose face normal points along the ray (back faces).
	FilterByNormals bool

	// Recursive descends into each candidate's Children.
	Recursive bool

	// Pool fans candidate tests out across workers for large candidate sets. Optional.
	Pool *Pool
}

// Intersect tests a ray against every candidate and returns the hits sorted by ascending distance.
// An empty result is normal and means "no target".
//
// Parameters:
//   - r: the picking ray
//   - candidates: top-level surfaces to test
//   - opts: visibility, back-face and recursion filters
//
// Returns:
//   - []Hit: distance-ordered hits, possibly empty
func Intersect(r Ray, candidates []Surface, opts Options) []Hit {
	var perCandidate [][]Hit
	if opts.Pool != nil && opts.Pool.accepts(len(candidates)) {
		perCandidate = opts.Pool.intersect(r, candidates, opts.Recursive)
	} else {
		perCandidate = make([][]Hit, len(candidates))
		for i, c := range candidates {
			perCandidate[i] = intersectCandidate(r, c, i, opts.Recursive)
		}
	}

	var hits []Hit
	for _, hs := range perCandidate {
		hits = append(hits, hs...)
	}
	slices.SortStableFunc(hits, func(a, b Hit) int {
		return cmp.Compare(a.Distance, b.Distance)
	})

	if opts.OnlyVisible {
		hits = slices.DeleteFunc(hits, func(h Hit) bool {
			return !h.Surface.Visible()
		})
	}
	if opts.FilterByNormals {
		hits = slices.DeleteFunc(hits, func(h Hit) bool {
			return h.Normal.Dot(r.Direction) > 0
		})
	}
	return hits
}

// First returns the nearest hit, if any.
func First(hits []Hit) (Hit, bool) {
	if len(hits) == 0 {
		return Hit{}, false
	}
	return hits[0], true
}

// intersectCandidate tests a single top-level candidate, descending into children when recursive.
func intersectCandidate(r Ray, candidate Surface, index int, recursive bool) []Hit {
	if candidate == nil {
		return nil
	}
	var hits []Hit
	var walk func(s Surface)
	walk = func(s Surface) {
		for _, h := range s.IntersectRay(r) {
			h.Candidate = candidate
			h.Index = index
			hits = append(hits, h)
		}
		if !recursive {
			return
		}
		for _, child := range s.Children() {
			if child != nil {
				walk(child)
			}
		}
	}
	walk(candidate)
	return hits
}
