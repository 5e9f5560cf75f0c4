package physics

import "github.com/tomz197/rocketarena/internal/vmath"

// Collider is an indexed collection of circles. ok=false excludes the item
// from detection entirely (non-colliding bodies).
type Collider interface {
	Len() int
	Circle(i int) (center vmath.Vector, radius float64, ok bool)
}

// Pair is an unordered pair of collider indices with I < J.
type Pair struct {
	I, J int
}

// ForEachPair calls fn for every unordered pair (i, j) with i < j < n,
// in row-major order. Each pair is visited exactly once and no index
// is paired with itself.
func ForEachPair(n int, fn func(i, j int)) {
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			fn(i, j)
		}
	}
}

// Overlaps returns every pair whose circles overlap, ordered by (I, J).
// Detection is a brute-force O(N^2) scan; the order of the result is
// the order in which pairs must be resolved.
func Overlaps(c Collider) []Pair {
	var pairs []Pair
	ForEachPair(c.Len(), func(i, j int) {
		ci, ri, ok := c.Circle(i)
		if !ok {
			return
		}
		cj, rj, ok := c.Circle(j)
		if !ok {
			return
		}
		if CirclesOverlap(ci, ri, cj, rj) {
			pairs = append(pairs, Pair{I: i, J: j})
		}
	})
	return pairs
}
