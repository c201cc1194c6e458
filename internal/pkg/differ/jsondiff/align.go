package jsondiff

import (
	"gopkg.in/yaml.v3"

	"github.com/semdiff/semdiff/internal/pkg/lcs"
)

// alignKeys aligns two objects' key lists by the shared lcs.Align primitive,
// treating keys as opaque strings (a plain LCS; unique keys are not anchored
// first as a patience diff would). Keys present on only one side are never paired with an
// unrelated key of a different name — only array elements get best-fit
// pairing.
func alignKeys(ekeys, akeys []string) []lcs.Pair {
	matched := lcs.AlignStrings(ekeys, akeys)
	return fillGaps(len(ekeys), len(akeys), matched, nil)
}

// alignArray aligns two arrays: first an exact-equality LCS (plain dynamic
// programming, not patience) anchors identical elements, then every gap between anchors is
// resolved by best-fit pairing so a changed-but-still-recognizable element
// (e.g. an object whose keys mostly survived, or the sole leftover scalar in
// a 1-for-1 replacement) renders as one Modified entry instead of an
// unrelated delete followed by an unrelated insert.
func alignArray(e, a []*yaml.Node) []lcs.Pair {
	matched := lcs.Align(len(e), len(a), func(i, j int) bool { return nodesEqual(e[i], a[j]) })
	return fillGaps(len(e), len(a), matched, func(aFrom, aTo, bFrom, bTo int) []lcs.Pair {
		return bestFitGap(e, a, aFrom, aTo, bFrom, bTo)
	})
}

// fillGaps expands a sparse set of matched pairs (strictly increasing in
// both indices) into a full ordered sequence covering every index of both
// sequences. Indices with no counterpart carry -1 on the other side. gapFn,
// if non-nil, is given the chance to pair up indices within each gap before
// the remainder falls back to pure add/delete.
func fillGaps(n, m int, matched []lcs.Pair, gapFn func(aFrom, aTo, bFrom, bTo int) []lcs.Pair) []lcs.Pair {
	out := make([]lcs.Pair, 0, n+m)
	prevA, prevB := 0, 0
	emit := func(aTo, bTo int) {
		if gapFn != nil {
			out = append(out, gapFn(prevA, aTo, prevB, bTo)...)
			return
		}
		for i := prevA; i < aTo; i++ {
			out = append(out, lcs.Pair{A: i, B: -1})
		}
		for j := prevB; j < bTo; j++ {
			out = append(out, lcs.Pair{A: -1, B: j})
		}
	}
	for _, p := range matched {
		emit(p.A, p.B)
		out = append(out, p)
		prevA, prevB = p.A+1, p.B+1
	}
	emit(n, m)
	return out
}

// bestFitGap resolves one run of unaligned elements e[aFrom:aTo] against
// a[bFrom:bTo] with a Needleman-Wunsch-style alignment: every pairing earns a
// positive score (so pairing always beats leaving both sides unpaired), with
// same-kind containers scored highest, refined by how similar their shape is
// and a small penalty for positional distance (spec.md §4.3's tie-breaker).
func bestFitGap(e, a []*yaml.Node, aFrom, aTo, bFrom, bTo int) []lcs.Pair {
	p, q := aTo-aFrom, bTo-bFrom
	if p == 0 || q == 0 {
		out := make([]lcs.Pair, 0, p+q)
		for i := 0; i < p; i++ {
			out = append(out, lcs.Pair{A: aFrom + i, B: -1})
		}
		for j := 0; j < q; j++ {
			out = append(out, lcs.Pair{A: -1, B: bFrom + j})
		}
		return out
	}

	score := func(i, j int) int64 { return pairScore(e[aFrom+i], a[bFrom+j], i, j) }

	dp := make([][]int64, p+1)
	for i := range dp {
		dp[i] = make([]int64, q+1)
	}
	for i := 1; i <= p; i++ {
		for j := 1; j <= q; j++ {
			best := dp[i-1][j-1] + score(i-1, j-1)
			if v := dp[i-1][j]; v > best {
				best = v
			}
			if v := dp[i][j-1]; v > best {
				best = v
			}
			dp[i][j] = best
		}
	}

	var rev []lcs.Pair
	i, j := p, q
	for i > 0 && j > 0 {
		switch {
		case dp[i][j] == dp[i-1][j-1]+score(i-1, j-1):
			rev = append(rev, lcs.Pair{A: aFrom + i - 1, B: bFrom + j - 1})
			i--
			j--
		case dp[i][j] == dp[i-1][j]:
			rev = append(rev, lcs.Pair{A: aFrom + i - 1, B: -1})
			i--
		default:
			rev = append(rev, lcs.Pair{A: -1, B: bFrom + j - 1})
			j--
		}
	}
	for i > 0 {
		rev = append(rev, lcs.Pair{A: aFrom + i - 1, B: -1})
		i--
	}
	for j > 0 {
		rev = append(rev, lcs.Pair{A: -1, B: bFrom + j - 1})
		j--
	}

	out := make([]lcs.Pair, len(rev))
	for k, p := range rev {
		out[len(rev)-1-k] = p
	}
	return out
}

// pairScore ranks a candidate pairing within a replace run. Same-kind
// containers rank above scalar-vs-scalar, which ranks above a kind mismatch;
// within a tier, a closer shape match (fewer differing keys, closer length)
// and smaller positional distance both win.
func pairScore(e, a *yaml.Node, i, j int) int64 {
	dist := int64(i - j)
	if dist < 0 {
		dist = -dist
	}
	switch {
	case isSequence(e) && isSequence(a):
		diff := int64(len(e.Content) - len(a.Content))
		if diff < 0 {
			diff = -diff
		}
		return 3_000_000 - diff*100 - dist
	case isMapping(e) && isMapping(a):
		diff := int64(symdiffKeyCount(e, a))
		return 3_000_000 - diff*100 - dist
	case isScalar(e) && isScalar(a):
		return 2_000_000 - dist
	default:
		return 1_000_000 - dist
	}
}

func symdiffKeyCount(e, a *yaml.Node) int {
	ek := mapKeys(e)
	ak := mapKeys(a)
	inA := make(map[string]bool, len(ak))
	for _, k := range ak {
		inA[k] = true
	}
	inE := make(map[string]bool, len(ek))
	count := 0
	for _, k := range ek {
		inE[k] = true
		if !inA[k] {
			count++
		}
	}
	for _, k := range ak {
		if !inE[k] {
			count++
		}
	}
	return count
}
