package services

// Scorer rates a candidate. A false second result marks the candidate as
// ineligible; eligible scores may be any value, including zero.
type Scorer[T any] func(candidate T) (score float64, eligible bool)

// SelectBest returns the eligible candidate with the strictly greatest score.
// Ties keep the first candidate in iteration order, so callers must pass
// candidates in a reproducible order. found is false when nothing is eligible.
func SelectBest[T any](candidates []T, score Scorer[T]) (best T, found bool) {
	var bestScore float64
	for _, c := range candidates {
		s, ok := score(c)
		if !ok {
			continue
		}
		if !found || s > bestScore {
			best = c
			bestScore = s
			found = true
		}
	}
	return best, found
}
