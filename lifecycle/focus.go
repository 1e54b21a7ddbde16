package lifecycle

import "sort"

// RoundDates is a round together with the civil dates of its matches' kickoffs.
type RoundDates struct {
	RoundID    int
	Number     int
	MatchDates []Date
}

// FirstMatchDate returns the earliest match date of the round, if any.
func (r RoundDates) FirstMatchDate() (Date, bool) {
	if len(r.MatchDates) == 0 {
		return Date{}, false
	}
	first := r.MatchDates[0]
	for _, d := range r.MatchDates[1:] {
		if d.Before(first) {
			first = d
		}
	}
	return first, true
}

// SelectFocusRound picks the round of a league that should be featured on
// today. It returns an index into rounds, or false when nothing qualifies.
//
// Rounds are walked in number order and rounds without any match date are
// skipped entirely: they never get focus and never bound a neighbour's
// window. Each remaining round is focused until the day before the next
// dated round starts. The first dated round has no lower bound, later ones
// start on their own first match date, and the last one never ends.
func SelectFocusRound(rounds []RoundDates, today Date) (int, bool) {
	order := make([]int, len(rounds))
	for i := range rounds {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return rounds[order[a]].Number < rounds[order[b]].Number
	})

	type dated struct {
		index int
		first Date
	}
	candidates := make([]dated, 0, len(rounds))
	for _, i := range order {
		if first, ok := rounds[i].FirstMatchDate(); ok {
			candidates = append(candidates, dated{index: i, first: first})
		}
	}

	for k, c := range candidates {
		if k > 0 && today.Before(c.first) {
			continue
		}
		if k+1 < len(candidates) {
			focusEnd := candidates[k+1].first.AddDays(-1)
			if today.After(focusEnd) {
				continue
			}
		}
		return c.index, true
	}
	return -1, false
}
