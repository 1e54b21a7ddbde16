package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func dates(ds ...Date) []Date { return ds }

func TestSelectFocusRound(t *testing.T) {
	rounds := []RoundDates{
		{RoundID: 11, Number: 1, MatchDates: dates(NewDate(2026, 3, 1), NewDate(2026, 3, 2))},
		{RoundID: 12, Number: 2, MatchDates: dates(NewDate(2026, 3, 9), NewDate(2026, 3, 8))},
		{RoundID: 13, Number: 3, MatchDates: dates(NewDate(2026, 3, 15))},
	}

	tests := []struct {
		name      string
		today     Date
		wantIndex int
		wantOK    bool
	}{
		{"long before the season", NewDate(2026, 1, 1), 0, true},
		{"day before second round", NewDate(2026, 3, 7), 0, true},
		{"second round starts", NewDate(2026, 3, 8), 1, true},
		{"last day of second round window", NewDate(2026, 3, 14), 1, true},
		{"third round starts", NewDate(2026, 3, 15), 2, true},
		{"past all rounds", NewDate(2026, 3, 20), 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := SelectFocusRound(rounds, tt.today)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantIndex, idx)
		})
	}
}

func TestSelectFocusRound_UndatedRoundsAreTransparent(t *testing.T) {
	rounds := []RoundDates{
		{RoundID: 1, Number: 1, MatchDates: dates(NewDate(2026, 3, 1))},
		{RoundID: 2, Number: 2},
		{RoundID: 3, Number: 3, MatchDates: dates(NewDate(2026, 3, 15))},
		{RoundID: 4, Number: 4},
	}

	idx, ok := SelectFocusRound(rounds, NewDate(2026, 3, 10))
	assert.True(t, ok)
	assert.Equal(t, 0, idx, "round 2 has no matches and must not end round 1's window")

	idx, ok = SelectFocusRound(rounds, NewDate(2026, 4, 30))
	assert.True(t, ok)
	assert.Equal(t, 2, idx, "round 4 has no matches and must never be focused")
}

func TestSelectFocusRound_NoCandidates(t *testing.T) {
	idx, ok := SelectFocusRound(nil, NewDate(2026, 3, 1))
	assert.False(t, ok)
	assert.Equal(t, -1, idx)

	_, ok = SelectFocusRound([]RoundDates{{RoundID: 1, Number: 1}, {RoundID: 2, Number: 2}}, NewDate(2026, 3, 1))
	assert.False(t, ok)
}

func TestSelectFocusRound_OrdersByNumber(t *testing.T) {
	rounds := []RoundDates{
		{RoundID: 3, Number: 3, MatchDates: dates(NewDate(2026, 3, 15))},
		{RoundID: 1, Number: 1, MatchDates: dates(NewDate(2026, 3, 1))},
		{RoundID: 2, Number: 2, MatchDates: dates(NewDate(2026, 3, 8))},
	}

	idx, ok := SelectFocusRound(rounds, NewDate(2026, 3, 9))
	assert.True(t, ok)
	assert.Equal(t, 2, rounds[idx].Number)
}

func TestRoundDates_FirstMatchDate(t *testing.T) {
	_, ok := RoundDates{}.FirstMatchDate()
	assert.False(t, ok)

	first, ok := RoundDates{MatchDates: dates(NewDate(2026, 3, 9), NewDate(2026, 3, 7), NewDate(2026, 3, 8))}.FirstMatchDate()
	assert.True(t, ok)
	assert.Equal(t, NewDate(2026, 3, 7), first)
}
