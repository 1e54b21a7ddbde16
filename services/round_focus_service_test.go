package services

import (
	"context"
	"testing"
	"time"

	"github.com/Dosada05/referee-review/live"
	"github.com/Dosada05/referee-review/models"
	"github.com/Dosada05/referee-review/repositories"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kstDay(month time.Month, day, hour int) time.Time {
	return time.Date(2025, month, day, hour, 0, 0, 0, kst)
}

func roundWith(id, leagueID, number int, focused bool, kickoffs ...time.Time) repositories.RoundKickoffs {
	return repositories.RoundKickoffs{
		Round:    models.Round{ID: id, LeagueID: leagueID, Number: number, IsFocus: focused},
		Kickoffs: kickoffs,
	}
}

func kLeague() repositories.LeagueRounds {
	return repositories.LeagueRounds{
		LeagueID: 1,
		Rounds: []repositories.RoundKickoffs{
			roundWith(11, 1, 1, true, kstDay(time.March, 1, 14), kstDay(time.March, 2, 19)),
			roundWith(12, 1, 2, false, kstDay(time.March, 8, 16)),
			roundWith(13, 1, 3, false),
			roundWith(14, 1, 4, false, kstDay(time.March, 15, 14)),
		},
	}
}

func newTestFocusService(repo *fakeRoundRepo, pub EventPublisher) RoundFocusService {
	return NewRoundFocusService(repo, kst, pub, zerolog.Nop())
}

func TestRoundFocusService_UpdateFocus(t *testing.T) {
	tests := []struct {
		name        string
		today       time.Time
		wantFocused []int
		wantUpdated int
	}{
		{"before season keeps first round", kstDay(time.February, 20, 12), []int{11}, 0},
		{"first round until day before next", kstDay(time.March, 7, 23), []int{11}, 0},
		{"second round from its first match", kstDay(time.March, 8, 0), []int{12}, 2},
		{"undated round is skipped", kstDay(time.March, 14, 12), []int{12}, 2},
		{"last round never ends", kstDay(time.April, 30, 12), []int{14}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRoundRepo(kLeague())
			svc := newTestFocusService(repo, nil)

			updated, err := svc.UpdateFocus(context.Background(), tt.today)
			require.NoError(t, err)
			assert.Equal(t, tt.wantUpdated, updated)
			assert.Equal(t, tt.wantFocused, repo.focused())
		})
	}
}

func TestRoundFocusService_UpdateFocusIsIdempotent(t *testing.T) {
	repo := newFakeRoundRepo(kLeague())
	pub := &fakePublisher{}
	svc := newTestFocusService(repo, pub)
	now := kstDay(time.March, 10, 12)

	updated, err := svc.UpdateFocus(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 2, updated)

	calls := len(repo.calls)
	updated, err = svc.UpdateFocus(context.Background(), now)
	require.NoError(t, err)
	assert.Zero(t, updated)
	assert.Len(t, repo.calls, calls)
	assert.Equal(t, []int{12}, repo.focused())
	assert.Len(t, pub.events, 1)
}

func TestRoundFocusService_ClearsBeforeSetting(t *testing.T) {
	repo := newFakeRoundRepo(kLeague())
	pub := &fakePublisher{}
	svc := newTestFocusService(repo, pub)

	_, err := svc.UpdateFocus(context.Background(), kstDay(time.March, 10, 12))
	require.NoError(t, err)

	assert.Equal(t, []focusCall{{RoundID: 11, IsFocus: false}, {RoundID: 12, IsFocus: true}}, repo.calls)
	require.Len(t, pub.events, 1)
	assert.Equal(t, live.LeagueRoom(1), pub.events[0].Room)
	assert.Equal(t, live.MessageRoundFocusChanged, pub.events[0].Type)
	assert.Equal(t, RoundFocusChange{LeagueID: 1, RoundID: 12, Number: 2}, pub.events[0].Payload)
}

func TestRoundFocusService_UsesConfiguredZone(t *testing.T) {
	repo := newFakeRoundRepo(kLeague())
	svc := newTestFocusService(repo, nil)

	// 7 марта 15:30 UTC это уже 8 марта в Сеуле
	_, err := svc.UpdateFocus(context.Background(), time.Date(2025, 3, 7, 15, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, []int{12}, repo.focused())
}

func TestRoundFocusService_LeaguesAreIndependent(t *testing.T) {
	other := repositories.LeagueRounds{
		LeagueID: 2,
		Rounds: []repositories.RoundKickoffs{
			roundWith(21, 2, 1, false, kstDay(time.March, 9, 14)),
			roundWith(22, 2, 2, false, kstDay(time.March, 16, 14)),
		},
	}
	// в лиге без дат фокус снимается
	undated := repositories.LeagueRounds{
		LeagueID: 3,
		Rounds:   []repositories.RoundKickoffs{roundWith(31, 3, 1, true)},
	}
	repo := newFakeRoundRepo(kLeague(), other, undated)
	repo.updateErrs[12] = errDB
	svc := newTestFocusService(repo, nil)

	updated, err := svc.UpdateFocus(context.Background(), kstDay(time.March, 10, 12))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFocusUpdateFailed)
	assert.ErrorIs(t, err, errDB)

	// лига 1: снят фокус с 11, установка 12 упала; лига 2: 21; лига 3: снят с 31
	assert.Equal(t, 3, updated)
	assert.Equal(t, []int{21}, repo.focused())
}

func TestRoundFocusService_ListError(t *testing.T) {
	repo := newFakeRoundRepo()
	repo.listErr = errDB
	svc := newTestFocusService(repo, nil)

	updated, err := svc.UpdateFocus(context.Background(), kstDay(time.March, 10, 12))
	assert.ErrorIs(t, err, ErrFocusUpdateFailed)
	assert.Zero(t, updated)
}
