package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/foreveruup/fifa-bot/internal/league"
	"github.com/foreveruup/fifa-bot/internal/store"
	"github.com/google/uuid"
)

type StandingsService struct {
	store *store.TournamentStore
}

func NewStandingsService(store *store.TournamentStore) *StandingsService {
	return &StandingsService{store: store}
}

// Table computes the ranked standings for a tournament from its played
// matches. The result is deterministic for identical input.
func (s *StandingsService) Table(ctx context.Context, tournamentID uuid.UUID) ([]league.StandingRow, error) {
	participants, err := s.store.GetParticipants(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	matches, err := s.store.GetMatches(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	return computeTable(participants, matches)
}

func computeTable(participants []league.Participant, matches []league.Match) ([]league.StandingRow, error) {
	rows := make(map[string]*league.StandingRow, len(participants))
	for _, p := range participants {
		rows[p.Name] = &league.StandingRow{Name: p.Name, Club: p.Club}
	}

	for _, m := range matches {
		if !m.Played {
			continue
		}
		if !m.HasResult() {
			return nil, fmt.Errorf("match %d is marked played without a full score", m.Seq)
		}

		home, ok := rows[m.Home]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownParticipant, m.Home)
		}
		away, ok := rows[m.Away]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownParticipant, m.Away)
		}

		hg, ag := *m.HomeGoals, *m.AwayGoals

		home.Played++
		away.Played++
		home.GoalsFor += hg
		home.GoalsAgainst += ag
		away.GoalsFor += ag
		away.GoalsAgainst += hg

		switch {
		case hg > ag:
			home.Won++
			home.Points += 3
			away.Lost++
		case hg < ag:
			away.Won++
			away.Points += 3
			home.Lost++
		default:
			home.Drawn++
			away.Drawn++
			home.Points++
			away.Points++
		}
	}

	table := make([]league.StandingRow, 0, len(rows))
	for _, row := range rows {
		row.GoalDifference = row.GoalsFor - row.GoalsAgainst
		table = append(table, *row)
	}

	// Points desc, then goal difference desc, then goals for desc,
	// then name asc. Total order: every tie is broken.
	sort.Slice(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.Name < b.Name
	})

	return table, nil
}
