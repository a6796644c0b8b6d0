package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/foreveruup/fifa-bot/internal/league"
	"github.com/foreveruup/fifa-bot/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ScheduleService struct {
	db    *sqlx.DB
	store *store.TournamentStore
}

func NewScheduleService(db *sqlx.DB, store *store.TournamentStore) *ScheduleService {
	return &ScheduleService{db: db, store: store}
}

// HasMatches reports whether a schedule already exists for the
// tournament. Callers use it to gate destructive regeneration.
func (s *ScheduleService) HasMatches(ctx context.Context, tournamentID uuid.UUID) (bool, error) {
	return s.store.HasMatches(ctx, tournamentID)
}

// fixture is an oriented pairing before it is persisted as a Match.
type fixture struct {
	Home string
	Away string
}

// roundRobinFixtures enumerates every unordered pair of names exactly
// once per round. Orientation alternates with round parity: on even
// rounds the earlier-listed participant is at home, on odd rounds the
// later one. Fewer than two names, or zero rounds, yield no fixtures.
func roundRobinFixtures(names []string, rounds int) []fixture {
	var fixtures []fixture
	for r := 0; r < rounds; r++ {
		for i := 0; i < len(names); i++ {
			for j := i + 1; j < len(names); j++ {
				if r%2 == 0 {
					fixtures = append(fixtures, fixture{Home: names[i], Away: names[j]})
				} else {
					fixtures = append(fixtures, fixture{Home: names[j], Away: names[i]})
				}
			}
		}
	}
	return fixtures
}

// Generate replaces the tournament's entire match set with a freshly
// generated schedule. Fixtures are shuffled for presentation variety
// and numbered 1..total in shuffled order. Destructive: any previously
// recorded results are discarded; confirmation is the caller's job.
func (s *ScheduleService) Generate(ctx context.Context, tournamentID uuid.UUID) ([]league.Match, error) {
	tournament, err := s.store.GetTournament(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	participants, err := s.store.GetParticipants(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if len(participants) < 2 {
		return nil, ErrNotEnoughParticipants
	}

	names := make([]string, len(participants))
	for i, p := range participants {
		names[i] = p.Name
	}

	fixtures := roundRobinFixtures(names, tournament.Rounds)
	rand.Shuffle(len(fixtures), func(i, j int) {
		fixtures[i], fixtures[j] = fixtures[j], fixtures[i]
	})

	matches := make([]league.Match, len(fixtures))
	for i, f := range fixtures {
		matches[i] = league.Match{
			ID:           uuid.New(),
			TournamentID: tournamentID,
			Seq:          i + 1,
			Home:         f.Home,
			Away:         f.Away,
		}
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := s.store.DeleteMatches(ctx, tx, tournamentID); err != nil {
		return nil, fmt.Errorf("failed to discard old schedule: %w", err)
	}
	if err := s.store.CreateMatches(ctx, tx, matches); err != nil {
		return nil, fmt.Errorf("failed to insert schedule: %w", err)
	}

	return matches, tx.Commit()
}
