package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/foreveruup/fifa-bot/internal/league"
	"github.com/foreveruup/fifa-bot/internal/store"
	"github.com/foreveruup/fifa-bot/internal/utils"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type MatchService struct {
	db    *sqlx.DB
	store *store.TournamentStore
}

func NewMatchService(db *sqlx.DB, store *store.TournamentStore) *MatchService {
	return &MatchService{db: db, store: store}
}

// ResultData is what the presentation layer gets back after a result
// commit: the updated match, the refreshed standings, and commentary.
type ResultData struct {
	Match      *league.Match
	Standings  []league.StandingRow
	Remark     string
	RaceRemark string
}

// RecordResult sets both goal counts and the played flag in one atomic
// update, then recomputes the standings. With correction false a match
// that already has a result is rejected; the check runs inside the
// transaction, so two racing flows cannot both record the same match.
// With correction true the previous result is overwritten.
func (s *MatchService) RecordResult(ctx context.Context, tournamentID, matchID uuid.UUID, homeGoals, awayGoals int, correction bool) (*ResultData, error) {
	if homeGoals < 0 || awayGoals < 0 {
		return nil, fmt.Errorf("%w: goal counts must be non-negative", ErrValidation)
	}

	tournament, err := s.store.GetTournament(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	match, err := s.store.GetMatchTx(ctx, tx, tournamentID, matchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	if !correction && match.Played {
		return nil, ErrAlreadyPlayed
	}
	if correction && !match.Played {
		return nil, ErrNotPlayedYet
	}

	match.HomeGoals = utils.Ptr(homeGoals)
	match.AwayGoals = utils.Ptr(awayGoals)
	match.Played = true

	if err := s.store.UpdateMatchResult(ctx, tx, match); err != nil {
		return nil, fmt.Errorf("failed to update match: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	participants, err := s.store.GetParticipants(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	matches, err := s.store.GetMatches(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	table, err := computeTable(participants, matches)
	if err != nil {
		return nil, err
	}

	return &ResultData{
		Match:      match,
		Standings:  table,
		Remark:     MatchRemark(homeGoals, awayGoals),
		RaceRemark: RaceRemark(table, tournament.Prize),
	}, nil
}

// RecordResultByRef resolves ref as a sequence number or a match id and
// records the result. Serves the scripted entry point outside the
// wizard.
func (s *MatchService) RecordResultByRef(ctx context.Context, tournamentID uuid.UUID, ref string, homeGoals, awayGoals int, correction bool) (*ResultData, error) {
	match, err := s.ResolveMatch(ctx, tournamentID, ref)
	if err != nil {
		return nil, err
	}
	return s.RecordResult(ctx, tournamentID, match.ID, homeGoals, awayGoals, correction)
}

// ResolveMatch finds a match by "N" (sequence number) or by id.
func (s *MatchService) ResolveMatch(ctx context.Context, tournamentID uuid.UUID, ref string) (*league.Match, error) {
	var match *league.Match
	var err error

	if seq, convErr := strconv.Atoi(ref); convErr == nil {
		match, err = s.store.GetMatchBySeq(ctx, tournamentID, seq)
	} else if id, parseErr := uuid.Parse(ref); parseErr == nil {
		match, err = s.store.GetMatch(ctx, tournamentID, id)
	} else {
		return nil, fmt.Errorf("%w: match reference must be a sequence number or an id", ErrValidation)
	}

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (s *MatchService) Schedule(ctx context.Context, tournamentID uuid.UUID) ([]league.Match, error) {
	return s.store.GetSchedule(ctx, tournamentID)
}

func (s *MatchService) Match(ctx context.Context, tournamentID, matchID uuid.UUID) (*league.Match, error) {
	match, err := s.store.GetMatch(ctx, tournamentID, matchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

// Pending returns matches without results; Finished those with.
func (s *MatchService) Pending(ctx context.Context, tournamentID uuid.UUID) ([]league.Match, error) {
	return s.filtered(ctx, tournamentID, false)
}

func (s *MatchService) Finished(ctx context.Context, tournamentID uuid.UUID) ([]league.Match, error) {
	return s.filtered(ctx, tournamentID, true)
}

func (s *MatchService) filtered(ctx context.Context, tournamentID uuid.UUID, played bool) ([]league.Match, error) {
	matches, err := s.store.GetSchedule(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	filtered := make([]league.Match, 0, len(matches))
	for _, m := range matches {
		if m.Played == played {
			filtered = append(filtered, m)
		}
	}
	return filtered, nil
}
