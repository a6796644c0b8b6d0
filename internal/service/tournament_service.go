package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/foreveruup/fifa-bot/internal/clubs"
	"github.com/foreveruup/fifa-bot/internal/league"
	"github.com/foreveruup/fifa-bot/internal/store"
	"github.com/foreveruup/fifa-bot/internal/utils"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const maxParticipantNameLen = 50

type TournamentService struct {
	db    *sqlx.DB
	store *store.TournamentStore

	// legacySingle restricts a channel to one live tournament: creating
	// a new one completes all prior tournaments for the channel and
	// purges their rosters and fixtures. Off by default.
	legacySingle bool
}

func NewTournamentService(db *sqlx.DB, store *store.TournamentStore, legacySingle bool) *TournamentService {
	return &TournamentService{db: db, store: store, legacySingle: legacySingle}
}

// Create makes a new tournament for a channel and selects it as the
// channel's current tournament, in one transaction.
func (s *TournamentService) Create(ctx context.Context, channelID int64, name string, rounds int, prize string) (*league.Tournament, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: tournament name is required", ErrValidation)
	}
	if rounds < 1 {
		return nil, fmt.Errorf("%w: round count must be a positive integer", ErrValidation)
	}
	if strings.TrimSpace(prize) == "" {
		prize = league.DefaultPrize
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if s.legacySingle {
		if err := s.store.CompleteChannelTournaments(ctx, tx, channelID); err != nil {
			return nil, fmt.Errorf("failed to retire previous tournaments: %w", err)
		}
	}

	tournament := &league.Tournament{
		ID:        uuid.New(),
		ChannelID: channelID,
		Name:      name,
		Prize:     prize,
		Rounds:    rounds,
		Status:    league.TournamentActive,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.CreateTournament(ctx, tx, tournament); err != nil {
		return nil, err
	}
	if err := s.store.UpsertSelection(ctx, tx, channelID, tournament.ID); err != nil {
		return nil, err
	}

	return tournament, tx.Commit()
}

// Active resolves the tournament currently selected for a channel.
func (s *TournamentService) Active(ctx context.Context, channelID int64) (*league.Tournament, error) {
	tournament, err := s.store.GetSelectedTournament(ctx, channelID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoTournamentSelected
		}
		return nil, err
	}
	return tournament, nil
}

// Select points the channel at one of its tournaments, last-write-wins.
func (s *TournamentService) Select(ctx context.Context, channelID int64, tournamentID uuid.UUID) (*league.Tournament, error) {
	tournament, err := s.store.GetTournament(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if tournament.ChannelID != channelID {
		return nil, ErrTournamentNotFound
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := s.store.UpsertSelection(ctx, tx, channelID, tournamentID); err != nil {
		return nil, err
	}
	return tournament, tx.Commit()
}

func (s *TournamentService) ListForChannel(ctx context.Context, channelID int64) ([]league.Tournament, error) {
	return s.store.GetTournamentsByChannel(ctx, channelID)
}

// End marks a tournament completed. The tournament stays listed and
// selectable; ending is a label change, not a removal.
func (s *TournamentService) End(ctx context.Context, tournamentID uuid.UUID) (*league.Tournament, error) {
	tournament, err := s.store.GetTournament(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	if err := s.store.UpdateTournamentStatus(ctx, tournamentID, league.TournamentCompleted); err != nil {
		return nil, err
	}
	tournament.Status = league.TournamentCompleted
	return tournament, nil
}

// AddParticipant adds one named participant to the roster. Names are
// unique within a tournament.
func (s *TournamentService) AddParticipant(ctx context.Context, tournamentID uuid.UUID, name string) (*league.Participant, error) {
	added, _, err := s.AddParticipants(ctx, tournamentID, []string{name})
	if err != nil {
		return nil, err
	}
	if len(added) == 0 {
		return nil, fmt.Errorf("%w: participant name must be 1-%d characters", ErrValidation, maxParticipantNameLen)
	}
	return &added[0], nil
}

// AddParticipants adds a batch of names in one transaction. Invalid
// names (empty or over-long) are skipped and reported back; a name
// already on the roster fails the whole batch.
func (s *TournamentService) AddParticipants(ctx context.Context, tournamentID uuid.UUID, names []string) ([]league.Participant, []string, error) {
	if _, err := s.store.GetTournament(ctx, tournamentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrTournamentNotFound
		}
		return nil, nil, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	var participants []league.Participant
	var skipped []string
	seen := make(map[string]bool)

	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" || len(name) > maxParticipantNameLen {
			skipped = append(skipped, raw)
			continue
		}
		if seen[name] {
			return nil, nil, fmt.Errorf("%w: %q", ErrNameConflict, name)
		}
		exists, err := s.store.ParticipantNameExists(ctx, tx, tournamentID, name)
		if err != nil {
			return nil, nil, err
		}
		if exists {
			return nil, nil, fmt.Errorf("%w: %q", ErrNameConflict, name)
		}
		seen[name] = true

		participants = append(participants, league.Participant{
			ID:           uuid.New(),
			TournamentID: tournamentID,
			Name:         name,
		})
	}

	if err := s.store.CreateParticipants(ctx, tx, participants); err != nil {
		return nil, nil, err
	}

	return participants, skipped, tx.Commit()
}

func (s *TournamentService) Participants(ctx context.Context, tournamentID uuid.UUID) ([]league.Participant, error) {
	return s.store.GetParticipants(ctx, tournamentID)
}

func (s *TournamentService) ParticipantsWithoutClub(ctx context.Context, tournamentID uuid.UUID) ([]league.Participant, error) {
	return s.store.GetParticipantsWithoutClub(ctx, tournamentID)
}

// AssignClub sets a participant's club. Reassignment overwrites.
func (s *TournamentService) AssignClub(ctx context.Context, participantID uuid.UUID, club string) (*league.Participant, error) {
	if !clubs.Contains(club) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownClub, club)
	}

	participant, err := s.store.GetParticipant(ctx, participantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}

	if err := s.store.UpdateParticipantClub(ctx, participantID, club); err != nil {
		return nil, err
	}
	participant.Club = utils.Ptr(club)
	return participant, nil
}

// AssignRandomClubs deals a shuffled flat club list positionally to the
// participants still missing a club, in storage order. If the pool runs
// out first, the tail of the roster stays unassigned. Returns the
// number assigned.
func (s *TournamentService) AssignRandomClubs(ctx context.Context, tournamentID uuid.UUID) (int, error) {
	unassigned, err := s.store.GetParticipantsWithoutClub(ctx, tournamentID)
	if err != nil {
		return 0, err
	}

	pool := clubs.All()
	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	assigned := 0
	for i, participant := range unassigned {
		if i >= len(pool) {
			break
		}
		if err := s.store.UpdateParticipantClubTx(ctx, tx, participant.ID, pool[i]); err != nil {
			return 0, err
		}
		assigned++
	}

	return assigned, tx.Commit()
}
