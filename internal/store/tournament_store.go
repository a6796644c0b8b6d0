package store

import (
	"context"

	"github.com/foreveruup/fifa-bot/internal/league"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type TournamentStore struct {
	db *sqlx.DB
}

func NewTournamentStore(db *sqlx.DB) *TournamentStore {
	return &TournamentStore{db: db}
}

func (s *TournamentStore) CreateTournament(ctx context.Context, tx *sqlx.Tx, tournament *league.Tournament) error {
	_, err := tx.NamedExecContext(ctx, `INSERT INTO tournaments (id, channel_id, name, prize, rounds, status, created_at)
        VALUES (:id, :channel_id, :name, :prize, :rounds, :status, :created_at)`, tournament)
	return err
}

func (s *TournamentStore) GetTournament(ctx context.Context, id uuid.UUID) (*league.Tournament, error) {
	var tournament league.Tournament
	err := s.db.GetContext(ctx, &tournament, "SELECT * FROM tournaments WHERE id = ?", id)
	return &tournament, err
}

func (s *TournamentStore) GetTournamentsByChannel(ctx context.Context, channelID int64) ([]league.Tournament, error) {
	var tournaments []league.Tournament
	err := s.db.SelectContext(ctx, &tournaments, "SELECT * FROM tournaments WHERE channel_id = ? ORDER BY created_at DESC", channelID)
	return tournaments, err
}

func (s *TournamentStore) UpdateTournamentStatus(ctx context.Context, id uuid.UUID, status league.TournamentStatus) error {
	_, err := s.db.ExecContext(ctx, "UPDATE tournaments SET status = ? WHERE id = ?", status, id)
	return err
}

// CompleteChannelTournaments marks every tournament of a channel
// completed and removes their rosters and fixtures. Legacy
// single-tournament-per-channel mode only.
func (s *TournamentStore) CompleteChannelTournaments(ctx context.Context, tx *sqlx.Tx, channelID int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM matches WHERE tournament_id IN
        (SELECT id FROM tournaments WHERE channel_id = ?)`, channelID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM participants WHERE tournament_id IN
        (SELECT id FROM tournaments WHERE channel_id = ?)`, channelID); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, "UPDATE tournaments SET status = ? WHERE channel_id = ?", league.TournamentCompleted, channelID)
	return err
}

func (s *TournamentStore) CreateParticipants(ctx context.Context, tx *sqlx.Tx, participants []league.Participant) error {
	if len(participants) == 0 {
		return nil
	}
	_, err := tx.NamedExecContext(ctx, `INSERT INTO participants (id, tournament_id, name, club)
            VALUES (:id, :tournament_id, :name, :club)`, participants)
	return err
}

// GetParticipants returns the roster in storage (insertion) order.
func (s *TournamentStore) GetParticipants(ctx context.Context, tournamentID uuid.UUID) ([]league.Participant, error) {
	var participants []league.Participant
	err := s.db.SelectContext(ctx, &participants, "SELECT * FROM participants WHERE tournament_id = ? ORDER BY rowid ASC", tournamentID)
	return participants, err
}

func (s *TournamentStore) GetParticipantsWithoutClub(ctx context.Context, tournamentID uuid.UUID) ([]league.Participant, error) {
	var participants []league.Participant
	err := s.db.SelectContext(ctx, &participants,
		"SELECT * FROM participants WHERE tournament_id = ? AND (club IS NULL OR club = '') ORDER BY rowid ASC", tournamentID)
	return participants, err
}

func (s *TournamentStore) GetParticipant(ctx context.Context, id uuid.UUID) (*league.Participant, error) {
	var participant league.Participant
	err := s.db.GetContext(ctx, &participant, "SELECT * FROM participants WHERE id = ?", id)
	return &participant, err
}

func (s *TournamentStore) ParticipantNameExists(ctx context.Context, tx *sqlx.Tx, tournamentID uuid.UUID, name string) (bool, error) {
	var count int
	err := tx.GetContext(ctx, &count, "SELECT COUNT(1) FROM participants WHERE tournament_id = ? AND name = ?", tournamentID, name)
	return count > 0, err
}

func (s *TournamentStore) UpdateParticipantClub(ctx context.Context, id uuid.UUID, club string) error {
	_, err := s.db.ExecContext(ctx, "UPDATE participants SET club = ? WHERE id = ?", club, id)
	return err
}

func (s *TournamentStore) UpdateParticipantClubTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, club string) error {
	_, err := tx.ExecContext(ctx, "UPDATE participants SET club = ? WHERE id = ?", club, id)
	return err
}

func (s *TournamentStore) CreateMatches(ctx context.Context, tx *sqlx.Tx, matches []league.Match) error {
	if len(matches) == 0 {
		return nil
	}
	_, err := tx.NamedExecContext(ctx, `INSERT INTO matches (id, tournament_id, seq, home, away, home_goals, away_goals, played)
			VALUES (:id, :tournament_id, :seq, :home, :away, :home_goals, :away_goals, :played)`, matches)
	return err
}

func (s *TournamentStore) DeleteMatches(ctx context.Context, tx *sqlx.Tx, tournamentID uuid.UUID) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM matches WHERE tournament_id = ?", tournamentID)
	return err
}

func (s *TournamentStore) GetMatches(ctx context.Context, tournamentID uuid.UUID) ([]league.Match, error) {
	var matches []league.Match
	err := s.db.SelectContext(ctx, &matches, "SELECT * FROM matches WHERE tournament_id = ? ORDER BY seq ASC", tournamentID)
	return matches, err
}

// GetSchedule returns matches in presentation order: unplayed fixtures
// first, then by sequence number.
func (s *TournamentStore) GetSchedule(ctx context.Context, tournamentID uuid.UUID) ([]league.Match, error) {
	var matches []league.Match
	err := s.db.SelectContext(ctx, &matches, "SELECT * FROM matches WHERE tournament_id = ? ORDER BY played ASC, seq ASC", tournamentID)
	return matches, err
}

func (s *TournamentStore) GetMatch(ctx context.Context, tournamentID, id uuid.UUID) (*league.Match, error) {
	var match league.Match
	err := s.db.GetContext(ctx, &match, "SELECT * FROM matches WHERE tournament_id = ? AND id = ?", tournamentID, id)
	return &match, err
}

func (s *TournamentStore) GetMatchTx(ctx context.Context, tx *sqlx.Tx, tournamentID, id uuid.UUID) (*league.Match, error) {
	var match league.Match
	err := tx.GetContext(ctx, &match, "SELECT * FROM matches WHERE tournament_id = ? AND id = ?", tournamentID, id)
	return &match, err
}

func (s *TournamentStore) GetMatchBySeq(ctx context.Context, tournamentID uuid.UUID, seq int) (*league.Match, error) {
	var match league.Match
	err := s.db.GetContext(ctx, &match, "SELECT * FROM matches WHERE tournament_id = ? AND seq = ?", tournamentID, seq)
	return &match, err
}

func (s *TournamentStore) UpdateMatchResult(ctx context.Context, tx *sqlx.Tx, match *league.Match) error {
	_, err := tx.NamedExecContext(ctx, `UPDATE matches
        SET home_goals = :home_goals, away_goals = :away_goals, played = :played
        WHERE id = :id`, match)
	return err
}

func (s *TournamentStore) HasMatches(ctx context.Context, tournamentID uuid.UUID) (bool, error) {
	var count int
	err := s.db.GetContext(ctx, &count, "SELECT COUNT(1) FROM matches WHERE tournament_id = ?", tournamentID)
	return count > 0, err
}

// UpsertSelection points a channel at its current tournament,
// last-write-wins.
func (s *TournamentStore) UpsertSelection(ctx context.Context, tx *sqlx.Tx, channelID int64, tournamentID uuid.UUID) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO channel_selections (channel_id, tournament_id) VALUES (?, ?)
        ON CONFLICT(channel_id) DO UPDATE SET tournament_id = excluded.tournament_id`, channelID, tournamentID)
	return err
}

func (s *TournamentStore) GetSelectedTournament(ctx context.Context, channelID int64) (*league.Tournament, error) {
	var tournament league.Tournament
	err := s.db.GetContext(ctx, &tournament, `SELECT t.* FROM tournaments t
        JOIN channel_selections cs ON t.id = cs.tournament_id
        WHERE cs.channel_id = ?`, channelID)
	return &tournament, err
}
