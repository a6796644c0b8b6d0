package wizard

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexedwards/scs/v2/memstore"
	"github.com/google/uuid"
)

// State names the wizard step a session is waiting on. The zero value
// means no wizard is in progress for that channel/user pair.
type State string

const (
	StateIdle State = ""

	StateAwaitingTournamentName   State = "awaiting_tournament_name"
	StateAwaitingTournamentRounds State = "awaiting_tournament_rounds"
	StateAwaitingTournamentPrize  State = "awaiting_tournament_prize"

	StateAwaitingParticipantName  State = "awaiting_participant_name"
	StateAwaitingParticipantBatch State = "awaiting_participant_batch"

	StateSelectingClubParticipant State = "selecting_club_participant"
	StateSelectingClubCountry     State = "selecting_club_country"
	StateSelectingClub            State = "selecting_club"

	StateSelectingMatch     State = "selecting_match"
	StateAwaitingHomeGoals  State = "awaiting_home_goals"
	StateAwaitingAwayGoals  State = "awaiting_away_goals"
	StateConfirmingSchedule State = "confirming_schedule"
)

// TournamentDraft accumulates answers during tournament creation.
type TournamentDraft struct {
	Name   string `json:"name"`
	Rounds int    `json:"rounds"`
}

// ClubDraft tracks progress through the club assignment flow.
type ClubDraft struct {
	ParticipantID   uuid.UUID `json:"participant_id"`
	ParticipantName string    `json:"participant_name"`
	Country         string    `json:"country"`
}

// ScoreDraft tracks progress through score entry. Correction is set
// when the flow was started to overwrite an already recorded result.
type ScoreDraft struct {
	MatchID    uuid.UUID `json:"match_id"`
	MatchLabel string    `json:"match_label"`
	Correction bool      `json:"correction"`
	HomeGoals  *int      `json:"home_goals,omitempty"`
}

// Session is the per-channel, per-user wizard scratchpad. It is a
// plain value: all mutation goes through the engine, which writes the
// updated copy back to the store.
type Session struct {
	State State `json:"state"`

	Draft TournamentDraft `json:"draft"`
	Club  ClubDraft       `json:"club"`
	Score ScoreDraft      `json:"score"`
}

// SessionStore keeps wizard sessions in memory with TTL eviction, so
// an abandoned wizard disappears on its own instead of pinning memory.
type SessionStore struct {
	store *memstore.MemStore
	ttl   time.Duration
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		store: memstore.New(),
		ttl:   ttl,
	}
}

func sessionKey(channelID, userID int64) string {
	return fmt.Sprintf("%d:%d", channelID, userID)
}

// Get returns the current session for the pair, or an idle zero
// session when none exists or the previous one expired.
func (s *SessionStore) Get(channelID, userID int64) (Session, error) {
	b, found, err := s.store.Find(sessionKey(channelID, userID))
	if err != nil {
		return Session{}, fmt.Errorf("find session: %w", err)
	}
	if !found {
		return Session{}, nil
	}

	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		// A corrupt session is unrecoverable, start over.
		_ = s.store.Delete(sessionKey(channelID, userID))
		return Session{}, nil
	}
	return sess, nil
}

// Put stores the session and refreshes its TTL.
func (s *SessionStore) Put(channelID, userID int64, sess Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.store.Commit(sessionKey(channelID, userID), b, time.Now().Add(s.ttl)); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Reset discards any in-progress wizard for the pair.
func (s *SessionStore) Reset(channelID, userID int64) error {
	return s.store.Delete(sessionKey(channelID, userID))
}
