package league

import (
	"time"

	"github.com/google/uuid"
)

// Match is a single fixture between two participants, identified within
// its tournament by a stable 1-based sequence number assigned at
// schedule generation time.
type Match struct {
	ID           uuid.UUID `db:"id"`
	TournamentID uuid.UUID `db:"tournament_id"`

	Seq  int    `db:"seq"`
	Home string `db:"home"`
	Away string `db:"away"`

	HomeGoals *int `db:"home_goals"`
	AwayGoals *int `db:"away_goals"`

	Played bool `db:"played"`

	CreatedAt time.Time `db:"created_at"`
}

// HasResult reports whether both goal counts are recorded. Played is
// kept in lockstep with this: one is never set without the other.
func (m *Match) HasResult() bool {
	return m.HomeGoals != nil && m.AwayGoals != nil
}
