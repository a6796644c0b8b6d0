package league

import (
	"time"

	"github.com/google/uuid"
)

type TournamentStatus string

const (
	TournamentActive    TournamentStatus = "active"
	TournamentCompleted TournamentStatus = "completed"
)

const (
	// DefaultRounds is the round count used when none is given: a
	// home-and-away double round-robin.
	DefaultRounds = 2

	// DefaultPrize is the placeholder prize label.
	DefaultPrize = "a prize"
)

type Tournament struct {
	ID        uuid.UUID        `db:"id"`
	ChannelID int64            `db:"channel_id"`
	Name      string           `db:"name"`
	Prize     string           `db:"prize"`
	Rounds    int              `db:"rounds"`
	Status    TournamentStatus `db:"status"`
	CreatedAt time.Time        `db:"created_at"`
}
