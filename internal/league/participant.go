package league

import "github.com/google/uuid"

type Participant struct {
	ID           uuid.UUID `db:"id"`
	TournamentID uuid.UUID `db:"tournament_id"`
	Name         string    `db:"name"`
	Club         *string   `db:"club"`
}

func (p *Participant) HasClub() bool {
	return p.Club != nil && *p.Club != ""
}
