package wizard

import (
	"errors"
	"strings"
)

// ErrBadPayload is returned when an action arrives with fields the
// current step cannot interpret, usually a stale or tampered client.
var ErrBadPayload = errors.New("malformed wizard payload")

// ActionKind names a wizard input. Kinds either start a flow, answer
// the step the session is waiting on, or run a one-shot command.
type ActionKind string

const (
	ActionOpenMenu ActionKind = "menu"

	ActionBeginCreateTournament ActionKind = "create_tournament"
	ActionBeginAddParticipant   ActionKind = "add_participant"
	ActionBeginAddBatch         ActionKind = "add_participants"
	ActionBeginClubAssignment   ActionKind = "assign_clubs"
	ActionBeginScoreEntry       ActionKind = "enter_score"
	ActionBeginCorrection       ActionKind = "correct_score"

	ActionSubmitText      ActionKind = "text"
	ActionPickParticipant ActionKind = "pick_participant"
	ActionPickCountry     ActionKind = "pick_country"
	ActionPickClub        ActionKind = "pick_club"
	ActionPickMatch       ActionKind = "pick_match"
	ActionPickGoals       ActionKind = "pick_goals"
	ActionConfirm         ActionKind = "confirm"
	ActionCancel          ActionKind = "cancel"

	ActionAssignRandomClubs ActionKind = "random_clubs"
	ActionGenerateSchedule  ActionKind = "generate_schedule"
	ActionShowSchedule      ActionKind = "show_schedule"
	ActionShowStandings     ActionKind = "show_standings"
	ActionListTournaments   ActionKind = "list_tournaments"
	ActionSelectTournament  ActionKind = "select_tournament"
	ActionEndTournament     ActionKind = "end_tournament"
)

// Action is one wizard input: the kind plus whichever value field the
// kind carries. Unused fields stay zero.
type Action struct {
	Kind ActionKind

	// Text holds free-form input for text steps and the value of
	// pick actions (participant ID, country name, club name,
	// match reference, tournament ID).
	Text string

	// Goals is the picked goal count for pick_goals.
	Goals int
}

var textValued = map[ActionKind]bool{
	ActionPickParticipant:  true,
	ActionPickCountry:      true,
	ActionPickClub:         true,
	ActionPickMatch:        true,
	ActionSelectTournament: true,
}

// ParseAction builds an Action from a kind name and raw field values,
// as they arrive off the wire.
func ParseAction(kind, value string, goals int) (Action, error) {
	k := ActionKind(strings.TrimSpace(kind))
	switch k {
	case ActionOpenMenu, ActionBeginCreateTournament, ActionBeginAddParticipant,
		ActionBeginAddBatch, ActionBeginClubAssignment, ActionBeginScoreEntry,
		ActionBeginCorrection, ActionConfirm, ActionCancel,
		ActionAssignRandomClubs, ActionGenerateSchedule, ActionShowSchedule,
		ActionShowStandings, ActionListTournaments, ActionEndTournament:
		return Action{Kind: k}, nil
	case ActionPickGoals:
		if goals < 0 || goals > maxGoalChoice {
			return Action{}, ErrBadPayload
		}
		return Action{Kind: k, Goals: goals}, nil
	case ActionSubmitText:
		// Empty text is meaningful: it picks the default on the
		// rounds and prize steps.
		return Action{Kind: k, Text: value}, nil
	default:
		if textValued[k] {
			if strings.TrimSpace(value) == "" {
				return Action{}, ErrBadPayload
			}
			return Action{Kind: k, Text: value}, nil
		}
		return Action{}, ErrBadPayload
	}
}
