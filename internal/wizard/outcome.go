package wizard

import (
	"github.com/foreveruup/fifa-bot/internal/league"
	"github.com/foreveruup/fifa-bot/internal/service"
)

// OutcomeKind tells the presentation layer what shape of reply the
// engine produced.
type OutcomeKind string

const (
	// OutcomePrompt asks the user for the next wizard input.
	OutcomePrompt OutcomeKind = "prompt"
	// OutcomeInfo is a terminal confirmation or notice.
	OutcomeInfo OutcomeKind = "info"
	// OutcomeError reports a rejected input or aborted wizard.
	OutcomeError OutcomeKind = "error"

	OutcomeStandings   OutcomeKind = "standings"
	OutcomeSchedule    OutcomeKind = "schedule"
	OutcomeResult      OutcomeKind = "result"
	OutcomeTournaments OutcomeKind = "tournaments"
)

// Choice is one selectable option attached to a prompt.
type Choice struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Outcome is the engine's reply to a single action. Text is always
// set; the structured fields are filled per Kind so the transport can
// render richer views than plain text.
type Outcome struct {
	Kind  OutcomeKind `json:"kind"`
	Text  string      `json:"text"`
	State State       `json:"state,omitempty"`

	Choices         []Choice `json:"choices,omitempty"`
	RequiresConfirm bool     `json:"requires_confirm,omitempty"`

	Standings   []league.StandingRow `json:"standings,omitempty"`
	Schedule    []league.Match       `json:"schedule,omitempty"`
	Tournaments []league.Tournament  `json:"tournaments,omitempty"`
	Result      *service.ResultData  `json:"result,omitempty"`
}

func promptOutcome(state State, text string, choices ...Choice) Outcome {
	return Outcome{Kind: OutcomePrompt, Text: text, State: state, Choices: choices}
}

func infoOutcome(text string) Outcome {
	return Outcome{Kind: OutcomeInfo, Text: text}
}

func errorOutcome(text string) Outcome {
	return Outcome{Kind: OutcomeError, Text: text}
}
