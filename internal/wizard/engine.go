package wizard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/foreveruup/fifa-bot/internal/clubs"
	"github.com/foreveruup/fifa-bot/internal/league"
	"github.com/foreveruup/fifa-bot/internal/service"
)

const maxGoalChoice = 10

// Ctx identifies who issued an action and where.
type Ctx struct {
	ChannelID int64
	UserID    int64
	Admin     bool
}

// Engine drives the step-by-step conversations. It owns no domain
// logic itself: every answer a wizard collects ends up in a single
// service call, so direct commands and wizard flows stay equivalent.
type Engine struct {
	sessions    *SessionStore
	tournaments *service.TournamentService
	schedule    *service.ScheduleService
	standings   *service.StandingsService
	matches     *service.MatchService
}

func NewEngine(
	sessions *SessionStore,
	tournaments *service.TournamentService,
	schedule *service.ScheduleService,
	standings *service.StandingsService,
	matches *service.MatchService,
) *Engine {
	return &Engine{
		sessions:    sessions,
		tournaments: tournaments,
		schedule:    schedule,
		standings:   standings,
		matches:     matches,
	}
}

// HandleRaw parses the wire fields and dispatches. A payload that does
// not parse resets the session so the user is never stuck mid-wizard.
func (e *Engine) HandleRaw(ctx context.Context, who Ctx, kind, value string, goals int) (Outcome, error) {
	act, err := ParseAction(kind, value, goals)
	if err != nil {
		if rerr := e.sessions.Reset(who.ChannelID, who.UserID); rerr != nil {
			return Outcome{}, rerr
		}
		return errorOutcome("That didn't make sense, so I cancelled the current step. Open the menu to start again."), nil
	}
	return e.Handle(ctx, who, act)
}

// Handle runs one action against the user's session and returns what
// to show them.
func (e *Engine) Handle(ctx context.Context, who Ctx, act Action) (Outcome, error) {
	sess, err := e.sessions.Get(who.ChannelID, who.UserID)
	if err != nil {
		return Outcome{}, err
	}

	switch act.Kind {
	case ActionOpenMenu:
		return e.openMenu(who, sess)
	case ActionCancel:
		if err := e.sessions.Reset(who.ChannelID, who.UserID); err != nil {
			return Outcome{}, err
		}
		return infoOutcome("Cancelled."), nil

	case ActionBeginCreateTournament:
		return e.beginCreateTournament(who)
	case ActionBeginAddParticipant:
		return e.beginAddParticipant(ctx, who, false)
	case ActionBeginAddBatch:
		return e.beginAddParticipant(ctx, who, true)
	case ActionBeginClubAssignment:
		return e.beginClubAssignment(ctx, who)
	case ActionBeginScoreEntry:
		return e.beginScoreEntry(ctx, who, false)
	case ActionBeginCorrection:
		return e.beginScoreEntry(ctx, who, true)

	case ActionSubmitText:
		return e.submitText(ctx, who, sess, act.Text)
	case ActionPickParticipant:
		return e.pickParticipant(ctx, who, sess, act.Text)
	case ActionPickCountry:
		return e.pickCountry(who, sess, act.Text)
	case ActionPickClub:
		return e.pickClub(ctx, who, sess, act.Text)
	case ActionPickMatch:
		return e.pickMatch(ctx, who, sess, act.Text)
	case ActionPickGoals:
		return e.pickGoals(ctx, who, sess, act.Goals)
	case ActionConfirm:
		return e.confirm(ctx, who, sess)

	case ActionAssignRandomClubs:
		return e.assignRandomClubs(ctx, who)
	case ActionGenerateSchedule:
		return e.generateSchedule(ctx, who, sess)
	case ActionShowSchedule:
		return e.showSchedule(ctx, who)
	case ActionShowStandings:
		return e.showStandings(ctx, who)
	case ActionListTournaments:
		return e.listTournaments(ctx, who)
	case ActionSelectTournament:
		return e.selectTournament(ctx, who, act.Text)
	case ActionEndTournament:
		return e.endTournament(ctx, who)
	}

	return e.abort(who, "Unknown action. Open the menu to see what's available.")
}

// abort drops whatever wizard was in progress and reports why.
func (e *Engine) abort(who Ctx, text string) (Outcome, error) {
	if err := e.sessions.Reset(who.ChannelID, who.UserID); err != nil {
		return Outcome{}, err
	}
	return errorOutcome(text), nil
}

func (e *Engine) save(who Ctx, sess Session, out Outcome) (Outcome, error) {
	if err := e.sessions.Put(who.ChannelID, who.UserID, sess); err != nil {
		return Outcome{}, err
	}
	return out, nil
}

func (e *Engine) openMenu(who Ctx, sess Session) (Outcome, error) {
	// Opening the menu abandons any half-finished wizard.
	if sess.State != StateIdle {
		if err := e.sessions.Reset(who.ChannelID, who.UserID); err != nil {
			return Outcome{}, err
		}
	}

	choices := []Choice{
		{Label: "Show standings", Value: string(ActionShowStandings)},
		{Label: "Show schedule", Value: string(ActionShowSchedule)},
		{Label: "Enter a score", Value: string(ActionBeginScoreEntry)},
		{Label: "Correct a score", Value: string(ActionBeginCorrection)},
		{Label: "Assign clubs", Value: string(ActionBeginClubAssignment)},
		{Label: "Tournaments", Value: string(ActionListTournaments)},
	}
	if who.Admin {
		choices = append(choices,
			Choice{Label: "New tournament", Value: string(ActionBeginCreateTournament)},
			Choice{Label: "Add participant", Value: string(ActionBeginAddParticipant)},
			Choice{Label: "Add several participants", Value: string(ActionBeginAddBatch)},
			Choice{Label: "Random clubs for everyone", Value: string(ActionAssignRandomClubs)},
			Choice{Label: "Generate schedule", Value: string(ActionGenerateSchedule)},
			Choice{Label: "Finish tournament", Value: string(ActionEndTournament)},
		)
	}
	out := Outcome{Kind: OutcomePrompt, Text: "What would you like to do?", Choices: choices}
	return out, nil
}

func (e *Engine) beginCreateTournament(who Ctx) (Outcome, error) {
	if !who.Admin {
		return e.abort(who, "Only admins can create tournaments.")
	}
	sess := Session{State: StateAwaitingTournamentName}
	return e.save(who, sess, promptOutcome(sess.State, "What should the tournament be called?"))
}

func (e *Engine) beginAddParticipant(ctx context.Context, who Ctx, batch bool) (Outcome, error) {
	if !who.Admin {
		return e.abort(who, "Only admins can add participants.")
	}
	if _, err := e.activeTournament(ctx, who); err != nil {
		return e.domainError(who, err)
	}

	if batch {
		sess := Session{State: StateAwaitingParticipantBatch}
		return e.save(who, sess, promptOutcome(sess.State, "Send the participants, one per line or comma-separated."))
	}
	sess := Session{State: StateAwaitingParticipantName}
	return e.save(who, sess, promptOutcome(sess.State, "Who is joining? Send one name."))
}

func (e *Engine) beginClubAssignment(ctx context.Context, who Ctx) (Outcome, error) {
	tournament, err := e.activeTournament(ctx, who)
	if err != nil {
		return e.domainError(who, err)
	}

	unassigned, err := e.tournaments.ParticipantsWithoutClub(ctx, tournament.ID)
	if err != nil {
		return Outcome{}, err
	}
	if len(unassigned) == 0 {
		if err := e.sessions.Reset(who.ChannelID, who.UserID); err != nil {
			return Outcome{}, err
		}
		return infoOutcome("Everyone already has a club."), nil
	}

	sess := Session{State: StateSelectingClubParticipant}
	return e.save(who, sess, promptOutcome(sess.State, "Who gets a club?", participantChoices(unassigned)...))
}

func (e *Engine) beginScoreEntry(ctx context.Context, who Ctx, correction bool) (Outcome, error) {
	tournament, err := e.activeTournament(ctx, who)
	if err != nil {
		return e.domainError(who, err)
	}

	var candidates []league.Match
	if correction {
		candidates, err = e.matches.Finished(ctx, tournament.ID)
	} else {
		candidates, err = e.matches.Pending(ctx, tournament.ID)
	}
	if err != nil {
		return Outcome{}, err
	}
	if len(candidates) == 0 {
		if err := e.sessions.Reset(who.ChannelID, who.UserID); err != nil {
			return Outcome{}, err
		}
		if correction {
			return infoOutcome("No finished matches to correct yet."), nil
		}
		return infoOutcome("No matches left to play. Generate a schedule first, or finish the tournament."), nil
	}

	sess := Session{State: StateSelectingMatch, Score: ScoreDraft{Correction: correction}}
	prompt := "Which match?"
	if correction {
		prompt = "Which result needs correcting?"
	}
	return e.save(who, sess, promptOutcome(sess.State, prompt, matchChoices(candidates)...))
}

func (e *Engine) submitText(ctx context.Context, who Ctx, sess Session, text string) (Outcome, error) {
	switch sess.State {
	case StateAwaitingTournamentName:
		name := strings.TrimSpace(text)
		if name == "" {
			return promptOutcome(sess.State, "The name can't be empty. What should the tournament be called?"), nil
		}
		sess.Draft.Name = name
		sess.State = StateAwaitingTournamentRounds
		return e.save(who, sess, promptOutcome(sess.State,
			fmt.Sprintf("How many times does each pair play? Send a number, or nothing for %d.", league.DefaultRounds)))

	case StateAwaitingTournamentRounds:
		trimmed := strings.TrimSpace(text)
		rounds := league.DefaultRounds
		if trimmed != "" {
			n, err := strconv.Atoi(trimmed)
			if err != nil || n < 1 {
				return promptOutcome(sess.State, "That's not a round count. Send a number like 1 or 2."), nil
			}
			rounds = n
		}
		sess.Draft.Rounds = rounds
		sess.State = StateAwaitingTournamentPrize
		return e.save(who, sess, promptOutcome(sess.State,
			"What does the winner get? Send nothing for the default."))

	case StateAwaitingTournamentPrize:
		tournament, err := e.tournaments.Create(ctx, who.ChannelID, sess.Draft.Name, sess.Draft.Rounds, strings.TrimSpace(text))
		if err != nil {
			return e.domainError(who, err)
		}
		if err := e.sessions.Reset(who.ChannelID, who.UserID); err != nil {
			return Outcome{}, err
		}
		return infoOutcome(fmt.Sprintf("Tournament %q is on. Playing for: %s. Now add participants.",
			tournament.Name, tournament.Prize)), nil

	case StateAwaitingParticipantName:
		tournament, err := e.activeTournament(ctx, who)
		if err != nil {
			return e.domainError(who, err)
		}
		participant, err := e.tournaments.AddParticipant(ctx, tournament.ID, text)
		if err != nil {
			if errors.Is(err, service.ErrValidation) || errors.Is(err, service.ErrNameConflict) {
				return promptOutcome(sess.State, rejectionText(err)+" Try another name."), nil
			}
			return e.domainError(who, err)
		}
		if err := e.sessions.Reset(who.ChannelID, who.UserID); err != nil {
			return Outcome{}, err
		}
		return infoOutcome(fmt.Sprintf("%s is in.", participant.Name)), nil

	case StateAwaitingParticipantBatch:
		tournament, err := e.activeTournament(ctx, who)
		if err != nil {
			return e.domainError(who, err)
		}
		added, skipped, err := e.tournaments.AddParticipants(ctx, tournament.ID, splitNames(text))
		if err != nil {
			if errors.Is(err, service.ErrValidation) || errors.Is(err, service.ErrNameConflict) {
				return promptOutcome(sess.State, rejectionText(err)+" Send the list again."), nil
			}
			return e.domainError(who, err)
		}
		if err := e.sessions.Reset(who.ChannelID, who.UserID); err != nil {
			return Outcome{}, err
		}
		msg := fmt.Sprintf("Added %d participants.", len(added))
		if len(skipped) > 0 {
			msg += fmt.Sprintf(" Skipped: %s.", strings.Join(skipped, ", "))
		}
		return infoOutcome(msg), nil
	}

	return e.abort(who, "I wasn't waiting for text. Open the menu to start something.")
}

func (e *Engine) pickParticipant(ctx context.Context, who Ctx, sess Session, value string) (Outcome, error) {
	if sess.State != StateSelectingClubParticipant {
		return e.abort(who, "That selection is stale. Open the menu to start again.")
	}
	participantID, err := uuid.Parse(value)
	if err != nil {
		return e.abort(who, "That selection is stale. Open the menu to start again.")
	}

	tournament, err := e.activeTournament(ctx, who)
	if err != nil {
		return e.domainError(who, err)
	}
	participants, err := e.tournaments.Participants(ctx, tournament.ID)
	if err != nil {
		return Outcome{}, err
	}
	var picked *league.Participant
	for i := range participants {
		if participants[i].ID == participantID {
			picked = &participants[i]
			break
		}
	}
	if picked == nil {
		return e.abort(who, "That participant is gone. Open the menu to start again.")
	}

	sess.Club = ClubDraft{ParticipantID: picked.ID, ParticipantName: picked.Name}
	sess.State = StateSelectingClubCountry
	return e.save(who, sess, promptOutcome(sess.State,
		fmt.Sprintf("Which league for %s?", picked.Name), countryChoices()...))
}

func (e *Engine) pickCountry(who Ctx, sess Session, country string) (Outcome, error) {
	if sess.State != StateSelectingClubCountry {
		return e.abort(who, "That selection is stale. Open the menu to start again.")
	}
	clubList, ok := clubs.ByCountry(country)
	if !ok {
		return e.abort(who, "I don't know that league. Open the menu to start again.")
	}

	sess.Club.Country = country
	sess.State = StateSelectingClub
	choices := make([]Choice, 0, len(clubList))
	for _, club := range clubList {
		choices = append(choices, Choice{Label: club, Value: club})
	}
	return e.save(who, sess, promptOutcome(sess.State,
		fmt.Sprintf("Pick a club for %s.", sess.Club.ParticipantName), choices...))
}

func (e *Engine) pickClub(ctx context.Context, who Ctx, sess Session, club string) (Outcome, error) {
	if sess.State != StateSelectingClub {
		return e.abort(who, "That selection is stale. Open the menu to start again.")
	}

	participant, err := e.tournaments.AssignClub(ctx, sess.Club.ParticipantID, club)
	if err != nil {
		return e.domainError(who, err)
	}

	tournament, err := e.activeTournament(ctx, who)
	if err != nil {
		return e.domainError(who, err)
	}
	unassigned, err := e.tournaments.ParticipantsWithoutClub(ctx, tournament.ID)
	if err != nil {
		return Outcome{}, err
	}

	assigned := fmt.Sprintf("%s %s now plays as %s.", clubs.Flag(sess.Club.Country), participant.Name, club)
	if len(unassigned) == 0 {
		if err := e.sessions.Reset(who.ChannelID, who.UserID); err != nil {
			return Outcome{}, err
		}
		return infoOutcome(assigned + " Everyone has a club."), nil
	}

	sess = Session{State: StateSelectingClubParticipant}
	return e.save(who, sess, promptOutcome(sess.State,
		assigned+" Who's next?", participantChoices(unassigned)...))
}

func (e *Engine) pickMatch(ctx context.Context, who Ctx, sess Session, value string) (Outcome, error) {
	if sess.State != StateSelectingMatch {
		return e.abort(who, "That selection is stale. Open the menu to start again.")
	}
	matchID, err := uuid.Parse(value)
	if err != nil {
		return e.abort(who, "That selection is stale. Open the menu to start again.")
	}

	tournament, err := e.activeTournament(ctx, who)
	if err != nil {
		return e.domainError(who, err)
	}
	match, err := e.matches.Match(ctx, tournament.ID, matchID)
	if err != nil {
		return e.domainError(who, err)
	}
	if !sess.Score.Correction && match.Played {
		return e.abort(who, "That match already has a result. Use the correction flow to change it.")
	}
	if sess.Score.Correction && !match.Played {
		return e.abort(who, "That match hasn't been played yet, nothing to correct.")
	}

	sess.Score.MatchID = match.ID
	sess.Score.MatchLabel = fmt.Sprintf("%s vs %s", match.Home, match.Away)
	sess.State = StateAwaitingHomeGoals
	return e.save(who, sess, promptOutcome(sess.State,
		fmt.Sprintf("%s. Goals for %s?", sess.Score.MatchLabel, match.Home), goalChoices()...))
}

func (e *Engine) pickGoals(ctx context.Context, who Ctx, sess Session, goals int) (Outcome, error) {
	switch sess.State {
	case StateAwaitingHomeGoals:
		sess.Score.HomeGoals = &goals
		sess.State = StateAwaitingAwayGoals
		return e.save(who, sess, promptOutcome(sess.State,
			fmt.Sprintf("%s. And the away side?", sess.Score.MatchLabel), goalChoices()...))

	case StateAwaitingAwayGoals:
		if sess.Score.HomeGoals == nil {
			return e.abort(who, "That selection is stale. Open the menu to start again.")
		}
		tournament, err := e.activeTournament(ctx, who)
		if err != nil {
			return e.domainError(who, err)
		}
		result, err := e.matches.RecordResult(ctx, tournament.ID, sess.Score.MatchID,
			*sess.Score.HomeGoals, goals, sess.Score.Correction)
		if err != nil {
			return e.domainError(who, err)
		}
		if err := e.sessions.Reset(who.ChannelID, who.UserID); err != nil {
			return Outcome{}, err
		}
		return Outcome{
			Kind:   OutcomeResult,
			Text:   resultText(result),
			Result: result,
		}, nil
	}

	return e.abort(who, "I wasn't expecting a goal count. Open the menu to start again.")
}

func (e *Engine) confirm(ctx context.Context, who Ctx, sess Session) (Outcome, error) {
	if sess.State != StateConfirmingSchedule {
		return e.abort(who, "Nothing is waiting for confirmation.")
	}
	if err := e.sessions.Reset(who.ChannelID, who.UserID); err != nil {
		return Outcome{}, err
	}
	return e.runGenerate(ctx, who)
}

func (e *Engine) assignRandomClubs(ctx context.Context, who Ctx) (Outcome, error) {
	if !who.Admin {
		return e.abort(who, "Only admins can hand out clubs at random.")
	}
	tournament, err := e.activeTournament(ctx, who)
	if err != nil {
		return e.domainError(who, err)
	}
	count, err := e.tournaments.AssignRandomClubs(ctx, tournament.ID)
	if err != nil {
		return e.domainError(who, err)
	}
	if count == 0 {
		return infoOutcome("Everyone already has a club."), nil
	}
	return infoOutcome(fmt.Sprintf("Dealt clubs to %d participants.", count)), nil
}

func (e *Engine) generateSchedule(ctx context.Context, who Ctx, sess Session) (Outcome, error) {
	if !who.Admin {
		return e.abort(who, "Only admins can generate the schedule.")
	}
	tournament, err := e.activeTournament(ctx, who)
	if err != nil {
		return e.domainError(who, err)
	}

	exists, err := e.schedule.HasMatches(ctx, tournament.ID)
	if err != nil {
		return Outcome{}, err
	}
	if exists {
		sess = Session{State: StateConfirmingSchedule}
		out := promptOutcome(sess.State,
			"A schedule already exists. Regenerating throws away every result. Confirm to proceed.")
		out.RequiresConfirm = true
		out.Choices = []Choice{
			{Label: "Regenerate", Value: string(ActionConfirm)},
			{Label: "Keep the current schedule", Value: string(ActionCancel)},
		}
		return e.save(who, sess, out)
	}
	return e.runGenerate(ctx, who)
}

func (e *Engine) runGenerate(ctx context.Context, who Ctx) (Outcome, error) {
	tournament, err := e.activeTournament(ctx, who)
	if err != nil {
		return e.domainError(who, err)
	}
	matches, err := e.schedule.Generate(ctx, tournament.ID)
	if err != nil {
		return e.domainError(who, err)
	}
	return Outcome{
		Kind:     OutcomeSchedule,
		Text:     fmt.Sprintf("Schedule ready: %d matches.", len(matches)),
		Schedule: matches,
	}, nil
}

func (e *Engine) showSchedule(ctx context.Context, who Ctx) (Outcome, error) {
	tournament, err := e.activeTournament(ctx, who)
	if err != nil {
		return e.domainError(who, err)
	}
	matches, err := e.matches.Schedule(ctx, tournament.ID)
	if err != nil {
		return e.domainError(who, err)
	}
	if len(matches) == 0 {
		return infoOutcome("No schedule yet. Generate one once everyone has joined."), nil
	}
	return Outcome{
		Kind:     OutcomeSchedule,
		Text:     fmt.Sprintf("%s: %d matches.", tournament.Name, len(matches)),
		Schedule: matches,
	}, nil
}

func (e *Engine) showStandings(ctx context.Context, who Ctx) (Outcome, error) {
	tournament, err := e.activeTournament(ctx, who)
	if err != nil {
		return e.domainError(who, err)
	}
	table, err := e.standings.Table(ctx, tournament.ID)
	if err != nil {
		return e.domainError(who, err)
	}
	return Outcome{
		Kind:      OutcomeStandings,
		Text:      fmt.Sprintf("%s. Playing for: %s.", tournament.Name, tournament.Prize),
		Standings: table,
	}, nil
}

func (e *Engine) listTournaments(ctx context.Context, who Ctx) (Outcome, error) {
	tournaments, err := e.tournaments.ListForChannel(ctx, who.ChannelID)
	if err != nil {
		return Outcome{}, err
	}
	if len(tournaments) == 0 {
		return infoOutcome("No tournaments in this channel yet."), nil
	}
	return Outcome{
		Kind:        OutcomeTournaments,
		Text:        fmt.Sprintf("%d tournaments in this channel.", len(tournaments)),
		Tournaments: tournaments,
	}, nil
}

func (e *Engine) selectTournament(ctx context.Context, who Ctx, value string) (Outcome, error) {
	tournamentID, err := uuid.Parse(value)
	if err != nil {
		return e.abort(who, "That tournament reference is not valid.")
	}
	tournament, err := e.tournaments.Select(ctx, who.ChannelID, tournamentID)
	if err != nil {
		return e.domainError(who, err)
	}
	return infoOutcome(fmt.Sprintf("Switched to %q.", tournament.Name)), nil
}

func (e *Engine) endTournament(ctx context.Context, who Ctx) (Outcome, error) {
	if !who.Admin {
		return e.abort(who, "Only admins can finish a tournament.")
	}
	tournament, err := e.activeTournament(ctx, who)
	if err != nil {
		return e.domainError(who, err)
	}
	ended, err := e.tournaments.End(ctx, tournament.ID)
	if err != nil {
		return e.domainError(who, err)
	}
	table, err := e.standings.Table(ctx, ended.ID)
	if err != nil {
		return e.domainError(who, err)
	}
	text := fmt.Sprintf("%q is finished.", ended.Name)
	if len(table) > 0 {
		text = fmt.Sprintf("%q is finished. 🏆 %s takes the %s!", ended.Name, table[0].Name, ended.Prize)
	}
	return Outcome{
		Kind:      OutcomeStandings,
		Text:      text,
		Standings: table,
	}, nil
}

func (e *Engine) activeTournament(ctx context.Context, who Ctx) (*league.Tournament, error) {
	return e.tournaments.Active(ctx, who.ChannelID)
}

// domainError turns service errors the user can act on into Error
// outcomes. Anything else bubbles up as an internal failure.
func (e *Engine) domainError(who Ctx, err error) (Outcome, error) {
	switch {
	case errors.Is(err, service.ErrNoTournamentSelected):
		return e.abort(who, "No tournament is running in this channel. An admin can create one from the menu.")
	case errors.Is(err, service.ErrTournamentNotFound):
		return e.abort(who, "That tournament doesn't exist in this channel.")
	case errors.Is(err, service.ErrParticipantNotFound):
		return e.abort(who, "That participant is gone. Open the menu to start again.")
	case errors.Is(err, service.ErrMatchNotFound):
		return e.abort(who, "That match doesn't exist. Open the menu to start again.")
	case errors.Is(err, service.ErrNotEnoughParticipants):
		return e.abort(who, "At least two participants are needed before generating a schedule.")
	case errors.Is(err, service.ErrUnknownClub):
		return e.abort(who, "I don't know that club. Open the menu to start again.")
	case errors.Is(err, service.ErrAlreadyPlayed):
		return e.abort(who, "That match already has a result. Use the correction flow to change it.")
	case errors.Is(err, service.ErrNotPlayedYet):
		return e.abort(who, "That match hasn't been played yet, nothing to correct.")
	case errors.Is(err, service.ErrNameConflict):
		return e.abort(who, rejectionText(err))
	case errors.Is(err, service.ErrValidation):
		return e.abort(who, rejectionText(err))
	}
	return Outcome{}, err
}

func rejectionText(err error) string {
	switch {
	case errors.Is(err, service.ErrNameConflict):
		return "That name is already taken in this tournament."
	case errors.Is(err, service.ErrValidation):
		return "That input isn't valid."
	}
	return "That didn't work."
}

// splitNames accepts one name per line or a comma-separated list.
func splitNames(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == ','
	})
}

func participantChoices(participants []league.Participant) []Choice {
	choices := make([]Choice, 0, len(participants))
	for _, p := range participants {
		label := p.Name
		if p.HasClub() {
			label = fmt.Sprintf("%s (%s)", p.Name, clubs.ShortName(*p.Club))
		}
		choices = append(choices, Choice{Label: label, Value: p.ID.String()})
	}
	return choices
}

func matchChoices(matches []league.Match) []Choice {
	choices := make([]Choice, 0, len(matches))
	for _, m := range matches {
		label := fmt.Sprintf("%d. %s vs %s", m.Seq, m.Home, m.Away)
		if m.HasResult() {
			label = fmt.Sprintf("%d. %s %d:%d %s", m.Seq, m.Home, *m.HomeGoals, *m.AwayGoals, m.Away)
		}
		choices = append(choices, Choice{Label: label, Value: m.ID.String()})
	}
	return choices
}

func countryChoices() []Choice {
	countries := clubs.Countries()
	choices := make([]Choice, 0, len(countries))
	for _, c := range countries {
		choices = append(choices, Choice{Label: clubs.Flag(c) + " " + c, Value: c})
	}
	return choices
}

func goalChoices() []Choice {
	choices := make([]Choice, 0, maxGoalChoice+1)
	for i := 0; i <= maxGoalChoice; i++ {
		choices = append(choices, Choice{Label: strconv.Itoa(i), Value: strconv.Itoa(i)})
	}
	return choices
}

func resultText(result *service.ResultData) string {
	m := result.Match
	text := fmt.Sprintf("%s %d:%d %s. %s", m.Home, *m.HomeGoals, *m.AwayGoals, m.Away, result.Remark)
	if result.RaceRemark != "" {
		text += " " + result.RaceRemark
	}
	return text
}
