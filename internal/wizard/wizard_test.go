package wizard

import (
	"context"
	"testing"
	"time"

	"github.com/foreveruup/fifa-bot/internal/league"
	"github.com/foreveruup/fifa-bot/internal/service"
	"github.com/foreveruup/fifa-bot/internal/store"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database and applies migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite3", "file::memory:")
	require.NoError(t, err, "Failed to connect to in-memory DB")

	_, err = database.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)

	driver, err := sqlite3.WithInstance(database.DB, &sqlite3.Config{})
	require.NoError(t, err, "Failed to create migrate driver instance")

	m, err := migrate.NewWithDatabaseInstance(
		"file://../../migrations",
		"sqlite3",
		driver,
	)
	require.NoError(t, err, "Failed to create migrate instance")

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, "Failed to apply migrations")
	}

	return database
}

type testBot struct {
	engine      *Engine
	tournaments *service.TournamentService
	schedule    *service.ScheduleService
	matches     *service.MatchService
}

func newTestBot(t *testing.T) *testBot {
	t.Helper()

	db := setupTestDB(t)
	t.Cleanup(func() { db.Close() })

	tournamentStore := store.NewTournamentStore(db)
	tournaments := service.NewTournamentService(db, tournamentStore, false)
	schedule := service.NewScheduleService(db, tournamentStore)
	standings := service.NewStandingsService(tournamentStore)
	matches := service.NewMatchService(db, tournamentStore)
	sessions := NewSessionStore(time.Minute)

	return &testBot{
		engine:      NewEngine(sessions, tournaments, schedule, standings, matches),
		tournaments: tournaments,
		schedule:    schedule,
		matches:     matches,
	}
}

var admin = Ctx{ChannelID: 100, UserID: 1, Admin: true}
var member = Ctx{ChannelID: 100, UserID: 2}

func (b *testBot) handle(t *testing.T, who Ctx, act Action) Outcome {
	t.Helper()
	out, err := b.engine.Handle(context.Background(), who, act)
	require.NoError(t, err)
	return out
}

func (b *testBot) seedLeague(t *testing.T, names ...string) *league.Tournament {
	t.Helper()
	tournament, err := b.tournaments.Create(context.Background(), admin.ChannelID, "Friday League", 1, "")
	require.NoError(t, err)
	if len(names) > 0 {
		_, _, err = b.tournaments.AddParticipants(context.Background(), tournament.ID, names)
		require.NoError(t, err)
	}
	return tournament
}

func TestCreateTournamentFlow(t *testing.T) {
	b := newTestBot(t)

	out := b.handle(t, admin, Action{Kind: ActionBeginCreateTournament})
	assert.Equal(t, OutcomePrompt, out.Kind)
	assert.Equal(t, StateAwaitingTournamentName, out.State)

	out = b.handle(t, admin, Action{Kind: ActionSubmitText, Text: "Champions of Friday"})
	assert.Equal(t, StateAwaitingTournamentRounds, out.State)

	// A non-numeric round count re-prompts without losing progress.
	out = b.handle(t, admin, Action{Kind: ActionSubmitText, Text: "lots"})
	assert.Equal(t, OutcomePrompt, out.Kind)
	assert.Equal(t, StateAwaitingTournamentRounds, out.State)

	// Empty means the default round count.
	out = b.handle(t, admin, Action{Kind: ActionSubmitText, Text: ""})
	assert.Equal(t, StateAwaitingTournamentPrize, out.State)

	out = b.handle(t, admin, Action{Kind: ActionSubmitText, Text: "pizza night"})
	assert.Equal(t, OutcomeInfo, out.Kind)
	assert.Contains(t, out.Text, "Champions of Friday")

	active, err := b.tournaments.Active(context.Background(), admin.ChannelID)
	require.NoError(t, err)
	assert.Equal(t, "Champions of Friday", active.Name)
	assert.Equal(t, league.DefaultRounds, active.Rounds)
	assert.Equal(t, "pizza night", active.Prize)
}

func TestCreateTournamentRequiresAdmin(t *testing.T) {
	b := newTestBot(t)

	out := b.handle(t, member, Action{Kind: ActionBeginCreateTournament})
	assert.Equal(t, OutcomeError, out.Kind)
}

func TestAddParticipantFlow(t *testing.T) {
	b := newTestBot(t)
	b.seedLeague(t)

	out := b.handle(t, admin, Action{Kind: ActionBeginAddParticipant})
	assert.Equal(t, StateAwaitingParticipantName, out.State)

	out = b.handle(t, admin, Action{Kind: ActionSubmitText, Text: "Alice"})
	assert.Equal(t, OutcomeInfo, out.Kind)
	assert.Contains(t, out.Text, "Alice")

	// A duplicate re-prompts instead of ending the wizard.
	b.handle(t, admin, Action{Kind: ActionBeginAddParticipant})
	out = b.handle(t, admin, Action{Kind: ActionSubmitText, Text: "Alice"})
	assert.Equal(t, OutcomePrompt, out.Kind)
	assert.Equal(t, StateAwaitingParticipantName, out.State)
}

func TestAddParticipantBatchFlow(t *testing.T) {
	b := newTestBot(t)
	tournament := b.seedLeague(t)

	b.handle(t, admin, Action{Kind: ActionBeginAddBatch})
	out := b.handle(t, admin, Action{Kind: ActionSubmitText, Text: "Alice\nBob, Carol"})
	assert.Equal(t, OutcomeInfo, out.Kind)
	assert.Contains(t, out.Text, "3")

	roster, err := b.tournaments.Participants(context.Background(), tournament.ID)
	require.NoError(t, err)
	assert.Len(t, roster, 3)
}

func TestAddParticipantWithoutTournament(t *testing.T) {
	b := newTestBot(t)

	out := b.handle(t, admin, Action{Kind: ActionBeginAddParticipant})
	assert.Equal(t, OutcomeError, out.Kind)
	assert.Contains(t, out.Text, "No tournament")
}

func TestClubAssignmentFlow(t *testing.T) {
	b := newTestBot(t)
	b.seedLeague(t, "Alice", "Bob")

	out := b.handle(t, admin, Action{Kind: ActionBeginClubAssignment})
	require.Equal(t, StateSelectingClubParticipant, out.State)
	require.Len(t, out.Choices, 2)
	aliceID := out.Choices[0].Value

	out = b.handle(t, admin, Action{Kind: ActionPickParticipant, Text: aliceID})
	require.Equal(t, StateSelectingClubCountry, out.State)
	assert.NotEmpty(t, out.Choices)

	out = b.handle(t, admin, Action{Kind: ActionPickCountry, Text: "England"})
	require.Equal(t, StateSelectingClub, out.State)
	assert.Contains(t, choiceValues(out.Choices), "Arsenal")

	// Assigning loops straight into the next unassigned participant.
	out = b.handle(t, admin, Action{Kind: ActionPickClub, Text: "Arsenal"})
	require.Equal(t, StateSelectingClubParticipant, out.State)
	require.Len(t, out.Choices, 1)
	assert.Equal(t, "Bob", out.Choices[0].Label)

	bobID := out.Choices[0].Value
	b.handle(t, admin, Action{Kind: ActionPickParticipant, Text: bobID})
	b.handle(t, admin, Action{Kind: ActionPickCountry, Text: "Spain"})
	out = b.handle(t, admin, Action{Kind: ActionPickClub, Text: "Real Madrid"})
	assert.Equal(t, OutcomeInfo, out.Kind)

	// Everyone assigned: restarting reports completion.
	out = b.handle(t, admin, Action{Kind: ActionBeginClubAssignment})
	assert.Equal(t, OutcomeInfo, out.Kind)
}

func TestClubAssignmentUnknownCountryResets(t *testing.T) {
	b := newTestBot(t)
	b.seedLeague(t, "Alice")

	out := b.handle(t, admin, Action{Kind: ActionBeginClubAssignment})
	b.handle(t, admin, Action{Kind: ActionPickParticipant, Text: out.Choices[0].Value})

	out = b.handle(t, admin, Action{Kind: ActionPickCountry, Text: "Atlantis"})
	assert.Equal(t, OutcomeError, out.Kind)

	// Session was reset: the next pick has nothing to act on.
	out = b.handle(t, admin, Action{Kind: ActionPickCountry, Text: "England"})
	assert.Equal(t, OutcomeError, out.Kind)
}

func TestScoreEntryFlow(t *testing.T) {
	b := newTestBot(t)
	tournament := b.seedLeague(t, "Alice", "Bob")
	_, err := b.schedule.Generate(context.Background(), tournament.ID)
	require.NoError(t, err)

	out := b.handle(t, admin, Action{Kind: ActionBeginScoreEntry})
	require.Equal(t, StateSelectingMatch, out.State)
	require.Len(t, out.Choices, 1)
	matchID := out.Choices[0].Value

	out = b.handle(t, admin, Action{Kind: ActionPickMatch, Text: matchID})
	require.Equal(t, StateAwaitingHomeGoals, out.State)
	assert.Len(t, out.Choices, 11)

	out = b.handle(t, admin, Action{Kind: ActionPickGoals, Goals: 2})
	require.Equal(t, StateAwaitingAwayGoals, out.State)

	out = b.handle(t, admin, Action{Kind: ActionPickGoals, Goals: 1})
	require.Equal(t, OutcomeResult, out.Kind)
	require.NotNil(t, out.Result)
	assert.True(t, out.Result.Match.Played)
	assert.NotEmpty(t, out.Result.Standings)

	// Nothing pending anymore.
	out = b.handle(t, admin, Action{Kind: ActionBeginScoreEntry})
	assert.Equal(t, OutcomeInfo, out.Kind)

	// The correction flow offers the finished match.
	out = b.handle(t, admin, Action{Kind: ActionBeginCorrection})
	require.Equal(t, StateSelectingMatch, out.State)
	require.Len(t, out.Choices, 1)
	b.handle(t, admin, Action{Kind: ActionPickMatch, Text: out.Choices[0].Value})
	b.handle(t, admin, Action{Kind: ActionPickGoals, Goals: 0})
	out = b.handle(t, admin, Action{Kind: ActionPickGoals, Goals: 0})
	require.Equal(t, OutcomeResult, out.Kind)
	assert.Equal(t, 0, *out.Result.Match.HomeGoals)
}

func TestScoreEntryRejectsPlayedMatch(t *testing.T) {
	b := newTestBot(t)
	tournament := b.seedLeague(t, "Alice", "Bob", "Carol")
	_, err := b.schedule.Generate(context.Background(), tournament.ID)
	require.NoError(t, err)
	result, err := b.matches.RecordResultByRef(context.Background(), tournament.ID, "1", 1, 0, false)
	require.NoError(t, err)

	b.handle(t, admin, Action{Kind: ActionBeginScoreEntry})
	out := b.handle(t, admin, Action{Kind: ActionPickMatch, Text: result.Match.ID.String()})
	assert.Equal(t, OutcomeError, out.Kind)
	assert.Contains(t, out.Text, "correction")
}

func TestGenerateScheduleConfirmation(t *testing.T) {
	b := newTestBot(t)
	tournament := b.seedLeague(t, "Alice", "Bob")

	out := b.handle(t, admin, Action{Kind: ActionGenerateSchedule})
	require.Equal(t, OutcomeSchedule, out.Kind)
	assert.Len(t, out.Schedule, 1)

	_, err := b.matches.RecordResultByRef(context.Background(), tournament.ID, "1", 3, 0, false)
	require.NoError(t, err)

	// Regenerating over an existing schedule needs confirmation.
	out = b.handle(t, admin, Action{Kind: ActionGenerateSchedule})
	require.Equal(t, OutcomePrompt, out.Kind)
	assert.True(t, out.RequiresConfirm)

	out = b.handle(t, admin, Action{Kind: ActionConfirm})
	require.Equal(t, OutcomeSchedule, out.Kind)

	pending, err := b.matches.Pending(context.Background(), tournament.ID)
	require.NoError(t, err)
	assert.Len(t, pending, 1, "confirmed regeneration discards the recorded result")
}

func TestGenerateScheduleCancel(t *testing.T) {
	b := newTestBot(t)
	tournament := b.seedLeague(t, "Alice", "Bob")
	_, err := b.schedule.Generate(context.Background(), tournament.ID)
	require.NoError(t, err)
	_, err = b.matches.RecordResultByRef(context.Background(), tournament.ID, "1", 3, 0, false)
	require.NoError(t, err)

	out := b.handle(t, admin, Action{Kind: ActionGenerateSchedule})
	require.True(t, out.RequiresConfirm)

	out = b.handle(t, admin, Action{Kind: ActionCancel})
	assert.Equal(t, OutcomeInfo, out.Kind)

	finished, err := b.matches.Finished(context.Background(), tournament.ID)
	require.NoError(t, err)
	assert.Len(t, finished, 1, "cancelling keeps the recorded result")

	// A stray confirm after cancelling does nothing destructive.
	out = b.handle(t, admin, Action{Kind: ActionConfirm})
	assert.Equal(t, OutcomeError, out.Kind)
}

func TestEndTournament(t *testing.T) {
	b := newTestBot(t)
	tournament := b.seedLeague(t, "Alice", "Bob")
	_, err := b.schedule.Generate(context.Background(), tournament.ID)
	require.NoError(t, err)
	_, err = b.matches.RecordResultByRef(context.Background(), tournament.ID, "1", 2, 0, false)
	require.NoError(t, err)

	out := b.handle(t, member, Action{Kind: ActionEndTournament})
	assert.Equal(t, OutcomeError, out.Kind, "members cannot finish a tournament")

	out = b.handle(t, admin, Action{Kind: ActionEndTournament})
	require.Equal(t, OutcomeStandings, out.Kind)
	require.NotEmpty(t, out.Standings)
	assert.Contains(t, out.Text, out.Standings[0].Name)
	assert.Contains(t, out.Text, league.DefaultPrize)

	active, err := b.tournaments.Active(context.Background(), admin.ChannelID)
	require.NoError(t, err)
	assert.Equal(t, league.TournamentCompleted, active.Status)
}

func TestMenuDiscardsScratch(t *testing.T) {
	b := newTestBot(t)

	b.handle(t, admin, Action{Kind: ActionBeginCreateTournament})
	out := b.handle(t, admin, Action{Kind: ActionOpenMenu})
	assert.Equal(t, OutcomePrompt, out.Kind)

	out = b.handle(t, admin, Action{Kind: ActionSubmitText, Text: "Liga"})
	assert.Equal(t, OutcomeError, out.Kind, "the menu abandons the creation wizard")
}

func TestMenuHidesAdminActions(t *testing.T) {
	b := newTestBot(t)

	adminMenu := b.handle(t, admin, Action{Kind: ActionOpenMenu})
	memberMenu := b.handle(t, member, Action{Kind: ActionOpenMenu})
	assert.Greater(t, len(adminMenu.Choices), len(memberMenu.Choices))
	assert.NotContains(t, choiceValues(memberMenu.Choices), string(ActionBeginCreateTournament))
}

func TestHandleRawBadPayload(t *testing.T) {
	b := newTestBot(t)

	b.handle(t, admin, Action{Kind: ActionBeginCreateTournament})

	out, err := b.engine.HandleRaw(context.Background(), admin, "no_such_action", "", 0)
	require.NoError(t, err)
	assert.Equal(t, OutcomeError, out.Kind)

	// The bad payload reset the wizard.
	out = b.handle(t, admin, Action{Kind: ActionSubmitText, Text: "Liga"})
	assert.Equal(t, OutcomeError, out.Kind)
}

func TestParseAction(t *testing.T) {
	act, err := ParseAction("pick_goals", "", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, act.Goals)

	_, err = ParseAction("pick_goals", "", 11)
	assert.ErrorIs(t, err, ErrBadPayload)

	_, err = ParseAction("pick_club", "  ", 0)
	assert.ErrorIs(t, err, ErrBadPayload)

	act, err = ParseAction(" menu ", "", 0)
	require.NoError(t, err)
	assert.Equal(t, ActionOpenMenu, act.Kind)
}

func TestSessionExpiry(t *testing.T) {
	sessions := NewSessionStore(10 * time.Millisecond)
	require.NoError(t, sessions.Put(100, 1, Session{State: StateAwaitingTournamentName}))

	sess, err := sessions.Get(100, 1)
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingTournamentName, sess.State)

	time.Sleep(20 * time.Millisecond)
	sess, err = sessions.Get(100, 1)
	require.NoError(t, err)
	assert.Equal(t, StateIdle, sess.State, "expired sessions read as idle")
}

func TestTournamentSwitching(t *testing.T) {
	b := newTestBot(t)
	first := b.seedLeague(t)
	second, err := b.tournaments.Create(context.Background(), admin.ChannelID, "Season 2", 1, "")
	require.NoError(t, err)

	// Creation selected the newest tournament.
	active, err := b.tournaments.Active(context.Background(), admin.ChannelID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)

	out := b.handle(t, admin, Action{Kind: ActionListTournaments})
	require.Equal(t, OutcomeTournaments, out.Kind)
	assert.Len(t, out.Tournaments, 2)

	out = b.handle(t, admin, Action{Kind: ActionSelectTournament, Text: first.ID.String()})
	assert.Equal(t, OutcomeInfo, out.Kind)

	active, err = b.tournaments.Active(context.Background(), admin.ChannelID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, active.ID)
}

func choiceValues(choices []Choice) []string {
	values := make([]string, 0, len(choices))
	for _, c := range choices {
		values = append(values, c.Value)
	}
	return values
}
