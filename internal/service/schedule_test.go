package service

import (
	"context"
	"testing"

	"github.com/foreveruup/fifa-bot/internal/league"
	"github.com/foreveruup/fifa-bot/internal/store"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
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

type testLeague struct {
	db          *sqlx.DB
	store       *store.TournamentStore
	tournaments *TournamentService
	schedule    *ScheduleService
	standings   *StandingsService
	matches     *MatchService
}

func newTestLeague(t *testing.T) *testLeague {
	t.Helper()

	db := setupTestDB(t)
	t.Cleanup(func() { db.Close() })

	tournamentStore := store.NewTournamentStore(db)
	return &testLeague{
		db:          db,
		store:       tournamentStore,
		tournaments: NewTournamentService(db, tournamentStore, false),
		schedule:    NewScheduleService(db, tournamentStore),
		standings:   NewStandingsService(tournamentStore),
		matches:     NewMatchService(db, tournamentStore),
	}
}

func (l *testLeague) createWithRoster(t *testing.T, rounds int, names ...string) *league.Tournament {
	t.Helper()

	tournament, err := l.tournaments.Create(context.Background(), 100, "Friday League", rounds, "")
	require.NoError(t, err)
	if len(names) > 0 {
		_, _, err = l.tournaments.AddParticipants(context.Background(), tournament.ID, names)
		require.NoError(t, err)
	}
	return tournament
}

func TestRoundRobinFixtures(t *testing.T) {
	names := []string{"Alice", "Bob", "Carol", "Dave"}

	fixtures := roundRobinFixtures(names, 2)
	require.Len(t, fixtures, 12, "2 rounds of C(4,2) pairs")

	// Every unordered pair appears exactly once per round, with home
	// advantage swapped between the rounds.
	type pair struct{ a, b string }
	counts := make(map[pair]int)
	for _, f := range fixtures {
		key := pair{f.Home, f.Away}
		if key.b < key.a {
			key.a, key.b = key.b, key.a
		}
		counts[key]++
	}
	require.Len(t, counts, 6)
	for key, n := range counts {
		assert.Equal(t, 2, n, "pair %v", key)
	}

	firstRound := fixtures[:6]
	secondRound := fixtures[6:]
	for i := range firstRound {
		assert.Equal(t, firstRound[i].Home, secondRound[i].Away)
		assert.Equal(t, firstRound[i].Away, secondRound[i].Home)
	}
}

func TestRoundRobinFixturesDegenerate(t *testing.T) {
	assert.Empty(t, roundRobinFixtures(nil, 2))
	assert.Empty(t, roundRobinFixtures([]string{"Alice"}, 2))
	assert.Empty(t, roundRobinFixtures([]string{"Alice", "Bob"}, 0))
	assert.Len(t, roundRobinFixtures([]string{"Alice", "Bob"}, 1), 1)
}

func TestGenerateSchedule(t *testing.T) {
	l := newTestLeague(t)
	tournament := l.createWithRoster(t, 2, "Alice", "Bob", "Carol")

	matches, err := l.schedule.Generate(context.Background(), tournament.ID)
	require.NoError(t, err)
	require.Len(t, matches, 6)

	seqs := make(map[int]bool)
	for _, m := range matches {
		assert.False(t, m.Played)
		assert.Nil(t, m.HomeGoals)
		assert.Nil(t, m.AwayGoals)
		assert.NotEqual(t, m.Home, m.Away)
		seqs[m.Seq] = true
	}
	for seq := 1; seq <= 6; seq++ {
		assert.True(t, seqs[seq], "sequence %d missing", seq)
	}

	stored, err := l.store.GetMatches(context.Background(), tournament.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 6)
}

func TestGenerateNotEnoughParticipants(t *testing.T) {
	l := newTestLeague(t)
	tournament := l.createWithRoster(t, 2, "Alice")

	_, err := l.schedule.Generate(context.Background(), tournament.ID)
	assert.ErrorIs(t, err, ErrNotEnoughParticipants)

	empty := l.createWithRoster(t, 2)
	_, err = l.schedule.Generate(context.Background(), empty.ID)
	assert.ErrorIs(t, err, ErrNotEnoughParticipants)
}

func TestGenerateUnknownTournament(t *testing.T) {
	l := newTestLeague(t)

	_, err := l.schedule.Generate(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestRegenerateDiscardsResults(t *testing.T) {
	l := newTestLeague(t)
	tournament := l.createWithRoster(t, 1, "Alice", "Bob", "Carol")

	first, err := l.schedule.Generate(context.Background(), tournament.ID)
	require.NoError(t, err)
	require.Len(t, first, 3)

	_, err = l.matches.RecordResultByRef(context.Background(), tournament.ID, "1", 2, 1, false)
	require.NoError(t, err)

	has, err := l.schedule.HasMatches(context.Background(), tournament.ID)
	require.NoError(t, err)
	assert.True(t, has)

	second, err := l.schedule.Generate(context.Background(), tournament.ID)
	require.NoError(t, err)
	require.Len(t, second, 3)

	stored, err := l.store.GetMatches(context.Background(), tournament.ID)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	for _, m := range stored {
		assert.False(t, m.Played, "regeneration must discard old results")
	}
}
