package league

// StandingRow is one participant's aggregate line in the standings
// table, computed from played matches only.
type StandingRow struct {
	Name string
	Club *string

	Played int
	Won    int
	Drawn  int
	Lost   int

	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
}
