package service

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/foreveruup/fifa-bot/internal/league"
)

// ResultTone is the remark category picked from a match's goal counts.
type ResultTone string

const (
	ToneDraw      ResultTone = "draw"
	ToneHighScore ResultTone = "high_score"
	ToneLowScore  ResultTone = "low_score"
	ToneNormal    ResultTone = "normal"
)

// ClassifyResult buckets a final score into a remark category.
func ClassifyResult(homeGoals, awayGoals int) ResultTone {
	total := homeGoals + awayGoals
	switch {
	case homeGoals == awayGoals:
		return ToneDraw
	case total >= 6:
		return ToneHighScore
	case total <= 1:
		return ToneLowScore
	default:
		return ToneNormal
	}
}

var drawRemarks = []string{
	"A draw! Justice is served! ⚖️",
	"Points shared like good friends! 🤝",
	"Nobody wanted to be the bad guy! 😇",
	"A draw means both were great... or both were meh! 🤷",
}

var highScoreRemarks = []string{
	"The cannons never stopped firing! 💥",
	"More goals than fireworks on New Year's Eve! 🎆",
	"The nets are torn from that barrage! 🕳️",
	"Somebody forgot to switch the defense on! ⚙️",
}

var lowScoreRemarks = []string{
	"The keepers were a wall today! 🧱",
	"Fewer goals than fingers on one hand! ✋",
	"Defenders like fortress walls! 🏰",
	"A chess score: long thinking, modest result! ♟️",
}

var normalRemarks = []string{
	"Goals flew like peas against a wall! 🏐",
	"The keepers clearly left their gloves at home! 🥅",
	"This match goes down in history... or not 📚",
	"Football is unpredictable, especially with these two! 🎲",
	"The all-out-attack plan worked a full 100%! 🚀",
	"That defense is holier than Swiss cheese! 🧀",
	"A scoreline straight out of FIFA on beginner! 🎮",
}

// MatchRemark picks a random remark matching the recorded score.
func MatchRemark(homeGoals, awayGoals int) string {
	var pool []string
	switch ClassifyResult(homeGoals, awayGoals) {
	case ToneDraw:
		pool = drawRemarks
	case ToneHighScore:
		pool = highScoreRemarks
	case ToneLowScore:
		pool = lowScoreRemarks
	default:
		pool = normalRemarks
	}
	return pool[rand.IntN(len(pool))]
}

// RaceRemark comments on the title race at the top of the standings.
// Empty table yields an empty remark.
func RaceRemark(table []league.StandingRow, prize string) string {
	if len(table) == 0 {
		return ""
	}

	top := table[0].Points
	var leaders []string
	for _, row := range table {
		if row.Points == top {
			leaders = append(leaders, row.Name)
		}
	}

	switch len(leaders) {
	case 1:
		pool := []string{
			"👑 %[1]s runs the show! The %[2]s already smells like victory!",
			"🔥 %[1]s is on fire! Everyone else is watching from the sidelines!",
			"🚀 %[1]s is flying towards the %[2]s like a rocket!",
		}
		return fmt.Sprintf(pool[rand.IntN(len(pool))], leaders[0], prize)
	case 2:
		pool := []string{
			"🤝 %[1]s and %[2]s can't settle it! The %[3]s hangs in the balance!",
			"⚔️ %[1]s against %[2]s! The battle for the %[3]s heats up!",
		}
		return fmt.Sprintf(pool[rand.IntN(len(pool))], leaders[0], leaders[1], prize)
	default:
		pool := []string{
			"🌪️ Total chaos! %[1]d contenders for the %[2]s!",
			"🎲 The dice are rolling! %[1]d players in the race for the %[2]s!",
		}
		remark := fmt.Sprintf(pool[rand.IntN(len(pool))], len(leaders), prize)
		// keep the full roll call short
		if len(leaders) <= 4 {
			remark += " (" + strings.Join(leaders, ", ") + ")"
		}
		return remark
	}
}
