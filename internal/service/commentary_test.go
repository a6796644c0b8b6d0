package service

import (
	"strings"
	"testing"

	"github.com/foreveruup/fifa-bot/internal/league"
	"github.com/stretchr/testify/assert"
)

func TestClassifyResult(t *testing.T) {
	tests := []struct {
		home, away int
		want       ResultTone
	}{
		{0, 0, ToneDraw},
		{3, 3, ToneDraw},
		{4, 2, ToneHighScore},
		{5, 4, ToneHighScore},
		{1, 0, ToneLowScore},
		{0, 1, ToneLowScore},
		{2, 1, ToneNormal},
		{3, 2, ToneNormal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyResult(tt.home, tt.away), "%d:%d", tt.home, tt.away)
	}
}

func TestMatchRemark(t *testing.T) {
	assert.Contains(t, drawRemarks, MatchRemark(1, 1))
	assert.Contains(t, highScoreRemarks, MatchRemark(4, 3))
	assert.Contains(t, lowScoreRemarks, MatchRemark(1, 0))
	assert.Contains(t, normalRemarks, MatchRemark(2, 1))
}

func TestRaceRemark(t *testing.T) {
	assert.Empty(t, RaceRemark(nil, "a prize"))

	solo := []league.StandingRow{
		{Name: "Alice", Points: 6},
		{Name: "Bob", Points: 3},
	}
	remark := RaceRemark(solo, "golden boot")
	assert.Contains(t, remark, "Alice")
	assert.Contains(t, remark, "golden boot")
	assert.NotContains(t, remark, "Bob")

	duel := []league.StandingRow{
		{Name: "Alice", Points: 6},
		{Name: "Bob", Points: 6},
		{Name: "Carol", Points: 1},
	}
	remark = RaceRemark(duel, "golden boot")
	assert.Contains(t, remark, "Alice")
	assert.Contains(t, remark, "Bob")

	crowd := []league.StandingRow{
		{Name: "Alice", Points: 3},
		{Name: "Bob", Points: 3},
		{Name: "Carol", Points: 3},
	}
	remark = RaceRemark(crowd, "golden boot")
	assert.Contains(t, remark, "3")
	assert.True(t, strings.Contains(remark, "Alice, Bob, Carol"), "short leader lists are spelled out: %s", remark)
}
