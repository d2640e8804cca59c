package service

import (
	"testing"

	"github.com/flatwalay/backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestScorePairBudgetBands(t *testing.T) {
	tests := []struct {
		name       string
		budgetA    int
		budgetB    int
		wantPoints int
		wantReason string
	}{
		{"identical budgets", 50000, 50000, 30, ReasonBudgetsSimilar},
		{"difference at 10000", 50000, 60000, 30, ReasonBudgetsSimilar},
		{"difference just over 10000", 50000, 60001, 15, ReasonBudgetsModerate},
		{"difference at 30000", 50000, 80000, 15, ReasonBudgetsModerate},
		{"difference just over 30000", 50000, 80001, 0, ReasonBudgetsDiffer},
		{"reversed order", 80000, 50000, 15, ReasonBudgetsModerate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := model.ProfileDocument{BudgetPKR: tt.budgetA}
			b := model.ProfileDocument{BudgetPKR: tt.budgetB}
			result := ScorePair(a, b)
			assert.Equal(t, tt.wantPoints, result.Score)
			assert.Contains(t, result.Reasons, tt.wantReason)
		})
	}
}

func TestScorePairBudgetAndSleepOnly(t *testing.T) {
	a := model.ProfileDocument{
		BudgetPKR:     50000,
		SleepSchedule: model.SleepNightOwl,
		Cleanliness:   model.CleanTidy,
	}
	b := model.ProfileDocument{
		BudgetPKR:     55000,
		SleepSchedule: model.SleepNightOwl,
		Cleanliness:   model.CleanMessy,
	}

	result := ScorePair(a, b)
	assert.Equal(t, 50, result.Score)
	assert.Equal(t, []string{ReasonBudgetsSimilar, ReasonSleepMatch}, result.Reasons)
}

func TestScorePairClampedAt100(t *testing.T) {
	a := model.ProfileDocument{
		BudgetPKR:      40000,
		SleepSchedule:  model.SleepEarlyRiser,
		Cleanliness:    model.CleanTidy,
		NoiseTolerance: model.NoiseQuiet,
		StudyHabits:    model.StudyLibrary,
	}

	result := ScorePair(a, a)
	assert.Equal(t, 100, result.Score)
	assert.Len(t, result.Reasons, 5)
}

func TestScorePairAbsentFieldsDoNotMatch(t *testing.T) {
	result := ScorePair(model.ProfileDocument{}, model.ProfileDocument{})
	// Only the budget rule fires (0 vs 0 is similar)
	assert.Equal(t, 30, result.Score)
	assert.Equal(t, []string{ReasonBudgetsSimilar}, result.Reasons)
}

func TestBestMatchesExcludesSelfAndSortsDescending(t *testing.T) {
	scorer := NewScorer(disabledLLM(), testLogger())

	target := model.ProfileDocument{
		ID:            "me",
		BudgetPKR:     50000,
		SleepSchedule: model.SleepNightOwl,
		Cleanliness:   model.CleanTidy,
	}
	candidates := []model.ProfileDocument{
		{ID: "me", BudgetPKR: 50000, SleepSchedule: model.SleepNightOwl, Cleanliness: model.CleanTidy},
		{ID: "weak", BudgetPKR: 120000},
		{ID: "strong", BudgetPKR: 52000, SleepSchedule: model.SleepNightOwl, Cleanliness: model.CleanTidy},
		{ID: "medium", BudgetPKR: 52000, SleepSchedule: model.SleepNightOwl},
	}

	matches := scorer.BestMatches(target, candidates, 10)

	assert.Len(t, matches, 3)
	for _, match := range matches {
		assert.NotEqual(t, "me", match.ProfileID)
	}
	assert.Equal(t, "strong", matches[0].ProfileID)
	assert.Equal(t, "medium", matches[1].ProfileID)
	assert.Equal(t, "weak", matches[2].ProfileID)
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Score, matches[i].Score)
	}
}

func TestBestMatchesRespectsTopN(t *testing.T) {
	scorer := NewScorer(disabledLLM(), testLogger())

	target := model.ProfileDocument{ID: "me", BudgetPKR: 50000}
	candidates := []model.ProfileDocument{
		{ID: "a", BudgetPKR: 50000},
		{ID: "b", BudgetPKR: 51000},
		{ID: "c", BudgetPKR: 52000},
	}

	matches := scorer.BestMatches(target, candidates, 2)
	assert.Len(t, matches, 2)
}
