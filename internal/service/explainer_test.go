package service

import (
	"context"
	"testing"

	"github.com/flatwalay/backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildExplanationSummaryEmbedsScoreAndReasons(t *testing.T) {
	explanation := BuildExplanation(&model.ExplanationRequest{
		MatchScore:   50,
		MatchReasons: []string{"Budgets are similar", "Sleep schedules match"},
	})

	assert.Contains(t, explanation.SummaryExplanation, "50/100")
	assert.Contains(t, explanation.SummaryExplanation, "Budgets are similar")
	assert.Empty(t, explanation.NegotiationChecklist)
}

func TestBuildExplanationIgnoresLowFlags(t *testing.T) {
	explanation := BuildExplanation(&model.ExplanationRequest{
		MatchScore: 70,
		RedFlags: []model.RedFlag{
			{Type: FlagBudgetMismatch, Severity: model.SeverityLow, Evidence: "small gap"},
		},
	})

	assert.Empty(t, explanation.NegotiationChecklist)
}

func TestBuildExplanationMapsCategories(t *testing.T) {
	explanation := BuildExplanation(&model.ExplanationRequest{
		MatchScore: 40,
		RedFlags: []model.RedFlag{
			{Type: FlagBudgetMismatch, Severity: model.SeverityHigh},
			{Type: FlagSleepMismatch, Severity: model.SeverityHigh},
			{Type: FlagNoiseMismatch, Severity: model.SeverityMedium},
		},
	})

	require.Len(t, explanation.NegotiationChecklist, 3)
	assert.Equal(t, "Budget", explanation.NegotiationChecklist[0].Category)
	assert.Equal(t, "Sleep", explanation.NegotiationChecklist[1].Category)
	assert.Equal(t, "General", explanation.NegotiationChecklist[2].Category)
}

func TestBuildExplanationDedupesByCategoryAndCapsAtThree(t *testing.T) {
	explanation := BuildExplanation(&model.ExplanationRequest{
		MatchScore: 30,
		RedFlags: []model.RedFlag{
			{Type: FlagBudgetMismatch, Severity: model.SeverityHigh},
			{Type: FlagBudgetMismatch, Severity: model.SeverityMedium},
			{Type: FlagSleepMismatch, Severity: model.SeverityHigh},
			{Type: FlagCleanlinessMismatch, Severity: model.SeverityHigh},
			{Type: FlagNoiseMismatch, Severity: model.SeverityMedium},
			{Type: FlagStudyMismatch, Severity: model.SeverityMedium},
		},
	})

	require.Len(t, explanation.NegotiationChecklist, 3)
	categories := map[string]bool{}
	for _, item := range explanation.NegotiationChecklist {
		assert.False(t, categories[item.Category], "duplicate category %s", item.Category)
		categories[item.Category] = true
	}
}

func TestExplainFallbackSource(t *testing.T) {
	explainer := NewExplainer(disabledLLM(), testLogger())

	explanation, source, err := explainer.Explain(context.Background(), &model.ExplanationRequest{
		MatchScore: 65,
	})
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, source)
	assert.NotEmpty(t, explanation.SummaryExplanation)
}
