package service

import (
	"context"
	"testing"

	"github.com/flatwalay/backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flagTypes(flags []model.RedFlag) []string {
	types := make([]string, 0, len(flags))
	for _, f := range flags {
		types = append(types, f.Type)
	}
	return types
}

func TestDetectConflictsSleepExtremes(t *testing.T) {
	tests := []struct {
		name     string
		a        model.SleepSchedule
		b        model.SleepSchedule
		wantFlag bool
	}{
		{"night owl vs early riser", model.SleepNightOwl, model.SleepEarlyRiser, true},
		{"early riser vs night owl", model.SleepEarlyRiser, model.SleepNightOwl, true},
		{"both night owls", model.SleepNightOwl, model.SleepNightOwl, false},
		{"flexible vs night owl", model.SleepFlexible, model.SleepNightOwl, false},
		{"flexible vs early riser", model.SleepFlexible, model.SleepEarlyRiser, false},
		{"both absent", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := DetectConflicts(
				model.ProfileDocument{SleepSchedule: tt.a},
				model.ProfileDocument{SleepSchedule: tt.b},
			)
			if tt.wantFlag {
				require.Contains(t, flagTypes(flags), FlagSleepMismatch)
				for _, f := range flags {
					if f.Type == FlagSleepMismatch {
						assert.Equal(t, model.SeverityHigh, f.Severity)
						assert.NotEmpty(t, f.Evidence)
					}
				}
			} else {
				assert.NotContains(t, flagTypes(flags), FlagSleepMismatch)
			}
		})
	}
}

func TestDetectConflictsCleanlinessExtremes(t *testing.T) {
	flags := DetectConflicts(
		model.ProfileDocument{Cleanliness: model.CleanTidy},
		model.ProfileDocument{Cleanliness: model.CleanMessy},
	)
	require.Contains(t, flagTypes(flags), FlagCleanlinessMismatch)

	flags = DetectConflicts(
		model.ProfileDocument{Cleanliness: model.CleanAverage},
		model.ProfileDocument{Cleanliness: model.CleanMessy},
	)
	assert.NotContains(t, flagTypes(flags), FlagCleanlinessMismatch)
}

func TestDetectConflictsNoiseAndStudySeverities(t *testing.T) {
	flags := DetectConflicts(
		model.ProfileDocument{NoiseTolerance: model.NoiseQuiet, StudyHabits: model.StudyLateNight},
		model.ProfileDocument{NoiseTolerance: model.NoiseLoudOK, StudyHabits: model.StudyLibrary},
	)

	bySeverity := map[string]string{}
	for _, f := range flags {
		bySeverity[f.Type] = f.Severity
	}
	assert.Equal(t, model.SeverityMedium, bySeverity[FlagNoiseMismatch])
	assert.Equal(t, model.SeverityMedium, bySeverity[FlagStudyMismatch])
}

func TestDetectConflictsBudgetGap(t *testing.T) {
	tests := []struct {
		name         string
		budgetA      int
		budgetB      int
		wantSeverity string
	}{
		{"huge gap", 20000, 60000, model.SeverityHigh},
		{"moderate gap", 20000, 35000, model.SeverityMedium},
		{"small gap", 20000, 28000, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := DetectConflicts(
				model.ProfileDocument{BudgetPKR: tt.budgetA},
				model.ProfileDocument{BudgetPKR: tt.budgetB},
			)
			if tt.wantSeverity == "" {
				assert.NotContains(t, flagTypes(flags), FlagBudgetMismatch)
				return
			}
			for _, f := range flags {
				if f.Type == FlagBudgetMismatch {
					assert.Equal(t, tt.wantSeverity, f.Severity)
					return
				}
			}
			t.Fatalf("expected budget flag, got %v", flags)
		})
	}
}

func TestDetectPairID(t *testing.T) {
	detector := NewConflictDetector(disabledLLM(), testLogger())

	report, source, err := detector.Detect(context.Background(),
		model.ProfileDocument{ID: "a1"},
		model.ProfileDocument{ID: "b2"},
	)
	require.NoError(t, err)
	assert.Equal(t, "a1_b2", report.PairID)
	assert.Equal(t, SourceFallback, source)
}
