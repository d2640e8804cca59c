package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/flatwalay/backend/internal/model"
	"github.com/flatwalay/backend/internal/utils"

	"go.uber.org/zap"
)

// Red flag category labels
const (
	FlagSleepMismatch       = "Sleep Schedule Mismatch"
	FlagCleanlinessMismatch = "Cleanliness Mismatch"
	FlagNoiseMismatch       = "Noise Tolerance Mismatch"
	FlagStudyMismatch       = "Study Habits Mismatch"
	FlagBudgetMismatch      = "Budget Mismatch"
)

const conflictSystemPrompt = `You detect potential conflicts between two roommates.
Given two profile JSON objects, call the return_conflicts function with every red flag you find.
Flag opposite sleep schedules, opposite cleanliness habits, opposite noise tolerance, clashing study habits and large budget gaps.
Severity must be HIGH, MEDIUM or LOW. Evidence must quote the conflicting values.`

var conflictTool = Tool{
	Type: "function",
	Function: ToolFunction{
		Name:        "return_conflicts",
		Description: "Report the red flags detected between the two profiles",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"pair_id": map[string]interface{}{"type": "string"},
				"red_flags": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"type":     map[string]interface{}{"type": "string"},
							"severity": map[string]interface{}{"type": "string", "enum": []string{"HIGH", "MEDIUM", "LOW"}},
							"evidence": map[string]interface{}{"type": "string"},
						},
						"required": []string{"type", "severity", "evidence"},
					},
				},
			},
			"required": []string{"pair_id", "red_flags"},
		},
	},
}

// ConflictDetector finds severity-rated friction points between two profiles
type ConflictDetector struct {
	llm *LLMClient
	log *zap.Logger
}

// NewConflictDetector creates a conflict detection service
func NewConflictDetector(llm *LLMClient, log *zap.Logger) *ConflictDetector {
	return &ConflictDetector{llm: llm, log: log}
}

// Detect returns the red flags between two profiles. Tries the model's
// structured tool call first, falling back to the deterministic rules.
func (d *ConflictDetector) Detect(ctx context.Context, a, b model.ProfileDocument) (*model.ConflictReport, string, error) {
	pairID := fmt.Sprintf("%s_%s", a.ID, b.ID)

	report, source, err := runWithFallback(ctx, d.log, "conflict_detector", d.llm.IsEnabled(),
		func(ctx context.Context) (*model.ConflictReport, error) {
			return d.detectLLM(ctx, a, b)
		},
		func(ctx context.Context) (*model.ConflictReport, error) {
			return &model.ConflictReport{PairID: pairID, RedFlags: DetectConflicts(a, b)}, nil
		},
	)
	if err != nil {
		return nil, source, err
	}

	report.PairID = pairID
	return report, source, nil
}

func (d *ConflictDetector) detectLLM(ctx context.Context, a, b model.ProfileDocument) (*model.ConflictReport, error) {
	payload, err := json.Marshal(map[string]interface{}{"profile_a": a, "profile_b": b})
	if err != nil {
		return nil, err
	}

	arguments, err := d.llm.CompleteTool(ctx, conflictSystemPrompt, string(payload), conflictTool)
	if err != nil {
		return nil, err
	}

	var report model.ConflictReport
	if err := utils.ParseLLMJSON(arguments, &report); err != nil {
		return nil, fmt.Errorf("unparseable conflict output: %w", err)
	}
	for _, flag := range report.RedFlags {
		if flag.Severity != model.SeverityHigh && flag.Severity != model.SeverityMedium && flag.Severity != model.SeverityLow {
			return nil, fmt.Errorf("invalid red flag severity: %q", flag.Severity)
		}
	}
	return &report, nil
}

// DetectConflicts applies the deterministic red flag rules: opposite extremes
// on lifestyle attributes and large budget gaps
func DetectConflicts(a, b model.ProfileDocument) []model.RedFlag {
	flags := []model.RedFlag{}

	if oppositeSleep(a.SleepSchedule, b.SleepSchedule) {
		flags = append(flags, model.RedFlag{
			Type:     FlagSleepMismatch,
			Severity: model.SeverityHigh,
			Evidence: fmt.Sprintf("%q vs %q", a.SleepSchedule, b.SleepSchedule),
		})
	}

	if oppositeCleanliness(a.Cleanliness, b.Cleanliness) {
		flags = append(flags, model.RedFlag{
			Type:     FlagCleanlinessMismatch,
			Severity: model.SeverityHigh,
			Evidence: fmt.Sprintf("%q vs %q", a.Cleanliness, b.Cleanliness),
		})
	}

	if oppositeNoise(a.NoiseTolerance, b.NoiseTolerance) {
		flags = append(flags, model.RedFlag{
			Type:     FlagNoiseMismatch,
			Severity: model.SeverityMedium,
			Evidence: fmt.Sprintf("%q vs %q", a.NoiseTolerance, b.NoiseTolerance),
		})
	}

	if oppositeStudy(a.StudyHabits, b.StudyHabits) {
		flags = append(flags, model.RedFlag{
			Type:     FlagStudyMismatch,
			Severity: model.SeverityMedium,
			Evidence: fmt.Sprintf("%q vs %q", a.StudyHabits, b.StudyHabits),
		})
	}

	diff := a.BudgetPKR - b.BudgetPKR
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff > 30000:
		flags = append(flags, model.RedFlag{
			Type:     FlagBudgetMismatch,
			Severity: model.SeverityHigh,
			Evidence: fmt.Sprintf("budgets differ by %d PKR", diff),
		})
	case diff > 10000:
		flags = append(flags, model.RedFlag{
			Type:     FlagBudgetMismatch,
			Severity: model.SeverityMedium,
			Evidence: fmt.Sprintf("budgets differ by %d PKR", diff),
		})
	}

	return flags
}

func oppositeSleep(a, b model.SleepSchedule) bool {
	return (a == model.SleepNightOwl && b == model.SleepEarlyRiser) ||
		(a == model.SleepEarlyRiser && b == model.SleepNightOwl)
}

func oppositeCleanliness(a, b model.Cleanliness) bool {
	return (a == model.CleanTidy && b == model.CleanMessy) ||
		(a == model.CleanMessy && b == model.CleanTidy)
}

func oppositeNoise(a, b model.NoiseTolerance) bool {
	return (a == model.NoiseQuiet && b == model.NoiseLoudOK) ||
		(a == model.NoiseLoudOK && b == model.NoiseQuiet)
}

func oppositeStudy(a, b model.StudyHabits) bool {
	return (a == model.StudyLateNight && b == model.StudyLibrary) ||
		(a == model.StudyLibrary && b == model.StudyLateNight)
}
