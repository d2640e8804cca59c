package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/flatwalay/backend/internal/model"
	"github.com/flatwalay/backend/internal/utils"

	"go.uber.org/zap"
)

// Scoring reasons emitted by the deterministic rubric
const (
	ReasonBudgetsSimilar   = "Budgets are similar"
	ReasonBudgetsModerate  = "Budgets are moderately compatible"
	ReasonBudgetsDiffer    = "Budgets differ significantly"
	ReasonSleepMatch       = "Sleep schedules match"
	ReasonCleanlinessMatch = "Cleanliness preferences match"
	ReasonNoiseMatch       = "Noise tolerance matches"
	ReasonStudyHabitsMatch = "Study habits match"
)

const scorerSystemPrompt = `You score the compatibility of two potential roommates.
Given two profile JSON objects, return ONLY a JSON object:
  {"score": <integer 0-100>, "reasons": [<short strings explaining the score>]}
Weigh budget closeness, sleep schedule, cleanliness, noise tolerance and study habits.`

// Scorer computes compatibility between roommate profiles
type Scorer struct {
	llm *LLMClient
	log *zap.Logger
}

// NewScorer creates a compatibility scoring service
func NewScorer(llm *LLMClient, log *zap.Logger) *Scorer {
	return &Scorer{llm: llm, log: log}
}

// Score computes the compatibility of a pair of profiles. Tries the model
// first, falling back to the deterministic rubric.
func (s *Scorer) Score(ctx context.Context, a, b model.ProfileDocument) (*model.PairScore, string, error) {
	return runWithFallback(ctx, s.log, "scorer", s.llm.IsEnabled(),
		func(ctx context.Context) (*model.PairScore, error) {
			return s.scoreLLM(ctx, a, b)
		},
		func(ctx context.Context) (*model.PairScore, error) {
			score := ScorePair(a, b)
			return &score, nil
		},
	)
}

func (s *Scorer) scoreLLM(ctx context.Context, a, b model.ProfileDocument) (*model.PairScore, error) {
	payload, err := json.Marshal(map[string]interface{}{"profile_a": a, "profile_b": b})
	if err != nil {
		return nil, err
	}

	content, err := s.llm.CompleteJSON(ctx, scorerSystemPrompt, string(payload))
	if err != nil {
		return nil, err
	}

	var result model.PairScore
	if err := utils.ParseLLMJSON(content, &result); err != nil {
		return nil, fmt.Errorf("unparseable score output: %w", err)
	}
	if result.Score < 0 || result.Score > 100 {
		return nil, fmt.Errorf("score out of range: %d", result.Score)
	}
	if len(result.Reasons) == 0 {
		return nil, fmt.Errorf("score output has no reasons")
	}
	return &result, nil
}

// ScorePair applies the deterministic compatibility rubric. The score is
// clamped at 100.
func ScorePair(a, b model.ProfileDocument) model.PairScore {
	score := 0
	reasons := []string{}

	diff := a.BudgetPKR - b.BudgetPKR
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff <= 10000:
		score += 30
		reasons = append(reasons, ReasonBudgetsSimilar)
	case diff <= 30000:
		score += 15
		reasons = append(reasons, ReasonBudgetsModerate)
	default:
		reasons = append(reasons, ReasonBudgetsDiffer)
	}

	// Absent attributes never count as a match
	if a.SleepSchedule != "" && a.SleepSchedule == b.SleepSchedule {
		score += 20
		reasons = append(reasons, ReasonSleepMatch)
	}
	if a.Cleanliness != "" && a.Cleanliness == b.Cleanliness {
		score += 20
		reasons = append(reasons, ReasonCleanlinessMatch)
	}
	if a.NoiseTolerance != "" && a.NoiseTolerance == b.NoiseTolerance {
		score += 15
		reasons = append(reasons, ReasonNoiseMatch)
	}
	if a.StudyHabits != "" && a.StudyHabits == b.StudyHabits {
		score += 15
		reasons = append(reasons, ReasonStudyHabitsMatch)
	}

	if score > 100 {
		score = 100
	}
	return model.PairScore{Score: score, Reasons: reasons}
}

// BestMatches ranks candidates against the target using the deterministic
// rubric, excluding the target itself, and returns the top n
func (s *Scorer) BestMatches(target model.ProfileDocument, candidates []model.ProfileDocument, n int) []model.MatchResult {
	results := make([]model.MatchResult, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.ID != "" && candidate.ID == target.ID {
			continue
		}
		pair := ScorePair(target, candidate)
		results = append(results, model.MatchResult{
			ProfileID: candidate.ID,
			Score:     pair.Score,
			Reasons:   pair.Reasons,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if n > 0 && len(results) > n {
		results = results[:n]
	}
	return results
}
