package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/flatwalay/backend/internal/model"
	"github.com/flatwalay/backend/internal/utils"

	"go.uber.org/zap"
)

const explainerSystemPrompt = `You explain a roommate match to both students in plain, friendly language.
Given the compatibility score, its reasons and the detected red flags, call the return_explanation function.
Consider only HIGH and MEDIUM red flags. Produce 2-3 practical negotiation checklist items, each with a category.`

var explainerTool = Tool{
	Type: "function",
	Function: ToolFunction{
		Name:        "return_explanation",
		Description: "Return the match summary and negotiation checklist",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"summary_explanation": map[string]interface{}{"type": "string"},
				"negotiation_checklist": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"suggestion": map[string]interface{}{"type": "string"},
							"category":   map[string]interface{}{"type": "string"},
						},
						"required": []string{"suggestion", "category"},
					},
				},
			},
			"required": []string{"summary_explanation", "negotiation_checklist"},
		},
	},
}

// cannedSuggestions map red flag category substrings to fallback advice
var cannedSuggestions = []struct {
	keyword    string
	category   string
	suggestion string
}{
	{"Budget", "Budget", "Agree on how rent and bills are split before moving in."},
	{"Sleep", "Sleep", "Set quiet hours that respect both sleep schedules."},
	{"Cleanliness", "Cleanliness", "Draw up a simple cleaning rota for shared spaces."},
}

const genericSuggestion = "Discuss this difference openly before committing."

// Explainer turns a score, its reasons and red flags into a human summary
// with a short negotiation checklist
type Explainer struct {
	llm *LLMClient
	log *zap.Logger
}

// NewExplainer creates an explanation service
func NewExplainer(llm *LLMClient, log *zap.Logger) *Explainer {
	return &Explainer{llm: llm, log: log}
}

// Explain generates the match explanation. Tries the model's structured tool
// call first, falling back to the templated summary.
func (e *Explainer) Explain(ctx context.Context, req *model.ExplanationRequest) (*model.Explanation, string, error) {
	return runWithFallback(ctx, e.log, "explainer", e.llm.IsEnabled(),
		func(ctx context.Context) (*model.Explanation, error) {
			return e.explainLLM(ctx, req)
		},
		func(ctx context.Context) (*model.Explanation, error) {
			return BuildExplanation(req), nil
		},
	)
}

func (e *Explainer) explainLLM(ctx context.Context, req *model.ExplanationRequest) (*model.Explanation, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	arguments, err := e.llm.CompleteTool(ctx, explainerSystemPrompt, string(payload), explainerTool)
	if err != nil {
		return nil, err
	}

	var explanation model.Explanation
	if err := utils.ParseLLMJSON(arguments, &explanation); err != nil {
		return nil, fmt.Errorf("unparseable explanation output: %w", err)
	}
	if strings.TrimSpace(explanation.SummaryExplanation) == "" {
		return nil, fmt.Errorf("explanation output has no summary")
	}
	if len(explanation.NegotiationChecklist) > 3 {
		explanation.NegotiationChecklist = explanation.NegotiationChecklist[:3]
	}
	return &explanation, nil
}

// BuildExplanation is the deterministic path: a templated summary plus one
// canned suggestion per HIGH/MEDIUM flag category, deduplicated and capped
// at three items
func BuildExplanation(req *model.ExplanationRequest) *model.Explanation {
	summary := fmt.Sprintf("You two scored %d/100 on compatibility.", req.MatchScore)
	if len(req.MatchReasons) > 0 {
		summary = fmt.Sprintf("%s Main reasons: %s.", summary, strings.Join(req.MatchReasons, "; "))
	}

	checklist := []model.ChecklistItem{}
	seen := map[string]bool{}

	for _, flag := range req.RedFlags {
		if flag.Severity != model.SeverityHigh && flag.Severity != model.SeverityMedium {
			continue
		}

		category := "General"
		suggestion := genericSuggestion
		for _, canned := range cannedSuggestions {
			if strings.Contains(flag.Type, canned.keyword) {
				category = canned.category
				suggestion = canned.suggestion
				break
			}
		}

		if seen[category] {
			continue
		}
		seen[category] = true

		checklist = append(checklist, model.ChecklistItem{
			Suggestion: suggestion,
			Category:   category,
		})
		if len(checklist) == 3 {
			break
		}
	}

	return &model.Explanation{
		SummaryExplanation:   summary,
		NegotiationChecklist: checklist,
	}
}
