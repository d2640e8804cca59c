package utils

import (
	"testing"
)

type scorePayload struct {
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

func TestParseLLMJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantScore int
		wantErr   bool
	}{
		{
			name:      "pure JSON",
			input:     `{"score": 65, "reasons": ["City matches"]}`,
			wantScore: 65,
		},
		{
			name:      "markdown json block",
			input:     "```json\n{\"score\": 50, \"reasons\": []}\n```",
			wantScore: 50,
		},
		{
			name:      "plain markdown block",
			input:     "```\n{\"score\": 30, \"reasons\": []}\n```",
			wantScore: 30,
		},
		{
			name:      "JSON with surrounding text",
			input:     `Here is the result: {"score": 80, "reasons": ["Sleep schedules match"]} hope that helps!`,
			wantScore: 80,
		},
		{
			name:      "trailing comma",
			input:     `{"score": 40, "reasons": ["Budgets are similar",],}`,
			wantScore: 40,
		},
		{
			name:      "unquoted keys",
			input:     `{score: 25, reasons: []}`,
			wantScore: 25,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
		{
			name:    "no JSON at all",
			input:   "I could not produce a score for these profiles.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got scorePayload
			err := ParseLLMJSON(tt.input, &got)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Score != tt.wantScore {
				t.Errorf("score = %d, want %d", got.Score, tt.wantScore)
			}
		})
	}
}

func TestParseLLMJSONNestedBraces(t *testing.T) {
	input := `Result: {"outer": {"inner": "value with } brace"}, "score": 10}`
	var got map[string]interface{}
	if err := ParseLLMJSON(input, &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["score"].(float64) != 10 {
		t.Errorf("score = %v, want 10", got["score"])
	}
}

func TestValidateJSON(t *testing.T) {
	if !ValidateJSON(`{"ok": true}`) {
		t.Error("expected valid JSON")
	}
	if ValidateJSON(`{"ok": }`) {
		t.Error("expected invalid JSON")
	}
}
