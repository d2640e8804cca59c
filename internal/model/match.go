package model

// Red flag severity labels
const (
	SeverityHigh   = "HIGH"
	SeverityMedium = "MEDIUM"
	SeverityLow    = "LOW"
)

// MatchResult is the outcome of scoring one candidate profile against a
// target profile. Not persisted.
type MatchResult struct {
	ProfileID string   `json:"profile_id"`
	Score     int      `json:"score"`
	Reasons   []string `json:"reasons"`
}

// PairScore is the outcome of scoring exactly two profiles
type PairScore struct {
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

// RedFlag is a detected point of friction between two profiles
type RedFlag struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Evidence string `json:"evidence"`
}

// ConflictReport groups the red flags detected for a pair of profiles
type ConflictReport struct {
	PairID   string    `json:"pair_id"`
	RedFlags []RedFlag `json:"red_flags"`
}

// HousingMatch is a recommended listing with its combined score and reason
type HousingMatch struct {
	ListingID      string   `json:"listing_id"`
	City           string   `json:"city"`
	Area           string   `json:"area"`
	MonthlyRentPKR int      `json:"monthly_rent_PKR"`
	RoomsAvailable int      `json:"rooms_available"`
	Amenities      []string `json:"amenities"`
	Availability   string   `json:"availability"`
	Score          int      `json:"score"`
	ShortReason    string   `json:"short_reason"`
}

// ChecklistItem is one actionable negotiation suggestion
type ChecklistItem struct {
	Suggestion string `json:"suggestion"`
	Category   string `json:"category"`
}

// Explanation is a human-friendly summary of a match plus a short
// negotiation checklist (deduplicated by category, capped at three items)
type Explanation struct {
	SummaryExplanation   string          `json:"summary_explanation"`
	NegotiationChecklist []ChecklistItem `json:"negotiation_checklist"`
}

// ExplanationRequest is the input to the explanation generator
type ExplanationRequest struct {
	MatchScore   int       `json:"match_score"`
	MatchReasons []string  `json:"match_reasons"`
	RedFlags     []RedFlag `json:"red_flags"`
}

// PairRequest identifies two profiles, either inline or by stored id
type PairRequest struct {
	ProfileAID string           `json:"profile_a_id,omitempty"`
	ProfileBID string           `json:"profile_b_id,omitempty"`
	ProfileA   *ProfileDocument `json:"profile_a,omitempty"`
	ProfileB   *ProfileDocument `json:"profile_b,omitempty"`
}

// HousingMatchRequest is the input to the housing recommender
type HousingMatchRequest struct {
	Profiles      []ProfileDocument `json:"profiles,omitempty"`
	ProfileIDs    []string          `json:"profile_ids,omitempty"`
	PolishReasons bool              `json:"polish_reasons,omitempty"`
}

// ParseProfileRequest is the input to the text extraction service
type ParseProfileRequest struct {
	RawProfileText string `json:"raw_profile_text" binding:"required"`
}

// ProfileDocument is a loosely-typed profile as supplied by callers of the
// agent endpoints. Unknown fields are ignored; absent fields score zero.
type ProfileDocument struct {
	ID             string         `json:"id,omitempty"`
	City           string         `json:"city,omitempty"`
	Area           string         `json:"area,omitempty"`
	BudgetPKR      int            `json:"budget_PKR,omitempty"`
	SleepSchedule  SleepSchedule  `json:"sleep_schedule,omitempty"`
	Cleanliness    Cleanliness    `json:"cleanliness,omitempty"`
	NoiseTolerance NoiseTolerance `json:"noise_tolerance,omitempty"`
	StudyHabits    StudyHabits    `json:"study_habits,omitempty"`
	FoodPref       FoodPref       `json:"food_pref,omitempty"`
}

// DocumentFromProfile converts a stored profile to the loose document shape
// consumed by the agents
func DocumentFromProfile(p *Profile) ProfileDocument {
	return ProfileDocument{
		ID:             p.ID,
		City:           p.City,
		Area:           p.Area,
		BudgetPKR:      p.BudgetPKR,
		SleepSchedule:  p.SleepSchedule,
		Cleanliness:    p.Cleanliness,
		NoiseTolerance: p.NoiseTolerance,
		StudyHabits:    p.StudyHabits,
		FoodPref:       p.FoodPref,
	}
}
