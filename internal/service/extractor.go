package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/flatwalay/backend/internal/cache"
	"github.com/flatwalay/backend/internal/model"
	"github.com/flatwalay/backend/internal/utils"

	"go.uber.org/zap"
)

// phonePattern matches Pakistani phone numbers so they are stripped from the
// text before it reaches the model or the cache key
var phonePattern = regexp.MustCompile(`(?:\+92|03)\s?[-]?\s?\d{2,3}\s?[-]?\d{7,8}`)

// budgetPattern finds the first standalone number in the text, read as PKR
var budgetPattern = regexp.MustCompile(`\d[\d,]{2,}`)

// knownCities are the cities recognized by the keyword fallback
var knownCities = []string{"Lahore", "Karachi", "Islamabad", "Rawalpindi", "Faisalabad", "Multan", "Peshawar", "Quetta"}

const extractorSystemPrompt = `You convert a student's free-form roommate preference text into a strict JSON object.
Return ONLY a JSON object with exactly these fields:
  "city": string (the city mentioned, or "" if none)
  "area": string (the neighbourhood or area mentioned, or "" if none)
  "budget_PKR": integer (monthly budget in Pakistani rupees, 0 if none)
  "sleep_schedule": one of "Night owl", "Early riser", "Flexible"
  "cleanliness": one of "Tidy", "Average", "Messy"
  "noise_tolerance": one of "Quiet", "Moderate", "Loud ok"
  "study_habits": one of "Online classes", "Late-night study", "Room study", "Library"
  "food_pref": one of "Flexible", "Non-veg", "Veg"
  "context_notes": string (anything important that does not fit the fields above, or "")
Use the exact labels listed. When the text is ambiguous about an attribute, pick "Flexible" for sleep_schedule and food_pref, "Average" for cleanliness, "Moderate" for noise_tolerance, and "Library" for study_habits.`

// Extractor turns free-form profile text into a structured profile. Results
// are memoized by the preprocessed text so repeated parses skip the model.
type Extractor struct {
	llm   *LLMClient
	cache *cache.Cache
	log   *zap.Logger
}

// NewExtractor creates an extraction service
func NewExtractor(llm *LLMClient, c *cache.Cache, log *zap.Logger) *Extractor {
	return &Extractor{llm: llm, cache: c, log: log}
}

// Parse extracts a structured profile from raw text. The returned source tag
// is "llm", "fallback", or "cache".
func (e *Extractor) Parse(ctx context.Context, rawText string) (*model.ProfileCreate, string, error) {
	cleaned := preprocess(rawText)
	if cleaned == "" {
		return nil, "", fmt.Errorf("profile text is empty")
	}

	if e.cache != nil {
		if data, ok, err := e.cache.Get(cleaned); err != nil {
			e.log.Warn("cache lookup failed", zap.Error(err))
		} else if ok {
			var cached model.ProfileCreate
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, "cache", nil
			}
			e.log.Warn("discarding corrupt cache entry")
		}
	}

	profile, source, err := runWithFallback(ctx, e.log, "extractor", e.llm.IsEnabled(),
		func(ctx context.Context) (*model.ProfileCreate, error) {
			return e.parseLLM(ctx, cleaned)
		},
		func(ctx context.Context) (*model.ProfileCreate, error) {
			return e.parseKeywords(cleaned)
		},
	)
	if err != nil {
		return nil, source, err
	}

	profile.RawProfileText = &rawText

	if e.cache != nil {
		if data, err := json.Marshal(profile); err == nil {
			if err := e.cache.Put(cleaned, data); err != nil {
				e.log.Warn("cache store failed", zap.Error(err))
			}
		}
	}

	return profile, source, nil
}

func (e *Extractor) parseLLM(ctx context.Context, text string) (*model.ProfileCreate, error) {
	content, err := e.llm.CompleteJSON(ctx, extractorSystemPrompt, text)
	if err != nil {
		return nil, err
	}

	var profile model.ProfileCreate
	if err := utils.ParseLLMJSON(content, &profile); err != nil {
		return nil, fmt.Errorf("unparseable extraction output: %w", err)
	}

	applyDefaults(&profile)
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("extraction output failed validation: %w", err)
	}
	return &profile, nil
}

// parseKeywords is the deterministic extraction path. It scans for cue
// phrases and maps them onto the canonical labels, with defaults elsewhere.
func (e *Extractor) parseKeywords(text string) (*model.ProfileCreate, error) {
	lower := strings.ToLower(text)
	profile := &model.ProfileCreate{}

	switch {
	case containsAny(lower, "night owl", "stays up late", "stay up late", "sleep late", "late sleeper"):
		profile.SleepSchedule = model.SleepNightOwl
	case containsAny(lower, "early riser", "early bird", "morning person", "wake up early"):
		profile.SleepSchedule = model.SleepEarlyRiser
	}

	// Messy cues first: "untidy" and "not very clean" contain tidy cues
	switch {
	case containsAny(lower, "messy", "not very clean", "untidy"):
		profile.Cleanliness = model.CleanMessy
	case containsAny(lower, "neat freak", "very clean", "tidy", "cleanliness is important", "keeps things clean"):
		profile.Cleanliness = model.CleanTidy
	}

	switch {
	case containsAny(lower, "quiet", "peaceful", "no noise", "silence"):
		profile.NoiseTolerance = model.NoiseQuiet
	case containsAny(lower, "loud music", "parties", "party", "don't mind noise", "noise is fine"):
		profile.NoiseTolerance = model.NoiseLoudOK
	}

	switch {
	case containsAny(lower, "online classes", "online class", "remote classes"):
		profile.StudyHabits = model.StudyOnlineClasses
	case containsAny(lower, "late-night study", "late night study", "study at night", "studies late"):
		profile.StudyHabits = model.StudyLateNight
	case containsAny(lower, "study in my room", "study in the room", "room study", "studies in the room"):
		profile.StudyHabits = model.StudyRoom
	case containsAny(lower, "library"):
		profile.StudyHabits = model.StudyLibrary
	}

	switch {
	case containsAny(lower, "vegetarian", "veg only", "no meat"):
		profile.FoodPref = model.FoodVeg
	case containsAny(lower, "non-veg", "non veg", "meat"):
		profile.FoodPref = model.FoodNonVeg
	}

	for _, city := range knownCities {
		if strings.Contains(lower, strings.ToLower(city)) {
			profile.City = city
			break
		}
	}

	if m := budgetPattern.FindString(text); m != "" {
		if budget, err := strconv.Atoi(strings.ReplaceAll(m, ",", "")); err == nil {
			profile.BudgetPKR = budget
		}
	}

	applyDefaults(profile)
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("keyword extraction failed validation: %w", err)
	}
	return profile, nil
}

// preprocess normalizes the raw text: trims whitespace, lowercases, and
// removes phone numbers
func preprocess(text string) string {
	cleaned := phonePattern.ReplaceAllString(text, "")
	cleaned = strings.ToLower(strings.TrimSpace(cleaned))
	return strings.Join(strings.Fields(cleaned), " ")
}

func applyDefaults(p *model.ProfileCreate) {
	if p.SleepSchedule == "" {
		p.SleepSchedule = model.DefaultSleepSchedule
	}
	if p.Cleanliness == "" {
		p.Cleanliness = model.DefaultCleanliness
	}
	if p.NoiseTolerance == "" {
		p.NoiseTolerance = model.DefaultNoiseTolerance
	}
	if p.StudyHabits == "" {
		p.StudyHabits = model.DefaultStudyHabits
	}
	if p.FoodPref == "" {
		p.FoodPref = model.DefaultFoodPref
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
