package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/flatwalay/backend/internal/cache"
	"github.com/flatwalay/backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCache(t *testing.T) *cache.Cache {
	t.Helper()
	c, err := cache.New(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestPreprocessStripsPhoneNumbers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"mobile format", "Call me at 0300-1234567 anytime", "call me at anytime"},
		{"international format", "Contact: +92 300 1234567", "contact:"},
		{"no phone", "Looking for a quiet room", "looking for a quiet room"},
		{"whitespace collapsed", "  Night   owl  ", "night owl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, preprocess(tt.input))
		})
	}
}

func TestParseKeywordFallback(t *testing.T) {
	extractor := NewExtractor(disabledLLM(), testCache(t), testLogger())

	text := "I'm a night owl studying in Lahore, budget around 25000. I'm a neat freak and prefer quiet. Vegetarian, study at the library."
	profile, source, err := extractor.Parse(context.Background(), text)
	require.NoError(t, err)

	assert.Equal(t, SourceFallback, source)
	assert.Equal(t, model.SleepNightOwl, profile.SleepSchedule)
	assert.Equal(t, model.CleanTidy, profile.Cleanliness)
	assert.Equal(t, model.NoiseQuiet, profile.NoiseTolerance)
	assert.Equal(t, model.StudyLibrary, profile.StudyHabits)
	assert.Equal(t, model.FoodVeg, profile.FoodPref)
	assert.Equal(t, "Lahore", profile.City)
	assert.Equal(t, 25000, profile.BudgetPKR)
	require.NotNil(t, profile.RawProfileText)
	assert.Equal(t, text, *profile.RawProfileText)
}

func TestParseKeywordCleanlinessCues(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.Cleanliness
	}{
		{"untidy is messy", "I'm pretty untidy, looking for a room in Lahore", model.CleanMessy},
		{"not very clean is messy", "I'm not very clean to be honest", model.CleanMessy},
		{"messy", "bit messy but friendly", model.CleanMessy},
		{"tidy", "I keep my space tidy", model.CleanTidy},
		{"very clean", "I'm very clean", model.CleanTidy},
		{"no cue", "looking for a place near campus", model.DefaultCleanliness},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor := NewExtractor(disabledLLM(), testCache(t), testLogger())
			profile, _, err := extractor.Parse(context.Background(), tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, profile.Cleanliness)
		})
	}
}

func TestParseAppliesDefaults(t *testing.T) {
	extractor := NewExtractor(disabledLLM(), testCache(t), testLogger())

	profile, _, err := extractor.Parse(context.Background(), "just looking for a room")
	require.NoError(t, err)

	assert.Equal(t, model.DefaultSleepSchedule, profile.SleepSchedule)
	assert.Equal(t, model.DefaultCleanliness, profile.Cleanliness)
	assert.Equal(t, model.DefaultNoiseTolerance, profile.NoiseTolerance)
	assert.Equal(t, model.DefaultStudyHabits, profile.StudyHabits)
	assert.Equal(t, model.DefaultFoodPref, profile.FoodPref)
	assert.NoError(t, profile.Validate())
}

func TestParseEmptyTextFails(t *testing.T) {
	extractor := NewExtractor(disabledLLM(), testCache(t), testLogger())

	_, _, err := extractor.Parse(context.Background(), "   ")
	assert.Error(t, err)
}

func TestParseCacheIdempotence(t *testing.T) {
	extractor := NewExtractor(disabledLLM(), testCache(t), testLogger())

	text := "Early riser in Karachi, budget 30000, parties are fine"
	first, firstSource, err := extractor.Parse(context.Background(), text)
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, firstSource)

	second, secondSource, err := extractor.Parse(context.Background(), text)
	require.NoError(t, err)
	assert.Equal(t, "cache", secondSource)
	assert.Equal(t, first, second)
}
