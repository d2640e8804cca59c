package service

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/flatwalay/backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreListingCityBudgetAmenity(t *testing.T) {
	listing := &model.Housing{
		ID:          "l1",
		City:        "Lahore",
		MonthlyRent: 20000,
		Amenities:   model.JSONArray{"WiFi"},
	}
	profile := model.ProfileDocument{City: "Lahore", BudgetPKR: 25000}

	score, reasons := ScoreListing(listing, profile)
	assert.Equal(t, 65, score)
	assert.Equal(t, []string{ReasonCityMatches, ReasonWithinBudget, "Amenities matched: WiFi"}, reasons)
}

func TestScoreListingAreaAndAmenities(t *testing.T) {
	listing := &model.Housing{
		City:        "Karachi",
		Area:        "Gulshan",
		MonthlyRent: 30000,
		Amenities:   model.JSONArray{"Security guard", "WiFi", "Parking"},
	}
	profile := model.ProfileDocument{City: "Karachi", Area: "Gulshan", BudgetPKR: 30000}

	score, reasons := ScoreListing(listing, profile)
	// 30 city + 25 area + 25 budget + 10 + 10 amenities
	assert.Equal(t, 100, score)
	assert.Contains(t, reasons, "Amenities matched: Security guard, WiFi")
}

func TestScoreListingLifestyleBonus(t *testing.T) {
	sleep := model.SleepNightOwl
	food := model.FoodVeg
	listing := &model.Housing{
		City:          "Lahore",
		MonthlyRent:   20000,
		SleepSchedule: &sleep,
		FoodPref:      &food,
	}
	profile := model.ProfileDocument{
		City:          "Lahore",
		BudgetPKR:     25000,
		SleepSchedule: model.SleepNightOwl,
		FoodPref:      model.FoodFlexible,
	}

	score, _ := ScoreListing(listing, profile)
	// 30 city + 25 budget + 5 sleep; food differs
	assert.Equal(t, 60, score)
}

func TestTopMatchesSumsAcrossProfilesAndDedupesReasons(t *testing.T) {
	hunter := NewRoomHunter(disabledLLM(), testLogger(), 500)

	listings := []model.Housing{
		{ID: "good", City: "Lahore", MonthlyRent: 20000, Amenities: model.JSONArray{"WiFi"}},
		{ID: "poor", City: "Multan", MonthlyRent: 90000},
	}
	profiles := []model.ProfileDocument{
		{City: "Lahore", BudgetPKR: 25000},
		{City: "Lahore", BudgetPKR: 30000},
	}

	matches := hunter.TopMatches(context.Background(), profiles, listings, 5, false)
	require.Len(t, matches, 2)

	assert.Equal(t, "good", matches[0].ListingID)
	assert.Equal(t, 130, matches[0].Score)
	// Both profiles produce identical reasons; the joined string keeps one copy
	assert.Equal(t, "City matches; Within budget; Amenities matched: WiFi", matches[0].ShortReason)

	assert.Equal(t, "poor", matches[1].ListingID)
	assert.Equal(t, 0, matches[1].Score)
	assert.Empty(t, matches[1].ShortReason)
}

func TestTopMatchesRespectsTopN(t *testing.T) {
	hunter := NewRoomHunter(disabledLLM(), testLogger(), 500)

	listings := []model.Housing{
		{ID: "a", City: "Lahore", MonthlyRent: 10000},
		{ID: "b", City: "Lahore", MonthlyRent: 15000},
		{ID: "c", City: "Lahore", MonthlyRent: 20000},
	}
	profiles := []model.ProfileDocument{{City: "Lahore", BudgetPKR: 50000}}

	matches := hunter.TopMatches(context.Background(), profiles, listings, 2, false)
	assert.Len(t, matches, 2)
}

func TestTopMatchesTruncatesReason(t *testing.T) {
	hunter := NewRoomHunter(disabledLLM(), testLogger(), 20)

	listings := []model.Housing{
		{ID: "a", City: "Lahore", MonthlyRent: 10000, Amenities: model.JSONArray{"WiFi", "Security guard"}},
	}
	profiles := []model.ProfileDocument{{City: "Lahore", Area: "", BudgetPKR: 50000}}

	matches := hunter.TopMatches(context.Background(), profiles, listings, 5, false)
	require.Len(t, matches, 1)
	assert.Equal(t, 20, len(matches[0].ShortReason))
	assert.True(t, strings.HasPrefix(matches[0].ShortReason, "City matches"))
}

func TestTruncateRunesKeepsValidUTF8(t *testing.T) {
	urdu := "چوکیدار سیکیورٹی گارڈ سروس دستیاب ہے"

	got := truncateRunes(urdu, 10)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 10, utf8.RuneCountInString(got))

	assert.Equal(t, "short", truncateRunes("short", 10))
	assert.Equal(t, "", truncateRunes("", 5))
}
