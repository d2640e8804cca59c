package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/flatwalay/backend/internal/model"

	"go.uber.org/zap"
)

// Listing reasons emitted by the deterministic rules
const (
	ReasonCityMatches   = "City matches"
	ReasonPreferredArea = "Preferred area"
	ReasonWithinBudget  = "Within budget"
)

// requiredAmenities are the amenities worth points when a listing offers them
var requiredAmenities = []string{"Security guard", "WiFi"}

const polishSystemPrompt = `You rewrite a terse list of reasons a housing listing suits a group of roommates into ONE short positive sentence.
Return only the sentence, no preamble.`

// RoomHunter scores housing listings against one or more roommate profiles
type RoomHunter struct {
	llm            *LLMClient
	log            *zap.Logger
	reasonMaxChars int
}

// NewRoomHunter creates a housing recommendation service
func NewRoomHunter(llm *LLMClient, log *zap.Logger, reasonMaxChars int) *RoomHunter {
	if reasonMaxChars <= 0 {
		reasonMaxChars = 500
	}
	return &RoomHunter{llm: llm, log: log, reasonMaxChars: reasonMaxChars}
}

// TopMatches scores every listing against the supplied profiles and returns
// the top n by combined score. When polish is set, the reason text of the
// returned listings is rewritten into prose by the model; any model failure
// keeps the concatenated reasons.
func (h *RoomHunter) TopMatches(ctx context.Context, profiles []model.ProfileDocument, listings []model.Housing, n int, polish bool) []model.HousingMatch {
	matches := make([]model.HousingMatch, 0, len(listings))

	for i := range listings {
		listing := &listings[i]
		total := 0
		reasons := []string{}
		seen := map[string]bool{}

		for _, profile := range profiles {
			score, pairReasons := ScoreListing(listing, profile)
			total += score
			for _, reason := range pairReasons {
				if !seen[reason] {
					seen[reason] = true
					reasons = append(reasons, reason)
				}
			}
		}

		joined := truncateRunes(strings.Join(reasons, "; "), h.reasonMaxChars)

		matches = append(matches, model.HousingMatch{
			ListingID:      listing.ID,
			City:           listing.City,
			Area:           listing.Area,
			MonthlyRentPKR: listing.MonthlyRent,
			RoomsAvailable: listing.RoomsAvailable,
			Amenities:      listing.Amenities,
			Availability:   listing.Availability,
			Score:          total,
			ShortReason:    joined,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if n > 0 && len(matches) > n {
		matches = matches[:n]
	}

	if polish && h.llm != nil && h.llm.IsEnabled() {
		for i := range matches {
			polished, err := h.llm.CompleteText(ctx, polishSystemPrompt, matches[i].ShortReason)
			if err != nil || strings.TrimSpace(polished) == "" {
				if err != nil {
					h.log.Warn("reason polish failed, keeping plain reasons", zap.Error(err))
				}
				continue
			}
			matches[i].ShortReason = strings.TrimSpace(polished)
		}
	}

	return matches
}

// ScoreListing scores one listing against one profile and returns the score
// with its reasons in rule order
func ScoreListing(listing *model.Housing, profile model.ProfileDocument) (int, []string) {
	score := 0
	reasons := []string{}

	if profile.City != "" && strings.EqualFold(listing.City, profile.City) {
		score += 30
		reasons = append(reasons, ReasonCityMatches)
	}
	if profile.Area != "" && strings.EqualFold(listing.Area, profile.Area) {
		score += 25
		reasons = append(reasons, ReasonPreferredArea)
	}
	if profile.BudgetPKR >= listing.MonthlyRent {
		score += 25
		reasons = append(reasons, ReasonWithinBudget)
	}

	matched := []string{}
	for _, amenity := range requiredAmenities {
		if hasAmenity(listing.Amenities, amenity) {
			score += 10
			matched = append(matched, amenity)
		}
	}
	if len(matched) > 0 {
		reasons = append(reasons, fmt.Sprintf("Amenities matched: %s", strings.Join(matched, ", ")))
	}

	score += lifestyleBonus(listing, profile)

	return score, reasons
}

// lifestyleBonus awards +5 per optional preference field present on both the
// listing and the profile with the same value
func lifestyleBonus(listing *model.Housing, profile model.ProfileDocument) int {
	bonus := 0
	if listing.SleepSchedule != nil && profile.SleepSchedule != "" && *listing.SleepSchedule == profile.SleepSchedule {
		bonus += 5
	}
	if listing.Cleanliness != nil && profile.Cleanliness != "" && *listing.Cleanliness == profile.Cleanliness {
		bonus += 5
	}
	if listing.NoiseTolerance != nil && profile.NoiseTolerance != "" && *listing.NoiseTolerance == profile.NoiseTolerance {
		bonus += 5
	}
	if listing.StudyHabits != nil && profile.StudyHabits != "" && *listing.StudyHabits == profile.StudyHabits {
		bonus += 5
	}
	if listing.FoodPref != nil && profile.FoodPref != "" && *listing.FoodPref == profile.FoodPref {
		bonus += 5
	}
	return bonus
}

// truncateRunes cuts s to at most n characters without splitting a rune
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func hasAmenity(amenities []string, amenity string) bool {
	for _, a := range amenities {
		if strings.EqualFold(a, amenity) {
			return true
		}
	}
	return false
}
