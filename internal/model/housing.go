package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Availability labels for a housing listing
const (
	HousingAvailable    = "Available"
	HousingNotAvailable = "Not available"
)

// Housing represents a rental listing document
type Housing struct {
	ID             string          `json:"id" db:"id"`
	City           string          `json:"city" db:"city"`
	Area           string          `json:"area" db:"area"`
	MonthlyRent    int             `json:"monthly_rent_PKR" db:"monthly_rent"`
	RoomsAvailable int             `json:"rooms_available" db:"rooms_available"`
	Amenities      JSONArray       `json:"amenities" db:"amenities"`
	Availability   string          `json:"availability" db:"availability"`
	Latitude       *float64        `json:"latitude,omitempty" db:"latitude"`
	Longitude      *float64        `json:"longitude,omitempty" db:"longitude"`
	SleepSchedule  *SleepSchedule  `json:"sleep_schedule,omitempty" db:"sleep_schedule"`
	Cleanliness    *Cleanliness    `json:"cleanliness,omitempty" db:"cleanliness"`
	NoiseTolerance *NoiseTolerance `json:"noise_tolerance,omitempty" db:"noise_tolerance"`
	StudyHabits    *StudyHabits    `json:"study_habits,omitempty" db:"study_habits"`
	FoodPref       *FoodPref       `json:"food_pref,omitempty" db:"food_pref"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// HousingCreate is the payload for creating a listing. The optional lifestyle
// fields describe the house culture the landlord or current tenants prefer.
type HousingCreate struct {
	City           string          `json:"city" binding:"required"`
	Area           string          `json:"area" binding:"required"`
	MonthlyRent    int             `json:"monthly_rent_PKR"`
	RoomsAvailable int             `json:"rooms_available"`
	Amenities      []string        `json:"amenities,omitempty"`
	Availability   string          `json:"availability,omitempty"`
	Latitude       *float64        `json:"latitude,omitempty"`
	Longitude      *float64        `json:"longitude,omitempty"`
	SleepSchedule  *SleepSchedule  `json:"sleep_schedule,omitempty"`
	Cleanliness    *Cleanliness    `json:"cleanliness,omitempty"`
	NoiseTolerance *NoiseTolerance `json:"noise_tolerance,omitempty"`
	StudyHabits    *StudyHabits    `json:"study_habits,omitempty"`
	FoodPref       *FoodPref       `json:"food_pref,omitempty"`
}

// Validate checks availability and lifestyle enum membership
func (h *HousingCreate) Validate() error {
	if h.Availability != "" && h.Availability != HousingAvailable && h.Availability != HousingNotAvailable {
		return fmt.Errorf("invalid availability: %q", h.Availability)
	}
	if h.MonthlyRent < 0 {
		return fmt.Errorf("monthly_rent_PKR must be non-negative, got %d", h.MonthlyRent)
	}
	if h.SleepSchedule != nil && !h.SleepSchedule.Valid() {
		return fmt.Errorf("invalid sleep_schedule: %q", *h.SleepSchedule)
	}
	if h.Cleanliness != nil && !h.Cleanliness.Valid() {
		return fmt.Errorf("invalid cleanliness: %q", *h.Cleanliness)
	}
	if h.NoiseTolerance != nil && !h.NoiseTolerance.Valid() {
		return fmt.Errorf("invalid noise_tolerance: %q", *h.NoiseTolerance)
	}
	if h.StudyHabits != nil && !h.StudyHabits.Valid() {
		return fmt.Errorf("invalid study_habits: %q", *h.StudyHabits)
	}
	if h.FoodPref != nil && !h.FoodPref.Valid() {
		return fmt.Errorf("invalid food_pref: %q", *h.FoodPref)
	}
	return nil
}

// HousingUpdate is a partial update; nil fields are left unchanged
type HousingUpdate struct {
	City           *string         `json:"city,omitempty"`
	Area           *string         `json:"area,omitempty"`
	MonthlyRent    *int            `json:"monthly_rent_PKR,omitempty"`
	RoomsAvailable *int            `json:"rooms_available,omitempty"`
	Amenities      *[]string       `json:"amenities,omitempty"`
	Availability   *string         `json:"availability,omitempty"`
	Latitude       *float64        `json:"latitude,omitempty"`
	Longitude      *float64        `json:"longitude,omitempty"`
	SleepSchedule  *SleepSchedule  `json:"sleep_schedule,omitempty"`
	Cleanliness    *Cleanliness    `json:"cleanliness,omitempty"`
	NoiseTolerance *NoiseTolerance `json:"noise_tolerance,omitempty"`
	StudyHabits    *StudyHabits    `json:"study_habits,omitempty"`
	FoodPref       *FoodPref       `json:"food_pref,omitempty"`
}

// Validate checks the availability label and lifestyle enums when provided
func (u *HousingUpdate) Validate() error {
	if u.Availability != nil && *u.Availability != HousingAvailable && *u.Availability != HousingNotAvailable {
		return fmt.Errorf("invalid availability: %q", *u.Availability)
	}
	if u.MonthlyRent != nil && *u.MonthlyRent < 0 {
		return fmt.Errorf("monthly_rent_PKR must be non-negative, got %d", *u.MonthlyRent)
	}
	if u.SleepSchedule != nil && !u.SleepSchedule.Valid() {
		return fmt.Errorf("invalid sleep_schedule: %q", *u.SleepSchedule)
	}
	if u.Cleanliness != nil && !u.Cleanliness.Valid() {
		return fmt.Errorf("invalid cleanliness: %q", *u.Cleanliness)
	}
	if u.NoiseTolerance != nil && !u.NoiseTolerance.Valid() {
		return fmt.Errorf("invalid noise_tolerance: %q", *u.NoiseTolerance)
	}
	if u.StudyHabits != nil && !u.StudyHabits.Valid() {
		return fmt.Errorf("invalid study_habits: %q", *u.StudyHabits)
	}
	if u.FoodPref != nil && !u.FoodPref.Valid() {
		return fmt.Errorf("invalid food_pref: %q", *u.FoodPref)
	}
	return nil
}

// JSONArray represents a JSON array column
type JSONArray []string

// Value implements driver.Valuer interface
func (j JSONArray) Value() (driver.Value, error) {
	if j == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONArray) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), j)
	}
	return json.Unmarshal(bytes, j)
}
