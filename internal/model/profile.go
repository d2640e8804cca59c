package model

import (
	"fmt"
	"time"
)

// Categorical preference attributes. Each has a fixed set of allowed values
// and a default used when extraction is ambiguous.

// SleepSchedule is a profile's sleep preference
type SleepSchedule string

const (
	SleepNightOwl   SleepSchedule = "Night owl"
	SleepEarlyRiser SleepSchedule = "Early riser"
	SleepFlexible   SleepSchedule = "Flexible"
)

// Cleanliness is a profile's cleanliness preference
type Cleanliness string

const (
	CleanTidy    Cleanliness = "Tidy"
	CleanAverage Cleanliness = "Average"
	CleanMessy   Cleanliness = "Messy"
)

// NoiseTolerance is a profile's tolerance for noise
type NoiseTolerance string

const (
	NoiseQuiet    NoiseTolerance = "Quiet"
	NoiseModerate NoiseTolerance = "Moderate"
	NoiseLoudOK   NoiseTolerance = "Loud ok"
)

// StudyHabits is a profile's study habit preference
type StudyHabits string

const (
	StudyOnlineClasses StudyHabits = "Online classes"
	StudyLateNight     StudyHabits = "Late-night study"
	StudyRoom          StudyHabits = "Room study"
	StudyLibrary       StudyHabits = "Library"
)

// FoodPref is a profile's food preference
type FoodPref string

const (
	FoodFlexible FoodPref = "Flexible"
	FoodNonVeg   FoodPref = "Non-veg"
	FoodVeg      FoodPref = "Veg"
)

// Defaults applied when extraction cannot determine an attribute
const (
	DefaultSleepSchedule  = SleepFlexible
	DefaultCleanliness    = CleanAverage
	DefaultNoiseTolerance = NoiseModerate
	DefaultStudyHabits    = StudyLibrary
	DefaultFoodPref       = FoodFlexible
)

// SleepScheduleValues lists the allowed sleep schedule labels
func SleepScheduleValues() []SleepSchedule {
	return []SleepSchedule{SleepNightOwl, SleepEarlyRiser, SleepFlexible}
}

// CleanlinessValues lists the allowed cleanliness labels
func CleanlinessValues() []Cleanliness {
	return []Cleanliness{CleanTidy, CleanAverage, CleanMessy}
}

// NoiseToleranceValues lists the allowed noise tolerance labels
func NoiseToleranceValues() []NoiseTolerance {
	return []NoiseTolerance{NoiseQuiet, NoiseModerate, NoiseLoudOK}
}

// StudyHabitsValues lists the allowed study habit labels
func StudyHabitsValues() []StudyHabits {
	return []StudyHabits{StudyOnlineClasses, StudyLateNight, StudyRoom, StudyLibrary}
}

// FoodPrefValues lists the allowed food preference labels
func FoodPrefValues() []FoodPref {
	return []FoodPref{FoodFlexible, FoodNonVeg, FoodVeg}
}

// Valid reports whether the value is a member of the enumeration
func (s SleepSchedule) Valid() bool {
	return s == SleepNightOwl || s == SleepEarlyRiser || s == SleepFlexible
}

// Valid reports whether the value is a member of the enumeration
func (c Cleanliness) Valid() bool {
	return c == CleanTidy || c == CleanAverage || c == CleanMessy
}

// Valid reports whether the value is a member of the enumeration
func (n NoiseTolerance) Valid() bool {
	return n == NoiseQuiet || n == NoiseModerate || n == NoiseLoudOK
}

// Valid reports whether the value is a member of the enumeration
func (s StudyHabits) Valid() bool {
	return s == StudyOnlineClasses || s == StudyLateNight || s == StudyRoom || s == StudyLibrary
}

// Valid reports whether the value is a member of the enumeration
func (f FoodPref) Valid() bool {
	return f == FoodFlexible || f == FoodNonVeg || f == FoodVeg
}

// Profile represents a stored roommate profile document
type Profile struct {
	ID             string         `json:"id" db:"id"`
	RawProfileText *string        `json:"raw_profile_text,omitempty" db:"raw_profile_text"`
	City           string         `json:"city" db:"city"`
	Area           string         `json:"area" db:"area"`
	BudgetPKR      int            `json:"budget_PKR" db:"budget_pkr"`
	SleepSchedule  SleepSchedule  `json:"sleep_schedule" db:"sleep_schedule"`
	Cleanliness    Cleanliness    `json:"cleanliness" db:"cleanliness"`
	NoiseTolerance NoiseTolerance `json:"noise_tolerance" db:"noise_tolerance"`
	StudyHabits    StudyHabits    `json:"study_habits" db:"study_habits"`
	FoodPref       FoodPref       `json:"food_pref" db:"food_pref"`
	ContextNotes   *string        `json:"context_notes,omitempty" db:"context_notes"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" db:"updated_at"`
}

// ProfileCreate is the payload for creating a profile, and the output
// contract of the text extraction service
type ProfileCreate struct {
	RawProfileText *string        `json:"raw_profile_text,omitempty"`
	City           string         `json:"city"`
	Area           string         `json:"area"`
	BudgetPKR      int            `json:"budget_PKR"`
	SleepSchedule  SleepSchedule  `json:"sleep_schedule" binding:"required"`
	Cleanliness    Cleanliness    `json:"cleanliness" binding:"required"`
	NoiseTolerance NoiseTolerance `json:"noise_tolerance" binding:"required"`
	StudyHabits    StudyHabits    `json:"study_habits" binding:"required"`
	FoodPref       FoodPref       `json:"food_pref" binding:"required"`
	ContextNotes   *string        `json:"context_notes,omitempty"`
}

// Validate enforces enum membership and a non-negative budget
func (p *ProfileCreate) Validate() error {
	if !p.SleepSchedule.Valid() {
		return fmt.Errorf("invalid sleep_schedule: %q", p.SleepSchedule)
	}
	if !p.Cleanliness.Valid() {
		return fmt.Errorf("invalid cleanliness: %q", p.Cleanliness)
	}
	if !p.NoiseTolerance.Valid() {
		return fmt.Errorf("invalid noise_tolerance: %q", p.NoiseTolerance)
	}
	if !p.StudyHabits.Valid() {
		return fmt.Errorf("invalid study_habits: %q", p.StudyHabits)
	}
	if !p.FoodPref.Valid() {
		return fmt.Errorf("invalid food_pref: %q", p.FoodPref)
	}
	if p.BudgetPKR < 0 {
		return fmt.Errorf("budget_PKR must be non-negative, got %d", p.BudgetPKR)
	}
	return nil
}

// ProfileUpdate is a partial update; nil fields are left unchanged
type ProfileUpdate struct {
	RawProfileText *string         `json:"raw_profile_text,omitempty"`
	City           *string         `json:"city,omitempty"`
	Area           *string         `json:"area,omitempty"`
	BudgetPKR      *int            `json:"budget_PKR,omitempty"`
	SleepSchedule  *SleepSchedule  `json:"sleep_schedule,omitempty"`
	Cleanliness    *Cleanliness    `json:"cleanliness,omitempty"`
	NoiseTolerance *NoiseTolerance `json:"noise_tolerance,omitempty"`
	StudyHabits    *StudyHabits    `json:"study_habits,omitempty"`
	FoodPref       *FoodPref       `json:"food_pref,omitempty"`
	ContextNotes   *string         `json:"context_notes,omitempty"`
}

// Validate checks enum membership of any provided field
func (u *ProfileUpdate) Validate() error {
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
	if u.BudgetPKR != nil && *u.BudgetPKR < 0 {
		return fmt.Errorf("budget_PKR must be non-negative, got %d", *u.BudgetPKR)
	}
	return nil
}
