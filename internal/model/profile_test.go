package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileCreateValidate(t *testing.T) {
	valid := ProfileCreate{
		City:           "Lahore",
		BudgetPKR:      25000,
		SleepSchedule:  SleepNightOwl,
		Cleanliness:    CleanTidy,
		NoiseTolerance: NoiseQuiet,
		StudyHabits:    StudyLibrary,
		FoodPref:       FoodVeg,
	}
	assert.NoError(t, valid.Validate())

	badSleep := valid
	badSleep.SleepSchedule = "Early Bird"
	assert.Error(t, badSleep.Validate())

	badBudget := valid
	badBudget.BudgetPKR = -1
	assert.Error(t, badBudget.Validate())
}

func TestProfileUpdateValidateOnlyChecksProvidedFields(t *testing.T) {
	empty := ProfileUpdate{}
	assert.NoError(t, empty.Validate())

	good := SleepEarlyRiser
	withSleep := ProfileUpdate{SleepSchedule: &good}
	assert.NoError(t, withSleep.Validate())

	bad := SleepSchedule("Whenever")
	withBadSleep := ProfileUpdate{SleepSchedule: &bad}
	assert.Error(t, withBadSleep.Validate())
}

func TestEnumValueListers(t *testing.T) {
	for _, v := range SleepScheduleValues() {
		assert.True(t, v.Valid())
	}
	for _, v := range CleanlinessValues() {
		assert.True(t, v.Valid())
	}
	for _, v := range NoiseToleranceValues() {
		assert.True(t, v.Valid())
	}
	for _, v := range StudyHabitsValues() {
		assert.True(t, v.Valid())
	}
	for _, v := range FoodPrefValues() {
		assert.True(t, v.Valid())
	}
}
