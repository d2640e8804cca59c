package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHousingCreateValidate(t *testing.T) {
	valid := HousingCreate{City: "Lahore", Area: "DHA", MonthlyRent: 20000}
	assert.NoError(t, valid.Validate())

	badAvailability := valid
	badAvailability.Availability = "Sold"
	assert.Error(t, badAvailability.Validate())

	negativeRent := valid
	negativeRent.MonthlyRent = -1
	assert.Error(t, negativeRent.Validate())
}

func TestHousingUpdateValidateLifestyleFields(t *testing.T) {
	empty := HousingUpdate{}
	assert.NoError(t, empty.Validate())

	goodSleep := SleepNightOwl
	goodFood := FoodVeg
	withLifestyle := HousingUpdate{SleepSchedule: &goodSleep, FoodPref: &goodFood}
	assert.NoError(t, withLifestyle.Validate())

	badSleep := SleepSchedule("Whenever")
	withBadSleep := HousingUpdate{SleepSchedule: &badSleep}
	assert.Error(t, withBadSleep.Validate())

	badClean := Cleanliness("Spotless")
	withBadClean := HousingUpdate{Cleanliness: &badClean}
	assert.Error(t, withBadClean.Validate())
}
