package tips_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sleepsense/internal/features"
	"sleepsense/internal/tips"
)

func healthyObservation() *features.Observation {
	return &features.Observation{
		SleepDuration:    8,
		BedtimeHour:      23,
		WakeHour:         7,
		Caffeine:         "None",
		ExerciseDuration: 30,
		ScreenTime:       20,
		StressLevel:      2,
		Mood:             "Happy",
		Interruptions:    "No",
	}
}

func TestGenerate_PositiveFallbackOnly(t *testing.T) {
	got := tips.Generate(healthyObservation(), "Good")
	assert.Equal(t, []string{tips.PositiveTip}, got)
}

func TestGenerate_AllRulesInOrder(t *testing.T) {
	obs := &features.Observation{
		SleepDuration:    5,
		BedtimeHour:      25.5,
		WakeHour:         6,
		Caffeine:         "High",
		ExerciseDuration: 0,
		ScreenTime:       150,
		StressLevel:      9,
		Mood:             "Sad",
		Interruptions:    "Yes",
	}

	got := tips.Generate(obs, "Poor")
	assert.Equal(t, []string{
		tips.SleepDurationTip,
		tips.CaffeineTip,
		tips.ScreenTimeTip,
		tips.StressTip,
	}, got)
}

func TestGenerate_SingleRuleToggle(t *testing.T) {
	base := tips.Generate(healthyObservation(), "Good")

	obs := healthyObservation()
	obs.ScreenTime = 90

	got := tips.Generate(obs, "Good")
	assert.Equal(t, []string{tips.ScreenTimeTip}, got)
	assert.NotEqual(t, base, got)
}

func TestGenerate_ConsistencyFallbackForPoor(t *testing.T) {
	// A Poor prediction with no triggering rule gets the consistency tip,
	// not the positive one.
	got := tips.Generate(healthyObservation(), "Poor")
	assert.Equal(t, []string{tips.ConsistencyTip}, got)
}

func TestGenerate_NoFallbackWhenRulesFired(t *testing.T) {
	obs := healthyObservation()
	obs.StressLevel = 9

	got := tips.Generate(obs, "Poor")
	assert.Equal(t, []string{tips.StressTip}, got)
	assert.NotContains(t, got, tips.ConsistencyTip)
	assert.NotContains(t, got, tips.PositiveTip)
}

func TestGenerate_Boundaries(t *testing.T) {
	obs := healthyObservation()
	obs.SleepDuration = 7
	obs.ScreenTime = 60
	obs.StressLevel = 5
	obs.Caffeine = "Low"

	// All rule conditions are strict comparisons; boundary values fire none.
	got := tips.Generate(obs, "Average")
	assert.Equal(t, []string{tips.PositiveTip}, got)
}

func TestGenerate_ModerateCaffeineTriggers(t *testing.T) {
	obs := healthyObservation()
	obs.Caffeine = "Moderate"

	got := tips.Generate(obs, "Average")
	assert.Equal(t, []string{tips.CaffeineTip}, got)
}
