package features_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goccy/go-json"

	"sleepsense/internal/features"
	"sleepsense/internal/preprocessing"
)

func validRequest() features.Request {
	return features.Request{
		SleepDuration:    "8",
		Bedtime:          "23:00",
		WakeTime:         "07:00",
		Caffeine:         "None",
		ExerciseDuration: "30",
		ScreenTime:       "20",
		StressLevel:      "2",
		Mood:             "Happy",
		Interruptions:    "No",
	}
}

func testEncoders(t *testing.T) features.Encoders {
	t.Helper()

	caffeine := preprocessing.NewCategoricalEncoder("caffeine")
	caffeine.Fit([]string{"None", "Low", "Moderate", "High"})

	mood := preprocessing.NewCategoricalEncoder("mood")
	mood.Fit([]string{"Happy", "Neutral", "Sad", "Anxious"})

	interruptions := preprocessing.NewCategoricalEncoder("interruptions")
	interruptions.Fit([]string{"Yes", "No"})

	return features.Encoders{Caffeine: caffeine, Mood: mood, Interruptions: interruptions}
}

func TestParse_Valid(t *testing.T) {
	obs, err := features.Parse(validRequest())
	require.NoError(t, err)

	assert.Equal(t, 8.0, obs.SleepDuration)
	assert.Equal(t, 23.0, obs.BedtimeHour)
	assert.Equal(t, 7.0, obs.WakeHour)
	assert.Equal(t, "None", obs.Caffeine)
	assert.Equal(t, 30.0, obs.ExerciseDuration)
	assert.Equal(t, 20.0, obs.ScreenTime)
	assert.Equal(t, 2, obs.StressLevel)
	assert.Equal(t, "Happy", obs.Mood)
	assert.Equal(t, "No", obs.Interruptions)
}

func TestParse_EarlyMorningBedtimeShifted(t *testing.T) {
	req := validRequest()
	req.Bedtime = "01:30"

	obs, err := features.Parse(req)
	require.NoError(t, err)
	assert.InDelta(t, 25.5, obs.BedtimeHour, 1e-9)
}

func TestParse_NoonBedtimeNotShifted(t *testing.T) {
	req := validRequest()
	req.Bedtime = "12:00"

	obs, err := features.Parse(req)
	require.NoError(t, err)
	assert.Equal(t, 12.0, obs.BedtimeHour)
}

func TestParse_WakeTimeNeverShifted(t *testing.T) {
	req := validRequest()
	req.WakeTime = "06:00"

	obs, err := features.Parse(req)
	require.NoError(t, err)
	assert.Equal(t, 6.0, obs.WakeHour)
}

func TestParse_MissingField(t *testing.T) {
	req := validRequest()
	req.SleepDuration = ""

	_, err := features.Parse(req)
	require.Error(t, err)

	var validationErr *features.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "sleep_duration", validationErr.Field)
}

func TestParse_BadNumber(t *testing.T) {
	req := validRequest()
	req.ScreenTime = "lots"

	_, err := features.Parse(req)
	require.Error(t, err)

	var validationErr *features.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "screen_time", validationErr.Field)
}

func TestParse_NegativeDuration(t *testing.T) {
	req := validRequest()
	req.ExerciseDuration = "-5"

	_, err := features.Parse(req)
	require.Error(t, err)

	var validationErr *features.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "exercise_duration", validationErr.Field)
}

func TestParse_BadClockTime(t *testing.T) {
	for _, bad := range []string{"25:00", "23:61", "2300", "23:00:00", "ten"} {
		req := validRequest()
		req.Bedtime = features.Value(bad)

		_, err := features.Parse(req)
		require.Error(t, err, "bedtime %q should fail", bad)
	}
}

func TestParse_StressLevelOutOfRangeAccepted(t *testing.T) {
	// Bounds are not enforced at serve time; only the integer parse is.
	req := validRequest()
	req.StressLevel = "15"

	obs, err := features.Parse(req)
	require.NoError(t, err)
	assert.Equal(t, 15, obs.StressLevel)

	req.StressLevel = "2.5"
	_, err = features.Parse(req)
	require.Error(t, err)
}

func TestVector_OrderAndCodes(t *testing.T) {
	enc := testEncoders(t)

	obs, err := features.Parse(validRequest())
	require.NoError(t, err)

	vector, err := obs.Vector(enc)
	require.NoError(t, err)
	require.Len(t, vector, features.NumFeatures)

	// Sorted vocabularies: None=3 of {High,Low,Moderate,None}, Happy=0 of
	// {Anxious,Happy,Neutral,Sad}, No=0 of {No,Yes}.
	expected := []float64{8, 23, 7, 3, 30, 20, 2, 0, 0}
	for j, want := range expected {
		got, _ := vector[j].Float64()
		assert.InDelta(t, want, got, 1e-9, "column %d (%s)", j, features.FeatureNames[j])
	}
}

func TestVector_UnknownCategoryFails(t *testing.T) {
	enc := testEncoders(t)

	req := validRequest()
	req.Caffeine = "Extreme"

	obs, err := features.Parse(req)
	require.NoError(t, err)

	_, err = obs.Vector(enc)
	require.Error(t, err)

	var unknownErr *preprocessing.UnknownCategoryError
	require.True(t, errors.As(err, &unknownErr))
	assert.Equal(t, "Extreme", unknownErr.Value)

	var validationErr *features.ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestRequest_UnmarshalMixedTypes(t *testing.T) {
	payload := `{
		"sleep_duration": 7.5,
		"bedtime": "23:30",
		"wake_time": "06:45",
		"caffeine": "Low",
		"exercise_duration": "45",
		"screen_time": 90,
		"stress_level": 4,
		"mood": "Neutral",
		"interruptions": "Yes"
	}`

	var req features.Request
	require.NoError(t, json.Unmarshal([]byte(payload), &req))

	obs, err := features.Parse(req)
	require.NoError(t, err)
	assert.Equal(t, 7.5, obs.SleepDuration)
	assert.Equal(t, 90.0, obs.ScreenTime)
	assert.Equal(t, 4, obs.StressLevel)
}

func TestFeatureNames_Width(t *testing.T) {
	assert.Len(t, features.FeatureNames, features.NumFeatures)
}
