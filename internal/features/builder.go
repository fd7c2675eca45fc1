package features

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"sleepsense/internal/preprocessing"
)

// FeatureNames lists the nine feature columns in the exact order the scaler
// and classifier are fitted with. Reordering silently corrupts predictions.
var FeatureNames = []string{
	"sleep_duration_hours",
	"bedtime_hour_float",
	"wake_time_hour_float",
	"caffeine_code",
	"exercise_minutes",
	"screen_time_minutes",
	"stress_level",
	"mood_code",
	"interruptions_code",
}

// NumFeatures is the fixed width of every feature vector.
const NumFeatures = 9

// Encoders groups the three categorical encoders a feature vector needs.
// The target-label encoder is deliberately not part of this set.
type Encoders struct {
	Caffeine      *preprocessing.CategoricalEncoder
	Mood          *preprocessing.CategoricalEncoder
	Interruptions *preprocessing.CategoricalEncoder
}

// Observation holds one row of parsed, unscaled feature values. Both the
// synthetic training generator and the request parser produce Observations,
// so train-time and serve-time vectors are assembled by the same code.
type Observation struct {
	SleepDuration    float64
	BedtimeHour      float64
	WakeHour         float64
	Caffeine         string
	ExerciseDuration float64
	ScreenTime       float64
	StressLevel      int
	Mood             string
	Interruptions    string
}

// Parse validates the raw request fields and produces an Observation.
// Any missing field or malformed value fails the whole parse.
func Parse(req Request) (*Observation, error) {
	obs := &Observation{}

	var err error
	if obs.SleepDuration, err = parseNonNegative(req.SleepDuration, "sleep_duration"); err != nil {
		return nil, err
	}

	bedtime, err := parseClockTime(req.Bedtime, "bedtime")
	if err != nil {
		return nil, err
	}
	// Early-morning bedtimes are "late night, next day": shifting them past
	// 24 keeps 23:30 and 00:30 numerically close. Wake time is assumed to be
	// a morning value and is never shifted. 12:00 exactly is not shifted.
	if bedtime < 12 {
		bedtime += 24
	}
	obs.BedtimeHour = bedtime

	if obs.WakeHour, err = parseClockTime(req.WakeTime, "wake_time"); err != nil {
		return nil, err
	}

	if obs.Caffeine, err = requireString(req.Caffeine, "caffeine"); err != nil {
		return nil, err
	}

	if obs.ExerciseDuration, err = parseNonNegative(req.ExerciseDuration, "exercise_duration"); err != nil {
		return nil, err
	}

	if obs.ScreenTime, err = parseNonNegative(req.ScreenTime, "screen_time"); err != nil {
		return nil, err
	}

	// Integer parse only: the training generator produces 0..10 but values
	// outside that range are accepted here, matching the original behavior.
	if obs.StressLevel, err = parseInt(req.StressLevel, "stress_level"); err != nil {
		return nil, err
	}

	if obs.Mood, err = requireString(req.Mood, "mood"); err != nil {
		return nil, err
	}

	if obs.Interruptions, err = requireString(req.Interruptions, "interruptions"); err != nil {
		return nil, err
	}

	return obs, nil
}

// Vector assembles the nine-element feature vector in FeatureNames order.
// Unknown categorical values fail the whole build.
func (o *Observation) Vector(enc Encoders) ([]decimal.Decimal, error) {
	caffeine, err := enc.Caffeine.Transform(o.Caffeine)
	if err != nil {
		return nil, &ValidationError{Field: "caffeine", Err: err}
	}

	mood, err := enc.Mood.Transform(o.Mood)
	if err != nil {
		return nil, &ValidationError{Field: "mood", Err: err}
	}

	interruptions, err := enc.Interruptions.Transform(o.Interruptions)
	if err != nil {
		return nil, &ValidationError{Field: "interruptions", Err: err}
	}

	return []decimal.Decimal{
		decimal.NewFromFloat(o.SleepDuration),
		decimal.NewFromFloat(o.BedtimeHour),
		decimal.NewFromFloat(o.WakeHour),
		decimal.NewFromInt(int64(caffeine)),
		decimal.NewFromFloat(o.ExerciseDuration),
		decimal.NewFromFloat(o.ScreenTime),
		decimal.NewFromInt(int64(o.StressLevel)),
		decimal.NewFromInt(int64(mood)),
		decimal.NewFromInt(int64(interruptions)),
	}, nil
}

func requireString(v Value, field string) (string, error) {
	if v.IsEmpty() {
		return "", &ValidationError{Field: field, Reason: "missing"}
	}
	return v.String(), nil
}

func parseNonNegative(v Value, field string) (float64, error) {
	if v.IsEmpty() {
		return 0, &ValidationError{Field: field, Reason: "missing"}
	}

	f, err := strconv.ParseFloat(v.String(), 64)
	if err != nil {
		return 0, &ValidationError{Field: field, Reason: fmt.Sprintf("not a number: %q", v.String())}
	}

	if f < 0 {
		return 0, &ValidationError{Field: field, Reason: fmt.Sprintf("must be non-negative, got %v", f)}
	}

	return f, nil
}

func parseInt(v Value, field string) (int, error) {
	if v.IsEmpty() {
		return 0, &ValidationError{Field: field, Reason: "missing"}
	}

	n, err := strconv.Atoi(v.String())
	if err != nil {
		return 0, &ValidationError{Field: field, Reason: fmt.Sprintf("not an integer: %q", v.String())}
	}

	return n, nil
}

// parseClockTime converts "HH:MM" in 24-hour format to hour + minute/60.
func parseClockTime(v Value, field string) (float64, error) {
	if v.IsEmpty() {
		return 0, &ValidationError{Field: field, Reason: "missing"}
	}

	parts := strings.Split(v.String(), ":")
	if len(parts) != 2 {
		return 0, &ValidationError{Field: field, Reason: fmt.Sprintf("expected HH:MM, got %q", v.String())}
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, &ValidationError{Field: field, Reason: fmt.Sprintf("bad hour in %q", v.String())}
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, &ValidationError{Field: field, Reason: fmt.Sprintf("bad minute in %q", v.String())}
	}

	return float64(hour) + float64(minute)/60.0, nil
}
