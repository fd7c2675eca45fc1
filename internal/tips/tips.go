// Package tips produces advisory strings from raw request values and the
// predicted sleep-quality label. Rules are evaluated in a fixed priority
// order; the first four are independent, the last two are fallbacks that
// only fire when no earlier rule produced a tip.
package tips

import "sleepsense/internal/features"

const (
	SleepDurationTip = "Try to get at least 7-8 hours of sleep."
	CaffeineTip      = "Consider reducing caffeine intake, especially later in the day."
	ScreenTimeTip    = "Reducing screen time before bed can improve sleep quality."
	StressTip        = "Practice relaxation techniques like meditation or reading to lower stress."
	ConsistencyTip   = "Maintain a consistent sleep schedule."
	PositiveTip      = "Keep up the great habits!"
)

// Generate evaluates the tip rules against the unscaled observation. Inputs
// are the raw values, not encoded or scaled ones.
func Generate(obs *features.Observation, label string) []string {
	var out []string

	if obs.SleepDuration < 7 {
		out = append(out, SleepDurationTip)
	}
	if obs.Caffeine == "Moderate" || obs.Caffeine == "High" {
		out = append(out, CaffeineTip)
	}
	if obs.ScreenTime > 60 {
		out = append(out, ScreenTimeTip)
	}
	if obs.StressLevel > 5 {
		out = append(out, StressTip)
	}

	if label == "Poor" && len(out) == 0 {
		out = append(out, ConsistencyTip)
	}
	if len(out) == 0 {
		out = append(out, PositiveTip)
	}

	return out
}
