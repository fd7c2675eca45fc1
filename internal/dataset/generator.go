// Package dataset generates and persists the synthetic sleep-quality
// training data. The generator is a fixed, reproducible contract: exact
// distributions, clipping bounds, score weights and thresholds must not
// change, because persisted artifacts were fitted against data produced
// under these rules.
package dataset

import (
	"math/rand"

	"sleepsense/internal/features"
)

const DefaultSamples = 1000

// DefaultSeed matches the seed the original dataset was generated with.
const DefaultSeed = 42

var (
	CaffeineLevels  = []string{"None", "Low", "Moderate", "High"}
	caffeineWeights = []float64{0.3, 0.3, 0.3, 0.1}
	Moods           = []string{"Happy", "Neutral", "Sad", "Anxious"}
	Interruptions   = []string{"Yes", "No"}
	QualityLabels   = []string{"Good", "Average", "Poor"}
)

// LabeledRow is one synthetic observation with its derived quality label.
type LabeledRow struct {
	features.Observation
	Quality string
}

type Generator struct {
	rng     *rand.Rand
	samples int
}

func NewGenerator(seed int64, samples int) *Generator {
	if samples <= 0 {
		samples = DefaultSamples
	}
	return &Generator{
		rng:     rand.New(rand.NewSource(seed)),
		samples: samples,
	}
}

// Generate draws the full dataset. Field draw order is fixed; changing it
// changes the stream of random values and therefore the dataset.
func (g *Generator) Generate() []LabeledRow {
	rows := make([]LabeledRow, g.samples)

	for i := range rows {
		obs := features.Observation{
			SleepDuration:    g.clippedNormal(7, 1.5, 3, 12),
			BedtimeHour:      g.clippedNormal(23, 1, 18, 28),
			WakeHour:         g.clippedNormal(7, 1, 4, 12),
			Caffeine:         g.weightedChoice(CaffeineLevels, caffeineWeights),
			ExerciseDuration: g.clippedNormal(30, 20, 0, 120),
			ScreenTime:       g.clippedNormal(60, 30, 0, 180),
			StressLevel:      g.rng.Intn(11),
			Mood:             Moods[g.rng.Intn(len(Moods))],
			Interruptions:    Interruptions[g.rng.Intn(len(Interruptions))],
		}

		rows[i] = LabeledRow{
			Observation: obs,
			Quality:     QualityForScore(Score(&obs)),
		}
	}

	return rows
}

// Score applies the fixed point-scoring rule over raw feature values.
func Score(o *features.Observation) int {
	score := 0

	if o.SleepDuration >= 7 && o.SleepDuration <= 9 {
		score += 3
	} else if o.SleepDuration >= 5 {
		score += 1
	}

	if o.Caffeine == "None" || o.Caffeine == "Low" {
		score += 2
	}
	if o.ExerciseDuration > 20 {
		score += 1
	}
	if o.ScreenTime < 30 {
		score += 2
	}
	if o.StressLevel < 4 {
		score += 2
	}
	if o.Mood == "Happy" {
		score += 1
	}
	if o.Interruptions == "No" {
		score += 2
	}

	return score
}

func QualityForScore(score int) string {
	switch {
	case score >= 9:
		return "Good"
	case score >= 5:
		return "Average"
	default:
		return "Poor"
	}
}

func (g *Generator) clippedNormal(mean, std, lo, hi float64) float64 {
	v := g.rng.NormFloat64()*std + mean
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (g *Generator) weightedChoice(values []string, weights []float64) string {
	r := g.rng.Float64()
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r < acc {
			return values[i]
		}
	}
	return values[len(values)-1]
}
