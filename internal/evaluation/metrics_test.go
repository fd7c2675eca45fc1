package evaluation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sleepsense/internal/evaluation"
)

func TestCalculateMetrics_PerfectPredictions(t *testing.T) {
	yTrue := []int{0, 1, 2, 0, 1, 2}
	classes := []int{0, 1, 2}

	m := evaluation.CalculateMetrics(yTrue, yTrue, classes)
	require.NotNil(t, m)

	assert.Equal(t, 1.0, m.Accuracy)
	assert.Equal(t, 1.0, m.MacroPrecision)
	assert.Equal(t, 1.0, m.MacroRecall)
	assert.Equal(t, 1.0, m.MacroF1)
	assert.Equal(t, 6, m.NumSamples)
	assert.Equal(t, 3, m.NumClasses)
}

func TestCalculateMetrics_KnownConfusion(t *testing.T) {
	// Class 0: 2 correct, 1 predicted as class 1.
	// Class 1: 2 correct.
	yTrue := []int{0, 0, 0, 1, 1}
	yPred := []int{0, 0, 1, 1, 1}
	classes := []int{0, 1}

	m := evaluation.CalculateMetrics(yTrue, yPred, classes)
	require.NotNil(t, m)

	assert.InDelta(t, 0.8, m.Accuracy, 1e-9)
	assert.Equal(t, [][]int{{2, 1}, {0, 2}}, m.ConfusionMatrix)

	c0 := m.PerClassMetrics[0]
	assert.InDelta(t, 1.0, c0.Precision, 1e-9)
	assert.InDelta(t, 2.0/3.0, c0.Recall, 1e-9)
	assert.Equal(t, 3, c0.Support)

	c1 := m.PerClassMetrics[1]
	assert.InDelta(t, 2.0/3.0, c1.Precision, 1e-9)
	assert.InDelta(t, 1.0, c1.Recall, 1e-9)
	assert.Equal(t, 2, c1.Support)
}

func TestCalculateMetrics_AbsentClassScoresZero(t *testing.T) {
	yTrue := []int{0, 0, 1, 1}
	yPred := []int{0, 0, 1, 1}
	classes := []int{0, 1, 2}

	m := evaluation.CalculateMetrics(yTrue, yPred, classes)
	require.NotNil(t, m)

	c2 := m.PerClassMetrics[2]
	assert.Zero(t, c2.Precision)
	assert.Zero(t, c2.Recall)
	assert.Zero(t, c2.F1Score)
	assert.Zero(t, c2.Support)
}

func TestCalculateMetrics_BadInput(t *testing.T) {
	assert.Nil(t, evaluation.CalculateMetrics([]int{0, 1}, []int{0}, []int{0, 1}))
	assert.Nil(t, evaluation.CalculateMetrics(nil, nil, []int{0, 1}))
}

func TestFormatMetrics(t *testing.T) {
	yTrue := []int{0, 1, 0, 1}
	m := evaluation.CalculateMetrics(yTrue, yTrue, []int{0, 1})
	require.NotNil(t, m)

	out := m.FormatMetrics()
	assert.Contains(t, out, "Accuracy: 1.0000")
	assert.Contains(t, out, "Macro Avg")
}
