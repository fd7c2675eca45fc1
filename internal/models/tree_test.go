package models_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sleepsense/internal/models"
)

func matrix(t *testing.T, rows [][]float64) [][]decimal.Decimal {
	t.Helper()
	out := make([][]decimal.Decimal, len(rows))
	for i, row := range rows {
		out[i] = make([]decimal.Decimal, len(row))
		for j, v := range row {
			out[i][j] = decimal.NewFromFloat(v)
		}
	}
	return out
}

// Two clusters separable on the first feature.
func separableData(t *testing.T) ([][]decimal.Decimal, []int) {
	t.Helper()
	X := matrix(t, [][]float64{
		{1.0, 5.0}, {1.2, 4.8}, {0.8, 5.2}, {1.1, 5.1},
		{9.0, 5.0}, {9.2, 4.9}, {8.8, 5.3}, {9.1, 4.7},
	})
	y := []int{0, 0, 0, 0, 1, 1, 1, 1}
	return X, y
}

func TestDecisionTree_FitPredictSeparable(t *testing.T) {
	X, y := separableData(t)

	tree := models.NewDecisionTree(5, 2)
	require.NoError(t, tree.Fit(X, y))

	preds := tree.Predict(X)
	assert.Equal(t, y, preds)
}

func TestDecisionTree_PredictUnseenSample(t *testing.T) {
	X, y := separableData(t)

	tree := models.NewDecisionTree(5, 2)
	require.NoError(t, tree.Fit(X, y))

	preds := tree.Predict(matrix(t, [][]float64{{1.5, 5.0}, {8.5, 5.0}}))
	assert.Equal(t, []int{0, 1}, preds)
}

func TestDecisionTree_PureDataIsLeaf(t *testing.T) {
	X := matrix(t, [][]float64{{1, 2}, {3, 4}, {5, 6}})
	y := []int{2, 2, 2}

	tree := models.NewDecisionTree(5, 2)
	require.NoError(t, tree.Fit(X, y))

	require.NotNil(t, tree.Root)
	assert.True(t, tree.Root.IsLeaf)
	assert.Equal(t, 2, tree.Root.Class)
	assert.Equal(t, []int{2, 2, 2}, tree.Predict(X))
}

func TestDecisionTree_RefitDeterministic(t *testing.T) {
	X, y := separableData(t)
	probe := matrix(t, [][]float64{{4.9, 5.0}, {5.1, 5.0}, {2.0, 4.0}})

	a := models.NewDecisionTree(5, 2)
	require.NoError(t, a.Fit(X, y))
	b := models.NewDecisionTree(5, 2)
	require.NoError(t, b.Fit(X, y))

	assert.Equal(t, a.Predict(probe), b.Predict(probe))
}

func TestDecisionTree_Reset(t *testing.T) {
	X, y := separableData(t)

	tree := models.NewDecisionTree(5, 2)
	require.NoError(t, tree.Fit(X, y))
	require.NotNil(t, tree.Root)

	tree.Reset()
	assert.Nil(t, tree.Root)
	assert.Nil(t, tree.GetClasses())
}

func TestExtractClasses_SortedUnique(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2}, models.ExtractClasses([]int{2, 0, 1, 1, 2, 0}))
}
