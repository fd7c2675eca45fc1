package models

import (
	"math/rand"
	"sort"

	"github.com/shopspring/decimal"
)

type TreeNode struct {
	IsLeaf    bool
	Class     int
	Feature   int
	Threshold decimal.Decimal
	Left      *TreeNode
	Right     *TreeNode
	Samples   int
}

// DecisionTree is a CART-style classifier splitting on Gini impurity.
// Candidate thresholds are scanned in sorted order so a refit over the same
// data always builds the same tree.
type DecisionTree struct {
	BaseModel
	Root            *TreeNode
	MaxDepth        int
	MinSamplesSplit int
	MinImpurityGain float64
	// MaxFeatures caps how many randomly drawn features each split
	// considers. Zero considers all features.
	MaxFeatures int

	// rng drives per-split feature sampling; only used at fit time.
	rng *rand.Rand
}

func NewDecisionTree(maxDepth, minSamplesSplit int) *DecisionTree {
	if maxDepth <= 0 {
		maxDepth = 10
	}
	if minSamplesSplit <= 0 {
		minSamplesSplit = 2
	}

	return &DecisionTree{
		MaxDepth:        maxDepth,
		MinSamplesSplit: minSamplesSplit,
		MinImpurityGain: 1e-7,
		BaseModel: BaseModel{
			Name: "DecisionTree",
			Params: map[string]any{
				"max_depth":         maxDepth,
				"min_samples_split": minSamplesSplit,
			},
		},
	}
}

func (dt *DecisionTree) Fit(X [][]decimal.Decimal, y []int) error {
	dt.Classes = ExtractClasses(y)
	dt.Root = dt.grow(X, y, 0)
	return nil
}

func (dt *DecisionTree) Predict(X [][]decimal.Decimal) []int {
	predictions := make([]int, len(X))
	for i, sample := range X {
		predictions[i] = dt.predictSample(sample, dt.Root)
	}
	return predictions
}

func (dt *DecisionTree) GetClasses() []int {
	return dt.Classes
}

func (dt *DecisionTree) Reset() {
	dt.Root = nil
	dt.Classes = nil
}

func (dt *DecisionTree) predictSample(sample []decimal.Decimal, node *TreeNode) int {
	if node.IsLeaf {
		return node.Class
	}
	if sample[node.Feature].LessThan(node.Threshold) {
		return dt.predictSample(sample, node.Left)
	}
	return dt.predictSample(sample, node.Right)
}

func (dt *DecisionTree) grow(X [][]decimal.Decimal, y []int, depth int) *TreeNode {
	node := &TreeNode{Samples: len(y)}

	if depth >= dt.MaxDepth || len(y) < dt.MinSamplesSplit || isPure(y) {
		node.IsLeaf = true
		node.Class = majorityClass(y)
		return node
	}

	feature, threshold, gain := dt.bestSplit(X, y)
	if gain < dt.MinImpurityGain {
		node.IsLeaf = true
		node.Class = majorityClass(y)
		return node
	}

	leftIdx, rightIdx := partition(X, feature, threshold)
	if len(leftIdx) == 0 || len(rightIdx) == 0 {
		node.IsLeaf = true
		node.Class = majorityClass(y)
		return node
	}

	node.Feature = feature
	node.Threshold = threshold

	XLeft, yLeft := take(X, y, leftIdx)
	XRight, yRight := take(X, y, rightIdx)

	node.Left = dt.grow(XLeft, yLeft, depth+1)
	node.Right = dt.grow(XRight, yRight, depth+1)

	return node
}

func (dt *DecisionTree) bestSplit(X [][]decimal.Decimal, y []int) (int, decimal.Decimal, float64) {
	bestFeature := 0
	bestThreshold := decimal.Zero
	bestGain := 0.0

	parent := gini(y)
	n := float64(len(y))

	for _, feature := range dt.splitFeatures(len(X[0])) {
		for _, threshold := range sortedUniqueValues(X, feature) {
			leftIdx, rightIdx := partition(X, feature, threshold)
			if len(leftIdx) == 0 || len(rightIdx) == 0 {
				continue
			}

			yLeft := make([]int, len(leftIdx))
			for i, idx := range leftIdx {
				yLeft[i] = y[idx]
			}
			yRight := make([]int, len(rightIdx))
			for i, idx := range rightIdx {
				yRight[i] = y[idx]
			}

			weighted := (float64(len(yLeft))/n)*gini(yLeft) + (float64(len(yRight))/n)*gini(yRight)
			gain := parent - weighted

			if gain > bestGain {
				bestGain = gain
				bestFeature = feature
				bestThreshold = threshold
			}
		}
	}

	return bestFeature, bestThreshold, bestGain
}

// splitFeatures picks the candidate features for one split. A fresh subset is
// drawn per split, so a tree in a forest still sees every feature somewhere
// in its depth.
func (dt *DecisionTree) splitFeatures(nFeatures int) []int {
	features := make([]int, nFeatures)
	for i := range features {
		features[i] = i
	}

	if dt.MaxFeatures <= 0 || dt.MaxFeatures >= nFeatures || dt.rng == nil {
		return features
	}

	dt.rng.Shuffle(len(features), func(i, j int) {
		features[i], features[j] = features[j], features[i]
	})
	features = features[:dt.MaxFeatures]
	sort.Ints(features)

	return features
}

func gini(y []int) float64 {
	if len(y) == 0 {
		return 0.0
	}

	counts := make(map[int]int)
	for _, class := range y {
		counts[class]++
	}

	impurity := 1.0
	n := float64(len(y))
	for _, count := range counts {
		p := float64(count) / n
		impurity -= p * p
	}

	return impurity
}

func isPure(y []int) bool {
	for _, class := range y {
		if class != y[0] {
			return false
		}
	}
	return true
}

func majorityClass(y []int) int {
	if len(y) == 0 {
		return 0
	}

	counts := make(map[int]int)
	for _, class := range y {
		counts[class]++
	}

	best := y[0]
	bestCount := 0
	for class, count := range counts {
		// Lowest class wins ties so the result does not depend on map order.
		if count > bestCount || (count == bestCount && class < best) {
			bestCount = count
			best = class
		}
	}

	return best
}

func sortedUniqueValues(X [][]decimal.Decimal, feature int) []decimal.Decimal {
	seen := make(map[string]decimal.Decimal)
	for _, sample := range X {
		seen[sample[feature].String()] = sample[feature]
	}

	values := make([]decimal.Decimal, 0, len(seen))
	for _, v := range seen {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool {
		return values[i].LessThan(values[j])
	})

	return values
}

func partition(X [][]decimal.Decimal, feature int, threshold decimal.Decimal) ([]int, []int) {
	var left, right []int
	for i, sample := range X {
		if sample[feature].LessThan(threshold) {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return left, right
}

func take(X [][]decimal.Decimal, y []int, indices []int) ([][]decimal.Decimal, []int) {
	outX := make([][]decimal.Decimal, len(indices))
	outY := make([]int, len(indices))
	for i, idx := range indices {
		outX[i] = X[idx]
		outY[i] = y[idx]
	}
	return outX, outY
}
