package evaluation

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/shopspring/decimal"

	"sleepsense/internal/models"
)

type CrossValidator struct {
	NFolds     int
	Shuffle    bool
	RandomSeed int64
	MaxWorkers int
}

func NewCrossValidator(nFolds int, randomSeed int64) *CrossValidator {
	return &CrossValidator{
		NFolds:     nFolds,
		Shuffle:    true,
		RandomSeed: randomSeed,
		MaxWorkers: 4,
	}
}

// CrossValidate trains a fresh model per fold and returns per-fold accuracy
// plus mean and standard deviation. Folds run on a bounded worker pool.
func (cv *CrossValidator) CrossValidate(X [][]decimal.Decimal, y []int, config models.ModelConfig) ([]float64, float64, float64, error) {
	folds, err := cv.kFoldSplit(len(X))
	if err != nil {
		return nil, 0, 0, err
	}

	scores := make([]float64, cv.NFolds)
	errs := make([]error, cv.NFolds)

	workers := cv.MaxWorkers
	if workers > cv.NFolds {
		workers = cv.NFolds
	}

	jobs := make(chan int, cv.NFolds)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				scores[i], errs[i] = cv.evaluateFold(X, y, config, folds[i])
			}
		}()
	}

	for i := 0; i < cv.NFolds; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, 0, 0, fmt.Errorf("fold %d failed: %w", i, err)
		}
	}

	mean, std := meanStd(scores)
	return scores, mean, std, nil
}

func (cv *CrossValidator) evaluateFold(X [][]decimal.Decimal, y []int, config models.ModelConfig, testIndices []int) (float64, error) {
	testSet := make(map[int]bool, len(testIndices))
	for _, idx := range testIndices {
		testSet[idx] = true
	}

	trainIndices := make([]int, 0, len(X)-len(testIndices))
	for i := 0; i < len(X); i++ {
		if !testSet[i] {
			trainIndices = append(trainIndices, i)
		}
	}

	XTrain, yTrain := copyRows(X, y, trainIndices)
	XTest, yTest := copyRows(X, y, testIndices)

	model, err := models.CreateModel(config)
	if err != nil {
		return 0, err
	}

	if err := model.Fit(XTrain, yTrain); err != nil {
		return 0, err
	}

	predictions := model.Predict(XTest)

	correct := 0
	for i, pred := range predictions {
		if pred == yTest[i] {
			correct++
		}
	}

	return float64(correct) / float64(len(yTest)), nil
}

func (cv *CrossValidator) kFoldSplit(n int) ([][]int, error) {
	if cv.NFolds < 2 || cv.NFolds > n {
		return nil, fmt.Errorf("invalid number of folds: %d (must be between 2 and %d)", cv.NFolds, n)
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	if cv.Shuffle {
		rng := rand.New(rand.NewSource(cv.RandomSeed))
		rng.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	folds := make([][]int, cv.NFolds)
	foldSize := n / cv.NFolds

	for i := 0; i < cv.NFolds; i++ {
		start := i * foldSize
		end := start + foldSize
		if i == cv.NFolds-1 {
			end = n
		}

		folds[i] = make([]int, end-start)
		copy(folds[i], indices[start:end])
	}

	return folds, nil
}

func meanStd(scores []float64) (float64, float64) {
	if len(scores) == 0 {
		return 0, 0
	}

	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	mean := sum / float64(len(scores))

	std := 0.0
	if len(scores) > 1 {
		variance := 0.0
		for _, s := range scores {
			diff := s - mean
			variance += diff * diff
		}
		variance /= float64(len(scores) - 1)
		std = math.Sqrt(variance)
	}

	return mean, std
}
