// Package training implements the one-shot offline pipeline: synthesize (or
// load) the labeled dataset, fit encoders, scaler and classifier in that
// dependency order, evaluate on a held-out split, and persist the artifact
// set atomically.
package training

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"sleepsense/internal/dataset"
	"sleepsense/internal/evaluation"
	"sleepsense/internal/features"
	"sleepsense/internal/models"
	"sleepsense/internal/persistence"
	"sleepsense/internal/preprocessing"
)

type Config struct {
	Samples   int
	Seed      int64
	Algorithm string
	NTrees    int
	MaxDepth  int
	MinSplit  int
	TestSize  float64
	// CVFolds enables k-fold cross-validation when >= 2.
	CVFolds int
	// DataFile, when set, loads a previously exported CSV instead of
	// generating a fresh dataset.
	DataFile string
	// ExportCSV, when set, writes the dataset used for this run.
	ExportCSV string
	OutputPath string
}

type Result struct {
	Bundle       *persistence.Bundle
	Metrics      *evaluation.ClassificationMetrics
	CVScores     []float64
	CVMean       float64
	CVStd        float64
	TrainingTime time.Duration
	Samples      int
}

func Run(cfg Config) (*Result, error) {
	rows, err := loadRows(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.ExportCSV != "" {
		if err := dataset.Export(rows, cfg.ExportCSV); err != nil {
			return nil, err
		}
	}

	// Encoders first: vector assembly depends on them.
	caffeine := preprocessing.NewCategoricalEncoder("caffeine")
	mood := preprocessing.NewCategoricalEncoder("mood")
	interruptions := preprocessing.NewCategoricalEncoder("interruptions")
	target := preprocessing.NewCategoricalEncoder("quality")

	caffeine.Fit(columnOf(rows, func(r dataset.LabeledRow) string { return r.Caffeine }))
	mood.Fit(columnOf(rows, func(r dataset.LabeledRow) string { return r.Mood }))
	interruptions.Fit(columnOf(rows, func(r dataset.LabeledRow) string { return r.Interruptions }))

	encoders := features.Encoders{
		Caffeine:      caffeine,
		Mood:          mood,
		Interruptions: interruptions,
	}

	X := make([][]decimal.Decimal, len(rows))
	for i := range rows {
		vector, err := rows[i].Observation.Vector(encoders)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		X[i] = vector
	}

	y, err := target.FitTransform(dataset.Labels(rows))
	if err != nil {
		return nil, err
	}

	validator := dataset.NewValidator()
	if err := validator.ValidateDataset(X, y); err != nil {
		return nil, err
	}
	if err := validator.ValidateLabels(y); err != nil {
		return nil, err
	}

	// Scaler is fitted once here and reused unchanged at serve time.
	scaler := preprocessing.NewStandardScaler()
	XScaled, err := scaler.FitTransform(X)
	if err != nil {
		return nil, err
	}

	splitter := evaluation.NewTrainTestSplitter(cfg.TestSize, cfg.Seed, true)
	XTrain, XTest, yTrain, yTest, err := splitter.StratifiedSplit(XScaled, y)
	if err != nil {
		return nil, err
	}

	modelConfig := models.ModelConfig{
		Algorithm: cfg.Algorithm,
		NTrees:    cfg.NTrees,
		MaxDepth:  cfg.MaxDepth,
		MinSplit:  cfg.MinSplit,
		Seed:      cfg.Seed,
	}

	model, err := models.CreateModel(modelConfig)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	if err := model.Fit(XTrain, yTrain); err != nil {
		return nil, fmt.Errorf("training failed: %w", err)
	}
	trainingTime := time.Since(start)

	predictions := model.Predict(XTest)
	metrics := evaluation.CalculateMetrics(yTest, predictions, models.ExtractClasses(y))

	result := &Result{
		Metrics:      metrics,
		TrainingTime: trainingTime,
		Samples:      len(rows),
	}

	if cfg.CVFolds >= 2 {
		cv := evaluation.NewCrossValidator(cfg.CVFolds, cfg.Seed)
		result.CVScores, result.CVMean, result.CVStd, err = cv.CrossValidate(XScaled, y, modelConfig)
		if err != nil {
			return nil, fmt.Errorf("cross-validation failed: %w", err)
		}
	}

	bundle := &persistence.Bundle{
		Model:         model,
		Scaler:        scaler,
		Caffeine:      caffeine,
		Mood:          mood,
		Interruptions: interruptions,
		Target:        target,
		CreatedAt:     time.Now(),
		Metadata: persistence.BundleMetadata{
			Algorithm:    model.GetName(),
			Samples:      len(rows),
			Seed:         cfg.Seed,
			Accuracy:     metrics.Accuracy,
			Precision:    metrics.MacroPrecision,
			Recall:       metrics.MacroRecall,
			F1Score:      metrics.MacroF1,
			TrainingTime: trainingTime,
			Features:     features.FeatureNames,
			Classes:      target.Vocabulary(),
		},
	}

	if cfg.OutputPath != "" {
		if err := bundle.Save(cfg.OutputPath); err != nil {
			return nil, err
		}
	}

	result.Bundle = bundle
	return result, nil
}

func loadRows(cfg Config) ([]dataset.LabeledRow, error) {
	if cfg.DataFile != "" {
		return dataset.Load(cfg.DataFile)
	}

	gen := dataset.NewGenerator(cfg.Seed, cfg.Samples)
	return gen.Generate(), nil
}

func columnOf(rows []dataset.LabeledRow, pick func(dataset.LabeledRow) string) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = pick(row)
	}
	return out
}
