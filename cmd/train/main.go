package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"sleepsense/internal/dataset"
	"sleepsense/internal/training"
)

func main() {
	samples := flag.Int("samples", dataset.DefaultSamples, "Number of synthetic rows to generate")
	seed := flag.Int64("seed", dataset.DefaultSeed, "Random seed for data generation and training")
	algorithm := flag.String("algorithm", "forest", "Algorithm to use (tree|forest)")
	nTrees := flag.Int("n-trees", 100, "Number of trees for random forest")
	maxDepth := flag.Int("max-depth", 10, "Max depth for decision tree/forest")
	minSplit := flag.Int("min-split", 2, "Min samples to split a node")
	testSize := flag.Float64("test-size", 0.2, "Test set size (0.0-1.0)")
	cvFolds := flag.Int("cv-folds", 0, "Cross-validation folds (0 disables)")
	dataFile := flag.String("data", "", "Train from a previously exported CSV instead of generating")
	exportCSV := flag.String("export-csv", "", "Write the training dataset to this CSV file")
	output := flag.String("output", "models/sleep.model", "Output path for the artifact bundle")

	flag.Parse()

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	if *dataFile != "" {
		fmt.Printf("Loading dataset from %s...\n", cyan(*dataFile))
	} else {
		fmt.Printf("Generating %s synthetic rows (seed %d)...\n", cyan(*samples), *seed)
	}

	if err := os.MkdirAll(filepath.Dir(*output), 0755); err != nil {
		fmt.Printf("%s %v\n", red("Failed to create output directory:"), err)
		os.Exit(1)
	}

	result, err := training.Run(training.Config{
		Samples:    *samples,
		Seed:       *seed,
		Algorithm:  *algorithm,
		NTrees:     *nTrees,
		MaxDepth:   *maxDepth,
		MinSplit:   *minSplit,
		TestSize:   *testSize,
		CVFolds:    *cvFolds,
		DataFile:   *dataFile,
		ExportCSV:  *exportCSV,
		OutputPath: *output,
	})
	if err != nil {
		fmt.Printf("%s %v\n", red("Training failed:"), err)
		os.Exit(1)
	}

	fmt.Printf("\nTraining Results (%s, %d samples):\n", result.Bundle.Metadata.Algorithm, result.Samples)
	fmt.Printf("Training time: %v\n", result.TrainingTime)
	fmt.Printf("Test accuracy: %s\n", green(fmt.Sprintf("%.4f", result.Metrics.Accuracy)))
	fmt.Printf("Precision: %.4f\n", result.Metrics.MacroPrecision)
	fmt.Printf("Recall: %.4f\n", result.Metrics.MacroRecall)
	fmt.Printf("F1-score: %.4f\n", result.Metrics.MacroF1)

	if result.CVScores != nil {
		fmt.Printf("CV accuracy: %.4f +/- %.4f\n", result.CVMean, result.CVStd)
	}

	if *exportCSV != "" {
		fmt.Printf("Dataset exported to: %s\n", cyan(*exportCSV))
	}

	fmt.Printf("\nArtifact bundle saved to: %s\n", green(*output))
}
