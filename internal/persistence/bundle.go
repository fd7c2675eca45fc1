// Package persistence stores the trained artifact set. All six artifacts
// (classifier, scaler, four categorical encoders) live in one gob file that
// is written atomically, so serving can never observe a mismatched subset.
package persistence

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sleepsense/internal/models"
	"sleepsense/internal/preprocessing"
)

// ArtifactLoadError reports a failure to load the persisted artifact set.
// It is fatal at serving startup.
type ArtifactLoadError struct {
	Path string
	Err  error
}

func (e *ArtifactLoadError) Error() string {
	return fmt.Sprintf("failed to load artifact bundle %s: %v", e.Path, e.Err)
}

func (e *ArtifactLoadError) Unwrap() error {
	return e.Err
}

type Bundle struct {
	Model         models.Model
	Scaler        *preprocessing.StandardScaler
	Caffeine      *preprocessing.CategoricalEncoder
	Mood          *preprocessing.CategoricalEncoder
	Interruptions *preprocessing.CategoricalEncoder
	Target        *preprocessing.CategoricalEncoder
	Metadata      BundleMetadata
	CreatedAt     time.Time
}

type BundleMetadata struct {
	Algorithm    string
	Samples      int
	Seed         int64
	Accuracy     float64
	Precision    float64
	Recall       float64
	F1Score      float64
	TrainingTime time.Duration
	Features     []string
	Classes      []string
}

func registerModels() {
	gob.Register(&models.DecisionTree{})
	gob.Register(&models.RandomForest{})
	gob.Register(&models.TreeNode{})
}

// Save writes the bundle to a temp file in the target directory and renames
// it into place. A crash mid-write leaves the previous bundle untouched.
func (b *Bundle) Save(filename string) error {
	if err := b.validate(); err != nil {
		return fmt.Errorf("refusing to save incomplete bundle: %w", err)
	}

	registerModels()

	dir := filepath.Dir(filename)
	tmp, err := os.CreateTemp(dir, filepath.Base(filename)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if err := gob.NewEncoder(tmp).Encode(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to encode bundle: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), filename); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to move bundle into place: %w", err)
	}

	return nil
}

// Load reads and validates a bundle. Any failure, including a structurally
// incomplete bundle, is an ArtifactLoadError.
func Load(filename string) (*Bundle, error) {
	registerModels()

	file, err := os.Open(filename)
	if err != nil {
		return nil, &ArtifactLoadError{Path: filename, Err: err}
	}
	defer file.Close()

	var bundle Bundle
	if err := gob.NewDecoder(file).Decode(&bundle); err != nil {
		return nil, &ArtifactLoadError{Path: filename, Err: err}
	}

	if err := bundle.validate(); err != nil {
		return nil, &ArtifactLoadError{Path: filename, Err: err}
	}

	return &bundle, nil
}

func (b *Bundle) validate() error {
	if b.Model == nil {
		return fmt.Errorf("missing classifier")
	}
	if b.Scaler == nil || !b.Scaler.IsFitted {
		return fmt.Errorf("missing or unfitted scaler")
	}

	encoders := map[string]*preprocessing.CategoricalEncoder{
		"caffeine":      b.Caffeine,
		"mood":          b.Mood,
		"interruptions": b.Interruptions,
		"target":        b.Target,
	}
	for name, enc := range encoders {
		if enc == nil || !enc.IsFitted {
			return fmt.Errorf("missing or unfitted %s encoder", name)
		}
	}

	return nil
}
