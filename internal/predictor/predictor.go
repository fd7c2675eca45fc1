// Package predictor is the serving pipeline: it wraps the loaded artifact
// bundle in an immutable context and answers prediction requests. No request
// mutates shared state, so one Predictor serves any number of goroutines
// without locking.
package predictor

import (
	"fmt"

	"github.com/shopspring/decimal"

	"sleepsense/internal/features"
	"sleepsense/internal/persistence"
	"sleepsense/internal/tips"
)

type Predictor struct {
	bundle   *persistence.Bundle
	encoders features.Encoders
}

type Prediction struct {
	Quality string
	Tips    []string
}

func New(bundle *persistence.Bundle) *Predictor {
	return &Predictor{
		bundle: bundle,
		encoders: features.Encoders{
			Caffeine:      bundle.Caffeine,
			Mood:          bundle.Mood,
			Interruptions: bundle.Interruptions,
		},
	}
}

// Load reads the artifact bundle from disk and builds a Predictor. A load
// failure must abort serving startup, never be retried per request.
func Load(filename string) (*Predictor, error) {
	bundle, err := persistence.Load(filename)
	if err != nil {
		return nil, err
	}
	return New(bundle), nil
}

// Predict runs the full request pipeline: parse, vectorize, scale, classify,
// decode label, generate tips. Deterministic for identical input and bundle.
func (p *Predictor) Predict(req features.Request) (*Prediction, error) {
	obs, err := features.Parse(req)
	if err != nil {
		return nil, err
	}

	vector, err := obs.Vector(p.encoders)
	if err != nil {
		return nil, err
	}

	scaled, err := p.bundle.Scaler.TransformVector(vector)
	if err != nil {
		return nil, err
	}

	code := p.bundle.Model.Predict([][]decimal.Decimal{scaled})[0]

	quality, err := p.bundle.Target.InverseTransform(code)
	if err != nil {
		return nil, fmt.Errorf("classifier returned unmapped label code: %w", err)
	}

	return &Prediction{
		Quality: quality,
		Tips:    tips.Generate(obs, quality),
	}, nil
}

// BatchItem is the outcome for one row of a batch prediction; Err is set
// instead of Prediction when that row failed validation.
type BatchItem struct {
	Prediction *Prediction
	Err        error
}

// PredictBatch evaluates each request independently; one invalid row does
// not fail the others.
func (p *Predictor) PredictBatch(reqs []features.Request) []BatchItem {
	out := make([]BatchItem, len(reqs))
	for i, req := range reqs {
		pred, err := p.Predict(req)
		out[i] = BatchItem{Prediction: pred, Err: err}
	}
	return out
}

// Metadata exposes the loaded bundle's training metadata.
func (p *Predictor) Metadata() persistence.BundleMetadata {
	return p.bundle.Metadata
}

// Vocabularies returns the fitted categorical vocabularies in code order so
// clients can present valid options.
func (p *Predictor) Vocabularies() map[string][]string {
	return map[string][]string{
		"caffeine":      p.bundle.Caffeine.Vocabulary(),
		"mood":          p.bundle.Mood.Vocabulary(),
		"interruptions": p.bundle.Interruptions.Vocabulary(),
		"quality":       p.bundle.Target.Vocabulary(),
	}
}
