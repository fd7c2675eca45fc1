package preprocessing

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// StandardScaler standardizes feature columns to zero mean and unit
// variance. Parameters are fixed at fit time and applied identically to
// every later transform; the scaler is never refit outside training.
type StandardScaler struct {
	FeatureMean []decimal.Decimal
	FeatureStd  []decimal.Decimal
	IsFitted    bool
}

func NewStandardScaler() *StandardScaler {
	return &StandardScaler{}
}

func (s *StandardScaler) Fit(X [][]decimal.Decimal) error {
	if len(X) == 0 {
		return fmt.Errorf("empty dataset")
	}

	nFeatures := len(X[0])
	nSamples := decimal.NewFromInt(int64(len(X)))

	s.FeatureMean = make([]decimal.Decimal, nFeatures)
	s.FeatureStd = make([]decimal.Decimal, nFeatures)

	for j := 0; j < nFeatures; j++ {
		sum := decimal.Zero
		for i := 0; i < len(X); i++ {
			sum = sum.Add(X[i][j])
		}
		s.FeatureMean[j] = sum.Div(nSamples)
	}

	for j := 0; j < nFeatures; j++ {
		variance := decimal.Zero
		for i := 0; i < len(X); i++ {
			diff := X[i][j].Sub(s.FeatureMean[j])
			variance = variance.Add(diff.Mul(diff))
		}
		variance = variance.Div(nSamples)

		varFloat, _ := variance.Float64()
		std := decimal.NewFromFloat(math.Sqrt(varFloat))
		if std.IsZero() {
			return &DegenerateFeatureError{Column: j}
		}
		s.FeatureStd[j] = std
	}

	s.IsFitted = true
	return nil
}

func (s *StandardScaler) Transform(X [][]decimal.Decimal) ([][]decimal.Decimal, error) {
	if !s.IsFitted {
		return nil, fmt.Errorf("scaler must be fitted before transform")
	}

	result := make([][]decimal.Decimal, len(X))
	for i := range X {
		row, err := s.TransformVector(X[i])
		if err != nil {
			return nil, err
		}
		result[i] = row
	}

	return result, nil
}

// TransformVector scales a single feature vector. The vector must have the
// same column order the scaler was fitted with.
func (s *StandardScaler) TransformVector(v []decimal.Decimal) ([]decimal.Decimal, error) {
	if !s.IsFitted {
		return nil, fmt.Errorf("scaler must be fitted before transform")
	}

	if len(v) != len(s.FeatureMean) {
		return nil, fmt.Errorf("expected %d features, got %d", len(s.FeatureMean), len(v))
	}

	out := make([]decimal.Decimal, len(v))
	for j := range v {
		out[j] = v[j].Sub(s.FeatureMean[j]).Div(s.FeatureStd[j])
	}

	return out, nil
}

func (s *StandardScaler) FitTransform(X [][]decimal.Decimal) ([][]decimal.Decimal, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}
