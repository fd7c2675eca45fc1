package preprocessing

import "fmt"

// UnknownCategoryError is returned when a value is not part of a fitted
// vocabulary. Serving must surface it to the caller instead of defaulting.
type UnknownCategoryError struct {
	Feature string
	Value   string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown %s category: %q", e.Feature, e.Value)
}

// InvalidCodeError is returned when an integer code has no vocabulary entry.
type InvalidCodeError struct {
	Feature string
	Code    int
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("invalid %s code: %d", e.Feature, e.Code)
}

// DegenerateFeatureError is returned when a feature column has zero variance
// at scaler fit time. Training must abort rather than divide by zero later.
type DegenerateFeatureError struct {
	Column int
}

func (e *DegenerateFeatureError) Error() string {
	return fmt.Sprintf("feature column %d has zero standard deviation", e.Column)
}
