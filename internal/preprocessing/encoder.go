package preprocessing

import (
	"fmt"
	"sort"
)

// CategoricalEncoder maps distinct string categories to dense integer codes.
// Codes are assigned by lexicographic order of the vocabulary so that a
// refit over the same values always produces the same mapping. The
// vocabulary is frozen after Fit.
type CategoricalEncoder struct {
	Feature  string
	Classes  []string
	IsFitted bool
}

func NewCategoricalEncoder(feature string) *CategoricalEncoder {
	return &CategoricalEncoder{Feature: feature}
}

func (e *CategoricalEncoder) Fit(values []string) {
	unique := make(map[string]bool)
	for _, v := range values {
		unique[v] = true
	}

	e.Classes = make([]string, 0, len(unique))
	for v := range unique {
		e.Classes = append(e.Classes, v)
	}
	sort.Strings(e.Classes)

	e.IsFitted = true
}

func (e *CategoricalEncoder) Transform(value string) (int, error) {
	if !e.IsFitted {
		return 0, fmt.Errorf("%s encoder must be fitted before transform", e.Feature)
	}

	i := sort.SearchStrings(e.Classes, value)
	if i >= len(e.Classes) || e.Classes[i] != value {
		return 0, &UnknownCategoryError{Feature: e.Feature, Value: value}
	}

	return i, nil
}

func (e *CategoricalEncoder) InverseTransform(code int) (string, error) {
	if !e.IsFitted {
		return "", fmt.Errorf("%s encoder must be fitted before inverse transform", e.Feature)
	}

	if code < 0 || code >= len(e.Classes) {
		return "", &InvalidCodeError{Feature: e.Feature, Code: code}
	}

	return e.Classes[code], nil
}

func (e *CategoricalEncoder) FitTransform(values []string) ([]int, error) {
	e.Fit(values)

	codes := make([]int, len(values))
	for i, v := range values {
		code, err := e.Transform(v)
		if err != nil {
			return nil, err
		}
		codes[i] = code
	}

	return codes, nil
}

// Vocabulary returns a copy of the fitted classes in code order.
func (e *CategoricalEncoder) Vocabulary() []string {
	out := make([]string, len(e.Classes))
	copy(out, e.Classes)
	return out
}
