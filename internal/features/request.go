package features

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a request field that accepts either a JSON string or a JSON
// number, mirroring the loosely-typed payloads clients send.
type Value string

func (v *Value) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		*v = ""
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		*v = Value(unquoted)
		return nil
	}
	*v = Value(s)
	return nil
}

func (v Value) String() string {
	return strings.TrimSpace(string(v))
}

func (v Value) IsEmpty() bool {
	return v.String() == ""
}

// Request carries the raw fields of one prediction request.
type Request struct {
	SleepDuration    Value `json:"sleep_duration"`
	Bedtime          Value `json:"bedtime"`
	WakeTime         Value `json:"wake_time"`
	Caffeine         Value `json:"caffeine"`
	ExerciseDuration Value `json:"exercise_duration"`
	ScreenTime       Value `json:"screen_time"`
	StressLevel      Value `json:"stress_level"`
	Mood             Value `json:"mood"`
	Interruptions    Value `json:"interruptions"`
}

// ValidationError reports the request field that failed to parse or encode.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid field %s: %s", e.Field, e.Err.Error())
	}
	return fmt.Sprintf("invalid field %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
