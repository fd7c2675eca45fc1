package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"sleepsense/internal/features"
)

var csvHeader = []string{
	"sleep_duration",
	"bedtime_hour",
	"wake_time_hour",
	"caffeine",
	"exercise_duration",
	"screen_time",
	"stress_level",
	"mood",
	"interruptions",
	"sleep_quality",
}

// Export writes the labeled rows to a CSV file so a training run can be
// inspected or reproduced without regenerating.
func Export(rows []LabeledRow, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create dataset file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)

	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			strconv.FormatFloat(row.SleepDuration, 'f', -1, 64),
			strconv.FormatFloat(row.BedtimeHour, 'f', -1, 64),
			strconv.FormatFloat(row.WakeHour, 'f', -1, 64),
			row.Caffeine,
			strconv.FormatFloat(row.ExerciseDuration, 'f', -1, 64),
			strconv.FormatFloat(row.ScreenTime, 'f', -1, 64),
			strconv.Itoa(row.StressLevel),
			row.Mood,
			row.Interruptions,
			row.Quality,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

// Load reads a previously exported dataset. Unlike request parsing, a
// malformed cell fails the whole load: bad training data must not be
// silently zeroed.
func Load(filename string) ([]LabeledRow, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("insufficient data in %s", filename)
	}

	if len(records[0]) != len(csvHeader) {
		return nil, fmt.Errorf("expected %d columns, got %d", len(csvHeader), len(records[0]))
	}

	rows := make([]LabeledRow, 0, len(records)-1)
	for i, record := range records[1:] {
		row, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func parseRecord(record []string) (LabeledRow, error) {
	var row LabeledRow

	if len(record) != len(csvHeader) {
		return row, fmt.Errorf("expected %d columns, got %d", len(csvHeader), len(record))
	}

	var err error
	if row.SleepDuration, err = strconv.ParseFloat(record[0], 64); err != nil {
		return row, fmt.Errorf("bad sleep_duration %q", record[0])
	}
	if row.BedtimeHour, err = strconv.ParseFloat(record[1], 64); err != nil {
		return row, fmt.Errorf("bad bedtime_hour %q", record[1])
	}
	if row.WakeHour, err = strconv.ParseFloat(record[2], 64); err != nil {
		return row, fmt.Errorf("bad wake_time_hour %q", record[2])
	}
	row.Caffeine = record[3]
	if row.ExerciseDuration, err = strconv.ParseFloat(record[4], 64); err != nil {
		return row, fmt.Errorf("bad exercise_duration %q", record[4])
	}
	if row.ScreenTime, err = strconv.ParseFloat(record[5], 64); err != nil {
		return row, fmt.Errorf("bad screen_time %q", record[5])
	}
	if row.StressLevel, err = strconv.Atoi(record[6]); err != nil {
		return row, fmt.Errorf("bad stress_level %q", record[6])
	}
	row.Mood = record[7]
	row.Interruptions = record[8]
	row.Quality = record[9]

	return row, nil
}

// Observations strips the labels off for feature-matrix assembly.
func Observations(rows []LabeledRow) []features.Observation {
	out := make([]features.Observation, len(rows))
	for i, row := range rows {
		out[i] = row.Observation
	}
	return out
}

// Labels returns the quality labels in row order.
func Labels(rows []LabeledRow) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = row.Quality
	}
	return out
}
