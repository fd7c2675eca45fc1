package dataset_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sleepsense/internal/dataset"
)

func TestExportLoad_RoundTrip(t *testing.T) {
	rows := dataset.NewGenerator(42, 50).Generate()

	path := filepath.Join(t.TempDir(), "sleep.csv")
	require.NoError(t, dataset.Export(rows, path))

	loaded, err := dataset.Load(path)
	require.NoError(t, err)
	require.Len(t, loaded, len(rows))

	for i := range rows {
		assert.InDelta(t, rows[i].SleepDuration, loaded[i].SleepDuration, 1e-9)
		assert.InDelta(t, rows[i].BedtimeHour, loaded[i].BedtimeHour, 1e-9)
		assert.Equal(t, rows[i].Caffeine, loaded[i].Caffeine)
		assert.Equal(t, rows[i].StressLevel, loaded[i].StressLevel)
		assert.Equal(t, rows[i].Quality, loaded[i].Quality)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := dataset.Load(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
}

func TestLoad_MalformedCellFailsWholeLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	content := "sleep_duration,bedtime_hour,wake_time_hour,caffeine,exercise_duration,screen_time,stress_level,mood,interruptions,sleep_quality\n" +
		"eight,23,7,None,30,20,2,Happy,No,Good\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := dataset.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sleep_duration")
}

func TestLoad_HeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	content := "sleep_duration,bedtime_hour,wake_time_hour,caffeine,exercise_duration,screen_time,stress_level,mood,interruptions,sleep_quality\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := dataset.Load(path)
	require.Error(t, err)
}

func TestObservationsAndLabels(t *testing.T) {
	rows := dataset.NewGenerator(42, 10).Generate()

	obs := dataset.Observations(rows)
	labels := dataset.Labels(rows)

	require.Len(t, obs, 10)
	require.Len(t, labels, 10)
	for i := range rows {
		assert.Equal(t, rows[i].Observation, obs[i])
		assert.Equal(t, rows[i].Quality, labels[i])
	}
}
