package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/verte-zerg/iwlcalc/internal/iwl"
	"github.com/verte-zerg/iwlcalc/internal/model"
)

const sampleBatch = `
[[patient]]
id = "bed-1"
weight = 3.0
height = 50.0

[[patient]]
weight = 5.0
height = 60.0
age-months = 0
rr = 70.0
factors = ["phototherapy", "radiant-warmer"]

[[patient]]
id = "bed-3"
weight = 0.0
height = 75.0

[[patient]]
id = "bed-4"
weight = 10.0
height = 75.0
factors = ["sauna"]
`

func writeBatch(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "patients.toml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestLoadPatients(t *testing.T) {
	patients, err := LoadPatients(writeBatch(t, sampleBatch))
	require.NoError(t, err)
	require.Len(t, patients, 4)
	require.Equal(t, "bed-1", patients[0].ID)
	require.Equal(t, "2", patients[1].ID)
	require.Nil(t, patients[0].TemperatureC)
	require.NotNil(t, patients[1].AgeMonths)
	require.Equal(t, 0, *patients[1].AgeMonths)

	in, err := patients[1].Input()
	require.NoError(t, err)
	require.Equal(t, model.NewFactorSet(model.FactorPhototherapy, model.FactorRadiantWarmer), in.Factors)
	require.Equal(t, 70.0, *in.RespiratoryRate)
}

func TestLoadPatientsErrors(t *testing.T) {
	_, err := LoadPatients(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)

	_, err = LoadPatients(writeBatch(t, "# nothing here\n"))
	require.ErrorContains(t, err, "no [[patient]] entries")

	_, err = LoadPatients(writeBatch(t, "[[patient]]\nweigth = 3\n"))
	require.ErrorContains(t, err, "patient.weigth")
}

func TestRunnerRun(t *testing.T) {
	patients, err := LoadPatients(writeBatch(t, sampleBatch))
	require.NoError(t, err)

	core, logs := observer.New(zapcore.InfoLevel)
	rows, err := NewRunner(zap.New(core), 2).Run(context.Background(), patients)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	require.Equal(t, "bed-1", rows[0].ID)
	require.NoError(t, rows[0].Err)
	want, err := iwl.Calculate(model.PatientInput{WeightKg: 3, HeightCm: 50})
	require.NoError(t, err)
	require.Equal(t, want, *rows[0].Result)

	require.NotNil(t, rows[1].Result)
	require.InDelta(t, 100.0, rows[1].Result.RRAdjustment, 1e-9)
	require.Len(t, rows[1].Result.FactorAdjustments, 2)

	require.Nil(t, rows[2].Result)
	require.ErrorIs(t, rows[2].Err, iwl.ErrInvalidWeight)

	require.Nil(t, rows[3].Result)
	require.ErrorContains(t, rows[3].Err, "unknown factor")

	require.Equal(t, 2, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestRunnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRunner(nil, 1).Run(ctx, []Patient{{ID: "a"}})
	require.ErrorIs(t, err, context.Canceled)
}

func TestWriteText(t *testing.T) {
	patients, err := LoadPatients(writeBatch(t, sampleBatch))
	require.NoError(t, err)
	rows, err := NewRunner(nil, 0).Run(context.Background(), patients)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, rows, "text", 1))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	require.True(t, strings.HasPrefix(lines[0], "ID"))
	require.Contains(t, lines[1], "81.6")
	require.Contains(t, lines[3], "error: invalid weight")
}

func TestWriteJSON(t *testing.T) {
	patients, err := LoadPatients(writeBatch(t, sampleBatch))
	require.NoError(t, err)
	rows, err := NewRunner(nil, 0).Run(context.Background(), patients)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, rows, "json", 1))
	var entries []Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	require.Len(t, entries, 4)
	require.Equal(t, 81.6, entries[0].Result.Daily.Low)
	require.Equal(t, "invalid weight", entries[2].Error)
	require.Nil(t, entries[2].Result)
}
