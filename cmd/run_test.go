package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"are-we-consistent-yet/core/consistency"
	"are-we-consistent-yet/feature/runs"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProbeCmd() *cobra.Command {
	c := &cobra.Command{Use: "run"}
	f := c.Flags()
	f.String("container-name", "", "")
	f.Int("iterations", 1, "")
	f.Int64("size", 1, "")
	f.String("location", "", "")
	f.String("reader-endpoint", "", "")
	f.Bool("isolated-reader", false, "")
	return c
}

func TestApplyProbeFlags(t *testing.T) {
	c := newProbeCmd()
	require.NoError(t, c.ParseFlags([]string{
		"--container-name", "flagged",
		"--iterations", "25",
		"--size", "0",
		"--reader-endpoint", "reader:9000",
	}))

	probe := consistency.Config{Container: "configured", Iterations: 3, ObjectSize: 64, Location: "eu-west-1"}
	require.NoError(t, applyProbeFlags(c, &probe))

	assert.Equal(t, "flagged", probe.Container)
	assert.Equal(t, 25, probe.Iterations)
	assert.Equal(t, int64(0), probe.ObjectSize)
	assert.Equal(t, "reader:9000", probe.ReaderEndpoint)
	assert.Equal(t, "eu-west-1", probe.Location, "unset flags keep the configured value")
	assert.False(t, probe.IsolatedReader)
}

func TestApplyProbeFlags_NoneSet(t *testing.T) {
	c := newProbeCmd()
	require.NoError(t, c.ParseFlags(nil))

	probe := consistency.Config{Container: "configured", Iterations: 3, ObjectSize: 64}
	require.NoError(t, applyProbeFlags(c, &probe))

	assert.Equal(t, consistency.Config{Container: "configured", Iterations: 3, ObjectSize: 64}, probe)
}

func TestApplyProbeFlags_EmptyLocation(t *testing.T) {
	c := newProbeCmd()
	require.NoError(t, c.ParseFlags([]string{"--location", ""}))

	probe := consistency.Config{Container: "configured", Iterations: 1, Location: "us-east-1"}
	assert.ErrorIs(t, applyProbeFlags(c, &probe), consistency.ErrUnknownLocation)
}

func TestPrintReport(t *testing.T) {
	rec := runs.NewRunRecord("bucket", "", "", consistency.Report{
		Iterations:      10,
		ObjectSize:      1,
		ListAfterCreate: 4,
		ReadAfterDelete: 1,
	}, time.Second)

	var out bytes.Buffer
	require.NoError(t, printReport(&out, rec, false))

	assert.Equal(t, strings.Join([]string{
		"eventual consistency count with 10 iterations:",
		"read after create: 0",
		"read after delete: 1",
		"read after overwrite: 0",
		"list after create: 4",
		"list after delete: 0",
		"",
	}, "\n"), out.String())
}

func TestPrintReport_JSON(t *testing.T) {
	rec := runs.NewRunRecord("bucket", "", "", consistency.Report{Iterations: 2, ReadAfterOverwrite: 2}, 0)

	var out bytes.Buffer
	require.NoError(t, printReport(&out, rec, true))

	var decoded runs.RunRecord
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "bucket", decoded.Container)
	assert.Equal(t, 2, decoded.ReadAfterOverwrite)
}

func TestPrintProbe(t *testing.T) {
	res := runs.ProbeResult{
		Container:  "bucket",
		Iterations: 7,
		ProbeCount: consistency.ProbeCount{Probe: consistency.ReadAfterDelete, Count: 3},
	}

	var out bytes.Buffer
	require.NoError(t, printProbe(&out, res, false))
	assert.Equal(t, "eventual consistency count with 7 iterations:\nread after delete: 3\n", out.String())

	out.Reset()
	require.NoError(t, printProbe(&out, res, true))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "read after delete", decoded["probe"])
	assert.Equal(t, float64(3), decoded["count"])
}

func TestProbeSlugs(t *testing.T) {
	assert.Equal(t, "read-after-create, read-after-delete, read-after-overwrite, list-after-create, list-after-delete", probeSlugs())
}

func TestPrintRuns(t *testing.T) {
	records := []runs.RunRecord{
		{ID: 2, Container: "second", Iterations: 5, ObjectSize: 1, ListAfterCreate: 3, DurationMillis: 120},
		{ID: 1, Container: "first", Iterations: 1},
	}

	var out bytes.Buffer
	require.NoError(t, printRuns(&out, records, false))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "second")
	assert.Contains(t, lines[1], "120ms")
	assert.Contains(t, lines[2], "first")
}

func TestRunCommand_Transient(t *testing.T) {
	t.Setenv("STORAGE_PROVIDER", "transient")
	t.Setenv("STORAGE_TIMEOUT_SECONDS", "5")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	defer RootCmd.SetOut(nil)

	RootCmd.SetArgs([]string{"run", "--container-name", "cli-run", "--iterations", "2", "--isolated-reader"})
	require.NoError(t, RootCmd.Execute())

	assert.Equal(t, strings.Join([]string{
		"eventual consistency count with 2 iterations:",
		"read after create: 2",
		"read after delete: 0",
		"read after overwrite: 0",
		"list after create: 2",
		"list after delete: 0",
		"",
	}, "\n"), out.String())
}
