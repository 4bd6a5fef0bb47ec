package consistency_test

import (
	"testing"

	"are-we-consistent-yet/core/consistency"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_Lines(t *testing.T) {
	report := consistency.Report{
		Iterations:         10,
		ReadAfterCreate:    1,
		ReadAfterDelete:    2,
		ReadAfterOverwrite: 3,
		ListAfterCreate:    4,
		ListAfterDelete:    5,
	}

	assert.Equal(t, []string{
		"read after create: 1",
		"read after delete: 2",
		"read after overwrite: 3",
		"list after create: 4",
		"list after delete: 5",
	}, report.Lines())
}

func TestParseProbe(t *testing.T) {
	tests := []struct {
		in   string
		want consistency.Probe
	}{
		{"read after create", consistency.ReadAfterCreate},
		{"read-after-delete", consistency.ReadAfterDelete},
		{"list-after-delete", consistency.ListAfterDelete},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := consistency.ParseProbe(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := consistency.ParseProbe("head-after-create")
	assert.ErrorIs(t, err, consistency.ErrInvalidConfig)
}
