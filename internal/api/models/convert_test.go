package models

import (
	"testing"

	"revenue-model/internal/model"
	"revenue-model/internal/projection"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func TestProjectionSettingsToSettings(t *testing.T) {
	tests := []struct {
		name    string
		in      ProjectionSettings
		months  int
		wantErr error
	}{
		{"omitted months uses default", ProjectionSettings{}, projection.DefaultSettings().Months, nil},
		{"explicit months", ProjectionSettings{Months: intp(12)}, 12, nil},
		{"zero months", ProjectionSettings{Months: intp(0)}, 0, model.ErrInvalidRequest},
		{"negative months", ProjectionSettings{Months: intp(-3)}, 0, model.ErrInvalidRequest},
		{"bad start", ProjectionSettings{Start: "jan"}, 0, model.ErrInvalidRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.ToSettings()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.months, got.Months)
		})
	}
}

func TestToUnitsNamesUnnamedUnits(t *testing.T) {
	name := "Vault"
	units, err := ToUnits([]UnitRequest{{}, {Name: &name}, {}})
	require.NoError(t, err)
	require.Len(t, units, 3)
	assert.Equal(t, "New Machine 1", units[0].Name)
	assert.Equal(t, "Vault", units[1].Name)
	assert.Equal(t, "New Machine 3", units[2].Name)
}
