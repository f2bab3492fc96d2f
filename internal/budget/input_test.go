package budget

import (
	"testing"

	"github.com/Veraticus/cashheal/internal/common"
	"github.com/Veraticus/cashheal/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "20", want: "20"},
		{input: "12,50", want: "12.5"},
		{input: "€ 1 250.75", want: "1250.75"},
		{input: "  7.1 ", want: "7.1"},
		{input: "0", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
		{input: "-4", wantErr: true},
		{input: "1.2.3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assertDecimal(t, tt.want, got, "amount")
		})
	}
}

func TestParseNonNegativeAmount(t *testing.T) {
	got, err := ParseNonNegativeAmount("0")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = ParseNonNegativeAmount("-1")
	assert.ErrorIs(t, err, common.ErrInvalidAmount)

	_, err = ParseNonNegativeAmount("n/a")
	assert.ErrorIs(t, err, common.ErrInvalidAmount)
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		spent     string
		remaining string
		ratio     string
		over      bool
	}{
		{name: "under target", target: "60", spent: "15", remaining: "45", ratio: "0.25"},
		{name: "exactly on target", target: "400", spent: "400", remaining: "0", ratio: "1"},
		{name: "over target", target: "900", spent: "1000", remaining: "0", ratio: "1", over: true},
		{name: "zero target", target: "0", spent: "10", remaining: "0", ratio: "0", over: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Progress(model.PeriodDay, d(tt.target), d(tt.spent))
			assertDecimal(t, tt.remaining, p.Remaining, "Remaining")
			assertDecimal(t, tt.ratio, p.Ratio, "Ratio")
			assert.Equal(t, tt.over, p.Over)
		})
	}
}
