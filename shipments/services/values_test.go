package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceQuantity(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"thousands separator", "1,234", "1234"},
		{"empty", "", "0"},
		{"garbage", "abc", "0"},
		{"pandas none", "None", "0"},
		{"pandas nan", "nan", "0"},
		{"plain", "250", "250"},
		{"fractional", "32.5", "32.5"},
		{"unit suffix", "120吨", "120"},
		{"padded", "  88 ", "88"},
		{"negative clamps to zero", "-5", "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CoerceQuantity(tc.raw)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestParseCellTime(t *testing.T) {
	got := ParseCellTime("2024-01-05 14:30:00")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 1, 5, 14, 30, 0, 0, time.Local), *got)

	got = ParseCellTime("2024/03/08")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 3, 8, 0, 0, 0, 0, time.Local), *got)

	assert.Nil(t, ParseCellTime(""))
	assert.Nil(t, ParseCellTime("明天"))
}

func TestParseCellTimeExcelSerial(t *testing.T) {
	// Serial 45292 is 2024-01-01 in the 1900 date system.
	got := ParseCellTime("45292")
	require.NotNil(t, got)
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.January, got.Month())
	assert.Equal(t, 1, got.Day())
}
