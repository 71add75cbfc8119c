package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/profitpath/internal/models"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "lowercase", raw: "aapl", want: "AAPL"},
		{name: "with spaces", raw: "  msft ", want: "MSFT"},
		{name: "class share", raw: "brk.b", want: "BRK.B"},
		{name: "dash", raw: "RDS-A", want: "RDS-A"},
		{name: "ten chars", raw: "ABCDEFGHIJ", want: "ABCDEFGHIJ"},
		{name: "eleven chars", raw: "ABCDEFGHIJK", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
		{name: "inner space", raw: "bad symbol!", wantErr: true},
		{name: "digits", raw: "A1", wantErr: true},
		{name: "unicode", raw: "ÄPL", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrInvalidSymbol)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitList(t *testing.T) {
	got, err := SplitList("aapl, TSLA,aapl")
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "TSLA"}, got)

	got, err = SplitList("  ")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = SplitList("AAPL,, msft ,")
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT"}, got)

	got, err = SplitList(",")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = SplitList("AAPL,??")
	assert.ErrorIs(t, err, models.ErrInvalidSymbol)
}
