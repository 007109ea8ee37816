package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	t.Parallel()

	var tests = []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "09:30", want: 9*60 + 30},
		{in: "23:59", want: 23*60 + 59},
		{in: "24:00", want: EndOfDay},
		{in: "24:01", wantErr: true},
		{in: "25:00", wantErr: true},
		{in: "14:60", wantErr: true},
		{in: "9:30", wantErr: true},
		{in: "14.30", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseTimeOfDay(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.in, got.String())
		})
	}
}

func TestTimeOfDay_JSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(TimeOfDay(14*60 + 5))
	require.NoError(t, err)
	require.Equal(t, `"14:05"`, string(b))

	var tod TimeOfDay
	require.NoError(t, json.Unmarshal([]byte(`"08:00"`), &tod))
	require.Equal(t, TimeOfDay(8*60), tod)

	require.Error(t, json.Unmarshal([]byte(`"8am"`), &tod))
}

func TestTimeOfDay_AddHours(t *testing.T) {
	t.Parallel()

	start, err := ParseTimeOfDay("14:30")
	require.NoError(t, err)
	require.Equal(t, "17:30", start.AddHours(3).String())
}
