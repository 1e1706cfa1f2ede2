package duration

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"30s", 30 * time.Second},
		{"1h30m", 90 * time.Minute},
		{"45", 45 * time.Second},
		{"1.5", 1500 * time.Millisecond},
		{"2d", 48 * time.Hour},
		{"1w", 7 * 24 * time.Hour},
	}
	for _, tc := range tests {
		got, err := ParseDuration(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseDurationInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "12x"} {
		_, err := ParseDuration(in)
		assert.Error(t, err, in)
	}
}

func TestDurationVar(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var d time.Duration
	DurationVar(flags, &d, "timeout", 2*time.Minute, "")

	assert.Equal(t, 2*time.Minute, d)
	require.NoError(t, flags.Set("timeout", "3d"))
	assert.Equal(t, 72*time.Hour, d)
}
