package duration

import (
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

type Duration time.Duration

var suffixes = []struct {
	Suffix     string
	Multiplier time.Duration
}{
	{Suffix: "d", Multiplier: time.Hour * 24},
	{Suffix: "w", Multiplier: time.Hour * 24 * 7},
	{Suffix: "", Multiplier: time.Second},
}

// ParseDuration accepts everything time.ParseDuration does plus bare
// seconds and d/w day and week suffixes.
func ParseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err == nil {
		return d, nil
	}

	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix.Suffix) {
			value, err := strconv.ParseFloat(strings.TrimSuffix(s, suffix.Suffix), 64)
			if err != nil {
				return 0, err
			}
			return time.Duration(value * float64(suffix.Multiplier)), nil
		}
	}
	return 0, err
}

func (d *Duration) String() string {
	return time.Duration(*d).String()
}

func (d *Duration) Set(s string) error {
	v, err := ParseDuration(s)
	*d = Duration(v)
	return err
}

func (d *Duration) Type() string {
	return "duration"
}

func (d *Duration) UnmarshalText(text []byte) error {
	return d.Set(string(text))
}

func newDurationValue(val time.Duration, p *time.Duration) *Duration {
	*p = val
	return (*Duration)(p)
}

// DurationVar registers a duration flag that accepts the extended
// syntax above.
func DurationVar(f *pflag.FlagSet, p *time.Duration, name string, value time.Duration, usage string) {
	f.VarP(newDurationValue(value, p), name, "", usage)
}
