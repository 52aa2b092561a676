package envstruct_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/fitnesspro/internal/envstruct"
)

func unset(_ string) (string, bool) { return "", false }

func lookup(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

type timerConfig struct {
	Title    string        `env:"TITLE" envDefault:"Fitness Pro"`
	Preset   int           `env:"PRESET" envDefault:"60"`
	Sound    bool          `env:"SOUND" envDefault:"true"`
	AutoIdle time.Duration `env:"AUTO_IDLE" envDefault:"3s"`
	Ignored  string
}

func TestPopulate(t *testing.T) {
	tests := []struct {
		name      string
		v         any
		lookupEnv func(string) (string, bool)
		want      any
		wantErr   error
	}{
		{
			name:      "nil",
			v:         nil,
			lookupEnv: unset,
			wantErr:   envstruct.ErrInvalidValue,
		},
		{
			name:      "not pointer",
			v:         struct{}{},
			lookupEnv: unset,
			wantErr:   envstruct.ErrInvalidValue,
		},
		{
			name:      "empty struct",
			v:         &struct{}{},
			lookupEnv: unset,
			want:      &struct{}{},
		},
		{
			name: "missing without default",
			v: &struct { //nolint:exhaustruct // populated later
				Addr string `env:"ADDR"`
			}{},
			lookupEnv: unset,
			wantErr:   envstruct.ErrEnvNotSet,
		},
		{
			name:      "defaults",
			v:         &timerConfig{}, //nolint:exhaustruct // populated later
			lookupEnv: unset,
			want: &timerConfig{
				Title:    "Fitness Pro",
				Preset:   60,
				Sound:    true,
				AutoIdle: 3 * time.Second,
				Ignored:  "",
			},
		},
		{
			name: "environment overrides defaults",
			v:    &timerConfig{}, //nolint:exhaustruct // populated later
			lookupEnv: lookup(map[string]string{
				"TITLE":     "Rest",
				"PRESET":    "90",
				"SOUND":     "false",
				"AUTO_IDLE": "1500ms",
				"Ignored":   "nope",
			}),
			want: &timerConfig{
				Title:    "Rest",
				Preset:   90,
				Sound:    false,
				AutoIdle: 1500 * time.Millisecond,
				Ignored:  "",
			},
		},
		{
			name: "picks correct env variable",
			v: &struct { //nolint:exhaustruct // populated later
				First  string `env:"FIRST"`
				Second string `env:"SECOND"`
			}{},
			lookupEnv: func(s string) (string, bool) { return strings.ToLower(s), true },
			want: &struct {
				First  string `env:"FIRST"`
				Second string `env:"SECOND"`
			}{First: "first", Second: "second"},
		},
		{
			name:      "malformed int",
			v:         &timerConfig{}, //nolint:exhaustruct // populated later
			lookupEnv: lookup(map[string]string{"PRESET": "sixty"}),
			wantErr:   envstruct.ErrParse,
		},
		{
			name:      "malformed duration",
			v:         &timerConfig{}, //nolint:exhaustruct // populated later
			lookupEnv: lookup(map[string]string{"AUTO_IDLE": "3"}),
			wantErr:   envstruct.ErrParse,
		},
		{
			name: "unsupported type",
			v: &struct { //nolint:exhaustruct // populated later
				Ratio float64 `env:"RATIO" envDefault:"1.5"`
			}{},
			lookupEnv: unset,
			wantErr:   envstruct.ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := envstruct.Populate(tt.v, tt.lookupEnv)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Populate() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Populate() unexpected error = %v", err)
			}
			if diff := cmp.Diff(tt.want, tt.v); diff != "" {
				t.Errorf("Populate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
