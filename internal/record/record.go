// Package record persists resolved sampling plans as flat field/value files.
package record

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"framerip/internal/sampling"
)

const (
	ext         = ".yaml"
	maxSuffixes = 10000
)

// Record is the persisted form of a plan.
type Record struct {
	Source   string  `mapstructure:"source"`
	Start    float64 `mapstructure:"start"`
	End      float64 `mapstructure:"end"`
	Step     float64 `mapstructure:"step"`
	Count    int     `mapstructure:"count"`
	Duration float64 `mapstructure:"duration"`
}

func FromPlan(source string, plan sampling.Plan) Record {
	return Record{
		Source:   source,
		Start:    plan.Start,
		End:      plan.End,
		Step:     plan.Step,
		Count:    plan.Count,
		Duration: plan.Duration,
	}
}

// Write stores rec as dir/name.yaml. An existing file is never replaced: the first
// free name among name_1.yaml, name_2.yaml, ... is used instead.
func Write(dir, name string, rec Record) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create records dir: %w", err)
	}

	v := viper.New()
	v.Set("source", rec.Source)
	v.Set("start", rec.Start)
	v.Set("end", rec.End)
	v.Set("step", rec.Step)
	v.Set("count", rec.Count)
	v.Set("duration", rec.Duration)

	for i := 0; i < maxSuffixes; i++ {
		path := filepath.Join(dir, candidateName(name, i))
		err := v.SafeWriteConfigAs(path)
		if err == nil {
			return path, nil
		}
		var exists viper.ConfigFileAlreadyExistsError
		if !errors.As(err, &exists) {
			return "", fmt.Errorf("write record: %w", err)
		}
	}
	return "", fmt.Errorf("write record: no free name for %s in %s", name, dir)
}

// Read loads a record written by Write.
func Read(path string) (Record, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Record{}, fmt.Errorf("read record: %w", err)
	}

	var rec Record
	if err := v.Unmarshal(&rec); err != nil {
		return Record{}, fmt.Errorf("decode record: %w", err)
	}
	return rec, nil
}

func candidateName(name string, n int) string {
	if n == 0 {
		return name + ext
	}
	return fmt.Sprintf("%s_%d%s", name, n, ext)
}
