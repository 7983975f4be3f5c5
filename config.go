package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mrdg/patternmod/host"
	"github.com/mrdg/patternmod/score"
)

// fileConfig is the layout of the --config file. The object settings sit
// at the top level next to the seed and the MIDI options.
type fileConfig struct {
	host.Settings `yaml:",inline"`
	Seed          uint64      `yaml:"seed"`
	Score         scoreConfig `yaml:"score"`
}

type scoreConfig struct {
	Root     int     `yaml:"root"`
	BPM      float64 `yaml:"bpm"`
	Channel  uint8   `yaml:"channel"`
	Velocity uint8   `yaml:"velocity"`
}

func defaultConfig() fileConfig {
	opts := score.DefaultOptions()
	return fileConfig{
		Score: scoreConfig{
			Root:     opts.Root,
			BPM:      opts.BPM,
			Channel:  opts.Channel,
			Velocity: opts.Velocity,
		},
	}
}

func loadConfig(path string) (fileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return fileConfig{}, err
	}
	defer f.Close()
	return decodeConfig(f)
}

// decodeConfig reads a config over the defaults. Unknown keys are errors
// so a typo does not silently fall back to a default.
func decodeConfig(r io.Reader) (fileConfig, error) {
	cfg := defaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return fileConfig{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c fileConfig) scoreOptions() score.Options {
	opts := score.DefaultOptions()
	opts.Root = c.Score.Root
	opts.BPM = c.Score.BPM
	opts.Channel = c.Score.Channel
	opts.Velocity = c.Score.Velocity
	return opts
}
