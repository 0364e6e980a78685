// Package config loads fbplot settings from TOML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/cwbudde/algo-fda/stats/functional"
)

// ErrInvalid indicates a configuration value outside its allowed range.
var ErrInvalid = errors.New("config: invalid value")

// Config holds all settings of a boxplot run.
type Config struct {
	Measure      string                    `toml:"measure"`
	MaxBandSize  int                       `toml:"max_band_size"`
	OutlierFence float64                   `toml:"outlier_fence"`
	Workers      int                       `toml:"workers"`
	Sampling     functional.SamplingConfig `toml:"sampling"`
	Render       Render                    `toml:"render"`
}

// Render controls the image written by the renderer.
type Render struct {
	WidthCM  float64 `toml:"width_cm"`
	HeightCM float64 `toml:"height_cm"`
	Title    string  `toml:"title"`
	XLabel   string  `toml:"x_label"`
	YLabel   string  `toml:"y_label"`
	ShowMean bool    `toml:"show_mean"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Measure:      functional.MeasureModified.String(),
		MaxBandSize:  2,
		OutlierFence: 1.5,
		Sampling:     functional.DefaultSamplingConfig(),
		Render: Render{
			WidthCM:  16,
			HeightCM: 10,
			Title:    "Functional boxplot",
			XLabel:   "argument",
			YLabel:   "value",
		},
	}
}

// Load reads a TOML file on top of the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	return Parse(raw)
}

// Parse decodes TOML data on top of the defaults and validates the result.
func Parse(raw []byte) (Config, error) {
	cfg := Default()

	err := toml.NewDecoder(bytes.NewReader(raw)).DisallowUnknownFields().Decode(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the configuration for values the engine would reject.
func (c Config) Validate() error {
	if _, err := functional.ParseMeasure(c.Measure); err != nil {
		return fmt.Errorf("%w: measure %q", ErrInvalid, c.Measure)
	}

	if c.MaxBandSize < 2 {
		return fmt.Errorf("%w: max_band_size %d < 2", ErrInvalid, c.MaxBandSize)
	}

	if c.OutlierFence < 0 {
		return fmt.Errorf("%w: outlier_fence %v < 0", ErrInvalid, c.OutlierFence)
	}

	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d < 0", ErrInvalid, c.Workers)
	}

	if err := c.Sampling.Validate(); err != nil {
		return fmt.Errorf("%w: sampling: %w", ErrInvalid, err)
	}

	if c.Render.WidthCM <= 0 || c.Render.HeightCM <= 0 {
		return fmt.Errorf("%w: render size %vx%v cm", ErrInvalid, c.Render.WidthCM, c.Render.HeightCM)
	}

	return nil
}

// MeasureValue returns the parsed depth measure.
func (c Config) MeasureValue() functional.Measure {
	m, err := functional.ParseMeasure(c.Measure)
	if err != nil {
		return functional.MeasureModified
	}

	return m
}

// Options converts the configuration into engine options.
func (c Config) Options() []functional.Option {
	return []functional.Option{
		functional.WithSampling(c.Sampling),
		functional.WithWorkers(c.Workers),
		functional.WithOutlierFence(c.OutlierFence),
	}
}
