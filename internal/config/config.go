// seehuhn.de/go/drawtools - drawing tools for interactive price charts
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package config loads the configuration of the drawtools command.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all settings of the command.
type Config struct {
	Chart    Chart    `yaml:"chart"`
	Render   Render   `yaml:"render"`
	Drawings Drawings `yaml:"drawings"`
	Store    Store    `yaml:"store"`
	Logging  Logging  `yaml:"logging"`
}

// Chart describes the host chart the drawings are rendered for.
type Chart struct {
	Width        float64    `yaml:"width"`
	Height       float64    `yaml:"height"`
	MarginLeft   float64    `yaml:"margin_left"`
	MarginRight  float64    `yaml:"margin_right"`
	MarginTop    float64    `yaml:"margin_top"`
	MarginBottom float64    `yaml:"margin_bottom"`
	Bars         [2]float64 `yaml:"bars"`   // visible bar index range
	Prices       [2]float64 `yaml:"prices"` // visible price range, low to high
	Zoom         float64    `yaml:"zoom"`

	// BarCentres, if set, gives the pixel position of every bar.
	BarCentres []float64 `yaml:"bar_centres,omitempty"`
}

// Render selects the output files.
type Render struct {
	Formats    []string `yaml:"formats"`
	OutDir     string   `yaml:"out_dir"`
	BaseName   string   `yaml:"base_name"`
	Background string   `yaml:"background"`
	GoFonts    bool     `yaml:"go_fonts"`
}

// Drawings names the JSON file the drawings are read from.
type Drawings struct {
	Input string `yaml:"input"`
}

// Store configures the SQLite document store.
type Store struct {
	SQLitePath string `yaml:"sqlite_path"`
	ChartID    string `yaml:"chart_id"`
	Save       bool   `yaml:"save"`
}

// Logging configures the process logger.
type Logging struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	Output     string `yaml:"output"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Load reads the configuration from a YAML file, then applies
// environment overrides and defaults.  A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DRAWTOOLS_INPUT"); v != "" {
		c.Drawings.Input = v
	}
	if v := os.Getenv("DRAWTOOLS_SQLITE"); v != "" {
		c.Store.SQLitePath = v
	}
	if v := os.Getenv("DRAWTOOLS_CHART_ID"); v != "" {
		c.Store.ChartID = v
	}
	if v := os.Getenv("DRAWTOOLS_OUT_DIR"); v != "" {
		c.Render.OutDir = v
	}
	if v := os.Getenv("DRAWTOOLS_ZOOM"); v != "" {
		if z, err := strconv.ParseFloat(v, 64); err == nil {
			c.Chart.Zoom = z
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

func (c *Config) applyDefaults() {
	if c.Chart.Width == 0 {
		c.Chart.Width = 800
	}
	if c.Chart.Height == 0 {
		c.Chart.Height = 600
	}
	if c.Chart.Bars == [2]float64{} {
		c.Chart.Bars = [2]float64{0, 100}
	}
	if c.Chart.Prices == [2]float64{} {
		c.Chart.Prices = [2]float64{0, 300}
	}
	if c.Chart.Zoom == 0 {
		c.Chart.Zoom = 1
	}
	if len(c.Render.Formats) == 0 {
		c.Render.Formats = []string{"svg"}
	}
	if c.Render.OutDir == "" {
		c.Render.OutDir = "."
	}
	if c.Render.BaseName == "" {
		c.Render.BaseName = "drawings"
	}
	if c.Render.Background == "" {
		c.Render.Background = "#ffffff"
	}
	if c.Store.ChartID == "" {
		c.Store.ChartID = "default"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stderr"
	}
}

// Validate checks the configuration for values which make rendering
// impossible.
func (c *Config) Validate() error {
	ch := c.Chart
	if ch.Width <= 0 || ch.Height <= 0 {
		return fmt.Errorf("chart size %gx%g must be positive", ch.Width, ch.Height)
	}
	if ch.MarginLeft < 0 || ch.MarginRight < 0 || ch.MarginTop < 0 || ch.MarginBottom < 0 {
		return errors.New("chart margins must not be negative")
	}
	if ch.MarginLeft+ch.MarginRight >= ch.Width || ch.MarginTop+ch.MarginBottom >= ch.Height {
		return errors.New("chart margins leave no plot area")
	}
	if ch.Bars[0] == ch.Bars[1] {
		return fmt.Errorf("empty bar range %v", ch.Bars)
	}
	if ch.Prices[0] >= ch.Prices[1] {
		return fmt.Errorf("invalid price range %v", ch.Prices)
	}
	if ch.Zoom <= 0 {
		return fmt.Errorf("zoom %g must be positive", ch.Zoom)
	}
	for i := 1; i < len(ch.BarCentres); i++ {
		if ch.BarCentres[i] <= ch.BarCentres[i-1] {
			return errors.New("bar centres must be increasing")
		}
	}
	for _, f := range c.Render.Formats {
		switch f {
		case "svg", "png", "pdf", "json":
		default:
			return fmt.Errorf("unknown output format %q", f)
		}
	}
	if c.Store.Save && c.Store.SQLitePath == "" {
		return errors.New("store.save requires store.sqlite_path")
	}
	return nil
}
