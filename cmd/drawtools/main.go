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

// Command drawtools renders stored chart drawings to SVG, PNG and PDF.
//
// Drawings are read from a JSON document, either a file or the SQLite
// store, and are laid out for the chart described in the configuration
// file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"seehuhn.de/go/drawtools/internal/config"
	"seehuhn.de/go/drawtools/internal/logger"
	"seehuhn.de/go/drawtools/internal/store"
	"seehuhn.de/go/drawtools/label"
	"seehuhn.de/go/drawtools/registry"
	"seehuhn.de/go/drawtools/scene"
	"seehuhn.de/go/drawtools/viewport"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.WithError(err).Warn("error loading .env file")
	}

	configPath := flag.String("config", "drawtools.yaml", "path to the configuration file")
	input := flag.String("input", "", "drawings JSON file (overrides the configuration)")
	chartID := flag.String("chart", "", "chart id in the drawing store")
	save := flag.Bool("save", false, "save the loaded drawings to the store")
	list := flag.Bool("list", false, "list the charts in the drawing store and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}
	if *input != "" {
		cfg.Drawings.Input = *input
	}
	if *chartID != "" {
		cfg.Store.ChartID = *chartID
	}
	if *save {
		cfg.Store.Save = true
	}
	if err := cfg.Validate(); err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	log, err := logger.New(logger.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})
	if err != nil {
		logrus.WithError(err).Fatal("failed to configure logger")
	}

	if *list {
		err = listCharts(cfg, log)
	} else {
		err = run(cfg, log)
	}
	if err != nil {
		log.WithError(err).Error("drawtools failed")
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logrus.Logger) error {
	start := time.Now()

	var db *store.Store
	if cfg.Store.SQLitePath != "" {
		var err error
		db, err = store.Open(cfg.Store.SQLitePath, logger.WithComponent(log, "store"))
		if err != nil {
			return err
		}
		defer db.Close()
	}

	data, err := readDrawings(cfg, db)
	if err != nil {
		return err
	}

	reg := registry.New(registry.WithLogger(logger.WithComponent(log, "registry")))
	if err := reg.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("decode drawings: %w", err)
	}

	vp, err := newViewport(cfg)
	if err != nil {
		return err
	}
	res := reg.RenderAll(vp)

	opt := scene.Options{
		Width:      int(cfg.Chart.Width),
		Height:     int(cfg.Chart.Height),
		Background: cfg.Render.Background,
		Measurer:   vp.Measure,
	}
	for _, format := range cfg.Render.Formats {
		if err := export(cfg, reg, format, opt); err != nil {
			return err
		}
	}

	if cfg.Store.Save {
		doc, err := reg.MarshalJSON()
		if err != nil {
			return err
		}
		if err := db.Save(cfg.Store.ChartID, doc); err != nil {
			return err
		}
	}

	log.WithFields(logrus.Fields{
		"drawings":    reg.Len(),
		"rendered":    res.Rendered,
		"skipped":     res.Skipped,
		"failed":      res.Failed,
		"formats":     cfg.Render.Formats,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("drawings rendered")
	return nil
}

// readDrawings returns the drawings document, from the input file if one
// is configured and from the store otherwise.
func readDrawings(cfg *config.Config, db *store.Store) ([]byte, error) {
	if cfg.Drawings.Input != "" {
		return os.ReadFile(cfg.Drawings.Input)
	}
	if db == nil {
		return nil, errors.New("no drawings input and no store configured")
	}
	return db.Load(cfg.Store.ChartID)
}

// newViewport builds the chart geometry described by the configuration.
func newViewport(cfg *config.Config) (*viewport.Viewport, error) {
	ch := cfg.Chart
	host := &viewport.StaticHost{
		X: viewport.LinearScale{
			Domain: ch.Bars,
			Pixels: [2]float64{ch.MarginLeft, ch.Width - ch.MarginRight},
		},
		Y: viewport.LinearScale{
			Domain: ch.Prices,
			Pixels: [2]float64{ch.Height - ch.MarginBottom, ch.MarginTop},
		},
		MarginLeft:  ch.MarginLeft,
		MarginRight: ch.MarginRight,
		Width:       ch.Width,
		Zoom:        ch.Zoom,
	}
	if len(ch.BarCentres) > 0 {
		host.Bars = &viewport.BarIndex{Centres: ch.BarCentres}
	}

	vp, err := viewport.New(host)
	if err != nil {
		return nil, err
	}
	if cfg.Render.GoFonts {
		fonts, err := label.GoFonts()
		if err != nil {
			return nil, err
		}
		vp.Measure = fonts
	}
	return vp, nil
}

func export(cfg *config.Config, reg *registry.Registry, format string, opt scene.Options) error {
	name := filepath.Join(cfg.Render.OutDir, cfg.Render.BaseName+"."+format)
	f, err := os.Create(name)
	if err != nil {
		return err
	}

	switch format {
	case "svg":
		err = scene.WriteSVG(f, reg.Layer(), opt)
	case "png":
		err = scene.WritePNG(f, reg.Layer(), opt)
	case "pdf":
		err = scene.WritePDF(f, reg.Layer(), opt)
	case "json":
		var doc []byte
		doc, err = reg.MarshalJSON()
		if err == nil {
			_, err = f.Write(doc)
		}
	default:
		err = fmt.Errorf("unknown output format %q", format)
	}

	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func listCharts(cfg *config.Config, log *logrus.Logger) error {
	if cfg.Store.SQLitePath == "" {
		return errors.New("no drawing store configured")
	}
	db, err := store.Open(cfg.Store.SQLitePath, logger.WithComponent(log, "store"))
	if err != nil {
		return err
	}
	defer db.Close()

	charts, err := db.Charts()
	if err != nil {
		return err
	}
	for _, e := range charts {
		fmt.Printf("%-24s %8d  %s\n", e.ChartID, e.Size, e.Updated.Format(time.RFC3339))
	}
	return nil
}
