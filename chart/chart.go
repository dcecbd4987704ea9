// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart draws speedup curves with quartile error bars.
package chart

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"strings"

	"github.com/actorperf/actorperf/artifact"
	"github.com/actorperf/actorperf/internal/config"
	"github.com/actorperf/actorperf/obsproc"
	"github.com/actorperf/actorperf/speedup"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// defaultColor is used when a figure has neither series colors nor a
// palette.
var defaultColor = color.RGBA{R: 0x00, G: 0x33, B: 0x99, A: 0xff}

// errorBars is the input of plotter.NewYErrorBars.
type errorBars struct {
	plotter.XYs
	plotter.YErrors
}

// Render draws fig from the speedups in s.
//
// Points with a non-finite speedup or error bar cannot be drawn. They
// are dropped and reported on log.
func Render(fig config.Figure, s *speedup.Series, log zerolog.Logger) (*plot.Plot, error) {
	colors, err := seriesColors(fig)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.X.Label.Text = fig.XLabel
	p.Y.Label.Text = fig.YLabel
	p.X.Min, p.X.Max = fig.XMin, fig.XMax
	p.Y.Min, p.Y.Max = 0, fig.YMax

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Color = color.Gray{Y: 0xe6}
	p.Add(grid)

	tagCount := make(map[string]int)
	for _, sc := range fig.Series {
		tagCount[sc.Tag]++
	}

	var xs []int
	for i, sc := range fig.Series {
		pts := finite(s.Line(sc.Tag, sc.Secondary), sc.Label, log)
		if len(pts) == 0 {
			log.Warn().Str("figure", fig.Name).Str("series", sc.Label).Msg("no data for series")
			continue
		}
		xys := make(plotter.XYs, len(pts))
		errs := make(plotter.YErrors, len(pts))
		for j, pt := range pts {
			xys[j].X = float64(pt.Key.Primary)
			xys[j].Y = pt.Speedup.Median
			errs[j].Low = pt.Error.Low
			errs[j].High = pt.Error.High
			xs = append(xs, pt.Key.Primary)
		}

		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, errors.Wrapf(err, "series %s", sc.Label)
		}
		line.LineStyle.Color = colors[i]
		line.LineStyle.Width = vg.Points(1.5)

		bars, err := plotter.NewYErrorBars(errorBars{xys, errs})
		if err != nil {
			return nil, errors.Wrapf(err, "series %s", sc.Label)
		}
		bars.LineStyle.Color = colors[i]
		bars.CapWidth = vg.Points(4)

		p.Add(line, bars)
		if len(fig.Series) > 1 {
			p.Legend.Add(sc.Label, line)
		}

		if sc.AnnotateMax {
			best := pts[0]
			for _, pt := range pts[1:] {
				if pt.Speedup.Median > best.Speedup.Median {
					best = pt
				}
			}
			text := fmt.Sprintf("For %s:\nspeed-up = %.1f\ntime = %.0f ms",
				pointName(best.Key, tagCount[best.Key.Tag] > 1), best.Speedup.Median, best.Time.Median)
			if err := annotate(p, best, text); err != nil {
				return nil, err
			}
		}
	}
	p.Legend.Top = true
	p.Legend.Left = true

	if fig.AnnotateBaseline {
		base := fig.Baseline.Key()
		if pt, ok := s.Lookup(base); ok && isFinite(pt.Speedup.Median) {
			text := fmt.Sprintf("For %s: time = %.0f ms", pointName(base, tagCount[base.Tag] > 1), pt.Time.Median)
			if err := annotate(p, pt, text); err != nil {
				return nil, err
			}
		}
	}

	p.X.Tick.Marker = plot.ConstantTicks(ticks(xs))
	return p, nil
}

// Save writes p to path in the format named by the extension of path
// (pdf, png, svg, eps). It never replaces an existing file.
func Save(fs afero.Fs, p *plot.Plot, fig config.Figure, path string) error {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	wt, err := p.WriterTo(vg.Length(fig.Width)*vg.Inch, vg.Length(fig.Height)*vg.Inch, format)
	if err != nil {
		return errors.Wrapf(err, "rendering %s", path)
	}
	return artifact.WriteTo(fs, path, wt)
}

func seriesColors(fig config.Figure) ([]color.Color, error) {
	var pal []color.Color
	if fig.Palette != "" {
		n := len(fig.Series)
		if n < 3 {
			// ColorBrewer palettes start at three colors.
			n = 3
		}
		bp, err := brewer.GetPalette(brewer.TypeAny, fig.Palette, n)
		if err != nil {
			return nil, errors.Wrapf(err, "figure %s", fig.Name)
		}
		pal = bp.Colors()
		// Sequential palettes run from light to dark; draw the
		// first series darkest.
		for i, j := 0, len(pal)-1; i < j; i, j = i+1, j-1 {
			pal[i], pal[j] = pal[j], pal[i]
		}
	}
	colors := make([]color.Color, len(fig.Series))
	for i, sc := range fig.Series {
		switch c, ok := sc.RGBA(); {
		case ok:
			colors[i] = c
		case pal != nil:
			colors[i] = pal[i%len(pal)]
		default:
			colors[i] = defaultColor
		}
	}
	return colors, nil
}

func annotate(p *plot.Plot, pt speedup.Point, text string) error {
	xy := plotter.XYs{{X: float64(pt.Key.Primary), Y: pt.Speedup.Median}}
	mark, err := plotter.NewScatter(xy)
	if err != nil {
		return err
	}
	mark.GlyphStyle.Shape = draw.RingGlyph{}
	mark.GlyphStyle.Radius = vg.Points(4)

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xy, Labels: []string{text}})
	if err != nil {
		return err
	}
	labels.Offset = vg.Point{X: vg.Points(6), Y: vg.Points(-6)}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Font.Size = vg.Points(8)
		labels.TextStyle[i].YAlign = draw.YTop
	}
	p.Add(mark, labels)
	return nil
}

// pointName names a configuration in an annotation.
func pointName(k obsproc.Key, withSecondary bool) string {
	if withSecondary && k.HasSecondary {
		return fmt.Sprintf("p = %d, s = %d", k.Primary, k.Secondary)
	}
	return fmt.Sprintf("p = %d", k.Primary)
}

// ticks returns a tick at 1 and at every multiple of 4 in xs.
func ticks(xs []int) []plot.Tick {
	seen := make(map[int]bool)
	var ts []plot.Tick
	for _, x := range xs {
		if seen[x] || !(x == 1 || x%4 == 0) {
			continue
		}
		seen[x] = true
		ts = append(ts, plot.Tick{Value: float64(x), Label: fmt.Sprint(x)})
	}
	return ts
}

func finite(pts []speedup.Point, series string, log zerolog.Logger) []speedup.Point {
	out := pts[:0:0]
	for _, pt := range pts {
		if isFinite(pt.Speedup.Median) && isFinite(pt.Error.Low) && isFinite(pt.Error.High) {
			out = append(out, pt)
			continue
		}
		log.Warn().Str("series", series).Stringer("key", pt.Key).Msg("dropping point with non-finite speedup")
	}
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
