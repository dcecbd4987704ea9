// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package speeduptab

import (
	"fmt"
	"io"

	"github.com/actorperf/actorperf/internal/config"
	"github.com/google/safehtml/template"
)

// buckets is the number of fill colors in the HTML heat map.
const buckets = 10

var htmlTemplate = template.Must(template.New("").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
table.speedup { border-collapse: collapse; font-family: sans-serif; font-size: small; }
table.speedup th { font-weight: normal; padding: 0.2em 0.4em; }
table.speedup td { text-align: center; min-width: 2.5em; padding: 0.2em 0; }
td.b0 { background: #fdffd7; }
td.b1 { background: #f8ffd0; }
td.b2 { background: #efffc5; }
td.b3 { background: #e2ffb6; }
td.b4 { background: #d2ffa3; }
td.b5 { background: #bfff8b; }
td.b6 { background: #a8ff6f; }
td.b7 { background: #8dff4e; }
td.b8 { background: #6eff29; }
td.b9 { background: #4dff00; }
</style>
</head>
<body>
<table class="speedup">
<caption>{{.XCaption}}</caption>
<tr><th title="{{.YCaption}}">s \ p{{range .Primaries}}<th>{{.}}{{end}}
{{range .Rows -}}
<tr><th>{{.Secondary}}{{range .Cells}}<td class="{{.Class}}" title="{{.Title}}">{{.Text}}{{end}}
{{end -}}
</table>
</body>
</html>
`))

type htmlCell struct {
	Class, Title, Text string
}

type htmlRow struct {
	Secondary int
	Cells     []htmlCell
}

// HTML writes m as an HTML page. Cells are shaded in ten steps from
// the lowest to the highest speedup.
func (m *Matrix) HTML(w io.Writer, cfg config.Table) error {
	data := struct {
		Title              string
		XCaption, YCaption string
		Primaries          []int
		Rows               []htmlRow
	}{
		Title:     fmt.Sprintf("Speed-up of %s", m.Tag),
		XCaption:  cfg.XCaption,
		YCaption:  cfg.YCaption,
		Primaries: m.Primaries,
	}
	for i, sec := range m.Secondaries {
		r := htmlRow{Secondary: sec}
		for _, c := range m.Rows[i] {
			if !c.OK {
				r.Cells = append(r.Cells, htmlCell{Class: "empty"})
				continue
			}
			r.Cells = append(r.Cells, htmlCell{
				Class: fmt.Sprintf("b%d", m.bucket(c)),
				Title: fmt.Sprintf("p = %d, s = %d: speed-up %.2f", c.Primary, c.Secondary, c.Speedup),
				Text:  fmt.Sprintf("%.1f", c.Speedup),
			})
		}
		data.Rows = append(data.Rows, r)
	}
	return htmlTemplate.Execute(w, data)
}

// bucket returns the color step of c, in [0, buckets).
func (m *Matrix) bucket(c Cell) int {
	b := int(m.Ratio(c) * buckets)
	if b >= buckets {
		b = buckets - 1
	}
	if b < 0 {
		b = 0
	}
	return b
}
