// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package speeduptab

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/actorperf/actorperf/internal/config"
)

var tikzTmpl = template.Must(template.New("tikz").Funcs(template.FuncMap{
	"color": func(m *Matrix, c Cell) string {
		k := CMYK(m.Ratio(c))
		return fmt.Sprintf("%.5f,%.5f,%.5f,%.5f", k[0], k[1], k[2], k[3])
	},
	"add": func(a, b int) int { return a + b },
}).Parse(`
\documentclass[tikz]{standalone}

\usepackage{libertine}
\renewcommand{\familydefault}{\sfdefault}
\usepackage{color}
\usepackage{xcolor}

\definecolor{text-color}{cmyk}{0,0,0,1.0}
{{range .M.Rows}}{{range .}}{{if .OK}}\definecolor{cell-{{.Primary}}-{{.Secondary}}}{cmyk}{ {{- color $.M . -}} }
{{end}}{{end}}{{end}}
\usetikzlibrary{calc,matrix}

\begin{document}
\begin{tikzpicture}

\matrix (m) [matrix of nodes,text opacity=0.8,color=text-color,every node/.style={inner xsep=0em,inner ysep=0.25em,outer sep=0em,minimum width=2.05em}]
{
{{.Body}}
};

\node[above=1.5ex] at ($(m-1-2)!0.5!(m-1-{{add (len .M.Primaries) 1}})$){ {{- .Cfg.XCaption -}} };
\node[rotate=90] at ($(m-2-1)!0.5!(m-{{add (len .M.Secondaries) 1}}-1)+(-3.5ex,0)$) { {{- .Cfg.YCaption -}} };

\end{tikzpicture}
\end{document}
`))

// TikZ writes m as a standalone LaTeX document that draws the matrix
// with TikZ. Each cell shows its speedup to one decimal, filled with
// the color CMYK gives for its ratio to the maximum.
func (m *Matrix) TikZ(w io.Writer, cfg config.Table) error {
	return tikzTmpl.Execute(w, struct {
		M    *Matrix
		Cfg  config.Table
		Body string
	}{m, cfg, m.tikzBody()})
}

// tikzBody returns the matrix rows. The last row has no trailing
// newline.
func (m *Matrix) tikzBody() string {
	label := func(v int) string {
		return fmt.Sprintf("|[text opacity=1]| %d", v)
	}
	var lines []string
	head := []string{""}
	for _, p := range m.Primaries {
		head = append(head, label(p))
	}
	lines = append(lines, row(head))
	for i, sec := range m.Secondaries {
		cells := []string{label(sec)}
		for _, c := range m.Rows[i] {
			if !c.OK {
				cells = append(cells, "")
				continue
			}
			cells = append(cells, fmt.Sprintf("|[fill=cell-%d-%d]| %.1f", c.Primary, c.Secondary, c.Speedup))
		}
		lines = append(lines, row(cells))
	}
	return strings.Join(lines, "\n")
}

func row(cells []string) string {
	return strings.Join(cells, " & ") + ` \\`
}
