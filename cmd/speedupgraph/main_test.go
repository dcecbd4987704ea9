// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/actorperf/actorperf/speedup"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const observations = `version,w,s,i,time (ms)
original,1,None,0,5656
original,1,None,1,5600
original,4,None,0,2800
original,8,None,0,2300
original,8,2,0,2300
txact,1,1,0,14377
txact,4,1,0,4000
txact,8,1,0,2000
txact,1,8,0,9000
txact,4,8,0,1000
txact,8,8,0,516
`

func isPDF(t *testing.T, fs afero.Fs, name string) {
	t.Helper()
	data, err := afero.ReadFile(fs, name)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("%s is not a PDF: %.40q", name, data)
	}
}

func TestRun(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "20170899-final.csv", []byte(observations), 0644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	if err := run(&stdout, &stderr, fs, nil); err != nil {
		t.Fatal(err)
	}
	isPDF(t, fs, "20170899-final-original-speedup-graph.pdf")
	isPDF(t, fs, "20170899-final-txact-speedup-graph.pdf")
	if _, err := fs.Stat("20170899-final-orig-speedup-graph.pdf"); err == nil {
		t.Errorf("chart drawn for a variant without observations")
	}

	out := stdout.String()
	for _, want := range []string{
		"expected secondary to be None for version original, but is 2",
		"reached for original(8, 1) in version original",
		"reached for txact(8, 8) in version txact",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("stdout does not contain %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "medians") {
		t.Errorf("unexpected medians warning:\n%s", out)
	}
}

func TestRunOrig(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := "orig,1,None,0,100\norig,1,None,1,200\norig,2,None,0,50\n"
	afero.WriteFile(fs, "orig.csv", []byte(data), 0644)

	var stdout, stderr bytes.Buffer
	if err := run(&stdout, &stderr, fs, []string{"orig.csv"}); err != nil {
		t.Fatal(err)
	}
	isPDF(t, fs, "orig-orig-speedup-graph.pdf")
	for _, name := range []string{"orig-original-speedup-graph.pdf", "orig-txact-speedup-graph.pdf"} {
		if _, err := fs.Stat(name); err == nil {
			t.Errorf("%s drawn without observations", name)
		}
	}
	out := stdout.String()
	if !strings.Contains(out, "Maximal speed-up of 3 reached for orig(2, None) in version orig") {
		t.Errorf("maximum speedup not reported:\n%s", out)
	}
	if strings.Contains(out, "WRN") {
		t.Errorf("unexpected warnings:\n%s", out)
	}
}

func TestRunPrefix(t *testing.T) {
	fs := afero.NewMemMapFs()
	afero.WriteFile(fs, "in.csv", []byte(observations), 0644)

	var stdout, stderr bytes.Buffer
	if err := run(&stdout, &stderr, fs, []string{"in.csv", "figs/run"}); err != nil {
		t.Fatal(err)
	}
	isPDF(t, fs, "figs/run-original-speedup-graph.pdf")
	isPDF(t, fs, "figs/run-txact-speedup-graph.pdf")
}

func TestRunMediansInput(t *testing.T) {
	fs := afero.NewMemMapFs()
	medians := "original,1,None,5628\noriginal,8,None,2300\ntxact,1,1,14377\ntxact,8,8,516\n"
	afero.WriteFile(fs, "run-medians.csv", []byte(medians), 0644)

	var stdout, stderr bytes.Buffer
	if err := run(&stdout, &stderr, fs, []string{"run-medians.csv"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout.String(), "do not use -medians.csv") {
		t.Errorf("no warning for a medians input:\n%s", stdout.String())
	}
	isPDF(t, fs, "run-original-speedup-graph.pdf")
	isPDF(t, fs, "run-txact-speedup-graph.pdf")
}

func TestRunMissingBaseline(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := strings.Replace(observations, "txact,1,1,0,14377\n", "", 1)
	afero.WriteFile(fs, "in.csv", []byte(data), 0644)

	var stdout, stderr bytes.Buffer
	err := run(&stdout, &stderr, fs, []string{"in.csv"})
	if !errors.Is(err, speedup.ErrMissingBaseline) {
		t.Fatalf("run error = %v, want %v", err, speedup.ErrMissingBaseline)
	}
	if _, err := fs.Stat("in-txact-speedup-graph.pdf"); err == nil {
		t.Errorf("chart written without a baseline")
	}
}
