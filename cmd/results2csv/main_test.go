// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/actorperf/actorperf/artifact"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

func writeFiles(t *testing.T, fs afero.Fs, files map[string]string) {
	t.Helper()
	for name, data := range files {
		if err := afero.WriteFile(fs, name, []byte(data), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestRun(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"20170899-final/info.txt":            "serenity, 64 cores\n",
		"20170899-final/original-w1-i0.txt":  "Total execution time: 450 ms\n",
		"20170899-final/original-w1-i1.txt":  "Total execution time: 470.5 ms\n",
		"20170899-final/txact-w4-s2-i0.txt":  "Total execution time: 150 ms\n",
		"20170899-final/txact-w4-s2-i1.txt":  "aborted\n",
		"20170899-final/original-w1.txt":     "Total execution time: 1 ms\n",
		"20170899-final/txact-w16-s8-i0.txt": "Total execution time: 60 ms\n",
	})

	var stdout, stderr bytes.Buffer
	if err := run(&stdout, &stderr, fs, nil); err != nil {
		t.Fatal(err)
	}

	got, err := afero.ReadFile(fs, "20170899-final.csv")
	if err != nil {
		t.Fatal(err)
	}
	want := `version,w,s,i,time (ms)
original,1,None,0,450
original,1,None,1,470.5
txact,16,8,0,60
txact,4,2,0,150
`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("output (-want +got):\n%s", diff)
	}

	wantErrors := "ERRORS:\nIgnoring original-w1.txt: wrong file name.\nFile txact-w4-s2-i1.txt has 0 time measurements, expected 1.\n"
	if !strings.HasSuffix(stdout.String(), wantErrors) {
		t.Errorf("stdout does not end with the error list:\n%s", stdout.String())
	}
	if !strings.Contains(stdout.String(), "observations=4") {
		t.Errorf("stdout does not report the observation count:\n%s", stdout.String())
	}
	if stderr.Len() != 0 {
		t.Errorf("unexpected stderr output: %s", stderr.String())
	}
}

func TestRunExplicitOutput(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"logs/original-w2-i0.txt": "Total execution time: 12 ms\n",
	})
	var stdout, stderr bytes.Buffer
	if err := run(&stdout, &stderr, fs, []string{"logs/", "out/run.csv"}); err != nil {
		t.Fatal(err)
	}
	got, err := afero.ReadFile(fs, "out/run.csv")
	if err != nil {
		t.Fatal(err)
	}
	if want := "version,w,s,i,time (ms)\noriginal,2,None,0,12\n"; string(got) != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if strings.Contains(stdout.String(), "ERRORS:") {
		t.Errorf("unexpected error list:\n%s", stdout.String())
	}
}

func TestRunExistingOutput(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"logs/original-w2-i0.txt": "Total execution time: 12 ms\n",
		"logs.csv":                "keep me\n",
	})
	var stdout, stderr bytes.Buffer
	err := run(&stdout, &stderr, fs, []string{"logs"})
	if !errors.Is(err, artifact.ErrExists) {
		t.Fatalf("run error = %v, want %v", err, artifact.ErrExists)
	}
	got, _ := afero.ReadFile(fs, "logs.csv")
	if string(got) != "keep me\n" {
		t.Errorf("existing output was modified: %q", got)
	}
}

func TestRunMissingDir(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run(&stdout, &stderr, afero.NewMemMapFs(), []string{"nowhere"}); err == nil {
		t.Fatal("run succeeded on a missing directory")
	}
}
