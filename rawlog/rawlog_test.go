// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rawlog

import (
	"testing"

	"github.com/actorperf/actorperf/obsfmt"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/spf13/afero"
)

func TestExtract(t *testing.T) {
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"info.txt":               "run on serenity\n",
		"original-w1-i0.txt":     "warming up\nTotal execution time: 5656.25 ms\n",
		"txact-w38-s8-i4.txt":    "Total execution time: 516 ms\n",
		"txact-w2-s1-i0.txt":     "crashed\n",
		"txact-w2-s1-i1.txt":     "Total execution time: 1 ms\nTotal execution time: 2 ms\n",
		"notes.md":               "hello\n",
		"txact-w3-s1-i0.txt":     "Total execution time: 1.2.3 ms\n",
		"sub/original-w1-i9.txt": "Total execution time: 1 ms\n",
		"original-w10-i1.txt":    "Total execution time: 100 ms",
	}
	for name, data := range files {
		if err := afero.WriteFile(fs, "results/"+name, []byte(data), 0644); err != nil {
			t.Fatal(err)
		}
	}

	obs, errs, err := Extract(fs, "results")
	if err != nil {
		t.Fatal(err)
	}

	want := []*obsfmt.Observation{
		{Tag: "original", Primary: 1, Trial: 0, Elapsed: 5656.25},
		{Tag: "original", Primary: 10, Trial: 1, Elapsed: 100},
		{Tag: "txact", Primary: 38, Secondary: 8, HasSecondary: true, Trial: 4, Elapsed: 516},
	}
	if diff := cmp.Diff(want, obs, cmpopts.IgnoreUnexported(obsfmt.Observation{})); diff != "" {
		t.Errorf("observations (-want +got):\n%s", diff)
	}

	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	wantMsgs := []string{
		"Ignoring notes.md: wrong file name.",
		"File txact-w2-s1-i0.txt has 0 time measurements, expected 1.",
		"File txact-w2-s1-i1.txt has 2 time measurements, expected 1.",
		`File txact-w3-s1-i0.txt has an unreadable time measurement "1.2.3".`,
	}
	if diff := cmp.Diff(wantMsgs, msgs); diff != "" {
		t.Errorf("errors (-want +got):\n%s", diff)
	}
}

func TestExtractMissingDir(t *testing.T) {
	if _, _, err := Extract(afero.NewMemMapFs(), "nope"); err == nil {
		t.Errorf("Extract of a missing directory succeeded")
	}
}
