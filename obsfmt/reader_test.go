// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obsfmt

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
)

func parseAll(t *testing.T, data string, opts ...Option) []Record {
	t.Helper()
	r := NewReader(strings.NewReader(data), "test", opts...)
	var out []Record
	for r.Scan() {
		out = append(out, r.Result())
	}
	if err := r.Err(); err != nil {
		t.Fatal("parsing failed: ", err)
	}
	return out
}

func obs(tag string, p int, s interface{}, i int, ms float64, line int, text string) *Observation {
	o := &Observation{Tag: tag, Primary: p, Trial: i, Elapsed: ms, fileName: "test", line: line, text: text}
	if s != nil {
		o.Secondary, o.HasSecondary = s.(int), true
	}
	return o
}

var recordCmp = cmp.Options{
	cmp.AllowUnexported(Observation{}, Median{}),
}

func TestReader(t *testing.T) {
	for _, test := range []struct {
		name string
		data string
		opts []Option
		want []Record
	}{
		{
			name: "basic",
			data: "orig,1,None,0,100\norig,1,None,1,200\norig,2,None,0,50\n",
			want: []Record{
				obs("orig", 1, nil, 0, 100, 1, "orig,1,None,0,100"),
				obs("orig", 1, nil, 1, 200, 2, "orig,1,None,1,200"),
				obs("orig", 2, nil, 0, 50, 3, "orig,2,None,0,50"),
			},
		},
		{
			name: "secondary",
			data: "txact,4,8,3,516.25\r\n",
			want: []Record{
				obs("txact", 4, 8, 3, 516.25, 1, "txact,4,8,3,516.25"),
			},
		},
		{
			name: "blank lines",
			data: "\norig,1,None,0,100\n   \n\norig,2,None,0,50",
			want: []Record{
				obs("orig", 1, nil, 0, 100, 2, "orig,1,None,0,100"),
				obs("orig", 2, nil, 0, 50, 5, "orig,2,None,0,50"),
			},
		},
		{
			name: "missing fields",
			data: "orig,1,None\norig,2,None,0,50\n",
			want: []Record{
				&RowError{MalformedRow, "test", 1, "could not read line: want 5 fields, have 3", "orig,1,None"},
				obs("orig", 2, nil, 0, 50, 2, "orig,2,None,0,50"),
			},
		},
		{
			name: "bad numbers",
			data: "a,x,None,0,1\na,1,y,0,1\na,1,None,z,1\na,1,None,0,ms\na,1,None,0,-3\na,1,None,0,NaN\n",
			opts: []Option{WithHeader(HeaderNone)},
			want: []Record{
				&RowError{MalformedRow, "test", 1, "parsing primary: invalid syntax", "a,x,None,0,1"},
				&RowError{MalformedRow, "test", 2, "parsing secondary: invalid syntax", "a,1,y,0,1"},
				&RowError{MalformedRow, "test", 3, "parsing trial: invalid syntax", "a,1,None,z,1"},
				&RowError{MalformedRow, "test", 4, "parsing time: invalid syntax", "a,1,None,0,ms"},
				&RowError{MalformedRow, "test", 5, "parsing time: negative time -3", "a,1,None,0,-3"},
				&RowError{MalformedRow, "test", 6, "parsing time: NaN is not a finite time", "a,1,None,0,NaN"},
			},
		},
		{
			name: "empty tag",
			data: " ,1,None,0,1\n",
			opts: []Option{WithHeader(HeaderNone)},
			want: []Record{
				&RowError{MalformedRow, "test", 1, "empty tag", " ,1,None,0,1"},
			},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			got := parseAll(t, test.data, test.opts...)
			if diff := cmp.Diff(test.want, got, recordCmp); diff != "" {
				t.Errorf("records (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHeaderModes(t *testing.T) {
	const withHeader = Header + "\norig,1,None,0,100\n"
	const withoutHeader = "orig,1,None,0,100\norig,1,None,1,200\n"

	count := func(data string, m HeaderMode) (obs, errs int) {
		for _, rec := range parseAll(t, data, WithHeader(m)) {
			switch rec.(type) {
			case *Observation:
				obs++
			case *RowError:
				errs++
			}
		}
		return
	}
	check := func(data string, m HeaderMode, wantObs, wantErrs int) {
		t.Helper()
		gotObs, gotErrs := count(data, m)
		if gotObs != wantObs || gotErrs != wantErrs {
			t.Errorf("header %v: got %d observations, %d errors; want %d, %d", m, gotObs, gotErrs, wantObs, wantErrs)
		}
	}

	check(withHeader, HeaderAuto, 1, 0)
	check(withHeader, HeaderSkip, 1, 0)
	check(withHeader, HeaderNone, 1, 1)

	check(withoutHeader, HeaderAuto, 2, 0)
	check(withoutHeader, HeaderSkip, 1, 0)
	check(withoutHeader, HeaderNone, 2, 0)

	// Only the first non-blank line can be a header.
	check("\n\n"+withHeader, HeaderAuto, 1, 0)
	check(withoutHeader+Header+"\n", HeaderAuto, 2, 1)

	// A first row with a bad primary column but a valid time is data.
	check("orig,x,None,0,100\norig,1,None,0,100\n", HeaderAuto, 1, 1)
	check("version,w,s,i,elapsed\norig,1,None,0,100\n", HeaderAuto, 1, 0)
}

func TestParseHeaderMode(t *testing.T) {
	for _, m := range []HeaderMode{HeaderAuto, HeaderSkip, HeaderNone} {
		got, err := ParseHeaderMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseHeaderMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseHeaderMode("first"); err == nil {
		t.Errorf("ParseHeaderMode(first) succeeded")
	}
}

func TestReaderMedians(t *testing.T) {
	got := parseAll(t, "txact,1,1,14377.5\noriginal,42,None,2230\ntxact,1,1,0,1\n", WithFormat(FormatMedians), WithHeader(HeaderNone))
	want := []Record{
		&Median{Tag: "txact", Primary: 1, Secondary: 1, HasSecondary: true, Elapsed: 14377.5, fileName: "test", line: 1, text: "txact,1,1,14377.5"},
		&Median{Tag: "original", Primary: 42, Elapsed: 2230, fileName: "test", line: 2, text: "original,42,None,2230"},
		&RowError{MalformedRow, "test", 3, "could not read line: want 4 fields, have 5", "txact,1,1,0,1"},
	}
	if diff := cmp.Diff(want, got, recordCmp); diff != "" {
		t.Errorf("records (-want +got):\n%s", diff)
	}
}

func TestReaderIOError(t *testing.T) {
	r := NewReader(io.MultiReader(strings.NewReader("orig,1,None,0,1\n"), iotest.ErrReader(io.ErrUnexpectedEOF)), "broken")
	n := 0
	for r.Scan() {
		n++
	}
	if n != 1 {
		t.Errorf("got %d records before the error, want 1", n)
	}
	if err := r.Err(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Err() = %v, want %v", err, io.ErrUnexpectedEOF)
	}
}

func TestRowErrorMessage(t *testing.T) {
	o := obs("txact", 1, nil, 0, 1, 7, "txact,1,None,0,1")
	e := NewRowError(UnexpectedFieldValue, o, "secondary is None")
	want := &RowError{UnexpectedFieldValue, "test", 7, "secondary is None", "txact,1,None,0,1"}
	if diff := cmp.Diff(want, e); diff != "" {
		t.Errorf("NewRowError (-want +got):\n%s", diff)
	}
	if got, want := e.Error(), "test:7: secondary is None"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
