// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package speeduptab

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"
)

// ErrNoLaTeX is returned by Compile when pdflatex is not installed.
var ErrNoLaTeX = errors.New("pdflatex not found")

// pdflatex is the compiler command. Tests replace it.
var pdflatex = "pdflatex"

// Compile runs pdflatex on the TikZ document tex and copies the
// resulting PDF to w.
//
// pdflatex runs in a scratch directory, so it never touches files
// outside it; the caller decides where the PDF goes.
func Compile(ctx context.Context, tex []byte, w io.Writer) error {
	bin, err := exec.LookPath(pdflatex)
	if err != nil {
		return ErrNoLaTeX
	}
	dir, err := os.MkdirTemp("", "speeduptab")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)
	if err := os.WriteFile(filepath.Join(dir, "table.tikz"), tex, 0666); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, bin, "-interaction=nonstopmode", "-halt-on-error",
		"-output-directory="+dir, "table.tikz")
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "pdflatex:\n%s", out.Bytes())
	}

	pdf, err := os.Open(filepath.Join(dir, "table.pdf"))
	if err != nil {
		return errors.Wrap(err, "pdflatex produced no PDF")
	}
	defer pdf.Close()
	_, err = io.Copy(w, pdf)
	return err
}
