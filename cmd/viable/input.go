// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"compress/bzip2"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/go-air/viable/internal/scenario"
	"github.com/pkg/errors"
)

// path2Reader opens p, decompressing .gz and .bz2 files.  "-" is standard
// input.
func path2Reader(p string, stdin io.Reader) (io.ReadCloser, error) {
	if p == "-" {
		return io.NopCloser(stdin), nil
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasSuffix(p, ".gz"):
		r, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return struct {
			io.Reader
			io.Closer
		}{r, f}, nil
	case strings.HasSuffix(p, ".bz2"):
		return struct {
			io.Reader
			io.Closer
		}{bzip2.NewReader(f), f}, nil
	}
	return f, nil
}

func loadScenario(p string, stdin io.Reader) (*scenario.Scenario, error) {
	r, err := path2Reader(p, stdin)
	if err != nil {
		return nil, errors.Wrap(err, "opening scenario")
	}
	defer r.Close()
	sc, err := scenario.Load(r)
	if err != nil {
		return nil, errors.Wrap(err, p)
	}
	return sc, nil
}
