// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build !unix

package fifo

import (
	"errors"
	"io/fs"
)

var errUnsupported = errors.New("fifo: named pipes are not supported on this platform")

func Create(path string, perm fs.FileMode) error {
	return errUnsupported
}

func OpenWriter(path string, perm fs.FileMode) (*Writer, error) {
	return nil, errUnsupported
}

func OpenReader(path string) (*Reader, error) {
	return nil, errUnsupported
}
