// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build unix

package fifo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/sys/unix"
)

// Create makes a named pipe at path unless one already exists.
func Create(path string, perm fs.FileMode) error {
	fi, err := os.Stat(path)
	switch {
	case err == nil:
		if fi.Mode()&fs.ModeNamedPipe == 0 {
			return fmt.Errorf("fifo: %s exists and is not a named pipe", path)
		}
		return nil
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("fifo: %w", err)
	}
	if err := unix.Mkfifo(path, uint32(perm.Perm())); err != nil {
		return fmt.Errorf("fifo: mkfifo %s: %w", path, err)
	}
	// mkfifo applies the umask.
	return os.Chmod(path, perm.Perm())
}

// OpenWriter creates the pipe if needed and opens it for writing. It blocks
// until a reader opens the other end.
func OpenWriter(path string, perm fs.FileMode) (*Writer, error) {
	if err := Create(path, perm); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("fifo: %w", err)
	}
	return NewWriter(f), nil
}

// OpenReader opens an existing pipe for reading. It blocks until a writer
// opens the other end.
func OpenReader(path string) (*Reader, error) {
	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("fifo: %w", err)
	}
	return NewReader(f), nil
}
