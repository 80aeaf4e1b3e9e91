// util/compress.go
// Copyright(c) 2022-2025 airrescue contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// ReadFile returns the contents of the given file; if its name ends in
// ".zst", the contents are decompressed transparently.
func ReadFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if filepath.Ext(path) != ".zst" {
		return b, nil
	}
	return DecompressZstd(b)
}

// OpenFile is like ReadFile but returns a Reader.
func OpenFile(path string) (io.Reader, error) {
	b, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(b), nil
}

// UncompressedExt returns the lower-cased extension of path, ignoring a
// trailing ".zst": "fleet.CSV.zst" gives ".csv".
func UncompressedExt(path string) string {
	return strings.ToLower(filepath.Ext(strings.TrimSuffix(path, ".zst")))
}

func CompressZstd(b []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(b); err != nil {
		zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecompressZstd(b []byte) ([]byte, error) {
	// Unlike io.ReadCloser, the zstd Decoder's Close() doesn't return an
	// error.
	zr, err := zstd.NewReader(bytes.NewReader(b), zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	return io.ReadAll(zr)
}
