// util/util_test.go
// Copyright(c) 2022-2025 airrescue contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestErrorLogger(t *testing.T) {
	errBad := errors.New("bad value")

	var e ErrorLogger
	if e.HaveErrors() || e.Err() != nil {
		t.Fatalf("fresh ErrorLogger reports errors")
	}

	func() {
		defer e.CheckDepth(e.CurrentDepth())
		e.Push("fleet.csv")
		e.Push("row 3")
		e.Error(errBad)
		e.Pop()
		e.ErrorString("missing %s column", "Name")
		e.Pop()
	}()

	if e.Count() != 2 {
		t.Fatalf("expected 2 errors, got %d", e.Count())
	}
	want := "fleet.csv / row 3: bad value\nfleet.csv: missing Name column"
	if e.String() != want {
		t.Errorf("got %q, expected %q", e.String(), want)
	}

	err := e.Err()
	if !errors.Is(err, errBad) {
		t.Errorf("accumulated error does not match errBad")
	}
	if err.Error() != want {
		t.Errorf("Err() message %q differs from String()", err.Error())
	}
}

func TestErrorLoggerCheckDepth(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for unbalanced Push")
		}
	}()

	var e ErrorLogger
	func() {
		defer e.CheckDepth(e.CurrentDepth())
		e.Push("unbalanced")
	}()
}

func TestUnmarshalJSONErrors(t *testing.T) {
	type rec struct {
		Name  string
		Speed float64
	}

	var r []rec
	err := UnmarshalJSONBytes([]byte("[\n  {\"Name\": \"KA-52\", \"Speed\": \"fast\"}\n]"), &r)
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("expected positioned type error, got %v", err)
	}

	err = UnmarshalJSON(strings.NewReader("[\n{"), &r)
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("expected positioned syntax error, got %v", err)
	}

	if err := UnmarshalJSON(strings.NewReader(`[{"Name":"Mi-8","Speed":250}]`), &r); err != nil {
		t.Errorf("unexpected error: %v", err)
	} else if len(r) != 1 || r[0].Name != "Mi-8" || r[0].Speed != 250 {
		t.Errorf("decoded %+v", r)
	}
}

func TestZstdFiles(t *testing.T) {
	dir := t.TempDir()
	contents := []byte("Name,MaxSpeed\nKA-52,180\n")

	z, err := CompressZstd(contents)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "fleet.csv.zst"), z, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "fleet.csv"), contents, 0o600); err != nil {
		t.Fatal(err)
	}

	for _, fn := range []string{"fleet.csv", "fleet.csv.zst"} {
		b, err := ReadFile(filepath.Join(dir, fn))
		if err != nil {
			t.Errorf("%s: %v", fn, err)
		} else if !bytes.Equal(b, contents) {
			t.Errorf("%s: got %q", fn, b)
		}
	}

	for path, ext := range map[string]string{
		"fleet.CSV.zst": ".csv",
		"a/b.json":      ".json",
		"noext":         "",
	} {
		if got := UncompressedExt(path); got != ext {
			t.Errorf("%s: got %q, expected %q", path, got, ext)
		}
	}
}

func TestStoreRetrieveObject(t *testing.T) {
	type obj struct {
		Names []string
		Wins  map[string]int
	}
	in := obj{Names: []string{"a", "b"}, Wins: map[string]int{"a": 3, "b": 7}}

	path := filepath.Join(t.TempDir(), "sub", "results.msgpack.zst")
	if err := StoreObject(path, in); err != nil {
		t.Fatal(err)
	}

	var out obj
	if err := RetrieveObject(path, &out); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(in.Names, out.Names) || out.Wins["a"] != 3 || out.Wins["b"] != 7 {
		t.Errorf("got %+v, expected %+v", out, in)
	}
}

func TestGeneric(t *testing.T) {
	m := map[string]int{"c": 1, "a": 2, "b": 3}
	if k := SortedMapKeys(m); !slices.Equal(k, []string{"a", "b", "c"}) {
		t.Errorf("SortedMapKeys: got %v", k)
	}
	if s := MapSlice([]int{1, 2, 3}, func(v int) int { return v * v }); !slices.Equal(s, []int{1, 4, 9}) {
		t.Errorf("MapSlice: got %v", s)
	}
	if Clamp(5, 1, 3) != 3 || Clamp(-1, 1, 3) != 1 || Clamp(2, 1, 3) != 2 {
		t.Errorf("Clamp")
	}
	if DefaultWorkers() < 1 {
		t.Errorf("DefaultWorkers returned %d", DefaultWorkers())
	}
}
