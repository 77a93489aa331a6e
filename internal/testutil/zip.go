// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"archive/zip"
	"bytes"
	"os"
	"testing"
)

// ZipEntry is one file of a zip fixture. Names ending in "/" become
// directory entries.
type ZipEntry struct {
	Name string
	Body string
}

// ZipBytes builds an in-memory zip archive holding entries in order.
func ZipBytes(t testing.TB, entries ...ZipEntry) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.Name)
		if err != nil {
			t.Fatalf("failed to add %s to zip: %v", e.Name, err)
		}
		if e.Body == "" {
			continue
		}
		if _, err := w.Write([]byte(e.Body)); err != nil {
			t.Fatalf("failed to write %s to zip: %v", e.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to finish zip: %v", err)
	}
	return buf.Bytes()
}

// WriteZip writes a zip fixture to path.
func WriteZip(t testing.TB, path string, entries ...ZipEntry) {
	t.Helper()
	if err := os.WriteFile(path, ZipBytes(t, entries...), 0o644); err != nil {
		t.Fatalf("failed to write zip %s: %v", path, err)
	}
}

// ReadZipNames returns the entry names of the zip archive at path.
func ReadZipNames(t testing.TB, path string) []string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("failed to open zip %s: %v", path, err)
	}
	defer DeferClose(t, zr)()

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names
}
