package feed

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dealerhub/invsync/internal/domain"
)

func TestExtractPassThroughForDataFile(t *testing.T) {
	path := writeFeed(t, goodLine+"\n")

	got, err := Extract(path, filepath.Dir(path))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != path {
		t.Errorf("Extract = %q, want pass-through %q", got, path)
	}
}

func TestExtractZip(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "fulfillment-inv-new.zip")
	writeZip(t, archivePath, "fulfillment-inv-new.txt", goodLine+"\n")

	dataPath, err := Extract(archivePath, dir)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	want := filepath.Join(dir, "fulfillment-inv-new.txt")
	if dataPath != want {
		t.Errorf("dataPath = %q, want %q", dataPath, want)
	}
	if _, err := os.Stat(dataPath); err != nil {
		t.Errorf("extracted data file missing: %v", err)
	}
	if _, err := os.Stat(archivePath); !os.IsNotExist(err) {
		t.Errorf("archive should be deleted after clean extraction")
	}
}

func TestExtractCorruptZipKeepsArchive(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "inv.zip")
	if err := os.WriteFile(archivePath, []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Extract(archivePath, dir)
	if !errors.Is(err, domain.ErrUnarchive) {
		t.Fatalf("err = %v, want ErrUnarchive", err)
	}
	if _, statErr := os.Stat(archivePath); statErr != nil {
		t.Errorf("archive should be left in place for diagnosis: %v", statErr)
	}
}

func TestExtractRejectsEscapingEntries(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "evil.zip")
	writeZip(t, archivePath, "../escape.txt", "boom")

	if _, err := Extract(archivePath, filepath.Join(dir, "out")); !errors.Is(err, domain.ErrUnarchive) {
		t.Fatalf("err = %v, want ErrUnarchive", err)
	}
}

func writeZip(t *testing.T, path, entryName, content string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	w, err := zw.Create(entryName)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}
