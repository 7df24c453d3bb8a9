package feed

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/dealerhub/invsync/internal/domain"
)

// Extract unpacks tempPath into destDir when it is a zip archive and returns
// the path of the sibling data file (".zip" swapped for ".txt" — the vendor's
// naming convention; if they rename the inner file the parser will not find
// it). Non-archives pass through untouched. The archive is deleted only after
// a clean extraction so a broken one stays around for diagnosis.
func Extract(tempPath, destDir string) (string, error) {
	if strings.ToLower(filepath.Ext(tempPath)) != ".zip" {
		return tempPath, nil
	}

	if err := unzip(tempPath, destDir); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnarchive, err)
	}

	if err := os.Remove(tempPath); err != nil {
		log.Warn().Err(err).Str("archive", tempPath).Msg("could not remove extracted archive")
	}

	base := strings.TrimSuffix(filepath.Base(tempPath), filepath.Ext(tempPath))
	return filepath.Join(destDir, base+".txt"), nil
}

func unzip(archivePath, destDir string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return err
	}
	defer r.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return err
	}

	for _, f := range r.File {
		target := filepath.Join(destDir, f.Name)
		// Reject entries that would escape destDir.
		if !strings.HasPrefix(filepath.Clean(target), filepath.Clean(destDir)+string(os.PathSeparator)) {
			return fmt.Errorf("illegal entry path %q", f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}

		if err := extractFile(f, target); err != nil {
			return err
		}
	}

	return nil
}

func extractFile(f *zip.File, target string) error {
	in, err := f.Open()
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(target)
	if err != nil {
		return err
	}

	_, err = io.Copy(out, in)
	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}
	return err
}
