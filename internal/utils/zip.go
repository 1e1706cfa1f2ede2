package utils

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ZipDirectory packs dir into <tmp>/<name>.zip, replacing any previous
// archive of the same name, and returns the archive path. Entries use
// paths relative to dir; hidden files are skipped like in CollectFiles.
func ZipDirectory(dir, name string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(dir)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path %s is not a directory", dir)
	}
	if name == "" {
		name = filepath.Base(dir)
	}

	zipPath := filepath.Join(os.TempDir(), name+".zip")
	if err := os.RemoveAll(zipPath); err != nil {
		return "", err
	}

	files, err := CollectFiles(dir)
	if err != nil {
		return "", err
	}

	out, err := os.Create(zipPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	w := zip.NewWriter(out)
	for _, file := range files {
		if err := addZipEntry(w, file, dir); err != nil {
			w.Close()
			return "", err
		}
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return zipPath, nil
}

func addZipEntry(w *zip.Writer, file, dir string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	entry, err := w.Create(RelativeKey(file, dir))
	if err != nil {
		return err
	}
	_, err = io.Copy(entry, f)
	return err
}
