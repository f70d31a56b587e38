// Package compressor packs a generated project into a zip archive.
package compressor

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
)

// ZipDir zips the contents of srcDir into destZip, including empty
// subdirectories. Entry names are slash separated and relative to srcDir.
// The parent of destZip is created when missing; destZip must not live
// inside srcDir.
//
//	err := ZipDir("dist/shop-api", "dist/shop-api.zip")
func ZipDir(srcDir, destZip string) (err error) {
	info, err := os.Stat(srcDir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return &os.PathError{Op: "zip", Path: srcDir, Err: os.ErrInvalid}
	}
	if err := os.MkdirAll(filepath.Dir(destZip), os.ModePerm); err != nil {
		return err
	}
	zipfile, err := os.Create(destZip)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := zipfile.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(destZip)
		}
	}()

	archive := zip.NewWriter(zipfile)
	err = filepath.Walk(srcDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		if relPath == "." {
			return nil
		}
		name := filepath.ToSlash(relPath)
		if info.IsDir() {
			_, err := archive.Create(name + "/")
			return err
		}
		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		header.Name = name
		header.Method = zip.Deflate
		w, err := archive.CreateHeader(header)
		if err != nil {
			return err
		}
		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		_, err = io.Copy(w, file)
		return err
	})
	if err != nil {
		archive.Close()
		return err
	}
	return archive.Close()
}
