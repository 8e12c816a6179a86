package main

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImagePath addresses an image on disk or an entry inside an archive.
type ImagePath struct {
	Path        string // Local file path or archive:entry format
	ArchivePath string // Empty for regular files, path to archive for entries
	EntryPath   string // Empty for regular files, path within archive for entries
}

// DisplayName returns the file name shown in the thumbnail strip.
func (p ImagePath) DisplayName() string {
	if p.EntryPath != "" {
		return filepath.Base(p.EntryPath)
	}
	return filepath.Base(p.Path)
}

func isArchiveExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip", ".rar", ".7z":
		return true
	default:
		return false
	}
}

func isSupportedExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".webp", ".bmp", ".gif", ".tiff", ".tif":
		return true
	default:
		return false
	}
}

// Decoding. All decoding is CPU-side; textures are created on the UI
// thread once a result arrives.

func decodeImageBytes(data []byte, path string) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

func decodeImageFromZip(archivePath, entryPath string) (image.Image, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == entryPath {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()

			data, err := io.ReadAll(rc)
			if err != nil {
				return nil, err
			}
			return decodeImageBytes(data, entryPath)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func decodeImageFromRar(archivePath, entryPath string) (image.Image, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if header.Name == entryPath {
			data, err := io.ReadAll(r)
			if err != nil {
				return nil, err
			}
			return decodeImageBytes(data, entryPath)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func decodeImageFrom7z(archivePath, entryPath string) (image.Image, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == entryPath {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()

			data, err := io.ReadAll(rc)
			if err != nil {
				return nil, err
			}
			return decodeImageBytes(data, entryPath)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

// decodeImage loads and decodes the addressed image without touching the
// GPU. Safe to call from worker goroutines.
func decodeImage(imagePath ImagePath) (image.Image, error) {
	if imagePath.ArchivePath == "" {
		f, err := os.Open(imagePath.Path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		img, _, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", imagePath.Path, err)
		}
		return img, nil
	}

	switch strings.ToLower(filepath.Ext(imagePath.ArchivePath)) {
	case ".zip":
		return decodeImageFromZip(imagePath.ArchivePath, imagePath.EntryPath)
	case ".rar":
		return decodeImageFromRar(imagePath.ArchivePath, imagePath.EntryPath)
	case ".7z":
		return decodeImageFrom7z(imagePath.ArchivePath, imagePath.EntryPath)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", filepath.Ext(imagePath.ArchivePath))
	}
}

// Listing

func listImagesInZip(archivePath string) ([]ImagePath, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var images []ImagePath
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isSupportedExt(f.Name) {
			images = append(images, ImagePath{
				Path:        archivePath + ":" + f.Name,
				ArchivePath: archivePath,
				EntryPath:   f.Name,
			})
		}
	}
	return images, nil
}

func listImagesInRar(archivePath string) ([]ImagePath, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	var images []ImagePath
	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if !header.IsDir && isSupportedExt(header.Name) {
			images = append(images, ImagePath{
				Path:        archivePath + ":" + header.Name,
				ArchivePath: archivePath,
				EntryPath:   header.Name,
			})
		}
	}
	return images, nil
}

func listImagesIn7z(archivePath string) ([]ImagePath, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var images []ImagePath
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isSupportedExt(f.Name) {
			images = append(images, ImagePath{
				Path:        archivePath + ":" + f.Name,
				ArchivePath: archivePath,
				EntryPath:   f.Name,
			})
		}
	}
	return images, nil
}

// listArchive lists the image entries of a zip/rar/7z archive.
func listArchive(archivePath string) ([]ImagePath, error) {
	switch strings.ToLower(filepath.Ext(archivePath)) {
	case ".zip":
		return listImagesInZip(archivePath)
	case ".rar":
		return listImagesInRar(archivePath)
	case ".7z":
		return listImagesIn7z(archivePath)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", filepath.Ext(archivePath))
	}
}

// listFolder lists the image files directly inside dir. Subdirectories
// and archives are not descended into; the viewer shows one folder at a
// time, matching the file it was opened with.
func listFolder(dir string) ([]ImagePath, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var images []ImagePath
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fullPath := filepath.Join(dir, entry.Name())
		if isSupportedExt(fullPath) {
			images = append(images, ImagePath{Path: fullPath})
		}
	}
	return images, nil
}

// expandPath turns a command-line path into a sorted listing plus the
// index to show first. A folder or archive starts at 0; a file expands to
// its parent folder positioned at that file.
func expandPath(path string, sortMethod int) ([]ImagePath, int, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, 0, err
	}

	if info.IsDir() {
		images, err := listFolder(path)
		if err != nil {
			return nil, 0, err
		}
		return sortImagePaths(images, sortMethod), 0, nil
	}

	if isArchiveExt(path) {
		images, err := listArchive(path)
		if err != nil {
			return nil, 0, err
		}
		return sortImagePaths(images, sortMethod), 0, nil
	}

	if !isSupportedExt(path) {
		return nil, 0, fmt.Errorf("unsupported file type: %s", path)
	}

	images, err := listFolder(filepath.Dir(path))
	if err != nil {
		// Best effort: view the single file on its own.
		return []ImagePath{{Path: path}}, 0, nil
	}
	sorted := sortImagePaths(images, sortMethod)

	abs, _ := filepath.Abs(path)
	for i, p := range sorted {
		pAbs, _ := filepath.Abs(p.Path)
		if p.Path == path || pAbs == abs {
			return sorted, i, nil
		}
	}
	// The file was not picked up by the scan (hidden, or racing a
	// delete); fall back to a single-entry listing.
	return []ImagePath{{Path: path}}, 0, nil
}

// sortImagePaths returns a new sorted slice per the configured strategy.
func sortImagePaths(images []ImagePath, sortMethod int) []ImagePath {
	return GetSortStrategy(sortMethod).Sort(images)
}
