// Package loader reads program images from disk. Compressed images are
// unpacked and the first file of an archive is used.
package loader

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"

	"github.com/FabianRolfMatthiasNoll/lr35902/internal/translate"
)

var ErrEmptyArchive = errors.New(translate.From("archive contains no files"))

// Image is a program read from disk.
type Image struct {
	Name string
	Data []byte

	// Header is nil when the image is too short to carry one.
	Header *Header
}

// Cartridge reports whether the image carries a valid cartridge header.
func (i *Image) Cartridge() bool {
	return i.Header != nil && i.Header.Valid()
}

// Load reads the file at path, decompressing it by extension.
func Load(path string) (*Image, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	img := &Image{Name: filepath.Base(path), Data: data}
	if h, err := ParseHeader(data); err == nil {
		img.Header = h
	}
	return img, nil
}

// ReadFile returns the contents of path. .gz, .zip and .7z files are
// unpacked; anything else is returned as is.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rc io.ReadCloser
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".gz":
		rc, err = gzip.NewReader(bytes.NewReader(data))
	case ".zip":
		rc, err = openZip(data)
	case ".7z":
		rc, err = open7z(data)
	default:
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer rc.Close()

	out, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

func openZip(data []byte) (io.ReadCloser, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	if len(r.File) == 0 {
		return nil, ErrEmptyArchive
	}
	return r.File[0].Open()
}

func open7z(data []byte) (io.ReadCloser, error) {
	r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	if len(r.File) == 0 {
		return nil, ErrEmptyArchive
	}
	return r.File[0].Open()
}
