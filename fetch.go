package main

import (
	"archive/zip"
	"bytes"
	"context"
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
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/nwaples/rardecode"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ImageFetcher resolves a picture URI to a decoded image. Implementations
// must honor context cancellation between I/O steps; decode itself is not
// interruptible.
type ImageFetcher interface {
	Fetch(ctx context.Context, uri string) (*ebiten.Image, error)
}

// FileFetcher loads pictures from the local filesystem. URIs are plain paths
// or archive entries in "album.zip:kitchen/01.jpg" form (zip, rar and 7z).
type FileFetcher struct{}

func (FileFetcher) Fetch(ctx context.Context, uri string) (*ebiten.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	archive, entry, ok := splitArchiveURI(uri)
	if !ok {
		return fetchFile(ctx, uri)
	}
	switch strings.ToLower(filepath.Ext(archive)) {
	case ".zip":
		return fetchFromZip(ctx, archive, entry)
	case ".rar":
		return fetchFromRar(ctx, archive, entry)
	case ".7z":
		return fetchFrom7z(ctx, archive, entry)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", archive)
	}
}

func decodeImageBytes(data []byte, name string) (*ebiten.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

func fetchFile(ctx context.Context, path string) (*ebiten.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return decodeImageBytes(data, path)
}

func fetchFromZip(ctx context.Context, archivePath, entryPath string) (*ebiten.Image, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != entryPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return decodeEntry(ctx, rc, entryPath)
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func fetchFromRar(ctx context.Context, archivePath, entryPath string) (*ebiten.Image, error) {
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
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if header.Name == entryPath {
			return decodeEntry(ctx, r, entryPath)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func fetchFrom7z(ctx context.Context, archivePath, entryPath string) (*ebiten.Image, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != entryPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return decodeEntry(ctx, rc, entryPath)
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func decodeEntry(ctx context.Context, r io.Reader, name string) (*ebiten.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return decodeImageBytes(data, name)
}
