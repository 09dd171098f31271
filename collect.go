package main

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/google/uuid"
	"github.com/nwaples/rardecode"
)

// collectDocuments builds media documents for a project from a mix of image
// files, archives of images, and directories to scan. Entry order follows the
// input; within a directory or archive, entries are sorted by path.
func collectDocuments(sources []string) ([]Document, error) {
	var uris []string
	for _, src := range sources {
		src = strings.TrimSpace(src)
		if src == "" {
			continue
		}
		info, err := os.Stat(src)
		if err != nil {
			return nil, err
		}
		switch {
		case info.IsDir():
			dirURIs, err := collectFromDirectory(src)
			if err != nil {
				return nil, err
			}
			uris = append(uris, dirURIs...)
		case isSupportedExt(src):
			uris = append(uris, src)
		case isArchiveExt(src):
			entries, err := listArchiveImages(src)
			if err != nil {
				return nil, err
			}
			uris = append(uris, entries...)
		default:
			return nil, fmt.Errorf("unsupported media source: %s", src)
		}
	}

	docs := make([]Document, 0, len(uris))
	for i, uri := range uris {
		name := uri
		if _, entry, ok := splitArchiveURI(uri); ok {
			name = entry
		}
		docs = append(docs, Document{
			ID:        uuid.NewString(),
			Title:     strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)),
			URL:       uri,
			SortOrder: i,
		})
	}
	return docs, nil
}

// collectFromDirectory gathers image files and archive entries under dir,
// sorted by path within the directory.
func collectFromDirectory(dir string) ([]string, error) {
	var uris []string
	err := filepath.Walk(dir, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return nil
		}
		if isSupportedExt(path) {
			uris = append(uris, path)
		} else if isArchiveExt(path) {
			entries, err := listArchiveImages(path)
			if err != nil {
				debugLog("skipping archive %s: %v", path, err)
				return nil
			}
			uris = append(uris, entries...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(uris)
	return uris, nil
}

// listArchiveImages returns "archive:entry" URIs for every image entry.
func listArchiveImages(archivePath string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(archivePath)) {
	case ".zip":
		return listZipImages(archivePath)
	case ".rar":
		return listRarImages(archivePath)
	case ".7z":
		return list7zImages(archivePath)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", archivePath)
	}
}

func listZipImages(archivePath string) ([]string, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var uris []string
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isSupportedExt(f.Name) {
			uris = append(uris, archivePath+":"+f.Name)
		}
	}
	sort.Strings(uris)
	return uris, nil
}

func listRarImages(archivePath string) ([]string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	var uris []string
	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if !header.IsDir && isSupportedExt(header.Name) {
			uris = append(uris, archivePath+":"+header.Name)
		}
	}
	sort.Strings(uris)
	return uris, nil
}

func list7zImages(archivePath string) ([]string, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var uris []string
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isSupportedExt(f.Name) {
			uris = append(uris, archivePath+":"+f.Name)
		}
	}
	sort.Strings(uris)
	return uris, nil
}
