package main

import (
	"testing"
)

func TestIsImageDocument(t *testing.T) {
	tests := []struct {
		name     string
		doc      Document
		expected bool
	}{
		{"jpeg content type", Document{URL: "plan.pdf", ContentType: "image/jpeg"}, true},
		{"pdf content type", Document{URL: "photo.jpg", ContentType: "application/pdf"}, false},
		{"jpg extension", Document{URL: "/projects/kitchen/01.jpg"}, true},
		{"uppercase extension", Document{URL: "/projects/kitchen/01.JPG"}, true},
		{"webp extension", Document{URL: "before.webp"}, true},
		{"pdf extension", Document{URL: "floorplan.pdf"}, false},
		{"no extension", Document{URL: "/projects/kitchen/raw"}, false},
		{"archive entry image", Document{URL: "album.zip:kitchen/01.jpg"}, true},
		{"archive entry non-image", Document{URL: "album.zip:notes.txt"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isImageDocument(tt.doc); got != tt.expected {
				t.Errorf("isImageDocument(%+v) = %v, want %v", tt.doc, got, tt.expected)
			}
		})
	}
}

func TestConvertDocumentsToPictures(t *testing.T) {
	docs := []Document{
		{ID: "d1", URL: "floorplan.pdf", ContentType: "application/pdf", SortOrder: 0},
		{ID: "d2", URL: "kitchen/01.jpg", Caption: "before", SortOrder: 2},
		{ID: "d3", URL: "", ContentType: "image/jpeg", SortOrder: 1},
		{ID: "d4", URL: "kitchen/02.jpg", Caption: "after", SortOrder: 1},
		{ID: "d5", URL: "kitchen/01.jpg", Caption: "duplicate", SortOrder: 0},
	}

	pics := ConvertDocumentsToPictures(docs)

	if len(pics) != 2 {
		t.Fatalf("got %d pictures, want 2 (PDF, empty URL, duplicate dropped): %+v", len(pics), pics)
	}
	// Ordered by sort key, and the duplicate URL kept its first occurrence
	if pics[0].ID != "d4" || pics[0].Description != "after" {
		t.Errorf("pics[0] = %+v, want d4", pics[0])
	}
	if pics[1].ID != "d2" || pics[1].URI != "kitchen/01.jpg" {
		t.Errorf("pics[1] = %+v, want d2", pics[1])
	}
}

func TestConvertDocumentsToPicturesSingleImage(t *testing.T) {
	// A project whose only media is one photo plus a plan yields one picture
	docs := []Document{
		{ID: "plan", URL: "plan.pdf"},
		{ID: "photo", URL: "deck/done.jpeg", Caption: "finished deck"},
	}

	pics := ConvertDocumentsToPictures(docs)
	if len(pics) != 1 {
		t.Fatalf("got %d pictures, want 1", len(pics))
	}
	if pics[0].URI != "deck/done.jpeg" {
		t.Errorf("URI = %q, want the photo URL", pics[0].URI)
	}
}

func TestConvertDocumentsToPicturesEmpty(t *testing.T) {
	if pics := ConvertDocumentsToPictures(nil); len(pics) != 0 {
		t.Errorf("nil docs produced %d pictures", len(pics))
	}
	docs := []Document{{ID: "d1", URL: "notes.txt"}}
	if pics := ConvertDocumentsToPictures(docs); len(pics) != 0 {
		t.Errorf("non-image docs produced %d pictures", len(pics))
	}
}

func TestConvertDocumentsToPicturesStableTies(t *testing.T) {
	docs := []Document{
		{ID: "a", URL: "1.png", SortOrder: 5},
		{ID: "b", URL: "2.png", SortOrder: 5},
		{ID: "c", URL: "3.png", SortOrder: 5},
	}
	pics := ConvertDocumentsToPictures(docs)
	if pics[0].ID != "a" || pics[1].ID != "b" || pics[2].ID != "c" {
		t.Errorf("equal sort keys must keep input order, got %+v", pics)
	}
}

func TestSplitArchiveURI(t *testing.T) {
	tests := []struct {
		name        string
		uri         string
		wantArchive string
		wantEntry   string
		wantOK      bool
	}{
		{"zip entry", "album.zip:kitchen/01.jpg", "album.zip", "kitchen/01.jpg", true},
		{"rar entry", "photos.rar:a.png", "photos.rar", "a.png", true},
		{"7z with path", "/media/set.7z:deep/b.webp", "/media/set.7z", "deep/b.webp", true},
		{"plain path", "/media/photo.jpg", "", "", false},
		{"windows drive letter", `C:\photos\a.jpg`, "", "", false},
		{"windows drive archive", `C:\photos\set.zip:a.jpg`, `C:\photos\set.zip`, "a.jpg", true},
		{"no separator", "album.zip", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			archive, entry, ok := splitArchiveURI(tt.uri)
			if archive != tt.wantArchive || entry != tt.wantEntry || ok != tt.wantOK {
				t.Errorf("splitArchiveURI(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.uri, archive, entry, ok, tt.wantArchive, tt.wantEntry, tt.wantOK)
			}
		})
	}
}
