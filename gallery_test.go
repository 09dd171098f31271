package main

import (
	"fmt"
	"testing"
	"time"
)

// recordingAnnouncer captures announcements in order.
type recordingAnnouncer struct {
	messages []string
}

func (a *recordingAnnouncer) Announce(msg string) {
	a.messages = append(a.messages, msg)
}

func galleryProject(n int) Project {
	p := Project{ID: "p1", Title: "Maple Street Kitchen"}
	for i := 0; i < n; i++ {
		p.Documents = append(p.Documents, Document{
			ID:        fmt.Sprintf("d%d", i),
			URL:       fmt.Sprintf("kitchen/%02d.jpg", i+1),
			SortOrder: i,
		})
	}
	return p
}

func newTestSession(t *testing.T, project Project, initialIndex int, announcer Announcer) *GallerySession {
	t.Helper()
	cfg := GalleryConfig{VisibleRadius: 1, PreloadRadius: 2}
	s := NewGallerySession(project, initialIndex, 400,
		cfg, defaultGestureConfig(), newStubFetcher(), testCache(t), NullHaptics{}, announcer)
	t.Cleanup(s.Close)
	return s
}

func TestGallerySessionEmptyProject(t *testing.T) {
	announcer := &recordingAnnouncer{}
	s := newTestSession(t, Project{ID: "p1", Title: "Empty"}, 0, announcer)

	if s.Index() != 0 {
		t.Errorf("empty gallery index = %d, want 0", s.Index())
	}
	if len(s.Pictures()) != 0 {
		t.Errorf("empty gallery has %d pictures", len(s.Pictures()))
	}
	if len(announcer.messages) != 1 || announcer.messages[0] != "No images" {
		t.Errorf("announcements = %v, want [No images]", announcer.messages)
	}

	// None of the accessors may panic on an empty list
	s.Update(time.Now(), 1.0/60.0)
	s.JumpTo(3)
	if img := s.PageImage(0); img != nil {
		t.Error("PageImage on an empty gallery must be nil")
	}
	s.RetryPage(0)
}

func TestGallerySessionClampsInitialIndex(t *testing.T) {
	s := newTestSession(t, galleryProject(4), 99, nil)
	if s.Index() != 3 {
		t.Errorf("index = %d, want clamped to 3", s.Index())
	}

	s2 := newTestSession(t, galleryProject(4), -5, nil)
	if s2.Index() != 0 {
		t.Errorf("index = %d, want clamped to 0", s2.Index())
	}
}

func TestGallerySessionOpenAnnouncement(t *testing.T) {
	project := galleryProject(5)
	project.Documents[1].Caption = "demo day"
	announcer := &recordingAnnouncer{}
	newTestSession(t, project, 1, announcer)

	if len(announcer.messages) != 1 || announcer.messages[0] != "Image 2 of 5: demo day" {
		t.Errorf("announcements = %v", announcer.messages)
	}
}

func TestGallerySessionJumpTo(t *testing.T) {
	announcer := &recordingAnnouncer{}
	s := newTestSession(t, galleryProject(5), 0, announcer)

	s.JumpTo(3)
	if s.Index() != 3 {
		t.Errorf("index after JumpTo(3) = %d", s.Index())
	}
	if len(announcer.messages) != 2 || announcer.messages[1] != "Image 4 of 5" {
		t.Errorf("announcements = %v", announcer.messages)
	}

	// Out-of-range and same-index jumps are no-ops
	s.JumpTo(3)
	s.JumpTo(-1)
	s.JumpTo(5)
	if s.Index() != 3 || len(announcer.messages) != 2 {
		t.Errorf("no-op jumps changed state: index=%d messages=%v", s.Index(), announcer.messages)
	}
}

func TestGallerySessionSwipeCommit(t *testing.T) {
	announcer := &recordingAnnouncer{}
	s := newTestSession(t, galleryProject(5), 2, announcer)

	now := time.Now()
	nav := s.Navigator()
	nav.Begin(300, now)
	nav.Move(150, now.Add(200*time.Millisecond)) // 150px left on a 400px page
	nav.End(now.Add(200 * time.Millisecond))

	// The index is not official until the spring settles
	if s.Index() != 2 {
		t.Fatal("index committed before the settle finished")
	}
	for i := 0; i < 10000 && !nav.Idle(); i++ {
		s.Update(now, 1.0/60.0)
	}
	if s.Index() != 3 {
		t.Errorf("index after settle = %d, want 3", s.Index())
	}
	last := announcer.messages[len(announcer.messages)-1]
	if last != "Image 4 of 5" {
		t.Errorf("last announcement = %q", last)
	}
}

func TestGallerySessionSetPicturesReclamps(t *testing.T) {
	s := newTestSession(t, galleryProject(5), 4, nil)

	s.SetPictures(ConvertDocumentsToPictures(galleryProject(2).Documents))
	if s.Index() != 1 {
		t.Errorf("index after shrink = %d, want 1", s.Index())
	}

	s.SetPictures(nil)
	if s.Index() != 0 {
		t.Errorf("index after emptying = %d, want 0", s.Index())
	}
}

func TestGallerySessionPreloadsWindow(t *testing.T) {
	fetcher := newStubFetcher()
	cfg := GalleryConfig{VisibleRadius: 1, PreloadRadius: 2}
	s := NewGallerySession(galleryProject(10), 5, 400,
		cfg, defaultGestureConfig(), fetcher, testCache(t), NullHaptics{}, nil)
	defer s.Close()

	// Preloads dispatch for the load window around index 5 and nothing else
	deadline := time.Now().Add(5 * time.Second)
	for s.preloader.Stats().LoadingCount > 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	pics := s.Pictures()
	for idx := 3; idx <= 7; idx++ {
		if fetcher.callCount(pics[idx].URI) != 1 {
			t.Errorf("picture %d not preloaded", idx)
		}
	}
	if fetcher.callCount(pics[0].URI) != 0 || fetcher.callCount(pics[9].URI) != 0 {
		t.Error("pictures outside the load window must not be fetched")
	}
}
