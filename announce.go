package main

import "fmt"

// Announcer receives human-readable strings when the gallery opens and when
// the committed index changes, for screen readers or their stand-ins.
type Announcer interface {
	Announce(message string)
}

// NullAnnouncer discards announcements.
type NullAnnouncer struct{}

func (NullAnnouncer) Announce(string) {}

// OverlayAnnouncer surfaces announcements through the expiring overlay
// message and the debug log. show is the overlay callback.
type OverlayAnnouncer struct {
	show func(message string)
}

func NewOverlayAnnouncer(show func(string)) *OverlayAnnouncer {
	return &OverlayAnnouncer{show: show}
}

func (a *OverlayAnnouncer) Announce(message string) {
	debugLog("announce: %s", message)
	if a.show != nil {
		a.show(message)
	}
}

// galleryAnnouncement formats the position string read out on open and on
// every index commit, e.g. "Image 2 of 5: kitchen".
func galleryAnnouncement(index, total int, caption string) string {
	if total == 0 {
		return "No images"
	}
	msg := fmt.Sprintf("Image %d of %d", index+1, total)
	if caption != "" {
		msg += ": " + caption
	}
	return msg
}
