package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// manifest is the on-disk shape of the portfolio store.
type manifest struct {
	Projects []Project `json:"projects"`
}

// undoEntry snapshots one project before a mutation so a failed write can be
// rolled back, and the last edit undone explicitly.
type undoEntry struct {
	ID        string
	ProjectID string
	Prev      Project
	At        time.Time
}

// Store owns the portfolio manifest: the project list, edits against it, and
// persistence. Mutations are optimistic: snapshot, apply in memory, write the
// manifest, restore the snapshot if the write fails.
type Store struct {
	path string

	mu       sync.RWMutex
	projects []Project
	undo     []undoEntry

	// lastWrite is the manifest bytes most recently written by this store,
	// used to tell our own saves apart from external edits.
	lastWrite []byte
}

// maxUndoDepth bounds the undo log.
const maxUndoDepth = 32

// LoadStore reads the manifest at path. A missing file yields an empty store
// that will create the manifest on first save.
func LoadStore(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the manifest from disk, replacing the in-memory list. The
// undo log is cleared; its snapshots predate the new contents.
func (s *Store) Reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.mu.Lock()
			s.projects = nil
			s.undo = nil
			s.mu.Unlock()
			return nil
		}
		return fmt.Errorf("reading manifest %s: %w", s.path, err)
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parsing manifest %s: %w", s.path, err)
	}
	for i := range m.Projects {
		if m.Projects[i].ID == "" {
			m.Projects[i].ID = uuid.NewString()
		}
		for j := range m.Projects[i].Documents {
			if m.Projects[i].Documents[j].ID == "" {
				m.Projects[i].Documents[j].ID = uuid.NewString()
			}
		}
	}

	s.mu.Lock()
	s.projects = m.Projects
	s.undo = nil
	s.mu.Unlock()
	return nil
}

// Path returns the manifest location.
func (s *Store) Path() string { return s.path }

// Projects returns a copy of the project list.
func (s *Store) Projects() []Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// Project returns the project with the given id.
func (s *Store) Project(id string) (Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.projects {
		if p.ID == id {
			return cloneProject(p), true
		}
	}
	return Project{}, false
}

func cloneProject(p Project) Project {
	out := p
	out.Documents = make([]Document, len(p.Documents))
	copy(out.Documents, p.Documents)
	return out
}

// mutate runs the optimistic-update pattern on one project: snapshot into the
// undo log, apply, persist, roll back on write failure. An error from apply
// restores the snapshot without touching the disk or the undo log.
func (s *Store) mutate(projectID string, apply func(*Project) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.projects {
		if s.projects[i].ID == projectID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("unknown project %s", projectID)
	}

	snapshot := cloneProject(s.projects[idx])
	if err := apply(&s.projects[idx]); err != nil {
		s.projects[idx] = snapshot
		return err
	}

	if err := s.saveLocked(); err != nil {
		s.projects[idx] = snapshot
		return fmt.Errorf("saving manifest: %w", err)
	}

	s.undo = append(s.undo, undoEntry{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Prev:      snapshot,
		At:        time.Now(),
	})
	if len(s.undo) > maxUndoDepth {
		s.undo = s.undo[len(s.undo)-maxUndoDepth:]
	}
	return nil
}

// SetCaption updates a document's caption.
func (s *Store) SetCaption(projectID, documentID, caption string) error {
	return s.mutate(projectID, func(p *Project) error {
		for i := range p.Documents {
			if p.Documents[i].ID == documentID {
				p.Documents[i].Caption = caption
				return nil
			}
		}
		return fmt.Errorf("unknown document %s in project %s", documentID, projectID)
	})
}

// ToggleProjectFeatured flips a project's featured flag and returns the new
// value.
func (s *Store) ToggleProjectFeatured(projectID string) (bool, error) {
	var now bool
	err := s.mutate(projectID, func(p *Project) error {
		p.Featured = !p.Featured
		now = p.Featured
		return nil
	})
	return now, err
}

// ToggleDocumentFeatured flips a document's featured flag and returns the new
// value.
func (s *Store) ToggleDocumentFeatured(projectID, documentID string) (bool, error) {
	var now bool
	err := s.mutate(projectID, func(p *Project) error {
		for i := range p.Documents {
			if p.Documents[i].ID == documentID {
				p.Documents[i].Featured = !p.Documents[i].Featured
				now = p.Documents[i].Featured
				return nil
			}
		}
		return fmt.Errorf("unknown document %s in project %s", documentID, projectID)
	})
	if err != nil {
		return false, err
	}
	return now, nil
}

// Undo reverts the most recent successful mutation. Returns false when the
// log is empty.
func (s *Store) Undo() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.undo) == 0 {
		return false, nil
	}
	entry := s.undo[len(s.undo)-1]

	idx := -1
	for i := range s.projects {
		if s.projects[i].ID == entry.ProjectID {
			idx = i
			break
		}
	}
	if idx < 0 {
		// Project vanished (reload raced the undo); drop the entry.
		s.undo = s.undo[:len(s.undo)-1]
		return false, nil
	}

	applied := cloneProject(s.projects[idx])
	s.projects[idx] = entry.Prev
	if err := s.saveLocked(); err != nil {
		s.projects[idx] = applied
		return false, fmt.Errorf("saving manifest: %w", err)
	}
	s.undo = s.undo[:len(s.undo)-1]
	return true, nil
}

// saveLocked writes the manifest atomically (temp file + rename).
func (s *Store) saveLocked() error {
	data, err := json.MarshalIndent(manifest{Projects: s.projects}, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".folio-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return err
	}
	s.lastWrite = data
	return nil
}

// SelfWrote reports whether the manifest on disk is byte-identical to this
// store's most recent save. The watcher drain uses it to ignore change
// notifications caused by our own writes, which would otherwise wipe the undo
// log half a second after every edit.
func (s *Store) SelfWrote() bool {
	s.mu.RLock()
	last := s.lastWrite
	s.mu.RUnlock()
	if last == nil {
		return false
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return false
	}
	return bytes.Equal(data, last)
}

// Save persists the current project list.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

// ImportCSV merges projects from a CSV export into the store and saves. Rows
// are: title, category, location, year, media. The media column is a
// semicolon-separated list of image paths, archive paths, or directories to
// scan. Rows whose title matches an existing project replace its documents.
// Returns the number of projects imported.
func (s *Store) ImportCSV(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	count := 0
	line := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("reading %s: %w", path, err)
		}
		line++
		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "title") {
			continue // header row
		}
		if len(record) < 5 {
			return count, fmt.Errorf("%s line %d: want 5 columns, got %d", path, line, len(record))
		}

		year := 0
		if y := strings.TrimSpace(record[3]); y != "" {
			year, err = strconv.Atoi(y)
			if err != nil {
				return count, fmt.Errorf("%s line %d: bad year %q", path, line, record[3])
			}
		}

		docs, err := collectDocuments(strings.Split(record[4], ";"))
		if err != nil {
			return count, fmt.Errorf("%s line %d: %w", path, line, err)
		}

		project := Project{
			ID:        uuid.NewString(),
			Title:     strings.TrimSpace(record[0]),
			Category:  strings.TrimSpace(record[1]),
			Location:  strings.TrimSpace(record[2]),
			Year:      year,
			Documents: docs,
		}
		s.upsert(project)
		count++
	}

	if err := s.Save(); err != nil {
		return count, err
	}
	return count, nil
}

// upsert replaces a project with the same title or appends a new one.
func (s *Store) upsert(project Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.projects {
		if strings.EqualFold(s.projects[i].Title, project.Title) {
			project.ID = s.projects[i].ID
			project.Featured = s.projects[i].Featured
			s.projects[i] = project
			return
		}
	}
	s.projects = append(s.projects, project)
}
