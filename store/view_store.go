package store

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gopkg.in/yaml.v3"

	"github.com/boolean-maybe/filterline/query"
)

var (
	// ErrViewNotFound indicates a saved view id or name that does not exist
	ErrViewNotFound = errors.New("saved view not found")

	// ErrViewName indicates an empty saved view name
	ErrViewName = errors.New("saved view name is empty")
)

// SavedView is a named list of committed filters
type SavedView struct {
	ID        string             `yaml:"id"`
	Name      string             `yaml:"name"`
	Filters   []query.Descriptor `yaml:"filters"`
	UpdatedAt time.Time          `yaml:"updated_at,omitempty"`
}

type viewsFile struct {
	Views []SavedView `yaml:"views"`
}

// ViewStore persists saved views in a YAML file
type ViewStore struct {
	mu    sync.RWMutex
	path  string
	views []SavedView
	ls    listenerSet
	now   func() time.Time
}

// LoadViews opens the saved views file; a missing file is an empty store
func LoadViews(path string) (*ViewStore, error) {
	s := &ViewStore{path: path, ls: newListenerSet(), now: time.Now}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("no saved views file", "path", path)
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading saved views: %w", err)
	}

	var file viewsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("saved views %s: parsing yaml: %w", path, err)
	}
	s.views = file.Views
	slog.Info("saved views loaded", "path", path, "num_views", len(s.views))
	return s, nil
}

// AddListener registers a callback for change notifications
func (s *ViewStore) AddListener(listener ChangeListener) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ls.add(listener)
}

// RemoveListener removes a previously registered listener by ID
func (s *ViewStore) RemoveListener(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ls.remove(id)
}

func (s *ViewStore) notifyListeners() {
	s.mu.RLock()
	listeners := s.ls.snapshot()
	s.mu.RUnlock()
	for _, l := range listeners {
		l()
	}
}

// List returns all saved views in file order
func (s *ViewStore) List() []SavedView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]SavedView(nil), s.views...)
}

// Get returns a saved view by id
func (s *ViewStore) Get(id string) (SavedView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.views[i], nil
	}
	return SavedView{}, fmt.Errorf("%w: %s", ErrViewNotFound, id)
}

// Find returns a saved view by id or case-insensitive name
func (s *ViewStore) Find(idOrName string) (SavedView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(idOrName); i >= 0 {
		return s.views[i], nil
	}
	for _, v := range s.views {
		if strings.EqualFold(v.Name, idOrName) {
			return v, nil
		}
	}
	return SavedView{}, fmt.Errorf("%w: %s", ErrViewNotFound, idOrName)
}

// Save stores filters under name. An existing view with the same name is overwritten.
func (s *ViewStore) Save(name string, filters []query.Descriptor) (SavedView, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SavedView{}, ErrViewName
	}

	s.mu.Lock()
	view := SavedView{Name: name, Filters: filters, UpdatedAt: s.now().UTC()}
	replaced := false
	for i, v := range s.views {
		if strings.EqualFold(v.Name, name) {
			view.ID = v.ID
			s.views[i] = view
			replaced = true
			break
		}
	}
	if !replaced {
		id, err := gonanoid.New(10)
		if err != nil {
			s.mu.Unlock()
			return SavedView{}, fmt.Errorf("generating view id: %w", err)
		}
		view.ID = id
		s.views = append(s.views, view)
	}
	err := s.persistLocked()
	s.mu.Unlock()
	if err != nil {
		return SavedView{}, err
	}

	slog.Info("saved view stored", "id", view.ID, "name", name, "num_filters", len(filters), "replaced", replaced)
	s.notifyListeners()
	return view, nil
}

// Update replaces the filters of an existing view
func (s *ViewStore) Update(id string, filters []query.Descriptor) (SavedView, error) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return SavedView{}, fmt.Errorf("%w: %s", ErrViewNotFound, id)
	}
	s.views[i].Filters = filters
	s.views[i].UpdatedAt = s.now().UTC()
	view := s.views[i]
	err := s.persistLocked()
	s.mu.Unlock()
	if err != nil {
		return SavedView{}, err
	}

	s.notifyListeners()
	return view, nil
}

// Delete removes a saved view by id
func (s *ViewStore) Delete(id string) error {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrViewNotFound, id)
	}
	s.views = append(s.views[:i], s.views[i+1:]...)
	err := s.persistLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}

	slog.Info("saved view deleted", "id", id)
	s.notifyListeners()
	return nil
}

func (s *ViewStore) indexLocked(id string) int {
	for i, v := range s.views {
		if v.ID == id {
			return i
		}
	}
	return -1
}

// persistLocked writes the file through a temp file and rename.
// Caller must hold s.mu lock.
func (s *ViewStore) persistLocked() error {
	data, err := yaml.Marshal(viewsFile{Views: s.views})
	if err != nil {
		return fmt.Errorf("marshaling saved views: %w", err)
	}

	//nolint:gosec // G301: 0755 is appropriate for the data directory
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	tmp := s.path + ".tmp"
	//nolint:gosec // G306: 0644 is appropriate for saved views
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing saved views: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing saved views: %w", err)
	}
	return nil
}
