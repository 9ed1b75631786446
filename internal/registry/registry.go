package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	patternerrors "github.com/platformeng/patternctl/pkg/errors"
)

// Registry manages the submission registry persistence
type Registry struct {
	path        string
	mu          sync.RWMutex
	version     string
	submissions []Submission
}

// NewRegistry creates a new Registry instance and loads it from disk
func NewRegistry(path string) (*Registry, error) {
	r := &Registry{
		path:    path,
		version: "1.0",
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create registry directory: %w", err)
	}

	// Load existing registry or start with an empty one
	if err := r.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		r.submissions = []Submission{}
	}

	return r, nil
}

// Load reads the registry from disk
func (r *Registry) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		return err
	}

	var file RegistryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse registry: %w", err)
	}

	r.version = file.Version
	r.submissions = file.Submissions

	return nil
}

// Save writes the registry to disk atomically
func (r *Registry) Save() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	file := RegistryFile{
		Version:     r.version,
		Submissions: r.submissions,
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}

	// Write to temporary file first, then rename over the target so a
	// crash never leaves a torn registry.
	tmpPath := r.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, r.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

// List returns all registered submissions in registration order
func (r *Registry) List() []Submission {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Submission, len(r.submissions))
	copy(result, r.submissions)
	return result
}

// Get retrieves a submission by ID
func (r *Registry) Get(id string) (Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.submissions {
		if s.ID == id {
			return s, nil
		}
	}

	return Submission{}, patternerrors.NewNotFoundError("submission", id)
}

// Add adds a new submission to the registry
func (r *Registry) Add(s Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.submissions {
		if existing.ID == s.ID {
			return fmt.Errorf("submission with ID %s already exists", s.ID)
		}
	}

	r.submissions = append(r.submissions, s)
	return nil
}

// Update updates an existing submission
func (r *Registry) Update(s Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.submissions {
		if existing.ID == s.ID {
			r.submissions[i] = s
			return nil
		}
	}

	return patternerrors.NewNotFoundError("submission", s.ID)
}

// Remove removes a submission from the registry
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.submissions {
		if s.ID == id {
			r.submissions = append(r.submissions[:i], r.submissions[i+1:]...)
			return nil
		}
	}

	return patternerrors.NewNotFoundError("submission", id)
}
