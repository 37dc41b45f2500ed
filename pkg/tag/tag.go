// Package tag emulates a capacity-limited writable tag backed by a file.
package tag

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DefaultCapacity is the user memory of an NTAG 216 in bytes
const DefaultCapacity = 868

// Errors
var (
	ErrCapacityExceeded = errors.New("payload exceeds tag capacity")
	ErrEmptyTag         = errors.New("tag has never been written")
	ErrInvalidCapacity  = errors.New("tag capacity must be positive")
)

// Tag is a virtual tag whose image is stored in a file. The image is always
// exactly Capacity bytes; payloads are zero padded.
type Tag struct {
	path     string
	capacity int
	mu       sync.Mutex
}

// Open returns the tag stored at path. The file is created on first write.
func Open(path string, capacity int) (*Tag, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	return &Tag{path: path, capacity: capacity}, nil
}

// Capacity returns the tag size in bytes
func (t *Tag) Capacity() int {
	return t.capacity
}

// Path returns the backing file path
func (t *Tag) Path() string {
	return t.path
}

// Write replaces the tag contents with payload
func (t *Tag) Write(payload []byte) error {
	if len(payload) > t.capacity {
		return fmt.Errorf("%w: %d > %d bytes", ErrCapacityExceeded, len(payload), t.capacity)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(t.path), 0750); err != nil {
		return fmt.Errorf("failed to create tag directory: %w", err)
	}

	image := make([]byte, t.capacity)
	copy(image, payload)

	// rename publishes the whole image at once
	tmp := t.path + ".tmp"
	if err := os.WriteFile(tmp, image, 0600); err != nil {
		return fmt.Errorf("failed to write tag image: %w", err)
	}
	if err := os.Rename(tmp, t.path); err != nil {
		return fmt.Errorf("failed to commit tag image: %w", err)
	}
	return nil
}

// Read returns the full tag image
func (t *Tag) Read() ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	image, err := os.ReadFile(t.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrEmptyTag
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read tag image: %w", err)
	}
	if len(image) > t.capacity {
		image = image[:t.capacity]
	}
	return image, nil
}

// Erase zeroes the tag
func (t *Tag) Erase() error {
	return t.Write(nil)
}
