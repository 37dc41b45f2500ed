// Package storage persists profile documents in an embedded pebble database.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
	"github.com/ssargent/caresave/pkg/profile"
)

const (
	profilePrefix = "profile:"
	// first key past every profile key (';' follows ':')
	profileUpper = "profile;"
)

// Errors
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidID       = errors.New("invalid account id")
)

// ProfileStore is a pebble-backed document store keyed by account id
type ProfileStore struct {
	db *pebble.DB
}

// NewProfileStore opens (or creates) the store at path
func NewProfileStore(path string) (*ProfileStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open profile store: %w", err)
	}
	return &ProfileStore{db: db}, nil
}

func profileKey(accountID string) []byte {
	return []byte(profilePrefix + accountID)
}

func validID(accountID string) error {
	if accountID == "" || strings.ContainsAny(accountID, "\x00/") {
		return fmt.Errorf("%w: %q", ErrInvalidID, accountID)
	}
	return nil
}

// Create stores the fallback document for a new user under a fresh ksuid
// account id and returns it.
func (s *ProfileStore) Create(doc *profile.Document) (*profile.Document, error) {
	id := ksuid.New()
	doc.UID = id.String()
	if err := s.Put(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Get loads the document for accountID
func (s *ProfileStore) Get(accountID string) (*profile.Document, error) {
	if err := validID(accountID); err != nil {
		return nil, err
	}

	data, closer, err := s.db.Get(profileKey(accountID))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, accountID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", accountID, err)
	}
	defer closer.Close()

	var doc profile.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", accountID, err)
	}
	return &doc, nil
}

// Put writes doc under its UID, replacing any existing document
func (s *ProfileStore) Put(doc *profile.Document) error {
	if err := validID(doc.UID); err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal profile %s: %w", doc.UID, err)
	}
	if err := s.db.Set(profileKey(doc.UID), data, pebble.Sync); err != nil {
		return fmt.Errorf("failed to write profile %s: %w", doc.UID, err)
	}
	return nil
}

// Delete removes the document for accountID
func (s *ProfileStore) Delete(accountID string) error {
	if err := validID(accountID); err != nil {
		return err
	}
	if _, err := s.Get(accountID); err != nil {
		return err
	}
	if err := s.db.Delete(profileKey(accountID), pebble.Sync); err != nil {
		return fmt.Errorf("failed to delete profile %s: %w", accountID, err)
	}
	return nil
}

// List returns the stored account ids in key order
func (s *ProfileStore) List() ([]string, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(profilePrefix),
		UpperBound: []byte(profileUpper),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer iter.Close()

	var ids []string
	for iter.First(); iter.Valid(); iter.Next() {
		ids = append(ids, strings.TrimPrefix(string(iter.Key()), profilePrefix))
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return ids, nil
}

// Close closes the underlying database
func (s *ProfileStore) Close() error {
	return s.db.Close()
}
