// Package store persists encoded virtual display payloads keyed by display name.
package store

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/fiffeek/hyprvirtualdisplays/internal/errs"
	"github.com/fiffeek/hyprvirtualdisplays/internal/virtualdisplay"
	"github.com/sirupsen/logrus"
)

var keyPrefix = []byte("display/")

type Store struct {
	db    *pebble.DB
	codec *virtualdisplay.Codec
}

type Entry struct {
	Name    string
	Payload []byte
}

func Open(path string, codec *virtualdisplay.Codec) (*Store, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("cant open store at %s: %w", path, err)
	}
	logrus.WithField("path", path).Debug("Opened payload store")
	return &Store{db: db, codec: codec}, nil
}

// Put encodes cfg and stores it under its name, replacing any previous payload.
func (s *Store) Put(cfg *virtualdisplay.VirtualDisplayConfig) ([]byte, error) {
	payload, err := s.codec.Encode(cfg)
	if err != nil {
		return nil, fmt.Errorf("cant encode %s: %w", cfg.Name(), err)
	}
	if err := s.PutRaw(cfg.Name(), payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// PutRaw stores an already encoded payload under name. The payload must
// decode with the store codec.
func (s *Store) PutRaw(name string, payload []byte) error {
	cfg, err := s.codec.Decode(payload)
	if err != nil {
		return fmt.Errorf("refusing to store %s: %w", name, err)
	}
	if cfg.Name() != name {
		return fmt.Errorf("refusing to store payload of %s under %s", cfg.Name(), name)
	}
	if err := s.db.Set(key(name), payload, pebble.Sync); err != nil {
		return fmt.Errorf("cant store %s: %w", name, err)
	}
	return nil
}

// Get decodes the payload stored under name.
func (s *Store) Get(name string) (*virtualdisplay.VirtualDisplayConfig, error) {
	payload, err := s.GetRaw(name)
	if err != nil {
		return nil, err
	}
	cfg, err := s.codec.Decode(payload)
	if err != nil {
		return nil, fmt.Errorf("stored payload for %s is corrupted: %w", name, err)
	}
	return cfg, nil
}

func (s *Store) GetRaw(name string) ([]byte, error) {
	data, closer, err := s.db.Get(key(name))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, fmt.Errorf("display %s: %w", name, errs.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("cant read %s: %w", name, err)
	}
	defer func() {
		if err := closer.Close(); err != nil {
			logrus.WithError(err).Debug("Failed to release store value")
		}
	}()

	payload := make([]byte, len(data))
	copy(payload, data)
	return payload, nil
}

// List returns every stored payload ordered by display name.
func (s *Store) List() ([]Entry, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: keyPrefix,
		UpperBound: upperBound(keyPrefix),
	})
	if err != nil {
		return nil, fmt.Errorf("cant iterate store: %w", err)
	}

	entries := []Entry{}
	for iter.First(); iter.Valid(); iter.Next() {
		payload := make([]byte, len(iter.Value()))
		copy(payload, iter.Value())
		entries = append(entries, Entry{
			Name:    string(iter.Key()[len(keyPrefix):]),
			Payload: payload,
		})
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("cant close store iterator: %w", err)
	}
	return entries, nil
}

func (s *Store) Delete(name string) error {
	if _, err := s.GetRaw(name); err != nil {
		return err
	}
	if err := s.db.Delete(key(name), pebble.Sync); err != nil {
		return fmt.Errorf("cant delete %s: %w", name, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func key(name string) []byte {
	return append(append([]byte{}, keyPrefix...), name...)
}

func upperBound(prefix []byte) []byte {
	end := append([]byte{}, prefix...)
	end[len(end)-1]++
	return end
}
