// Package chatstore keeps booking chat threads in a BoltDB tree.
//
// Layout: bucket "chats" holds one nested bucket per booking id, keyed by
// message id with the JSON message as value. That mirrors the path
// chats/{booking_id}/{message_id} used by the clients.
package chatstore

import (
	"encoding/json"
	"errors"
	"sort"
	"time"

	bolt "github.com/boltdb/bolt"

	"github.com/you/agrigo/services/marketplace-api/internal/domain"
)

const rootBucket = "chats"

type BoltStore struct {
	db *bolt.DB
}

// Open opens (or creates) the chat file at path.
func Open(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(rootBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Append writes m under its booking thread, creating the thread on first use.
func (s *BoltStore) Append(m *domain.ChatMessage) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		thread, err := tx.Bucket([]byte(rootBucket)).CreateBucketIfNotExists([]byte(m.BookingID))
		if err != nil {
			return err
		}
		return thread.Put([]byte(m.ID), data)
	})
}

// List reads the whole thread once, oldest first. An unknown booking yields
// an empty slice.
func (s *BoltStore) List(bookingID string) ([]domain.ChatMessage, error) {
	items := []domain.ChatMessage{}
	err := s.db.View(func(tx *bolt.Tx) error {
		thread := tx.Bucket([]byte(rootBucket)).Bucket([]byte(bookingID))
		if thread == nil {
			return nil
		}
		return thread.ForEach(func(_, v []byte) error {
			var m domain.ChatMessage
			if err := json.Unmarshal(v, &m); err != nil {
				return err
			}
			items = append(items, m)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Timestamp.Equal(items[j].Timestamp) {
			return items[i].Timestamp.Before(items[j].Timestamp)
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

// MarkRead flags the given messages read and returns how many it touched.
// Ids not present in the thread are skipped.
func (s *BoltStore) MarkRead(bookingID string, ids []string) (int, error) {
	n := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		thread := tx.Bucket([]byte(rootBucket)).Bucket([]byte(bookingID))
		if thread == nil {
			return nil
		}
		for _, id := range ids {
			v := thread.Get([]byte(id))
			if v == nil {
				continue
			}
			var m domain.ChatMessage
			if err := json.Unmarshal(v, &m); err != nil {
				return err
			}
			if m.Read {
				continue
			}
			m.Read = true
			data, err := json.Marshal(m)
			if err != nil {
				return err
			}
			if err := thread.Put([]byte(id), data); err != nil {
				return err
			}
			n++
		}
		return nil
	})
	return n, err
}

// DeleteThread drops every message of a booking. Missing threads are not an error.
func (s *BoltStore) DeleteThread(bookingID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		err := tx.Bucket([]byte(rootBucket)).DeleteBucket([]byte(bookingID))
		if errors.Is(err, bolt.ErrBucketNotFound) {
			return nil
		}
		return err
	})
}
