// Package persist keeps small player statistics between runs.
package persist

import (
	"encoding/json"
	"log"

	"github.com/quasilyte/gdata"
)

const statsItem = "stats"

// Stats is stored as a single JSON item.
type Stats struct {
	Deaths    int    `json:"deaths"`
	Runs      int    `json:"runs"`
	LastLevel string `json:"lastLevel,omitempty"`
}

// ItemStore is the subset of *gdata.Manager used here.
type ItemStore interface {
	LoadItem(itemKey string) ([]byte, error)
	SaveItem(itemKey string, data []byte) error
}

// Store holds the current stats. With a nil backing store it works in memory
// only; that is the degraded mode used when storage cannot be opened.
type Store struct {
	items ItemStore
	stats Stats
}

// Open loads stats for appName from the platform data directory. It never
// fails; storage problems are logged and the store stays in memory.
func Open(appName string) *Store {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		log.Printf("persist: could not open storage: %v", err)
		return NewStore(nil)
	}
	return NewStore(m)
}

// NewStore wraps items and loads any saved stats.
func NewStore(items ItemStore) *Store {
	s := &Store{items: items}
	if items == nil {
		return s
	}

	data, err := items.LoadItem(statsItem)
	if err != nil {
		log.Printf("persist: could not load stats: %v", err)
		return s
	}
	if len(data) == 0 {
		return s
	}
	if err := json.Unmarshal(data, &s.stats); err != nil {
		log.Printf("persist: could not parse saved stats: %v", err)
		s.stats = Stats{}
	}
	return s
}

func (s *Store) Stats() Stats {
	return s.stats
}

// StartRun records that levelName is being played.
func (s *Store) StartRun(levelName string) {
	s.stats.Runs++
	s.stats.LastLevel = levelName
	_ = s.Save()
}

func (s *Store) RecordDeath() {
	s.stats.Deaths++
	_ = s.Save()
}

func (s *Store) Save() error {
	if s.items == nil {
		return nil
	}
	data, err := json.Marshal(s.stats)
	if err != nil {
		log.Printf("persist: could not serialize stats: %v", err)
		return err
	}
	if err := s.items.SaveItem(statsItem, data); err != nil {
		log.Printf("persist: could not save stats: %v", err)
		return err
	}
	return nil
}
