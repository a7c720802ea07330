package persistence

import "errors"

// ErrNoScore is returned by Load when nothing has been stored yet
var ErrNoScore = errors.New("no high score stored")

// Storage defines the interface for high-score persistence
type Storage interface {
	LoadHighScore() (int, error)
	SaveHighScore(score int) error
	Close() error
}

// Open picks a backend: PostgreSQL when databaseURL is set, the JSON file
// when filePath is set, otherwise an in-memory store.
func Open(databaseURL, filePath string) (Storage, error) {
	switch {
	case databaseURL != "":
		return NewPostgresStore(databaseURL)
	case filePath != "":
		return NewJSONStore(filePath)
	}
	return NewMemoryStore(), nil
}

// MemoryStore keeps the score for the life of the process
type MemoryStore struct {
	score int
	set   bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) LoadHighScore() (int, error) {
	if !m.set {
		return 0, ErrNoScore
	}
	return m.score, nil
}

func (m *MemoryStore) SaveHighScore(score int) error {
	m.score, m.set = score, true
	return nil
}

func (m *MemoryStore) Close() error { return nil }
