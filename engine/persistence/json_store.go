package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// JSONStore keeps the high score in a local JSON file
type JSONStore struct {
	filePath string
	mutex    sync.RWMutex
	data     *JSONData
}

// JSONData represents the structure of the JSON file
type JSONData struct {
	HighScore int       `json:"high_score"`
	Set       bool      `json:"set"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// NewJSONStore opens filePath, creating it if it does not exist
func NewJSONStore(filePath string) (*JSONStore, error) {
	store := &JSONStore{
		filePath: filePath,
		data:     &JSONData{},
	}

	if _, err := os.Stat(filePath); err == nil {
		if err := store.loadFromFile(); err != nil {
			return nil, fmt.Errorf("failed to load JSON store: %w", err)
		}
	} else {
		if err := store.saveToFile(); err != nil {
			return nil, fmt.Errorf("failed to create JSON store file: %w", err)
		}
	}

	return store, nil
}

func (js *JSONStore) loadFromFile() error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	file, err := os.ReadFile(js.filePath)
	if err != nil {
		return err
	}

	return json.Unmarshal(file, js.data)
}

func (js *JSONStore) saveToFile() error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	data, err := json.MarshalIndent(js.data, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(js.filePath, data, 0644)
}

// LoadHighScore returns the stored score
func (js *JSONStore) LoadHighScore() (int, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	if !js.data.Set {
		return 0, ErrNoScore
	}
	return js.data.HighScore, nil
}

// SaveHighScore writes score to disk
func (js *JSONStore) SaveHighScore(score int) error {
	js.mutex.Lock()
	js.data.HighScore = score
	js.data.Set = true
	js.data.UpdatedAt = time.Now().UTC()
	js.mutex.Unlock()

	if err := js.saveToFile(); err != nil {
		return fmt.Errorf("failed to save high score: %w", err)
	}
	return nil
}

// Close closes the store (no-op for JSON store)
func (js *JSONStore) Close() error {
	return nil
}
