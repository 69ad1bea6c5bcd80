package storage

import "encoding/json"

// MemoryStore is an in-memory Store used in tests and as a fallback
// when no data directory is configured.
type MemoryStore struct {
	docs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (s *MemoryStore) Read(key string, v any) error {
	data, ok := s.docs[key]
	if !ok {
		return ErrNotExist
	}
	return json.Unmarshal(data, v)
}

func (s *MemoryStore) Write(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.docs[key] = data
	return nil
}
