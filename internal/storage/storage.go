// Package storage provides the durable local key->document store used
// by the cart and the order ledger. Each key maps to one JSON document.
package storage

import "errors"

// ErrNotExist is returned by Read when no document exists for the key.
// Callers treat it (and corrupt documents) as "empty", never as fatal.
var ErrNotExist = errors.New("storage: key does not exist")

// Store reads and writes JSON documents by key.
type Store interface {
	// Read unmarshals the document stored under key into v.
	Read(key string, v any) error
	// Write marshals v and replaces the document stored under key.
	Write(key string, v any) error
}
