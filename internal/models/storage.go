package models

import json "github.com/goccy/go-json"

const StorageVersion = 1

// Storage is the on-disk snapshot of the durable slot store.
type Storage struct {
	Version int                        `json:"version"`
	Slots   map[string]json.RawMessage `json:"slots"`
}
