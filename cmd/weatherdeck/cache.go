package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Cache is a persistent key-value store backed by a JSON file on disk.
// Values are stored as JSON and decoded into the caller's type.
type Cache struct {
	mu   sync.RWMutex
	path string
	data map[string]json.RawMessage
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewCache creates a cache at the given file path. If the file exists its
// contents are loaded, otherwise the cache starts empty.
func NewCache(path string) (*Cache, error) {
	c := &Cache{
		path: path,
		data: make(map[string]json.RawMessage),
	}

	// Load existing file (ignore if it doesn't exist)
	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		if err := json.NewDecoder(f).Decode(&c.data); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	return c, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Get decodes the value for key into v. It returns false if the key does
// not exist.
func (c *Cache) Get(key string, v any) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	data, exists := c.data[key]
	if !exists {
		return false, nil
	}
	return true, json.Unmarshal(data, v)
}

// GetString returns the string value for key, or empty string
func (c *Cache) GetString(key string) string {
	var v string
	if ok, err := c.Get(key, &v); !ok || err != nil {
		return ""
	}
	return v
}

// Set stores a value by key and persists the cache to disk. Pass nil to
// remove a key.
func (c *Cache) Set(key string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if value == nil {
		delete(c.data, key)
	} else if data, err := json.Marshal(value); err != nil {
		return err
	} else {
		c.data[key] = data
	}
	return c.save()
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// save writes the cache to disk as indented JSON, creating parent
// directories as needed
func (c *Cache) save() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0600)
}
