package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	// Packages
	weatherdeck "github.com/mutablelogic/go-weatherdeck"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	jsonExt              = ".json"
	DirPerm  os.FileMode = 0o700 // Directory permission for store directories
	FilePerm os.FileMode = 0o600 // File permission for store files
)

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS - FILE UTILITIES

// ensureDir validates that dir is non-empty and creates it if needed.
func ensureDir(dir string) error {
	if dir == "" {
		return weatherdeck.ErrBadParameter.With("directory is required")
	}
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return weatherdeck.ErrInternalServerError.Withf("mkdir: %v", err)
	}
	return nil
}

// writeJSON serialises v to a temporary file and renames it over path.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return weatherdeck.ErrInternalServerError.Withf("marshal: %v", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, FilePerm); err != nil {
		return weatherdeck.ErrInternalServerError.Withf("write: %v", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return weatherdeck.ErrInternalServerError.Withf("rename: %v", err)
	}
	return nil
}

// readJSON deserialises a JSON file into v. A missing file leaves v
// unchanged and is not an error.
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return weatherdeck.ErrInternalServerError.Withf("read: %v", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return weatherdeck.ErrInternalServerError.Withf("unmarshal: %v", err)
	}
	return nil
}

// jsonPath returns the file path for an ID in the given directory.
func jsonPath(dir, id string) string {
	return filepath.Join(dir, id+jsonExt)
}
