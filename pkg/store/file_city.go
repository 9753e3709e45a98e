package store

import (
	"context"
	"sync"

	// Packages
	uuid "github.com/google/uuid"
	weatherdeck "github.com/mutablelogic/go-weatherdeck"
	schema "github.com/mutablelogic/go-weatherdeck/pkg/schema"
	lo "github.com/samber/lo"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// FileCityStore is a file-backed implementation of CityStore.
// Each user's cities are stored as one JSON document in a directory,
// named by a hash of the user identifier. It is safe for concurrent use.
type FileCityStore struct {
	mu  sync.RWMutex
	dir string
}

// userDocument is the JSON document holding one user's cities
type userDocument struct {
	User   string         `json:"userId"`
	Cities []*schema.City `json:"cities"`
}

var _ schema.CityStore = (*FileCityStore)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewFileCityStore creates a new file-backed city store in the given directory.
// The directory is created if it does not exist.
func NewFileCityStore(dir string) (*FileCityStore, error) {
	if err := ensureDir(dir); err != nil {
		return nil, err
	}
	return &FileCityStore{dir: dir}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// CreateCity saves a new city for the user.
func (f *FileCityStore) CreateCity(_ context.Context, user string, meta schema.CityMeta) (*schema.City, error) {
	city, err := newCity(user, meta)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read(city.User)
	if err != nil {
		return nil, err
	}
	if err := checkConflict(doc.Cities, city); err != nil {
		return nil, err
	}
	doc.Cities = append(doc.Cities, city)
	if err := f.write(doc); err != nil {
		return nil, err
	}

	return city, nil
}

// ListCities returns the user's cities, oldest first.
func (f *FileCityStore) ListCities(_ context.Context, user string) ([]*schema.City, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	doc, err := f.read(user)
	if err != nil {
		return nil, err
	}
	sortCities(doc.Cities)
	return doc.Cities, nil
}

// GetCity returns one of the user's cities.
func (f *FileCityStore) GetCity(_ context.Context, user, id string) (*schema.City, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	doc, err := f.read(user)
	if err != nil {
		return nil, err
	}
	city, ok := lo.Find(doc.Cities, func(c *schema.City) bool {
		return c.ID == id
	})
	if !ok {
		return nil, weatherdeck.ErrNotFound.Withf("city %q", id)
	}
	return city, nil
}

// DeleteCity removes one of the user's cities and returns it.
func (f *FileCityStore) DeleteCity(_ context.Context, user, id string) (*schema.City, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read(user)
	if err != nil {
		return nil, err
	}
	city, index, ok := lo.FindIndexOf(doc.Cities, func(c *schema.City) bool {
		return c.ID == id
	})
	if !ok {
		return nil, weatherdeck.ErrNotFound.Withf("city %q", id)
	}
	doc.Cities = append(doc.Cities[:index], doc.Cities[index+1:]...)
	if err := f.write(doc); err != nil {
		return nil, err
	}
	return city, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// path returns the document path for a user. User identifiers come from a
// request header, so they are hashed rather than used as file names.
func (f *FileCityStore) path(user string) string {
	return jsonPath(f.dir, uuid.NewSHA1(uuid.NameSpaceURL, []byte(user)).String())
}

func (f *FileCityStore) read(user string) (*userDocument, error) {
	doc := &userDocument{User: user}
	if err := readJSON(f.path(user), doc); err != nil {
		return nil, err
	}
	if doc.Cities == nil {
		doc.Cities = make([]*schema.City, 0)
	}
	return doc, nil
}

func (f *FileCityStore) write(doc *userDocument) error {
	return writeJSON(f.path(doc.User), doc)
}
