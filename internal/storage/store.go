// Package storage implements the in-memory entity store backing the blog:
// identity-keyed CRUD for every entity type, the post query layer, the
// comment moderation subsystem, the settings store and stats aggregation.
//
// The store owns all entity data for the process lifetime and is discarded on
// restart. Every operation takes the store mutex, preserving the
// single-writer semantics the request handlers rely on. Reads return copies;
// callers never hold pointers into store-owned memory.
package storage

import (
	"errors"
	"sync"
	"time"

	"github.com/inkpress/core/internal/models"
)

var (
	// ErrConflict signals a uniqueness violation (slug, tag name, username
	// or email already taken).
	ErrConflict = errors.New("conflict: already exists")
	// ErrValidation signals input the store refuses outright, e.g. a status
	// value outside its enum.
	ErrValidation = errors.New("invalid input")
)

type postCategory struct {
	PostID     int
	CategoryID int
}

type postTag struct {
	PostID int
	TagID  int
}

type counters struct {
	user     int
	post     int
	category int
	tag      int
	comment  int
	adUnit   int
	setting  int
}

// Store is the in-memory entity store. One instance per process in normal
// operation; tests create their own for isolation.
type Store struct {
	mu sync.RWMutex

	users      map[int]models.User
	posts      map[int]models.Post
	categories map[int]models.Category
	tags       map[int]models.Tag
	comments   map[int]models.Comment
	adUnits    map[int]models.AdUnit
	settings   map[string]models.Setting

	postCategories []postCategory
	postTags       []postTag

	ids counters

	// now is the comment/creation clock, swappable in tests.
	now func() time.Time
}

// New creates an empty store seeded with the default site settings.
func New() *Store {
	s := &Store{
		users:      make(map[int]models.User),
		posts:      make(map[int]models.Post),
		categories: make(map[int]models.Category),
		tags:       make(map[int]models.Tag),
		comments:   make(map[int]models.Comment),
		adUnits:    make(map[int]models.AdUnit),
		settings:   make(map[string]models.Setting),
		now:        time.Now,
	}

	s.settings["site_title"] = models.Setting{
		ID: s.nextID(&s.ids.setting), Key: "site_title",
		Value: "Blogger", Group: "general",
	}
	s.settings["site_description"] = models.Setting{
		ID: s.nextID(&s.ids.setting), Key: "site_description",
		Value: "A place to share knowledge, ideas, and experiences with the world.",
		Group: "general",
	}
	return s
}

// SetClock overrides the store clock. Intended for tests.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// nextID hands out the next id for one entity kind. Counters are independent
// and start at 1. Caller must hold the write lock.
func (s *Store) nextID(counter *int) int {
	*counter++
	return *counter
}
