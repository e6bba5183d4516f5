package storage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/inkpress/core/internal/models"
)

// CreateTag describes a new tag.
type CreateTag struct {
	Name        string
	Slug        string
	Description string
}

// TagPatch is a shallow-merge partial update; nil fields are left untouched.
type TagPatch struct {
	Name        *string
	Slug        *string
	Description *string
}

// CreateTag inserts a new tag. Name and slug must both be unique; violations
// return ErrConflict.
func (s *Store) CreateTag(in CreateTag) (*models.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findTagBySlug(in.Slug) != 0 {
		return nil, fmt.Errorf("slug %q: %w", in.Slug, ErrConflict)
	}
	if s.findTagByName(in.Name) != 0 {
		return nil, fmt.Errorf("name %q: %w", in.Name, ErrConflict)
	}

	t := models.Tag{
		ID:          s.nextID(&s.ids.tag),
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
	}
	s.tags[t.ID] = t
	return &t, nil
}

// TagByID returns the tag or nil when absent.
func (s *Store) TagByID(id int) *models.Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t, ok := s.tags[id]; ok {
		return &t
	}
	return nil
}

// TagBySlug scans for the first tag with the given slug, or nil.
func (s *Store) TagBySlug(slug string) *models.Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id := s.findTagBySlug(slug); id != 0 {
		t := s.tags[id]
		return &t
	}
	return nil
}

// Tags returns all tags ordered by id.
func (s *Store) Tags() []models.Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Tag, 0, len(s.tags))
	for _, t := range s.tags {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// UpdateTag shallow-merges the patch over the stored tag. Returns (nil, nil)
// when the id is unknown.
func (s *Store) UpdateTag(id int, patch TagPatch) (*models.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tags[id]
	if !ok {
		return nil, nil
	}

	if patch.Slug != nil && *patch.Slug != t.Slug {
		if other := s.findTagBySlug(*patch.Slug); other != 0 && other != id {
			return nil, fmt.Errorf("slug %q: %w", *patch.Slug, ErrConflict)
		}
		t.Slug = *patch.Slug
	}
	if patch.Name != nil && *patch.Name != t.Name {
		if other := s.findTagByName(*patch.Name); other != 0 && other != id {
			return nil, fmt.Errorf("name %q: %w", *patch.Name, ErrConflict)
		}
		t.Name = *patch.Name
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}

	s.tags[id] = t
	return &t, nil
}

// DeleteTag removes the tag and its post links. Idempotent.
func (s *Store) DeleteTag(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tags, id)
	s.postTags = dropJoins(s.postTags, func(pt postTag) bool { return pt.TagID == id })
}

func (s *Store) findTagBySlug(slug string) int {
	for id, t := range s.tags {
		if t.Slug == slug {
			return id
		}
	}
	return 0
}

func (s *Store) findTagByName(name string) int {
	for id, t := range s.tags {
		if strings.EqualFold(t.Name, name) {
			return id
		}
	}
	return 0
}
