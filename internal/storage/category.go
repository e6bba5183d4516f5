package storage

import (
	"fmt"
	"sort"

	"github.com/inkpress/core/internal/models"
)

// CreateCategory describes a new category.
type CreateCategory struct {
	Name          string
	Slug          string
	Description   string
	FeaturedImage string
	ParentID      *int
}

// CategoryPatch is a shallow-merge partial update; nil fields are left
// untouched. ParentID uses a double pointer so a patch can distinguish
// "unchanged" from "detach from parent".
type CategoryPatch struct {
	Name          *string
	Slug          *string
	Description   *string
	FeaturedImage *string
	ParentID      **int
}

// CreateCategory inserts a new category. The slug must be unique; violations
// return ErrConflict. Parent references are not validated and cycles are not
// prevented.
func (s *Store) CreateCategory(in CreateCategory) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findCategoryBySlug(in.Slug) != 0 {
		return nil, fmt.Errorf("slug %q: %w", in.Slug, ErrConflict)
	}

	c := models.Category{
		ID:            s.nextID(&s.ids.category),
		Name:          in.Name,
		Slug:          in.Slug,
		Description:   in.Description,
		FeaturedImage: in.FeaturedImage,
		ParentID:      in.ParentID,
	}
	s.categories[c.ID] = c
	return &c, nil
}

// CategoryByID returns the category or nil when absent.
func (s *Store) CategoryByID(id int) *models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.categories[id]; ok {
		return &c
	}
	return nil
}

// CategoryBySlug scans for the first category with the given slug, or nil.
func (s *Store) CategoryBySlug(slug string) *models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id := s.findCategoryBySlug(slug); id != 0 {
		c := s.categories[id]
		return &c
	}
	return nil
}

// Categories returns all categories ordered by id.
func (s *Store) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// UpdateCategory shallow-merges the patch over the stored category. Returns
// (nil, nil) when the id is unknown.
func (s *Store) UpdateCategory(id int, patch CategoryPatch) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, nil
	}

	if patch.Slug != nil && *patch.Slug != c.Slug {
		if other := s.findCategoryBySlug(*patch.Slug); other != 0 && other != id {
			return nil, fmt.Errorf("slug %q: %w", *patch.Slug, ErrConflict)
		}
		c.Slug = *patch.Slug
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if patch.FeaturedImage != nil {
		c.FeaturedImage = *patch.FeaturedImage
	}
	if patch.ParentID != nil {
		c.ParentID = *patch.ParentID
	}

	s.categories[id] = c
	return &c, nil
}

// DeleteCategory removes the category and its post links. Posts themselves
// are untouched. Idempotent.
func (s *Store) DeleteCategory(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.categories, id)
	s.postCategories = dropJoins(s.postCategories, func(pc postCategory) bool { return pc.CategoryID == id })
}

func (s *Store) findCategoryBySlug(slug string) int {
	for id, c := range s.categories {
		if c.Slug == slug {
			return id
		}
	}
	return 0
}
