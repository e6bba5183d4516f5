package storage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/inkpress/core/internal/models"
	"github.com/inkpress/core/internal/pkg/pagination"
)

// QueryMode selects between the two post query behaviors. Public always
// forces status=published; Admin applies the status filter only when one is
// given and otherwise returns posts of every status.
type QueryMode int

const (
	QueryPublic QueryMode = iota
	QueryAdmin
)

// PostFilters narrows a post query. Zero values mean "no filter".
type PostFilters struct {
	Page         int
	Limit        int
	CategorySlug string
	TagSlug      string
	Search       string
	Status       models.PostStatus
	AuthorID     int
}

// CreatePost describes a new post. Status defaults to draft and comments are
// enabled unless explicitly disabled.
type CreatePost struct {
	Title            string
	Slug             string
	Excerpt          string
	Content          string
	FeaturedImage    string
	AuthorID         int
	Status           models.PostStatus
	PublishedAt      *models.Time
	MetaTitle        string
	MetaDescription  string
	CommentsDisabled bool
}

// PostPatch is a shallow-merge partial update; nil fields are left untouched.
type PostPatch struct {
	Title             *string
	Slug              *string
	Excerpt           *string
	Content           *string
	FeaturedImage     *string
	Status            *models.PostStatus
	PublishedAt       *models.Time
	MetaTitle         *string
	MetaDescription   *string
	IsCommentsEnabled *bool
}

// CreatePost inserts a new post with viewCount=0. The slug must be unique;
// violations return ErrConflict.
func (s *Store) CreatePost(in CreatePost) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findPostBySlug(in.Slug) != 0 {
		return nil, fmt.Errorf("slug %q: %w", in.Slug, ErrConflict)
	}

	status := in.Status
	if status == "" {
		status = models.PostDraft
	}
	if !models.ValidPostStatus(status) {
		return nil, fmt.Errorf("status %q: %w", status, ErrValidation)
	}

	p := models.Post{
		ID:                s.nextID(&s.ids.post),
		Title:             in.Title,
		Slug:              in.Slug,
		Excerpt:           in.Excerpt,
		Content:           in.Content,
		FeaturedImage:     in.FeaturedImage,
		AuthorID:          in.AuthorID,
		Status:            status,
		PublishedAt:       in.PublishedAt,
		MetaTitle:         in.MetaTitle,
		MetaDescription:   in.MetaDescription,
		IsCommentsEnabled: !in.CommentsDisabled,
	}
	s.posts[p.ID] = p
	return &p, nil
}

// PostByID returns the post or nil when absent.
func (s *Store) PostByID(id int) *models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.posts[id]; ok {
		return &p
	}
	return nil
}

// PostBySlug scans for the first post with the given slug, or nil.
func (s *Store) PostBySlug(slug string) *models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id := s.findPostBySlug(slug); id != 0 {
		p := s.posts[id]
		return &p
	}
	return nil
}

// QueryPosts produces a filtered, sorted, paginated view of posts. Filters
// apply in order: status, author, search, category, tag. A category or tag
// slug that resolves to nothing empties the result set rather than erroring.
// Posts sort by publishedAt descending; a nil publishedAt sorts as epoch and
// sinks to the end.
func (s *Store) QueryPosts(f PostFilters, mode QueryMode) ([]models.Post, pagination.Meta) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		filtered = append(filtered, p)
	}
	// Stable base order so equal publish dates page deterministically.
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].ID < filtered[j].ID })

	switch mode {
	case QueryPublic:
		filtered = keepPosts(filtered, func(p models.Post) bool { return p.Status == models.PostPublished })
	default:
		if f.Status != "" {
			filtered = keepPosts(filtered, func(p models.Post) bool { return p.Status == f.Status })
		}
	}

	if f.AuthorID != 0 {
		filtered = keepPosts(filtered, func(p models.Post) bool { return p.AuthorID == f.AuthorID })
	}

	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		filtered = keepPosts(filtered, func(p models.Post) bool {
			return strings.Contains(strings.ToLower(p.Title), needle) ||
				strings.Contains(strings.ToLower(p.Content), needle) ||
				(p.Excerpt != "" && strings.Contains(strings.ToLower(p.Excerpt), needle))
		})
	}

	if f.CategorySlug != "" {
		if catID := s.findCategoryBySlug(f.CategorySlug); catID != 0 {
			member := make(map[int]bool)
			for _, pc := range s.postCategories {
				if pc.CategoryID == catID {
					member[pc.PostID] = true
				}
			}
			filtered = keepPosts(filtered, func(p models.Post) bool { return member[p.ID] })
		} else {
			filtered = nil
		}
	}

	if f.TagSlug != "" {
		if tagID := s.findTagBySlug(f.TagSlug); tagID != 0 {
			member := make(map[int]bool)
			for _, pt := range s.postTags {
				if pt.TagID == tagID {
					member[pt.PostID] = true
				}
			}
			filtered = keepPosts(filtered, func(p models.Post) bool { return member[p.ID] })
		} else {
			filtered = nil
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return publishedUnix(filtered[i]) > publishedUnix(filtered[j])
	})

	return pagination.Paginate(filtered, pagination.Query{Page: f.Page, Limit: f.Limit})
}

// RecordPostView increments the post's view counter by exactly one. Unknown
// ids are a no-op.
func (s *Store) RecordPostView(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.posts[id]; ok {
		p.ViewCount++
		s.posts[id] = p
	}
}

// PopularPosts returns up to limit published posts sorted by viewCount
// descending. Order among equal view counts is unspecified but stable.
func (s *Store) PopularPosts(limit int) []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	published := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if p.Status == models.PostPublished {
			published = append(published, p)
		}
	}
	sort.Slice(published, func(i, j int) bool { return published[i].ID < published[j].ID })
	sort.SliceStable(published, func(i, j int) bool { return published[i].ViewCount > published[j].ViewCount })

	if limit < len(published) {
		published = published[:limit]
	}
	return published
}

// UpdatePost shallow-merges the patch over the stored post. Returns (nil, nil)
// when the id is unknown. A slug change re-checks uniqueness.
func (s *Store) UpdatePost(id int, patch PostPatch) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, nil
	}

	if patch.Slug != nil && *patch.Slug != p.Slug {
		if other := s.findPostBySlug(*patch.Slug); other != 0 && other != id {
			return nil, fmt.Errorf("slug %q: %w", *patch.Slug, ErrConflict)
		}
		p.Slug = *patch.Slug
	}
	if patch.Status != nil {
		if !models.ValidPostStatus(*patch.Status) {
			return nil, fmt.Errorf("status %q: %w", *patch.Status, ErrValidation)
		}
		p.Status = *patch.Status
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Excerpt != nil {
		p.Excerpt = *patch.Excerpt
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.FeaturedImage != nil {
		p.FeaturedImage = *patch.FeaturedImage
	}
	if patch.PublishedAt != nil {
		t := *patch.PublishedAt
		p.PublishedAt = &t
	}
	if patch.MetaTitle != nil {
		p.MetaTitle = *patch.MetaTitle
	}
	if patch.MetaDescription != nil {
		p.MetaDescription = *patch.MetaDescription
	}
	if patch.IsCommentsEnabled != nil {
		p.IsCommentsEnabled = *patch.IsCommentsEnabled
	}

	s.posts[id] = p
	return &p, nil
}

// DeletePost removes the post and cascades: category links, tag links and
// every comment on the post go with it. Idempotent.
func (s *Store) DeletePost(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.posts, id)

	s.postCategories = dropJoins(s.postCategories, func(pc postCategory) bool { return pc.PostID == id })
	s.postTags = dropJoins(s.postTags, func(pt postTag) bool { return pt.PostID == id })

	for cid, c := range s.comments {
		if c.PostID == id {
			delete(s.comments, cid)
		}
	}
}

// LinkPostCategory records a post↔category join. Duplicate links are
// collapsed.
func (s *Store) LinkPostCategory(postID, categoryID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, pc := range s.postCategories {
		if pc.PostID == postID && pc.CategoryID == categoryID {
			return
		}
	}
	s.postCategories = append(s.postCategories, postCategory{PostID: postID, CategoryID: categoryID})
}

// UnlinkPostCategory removes a post↔category join. No-op when absent.
func (s *Store) UnlinkPostCategory(postID, categoryID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.postCategories = dropJoins(s.postCategories, func(pc postCategory) bool {
		return pc.PostID == postID && pc.CategoryID == categoryID
	})
}

// SetPostCategories replaces the post's category links with the given set.
func (s *Store) SetPostCategories(postID int, categoryIDs []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.postCategories = dropJoins(s.postCategories, func(pc postCategory) bool { return pc.PostID == postID })
	for _, cid := range categoryIDs {
		s.postCategories = append(s.postCategories, postCategory{PostID: postID, CategoryID: cid})
	}
}

// LinkPostTag records a post↔tag join. Duplicate links are collapsed.
func (s *Store) LinkPostTag(postID, tagID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, pt := range s.postTags {
		if pt.PostID == postID && pt.TagID == tagID {
			return
		}
	}
	s.postTags = append(s.postTags, postTag{PostID: postID, TagID: tagID})
}

// UnlinkPostTag removes a post↔tag join. No-op when absent.
func (s *Store) UnlinkPostTag(postID, tagID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.postTags = dropJoins(s.postTags, func(pt postTag) bool {
		return pt.PostID == postID && pt.TagID == tagID
	})
}

// SetPostTags replaces the post's tag links with the given set.
func (s *Store) SetPostTags(postID int, tagIDs []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.postTags = dropJoins(s.postTags, func(pt postTag) bool { return pt.PostID == postID })
	for _, tid := range tagIDs {
		s.postTags = append(s.postTags, postTag{PostID: postID, TagID: tid})
	}
}

// CategoriesForPost resolves the post's category links, skipping dangling
// references.
func (s *Store) CategoriesForPost(postID int) []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Category
	for _, pc := range s.postCategories {
		if pc.PostID != postID {
			continue
		}
		if c, ok := s.categories[pc.CategoryID]; ok {
			out = append(out, c)
		}
	}
	return out
}

// TagsForPost resolves the post's tag links, skipping dangling references.
func (s *Store) TagsForPost(postID int) []models.Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Tag
	for _, pt := range s.postTags {
		if pt.PostID != postID {
			continue
		}
		if t, ok := s.tags[pt.TagID]; ok {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) findPostBySlug(slug string) int {
	for id, p := range s.posts {
		if p.Slug == slug {
			return id
		}
	}
	return 0
}

// publishedUnix sorts unpublished (nil publishedAt) posts as epoch zero.
func publishedUnix(p models.Post) int64 {
	if p.PublishedAt == nil || p.PublishedAt.IsZero() {
		return 0
	}
	return p.PublishedAt.Unix()
}

func keepPosts(posts []models.Post, pred func(models.Post) bool) []models.Post {
	out := posts[:0]
	for _, p := range posts {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

func dropJoins[T any](joins []T, pred func(T) bool) []T {
	out := joins[:0]
	for _, j := range joins {
		if !pred(j) {
			out = append(out, j)
		}
	}
	return out
}
