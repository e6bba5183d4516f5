package storage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/inkpress/core/internal/models"
	"github.com/inkpress/core/internal/pkg/pagination"
)

// CreateComment describes a new comment. Status is not caller-settable:
// every comment starts pending.
type CreateComment struct {
	Content     string
	PostID      int
	AuthorID    *int
	AuthorName  string
	AuthorEmail string
	ParentID    *int
}

// CommentFilters narrows the admin comment listing. Zero values mean "no
// filter". Ascending reverses the default newest-first order.
type CommentFilters struct {
	Page      int
	Limit     int
	PostID    int
	Status    models.CommentStatus
	Search    string
	Ascending bool
}

// CreateComment inserts a new comment with status=pending and createdAt=now.
func (s *Store) CreateComment(in CreateComment) *models.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := models.Comment{
		ID:          s.nextID(&s.ids.comment),
		Content:     in.Content,
		PostID:      in.PostID,
		AuthorID:    in.AuthorID,
		AuthorName:  in.AuthorName,
		AuthorEmail: in.AuthorEmail,
		ParentID:    in.ParentID,
		Status:      models.CommentPending,
		CreatedAt:   models.NewTime(s.now()),
	}
	s.comments[c.ID] = c
	return &c
}

// CommentByID returns the comment or nil when absent.
func (s *Store) CommentByID(id int) *models.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.comments[id]; ok {
		return &c
	}
	return nil
}

// CommentsForPost is the public listing: approved comments only, newest
// first.
func (s *Store) CommentsForPost(postID int) []models.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Comment, 0)
	for _, c := range s.comments {
		if c.PostID == postID && c.Status == models.CommentApproved {
			out = append(out, c)
		}
	}
	sortCommentsByCreated(out, false)
	return out
}

// QueryComments is the admin listing: unrestricted by status, optionally
// filtered by post, status and content substring, paginated like posts.
func (s *Store) QueryComments(f CommentFilters) ([]models.Comment, pagination.Meta) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := make([]models.Comment, 0, len(s.comments))
	needle := strings.ToLower(f.Search)
	for _, c := range s.comments {
		if f.PostID != 0 && c.PostID != f.PostID {
			continue
		}
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(c.Content), needle) {
			continue
		}
		filtered = append(filtered, c)
	}
	sortCommentsByCreated(filtered, f.Ascending)

	return pagination.Paginate(filtered, pagination.Query{Page: f.Page, Limit: f.Limit})
}

// UpdateCommentStatus moves the comment to the given moderation status. Any
// transition between the four enumerated values is accepted; anything else
// returns ErrValidation. Returns (nil, nil) when the id is unknown.
func (s *Store) UpdateCommentStatus(id int, status models.CommentStatus) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !models.ValidCommentStatus(status) {
		return nil, fmt.Errorf("status %q: %w", status, ErrValidation)
	}

	c, ok := s.comments[id]
	if !ok {
		return nil, nil
	}
	c.Status = status
	s.comments[id] = c
	return &c, nil
}

// DeleteComment removes the comment and its direct children (comments whose
// parentId equals the deleted id). The cascade is deliberately one level
// deep. Idempotent.
func (s *Store) DeleteComment(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.comments, id)
	for cid, c := range s.comments {
		if c.ParentID != nil && *c.ParentID == id {
			delete(s.comments, cid)
		}
	}
}

// RecentComments returns up to limit most-recently-created comments
// regardless of status. Admin-facing.
func (s *Store) RecentComments(limit int) []models.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Comment, 0, len(s.comments))
	for _, c := range s.comments {
		out = append(out, c)
	}
	sortCommentsByCreated(out, false)
	if limit < len(out) {
		out = out[:limit]
	}
	return out
}

// sortCommentsByCreated orders newest first by default; ties break on id so
// comments created within the same second keep insertion order.
func sortCommentsByCreated(comments []models.Comment, ascending bool) {
	sort.Slice(comments, func(i, j int) bool {
		ti, tj := comments[i].CreatedAt.Unix(), comments[j].CreatedAt.Unix()
		if ti != tj {
			if ascending {
				return ti < tj
			}
			return ti > tj
		}
		if ascending {
			return comments[i].ID < comments[j].ID
		}
		return comments[i].ID > comments[j].ID
	})
}
