package storage

import "github.com/inkpress/core/internal/models"

// BlogStats is the admin dashboard aggregate.
type BlogStats struct {
	PostsCount     int              `json:"postsCount"`
	CommentsCount  int              `json:"commentsCount"`
	UsersCount     int              `json:"usersCount"`
	ViewsCount     int              `json:"viewsCount"`
	PopularPosts   []models.Post    `json:"popularPosts"`
	RecentComments []models.Comment `json:"recentComments"`
}

// Stats aggregates the dashboard numbers. Posts and views count published
// posts only; comments and users count every record regardless of status or
// role.
func (s *Store) Stats() BlogStats {
	s.mu.RLock()
	postsCount := 0
	viewsCount := 0
	for _, p := range s.posts {
		if p.Status == models.PostPublished {
			postsCount++
			viewsCount += p.ViewCount
		}
	}
	commentsCount := len(s.comments)
	usersCount := len(s.users)
	s.mu.RUnlock()

	return BlogStats{
		PostsCount:     postsCount,
		CommentsCount:  commentsCount,
		UsersCount:     usersCount,
		ViewsCount:     viewsCount,
		PopularPosts:   s.PopularPosts(4),
		RecentComments: s.RecentComments(5),
	}
}
