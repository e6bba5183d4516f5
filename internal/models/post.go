package models

// PostStatus is a post's lifecycle label controlling public visibility.
type PostStatus string

const (
	PostDraft     PostStatus = "draft"
	PostPublished PostStatus = "published"
	PostScheduled PostStatus = "scheduled"
)

// ValidPostStatus reports whether s is one of the enumerated statuses.
func ValidPostStatus(s PostStatus) bool {
	switch s {
	case PostDraft, PostPublished, PostScheduled:
		return true
	}
	return false
}

// Post is a blog post. AuthorID is a weak reference: the user may have been
// deleted, and a dangling id is tolerated.
type Post struct {
	ID                int        `json:"id"`
	Title             string     `json:"title"`
	Slug              string     `json:"slug"`
	Excerpt           string     `json:"excerpt,omitempty"`
	Content           string     `json:"content"`
	FeaturedImage     string     `json:"featuredImage,omitempty"`
	AuthorID          int        `json:"authorId"`
	Status            PostStatus `json:"status"`
	PublishedAt       *Time      `json:"publishedAt"`
	MetaTitle         string     `json:"metaTitle,omitempty"`
	MetaDescription   string     `json:"metaDescription,omitempty"`
	IsCommentsEnabled bool       `json:"isCommentsEnabled"`
	ViewCount         int        `json:"viewCount"`
}
