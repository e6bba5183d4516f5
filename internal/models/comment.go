package models

// CommentStatus is a comment's moderation label.
type CommentStatus string

const (
	CommentPending  CommentStatus = "pending"
	CommentApproved CommentStatus = "approved"
	CommentRejected CommentStatus = "rejected"
	CommentSpam     CommentStatus = "spam"
)

// ValidCommentStatus reports whether s is one of the four moderation labels.
func ValidCommentStatus(s CommentStatus) bool {
	switch s {
	case CommentPending, CommentApproved, CommentRejected, CommentSpam:
		return true
	}
	return false
}

// Comment is a (possibly threaded) comment on a post. AuthorID is set only
// for authenticated commenters; anonymous comments carry AuthorName and
// AuthorEmail instead. ParentID always points to the immediate parent.
type Comment struct {
	ID          int           `json:"id"`
	Content     string        `json:"content"`
	PostID      int           `json:"postId"`
	AuthorID    *int          `json:"authorId"`
	AuthorName  string        `json:"authorName,omitempty"`
	AuthorEmail string        `json:"authorEmail,omitempty"`
	ParentID    *int          `json:"parentId"`
	Status      CommentStatus `json:"status"`
	CreatedAt   Time          `json:"createdAt"`
}
