package post

import "github.com/inkpress/core/internal/models"

// CreatePostDTO is the request body for creating a post.
type CreatePostDTO struct {
	Title             string            `json:"title"   binding:"required"`
	Slug              string            `json:"slug"    binding:"required"`
	Excerpt           string            `json:"excerpt"`
	Content           string            `json:"content" binding:"required"`
	FeaturedImage     string            `json:"featuredImage"`
	Status            models.PostStatus `json:"status"`
	PublishedAt       *models.Time      `json:"publishedAt"`
	MetaTitle         string            `json:"metaTitle"`
	MetaDescription   string            `json:"metaDescription"`
	IsCommentsEnabled *bool             `json:"isCommentsEnabled"`
	CategoryIDs       []int             `json:"categoryIds"`
	TagIDs            []int             `json:"tagIds"`
}

// UpdatePostDTO is the request body for patching a post. Nil fields are
// untouched.
type UpdatePostDTO struct {
	Title             *string            `json:"title"`
	Slug              *string            `json:"slug"`
	Excerpt           *string            `json:"excerpt"`
	Content           *string            `json:"content"`
	FeaturedImage     *string            `json:"featuredImage"`
	Status            *models.PostStatus `json:"status"`
	PublishedAt       *models.Time       `json:"publishedAt"`
	MetaTitle         *string            `json:"metaTitle"`
	MetaDescription   *string            `json:"metaDescription"`
	IsCommentsEnabled *bool              `json:"isCommentsEnabled"`
	CategoryIDs       *[]int             `json:"categoryIds"`
	TagIDs            *[]int             `json:"tagIds"`
}

// ListQuery holds the post list filter params.
type ListQuery struct {
	Category string `form:"category"`
	Tag      string `form:"tag"`
	Search   string `form:"search"`
	Status   string `form:"status"`
	AuthorID int    `form:"authorId"`
}

// postResponse decorates a post with its resolved category and tag
// relations for single-post endpoints.
type postResponse struct {
	models.Post
	Categories []models.Category `json:"categories"`
	Tags       []models.Tag      `json:"tags"`
}
