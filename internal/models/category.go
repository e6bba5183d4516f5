package models

// Category groups posts. ParentID enables a tree; the store does not guard
// against cycles.
type Category struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Description   string `json:"description,omitempty"`
	FeaturedImage string `json:"featuredImage,omitempty"`
	ParentID      *int   `json:"parentId"`
}

// Tag labels posts. Name and slug are both unique.
type Tag struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}
