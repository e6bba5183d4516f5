package post

import (
	"github.com/inkpress/core/internal/models"
	"github.com/inkpress/core/internal/pkg/pagination"
	"github.com/inkpress/core/internal/storage"
)

type Service struct {
	store *storage.Store
}

func NewService(store *storage.Store) *Service {
	return &Service{store: store}
}

func (s *Service) filters(q ListQuery, pq pagination.Query) storage.PostFilters {
	return storage.PostFilters{
		Page:         pq.Page,
		Limit:        pq.Limit,
		CategorySlug: q.Category,
		TagSlug:      q.Tag,
		Search:       q.Search,
		Status:       models.PostStatus(q.Status),
		AuthorID:     q.AuthorID,
	}
}

// ListPublic returns published posts matching the query.
func (s *Service) ListPublic(q ListQuery, pq pagination.Query) ([]models.Post, pagination.Meta) {
	return s.store.QueryPosts(s.filters(q, pq), storage.QueryPublic)
}

// ListAdmin returns posts of any status matching the query.
func (s *Service) ListAdmin(q ListQuery, pq pagination.Query) ([]models.Post, pagination.Meta) {
	return s.store.QueryPosts(s.filters(q, pq), storage.QueryAdmin)
}

// GetBySlug looks up a post and records one view. Returns nil when the
// slug is unknown.
func (s *Service) GetBySlug(slug string) *postResponse {
	p := s.store.PostBySlug(slug)
	if p == nil {
		return nil
	}
	s.store.RecordPostView(p.ID)
	p.ViewCount++
	return s.decorate(p)
}

func (s *Service) Create(dto CreatePostDTO, authorID int) (*postResponse, error) {
	p, err := s.store.CreatePost(storage.CreatePost{
		Title:            dto.Title,
		Slug:             dto.Slug,
		Excerpt:          dto.Excerpt,
		Content:          dto.Content,
		FeaturedImage:    dto.FeaturedImage,
		Status:           dto.Status,
		PublishedAt:      dto.PublishedAt,
		MetaTitle:        dto.MetaTitle,
		MetaDescription:  dto.MetaDescription,
		CommentsDisabled: dto.IsCommentsEnabled != nil && !*dto.IsCommentsEnabled,
		AuthorID:         authorID,
	})
	if err != nil {
		return nil, err
	}
	if len(dto.CategoryIDs) > 0 {
		s.store.SetPostCategories(p.ID, dto.CategoryIDs)
	}
	if len(dto.TagIDs) > 0 {
		s.store.SetPostTags(p.ID, dto.TagIDs)
	}
	return s.decorate(p), nil
}

func (s *Service) Update(id int, dto UpdatePostDTO) (*postResponse, error) {
	p, err := s.store.UpdatePost(id, storage.PostPatch{
		Title:             dto.Title,
		Slug:              dto.Slug,
		Excerpt:           dto.Excerpt,
		Content:           dto.Content,
		FeaturedImage:     dto.FeaturedImage,
		Status:            dto.Status,
		PublishedAt:       dto.PublishedAt,
		MetaTitle:         dto.MetaTitle,
		MetaDescription:   dto.MetaDescription,
		IsCommentsEnabled: dto.IsCommentsEnabled,
	})
	if err != nil || p == nil {
		return nil, err
	}
	if dto.CategoryIDs != nil {
		s.store.SetPostCategories(p.ID, *dto.CategoryIDs)
	}
	if dto.TagIDs != nil {
		s.store.SetPostTags(p.ID, *dto.TagIDs)
	}
	return s.decorate(p), nil
}

func (s *Service) Delete(id int) {
	s.store.DeletePost(id)
}

func (s *Service) decorate(p *models.Post) *postResponse {
	return &postResponse{
		Post:       *p,
		Categories: s.store.CategoriesForPost(p.ID),
		Tags:       s.store.TagsForPost(p.ID),
	}
}
