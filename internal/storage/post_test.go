package storage

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpress/core/internal/models"
	"github.com/inkpress/core/internal/pkg/pagination"
)

func mustCreatePost(t *testing.T, s *Store, in CreatePost) *models.Post {
	t.Helper()
	p, err := s.CreatePost(in)
	require.NoError(t, err)
	return p
}

func publishedAt(t time.Time) *models.Time {
	mt := models.NewTime(t)
	return &mt
}

func TestCreatePostDefaults(t *testing.T) {
	s := New()

	p := mustCreatePost(t, s, CreatePost{Title: "Hello", Slug: "hello", Content: "world"})
	assert.Equal(t, models.PostDraft, p.Status)
	assert.True(t, p.IsCommentsEnabled)
	assert.Equal(t, 0, p.ViewCount)
	assert.Nil(t, p.PublishedAt)

	_, err := s.CreatePost(CreatePost{Title: "Again", Slug: "hello", Content: "dupe"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = s.CreatePost(CreatePost{Title: "Bad", Slug: "bad", Content: "c", Status: "archived"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestQueryPostsPublicHidesDrafts(t *testing.T) {
	s := New()
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	mustCreatePost(t, s, CreatePost{Title: "Draft", Slug: "draft", Content: "c"})
	mustCreatePost(t, s, CreatePost{
		Title: "Live", Slug: "live", Content: "c",
		Status: models.PostPublished, PublishedAt: publishedAt(base),
	})
	mustCreatePost(t, s, CreatePost{
		Title: "Soon", Slug: "soon", Content: "c",
		Status: models.PostScheduled, PublishedAt: publishedAt(base.Add(48 * time.Hour)),
	})

	posts, meta := s.QueryPosts(PostFilters{}, QueryPublic)
	require.Len(t, posts, 1)
	assert.Equal(t, "live", posts[0].Slug)
	assert.Equal(t, 1, meta.Total)

	// admin mode sees everything unless it narrows by status
	posts, meta = s.QueryPosts(PostFilters{}, QueryAdmin)
	assert.Len(t, posts, 3)
	assert.Equal(t, 3, meta.Total)

	posts, _ = s.QueryPosts(PostFilters{Status: models.PostDraft}, QueryAdmin)
	require.Len(t, posts, 1)
	assert.Equal(t, "draft", posts[0].Slug)
}

func TestQueryPostsSortNewestFirst(t *testing.T) {
	s := New()
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	mustCreatePost(t, s, CreatePost{
		Title: "Old", Slug: "old", Content: "c",
		Status: models.PostPublished, PublishedAt: publishedAt(base),
	})
	mustCreatePost(t, s, CreatePost{
		Title: "New", Slug: "new", Content: "c",
		Status: models.PostPublished, PublishedAt: publishedAt(base.Add(time.Hour)),
	})
	mustCreatePost(t, s, CreatePost{
		Title: "Undated", Slug: "undated", Content: "c",
		Status: models.PostPublished,
	})

	posts, _ := s.QueryPosts(PostFilters{}, QueryPublic)
	require.Len(t, posts, 3)
	assert.Equal(t, "new", posts[0].Slug)
	assert.Equal(t, "old", posts[1].Slug)
	// nil publishedAt sorts as epoch and sinks to the end
	assert.Equal(t, "undated", posts[2].Slug)
}

func TestQueryPostsFilters(t *testing.T) {
	s := New()
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	cat, err := s.CreateCategory(CreateCategory{Name: "Go", Slug: "go"})
	require.NoError(t, err)
	tag, err := s.CreateTag(CreateTag{Name: "tips", Slug: "tips"})
	require.NoError(t, err)

	a := mustCreatePost(t, s, CreatePost{
		Title: "Generics explained", Slug: "generics", Content: "type parameters",
		AuthorID: 1, Status: models.PostPublished, PublishedAt: publishedAt(base),
	})
	b := mustCreatePost(t, s, CreatePost{
		Title: "Channels", Slug: "channels", Content: "goroutines talk",
		AuthorID: 2, Status: models.PostPublished, PublishedAt: publishedAt(base.Add(time.Hour)),
	})
	s.LinkPostCategory(a.ID, cat.ID)
	s.LinkPostTag(b.ID, tag.ID)

	posts, _ := s.QueryPosts(PostFilters{CategorySlug: "go"}, QueryPublic)
	require.Len(t, posts, 1)
	assert.Equal(t, a.ID, posts[0].ID)

	posts, _ = s.QueryPosts(PostFilters{TagSlug: "tips"}, QueryPublic)
	require.Len(t, posts, 1)
	assert.Equal(t, b.ID, posts[0].ID)

	// search matches title and content, case-insensitive
	posts, _ = s.QueryPosts(PostFilters{Search: "GOROUTINES"}, QueryPublic)
	require.Len(t, posts, 1)
	assert.Equal(t, b.ID, posts[0].ID)

	posts, _ = s.QueryPosts(PostFilters{AuthorID: 1}, QueryAdmin)
	require.Len(t, posts, 1)
	assert.Equal(t, a.ID, posts[0].ID)

	// unknown taxonomy slug empties the result set instead of erroring
	posts, meta := s.QueryPosts(PostFilters{CategorySlug: "nope"}, QueryPublic)
	assert.Empty(t, posts)
	assert.Equal(t, 0, meta.Total)
}

func TestQueryPostsPagination(t *testing.T) {
	s := New()
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	for i := 0; i < 7; i++ {
		mustCreatePost(t, s, CreatePost{
			Title: "Post", Slug: "post-" + string(rune('a'+i)), Content: "c",
			Status: models.PostPublished, PublishedAt: publishedAt(base.Add(time.Duration(i) * time.Hour)),
		})
	}

	page1, meta := s.QueryPosts(PostFilters{Page: 1, Limit: 3}, QueryPublic)
	assert.Len(t, page1, 3)
	assert.Equal(t, pagination.Meta{Total: 7, Page: 1, Limit: 3, TotalPages: 3}, meta)

	page3, meta := s.QueryPosts(PostFilters{Page: 3, Limit: 3}, QueryPublic)
	assert.Len(t, page3, 1)
	assert.Equal(t, 3, meta.Page)

	// no overlap between pages
	page2, _ := s.QueryPosts(PostFilters{Page: 2, Limit: 3}, QueryPublic)
	seen := map[int]bool{}
	for _, p := range append(append(page1, page2...), page3...) {
		assert.False(t, seen[p.ID], "post %d appeared twice", p.ID)
		seen[p.ID] = true
	}
	assert.Len(t, seen, 7)

	// past the last page is empty, not an error
	empty, meta := s.QueryPosts(PostFilters{Page: 9, Limit: 3}, QueryPublic)
	assert.Empty(t, empty)
	assert.Equal(t, 7, meta.Total)
}

func TestQueryPostsLastPartialPage(t *testing.T) {
	s := New()
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	for i := 0; i < 25; i++ {
		mustCreatePost(t, s, CreatePost{
			Title: "Post", Slug: fmt.Sprintf("post-%02d", i), Content: "c",
			Status: models.PostPublished, PublishedAt: publishedAt(base.Add(time.Duration(i) * time.Minute)),
		})
	}

	posts, meta := s.QueryPosts(PostFilters{Page: 3, Limit: 10}, QueryPublic)
	assert.Len(t, posts, 5)
	assert.Equal(t, pagination.Meta{Total: 25, Page: 3, Limit: 10, TotalPages: 3}, meta)
}

func TestRecordPostView(t *testing.T) {
	s := New()
	p := mustCreatePost(t, s, CreatePost{Title: "t", Slug: "t", Content: "c"})

	s.RecordPostView(p.ID)
	s.RecordPostView(p.ID)
	s.RecordPostView(999) // unknown id is a no-op

	assert.Equal(t, 2, s.PostByID(p.ID).ViewCount)
}

func TestDeletePostCascades(t *testing.T) {
	s := New()

	cat, err := s.CreateCategory(CreateCategory{Name: "Go", Slug: "go"})
	require.NoError(t, err)
	p := mustCreatePost(t, s, CreatePost{Title: "t", Slug: "t", Content: "c"})
	s.LinkPostCategory(p.ID, cat.ID)
	c := s.CreateComment(CreateComment{Content: "hi", PostID: p.ID, AuthorName: "v", AuthorEmail: "v@example.com"})

	s.DeletePost(p.ID)
	s.DeletePost(p.ID) // idempotent

	assert.Nil(t, s.PostByID(p.ID))
	assert.Nil(t, s.CommentByID(c.ID))
	assert.Empty(t, s.CategoriesForPost(p.ID))
	// the category itself survives
	assert.NotNil(t, s.CategoryByID(cat.ID))
}

func TestSetPostCategoriesReplaces(t *testing.T) {
	s := New()

	c1, err := s.CreateCategory(CreateCategory{Name: "A", Slug: "a"})
	require.NoError(t, err)
	c2, err := s.CreateCategory(CreateCategory{Name: "B", Slug: "b"})
	require.NoError(t, err)
	p := mustCreatePost(t, s, CreatePost{Title: "t", Slug: "t", Content: "c"})

	s.SetPostCategories(p.ID, []int{c1.ID})
	s.SetPostCategories(p.ID, []int{c2.ID})

	cats := s.CategoriesForPost(p.ID)
	require.Len(t, cats, 1)
	assert.Equal(t, c2.ID, cats[0].ID)
}

func TestDeleteCategoryDropsLinksOnly(t *testing.T) {
	s := New()

	cat, err := s.CreateCategory(CreateCategory{Name: "Go", Slug: "go"})
	require.NoError(t, err)
	p := mustCreatePost(t, s, CreatePost{Title: "t", Slug: "t", Content: "c", Status: models.PostPublished})
	s.LinkPostCategory(p.ID, cat.ID)

	s.DeleteCategory(cat.ID)

	assert.NotNil(t, s.PostByID(p.ID))
	assert.Empty(t, s.CategoriesForPost(p.ID))
}

func TestUpdatePostSlugConflict(t *testing.T) {
	s := New()

	mustCreatePost(t, s, CreatePost{Title: "a", Slug: "a", Content: "c"})
	p := mustCreatePost(t, s, CreatePost{Title: "b", Slug: "b", Content: "c"})

	taken := "a"
	_, err := s.UpdatePost(p.ID, PostPatch{Slug: &taken})
	assert.ErrorIs(t, err, ErrConflict)

	// patching the own slug back onto itself is fine
	own := "b"
	got, err := s.UpdatePost(p.ID, PostPatch{Slug: &own})
	require.NoError(t, err)
	assert.Equal(t, "b", got.Slug)
}

func TestPopularPosts(t *testing.T) {
	s := New()

	top := mustCreatePost(t, s, CreatePost{Title: "top", Slug: "top", Content: "c", Status: models.PostPublished})
	mid := mustCreatePost(t, s, CreatePost{Title: "mid", Slug: "mid", Content: "c", Status: models.PostPublished})
	hiddenDraft := mustCreatePost(t, s, CreatePost{Title: "draft", Slug: "draft", Content: "c"})

	for i := 0; i < 5; i++ {
		s.RecordPostView(top.ID)
	}
	s.RecordPostView(mid.ID)
	for i := 0; i < 9; i++ {
		s.RecordPostView(hiddenDraft.ID)
	}

	posts := s.PopularPosts(4)
	require.Len(t, posts, 2)
	assert.Equal(t, top.ID, posts[0].ID)
	assert.Equal(t, mid.ID, posts[1].ID)
}
