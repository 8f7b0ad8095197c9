package repository_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authormodel "blog-backend/internal/domains/author/model"
	authorrepo "blog-backend/internal/domains/author/repository"
	"blog-backend/internal/domains/blog/model"
	"blog-backend/internal/domains/blog/repository"
	"blog-backend/internal/infrastructure/database"
	"blog-backend/internal/infrastructure/database/dbtest"
)

type fixture struct {
	ctx     context.Context
	db      *sqlx.DB
	blogs   repository.RepositoryInterface
	authors authorrepo.RepositoryInterface
}

func newFixture(t *testing.T) *fixture {
	db := dbtest.New(t)
	return &fixture{
		ctx:     context.Background(),
		db:      db,
		blogs:   repository.NewSQLRepository(db, database.DialectSQLite),
		authors: authorrepo.NewSQLRepository(db, database.DialectSQLite),
	}
}

func (f *fixture) author(t *testing.T, name, email string) *authormodel.Author {
	t.Helper()
	a, err := authormodel.NewAuthor(name, email, nil, nil)
	require.NoError(t, err)
	require.NoError(t, f.authors.Create(f.ctx, f.db, a))
	return a
}

func (f *fixture) blog(t *testing.T, author *authormodel.Author, title, content string, opts ...func(*model.NewBlogParams)) *model.Blog {
	t.Helper()
	p := model.NewBlogParams{
		Title:    title,
		Content:  content,
		Date:     "05-01-2024",
		AuthorID: author.ID,
	}
	for _, opt := range opts {
		opt(&p)
	}
	b, err := model.NewBlog(p)
	require.NoError(t, err)
	require.NoError(t, f.blogs.Create(f.ctx, f.db, b))
	return b
}

func featured(p *model.NewBlogParams) { p.Featured = true }

func draft(p *model.NewBlogParams) {
	unpublished := false
	p.Published = &unpublished
}

func titles(blogs []model.BlogWithAuthor) []string {
	out := make([]string, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, b.Title)
	}
	return out
}

// ============================================
// CREATE / READ
// ============================================

func TestCreateAndGet(t *testing.T) {
	f := newFixture(t)
	alice := f.author(t, "Alice Johnson", "alice@example.com")
	b := f.blog(t, alice, "Hello World Post", "Content body here.")

	require.NotZero(t, b.ID)
	assert.False(t, b.CreatedAt.IsZero())

	got, err := f.blogs.GetByID(f.ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello World Post", got.Title)
	assert.Equal(t, "hello-world-post", got.Slug)
	assert.True(t, got.Published)
	assert.Equal(t, alice.ID, got.Author.ID)
	assert.Equal(t, "Alice Johnson", got.Author.Name)
	assert.Equal(t, "alice@example.com", got.Author.Email)

	bySlug, err := f.blogs.GetBySlug(f.ctx, "hello-world-post")
	require.NoError(t, err)
	assert.Equal(t, b.ID, bySlug.ID)

	_, err = f.blogs.GetByID(f.ctx, 999)
	assert.ErrorIs(t, err, model.ErrBlogNotFound)
}

func TestCreate_DuplicateSlug(t *testing.T) {
	f := newFixture(t)
	alice := f.author(t, "Alice", "alice@example.com")
	f.blog(t, alice, "Same Title", "First body text.")

	b, err := model.NewBlog(model.NewBlogParams{
		Title: "Same Title", Content: "Second body text.", Date: "05-01-2024", AuthorID: alice.ID,
	})
	require.NoError(t, err)

	err = f.blogs.Create(f.ctx, f.db, b)
	assert.ErrorIs(t, err, model.ErrDuplicateSlug)
}

// ============================================
// LIST / SEARCH
// ============================================

func TestList_SortOrders(t *testing.T) {
	f := newFixture(t)
	zoe := f.author(t, "Zoe", "zoe@example.com")
	adam := f.author(t, "Adam", "adam@example.com")

	f.blog(t, zoe, "Bravo post", "Body of bravo.")
	f.blog(t, adam, "Alpha post", "Body of alpha.")
	f.blog(t, zoe, "Charlie post", "Body of charlie.")

	list := func(s model.Sort) []string {
		blogs, err := f.blogs.List(f.ctx, model.ListFilter{Sort: s})
		require.NoError(t, err)
		return titles(blogs)
	}

	assert.Equal(t, []string{"Charlie post", "Alpha post", "Bravo post"}, list(model.SortNewest))
	assert.Equal(t, []string{"Bravo post", "Alpha post", "Charlie post"}, list(model.SortOldest))
	assert.Equal(t, []string{"Alpha post", "Bravo post", "Charlie post"}, list(model.SortTitle))
	// Ties on author name fall back to newest first
	assert.Equal(t, []string{"Alpha post", "Charlie post", "Bravo post"}, list(model.SortAuthor))
	assert.Equal(t, list(model.SortNewest), list("bogus"))
}

func TestList_SearchMatchesAuthorName(t *testing.T) {
	f := newFixture(t)
	alice := f.author(t, "Alice Johnson", "alice@example.com")
	bob := f.author(t, "Bob Smith", "bob@example.com")

	f.blog(t, alice, "Gardening notes", "Tomatoes and basil.")
	f.blog(t, bob, "Travel diary", "Trains across Europe.")

	blogs, err := f.blogs.List(f.ctx, model.ListFilter{Search: "johnson"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Gardening notes"}, titles(blogs))

	blogs, err = f.blogs.Search(f.ctx, "trains")
	require.NoError(t, err)
	assert.Equal(t, []string{"Travel diary"}, titles(blogs))

	blogs, err = f.blogs.List(f.ctx, model.ListFilter{Search: "nothing matches this"})
	require.NoError(t, err)
	assert.Empty(t, blogs)
	assert.NotNil(t, blogs)
}

func TestList_SearchEscapesWildcards(t *testing.T) {
	f := newFixture(t)
	alice := f.author(t, "Alice", "alice@example.com")

	f.blog(t, alice, "Discounts of 50% today", "Everything is cheaper.")
	f.blog(t, alice, "Fifty percent 50 off", "No sign here at all.")
	f.blog(t, alice, "snake_case naming", "Underscores everywhere.")
	f.blog(t, alice, "snakeXcase naming", "Letters only here.")

	blogs, err := f.blogs.List(f.ctx, model.ListFilter{Search: "50%"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Discounts of 50% today"}, titles(blogs))

	blogs, err = f.blogs.List(f.ctx, model.ListFilter{Search: "snake_case"})
	require.NoError(t, err)
	assert.Equal(t, []string{"snake_case naming"}, titles(blogs))
}

func TestList_PublishedOnlyAndLimit(t *testing.T) {
	f := newFixture(t)
	alice := f.author(t, "Alice", "alice@example.com")

	f.blog(t, alice, "Published one", "Visible body text.")
	f.blog(t, alice, "Hidden draft", "Draft body text.", draft)
	f.blog(t, alice, "Published two", "Visible body text.")

	all, err := f.blogs.List(f.ctx, model.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	published, err := f.blogs.List(f.ctx, model.ListFilter{PublishedOnly: true, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"Published two"}, titles(published))
}

func TestBuildListQuery(t *testing.T) {
	sb := database.DialectPostgres.Builder()

	query, args, err := repository.BuildListQuery(sb, model.ListFilter{
		Search: " go ",
		Sort:   model.SortAuthor,
		Limit:  5,
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "FROM blogs b JOIN authors a ON a.id = b.author_id")
	assert.Contains(t, query, `WHERE (b.title LIKE $1 ESCAPE '\' OR b.content LIKE $2 ESCAPE '\' OR a.name LIKE $3 ESCAPE '\')`)
	assert.Contains(t, query, "ORDER BY a.name ASC, b.id DESC")
	assert.True(t, strings.HasSuffix(query, "LIMIT 5"))
	assert.Equal(t, []interface{}{"%go%", "%go%", "%go%"}, args)

	query, args, err = repository.BuildListQuery(sb, model.ListFilter{}).ToSql()
	require.NoError(t, err)
	assert.NotContains(t, query, "WHERE")
	assert.NotContains(t, query, "LIMIT")
	assert.True(t, strings.HasSuffix(query, "ORDER BY b.id DESC"))
	assert.Empty(t, args)
}

// ============================================
// ACCESSORS
// ============================================

func TestRelated(t *testing.T) {
	f := newFixture(t)
	alice := f.author(t, "Alice", "alice@example.com")
	bob := f.author(t, "Bob", "bob@example.com")

	var current *model.Blog
	for i := 1; i <= 5; i++ {
		b := f.blog(t, alice, fmt.Sprintf("Alice post %d", i), "Body text of the post.")
		if i == 5 {
			current = b
		}
	}
	f.blog(t, bob, "Bob post", "Body text of the post.")

	related, err := f.blogs.Related(f.ctx, current, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice post 4", "Alice post 3", "Alice post 2"}, titles(related))

	related, err = f.blogs.Related(f.ctx, current, 10)
	require.NoError(t, err)
	assert.Len(t, related, 4)
	for _, r := range related {
		assert.NotEqual(t, current.ID, r.ID)
		assert.Equal(t, alice.ID, r.AuthorID)
	}
}

func TestFeaturedRecentPopular(t *testing.T) {
	f := newFixture(t)
	alice := f.author(t, "Alice", "alice@example.com")

	one := f.blog(t, alice, "First featured", "Body text here.", featured)
	f.blog(t, alice, "Draft featured", "Body text here.", featured, draft)
	two := f.blog(t, alice, "Plain post", "Body text here.")
	f.blog(t, alice, "Second featured", "Body text here.", featured)

	got, err := f.blogs.Featured(f.ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Second featured", "First featured"}, titles(got))

	got, err = f.blogs.Recent(f.ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Second featured", "Plain post"}, titles(got))

	for i := 0; i < 3; i++ {
		require.NoError(t, f.blogs.IncrementViewCount(f.ctx, f.db, two.ID))
	}
	require.NoError(t, f.blogs.IncrementViewCount(f.ctx, f.db, one.ID))

	got, err = f.blogs.Popular(f.ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Plain post", "First featured"}, titles(got))
}

func TestSlugsWithPrefix(t *testing.T) {
	f := newFixture(t)
	alice := f.author(t, "Alice", "alice@example.com")

	f.blog(t, alice, "Hello World", "Body text here.")
	f.blog(t, alice, "Hello World", "Body text here.", func(p *model.NewBlogParams) { p.Slug = "hello-world-2" })
	f.blog(t, alice, "Hello Worldwide", "Body text here.")

	slugs, err := f.blogs.SlugsWithPrefix(f.ctx, f.db, "hello-world")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"hello-world", "hello-world-2"}, slugs)
}

// ============================================
// COUNTERS
// ============================================

func TestCounters(t *testing.T) {
	f := newFixture(t)
	alice := f.author(t, "Alice", "alice@example.com")
	b := f.blog(t, alice, "Counted post", "Body text here.")

	require.NoError(t, f.blogs.IncrementViewCount(f.ctx, f.db, b.ID))
	require.NoError(t, f.blogs.IncrementLikeCount(f.ctx, f.db, b.ID))
	require.NoError(t, f.blogs.IncrementLikeCount(f.ctx, f.db, b.ID))
	require.NoError(t, f.blogs.DecrementLikeCount(f.ctx, f.db, b.ID))

	c, err := f.blogs.Counters(f.ctx, f.db, b.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Counters{ID: b.ID, ViewCount: 1, LikeCount: 1}, *c)
}

func TestDecrementLikeCount_FloorsAtZero(t *testing.T) {
	f := newFixture(t)
	alice := f.author(t, "Alice", "alice@example.com")
	b := f.blog(t, alice, "Unloved post", "Body text here.")

	require.NoError(t, f.blogs.DecrementLikeCount(f.ctx, f.db, b.ID))

	c, err := f.blogs.Counters(f.ctx, f.db, b.ID)
	require.NoError(t, err)
	assert.Zero(t, c.LikeCount)
}

func TestCounters_MissingBlog(t *testing.T) {
	f := newFixture(t)

	assert.ErrorIs(t, f.blogs.IncrementViewCount(f.ctx, f.db, 42), model.ErrBlogNotFound)
	assert.ErrorIs(t, f.blogs.DecrementLikeCount(f.ctx, f.db, 42), model.ErrBlogNotFound)
	_, err := f.blogs.Counters(f.ctx, f.db, 42)
	assert.ErrorIs(t, err, model.ErrBlogNotFound)
}

func TestDeletingAuthorRemovesBlogs(t *testing.T) {
	f := newFixture(t)
	alice := f.author(t, "Alice", "alice@example.com")
	b := f.blog(t, alice, "Soon gone", "Body text here.")

	require.NoError(t, f.authors.Delete(f.ctx, alice.ID))

	_, err := f.blogs.GetByID(f.ctx, b.ID)
	assert.ErrorIs(t, err, model.ErrBlogNotFound)
}

// ============================================
// STATS
// ============================================

func TestStats(t *testing.T) {
	f := newFixture(t)

	empty, err := f.blogs.Stats(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Stats{}, *empty)

	alice := f.author(t, "Alice", "alice@example.com")
	f.author(t, "Bob", "bob@example.com")
	a := f.blog(t, alice, "Featured post", "Body text here.", featured)
	f.blog(t, alice, "Draft post", "Body text here.", draft)

	require.NoError(t, f.blogs.IncrementViewCount(f.ctx, f.db, a.ID))
	require.NoError(t, f.blogs.IncrementViewCount(f.ctx, f.db, a.ID))
	require.NoError(t, f.blogs.IncrementLikeCount(f.ctx, f.db, a.ID))

	stats, err := f.blogs.Stats(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Stats{
		TotalAuthors:   2,
		TotalBlogs:     2,
		PublishedBlogs: 1,
		FeaturedBlogs:  1,
		TotalViews:     2,
		TotalLikes:     1,
	}, *stats)
}
