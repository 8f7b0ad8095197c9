package repository

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"blog-backend/internal/domains/blog/model"
)

// blogWithAuthorColumns selects a blog and its author; author columns are
// aliased "author.*" so sqlx scans them into BlogWithAuthor.Author.
var blogWithAuthorColumns = []string{
	"b.id", "b.title", "b.content", "b.date", "b.slug", "b.excerpt",
	"b.featured", "b.published", "b.view_count", "b.like_count",
	"b.created_at", "b.updated_at", "b.author_id",
	`a.id AS "author.id"`,
	`a.name AS "author.name"`,
	`a.email AS "author.email"`,
	`a.bio AS "author.bio"`,
	`a.avatar_url AS "author.avatar_url"`,
	`a.created_at AS "author.created_at"`,
	`a.updated_at AS "author.updated_at"`,
}

// selectBlogs is the base SELECT over blogs joined with authors
func selectBlogs(sb sq.StatementBuilderType) sq.SelectBuilder {
	return sb.Select(blogWithAuthorColumns...).
		From("blogs b").
		Join("authors a ON a.id = b.author_id")
}

// BuildListQuery composes search, sort and limit into one SELECT.
//   - Search: substring of title, content or author name
//   - Sort: newest (default) | oldest | title | author
//   - Limit: 0 means everything
func BuildListQuery(sb sq.StatementBuilderType, f model.ListFilter) sq.SelectBuilder {
	query := selectBlogs(sb)

	if term := strings.TrimSpace(f.Search); term != "" {
		query = query.Where(searchPredicate(term))
	}
	if f.PublishedOnly {
		query = query.Where(sq.Eq{"b.published": true})
	}

	query = query.OrderBy(orderFor(f.Sort)...)

	if f.Limit > 0 {
		query = query.Limit(f.Limit)
	}
	return query
}

// searchPredicate matches term literally: LIKE wildcards in it are escaped
func searchPredicate(term string) sq.Sqlizer {
	pattern := "%" + escapeLike(term) + "%"
	return sq.Or{
		sq.Expr(`b.title LIKE ? ESCAPE '\'`, pattern),
		sq.Expr(`b.content LIKE ? ESCAPE '\'`, pattern),
		sq.Expr(`a.name LIKE ? ESCAPE '\'`, pattern),
	}
}

func orderFor(s model.Sort) []string {
	switch model.ParseSort(string(s)) {
	case model.SortOldest:
		return []string{"b.id ASC"}
	case model.SortTitle:
		return []string{"b.title ASC", "b.id DESC"}
	case model.SortAuthor:
		return []string{"a.name ASC", "b.id DESC"}
	default:
		return []string{"b.id DESC"}
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
