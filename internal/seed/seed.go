// Package seed loads the sample authors and blogs used for local development.
package seed

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	authormodel "blog-backend/internal/domains/author/model"
	authorrepo "blog-backend/internal/domains/author/repository"
	blogmodel "blog-backend/internal/domains/blog/model"
	blogrepo "blog-backend/internal/domains/blog/repository"
	"blog-backend/pkg/database"
)

type sampleAuthor struct {
	Name  string
	Email string
	Bio   string
}

type sampleBlog struct {
	Title    string
	Content  string
	Date     string
	Author   int // index into sampleAuthors
	Featured bool
}

var sampleAuthors = []sampleAuthor{
	{
		Name:  "Alice Johnson",
		Email: "alice@example.com",
		Bio:   "A passionate writer and technology enthusiast with over 5 years of experience in web development.",
	},
	{
		Name:  "Bob Smith",
		Email: "bob@example.com",
		Bio:   "Creative writer and storyteller who loves sharing experiences and insights about life and technology.",
	},
	{
		Name:  "Carol Davis",
		Email: "carol@example.com",
		Bio:   "Professional blogger and content creator specializing in lifestyle and productivity topics.",
	},
}

var sampleBlogs = []sampleBlog{
	{
		Title: "Getting Started with Go Web Development",
		Content: `Go is a small and fast language that makes it easy to build web services quickly. In this guide, we'll explore the fundamentals of building an HTTP API in Go.

The standard library already ships an HTTP server, and frameworks such as gin add routing, middleware and request binding on top of it. What makes Go special is its simplicity: a single binary, fast builds and a concurrency model that handles many requests without ceremony.

Getting started is straightforward. You can serve a JSON endpoint with a few lines of code, then grow the project into handlers, services and repositories as it evolves. Whether you're building a small personal project or a large application, the same structure scales with you.`,
		Date:     "15-01-2024",
		Author:   0,
		Featured: true,
	},
	{
		Title: "Modern Web Design Principles",
		Content: `Web design has evolved significantly over the past decade. Today's web designers must consider user experience, accessibility, performance, and mobile responsiveness as core principles.

Modern web design emphasizes clean, minimalist layouts that prioritize content and user interaction. The use of white space, typography, and color psychology plays a crucial role in creating engaging user experiences. Responsive design is no longer optional - it's essential for reaching users across all devices.

Key principles include mobile-first design, fast loading times, intuitive navigation, and accessible interfaces. Tools like CSS Grid and Flexbox have revolutionized how we approach layout design, making it easier to create complex, responsive layouts.`,
		Date:     "10-01-2024",
		Author:   1,
		Featured: true,
	},
	{
		Title: "The Art of Creative Writing",
		Content: `Creative writing is a journey of self-expression and imagination. It's about finding your unique voice and sharing stories that resonate with readers. Whether you're writing fiction, poetry, or personal narratives, the fundamentals remain the same.

Developing your writing skills requires practice, patience, and persistence. Start by reading widely in your chosen genre. Pay attention to how successful authors craft their sentences, develop characters, and build tension. Keep a journal to capture ideas and observations from daily life.

The writing process involves multiple stages: brainstorming, drafting, revising, and editing. Don't expect perfection in your first draft. Good writing is rewriting. Set aside dedicated time for writing, create a comfortable workspace, and develop routines that support your creativity.`,
		Date:   "08-01-2024",
		Author: 2,
	},
	{
		Title: "Database Design Best Practices",
		Content: `Effective database design is crucial for building scalable and maintainable applications. A well-designed database ensures data integrity, optimal performance, and easy maintenance.

Start with understanding your data requirements. Identify entities, relationships, and constraints. Normalize your data to eliminate redundancy, but be mindful of over-normalization which can impact performance. Choose appropriate data types and set up proper indexing strategies.

Consider scalability from the beginning. Plan for data growth and query patterns. Use foreign key constraints to maintain referential integrity. Document your schema and establish clear naming conventions for consistency across your development team.`,
		Date:   "05-01-2024",
		Author: 0,
	},
	{
		Title: "Building Responsive User Interfaces",
		Content: `Creating responsive user interfaces that work seamlessly across all devices is a fundamental skill for modern web developers. The mobile-first approach has become the standard in contemporary web development.

CSS frameworks like Bootstrap and Tailwind CSS provide excellent starting points, but understanding the underlying principles is essential. Learn CSS Grid and Flexbox thoroughly - these layout systems give you powerful tools for creating flexible, responsive designs.

Consider performance implications of your design choices. Optimize images, minimize HTTP requests, and use efficient CSS selectors. Test your interfaces on real devices, not just browser dev tools. User experience should be consistent and intuitive regardless of screen size.`,
		Date:   "02-01-2024",
		Author: 1,
	},
	{
		Title: "Productivity Tips for Writers",
		Content: `Writing productivity isn't just about writing faster - it's about writing consistently and effectively. Developing good habits and systems can dramatically improve your output and quality.

Establish a regular writing schedule that works with your natural rhythms. Some writers are most creative in the early morning, while others prefer late-night sessions. Find your optimal time and protect it fiercely.

Use tools that support your workflow. Whether it's a simple text editor or a full-featured writing application, choose tools that don't distract from your creativity. Set realistic daily word count goals and track your progress. Celebrate small wins to maintain motivation over long projects.`,
		Date:   "28-12-2023",
		Author: 2,
	},
}

// Result reports what Run did
type Result struct {
	Skipped bool
	Authors int
	Blogs   int
}

// Run inserts the sample data in one transaction.
// Nothing is written when at least one author already exists.
func Run(ctx context.Context, db *sqlx.DB, authors authorrepo.RepositoryInterface, blogs blogrepo.RepositoryInterface) (*Result, error) {
	count, err := authors.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		log.Info().Int("authors", count).Msg("Database already contains data, skipping seed")
		return &Result{Skipped: true}, nil
	}

	result := &Result{}

	err = database.WithTransaction(ctx, db, func(tx *sqlx.Tx) error {
		created := make([]*authormodel.Author, 0, len(sampleAuthors))
		for _, sa := range sampleAuthors {
			bio := sa.Bio
			a, err := authormodel.NewAuthor(sa.Name, sa.Email, &bio, nil)
			if err != nil {
				return fmt.Errorf("sample author %q: %w", sa.Email, err)
			}
			if err := authors.Create(ctx, tx, a); err != nil {
				return fmt.Errorf("insert author %q: %w", sa.Email, err)
			}
			created = append(created, a)
		}

		for _, sb := range sampleBlogs {
			b, err := blogmodel.NewBlog(blogmodel.NewBlogParams{
				Title:    sb.Title,
				Content:  sb.Content,
				Date:     sb.Date,
				Featured: sb.Featured,
				AuthorID: created[sb.Author].ID,
			})
			if err != nil {
				return fmt.Errorf("sample blog %q: %w", sb.Title, err)
			}
			if err := blogs.Create(ctx, tx, b); err != nil {
				return fmt.Errorf("insert blog %q: %w", sb.Title, err)
			}
		}

		result.Authors = len(created)
		result.Blogs = len(sampleBlogs)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}

	log.Info().Int("authors", result.Authors).Int("blogs", result.Blogs).Msg("Database seeded with sample data")
	return result, nil
}
