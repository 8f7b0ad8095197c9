package model

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"blog-backend/internal/shared/apperr"
)

const (
	MaxNameLength      = 100
	MinFormNameLength  = 2
	MaxEmailLength     = 120
	MaxAvatarURLLength = 200

	// Shown when the author has no name to take an initial from
	FallbackInitial = "A"
)

// EmailPattern is the local@domain.tld shape accepted for author emails
var EmailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Author writes blogs. Email is the natural key: it is unique and stored lowercase.
type Author struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Bio       *string   `json:"bio" db:"bio"`
	AvatarURL *string   `json:"avatar_url" db:"avatar_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewAuthor normalises and validates a new author.
// Name and bio are trimmed (an empty bio becomes nil), email is trimmed and lowercased.
func NewAuthor(name, email string, bio, avatarURL *string) (*Author, error) {
	a := &Author{
		Name:      strings.TrimSpace(name),
		Email:     NormalizeEmail(email),
		Bio:       trimOptional(bio),
		AvatarURL: trimOptional(avatarURL),
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks the entity invariants
func (a Author) Validate() error {
	err := validation.ValidateStruct(&a,
		validation.Field(&a.Name, nameRules()...),
		validation.Field(&a.Email,
			validation.Required.Error("Author email is required."),
			validation.RuneLength(0, MaxEmailLength).Error("Author email is too long."),
			validation.Match(EmailPattern).Error("Invalid email format."),
		),
		validation.Field(&a.AvatarURL,
			validation.RuneLength(0, MaxAvatarURLLength).Error("Avatar URL is too long."),
			is.URL.Error("Avatar URL must be a valid URL."),
		),
	)
	return apperr.FromOzzo(err, "name", "email", "avatar_url")
}

// ValidateName checks a trimmed name against the same rules a new author gets.
// Renames of an existing author go through it before the row is updated.
func ValidateName(name string) error {
	err := validation.Errors{
		"name": validation.Validate(name, nameRules()...),
	}.Filter()
	return apperr.FromOzzo(err, "name")
}

func nameRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("Author name is required."),
		validation.RuneLength(0, MaxNameLength).Error("Author name is too long."),
	}
}

// NormalizeEmail is the stored form of an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AvatarInitial is the first letter of the name, uppercased
func (a *Author) AvatarInitial() string {
	for _, r := range a.Name {
		return string(unicode.ToUpper(r))
	}
	return FallbackInitial
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
