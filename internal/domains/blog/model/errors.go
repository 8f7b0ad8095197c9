package model

import (
	"errors"
	"net/http"

	"blog-backend/internal/shared/apperr"
)

var (
	ErrBlogNotFound  = errors.New("blog not found")
	ErrDuplicateSlug = errors.New("blog with this slug already exists")
	ErrEmptySearch   = errors.New("search query is required")
	ErrDatabaseQuery = errors.New("database query error")

	// ErrPublishFailed is the generic failure of the publish unit of work
	ErrPublishFailed = errors.New("publish failed")
)

// User facing messages for uniqueness conflicts that survived every retry
const (
	MsgDuplicateTitle = "A blog with this title already exists. Please choose a different title."
	MsgDuplicateEmail = "This email address is already in use."
	MsgPublishFailed  = "An error occurred while publishing your blog. Please try again."
)

var blogErrorMap = map[error]struct {
	Status int
	Code   string
}{
	ErrBlogNotFound:  {Status: http.StatusNotFound, Code: "BLOG_NOT_FOUND"},
	ErrDuplicateSlug: {Status: http.StatusConflict, Code: "DUPLICATE_SLUG"},
	ErrEmptySearch:   {Status: http.StatusBadRequest, Code: "EMPTY_SEARCH"},
	ErrPublishFailed: {Status: http.StatusInternalServerError, Code: "PUBLISH_FAILED"},
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	if errors.Is(err, apperr.ErrValidation) {
		return http.StatusBadRequest
	}
	for sentinel, e := range blogErrorMap {
		if errors.Is(err, sentinel) {
			return e.Status
		}
	}
	return http.StatusInternalServerError
}

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	if errors.Is(err, apperr.ErrValidation) {
		return "VALIDATION_ERROR"
	}
	for sentinel, e := range blogErrorMap {
		if errors.Is(err, sentinel) {
			return e.Code
		}
	}
	return "INTERNAL_ERROR"
}
