package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/domains/author/model"
	"blog-backend/internal/domains/author/service"
	"blog-backend/internal/shared/response"
)

type AuthorHandler struct {
	service service.ServiceInterface
}

func NewAuthorHandler(svc service.ServiceInterface) *AuthorHandler {
	return &AuthorHandler{
		service: svc,
	}
}

// ════════════════════════════════════════════════════════════════
// GET OR CREATE: POST /api/v1/authors
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) GetOrCreate(c *gin.Context) {
	var req model.GetOrCreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	a, created, err := h.service.GetOrCreate(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err, model.ToHTTPStatus, model.ToErrorCode)
		return
	}

	if created {
		response.Success(c, http.StatusCreated, "Author created successfully", a.ToResponse())
		return
	}
	response.Success(c, http.StatusOK, "Author already exists", a.ToResponse())
}

// ════════════════════════════════════════════════════════════════
// PROFILE: GET /api/v1/authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) GetProfile(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err, model.ToHTTPStatus, model.ToErrorCode)
		return
	}

	response.Success(c, http.StatusOK, "Get author successfully", profile)
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /api/v1/authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.HandleError(c, err, model.ToHTTPStatus, model.ToErrorCode)
		return
	}

	response.Success(c, http.StatusOK, "Author deleted successfully", nil)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "Invalid author ID")
		return 0, false
	}
	return id, true
}
