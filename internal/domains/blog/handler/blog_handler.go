package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/domains/blog/model"
	"blog-backend/internal/domains/blog/service"
	"blog-backend/internal/shared/response"
)

type BlogHandler struct {
	service service.ServiceInterface
}

func NewBlogHandler(svc service.ServiceInterface) *BlogHandler {
	return &BlogHandler{
		service: svc,
	}
}

// ════════════════════════════════════════════════════════════════
// LISTING CONTRACTS
// ════════════════════════════════════════════════════════════════

// Listing - GET /blogs?sort=&search=
// Answers {"blogs":[{id,title,content,date,author}]} with the author name only.
func (h *BlogHandler) Listing(c *gin.Context) {
	filter := model.ListFilter{
		Search: c.Query("search"),
		Sort:   model.ParseSort(c.DefaultQuery("sort", string(model.SortNewest))),
	}

	blogs, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("Error loading blog listing")
		response.InternalServerError(c, "An error occurred while loading blogs.")
		return
	}

	c.JSON(http.StatusOK, model.ToListing(blogs))
}

// APIBlogs - GET /api/blogs
// Every blog newest first, content cut to 200 characters.
func (h *BlogHandler) APIBlogs(c *gin.Context) {
	blogs, err := h.service.List(c.Request.Context(), model.ListFilter{Sort: model.SortNewest})
	if err != nil {
		log.Error().Err(err).Msg("Error in API blogs")
		c.JSON(http.StatusInternalServerError, model.APIErrorResponse{
			Success: false,
			Error:   "Failed to fetch blogs",
		})
		return
	}

	c.JSON(http.StatusOK, model.ToAPIBlogs(blogs))
}

// ════════════════════════════════════════════════════════════════
// PAGES: GET /api/v1/home, GET /api/v1/about
// ════════════════════════════════════════════════════════════════

func (h *BlogHandler) Home(c *gin.Context) {
	recent, featured, err := h.service.Home(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", model.HomeResponse{
		Recent:   model.ToResponses(recent, false),
		Featured: model.ToResponses(featured, false),
	})
}

func (h *BlogHandler) About(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", stats)
}

// ════════════════════════════════════════════════════════════════
// LIST & SEARCH: GET /api/v1/blogs, GET /api/v1/search
// ════════════════════════════════════════════════════════════════

func (h *BlogHandler) List(c *gin.Context) {
	filter := model.ListFilter{
		Search: c.Query("search"),
		Sort:   model.ParseSort(c.Query("sort")),
	}

	blogs, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, model.ToResponses(blogs, false), &response.Meta{
		Total:  len(blogs),
		Search: filter.Search,
		Sort:   string(filter.Sort),
	})
}

func (h *BlogHandler) Search(c *gin.Context) {
	q := c.Query("q")

	blogs, err := h.service.Search(c.Request.Context(), q)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, model.ToResponses(blogs, false), &response.Meta{
		Total:  len(blogs),
		Search: q,
	})
}

// ════════════════════════════════════════════════════════════════
// ACCESSORS: GET /api/v1/blogs/featured|recent|popular?limit=
// ════════════════════════════════════════════════════════════════

func (h *BlogHandler) Featured(c *gin.Context) {
	blogs, err := h.service.Featured(c.Request.Context(), queryLimit(c))
	h.respondList(c, blogs, err)
}

func (h *BlogHandler) Recent(c *gin.Context) {
	blogs, err := h.service.Recent(c.Request.Context(), queryLimit(c))
	h.respondList(c, blogs, err)
}

func (h *BlogHandler) Popular(c *gin.Context) {
	blogs, err := h.service.Popular(c.Request.Context(), queryLimit(c))
	h.respondList(c, blogs, err)
}

func (h *BlogHandler) respondList(c *gin.Context, blogs []model.BlogWithAuthor, err error) {
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, model.ToResponses(blogs, false), &response.Meta{Total: len(blogs)})
}

// ════════════════════════════════════════════════════════════════
// PUBLISH: POST /api/v1/blogs
// ════════════════════════════════════════════════════════════════

func (h *BlogHandler) Publish(c *gin.Context) {
	var req model.PublishBlogRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	blog, err := h.service.Publish(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated,
		`Blog "`+blog.Title+`" has been published successfully!`,
		blog.ToResponse(true))
}

// ════════════════════════════════════════════════════════════════
// READ ONE: GET /api/v1/blogs/:id, GET /api/v1/blogs/slug/:slug
// ════════════════════════════════════════════════════════════════

func (h *BlogHandler) Detail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	blog, related, err := h.service.Detail(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", model.BlogDetailResponse{
		Blog:    blog.ToResponse(true),
		Related: model.ToResponses(related, false),
	})
}

func (h *BlogHandler) GetBySlug(c *gin.Context) {
	blog, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", blog.ToResponse(true))
}

// ════════════════════════════════════════════════════════════════
// COUNTERS: POST /:id/view, POST /:id/like, DELETE /:id/like
// ════════════════════════════════════════════════════════════════

func (h *BlogHandler) RecordView(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	counters, err := h.service.RecordView(c.Request.Context(), id)
	h.respondCounters(c, counters, err)
}

func (h *BlogHandler) Like(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	counters, err := h.service.Like(c.Request.Context(), id)
	h.respondCounters(c, counters, err)
}

func (h *BlogHandler) Unlike(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	counters, err := h.service.Unlike(c.Request.Context(), id)
	h.respondCounters(c, counters, err)
}

func (h *BlogHandler) respondCounters(c *gin.Context, counters *model.Counters, err error) {
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", counters)
}

// ════════════════════════════════════════════════════════════════
// HELPERS
// ════════════════════════════════════════════════════════════════

func (h *BlogHandler) handleError(c *gin.Context, err error) {
	if errors.Is(err, model.ErrPublishFailed) {
		_ = c.Error(err)
		response.ErrorResponse(c, http.StatusInternalServerError, model.ToErrorCode(err), model.MsgPublishFailed)
		return
	}
	response.HandleError(c, err, model.ToHTTPStatus, model.ToErrorCode)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "Invalid blog ID")
		return 0, false
	}
	return id, true
}

// queryLimit reads ?limit=; anything missing or invalid means "use the default"
func queryLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		return 0
	}
	return limit
}
