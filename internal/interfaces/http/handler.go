package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmanzanog/folio/internal/domain"
)

// ContentService is served by both the origin server and the local sync daemon.
type ContentService interface {
	GetBlogPosts(ctx context.Context) ([]domain.BlogPost, error)
	GetBlogPost(ctx context.Context, id string) (*domain.BlogPost, error)
	CreateBlogPost(ctx context.Context, draft domain.BlogPostDraft) (*domain.BlogPost, error)
	UpdateBlogPost(ctx context.Context, id string, patch domain.BlogPostPatch) (*domain.BlogPost, error)
	DeleteBlogPost(ctx context.Context, id string) error

	GetPortfolioItems(ctx context.Context) ([]domain.PortfolioItem, error)
	GetPortfolioItem(ctx context.Context, id string) (*domain.PortfolioItem, error)
	CreatePortfolioItem(ctx context.Context, draft domain.PortfolioItemDraft) (*domain.PortfolioItem, error)
	UpdatePortfolioItem(ctx context.Context, id string, patch domain.PortfolioItemPatch) (*domain.PortfolioItem, error)
	DeletePortfolioItem(ctx context.Context, id string) error
}

// SyncStatusProvider reports when the local cache was last refreshed.
type SyncStatusProvider interface {
	LastSync(ctx context.Context) (time.Time, bool, error)
}

type Handler struct {
	contentService ContentService
}

func NewHandler(contentService ContentService) *Handler {
	return &Handler{
		contentService: contentService,
	}
}

type ErrorResponse struct {
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type SyncStatusResponse struct {
	// LastDataSync is epoch milliseconds, nil before the first sync.
	LastDataSync *int64 `json:"lastDataSync"`
}

const (
	postNotFound = "Post not found"
	itemNotFound = "Item not found"
)

// statusFor maps a service error onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	}

	var de *domain.Error
	if errors.As(err, &de) {
		switch {
		case de.Kind == domain.ErrorKindNetwork:
			return http.StatusServiceUnavailable
		case de.Kind == domain.ErrorKindServer && de.StatusCode >= 400 && de.StatusCode < 500:
			// Client mistakes reported upstream stay client mistakes.
			return de.StatusCode
		}
	}
	return http.StatusInternalServerError
}

func (h *Handler) writeError(c *gin.Context, err error, notFoundMessage string) {
	status := statusFor(err)

	message := err.Error()
	var de *domain.Error
	switch {
	case status == http.StatusNotFound:
		message = notFoundMessage
	case errors.As(err, &de):
		message = de.UserMessage()
	}

	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "Request failed", "path", c.FullPath(), "status", status, "error", err)
	} else {
		slog.WarnContext(c.Request.Context(), "Request rejected", "path", c.FullPath(), "status", status, "error", err)
	}
	c.JSON(status, ErrorResponse{Message: message})
}

func (h *Handler) bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		slog.WarnContext(c.Request.Context(), "Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return false
	}
	return true
}

func (h *Handler) ListBlogPosts(c *gin.Context) {
	posts, err := h.contentService.GetBlogPosts(c.Request.Context())
	if err != nil {
		h.writeError(c, err, postNotFound)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *Handler) GetBlogPost(c *gin.Context) {
	post, err := h.contentService.GetBlogPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, postNotFound)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) CreateBlogPost(c *gin.Context) {
	var draft domain.BlogPostDraft
	if !h.bindJSON(c, &draft) {
		return
	}

	post, err := h.contentService.CreateBlogPost(c.Request.Context(), draft)
	if err != nil {
		h.writeError(c, err, postNotFound)
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *Handler) UpdateBlogPost(c *gin.Context) {
	var patch domain.BlogPostPatch
	if !h.bindJSON(c, &patch) {
		return
	}

	post, err := h.contentService.UpdateBlogPost(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.writeError(c, err, postNotFound)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) DeleteBlogPost(c *gin.Context) {
	if err := h.contentService.DeleteBlogPost(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err, postNotFound)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Post deleted"})
}

func (h *Handler) ListPortfolioItems(c *gin.Context) {
	items, err := h.contentService.GetPortfolioItems(c.Request.Context())
	if err != nil {
		h.writeError(c, err, itemNotFound)
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) GetPortfolioItem(c *gin.Context) {
	item, err := h.contentService.GetPortfolioItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, itemNotFound)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *Handler) CreatePortfolioItem(c *gin.Context) {
	var draft domain.PortfolioItemDraft
	if !h.bindJSON(c, &draft) {
		return
	}

	item, err := h.contentService.CreatePortfolioItem(c.Request.Context(), draft)
	if err != nil {
		h.writeError(c, err, itemNotFound)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *Handler) UpdatePortfolioItem(c *gin.Context) {
	var patch domain.PortfolioItemPatch
	if !h.bindJSON(c, &patch) {
		return
	}

	item, err := h.contentService.UpdatePortfolioItem(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.writeError(c, err, itemNotFound)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *Handler) DeletePortfolioItem(c *gin.Context) {
	if err := h.contentService.DeletePortfolioItem(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err, itemNotFound)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Item deleted"})
}

// SyncStatus answers the time of the last successful sync.
func SyncStatus(provider SyncStatusProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		last, ok, err := provider.LastSync(c.Request.Context())
		if err != nil {
			slog.ErrorContext(c.Request.Context(), "Failed to read sync status", "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Message: err.Error()})
			return
		}

		var resp SyncStatusResponse
		if ok {
			ms := last.UnixMilli()
			resp.LastDataSync = &ms
		}
		c.JSON(http.StatusOK, resp)
	}
}
