package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/lielreyter/IDJ/internal/errors"
	"github.com/lielreyter/IDJ/internal/middleware"
	"github.com/lielreyter/IDJ/internal/service"
)

// VideoHandler handles the video feed, likes, and comments.
type VideoHandler struct {
	videoService service.VideoService
}

// NewVideoHandler creates a new video handler.
func NewVideoHandler(videoService service.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

// CreateVideoRequest represents a video upload.
type CreateVideoRequest struct {
	Title        string `json:"title" validate:"max=100"`
	Description  string `json:"description" validate:"max=500"`
	VideoURL     string `json:"videoUrl" validate:"required,url"`
	ThumbnailURL string `json:"thumbnailUrl" validate:"omitempty,url"`
	Duration     uint   `json:"duration"`
}

// UpdateVideoRequest represents an edit to title or description.
type UpdateVideoRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// CommentRequest represents a new comment.
type CommentRequest struct {
	Text string `json:"text" validate:"required,max=500"`
}

// Feed godoc
// @Summary Get the paginated video feed
// @Tags videos
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} map[string]interface{}
// @Router /videos [get]
func (h *VideoHandler) Feed(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	videos, pagination, err := h.videoService.Feed(c.Request().Context(), page, limit, viewerID(c))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"videos":     videos,
		"pagination": pagination,
	})
}

// Get godoc
// @Summary Get a single video
// @Tags videos
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /videos/{id} [get]
func (h *VideoHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	video, err := h.videoService.Get(c.Request().Context(), id, viewerID(c))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"video":   video,
	})
}

// Create godoc
// @Summary Upload a new video
// @Tags videos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateVideoRequest true "Video data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /videos [post]
func (h *VideoHandler) Create(c echo.Context) error {
	var req CreateVideoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	video, err := h.videoService.Create(c.Request().Context(), middleware.CurrentUser(c), service.CreateVideoInput{
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
		Duration:     req.Duration,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"video":   video,
	})
}

// Update godoc
// @Summary Edit a video's title or description
// @Tags videos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Video ID"
// @Param request body UpdateVideoRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /videos/{id} [put]
func (h *VideoHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateVideoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	video, err := h.videoService.Update(c.Request().Context(), middleware.CurrentUser(c).ID, id, req.Title, req.Description)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"video":   video,
	})
}

// Delete godoc
// @Summary Delete a video
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Video ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /videos/{id} [delete]
func (h *VideoHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.videoService.Delete(c.Request().Context(), middleware.CurrentUser(c).ID, id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Video deleted successfully",
	})
}

// ToggleLike godoc
// @Summary Like or unlike a video
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Video ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /videos/{id}/like [put]
func (h *VideoHandler) ToggleLike(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	liked, likeCount, err := h.videoService.ToggleLike(c.Request().Context(), middleware.CurrentUser(c).ID, id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"isLiked":   liked,
		"likeCount": likeCount,
	})
}

// ListComments godoc
// @Summary List a video's comments
// @Tags videos
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /videos/{id}/comments [get]
func (h *VideoHandler) ListComments(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	comments, err := h.videoService.Comments(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"comments": comments,
	})
}

// AddComment godoc
// @Summary Comment on a video
// @Tags videos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Video ID"
// @Param request body CommentRequest true "Comment text"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /videos/{id}/comments [post]
func (h *VideoHandler) AddComment(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	req.Text = strings.TrimSpace(req.Text)
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Comment text is required")
	}

	comment, err := h.videoService.AddComment(c.Request().Context(), middleware.CurrentUser(c), id, req.Text)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"comment": comment,
	})
}

// DeleteComment godoc
// @Summary Delete a comment
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Video ID"
// @Param commentId path string true "Comment ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /videos/{id}/comments/{commentId} [delete]
func (h *VideoHandler) DeleteComment(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	commentID, err := parseID(c, "commentId")
	if err != nil {
		return err
	}

	if err := h.videoService.DeleteComment(c.Request().Context(), middleware.CurrentUser(c).ID, id, commentID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Comment deleted successfully",
	})
}

func parseID(c echo.Context, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func viewerID(c echo.Context) *uuid.UUID {
	if user := middleware.CurrentUser(c); user != nil {
		return &user.ID
	}
	return nil
}
