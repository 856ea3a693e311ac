package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lielreyter/IDJ/internal/cache"
	apperrors "github.com/lielreyter/IDJ/internal/errors"
	"github.com/lielreyter/IDJ/internal/model"
	"github.com/lielreyter/IDJ/internal/repository"
)

const (
	feedCacheTTL     = 30 * time.Second
	defaultFeedPage  = 1
	defaultFeedLimit = 10
	maxFeedLimit     = 50
)

// VideoResponse is a video shaped for clients: the record plus the counts
// and the viewer-specific like flag.
type VideoResponse struct {
	model.Video
	LikeCount    int  `json:"likeCount"`
	CommentCount int  `json:"commentCount"`
	IsLiked      bool `json:"isLiked"`
}

// Pagination describes one feed page.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// CreateVideoInput carries the fields a client may set on upload.
type CreateVideoInput struct {
	Title        string
	Description  string
	VideoURL     string
	ThumbnailURL string
	Duration     uint
}

// VideoService handles the feed, per-video reads, and like/comment writes.
type VideoService interface {
	Feed(ctx context.Context, page, limit int, viewerID *uuid.UUID) ([]VideoResponse, Pagination, error)
	Get(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*VideoResponse, error)
	Create(ctx context.Context, owner *model.User, input CreateVideoInput) (*model.Video, error)
	Update(ctx context.Context, userID, id uuid.UUID, title, description *string) (*model.Video, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ToggleLike(ctx context.Context, userID, id uuid.UUID) (liked bool, likeCount int64, err error)
	Comments(ctx context.Context, videoID uuid.UUID) ([]model.Comment, error)
	AddComment(ctx context.Context, author *model.User, videoID uuid.UUID, text string) (*model.Comment, error)
	DeleteComment(ctx context.Context, userID, videoID, commentID uuid.UUID) error
}

type videoService struct {
	repo  repository.VideoRepository
	cache *cache.Client
}

// NewVideoService creates a new video service.
func NewVideoService(repo repository.VideoRepository, cache *cache.Client) VideoService {
	return &videoService{
		repo:  repo,
		cache: cache,
	}
}

const anonymousFeedCacheKey = "feed:recent"

type cachedFeed struct {
	Videos     []VideoResponse `json:"videos"`
	Pagination Pagination      `json:"pagination"`
}

// Feed returns one newest-first page of videos. The default page for
// anonymous viewers is served from cache when warm; personalized pages
// always hit the database because isLiked differs per viewer.
func (s *videoService) Feed(ctx context.Context, page, limit int, viewerID *uuid.UUID) ([]VideoResponse, Pagination, error) {
	if page < 1 {
		page = defaultFeedPage
	}
	if limit < 1 {
		limit = defaultFeedLimit
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}

	cacheable := viewerID == nil && page == defaultFeedPage && limit == defaultFeedLimit
	if cacheable {
		if data, _ := s.cache.Get(ctx, anonymousFeedCacheKey); data != nil {
			var cached cachedFeed
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached.Videos, cached.Pagination, nil
			}
		}
	}

	videos, err := s.repo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("list videos: %w", err)
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("count videos: %w", err)
	}

	responses := make([]VideoResponse, 0, len(videos))
	for i := range videos {
		responses = append(responses, toResponse(&videos[i], viewerID))
	}

	pagination := Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: (total + int64(limit) - 1) / int64(limit),
	}

	if cacheable {
		if payload, err := json.Marshal(cachedFeed{Videos: responses, Pagination: pagination}); err == nil {
			_ = s.cache.Set(ctx, anonymousFeedCacheKey, payload, feedCacheTTL)
		}
	}

	return responses, pagination, nil
}

// Get returns one video and bumps its view counter.
func (s *videoService) Get(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*VideoResponse, error) {
	video, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrVideoNotFound
		}
		return nil, fmt.Errorf("find video: %w", err)
	}

	if err := s.repo.IncrementViews(ctx, id); err != nil {
		return nil, fmt.Errorf("increment views: %w", err)
	}
	video.Views++

	resp := toResponse(video, viewerID)
	return &resp, nil
}

// Create stores a new video owned by the caller.
func (s *videoService) Create(ctx context.Context, owner *model.User, input CreateVideoInput) (*model.Video, error) {
	video := &model.Video{
		ID:           uuid.New(),
		Title:        input.Title,
		Description:  input.Description,
		VideoURL:     input.VideoURL,
		ThumbnailURL: input.ThumbnailURL,
		Duration:     input.Duration,
		UserID:       owner.ID,
		Username:     owner.Username,
	}
	if err := s.repo.Create(ctx, video); err != nil {
		return nil, fmt.Errorf("create video: %w", err)
	}
	s.invalidateFeed(ctx)
	return video, nil
}

// Update edits title and description; only the owner may edit.
func (s *videoService) Update(ctx context.Context, userID, id uuid.UUID, title, description *string) (*model.Video, error) {
	video, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrVideoNotFound
		}
		return nil, fmt.Errorf("find video: %w", err)
	}
	if video.UserID != userID {
		return nil, apperrors.ErrForbidden
	}

	if title != nil {
		video.Title = *title
	}
	if description != nil {
		video.Description = *description
	}
	if err := s.repo.Update(ctx, video); err != nil {
		return nil, fmt.Errorf("update video: %w", err)
	}
	s.invalidateFeed(ctx)
	return video, nil
}

// Delete removes a video; only the owner may delete.
func (s *videoService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	video, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrVideoNotFound
		}
		return fmt.Errorf("find video: %w", err)
	}
	if video.UserID != userID {
		return apperrors.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	s.invalidateFeed(ctx)
	return nil
}

// ToggleLike flips the caller's like on a video and reports the new state.
func (s *videoService) ToggleLike(ctx context.Context, userID, id uuid.UUID) (bool, int64, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, 0, apperrors.ErrVideoNotFound
		}
		return false, 0, fmt.Errorf("find video: %w", err)
	}

	liked, err := s.repo.HasLiked(ctx, id, userID)
	if err != nil {
		return false, 0, fmt.Errorf("check like: %w", err)
	}

	if liked {
		err = s.repo.RemoveLike(ctx, id, userID)
	} else {
		err = s.repo.AddLike(ctx, id, userID)
	}
	if err != nil {
		return false, 0, fmt.Errorf("toggle like: %w", err)
	}

	count, err := s.repo.CountLikes(ctx, id)
	if err != nil {
		return false, 0, fmt.Errorf("count likes: %w", err)
	}

	s.invalidateFeed(ctx)
	return !liked, count, nil
}

// Comments lists a video's comments, oldest first.
func (s *videoService) Comments(ctx context.Context, videoID uuid.UUID) ([]model.Comment, error) {
	if _, err := s.repo.FindByID(ctx, videoID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrVideoNotFound
		}
		return nil, fmt.Errorf("find video: %w", err)
	}
	comments, err := s.repo.ListComments(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// AddComment appends a comment by the caller.
func (s *videoService) AddComment(ctx context.Context, author *model.User, videoID uuid.UUID, text string) (*model.Comment, error) {
	if _, err := s.repo.FindByID(ctx, videoID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrVideoNotFound
		}
		return nil, fmt.Errorf("find video: %w", err)
	}

	comment := &model.Comment{
		ID:       uuid.New(),
		VideoID:  videoID,
		UserID:   author.ID,
		Username: author.Username,
		Text:     text,
	}
	if err := s.repo.AddComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	s.invalidateFeed(ctx)
	return comment, nil
}

// DeleteComment removes a comment; only its author may delete it.
func (s *videoService) DeleteComment(ctx context.Context, userID, videoID, commentID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, videoID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrVideoNotFound
		}
		return fmt.Errorf("find video: %w", err)
	}

	comment, err := s.repo.FindCommentByID(ctx, videoID, commentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrCommentNotFound
		}
		return fmt.Errorf("find comment: %w", err)
	}
	if comment.UserID != userID {
		return apperrors.ErrForbidden
	}

	if err := s.repo.DeleteComment(ctx, videoID, commentID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	s.invalidateFeed(ctx)
	return nil
}

func (s *videoService) invalidateFeed(ctx context.Context) {
	_ = s.cache.Delete(ctx, anonymousFeedCacheKey)
}

func toResponse(video *model.Video, viewerID *uuid.UUID) VideoResponse {
	resp := VideoResponse{
		Video:        *video,
		LikeCount:    len(video.Likes),
		CommentCount: len(video.Comments),
	}
	if viewerID != nil {
		for _, like := range video.Likes {
			if like.UserID == *viewerID {
				resp.IsLiked = true
				break
			}
		}
	}
	return resp
}
