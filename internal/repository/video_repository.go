package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lielreyter/IDJ/internal/model"
)

// VideoRepository defines video, like, and comment persistence operations.
type VideoRepository interface {
	Create(ctx context.Context, video *model.Video) error
	Update(ctx context.Context, video *model.Video) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Video, error)
	List(ctx context.Context, offset, limit int) ([]model.Video, error)
	Count(ctx context.Context) (int64, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error

	AddLike(ctx context.Context, videoID, userID uuid.UUID) error
	RemoveLike(ctx context.Context, videoID, userID uuid.UUID) error
	HasLiked(ctx context.Context, videoID, userID uuid.UUID) (bool, error)
	CountLikes(ctx context.Context, videoID uuid.UUID) (int64, error)

	AddComment(ctx context.Context, comment *model.Comment) error
	FindCommentByID(ctx context.Context, videoID, commentID uuid.UUID) (*model.Comment, error)
	ListComments(ctx context.Context, videoID uuid.UUID) ([]model.Comment, error)
	DeleteComment(ctx context.Context, videoID, commentID uuid.UUID) error
}

type videoRepository struct {
	db *gorm.DB
}

// NewVideoRepository creates a new video repository.
func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

// Create creates a new video.
func (r *videoRepository) Create(ctx context.Context, video *model.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

// Update updates an existing video.
func (r *videoRepository) Update(ctx context.Context, video *model.Video) error {
	return r.db.WithContext(ctx).Save(video).Error
}

// Delete removes a video; likes and comments go with it.
func (r *videoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select("Likes", "Comments").
		Delete(&model.Video{ID: id}).Error
}

// FindByID finds a video by ID with its likes and comments loaded.
func (r *videoRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	var video model.Video
	if err := r.db.WithContext(ctx).
		Preload("Likes").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ?", id).First(&video).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

// List returns a newest-first page of videos with likes and comments loaded.
func (r *videoRepository) List(ctx context.Context, offset, limit int) ([]model.Video, error) {
	var videos []model.Video
	if err := r.db.WithContext(ctx).
		Preload("Likes").
		Preload("Comments").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

// Count returns the total number of videos.
func (r *videoRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Video{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// IncrementViews bumps the view counter atomically.
func (r *videoRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Video{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).Error
}

// AddLike records a like for the pair; liking twice is a no-op.
func (r *videoRepository) AddLike(ctx context.Context, videoID, userID uuid.UUID) error {
	like := model.Like{VideoID: videoID, UserID: userID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like).Error
}

// RemoveLike removes a like for the pair if present.
func (r *videoRepository) RemoveLike(ctx context.Context, videoID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("video_id = ? AND user_id = ?", videoID, userID).
		Delete(&model.Like{}).Error
}

// HasLiked reports whether the user has liked the video.
func (r *videoRepository) HasLiked(ctx context.Context, videoID, userID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("video_id = ? AND user_id = ?", videoID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountLikes returns the number of likes on a video.
func (r *videoRepository) CountLikes(ctx context.Context, videoID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("video_id = ?", videoID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// AddComment appends a comment to a video.
func (r *videoRepository) AddComment(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// FindCommentByID finds one comment on the given video.
func (r *videoRepository) FindCommentByID(ctx context.Context, videoID, commentID uuid.UUID) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND video_id = ?", commentID, videoID).
		First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListComments returns all comments on a video, oldest first.
func (r *videoRepository) ListComments(ctx context.Context, videoID uuid.UUID) ([]model.Comment, error) {
	var comments []model.Comment
	if err := r.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteComment removes one comment from a video.
func (r *videoRepository) DeleteComment(ctx context.Context, videoID, commentID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND video_id = ?", commentID, videoID).
		Delete(&model.Comment{}).Error
}
