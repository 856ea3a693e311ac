package model

import (
	"time"

	"github.com/google/uuid"
)

// Video is one entry in the feed. Likes and comments are owned child rows
// with explicit ids, loaded alongside the video where the feed needs counts.
type Video struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Title        string    `json:"title" gorm:"size:100"`
	Description  string    `json:"description" gorm:"size:500"`
	VideoURL     string    `json:"videoUrl" gorm:"size:512;not null"`
	ThumbnailURL string    `json:"thumbnailUrl" gorm:"size:512"`
	UserID       uuid.UUID `json:"userId" gorm:"type:char(36);not null;index:idx_videos_user_created,priority:1"`
	Username     string    `json:"username" gorm:"size:30;not null"`
	Views        uint      `json:"views" gorm:"not null;default:0"`
	Duration     uint      `json:"duration"` // seconds

	Likes    []Like    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Comments []Comment `json:"-" gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"createdAt" gorm:"index:idx_videos_user_created,priority:2;index:idx_videos_created"`
	UpdatedAt time.Time `json:"updatedAt"`
}
