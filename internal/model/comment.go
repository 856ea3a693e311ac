package model

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a user comment on a video.
type Comment struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	VideoID   uuid.UUID `json:"videoId" gorm:"type:char(36);not null;index"`
	UserID    uuid.UUID `json:"userId" gorm:"type:char(36);not null"`
	Username  string    `json:"username" gorm:"size:30;not null"`
	Text      string    `json:"text" gorm:"size:500;not null"`
	CreatedAt time.Time `json:"createdAt"`
}
