package model

import (
	"time"

	"github.com/google/uuid"
)

// Like records that a user liked a video. The composite primary key keeps
// the pair unique so a double-tap cannot like twice.
type Like struct {
	VideoID   uuid.UUID `json:"videoId" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `json:"userId" gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
}
