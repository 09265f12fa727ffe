package service

import (
	"time"
	"tutochat/chat-api/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TokenCleanup periodically removes validation tokens that expired and
// aren't needed anymore. Blocks, so run it in a goroutine.
func TokenCleanup(t time.Duration, db *gorm.DB) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Token cleanup attached", zap.Duration("tick_every", t))

	for range ticker.C {
		var toCleanIDs []int

		err := db.
			Model(model.ValidationToken{}).
			Where("expires_at < ?", time.Now()).
			Select("id").
			Find(&toCleanIDs).
			Error
		if err != nil {
			zap.L().Error("Failed to query db for tokens to clean", zap.Error(err))
			continue
		}

		if len(toCleanIDs) > 0 {
			zap.L().Debug("Cleaning up expired tokens", zap.Int("count", len(toCleanIDs)))

			err = db.
				Where("id IN ?", toCleanIDs).
				Delete(model.ValidationToken{}).
				Error
			if err != nil {
				zap.L().Error("Failed to cleanup database", zap.Error(err))
			}
		}
	}
}
