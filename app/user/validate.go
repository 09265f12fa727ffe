package user

import (
	"errors"
	"net/http"
	"time"
	"tutochat/chat-api/internal"
	"tutochat/chat-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var errTokenAlreadyUsed = errors.New("validation token already redeemed")

// UserValidate redeems a one-time validation token and activates the
// associated account. Unknown, used and expired tokens are all reported
// the same way so the token can't be probed.
func UserValidate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No validation token provided",
			"requestID": requestID,
		})
		return
	}

	var record model.ValidationToken

	err := d.DB.
		Where("token = ?", token).
		First(&record).
		Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Token expired or invalid",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to get validation token record", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if record.Used || record.ExpiresAt.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Token expired or invalid",
			"requestID": requestID,
		})
		return
	}

	err = redeemToken(d.DB, &record)
	if err != nil {
		if errors.Is(err, errTokenAlreadyUsed) {
			// A concurrent redemption got there first; the token is
			// spent either way
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Token expired or invalid",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to validate account",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update user and token in transaction", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Account validated successfully. You can now log in",
		"requestID": requestID,
	})
}

// redeemToken marks the token used and activates its user in one
// transaction. The flip is conditional on the token still being unused,
// so of two concurrent redemptions exactly one wins; the loser gets
// errTokenAlreadyUsed.
func redeemToken(db *gorm.DB, record *model.ValidationToken) error {
	return db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.ValidationToken{}).
			Where("id = ? AND used = ?", record.ID, false).
			Updates(map[string]any{
				"used":    true,
				"used_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return errTokenAlreadyUsed
		}

		return tx.Model(&model.User{}).
			Where("id = ?", record.UserID).
			Update("active", true).Error
	})
}
