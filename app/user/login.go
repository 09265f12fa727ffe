package user

import (
	"net/http"
	"tutochat/chat-api/internal"
	"tutochat/chat-api/internal/model"
	"tutochat/chat-api/pkg/middleware"
	"tutochat/chat-api/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type loginBody struct {
	Pseudo   string `json:"pseudo"`
	Password string `json:"password"`
}

// UserLogin checks credentials and establishes a cookie session. Inactive
// accounts are refused until the validation link has been used.
func UserLogin(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.Pseudo == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Pseudo field can't be empty",
			"requestID": requestID,
		})
		return
	}

	if data.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Password field can't be empty",
			"requestID": requestID,
		})
		return
	}

	var user model.User

	if err := d.DB.Where("pseudo = ?", data.Pseudo).First(&user).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     "Unknown user",
			"requestID": requestID,
		})
		return
	}

	ok, err := d.Argon.VerifyPasswd(data.Password, user.PasswordHash)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to verify password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     "Invalid credentials",
			"requestID": requestID,
		})
		return
	}

	if !user.Active {
		c.JSON(http.StatusForbidden, gin.H{
			"error":     "Account not validated. Check your inbox for the validation link",
			"requestID": requestID,
		})
		return
	}

	sessionToken, err := security.MakeSessionToken(user.ID, user.Pseudo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate session token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	sslEnabled := viper.GetBool("host.ssl.enabled")

	c.SetCookie(middleware.SessionCookie, sessionToken, int(security.SessionTTL.Seconds()), "/", "", sslEnabled, true)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"pseudo":  user.Pseudo,
	})
}
