package security

import (
	"errors"
	"time"
	"tutochat/chat-api/internal/model"
	"tutochat/chat-api/pkg/util"
)

const (
	tokenSize = 32

	// ValidationTokenTTL is how long a freshly issued token stays
	// redeemable. CleanupTTL is how long the used/expired row is kept
	// around before the cleanup job removes it.
	ValidationTokenTTL = time.Minute * 30
	CleanupTTL         = time.Hour * 24 * 60
)

// MakeValidationToken builds a durable one-time token row for a pending
// user. The token itself is a crypto-random hex string.
func MakeValidationToken(userID string) (*model.ValidationToken, error) {
	if userID == "" {
		return nil, errors.New("no user ID provided")
	}

	token, err := util.GenerateToken(tokenSize)
	if err != nil {
		return nil, err
	}

	cleanupAt := time.Now().Add(CleanupTTL)

	return &model.ValidationToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(ValidationTokenTTL),
		CreatedAt: time.Now(),
		CleanupAt: &cleanupAt,
		Used:      false,
	}, nil
}
