package journal

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"trade-journal-go/internal/models"
)

const minUsernameLen = 3

// SetUser records a login. The username must have at least three characters and the
// PIN exactly four digits. CreatedAt survives repeated logins of the same user.
func (j *Journal) SetUser(ctx context.Context, username, pin string) (models.UserProfile, error) {
	username = strings.TrimSpace(username)
	if len([]rune(username)) < minUsernameLen {
		return models.UserProfile{}, fmt.Errorf("%w: username must be at least %d characters", ErrInvalidProfile, minUsernameLen)
	}
	if !validPIN(pin) {
		return models.UserProfile{}, fmt.Errorf("%w: PIN must be exactly 4 digits", ErrInvalidProfile)
	}

	now := j.now().UTC()
	saved, err := j.user.update(ctx, func(current *models.UserProfile) (*models.UserProfile, error) {
		profile := &models.UserProfile{Username: username, PIN: pin, LastLogin: now, CreatedAt: now}
		if current != nil && current.Username == username && !current.CreatedAt.IsZero() {
			profile.CreatedAt = current.CreatedAt
		}
		return profile, nil
	})
	if err != nil {
		return models.UserProfile{}, err
	}

	j.logger.Info("User logged in", zap.String("username", username))
	return *saved, nil
}

// GetUser returns the current profile; ok is false when nobody is logged in.
func (j *Journal) GetUser(ctx context.Context) (profile models.UserProfile, ok bool, err error) {
	current, err := j.user.get(ctx)
	if err != nil || current == nil {
		return models.UserProfile{}, false, err
	}
	return *current, true, nil
}

// ClearUser logs the current user out. Trades are untouched.
func (j *Journal) ClearUser(ctx context.Context) error {
	if err := j.user.set(ctx, nil); err != nil {
		return err
	}
	j.logger.Info("User logged out")
	return nil
}

func validPIN(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
