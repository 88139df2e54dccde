package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"deckbuilder/config"
	"deckbuilder/database"
	"deckbuilder/logger"
	"deckbuilder/metrics"
	"deckbuilder/models"
	"deckbuilder/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	UserCacheKeyPrefix     = "user_session:"
	userCacheDuration      = 5 * time.Minute
	loginFailuresKeyPrefix = "login_failures:"
	loginCooldownKeyPrefix = "login_cooldown:"
	revokedTokenKeyPrefix  = "revoked_token:"
)

// CooldownError reports a login refused because of earlier failures
type CooldownError struct {
	RetryAfter time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("%s, retry in %s", ErrTooManyAttempts, e.RetryAfter.Round(time.Second))
}

func (e *CooldownError) Unwrap() error { return ErrTooManyAttempts }

// RegisterUser creates an account together with its starter deck
func RegisterUser(ctx context.Context, email, username, password, school string) (*models.User, error) {
	email = normalizeEmail(email)
	if school == "" {
		school = string(models.SchoolFire)
	}
	starter := models.Deck{Spells: datatypes.JSONSlice[models.SpellRef]{}}
	if err := applyDeckInput(&starter, DeckInput{
		Name:   config.StarterDeckName,
		School: school,
		Level:  config.MinDeckLevel,
		IsPve:  true,
	}); err != nil {
		return nil, err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	defer metrics.RecordDBOperation("insert", "users", time.Now())
	user := models.User{Email: email, Username: strings.TrimSpace(username), Password: hashed}
	err = database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailInUse
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		starter.UserID = user.ID
		return tx.Create(&starter).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate checks credentials, applying the failed-login cooldown
func Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = normalizeEmail(email)
	if wait := loginCooldown(ctx, email); wait > 0 {
		metrics.RateLimiterRejections.WithLabelValues("login").Inc()
		return nil, &CooldownError{RetryAfter: wait}
	}

	var user models.User
	err := database.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		recordFailedLogin(ctx, email)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		recordFailedLogin(ctx, email)
		return nil, ErrInvalidCredentials
	}
	if user.Blocked {
		return nil, ErrAccountBlocked
	}

	resetFailedLogins(ctx, email)
	now := time.Now()
	user.LastConnected = &now
	if err := database.DB.WithContext(ctx).Model(&user).Update("last_connected", now).Error; err != nil {
		logger.L().Warn("failed to update last connection", zap.String("user_id", user.ID), zap.Error(err))
	}
	return &user, nil
}

func loginCooldown(ctx context.Context, email string) time.Duration {
	if database.REDIS == nil {
		return 0
	}
	ttl, err := database.REDIS.TTL(ctx, loginCooldownKeyPrefix+email).Result()
	if err != nil || ttl < 0 {
		return 0
	}
	return ttl
}

func recordFailedLogin(ctx context.Context, email string) {
	if database.REDIS == nil {
		return
	}
	cfg := config.DefaultLoginRateLimitConfig
	key := loginFailuresKeyPrefix + email

	pipe := database.REDIS.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, cfg.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.L().Warn("failed to record login failure", zap.Error(err))
		return
	}
	if wait := cfg.Cooldown(int(incr.Val())); wait > 0 {
		database.REDIS.Set(ctx, loginCooldownKeyPrefix+email, incr.Val(), wait)
	}
}

func resetFailedLogins(ctx context.Context, email string) {
	if database.REDIS == nil {
		return
	}
	database.REDIS.Del(ctx, loginFailuresKeyPrefix+email, loginCooldownKeyPrefix+email)
}

// RevokeToken blacklists a token id until the token would have expired anyway
func RevokeToken(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if database.REDIS == nil || tokenID == "" {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return database.REDIS.Set(ctx, revokedTokenKeyPrefix+tokenID, 1, ttl).Err()
}

// IsTokenRevoked reports whether a token id was revoked on logout
func IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	if database.REDIS == nil || tokenID == "" {
		return false, nil
	}
	err := database.REDIS.Get(ctx, revokedTokenKeyPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetUserByID loads a user
func GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	defer metrics.RecordDBOperation("select", "users", time.Now())

	var user models.User
	err := database.DB.WithContext(ctx).First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile changes the username and email of a user
func UpdateProfile(ctx context.Context, userID, username, email string) (*models.User, error) {
	email = normalizeEmail(email)
	defer metrics.RecordDBOperation("update", "users", time.Now())

	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ? AND id <> ?", email, userID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailInUse
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
			"username": strings.TrimSpace(username),
			"email":    email,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	InvalidateUserSession(ctx, userID)
	return GetUserByID(ctx, userID)
}

// GetSessionUser loads the user behind an access token, cached in redis for a few minutes.
// The cached copy carries no password hash.
func GetSessionUser(ctx context.Context, userID string) (*models.User, error) {
	key := UserCacheKeyPrefix + userID
	var user models.User
	if found, _ := database.GetFromCache(ctx, key, &user); found {
		return &user, nil
	}
	u, err := GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := database.SetToCacheWithTTL(ctx, key, u, userCacheDuration); err != nil {
		logger.L().Warn("user session cache write failed", zap.String("user_id", userID), zap.Error(err))
	}
	return u, nil
}

// InvalidateUserSession drops the cached copy of a user
func InvalidateUserSession(ctx context.Context, userID string) {
	if database.REDIS == nil {
		return
	}
	if err := database.REDIS.Del(ctx, UserCacheKeyPrefix+userID).Err(); err != nil {
		logger.L().Warn("failed to invalidate user session cache", zap.String("user_id", userID), zap.Error(err))
	}
}

// ChangePassword replaces the password after checking the current one
func ChangePassword(ctx context.Context, userID, current, next string) error {
	user, err := GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !utils.CheckPasswordHash(current, user.Password) {
		return ErrInvalidCredentials
	}
	return setPassword(ctx, database.DB, user.ID, next)
}

func setPassword(ctx context.Context, db *gorm.DB, userID, password string) error {
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("password", hashed).Error
}

// CreatePasswordReset replaces any pending reset of the account with a fresh token.
// A nil user and nil error mean the email is unknown.
func CreatePasswordReset(ctx context.Context, email string) (*models.User, string, error) {
	var user models.User
	err := database.DB.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}

	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return nil, "", err
	}
	token := hex.EncodeToString(b)

	err = database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.PasswordReset{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.PasswordReset{UserID: user.ID, Token: token}).Error
	})
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// ResetPassword consumes a reset token and stores the new password
func ResetPassword(ctx context.Context, token, password string) error {
	expired := false
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reset models.PasswordReset
		err := tx.Where("token = ?", token).First(&reset).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetToken
		}
		if err != nil {
			return err
		}
		if err := tx.Delete(&reset).Error; err != nil {
			return err
		}
		if reset.Expired(time.Now()) {
			expired = true
			return nil
		}
		return setPassword(ctx, tx, reset.UserID, password)
	})
	if err != nil {
		return err
	}
	if expired {
		return ErrInvalidResetToken
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
