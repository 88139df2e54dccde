package config

import "time"

// Rate limit configuration for failed login attempts
type RateLimitConfig struct {
	AttemptsThreshold1 int           // Failed attempts before first cooldown
	CooldownDuration1  time.Duration // First cooldown duration
	AttemptsThreshold2 int           // Failed attempts before second cooldown
	CooldownDuration2  time.Duration // Second cooldown duration
	Window             time.Duration // How long failed attempts are remembered
}

var DefaultLoginRateLimitConfig = RateLimitConfig{
	AttemptsThreshold1: 5,
	CooldownDuration1:  1 * time.Minute,
	AttemptsThreshold2: 10,
	CooldownDuration2:  15 * time.Minute,
	Window:             time.Hour,
}

// Cooldown returns how long a user must wait after the given number of failed attempts
func (r RateLimitConfig) Cooldown(failedAttempts int) time.Duration {
	switch {
	case failedAttempts >= r.AttemptsThreshold2:
		return r.CooldownDuration2
	case failedAttempts >= r.AttemptsThreshold1:
		return r.CooldownDuration1
	}
	return 0
}
