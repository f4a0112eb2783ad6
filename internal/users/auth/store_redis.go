// Copyright (c) 2026 TeachyAI. All rights reserved.

package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/teachyai/teachy/internal/platform/apperr"
	"github.com/teachyai/teachy/internal/platform/constants"
)

// # Reset Token Repository

// RedisResetTokenRepository implements ResetTokenRepository using Redis.
type RedisResetTokenRepository struct {
	client *redis.Client
}

// NewResetTokenRepository creates a new Redis-backed ResetTokenRepository.
func NewResetTokenRepository(client *redis.Client) *RedisResetTokenRepository {
	return &RedisResetTokenRepository{client: client}
}

/*
Set stores a reset token with its associated userID and TTL.

Parameters:
  - context: context.Context
  - token: string
  - userID: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisResetTokenRepository) Set(context context.Context, token string, userID string, ttl time.Duration) error {

	key := constants.RedisPrefixResetToken + token

	// Set the token with TTL
	if err := repository.client.Set(context, key, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_reset_token_set_failed: %w", err)
	}

	return nil
}

/*
Get retrieves the userID for a given token.

Description: Returns apperr.NotFound if the token is absent or expired.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - string: Original UserID
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisResetTokenRepository) Get(context context.Context, token string) (string, error) {

	key := constants.RedisPrefixResetToken + token

	userID, err := repository.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Reset token is invalid or expired")
		}
		return "", fmt.Errorf("redis_reset_token_get_failed: %w", err)
	}

	return userID, nil
}

/*
Delete removes the token from Redis.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisResetTokenRepository) Delete(context context.Context, token string) error {

	key := constants.RedisPrefixResetToken + token

	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_reset_token_delete_failed: %w", err)
	}

	return nil
}

// # OTP Code Repository

// RedisOTPCodeRepository implements OTPCodeRepository using Redis.
//
// Codes are keyed by normalized phone number: requesting a fresh code
// overwrites (and thereby invalidates) the previous one for that number.
type RedisOTPCodeRepository struct {
	client *redis.Client
}

// NewOTPCodeRepository creates a new Redis-backed OTPCodeRepository.
func NewOTPCodeRepository(client *redis.Client) *RedisOTPCodeRepository {
	return &RedisOTPCodeRepository{client: client}
}

/*
Set stores a verification code for a phone number with a TTL.

Parameters:
  - context: context.Context
  - phoneNumber: string
  - code: string
  - ttl: time.Duration

Returns:
  - error: Storage failures
*/
func (repository *RedisOTPCodeRepository) Set(context context.Context, phoneNumber string, code string, ttl time.Duration) error {

	key := constants.RedisPrefixOTPCode + phoneNumber

	if err := repository.client.Set(context, key, code, ttl).Err(); err != nil {
		return fmt.Errorf("redis_otp_code_set_failed: %w", err)
	}

	return nil
}

/*
Get retrieves the pending code for a phone number.

Description: Returns apperr.NotFound if no code is pending.

Parameters:
  - context: context.Context
  - phoneNumber: string

Returns:
  - string: The pending code
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisOTPCodeRepository) Get(context context.Context, phoneNumber string) (string, error) {

	key := constants.RedisPrefixOTPCode + phoneNumber

	code, err := repository.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Verification code is invalid or expired")
		}
		return "", fmt.Errorf("redis_otp_code_get_failed: %w", err)
	}

	return code, nil
}

/*
Delete removes a used code from Redis.

Parameters:
  - context: context.Context
  - phoneNumber: string

Returns:
  - error: Execution failures
*/
func (repository *RedisOTPCodeRepository) Delete(context context.Context, phoneNumber string) error {

	key := constants.RedisPrefixOTPCode + phoneNumber

	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_otp_code_delete_failed: %w", err)
	}

	return nil
}

/*
ClaimCooldown reserves the delivery slot for a phone number.

Description: SETNX on a per-number cooldown key; the key expiring is what
reopens the slot, so no cleanup is needed.

Parameters:
  - context: context.Context
  - phoneNumber: string
  - ttl: time.Duration

Returns:
  - bool: true when this call claimed the slot
  - error: Execution failures
*/
func (repository *RedisOTPCodeRepository) ClaimCooldown(context context.Context, phoneNumber string, ttl time.Duration) (bool, error) {

	key := constants.RedisPrefixOTPCooldown + phoneNumber

	claimed, err := repository.client.SetNX(context, key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis_otp_cooldown_claim_failed: %w", err)
	}

	return claimed, nil
}

// # OTP Delivery

// LogOTPSender is the development implementation of [OTPSender]: it writes
// the code to the structured log instead of dispatching an SMS.
//
// Production deployments swap in an SMS gateway implementation; business
// logic is unaware of the difference.
type LogOTPSender struct {
	logger *slog.Logger
}

// NewLogOTPSender creates a logger-backed OTP sender.
func NewLogOTPSender(logger *slog.Logger) *LogOTPSender {
	return &LogOTPSender{logger: logger}
}

// SendCode implements [OTPSender] by logging the code.
func (sender *LogOTPSender) SendCode(context context.Context, phoneNumber, code string) error {
	sender.logger.InfoContext(context, "otp_code_issued",
		slog.String("phone", phoneNumber),
		slog.String("code", code),
	)
	return nil
}
