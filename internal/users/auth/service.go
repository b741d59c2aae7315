// Copyright (c) 2026 Condor Labs. All rights reserved.
// Author: dev@condorlabs.io

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/condorlabs/condor/internal/platform/sec"
	"github.com/condorlabs/condor/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - email: The email claim; may be empty for verification-issued tokens.
	//   - role: The role of the account.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(userID, email, role string, timeToLive time.Duration) (string, error)
}

// PasswordHasher defines the contract for one-way credential hashing.
type PasswordHasher interface {
	// Hash converts a plaintext password into a storable digest.
	Hash(password string) (string, error)
	// Compare reports whether the plaintext matches the stored digest.
	Compare(password, digest string) bool
}

// Notifier defines the contract for out-of-band code delivery.
// Dispatch outcomes carry no payload; a nil error means delivered.
type Notifier interface {
	// SendVerificationEmail delivers an email verification code.
	SendVerificationEmail(context context.Context, email, code, fullName string) error
	// SendTwoFactorSMS delivers a second-factor login code.
	SendTwoFactorSMS(context context.Context, code string, user *User) error
}

// Service implements the account enrollment and sign-in state machine.
//
// # Review Process
//
// This service is critical for security. Any changes to code issuance, expiry
// comparison, or the verification transitions must be reviewed by the security
// team.
type Service struct {
	userRepository UserRepository
	notifier       Notifier
	tokenProvider  TokenProvider
	hasher         PasswordHasher
	logger         *slog.Logger

	// now is injectable so tests can pin the clock for expiry checks.
	now func() time.Time
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	notifier Notifier,
	tokenProv TokenProvider,
	hasher PasswordHasher,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository: userRepo,
		notifier:       notifier,
		tokenProvider:  tokenProv,
		hasher:         hasher,
		logger:         logger,
		now:            time.Now,
	}
}

// # Registration Flow

// SignUpInput holds the data required to enroll a new member.
type SignUpInput struct {
	FullName string
	Email    string
	Password string
}

// SignUpResult identifies the newly created pending account.
type SignUpResult struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

/*
SignUp validates, hashes, and persists a brand new pending account.

Description: Enrolls a new member in PENDING state with a fresh email
verification challenge, and dispatches the code by email. If the email cannot
be delivered, the freshly created row is deleted again (compensating action)
so the store never retains an unreachable pending account.

Parameters:
  - context: context.Context
  - input: SignUpInput

Returns:
  - *SignUpResult: ID and normalized email of the created account
  - err: Validation, DuplicateEmail, NotificationFailed, or storage errors
*/
func (service *Service) SignUp(context context.Context, input SignUpInput) (*SignUpResult, error) {

	// Canonicalize before any check so "TEST@test.com " and "test@test.com"
	// are the same identity.
	email := NormalizeEmail(input.Email)

	if input.FullName == "" || email == "" || input.Password == "" {
		return nil, errMissingFields("All required fields: full_name, email and password")
	}

	if !IsValidEmail(email) {
		return nil, errInvalidEmail()
	}

	if len(input.Password) < MinPasswordLength {
		return nil, errWeakPassword()
	}

	// Pre-insert existence check for a friendly conflict. The unique index on
	// email remains the authoritative arbiter under concurrent signups.
	if _, err := service.userRepository.FindByEmail(context, email); err == nil {
		return nil, errDuplicateEmail()
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := service.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	code, err := GenerateCode()
	if err != nil {
		return nil, fmt.Errorf("auth_service_signup_code_failed: %w", err)
	}
	expiresAt := service.now().Add(VerificationCodeTTL)

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:                      uuid.MustNewV7(),
		FullName:                input.FullName,
		Email:                   email,
		PasswordHash:            hashedPassword,
		Status:                  StatusPending,
		Role:                    sec.RoleUser,
		VerificationCode:        &code,
		VerificationCodeExpires: &expiresAt,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			// Lost the race against a concurrent signup for the same email.
			return nil, errDuplicateEmail()
		}
		return nil, errPersistenceFailure("User was not created", err)
	}

	// The account is unreachable until its owner receives the code, so a
	// delivery failure compensates by removing the row we just created.
	if err := service.notifier.SendVerificationEmail(context, email, code, input.FullName); err != nil {
		service.logger.Warn("signup_verification_email_failed",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)

		if deleteErr := service.userRepository.Delete(context, user.ID); deleteErr != nil {
			// Non-fatal: the response is already NotificationFailed either way.
			service.logger.Warn("signup_compensating_delete_failed",
				slog.String("user_id", user.ID),
				slog.Any("error", deleteErr),
			)
		}

		return nil, errNotificationFailed()
	}

	return &SignUpResult{UserID: user.ID, Email: user.Email}, nil
}

// # Email Verification Flow

/*
Verify consumes an email verification challenge and activates the account.

Description: Checks expiry strictly before the code match, transitions the
account to ACTIVE (clearing both challenge fields atomically), and issues a
2-hour access token bound to the user's ID.

Parameters:
  - context: context.Context
  - email: string
  - code: string

Returns:
  - string: Signed access token
  - err: NotFound, AlreadyVerified, CodeExpired, InvalidCode, or storage errors
*/
func (service *Service) Verify(context context.Context, email, code string) (string, error) {
	email = NormalizeEmail(email)

	if email == "" || code == "" {
		return "", errMissingFields("Email and verification code are required")
	}

	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		return "", err
	}

	if user.IsActive() {
		return "", errAlreadyVerified()
	}

	// Expiry is checked before the code match. A correct-but-stale code must
	// report CodeExpired, never activate.
	if user.VerificationCodeExpires == nil || service.now().After(*user.VerificationCodeExpires) {
		return "", errCodeExpired()
	}

	if user.VerificationCode == nil || *user.VerificationCode != code {
		return "", errInvalidCode()
	}

	if err := service.userRepository.Activate(context, user.ID); err != nil {
		return "", errPersistenceFailure("Verification failed", err)
	}

	token, err := service.tokenProvider.GenerateAccessToken(user.ID, "", string(user.Role), AccessTokenTTL)
	if err != nil {
		return "", fmt.Errorf("auth_service_verify_token_failed: %w", err)
	}

	return token, nil
}

/*
Resend reissues the email verification challenge for a pending account.

Description: Generates a new code with a fresh 15-minute expiry, overwriting
any outstanding challenge (the prior code becomes immediately invalid), and
dispatches it by email. The row predates this operation, so a delivery failure
triggers no compensating action.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - err: MissingEmail, NotFound, AlreadyVerified, NotificationFailed, or storage errors
*/
func (service *Service) Resend(context context.Context, email string) error {
	email = NormalizeEmail(email)

	if email == "" {
		return errMissingEmail()
	}

	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		return err
	}

	if user.IsActive() {
		return errAlreadyVerified()
	}

	code, err := GenerateCode()
	if err != nil {
		return fmt.Errorf("auth_service_resend_code_failed: %w", err)
	}
	expiresAt := service.now().Add(VerificationCodeTTL)

	if err := service.userRepository.SetVerificationChallenge(context, user.ID, code, expiresAt); err != nil {
		return errPersistenceFailure("Failed to resend verification code", err)
	}

	if err := service.notifier.SendVerificationEmail(context, email, code, user.FullName); err != nil {
		service.logger.Warn("resend_verification_email_failed",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		return errNotificationFailed()
	}

	return nil
}

// # Sign-In Flow

// SignInInput defines credentials for a first-factor authentication attempt.
type SignInInput struct {
	Email    string
	Password string
}

/*
SignIn validates credentials and issues an SMS second-factor challenge.

Description: Verifies identity with a constant-time password comparison, then
persists a 5-minute two-factor challenge on the account and dispatches the
code by SMS. No token is issued here; the login completes only via
[Service.ConfirmTwoFactor].

Parameters:
  - context: context.Context
  - input: SignInInput

Returns:
  - err: Validation, NotFound, PasswordMismatch, or LoginFailed errors
*/
func (service *Service) SignIn(context context.Context, input SignInInput) error {
	email := NormalizeEmail(input.Email)

	if email == "" || input.Password == "" {
		return errMissingFields("Both fields are required")
	}

	if !IsValidEmail(email) {
		return errInvalidEmail()
	}

	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		return err
	}

	if !service.hasher.Compare(input.Password, user.PasswordHash) {
		return errPasswordMismatch()
	}

	code, err := GenerateCode()
	if err != nil {
		return errLoginFailed(err)
	}
	expiresAt := service.now().Add(TwoFactorCodeTTL)

	if err := service.userRepository.SetTwoFactorChallenge(context, user.ID, code, expiresAt); err != nil {
		return errLoginFailed(err)
	}

	if err := service.notifier.SendTwoFactorSMS(context, code, user); err != nil {
		return errLoginFailed(err)
	}

	return nil
}

/*
ConfirmTwoFactor consumes the SMS challenge and completes the login.

Description: Validates the second-factor code (single combined outcome for
mismatch and expiry, so the client cannot distinguish them), clears the
challenge so the code is single-use, and issues a 2-hour token bound to
{id, email}.

Parameters:
  - context: context.Context
  - email: string
  - code: string

Returns:
  - string: Signed access token
  - err: InvalidCodeLength, MissingFields, NotFound, InvalidOrExpiredCode, or internal errors
*/
func (service *Service) ConfirmTwoFactor(context context.Context, email, code string) (string, error) {

	// Length is checked before presence: an absent code (length 0) reports
	// InvalidCodeLength, not MissingFields. Observable contract; do not reorder.
	if len(code) != CodeLength {
		return "", errInvalidCodeLength()
	}

	email = NormalizeEmail(email)
	if email == "" || code == "" {
		return "", errMissingFields("Email and code are required")
	}

	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		return "", err
	}

	now := service.now()
	isValidCode := user.TwoFactorCode != nil && *user.TwoFactorCode == code &&
		user.TwoFactorCodeExpires != nil && now.Before(*user.TwoFactorCodeExpires)

	if !isValidCode {
		return "", errInvalidOrExpiredCode()
	}

	// Consume the challenge. A validated code must never be accepted twice.
	if err := service.userRepository.ClearTwoFactorChallenge(context, user.ID); err != nil {
		return "", fmt.Errorf("auth_service_clear_two_factor_failed: %w", err)
	}

	token, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Email, string(user.Role), AccessTokenTTL)
	if err != nil {
		return "", fmt.Errorf("auth_service_two_factor_token_failed: %w", err)
	}

	return token, nil
}
