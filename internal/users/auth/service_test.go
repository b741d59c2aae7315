// Copyright (c) 2026 Condor Labs. All rights reserved.
// Author: dev@condorlabs.io

package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condorlabs/condor/internal/platform/apperr"
	"github.com/condorlabs/condor/pkg/pointer"
)

// # Test Doubles

// fakeUserRepository is an in-memory UserRepository keyed by ID with an email index.
type fakeUserRepository struct {
	users      map[string]*User
	createErr  error
	deleteErr  error
	deletedIDs []string
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]*User{}}
}

func (repository *fakeUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	if user, ok := repository.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (repository *fakeUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, user := range repository.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repository *fakeUserRepository) Create(_ context.Context, user *User) error {
	if repository.createErr != nil {
		return repository.createErr
	}
	for _, existing := range repository.users {
		if existing.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	copied := *user
	repository.users[user.ID] = &copied
	return nil
}

func (repository *fakeUserRepository) Activate(_ context.Context, userID string) error {
	user, ok := repository.users[userID]
	if !ok {
		return fmt.Errorf("no such user %s", userID)
	}
	user.Status = StatusActive
	user.VerificationCode = nil
	user.VerificationCodeExpires = nil
	return nil
}

func (repository *fakeUserRepository) SetVerificationChallenge(_ context.Context, userID, code string, expiresAt time.Time) error {
	user, ok := repository.users[userID]
	if !ok {
		return fmt.Errorf("no such user %s", userID)
	}
	user.VerificationCode = pointer.To(code)
	user.VerificationCodeExpires = pointer.To(expiresAt)
	return nil
}

func (repository *fakeUserRepository) SetTwoFactorChallenge(_ context.Context, userID, code string, expiresAt time.Time) error {
	user, ok := repository.users[userID]
	if !ok {
		return fmt.Errorf("no such user %s", userID)
	}
	user.TwoFactorCode = pointer.To(code)
	user.TwoFactorCodeExpires = pointer.To(expiresAt)
	return nil
}

func (repository *fakeUserRepository) ClearTwoFactorChallenge(_ context.Context, userID string) error {
	user, ok := repository.users[userID]
	if !ok {
		return fmt.Errorf("no such user %s", userID)
	}
	user.TwoFactorCode = nil
	user.TwoFactorCodeExpires = nil
	return nil
}

func (repository *fakeUserRepository) Delete(_ context.Context, id string) error {
	if repository.deleteErr != nil {
		return repository.deleteErr
	}
	repository.deletedIDs = append(repository.deletedIDs, id)
	delete(repository.users, id)
	return nil
}

// byEmail returns the stored user with the given email, or nil.
func (repository *fakeUserRepository) byEmail(email string) *User {
	for _, user := range repository.users {
		if user.Email == email {
			return user
		}
	}
	return nil
}

// fakeNotifier records deliveries and can be told to fail either channel.
type fakeNotifier struct {
	emailErr   error
	smsErr     error
	emails     []string // codes sent by email, in order
	smsCodes   []string // codes sent by SMS, in order
	lastSMSFor *User
}

func (notifier *fakeNotifier) SendVerificationEmail(_ context.Context, _, code, _ string) error {
	if notifier.emailErr != nil {
		return notifier.emailErr
	}
	notifier.emails = append(notifier.emails, code)
	return nil
}

func (notifier *fakeNotifier) SendTwoFactorSMS(_ context.Context, code string, user *User) error {
	if notifier.smsErr != nil {
		return notifier.smsErr
	}
	notifier.smsCodes = append(notifier.smsCodes, code)
	notifier.lastSMSFor = user
	return nil
}

// fakeTokenProvider mints predictable tokens for assertion.
type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID, email, _ string, _ time.Duration) (string, error) {
	return "token:" + userID + ":" + email, nil
}

// fakeHasher uses a reversible marker instead of bcrypt to keep tests fast.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (fakeHasher) Compare(password, digest string) bool { return "hashed:"+password == digest }

// # Harness

type serviceHarness struct {
	service    *Service
	repository *fakeUserRepository
	notifier   *fakeNotifier
	clock      time.Time
}

func newServiceHarness(t *testing.T) *serviceHarness {
	t.Helper()

	harness := &serviceHarness{
		repository: newFakeUserRepository(),
		notifier:   &fakeNotifier{},
		clock:      time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	harness.service = NewService(harness.repository, harness.notifier, fakeTokenProvider{}, fakeHasher{}, logger)
	harness.service.now = func() time.Time { return harness.clock }

	return harness
}

// advance moves the injected clock forward.
func (harness *serviceHarness) advance(d time.Duration) {
	harness.clock = harness.clock.Add(d)
}

// signUp enrolls a user and fails the test on error.
func (harness *serviceHarness) signUp(t *testing.T, fullName, email, password string) *SignUpResult {
	t.Helper()
	result, err := harness.service.SignUp(context.Background(), SignUpInput{
		FullName: fullName,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return result
}

// errCode extracts the machine-readable code from an AppError chain.
func errCode(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError, "expected an AppError, got %v", err)
	return appError.Code
}

// # Registration

/*
TestSignUp_CreatesPendingAccount verifies normalization, the PENDING state,
and the 15-minute verification challenge.
*/
func TestSignUp_CreatesPendingAccount(t *testing.T) {
	harness := newServiceHarness(t)

	// Raw email carries casing and trailing whitespace on purpose.
	result := harness.signUp(t, "User Test", "TEST@test.com ", "test123")

	assert.Equal(t, "test@test.com", result.Email)
	assert.NotEmpty(t, result.UserID)

	stored := harness.repository.byEmail("test@test.com")
	require.NotNil(t, stored)
	assert.Equal(t, StatusPending, stored.Status)
	require.NotNil(t, stored.VerificationCode)
	assert.Len(t, *stored.VerificationCode, CodeLength)
	require.NotNil(t, stored.VerificationCodeExpires)
	assert.Equal(t, harness.clock.Add(VerificationCodeTTL), *stored.VerificationCodeExpires)

	// The code that was stored is the code that was emailed.
	require.Len(t, harness.notifier.emails, 1)
	assert.Equal(t, *stored.VerificationCode, harness.notifier.emails[0])
}

/*
TestSignUp_ValidationOrder verifies the distinct failure for each input rule.
*/
func TestSignUp_ValidationOrder(t *testing.T) {
	harness := newServiceHarness(t)
	ctx := context.Background()

	// 1. Missing fields
	_, err := harness.service.SignUp(ctx, SignUpInput{Email: "a@b.co", Password: "secret1"})
	assert.Equal(t, CodeMissingFields, errCode(t, err))

	// 2. Invalid email shape
	_, err = harness.service.SignUp(ctx, SignUpInput{FullName: "A", Email: "not-an-email", Password: "secret1"})
	assert.Equal(t, CodeInvalidEmail, errCode(t, err))

	// 3. Weak password (below 6 characters)
	_, err = harness.service.SignUp(ctx, SignUpInput{FullName: "A", Email: "a@b.co", Password: "12345"})
	assert.Equal(t, CodeWeakPassword, errCode(t, err))

	// 4. Duplicate email
	harness.signUp(t, "First", "test1@test.com", "secret1")
	_, err = harness.service.SignUp(ctx, SignUpInput{FullName: "Second", Email: "test1@test.com", Password: "secret1"})
	assert.Equal(t, CodeDuplicateEmail, errCode(t, err))
}

/*
TestSignUp_DuplicateRace verifies that a unique violation at insert time
surfaces as DuplicateEmail even when the pre-check passed.
*/
func TestSignUp_DuplicateRace(t *testing.T) {
	harness := newServiceHarness(t)
	harness.repository.createErr = ErrDuplicateEmail

	_, err := harness.service.SignUp(context.Background(), SignUpInput{
		FullName: "Racer",
		Email:    "race@test.com",
		Password: "secret1",
	})

	assert.Equal(t, CodeDuplicateEmail, errCode(t, err))
}

/*
TestSignUp_NotifierFailureCompensates verifies that a failed verification
email deletes the freshly created row and reports NotificationFailed.
*/
func TestSignUp_NotifierFailureCompensates(t *testing.T) {
	harness := newServiceHarness(t)
	harness.notifier.emailErr = errors.New("smtp connection refused")

	_, err := harness.service.SignUp(context.Background(), SignUpInput{
		FullName: "Ghost",
		Email:    "ghost@test.com",
		Password: "secret1",
	})

	assert.Equal(t, CodeNotificationFailed, errCode(t, err))
	assert.Nil(t, harness.repository.byEmail("ghost@test.com"))
	assert.Len(t, harness.repository.deletedIDs, 1)
}

// # Email Verification

/*
TestVerify_ActivatesAccount verifies the PENDING → ACTIVE transition, the
clearing of the challenge fields, and the AlreadyVerified outcome afterwards.
*/
func TestVerify_ActivatesAccount(t *testing.T) {
	harness := newServiceHarness(t)
	result := harness.signUp(t, "User Test", "test@test.com", "test123")
	code := *harness.repository.byEmail("test@test.com").VerificationCode

	token, err := harness.service.Verify(context.Background(), "test@test.com", code)
	require.NoError(t, err)
	assert.Equal(t, "token:"+result.UserID+":", token)

	stored := harness.repository.byEmail("test@test.com")
	assert.Equal(t, StatusActive, stored.Status)
	assert.Nil(t, stored.VerificationCode)
	assert.Nil(t, stored.VerificationCodeExpires)

	// A second verification attempt hits the already-verified guard.
	_, err = harness.service.Verify(context.Background(), "test@test.com", code)
	assert.Equal(t, CodeAlreadyVerified, errCode(t, err))
}

/*
TestVerify_ExpiredCode verifies that a correct but stale code reports
CodeExpired and does not activate the account.
*/
func TestVerify_ExpiredCode(t *testing.T) {
	harness := newServiceHarness(t)
	harness.signUp(t, "User Test", "test@test.com", "test123")
	code := *harness.repository.byEmail("test@test.com").VerificationCode

	harness.advance(VerificationCodeTTL + time.Second)

	_, err := harness.service.Verify(context.Background(), "test@test.com", code)
	assert.Equal(t, CodeExpired, errCode(t, err))
	assert.Equal(t, StatusPending, harness.repository.byEmail("test@test.com").Status)
}

/*
TestVerify_WrongCode verifies the InvalidCode outcome for a live challenge.
*/
func TestVerify_WrongCode(t *testing.T) {
	harness := newServiceHarness(t)
	harness.signUp(t, "User Test", "test@test.com", "test123")

	_, err := harness.service.Verify(context.Background(), "test@test.com", "000000")
	assert.Equal(t, CodeInvalidCode, errCode(t, err))
}

/*
TestVerify_Validation covers the missing-input and unknown-account outcomes.
*/
func TestVerify_Validation(t *testing.T) {
	harness := newServiceHarness(t)
	ctx := context.Background()

	_, err := harness.service.Verify(ctx, "", "123456")
	assert.Equal(t, CodeMissingFields, errCode(t, err))

	_, err = harness.service.Verify(ctx, "nobody@test.com", "123456")
	assert.Equal(t, "NOT_FOUND", errCode(t, err))
}

// # Resend

/*
TestResend_OverwritesChallenge verifies that resending invalidates the prior
code: only the newest code activates the account.
*/
func TestResend_OverwritesChallenge(t *testing.T) {
	harness := newServiceHarness(t)
	harness.signUp(t, "User Test", "test@test.com", "test123")
	oldCode := *harness.repository.byEmail("test@test.com").VerificationCode

	require.NoError(t, harness.service.Resend(context.Background(), "test@test.com"))
	newCode := *harness.repository.byEmail("test@test.com").VerificationCode

	if oldCode != newCode {
		_, err := harness.service.Verify(context.Background(), "test@test.com", oldCode)
		assert.Equal(t, CodeInvalidCode, errCode(t, err))
	}

	_, err := harness.service.Verify(context.Background(), "test@test.com", newCode)
	assert.NoError(t, err)
}

/*
TestResend_Guards covers the missing-email, unknown-account, and
already-verified outcomes, plus delivery failure.
*/
func TestResend_Guards(t *testing.T) {
	harness := newServiceHarness(t)
	ctx := context.Background()

	assert.Equal(t, CodeMissingEmail, errCode(t, harness.service.Resend(ctx, "  ")))
	assert.Equal(t, "NOT_FOUND", errCode(t, harness.service.Resend(ctx, "nobody@test.com")))

	harness.signUp(t, "User Test", "test@test.com", "test123")
	code := *harness.repository.byEmail("test@test.com").VerificationCode
	_, err := harness.service.Verify(ctx, "test@test.com", code)
	require.NoError(t, err)

	assert.Equal(t, CodeAlreadyVerified, errCode(t, harness.service.Resend(ctx, "test@test.com")))

	// Delivery failure after the row exists: no compensating delete.
	second := newServiceHarness(t)
	second.signUp(t, "User Test", "keep@test.com", "test123")
	second.notifier.emailErr = errors.New("smtp timeout")

	assert.Equal(t, CodeNotificationFailed, errCode(t, second.service.Resend(ctx, "keep@test.com")))
	assert.NotNil(t, second.repository.byEmail("keep@test.com"))
}

// # Sign-In (first factor)

// activateUser runs the signup+verify flow so sign-in tests start from ACTIVE.
func activateUser(t *testing.T, harness *serviceHarness, email, password string) {
	t.Helper()
	harness.signUp(t, "User Test", email, password)
	code := *harness.repository.byEmail(email).VerificationCode
	_, err := harness.service.Verify(context.Background(), email, code)
	require.NoError(t, err)
}

/*
TestSignIn_IssuesChallenge verifies that correct credentials persist a
5-minute SMS challenge and return no token.
*/
func TestSignIn_IssuesChallenge(t *testing.T) {
	harness := newServiceHarness(t)
	activateUser(t, harness, "test@test.com", "test123")

	err := harness.service.SignIn(context.Background(), SignInInput{Email: "test@test.com", Password: "test123"})
	require.NoError(t, err)

	stored := harness.repository.byEmail("test@test.com")
	require.NotNil(t, stored.TwoFactorCode)
	assert.Len(t, *stored.TwoFactorCode, CodeLength)
	require.NotNil(t, stored.TwoFactorCodeExpires)
	assert.Equal(t, harness.clock.Add(TwoFactorCodeTTL), *stored.TwoFactorCodeExpires)

	require.Len(t, harness.notifier.smsCodes, 1)
	assert.Equal(t, *stored.TwoFactorCode, harness.notifier.smsCodes[0])
}

/*
TestSignIn_Failures covers credential and infrastructure failure outcomes.
*/
func TestSignIn_Failures(t *testing.T) {
	harness := newServiceHarness(t)
	ctx := context.Background()
	activateUser(t, harness, "test@test.com", "test123")

	// 1. Missing fields
	err := harness.service.SignIn(ctx, SignInInput{Email: "test@test.com"})
	assert.Equal(t, CodeMissingFields, errCode(t, err))

	// 2. Malformed email
	err = harness.service.SignIn(ctx, SignInInput{Email: "nope", Password: "test123"})
	assert.Equal(t, CodeInvalidEmail, errCode(t, err))

	// 3. Unknown account
	err = harness.service.SignIn(ctx, SignInInput{Email: "nobody@test.com", Password: "test123"})
	assert.Equal(t, "NOT_FOUND", errCode(t, err))

	// 4. Wrong password
	err = harness.service.SignIn(ctx, SignInInput{Email: "test@test.com", Password: "wrong66"})
	assert.Equal(t, CodePasswordMismatch, errCode(t, err))

	// 5. SMS dispatch failure surfaces as LoginFailed
	harness.notifier.smsErr = errors.New("twilio 503")
	err = harness.service.SignIn(ctx, SignInInput{Email: "test@test.com", Password: "test123"})
	assert.Equal(t, CodeLoginFailed, errCode(t, err))
}

// # Second Factor

/*
TestConfirmTwoFactor_LengthBeforePresence verifies that the length rule fires
first: an absent code (length 0) reports InvalidCodeLength, not MissingFields.
*/
func TestConfirmTwoFactor_LengthBeforePresence(t *testing.T) {
	harness := newServiceHarness(t)
	ctx := context.Background()

	_, err := harness.service.ConfirmTwoFactor(ctx, "", "12345")
	assert.Equal(t, CodeInvalidCodeLength, errCode(t, err))

	_, err = harness.service.ConfirmTwoFactor(ctx, "test@test.com", "")
	assert.Equal(t, CodeInvalidCodeLength, errCode(t, err))
}

/*
TestConfirmTwoFactor_CompletesLogin verifies token issuance and that the
consumed challenge is cleared, making the code single-use.
*/
func TestConfirmTwoFactor_CompletesLogin(t *testing.T) {
	harness := newServiceHarness(t)
	activateUser(t, harness, "test@test.com", "test123")
	require.NoError(t, harness.service.SignIn(context.Background(), SignInInput{Email: "test@test.com", Password: "test123"}))

	stored := harness.repository.byEmail("test@test.com")
	code := *stored.TwoFactorCode

	token, err := harness.service.ConfirmTwoFactor(context.Background(), "test@test.com", code)
	require.NoError(t, err)
	assert.Equal(t, "token:"+stored.ID+":test@test.com", token)

	// Challenge is consumed: the fields are nulled and the same code is
	// rejected on replay.
	after := harness.repository.byEmail("test@test.com")
	assert.Nil(t, after.TwoFactorCode)
	assert.Nil(t, after.TwoFactorCodeExpires)

	_, err = harness.service.ConfirmTwoFactor(context.Background(), "test@test.com", code)
	assert.Equal(t, CodeInvalidOrExpiredCode, errCode(t, err))
}

/*
TestConfirmTwoFactor_InvalidOrExpired verifies the single combined outcome
for mismatched and expired codes.
*/
func TestConfirmTwoFactor_InvalidOrExpired(t *testing.T) {
	harness := newServiceHarness(t)
	ctx := context.Background()
	activateUser(t, harness, "test@test.com", "test123")
	require.NoError(t, harness.service.SignIn(ctx, SignInInput{Email: "test@test.com", Password: "test123"}))
	code := *harness.repository.byEmail("test@test.com").TwoFactorCode

	// 1. Wrong code (same length): combined outcome, no token.
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	_, err := harness.service.ConfirmTwoFactor(ctx, "test@test.com", wrong)
	assert.Equal(t, CodeInvalidOrExpiredCode, errCode(t, err))

	// 2. Correct code after expiry: same combined outcome.
	harness.advance(TwoFactorCodeTTL + time.Second)
	_, err = harness.service.ConfirmTwoFactor(ctx, "test@test.com", code)
	assert.Equal(t, CodeInvalidOrExpiredCode, errCode(t, err))

	// 3. Unknown account
	_, err = harness.service.ConfirmTwoFactor(ctx, "nobody@test.com", "123456")
	assert.Equal(t, "NOT_FOUND", errCode(t, err))
}
