// Copyright (c) 2026 Condor Labs. All rights reserved.
// Author: dev@condorlabs.io

/*
Package auth provides the HTTP delivery layer for the account lifecycle.

It implements the gateway for enrollment and sign-in: account creation with
email verification, code resend, and the two-step login that ends with a JWT.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Ordering: Field-level checks with domain-specific outcomes (presence,
    email shape, code length) live in [Service], whose check order is part of
    the observable contract.

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/condorlabs/condor/internal/platform/request"
	"github.com/condorlabs/condor/internal/platform/respond"
	"github.com/condorlabs/condor/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /signup        : Creates a pending account and emails a code.
//   - POST /verify        : Consumes the email code; activates the account.
//   - POST /resend        : Reissues the email verification code.
//   - POST /signin        : First factor; dispatches an SMS challenge.
//   - POST /signin/verify : Second factor; completes login with a JWT.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/signup", handler.signUp)
	router.Post("/verify", handler.verify)
	router.Post("/resend", handler.resend)
	router.Post("/signin", handler.signIn)
	router.Post("/signin/verify", handler.confirmTwoFactor)

	return router
}

// # Request Payloads

type signUpRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type resendRequest struct {
	Email string `json:"email"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type confirmTwoFactorRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

/*
SignUp handles the creation of a new pending account.

POST /api/v1/auth/signup

Description: Decodes the enrollment payload and delegates to the service,
which validates, persists a PENDING account, and emails a verification code.

Request:
  - Body: signUpRequest (FullName, Email, Password)

Response:
  - 201: SignUpResult: ID and normalized email of the created account
  - 400: MissingFields / InvalidEmail / WeakPassword
  - 409: DuplicateEmail
  - 500: NotificationFailed / PersistenceFailure
*/
func (handler *Handler) signUp(writer http.ResponseWriter, request *http.Request) {
	var input signUpRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	result, err := handler.authService.SignUp(request.Context(), SignUpInput{
		FullName: input.FullName,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]any{
		FieldMessage: "User created successfully",
		FieldUserID:  result.UserID,
		FieldEmail:   result.Email,
	})
}

/*
Verify consumes an email verification code and activates the account.

POST /api/v1/auth/verify

Request:
  - Body: verifyRequest (Email, Code)

Response:
  - 200: Token: Account activated; 2-hour access token
  - 400: MissingFields / CodeExpired / InvalidCode
  - 404: NotFound
  - 409: AlreadyVerified
*/
func (handler *Handler) verify(writer http.ResponseWriter, request *http.Request) {
	var input verifyRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	token, err := handler.authService.Verify(request.Context(), input.Email, input.Code)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldMessage: "Account verified successfully",
		FieldToken:   token,
	})
}

/*
Resend reissues the email verification code for a pending account.

POST /api/v1/auth/resend

Request:
  - Body: resendRequest (Email)

Response:
  - 200: Success: New code dispatched
  - 400: MissingEmail
  - 404: NotFound
  - 409: AlreadyVerified
  - 500: NotificationFailed
*/
func (handler *Handler) resend(writer http.ResponseWriter, request *http.Request) {
	var input resendRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.authService.Resend(request.Context(), input.Email); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Verification code sent successfully. Please check your email.",
	})
}

/*
SignIn performs the first authentication factor.

POST /api/v1/auth/signin

Description: Verifies credentials and dispatches an SMS second-factor code.
No token is returned; the login completes via POST /signin/verify.

Request:
  - Body: signInRequest (Email, Password)

Response:
  - 200: Success: Challenge issued
  - 400: MissingFields / InvalidEmail / PasswordMismatch
  - 404: NotFound
  - 500: LoginFailed
*/
func (handler *Handler) signIn(writer http.ResponseWriter, request *http.Request) {
	var input signInRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	err := handler.authService.SignIn(request.Context(), SignInInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "2FA code sent",
	})
}

/*
ConfirmTwoFactor performs the second authentication factor.

POST /api/v1/auth/signin/verify

Request:
  - Body: confirmTwoFactorRequest (Email, Code)

Response:
  - 200: Token: Login complete; 2-hour access token
  - 400: InvalidCodeLength / MissingFields
  - 401: InvalidOrExpiredCode
  - 404: NotFound
*/
func (handler *Handler) confirmTwoFactor(writer http.ResponseWriter, request *http.Request) {
	var input confirmTwoFactorRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	token, err := handler.authService.ConfirmTwoFactor(request.Context(), input.Email, input.Code)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldMessage: "Login successful",
		FieldToken:   token,
	})
}
