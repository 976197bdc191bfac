package usecase

import (
	"context"
	"errors"
	"fmt"

	"doctor-finder/internal/converter"
	"doctor-finder/internal/delivery/dto"
	"doctor-finder/internal/domain/entity"
	"doctor-finder/internal/service"
	"doctor-finder/pkg/jwt"

	"github.com/sirupsen/logrus"
)

var (
	ErrAuthFailed       = errors.New("authentication failed")
	ErrNotAuthenticated = errors.New("not authenticated")
)

const (
	msgLoginSucceeded  = "Logged in successfully"
	msgLoginFailed     = "Login failed. Please check your credentials."
	msgSignupSucceeded = "Account created successfully"
	msgSignupFailed    = "Failed to create account. Please try again."
	msgLogoutSucceeded = "Logged out successfully"
)

type AuthUsecase interface {
	Login(ctx context.Context, clientID string, req *dto.LoginRequest) (*dto.AuthStateResponse, error)
	Signup(ctx context.Context, clientID string, req *dto.SignupRequest) (*dto.AuthStateResponse, error)
	Logout(ctx context.Context, clientID string) *dto.AuthStateResponse
	Session(ctx context.Context, clientID string) *dto.AuthStateResponse
	Authorize(ctx context.Context, clientID, token string) (*entity.User, error)
}

type authUsecase struct {
	log        *logrus.Logger
	workspaces *service.WorkspaceRegistry
	jwtService *jwt.JWTService
	notifier   service.Notifier
}

func NewAuthUsecase(
	log *logrus.Logger,
	workspaces *service.WorkspaceRegistry,
	jwtService *jwt.JWTService,
	notifier service.Notifier,
) AuthUsecase {
	return &authUsecase{
		log:        log,
		workspaces: workspaces,
		jwtService: jwtService,
		notifier:   notifier,
	}
}

func (u *authUsecase) Login(ctx context.Context, clientID string, req *dto.LoginRequest) (*dto.AuthStateResponse, error) {
	ws, release := u.workspaces.Acquire(ctx, clientID)
	defer release()

	state, err := ws.Auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		u.log.Warnf("Failed to login %s: %+v", req.Email, err)
		u.notifier.Failure(ctx, clientID, msgLoginFailed)
		return nil, fmt.Errorf("%w: %w", ErrAuthFailed, err)
	}

	u.notifier.Success(ctx, clientID, msgLoginSucceeded)
	return u.stateResponse(state), nil
}

func (u *authUsecase) Signup(ctx context.Context, clientID string, req *dto.SignupRequest) (*dto.AuthStateResponse, error) {
	ws, release := u.workspaces.Acquire(ctx, clientID)
	defer release()

	state, err := ws.Auth.Signup(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		u.log.Warnf("Failed to sign up %s: %+v", req.Email, err)
		u.notifier.Failure(ctx, clientID, msgSignupFailed)
		return nil, fmt.Errorf("%w: %w", ErrAuthFailed, err)
	}

	u.notifier.Success(ctx, clientID, msgSignupSucceeded)
	return u.stateResponse(state), nil
}

// Logout clears the client's identity. Logging out twice is harmless.
func (u *authUsecase) Logout(ctx context.Context, clientID string) *dto.AuthStateResponse {
	ws, release := u.workspaces.Acquire(ctx, clientID)
	defer release()

	state := ws.Auth.Logout(ctx)
	u.notifier.Success(ctx, clientID, msgLogoutSucceeded)
	return u.stateResponse(state)
}

func (u *authUsecase) Session(ctx context.Context, clientID string) *dto.AuthStateResponse {
	ws, release := u.workspaces.Acquire(ctx, clientID)
	defer release()

	return u.stateResponse(ws.Auth.State())
}

// Authorize accepts token only when it is a valid session token and still
// the current token of the client.
func (u *authUsecase) Authorize(ctx context.Context, clientID, token string) (*entity.User, error) {
	if _, err := u.jwtService.ValidateToken(token); err != nil {
		return nil, ErrNotAuthenticated
	}

	ws, release := u.workspaces.Acquire(ctx, clientID)
	defer release()

	state := ws.Auth.State()
	if !state.HasToken(token) || state.User == nil {
		return nil, ErrNotAuthenticated
	}
	user := *state.User
	return &user, nil
}

func (u *authUsecase) stateResponse(state entity.AuthState) *dto.AuthStateResponse {
	response := converter.AuthStateToResponse(state)
	if state.IsAuthenticated {
		response.ExpiresIn = int64(u.jwtService.GetAccessExpiry().Seconds())
	}
	return response
}
