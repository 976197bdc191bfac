package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"doctor-finder/internal/delivery/dto"
	"doctor-finder/internal/domain/entity"
	"doctor-finder/internal/domain/gateway"
	"doctor-finder/internal/domain/repository"
	"doctor-finder/internal/service"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrResendNotAllowed = errors.New("resend is not available yet")
	ErrOTPNotRequested  = errors.New("no verification code was requested")
	ErrOTPExpired       = errors.New("verification code has expired")
	ErrOTPMismatch      = errors.New("verification code does not match")
	ErrDispatchFailed   = errors.New("failed to send verification code")
)

const (
	msgOTPResent       = "OTP resent successfully"
	msgOTPResendFailed = "Failed to resend OTP"
)

const otpDigits = 6

type OTPUsecase interface {
	Send(ctx context.Context, clientID, email string) (*dto.OTPStatusResponse, error)
	Resend(ctx context.Context, clientID string) (*dto.OTPStatusResponse, error)
	Verify(ctx context.Context, clientID, code string) (*dto.OTPStatusResponse, error)
	Status(ctx context.Context, clientID string) *dto.OTPStatusResponse
}

type otpUsecase struct {
	log        *logrus.Logger
	workspaces *service.WorkspaceRegistry
	otpRepo    repository.OTPRepository
	mailer     gateway.MailDispatch
	notifier   service.Notifier
	ttl        time.Duration

	now          func() time.Time
	generateCode func() (string, error)
	hashCost     int
}

func NewOTPUsecase(
	log *logrus.Logger,
	workspaces *service.WorkspaceRegistry,
	otpRepo repository.OTPRepository,
	mailer gateway.MailDispatch,
	notifier service.Notifier,
	ttl time.Duration,
) OTPUsecase {
	return &otpUsecase{
		log:          log,
		workspaces:   workspaces,
		otpRepo:      otpRepo,
		mailer:       mailer,
		notifier:     notifier,
		ttl:          ttl,
		now:          time.Now,
		generateCode: generateOTPCode,
		hashCost:     bcrypt.DefaultCost,
	}
}

// Send issues a code to email and starts the resend countdown. It is refused
// while a countdown for the client is still running.
func (u *otpUsecase) Send(ctx context.Context, clientID, email string) (*dto.OTPStatusResponse, error) {
	ws, release := u.workspaces.Acquire(ctx, clientID)
	defer release()

	if ws.OTPCountdown.Running() {
		return nil, ErrResendNotAllowed
	}

	if err := u.issue(ctx, clientID, email); err != nil {
		return nil, err
	}
	ws.OTPEmail = email
	ws.EmailVerified = false
	ws.OTPCountdown.Start()

	return otpStatus(ws), nil
}

// Resend issues a fresh code to the pending address once the countdown has
// reached zero. The outcome is reported through the notifier as well.
func (u *otpUsecase) Resend(ctx context.Context, clientID string) (*dto.OTPStatusResponse, error) {
	ws, release := u.workspaces.Acquire(ctx, clientID)
	defer release()

	if ws.OTPEmail == "" {
		return nil, ErrOTPNotRequested
	}
	if !ws.OTPCountdown.CanResend() {
		return nil, ErrResendNotAllowed
	}

	if err := u.issue(ctx, clientID, ws.OTPEmail); err != nil {
		u.notifier.Failure(ctx, clientID, msgOTPResendFailed)
		return nil, err
	}
	ws.OTPCountdown.Start()
	u.notifier.Success(ctx, clientID, msgOTPResent)

	return otpStatus(ws), nil
}

func (u *otpUsecase) Verify(ctx context.Context, clientID, code string) (*dto.OTPStatusResponse, error) {
	ws, release := u.workspaces.Acquire(ctx, clientID)
	defer release()

	if ws.OTPEmail == "" {
		return nil, ErrOTPNotRequested
	}

	challenge, err := u.otpRepo.Find(ctx, clientID)
	if err != nil {
		u.log.Warnf("Failed to find OTP for client %s: %+v", clientID, err)
		return nil, err
	}
	if challenge == nil || challenge.IsExpired(u.now()) {
		return nil, ErrOTPExpired
	}

	if err := bcrypt.CompareHashAndPassword([]byte(challenge.CodeHash), []byte(code)); err != nil {
		return nil, ErrOTPMismatch
	}

	if err := u.otpRepo.Delete(ctx, clientID); err != nil {
		u.log.Warnf("Failed to delete OTP for client %s: %+v", clientID, err)
	}
	ws.OTPCountdown.Stop()
	ws.EmailVerified = true
	u.log.Infof("Email verified for client %s", clientID)

	return otpStatus(ws), nil
}

func (u *otpUsecase) Status(ctx context.Context, clientID string) *dto.OTPStatusResponse {
	ws, release := u.workspaces.Acquire(ctx, clientID)
	defer release()

	return otpStatus(ws)
}

// issue stores a new hashed code for the client and mails it.
func (u *otpUsecase) issue(ctx context.Context, clientID, email string) error {
	code, err := u.generateCode()
	if err != nil {
		u.log.Warnf("Failed to generate OTP: %+v", err)
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), u.hashCost)
	if err != nil {
		u.log.Warnf("Failed to hash OTP: %+v", err)
		return err
	}

	challenge := &entity.OTPChallenge{
		Email:     email,
		CodeHash:  string(hash),
		ExpiresAt: u.now().Add(u.ttl),
	}
	if err := u.otpRepo.Save(ctx, clientID, challenge, u.ttl); err != nil {
		u.log.Warnf("Failed to store OTP for client %s: %+v", clientID, err)
		return err
	}

	if err := u.mailer.SendOTP(ctx, email, code); err != nil {
		u.log.Warnf("Failed to send OTP to %s: %+v", email, err)
		if delErr := u.otpRepo.Delete(ctx, clientID); delErr != nil {
			u.log.Warnf("Failed to delete undelivered OTP for client %s: %+v", clientID, delErr)
		}
		return fmt.Errorf("%w: %w", ErrDispatchFailed, err)
	}
	return nil
}

func otpStatus(ws *service.Workspace) *dto.OTPStatusResponse {
	return &dto.OTPStatusResponse{
		Email:     ws.OTPEmail,
		Countdown: ws.OTPCountdown.Remaining(),
		CanResend: ws.OTPCountdown.CanResend(),
		Verified:  ws.EmailVerified,
	}
}

// generateOTPCode returns a uniformly random numeric code.
func generateOTPCode() (string, error) {
	limit := big.NewInt(1)
	for i := 0; i < otpDigits; i++ {
		limit.Mul(limit, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpDigits, n.Int64()), nil
}
