package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oktaviandwip/musalabel-storefront/internal/session"
)

var (
	ErrBadCredentials  = errors.New("email or password is incorrect")
	ErrInvalidPIN      = errors.New("invalid PIN")
	ErrPINLength       = errors.New("PIN must be 6 characters")
	ErrResendCooldown  = errors.New("PIN resend cooldown still active")
	ErrNoResetInFlight = errors.New("no password reset in progress for this email")
)

// resendCooldownSeconds gates how often a reset PIN may be re-sent.
const resendCooldownSeconds = 60

const pinLength = 6

// Credentials is the login payload. Google marks a federated sign-in,
// where the backend skips the password check.
type Credentials struct {
	Email    string
	Password string
	Google   bool
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// LoginResult is the backend's {Token, User} pair.
type LoginResult struct {
	Token   string
	Profile session.Profile
}

// API is the authentication slice of the backend.
type API interface {
	Login(ctx context.Context, creds Credentials) (*LoginResult, error)
	Signup(ctx context.Context, in SignupInput) error
	SendResetPIN(ctx context.Context, email string) (pin string, err error)
	UpdatePassword(ctx context.Context, email, password string) error
}

type resetState struct {
	pin      string
	cooldown *countdown
	verified bool
}

// Service logs users in and out and drives the multi-step password
// reset: send PIN, verify PIN, set new password.
type Service struct {
	api      API
	sessions session.Store

	mu     sync.Mutex
	resets map[string]*resetState

	cooldownTick time.Duration // overridable in tests
}

func NewService(api API, sessions session.Store) *Service {
	return &Service{
		api:          api,
		sessions:     sessions,
		resets:       make(map[string]*resetState),
		cooldownTick: time.Second,
	}
}

// Login authenticates against the backend and opens a session.
func (s *Service) Login(ctx context.Context, creds Credentials) (*session.Session, error) {
	result, err := s.api.Login(ctx, creds)
	if err != nil {
		return nil, err
	}

	sess := &session.Session{
		ID:        uuid.New().String(),
		Token:     result.Token,
		Profile:   result.Profile,
		CreatedAt: time.Now(),
	}
	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

func (s *Service) Signup(ctx context.Context, in SignupInput) error {
	return s.api.Signup(ctx, in)
}

// SendPIN mails a reset PIN and starts the resend cooldown. A second
// call while the cooldown runs is refused without a backend call.
func (s *Service) SendPIN(ctx context.Context, email string) error {
	s.mu.Lock()
	if st, ok := s.resets[email]; ok && st.cooldown != nil && st.cooldown.Active() {
		s.mu.Unlock()
		return ErrResendCooldown
	}
	s.mu.Unlock()

	pin, err := s.api.SendResetPIN(ctx, email)
	if err != nil {
		return fmt.Errorf("send reset PIN: %w", err)
	}

	s.mu.Lock()
	if st, ok := s.resets[email]; ok && st.cooldown != nil {
		st.cooldown.Stop()
	}
	s.resets[email] = &resetState{
		pin:      pin,
		cooldown: newCountdown(resendCooldownSeconds, s.cooldownTick),
	}
	s.mu.Unlock()
	return nil
}

// ResendRemaining reports the seconds left on the cooldown, zero when a
// resend is allowed.
func (s *Service) ResendRemaining(email string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.resets[email]; ok && st.cooldown != nil && st.cooldown.Active() {
		return st.cooldown.Remaining()
	}
	return 0
}

// VerifyPIN checks the entered PIN against the one that was mailed.
func (s *Service) VerifyPIN(email, pin string) error {
	if len(pin) < pinLength {
		return ErrPINLength
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.resets[email]
	if !ok {
		return ErrNoResetInFlight
	}
	if st.pin != pin {
		return ErrInvalidPIN
	}
	st.verified = true
	return nil
}

// ResetPassword sets the new password once the PIN has been verified.
func (s *Service) ResetPassword(ctx context.Context, email, password string) error {
	s.mu.Lock()
	st, ok := s.resets[email]
	if !ok || !st.verified {
		s.mu.Unlock()
		return ErrNoResetInFlight
	}
	s.mu.Unlock()

	if err := s.api.UpdatePassword(ctx, email, password); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	s.mu.Lock()
	if st.cooldown != nil {
		st.cooldown.Stop()
	}
	delete(s.resets, email)
	s.mu.Unlock()
	return nil
}
