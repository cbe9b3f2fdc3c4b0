package auth

import (
	"log/slog"
	"time"

	"github.com/workhub/leave-management/internal"
	"golang.org/x/crypto/bcrypt"
)

// Repository persists logins. ClaimActiveToken is a compare-and-set: it
// stores the token only if no token is currently active, and reports whether
// it won.
type Repository interface {
	GetByEmployeeID(employeeID int64) (*Login, error)
	ClaimActiveToken(loginID int64, token string) (bool, error)
	ClearActiveToken(loginID int64) error
	ClearByToken(token string) error
}

type Service struct {
	repo           Repository
	tokenGenerator TokenGenerator
	revocations    *RevocationStore
	logger         *slog.Logger
}

func NewService(repo Repository, tokenGen TokenGenerator, revocations *RevocationStore, logger *slog.Logger) *Service {
	return &Service{
		repo:           repo,
		tokenGenerator: tokenGen,
		revocations:    revocations,
		logger:         logger,
	}
}

// Login authenticates the employee and claims the single session slot. A
// still-valid active token means someone is already logged in; an expired
// one is cleared and the slot re-claimed. The claim itself is a
// compare-and-set, so two racing logins cannot both win.
func (s *Service) Login(dto LoginDTO) (*LoginResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	login, err := s.repo.GetByEmployeeID(dto.EmployeeID)
	if err != nil {
		s.logger.Warn("login: lookup failed", "error", err, "employee_id", dto.EmployeeID)
		return nil, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(login.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	if login.ActiveToken != nil {
		if _, err := s.tokenGenerator.ValidateToken(*login.ActiveToken); err == nil {
			s.logger.Info("login refused: session already active", "employee_id", dto.EmployeeID)
			return nil, internal.ErrSessionActive
		}
		// The stored token expired; release the slot before re-claiming.
		if err := s.repo.ClearActiveToken(login.ID); err != nil {
			s.logger.Error("login: clearing expired token failed", "error", err, "login_id", login.ID)
			return nil, err
		}
	}

	token, _, err := s.tokenGenerator.GenerateAccessToken(login.ID, login.EmployeeID, login.IsManager)
	if err != nil {
		s.logger.Error("login: token generation failed", "error", err)
		return nil, internal.NewInternalError("could not generate token", err)
	}

	claimed, err := s.repo.ClaimActiveToken(login.ID, token)
	if err != nil {
		s.logger.Error("login: claiming session failed", "error", err, "login_id", login.ID)
		return nil, err
	}
	if !claimed {
		return nil, internal.NewConflictError("Another user logged in just now. Please try again after logout.", internal.ErrCodeSessionActive)
	}

	s.logger.Info("login successful", "employee_id", login.EmployeeID, "login_id", login.ID)

	return &LoginResponse{
		Message: "Login successful",
		Token:   token,
		User: LoginUser{
			EmployeeID: login.EmployeeID,
			Employee: &EmployeePayload{
				ID:        login.EmployeeID,
				Name:      login.EmpName,
				IsManager: login.IsManager,
			},
		},
	}, nil
}

// Logout blacklists the presented token and releases the session slot. When
// the session is unknown (token valid but login row lost) the slot is
// cleared by token value instead.
func (s *Service) Logout(session *Session, token string) error {
	s.revocations.Revoke(token, s.expiryOf(token))

	if session != nil {
		if err := s.repo.ClearActiveToken(session.LoginID); err != nil {
			s.logger.Error("logout: clearing session failed", "error", err, "login_id", session.LoginID)
			return err
		}
	} else if err := s.repo.ClearByToken(token); err != nil {
		s.logger.Error("logout: clearing session by token failed", "error", err)
		return err
	}

	s.logger.Info("logout successful")
	return nil
}

func (s *Service) expiryOf(token string) time.Time {
	claims, err := s.tokenGenerator.ValidateToken(token)
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

// ValidateAccessToken validates the signature and expiry of a presented
// token.
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

// IsRevoked reports whether the token was blacklisted by a logout.
func (s *Service) IsRevoked(token string) bool {
	return s.revocations.IsRevoked(token)
}

// SessionFor resolves the claims into a live session, enforcing that the
// presented token is the one currently active for the login.
func (s *Service) SessionFor(claims *Claims, token string) (*Session, error) {
	login, err := s.repo.GetByEmployeeID(claims.EmployeeID)
	if err != nil {
		return nil, internal.ErrInvalidToken
	}
	if login.ActiveToken == nil {
		return nil, internal.ErrNoActiveSession
	}
	if *login.ActiveToken != token {
		return nil, internal.ErrTokenMismatch
	}
	return &Session{
		LoginID:    login.ID,
		EmployeeID: login.EmployeeID,
		EmpName:    login.EmpName,
		IsManager:  login.IsManager,
		Token:      token,
	}, nil
}
