package service

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/you/agrigo/pkg/apperr"
	"github.com/you/agrigo/pkg/auth"
	"github.com/you/agrigo/services/marketplace-api/internal/domain"
	"github.com/you/agrigo/services/marketplace-api/internal/policy"
	"github.com/you/agrigo/services/marketplace-api/internal/repository"
)

type RegisterInput struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Name     string      `json:"name"`
	Role     domain.Role `json:"role"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfilePatch carries the editable profile fields; empty means unchanged.
type ProfilePatch struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Session struct {
	User         *domain.User `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
}

var (
	errBadLogin = apperr.Unauthorizedf("Invalid email or password")
	// ErrUserExists is returned when the email already belongs to an account.
	ErrUserExists = apperr.Validationf("User already exists")
)

type AuthSvc struct {
	users  *repository.UserRepo
	tokens *auth.Issuer
}

func NewAuthSvc(users *repository.UserRepo, tokens *auth.Issuer) *AuthSvc {
	return &AuthSvc{users: users, tokens: tokens}
}

func (s *AuthSvc) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := required(
		field{"email", in.Email != ""},
		field{"password", in.Password != ""},
		field{"name", in.Name != ""},
		field{"role", in.Role != ""},
	); err != nil {
		return nil, err
	}
	if !in.Role.Valid() {
		return nil, apperr.Validationf(`Invalid role. Must be "farmer" or "resource_provider"`)
	}
	if !emailRe.MatchString(in.Email) {
		return nil, apperr.Validationf("Invalid email address")
	}
	if len(in.Password) < minPasswordLen {
		return nil, apperr.Validationf("Password must be at least %d characters", minPasswordLen)
	}
	if err := s.ensureEmailFree(ctx, in.Email, ""); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Store("hash password", err)
	}
	u := &domain.User{Email: in.Email, Name: in.Name, Role: in.Role}
	if err := s.users.CreateWithCredential(ctx, u, string(hash)); err != nil {
		if isDuplicate(err) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return u, nil
}

// ensureEmailFree fails unless email is unused or belongs to self.
func (s *AuthSvc) ensureEmailFree(ctx context.Context, email, self string) error {
	existing, err := s.users.ByEmail(ctx, email)
	switch {
	case apperr.Is(err, apperr.NotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != self:
		return ErrUserExists
	}
	return nil
}

func (s *AuthSvc) Login(ctx context.Context, in LoginInput) (*Session, error) {
	email := normalizeEmail(in.Email)
	if err := required(field{"email", email != ""}, field{"password", in.Password != ""}); err != nil {
		return nil, err
	}
	cred, err := s.users.CredentialByEmail(ctx, email)
	if err != nil {
		if apperr.Is(err, apperr.NotFound) {
			return nil, errBadLogin
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(in.Password)) != nil {
		return nil, errBadLogin
	}
	u, err := s.users.ByID(ctx, cred.UserID)
	if err != nil {
		return nil, err
	}
	return s.session(u)
}

func (s *AuthSvc) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	if refreshToken == "" {
		return nil, apperr.Validationf("Missing required fields: refreshToken")
	}
	claims, err := s.tokens.ParseValidate(refreshToken, auth.KindRefresh)
	if err != nil {
		return nil, apperr.Unauthorizedf("Invalid or expired token")
	}
	u, err := s.users.ByID(ctx, claims.Sub)
	if err != nil {
		if apperr.Is(err, apperr.NotFound) {
			return nil, apperr.Unauthorizedf("Invalid or expired token")
		}
		return nil, err
	}
	return s.session(u)
}

func (s *AuthSvc) session(u *domain.User) (*Session, error) {
	access, refresh, err := s.tokens.Pair(u.ID, string(u.Role), u.Email)
	if err != nil {
		return nil, apperr.Store("sign token", err)
	}
	return &Session{User: u, Token: access, RefreshToken: refresh}, nil
}

// Authenticate resolves a bearer token to the caller's current profile.
func (s *AuthSvc) Authenticate(ctx context.Context, token string) (policy.Actor, error) {
	claims, err := s.tokens.ParseValidate(token, auth.KindAccess)
	if err != nil {
		return policy.Actor{}, apperr.Unauthorizedf("Invalid token")
	}
	u, err := s.users.ByID(ctx, claims.Sub)
	if err != nil {
		if apperr.Is(err, apperr.NotFound) {
			return policy.Actor{}, apperr.Unauthorizedf("Invalid token")
		}
		return policy.Actor{}, err
	}
	return policy.Actor{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}, nil
}

func (s *AuthSvc) Profile(ctx context.Context, id string) (*domain.User, error) {
	return s.users.ByID(ctx, id)
}

func (s *AuthSvc) UpdateProfile(ctx context.Context, id string, p ProfilePatch) (*domain.User, error) {
	fields := map[string]any{}
	if name := strings.TrimSpace(p.Name); name != "" {
		fields["name"] = name
	}
	if email := normalizeEmail(p.Email); email != "" {
		if !emailRe.MatchString(email) {
			return nil, apperr.Validationf("Invalid email address")
		}
		if err := s.ensureEmailFree(ctx, email, id); err != nil {
			return nil, err
		}
		fields["email"] = email
	}
	if len(fields) == 0 {
		return nil, apperr.Validationf("No fields to update")
	}
	u, err := s.users.UpdateProfile(ctx, id, fields)
	if err != nil {
		if isDuplicate(err) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return u, nil
}

func isDuplicate(err error) bool {
	e := apperr.As(err)
	return e != nil && e.Code == "duplicate_key"
}
