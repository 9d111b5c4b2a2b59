package authsvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"bookstore/model"
	"bookstore/util/hash"
	jwtutil "bookstore/util/jwt"
)

// errors used by controllers

type ErrCode string

const (
	ErrUsernameTaken  ErrCode = "USERNAME_TAKEN"
	ErrEmailTaken     ErrCode = "EMAIL_TAKEN"
	ErrInvalidCreds   ErrCode = "INVALID_CREDENTIALS"
	ErrBadInput       ErrCode = "BAD_INPUT"
	ErrInvalidRefresh ErrCode = "INVALID_REFRESH"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return string(e.code)
}
func (e codedError) Code() ErrCode { return e.code }

func makeErr(c ErrCode) error        { return codedError{code: c} }
func wrap(c ErrCode, m string) error { return codedError{code: c, msg: m} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Repo interface {
	CreateWithCart(ctx context.Context, u *model.User) error
	ByUsername(ctx context.Context, username string) (*model.User, error)
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type Service interface {
	// SignUp: create the account and its cart; password is hashed here
	// and nowhere else.
	SignUp(ctx context.Context, req model.SignUpReq) (*model.User, error)

	// SignIn: verify credentials, return access + refresh tokens.
	SignIn(ctx context.Context, req model.SignInReq) (*model.User, string, string, error)

	// Refresh: trade a valid refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

type service struct {
	r             Repo
	accessSecret  string
	refreshSecret string
}

func New(r Repo, accessSecret, refreshSecret string) Service {
	return &service{r: r, accessSecret: accessSecret, refreshSecret: refreshSecret}
}

func (s *service) SignUp(ctx context.Context, req model.SignUpReq) (*model.User, error) {
	name := strings.TrimSpace(req.Name)
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" || username == "" || email == "" || req.Password == "" {
		return nil, makeErr(ErrBadInput)
	}

	hashed, err := hash.Password(req.Password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Name:         name,
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Role:         model.RoleUser,
	}

	if err := s.r.CreateWithCart(ctx, u); err != nil {
		if derr := mapDuplicateErr(err); derr != nil {
			return nil, derr
		}
		return nil, err
	}
	return u, nil
}

func mapDuplicateErr(err error) error {

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		cn := strings.ToLower(pgErr.ConstraintName)
		msg := strings.ToLower(pgErr.Message)

		if strings.Contains(cn, "users_email") || strings.Contains(msg, "email") {
			return wrap(ErrEmailTaken, "email already registered")
		}
		if strings.Contains(cn, "users_username") || strings.Contains(msg, "username") {
			return wrap(ErrUsernameTaken, "username already taken")
		}
		return makeErr(ErrBadInput)
	}

	return nil
}

func (s *service) SignIn(ctx context.Context, req model.SignInReq) (*model.User, string, string, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if username == "" || req.Password == "" {
		return nil, "", "", makeErr(ErrBadInput)
	}

	u, err := s.r.ByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", "", makeErr(ErrInvalidCreds)
		}
		return nil, "", "", err
	}
	if u == nil || !hash.Check(u.PasswordHash, req.Password) {
		return nil, "", "", makeErr(ErrInvalidCreds)
	}

	access, err := jwtutil.IssueAccess(s.accessSecret, u.ID, u.Username, string(u.Role))
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := jwtutil.IssueRefresh(s.refreshSecret, u.ID, u.Username)
	if err != nil {
		return nil, "", "", err
	}
	return u, access, refresh, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := jwtutil.Parse(refreshToken, s.refreshSecret)
	if err != nil {
		return "", wrap(ErrInvalidRefresh, "invalid refresh token")
	}
	uid, err := jwtutil.Subject(claims)
	if err != nil {
		return "", wrap(ErrInvalidRefresh, "invalid refresh token")
	}

	// Reload: the role may have changed since the refresh token was
	// issued, and a deleted account must not refresh.
	u, err := s.r.ByID(ctx, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", makeErr(ErrInvalidRefresh)
		}
		return "", err
	}
	if u == nil {
		return "", makeErr(ErrInvalidRefresh)
	}

	return jwtutil.IssueAccess(s.accessSecret, u.ID, u.Username, string(u.Role))
}
