package model

import "time"

type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// SignUpReq represents user registration payload
// swagger:model SignUpReq
type SignUpReq struct {
	Name                 string `json:"name" validate:"required,min=2,max=25"`
	Username             string `json:"username" validate:"required,min=2,max=25"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,strongpassword"`
	PasswordConfirmation string `json:"passwordConfirmation" validate:"required,eqfield=Password"`
}

// SignInReq represents login payload
// swagger:model SignInReq
type SignInReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshReq represents token refresh payload
// swagger:model RefreshReq
type RefreshReq struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type UpdateUserReq struct {
	Name                 string `json:"name" validate:"required,min=2,max=25"`
	Username             string `json:"username" validate:"required,min=2,max=25"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"omitempty,strongpassword"`
	PasswordConfirmation string `json:"passwordConfirmation" validate:"eqfield=Password"`
}
