package models

// Role defines allowed roles in the system
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID           uint    `json:"id" gorm:"primaryKey" binding:"required"`
	Username     string  `json:"username" gorm:"size:32;uniqueIndex;not null" binding:"required,min=1,max=32"`
	PasswordHash string  `json:"-" gorm:"not null" binding:"required"`
	Email        *string `json:"email" gorm:"size:255" binding:"omitempty,email"`
	Role         Role    `json:"role" gorm:"not null;default:'user'" binding:"required,oneof=user admin"`
}

// PublicUser is the user as shown to API callers.
type PublicUser struct {
	ID       uint    `json:"id"`
	Username string  `json:"username"`
	Email    *string `json:"email"`
	Role     Role    `json:"role"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}

type RegisterInput struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Password string `json:"password" binding:"required,min=6"`
	Email    string `json:"email" binding:"required,email"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=6"`
}

// NewUser is a user row before it has been stored.
type NewUser struct {
	Username     string  `json:"username" binding:"required,min=1,max=32"`
	PasswordHash string  `json:"passwordHash" binding:"required"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Role         Role    `json:"role" binding:"required,oneof=user admin"`
}
