package repository

import (
	"context"

	"food-ordering-api/models"
)

// FindUserByUsername returns nil, nil when no user has that name.
func (r *Repository) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, r.fail("find user by username", err, "")
	}
	if err := r.checkRow("users", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUserByID returns nil, nil when the user does not exist.
func (r *Repository) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, r.fail("find user by id", err, "")
	}
	if err := r.checkRow("users", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a user. The unique index on username is the final word
// on duplicates: a concurrent insert of the same name yields a conflict.
func (r *Repository) CreateUser(ctx context.Context, in models.NewUser) (*models.User, error) {
	if err := models.Validate(in); err != nil {
		return nil, err
	}
	user := models.User{
		Username:     in.Username,
		PasswordHash: in.PasswordHash,
		Email:        in.Email,
		Role:         in.Role,
	}
	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, r.fail("create user", err, "username already taken")
	}
	if err := r.checkRow("users", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
