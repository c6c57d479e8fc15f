package repository

import (
	"context"
	"fmt"

	"food-ordering-api/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SeedResult struct {
	Users  int64
	Dishes int64
}

// Seed inserts users and dishes in one transaction, skipping rows whose
// username or dish name already exists. Every record is validated first.
func (r *Repository) Seed(ctx context.Context, users []models.NewUser, dishes []models.DishInput) (SeedResult, error) {
	for i, u := range users {
		if err := models.Validate(u); err != nil {
			return SeedResult{}, fmt.Errorf("user #%d: %w", i, err)
		}
	}
	for i, d := range dishes {
		if err := models.Validate(d); err != nil {
			return SeedResult{}, fmt.Errorf("dish #%d: %w", i, err)
		}
	}

	var res SeedResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range users {
			row := models.User{Username: u.Username, PasswordHash: u.PasswordHash, Email: u.Email, Role: u.Role}
			q := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "username"}}, DoNothing: true}).Create(&row)
			if q.Error != nil {
				return fmt.Errorf("seed user %q: %w", u.Username, q.Error)
			}
			res.Users += q.RowsAffected
		}
		for _, d := range dishes {
			row := d.Dish()
			q := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).Create(&row)
			if q.Error != nil {
				return fmt.Errorf("seed dish %q: %w", d.Name, q.Error)
			}
			res.Dishes += q.RowsAffected
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, r.fail("seed", err, "")
	}

	r.log.Info("seed completed", zap.Int64("users", res.Users), zap.Int64("dishes", res.Dishes))
	return res, nil
}
