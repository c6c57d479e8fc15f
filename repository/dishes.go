package repository

import (
	"context"

	"food-ordering-api/models"
)

const dishNameTaken = "dish with this name already exists"

func (r *Repository) GetMenu(ctx context.Context) ([]models.Dish, error) {
	var dishes []models.Dish
	if err := r.db.WithContext(ctx).Order("id").Find(&dishes).Error; err != nil {
		return nil, r.fail("get menu", err, "")
	}
	for i := range dishes {
		if err := r.checkRow("dishes", &dishes[i]); err != nil {
			return nil, err
		}
	}
	return dishes, nil
}

// FindDishByID returns nil, nil when the dish does not exist.
func (r *Repository) FindDishByID(ctx context.Context, id uint) (*models.Dish, error) {
	var dish models.Dish
	err := r.db.WithContext(ctx).First(&dish, id).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, r.fail("find dish by id", err, "")
	}
	if err := r.checkRow("dishes", &dish); err != nil {
		return nil, err
	}
	return &dish, nil
}

// FindDishByName returns nil, nil when no dish has that name.
func (r *Repository) FindDishByName(ctx context.Context, name string) (*models.Dish, error) {
	var dish models.Dish
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&dish).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, r.fail("find dish by name", err, "")
	}
	if err := r.checkRow("dishes", &dish); err != nil {
		return nil, err
	}
	return &dish, nil
}

func (r *Repository) CreateDish(ctx context.Context, in models.DishInput) (*models.Dish, error) {
	if err := models.Validate(in); err != nil {
		return nil, err
	}
	dish := in.Dish()
	if err := r.db.WithContext(ctx).Create(&dish).Error; err != nil {
		return nil, r.fail("create dish", err, dishNameTaken)
	}
	if err := r.checkRow("dishes", &dish); err != nil {
		return nil, err
	}
	return &dish, nil
}

// UpdateDishByID overwrites every writable field. It returns nil, nil when
// the dish does not exist.
func (r *Repository) UpdateDishByID(ctx context.Context, id uint, in models.DishInput) (*models.Dish, error) {
	if err := models.Validate(in); err != nil {
		return nil, err
	}
	res := r.db.WithContext(ctx).
		Model(&models.Dish{}).
		Where("id = ?", id).
		Select("name", "portion", "price", "description", "imageurl").
		Updates(in.Dish())
	if res.Error != nil {
		return nil, r.fail("update dish", res.Error, dishNameTaken)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindDishByID(ctx, id)
}

// DeleteDishByID removes a dish. Deleting an absent dish is not an error.
func (r *Repository) DeleteDishByID(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Dish{}, id).Error; err != nil {
		return r.fail("delete dish", err, "")
	}
	return nil
}
