package repository

import (
	"context"
	"fmt"
	"sort"

	"food-ordering-api/models"
	"food-ordering-api/statemachine"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("dish_id")
	})
}

func (r *Repository) checkOrders(orders []models.Order) error {
	for i := range orders {
		if err := r.checkRow("orders", &orders[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := preloadItems(r.db.WithContext(ctx)).Order("id").Find(&orders).Error; err != nil {
		return nil, r.fail("get all orders", err, "")
	}
	if err := r.checkOrders(orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// FindOrderByID returns nil, nil when the order does not exist.
func (r *Repository) FindOrderByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := preloadItems(r.db.WithContext(ctx)).First(&order, id).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, r.fail("find order by id", err, "")
	}
	if err := r.checkRow("orders", &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *Repository) FindOrdersByUserID(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := preloadItems(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("id").
		Find(&orders).Error
	if err != nil {
		return nil, r.fail("find orders by user", err, "")
	}
	if err := r.checkOrders(orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateOrder stores an order and its items atomically. Input is validated
// before any statement runs. If any insert fails the transaction is rolled
// back and neither the order nor any of its items survive.
func (r *Repository) CreateOrder(ctx context.Context, in models.CreateOrderInput) (*models.Order, error) {
	if err := models.Validate(in); err != nil {
		return nil, err
	}

	dishIDs := make([]uint, 0, len(in.Items))
	for id := range in.Items {
		dishIDs = append(dishIDs, id)
	}
	sort.Slice(dishIDs, func(i, j int) bool { return dishIDs[i] < dishIDs[j] })

	order := models.Order{
		UserID:  in.UserID,
		Status:  statemachine.Initial,
		Name:    in.Name,
		Address: in.Address,
		Phone:   in.Phone,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&order).Error; err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		for _, dishID := range dishIDs {
			item := models.OrderItem{OrderID: order.ID, DishID: dishID, Quantity: in.Items[dishID]}
			if err := tx.Omit(clause.Associations).Create(&item).Error; err != nil {
				return fmt.Errorf("insert item for dish %d: %w", dishID, err)
			}
		}
		if err := tx.Where("order_id = ?", order.ID).Order("dish_id").Find(&order.Items).Error; err != nil {
			return fmt.Errorf("read back items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, r.fail("create order", err, "")
	}
	if err := r.checkRow("orders", &order); err != nil {
		return nil, err
	}

	r.log.Info("order created",
		zap.Uint("order_id", order.ID),
		zap.Uint("user_id", order.UserID),
		zap.Int("items", len(order.Items)),
	)
	return &order, nil
}

// UpdateOrderStatusByID sets the status and records the change. An invalid
// status fails validation before any lookup; a missing order yields nil, nil.
func (r *Repository) UpdateOrderStatusByID(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	if err := models.Validate(models.UpdateOrderStatusInput{Status: status}); err != nil {
		return nil, err
	}

	found := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		err := tx.First(&order, id).Error
		if notFound(err) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("lookup order: %w", err)
		}
		found = true

		prev := order.Status
		if err := tx.Model(&order).Update("status", status).Error; err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		history := models.OrderStatusHistory{OrderID: order.ID, FromStatus: prev, ToStatus: status}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("insert history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, r.fail("update order status", err, "")
	}
	if !found {
		return nil, nil
	}
	return r.FindOrderByID(ctx, id)
}

// FindStatusHistory lists the status changes of an order, oldest first.
func (r *Repository) FindStatusHistory(ctx context.Context, orderID uint) ([]models.OrderStatusHistory, error) {
	var history []models.OrderStatusHistory
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id").
		Find(&history).Error
	if err != nil {
		return nil, r.fail("find status history", err, "")
	}
	return history, nil
}
