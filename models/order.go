package models

import "time"

// OrderStatus represents all possible states of an order
type OrderStatus string

const (
	StatusProcessing OrderStatus = "processing"
	StatusDispatched OrderStatus = "dispatched"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

type Order struct {
	ID        uint                 `json:"id" gorm:"primaryKey" binding:"required"`
	UserID    uint                 `json:"userId" gorm:"not null;index" binding:"required"`
	User      User                 `json:"-" gorm:"foreignKey:UserID" binding:"-"`
	Items     []OrderItem          `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" binding:"required,min=1,dive"`
	Status    OrderStatus          `json:"status" gorm:"not null" binding:"required,oneof=processing dispatched delivered cancelled"`
	Name      string               `json:"name" gorm:"not null" binding:"required"`
	Address   string               `json:"address" gorm:"not null" binding:"required"`
	Phone     string               `json:"phone" gorm:"not null" binding:"required,phone"`
	History   []OrderStatusHistory `json:"-" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" binding:"-"`
	CreatedAt time.Time            `json:"createdAt" gorm:"autoCreateTime" binding:"required"`
}

// OrderItem is keyed by (order_id, dish_id); quantity is fixed at creation.
type OrderItem struct {
	OrderID  uint `json:"-" gorm:"primaryKey;autoIncrement:false" binding:"required"`
	DishID   uint `json:"dishId" gorm:"primaryKey;autoIncrement:false" binding:"required"`
	Dish     Dish `json:"-" gorm:"foreignKey:DishID;constraint:OnDelete:RESTRICT" binding:"-"`
	Quantity int  `json:"quantity" gorm:"not null;check:quantity >= 1" binding:"min=1"`
}

// OrderStatusHistory tracks every status change
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"orderId" gorm:"not null;index"`
	FromStatus OrderStatus `json:"fromStatus"`
	ToStatus   OrderStatus `json:"toStatus" gorm:"not null"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// CreateOrderInput maps dish id to quantity in Items.
type CreateOrderInput struct {
	UserID  uint         `json:"userId" binding:"required"`
	Items   map[uint]int `json:"items" binding:"required,min=1,dive,keys,gt=0,endkeys,min=1"`
	Name    string       `json:"name" binding:"required"`
	Address string       `json:"address" binding:"required"`
	Phone   string       `json:"phone" binding:"required,phone"`
}

type UpdateOrderStatusInput struct {
	Status OrderStatus `json:"status" binding:"required,oneof=processing dispatched delivered cancelled"`
}
