// Package statemachine describes the order lifecycle. Orders start in
// Initial; an admin may then move an order to any whitelisted status, so
// there is no transition table.
package statemachine

import "food-ordering-api/models"

// Initial is the status every new order is created with.
const Initial = models.StatusProcessing

// Status describes one lifecycle state for documentation purposes
type Status struct {
	Status      models.OrderStatus `json:"status"`
	Description string             `json:"description"`
	Terminal    bool               `json:"terminal"`
}

var catalogue = []Status{
	{Status: models.StatusProcessing, Description: "Order received and being prepared"},
	{Status: models.StatusDispatched, Description: "Order handed over to delivery"},
	{Status: models.StatusDelivered, Description: "Order delivered to the customer", Terminal: true},
	{Status: models.StatusCancelled, Description: "Order cancelled", Terminal: true},
}

var valid = func() map[models.OrderStatus]bool {
	m := make(map[models.OrderStatus]bool, len(catalogue))
	for _, s := range catalogue {
		m[s.Status] = true
	}
	return m
}()

// Statuses returns the whitelisted statuses in lifecycle order.
func Statuses() []models.OrderStatus {
	out := make([]models.OrderStatus, 0, len(catalogue))
	for _, s := range catalogue {
		out = append(out, s.Status)
	}
	return out
}

func IsValid(status models.OrderStatus) bool {
	return valid[status]
}

// Describe returns a copy of the status catalogue.
func Describe() []Status {
	out := make([]Status, len(catalogue))
	copy(out, catalogue)
	return out
}
