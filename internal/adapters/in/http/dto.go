package http

import "time"

// Error is the JSON error body returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderRequest is the body of POST /api/v1/orders.
type NewOrderRequest struct {
	Number        string    `json:"number"`
	TotalQuantity int       `json:"totalQuantity"`
	DueDate       time.Time `json:"dueDate"`
	LocationIDs   []string  `json:"locationIds"`
}

// OrderCreatedResponse returns the identifier of a freshly created order.
type OrderCreatedResponse struct {
	ID string `json:"id"`
}

// FinishLocationRequest is the body of the finish endpoint. The quantity is
// clamped into the location's effective range, not rejected.
type FinishLocationRequest struct {
	CompletedQuantity int `json:"completedQuantity"`
}

// UpdateQuantityRequest is the body of the quantity endpoint.
type UpdateQuantityRequest struct {
	CompletedQuantity int `json:"completedQuantity"`
}

// ReorderQueueRequest moves one queued order to a new position within a
// location's queue.
type ReorderQueueRequest struct {
	OrderID     string `json:"orderId"`
	NewPosition int    `json:"newPosition"`
}

// ShipOrderRequest records the cumulative shipped quantity.
type ShipOrderRequest struct {
	ShippedQuantity int `json:"shippedQuantity"`
}

// QueuePositionRequest admits an order into the global queue.
type QueuePositionRequest struct {
	Position int `json:"position"`
}

// RushRequest sets or clears the rush priority flag.
type RushRequest struct {
	Rush bool `json:"rush"`
}

// HelpRequest asks for assistance at a location.
type HelpRequest struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

// AssignmentRequest is the body of the machine assignment endpoints.
type AssignmentRequest struct {
	OrderID    string `json:"orderId"`
	LocationID string `json:"locationId"`
	MachineID  string `json:"machineId"`
	Quantity   int    `json:"quantity"`
}

// QueueRow is one row of a location's queue board, in display order.
type QueueRow struct {
	OrderID  string `json:"orderId"`
	Number   string `json:"number"`
	Rush     bool   `json:"rush"`
	Position int    `json:"position"`
}

// UpcomingRow is one not-yet-started order at a location, with the blocking
// reason when it is not eligible to start.
type UpcomingRow struct {
	OrderID  string `json:"orderId"`
	Number   string `json:"number"`
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
}

// EligibilityResponse is the verdict for one (order, location) pair.
type EligibilityResponse struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
}
