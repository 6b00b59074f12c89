package models

import "time"

// InventoryRecord is the quantity of one product held at one location.
type InventoryRecord struct {
	ID          int64     `json:"id"`
	Product     int64     `json:"product"`
	Location    int64     `json:"location"`
	Quantity    int       `json:"quantity"`
	LastUpdated time.Time `json:"last_updated"`
}

// InventoryInput is the writable shape of an inventory record.
type InventoryInput struct {
	Product  int64 `json:"product"`
	Location int64 `json:"location"`
	Quantity *int  `json:"quantity"`
}

// StockMovement records a transfer of a product between two locations.
type StockMovement struct {
	ID           int64     `json:"id"`
	Product      int64     `json:"product"`
	FromLocation int64     `json:"from_location"`
	ToLocation   int64     `json:"to_location"`
	Quantity     int       `json:"quantity"`
	Notes        *string   `json:"notes,omitempty"`
	MovementDate time.Time `json:"movement_date"`
}

// StockMovementInput is the writable shape of a stock movement. Notes are optional.
type StockMovementInput struct {
	Product      int64  `json:"product"`
	FromLocation int64  `json:"from_location"`
	ToLocation   int64  `json:"to_location"`
	Quantity     *int   `json:"quantity"`
	Notes        string `json:"notes"`
}
