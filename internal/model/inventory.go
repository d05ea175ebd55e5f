package model

// InventoryItem is a unit of scanned waste owned by one user
type InventoryItem struct {
	ID        int64 // unix millis at scan time
	Name      string
	Category  string
	DateAdded string
	Weight    string
	Status    string
}
