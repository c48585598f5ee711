package models

// UnlimitedStock is the sentinel stock value for items that never run out.
// It is excluded from stock decrements at the SQL level.
const UnlimitedStock int64 = -1

// StoreItem is a purchasable good in an event's store. ItemID is sequential
// per event. Stock counts down to 0 unless it carries the unlimited sentinel.
type StoreItem struct {
	EventID     int64  `gorm:"column:event_id;primaryKey;autoIncrement:false"`
	ItemID      int64  `gorm:"column:item_id;primaryKey;autoIncrement:false"`
	Description string `gorm:"column:item_description;not null"`
	Cost        int64  `gorm:"column:cost;not null;default:0"`
	Stock       int64  `gorm:"column:stock;not null;default:-1"`
	Category    string `gorm:"column:category"`
}

func (StoreItem) TableName() string {
	return "store"
}

// Unlimited reports whether the item carries the unlimited stock sentinel.
func (i StoreItem) Unlimited() bool {
	return i.Stock == UnlimitedStock
}
