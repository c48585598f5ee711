package models

// Currency is a named reward unit with a running balance. The balance is
// only ever moved by credit/debit deltas, never set directly.
type Currency struct {
	ID      int64  `gorm:"column:currency_id;primaryKey;autoIncrement"`
	Name    string `gorm:"column:currency_name;not null"`
	Symbol  string `gorm:"column:symbol;not null"`
	Balance int64  `gorm:"column:balance;not null;default:0"`
}

func (Currency) TableName() string {
	return "currency"
}
