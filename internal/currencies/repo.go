package currencies

import (
	"context"
	"errors"

	"github.com/angelmondragon/rewardtrack/pkg/db/models"
	pkgerrors "github.com/angelmondragon/rewardtrack/pkg/errors"
	"gorm.io/gorm"
)

// Repository manages persistence for reward currencies.
type Repository struct {
	db *gorm.DB
}

// NewRepository returns a currency repository bound to the provided database.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository to the supplied transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts a currency with a zero starting balance and returns it
// with its generated id.
func (r *Repository) Create(ctx context.Context, name, symbol string) (*models.Currency, error) {
	currency := &models.Currency{Name: name, Symbol: symbol, Balance: 0}
	if err := r.db.WithContext(ctx).Create(currency).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert currency")
	}
	return currency, nil
}

// List returns every currency in insertion order.
func (r *Repository) List(ctx context.Context) ([]models.Currency, error) {
	var out []models.Currency
	if err := r.db.WithContext(ctx).
		Order("currency_id ASC").
		Find(&out).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list currencies")
	}
	return out, nil
}

// FindByID loads one currency.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Currency, error) {
	var currency models.Currency
	err := r.db.WithContext(ctx).First(&currency, "currency_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "currency not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load currency")
	}
	return &currency, nil
}

// Credit applies a signed delta to the balance. Negative deltas debit.
// No floor is enforced here; range rules belong to the workflow layer.
func (r *Repository) Credit(ctx context.Context, id int64, delta int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.Currency{}).
		Where("currency_id = ?", id).
		UpdateColumn("balance", gorm.Expr("balance + ?", delta))
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "update balance")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "currency not found")
	}
	return nil
}
