package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gestion/backend/internal/domain/billing"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/gestion/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvoiceRepository implements billing.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice by ID with its items and payments
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds an invoice by its consecutive number
func (r *GormInvoiceRepository) FindByNumber(ctx context.Context, number string) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments").
		Where("number = ?", strings.ToUpper(number)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrderID finds the invoice that settles a restaurant order
func (r *GormInvoiceRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments").
		Where("order_id = ?", orderID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds invoices matching the filter
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter billing.InvoiceFilter) ([]billing.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.InvoiceModel{}), filter)
	query = applyListOptions(query, filter.Filter, "created_at DESC").
		Preload("Items").
		Preload("Payments")

	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	invoices := make([]billing.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, nil
}

// Count counts invoices matching the filter
func (r *GormInvoiceRepository) Count(ctx context.Context, filter billing.InvoiceFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.InvoiceModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists the invoice and replaces its items and payments
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items", "Payments").Save(model).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.InvoiceItemModel{}, "invoice_id = ?", invoice.ID).Error; err != nil {
			return err
		}
		if len(model.Items) > 0 {
			if err := tx.Create(&model.Items).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&models.InvoicePaymentModel{}, "invoice_id = ?", invoice.ID).Error; err != nil {
			return err
		}
		if len(model.Payments) > 0 {
			if err := tx.Create(&model.Payments).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a draft invoice and its lines
func (r *GormInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.InvoiceItemModel{}, "invoice_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.InvoicePaymentModel{}, "invoice_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.InvoiceModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter billing.InvoiceFilter) *gorm.DB {
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.From != nil {
		query = query.Where("issued_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("issued_at < ?", *filter.To)
	}
	if filter.Search != "" {
		query = query.Where("number ILIKE ?", "%"+filter.Search+"%")
	}
	return query
}

var _ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)

// GormDocumentSequenceRepository implements billing.DocumentSequenceRepository using GORM
type GormDocumentSequenceRepository struct {
	db *gorm.DB
}

// NewGormDocumentSequenceRepository creates a new GormDocumentSequenceRepository
func NewGormDocumentSequenceRepository(db *gorm.DB) *GormDocumentSequenceRepository {
	return &GormDocumentSequenceRepository{db: db}
}

// FindByKind finds a sequence without locking
func (r *GormDocumentSequenceRepository) FindByKind(ctx context.Context, kind billing.DocumentKind) (*billing.DocumentSequence, error) {
	var model models.DocumentSequenceModel
	if err := r.db.WithContext(ctx).
		Where("kind = ?", kind).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindForUpdate finds a sequence with a row lock. Must be called inside
// a transaction; concurrent allocations of the same kind serialize on
// the lock so numbers never repeat.
func (r *GormDocumentSequenceRepository) FindForUpdate(ctx context.Context, kind billing.DocumentKind) (*billing.DocumentSequence, error) {
	var model models.DocumentSequenceModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("kind = ?", kind).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a sequence
func (r *GormDocumentSequenceRepository) Save(ctx context.Context, sequence *billing.DocumentSequence) error {
	model := models.DocumentSequenceModelFromDomain(sequence)
	return r.db.WithContext(ctx).Save(model).Error
}

var _ billing.DocumentSequenceRepository = (*GormDocumentSequenceRepository)(nil)

// GormPaymentTermRepository implements billing.PaymentTermRepository using GORM
type GormPaymentTermRepository struct {
	db *gorm.DB
}

// NewGormPaymentTermRepository creates a new GormPaymentTermRepository
func NewGormPaymentTermRepository(db *gorm.DB) *GormPaymentTermRepository {
	return &GormPaymentTermRepository{db: db}
}

// FindByID finds a payment term by ID
func (r *GormPaymentTermRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.PaymentTerm, error) {
	var model models.PaymentTermModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a payment term by code
func (r *GormPaymentTermRepository) FindByCode(ctx context.Context, code string) (*billing.PaymentTerm, error) {
	var model models.PaymentTermModel
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds payment terms matching the filter
func (r *GormPaymentTermRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.PaymentTerm, error) {
	var termModels []models.PaymentTermModel
	query := r.db.WithContext(ctx).Model(&models.PaymentTermModel{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("code ILIKE ? OR name ILIKE ?", pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "active":
			query = query.Where("active = ?", value)
		}
	}
	query = applyListOptions(query, filter, "days ASC")

	if err := query.Find(&termModels).Error; err != nil {
		return nil, err
	}

	terms := make([]billing.PaymentTerm, len(termModels))
	for i, model := range termModels {
		terms[i] = *model.ToDomain()
	}
	return terms, nil
}

// ExistsByCode checks whether a payment term code is taken
func (r *GormPaymentTermRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PaymentTermModel{}).
		Where("code = ?", strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a payment term
func (r *GormPaymentTermRepository) Save(ctx context.Context, term *billing.PaymentTerm) error {
	model := models.PaymentTermModelFromDomain(term)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a payment term
func (r *GormPaymentTermRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PaymentTermModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ billing.PaymentTermRepository = (*GormPaymentTermRepository)(nil)

// GormExchangeRateRepository implements billing.ExchangeRateRepository using GORM
type GormExchangeRateRepository struct {
	db *gorm.DB
}

// NewGormExchangeRateRepository creates a new GormExchangeRateRepository
func NewGormExchangeRateRepository(db *gorm.DB) *GormExchangeRateRepository {
	return &GormExchangeRateRepository{db: db}
}

// FindLatest finds the most recent rate for a currency
func (r *GormExchangeRateRepository) FindLatest(ctx context.Context, currency valueobject.Currency) (*billing.ExchangeRate, error) {
	var model models.ExchangeRateModel
	if err := r.db.WithContext(ctx).
		Where("currency = ?", string(currency)).
		Order("effective_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAt finds the rate in effect at a point in time
func (r *GormExchangeRateRepository) FindAt(ctx context.Context, currency valueobject.Currency, at time.Time) (*billing.ExchangeRate, error) {
	var model models.ExchangeRateModel
	if err := r.db.WithContext(ctx).
		Where("currency = ? AND effective_at <= ?", string(currency), at).
		Order("effective_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindHistory lists rates for a currency, newest first
func (r *GormExchangeRateRepository) FindHistory(ctx context.Context, currency valueobject.Currency, filter shared.Filter) ([]billing.ExchangeRate, error) {
	var rateModels []models.ExchangeRateModel
	query := r.db.WithContext(ctx).Model(&models.ExchangeRateModel{}).
		Where("currency = ?", string(currency))
	query = applyListOptions(query, filter, "effective_at DESC")

	if err := query.Find(&rateModels).Error; err != nil {
		return nil, err
	}

	rates := make([]billing.ExchangeRate, len(rateModels))
	for i, model := range rateModels {
		rates[i] = *model.ToDomain()
	}
	return rates, nil
}

// Save persists an exchange rate
func (r *GormExchangeRateRepository) Save(ctx context.Context, rate *billing.ExchangeRate) error {
	model := models.ExchangeRateModelFromDomain(rate)
	return r.db.WithContext(ctx).Save(model).Error
}

var _ billing.ExchangeRateRepository = (*GormExchangeRateRepository)(nil)
