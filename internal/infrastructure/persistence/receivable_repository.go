package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gestion/backend/internal/domain/receivable"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gestion/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDocumentRepository implements receivable.DocumentRepository using GORM
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// FindByID finds a receivable document by ID
func (r *GormDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*receivable.CustomerDocument, error) {
	var model models.CustomerDocumentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a receivable document by number
func (r *GormDocumentRepository) FindByNumber(ctx context.Context, number string) (*receivable.CustomerDocument, error) {
	var model models.CustomerDocumentModel
	if err := r.db.WithContext(ctx).
		Where("number = ?", strings.ToUpper(number)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByInvoiceID finds the receivable document created for an invoice
func (r *GormDocumentRepository) FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (*receivable.CustomerDocument, error) {
	var model models.CustomerDocumentModel
	if err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds documents matching the filter
func (r *GormDocumentRepository) FindAll(ctx context.Context, filter receivable.DocumentFilter) ([]receivable.CustomerDocument, error) {
	var docModels []models.CustomerDocumentModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CustomerDocumentModel{}), filter)
	query = applyListOptions(query, filter.Filter, "issued_at DESC")

	if err := query.Find(&docModels).Error; err != nil {
		return nil, err
	}

	documents := make([]receivable.CustomerDocument, len(docModels))
	for i, model := range docModels {
		documents[i] = *model.ToDomain()
	}
	return documents, nil
}

// Count counts documents matching the filter
func (r *GormDocumentRepository) Count(ctx context.Context, filter receivable.DocumentFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CustomerDocumentModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindOutstandingByCustomer finds a customer's open and partial documents
func (r *GormDocumentRepository) FindOutstandingByCustomer(ctx context.Context, customerID uuid.UUID) ([]receivable.CustomerDocument, error) {
	var docModels []models.CustomerDocumentModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND status IN ?", customerID, outstandingStatuses()).
		Order("issued_at ASC").
		Find(&docModels).Error; err != nil {
		return nil, err
	}
	return toDocuments(docModels), nil
}

// FindOutstanding finds every open and partial document
func (r *GormDocumentRepository) FindOutstanding(ctx context.Context) ([]receivable.CustomerDocument, error) {
	var docModels []models.CustomerDocumentModel
	if err := r.db.WithContext(ctx).
		Where("status IN ?", outstandingStatuses()).
		Order("customer_id ASC, issued_at ASC").
		Find(&docModels).Error; err != nil {
		return nil, err
	}
	return toDocuments(docModels), nil
}

// FindNewlyOverdue finds outstanding documents whose due date passed
// after the previous sweep, so each one is picked up exactly once.
func (r *GormDocumentRepository) FindNewlyOverdue(ctx context.Context, since time.Time) ([]receivable.CustomerDocument, error) {
	var docModels []models.CustomerDocumentModel
	now := time.Now()
	if err := r.db.WithContext(ctx).
		Where("status IN ?", outstandingStatuses()).
		Where("due_date IS NOT NULL AND due_date <= ? AND due_date > ?", now, since).
		Order("due_date ASC").
		Find(&docModels).Error; err != nil {
		return nil, err
	}
	return toDocuments(docModels), nil
}

// Save creates or updates a document. Documents are never hard-deleted;
// cancellation is a status change.
func (r *GormDocumentRepository) Save(ctx context.Context, document *receivable.CustomerDocument) error {
	model := models.CustomerDocumentModelFromDomain(document)
	return r.db.WithContext(ctx).Save(model).Error
}

func (r *GormDocumentRepository) applyFilter(query *gorm.DB, filter receivable.DocumentFilter) *gorm.DB {
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.OverdueOnly {
		query = query.Where("status IN ? AND due_date IS NOT NULL AND due_date <= ?",
			outstandingStatuses(), time.Now())
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

func outstandingStatuses() []receivable.DocumentStatus {
	return []receivable.DocumentStatus{
		receivable.DocumentStatusOpen,
		receivable.DocumentStatusPartial,
	}
}

func toDocuments(docModels []models.CustomerDocumentModel) []receivable.CustomerDocument {
	documents := make([]receivable.CustomerDocument, len(docModels))
	for i, model := range docModels {
		documents[i] = *model.ToDomain()
	}
	return documents
}

var _ receivable.DocumentRepository = (*GormDocumentRepository)(nil)

// GormCollectionLogRepository implements receivable.CollectionLogRepository using GORM
type GormCollectionLogRepository struct {
	db *gorm.DB
}

// NewGormCollectionLogRepository creates a new GormCollectionLogRepository
func NewGormCollectionLogRepository(db *gorm.DB) *GormCollectionLogRepository {
	return &GormCollectionLogRepository{db: db}
}

// FindByID finds a collection log entry by ID
func (r *GormCollectionLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*receivable.CollectionLog, error) {
	var model models.CollectionLogModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCustomer finds a customer's collection history, newest first
func (r *GormCollectionLogRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]receivable.CollectionLog, error) {
	var logModels []models.CollectionLogModel
	query := r.db.WithContext(ctx).Model(&models.CollectionLogModel{}).
		Where("customer_id = ?", customerID)
	query = applyListOptions(query, filter, "contacted_at DESC")

	if err := query.Find(&logModels).Error; err != nil {
		return nil, err
	}
	return toCollectionLogs(logModels), nil
}

// FindByDocument finds contacts recorded against a document
func (r *GormCollectionLogRepository) FindByDocument(ctx context.Context, documentID uuid.UUID) ([]receivable.CollectionLog, error) {
	var logModels []models.CollectionLogModel
	if err := r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("contacted_at DESC").
		Find(&logModels).Error; err != nil {
		return nil, err
	}
	return toCollectionLogs(logModels), nil
}

// FindPendingActions finds log entries whose follow-up date has arrived
func (r *GormCollectionLogRepository) FindPendingActions(ctx context.Context, before time.Time) ([]receivable.CollectionLog, error) {
	var logModels []models.CollectionLogModel
	if err := r.db.WithContext(ctx).
		Where("next_action_at IS NOT NULL AND next_action_at <= ?", before).
		Order("next_action_at ASC").
		Find(&logModels).Error; err != nil {
		return nil, err
	}
	return toCollectionLogs(logModels), nil
}

// Save persists a collection log entry
func (r *GormCollectionLogRepository) Save(ctx context.Context, log *receivable.CollectionLog) error {
	model := models.CollectionLogModelFromDomain(log)
	return r.db.WithContext(ctx).Save(model).Error
}

func toCollectionLogs(logModels []models.CollectionLogModel) []receivable.CollectionLog {
	logs := make([]receivable.CollectionLog, len(logModels))
	for i, model := range logModels {
		logs[i] = *model.ToDomain()
	}
	return logs
}

var _ receivable.CollectionLogRepository = (*GormCollectionLogRepository)(nil)

// GormDisputeRepository implements receivable.DisputeRepository using GORM
type GormDisputeRepository struct {
	db *gorm.DB
}

// NewGormDisputeRepository creates a new GormDisputeRepository
func NewGormDisputeRepository(db *gorm.DB) *GormDisputeRepository {
	return &GormDisputeRepository{db: db}
}

// FindByID finds a dispute by ID with its attachments
func (r *GormDisputeRepository) FindByID(ctx context.Context, id uuid.UUID) (*receivable.Dispute, error) {
	var model models.DisputeModel
	if err := r.db.WithContext(ctx).
		Preload("Attachments").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByDocument finds all disputes raised against a document
func (r *GormDisputeRepository) FindByDocument(ctx context.Context, documentID uuid.UUID) ([]receivable.Dispute, error) {
	var disputeModels []models.DisputeModel
	if err := r.db.WithContext(ctx).
		Preload("Attachments").
		Where("document_id = ?", documentID).
		Order("created_at DESC").
		Find(&disputeModels).Error; err != nil {
		return nil, err
	}
	return toDisputes(disputeModels), nil
}

// FindOpenByDocument finds the open dispute on a document, if any
func (r *GormDisputeRepository) FindOpenByDocument(ctx context.Context, documentID uuid.UUID) (*receivable.Dispute, error) {
	var model models.DisputeModel
	if err := r.db.WithContext(ctx).
		Preload("Attachments").
		Where("document_id = ? AND status = ?", documentID, receivable.DisputeStatusOpen).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds disputes matching the filter
func (r *GormDisputeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]receivable.Dispute, error) {
	var disputeModels []models.DisputeModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.DisputeModel{}), filter)
	query = applyListOptions(query, filter, "created_at DESC").Preload("Attachments")

	if err := query.Find(&disputeModels).Error; err != nil {
		return nil, err
	}
	return toDisputes(disputeModels), nil
}

// Count counts disputes matching the filter
func (r *GormDisputeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.DisputeModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists the dispute and replaces its attachment rows
func (r *GormDisputeRepository) Save(ctx context.Context, dispute *receivable.Dispute) error {
	model := models.DisputeModelFromDomain(dispute)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Attachments").Save(model).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.DisputeAttachmentModel{}, "dispute_id = ?", dispute.ID).Error; err != nil {
			return err
		}
		if len(model.Attachments) == 0 {
			return nil
		}
		return tx.Create(&model.Attachments).Error
	})
}

func (r *GormDisputeRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("reason ILIKE ?", "%"+filter.Search+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		}
	}
	return query
}

func toDisputes(disputeModels []models.DisputeModel) []receivable.Dispute {
	disputes := make([]receivable.Dispute, len(disputeModels))
	for i, model := range disputeModels {
		disputes[i] = *model.ToDomain()
	}
	return disputes
}

var _ receivable.DisputeRepository = (*GormDisputeRepository)(nil)
