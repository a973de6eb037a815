package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/gestion/backend/internal/domain/notification"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gestion/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormChannelRepository implements notification.ChannelRepository using GORM
type GormChannelRepository struct {
	db *gorm.DB
}

// NewGormChannelRepository creates a new GormChannelRepository
func NewGormChannelRepository(db *gorm.DB) *GormChannelRepository {
	return &GormChannelRepository{db: db}
}

// FindByID finds a channel by ID
func (r *GormChannelRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Channel, error) {
	var model models.ChannelModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a channel by code
func (r *GormChannelRepository) FindByCode(ctx context.Context, code string) (*notification.Channel, error) {
	var model models.ChannelModel
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

// FindAll finds channels matching the filter
func (r *GormChannelRepository) FindAll(ctx context.Context, filter shared.Filter) ([]notification.Channel, error) {
	var channelModels []models.ChannelModel
	query := r.db.WithContext(ctx).Model(&models.ChannelModel{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("code ILIKE ? OR name ILIKE ?", pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "kind":
			query = query.Where("kind = ?", value)
		case "active":
			query = query.Where("active = ?", value)
		}
	}
	query = applyListOptions(query, filter, "code ASC")

	if err := query.Find(&channelModels).Error; err != nil {
		return nil, err
	}
	return toChannels(channelModels), nil
}

// FindActiveForEvent finds active channels subscribed to an event type.
// Subscriptions live in a JSONB array, so this uses the Postgres
// containment operator.
func (r *GormChannelRepository) FindActiveForEvent(ctx context.Context, eventType string) ([]notification.Channel, error) {
	var channelModels []models.ChannelModel
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Where("event_types @> ?", `["`+eventType+`"]`).
		Order("code ASC").
		Find(&channelModels).Error; err != nil {
		return nil, err
	}
	return toChannels(channelModels), nil
}

// ExistsByCode checks whether a channel code is taken
func (r *GormChannelRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ChannelModel{}).
		Where("code = ?", strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a channel
func (r *GormChannelRepository) Save(ctx context.Context, channel *notification.Channel) error {
	model := models.ChannelModelFromDomain(channel)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a channel
func (r *GormChannelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ChannelModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toChannels(channelModels []models.ChannelModel) []notification.Channel {
	channels := make([]notification.Channel, len(channelModels))
	for i, model := range channelModels {
		channels[i] = *model.ToDomain()
	}
	return channels
}

var _ notification.ChannelRepository = (*GormChannelRepository)(nil)

// GormDeliveryLogRepository implements notification.DeliveryLogRepository using GORM
type GormDeliveryLogRepository struct {
	db *gorm.DB
}

// NewGormDeliveryLogRepository creates a new GormDeliveryLogRepository
func NewGormDeliveryLogRepository(db *gorm.DB) *GormDeliveryLogRepository {
	return &GormDeliveryLogRepository{db: db}
}

// FindByID finds a delivery log entry by ID
func (r *GormDeliveryLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.DeliveryLog, error) {
	var model models.DeliveryLogModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByChannel finds delivery history for a channel, newest first
func (r *GormDeliveryLogRepository) FindByChannel(ctx context.Context, channelID uuid.UUID, filter shared.Filter) ([]notification.DeliveryLog, error) {
	var logModels []models.DeliveryLogModel
	query := r.db.WithContext(ctx).Model(&models.DeliveryLogModel{}).
		Where("channel_id = ?", channelID)
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "event_type":
			query = query.Where("event_type = ?", value)
		}
	}
	query = applyListOptions(query, filter, "created_at DESC")

	if err := query.Find(&logModels).Error; err != nil {
		return nil, err
	}
	return toDeliveryLogs(logModels), nil
}

// FindRetryable finds pending deliveries that still have attempts left,
// oldest first so retries drain in order
func (r *GormDeliveryLogRepository) FindRetryable(ctx context.Context, limit int) ([]notification.DeliveryLog, error) {
	var logModels []models.DeliveryLogModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND attempts < ?", notification.DeliveryStatusPending, notification.MaxDeliveryAttempts).
		Order("created_at ASC").
		Limit(limit).
		Find(&logModels).Error; err != nil {
		return nil, err
	}
	return toDeliveryLogs(logModels), nil
}

// Save persists a delivery log entry
func (r *GormDeliveryLogRepository) Save(ctx context.Context, log *notification.DeliveryLog) error {
	model := models.DeliveryLogModelFromDomain(log)
	return r.db.WithContext(ctx).Save(model).Error
}

func toDeliveryLogs(logModels []models.DeliveryLogModel) []notification.DeliveryLog {
	logs := make([]notification.DeliveryLog, len(logModels))
	for i, model := range logModels {
		logs[i] = *model.ToDomain()
	}
	return logs
}

var _ notification.DeliveryLogRepository = (*GormDeliveryLogRepository)(nil)
