package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/gestion/backend/internal/domain/catalog"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gestion/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUnitRepository implements catalog.UnitRepository using GORM
type GormUnitRepository struct {
	db *gorm.DB
}

// NewGormUnitRepository creates a new GormUnitRepository
func NewGormUnitRepository(db *gorm.DB) *GormUnitRepository {
	return &GormUnitRepository{db: db}
}

// FindByID finds a unit by ID
func (r *GormUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Unit, error) {
	var model models.UnitModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a unit by code
func (r *GormUnitRepository) FindByCode(ctx context.Context, code string) (*catalog.Unit, error) {
	var model models.UnitModel
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToLower(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds units matching the filter
func (r *GormUnitRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Unit, error) {
	var unitModels []models.UnitModel
	query := r.db.WithContext(ctx).Model(&models.UnitModel{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("code ILIKE ? OR name ILIKE ?", pattern, pattern)
	}
	query = applyListOptions(query, filter, "code ASC")

	if err := query.Find(&unitModels).Error; err != nil {
		return nil, err
	}

	units := make([]catalog.Unit, len(unitModels))
	for i, model := range unitModels {
		units[i] = *model.ToDomain()
	}
	return units, nil
}

// ExistsByCode checks whether a unit code is taken
func (r *GormUnitRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UnitModel{}).
		Where("code = ?", strings.ToLower(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountArticles counts articles that use the unit
func (r *GormUnitRepository) CountArticles(ctx context.Context, unitCode string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ArticleModel{}).
		Where("unit_code = ?", strings.ToLower(unitCode)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a unit
func (r *GormUnitRepository) Save(ctx context.Context, unit *catalog.Unit) error {
	model := models.UnitModelFromDomain(unit)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a unit
func (r *GormUnitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.UnitModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ catalog.UnitRepository = (*GormUnitRepository)(nil)

// GormClassificationRepository implements catalog.ClassificationRepository using GORM
type GormClassificationRepository struct {
	db *gorm.DB
}

// NewGormClassificationRepository creates a new GormClassificationRepository
func NewGormClassificationRepository(db *gorm.DB) *GormClassificationRepository {
	return &GormClassificationRepository{db: db}
}

// FindByID finds a classification by ID
func (r *GormClassificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Classification, error) {
	var model models.ClassificationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a classification by code
func (r *GormClassificationRepository) FindByCode(ctx context.Context, code string) (*catalog.Classification, error) {
	var model models.ClassificationModel
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

// FindAll finds classifications matching the filter
func (r *GormClassificationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Classification, error) {
	var classModels []models.ClassificationModel
	query := r.db.WithContext(ctx).Model(&models.ClassificationModel{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("code ILIKE ? OR name ILIKE ?", pattern, pattern)
	}
	query = applyListOptions(query, filter, "code ASC")

	if err := query.Find(&classModels).Error; err != nil {
		return nil, err
	}

	classifications := make([]catalog.Classification, len(classModels))
	for i, model := range classModels {
		classifications[i] = *model.ToDomain()
	}
	return classifications, nil
}

// FindChildren finds the direct children of a classification
func (r *GormClassificationRepository) FindChildren(ctx context.Context, parentID uuid.UUID) ([]catalog.Classification, error) {
	var classModels []models.ClassificationModel
	if err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("code ASC").
		Find(&classModels).Error; err != nil {
		return nil, err
	}

	classifications := make([]catalog.Classification, len(classModels))
	for i, model := range classModels {
		classifications[i] = *model.ToDomain()
	}
	return classifications, nil
}

// ExistsByCode checks whether a classification code is taken
func (r *GormClassificationRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ClassificationModel{}).
		Where("code = ?", strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountArticles counts articles assigned to the classification
func (r *GormClassificationRepository) CountArticles(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ArticleModel{}).
		Where("classification_id = ?", id).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a classification
func (r *GormClassificationRepository) Save(ctx context.Context, classification *catalog.Classification) error {
	model := models.ClassificationModelFromDomain(classification)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a classification
func (r *GormClassificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ClassificationModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ catalog.ClassificationRepository = (*GormClassificationRepository)(nil)

// GormPriceListRepository implements catalog.PriceListRepository using GORM
type GormPriceListRepository struct {
	db *gorm.DB
}

// NewGormPriceListRepository creates a new GormPriceListRepository
func NewGormPriceListRepository(db *gorm.DB) *GormPriceListRepository {
	return &GormPriceListRepository{db: db}
}

// FindByID finds a price list by ID with its lines
func (r *GormPriceListRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.PriceList, error) {
	var model models.PriceListModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a price list by code
func (r *GormPriceListRepository) FindByCode(ctx context.Context, code string) (*catalog.PriceList, error) {
	var model models.PriceListModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("code = ?", strings.ToUpper(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds price lists matching the filter
func (r *GormPriceListRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.PriceList, error) {
	var listModels []models.PriceListModel
	query := r.db.WithContext(ctx).Model(&models.PriceListModel{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("code ILIKE ? OR name ILIKE ?", pattern, pattern)
	}
	query = applyListOptions(query, filter, "code ASC").Preload("Items")

	if err := query.Find(&listModels).Error; err != nil {
		return nil, err
	}

	lists := make([]catalog.PriceList, len(listModels))
	for i, model := range listModels {
		lists[i] = *model.ToDomain()
	}
	return lists, nil
}

// FindActive finds all active price lists
func (r *GormPriceListRepository) FindActive(ctx context.Context) ([]catalog.PriceList, error) {
	var listModels []models.PriceListModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("active = ?", true).
		Order("code ASC").
		Find(&listModels).Error; err != nil {
		return nil, err
	}

	lists := make([]catalog.PriceList, len(listModels))
	for i, model := range listModels {
		lists[i] = *model.ToDomain()
	}
	return lists, nil
}

// ExistsByCode checks whether a price list code is taken
func (r *GormPriceListRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PriceListModel{}).
		Where("code = ?", strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save persists the price list and replaces its lines
func (r *GormPriceListRepository) Save(ctx context.Context, priceList *catalog.PriceList) error {
	model := models.PriceListModelFromDomain(priceList)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(model).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.PriceListItemModel{}, "price_list_id = ?", priceList.ID).Error; err != nil {
			return err
		}
		if len(model.Items) == 0 {
			return nil
		}
		return tx.Create(&model.Items).Error
	})
}

// Delete removes a price list and its lines
func (r *GormPriceListRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.PriceListItemModel{}, "price_list_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.PriceListModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

var _ catalog.PriceListRepository = (*GormPriceListRepository)(nil)
