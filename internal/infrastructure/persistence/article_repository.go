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

// GormArticleRepository implements catalog.ArticleRepository using GORM
type GormArticleRepository struct {
	db *gorm.DB
}

// NewGormArticleRepository creates a new GormArticleRepository
func NewGormArticleRepository(db *gorm.DB) *GormArticleRepository {
	return &GormArticleRepository{db: db}
}

// FindByID finds an article by ID with its kit components
func (r *GormArticleRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Article, error) {
	var model models.ArticleModel
	if err := r.db.WithContext(ctx).
		Preload("Components").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds an article by its code
func (r *GormArticleRepository) FindByCode(ctx context.Context, code string) (*catalog.Article, error) {
	var model models.ArticleModel
	if err := r.db.WithContext(ctx).
		Preload("Components").
		Where("code = ?", strings.ToUpper(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByBarcode finds an article by barcode
func (r *GormArticleRepository) FindByBarcode(ctx context.Context, barcode string) (*catalog.Article, error) {
	if barcode == "" {
		return nil, shared.NewDomainError("INVALID_BARCODE", "Barcode cannot be empty")
	}
	var model models.ArticleModel
	if err := r.db.WithContext(ctx).
		Preload("Components").
		Where("barcode = ?", barcode).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds multiple articles by their IDs
func (r *GormArticleRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Article, error) {
	if len(ids) == 0 {
		return []catalog.Article{}, nil
	}

	var articleModels []models.ArticleModel
	if err := r.db.WithContext(ctx).
		Preload("Components").
		Where("id IN ?", ids).
		Find(&articleModels).Error; err != nil {
		return nil, err
	}

	articles := make([]catalog.Article, len(articleModels))
	for i, model := range articleModels {
		articles[i] = *model.ToDomain()
	}
	return articles, nil
}

// FindAll finds articles matching the filter
func (r *GormArticleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Article, error) {
	var articleModels []models.ArticleModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ArticleModel{}), filter)
	query = applyListOptions(query, filter, "code ASC").Preload("Components")

	if err := query.Find(&articleModels).Error; err != nil {
		return nil, err
	}

	articles := make([]catalog.Article, len(articleModels))
	for i, model := range articleModels {
		articles[i] = *model.ToDomain()
	}
	return articles, nil
}

// Count counts articles matching the filter
func (r *GormArticleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ArticleModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks whether an article code is taken
func (r *GormArticleRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ArticleModel{}).
		Where("code = ?", strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save persists the article and replaces its kit components
func (r *GormArticleRepository) Save(ctx context.Context, article *catalog.Article) error {
	model := models.ArticleModelFromDomain(article)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Components").Save(model).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.KitComponentModel{}, "kit_id = ?", article.ID).Error; err != nil {
			return err
		}
		if len(model.Components) == 0 {
			return nil
		}
		return tx.Create(&model.Components).Error
	})
}

// Delete removes an article and its kit components
func (r *GormArticleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.KitComponentModel{}, "kit_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.ArticleModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormArticleRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("code ILIKE ? OR name ILIKE ? OR barcode ILIKE ?",
			pattern, pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		case "classification_id":
			query = query.Where("classification_id = ?", value)
		case "track_stock":
			query = query.Where("track_stock = ?", value)
		}
	}
	return query
}

var _ catalog.ArticleRepository = (*GormArticleRepository)(nil)
