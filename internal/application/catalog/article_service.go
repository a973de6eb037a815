// Package catalog implements article, unit, classification and price
// list management.
package catalog

import (
	"context"

	"github.com/gestion/backend/internal/domain/catalog"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ArticleService handles article business operations
type ArticleService struct {
	articleRepo        catalog.ArticleRepository
	unitRepo           catalog.UnitRepository
	classificationRepo catalog.ClassificationRepository
	eventBus           shared.EventPublisher
	logger             *zap.Logger
}

// NewArticleService creates a new ArticleService
func NewArticleService(
	articleRepo catalog.ArticleRepository,
	unitRepo catalog.UnitRepository,
	classificationRepo catalog.ClassificationRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *ArticleService {
	return &ArticleService{
		articleRepo:        articleRepo,
		unitRepo:           unitRepo,
		classificationRepo: classificationRepo,
		eventBus:           eventBus,
		logger:             logger,
	}
}

// Create creates a new article
func (s *ArticleService) Create(ctx context.Context, req CreateArticleRequest) (*ArticleResponse, error) {
	exists, err := s.articleRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Article with this code already exists")
	}

	if _, err := s.unitRepo.FindByCode(ctx, req.UnitCode); err != nil {
		return nil, shared.NewDomainError("UNIT_NOT_FOUND", "Unit of measure does not exist")
	}

	currency := valueobject.DefaultCurrency
	if req.Currency != "" {
		currency = valueobject.Currency(req.Currency)
	}
	basePrice, err := valueobject.NewMoney(req.BasePrice, currency)
	if err != nil {
		return nil, err
	}

	article, err := catalog.NewArticle(req.Code, req.Name, catalog.ArticleType(req.Type), req.UnitCode, basePrice)
	if err != nil {
		return nil, err
	}

	if req.Description != "" || req.Barcode != "" {
		if err := article.Update(req.Name, req.Description, req.Barcode); err != nil {
			return nil, err
		}
	}
	if req.ClassificationID != nil {
		if _, err := s.classificationRepo.FindByID(ctx, *req.ClassificationID); err != nil {
			return nil, shared.NewDomainError("CLASSIFICATION_NOT_FOUND", "Classification does not exist")
		}
		article.SetClassification(req.ClassificationID)
	}
	if !req.Cost.IsZero() {
		cost, err := valueobject.NewMoney(req.Cost, currency)
		if err != nil {
			return nil, err
		}
		if err := article.SetCost(cost); err != nil {
			return nil, err
		}
	}
	if !req.TaxRate.IsZero() {
		if err := article.SetTaxRate(req.TaxRate); err != nil {
			return nil, err
		}
	}
	if !req.MinStock.IsZero() {
		if err := article.SetMinStock(req.MinStock); err != nil {
			return nil, err
		}
	}

	if err := s.articleRepo.Save(ctx, article); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, article.GetDomainEvents())
	article.ClearDomainEvents()

	s.logger.Info("article created",
		zap.String("code", article.Code),
		zap.String("type", string(article.Type)),
	)

	response := ToArticleResponse(article)
	return &response, nil
}

// GetByID retrieves an article by ID
func (s *ArticleService) GetByID(ctx context.Context, articleID uuid.UUID) (*ArticleResponse, error) {
	article, err := s.articleRepo.FindByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	response := ToArticleResponse(article)
	return &response, nil
}

// GetByCode retrieves an article by code
func (s *ArticleService) GetByCode(ctx context.Context, code string) (*ArticleResponse, error) {
	article, err := s.articleRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	response := ToArticleResponse(article)
	return &response, nil
}

// GetByBarcode retrieves an article by barcode, for POS scanning
func (s *ArticleService) GetByBarcode(ctx context.Context, barcode string) (*ArticleResponse, error) {
	article, err := s.articleRepo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	response := ToArticleResponse(article)
	return &response, nil
}

// List retrieves articles with filtering and pagination
func (s *ArticleService) List(ctx context.Context, filter ArticleListFilter) ([]ArticleResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "code"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.ClassificationID != "" {
		domainFilter.Filters["classification_id"] = filter.ClassificationID
	}

	articles, err := s.articleRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.articleRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToArticleResponses(articles), total, nil
}

// Update updates mutable fields of an article
func (s *ArticleService) Update(ctx context.Context, articleID uuid.UUID, req UpdateArticleRequest) (*ArticleResponse, error) {
	article, err := s.articleRepo.FindByID(ctx, articleID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil || req.Barcode != nil {
		name := article.Name
		description := article.Description
		barcode := article.Barcode
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if req.Barcode != nil {
			barcode = *req.Barcode
		}
		if err := article.Update(name, description, barcode); err != nil {
			return nil, err
		}
	}

	if req.ClassificationID != nil {
		if _, err := s.classificationRepo.FindByID(ctx, *req.ClassificationID); err != nil {
			return nil, shared.NewDomainError("CLASSIFICATION_NOT_FOUND", "Classification does not exist")
		}
		article.SetClassification(req.ClassificationID)
	}
	if req.BasePrice != nil {
		price, err := valueobject.NewMoney(*req.BasePrice, article.BasePrice.Currency())
		if err != nil {
			return nil, err
		}
		if err := article.SetBasePrice(price); err != nil {
			return nil, err
		}
	}
	if req.Cost != nil {
		cost, err := valueobject.NewMoney(*req.Cost, article.Cost.Currency())
		if err != nil {
			return nil, err
		}
		if err := article.SetCost(cost); err != nil {
			return nil, err
		}
	}
	if req.TaxRate != nil {
		if err := article.SetTaxRate(*req.TaxRate); err != nil {
			return nil, err
		}
	}
	if req.MinStock != nil {
		if err := article.SetMinStock(*req.MinStock); err != nil {
			return nil, err
		}
	}

	if err := s.articleRepo.Save(ctx, article); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, article.GetDomainEvents())
	article.ClearDomainEvents()

	response := ToArticleResponse(article)
	return &response, nil
}

// AddComponent adds a component to a kit article
func (s *ArticleService) AddComponent(ctx context.Context, kitID uuid.UUID, req KitComponentRequest) (*ArticleResponse, error) {
	article, err := s.articleRepo.FindByID(ctx, kitID)
	if err != nil {
		return nil, err
	}

	component, err := s.articleRepo.FindByID(ctx, req.ComponentID)
	if err != nil {
		return nil, shared.NewDomainError("COMPONENT_NOT_FOUND", "Component article does not exist")
	}
	if component.IsKit() {
		return nil, shared.NewDomainError("NESTED_KIT", "A kit cannot contain another kit")
	}

	if err := article.AddComponent(req.ComponentID, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.articleRepo.Save(ctx, article); err != nil {
		return nil, err
	}

	response := ToArticleResponse(article)
	return &response, nil
}

// RemoveComponent removes a component from a kit article
func (s *ArticleService) RemoveComponent(ctx context.Context, kitID, componentID uuid.UUID) (*ArticleResponse, error) {
	article, err := s.articleRepo.FindByID(ctx, kitID)
	if err != nil {
		return nil, err
	}

	if err := article.RemoveComponent(componentID); err != nil {
		return nil, err
	}

	if err := s.articleRepo.Save(ctx, article); err != nil {
		return nil, err
	}

	response := ToArticleResponse(article)
	return &response, nil
}

// Discontinue marks an article as no longer sellable
func (s *ArticleService) Discontinue(ctx context.Context, articleID uuid.UUID) (*ArticleResponse, error) {
	article, err := s.articleRepo.FindByID(ctx, articleID)
	if err != nil {
		return nil, err
	}

	if err := article.Discontinue(); err != nil {
		return nil, err
	}

	if err := s.articleRepo.Save(ctx, article); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, article.GetDomainEvents())
	article.ClearDomainEvents()

	s.logger.Info("article discontinued", zap.String("code", article.Code))

	response := ToArticleResponse(article)
	return &response, nil
}

// Reactivate puts a discontinued article back on sale
func (s *ArticleService) Reactivate(ctx context.Context, articleID uuid.UUID) (*ArticleResponse, error) {
	article, err := s.articleRepo.FindByID(ctx, articleID)
	if err != nil {
		return nil, err
	}

	if err := article.Reactivate(); err != nil {
		return nil, err
	}

	if err := s.articleRepo.Save(ctx, article); err != nil {
		return nil, err
	}

	response := ToArticleResponse(article)
	return &response, nil
}

// Delete removes an article from the catalog
func (s *ArticleService) Delete(ctx context.Context, articleID uuid.UUID) error {
	if _, err := s.articleRepo.FindByID(ctx, articleID); err != nil {
		return err
	}
	return s.articleRepo.Delete(ctx, articleID)
}

func (s *ArticleService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventBus == nil || len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish domain events", zap.Error(err))
	}
}
