package catalog

import (
	"context"
	"time"

	"github.com/gestion/backend/internal/domain/catalog"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PriceListService handles price list management and price resolution
type PriceListService struct {
	priceListRepo catalog.PriceListRepository
	articleRepo   catalog.ArticleRepository
	logger        *zap.Logger
}

// NewPriceListService creates a new PriceListService
func NewPriceListService(
	priceListRepo catalog.PriceListRepository,
	articleRepo catalog.ArticleRepository,
	logger *zap.Logger,
) *PriceListService {
	return &PriceListService{
		priceListRepo: priceListRepo,
		articleRepo:   articleRepo,
		logger:        logger,
	}
}

// Create creates a new price list
func (s *PriceListService) Create(ctx context.Context, req CreatePriceListRequest) (*PriceListResponse, error) {
	exists, err := s.priceListRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Price list with this code already exists")
	}

	currency := valueobject.DefaultCurrency
	if req.Currency != "" {
		currency = valueobject.Currency(req.Currency)
	}

	priceList, err := catalog.NewPriceList(req.Code, req.Name, currency)
	if err != nil {
		return nil, err
	}
	if req.ValidFrom != nil || req.ValidTo != nil {
		if err := priceList.SetValidity(req.ValidFrom, req.ValidTo); err != nil {
			return nil, err
		}
	}

	if err := s.priceListRepo.Save(ctx, priceList); err != nil {
		return nil, err
	}

	s.logger.Info("price list created", zap.String("code", priceList.Code))

	response := ToPriceListResponse(priceList)
	return &response, nil
}

// GetByID retrieves a price list by ID
func (s *PriceListService) GetByID(ctx context.Context, id uuid.UUID) (*PriceListResponse, error) {
	priceList, err := s.priceListRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPriceListResponse(priceList)
	return &response, nil
}

// List retrieves all price lists
func (s *PriceListService) List(ctx context.Context) ([]PriceListResponse, error) {
	lists, err := s.priceListRepo.FindAll(ctx, shared.Filter{OrderBy: "code", OrderDir: "asc", PageSize: 100, Page: 1})
	if err != nil {
		return nil, err
	}
	return ToPriceListResponses(lists), nil
}

// SetPrice sets an article price override on a list
func (s *PriceListService) SetPrice(ctx context.Context, listID uuid.UUID, req SetPriceRequest) (*PriceListResponse, error) {
	priceList, err := s.priceListRepo.FindByID(ctx, listID)
	if err != nil {
		return nil, err
	}

	if _, err := s.articleRepo.FindByID(ctx, req.ArticleID); err != nil {
		return nil, shared.NewDomainError("ARTICLE_NOT_FOUND", "Article does not exist")
	}

	price, err := valueobject.NewMoney(req.Price, priceList.Currency)
	if err != nil {
		return nil, err
	}
	if err := priceList.SetPrice(req.ArticleID, price); err != nil {
		return nil, err
	}

	if err := s.priceListRepo.Save(ctx, priceList); err != nil {
		return nil, err
	}

	response := ToPriceListResponse(priceList)
	return &response, nil
}

// RemovePrice removes an article price override from a list
func (s *PriceListService) RemovePrice(ctx context.Context, listID, articleID uuid.UUID) (*PriceListResponse, error) {
	priceList, err := s.priceListRepo.FindByID(ctx, listID)
	if err != nil {
		return nil, err
	}

	if err := priceList.RemovePrice(articleID); err != nil {
		return nil, err
	}

	if err := s.priceListRepo.Save(ctx, priceList); err != nil {
		return nil, err
	}

	response := ToPriceListResponse(priceList)
	return &response, nil
}

// Activate puts a price list into effect
func (s *PriceListService) Activate(ctx context.Context, listID uuid.UUID) (*PriceListResponse, error) {
	priceList, err := s.priceListRepo.FindByID(ctx, listID)
	if err != nil {
		return nil, err
	}

	priceList.Activate()

	if err := s.priceListRepo.Save(ctx, priceList); err != nil {
		return nil, err
	}

	response := ToPriceListResponse(priceList)
	return &response, nil
}

// Deactivate takes a price list out of effect
func (s *PriceListService) Deactivate(ctx context.Context, listID uuid.UUID) (*PriceListResponse, error) {
	priceList, err := s.priceListRepo.FindByID(ctx, listID)
	if err != nil {
		return nil, err
	}

	priceList.Deactivate()

	if err := s.priceListRepo.Save(ctx, priceList); err != nil {
		return nil, err
	}

	response := ToPriceListResponse(priceList)
	return &response, nil
}

// Delete removes a price list
func (s *PriceListService) Delete(ctx context.Context, listID uuid.UUID) error {
	if _, err := s.priceListRepo.FindByID(ctx, listID); err != nil {
		return err
	}
	return s.priceListRepo.Delete(ctx, listID)
}

// ResolvePrice returns the effective price for an article: the first
// active, currently effective price list that covers it wins, otherwise
// the article's base price applies.
func (s *PriceListService) ResolvePrice(ctx context.Context, articleID uuid.UUID, at time.Time) (valueobject.Money, error) {
	article, err := s.articleRepo.FindByID(ctx, articleID)
	if err != nil {
		return valueobject.Money{}, err
	}

	lists, err := s.priceListRepo.FindActive(ctx)
	if err != nil {
		return valueobject.Money{}, err
	}

	for i := range lists {
		if !lists[i].IsEffective(at) {
			continue
		}
		if price, ok := lists[i].PriceFor(articleID); ok {
			return price, nil
		}
	}

	return article.BasePrice, nil
}
