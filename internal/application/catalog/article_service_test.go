package catalog

import (
	"context"
	"testing"

	"github.com/gestion/backend/internal/domain/catalog"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockArticleRepository is a mock implementation of catalog.ArticleRepository
type MockArticleRepository struct {
	mock.Mock
}

func (m *MockArticleRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Article), args.Error(1)
}

func (m *MockArticleRepository) FindByCode(ctx context.Context, code string) (*catalog.Article, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Article), args.Error(1)
}

func (m *MockArticleRepository) FindByBarcode(ctx context.Context, barcode string) (*catalog.Article, error) {
	args := m.Called(ctx, barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Article), args.Error(1)
}

func (m *MockArticleRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Article, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Article), args.Error(1)
}

func (m *MockArticleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Article, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Article), args.Error(1)
}

func (m *MockArticleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockArticleRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockArticleRepository) Save(ctx context.Context, article *catalog.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *MockArticleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUnitRepository is a mock implementation of catalog.UnitRepository
type MockUnitRepository struct {
	mock.Mock
}

func (m *MockUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Unit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindByCode(ctx context.Context, code string) (*catalog.Unit, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Unit, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Unit), args.Error(1)
}

func (m *MockUnitRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockUnitRepository) CountArticles(ctx context.Context, unitCode string) (int64, error) {
	args := m.Called(ctx, unitCode)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUnitRepository) Save(ctx context.Context, unit *catalog.Unit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockUnitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockClassificationRepository is a mock implementation of catalog.ClassificationRepository
type MockClassificationRepository struct {
	mock.Mock
}

func (m *MockClassificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Classification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Classification), args.Error(1)
}

func (m *MockClassificationRepository) FindByCode(ctx context.Context, code string) (*catalog.Classification, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Classification), args.Error(1)
}

func (m *MockClassificationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Classification, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Classification), args.Error(1)
}

func (m *MockClassificationRepository) FindChildren(ctx context.Context, parentID uuid.UUID) ([]catalog.Classification, error) {
	args := m.Called(ctx, parentID)
	return args.Get(0).([]catalog.Classification), args.Error(1)
}

func (m *MockClassificationRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockClassificationRepository) CountArticles(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClassificationRepository) Save(ctx context.Context, classification *catalog.Classification) error {
	args := m.Called(ctx, classification)
	return args.Error(0)
}

func (m *MockClassificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newArticleService(articleRepo *MockArticleRepository, unitRepo *MockUnitRepository, classificationRepo *MockClassificationRepository) *ArticleService {
	return NewArticleService(articleRepo, unitRepo, classificationRepo, nil, zap.NewNop())
}

func testUnit(t *testing.T) *catalog.Unit {
	t.Helper()
	unit, err := catalog.NewUnit("und", "Unidad", "und")
	require.NoError(t, err)
	return unit
}

func TestArticleService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a product article", func(t *testing.T) {
		articleRepo := new(MockArticleRepository)
		unitRepo := new(MockUnitRepository)
		classificationRepo := new(MockClassificationRepository)

		articleRepo.On("ExistsByCode", ctx, "HARINA-PAN").Return(false, nil)
		unitRepo.On("FindByCode", ctx, "und").Return(testUnit(t), nil)
		articleRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Article")).Return(nil)

		service := newArticleService(articleRepo, unitRepo, classificationRepo)

		result, err := service.Create(ctx, CreateArticleRequest{
			Code:      "harina-pan",
			Name:      "Harina de maíz",
			Type:      "product",
			UnitCode:  "und",
			BasePrice: decimal.NewFromFloat(45.50),
			TaxRate:   decimal.NewFromInt(16),
		})
		require.NoError(t, err)

		assert.Equal(t, "HARINA-PAN", result.Code)
		assert.Equal(t, "product", result.Type)
		assert.Equal(t, "active", result.Status)
		assert.True(t, result.TrackStock)
		assert.True(t, decimal.NewFromFloat(45.50).Equal(result.BasePrice))
		articleRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		articleRepo := new(MockArticleRepository)
		articleRepo.On("ExistsByCode", ctx, "HARINA-PAN").Return(true, nil)

		service := newArticleService(articleRepo, new(MockUnitRepository), new(MockClassificationRepository))

		_, err := service.Create(ctx, CreateArticleRequest{
			Code: "HARINA-PAN", Name: "Harina", Type: "product", UnitCode: "und",
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("rejects unknown unit", func(t *testing.T) {
		articleRepo := new(MockArticleRepository)
		unitRepo := new(MockUnitRepository)
		articleRepo.On("ExistsByCode", ctx, "CAFE").Return(false, nil)
		unitRepo.On("FindByCode", ctx, "docena").Return(nil, shared.ErrNotFound)

		service := newArticleService(articleRepo, unitRepo, new(MockClassificationRepository))

		_, err := service.Create(ctx, CreateArticleRequest{
			Code: "CAFE", Name: "Café", Type: "product", UnitCode: "docena",
		})
		require.Error(t, err)
	})
}

func TestArticleService_AddComponent(t *testing.T) {
	ctx := context.Background()

	newKit := func(t *testing.T) *catalog.Article {
		t.Helper()
		kit, err := catalog.NewArticle("COMBO1", "Combo desayuno", catalog.ArticleTypeKit, "und", valueobject.NewMoneyVES(decimal.NewFromInt(120)))
		require.NoError(t, err)
		return kit
	}
	newProduct := func(t *testing.T, code string) *catalog.Article {
		t.Helper()
		article, err := catalog.NewArticle(code, code, catalog.ArticleTypeProduct, "und", valueobject.NewMoneyVES(decimal.NewFromInt(10)))
		require.NoError(t, err)
		return article
	}

	t.Run("adds a product component to a kit", func(t *testing.T) {
		articleRepo := new(MockArticleRepository)
		kit := newKit(t)
		component := newProduct(t, "AREPA")

		articleRepo.On("FindByID", ctx, kit.ID).Return(kit, nil)
		articleRepo.On("FindByID", ctx, component.ID).Return(component, nil)
		articleRepo.On("Save", ctx, kit).Return(nil)

		service := newArticleService(articleRepo, new(MockUnitRepository), new(MockClassificationRepository))

		result, err := service.AddComponent(ctx, kit.ID, KitComponentRequest{
			ComponentID: component.ID,
			Quantity:    decimal.NewFromInt(2),
		})
		require.NoError(t, err)
		require.Len(t, result.Components, 1)
		assert.Equal(t, component.ID, result.Components[0].ComponentID)
	})

	t.Run("rejects nesting a kit inside a kit", func(t *testing.T) {
		articleRepo := new(MockArticleRepository)
		kit := newKit(t)
		inner, err := catalog.NewArticle("COMBO2", "Combo interno", catalog.ArticleTypeKit, "und", valueobject.NewMoneyVES(decimal.NewFromInt(50)))
		require.NoError(t, err)

		articleRepo.On("FindByID", ctx, kit.ID).Return(kit, nil)
		articleRepo.On("FindByID", ctx, inner.ID).Return(inner, nil)

		service := newArticleService(articleRepo, new(MockUnitRepository), new(MockClassificationRepository))

		_, err = service.AddComponent(ctx, kit.ID, KitComponentRequest{
			ComponentID: inner.ID,
			Quantity:    decimal.NewFromInt(1),
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NESTED_KIT", domainErr.Code)
	})
}

func TestArticleService_Discontinue(t *testing.T) {
	ctx := context.Background()
	articleRepo := new(MockArticleRepository)

	article, err := catalog.NewArticle("CAFE", "Café", catalog.ArticleTypeProduct, "und", valueobject.NewMoneyVES(decimal.NewFromInt(30)))
	require.NoError(t, err)
	article.ClearDomainEvents()

	articleRepo.On("FindByID", ctx, article.ID).Return(article, nil)
	articleRepo.On("Save", ctx, article).Return(nil)

	service := newArticleService(articleRepo, new(MockUnitRepository), new(MockClassificationRepository))

	result, err := service.Discontinue(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, "discontinued", result.Status)

	// Discontinuing twice is rejected by the aggregate
	_, err = service.Discontinue(ctx, article.ID)
	require.Error(t, err)
}
