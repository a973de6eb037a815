package catalog

import (
	"context"

	"github.com/gestion/backend/internal/domain/catalog"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClassificationService handles the article classification tree
type ClassificationService struct {
	classificationRepo catalog.ClassificationRepository
}

// NewClassificationService creates a new ClassificationService
func NewClassificationService(classificationRepo catalog.ClassificationRepository) *ClassificationService {
	return &ClassificationService{classificationRepo: classificationRepo}
}

// Create creates a classification node
func (s *ClassificationService) Create(ctx context.Context, req CreateClassificationRequest) (*ClassificationResponse, error) {
	exists, err := s.classificationRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Classification with this code already exists")
	}

	if req.ParentID != nil {
		if _, err := s.classificationRepo.FindByID(ctx, *req.ParentID); err != nil {
			return nil, shared.NewDomainError("PARENT_NOT_FOUND", "Parent classification does not exist")
		}
	}

	classification, err := catalog.NewClassification(req.Code, req.Name, req.ParentID)
	if err != nil {
		return nil, err
	}

	if err := s.classificationRepo.Save(ctx, classification); err != nil {
		return nil, err
	}

	response := ToClassificationResponse(classification)
	return &response, nil
}

// GetByID retrieves a classification by ID
func (s *ClassificationService) GetByID(ctx context.Context, id uuid.UUID) (*ClassificationResponse, error) {
	classification, err := s.classificationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToClassificationResponse(classification)
	return &response, nil
}

// List retrieves all classifications
func (s *ClassificationService) List(ctx context.Context) ([]ClassificationResponse, error) {
	classifications, err := s.classificationRepo.FindAll(ctx, shared.Filter{OrderBy: "code", OrderDir: "asc", PageSize: 500, Page: 1})
	if err != nil {
		return nil, err
	}
	return ToClassificationResponses(classifications), nil
}

// GetChildren retrieves direct children of a node
func (s *ClassificationService) GetChildren(ctx context.Context, parentID uuid.UUID) ([]ClassificationResponse, error) {
	children, err := s.classificationRepo.FindChildren(ctx, parentID)
	if err != nil {
		return nil, err
	}
	return ToClassificationResponses(children), nil
}

// Update updates a classification
func (s *ClassificationService) Update(ctx context.Context, id uuid.UUID, req UpdateClassificationRequest) (*ClassificationResponse, error) {
	classification, err := s.classificationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := classification.Update(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.ParentID != nil {
		if *req.ParentID == id {
			return nil, shared.NewDomainError("INVALID_PARENT", "A classification cannot be its own parent")
		}
		if _, err := s.classificationRepo.FindByID(ctx, *req.ParentID); err != nil {
			return nil, shared.NewDomainError("PARENT_NOT_FOUND", "Parent classification does not exist")
		}
		if err := classification.SetParent(req.ParentID); err != nil {
			return nil, err
		}
	}

	if err := s.classificationRepo.Save(ctx, classification); err != nil {
		return nil, err
	}

	response := ToClassificationResponse(classification)
	return &response, nil
}

// Delete removes an empty leaf classification
func (s *ClassificationService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.classificationRepo.FindByID(ctx, id); err != nil {
		return err
	}

	children, err := s.classificationRepo.FindChildren(ctx, id)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return shared.NewDomainError("HAS_CHILDREN", "Classification has child classifications")
	}

	count, err := s.classificationRepo.CountArticles(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("CLASSIFICATION_IN_USE", "Classification is still assigned to articles")
	}

	return s.classificationRepo.Delete(ctx, id)
}
