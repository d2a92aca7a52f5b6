package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/seas-computing/course-planner/internal/app/models"
	"github.com/seas-computing/course-planner/internal/app/models/dto"
)

// ViewService defines the interface for saved course table views
type ViewService interface {
	ListViews(ctx context.Context, eppn string) ([]dto.ViewResponse, error)
	CreateView(ctx context.Context, eppn string, req *dto.ViewRequest) (*dto.ViewResponse, error)
	DeleteView(ctx context.Context, eppn, id string) error
}

// viewServiceImpl implements ViewService
type viewServiceImpl struct {
	views ViewStore
}

// NewViewService creates a new ViewService
func NewViewService(views ViewStore) ViewService {
	return &viewServiceImpl{views: views}
}

func toViewResponse(v *models.View) dto.ViewResponse {
	columns := v.Columns
	if columns == nil {
		columns = []string{}
	}
	return dto.ViewResponse{ID: v.ID, Name: v.Name, Columns: columns}
}

// ListViews returns the views saved by eppn
func (s *viewServiceImpl) ListViews(ctx context.Context, eppn string) ([]dto.ViewResponse, error) {
	views, err := s.views.ListViews(ctx, eppn)
	if err != nil {
		return nil, fmt.Errorf("error getting views: %w", err)
	}

	result := make([]dto.ViewResponse, 0, len(views))
	for i := range views {
		result = append(result, toViewResponse(&views[i]))
	}
	return result, nil
}

// CreateView saves a column selection for eppn. Repeated columns are kept once.
func (s *viewServiceImpl) CreateView(ctx context.Context, eppn string, req *dto.ViewRequest) (*dto.ViewResponse, error) {
	seen := map[string]bool{}
	columns := make([]string, 0, len(req.Columns))
	for _, c := range req.Columns {
		if !seen[c] {
			seen[c] = true
			columns = append(columns, c)
		}
	}

	view := &models.View{
		EPPN:    eppn,
		Name:    strings.TrimSpace(req.Name),
		Columns: columns,
	}
	if err := s.views.CreateView(ctx, view); err != nil {
		return nil, fmt.Errorf("error creating view: %w", err)
	}
	resp := toViewResponse(view)
	return &resp, nil
}

// DeleteView removes one of eppn's views
func (s *viewServiceImpl) DeleteView(ctx context.Context, eppn, id string) error {
	if err := s.views.DeleteView(ctx, id, eppn); err != nil {
		return fmt.Errorf("error deleting view: %w", err)
	}
	return nil
}
