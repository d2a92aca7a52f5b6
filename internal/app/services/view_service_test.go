package services

import (
	"context"
	"testing"

	"github.com/seas-computing/course-planner/internal/app/models/dto"
	"github.com/seas-computing/course-planner/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewService(t *testing.T) {
	store := newMemoryStore()
	svc := NewViewService(store)
	ctx := context.Background()
	owner := "owner@harvard.edu"

	view, err := svc.CreateView(ctx, owner, &dto.ViewRequest{
		Name: " Enrollment ", Columns: []string{"catalogNumber", "fallEnrollment", "catalogNumber"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Enrollment", view.Name)
	assert.Equal(t, []string{"catalogNumber", "fallEnrollment"}, view.Columns)

	mine, err := svc.ListViews(ctx, owner)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	others, err := svc.ListViews(ctx, "other@harvard.edu")
	require.NoError(t, err)
	assert.Empty(t, others)

	err = svc.DeleteView(ctx, "other@harvard.edu", view.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	require.NoError(t, svc.DeleteView(ctx, owner, view.ID))
	mine, err = svc.ListViews(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, mine)
}
