package resource

import (
	"context"
	"fmt"
	"strings"

	"github.com/rosterly/rosterly/pkg/user"
)

// ValidationError reports locally detected invalid input; it is raised before
// any write reaches the store.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid resource: %s", strings.Join(e.Fields, ", "))
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) AddResource(ctx context.Context, resource Resource) (*Resource, error) {
	callerUid, err := user.CurrentUid(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if strings.TrimSpace(resource.Name) == "" {
		return nil, &ValidationError{Fields: []string{"name"}}
	}

	id, err := s.repo.StoreResource(ctx, callerUid, resource)
	if err != nil {
		return nil, fmt.Errorf("failed to store resource: %w", err)
	}
	resource.Id = id
	return &resource, nil
}

func (s *Service) GetResource(ctx context.Context, id string) (*Resource, error) {
	callerUid, err := user.CurrentUid(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	resource, err := s.repo.GetResource(ctx, callerUid, id)
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

func (s *Service) GetAll(ctx context.Context) ([]Resource, error) {
	callerUid, err := user.CurrentUid(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAllResources(ctx, callerUid)
}

func (s *Service) ModifyResource(ctx context.Context, resource Resource) (*Resource, error) {
	callerUid, err := user.CurrentUid(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if strings.TrimSpace(resource.Name) == "" {
		return nil, &ValidationError{Fields: []string{"name"}}
	}
	if err := s.repo.UpdateResource(ctx, callerUid, resource); err != nil {
		return nil, err
	}
	return &resource, nil
}

// DeleteResource removes the resource and, through the store's cascade, every
// event assigned to it.
func (s *Service) DeleteResource(ctx context.Context, id string) error {
	callerUid, err := user.CurrentUid(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.DeleteResource(ctx, callerUid, id)
}
