package user

import (
	"context"
	"fmt"
)

type Service interface {
	Create(ctx context.Context, user User) (User, error)
	GetByUid(ctx context.Context, uid string) (User, error)
	UpdateCurrent(ctx context.Context, user User) (User, error)
	DeleteCurrent(ctx context.Context) error
}

type ServiceImpl struct {
	repo Repo
}

func NewUserService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) Create(ctx context.Context, user User) (User, error) {
	return s.repo.CreateUser(ctx, user)
}

func (s *ServiceImpl) GetByUid(ctx context.Context, uid string) (User, error) {
	return s.repo.GetUserByUid(ctx, uid)
}

// UpdateCurrent replaces the current caller's profile. The uid is always taken
// from the context, never from the payload.
func (s *ServiceImpl) UpdateCurrent(ctx context.Context, user User) (User, error) {
	uid, err := CurrentUid(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.UpdateUser(ctx, uid, user)
}

func (s *ServiceImpl) DeleteCurrent(ctx context.Context) error {
	uid, err := CurrentUid(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.DeleteUser(ctx, uid)
}
