package user

import (
	"context"
)

// StubUserRepo is an in-memory Repo for tests.
type StubUserRepo struct {
	data map[string]User
}

func NewStubUserRepo() *StubUserRepo {
	return &StubUserRepo{data: map[string]User{}}
}

func (s *StubUserRepo) CreateUser(_ context.Context, user User) (User, error) {
	s.data[user.Uid] = user
	return user, nil
}

func (s *StubUserRepo) GetUserByUid(_ context.Context, uid string) (User, error) {
	u, ok := s.data[uid]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func (s *StubUserRepo) UpdateUser(_ context.Context, uid string, user User) (User, error) {
	if _, ok := s.data[uid]; !ok {
		return User{}, ErrUserNotFound
	}
	user.Uid = uid
	s.data[uid] = user
	return user, nil
}

func (s *StubUserRepo) DeleteUser(_ context.Context, uid string) error {
	if _, ok := s.data[uid]; !ok {
		return ErrUserNotFound
	}
	delete(s.data, uid)
	return nil
}
