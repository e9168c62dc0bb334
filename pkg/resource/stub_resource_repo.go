package resource

import (
	"context"
	"sort"

	"github.com/google/uuid"
)

// StubResourceRepo is an in-memory Repository for tests. It does not cascade
// event deletes; tests needing the cascade use the real repository against the
// migrated schema.
type StubResourceRepo struct {
	data map[string]map[string]Resource // callerUid -> id -> resource
}

func NewStubResourceRepo() *StubResourceRepo {
	return &StubResourceRepo{data: map[string]map[string]Resource{}}
}

func (s *StubResourceRepo) forCaller(callerUid string) map[string]Resource {
	if s.data[callerUid] == nil {
		s.data[callerUid] = map[string]Resource{}
	}
	return s.data[callerUid]
}

func (s *StubResourceRepo) StoreResource(_ context.Context, callerUid string, resource Resource) (string, error) {
	id := uuid.NewString()
	resource.Id = id
	s.forCaller(callerUid)[id] = resource
	return id, nil
}

func (s *StubResourceRepo) GetResource(_ context.Context, callerUid string, id string) (Resource, error) {
	r, ok := s.forCaller(callerUid)[id]
	if !ok {
		return Resource{}, ErrResourceNotFound
	}
	return r, nil
}

func (s *StubResourceRepo) GetAllResources(_ context.Context, callerUid string) ([]Resource, error) {
	all := make([]Resource, 0, len(s.forCaller(callerUid)))
	for _, r := range s.forCaller(callerUid) {
		all = append(all, r)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Name != all[j].Name {
			return all[i].Name < all[j].Name
		}
		return all[i].Id < all[j].Id
	})
	return all, nil
}

func (s *StubResourceRepo) UpdateResource(_ context.Context, callerUid string, resource Resource) error {
	if _, ok := s.forCaller(callerUid)[resource.Id]; !ok {
		return ErrResourceNotFound
	}
	s.forCaller(callerUid)[resource.Id] = resource
	return nil
}

func (s *StubResourceRepo) DeleteResource(_ context.Context, callerUid string, id string) error {
	if _, ok := s.forCaller(callerUid)[id]; !ok {
		return ErrResourceNotFound
	}
	delete(s.forCaller(callerUid), id)
	return nil
}
