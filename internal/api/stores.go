package api

import (
	"context"

	"github.com/kangactor123/ssalon-de-api/internal/domain/paymenttypes"
	"github.com/kangactor123/ssalon-de-api/internal/domain/servicetypes"
)

// Адаптеры доменных репозиториев под ReferenceStore.

type ServiceTypeStore struct{ Repo *servicetypes.Repo }

func (s ServiceTypeStore) List(ctx context.Context) ([]ReferenceType, error) {
	items, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ReferenceType, 0, len(items))
	for _, it := range items {
		out = append(out, ReferenceType{ID: it.ID, Name: it.Name})
	}
	return out, nil
}

func (s ServiceTypeStore) Create(ctx context.Context, name string) (*ReferenceType, error) {
	it, err := s.Repo.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	return &ReferenceType{ID: it.ID, Name: it.Name}, nil
}

func (s ServiceTypeStore) UpdateName(ctx context.Context, id int64, name string) (*ReferenceType, error) {
	it, err := s.Repo.UpdateName(ctx, id, name)
	if err != nil || it == nil {
		return nil, err
	}
	return &ReferenceType{ID: it.ID, Name: it.Name}, nil
}

func (s ServiceTypeStore) Delete(ctx context.Context, id int64) (bool, error) {
	return s.Repo.Delete(ctx, id)
}

type PaymentTypeStore struct{ Repo *paymenttypes.Repo }

func (s PaymentTypeStore) List(ctx context.Context) ([]ReferenceType, error) {
	items, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ReferenceType, 0, len(items))
	for _, it := range items {
		out = append(out, ReferenceType{ID: it.ID, Name: it.Name})
	}
	return out, nil
}

func (s PaymentTypeStore) Create(ctx context.Context, name string) (*ReferenceType, error) {
	it, err := s.Repo.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	return &ReferenceType{ID: it.ID, Name: it.Name}, nil
}

func (s PaymentTypeStore) UpdateName(ctx context.Context, id int64, name string) (*ReferenceType, error) {
	it, err := s.Repo.UpdateName(ctx, id, name)
	if err != nil || it == nil {
		return nil, err
	}
	return &ReferenceType{ID: it.ID, Name: it.Name}, nil
}

func (s PaymentTypeStore) Delete(ctx context.Context, id int64) (bool, error) {
	return s.Repo.Delete(ctx, id)
}
