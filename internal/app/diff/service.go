package diff

import (
	"context"
	"errors"

	"github.com/osvaldoandrade/spaceschema/internal/domain"
)

type Service struct {
	resolver Resolver
	differ   Differ
}

func NewService(resolver Resolver, differ Differ) *Service {
	return &Service{resolver: resolver, differ: differ}
}

// Diff returns the merge patch that turns the schema at from into the schema
// at to. Both documents must parse as JSON.
func (s *Service) Diff(ctx context.Context, from, to domain.Selector) (Result, error) {
	if s.resolver == nil || s.differ == nil {
		return Result{}, errors.New("missing dependencies")
	}

	original, err := s.resolver.Get(ctx, from, true)
	if err != nil {
		return Result{}, err
	}
	modified, err := s.resolver.Get(ctx, to, true)
	if err != nil {
		return Result{}, err
	}

	patch, err := s.differ.MergePatch(ctx, original.Raw, modified.Raw)
	if err != nil {
		return Result{}, err
	}

	return Result{
		From:     original.Version,
		To:       modified.Version,
		FromFile: original.FileName,
		ToFile:   modified.FileName,
		Patch:    patch,
	}, nil
}
