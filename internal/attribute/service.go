package attribute

import (
	"context"
	"strings"
	"time"

	"niaga-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	// ListSelectable returns the canonical attribute list offered for
	// variant generation: deduplicated and ordered by the catalog
	// policy.
	ListSelectable(ctx context.Context) ([]Attribute, error)
	Create(ctx context.Context, input NewAttributeInput) (Attribute, error)
	AddValues(ctx context.Context, id string, values []string) (*Attribute, error)
}

type service struct {
	repo    Repository
	catalog *Catalog
}

func NewService(repo Repository, catalog *Catalog) Service {
	if catalog == nil {
		catalog = NewCatalog()
	}
	return &service{repo: repo, catalog: catalog}
}

func (s *service) ListSelectable(ctx context.Context) ([]Attribute, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListSelectable"),
	)

	start := time.Now()

	raw, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error("failed to fetch attributes",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}

	canonical := s.catalog.Normalize(raw)

	log.Info("attributes normalized",
		zap.Int("raw", len(raw)),
		zap.Int("canonical", len(canonical)),
		zap.Duration("duration", time.Since(start)),
	)

	return canonical, nil
}

func (s *service) Create(ctx context.Context, input NewAttributeInput) (Attribute, error) {
	if strings.TrimSpace(input.Name) == "" {
		return Attribute{}, ErrEmptyName
	}
	if !input.Type.Valid() {
		return Attribute{}, ErrInvalidType
	}

	return s.repo.Create(ctx, input)
}

func (s *service) AddValues(ctx context.Context, id string, values []string) (*Attribute, error) {
	trimmed := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			trimmed = append(trimmed, v)
		}
	}
	if len(trimmed) == 0 {
		return s.repo.GetByID(ctx, id)
	}

	return s.repo.AppendValues(ctx, id, trimmed)
}
