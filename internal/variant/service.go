package variant

import (
	"context"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"niaga-be/internal/attribute"
	"niaga-be/internal/logger"
	"niaga-be/internal/tabular"
)

type Service interface {
	// Generate builds and validates the variant list for one request
	// without persisting; the preview path.
	Generate(ctx context.Context, req GenerationRequest) ([]*Variant, error)
	// GenerateAndPersist builds, validates, then hands the batch to
	// the throttled writer.
	GenerateAndPersist(ctx context.Context, req GenerationRequest) ([]*Variant, error)
	// ImportTable decodes and parses exchange-format bytes, validates
	// every row, and persists the resulting variants.
	ImportTable(ctx context.Context, productID string, raw []byte) ([]*Variant, error)
	// ExportTable renders a product's variants in the exchange format.
	ExportTable(ctx context.Context, productID string) (string, error)
	// ExportWorkbook is ExportTable's spreadsheet twin.
	ExportWorkbook(ctx context.Context, productID string) (*excelize.File, error)
}

type service struct {
	repo            Repository
	attrs           attribute.Service
	writer          *Writer
	maxCombinations int
}

func NewService(repo Repository, attrs attribute.Service, writer *Writer, maxCombinations int) Service {
	return &service{
		repo:            repo,
		attrs:           attrs,
		writer:          writer,
		maxCombinations: maxCombinations,
	}
}

func (s *service) Generate(ctx context.Context, req GenerationRequest) ([]*Variant, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Generate"),
		zap.String("product_id", req.ProductID),
	)

	start := time.Now()

	axes := nonEmptyAxes(req.Attributes)
	if len(axes) == 0 {
		return nil, ErrEmptyRequest
	}

	// Explosion guard: reject before enumerating, per the generator's
	// contract that the ceiling is the caller's concern.
	if count := Combinations(axes).Count(); s.maxCombinations > 0 && count > s.maxCombinations {
		log.Warn("generation rejected",
			zap.Int("combinations", count),
			zap.Int("ceiling", s.maxCombinations),
		)
		return nil, ErrTooManyCombos
	}

	known, err := s.attrs.ListSelectable(ctx)
	if err != nil {
		return nil, err
	}

	variants, err := NewBuilder(known).BuildFromAttributes(req)
	if err != nil {
		log.Warn("generation failed validation", zap.Error(err))
		return nil, err
	}

	log.Info("variants generated",
		zap.Int("count", len(variants)),
		zap.Duration("duration", time.Since(start)),
	)
	return variants, nil
}

func (s *service) GenerateAndPersist(ctx context.Context, req GenerationRequest) ([]*Variant, error) {
	variants, err := s.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.writer.PersistBatch(ctx, variants)
}

func (s *service) ImportTable(ctx context.Context, productID string, raw []byte) ([]*Variant, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ImportTable"),
		zap.String("product_id", productID),
	)

	start := time.Now()

	text, err := tabular.DecodeText(raw)
	if err != nil {
		return nil, err
	}

	known, err := s.attrs.ListSelectable(ctx)
	if err != nil {
		return nil, err
	}

	variants, err := NewBuilder(known).BuildFromTable(productID, text)
	if err != nil {
		if ve, ok := AsValidationError(err); ok {
			log.Warn("import failed validation", zap.Int("issues", len(ve.Issues)))
		}
		return nil, err
	}

	created, err := s.writer.PersistBatch(ctx, variants)
	if err != nil {
		return created, err
	}

	log.Info("table imported",
		zap.Int("count", len(created)),
		zap.Duration("duration", time.Since(start)),
	)
	return created, nil
}

func (s *service) ExportTable(ctx context.Context, productID string) (string, error) {
	rows, names, err := s.exportRows(ctx, productID)
	if err != nil {
		return "", err
	}
	return tabular.Serialize(rows, names), nil
}

func (s *service) ExportWorkbook(ctx context.Context, productID string) (*excelize.File, error) {
	rows, names, err := s.exportRows(ctx, productID)
	if err != nil {
		return nil, err
	}
	return tabular.Workbook(rows, names)
}

func (s *service) exportRows(ctx context.Context, productID string) ([]tabular.Row, []string, error) {
	variants, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	known, err := s.attrs.ListSelectable(ctx)
	if err != nil {
		return nil, nil, err
	}

	labels := make(map[string]string, len(known)) // attribute id -> label
	for _, a := range known {
		labels[a.ID] = a.Label()
	}

	// Column set: labels of the attributes any variant actually uses,
	// in canonical attribute order.
	used := make(map[string]bool)
	for _, v := range variants {
		for _, p := range v.Attributes {
			used[p.AttributeID] = true
		}
	}
	var names []string
	for _, a := range known {
		if used[a.ID] {
			names = append(names, a.Label())
		}
	}

	rows := make([]tabular.Row, 0, len(variants))
	for i, v := range variants {
		cells := make(map[string]string, len(v.Attributes))
		for _, p := range v.Attributes {
			if label, ok := labels[p.AttributeID]; ok {
				cells[label] = p.Value
			}
		}
		rows = append(rows, tabular.Row{
			Index:        i + 1,
			SKU:          v.SKU,
			Price:        v.Price,
			ComparePrice: v.ComparePrice,
			Stock:        v.Stock,
			Images:       v.Images,
			IsActive:     v.IsActive,
			Attributes:   cells,
		})
	}

	return rows, names, nil
}

func nonEmptyAxes(axes []Axis) []Axis {
	out := make([]Axis, 0, len(axes))
	for _, ax := range axes {
		if len(ax.Values) > 0 {
			out = append(out, ax)
		}
	}
	return out
}
