package variant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"niaga-be/internal/attribute"
	"niaga-be/internal/utils"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, v *Variant) (*Variant, error) {
	args := m.Called(ctx, v)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Variant), args.Error(1)
}

func (m *MockRepository) BulkCreate(ctx context.Context, variants []*Variant) ([]*Variant, error) {
	args := m.Called(ctx, variants)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Variant), args.Error(1)
}

func (m *MockRepository) ListByProduct(ctx context.Context, productID string) ([]*Variant, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Variant), args.Error(1)
}

func (m *MockRepository) UpdatePriceStock(ctx context.Context, id string, price float64, stock int) error {
	args := m.Called(ctx, id, price, stock)
	return args.Error(0)
}

type MockAttributeService struct {
	mock.Mock
}

func (m *MockAttributeService) ListSelectable(ctx context.Context) ([]attribute.Attribute, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]attribute.Attribute), args.Error(1)
}

func (m *MockAttributeService) Create(ctx context.Context, input attribute.NewAttributeInput) (attribute.Attribute, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(attribute.Attribute), args.Error(1)
}

func (m *MockAttributeService) AddValues(ctx context.Context, id string, values []string) (*attribute.Attribute, error) {
	args := m.Called(ctx, id, values)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*attribute.Attribute), args.Error(1)
}

// --- Helpers ---

func serviceAttrs() []attribute.Attribute {
	return []attribute.Attribute{
		{ID: "attr-color", Name: "color", DisplayName: utils.StrPtr("Color")},
		{ID: "attr-size", Name: "size", DisplayName: utils.StrPtr("Size")},
	}
}

func newTestService(repo Repository, attrs attribute.Service, ceiling int) Service {
	w := NewWriter(repo, 10000, 1, 0)
	w.baseBackoff = time.Millisecond
	return NewService(repo, attrs, w, ceiling)
}

// --- Tests ---

func TestService_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockAttrs := new(MockAttributeService)
		svc := newTestService(mockRepo, mockAttrs, 500)

		mockAttrs.On("ListSelectable", ctx).Return(serviceAttrs(), nil)

		variants, err := svc.Generate(ctx, baseRequest())
		require.NoError(t, err)
		assert.Len(t, variants, 6)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("EmptyRequest", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockAttrs := new(MockAttributeService)
		svc := newTestService(mockRepo, mockAttrs, 500)

		req := baseRequest()
		req.Attributes = []Axis{{AttributeID: "attr-color"}}

		_, err := svc.Generate(ctx, req)
		assert.ErrorIs(t, err, ErrEmptyRequest)
		mockAttrs.AssertNotCalled(t, "ListSelectable")
	})

	t.Run("CeilingEnforcedBeforeGenerating", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockAttrs := new(MockAttributeService)
		svc := newTestService(mockRepo, mockAttrs, 5)

		_, err := svc.Generate(ctx, baseRequest()) // 6 combinations
		assert.ErrorIs(t, err, ErrTooManyCombos)
		mockAttrs.AssertNotCalled(t, "ListSelectable")
	})

	t.Run("ValidationErrorPassedThrough", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockAttrs := new(MockAttributeService)
		svc := newTestService(mockRepo, mockAttrs, 500)

		mockAttrs.On("ListSelectable", ctx).Return(serviceAttrs(), nil)

		req := baseRequest()
		req.SKUPattern = "FLAT-{color}"

		_, err := svc.Generate(ctx, req)
		_, ok := AsValidationError(err)
		assert.True(t, ok)
	})

	t.Run("AttributeLookupError", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockAttrs := new(MockAttributeService)
		svc := newTestService(mockRepo, mockAttrs, 500)

		mockAttrs.On("ListSelectable", ctx).Return(nil, errors.New("db error"))

		_, err := svc.Generate(ctx, baseRequest())
		assert.Error(t, err)
	})
}

func TestService_GenerateAndPersist(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockAttrs := new(MockAttributeService)
		svc := newTestService(mockRepo, mockAttrs, 500)

		mockAttrs.On("ListSelectable", ctx).Return(serviceAttrs(), nil)
		mockRepo.On("Create", ctx, mock.AnythingOfType("*variant.Variant")).
			Return(&Variant{ID: "v-1"}, nil).Times(6)

		created, err := svc.GenerateAndPersist(ctx, baseRequest())
		require.NoError(t, err)
		assert.Len(t, created, 6)
		mockRepo.AssertExpectations(t)
	})

	t.Run("NothingPersistedOnValidationFailure", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockAttrs := new(MockAttributeService)
		svc := newTestService(mockRepo, mockAttrs, 500)

		mockAttrs.On("ListSelectable", ctx).Return(serviceAttrs(), nil)

		req := baseRequest()
		req.PriceRules = PriceRules{"attr-color": {"red": -25}}

		_, err := svc.GenerateAndPersist(ctx, req)
		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "Create")
	})
}

func TestService_ImportTable(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockAttrs := new(MockAttributeService)
		svc := newTestService(mockRepo, mockAttrs, 500)

		mockAttrs.On("ListSelectable", ctx).Return(serviceAttrs(), nil)
		mockRepo.On("Create", ctx, mock.AnythingOfType("*variant.Variant")).
			Return(&Variant{ID: "v-1"}, nil).Times(2)

		raw := []byte("SKU,Color,Size,Price,Stock\nA1,Red,S,19.99,5\nA2,Blue,M,21,3\n")

		created, err := svc.ImportTable(ctx, "prod-1", raw)
		require.NoError(t, err)
		assert.Len(t, created, 2)
	})

	t.Run("RowErrorsReported", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockAttrs := new(MockAttributeService)
		svc := newTestService(mockRepo, mockAttrs, 500)

		mockAttrs.On("ListSelectable", ctx).Return(serviceAttrs(), nil)

		raw := []byte("SKU,Color,Price\nA1,Red,notanumber\n")

		_, err := svc.ImportTable(ctx, "prod-1", raw)
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, KindInvalidPrice, ve.Issues[0].Kind)
		mockRepo.AssertNotCalled(t, "Create")
	})
}

func TestService_ExportTable(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockRepository)
	mockAttrs := new(MockAttributeService)
	svc := newTestService(mockRepo, mockAttrs, 500)

	stored := []*Variant{
		{
			ID: "v-1", ProductID: "prod-1", SKU: "red-S", Price: 25, Stock: 5, IsActive: true,
			Attributes: Combination{
				{AttributeID: "attr-color", Value: "red"},
				{AttributeID: "attr-size", Value: "S"},
			},
		},
	}
	mockRepo.On("ListByProduct", ctx, "prod-1").Return(stored, nil)
	mockAttrs.On("ListSelectable", ctx).Return(serviceAttrs(), nil)

	text, err := svc.ExportTable(ctx, "prod-1")
	require.NoError(t, err)

	assert.Contains(t, text, "SKU,Color,Size,Price,Compare Price,Stock,Images,Is Active")
	assert.Contains(t, text, "red-S,red,S,25,,5,,true")
}
