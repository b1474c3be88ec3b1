package impl

import (
	"context"
	"io"
	"log/slog"

	"depot/internal/domain/entity"
	"depot/internal/domain/repository"
	"depot/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) CreateOrder(ctx context.Context, order *entity.Order) error {
	args := m.Called(ctx, order)

	return args.Error(0)
}

func (m *mockOrderRepository) FindOrderByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *mockOrderRepository) FindOrdersByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Order, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Order), args.Error(1)
}

func (m *mockOrderRepository) ListOrders(ctx context.Context, filter repository.OrderListFilter) ([]*entity.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Order), args.Error(1)
}

func (m *mockOrderRepository) UpdateOrder(ctx context.Context, order *entity.Order) error {
	args := m.Called(ctx, order)

	return args.Error(0)
}

func (m *mockOrderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	args := m.Called(ctx, id, status)

	return args.Error(0)
}

func (m *mockOrderRepository) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *mockOrderRepository) DeleteOrdersByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, ids)

	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOrderRepository) MaxOrderNumberSequence(ctx context.Context, prefix string) (int64, error) {
	args := m.Called(ctx, prefix)

	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOrderRepository) AggregatePendingDemand(ctx context.Context, filter repository.DemandFilter) ([]*entity.DemandGroup, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.DemandGroup), args.Error(1)
}

func (m *mockOrderRepository) CountOrders(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOrderRepository) CountOrdersByStatus(ctx context.Context, status entity.OrderStatus) (int64, error) {
	args := m.Called(ctx, status)

	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOrderRepository) CountDistinctOrderedProducts(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	return args.Get(0).(int64), args.Error(1)
}

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) CreateProduct(ctx context.Context, product *entity.Product) error {
	args := m.Called(ctx, product)

	return args.Error(0)
}

func (m *mockProductRepository) FindProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *mockProductRepository) ListProducts(ctx context.Context, brandID *uuid.UUID) ([]*entity.Product, error) {
	args := m.Called(ctx, brandID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Product), args.Error(1)
}

func (m *mockProductRepository) UpdateProduct(ctx context.Context, product *entity.Product) error {
	args := m.Called(ctx, product)

	return args.Error(0)
}

func (m *mockProductRepository) UpdateProductRank(ctx context.Context, id uuid.UUID, rank int) error {
	args := m.Called(ctx, id, rank)

	return args.Error(0)
}

func (m *mockProductRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *mockProductRepository) CountProductsByBrand(ctx context.Context, brandID uuid.UUID) (int64, error) {
	args := m.Called(ctx, brandID)

	return args.Get(0).(int64), args.Error(1)
}

func (m *mockProductRepository) CountProductsGroupedByBrand(ctx context.Context) ([]*repository.BrandProductCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*repository.BrandProductCount), args.Error(1)
}

type mockBrandRepository struct {
	mock.Mock
}

func (m *mockBrandRepository) CreateBrand(ctx context.Context, brand *entity.Brand) error {
	args := m.Called(ctx, brand)

	return args.Error(0)
}

func (m *mockBrandRepository) FindBrandByID(ctx context.Context, id uuid.UUID) (*entity.Brand, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Brand), args.Error(1)
}

func (m *mockBrandRepository) ListBrands(ctx context.Context) ([]*entity.Brand, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Brand), args.Error(1)
}

func (m *mockBrandRepository) UpdateBrand(ctx context.Context, brand *entity.Brand) error {
	args := m.Called(ctx, brand)

	return args.Error(0)
}

func (m *mockBrandRepository) UpdateBrandImage(ctx context.Context, id uuid.UUID, imageKey string) error {
	args := m.Called(ctx, id, imageKey)

	return args.Error(0)
}

func (m *mockBrandRepository) DeleteBrand(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *mockBrandRepository) AdjustProductCount(ctx context.Context, id uuid.UUID, delta int) (int64, error) {
	args := m.Called(ctx, id, delta)

	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBrandRepository) SetProductCount(ctx context.Context, id uuid.UUID, count int64) error {
	args := m.Called(ctx, id, count)

	return args.Error(0)
}

func (m *mockBrandRepository) FindBrandsWithNonPositiveCount(ctx context.Context) ([]*entity.Brand, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Brand), args.Error(1)
}

type mockRetailerRepository struct {
	mock.Mock
}

func (m *mockRetailerRepository) CreateRetailer(ctx context.Context, retailer *entity.Retailer) error {
	args := m.Called(ctx, retailer)

	return args.Error(0)
}

func (m *mockRetailerRepository) FindRetailerByID(ctx context.Context, id uuid.UUID) (*entity.Retailer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Retailer), args.Error(1)
}

func (m *mockRetailerRepository) ListRetailers(ctx context.Context) ([]*entity.Retailer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Retailer), args.Error(1)
}

func (m *mockRetailerRepository) UpdateRetailer(ctx context.Context, retailer *entity.Retailer) error {
	args := m.Called(ctx, retailer)

	return args.Error(0)
}

func (m *mockRetailerRepository) DeleteRetailer(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *mockRetailerRepository) ListDistinctBits(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]string), args.Error(1)
}

type mockOrderNumberAllocator struct {
	mock.Mock
}

func (m *mockOrderNumberAllocator) Next(ctx context.Context) (string, error) {
	args := m.Called(ctx)

	return args.String(0), args.Error(1)
}

func (m *mockOrderNumberAllocator) MaxAttempts() int {
	args := m.Called()

	return args.Int(0)
}

type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) PublishOrderEvent(ctx context.Context, event *service.OrderEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *mockEventPublisher) Close() error {
	args := m.Called()

	return args.Error(0)
}

type mockImageStore struct {
	mock.Mock
}

func (m *mockImageStore) Save(ctx context.Context, key string, contentType string, data []byte) error {
	args := m.Called(ctx, key, contentType, data)

	return args.Error(0)
}

func (m *mockImageStore) Load(ctx context.Context, key string) ([]byte, string, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}

	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

func (m *mockImageStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)

	return args.Error(0)
}

func (m *mockImageStore) Close() error {
	args := m.Called()

	return args.Error(0)
}

// passthroughTxManager runs the transactional callback against the plain
// repository mocks, standing in for a real database transaction.
type passthroughTxManager struct {
	factory *stubRepositoryFactory
}

func (m *passthroughTxManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

type stubRepositoryFactory struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	brandRepo    repository.BrandRepository
	retailerRepo repository.RetailerRepository
}

func (f *stubRepositoryFactory) NewOrderRepository() repository.OrderRepository {
	return f.orderRepo
}

func (f *stubRepositoryFactory) NewProductRepository() repository.ProductRepository {
	return f.productRepo
}

func (f *stubRepositoryFactory) NewBrandRepository() repository.BrandRepository {
	return f.brandRepo
}

func (f *stubRepositoryFactory) NewRetailerRepository() repository.RetailerRepository {
	return f.retailerRepo
}
