package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wheelmaster/tireshop/internal/domain"
	"github.com/wheelmaster/tireshop/internal/repository"
	"github.com/wheelmaster/tireshop/internal/testutil"
)

type failingRepo struct {
	err   error
	calls int
}

func (f *failingRepo) Create(ctx context.Context, order *domain.Order) error {
	f.calls++
	return f.err
}

func (f *failingRepo) Count(ctx context.Context) (int64, error) { return 0, nil }

func (f *failingRepo) ListLines(ctx context.Context, since time.Time) ([]domain.OrderLine, error) {
	return nil, nil
}

func TestPlaceOrder_Success(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewMigratedDB(t)
	product := testutil.CreateProduct(t, db, "Mirage MR-166", "1056.00")
	require.EqualValues(t, 1, product.ID)

	repo := repository.NewGormOrderRepository(db)
	w := NewWriter(repo)

	res := w.PlaceOrder(ctx, OrderRequest{ProductID: 1, Quantity: 2, CustomerName: "A", Phone: "000", Email: "a@x.com"})
	require.True(t, res.OK(), "unexpected result: %+v", res)
	require.NotNil(t, res.Order)
	assert.NotZero(t, res.Order.ID)
	assert.False(t, res.Order.CreatedAt.IsZero())

	var stored []domain.Order
	require.NoError(t, db.Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, 2, stored[0].Quantity)
	assert.EqualValues(t, 1, stored[0].ProductID)
	assert.Equal(t, "A", stored[0].CustomerName)
	assert.Equal(t, "000", stored[0].Phone)
	assert.Equal(t, "a@x.com", stored[0].Email)
}

func TestPlaceOrder_UnknownProduct(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewMigratedDB(t)
	testutil.CreateProduct(t, db, "Mirage MR-166", "1056.00")
	w := NewWriter(repository.NewGormOrderRepository(db))

	res := w.PlaceOrder(ctx, OrderRequest{ProductID: 99, Quantity: 1, CustomerName: "A", Phone: "000", Email: "a@x.com"})
	assert.False(t, res.OK())
	assert.Equal(t, StatusSchemaViolation, res.Status)
	assert.ErrorIs(t, res.Err, repository.ErrSchemaViolation)

	var total int64
	require.NoError(t, db.Model(&domain.Order{}).Count(&total).Error)
	assert.Zero(t, total)
}

func TestPlaceOrder_DuplicateSubmissionsCreateTwoRows(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewMigratedDB(t)
	p := testutil.CreateProduct(t, db, "AllSeason Plus", "980.00")
	w := NewWriter(repository.NewGormOrderRepository(db))

	req := OrderRequest{ProductID: p.ID, Quantity: 1, CustomerName: "B", Phone: "111", Email: "b@x.com"}
	first := w.PlaceOrder(ctx, req)
	second := w.PlaceOrder(ctx, req)
	require.True(t, first.OK())
	require.True(t, second.OK())
	assert.NotEqual(t, first.Order.ID, second.Order.ID)
}

func TestPlaceOrder_Invalid(t *testing.T) {
	repo := &failingRepo{}
	w := NewWriter(repo)

	cases := map[string]OrderRequest{
		"zero quantity":     {ProductID: 1, Quantity: 0, CustomerName: "A", Phone: "0", Email: "a@x.com"},
		"negative quantity": {ProductID: 1, Quantity: -3, CustomerName: "A", Phone: "0", Email: "a@x.com"},
		"quantity overflows column": {ProductID: 1, Quantity: 3000000000, CustomerName: "A", Phone: "0", Email: "a@x.com"},
		"missing product":   {Quantity: 1, CustomerName: "A", Phone: "0", Email: "a@x.com"},
		"missing name":      {ProductID: 1, Quantity: 1, Phone: "0", Email: "a@x.com"},
		"missing phone":     {ProductID: 1, Quantity: 1, CustomerName: "A", Email: "a@x.com"},
		"missing email":     {ProductID: 1, Quantity: 1, CustomerName: "A", Phone: "0"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			res := w.PlaceOrder(context.Background(), req)
			assert.Equal(t, StatusInvalid, res.Status)
			assert.Error(t, res.Err)
		})
	}
	assert.Zero(t, repo.calls)
}

func TestPlaceOrder_LargestQuantityAccepted(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewMigratedDB(t)
	p := testutil.CreateProduct(t, db, "RoadMaster Pro", "890.00")
	w := NewWriter(repository.NewGormOrderRepository(db))

	res := w.PlaceOrder(ctx, OrderRequest{ProductID: p.ID, Quantity: 2147483647, CustomerName: "C", Phone: "333", Email: "c@x.com"})
	require.True(t, res.OK(), "unexpected result: %+v", res)
}

func TestPlaceOrder_ConnectionFailure(t *testing.T) {
	cause := errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")
	repo := &failingRepo{err: repository.Classify(cause)}
	w := NewWriter(repo)

	res := w.PlaceOrder(context.Background(), OrderRequest{ProductID: 1, Quantity: 1, CustomerName: "A", Phone: "0", Email: "a@x.com"})
	assert.Equal(t, StatusConnectionFailure, res.Status)
	assert.ErrorIs(t, res.Err, cause)
	assert.Nil(t, res.Order)
	assert.Equal(t, 1, repo.calls)
}
