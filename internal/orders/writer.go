package orders

import (
	"context"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/wheelmaster/tireshop/internal/domain"
	"github.com/wheelmaster/tireshop/internal/repository"
	"github.com/wheelmaster/tireshop/pkg/metrics"
	"go.uber.org/zap"
)

// Writer stores customer orders. Duplicate submissions are not detected:
// every accepted call inserts a new row.
type Writer struct {
	repo     repository.OrderRepository
	validate *validatorv10.Validate
}

func NewWriter(repo repository.OrderRepository) *Writer {
	return &Writer{
		repo:     repo,
		validate: validatorv10.New(),
	}
}

// PlaceOrder validates req and inserts one order row. An unknown product is
// rejected by the foreign key, not by a lookup.
func (w *Writer) PlaceOrder(ctx context.Context, req OrderRequest) Result {
	if err := w.validate.Struct(req); err != nil {
		zap.L().Warn("order rejected by validation",
			zap.Int64("product_id", req.ProductID),
			zap.Int("quantity", req.Quantity),
			zap.Error(err))
		metrics.Incr(metrics.OrderInvalid)
		return Result{Status: StatusInvalid, Err: err}
	}

	zap.L().Info("saving order",
		zap.Int64("product_id", req.ProductID),
		zap.Int("quantity", req.Quantity),
		zap.String("customer", req.CustomerName))

	order := &domain.Order{
		ProductID:    req.ProductID,
		Quantity:     req.Quantity,
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		Email:        req.Email,
	}
	if err := w.repo.Create(ctx, order); err != nil {
		status, counter := StatusConnectionFailure, metrics.OrderConnFailure
		if errors.Is(err, repository.ErrSchemaViolation) {
			status, counter = StatusSchemaViolation, metrics.OrderSchemaViolation
		}
		zap.L().Error("failed to save order",
			zap.Int64("product_id", req.ProductID),
			zap.String("status", string(status)),
			zap.Error(err))
		metrics.Incr(counter)
		return Result{Status: status, Err: err}
	}

	zap.L().Info("order saved", zap.Int64("order_id", order.ID), zap.Int64("product_id", order.ProductID))
	metrics.Incr(metrics.OrderPlaced)
	return Result{Status: StatusPlaced, Order: order}
}
