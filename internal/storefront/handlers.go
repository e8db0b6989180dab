package storefront

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"github.com/wheelmaster/tireshop/internal/catalog"
	"github.com/wheelmaster/tireshop/internal/domain"
	"github.com/wheelmaster/tireshop/internal/orders"
	"github.com/wheelmaster/tireshop/internal/webserver"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	msgNotFound           = "Product not found"
	msgCatalogUnavailable = "Catalog is temporarily unavailable"

	fragmentPlaced      = "<h2 style='color:#27ae60; text-align:center; margin:50px;'>✅ Order accepted! We will contact you soon.</h2>"
	fragmentDBProblem   = "<h2 style='color:#e74c3c; text-align:center; margin:50px;'>⚠️ Database problem occurred. Please try again later.</h2>"
	fragmentUnavailable = "<h2 style='color:#e74c3c; text-align:center; margin:50px;'>⚠️ This product cannot be ordered right now. Please choose another one.</h2>"
	fragmentBadForm     = "<h2 style='color:#e74c3c; text-align:center; margin:50px;'>⚠️ Please check the order form and try again.</h2>"
)

// CatalogLoader supplies the products shown in the storefront.
type CatalogLoader interface {
	Load() ([]domain.Product, error)
}

// OrderPlacer stores a submitted order.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, req orders.OrderRequest) orders.Result
}

type orderForm struct {
	Quantity string `form:"quantity" validate:"required"`
	Name     string `form:"name" validate:"required"`
	Phone    string `form:"phone" validate:"required"`
	Email    string `form:"email" validate:"required"`
}

type Handler struct {
	catalog CatalogLoader
	orders  OrderPlacer
}

func New(catalog CatalogLoader, placer OrderPlacer) *Handler {
	return &Handler{catalog: catalog, orders: placer}
}

// Templates parses the embedded storefront pages.
func Templates() *template.Template {
	funcs := template.FuncMap{
		"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	}
	return template.Must(template.New("storefront").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

// Register installs the page renderer and the storefront routes on e.
func (h *Handler) Register(e *echo.Echo) {
	e.Renderer = webserver.NewTemplateRenderer(Templates())
	e.GET("/", h.index)
	e.GET("/order/:id", h.orderPage)
	e.POST("/order/:id", h.placeOrder)
}

func (h *Handler) index(c echo.Context) error {
	products, err := h.catalog.Load()
	if err != nil {
		return h.catalogFailure(c, err)
	}
	return c.Render(http.StatusOK, "index.html", map[string]interface{}{
		"Products": products,
	})
}

func (h *Handler) orderPage(c echo.Context) error {
	product, err := h.lookup(c)
	if err != nil || product == nil {
		return err
	}
	return c.Render(http.StatusOK, "order.html", map[string]interface{}{
		"Product": product,
	})
}

func (h *Handler) placeOrder(c echo.Context) error {
	product, err := h.lookup(c)
	if err != nil || product == nil {
		return err
	}

	var form orderForm
	if err := c.Bind(&form); err != nil {
		return c.HTML(http.StatusBadRequest, fragmentBadForm)
	}
	if err := c.Validate(&form); err != nil {
		return c.HTML(http.StatusBadRequest, fragmentBadForm)
	}
	quantity, err := parseQuantity(form.Quantity)
	if err != nil {
		zap.L().Warn("invalid order quantity", zap.String("quantity", form.Quantity), zap.Int64("product_id", product.ID))
		return c.HTML(http.StatusBadRequest, fragmentBadForm)
	}

	result := h.orders.PlaceOrder(c.Request().Context(), orders.OrderRequest{
		ProductID:    product.ID,
		Quantity:     quantity,
		CustomerName: form.Name,
		Phone:        form.Phone,
		Email:        form.Email,
	})
	switch result.Status {
	case orders.StatusPlaced:
		return c.HTML(http.StatusOK, fragmentPlaced)
	case orders.StatusInvalid:
		return c.HTML(http.StatusBadRequest, fragmentBadForm)
	case orders.StatusSchemaViolation:
		return c.HTML(http.StatusConflict, fragmentUnavailable)
	default:
		return c.HTML(http.StatusServiceUnavailable, fragmentDBProblem)
	}
}

var decimalInteger = regexp.MustCompile(`^[+-]?[0-9]+$`)

// parseQuantity reads a plain base 10 integer. cast alone would accept Go
// literal syntax, turning "010" into 8 and "0x10" into 16.
func parseQuantity(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if !decimalInteger.MatchString(s) {
		return 0, errors.Errorf("quantity %q is not a whole number", raw)
	}
	sign := ""
	if s[0] == '+' || s[0] == '-' {
		sign, s = s[:1], s[1:]
	}
	s = strings.TrimLeft(s, "0")
	if s == "" {
		s = "0"
	}
	return cast.ToIntE(sign + s)
}

// lookup resolves the :id parameter against the catalog. A nil product with
// a nil error means the response has already been written.
func (h *Handler) lookup(c echo.Context) (*domain.Product, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return nil, c.String(http.StatusNotFound, msgNotFound)
	}
	products, err := h.catalog.Load()
	if err != nil {
		return nil, h.catalogFailure(c, err)
	}
	product, err := catalog.Find(products, id)
	if err != nil {
		return nil, c.String(http.StatusNotFound, msgNotFound)
	}
	return product, nil
}

func (h *Handler) catalogFailure(c echo.Context, err error) error {
	switch {
	case errors.Is(err, catalog.ErrFileMissing):
		zap.L().Error("catalog file missing", zap.Error(err))
	case errors.Is(err, catalog.ErrParse):
		zap.L().Error("catalog file malformed", zap.Error(err))
	default:
		zap.L().Error("catalog load failed", zap.Error(err))
	}
	return c.String(http.StatusInternalServerError, msgCatalogUnavailable)
}
