// Package report prints read-only summaries of the catalog and order tables.
package report

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/wheelmaster/tireshop/internal/repository"
)

const (
	FormatText = "text"
	FormatCSV  = "csv"

	dateLayout = "2006-01-02 15:04:05"
)

var (
	doubleRule = strings.Repeat("=", 80)
	singleRule = strings.Repeat("-", 80)
)

// Options narrows the orders report.
type Options struct {
	// Since drops orders created before it; zero keeps all.
	Since  time.Time
	Format string
}

// ParseSince accepts any layout dateparse understands, in local time.
func ParseSince(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	t, err := dateparse.ParseLocal(value)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parse --since %q", value)
	}
	return t, nil
}

type Reporter struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
}

func New(products repository.ProductRepository, orders repository.OrderRepository) *Reporter {
	return &Reporter{products: products, orders: orders}
}

// Products prints the product count followed by one line per product.
func (r *Reporter) Products(ctx context.Context, w io.Writer) error {
	total, err := r.products.Count(ctx)
	if err != nil {
		return errors.Wrap(err, "count products")
	}
	products, err := r.products.List(ctx)
	if err != nil {
		return errors.Wrap(err, "list products")
	}

	fmt.Fprintf(w, "Total products in database: %d\n", total)
	if len(products) == 0 {
		return nil
	}
	fmt.Fprintln(w, "\nProduct inventory:")
	for _, p := range products {
		fmt.Fprintf(w, "ID: %d, Name: %s, Price: %s UAH\n", p.ID, p.Name, p.Price.StringFixed(2))
	}
	return nil
}

type orderRow struct {
	ID           int64  `csv:"order_id"`
	CreatedAt    string `csv:"created_at"`
	CustomerName string `csv:"customer_name"`
	Phone        string `csv:"phone"`
	Email        string `csv:"email"`
	ProductName  string `csv:"product"`
	Quantity     int    `csv:"quantity"`
	UnitPrice    string `csv:"unit_price"`
	Total        string `csv:"total"`
}

// Orders prints every order joined with its product, newest first.
func (r *Reporter) Orders(ctx context.Context, w io.Writer, opts Options) error {
	lines, err := r.orders.ListLines(ctx, opts.Since)
	if err != nil {
		return errors.Wrap(err, "list orders")
	}

	if opts.Format == FormatCSV {
		rows := make([]*orderRow, 0, len(lines))
		for _, l := range lines {
			rows = append(rows, &orderRow{
				ID:           l.ID,
				CreatedAt:    l.CreatedAt.Format(time.RFC3339),
				CustomerName: l.CustomerName,
				Phone:        l.Phone,
				Email:        l.Email,
				ProductName:  l.ProductName,
				Quantity:     l.Quantity,
				UnitPrice:    l.Price.StringFixed(2),
				Total:        l.Total().StringFixed(2),
			})
		}
		return errors.Wrap(gocsv.Marshal(rows, w), "write csv")
	}

	total, err := r.orders.Count(ctx)
	if err != nil {
		return errors.Wrap(err, "count orders")
	}
	fmt.Fprintf(w, "Total orders in database: %d\n", total)
	if !opts.Since.IsZero() {
		fmt.Fprintf(w, "Orders since %s: %d\n", opts.Since.Format(dateLayout), len(lines))
	}
	if len(lines) == 0 {
		fmt.Fprintln(w, "No orders found.")
		return nil
	}

	fmt.Fprintln(w, "\nComplete order history:")
	fmt.Fprintln(w, doubleRule)
	for _, l := range lines {
		fmt.Fprintf(w, "Order #%d\n", l.ID)
		fmt.Fprintf(w, "Date: %s\n", l.CreatedAt.Local().Format(dateLayout))
		fmt.Fprintf(w, "Customer: %s\n", l.CustomerName)
		fmt.Fprintf(w, "Phone: %s\n", l.Phone)
		fmt.Fprintf(w, "Email: %s\n", l.Email)
		fmt.Fprintf(w, "Product: %s\n", l.ProductName)
		fmt.Fprintf(w, "Quantity: %d\n", l.Quantity)
		fmt.Fprintf(w, "Unit Price: %s UAH\n", l.Price.StringFixed(2))
		fmt.Fprintf(w, "Total Amount: %s UAH\n", l.Total().StringFixed(2))
		fmt.Fprintln(w, singleRule)
	}
	return nil
}
