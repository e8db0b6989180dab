package app

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/wheelmaster/tireshop/internal/domain"
	"github.com/wheelmaster/tireshop/internal/repository"
	"go.uber.org/zap"
)

// DefaultProducts is the fixed list initdb seeds when no catalog file is given.
func DefaultProducts() []domain.Product {
	return []domain.Product{
		{
			Name:        "Mirage MR-166",
			Description: "High-quality summer tires Mirage MR-166 155/70 R13 73T for passenger vehicles",
			Price:       decimal.RequireFromString("1056.00"),
			Width:       155,
			ImageURL:    "https://cdn.pixabay.com/photo/2020/02/09/11/09/tire-4833103_1280.jpg",
		},
		{
			Name:        "TurboDrive V5",
			Description: "Premium summer tires TurboDrive V5 with enhanced durability and stylish design",
			Price:       decimal.RequireFromString("1250.00"),
			Width:       165,
			ImageURL:    "https://cdn.pixabay.com/photo/2017/01/06/19/15/wheel-1954170_1280.jpg",
		},
		{
			Name:        "RoadMaster Pro",
			Description: "Professional tires RoadMaster Pro for commercial vehicle applications",
			Price:       decimal.RequireFromString("890.00"),
			Width:       185,
			ImageURL:    "https://images.unsplash.com/photo-1558618047-3c8c76ca7d13?w=400",
		},
		{
			Name:        "WinterGrip Ice",
			Description: "Winter tires WinterGrip Ice with improved traction on ice surfaces",
			Price:       decimal.RequireFromString("1450.00"),
			Width:       175,
			ImageURL:    "https://images.unsplash.com/photo-1544636331-e26879cd4d9b?w=400",
		},
		{
			Name:        "AllSeason Plus",
			Description: "All-season tires AllSeason Plus for year-round vehicle operation",
			Price:       decimal.RequireFromString("980.00"),
			Width:       195,
			ImageURL:    "https://images.unsplash.com/photo-1571068316344-75bc76f77890?w=400",
		},
	}
}

type SeedOutcome string

const (
	SeedInserted SeedOutcome = "inserted"
	SeedSkipped  SeedOutcome = "skipped"
	SeedFailed   SeedOutcome = "failed"
)

// SeedResult is the outcome for one candidate. ProductID is the new row for
// inserted candidates and the existing row for skipped ones.
type SeedResult struct {
	Name      string
	Outcome   SeedOutcome
	ProductID int64
	Err       error
}

// SeedReport lists outcomes in candidate order.
type SeedReport struct {
	Results  []SeedResult
	Inserted int
	Skipped  int
	Failed   int
}

func (r *SeedReport) add(res SeedResult) {
	r.Results = append(r.Results, res)
	switch res.Outcome {
	case SeedInserted:
		r.Inserted++
	case SeedSkipped:
		r.Skipped++
	case SeedFailed:
		r.Failed++
	}
}

// SeedCatalog inserts every candidate whose name is not stored yet. Candidate
// IDs are ignored; the database assigns them. A failed row is logged and
// seeding moves on to the next candidate.
func (a *Application) SeedCatalog(ctx context.Context, candidates []domain.Product) SeedReport {
	return seedProducts(ctx, a.Products(), candidates)
}

func seedProducts(ctx context.Context, repo repository.ProductRepository, candidates []domain.Product) SeedReport {
	var report SeedReport
	for _, candidate := range candidates {
		existing, err := repo.GetByName(ctx, candidate.Name)
		switch {
		case err == nil:
			zap.L().Info("product already present", zap.String("name", candidate.Name), zap.Int64("id", existing.ID))
			report.add(SeedResult{Name: candidate.Name, Outcome: SeedSkipped, ProductID: existing.ID})
			continue
		case !errors.Is(err, repository.ErrNotFound):
			zap.L().Error("failed to query product", zap.String("name", candidate.Name), zap.Error(err))
			report.add(SeedResult{Name: candidate.Name, Outcome: SeedFailed, Err: err})
			continue
		}

		product := candidate
		product.ID = 0
		if err := repo.Create(ctx, &product); err != nil {
			zap.L().Error("failed to create product", zap.String("name", candidate.Name), zap.Error(err))
			report.add(SeedResult{Name: candidate.Name, Outcome: SeedFailed, Err: err})
			continue
		}
		zap.L().Info("initialized product", zap.String("name", product.Name), zap.Int64("id", product.ID))
		report.add(SeedResult{Name: candidate.Name, Outcome: SeedInserted, ProductID: product.ID})
	}
	return report
}

// DeduplicateCatalog keeps the lowest ID per product name and deletes the
// other rows. A database without a products table has nothing to remove.
func (a *Application) DeduplicateCatalog(ctx context.Context) (int64, error) {
	if !a.gormDB.WithContext(ctx).Migrator().HasTable(&domain.Product{}) {
		return 0, nil
	}
	removed, err := a.Products().DeleteDuplicates(ctx)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		zap.L().Warn("removed duplicate products", zap.Int64("rows", removed))
	}
	return removed, nil
}

// InitCatalog runs the full initdb sequence. Duplicates are removed before the
// schema is ensured because the unique index on names cannot be built over
// duplicate rows left by older deployments.
func (a *Application) InitCatalog(ctx context.Context, candidates []domain.Product) (SeedReport, int64, error) {
	removed, err := a.DeduplicateCatalog(ctx)
	if err != nil {
		return SeedReport{}, 0, errors.Wrap(err, "remove duplicate products")
	}
	if err := a.EnsureSchema(ctx); err != nil {
		return SeedReport{}, removed, errors.Wrap(err, "create schema")
	}
	return a.SeedCatalog(ctx, candidates), removed, nil
}
