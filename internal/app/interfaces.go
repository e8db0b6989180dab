package app

import (
	"github.com/wheelmaster/tireshop/internal/repository"
)

// RepositoryProvider hands out repositories bound to the application
// database. Read-only commands depend on this instead of *Application.
type RepositoryProvider interface {
	Products() repository.ProductRepository
	Orders() repository.OrderRepository
}
