package purchases

import (
	"context"

	"github.com/dmitrijs2005/warrantykeeper/internal/client/models"
)

type Repository interface {
	CreateOrUpdate(ctx context.Context, p *models.Purchase) error
	GetAll(ctx context.Context) ([]models.Purchase, error)
	GetByID(ctx context.Context, id string) (*models.Purchase, error)
	DeleteByID(ctx context.Context, id string) error
}
