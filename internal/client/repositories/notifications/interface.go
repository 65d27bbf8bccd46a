package notifications

import (
	"context"
	"time"

	"github.com/dmitrijs2005/warrantykeeper/internal/client/models"
)

type Repository interface {
	Schedule(ctx context.Context, key string, at time.Time, title, body string) error
	Cancel(ctx context.Context, keys []string) error
	CancelAll(ctx context.Context) error
	Due(ctx context.Context, now time.Time) ([]models.Notification, error)
	Pending(ctx context.Context) ([]models.Notification, error)
}
