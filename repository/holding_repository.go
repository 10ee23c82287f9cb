package repository

import (
	"context"

	"stockplatform/model"
)

// HoldingRepository persists the whole portfolio as one unit. Save replaces
// whatever was stored before.
type HoldingRepository interface {
	Load(ctx context.Context) ([]model.Holding, error)
	Save(ctx context.Context, holdings []model.Holding) error
}
