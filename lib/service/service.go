package service

import (
	"context"
	"errors"

	"github.com/getAlby/tahub.go/db/models"
	"github.com/getAlby/tahub.go/lib/model"
	"github.com/ziflex/lecho/v3"
)

var ErrNotFound = errors.New("not found")

// Store is the ledger state the query layer reads from.
type Store interface {
	FindAsset(ctx context.Context, assetID string) (*models.Asset, error)
	FindAccount(ctx context.Context, accountID string) (*models.Account, error)
	UpsertAsset(ctx context.Context, asset *models.Asset) error
}

// Publisher distributes asset responses to other instances.
type Publisher interface {
	PublishAssetResponse(ctx context.Context, r model.AssetResponse) error
}

type LedgerService struct {
	Config    *Config
	Store     Store
	Logger    *lecho.Logger
	Responses *ResponseCache
	Publisher Publisher
}

func NewLedgerService(c *Config, store Store, logger *lecho.Logger, publisher Publisher) *LedgerService {
	return &LedgerService{
		Config:    c,
		Store:     store,
		Logger:    logger,
		Responses: NewResponseCache(c.ResponseCacheSize, c.ResponseCacheTTL),
		Publisher: publisher,
	}
}
