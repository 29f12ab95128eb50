package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/getAlby/tahub.go/db/models"
	"github.com/uptrace/bun"
)

// BunStore reads ledger state from postgres.
type BunStore struct {
	DB *bun.DB
}

func (s *BunStore) FindAsset(ctx context.Context, assetID string) (*models.Asset, error) {
	var asset models.Asset
	err := s.DB.NewSelect().Model(&asset).Where("asset_id = ?", assetID).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("asset %s: %w", assetID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func (s *BunStore) FindAccount(ctx context.Context, accountID string) (*models.Account, error) {
	var account models.Account
	err := s.DB.NewSelect().Model(&account).Where("account_id = ?", accountID).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %s: %w", accountID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *BunStore) UpsertAsset(ctx context.Context, asset *models.Asset) error {
	_, err := s.DB.NewInsert().
		Model(asset).
		On("CONFLICT (asset_id) DO UPDATE").
		Set("domain_id = EXCLUDED.domain_id").
		Set(`"precision" = EXCLUDED."precision"`).
		Set("amount = EXCLUDED.amount").
		Set("updated_at = current_timestamp").
		Returning("*").
		Exec(ctx)
	return err
}
