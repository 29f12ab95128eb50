package service

import (
	"context"
	"fmt"

	"github.com/getAlby/tahub.go/db/models"
	"github.com/getAlby/tahub.go/lib/model"
)

func (svc *LedgerService) AssetResponse(ctx context.Context, assetID string) (model.AssetResponse, error) {
	if r, ok := svc.Responses.Asset(assetID); ok {
		return r, nil
	}
	row, err := svc.Store.FindAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	r := model.NewAssetResponse(row.Entity())
	svc.Responses.PutAsset(r)
	return r, nil
}

func (svc *LedgerService) AccountResponse(ctx context.Context, accountID string) (model.AccountResponse, error) {
	if r, ok := svc.Responses.Account(accountID); ok {
		return r, nil
	}
	row, err := svc.Store.FindAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	r := model.NewAccountResponse(row.Entity())
	svc.Responses.PutAccount(r)
	return r, nil
}

// UpdateAsset writes the asset to the ledger and announces the new response.
// A failed announcement is logged, the ledger write stands.
func (svc *LedgerService) UpdateAsset(ctx context.Context, payload *model.AssetPayload) (model.AssetResponse, error) {
	row := &models.Asset{
		AssetID:   payload.AssetID,
		DomainID:  payload.DomainID,
		Precision: payload.Precision,
		Amount:    payload.Amount,
	}
	if err := svc.Store.UpsertAsset(ctx, row); err != nil {
		return nil, fmt.Errorf("failed to store asset %s: %w", payload.AssetID, err)
	}
	r := model.NewAssetResponse(row.Entity())
	svc.Responses.PutAsset(r)

	if svc.Publisher != nil {
		if err := svc.Publisher.PublishAssetResponse(ctx, r); err != nil {
			svc.Logger.Errorf("Failed to publish asset response for asset_id:%s error: %v", payload.AssetID, err)
		}
	}
	return r, nil
}

// HandleAssetUpdate applies an asset response published by another instance.
// The cached response is only replaced when the content differs.
func (svc *LedgerService) HandleAssetUpdate(ctx context.Context, body []byte) error {
	incoming, err := model.DecodeAssetResponse(body)
	if err != nil {
		return err
	}
	assetID := incoming.Asset().AssetID()
	if cached, ok := svc.Responses.Asset(assetID); ok && cached.Equal(incoming) {
		svc.Logger.Debugf("Asset response unchanged asset_id:%s", assetID)
		return nil
	}
	svc.Responses.PutAsset(incoming)
	svc.Logger.Infof("Asset response refreshed asset_id:%s fingerprint:%s", assetID, model.Fingerprint(incoming))
	return nil
}
