package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/getAlby/tahub.go/db/models"
	"github.com/getAlby/tahub.go/lib/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ziflex/lecho/v3"
)

type memoryStore struct {
	assets   map[string]models.Asset
	accounts map[string]models.Account
	reads    int
	failOn   error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{assets: map[string]models.Asset{}, accounts: map[string]models.Account{}}
}

func (s *memoryStore) FindAsset(ctx context.Context, assetID string) (*models.Asset, error) {
	s.reads++
	a, ok := s.assets[assetID]
	if !ok {
		return nil, fmt.Errorf("asset %s: %w", assetID, ErrNotFound)
	}
	return &a, nil
}

func (s *memoryStore) FindAccount(ctx context.Context, accountID string) (*models.Account, error) {
	s.reads++
	a, ok := s.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", accountID, ErrNotFound)
	}
	return &a, nil
}

func (s *memoryStore) UpsertAsset(ctx context.Context, asset *models.Asset) error {
	if s.failOn != nil {
		return s.failOn
	}
	s.assets[asset.AssetID] = *asset
	return nil
}

type recordingPublisher struct {
	published []model.AssetResponse
	err       error
}

func (p *recordingPublisher) PublishAssetResponse(ctx context.Context, r model.AssetResponse) error {
	p.published = append(p.published, r)
	return p.err
}

func newTestService(store Store, publisher Publisher) *LedgerService {
	return NewLedgerService(&Config{ResponseCacheSize: 100}, store, lecho.New(io.Discard), publisher)
}

func TestAssetResponseFromLedger(t *testing.T) {
	store := newMemoryStore()
	store.assets["coin#usd"] = models.Asset{AssetID: "coin#usd", DomainID: "usd", Precision: 2, Amount: "100.00"}
	svc := newTestService(store, nil)

	r, err := svc.AssetResponse(context.Background(), "coin#usd")
	require.NoError(t, err)
	assert.True(t, r.Equal(model.NewAssetResponse(model.NewAsset("coin#usd", "usd", 2, "100.00"))))

	again, err := svc.AssetResponse(context.Background(), "coin#usd")
	require.NoError(t, err)
	assert.True(t, r.Equal(again))
	assert.Equal(t, 1, store.reads)
}

func TestAssetResponseNotFound(t *testing.T) {
	svc := newTestService(newMemoryStore(), nil)
	r, err := svc.AssetResponse(context.Background(), "coin#eur")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, r)
	assert.Equal(t, 0, svc.Responses.Len())
}

func TestAccountResponseFromLedger(t *testing.T) {
	store := newMemoryStore()
	store.accounts["alice@usd"] = models.Account{AccountID: "alice@usd", DomainID: "usd", Quorum: 2}
	svc := newTestService(store, nil)

	r, err := svc.AccountResponse(context.Background(), "alice@usd")
	require.NoError(t, err)
	assert.Equal(t, uint32(2), r.Account().Quorum())

	_, err = svc.AccountResponse(context.Background(), "bob@usd")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssetAndAccountResponsesDoNotShareCacheEntries(t *testing.T) {
	store := newMemoryStore()
	store.assets["x"] = models.Asset{AssetID: "x", DomainID: "usd", Precision: 2, Amount: "1.00"}
	store.accounts["x"] = models.Account{AccountID: "x", DomainID: "usd", Quorum: 1}
	svc := newTestService(store, nil)

	asset, err := svc.AssetResponse(context.Background(), "x")
	require.NoError(t, err)
	account, err := svc.AccountResponse(context.Background(), "x")
	require.NoError(t, err)
	assert.False(t, model.Equal(asset, account))
	assert.Equal(t, 2, svc.Responses.Len())
}

func TestUpdateAssetPublishesNewResponse(t *testing.T) {
	store := newMemoryStore()
	publisher := &recordingPublisher{}
	svc := newTestService(store, publisher)

	r, err := svc.UpdateAsset(context.Background(), &model.AssetPayload{AssetID: "coin#usd", DomainID: "usd", Precision: 2, Amount: "200.00"})
	require.NoError(t, err)
	require.Len(t, publisher.published, 1)
	assert.True(t, r.Equal(publisher.published[0]))

	cached, ok := svc.Responses.Asset("coin#usd")
	require.True(t, ok)
	assert.True(t, cached.Equal(r))
	assert.Equal(t, "200.00", store.assets["coin#usd"].Amount)
}

func TestUpdateAssetKeepsLedgerWriteWhenPublishFails(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store, &recordingPublisher{err: errors.New("broker down")})

	_, err := svc.UpdateAsset(context.Background(), &model.AssetPayload{AssetID: "coin#usd", DomainID: "usd", Precision: 2, Amount: "1.00"})
	assert.NoError(t, err)
	assert.Contains(t, store.assets, "coin#usd")
}

func TestUpdateAssetStoreFailure(t *testing.T) {
	store := newMemoryStore()
	store.failOn = errors.New("connection refused")
	publisher := &recordingPublisher{}
	svc := newTestService(store, publisher)

	_, err := svc.UpdateAsset(context.Background(), &model.AssetPayload{AssetID: "coin#usd", DomainID: "usd", Precision: 2, Amount: "1.00"})
	assert.ErrorIs(t, err, store.failOn)
	assert.Empty(t, publisher.published)
	assert.Equal(t, 0, svc.Responses.Len())
}

func TestHandleAssetUpdate(t *testing.T) {
	store := newMemoryStore()
	store.assets["coin#usd"] = models.Asset{AssetID: "coin#usd", DomainID: "usd", Precision: 2, Amount: "100.00"}
	svc := newTestService(store, nil)

	original, err := svc.AssetResponse(context.Background(), "coin#usd")
	require.NoError(t, err)

	unchanged, err := model.EncodeAssetResponse(model.NewAssetResponse(model.NewAsset("coin#usd", "usd", 2, "100.00")))
	require.NoError(t, err)
	require.NoError(t, svc.HandleAssetUpdate(context.Background(), unchanged))
	cached, ok := svc.Responses.Asset("coin#usd")
	require.True(t, ok)
	assert.Same(t, original, cached)

	changed, err := model.EncodeAssetResponse(model.NewAssetResponse(model.NewAsset("coin#usd", "usd", 2, "200.00")))
	require.NoError(t, err)
	require.NoError(t, svc.HandleAssetUpdate(context.Background(), changed))
	cached, ok = svc.Responses.Asset("coin#usd")
	require.True(t, ok)
	assert.False(t, cached.Equal(original))
	assert.Equal(t, "200.00", cached.Asset().Amount())

	served, err := svc.AssetResponse(context.Background(), "coin#usd")
	require.NoError(t, err)
	assert.True(t, served.Equal(cached))
	assert.Equal(t, 1, store.reads)
}

func TestHandleAssetUpdateRejectsMalformedBody(t *testing.T) {
	svc := newTestService(newMemoryStore(), nil)
	err := svc.HandleAssetUpdate(context.Background(), []byte(`{"asset":{}}`))
	assert.ErrorIs(t, err, model.ErrInvalidPayload)
	assert.Equal(t, 0, svc.Responses.Len())
}
