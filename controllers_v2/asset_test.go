package v2controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	v2controllers "github.com/getAlby/tahub.go/controllers_v2"
	"github.com/getAlby/tahub.go/db/models"
	"github.com/getAlby/tahub.go/lib"
	"github.com/getAlby/tahub.go/lib/model"
	"github.com/getAlby/tahub.go/lib/responses"
	"github.com/getAlby/tahub.go/lib/service"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ziflex/lecho/v3"
)

type ledger struct {
	assets   map[string]models.Asset
	accounts map[string]models.Account
}

func (l *ledger) FindAsset(ctx context.Context, assetID string) (*models.Asset, error) {
	a, ok := l.assets[assetID]
	if !ok {
		return nil, fmt.Errorf("asset %s: %w", assetID, service.ErrNotFound)
	}
	return &a, nil
}

func (l *ledger) FindAccount(ctx context.Context, accountID string) (*models.Account, error) {
	a, ok := l.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", accountID, service.ErrNotFound)
	}
	return &a, nil
}

func (l *ledger) UpsertAsset(ctx context.Context, asset *models.Asset) error {
	l.assets[asset.AssetID] = *asset
	return nil
}

func newTestEcho(t *testing.T) (*echo.Echo, *ledger) {
	t.Helper()
	l := &ledger{
		assets: map[string]models.Asset{
			"coin#usd": {AssetID: "coin#usd", DomainID: "usd", Precision: 2, Amount: "100.00"},
			"50%off":   {AssetID: "50%off", DomainID: "promo", Precision: 0, Amount: "5"},
			"gold/eur": {AssetID: "gold/eur", DomainID: "eur", Precision: 4, Amount: "1.2500"},
		},
		accounts: map[string]models.Account{
			"alice@usd": {AccountID: "alice@usd", DomainID: "usd", Quorum: 1},
			"50%bob":    {AccountID: "50%bob", DomainID: "promo", Quorum: 1},
		},
	}
	svc := service.NewLedgerService(&service.Config{ResponseCacheSize: 10}, l, lecho.New(io.Discard), nil)

	e := echo.New()
	e.HTTPErrorHandler = responses.HTTPErrorHandler
	e.Validator = &lib.CustomValidator{Validator: validator.New()}
	assetCtrl := v2controllers.NewAssetController(svc)
	e.GET("/v2/assets/:asset_id", assetCtrl.GetAsset)
	e.PUT("/v2/admin/assets", assetCtrl.UpdateAsset)
	e.GET("/v2/accounts/:account_id", v2controllers.NewAccountController(svc).GetAccount)
	e.GET("/v2/health", v2controllers.NewHealthController().Check)
	return e, l
}

func TestGetAsset(t *testing.T) {
	e, _ := newTestEcho(t)
	req := httptest.NewRequest(http.MethodGet, "/v2/assets/coin%23usd", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	decoded, err := model.DecodeAssetResponse(rec.Body.Bytes())
	require.NoError(t, err)
	expected := model.NewAssetResponse(model.NewAsset("coin#usd", "usd", 2, "100.00"))
	assert.True(t, expected.Equal(decoded))
	assert.Equal(t, `"`+model.Fingerprint(expected).String()+`"`, rec.Header().Get("ETag"))
}

func TestGetAssetNotModified(t *testing.T) {
	e, _ := newTestEcho(t)
	expected := model.NewAssetResponse(model.NewAsset("coin#usd", "usd", 2, "100.00"))

	req := httptest.NewRequest(http.MethodGet, "/v2/assets/coin%23usd", nil)
	req.Header.Set("If-None-Match", `"`+model.Fingerprint(expected).String()+`"`)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Empty(t, rec.Body.String())

	stale := model.NewAssetResponse(model.NewAsset("coin#usd", "usd", 2, "200.00"))
	req = httptest.NewRequest(http.MethodGet, "/v2/assets/coin%23usd", nil)
	req.Header.Set("If-None-Match", `"`+model.Fingerprint(stale).String()+`"`)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetAssetNotFound(t *testing.T) {
	e, _ := newTestEcho(t)
	req := httptest.NewRequest(http.MethodGet, "/v2/assets/coin%23eur", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	errorResponse := &responses.ErrorResponse{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(errorResponse))
	assert.Equal(t, responses.AssetNotFoundError.Message, errorResponse.Message)
}

func TestUpdateAsset(t *testing.T) {
	e, l := newTestEcho(t)
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(&model.AssetPayload{
		AssetID:   "coin#usd",
		DomainID:  "usd",
		Precision: 2,
		Amount:    "200.00",
	}))
	req := httptest.NewRequest(http.MethodPut, "/v2/admin/assets", &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "200.00", l.assets["coin#usd"].Amount)

	req = httptest.NewRequest(http.MethodGet, "/v2/assets/coin%23usd", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	decoded, err := model.DecodeAssetResponse(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "200.00", decoded.Asset().Amount())
}

func TestUpdateAssetRejectsInvalidBody(t *testing.T) {
	e, l := newTestEcho(t)
	req := httptest.NewRequest(http.MethodPut, "/v2/admin/assets", bytes.NewBufferString(`{"asset_id":"coin#usd","amount":"lots"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "100.00", l.assets["coin#usd"].Amount)
}

func TestGetAccount(t *testing.T) {
	e, _ := newTestEcho(t)
	req := httptest.NewRequest(http.MethodGet, "/v2/accounts/alice@usd", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	decoded, err := model.DecodeAccountResponse(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "alice@usd", decoded.Account().AccountID())

	req = httptest.NewRequest(http.MethodGet, "/v2/accounts/bob@usd", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	e, _ := newTestEcho(t)
	req := httptest.NewRequest(http.MethodGet, "/v2/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"result":"OK"}`, rec.Body.String())
}

func TestGetAssetWithEscapedID(t *testing.T) {
	e, _ := newTestEcho(t)
	for path, id := range map[string]string{
		"/v2/assets/50%25off":   "50%off",
		"/v2/assets/gold%2Feur": "gold/eur",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, path)
		decoded, err := model.DecodeAssetResponse(rec.Body.Bytes())
		require.NoError(t, err, path)
		assert.Equal(t, id, decoded.Asset().AssetID(), path)
	}
}

func TestGetAccountWithEscapedID(t *testing.T) {
	e, _ := newTestEcho(t)
	req := httptest.NewRequest(http.MethodGet, "/v2/accounts/50%25bob", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	decoded, err := model.DecodeAccountResponse(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "50%bob", decoded.Account().AccountID())
}

func TestGetAssetIfNoneMatchForms(t *testing.T) {
	e, _ := newTestEcho(t)
	etag := `"` + model.Fingerprint(model.NewAssetResponse(model.NewAsset("coin#usd", "usd", 2, "100.00"))).String() + `"`
	stale := `"` + model.Fingerprint(model.NewAssetResponse(model.NewAsset("coin#usd", "usd", 2, "200.00"))).String() + `"`

	for header, code := range map[string]int{
		"W/" + etag:                 http.StatusNotModified,
		stale + ", " + etag:         http.StatusNotModified,
		stale + ",W/" + etag + " ":  http.StatusNotModified,
		"*":                         http.StatusNotModified,
		stale:                       http.StatusOK,
		"W/" + stale + ", " + stale: http.StatusOK,
	} {
		req := httptest.NewRequest(http.MethodGet, "/v2/assets/coin%23usd", nil)
		req.Header.Set("If-None-Match", header)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, code, rec.Code, header)
	}
}
