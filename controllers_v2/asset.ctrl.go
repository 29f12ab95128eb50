package v2controllers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/getAlby/tahub.go/lib/model"
	"github.com/getAlby/tahub.go/lib/responses"
	"github.com/getAlby/tahub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// AssetController : AssetController struct
type AssetController struct {
	svc *service.LedgerService
}

func NewAssetController(svc *service.LedgerService) *AssetController {
	return &AssetController{svc: svc}
}

// GetAsset godoc
// @Summary      Retrieve an asset
// @Description  Asset query response for the given asset id
// @Produce      json
// @Tags         Asset
// @Param        asset_id  path  string  true  "Asset id"
// @Success      200  {object}  model.AssetResponsePayload
// @Success      304
// @Failure      404  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/assets/{asset_id} [get]
func (controller *AssetController) GetAsset(c echo.Context) error {
	assetID, err := pathParam(c, "asset_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	r, err := controller.svc.AssetResponse(c.Request().Context(), assetID)
	if errors.Is(err, service.ErrNotFound) {
		return c.JSON(http.StatusNotFound, responses.AssetNotFoundError)
	}
	if err != nil {
		c.Logger().Errorf("Error fetching asset asset_id:%s error: %v", assetID, err)
		return err
	}
	return respondWithETag(c, r, model.AssetResponsePayloadOf(r))
}

// UpdateAsset godoc
// @Summary      Update an asset
// @Description  Writes the asset to the ledger and returns the new query response
// @Accept       json
// @Produce      json
// @Tags         Asset
// @Param        asset  body      model.AssetPayload  true  "Asset"
// @Success      200    {object}  model.AssetResponsePayload
// @Failure      400    {object}  responses.ErrorResponse
// @Failure      500    {object}  responses.ErrorResponse
// @Router       /v2/admin/assets [put]
func (controller *AssetController) UpdateAsset(c echo.Context) error {
	var body model.AssetPayload
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load update asset request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid update asset request body error: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	r, err := controller.svc.UpdateAsset(c.Request().Context(), &body)
	if err != nil {
		c.Logger().Errorf("Error updating asset asset_id:%s error: %v", body.AssetID, err)
		return err
	}
	return respondWithETag(c, r, model.AssetResponsePayloadOf(r))
}

// pathParam returns the decoded path parameter. echo only hands out the
// escaped form when the request carries a RawPath.
func pathParam(c echo.Context, name string) (string, error) {
	param := c.Param(name)
	if c.Request().URL.RawPath == "" {
		return param, nil
	}
	return url.PathUnescape(param)
}

// respondWithETag tags the payload with the response fingerprint and
// answers 304 when the client already holds equal content.
func respondWithETag(c echo.Context, r model.Object, payload interface{}) error {
	etag := `"` + model.Fingerprint(r).String() + `"`
	c.Response().Header().Set("Cache-Control", "no-cache")
	c.Response().Header().Set("ETag", etag)
	if noneMatch(c.Request().Header.Get("If-None-Match"), etag) {
		return c.NoContent(http.StatusNotModified)
	}
	return c.JSON(http.StatusOK, payload)
}

// noneMatch reports whether an If-None-Match header names etag, using weak comparison.
func noneMatch(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" {
			return true
		}
		if strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
