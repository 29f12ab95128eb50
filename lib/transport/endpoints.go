package transport

import (
	v2controllers "github.com/getAlby/tahub.go/controllers_v2"
	"github.com/getAlby/tahub.go/lib/service"
	"github.com/labstack/echo/v4"
)

func RegisterV2Endpoints(svc *service.LedgerService, e *echo.Echo, strictRateLimitMiddleware echo.MiddlewareFunc, adminMw echo.MiddlewareFunc, logMw echo.MiddlewareFunc) {
	assetCtrl := v2controllers.NewAssetController(svc)

	e.GET("/v2/health", v2controllers.NewHealthController().Check)
	e.GET("/v2/assets/:asset_id", assetCtrl.GetAsset, logMw)
	e.GET("/v2/accounts/:account_id", v2controllers.NewAccountController(svc).GetAccount, logMw)
	//require admin token for ledger writes
	if svc.Config.AdminToken != "" {
		e.PUT("/v2/admin/assets", assetCtrl.UpdateAsset, strictRateLimitMiddleware, adminMw, logMw)
	}
}
