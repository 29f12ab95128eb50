package v2controllers

import (
	"errors"
	"net/http"

	"github.com/getAlby/tahub.go/lib/model"
	"github.com/getAlby/tahub.go/lib/responses"
	"github.com/getAlby/tahub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// AccountController : AccountController struct
type AccountController struct {
	svc *service.LedgerService
}

func NewAccountController(svc *service.LedgerService) *AccountController {
	return &AccountController{svc: svc}
}

// GetAccount godoc
// @Summary      Retrieve an account
// @Description  Account query response for the given account id
// @Produce      json
// @Tags         Account
// @Param        account_id  path  string  true  "Account id"
// @Success      200  {object}  model.AccountResponsePayload
// @Failure      404  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/accounts/{account_id} [get]
func (controller *AccountController) GetAccount(c echo.Context) error {
	accountID, err := pathParam(c, "account_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	r, err := controller.svc.AccountResponse(c.Request().Context(), accountID)
	if errors.Is(err, service.ErrNotFound) {
		return c.JSON(http.StatusNotFound, responses.AccountNotFoundError)
	}
	if err != nil {
		c.Logger().Errorf("Error fetching account account_id:%s error: %v", accountID, err)
		return err
	}
	return respondWithETag(c, r, model.AccountResponsePayloadOf(r))
}
