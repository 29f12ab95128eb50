package model

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidPayload = errors.New("invalid payload")

var validate = validator.New()

type AssetPayload struct {
	AssetID   string `json:"asset_id" validate:"required"`
	DomainID  string `json:"domain_id" validate:"required"`
	Precision uint8  `json:"precision" validate:"lte=18"`
	Amount    string `json:"amount" validate:"required,numeric"`
}

type AssetResponsePayload struct {
	Kind  Kind          `json:"kind"`
	Asset *AssetPayload `json:"asset" validate:"required"`
}

type AccountPayload struct {
	AccountID string `json:"account_id" validate:"required"`
	DomainID  string `json:"domain_id" validate:"required"`
	Quorum    uint32 `json:"quorum" validate:"gte=1"`
}

type AccountResponsePayload struct {
	Kind    Kind            `json:"kind"`
	Account *AccountPayload `json:"account" validate:"required"`
}

// AssetPayloadOf renders any Asset backing through its accessors.
func AssetPayloadOf(a Asset) *AssetPayload {
	return &AssetPayload{
		AssetID:   a.AssetID(),
		DomainID:  a.DomainID(),
		Precision: a.Precision(),
		Amount:    a.Amount(),
	}
}

func AssetResponsePayloadOf(r AssetResponse) *AssetResponsePayload {
	return &AssetResponsePayload{Kind: KindAssetResponse, Asset: AssetPayloadOf(r.Asset())}
}

func AccountPayloadOf(a Account) *AccountPayload {
	return &AccountPayload{
		AccountID: a.AccountID(),
		DomainID:  a.DomainID(),
		Quorum:    a.Quorum(),
	}
}

func AccountResponsePayloadOf(r AccountResponse) *AccountResponsePayload {
	return &AccountResponsePayload{Kind: KindAccountResponse, Account: AccountPayloadOf(r.Account())}
}

func EncodeAssetResponse(r AssetResponse) ([]byte, error) {
	return json.Marshal(AssetResponsePayloadOf(r))
}

// DecodeAssetResponse decodes and validates a wire payload. The returned
// response keeps the source bytes but never compares or renders them.
func DecodeAssetResponse(b []byte) (AssetResponse, error) {
	payload := AssetResponsePayload{}
	if err := json.Unmarshal(b, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if payload.Kind != "" && payload.Kind != KindAssetResponse {
		return nil, fmt.Errorf("%w: unexpected kind %q", ErrInvalidPayload, payload.Kind)
	}
	if err := validate.Struct(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	raw := make([]byte, len(b))
	copy(raw, b)
	return &wireAssetResponse{
		raw:   raw,
		asset: &wireAsset{payload: *payload.Asset},
	}, nil
}

func DecodeAccountResponse(b []byte) (AccountResponse, error) {
	payload := AccountResponsePayload{}
	if err := json.Unmarshal(b, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if payload.Kind != "" && payload.Kind != KindAccountResponse {
		return nil, fmt.Errorf("%w: unexpected kind %q", ErrInvalidPayload, payload.Kind)
	}
	if err := validate.Struct(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	a := payload.Account
	return NewAccountResponse(NewAccount(a.AccountID, a.DomainID, a.Quorum)), nil
}

type wireAsset struct {
	payload AssetPayload
}

func (a *wireAsset) AssetID() string  { return a.payload.AssetID }
func (a *wireAsset) DomainID() string { return a.payload.DomainID }
func (a *wireAsset) Precision() uint8 { return a.payload.Precision }
func (a *wireAsset) Amount() string   { return a.payload.Amount }

func (a *wireAsset) String() string         { return assetString(a) }
func (a *wireAsset) Equal(other Asset) bool { return assetEqual(a, other) }
func (a *wireAsset) Matches(other Object) bool {
	return Match[Asset](a, other)
}

type wireAssetResponse struct {
	raw   []byte
	asset *wireAsset
}

// Bytes returns a copy of the payload this response was decoded from.
func (r *wireAssetResponse) Bytes() []byte {
	return append([]byte(nil), r.raw...)
}

func (r *wireAssetResponse) Asset() Asset { return r.asset }

func (r *wireAssetResponse) String() string {
	return single[Asset]{kind: KindAssetResponse, entity: r.asset}.String()
}

func (r *wireAssetResponse) Equal(rhs AssetResponse) bool {
	return sameEntity(AssetResponse.Asset, AssetResponse(r), rhs)
}

func (r *wireAssetResponse) Matches(other Object) bool {
	return Match[AssetResponse](r, other)
}
