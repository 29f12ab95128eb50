package model

import (
	"strconv"
)

// Asset is a ledger asset as seen by query responses.
type Asset interface {
	Primitive[Asset]
	AssetID() string
	DomainID() string
	Precision() uint8
	Amount() string
}

type plainAsset struct {
	assetID   string
	domainID  string
	precision uint8
	amount    string
}

// NewAsset builds an Asset from already validated ledger state.
func NewAsset(assetID, domainID string, precision uint8, amount string) Asset {
	return &plainAsset{
		assetID:   assetID,
		domainID:  domainID,
		precision: precision,
		amount:    amount,
	}
}

func (a *plainAsset) AssetID() string  { return a.assetID }
func (a *plainAsset) DomainID() string { return a.domainID }
func (a *plainAsset) Precision() uint8 { return a.precision }
func (a *plainAsset) Amount() string   { return a.amount }

func (a *plainAsset) String() string         { return assetString(a) }
func (a *plainAsset) Equal(other Asset) bool { return assetEqual(a, other) }
func (a *plainAsset) Matches(other Object) bool {
	return Match[Asset](a, other)
}

func assetString(a Asset) string {
	return newPrettyString("Asset").
		field("assetId", strconv.Quote(a.AssetID())).
		field("domainId", strconv.Quote(a.DomainID())).
		field("precision", strconv.FormatUint(uint64(a.Precision()), 10)).
		field("amount", strconv.Quote(a.Amount())).
		finalize()
}

func assetEqual(a, other Asset) bool {
	if isNil(other) {
		return false
	}
	return a.AssetID() == other.AssetID() &&
		a.DomainID() == other.DomainID() &&
		a.Precision() == other.Precision() &&
		a.Amount() == other.Amount()
}
