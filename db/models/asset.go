package models

import (
	"time"

	"github.com/getAlby/tahub.go/lib/model"
	"github.com/uptrace/bun"
)

// Asset : Asset Model
//
// `AssetID` is the ledger wide identifier, e.g. "coin#usd".
type Asset struct {
	ID        int64     `bun:",pk,autoincrement"`
	AssetID   string    `bun:",unique,notnull"`
	DomainID  string    `bun:",notnull"`
	Precision uint8     `bun:",notnull"`
	Amount    string    `bun:"type:numeric,notnull"`
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt bun.NullTime
}

// Entity returns the logical asset this row holds.
func (a *Asset) Entity() model.Asset {
	return model.NewAsset(a.AssetID, a.DomainID, a.Precision, a.Amount)
}
