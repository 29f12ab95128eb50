package models

import (
	"time"

	"github.com/getAlby/tahub.go/lib/model"
)

// Account : Account Model
type Account struct {
	ID        int64     `bun:",pk,autoincrement"`
	AccountID string    `bun:",unique,notnull"`
	DomainID  string    `bun:",notnull"`
	Quorum    uint32    `bun:",notnull,default:1"`
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

func (a *Account) Entity() model.Account {
	return model.NewAccount(a.AccountID, a.DomainID, a.Quorum)
}
