package model

import (
	"strconv"
)

// Account is a ledger account as seen by query responses.
type Account interface {
	Primitive[Account]
	AccountID() string
	DomainID() string
	Quorum() uint32
}

type plainAccount struct {
	accountID string
	domainID  string
	quorum    uint32
}

func NewAccount(accountID, domainID string, quorum uint32) Account {
	return &plainAccount{accountID: accountID, domainID: domainID, quorum: quorum}
}

func (a *plainAccount) AccountID() string { return a.accountID }
func (a *plainAccount) DomainID() string  { return a.domainID }
func (a *plainAccount) Quorum() uint32    { return a.quorum }

func (a *plainAccount) String() string {
	return newPrettyString("Account").
		field("accountId", strconv.Quote(a.accountID)).
		field("domainId", strconv.Quote(a.domainID)).
		field("quorum", strconv.FormatUint(uint64(a.quorum), 10)).
		finalize()
}

func (a *plainAccount) Equal(other Account) bool {
	if isNil(other) {
		return false
	}
	return a.accountID == other.AccountID() &&
		a.domainID == other.DomainID() &&
		a.quorum == other.Quorum()
}

func (a *plainAccount) Matches(other Object) bool {
	return Match[Account](a, other)
}
