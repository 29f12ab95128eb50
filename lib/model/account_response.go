package model

// AccountResponse is the result of a single account query.
type AccountResponse interface {
	Primitive[AccountResponse]
	Account() Account
}

type accountResponse struct {
	single[Account]
}

func NewAccountResponse(account Account) AccountResponse {
	return &accountResponse{single[Account]{kind: KindAccountResponse, entity: account}}
}

func (r *accountResponse) Account() Account { return r.entity }

func (r *accountResponse) Equal(rhs AccountResponse) bool {
	return sameEntity(AccountResponse.Account, AccountResponse(r), rhs)
}

func (r *accountResponse) Matches(other Object) bool {
	return Match[AccountResponse](r, other)
}
