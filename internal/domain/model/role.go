package model

// JWTのuser_typeに入る値
type Role string

const (
	RoleShopkeeper Role = "shopkeeper"
	RoleCustomer   Role = "customer"
)

func (r Role) Valid() bool {
	return r == RoleShopkeeper || r == RoleCustomer
}
