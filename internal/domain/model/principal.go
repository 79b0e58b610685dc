package model

// 認証済みリクエストの本人
type Principal struct {
	UserID int64
	Role   Role
	Email  string
	// customer: ログインしたショップ、shopkeeper: 自分
	ShopID *int64
}

func (p Principal) IsShopkeeper() bool { return p.Role == RoleShopkeeper }

func (p Principal) IsCustomer() bool { return p.Role == RoleCustomer }
