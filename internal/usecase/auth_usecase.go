package usecase

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"marketplace/internal/domain/model"
	"marketplace/internal/repository"

	"github.com/google/uuid"
)

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateRegister(ctx context.Context, in RegisterInput) error
	ValidateLogin(ctx context.Context, in LoginInput) error
}

// トークン発行
type TokenIssuer interface {
	Issue(p model.Principal) (string, error)
}

type RegisterInput struct {
	UserType     string
	Name         string
	Email        string
	Password     string
	Phone        string
	Address      string
	GSTNumber    string
	BusinessName string
}

type RegisterOutput struct {
	Message  string `json:"message"`
	ShopCode string `json:"shopCode,omitempty"`
}

type LoginInput struct {
	Email    string
	Password string
	UserType string
	ShopCode string
}

type LoginOutput struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

// レスポンス用（password_hashはjson:"-"）
type ShopkeeperDTO struct {
	model.Shopkeeper
	UserType model.Role `json:"userType"`
}

type CustomerDTO struct {
	model.Customer
	UserType model.Role `json:"userType"`
}

type ProfileOutput struct {
	User interface{} `json:"user"`
}

type AuthUsecase struct {
	shopkeepers repository.ShopkeeperRepository
	customers   repository.CustomerRepository
	hasher      PasswordHasher
	tokens      TokenIssuer
	validator   AuthValidator
	now         func() time.Time
}

func NewAuthUsecase(
	shopkeepers repository.ShopkeeperRepository,
	customers repository.CustomerRepository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	validator AuthValidator,
) *AuthUsecase {
	return &AuthUsecase{
		shopkeepers: shopkeepers,
		customers:   customers,
		hasher:      hasher,
		tokens:      tokens,
		validator:   validator,
		now:         time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ショップコードの重複時に付けるランダム部分
func randomSuffix() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
}

func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (RegisterOutput, error) {
	//入力検証（validatorに寄せる）
	if err := u.validator.ValidateRegister(ctx, in); err != nil {
		return RegisterOutput{}, err
	}
	in.Email = normalizeEmail(in.Email)

	switch model.Role(in.UserType) {
	case model.RoleShopkeeper:
		return u.registerShopkeeper(ctx, in)
	case model.RoleCustomer:
		return u.registerCustomer(ctx, in)
	default:
		return RegisterOutput{}, badRequest("Invalid user type")
	}
}

func (u *AuthUsecase) registerShopkeeper(ctx context.Context, in RegisterInput) (RegisterOutput, error) {
	gst := model.CleanGSTNumber(in.GSTNumber)

	exists, err := u.shopkeepers.ExistsByEmailOrGST(ctx, in.Email, gst)
	if err != nil {
		return RegisterOutput{}, internal(err)
	}
	if exists {
		return RegisterOutput{}, conflict("Shopkeeper with this email or GST number already exists")
	}

	code, err := u.newShopCode(ctx)
	if err != nil {
		return RegisterOutput{}, err
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return RegisterOutput{}, internal(err)
	}

	s := &model.Shopkeeper{
		Name:         strings.TrimSpace(in.Name),
		Email:        in.Email,
		PasswordHash: hash,
		GSTNumber:    gst,
		ShopCode:     code,
		BusinessName: strings.TrimSpace(in.BusinessName),
		Address:      strings.TrimSpace(in.Address),
		Phone:        strings.TrimSpace(in.Phone),
	}
	if err := u.shopkeepers.Create(ctx, s); err != nil {
		// 同時登録でunique違反
		if errors.Is(err, repository.ErrDuplicate) {
			return RegisterOutput{}, conflict("Shopkeeper with this email or GST number already exists")
		}
		return RegisterOutput{}, internal(err)
	}

	return RegisterOutput{Message: "Shopkeeper registered successfully", ShopCode: s.ShopCode}, nil
}

// "SHOP" + 現在時刻(ms)の36進数。使用済みならランダムな接尾辞をつける
func (u *AuthUsecase) newShopCode(ctx context.Context) (string, error) {
	base := "SHOP" + strings.ToUpper(strconv.FormatInt(u.now().UnixMilli(), 36))

	code := base
	for i := 0; i < 5; i++ {
		_, err := u.shopkeepers.FindByShopCode(ctx, code)
		if errors.Is(err, repository.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", internal(err)
		}
		code = base + randomSuffix()
	}
	return "", internal(errors.New("could not allocate shop code"))
}

func (u *AuthUsecase) registerCustomer(ctx context.Context, in RegisterInput) (RegisterOutput, error) {
	_, err := u.customers.FindByEmail(ctx, in.Email)
	if err == nil {
		return RegisterOutput{}, conflict("Customer with this email already exists")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return RegisterOutput{}, internal(err)
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return RegisterOutput{}, internal(err)
	}

	c := &model.Customer{
		Name:         strings.TrimSpace(in.Name),
		Email:        in.Email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(in.Phone),
		Address:      strings.TrimSpace(in.Address),
	}
	if err := u.customers.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return RegisterOutput{}, conflict("Customer with this email already exists")
		}
		return RegisterOutput{}, internal(err)
	}

	return RegisterOutput{Message: "Customer registered successfully"}, nil
}

func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	// 1) 入力検証
	if err := u.validator.ValidateLogin(ctx, in); err != nil {
		return LoginOutput{}, err
	}
	email := normalizeEmail(in.Email)

	switch model.Role(in.UserType) {
	case model.RoleShopkeeper:
		s, err := u.shopkeepers.FindByEmail(ctx, email)
		if errors.Is(err, repository.ErrNotFound) {
			return LoginOutput{}, invalidCredentials()
		}
		if err != nil {
			return LoginOutput{}, internal(err)
		}
		if err := u.hasher.Compare(s.PasswordHash, in.Password); err != nil {
			return LoginOutput{}, invalidCredentials()
		}

		shopID := s.ID
		token, err := u.tokens.Issue(model.Principal{UserID: s.ID, Role: model.RoleShopkeeper, Email: s.Email, ShopID: &shopID})
		if err != nil {
			return LoginOutput{}, internal(err)
		}
		return LoginOutput{Token: token, User: ShopkeeperDTO{Shopkeeper: s, UserType: model.RoleShopkeeper}}, nil

	case model.RoleCustomer:
		//先にショップコードを確認
		shop, err := u.shopkeepers.FindByShopCode(ctx, strings.TrimSpace(in.ShopCode))
		if errors.Is(err, repository.ErrNotFound) {
			return LoginOutput{}, notFound("Invalid shop code")
		}
		if err != nil {
			return LoginOutput{}, internal(err)
		}

		c, err := u.customers.FindByEmail(ctx, email)
		if errors.Is(err, repository.ErrNotFound) {
			return LoginOutput{}, invalidCredentials()
		}
		if err != nil {
			return LoginOutput{}, internal(err)
		}
		if err := u.hasher.Compare(c.PasswordHash, in.Password); err != nil {
			return LoginOutput{}, invalidCredentials()
		}

		//ログインしたショップに紐付ける
		if c.ShopkeeperID == nil || *c.ShopkeeperID != shop.ID {
			if err := u.customers.LinkShopkeeper(ctx, c.ID, shop.ID); err != nil {
				return LoginOutput{}, internal(err)
			}
			shopID := shop.ID
			c.ShopkeeperID = &shopID
		}

		token, err := u.tokens.Issue(model.Principal{UserID: c.ID, Role: model.RoleCustomer, Email: c.Email, ShopID: c.ShopkeeperID})
		if err != nil {
			return LoginOutput{}, internal(err)
		}
		return LoginOutput{Token: token, User: CustomerDTO{Customer: c, UserType: model.RoleCustomer}}, nil

	default:
		return LoginOutput{}, badRequest("Invalid user type")
	}
}

func invalidCredentials() error {
	return NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
}

func (u *AuthUsecase) Profile(ctx context.Context, p model.Principal) (ProfileOutput, error) {
	switch p.Role {
	case model.RoleShopkeeper:
		s, err := u.shopkeepers.FindByID(ctx, p.UserID)
		if errors.Is(err, repository.ErrNotFound) {
			return ProfileOutput{}, notFound("User not found")
		}
		if err != nil {
			return ProfileOutput{}, internal(err)
		}
		return ProfileOutput{User: ShopkeeperDTO{Shopkeeper: s, UserType: model.RoleShopkeeper}}, nil

	case model.RoleCustomer:
		c, err := u.customers.FindByID(ctx, p.UserID)
		if errors.Is(err, repository.ErrNotFound) {
			return ProfileOutput{}, notFound("User not found")
		}
		if err != nil {
			return ProfileOutput{}, internal(err)
		}
		return ProfileOutput{User: CustomerDTO{Customer: c, UserType: model.RoleCustomer}}, nil

	default:
		return ProfileOutput{}, badRequest("Invalid user type")
	}
}
