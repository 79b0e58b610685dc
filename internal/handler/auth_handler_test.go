package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
	"marketplace/internal/usecase"
	"marketplace/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubShopkeepers struct {
	repo.ShopkeeperRepository
	byEmail map[string]model.Shopkeeper
}

func (s *stubShopkeepers) ExistsByEmailOrGST(ctx context.Context, email string, gst string) (bool, error) {
	for _, v := range s.byEmail {
		if v.Email == email || v.GSTNumber == gst {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubShopkeepers) FindByShopCode(ctx context.Context, code string) (model.Shopkeeper, error) {
	for _, v := range s.byEmail {
		if v.ShopCode == code {
			return v, nil
		}
	}
	return model.Shopkeeper{}, repo.ErrNotFound
}

func (s *stubShopkeepers) FindByEmail(ctx context.Context, email string) (model.Shopkeeper, error) {
	v, ok := s.byEmail[email]
	if !ok {
		return model.Shopkeeper{}, repo.ErrNotFound
	}
	return v, nil
}

func (s *stubShopkeepers) Create(ctx context.Context, sk *model.Shopkeeper) error {
	sk.ID = int64(len(s.byEmail) + 1)
	s.byEmail[sk.Email] = *sk
	return nil
}

type stubCustomers struct {
	repo.CustomerRepository
}

func (stubCustomers) FindByEmail(ctx context.Context, email string) (model.Customer, error) {
	return model.Customer{}, repo.ErrNotFound
}

func newAuthAPI(t *testing.T) (*testAPI, *stubShopkeepers) {
	t.Helper()
	a := newTestAPI()
	shops := &stubShopkeepers{byEmail: map[string]model.Shopkeeper{}}
	uc := usecase.NewAuthUsecase(shops, stubCustomers{}, usecase.NewBcryptHasher(bcrypt.MinCost), a.tokens, validator.NewAuthValidator())
	NewAuthHandler(uc).RegisterRoutes(a.api, a.auth)
	return a, shops
}

const registerShopBody = `{
	"userType":"shopkeeper","name":"Asha","email":"Asha@Example.com","password":"secret123",
	"phone":"9876543210","address":"12 MG Road","gst_number":"27AAPFU0939F1ZV","business_name":"Asha Stores"
}`

func TestAuthHandler_RegisterThenLogin(t *testing.T) {
	a, shops := newAuthAPI(t)

	rec := a.do(http.MethodPost, "/api/auth/register", "", registerShopBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, "Shopkeeper registered successfully", body["message"])
	code, _ := body["shopCode"].(string)
	assert.True(t, strings.HasPrefix(code, "SHOP"), code)
	assert.Equal(t, code, shops.byEmail["asha@example.com"].ShopCode)

	rec = a.do(http.MethodPost, "/api/auth/register", "", registerShopBody)
	requireError(t, rec, http.StatusConflict, "Shopkeeper with this email or GST number already exists")

	rec = a.do(http.MethodPost, "/api/auth/login", "", `{"email":"asha@example.com","password":"secret123","userType":"shopkeeper"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "password")

	body = decodeBody(t, rec)
	user, _ := body["user"].(map[string]interface{})
	assert.Equal(t, "shopkeeper", user["userType"])
	assert.Equal(t, "asha@example.com", user["email"])
	assert.Equal(t, code, user["shop_code"])

	raw, _ := body["token"].(string)
	p, err := a.tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, model.RoleShopkeeper, p.Role)

	//プロフィールはトークン必須
	rec = a.do(http.MethodGet, "/api/auth/profile", "", "")
	requireError(t, rec, http.StatusUnauthorized, "No token provided")
}

func TestAuthHandler_Errors(t *testing.T) {
	a, _ := newAuthAPI(t)

	rec := a.do(http.MethodPost, "/api/auth/register", "", `{"userType":"customer","email":"a@b.co"}`)
	requireError(t, rec, http.StatusBadRequest, "All required fields must be provided")

	rec = a.do(http.MethodPost, "/api/auth/login", "", `{"email":"nobody@example.com","password":"x","userType":"shopkeeper"}`)
	requireError(t, rec, http.StatusUnauthorized, "Invalid credentials")

	rec = a.do(http.MethodPost, "/api/auth/login", "", `{"email":"c@example.com","password":"x","userType":"customer"}`)
	requireError(t, rec, http.StatusBadRequest, "Shop code is required for customer login")

	rec = a.do(http.MethodPost, "/api/auth/login", "", `{"email":"c@example.com","password":"x","userType":"customer","shopCode":"SHOPNONE"}`)
	requireError(t, rec, http.StatusNotFound, "Invalid shop code")
}
