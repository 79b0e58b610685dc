package validator

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"marketplace/internal/domain/model"
	"marketplace/internal/usecase"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type authValidator struct{}

// Usecaseは interface を依存注入
func NewAuthValidator() usecase.AuthValidator {
	return &authValidator{}
}

func invalid(message string) error {
	return usecase.NewHTTPError(http.StatusBadRequest, message)
}

// サインアップの入力を検証
func (v *authValidator) ValidateRegister(ctx context.Context, in usecase.RegisterInput) error {
	// 必須チェック
	if strings.TrimSpace(in.UserType) == "" ||
		strings.TrimSpace(in.Name) == "" ||
		strings.TrimSpace(in.Email) == "" ||
		in.Password == "" ||
		strings.TrimSpace(in.Phone) == "" {
		return invalid("All required fields must be provided")
	}

	role := model.Role(in.UserType)
	if !role.Valid() {
		return invalid("Invalid user type")
	}

	// email形式
	if !isEmailLike(in.Email) {
		return invalid("Invalid email format")
	}

	if role == model.RoleShopkeeper {
		if strings.TrimSpace(in.GSTNumber) == "" || strings.TrimSpace(in.BusinessName) == "" {
			return invalid("GST number and business name are required for shopkeepers")
		}
		if len(model.CleanGSTNumber(in.GSTNumber)) != model.GSTNumberLength {
			return invalid("Invalid GST number format")
		}
	}

	return nil
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(ctx context.Context, in usecase.LoginInput) error {
	// 必須チェック
	if strings.TrimSpace(in.Email) == "" || in.Password == "" || strings.TrimSpace(in.UserType) == "" {
		return invalid("All fields are required")
	}
	if !model.Role(in.UserType).Valid() {
		return invalid("Invalid user type")
	}
	if model.Role(in.UserType) == model.RoleCustomer && strings.TrimSpace(in.ShopCode) == "" {
		return invalid("Shop code is required for customer login")
	}
	return nil
}

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}
