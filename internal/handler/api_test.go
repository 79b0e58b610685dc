package handler

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"marketplace/internal/domain/model"
	"marketplace/internal/infra/token"
	"marketplace/internal/middleware"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret"

// 本番と同じ認証・ロールのミドルウェアで /api を組む
type testAPI struct {
	e              *echo.Echo
	api            *echo.Group
	tokens         *token.JWTManager
	auth           echo.MiddlewareFunc
	shopkeeperOnly echo.MiddlewareFunc
	customerOnly   echo.MiddlewareFunc
}

func newTestAPI() *testAPI {
	e := echo.New()
	tokens := token.NewJWTManager(testSecret, time.Hour)
	return &testAPI{
		e:              e,
		api:            e.Group("/api"),
		tokens:         tokens,
		auth:           middleware.AuthJWT(tokens),
		shopkeeperOnly: middleware.ShopkeeperOnly(),
		customerOnly:   middleware.CustomerOnly(),
	}
}

func (a *testAPI) tokenFor(t *testing.T, role model.Role, userID int64) string {
	t.Helper()
	raw, err := a.tokens.Issue(model.Principal{UserID: userID, Role: role, Email: "u@example.com"})
	require.NoError(t, err)
	return raw
}

// bearerが空ならAuthorizationなし
func (a *testAPI) do(method, path, bearer, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, msg string) {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	require.JSONEq(t, `{"error":`+quote(msg)+`}`, rec.Body.String())
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

