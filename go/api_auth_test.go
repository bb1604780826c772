package travelordersserver

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	travelmocks "github.com/Apurer/go-gin-travel-orders/internal/domains/travelorders/ports/mocks"
	userapp "github.com/Apurer/go-gin-travel-orders/internal/domains/users/application"
	userdomain "github.com/Apurer/go-gin-travel-orders/internal/domains/users/domain"
	userports "github.com/Apurer/go-gin-travel-orders/internal/domains/users/ports"
	usermocks "github.com/Apurer/go-gin-travel-orders/internal/domains/users/ports/mocks"
	apierrors "github.com/Apurer/go-gin-travel-orders/internal/shared/errors"
)

func TestAuthMiddleware_RejectsMissingOrBadTokens(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "no_header"},
		{name: "wrong_scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "empty_bearer", header: "Bearer   "},
		{name: "unknown_token", header: "Bearer forged"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			router := newTestRouter(travelmocks.NewMockService(ctrl), authStub(t, ctrl))

			req := newRequest(http.MethodGet, "/api/me", "")
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := serve(router, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			var problem apierrors.ProblemDetail
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
			assert.Equal(t, msgUnauthenticated, problem.Detail)
		})
	}
}

func TestBearerToken(t *testing.T) {
	raw, ok := bearerToken("bearer abc.def")
	assert.True(t, ok)
	assert.Equal(t, "abc.def", raw)

	_, ok = bearerToken("Bearer")
	assert.False(t, ok)
}

func TestAuthAPI_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		err            error
		wantStatusCode int
	}{
		{name: "created_return_201", body: `{"name":"Alice","email":"alice@example.com","password":"secret1"}`, wantStatusCode: http.StatusCreated},
		{name: "duplicate_email_return_409", body: `{"name":"Alice","email":"alice@example.com","password":"secret1"}`, err: userapp.ErrDuplicateEmail, wantStatusCode: http.StatusConflict},
		{
			name:           "weak_password_return_422",
			body:           `{"name":"Alice","email":"alice@example.com","password":"x"}`,
			err:            apierrors.InvalidField(userapp.ErrInvalidInput, "password", userdomain.ErrWeakPassword),
			wantStatusCode: http.StatusUnprocessableEntity,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			users := authStub(t, ctrl)
			var user *userdomain.User
			if tt.err == nil {
				user = &userdomain.User{ID: alice.UserID, Name: "Alice", Email: "alice@example.com"}
			}
			users.EXPECT().Register(gomock.Any(), gomock.AssignableToTypeOf(userports.RegisterInput{})).Return(user, tt.err)
			router := newTestRouter(travelmocks.NewMockService(ctrl), users)

			rec := do(router, http.MethodPost, "/api/register", "", tt.body)
			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.NotContains(t, rec.Body.String(), "password_hash")
		})
	}
}

func TestAuthAPI_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := authStub(t, ctrl)
	expires := time.Date(2025, 3, 1, 13, 0, 0, 0, time.UTC)
	users.EXPECT().Login(gomock.Any(), "alice@example.com", "secret1").
		Return(userdomain.Token{Value: "signed", UserID: alice.UserID, ExpiresAt: expires}, nil)
	users.EXPECT().Login(gomock.Any(), "alice@example.com", "wrong").
		Return(userdomain.Token{}, userapp.ErrInvalidCredentials)
	router := newTestRouter(travelmocks.NewMockService(ctrl), users)

	rec := do(router, http.MethodPost, "/api/login", "", `{"email":"alice@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "signed", body["token"])
	assert.Equal(t, "bearer", body["token_type"])

	rec = do(router, http.MethodPost, "/api/login", "", `{"email":"alice@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthAPI_LogoutRevokesPresentedToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := authStub(t, ctrl)
	users.EXPECT().Logout(gomock.Any(), userdomain.Token{ID: "jti-user", UserID: alice.UserID}).Return(nil)
	router := newTestRouter(travelmocks.NewMockService(ctrl), users)

	rec := do(router, http.MethodPost, "/api/logout", userToken, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Logout realizado com sucesso"}`, rec.Body.String())
}

func TestUserAPI_PromoteToAdmin(t *testing.T) {
	tests := []struct {
		name           string
		token          string
		setup          func(users *usermocks.MockService)
		wantStatusCode int
		wantMessage    string
	}{
		{
			name:  "promoted_return_200",
			token: adminToken,
			setup: func(users *usermocks.MockService) {
				users.EXPECT().PromoteToAdmin(gomock.Any(), admin, alice.UserID).Return(true, nil)
			},
			wantStatusCode: http.StatusOK,
			wantMessage:    msgUserPromoted,
		},
		{
			name:  "already_admin_return_200",
			token: adminToken,
			setup: func(users *usermocks.MockService) {
				users.EXPECT().PromoteToAdmin(gomock.Any(), admin, alice.UserID).Return(false, nil)
			},
			wantStatusCode: http.StatusOK,
			wantMessage:    msgUserAlreadyAdmin,
		},
		{
			name:  "unknown_user_return_404",
			token: adminToken,
			setup: func(users *usermocks.MockService) {
				users.EXPECT().PromoteToAdmin(gomock.Any(), admin, alice.UserID).Return(false, userapp.ErrNotFound)
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:  "non_admin_return_403",
			token: userToken,
			setup: func(users *usermocks.MockService) {
				users.EXPECT().PromoteToAdmin(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusForbidden,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			users := authStub(t, ctrl)
			tt.setup(users)
			router := newTestRouter(travelmocks.NewMockService(ctrl), users)

			rec := do(router, http.MethodPost, "/api/users/promote-to-admin", tt.token, `{"user_id":"`+alice.UserID+`"}`)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			if tt.wantMessage != "" {
				assert.JSONEq(t, `{"message":"`+tt.wantMessage+`"}`, rec.Body.String())
			}
		})
	}
}
