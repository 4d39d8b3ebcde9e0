package handler_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/marcos-nsantos/flickr2-backend/internal/adapter/handler"
	"github.com/marcos-nsantos/flickr2-backend/internal/domain/entity"
	"github.com/marcos-nsantos/flickr2-backend/internal/mocks"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/httputil"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/pagination"
)

func accountRouter(t *testing.T, principal *entity.Principal) (*gin.Engine, *mocks.MockAccountService) {
	ctrl := gomock.NewController(t)
	accountSvc := mocks.NewMockAccountService(ctrl)
	h := handler.NewAccountHandler(accountSvc, alerts, "http://localhost:9080/realms/jhipster", "web_app")

	router := setupRouter()
	withPrincipal := func(c *gin.Context) {
		if principal != nil {
			c.Set(httputil.PrincipalKey, principal)
		}
		c.Next()
	}
	router.GET("/api/account", withPrincipal, h.Account)
	router.GET("/api/users", h.Users)
	router.GET("/api/admin/users", h.AdminUsers)
	router.GET("/api/auth-info", h.AuthInfo)
	return router, accountSvc
}

func TestAccountHandler_Account(t *testing.T) {
	t.Run("returns synced account with authorities", func(t *testing.T) {
		p := &entity.Principal{Subject: "sub-1", Login: "alice", Authorities: []string{entity.AuthorityUser}}
		router, accountSvc := accountRouter(t, p)

		accountSvc.EXPECT().Sync(gomock.Any(), p).Return(p.ToUser(), nil)

		w := do(router, http.MethodGet, "/api/account", "")

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decode[map[string]any](t, w)
		assert.Equal(t, "alice", resp["login"])
		assert.Equal(t, []any{"ROLE_USER"}, resp["authorities"])
		assert.Equal(t, true, resp["activated"])
	})

	t.Run("requires principal", func(t *testing.T) {
		router, _ := accountRouter(t, nil)

		w := do(router, http.MethodGet, "/api/account", "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		p := &entity.Principal{Subject: "sub-1"}
		router, accountSvc := accountRouter(t, p)

		accountSvc.EXPECT().Sync(gomock.Any(), p).Return(nil, errors.New("db down"))

		w := do(router, http.MethodGet, "/api/account", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestAccountHandler_Users(t *testing.T) {
	router, accountSvc := accountRouter(t, nil)

	accountSvc.EXPECT().ListUsers(gomock.Any(), gomock.Any()).
		Return([]entity.User{{ID: "sub-1", Login: "alice"}}, pagination.NewInfo(0, 20, 1), nil).Times(2)

	w := do(router, http.MethodGet, "/api/users", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", decode[[]map[string]any](t, w)[0]["login"])

	w = do(router, http.MethodGet, "/api/admin/users", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode[[]map[string]any](t, w)[0], "activated")
}

func TestAccountHandler_AuthInfo(t *testing.T) {
	router, _ := accountRouter(t, nil)

	w := do(router, http.MethodGet, "/api/auth-info", "")

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode[map[string]any](t, w)
	assert.Equal(t, "web_app", resp["clientId"])
	assert.Equal(t, "http://localhost:9080/realms/jhipster", resp["issuer"])
}
