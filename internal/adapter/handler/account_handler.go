package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/marcos-nsantos/flickr2-backend/internal/adapter/handler/dto/response"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/apperror"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/httputil"
)

const entityUser = "user"

type AccountHandler struct {
	accountSvc AccountService
	alerts     httputil.Alerts
	authInfo   response.AuthInfoResponse
}

func NewAccountHandler(accountSvc AccountService, alerts httputil.Alerts, issuer, clientID string) *AccountHandler {
	return &AccountHandler{
		accountSvc: accountSvc,
		alerts:     alerts,
		authInfo:   response.AuthInfoResponse{Issuer: issuer, ClientID: clientID},
	}
}

// Account godoc
//
//	@Summary		Current account
//	@Description	Stores the token identity and returns it with its authorities.
//	@Tags			account
//	@Produce		json
//	@Success		200	{object}	response.AccountResponse
//	@Failure		401	{object}	httputil.ErrorResponse
//	@Security		BearerAuth
//	@Router			/account [get]
func (h *AccountHandler) Account(c *gin.Context) {
	p := httputil.GetPrincipal(c)
	if p == nil {
		httputil.HandleError(c, apperror.Unauthorized("authentication required"))
		return
	}

	u, err := h.accountSvc.Sync(c.Request.Context(), p)
	if err != nil {
		fail(c, h.alerts, mapError(err, entityUser))
		return
	}

	httputil.OK(c, response.AccountFromEntity(u, p.Authorities))
}

// Users godoc
//
//	@Summary	List users
//	@Tags		account
//	@Produce	json
//	@Param		page	query	int		false	"Zero-based page"
//	@Param		size	query	int		false	"Page size"
//	@Param		sort	query	string	false	"property,asc|desc"
//	@Success	200		{array}	response.UserResponse
//	@Security	BearerAuth
//	@Router		/users [get]
func (h *AccountHandler) Users(c *gin.Context) {
	_, page, err := listRequest(c)
	if err != nil {
		fail(c, h.alerts, err)
		return
	}

	users, info, err := h.accountSvc.ListUsers(c.Request.Context(), page)
	if err != nil {
		fail(c, h.alerts, mapError(err, entityUser))
		return
	}

	httputil.Page(c, info, response.UsersFromEntities(users))
}

// AdminUsers godoc
//
//	@Summary	List users with account details
//	@Tags		admin
//	@Produce	json
//	@Param		page	query	int		false	"Zero-based page"
//	@Param		size	query	int		false	"Page size"
//	@Param		sort	query	string	false	"property,asc|desc"
//	@Success	200		{array}	response.AccountResponse
//	@Failure	403		{object}	httputil.ErrorResponse
//	@Security	BearerAuth
//	@Router		/admin/users [get]
func (h *AccountHandler) AdminUsers(c *gin.Context) {
	_, page, err := listRequest(c)
	if err != nil {
		fail(c, h.alerts, err)
		return
	}

	users, info, err := h.accountSvc.ListUsers(c.Request.Context(), page)
	if err != nil {
		fail(c, h.alerts, mapError(err, entityUser))
		return
	}

	httputil.Page(c, info, response.AdminUsersFromEntities(users))
}

// AuthInfo godoc
//
//	@Summary	OIDC client settings for the web client
//	@Tags		account
//	@Produce	json
//	@Success	200	{object}	response.AuthInfoResponse
//	@Router		/auth-info [get]
func (h *AccountHandler) AuthInfo(c *gin.Context) {
	httputil.OK(c, h.authInfo)
}
