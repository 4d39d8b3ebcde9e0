package httputil

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/apperror"
)

// Alerts writes the X-<app>-alert, X-<app>-error and X-<app>-params headers
// that the web client turns into notifications.
type Alerts struct {
	appName string
}

func NewAlerts(appName string) Alerts {
	return Alerts{appName: appName}
}

func (a Alerts) Created(c *gin.Context, entityName, param string) {
	a.alert(c, a.appName+"."+entityName+".created", param)
}

func (a Alerts) Updated(c *gin.Context, entityName, param string) {
	a.alert(c, a.appName+"."+entityName+".updated", param)
}

func (a Alerts) Deleted(c *gin.Context, entityName, param string) {
	a.alert(c, a.appName+"."+entityName+".deleted", param)
}

func (a Alerts) Failure(c *gin.Context, entityName, errorKey string) {
	c.Header("X-"+a.appName+"-error", "error."+errorKey)
	c.Header("X-"+a.appName+"-params", entityName)
}

// Fail sets the failure headers for entity-scoped client errors and writes
// the error body.
func (a Alerts) Fail(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.ErrorKey != "" {
		a.Failure(c, appErr.EntityName, appErr.ErrorKey)
	}
	HandleError(c, err)
}

func (a Alerts) alert(c *gin.Context, message, param string) {
	c.Header("X-"+a.appName+"-alert", message)
	c.Header("X-"+a.appName+"-params", param)
}
