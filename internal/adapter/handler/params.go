package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/marcos-nsantos/flickr2-backend/internal/adapter/handler/dto/request"
	"github.com/marcos-nsantos/flickr2-backend/internal/domain"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/apperror"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/httputil"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/pagination"
)

const (
	entityAlbum = "album"
	entityPhoto = "photo"
	entityTag   = "tag"
	entityImage = "image"
)

func pathID(c *gin.Context, entityName string) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.BadRequestAlert("Invalid ID", entityName, "idinvalid")
	}
	return id, nil
}

// bodyID checks the id carried by a PUT or PATCH body against the path.
func bodyID(c *gin.Context, entityName string, id *int64) (int64, error) {
	if id == nil {
		return 0, apperror.BadRequestAlert("Invalid id", entityName, "idnull")
	}
	pid, err := pathID(c, entityName)
	if err != nil {
		return 0, err
	}
	if *id != pid {
		return 0, apperror.BadRequestAlert("Invalid ID", entityName, "idinvalid")
	}
	return pid, nil
}

func listRequest(c *gin.Context) (request.ListRequest, pagination.Pageable, error) {
	var req request.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, pagination.Pageable{}, apperror.BadRequest(err.Error())
	}
	sort, err := pagination.ParseSort(req.Sort)
	if err != nil {
		return req, pagination.Pageable{}, apperror.BadRequest(err.Error())
	}
	return req, pagination.NewPageable(req.Page, req.Size, sort), nil
}

// notFoundOnWrite is how PUT and PATCH report a missing entity.
func notFoundOnWrite(entityName string) *apperror.AppError {
	return apperror.BadRequestAlert("Entity not found", entityName, "idnotfound")
}

// mapError turns service errors into client facing errors for entityName.
func mapError(err error, entityName string) error {
	switch {
	case apperror.Is(err):
		return err
	case errors.Is(err, domain.ErrAlbumNotFound),
		errors.Is(err, domain.ErrPhotoNotFound),
		errors.Is(err, domain.ErrTagNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return apperror.NotFound(entityName)
	case errors.Is(err, domain.ErrImageNotFound):
		return apperror.NotFound(entityImage)
	case errors.Is(err, domain.ErrIntegrityViolation):
		return apperror.Conflict("Referenced entity is missing or still in use", entityName, "integrityviolation")
	case errors.Is(err, domain.ErrInvalidQuery):
		return apperror.BadRequestAlert(err.Error(), entityName, "invalidquery")
	case errors.Is(err, domain.ErrTitleRequired),
		errors.Is(err, domain.ErrNameRequired),
		errors.Is(err, domain.ErrContentTypeRequired):
		return apperror.BadRequestAlert(err.Error(), entityName, "validation")
	default:
		return apperror.Internal(err)
	}
}

// mapWriteError is mapError for PUT and PATCH.
func mapWriteError(err error, entityName string) error {
	mapped := mapError(err, entityName)
	if apperror.StatusCode(mapped) == http.StatusNotFound && !errors.Is(err, domain.ErrImageNotFound) {
		return notFoundOnWrite(entityName)
	}
	return mapped
}

func fail(c *gin.Context, alerts httputil.Alerts, err error) {
	if apperror.StatusCode(err) >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	alerts.Fail(c, err)
}
