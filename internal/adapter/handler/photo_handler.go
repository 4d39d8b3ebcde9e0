package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/marcos-nsantos/flickr2-backend/internal/adapter/handler/dto/request"
	"github.com/marcos-nsantos/flickr2-backend/internal/adapter/handler/dto/response"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/apperror"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/httputil"
	"github.com/marcos-nsantos/flickr2-backend/internal/usecase/photo"
)

const filterAlbumIsNull = "album-is-null"

type PhotoHandler struct {
	photoSvc PhotoService
	alerts   httputil.Alerts
}

func NewPhotoHandler(photoSvc PhotoService, alerts httputil.Alerts) *PhotoHandler {
	return &PhotoHandler{photoSvc: photoSvc, alerts: alerts}
}

func photoInput(req request.PhotoRequest) photo.CreateInput {
	return photo.CreateInput{
		Title:            req.Title,
		Description:      req.Description,
		Image:            req.Image,
		ImageContentType: req.ImageContentType,
		Height:           req.Height,
		Width:            req.Width,
		Taken:            req.Taken,
		Uploaded:         req.Uploaded,
		AlbumID:          req.AlbumID(),
		TagIDs:           req.TagIDs(),
	}
}

// Create godoc
//
//	@Summary	Create a photo
//	@Tags		photos
//	@Accept		json
//	@Produce	json
//	@Param		request	body		request.PhotoRequest	true	"Photo with base64 image"
//	@Success	201		{object}	response.PhotoResponse
//	@Failure	400		{object}	httputil.ErrorResponse
//	@Failure	409		{object}	httputil.ErrorResponse	"Unknown album or tag"
//	@Security	BearerAuth
//	@Router		/photos [post]
func (h *PhotoHandler) Create(c *gin.Context) {
	var req request.PhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}
	if req.ID != nil {
		fail(c, h.alerts, apperror.BadRequestAlert("A new photo cannot already have an ID", entityPhoto, "idexists"))
		return
	}

	p, err := h.photoSvc.Create(c.Request.Context(), photoInput(req))
	if err != nil {
		fail(c, h.alerts, mapError(err, entityPhoto))
		return
	}

	id := strconv.FormatInt(p.ID, 10)
	h.alerts.Created(c, entityPhoto, id)
	httputil.Created(c, "/api/photos/"+id, response.PhotoFromEntity(p))
}

// Update godoc
//
//	@Summary	Replace a photo and its tag set
//	@Tags		photos
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int						true	"Photo ID"
//	@Param		request	body		request.PhotoRequest	true	"Photo"
//	@Success	200		{object}	response.PhotoResponse
//	@Failure	400		{object}	httputil.ErrorResponse
//	@Security	BearerAuth
//	@Router		/photos/{id} [put]
func (h *PhotoHandler) Update(c *gin.Context) {
	var req request.PhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}
	id, err := bodyID(c, entityPhoto, req.ID)
	if err != nil {
		fail(c, h.alerts, err)
		return
	}

	p, err := h.photoSvc.Update(c.Request.Context(), photo.UpdateInput{ID: id, CreateInput: photoInput(req)})
	if err != nil {
		fail(c, h.alerts, mapWriteError(err, entityPhoto))
		return
	}

	h.alerts.Updated(c, entityPhoto, strconv.FormatInt(id, 10))
	httputil.OK(c, response.PhotoFromEntity(p))
}

// Patch godoc
//
//	@Summary		Partially update a photo
//	@Description	Tags are replaced only when the body lists them.
//	@Tags			photos
//	@Accept			json
//	@Accept			application/merge-patch+json
//	@Produce		json
//	@Param			id		path		int							true	"Photo ID"
//	@Param			request	body		request.PatchPhotoRequest	true	"Fields to change"
//	@Success		200		{object}	response.PhotoResponse
//	@Failure		400		{object}	httputil.ErrorResponse
//	@Security		BearerAuth
//	@Router			/photos/{id} [patch]
func (h *PhotoHandler) Patch(c *gin.Context) {
	var req request.PatchPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}
	id, err := bodyID(c, entityPhoto, req.ID)
	if err != nil {
		fail(c, h.alerts, err)
		return
	}

	p, err := h.photoSvc.Patch(c.Request.Context(), photo.PatchInput{
		ID:               id,
		Title:            req.Title,
		Description:      req.Description,
		Image:            req.Image,
		ImageContentType: req.ImageContentType,
		Height:           req.Height,
		Width:            req.Width,
		Taken:            req.Taken,
		Uploaded:         req.Uploaded,
		AlbumID:          req.AlbumID(),
		TagIDs:           req.TagIDs(),
	})
	if err != nil {
		fail(c, h.alerts, mapWriteError(err, entityPhoto))
		return
	}

	h.alerts.Updated(c, entityPhoto, strconv.FormatInt(id, 10))
	httputil.OK(c, response.PhotoFromEntity(p))
}

// List godoc
//
//	@Summary		List photos
//	@Description	Paged list. filter=album-is-null or albumId=<id> return the matching photos unpaged.
//	@Tags			photos
//	@Produce		json
//	@Param			page		query		int		false	"Zero-based page"
//	@Param			size		query		int		false	"Page size"
//	@Param			sort		query		string	false	"property,asc|desc"
//	@Param			eagerload	query		bool	false	"Load relationships"
//	@Param			filter		query		string	false	"album-is-null"
//	@Param			albumId		query		int		false	"Album id"
//	@Success		200			{array}		response.PhotoResponse
//	@Security		BearerAuth
//	@Router			/photos [get]
func (h *PhotoHandler) List(c *gin.Context) {
	req, page, err := listRequest(c)
	if err != nil {
		fail(c, h.alerts, err)
		return
	}

	raw, ok := c.GetQuery("albumId")
	if ok || req.Filter == filterAlbumIsNull {
		var albumID *int64
		if ok {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				fail(c, h.alerts, apperror.BadRequestAlert("Invalid album id", entityAlbum, "idinvalid"))
				return
			}
			albumID = &id
		}
		photos, err := h.photoSvc.ListByAlbum(c.Request.Context(), albumID)
		if err != nil {
			fail(c, h.alerts, mapError(err, entityPhoto))
			return
		}
		httputil.OK(c, response.PhotosFromEntities(photos))
		return
	}

	photos, info, err := h.photoSvc.List(c.Request.Context(), page, req.EagerLoad)
	if err != nil {
		fail(c, h.alerts, mapError(err, entityPhoto))
		return
	}

	httputil.Page(c, info, response.PhotosFromEntities(photos))
}

// Get godoc
//
//	@Summary	Get a photo with its album and tags
//	@Tags		photos
//	@Produce	json
//	@Param		id	path		int	true	"Photo ID"
//	@Success	200	{object}	response.PhotoResponse
//	@Failure	404	{object}	httputil.ErrorResponse
//	@Security	BearerAuth
//	@Router		/photos/{id} [get]
func (h *PhotoHandler) Get(c *gin.Context) {
	id, err := pathID(c, entityPhoto)
	if err != nil {
		fail(c, h.alerts, err)
		return
	}

	p, err := h.photoSvc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, h.alerts, mapError(err, entityPhoto))
		return
	}

	httputil.OK(c, response.PhotoFromEntity(p))
}

// Image godoc
//
//	@Summary	Download the photo image
//	@Tags		photos
//	@Produce	octet-stream
//	@Param		id	path	int	true	"Photo ID"
//	@Success	200
//	@Success	307	"Redirect to blob storage"
//	@Failure	404	{object}	httputil.ErrorResponse
//	@Security	BearerAuth
//	@Router		/photos/{id}/image [get]
func (h *PhotoHandler) Image(c *gin.Context) {
	id, err := pathID(c, entityPhoto)
	if err != nil {
		fail(c, h.alerts, err)
		return
	}

	img, err := h.photoSvc.Image(c.Request.Context(), id)
	if err != nil {
		fail(c, h.alerts, mapError(err, entityPhoto))
		return
	}

	if img.RedirectURL != "" {
		c.Redirect(http.StatusTemporaryRedirect, img.RedirectURL)
		return
	}
	c.Data(http.StatusOK, img.ContentType, img.Data)
}

// Thumbnail godoc
//
//	@Summary	Download a JPEG thumbnail of the photo
//	@Tags		photos
//	@Produce	jpeg
//	@Param		id		path	int	true	"Photo ID"
//	@Param		size	query	int	false	"Bounding box in pixels"
//	@Success	200
//	@Failure	404	{object}	httputil.ErrorResponse
//	@Security	BearerAuth
//	@Router		/photos/{id}/thumbnail [get]
func (h *PhotoHandler) Thumbnail(c *gin.Context) {
	id, err := pathID(c, entityPhoto)
	if err != nil {
		fail(c, h.alerts, err)
		return
	}

	size := 0
	if raw := c.Query("size"); raw != "" {
		size, err = strconv.Atoi(raw)
		if err != nil || size <= 0 {
			fail(c, h.alerts, apperror.BadRequest("invalid thumbnail size"))
			return
		}
	}

	thumb, err := h.photoSvc.Thumbnail(c.Request.Context(), id, size)
	if err != nil {
		fail(c, h.alerts, mapError(err, entityPhoto))
		return
	}

	c.Data(http.StatusOK, "image/jpeg", thumb)
}

// Delete godoc
//
//	@Summary	Delete a photo and its tag links
//	@Tags		photos
//	@Param		id	path	int	true	"Photo ID"
//	@Success	204
//	@Failure	404	{object}	httputil.ErrorResponse
//	@Security	BearerAuth
//	@Router		/photos/{id} [delete]
func (h *PhotoHandler) Delete(c *gin.Context) {
	id, err := pathID(c, entityPhoto)
	if err != nil {
		fail(c, h.alerts, err)
		return
	}

	if err := h.photoSvc.Delete(c.Request.Context(), id); err != nil {
		fail(c, h.alerts, mapError(err, entityPhoto))
		return
	}

	h.alerts.Deleted(c, entityPhoto, strconv.FormatInt(id, 10))
	httputil.NoContent(c)
}
