package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/marcos-nsantos/flickr2-backend/internal/adapter/handler/dto/request"
	"github.com/marcos-nsantos/flickr2-backend/internal/adapter/handler/dto/response"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/apperror"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/httputil"
	"github.com/marcos-nsantos/flickr2-backend/internal/usecase/album"
)

const filterUserIsNull = "user-is-null"

type AlbumHandler struct {
	albumSvc AlbumService
	photoSvc PhotoService
	alerts   httputil.Alerts
}

func NewAlbumHandler(albumSvc AlbumService, photoSvc PhotoService, alerts httputil.Alerts) *AlbumHandler {
	return &AlbumHandler{albumSvc: albumSvc, photoSvc: photoSvc, alerts: alerts}
}

// Create godoc
//
//	@Summary	Create an album
//	@Tags		albums
//	@Accept		json
//	@Produce	json
//	@Param		request	body		request.AlbumRequest	true	"Album"
//	@Success	201		{object}	response.AlbumResponse
//	@Failure	400		{object}	httputil.ErrorResponse	"Body carries an id or misses the title"
//	@Failure	409		{object}	httputil.ErrorResponse	"Unknown user"
//	@Security	BearerAuth
//	@Router		/albums [post]
func (h *AlbumHandler) Create(c *gin.Context) {
	var req request.AlbumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}
	if req.ID != nil {
		fail(c, h.alerts, apperror.BadRequestAlert("A new album cannot already have an ID", entityAlbum, "idexists"))
		return
	}

	a, err := h.albumSvc.Create(c.Request.Context(), album.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Created:     req.Created,
		UserID:      req.UserID(),
	})
	if err != nil {
		fail(c, h.alerts, mapError(err, entityAlbum))
		return
	}

	id := strconv.FormatInt(a.ID, 10)
	h.alerts.Created(c, entityAlbum, id)
	httputil.Created(c, "/api/albums/"+id, response.AlbumFromEntity(a))
}

// Update godoc
//
//	@Summary	Replace an album
//	@Tags		albums
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int						true	"Album ID"
//	@Param		request	body		request.AlbumRequest	true	"Album"
//	@Success	200		{object}	response.AlbumResponse
//	@Failure	400		{object}	httputil.ErrorResponse
//	@Security	BearerAuth
//	@Router		/albums/{id} [put]
func (h *AlbumHandler) Update(c *gin.Context) {
	var req request.AlbumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}
	id, err := bodyID(c, entityAlbum, req.ID)
	if err != nil {
		fail(c, h.alerts, err)
		return
	}

	a, err := h.albumSvc.Update(c.Request.Context(), album.UpdateInput{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Created:     req.Created,
		UserID:      req.UserID(),
	})
	if err != nil {
		fail(c, h.alerts, mapWriteError(err, entityAlbum))
		return
	}

	h.alerts.Updated(c, entityAlbum, strconv.FormatInt(id, 10))
	httputil.OK(c, response.AlbumFromEntity(a))
}

// Patch godoc
//
//	@Summary	Partially update an album
//	@Tags		albums
//	@Accept		json
//	@Accept		application/merge-patch+json
//	@Produce	json
//	@Param		id		path		int							true	"Album ID"
//	@Param		request	body		request.PatchAlbumRequest	true	"Fields to change"
//	@Success	200		{object}	response.AlbumResponse
//	@Failure	400		{object}	httputil.ErrorResponse
//	@Security	BearerAuth
//	@Router		/albums/{id} [patch]
func (h *AlbumHandler) Patch(c *gin.Context) {
	var req request.PatchAlbumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}
	id, err := bodyID(c, entityAlbum, req.ID)
	if err != nil {
		fail(c, h.alerts, err)
		return
	}

	a, err := h.albumSvc.Patch(c.Request.Context(), album.PatchInput{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Created:     req.Created,
		UserID:      req.UserID(),
	})
	if err != nil {
		fail(c, h.alerts, mapWriteError(err, entityAlbum))
		return
	}

	h.alerts.Updated(c, entityAlbum, strconv.FormatInt(id, 10))
	httputil.OK(c, response.AlbumFromEntity(a))
}

// List godoc
//
//	@Summary		List albums
//	@Description	Paged list. filter=user-is-null or userId=<id> return the matching albums unpaged.
//	@Tags			albums
//	@Produce		json
//	@Param			page		query		int		false	"Zero-based page"
//	@Param			size		query		int		false	"Page size"
//	@Param			sort		query		string	false	"property,asc|desc"
//	@Param			eagerload	query		bool	false	"Load relationships"
//	@Param			filter		query		string	false	"user-is-null"
//	@Param			userId		query		string	false	"Owner id"
//	@Success		200			{array}		response.AlbumResponse
//	@Security		BearerAuth
//	@Router			/albums [get]
func (h *AlbumHandler) List(c *gin.Context) {
	req, page, err := listRequest(c)
	if err != nil {
		fail(c, h.alerts, err)
		return
	}

	if userID, ok := c.GetQuery("userId"); ok || req.Filter == filterUserIsNull {
		var owner *string
		if ok {
			owner = &userID
		}
		albums, err := h.albumSvc.ListByUser(c.Request.Context(), owner)
		if err != nil {
			fail(c, h.alerts, mapError(err, entityAlbum))
			return
		}
		httputil.OK(c, response.AlbumsFromEntities(albums))
		return
	}

	albums, info, err := h.albumSvc.List(c.Request.Context(), page, req.EagerLoad)
	if err != nil {
		fail(c, h.alerts, mapError(err, entityAlbum))
		return
	}

	httputil.Page(c, info, response.AlbumsFromEntities(albums))
}

// Get godoc
//
//	@Summary	Get an album
//	@Tags		albums
//	@Produce	json
//	@Param		id	path		int	true	"Album ID"
//	@Success	200	{object}	response.AlbumResponse
//	@Failure	404	{object}	httputil.ErrorResponse
//	@Security	BearerAuth
//	@Router		/albums/{id} [get]
func (h *AlbumHandler) Get(c *gin.Context) {
	id, err := pathID(c, entityAlbum)
	if err != nil {
		fail(c, h.alerts, err)
		return
	}

	a, err := h.albumSvc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, h.alerts, mapError(err, entityAlbum))
		return
	}

	httputil.OK(c, response.AlbumFromEntity(a))
}

// Photos godoc
//
//	@Summary	List the photos of an album
//	@Tags		albums
//	@Produce	json
//	@Param		id	path	int	true	"Album ID"
//	@Success	200	{array}	response.PhotoResponse
//	@Security	BearerAuth
//	@Router		/albums/{id}/photos [get]
func (h *AlbumHandler) Photos(c *gin.Context) {
	id, err := pathID(c, entityAlbum)
	if err != nil {
		fail(c, h.alerts, err)
		return
	}

	photos, err := h.photoSvc.ListByAlbum(c.Request.Context(), &id)
	if err != nil {
		fail(c, h.alerts, mapError(err, entityPhoto))
		return
	}

	httputil.OK(c, response.PhotosFromEntities(photos))
}

// Delete godoc
//
//	@Summary	Delete an album
//	@Tags		albums
//	@Param		id	path	int	true	"Album ID"
//	@Success	204
//	@Failure	404	{object}	httputil.ErrorResponse
//	@Failure	409	{object}	httputil.ErrorResponse	"Album still holds photos"
//	@Security	BearerAuth
//	@Router		/albums/{id} [delete]
func (h *AlbumHandler) Delete(c *gin.Context) {
	id, err := pathID(c, entityAlbum)
	if err != nil {
		fail(c, h.alerts, err)
		return
	}

	if err := h.albumSvc.Delete(c.Request.Context(), id); err != nil {
		fail(c, h.alerts, mapError(err, entityAlbum))
		return
	}

	h.alerts.Deleted(c, entityAlbum, strconv.FormatInt(id, 10))
	httputil.NoContent(c)
}
