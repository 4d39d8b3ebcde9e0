package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/marcos-nsantos/flickr2-backend/internal/adapter/handler/dto/request"
	"github.com/marcos-nsantos/flickr2-backend/internal/adapter/handler/dto/response"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/apperror"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/httputil"
)

type TagHandler struct {
	tagSvc   TagService
	photoSvc PhotoService
	alerts   httputil.Alerts
}

func NewTagHandler(tagSvc TagService, photoSvc PhotoService, alerts httputil.Alerts) *TagHandler {
	return &TagHandler{tagSvc: tagSvc, photoSvc: photoSvc, alerts: alerts}
}

// Create godoc
//
//	@Summary	Create a tag
//	@Tags		tags
//	@Accept		json
//	@Produce	json
//	@Param		request	body		request.TagRequest	true	"Tag"
//	@Success	201		{object}	response.TagResponse
//	@Failure	400		{object}	httputil.ErrorResponse
//	@Security	BearerAuth
//	@Router		/tags [post]
func (h *TagHandler) Create(c *gin.Context) {
	var req request.TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}
	if req.ID != nil {
		fail(c, h.alerts, apperror.BadRequestAlert("A new tag cannot already have an ID", entityTag, "idexists"))
		return
	}

	t, err := h.tagSvc.Create(c.Request.Context(), req.Name)
	if err != nil {
		fail(c, h.alerts, mapError(err, entityTag))
		return
	}

	id := strconv.FormatInt(t.ID, 10)
	h.alerts.Created(c, entityTag, id)
	httputil.Created(c, "/api/tags/"+id, response.TagFromEntity(t))
}

// Update godoc
//
//	@Summary	Rename a tag
//	@Tags		tags
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int					true	"Tag ID"
//	@Param		request	body		request.TagRequest	true	"Tag"
//	@Success	200		{object}	response.TagResponse
//	@Failure	400		{object}	httputil.ErrorResponse
//	@Security	BearerAuth
//	@Router		/tags/{id} [put]
func (h *TagHandler) Update(c *gin.Context) {
	var req request.TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}
	id, err := bodyID(c, entityTag, req.ID)
	if err != nil {
		fail(c, h.alerts, err)
		return
	}

	t, err := h.tagSvc.Update(c.Request.Context(), id, req.Name)
	if err != nil {
		fail(c, h.alerts, mapWriteError(err, entityTag))
		return
	}

	h.alerts.Updated(c, entityTag, strconv.FormatInt(id, 10))
	httputil.OK(c, response.TagFromEntity(t))
}

// Patch godoc
//
//	@Summary	Partially update a tag
//	@Tags		tags
//	@Accept		json
//	@Accept		application/merge-patch+json
//	@Produce	json
//	@Param		id		path		int						true	"Tag ID"
//	@Param		request	body		request.PatchTagRequest	true	"Fields to change"
//	@Success	200		{object}	response.TagResponse
//	@Failure	400		{object}	httputil.ErrorResponse
//	@Security	BearerAuth
//	@Router		/tags/{id} [patch]
func (h *TagHandler) Patch(c *gin.Context) {
	var req request.PatchTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}
	id, err := bodyID(c, entityTag, req.ID)
	if err != nil {
		fail(c, h.alerts, err)
		return
	}

	t, err := h.tagSvc.Patch(c.Request.Context(), id, req.Name)
	if err != nil {
		fail(c, h.alerts, mapWriteError(err, entityTag))
		return
	}

	h.alerts.Updated(c, entityTag, strconv.FormatInt(id, 10))
	httputil.OK(c, response.TagFromEntity(t))
}

// List godoc
//
//	@Summary	List tags
//	@Tags		tags
//	@Produce	json
//	@Param		page	query	int		false	"Zero-based page"
//	@Param		size	query	int		false	"Page size"
//	@Param		sort	query	string	false	"property,asc|desc"
//	@Success	200		{array}	response.TagResponse
//	@Security	BearerAuth
//	@Router		/tags [get]
func (h *TagHandler) List(c *gin.Context) {
	_, page, err := listRequest(c)
	if err != nil {
		fail(c, h.alerts, err)
		return
	}

	tags, info, err := h.tagSvc.List(c.Request.Context(), page)
	if err != nil {
		fail(c, h.alerts, mapError(err, entityTag))
		return
	}

	httputil.Page(c, info, response.TagsFromEntities(tags))
}

// Get godoc
//
//	@Summary	Get a tag
//	@Tags		tags
//	@Produce	json
//	@Param		id	path		int	true	"Tag ID"
//	@Success	200	{object}	response.TagResponse
//	@Failure	404	{object}	httputil.ErrorResponse
//	@Security	BearerAuth
//	@Router		/tags/{id} [get]
func (h *TagHandler) Get(c *gin.Context) {
	id, err := pathID(c, entityTag)
	if err != nil {
		fail(c, h.alerts, err)
		return
	}

	t, err := h.tagSvc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, h.alerts, mapError(err, entityTag))
		return
	}

	httputil.OK(c, response.TagFromEntity(t))
}

// Photos godoc
//
//	@Summary	List the photos carrying a tag
//	@Tags		tags
//	@Produce	json
//	@Param		id	path	int	true	"Tag ID"
//	@Success	200	{array}	response.PhotoResponse
//	@Security	BearerAuth
//	@Router		/tags/{id}/photos [get]
func (h *TagHandler) Photos(c *gin.Context) {
	id, err := pathID(c, entityTag)
	if err != nil {
		fail(c, h.alerts, err)
		return
	}

	photos, err := h.photoSvc.ListByTag(c.Request.Context(), id)
	if err != nil {
		fail(c, h.alerts, mapError(err, entityPhoto))
		return
	}

	httputil.OK(c, response.PhotosFromEntities(photos))
}

// Delete godoc
//
//	@Summary	Delete a tag
//	@Tags		tags
//	@Param		id	path	int	true	"Tag ID"
//	@Success	204
//	@Failure	404	{object}	httputil.ErrorResponse
//	@Failure	409	{object}	httputil.ErrorResponse	"Tag still linked to photos"
//	@Security	BearerAuth
//	@Router		/tags/{id} [delete]
func (h *TagHandler) Delete(c *gin.Context) {
	id, err := pathID(c, entityTag)
	if err != nil {
		fail(c, h.alerts, err)
		return
	}

	if err := h.tagSvc.Delete(c.Request.Context(), id); err != nil {
		fail(c, h.alerts, mapError(err, entityTag))
		return
	}

	h.alerts.Deleted(c, entityTag, strconv.FormatInt(id, 10))
	httputil.NoContent(c)
}
