package photo

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/marcos-nsantos/flickr2-backend/internal/adapter/repository"
	"github.com/marcos-nsantos/flickr2-backend/internal/adapter/storage"
	"github.com/marcos-nsantos/flickr2-backend/internal/domain"
	"github.com/marcos-nsantos/flickr2-backend/internal/domain/entity"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/pagination"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/patch"
)

const (
	DefaultThumbnailSize = 256
	MaxThumbnailSize     = 1024
)

type Service struct {
	photoRepo     repository.PhotoRepository
	images        storage.ImageProcessor
	mirror        storage.ImageStorage
	presignExpiry time.Duration
	logger        *zap.Logger
}

type Option func(*Service)

// WithMirror copies every stored image into blob storage and serves image
// reads through presigned URLs.
func WithMirror(mirror storage.ImageStorage, presignExpiry time.Duration) Option {
	return func(s *Service) {
		s.mirror = mirror
		s.presignExpiry = presignExpiry
	}
}

func NewService(photoRepo repository.PhotoRepository, images storage.ImageProcessor, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		photoRepo: photoRepo,
		images:    images,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func ObjectKey(photoID int64) string {
	return "photos/" + strconv.FormatInt(photoID, 10)
}

type CreateInput struct {
	Title            string
	Description      *string
	Image            []byte
	ImageContentType *string
	Height           *int
	Width            *int
	Taken            *time.Time
	Uploaded         *time.Time
	AlbumID          *int64
	TagIDs           []int64
}

func (in CreateInput) photo() *entity.Photo {
	p := entity.NewPhoto(in.Title)
	p.Description = in.Description
	p.Image = in.Image
	p.ImageContentType = in.ImageContentType
	p.Height = in.Height
	p.Width = in.Width
	p.Taken = in.Taken
	p.Uploaded = in.Uploaded
	p.AlbumID = in.AlbumID
	p.Tags = tagRefs(in.TagIDs)
	return p
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*entity.Photo, error) {
	p := input.photo()
	if err := validate(p); err != nil {
		return nil, err
	}
	s.fillDimensions(p)

	if err := s.photoRepo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("creating photo: %w", err)
	}
	s.syncMirror(ctx, p)

	return s.photoRepo.FindByID(ctx, p.ID)
}

type UpdateInput struct {
	ID int64
	CreateInput
}

func (s *Service) Update(ctx context.Context, input UpdateInput) (*entity.Photo, error) {
	p := input.photo()
	p.ID = input.ID
	if err := validate(p); err != nil {
		return nil, err
	}

	ok, err := s.photoRepo.ExistsByID(ctx, input.ID)
	if err != nil {
		return nil, fmt.Errorf("checking photo: %w", err)
	}
	if !ok {
		return nil, domain.ErrPhotoNotFound
	}

	s.fillDimensions(p)
	if err := s.photoRepo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("updating photo: %w", err)
	}
	s.syncMirror(ctx, p)

	return s.photoRepo.FindByID(ctx, p.ID)
}

// PatchInput carries only the fields present in the request. Tags are kept
// unless the request lists them.
type PatchInput struct {
	ID               int64
	Title            patch.Field[string]
	Description      patch.Field[string]
	Image            patch.Field[[]byte]
	ImageContentType patch.Field[string]
	Height           patch.Field[int]
	Width            patch.Field[int]
	Taken            patch.Field[time.Time]
	Uploaded         patch.Field[time.Time]
	AlbumID          patch.Field[int64]
	TagIDs           patch.Field[[]int64]
}

func (s *Service) Patch(ctx context.Context, input PatchInput) (*entity.Photo, error) {
	if input.Title.IsNull() || (input.Title.Value != nil && strings.TrimSpace(*input.Title.Value) == "") {
		return nil, domain.ErrTitleRequired
	}

	p, err := s.photoRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	input.Title.ApplyValue(&p.Title)
	input.Description.Apply(&p.Description)
	if input.Image.Set {
		p.Image = nil
		input.Image.ApplyValue(&p.Image)
		if !input.Height.Set && !input.Width.Set {
			p.Height, p.Width = nil, nil
		}
	}
	input.ImageContentType.Apply(&p.ImageContentType)
	input.Height.Apply(&p.Height)
	input.Width.Apply(&p.Width)
	input.Taken.Apply(&p.Taken)
	input.Uploaded.Apply(&p.Uploaded)
	input.AlbumID.Apply(&p.AlbumID)
	if input.TagIDs.Set {
		var ids []int64
		input.TagIDs.ApplyValue(&ids)
		p.Tags = tagRefs(ids)
	}

	if err := validate(p); err != nil {
		return nil, err
	}
	s.fillDimensions(p)

	if err := s.photoRepo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("patching photo: %w", err)
	}
	if input.Image.Set {
		s.syncMirror(ctx, p)
	}

	return s.photoRepo.FindByID(ctx, p.ID)
}

func (s *Service) Get(ctx context.Context, id int64) (*entity.Photo, error) {
	return s.photoRepo.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context, page pagination.Pageable, eager bool) ([]entity.Photo, *pagination.Info, error) {
	total, err := s.photoRepo.Count(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("counting photos: %w", err)
	}

	var photos []entity.Photo
	if eager {
		photos, err = s.photoRepo.FindAllWithEagerRelationships(ctx, &page)
	} else {
		photos, err = s.photoRepo.FindAll(ctx, &page)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("listing photos: %w", err)
	}

	return photos, pagination.NewInfo(page.Page, page.Size, total), nil
}

// ListByAlbum returns the photos of albumID, or the photos outside any album
// when albumID is nil.
func (s *Service) ListByAlbum(ctx context.Context, albumID *int64) ([]entity.Photo, error) {
	var (
		photos []entity.Photo
		err    error
	)
	if albumID == nil {
		photos, err = s.photoRepo.FindAllWhereAlbumIsNull(ctx)
	} else {
		photos, err = s.photoRepo.FindByAlbum(ctx, *albumID)
	}
	if err != nil {
		return nil, fmt.Errorf("listing photos by album: %w", err)
	}
	return photos, nil
}

func (s *Service) ListByTag(ctx context.Context, tagID int64) ([]entity.Photo, error) {
	photos, err := s.photoRepo.FindByTag(ctx, tagID)
	if err != nil {
		return nil, fmt.Errorf("listing photos by tag: %w", err)
	}
	return photos, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.photoRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("deleting photo: %w", err)
	}
	if s.mirror != nil {
		if err := s.mirror.Delete(ctx, ObjectKey(id)); err != nil {
			s.logger.Warn("failed to delete mirrored image", zap.Int64("photo_id", id), zap.Error(err))
		}
	}
	return nil
}

// ImageResult is either the raw payload or a URL the client is redirected to.
type ImageResult struct {
	Data        []byte
	ContentType string
	RedirectURL string
}

func (s *Service) Image(ctx context.Context, id int64) (*ImageResult, error) {
	p, err := s.photoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.HasImage() {
		return nil, domain.ErrImageNotFound
	}

	if s.mirror != nil {
		url, err := s.mirror.PresignGet(ctx, ObjectKey(id), s.presignExpiry)
		if err == nil {
			return &ImageResult{RedirectURL: url}, nil
		}
		s.logger.Warn("failed to presign mirrored image", zap.Int64("photo_id", id), zap.Error(err))
	}

	return &ImageResult{Data: p.Image, ContentType: contentType(p)}, nil
}

func (s *Service) Thumbnail(ctx context.Context, id int64, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultThumbnailSize
	}
	size = min(size, MaxThumbnailSize)

	p, err := s.photoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.HasImage() {
		return nil, domain.ErrImageNotFound
	}

	thumb, err := s.images.Thumbnail(p.Image, size, size)
	if err != nil {
		return nil, fmt.Errorf("rendering thumbnail: %w", err)
	}
	return thumb, nil
}

func (s *Service) fillDimensions(p *entity.Photo) {
	if !p.HasImage() || (p.Height != nil && p.Width != nil) {
		return
	}
	w, h, err := s.images.Dimensions(p.Image)
	if err != nil {
		s.logger.Debug("image dimensions unavailable", zap.Int64("photo_id", p.ID), zap.Error(err))
		return
	}
	if p.Width == nil {
		p.Width = &w
	}
	if p.Height == nil {
		p.Height = &h
	}
}

// syncMirror never fails the request; the database row is the source of truth.
func (s *Service) syncMirror(ctx context.Context, p *entity.Photo) {
	if s.mirror == nil {
		return
	}

	var err error
	if p.HasImage() {
		err = s.mirror.Put(ctx, ObjectKey(p.ID), p.Image, contentType(p))
	} else {
		err = s.mirror.Delete(ctx, ObjectKey(p.ID))
	}
	if err != nil {
		s.logger.Warn("failed to mirror image", zap.Int64("photo_id", p.ID), zap.Error(err))
	}
}

func validate(p *entity.Photo) error {
	if strings.TrimSpace(p.Title) == "" {
		return domain.ErrTitleRequired
	}
	if p.HasImage() && (p.ImageContentType == nil || *p.ImageContentType == "") {
		return domain.ErrContentTypeRequired
	}
	return nil
}

func contentType(p *entity.Photo) string {
	if p.ImageContentType != nil {
		return *p.ImageContentType
	}
	return "application/octet-stream"
}

func tagRefs(ids []int64) []entity.Tag {
	tags := make([]entity.Tag, 0, len(ids))
	for _, id := range ids {
		tags = append(tags, entity.Tag{ID: id})
	}
	return tags
}
