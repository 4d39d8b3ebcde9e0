package domain

import "errors"

var (
	ErrAlbumNotFound       = errors.New("album not found")
	ErrPhotoNotFound       = errors.New("photo not found")
	ErrTagNotFound         = errors.New("tag not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrImageNotFound       = errors.New("image not found")
	ErrInvalidQuery        = errors.New("invalid query")
	ErrIntegrityViolation  = errors.New("integrity violation")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrTokenInvalid        = errors.New("token invalid")
	ErrUnsupportedImage    = errors.New("unsupported image format")
	ErrTitleRequired       = errors.New("title is required")
	ErrNameRequired        = errors.New("name is required")
	ErrContentTypeRequired = errors.New("image content type is required")
)
