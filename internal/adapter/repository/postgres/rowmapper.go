package postgres

import (
	"errors"
	"fmt"
	"time"

	"github.com/marcos-nsantos/flickr2-backend/internal/domain/entity"
)

var ErrMissingColumn = errors.New("missing column in result row")

// Row is one result row keyed by column label, as produced by pgx.RowToMap.
type Row map[string]any

// rowReader reads prefixed columns and keeps the first failure; reads after
// it return zero values.
type rowReader struct {
	row    Row
	prefix string
	err    error
}

func newRowReader(row Row, prefix string) *rowReader {
	return &rowReader{row: row, prefix: prefix}
}

func (r *rowReader) value(col string) any {
	if r.err != nil {
		return nil
	}
	key := r.prefix + "_" + col
	v, ok := r.row[key]
	if !ok {
		r.err = fmt.Errorf("%w: %s", ErrMissingColumn, key)
		return nil
	}
	return v
}

func (r *rowReader) fail(col string, v any) {
	if r.err == nil {
		r.err = fmt.Errorf("column %s_%s: unexpected type %T", r.prefix, col, v)
	}
}

func (r *rowReader) int64Ptr(col string) *int64 {
	switch v := r.value(col).(type) {
	case nil:
		return nil
	case int64:
		return &v
	case int32:
		n := int64(v)
		return &n
	case int16:
		n := int64(v)
		return &n
	default:
		r.fail(col, v)
		return nil
	}
}

func (r *rowReader) int64(col string) int64 {
	if p := r.int64Ptr(col); p != nil {
		return *p
	}
	return 0
}

func (r *rowReader) intPtr(col string) *int {
	p := r.int64Ptr(col)
	if p == nil {
		return nil
	}
	n := int(*p)
	return &n
}

func (r *rowReader) stringPtr(col string) *string {
	switch v := r.value(col).(type) {
	case nil:
		return nil
	case string:
		return &v
	default:
		r.fail(col, v)
		return nil
	}
}

func (r *rowReader) string(col string) string {
	if p := r.stringPtr(col); p != nil {
		return *p
	}
	return ""
}

func (r *rowReader) bool(col string) bool {
	switch v := r.value(col).(type) {
	case nil:
		return false
	case bool:
		return v
	default:
		r.fail(col, v)
		return false
	}
}

func (r *rowReader) bytes(col string) []byte {
	switch v := r.value(col).(type) {
	case nil:
		return nil
	case []byte:
		return v
	default:
		r.fail(col, v)
		return nil
	}
}

func (r *rowReader) timePtr(col string) *time.Time {
	switch v := r.value(col).(type) {
	case nil:
		return nil
	case time.Time:
		return &v
	default:
		r.fail(col, v)
		return nil
	}
}

func mapUser(row Row, prefix string) (*entity.User, error) {
	r := newRowReader(row, prefix)
	u := &entity.User{
		ID:               r.string("id"),
		Login:            r.string("login"),
		FirstName:        r.stringPtr("first_name"),
		LastName:         r.stringPtr("last_name"),
		Email:            r.stringPtr("email"),
		ImageURL:         r.stringPtr("image_url"),
		Activated:        r.bool("activated"),
		LangKey:          r.stringPtr("lang_key"),
		CreatedDate:      r.timePtr("created_date"),
		LastModifiedDate: r.timePtr("last_modified_date"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return u, nil
}

func mapAlbum(row Row, prefix string) (*entity.Album, error) {
	r := newRowReader(row, prefix)
	a := &entity.Album{
		ID:          r.int64("id"),
		Title:       r.string("title"),
		Description: r.stringPtr("description"),
		Created:     r.timePtr("created"),
		UserID:      r.stringPtr("user_id"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return a, nil
}

func mapPhoto(row Row, prefix string) (*entity.Photo, error) {
	r := newRowReader(row, prefix)
	p := &entity.Photo{
		ID:               r.int64("id"),
		Title:            r.string("title"),
		Description:      r.stringPtr("description"),
		Image:            r.bytes("image"),
		ImageContentType: r.stringPtr("image_content_type"),
		Height:           r.intPtr("height"),
		Width:            r.intPtr("width"),
		Taken:            r.timePtr("taken"),
		Uploaded:         r.timePtr("uploaded"),
		AlbumID:          r.int64Ptr("album_id"),
		Tags:             []entity.Tag{},
	}
	if r.err != nil {
		return nil, r.err
	}
	return p, nil
}

func mapTag(row Row, prefix string) (*entity.Tag, error) {
	r := newRowReader(row, prefix)
	t := &entity.Tag{
		ID:   r.int64("id"),
		Name: r.string("name"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return t, nil
}
