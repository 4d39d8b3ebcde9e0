package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marcos-nsantos/flickr2-backend/internal/domain"
	"github.com/marcos-nsantos/flickr2-backend/internal/domain/entity"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/pagination"
)

type PhotoRepo struct {
	pool *pgxpool.Pool
}

func NewPhotoRepo(pool *pgxpool.Pool) *PhotoRepo {
	return &PhotoRepo{pool: pool}
}

func photoSelect(criteria ...Condition) selectQuery {
	return selectQuery{
		from:   photoTable,
		prefix: "e",
		join: &join{
			table:  albumTable.As("album"),
			prefix: "album",
			fk:     "album_id",
		},
		criteria: criteria,
	}
}

func (r *PhotoRepo) FindByID(ctx context.Context, id int64) (*entity.Photo, error) {
	photos, err := r.find(ctx, photoSelect(Eq("id", id)))
	if err != nil {
		return nil, err
	}
	if len(photos) == 0 {
		return nil, domain.ErrPhotoNotFound
	}
	return &photos[0], nil
}

func (r *PhotoRepo) FindAll(ctx context.Context, page *pagination.Pageable) ([]entity.Photo, error) {
	q := photoSelect()
	q.page = page
	return r.find(ctx, q)
}

// FindAllWithEagerRelationships runs the same joined query as FindAll; tags
// are always loaded.
func (r *PhotoRepo) FindAllWithEagerRelationships(ctx context.Context, page *pagination.Pageable) ([]entity.Photo, error) {
	return r.FindAll(ctx, page)
}

func (r *PhotoRepo) FindByAlbum(ctx context.Context, albumID int64) ([]entity.Photo, error) {
	return r.find(ctx, photoSelect(Eq("album_id", albumID)))
}

func (r *PhotoRepo) FindAllWhereAlbumIsNull(ctx context.Context) ([]entity.Photo, error) {
	return r.find(ctx, photoSelect(IsNull("album_id")))
}

func (r *PhotoRepo) FindByTag(ctx context.Context, tagID int64) ([]entity.Photo, error) {
	return r.find(ctx, photoSelect(LinkedTo(photoTagLink, tagID)))
}

func (r *PhotoRepo) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.pool, photoSelect())
}

func (r *PhotoRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.pool, photoTable, id)
}

// Save writes the photo row and replaces its tag links in one transaction.
func (r *PhotoRepo) Save(ctx context.Context, photo *entity.Photo) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if photo.IsNew() {
			query := `
				INSERT INTO photo (title, description, image, image_content_type, height, width, taken, uploaded, album_id)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				RETURNING id
			`
			err := tx.QueryRow(ctx, query,
				photo.Title, photo.Description, photo.Image, photo.ImageContentType,
				photo.Height, photo.Width, photo.Taken, photo.Uploaded, photo.AlbumID,
			).Scan(&photo.ID)
			if err != nil {
				return wrapError("inserting photo", err)
			}
		} else {
			query := `
				UPDATE photo
				SET title = $2, description = $3, image = $4, image_content_type = $5,
					height = $6, width = $7, taken = $8, uploaded = $9, album_id = $10
				WHERE id = $1
			`
			result, err := tx.Exec(ctx, query,
				photo.ID, photo.Title, photo.Description, photo.Image, photo.ImageContentType,
				photo.Height, photo.Width, photo.Taken, photo.Uploaded, photo.AlbumID,
			)
			if err != nil {
				return wrapError("updating photo", err)
			}
			if result.RowsAffected() == 0 {
				return domain.ErrPhotoNotFound
			}
		}

		return replaceLinks(ctx, tx, photoTagLink, photo.ID, photo.TagIDs())
	})
}

// DeleteByID removes the photo's tag links before the photo row.
func (r *PhotoRepo) DeleteByID(ctx context.Context, id int64) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := deleteLinks(ctx, tx, photoTagLink, id); err != nil {
			return err
		}
		result, err := tx.Exec(ctx, `DELETE FROM photo WHERE id = $1`, id)
		if err != nil {
			return wrapError("deleting photo", err)
		}
		if result.RowsAffected() == 0 {
			return domain.ErrPhotoNotFound
		}
		return nil
	})
}

func (r *PhotoRepo) find(ctx context.Context, q selectQuery) ([]entity.Photo, error) {
	rows, err := fetchRows(ctx, r.pool, q)
	if err != nil {
		return nil, err
	}

	photos := make([]entity.Photo, 0, len(rows))
	for _, row := range rows {
		p, err := photoWithAlbum(row)
		if err != nil {
			return nil, err
		}
		photos = append(photos, *p)
	}

	if err := r.loadTags(ctx, photos); err != nil {
		return nil, err
	}
	return photos, nil
}

func (r *PhotoRepo) loadTags(ctx context.Context, photos []entity.Photo) error {
	if len(photos) == 0 {
		return nil
	}

	ids := make([]int64, len(photos))
	index := make(map[int64]int, len(photos))
	for i, p := range photos {
		ids[i] = p.ID
		index[p.ID] = i
	}

	query := `
		SELECT l.photo_id AS link_photo_id, t.id AS e_id, t.name AS e_name
		FROM rel_photo__tag l
		JOIN tag t ON t.id = l.tag_id
		WHERE l.photo_id = ANY($1)
		ORDER BY t.id
	`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("querying photo tags: %w", err)
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return fmt.Errorf("scanning photo tags: %w", err)
	}

	for _, m := range maps {
		row := Row(m)
		photoID := newRowReader(row, "link").int64("photo_id")
		t, err := mapTag(row, "e")
		if err != nil {
			return fmt.Errorf("mapping photo tag: %w", err)
		}
		if i, ok := index[photoID]; ok {
			photos[i].Tags = append(photos[i].Tags, *t)
		}
	}
	return nil
}

func photoWithAlbum(row Row) (*entity.Photo, error) {
	p, err := mapPhoto(row, "e")
	if err != nil {
		return nil, fmt.Errorf("mapping photo: %w", err)
	}
	a, err := mapAlbum(row, "album")
	if err != nil {
		return nil, fmt.Errorf("mapping photo album: %w", err)
	}
	if a.ID != 0 {
		p.Album = a
	}
	return p, nil
}
