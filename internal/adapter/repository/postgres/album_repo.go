package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marcos-nsantos/flickr2-backend/internal/domain"
	"github.com/marcos-nsantos/flickr2-backend/internal/domain/entity"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/pagination"
)

type AlbumRepo struct {
	pool *pgxpool.Pool
}

func NewAlbumRepo(pool *pgxpool.Pool) *AlbumRepo {
	return &AlbumRepo{pool: pool}
}

func albumSelect(criteria ...Condition) selectQuery {
	return selectQuery{
		from:   albumTable,
		prefix: "e",
		join: &join{
			table:  userTable.As("e_user"),
			prefix: "user",
			fk:     "user_id",
		},
		criteria: criteria,
	}
}

func (r *AlbumRepo) FindByID(ctx context.Context, id int64) (*entity.Album, error) {
	albums, err := r.find(ctx, albumSelect(Eq("id", id)))
	if err != nil {
		return nil, err
	}
	if len(albums) == 0 {
		return nil, domain.ErrAlbumNotFound
	}
	return &albums[0], nil
}

func (r *AlbumRepo) FindAll(ctx context.Context, page *pagination.Pageable) ([]entity.Album, error) {
	q := albumSelect()
	q.page = page
	return r.find(ctx, q)
}

func (r *AlbumRepo) FindAllWithEagerRelationships(ctx context.Context, page *pagination.Pageable) ([]entity.Album, error) {
	return r.FindAll(ctx, page)
}

func (r *AlbumRepo) FindByUser(ctx context.Context, userID string) ([]entity.Album, error) {
	return r.find(ctx, albumSelect(Eq("user_id", userID)))
}

func (r *AlbumRepo) FindAllWhereUserIsNull(ctx context.Context) ([]entity.Album, error) {
	return r.find(ctx, albumSelect(IsNull("user_id")))
}

func (r *AlbumRepo) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.pool, albumSelect())
}

func (r *AlbumRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.pool, albumTable, id)
}

func (r *AlbumRepo) Save(ctx context.Context, album *entity.Album) error {
	if album.IsNew() {
		query := `
			INSERT INTO album (title, description, created, user_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`
		err := r.pool.QueryRow(ctx, query,
			album.Title, album.Description, album.Created, album.UserID,
		).Scan(&album.ID)
		if err != nil {
			return wrapError("inserting album", err)
		}
		return nil
	}

	query := `
		UPDATE album
		SET title = $2, description = $3, created = $4, user_id = $5
		WHERE id = $1
	`
	result, err := r.pool.Exec(ctx, query,
		album.ID, album.Title, album.Description, album.Created, album.UserID,
	)
	if err != nil {
		return wrapError("updating album", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrAlbumNotFound
	}
	return nil
}

func (r *AlbumRepo) DeleteByID(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM album WHERE id = $1`, id)
	if err != nil {
		return wrapError("deleting album", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrAlbumNotFound
	}
	return nil
}

func (r *AlbumRepo) find(ctx context.Context, q selectQuery) ([]entity.Album, error) {
	rows, err := fetchRows(ctx, r.pool, q)
	if err != nil {
		return nil, err
	}

	albums := make([]entity.Album, 0, len(rows))
	for _, row := range rows {
		a, err := albumWithUser(row)
		if err != nil {
			return nil, err
		}
		albums = append(albums, *a)
	}
	return albums, nil
}

func albumWithUser(row Row) (*entity.Album, error) {
	a, err := mapAlbum(row, "e")
	if err != nil {
		return nil, fmt.Errorf("mapping album: %w", err)
	}
	u, err := mapUser(row, "user")
	if err != nil {
		return nil, fmt.Errorf("mapping album user: %w", err)
	}
	if u.ID != "" {
		a.User = u
	}
	return a, nil
}
