package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marcos-nsantos/flickr2-backend/internal/domain"
	"github.com/marcos-nsantos/flickr2-backend/internal/domain/entity"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/pagination"
)

type TagRepo struct {
	pool *pgxpool.Pool
}

func NewTagRepo(pool *pgxpool.Pool) *TagRepo {
	return &TagRepo{pool: pool}
}

func tagSelect(criteria ...Condition) selectQuery {
	return selectQuery{from: tagTable, prefix: "e", criteria: criteria}
}

func (r *TagRepo) FindByID(ctx context.Context, id int64) (*entity.Tag, error) {
	tags, err := r.find(ctx, tagSelect(Eq("id", id)))
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, domain.ErrTagNotFound
	}
	return &tags[0], nil
}

func (r *TagRepo) FindAll(ctx context.Context, page *pagination.Pageable) ([]entity.Tag, error) {
	q := tagSelect()
	q.page = page
	return r.find(ctx, q)
}

func (r *TagRepo) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.pool, tagSelect())
}

func (r *TagRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.pool, tagTable, id)
}

func (r *TagRepo) Save(ctx context.Context, tag *entity.Tag) error {
	if tag.ID == 0 {
		err := r.pool.QueryRow(ctx, `INSERT INTO tag (name) VALUES ($1) RETURNING id`, tag.Name).Scan(&tag.ID)
		if err != nil {
			return wrapError("inserting tag", err)
		}
		return nil
	}

	result, err := r.pool.Exec(ctx, `UPDATE tag SET name = $2 WHERE id = $1`, tag.ID, tag.Name)
	if err != nil {
		return wrapError("updating tag", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrTagNotFound
	}
	return nil
}

// DeleteByID fails with ErrIntegrityViolation while photos still link the tag.
func (r *TagRepo) DeleteByID(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM tag WHERE id = $1`, id)
	if err != nil {
		return wrapError("deleting tag", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrTagNotFound
	}
	return nil
}

func (r *TagRepo) find(ctx context.Context, q selectQuery) ([]entity.Tag, error) {
	rows, err := fetchRows(ctx, r.pool, q)
	if err != nil {
		return nil, err
	}
	tags := make([]entity.Tag, 0, len(rows))
	for _, row := range rows {
		t, err := mapTag(row, "e")
		if err != nil {
			return nil, fmt.Errorf("mapping tag: %w", err)
		}
		tags = append(tags, *t)
	}
	return tags, nil
}
