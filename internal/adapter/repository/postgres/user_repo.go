package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marcos-nsantos/flickr2-backend/internal/domain"
	"github.com/marcos-nsantos/flickr2-backend/internal/domain/entity"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/pagination"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func userSelect(criteria ...Condition) selectQuery {
	return selectQuery{from: userTable, prefix: "e", criteria: criteria}
}

// Upsert inserts the user or refreshes the profile columns of an existing
// row; created_date is kept from the first insert.
func (r *UserRepo) Upsert(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO jhi_user (id, login, first_name, last_name, email, image_url, activated, lang_key, created_date, last_modified_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id)
		DO UPDATE SET
			login = EXCLUDED.login,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			email = EXCLUDED.email,
			image_url = EXCLUDED.image_url,
			activated = EXCLUDED.activated,
			lang_key = EXCLUDED.lang_key,
			last_modified_date = EXCLUDED.last_modified_date
		RETURNING created_date
	`
	err := r.pool.QueryRow(ctx, query,
		user.ID, user.Login, user.FirstName, user.LastName, user.Email,
		user.ImageURL, user.Activated, user.LangKey, user.CreatedDate, user.LastModifiedDate,
	).Scan(&user.CreatedDate)
	if err != nil {
		return wrapError("upserting user", err)
	}
	return nil
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	users, err := r.find(ctx, userSelect(Eq("id", id)))
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, domain.ErrUserNotFound
	}
	return &users[0], nil
}

func (r *UserRepo) FindAll(ctx context.Context, page *pagination.Pageable) ([]entity.User, error) {
	q := userSelect()
	q.page = page
	return r.find(ctx, q)
}

func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.pool, userSelect())
}

func (r *UserRepo) find(ctx context.Context, q selectQuery) ([]entity.User, error) {
	rows, err := fetchRows(ctx, r.pool, q)
	if err != nil {
		return nil, err
	}
	users := make([]entity.User, 0, len(rows))
	for _, row := range rows {
		u, err := mapUser(row, "e")
		if err != nil {
			return nil, fmt.Errorf("mapping user: %w", err)
		}
		users = append(users, *u)
	}
	return users, nil
}
