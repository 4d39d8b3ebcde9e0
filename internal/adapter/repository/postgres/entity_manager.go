package postgres

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/marcos-nsantos/flickr2-backend/internal/domain"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/pagination"
)

// Condition is a WHERE predicate on the main table of a select.
type Condition interface {
	render(t Table, args *[]any) (string, error)
}

type eqCondition struct {
	column string
	value  any
}

func Eq(column string, value any) Condition {
	return eqCondition{column: column, value: value}
}

func (c eqCondition) render(t Table, args *[]any) (string, error) {
	col, ok := t.lookup(c.column)
	if !ok {
		return "", fmt.Errorf("%w: unknown column %q on %s", domain.ErrInvalidQuery, c.column, t.Name)
	}
	*args = append(*args, c.value)
	return fmt.Sprintf("%s = $%d", t.qualified(col), len(*args)), nil
}

type isNullCondition struct {
	column string
}

func IsNull(column string) Condition {
	return isNullCondition{column: column}
}

func (c isNullCondition) render(t Table, _ *[]any) (string, error) {
	col, ok := t.lookup(c.column)
	if !ok {
		return "", fmt.Errorf("%w: unknown column %q on %s", domain.ErrInvalidQuery, c.column, t.Name)
	}
	return t.qualified(col) + " IS NULL", nil
}

type linkedToCondition struct {
	link    LinkTable
	otherID int64
}

// LinkedTo matches rows that have a link-table row pointing at otherID.
func LinkedTo(link LinkTable, otherID int64) Condition {
	return linkedToCondition{link: link, otherID: otherID}
}

func (c linkedToCondition) render(t Table, args *[]any) (string, error) {
	*args = append(*args, c.otherID)
	return fmt.Sprintf("%s.id IN (SELECT %s FROM %s WHERE %s = $%d)",
		t.Alias, c.link.OwnerColumn, c.link.Name, c.link.OtherColumn, len(*args)), nil
}

// join is a LEFT OUTER JOIN of a parent table on main.fk = parent.id.
type join struct {
	table  Table
	prefix string
	fk     string
}

type selectQuery struct {
	from     Table
	prefix   string
	join     *join
	criteria []Condition
	page     *pagination.Pageable
}

func (q selectQuery) where(args *[]any) (string, error) {
	if len(q.criteria) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(q.criteria))
	for _, c := range q.criteria {
		s, err := c.render(q.from, args)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return " WHERE " + strings.Join(parts, " AND "), nil
}

func (q selectQuery) orderBy() (string, error) {
	if q.page == nil || len(q.page.Sort) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(q.page.Sort))
	for _, o := range q.page.Sort {
		col, ok := q.from.lookup(o.Property)
		if !ok {
			return "", fmt.Errorf("%w: cannot sort %s by %q", domain.ErrInvalidQuery, q.from.Name, o.Property)
		}
		dir := pagination.Asc
		if o.Direction == pagination.Desc {
			dir = pagination.Desc
		}
		parts = append(parts, fmt.Sprintf("%s %s", q.from.qualified(col), dir))
	}
	return " ORDER BY " + strings.Join(parts, ", "), nil
}

func (q selectQuery) validatePage() error {
	if q.page == nil {
		return nil
	}
	if q.page.Page < 0 || q.page.Size < 1 {
		return fmt.Errorf("%w: page %d size %d", domain.ErrInvalidQuery, q.page.Page, q.page.Size)
	}
	return nil
}

func (q selectQuery) build() (string, []any, error) {
	if err := q.validatePage(); err != nil {
		return "", nil, err
	}

	var cols []string
	for _, p := range Projections(q.from, q.prefix) {
		cols = append(cols, p.String())
	}
	if q.join != nil {
		for _, p := range Projections(q.join.table, q.join.prefix) {
			cols = append(cols, p.String())
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s %s", strings.Join(cols, ", "), q.from.Name, q.from.Alias)
	if q.join != nil {
		fmt.Fprintf(&sb, " LEFT OUTER JOIN %s %s ON %s.%s = %s.id",
			q.join.table.Name, q.join.table.Alias, q.from.Alias, q.join.fk, q.join.table.Alias)
	}

	var args []any
	where, err := q.where(&args)
	if err != nil {
		return "", nil, err
	}
	sb.WriteString(where)

	order, err := q.orderBy()
	if err != nil {
		return "", nil, err
	}
	sb.WriteString(order)

	if q.page != nil {
		args = append(args, q.page.Limit(), q.page.Offset())
		fmt.Fprintf(&sb, " LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	return sb.String(), args, nil
}

func (q selectQuery) buildCount() (string, []any, error) {
	var args []any
	where, err := q.where(&args)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("SELECT COUNT(*) FROM %s %s%s", q.from.Name, q.from.Alias, where), args, nil
}

func fetchRows(ctx context.Context, db querier, q selectQuery) ([]Row, error) {
	sql, args, err := q.build()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", q.from.Name, err)
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", q.from.Name, err)
	}
	out := make([]Row, len(maps))
	for i, m := range maps {
		out[i] = Row(m)
	}
	return out, nil
}

func count(ctx context.Context, db querier, q selectQuery) (int64, error) {
	sql, args, err := q.buildCount()
	if err != nil {
		return 0, err
	}
	var n int64
	if err := db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %s: %w", q.from.Name, err)
	}
	return n, nil
}

func exists(ctx context.Context, db querier, t Table, id any) (bool, error) {
	var ok bool
	sql := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE id = $1)", t.Name)
	if err := db.QueryRow(ctx, sql, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("checking %s existence: %w", t.Name, err)
	}
	return ok, nil
}

// LinkTable is a many-to-many join table keyed by (owner, other).
type LinkTable struct {
	Name        string
	OwnerColumn string
	OtherColumn string
}

// replaceLinks makes the owner's link rows exactly the distinct otherIDs.
func replaceLinks(ctx context.Context, db querier, link LinkTable, ownerID int64, otherIDs []int64) error {
	if err := deleteLinks(ctx, db, link, ownerID); err != nil {
		return err
	}

	ids := slices.Clone(otherIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)
	if len(ids) == 0 {
		return nil
	}

	sql := fmt.Sprintf("INSERT INTO %s (%s, %s) SELECT $1::bigint, unnest($2::bigint[])",
		link.Name, link.OwnerColumn, link.OtherColumn)
	if _, err := db.Exec(ctx, sql, ownerID, ids); err != nil {
		return wrapError("inserting "+link.Name, err)
	}
	return nil
}

func deleteLinks(ctx context.Context, db querier, link LinkTable, ownerID int64) error {
	sql := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", link.Name, link.OwnerColumn)
	if _, err := db.Exec(ctx, sql, ownerID); err != nil {
		return wrapError("deleting "+link.Name, err)
	}
	return nil
}
