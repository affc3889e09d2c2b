package repositories

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yigit/campusdesk/internal/app/models"
	"github.com/yigit/campusdesk/internal/pkg/apperrors"
	"github.com/yigit/campusdesk/internal/pkg/dberrors"
	"github.com/yigit/campusdesk/internal/pkg/helpers"
	"github.com/yigit/campusdesk/internal/pkg/logger"
	"github.com/yigit/campusdesk/internal/pkg/validation"
)

// DBTX is the query surface shared by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var baseColumns = []string{"id", "created_at", "updated_at"}

// TableSpec maps a model onto its table.
type TableSpec[T any] struct {
	Name string
	// Entity is the human readable name used in error messages.
	Entity string
	// Columns lists the writable columns in the order Fields returns them.
	Columns []string
	// Fields returns pointers to the model fields backing Columns. They are
	// used as scan destinations and, dereferenced, as insert and update values.
	Fields func(*T) []any
	// ForeignKeys are the only columns ListBy accepts.
	ForeignKeys []string
	OrderBy     string
}

// Table implements single-table CRUD for one model.
type Table[T any, P models.Pointer[T]] struct {
	db   DBTX
	sb   squirrel.StatementBuilderType
	spec TableSpec[T]
}

// NewTable creates a Table over db.
func NewTable[T any, P models.Pointer[T]](db DBTX, spec TableSpec[T]) *Table[T, P] {
	if spec.OrderBy == "" {
		spec.OrderBy = "id DESC"
	}
	if spec.Entity == "" {
		spec.Entity = spec.Name
	}
	return &Table[T, P]{
		db:   db,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		spec: spec,
	}
}

// WithTx returns a copy of the table bound to tx.
func (t *Table[T, P]) WithTx(tx DBTX) *Table[T, P] {
	clone := *t
	clone.db = tx
	return &clone
}

// Name returns the table name.
func (t *Table[T, P]) Name() string { return t.spec.Name }

// AllowsForeignKey reports whether ListBy accepts column.
func (t *Table[T, P]) AllowsForeignKey(column string) bool {
	for _, fk := range t.spec.ForeignKeys {
		if fk == column {
			return true
		}
	}
	return false
}

func (t *Table[T, P]) columns() []string {
	cols := make([]string, 0, len(baseColumns)+len(t.spec.Columns))
	cols = append(cols, baseColumns...)
	return append(cols, t.spec.Columns...)
}

func (t *Table[T, P]) scanDest(item *T) []any {
	meta := P(item).Meta()
	dest := []any{&meta.ID, &meta.CreatedAt, &meta.UpdatedAt}
	return append(dest, t.spec.Fields(item)...)
}

func (t *Table[T, P]) values(item *T) []any {
	fields := t.spec.Fields(item)
	values := make([]any, len(fields))
	for i, f := range fields {
		values[i] = reflect.ValueOf(f).Elem().Interface()
	}
	return values
}

func (t *Table[T, P]) scanRows(rows pgx.Rows) ([]*T, error) {
	defer rows.Close()

	items := []*T{}
	for rows.Next() {
		item := new(T)
		if err := rows.Scan(t.scanDest(item)...); err != nil {
			return nil, fmt.Errorf("error scanning %s row: %w", t.spec.Name, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", t.spec.Name, err)
	}
	return items, nil
}

// mapError turns driver errors into application errors.
func (t *Table[T, P]) mapError(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return apperrors.NewResourceNotFoundError(t.spec.Entity + " not found")
	case dberrors.IsUniqueViolation(err):
		return apperrors.NewAlreadyExistsError(fmt.Sprintf("%s already exists (%s)", t.spec.Entity, dberrors.ConstraintName(err)))
	case dberrors.IsForeignKeyViolation(err):
		return apperrors.NewBadRequestError(fmt.Sprintf("%s references a missing record (%s)", t.spec.Entity, dberrors.ConstraintName(err)))
	case dberrors.IsCheckViolation(err):
		return apperrors.NewBadRequestError(fmt.Sprintf("%s violates constraint %s", t.spec.Entity, dberrors.ConstraintName(err)))
	}
	logger.FromContext(ctx).Error().Err(err).Str("table", t.spec.Name).Str("op", op).Msg("Database error")
	return fmt.Errorf("error executing %s on %s: %w", op, t.spec.Name, err)
}

// Count returns the number of rows matching pred. A nil pred counts all rows.
func (t *Table[T, P]) Count(ctx context.Context, pred squirrel.Sqlizer) (int64, error) {
	q := t.sb.Select("COUNT(*)").From(t.spec.Name)
	if pred != nil {
		q = q.Where(pred)
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count %s query: %w", t.spec.Name, err)
	}

	var total int64
	if err := t.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, t.mapError(ctx, "count", err)
	}
	return total, nil
}

// Find returns one page of rows matching pred together with the total match count.
func (t *Table[T, P]) Find(ctx context.Context, pred squirrel.Sqlizer, page, size int) ([]*T, int64, error) {
	total, err := t.Count(ctx, pred)
	if err != nil {
		return nil, 0, err
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	q := t.sb.Select(t.columns()...).
		From(t.spec.Name).
		OrderBy(t.spec.OrderBy).
		Limit(limit).
		Offset(offset)
	if pred != nil {
		q = q.Where(pred)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list %s query: %w", t.spec.Name, err)
	}

	rows, err := t.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, t.mapError(ctx, "list", err)
	}
	items, err := t.scanRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// FindAll returns every row matching pred, ordered by orderBy (or the table default).
func (t *Table[T, P]) FindAll(ctx context.Context, pred squirrel.Sqlizer, orderBy string, limit uint64) ([]*T, error) {
	if orderBy == "" {
		orderBy = t.spec.OrderBy
	}
	q := t.sb.Select(t.columns()...).From(t.spec.Name).OrderBy(orderBy)
	if pred != nil {
		q = q.Where(pred)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find %s query: %w", t.spec.Name, err)
	}

	rows, err := t.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, t.mapError(ctx, "find", err)
	}
	return t.scanRows(rows)
}

// FindOne returns the first row matching pred.
func (t *Table[T, P]) FindOne(ctx context.Context, pred squirrel.Sqlizer) (*T, error) {
	sql, args, err := t.sb.Select(t.columns()...).
		From(t.spec.Name).
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get %s query: %w", t.spec.Name, err)
	}

	item := new(T)
	if err := t.db.QueryRow(ctx, sql, args...).Scan(t.scanDest(item)...); err != nil {
		return nil, t.mapError(ctx, "get", err)
	}
	return item, nil
}

// List returns one page of all rows.
func (t *Table[T, P]) List(ctx context.Context, page, size int) ([]*T, int64, error) {
	return t.Find(ctx, nil, page, size)
}

// GetByID returns the row with the given id.
func (t *Table[T, P]) GetByID(ctx context.Context, id int64) (*T, error) {
	return t.FindOne(ctx, squirrel.Eq{"id": id})
}

// ListBy returns rows whose foreign key column equals value. Only the
// table's declared foreign keys are accepted.
func (t *Table[T, P]) ListBy(ctx context.Context, column string, value int64, page, size int) ([]*T, int64, error) {
	if !t.AllowsForeignKey(column) {
		return nil, 0, validation.FieldErrors{
			"column": fmt.Sprintf("%s cannot be filtered by %q", t.spec.Entity, column),
		}
	}
	return t.Find(ctx, squirrel.Eq{column: value}, page, size)
}

// Create inserts item and fills its id and timestamps.
func (t *Table[T, P]) Create(ctx context.Context, item *T) error {
	sql, args, err := t.sb.Insert(t.spec.Name).
		Columns(t.spec.Columns...).
		Values(t.values(item)...).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create %s query: %w", t.spec.Name, err)
	}

	meta := P(item).Meta()
	if err := t.db.QueryRow(ctx, sql, args...).Scan(&meta.ID, &meta.CreatedAt, &meta.UpdatedAt); err != nil {
		return t.mapError(ctx, "create", err)
	}
	return nil
}

// Update overwrites every writable column of the row identified by item's id.
func (t *Table[T, P]) Update(ctx context.Context, item *T) error {
	meta := P(item).Meta()
	values := t.values(item)

	set := make(map[string]any, len(t.spec.Columns)+1)
	for i, col := range t.spec.Columns {
		set[col] = values[i]
	}
	set["updated_at"] = squirrel.Expr("now()")

	sql, args, err := t.sb.Update(t.spec.Name).
		SetMap(set).
		Where(squirrel.Eq{"id": meta.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update %s query: %w", t.spec.Name, err)
	}

	if err := t.db.QueryRow(ctx, sql, args...).Scan(&meta.CreatedAt, &meta.UpdatedAt); err != nil {
		return t.mapError(ctx, "update", err)
	}
	return nil
}

// Delete removes the row with the given id.
func (t *Table[T, P]) Delete(ctx context.Context, id int64) error {
	sql, args, err := t.sb.Delete(t.spec.Name).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete %s query: %w", t.spec.Name, err)
	}

	tag, err := t.db.Exec(ctx, sql, args...)
	if err != nil {
		return t.mapError(ctx, "delete", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError(t.spec.Entity + " not found")
	}
	return nil
}
