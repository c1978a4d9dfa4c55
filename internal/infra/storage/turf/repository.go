package turf

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-TurfBooking/internal/domain"
	"github.com/m04kA/SMC-TurfBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-TurfBooking/pkg/psqlbuilder"
)

const (
	tableTurfs = "turfs"

	pqCheckViolation = "23514"
)

var turfColumns = []string{
	"id",
	"name",
	"location",
	"price_per_hour",
	"is_residential",
	"image_url",
	"created_at",
	"updated_at",
}

// Repository репозиторий каталога площадок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория площадок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает площадку
func (r *Repository) Create(ctx context.Context, turf *domain.Turf) (*domain.Turf, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableTurfs).
		Columns("name", "location", "price_per_hour", "is_residential", "image_url").
		Values(turf.Name, turf.Location, turf.PricePerHour, turf.IsResidential, turf.ImageURL).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&turf.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, mapWriteError("Create", err)
	}

	turf.CreatedAt = createdAt.Time
	turf.UpdatedAt = updatedAt.Time

	return turf, nil
}

// GetByID получает площадку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Turf, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(turfColumns...).
		From(tableTurfs).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	turf, err := scanTurf(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTurfNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan turf: %v", ErrScanRow, err)
	}

	return turf, nil
}

// List возвращает площадки по фильтру, отсортированные по названию
func (r *Repository) List(ctx context.Context, filter domain.TurfFilter) ([]*domain.Turf, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildListQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	turfs := make([]*domain.Turf, 0)
	for rows.Next() {
		turf, err := scanTurf(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		turfs = append(turfs, turf)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return turfs, nil
}

// Count возвращает количество площадок в каталоге
func (r *Repository) Count(ctx context.Context) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").From(tableTurfs).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Count - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: Count - scan: %v", ErrScanRow, err)
	}

	return count, nil
}

// Update обновляет площадку
// Цены уже созданных бронирований не пересчитываются
func (r *Repository) Update(ctx context.Context, id int64, turf *domain.Turf) (*domain.Turf, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableTurfs).
		Set("name", turf.Name).
		Set("location", turf.Location).
		Set("price_per_hour", turf.PricePerHour).
		Set("is_residential", turf.IsResidential).
		Set("image_url", turf.ImageURL).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTurfNotFound
	}
	if err != nil {
		return nil, mapWriteError("Update", err)
	}

	turf.ID = id
	turf.CreatedAt = createdAt.Time
	turf.UpdatedAt = updatedAt.Time

	return turf, nil
}

func buildListQuery(filter domain.TurfFilter) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select(turfColumns...).
		From(tableTurfs).
		OrderBy("name ASC", "id ASC")

	if filter.Query != nil && strings.TrimSpace(*filter.Query) != "" {
		pattern := "%" + escapeLike(strings.TrimSpace(*filter.Query)) + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"location": pattern},
		})
	}

	if filter.Residential != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_residential": *filter.Residential})
	}

	return selectBuilder
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func mapWriteError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqCheckViolation {
		return fmt.Errorf("%w: %s - %s", ErrConstraintViolation, op, pqErr.Constraint)
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTurf(row rowScanner) (*domain.Turf, error) {
	var turf domain.Turf
	var imageURL sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&turf.ID,
		&turf.Name,
		&turf.Location,
		&turf.PricePerHour,
		&turf.IsResidential,
		&imageURL,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if imageURL.Valid {
		url := imageURL.String
		turf.ImageURL = &url
	}
	turf.CreatedAt = createdAt.Time
	turf.UpdatedAt = updatedAt.Time

	return &turf, nil
}
