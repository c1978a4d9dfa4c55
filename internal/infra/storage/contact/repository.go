package contact

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/m04kA/SMC-TurfBooking/internal/domain"
	"github.com/m04kA/SMC-TurfBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-TurfBooking/pkg/psqlbuilder"
)

// Repository хранилище сообщений обратной связи
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет сообщение
func (r *Repository) Create(ctx context.Context, msg *domain.ContactMessage) (*domain.ContactMessage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("contact_messages").
		Columns("name", "email", "message").
		Values(msg.Name, msg.Email, msg.Message).
		Suffix("RETURNING id, sent_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var sentAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&msg.ID, &sentAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	msg.SentAt = sentAt.Time

	return msg, nil
}
