package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"tastepost-core/internal/domain/entity"
	"tastepost-core/internal/metrics"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// PostgresAlertStore is the durable failure escalation store. Records are
// append-only; retention is an external concern.
type PostgresAlertStore struct {
	db *sql.DB
}

func NewPostgresAlertStore(db *sql.DB) *PostgresAlertStore {
	return &PostgresAlertStore{db: db}
}

const alertColumns = `id, type, severity, title, message, source_bot_id, metadata, is_read, read_at, read_by, created_at`

func (s *PostgresAlertStore) Record(ctx context.Context, alert *entity.Alert) (string, error) {
	id := uuid.NewString()
	createdAt := time.Now().UTC()

	metadata, err := json.Marshal(alert.Metadata)
	if err != nil {
		return "", fmt.Errorf("marshal alert metadata: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO admin_alerts (id, type, severity, title, message, source_bot_id, metadata, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, false, $8)`,
		id, alert.Type, alert.Severity, alert.Title, alert.Message, alert.SourceBotID, metadata, createdAt,
	)
	if err != nil {
		return "", fmt.Errorf("insert alert: %w", err)
	}

	metrics.AlertsRecorded.WithLabelValues(string(alert.Type)).Inc()
	return id, nil
}

func (s *PostgresAlertStore) UnreadCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admin_alerts WHERE is_read = false`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread alerts: %w", err)
	}
	return count, nil
}

func (s *PostgresAlertStore) Recent(ctx context.Context, limit int, unreadOnly bool) ([]entity.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM admin_alerts`
	if unreadOnly {
		query += ` WHERE is_read = false`
	}
	query += ` ORDER BY created_at DESC LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query alerts: %w", err)
	}
	defer rows.Close()

	var alerts []entity.Alert
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, *alert)
	}
	return alerts, rows.Err()
}

// MarkRead is idempotent: the conditional UPDATE only fires on the unread row,
// so a second call leaves read_at/read_by at the first-call values.
func (s *PostgresAlertStore) MarkRead(ctx context.Context, id, byUser string) (*entity.Alert, error) {
	_, err := s.db.ExecContext(ctx, `
		UPDATE admin_alerts SET is_read = true, read_at = $2, read_by = $3
		WHERE id = $1 AND is_read = false`,
		id, time.Now().UTC(), byUser,
	)
	if err != nil {
		return nil, fmt.Errorf("mark alert read: %w", err)
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+alertColumns+` FROM admin_alerts WHERE id = $1`, id)
	alert, err := scanAlert(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: alert %s", entity.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return alert, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAlert(row rowScanner) (*entity.Alert, error) {
	var (
		alert       entity.Alert
		sourceBotID sql.NullString
		metadata    []byte
		readAt      sql.NullTime
		readBy      sql.NullString
	)

	err := row.Scan(&alert.ID, &alert.Type, &alert.Severity, &alert.Title, &alert.Message,
		&sourceBotID, &metadata, &alert.IsRead, &readAt, &readBy, &alert.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan alert: %w", err)
	}

	alert.SourceBotID = sourceBotID.String
	alert.ReadBy = readBy.String
	if readAt.Valid {
		t := readAt.Time
		alert.ReadAt = &t
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &alert.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal alert metadata: %w", err)
		}
	}
	return &alert, nil
}
