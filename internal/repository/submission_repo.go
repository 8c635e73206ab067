package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/senyabanana/rfq-desk/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// SubmissionRepository - интерфейс журнала пакетных отправок.
type SubmissionRepository interface {
	CreateSubmission(ctx context.Context, submission models.Submission) (*models.Submission, error)
	GetRFQSubmissions(ctx context.Context, rfqId string, kinds []string, limit, offset int) ([]models.Submission, error)
}

// PostgresSubmissionRepository - реализация SubmissionRepository для базы данных.
type PostgresSubmissionRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresSubmissionRepository создаёт новый экземпляр PostgresSubmissionRepository.
func NewPostgresSubmissionRepository(db *pgxpool.Pool) *PostgresSubmissionRepository {
	return &PostgresSubmissionRepository{DB: db}
}

// CreateSubmission сохраняет запись об отправке.
func (r *PostgresSubmissionRepository) CreateSubmission(ctx context.Context, submission models.Submission) (*models.Submission, error) {
	submission.ID = uuid.New().String()
	submission.CreatedAt = time.Now().UTC()

	insertQuery := `INSERT INTO submission (id, session_id, rfq_event_id, kind, payload, outcome, error, created_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		submission.ID,
		submission.SessionID,
		submission.RFQEventID,
		submission.Kind,
		string(submission.Payload),
		submission.Outcome,
		submission.Error,
		submission.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert submission: %w", err)
	}
	return &submission, nil
}

// GetRFQSubmissions возвращает отправки по RFQ, новые первыми.
func (r *PostgresSubmissionRepository) GetRFQSubmissions(ctx context.Context, rfqId string, kinds []string, limit, offset int) ([]models.Submission, error) {
	query := `SELECT id, session_id, rfq_event_id, kind, payload, outcome, error, created_at FROM submission`
	filters := []string{"rfq_event_id = $1"}
	args := []interface{}{rfqId}
	argIndex := 2

	if len(kinds) > 0 {
		filters = append(filters, fmt.Sprintf("kind = ANY($%d)", argIndex))
		args = append(args, pq.Array(kinds))
		argIndex++
	}

	query += " WHERE " + strings.Join(filters, " AND ")
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	submissions := make([]models.Submission, 0)
	for rows.Next() {
		var s models.Submission
		var payload []byte
		if err := rows.Scan(
			&s.ID,
			&s.SessionID,
			&s.RFQEventID,
			&s.Kind,
			&payload,
			&s.Outcome,
			&s.Error,
			&s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		s.Payload = payload
		submissions = append(submissions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return submissions, nil
}
