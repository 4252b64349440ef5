package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/fenilmodi00/raffle-admin/models"
	"github.com/fenilmodi00/raffle-admin/shared"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CreateAttempt is one row of the local audit trail of raffle create
// attempts. The metaobject store remains the system of record; the audit log
// only exists for operational debugging (e.g. spotting duplicate submissions
// after transient failures).
type CreateAttempt struct {
	ID           uuid.UUID `json:"id"`
	RaffleID     string    `json:"raffle_id,omitempty"`
	ProductID    string    `json:"product_id"`
	ProductTitle string    `json:"product_title"`
	Quantity     int       `json:"quantity"`
	Deadline     string    `json:"deadline"`
	IsActive     bool      `json:"is_active"`
	Outcome      string    `json:"outcome"`
	ErrorDetail  string    `json:"error_detail,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuditService persists create attempts to Postgres. A nil service (no
// DATABASE_URL configured) is a no-op.
type AuditService struct {
	DB *sql.DB
}

func NewAuditService(db *sql.DB) *AuditService {
	return &AuditService{DB: db}
}

// RecordCreateAttempt writes one audit row. Audit failures are logged and
// swallowed; they must never affect the create outcome.
func (s *AuditService) RecordCreateAttempt(ctx context.Context, input models.RaffleInput, raffleID string, attemptErr error) {
	if s == nil || s.DB == nil {
		return
	}

	outcome := "success"
	errorDetail := ""
	if attemptErr != nil {
		workflowErr := shared.AsWorkflowError(attemptErr)
		outcome = string(workflowErr.Kind)
		errorDetail = workflowErr.Error()
	}

	query := `
		INSERT INTO raffle_create_attempts
			(id, raffle_id, product_id, product_title, quantity, deadline, is_active, outcome, error_detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := s.DB.ExecContext(ctx, query,
		uuid.New(), raffleID, input.ProductID, input.ProductTitle,
		input.QuantityAvailable, input.Deadline, input.IsActive,
		outcome, errorDetail, time.Now().UTC())
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"component":  "AuditService",
			"product_id": input.ProductID,
			"outcome":    outcome,
		}).Warn("Failed to record create attempt")
	}
}

// RecentAttempts returns the most recent create attempts, newest first.
func (s *AuditService) RecentAttempts(ctx context.Context, limit int) ([]CreateAttempt, error) {
	if s == nil || s.DB == nil {
		return []CreateAttempt{}, nil
	}
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, raffle_id, product_id, product_title, quantity, deadline, is_active, outcome, error_detail, created_at
		FROM raffle_create_attempts
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []CreateAttempt
	for rows.Next() {
		var attempt CreateAttempt
		err := rows.Scan(&attempt.ID, &attempt.RaffleID, &attempt.ProductID,
			&attempt.ProductTitle, &attempt.Quantity, &attempt.Deadline,
			&attempt.IsActive, &attempt.Outcome, &attempt.ErrorDetail,
			&attempt.CreatedAt)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, attempt)
	}

	return attempts, rows.Err()
}
