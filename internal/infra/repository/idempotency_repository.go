package repository

import (
	"context"
	"time"

	"hotel-booking-api/internal/infra"
	"hotel-booking-api/internal/infra/db"
	"hotel-booking-api/internal/pkg/pgconv"
	"hotel-booking-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// IdempotencyRepository records request keys outside the booking transaction
// so a concurrent retry observes the in-flight attempt. Only MarkCompleted
// joins the transaction that creates the booking.
type IdempotencyRepository struct {
	dbtx db.DBTX
}

func NewIdempotencyRepository(dbtx db.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{dbtx: dbtx}
}

func (r *IdempotencyRepository) TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	query := `
		INSERT INTO idempotency_keys (
			key, user_id, endpoint, request_hash, status, expires_at, created_at
		) VALUES ($1, $2, $3, $4, 'processing', $5, now())
		ON CONFLICT (key, user_id) DO NOTHING
	`

	tag, err := r.dbtx.Exec(ctx, query,
		pgconv.UUIDToPgtype(key),
		pgconv.UUIDToPgtype(userID),
		endpoint,
		requestHash,
		pgconv.TimeToPgtype(expiresAt),
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to record idempotency key", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *IdempotencyRepository) Get(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	query := `
		SELECT key, user_id, endpoint, request_hash, status, result_booking_id, expires_at
		FROM idempotency_keys
		WHERE key = $1 AND user_id = $2
	`

	var (
		rec      shared.IdempotencyRecord
		resultID pgtype.UUID
	)
	err := r.dbtx.QueryRow(ctx, query, pgconv.UUIDToPgtype(key), pgconv.UUIDToPgtype(userID)).Scan(
		&rec.Key, &rec.UserID, &rec.Endpoint, &rec.RequestHash, &rec.Status, &resultID, &rec.ExpiresAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find idempotency key", err)
	}
	rec.ResultBookingID = pgconv.UUIDPtrFromPgtype(resultID)
	return &rec, nil
}

func (r *IdempotencyRepository) MarkCompleted(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, resultBookingID uuid.UUID) error {
	query := `
		UPDATE idempotency_keys
		SET status = 'completed', result_booking_id = $3
		WHERE key = $1 AND user_id = $2
	`

	tag, err := tx.Exec(ctx, query,
		pgconv.UUIDToPgtype(key),
		pgconv.UUIDToPgtype(userID),
		pgconv.UUIDToPgtype(resultBookingID),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	return nil
}
