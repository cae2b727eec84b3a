package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/vibast-solutions/ms-go-memberships/app/entity"
)

const paymentCols = `id, member_id, subscription_id, amount_cents, method, status, transaction_id, processed_at, created_at`

type PaymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO payments (
			member_id, subscription_id, amount_cents, method, status,
			transaction_id, processed_at, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		payment.MemberID,
		nullableUint64Value(payment.SubscriptionID),
		payment.AmountCents,
		payment.Method,
		payment.Status,
		payment.TransactionID,
		nullableTimeValue(payment.ProcessedAt),
		payment.CreatedAt.UTC(),
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	payment.ID = uint64(id)
	return nil
}

// Transition moves a payment from one status to another. It reports false
// when the payment is no longer in the expected status.
func (r *PaymentRepository) Transition(ctx context.Context, id uint64, from, to, transactionID string, processedAt *time.Time) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE payments
		SET status = ?,
			transaction_id = CASE WHEN ? = '' THEN transaction_id ELSE ? END,
			processed_at = COALESCE(?, processed_at)
		WHERE id = ? AND status = ?
	`, to, transactionID, transactionID, nullableTimeValue(processedAt), id, from)
	if err != nil {
		return false, err
	}
	return expectOneRow(result)
}

func (r *PaymentRepository) FindByID(ctx context.Context, id uint64) (*entity.Payment, error) {
	payment, err := scanPayment(r.db.QueryRowContext(ctx, `SELECT `+paymentCols+` FROM payments WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (r *PaymentRepository) ListByMember(ctx context.Context, memberID uint64) ([]*entity.Payment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+paymentCols+` FROM payments WHERE member_id = ? ORDER BY created_at DESC, id DESC`, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*entity.Payment, 0)
	for rows.Next() {
		item, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanPayment(scanner rowScanner) (*entity.Payment, error) {
	item := &entity.Payment{}
	var subscriptionID sql.NullInt64
	var processedAt sql.NullTime
	err := scanner.Scan(
		&item.ID,
		&item.MemberID,
		&subscriptionID,
		&item.AmountCents,
		&item.Method,
		&item.Status,
		&item.TransactionID,
		&processedAt,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if subscriptionID.Valid {
		id := uint64(subscriptionID.Int64)
		item.SubscriptionID = &id
	}
	item.ProcessedAt = timePtr(processedAt)
	item.CreatedAt = item.CreatedAt.UTC()
	return item, nil
}
