package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/vibast-solutions/ms-go-memberships/app/entity"
)

const subscriptionCols = `id, member_id, plan_id, status, started_at, next_billing, auto_renew, ended_at, updated_at`

type SubscriptionRepository struct {
	db DBTX
}

func NewSubscriptionRepository(db DBTX) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Create inserts a subscription. An active subscription occupies the
// member's active slot, so a second one for the same member is rejected by
// the store with ErrDuplicate.
func (r *SubscriptionRepository) Create(ctx context.Context, subscription *entity.Subscription) error {
	query := `
		INSERT INTO subscriptions (
			member_id, plan_id, status, active_member_id,
			started_at, next_billing, auto_renew, ended_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var activeMemberID *uint64
	if subscription.Status == entity.SubscriptionStatusActive {
		activeMemberID = &subscription.MemberID
	}

	result, err := r.db.ExecContext(ctx, query,
		subscription.MemberID,
		subscription.PlanID,
		subscription.Status,
		nullableUint64Value(activeMemberID),
		subscription.StartedAt.UTC(),
		subscription.NextBilling.UTC(),
		subscription.AutoRenew,
		nullableTimeValue(subscription.EndedAt),
		subscription.UpdatedAt.UTC(),
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicate
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	subscription.ID = uint64(id)
	return nil
}

func (r *SubscriptionRepository) FindByID(ctx context.Context, id uint64) (*entity.Subscription, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+subscriptionCols+` FROM subscriptions WHERE id = ?`, id)
	subscription, err := scanSubscription(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return subscription, nil
}

func (r *SubscriptionRepository) FindActiveByMember(ctx context.Context, memberID uint64) (*entity.Subscription, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+subscriptionCols+` FROM subscriptions WHERE active_member_id = ?`, memberID)
	subscription, err := scanSubscription(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return subscription, nil
}

func (r *SubscriptionRepository) ListByMember(ctx context.Context, memberID uint64) ([]*entity.Subscription, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+subscriptionCols+`
		FROM subscriptions
		WHERE member_id = ?
		ORDER BY started_at DESC, id DESC
	`, memberID)
	if err != nil {
		return nil, err
	}
	return collectSubscriptions(rows)
}

// ListDueRenewal returns active auto-renewing subscriptions whose billing
// date is not after now. Dates are compared in Go so both dialects agree.
func (r *SubscriptionRepository) ListDueRenewal(ctx context.Context, now time.Time, limit int) ([]*entity.Subscription, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+subscriptionCols+`
		FROM subscriptions
		WHERE status = ? AND auto_renew = ?
		ORDER BY id ASC
	`, entity.SubscriptionStatusActive, true)
	if err != nil {
		return nil, err
	}
	all, err := collectSubscriptions(rows)
	if err != nil {
		return nil, err
	}

	due := make([]*entity.Subscription, 0)
	for _, item := range all {
		if item.NextBilling.After(now) {
			continue
		}
		due = append(due, item)
		if limit > 0 && len(due) >= limit {
			break
		}
	}
	return due, nil
}

// Renew moves next_billing when the subscription is still active and
// auto-renewing. It reports whether a row changed.
func (r *SubscriptionRepository) Renew(ctx context.Context, id uint64, nextBilling, updatedAt time.Time) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE subscriptions
		SET next_billing = ?, updated_at = ?
		WHERE id = ? AND status = ? AND auto_renew = ?
	`, nextBilling.UTC(), updatedAt.UTC(), id, entity.SubscriptionStatusActive, true)
	if err != nil {
		return false, err
	}
	return expectOneRow(result)
}

// ChangePlan swaps the plan of an active subscription.
func (r *SubscriptionRepository) ChangePlan(ctx context.Context, id, planID uint64, updatedAt time.Time) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE subscriptions
		SET plan_id = ?, updated_at = ?
		WHERE id = ? AND status = ?
	`, planID, updatedAt.UTC(), id, entity.SubscriptionStatusActive)
	if err != nil {
		return false, err
	}
	return expectOneRow(result)
}

// Cancel moves any non-cancelled subscription to cancelled and frees the
// member's active slot.
func (r *SubscriptionRepository) Cancel(ctx context.Context, id uint64, endedAt time.Time) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE subscriptions
		SET status = ?, active_member_id = NULL, auto_renew = ?, ended_at = ?, updated_at = ?
		WHERE id = ? AND status <> ?
	`, entity.SubscriptionStatusCancelled, false, endedAt.UTC(), endedAt.UTC(), id, entity.SubscriptionStatusCancelled)
	if err != nil {
		return false, err
	}
	return expectOneRow(result)
}

func (r *SubscriptionRepository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM subscriptions WHERE status = ?`, entity.SubscriptionStatusActive,
	).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func collectSubscriptions(rows *sql.Rows) ([]*entity.Subscription, error) {
	defer rows.Close()

	items := make([]*entity.Subscription, 0)
	for rows.Next() {
		item, err := scanSubscription(rows)
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

func scanSubscription(scanner rowScanner) (*entity.Subscription, error) {
	item := &entity.Subscription{}
	var endedAt sql.NullTime
	err := scanner.Scan(
		&item.ID,
		&item.MemberID,
		&item.PlanID,
		&item.Status,
		&item.StartedAt,
		&item.NextBilling,
		&item.AutoRenew,
		&endedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.StartedAt = item.StartedAt.UTC()
	item.NextBilling = item.NextBilling.UTC()
	item.UpdatedAt = item.UpdatedAt.UTC()
	item.EndedAt = timePtr(endedAt)
	return item, nil
}
