package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vibast-solutions/ms-go-memberships/app/entity"
)

const redemptionCols = `id, member_id, benefit_id, code, redeemed_at, used, used_at`

// RedeemGuard inspects the locked benefit row before the quota is claimed.
// A non-nil error aborts the redemption and is returned unchanged.
type RedeemGuard func(benefit *entity.Benefit) error

type RedemptionRepository struct {
	db      TxDB
	dialect Dialect
}

func NewRedemptionRepository(db TxDB, dialect Dialect) *RedemptionRepository {
	return &RedemptionRepository{db: db, dialect: dialect}
}

// Redeem claims one unit of the benefit's quota and records the redemption
// in a single transaction. Failures leave used_quantity untouched.
func (r *RedemptionRepository) Redeem(ctx context.Context, redemption *entity.BenefitRedemption, guard RedeemGuard) (*entity.Benefit, error) {
	var benefit *entity.Benefit
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		benefit, err = scanBenefit(tx.QueryRowContext(ctx,
			`SELECT `+benefitCols+` FROM benefits WHERE id = ?`+r.dialect.lockSuffix(), redemption.BenefitID))
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		if guard != nil {
			if err := guard(benefit); err != nil {
				return err
			}
		}

		claim, err := tx.ExecContext(ctx, `
			UPDATE benefits
			SET used_quantity = used_quantity + 1
			WHERE id = ? AND (available_quantity IS NULL OR used_quantity < available_quantity)
		`, benefit.ID)
		if err != nil {
			return fmt.Errorf("claim quota: %w", err)
		}
		claimed, err := expectOneRow(claim)
		if err != nil {
			return err
		}
		if !claimed {
			return ErrQuotaExhausted
		}

		result, err := tx.ExecContext(ctx, `
			INSERT INTO benefit_redemptions (member_id, benefit_id, code, redeemed_at, used, used_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`,
			redemption.MemberID,
			redemption.BenefitID,
			redemption.Code,
			redemption.RedeemedAt.UTC(),
			false,
			nil,
		)
		if err != nil {
			if isDuplicateEntryError(err) {
				return ErrDuplicate
			}
			return fmt.Errorf("insert redemption: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		redemption.ID = uint64(id)
		redemption.Used = false
		redemption.UsedAt = nil
		benefit.UsedQuantity++
		return nil
	})
	if err != nil {
		return nil, err
	}

	plans, err := loadBenefitPlans(ctx, r.db, benefit.ID)
	if err != nil {
		return nil, err
	}
	benefit.PlanIDs = plans
	return benefit, nil
}

// MarkUsed flips used from false to true. Only the first caller observes true.
func (r *RedemptionRepository) MarkUsed(ctx context.Context, id uint64, usedAt time.Time) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE benefit_redemptions SET used = ?, used_at = ? WHERE id = ? AND used = ?`,
		true, usedAt.UTC(), id, false,
	)
	if err != nil {
		return false, err
	}
	return expectOneRow(result)
}

func (r *RedemptionRepository) FindByID(ctx context.Context, id uint64) (*entity.BenefitRedemption, error) {
	return r.findOne(ctx, `SELECT `+redemptionCols+` FROM benefit_redemptions WHERE id = ?`, id)
}

func (r *RedemptionRepository) FindByCode(ctx context.Context, code string) (*entity.BenefitRedemption, error) {
	return r.findOne(ctx, `SELECT `+redemptionCols+` FROM benefit_redemptions WHERE code = ?`, code)
}

func (r *RedemptionRepository) FindByMemberAndBenefit(ctx context.Context, memberID, benefitID uint64) (*entity.BenefitRedemption, error) {
	return r.findOne(ctx,
		`SELECT `+redemptionCols+` FROM benefit_redemptions WHERE member_id = ? AND benefit_id = ?`,
		memberID, benefitID)
}

func (r *RedemptionRepository) ListByMember(ctx context.Context, memberID uint64) ([]*entity.BenefitRedemption, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+redemptionCols+` FROM benefit_redemptions WHERE member_id = ? ORDER BY redeemed_at DESC, id DESC`,
		memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*entity.BenefitRedemption, 0)
	for rows.Next() {
		item, err := scanRedemption(rows)
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

func (r *RedemptionRepository) findOne(ctx context.Context, query string, args ...interface{}) (*entity.BenefitRedemption, error) {
	redemption, err := scanRedemption(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return redemption, nil
}

func scanRedemption(scanner rowScanner) (*entity.BenefitRedemption, error) {
	item := &entity.BenefitRedemption{}
	var usedAt sql.NullTime
	err := scanner.Scan(
		&item.ID,
		&item.MemberID,
		&item.BenefitID,
		&item.Code,
		&item.RedeemedAt,
		&item.Used,
		&usedAt,
	)
	if err != nil {
		return nil, err
	}
	item.RedeemedAt = item.RedeemedAt.UTC()
	item.UsedAt = timePtr(usedAt)
	return item, nil
}
