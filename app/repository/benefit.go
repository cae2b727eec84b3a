package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vibast-solutions/ms-go-memberships/app/entity"
)

const benefitCols = `id, title, description, provider, discount_code, discount_percentage, redeem_url, available_quantity, used_quantity, valid_from, valid_until, active, created_at`

type BenefitRepository struct {
	db TxDB
}

func NewBenefitRepository(db TxDB) *BenefitRepository {
	return &BenefitRepository{db: db}
}

func (r *BenefitRepository) Create(ctx context.Context, benefit *entity.Benefit) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO benefits (
				title, description, provider, discount_code, discount_percentage, redeem_url,
				available_quantity, used_quantity, valid_from, valid_until, active, created_at
			)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			benefit.Title,
			benefit.Description,
			benefit.Provider,
			benefit.DiscountCode,
			benefit.DiscountPercentage,
			benefit.RedeemURL,
			nullableInt32Value(benefit.AvailableQuantity),
			benefit.UsedQuantity,
			benefit.ValidFrom.UTC(),
			benefit.ValidUntil.UTC(),
			benefit.Active,
			benefit.CreatedAt.UTC(),
		)
		if err != nil {
			if isDuplicateEntryError(err) {
				return ErrDuplicate
			}
			return fmt.Errorf("insert benefit: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		benefit.ID = uint64(id)

		for _, planID := range benefit.PlanIDs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO plan_benefits (plan_id, benefit_id) VALUES (?, ?)`, planID, benefit.ID,
			); err != nil {
				if isDuplicateEntryError(err) {
					continue
				}
				return fmt.Errorf("insert plan benefit: %w", err)
			}
		}
		return nil
	})
}

func (r *BenefitRepository) FindByID(ctx context.Context, id uint64) (*entity.Benefit, error) {
	return r.findOne(ctx, `SELECT `+benefitCols+` FROM benefits WHERE id = ?`, id)
}

func (r *BenefitRepository) FindByCode(ctx context.Context, discountCode string) (*entity.Benefit, error) {
	return r.findOne(ctx, `SELECT `+benefitCols+` FROM benefits WHERE discount_code = ?`, discountCode)
}

// ListActiveForPlan returns active benefits linked to planID whose validity
// window contains now, ordered by title.
func (r *BenefitRepository) ListActiveForPlan(ctx context.Context, planID uint64, now time.Time) ([]*entity.Benefit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT b.id, b.title, b.description, b.provider, b.discount_code, b.discount_percentage,
			b.redeem_url, b.available_quantity, b.used_quantity, b.valid_from, b.valid_until,
			b.active, b.created_at
		FROM benefits b
		INNER JOIN plan_benefits pb ON pb.benefit_id = b.id
		WHERE pb.plan_id = ? AND b.active = ?
		ORDER BY b.title ASC, b.id ASC
	`, planID, true)
	if err != nil {
		return nil, err
	}

	items := make([]*entity.Benefit, 0)
	func() {
		defer rows.Close()
		for rows.Next() {
			var item *entity.Benefit
			item, err = scanBenefit(rows)
			if err != nil {
				return
			}
			if !item.WithinWindow(now) {
				continue
			}
			items = append(items, item)
		}
		err = rows.Err()
	}()
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if item.PlanIDs, err = loadBenefitPlans(ctx, r.db, item.ID); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (r *BenefitRepository) findOne(ctx context.Context, query string, arg interface{}) (*entity.Benefit, error) {
	benefit, err := scanBenefit(r.db.QueryRowContext(ctx, query, arg))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if benefit.PlanIDs, err = loadBenefitPlans(ctx, r.db, benefit.ID); err != nil {
		return nil, err
	}
	return benefit, nil
}

func loadBenefitPlans(ctx context.Context, db DBTX, benefitID uint64) ([]uint64, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT plan_id FROM plan_benefits WHERE benefit_id = ? ORDER BY plan_id`, benefitID)
	if err != nil {
		return nil, err
	}
	return scanIDs(rows)
}

func scanBenefit(scanner rowScanner) (*entity.Benefit, error) {
	item := &entity.Benefit{}
	var available sql.NullInt32
	err := scanner.Scan(
		&item.ID,
		&item.Title,
		&item.Description,
		&item.Provider,
		&item.DiscountCode,
		&item.DiscountPercentage,
		&item.RedeemURL,
		&available,
		&item.UsedQuantity,
		&item.ValidFrom,
		&item.ValidUntil,
		&item.Active,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.AvailableQuantity = int32Ptr(available)
	item.ValidFrom = item.ValidFrom.UTC()
	item.ValidUntil = item.ValidUntil.UTC()
	item.CreatedAt = item.CreatedAt.UTC()
	return item, nil
}
