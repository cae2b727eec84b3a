package repository

import (
	"context"
	"database/sql"

	"github.com/vibast-solutions/ms-go-memberships/app/entity"
)

const planCols = `id, name, description, monthly_price_cents, annual_price_cents, color_theme, display_order, active, created_at`

type PlanRepository struct {
	db DBTX
}

func NewPlanRepository(db DBTX) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) Create(ctx context.Context, plan *entity.Plan) error {
	query := `
		INSERT INTO plans (
			name, description, monthly_price_cents, annual_price_cents,
			color_theme, display_order, active, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	colorTheme := plan.ColorTheme
	if colorTheme == "" {
		colorTheme = "#007bff"
	}
	result, err := r.db.ExecContext(ctx, query,
		plan.Name,
		plan.Description,
		plan.MonthlyPriceCents,
		nullableInt64Value(plan.AnnualPriceCents),
		colorTheme,
		plan.DisplayOrder,
		plan.Active,
		plan.CreatedAt.UTC(),
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
	plan.ID = uint64(id)
	plan.ColorTheme = colorTheme
	return nil
}

func (r *PlanRepository) FindByID(ctx context.Context, id uint64) (*entity.Plan, error) {
	plan, err := scanPlan(r.db.QueryRowContext(ctx, `SELECT `+planCols+` FROM plans WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// ListActive returns active plans ordered for display.
func (r *PlanRepository) ListActive(ctx context.Context) ([]*entity.Plan, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+planCols+`
		FROM plans
		WHERE active = ?
		ORDER BY display_order ASC, monthly_price_cents ASC, id ASC
	`, true)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*entity.Plan, 0)
	for rows.Next() {
		item, err := scanPlan(rows)
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

func (r *PlanRepository) Count(ctx context.Context, activeOnly bool) (int64, error) {
	query := `SELECT COUNT(*) FROM plans`
	args := make([]interface{}, 0, 1)
	if activeOnly {
		query += ` WHERE active = ?`
		args = append(args, true)
	}

	var n int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanPlan(scanner rowScanner) (*entity.Plan, error) {
	item := &entity.Plan{}
	var annual sql.NullInt64
	err := scanner.Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.MonthlyPriceCents,
		&annual,
		&item.ColorTheme,
		&item.DisplayOrder,
		&item.Active,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.AnnualPriceCents = int64Ptr(annual)
	item.CreatedAt = item.CreatedAt.UTC()
	return item, nil
}
