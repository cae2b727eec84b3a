package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vibast-solutions/ms-go-memberships/app/entity"
)

const memberCols = `id, full_name, email, phone, tech_area, current_company, created_at, updated_at`

type MemberRepository struct {
	db TxDB
}

func NewMemberRepository(db TxDB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) Create(ctx context.Context, member *entity.Member, credential *entity.Credential) error {
	query := `
		INSERT INTO members (
			full_name, email, phone, tech_area, current_company,
			password_hash, password_salt, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		member.FullName,
		member.Email,
		member.Phone,
		member.TechArea,
		member.CurrentCompany,
		credential.PasswordHash,
		credential.Salt,
		member.CreatedAt.UTC(),
		member.UpdatedAt.UTC(),
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
	member.ID = uint64(id)
	credential.MemberID = member.ID
	return nil
}

func (r *MemberRepository) Update(ctx context.Context, member *entity.Member) error {
	query := `
		UPDATE members
		SET full_name = ?, email = ?, phone = ?, tech_area = ?, current_company = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		member.FullName,
		member.Email,
		member.Phone,
		member.TechArea,
		member.CurrentCompany,
		member.UpdatedAt.UTC(),
		member.ID,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicate
		}
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// MySQL reports zero affected rows for a no-op update, so confirm existence.
		existing, err := r.FindByID(ctx, member.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return ErrNotFound
		}
	}
	return nil
}

func (r *MemberRepository) FindByID(ctx context.Context, id uint64) (*entity.Member, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+memberCols+` FROM members WHERE id = ?`, id)
	member, err := scanMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return member, nil
}

func (r *MemberRepository) FindByEmail(ctx context.Context, email string) (*entity.Member, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+memberCols+` FROM members WHERE email = ?`, email)
	member, err := scanMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return member, nil
}

func (r *MemberRepository) FindCredential(ctx context.Context, memberID uint64) (*entity.Credential, error) {
	credential := &entity.Credential{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, password_hash, password_salt FROM members WHERE id = ?`, memberID,
	).Scan(&credential.MemberID, &credential.PasswordHash, &credential.Salt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return credential, nil
}

func (r *MemberRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM members`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// DeleteCascade cancels every active subscription of the member and then
// removes the member together with its tickets, redemptions, payments and
// subscriptions in a single transaction. Ticket counters on the affected
// events are released.
func (r *MemberRepository) DeleteCascade(ctx context.Context, memberID uint64, now time.Time) (int64, error) {
	var cancelled int64
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var id uint64
		err := tx.QueryRowContext(ctx, `SELECT id FROM members WHERE id = ?`, memberID).Scan(&id)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, `
			UPDATE subscriptions
			SET status = ?, active_member_id = NULL, auto_renew = ?, ended_at = ?, updated_at = ?
			WHERE member_id = ? AND status = ?
		`, entity.SubscriptionStatusCancelled, false, now.UTC(), now.UTC(), memberID, entity.SubscriptionStatusActive)
		if err != nil {
			return fmt.Errorf("cancel subscriptions: %w", err)
		}
		if cancelled, err = result.RowsAffected(); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE eventos
			SET tickets_sold = tickets_sold - 1
			WHERE id IN (SELECT evento_id FROM tickets WHERE owner_id = ?) AND tickets_sold > 0
		`, memberID); err != nil {
			return fmt.Errorf("release tickets: %w", err)
		}

		for _, stmt := range []string{
			`DELETE FROM tickets WHERE owner_id = ?`,
			`DELETE FROM benefit_redemptions WHERE member_id = ?`,
			`DELETE FROM payments WHERE member_id = ?`,
			`DELETE FROM subscriptions WHERE member_id = ?`,
			`DELETE FROM members WHERE id = ?`,
		} {
			if _, err := tx.ExecContext(ctx, stmt, memberID); err != nil {
				return fmt.Errorf("delete member data: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return cancelled, nil
}

func scanMember(scanner rowScanner) (*entity.Member, error) {
	item := &entity.Member{}
	err := scanner.Scan(
		&item.ID,
		&item.FullName,
		&item.Email,
		&item.Phone,
		&item.TechArea,
		&item.CurrentCompany,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.CreatedAt = item.CreatedAt.UTC()
	item.UpdatedAt = item.UpdatedAt.UTC()
	return item, nil
}
