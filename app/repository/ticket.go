package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vibast-solutions/ms-go-memberships/app/entity"
)

const ticketCols = `id, owner_id, evento_id, seat, code, purchased_at, used, used_at`

type TicketRepository struct {
	db TxDB
}

func NewTicketRepository(db TxDB) *TicketRepository {
	return &TicketRepository{db: db}
}

// Purchase inserts the ticket and claims a seat on the event in one
// transaction. A second ticket for the same owner and event yields
// ErrDuplicate; an event at capacity yields ErrEventFull; a missing event
// yields ErrNotFound.
func (r *TicketRepository) Purchase(ctx context.Context, ticket *entity.Ticket) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO tickets (owner_id, evento_id, seat, code, purchased_at, used, used_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`,
			ticket.OwnerID,
			ticket.EventoID,
			ticket.Seat,
			ticket.Code,
			ticket.PurchasedAt.UTC(),
			false,
			nil,
		)
		if err != nil {
			if isDuplicateEntryError(err) {
				return ErrDuplicate
			}
			return fmt.Errorf("insert ticket: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return err
		}

		claim, err := tx.ExecContext(ctx, `
			UPDATE eventos
			SET tickets_sold = tickets_sold + 1
			WHERE id = ? AND (max_attendees IS NULL OR tickets_sold < max_attendees)
		`, ticket.EventoID)
		if err != nil {
			return fmt.Errorf("claim seat: %w", err)
		}
		claimed, err := expectOneRow(claim)
		if err != nil {
			return err
		}
		if !claimed {
			var exists uint64
			err := tx.QueryRowContext(ctx, `SELECT id FROM eventos WHERE id = ?`, ticket.EventoID).Scan(&exists)
			if err == sql.ErrNoRows {
				return ErrNotFound
			}
			if err != nil {
				return err
			}
			return ErrEventFull
		}

		ticket.ID = uint64(id)
		ticket.Used = false
		ticket.UsedAt = nil
		return nil
	})
}

// MarkUsed flips used from false to true. Only the first caller for a given
// ticket observes true.
func (r *TicketRepository) MarkUsed(ctx context.Context, id uint64, usedAt time.Time) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tickets SET used = ?, used_at = ? WHERE id = ? AND used = ?`,
		true, usedAt.UTC(), id, false,
	)
	if err != nil {
		return false, err
	}
	return expectOneRow(result)
}

func (r *TicketRepository) FindByID(ctx context.Context, id uint64) (*entity.Ticket, error) {
	ticket, err := scanTicket(r.db.QueryRowContext(ctx, `SELECT `+ticketCols+` FROM tickets WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

func (r *TicketRepository) FindByCode(ctx context.Context, code string) (*entity.Ticket, error) {
	ticket, err := scanTicket(r.db.QueryRowContext(ctx, `SELECT `+ticketCols+` FROM tickets WHERE code = ?`, code))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

func (r *TicketRepository) ListByOwner(ctx context.Context, ownerID uint64) ([]*entity.Ticket, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+ticketCols+` FROM tickets WHERE owner_id = ? ORDER BY purchased_at DESC, id DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*entity.Ticket, 0)
	for rows.Next() {
		item, err := scanTicket(rows)
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

func scanTicket(scanner rowScanner) (*entity.Ticket, error) {
	item := &entity.Ticket{}
	var usedAt sql.NullTime
	err := scanner.Scan(
		&item.ID,
		&item.OwnerID,
		&item.EventoID,
		&item.Seat,
		&item.Code,
		&item.PurchasedAt,
		&item.Used,
		&usedAt,
	)
	if err != nil {
		return nil, err
	}
	item.PurchasedAt = item.PurchasedAt.UTC()
	item.UsedAt = timePtr(usedAt)
	return item, nil
}
