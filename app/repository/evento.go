package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vibast-solutions/ms-go-memberships/app/entity"
)

const eventoCols = `id, title, description, location, speaker, event_type, event_date, max_attendees, tickets_sold, requires_membership, created_at`

type EventoRepository struct {
	db TxDB
}

func NewEventoRepository(db TxDB) *EventoRepository {
	return &EventoRepository{db: db}
}

func (r *EventoRepository) Create(ctx context.Context, evento *entity.Evento) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO eventos (
				title, description, location, speaker, event_type, event_date,
				max_attendees, tickets_sold, requires_membership, created_at
			)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			evento.Title,
			evento.Description,
			evento.Location,
			evento.Speaker,
			evento.EventType,
			evento.EventDate.UTC(),
			nullableInt32Value(evento.MaxAttendees),
			evento.TicketsSold,
			evento.RequiresMembership,
			evento.CreatedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("insert evento: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		evento.ID = uint64(id)

		for _, planID := range evento.AllowedPlanIDs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO evento_allowed_plans (evento_id, plan_id) VALUES (?, ?)`, evento.ID, planID,
			); err != nil {
				if isDuplicateEntryError(err) {
					continue
				}
				return fmt.Errorf("insert evento plan: %w", err)
			}
		}
		return nil
	})
}

func (r *EventoRepository) FindByID(ctx context.Context, id uint64) (*entity.Evento, error) {
	evento, err := scanEvento(r.db.QueryRowContext(ctx, `SELECT `+eventoCols+` FROM eventos WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if evento.AllowedPlanIDs, err = r.allowedPlans(ctx, evento.ID); err != nil {
		return nil, err
	}
	return evento, nil
}

// ListUpcoming returns events dated at or after now, soonest first.
func (r *EventoRepository) ListUpcoming(ctx context.Context, now time.Time, limit int) ([]*entity.Evento, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+eventoCols+` FROM eventos ORDER BY event_date ASC, id ASC`)
	if err != nil {
		return nil, err
	}

	items := make([]*entity.Evento, 0)
	func() {
		defer rows.Close()
		for rows.Next() {
			var item *entity.Evento
			item, err = scanEvento(rows)
			if err != nil {
				return
			}
			if item.EventDate.Before(now) {
				continue
			}
			items = append(items, item)
			if limit > 0 && len(items) >= limit {
				return
			}
		}
		err = rows.Err()
	}()
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if item.AllowedPlanIDs, err = r.allowedPlans(ctx, item.ID); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (r *EventoRepository) allowedPlans(ctx context.Context, eventoID uint64) ([]uint64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT plan_id FROM evento_allowed_plans WHERE evento_id = ? ORDER BY plan_id`, eventoID)
	if err != nil {
		return nil, err
	}
	return scanIDs(rows)
}

func scanEvento(scanner rowScanner) (*entity.Evento, error) {
	item := &entity.Evento{}
	var maxAttendees sql.NullInt32
	err := scanner.Scan(
		&item.ID,
		&item.Title,
		&item.Description,
		&item.Location,
		&item.Speaker,
		&item.EventType,
		&item.EventDate,
		&maxAttendees,
		&item.TicketsSold,
		&item.RequiresMembership,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.MaxAttendees = int32Ptr(maxAttendees)
	item.EventDate = item.EventDate.UTC()
	item.CreatedAt = item.CreatedAt.UTC()
	return item, nil
}
