package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/vibast-solutions/ms-go-memberships/app/entity"
)

type fakeDB struct {
	execFn func(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func (f *fakeDB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	if f.execFn != nil {
		return f.execFn(ctx, query, args...)
	}
	return fakeResult{lastInsertID: 1, rowsAffected: 1}, nil
}

func (f *fakeDB) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeDB) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

type fakeResult struct {
	lastInsertID int64
	rowsAffected int64
	lastErr      error
	rowsErr      error
}

func (r fakeResult) LastInsertId() (int64, error) {
	return r.lastInsertID, r.lastErr
}

func (r fakeResult) RowsAffected() (int64, error) {
	return r.rowsAffected, r.rowsErr
}

func TestSubscriptionCreateSetsActiveSlot(t *testing.T) {
	var gotActive interface{}
	repo := NewSubscriptionRepository(&fakeDB{execFn: func(_ context.Context, _ string, args ...interface{}) (sql.Result, error) {
		gotActive = args[3]
		return fakeResult{lastInsertID: 22}, nil
	}})

	now := time.Now().UTC()
	s := &entity.Subscription{
		MemberID:    7,
		PlanID:      1,
		Status:      entity.SubscriptionStatusActive,
		StartedAt:   now,
		NextBilling: now.Add(entity.BillingPeriod),
		AutoRenew:   true,
		UpdatedAt:   now,
	}
	if err := repo.Create(context.Background(), s); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if s.ID != 22 {
		t.Fatalf("expected id=22, got %d", s.ID)
	}
	if gotActive != uint64(7) {
		t.Fatalf("expected active_member_id=7, got %#v", gotActive)
	}
}

func TestSubscriptionCreateInactiveLeavesSlotEmpty(t *testing.T) {
	var gotActive interface{} = "unset"
	repo := NewSubscriptionRepository(&fakeDB{execFn: func(_ context.Context, _ string, args ...interface{}) (sql.Result, error) {
		gotActive = args[3]
		return fakeResult{lastInsertID: 1}, nil
	}})

	err := repo.Create(context.Background(), &entity.Subscription{MemberID: 7, Status: entity.SubscriptionStatusSuspended})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotActive != nil {
		t.Fatalf("expected nil active_member_id, got %#v", gotActive)
	}
}

func TestSubscriptionCreateMapsDuplicate(t *testing.T) {
	repo := NewSubscriptionRepository(&fakeDB{execFn: func(_ context.Context, _ string, _ ...interface{}) (sql.Result, error) {
		return nil, &mysqlDriver.MySQLError{Number: 1062, Message: "duplicate"}
	}})

	err := repo.Create(context.Background(), &entity.Subscription{Status: entity.SubscriptionStatusActive})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestSubscriptionCancelNoRowsAffected(t *testing.T) {
	repo := NewSubscriptionRepository(&fakeDB{execFn: func(_ context.Context, _ string, _ ...interface{}) (sql.Result, error) {
		return fakeResult{rowsAffected: 0}, nil
	}})

	changed, err := repo.Cancel(context.Background(), 1, time.Now())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if changed {
		t.Fatal("expected no change")
	}
}

func TestSubscriptionRenewPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	repo := NewSubscriptionRepository(&fakeDB{execFn: func(_ context.Context, _ string, _ ...interface{}) (sql.Result, error) {
		return fakeResult{rowsErr: boom}, nil
	}})

	if _, err := repo.Renew(context.Background(), 1, time.Now(), time.Now()); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestIsDuplicateEntryError(t *testing.T) {
	if !isDuplicateEntryError(&mysqlDriver.MySQLError{Number: 1062}) {
		t.Fatal("expected true for mysql duplicate error")
	}
	if isDuplicateEntryError(&mysqlDriver.MySQLError{Number: 1452}) {
		t.Fatal("expected false for mysql foreign key error")
	}
	if isDuplicateEntryError(errors.New("boom")) {
		t.Fatal("expected false for generic error")
	}
}

func TestNullableHelpers(t *testing.T) {
	if nullableStringValue(nil) != nil {
		t.Fatal("expected nil for nil string")
	}
	s := "  a@example.com  "
	if got := nullableStringValue(&s); got != "a@example.com" {
		t.Fatalf("expected trimmed value, got %#v", got)
	}
	if nullableTimeValue(nil) != nil {
		t.Fatal("expected nil for nil time")
	}
	if nullableInt32Value(nil) != nil || nullableUint64Value(nil) != nil {
		t.Fatal("expected nil for nil numbers")
	}
	n := int32(5)
	if got := nullableInt32Value(&n); got != int32(5) {
		t.Fatalf("expected 5, got %#v", got)
	}
	if placeholders(3) != "?, ?, ?" || placeholders(0) != "" {
		t.Fatalf("unexpected placeholders: %q", placeholders(3))
	}
}

func TestLockSuffix(t *testing.T) {
	if DialectMySQL.lockSuffix() != " FOR UPDATE" {
		t.Fatal("expected row lock on mysql")
	}
	if DialectSQLite.lockSuffix() != "" {
		t.Fatal("expected no row lock on sqlite")
	}
}

type fakeRowScanner struct {
	id          uint64
	memberID    uint64
	planID      uint64
	status      string
	startedAt   time.Time
	nextBilling time.Time
	autoRenew   bool
	endedAt     sql.NullTime
	updatedAt   time.Time
	err         error
}

func (f fakeRowScanner) Scan(dest ...interface{}) error {
	if f.err != nil {
		return f.err
	}
	*(dest[0].(*uint64)) = f.id
	*(dest[1].(*uint64)) = f.memberID
	*(dest[2].(*uint64)) = f.planID
	*(dest[3].(*string)) = f.status
	*(dest[4].(*time.Time)) = f.startedAt
	*(dest[5].(*time.Time)) = f.nextBilling
	*(dest[6].(*bool)) = f.autoRenew
	*(dest[7].(*sql.NullTime)) = f.endedAt
	*(dest[8].(*time.Time)) = f.updatedAt
	return nil
}

func TestScanSubscription(t *testing.T) {
	now := time.Now().UTC()
	ended := now.Add(time.Hour)

	item, err := scanSubscription(fakeRowScanner{
		id:          9,
		memberID:    3,
		planID:      2,
		status:      entity.SubscriptionStatusCancelled,
		startedAt:   now,
		nextBilling: now.Add(entity.BillingPeriod),
		endedAt:     sql.NullTime{Time: ended, Valid: true},
		updatedAt:   now,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if item.ID != 9 || item.MemberID != 3 || item.PlanID != 2 {
		t.Fatalf("unexpected scan result: %+v", item)
	}
	if item.EndedAt == nil || !item.EndedAt.Equal(ended) {
		t.Fatalf("expected ended_at to be populated: %+v", item)
	}
}

func TestScanSubscriptionError(t *testing.T) {
	if _, err := scanSubscription(fakeRowScanner{err: sql.ErrNoRows}); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}
