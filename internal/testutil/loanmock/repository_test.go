package loanmock

import (
	"context"
	"errors"
	"testing"

	domain "familyledger/internal/domain/loan"
)

func TestRepo_Create(t *testing.T) {
	ctx := context.Background()
	l := &domain.Loan{LoanID: "LN-1"}

	// Uses provided func
	called := false
	wantErr := errors.New("boom")
	m := &Repo{
		CreateFn: func(gotCtx context.Context, got *domain.Loan) error {
			called = true
			if gotCtx != ctx {
				t.Fatalf("Create ctx mismatch")
			}
			if got != l {
				t.Fatalf("Create arg mismatch")
			}
			return wantErr
		},
	}
	if err := m.Create(ctx, l); !errors.Is(err, wantErr) {
		t.Fatalf("Create: want %v, got %v", wantErr, err)
	}
	if !called {
		t.Fatalf("CreateFn not called")
	}

	// Default (nil func) → no-op, nil error
	m = &Repo{}
	if err := m.Create(ctx, l); err != nil {
		t.Fatalf("Create default: want nil, got %v", err)
	}
}

func TestRepo_GetByLoanID(t *testing.T) {
	ctx := context.Background()
	want := &domain.Loan{LoanID: "LN-2"}

	m := &Repo{
		GetByLoanIDFn: func(gotCtx context.Context, loanID string) (*domain.Loan, error) {
			if loanID != "LN-2" {
				t.Fatalf("GetByLoanID loanID mismatch: got %s", loanID)
			}
			return want, nil
		},
	}
	got, err := m.GetByLoanID(ctx, "LN-2")
	if err != nil || got != want {
		t.Fatalf("GetByLoanID: got %+v, %v", got, err)
	}

	// Default (nil func) → context.Canceled
	m = &Repo{}
	got, err = m.GetByLoanID(ctx, "LN-2")
	if err != context.Canceled {
		t.Fatalf("GetByLoanID default: want context.Canceled, got %v", err)
	}
	if got != nil {
		t.Fatalf("GetByLoanID default: want nil loan, got %+v", got)
	}
	if _, err := m.GetByLoanIDForUpdate(ctx, "LN-2"); err != context.Canceled {
		t.Fatalf("GetByLoanIDForUpdate default: want context.Canceled, got %v", err)
	}
}

func TestRepo_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	var gotFrom []domain.Status
	m := &Repo{
		UpdateStatusFn: func(_ context.Context, id uint64, to domain.Status, from ...domain.Status) (bool, error) {
			if id != 5 || to != domain.StatusClosed {
				t.Fatalf("UpdateStatus args mismatch: %d %s", id, to)
			}
			gotFrom = from
			return false, nil
		},
	}
	changed, err := m.UpdateStatus(ctx, 5, domain.StatusClosed, domain.StatusActive, domain.StatusInArrears)
	if err != nil || changed {
		t.Fatalf("UpdateStatus: changed=%v err=%v", changed, err)
	}
	if len(gotFrom) != 2 || gotFrom[1] != domain.StatusInArrears {
		t.Fatalf("variadic from not forwarded: %v", gotFrom)
	}

	// Default (nil func) → reports a change
	m = &Repo{}
	if changed, err := m.UpdateStatus(ctx, 5, domain.StatusClosed); err != nil || !changed {
		t.Fatalf("UpdateStatus default: changed=%v err=%v", changed, err)
	}
}

func TestRepo_ListDefaults(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}
	if _, err := m.List(ctx, 0); err != context.Canceled {
		t.Fatalf("List default: want context.Canceled, got %v", err)
	}

	m.ListFn = func(_ context.Context, ownerID uint64) ([]domain.Loan, error) {
		return []domain.Loan{{OwnerID: ownerID}}, nil
	}
	got, err := m.List(ctx, 4)
	if err != nil || len(got) != 1 || got[0].OwnerID != 4 {
		t.Fatalf("List: %+v %v", got, err)
	}
}
