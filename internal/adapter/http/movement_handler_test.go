package http

import (
	"errors"
	stdhttp "net/http"
	"testing"

	"familyledger/internal/domain/ledger"
	ledgeruc "familyledger/internal/usecase/ledger"
	loanuc "familyledger/internal/usecase/loan"

	"github.com/stretchr/testify/require"
)

func (f *fixture) loanStatus(token, loanID string) string {
	f.t.Helper()
	rec := f.doAs(token, stdhttp.MethodGet, "/loans/"+loanID, nil)
	require.Equal(f.t, stdhttp.StatusOK, rec.Code, rec.Body.String())
	return decode[loanuc.LoanDTO](f.t, rec).Status
}

func TestPayment_SettlesAndClosesLoan(t *testing.T) {
	f := newFixture(t)
	admin := f.adminToken()
	ownerID, client := f.newClient(admin, "nina")
	loanID := f.newLoan(admin, ownerID, "1000000")
	path := "/loans/" + loanID + "/payments"

	rec := f.doAs(client, stdhttp.MethodPost, path, map[string]string{"amount": "400000", "reference": "bank-transfer-1"})
	require.Equal(t, stdhttp.StatusCreated, rec.Code, rec.Body.String())
	mv := decode[ledgeruc.MovementDTO](t, rec)
	require.Equal(t, "payment", mv.Kind)
	require.Equal(t, loanID, mv.LoanID)
	require.Equal(t, "bank-transfer-1", *mv.Reference)
	require.Equal(t, "active", f.loanStatus(client, loanID))

	rec = f.doAs(client, stdhttp.MethodPost, path, map[string]string{"amount": "600000"})
	require.Equal(t, stdhttp.StatusCreated, rec.Code, rec.Body.String())
	require.Equal(t, "closed", f.loanStatus(client, loanID))

	// nothing left to pay
	rec = f.doAs(client, stdhttp.MethodPost, path, map[string]string{"amount": "1"})
	require.Equal(t, stdhttp.StatusConflict, rec.Code)
	require.Equal(t, "exceeds_balance", decode[ErrorResponse](t, rec).Code)
}

func TestPayment_Rejections(t *testing.T) {
	f := newFixture(t)
	admin := f.adminToken()
	ninaID, nina := f.newClient(admin, "nina")
	_, omar := f.newClient(admin, "omar")
	loanID := f.newLoan(admin, ninaID, "100")
	path := "/loans/" + loanID + "/payments"

	rec := f.doAs(nina, stdhttp.MethodPost, path, map[string]string{"amount": "-5"})
	require.Equal(t, stdhttp.StatusUnprocessableEntity, rec.Code)
	require.True(t, hasField(decode[ErrorResponse](t, rec).Details, "amount"))

	rec = f.doAs(nina, stdhttp.MethodPost, path, map[string]string{"amount": "99.995"})
	require.Equal(t, stdhttp.StatusUnprocessableEntity, rec.Code)
	require.True(t, hasField(decode[ErrorResponse](t, rec).Details, "amount"))

	rec = f.doAs(nina, stdhttp.MethodPost, path, map[string]string{"amount": "100.01"})
	require.Equal(t, stdhttp.StatusConflict, rec.Code)

	rec = f.doAs(omar, stdhttp.MethodPost, path, map[string]string{"amount": "10"})
	require.Equal(t, stdhttp.StatusNotFound, rec.Code)

	rec = f.doAs(nina, stdhttp.MethodPost, "/loans/0123456789abcdef0123456789abcdef/payments", map[string]string{"amount": "10"})
	require.Equal(t, stdhttp.StatusNotFound, rec.Code)

	// only the disbursement record was written
	require.Len(t, f.store.All(), 1)
}

func TestPayment_IdempotentRetry(t *testing.T) {
	f := newFixture(t)
	admin := f.adminToken()
	ownerID, client := f.newClient(admin, "nina")
	loanID := f.newLoan(admin, ownerID, "1000")
	path := "/loans/" + loanID + "/payments"
	reqID := "3f9a6a1b3d544fbe8b3a6b3e8d6b2c88"

	first := f.doAs(client, stdhttp.MethodPost, path, map[string]string{"amount": "100"}, reqID)
	require.Equal(t, stdhttp.StatusCreated, first.Code, first.Body.String())
	again := f.doAs(client, stdhttp.MethodPost, path, map[string]string{"amount": "100"}, reqID)
	require.Equal(t, stdhttp.StatusCreated, again.Code)
	require.Equal(t, first.Body.String(), again.Body.String())
	require.Equal(t, "true", again.Header().Get("Idempotent-Replay"))

	payments := 0
	for _, m := range f.store.All() {
		if m.Kind == ledger.KindPayment {
			payments++
		}
	}
	require.Equal(t, 1, payments)

	// mutating calls without the headers are refused
	rec := f.doAs(client, stdhttp.MethodPost, path, map[string]string{"amount": "100"}, "")
	require.Equal(t, stdhttp.StatusBadRequest, rec.Code)
}

func TestPayment_StatusWriteFailureIsPartial(t *testing.T) {
	f := newFixture(t)
	admin := f.adminToken()
	ownerID, client := f.newClient(admin, "nina")
	loanID := f.newLoan(admin, ownerID, "500")
	f.db.failStatusWrites(errors.New("db unavailable"))

	rec := f.doAs(client, stdhttp.MethodPost, "/loans/"+loanID+"/payments", map[string]string{"amount": "500"})
	require.Equal(t, stdhttp.StatusAccepted, rec.Code, rec.Body.String())

	out := decode[partialResponse](t, rec)
	require.NotNil(t, out.Movement)
	require.Equal(t, "500", out.Movement.Amount.String())
	require.Contains(t, out.Warning, "close loan")

	// the payment stands; reconcile repairs the flag once the store recovers
	f.db.failStatusWrites(nil)
	require.Equal(t, "active", f.loanStatus(client, loanID))
	rec = f.doAs(admin, stdhttp.MethodPost, "/loans/"+loanID+"/reconcile", nil)
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	require.Equal(t, "closed", decode[loanuc.ReconcileDTO](t, rec).Status)
}

func TestForgive(t *testing.T) {
	f := newFixture(t)
	admin := f.adminToken()
	ownerID, client := f.newClient(admin, "nina")
	loanID := f.newLoan(admin, ownerID, "1000000")
	path := "/loans/" + loanID + "/forgive"

	rec := f.doAs(client, stdhttp.MethodPost, "/loans/"+loanID+"/payments", map[string]string{"amount": "300000"})
	require.Equal(t, stdhttp.StatusCreated, rec.Code)

	rec = f.doAs(client, stdhttp.MethodPost, path, nil)
	require.Equal(t, stdhttp.StatusForbidden, rec.Code)

	rec = f.doAs(admin, stdhttp.MethodPost, path, nil)
	require.Equal(t, stdhttp.StatusCreated, rec.Code, rec.Body.String())
	mv := decode[ledgeruc.MovementDTO](t, rec)
	require.Equal(t, "adjustment", mv.Kind)
	require.Equal(t, "-700000", mv.Amount.String())
	require.Equal(t, ledger.ForgivenessReference, *mv.Reference)
	require.Equal(t, "debt forgiveness", *mv.Note)
	require.Equal(t, "forgiven", f.loanStatus(client, loanID))

	rec = f.doAs(admin, stdhttp.MethodPost, path, map[string]string{"note": "again"})
	require.Equal(t, stdhttp.StatusConflict, rec.Code)
	require.Equal(t, "no_outstanding_debt", decode[ErrorResponse](t, rec).Code)
}

func TestRecordMovement(t *testing.T) {
	f := newFixture(t)
	admin := f.adminToken()
	ownerID, client := f.newClient(admin, "nina")
	loanID := f.newLoan(admin, ownerID, "1000")
	path := "/loans/" + loanID + "/movements"

	rec := f.doAs(admin, stdhttp.MethodPost, path, map[string]string{"kind": "interest", "amount": "35", "note": "March"})
	require.Equal(t, stdhttp.StatusCreated, rec.Code, rec.Body.String())
	rec = f.doAs(admin, stdhttp.MethodPost, path, map[string]string{"kind": "charge", "amount": "15"})
	require.Equal(t, stdhttp.StatusCreated, rec.Code)

	rec = f.doAs(client, stdhttp.MethodGet, "/loans/"+loanID+"/balance", nil)
	require.Equal(t, "1050", decode[ledgeruc.BalanceDTO](t, rec).Balance.String())

	rec = f.doAs(client, stdhttp.MethodPost, path, map[string]string{"kind": "interest", "amount": "1"})
	require.Equal(t, stdhttp.StatusForbidden, rec.Code)

	rec = f.doAs(admin, stdhttp.MethodPost, path, map[string]string{"kind": "payment", "amount": "1"})
	require.Equal(t, stdhttp.StatusUnprocessableEntity, rec.Code)

	rec = f.doAs(admin, stdhttp.MethodPost, path, map[string]string{"kind": "adjustment", "amount": "0"})
	require.Equal(t, stdhttp.StatusUnprocessableEntity, rec.Code)

	rec = f.doAs(admin, stdhttp.MethodPost, path, map[string]string{"kind": "charge", "amount": "0.001"})
	require.Equal(t, stdhttp.StatusUnprocessableEntity, rec.Code)
	require.True(t, hasField(decode[ErrorResponse](t, rec).Details, "amount"))
}
