package matching

import (
	"github.com/reliefops/logistics-go/internal/domain/need"
	"github.com/reliefops/logistics-go/internal/domain/supply"
)

type supplyDelta struct {
	supply   *supply.Supply
	quantity int
}

type needDelta struct {
	need     *need.Need
	quantity int
}

// Transaction is the in-memory ledger of quantity deltas applied during one
// matching pass. It is single-thread scoped: it holds references to the
// mutated entities, which must outlive it (caller contract). Rollback
// reverses the recorded deltas through the same public mutators used on the
// forward path; commit is irrevocable.
type Transaction struct {
	supplyDeltas []supplyDelta
	needDeltas   []needDelta
	committed    bool
}

// NewTransaction creates an empty transaction
func NewTransaction() *Transaction {
	return &Transaction{}
}

// RecordSupplyDeduction records that q units were reserved and deducted
// from s during this pass
func (t *Transaction) RecordSupplyDeduction(s *supply.Supply, q int) {
	t.supplyDeltas = append(t.supplyDeltas, supplyDelta{supply: s, quantity: q})
}

// RecordNeedFulfillment records that q units were added to n's fulfilled
// quantity during this pass
func (t *Transaction) RecordNeedFulfillment(n *need.Need, q int) {
	t.needDeltas = append(t.needDeltas, needDelta{need: n, quantity: q})
}

// Commit marks the transaction as final. After commit no rollback occurs,
// even if subsequent code panics; the recorded deltas remain as the ledger
// of what happened.
func (t *Transaction) Commit() {
	t.committed = true
}

// Committed reports whether the transaction has been committed
func (t *Transaction) Committed() bool {
	return t.committed
}

// Rollback reverses every recorded delta, newest first. For each supply the
// deducted slice is re-added to available stock and the matching
// reservation released; the release is a deliberate no-op when the forward
// path already consumed the reservation. For each need the fulfilled delta
// is subtracted, floored at zero. A committed transaction does not roll
// back.
func (t *Transaction) Rollback() {
	if t.committed {
		return
	}

	for i := len(t.supplyDeltas) - 1; i >= 0; i-- {
		d := t.supplyDeltas[i]
		d.supply.AddStock(d.quantity)
		d.supply.ReleaseReservation(d.quantity)
	}

	for i := len(t.needDeltas) - 1; i >= 0; i-- {
		d := t.needDeltas[i]
		d.need.RevertFulfilledQuantity(d.quantity)
	}

	t.supplyDeltas = nil
	t.needDeltas = nil
}

// SupplyDeductions returns the total quantity deducted per supply so far
func (t *Transaction) SupplyDeductions() map[*supply.Supply]int {
	totals := make(map[*supply.Supply]int, len(t.supplyDeltas))
	for _, d := range t.supplyDeltas {
		totals[d.supply] += d.quantity
	}
	return totals
}
