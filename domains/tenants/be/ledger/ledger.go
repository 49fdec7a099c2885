// Package ledger implements the month-wise rent tracking rules: classifying a
// calendar month for a tenant and applying the mark-paid / toggle mutations
// that keep the running dues balance consistent with the rent history.
package ledger

import (
	"errors"
	"fmt"
	"time"
)

// Status classifies a calendar month on a tenant's rent grid.
type Status string

const (
	StatusPaid          Status = "Paid"
	StatusPending       Status = "Pending"
	StatusFuture        Status = "Future"
	StatusNotApplicable Status = "N/A"
)

// ErrMonthOutOfRange is returned when a mutation targets a month before the
// tenant's join month or after the current month.
var ErrMonthOutOfRange = errors.New("month out of range")

// monthLayout is the wire format for month labels, e.g. "Dec 2024".
// English three-letter abbreviations, matched exactly.
const monthLayout = "Jan 2006"

// Month identifies a calendar year and month, the granularity rent is tracked at.
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parses a wire label such as "Dec 2024".
func ParseMonth(label string) (Month, error) {
	t, err := time.Parse(monthLayout, label)
	if err != nil {
		return Month{}, fmt.Errorf("parse month label %q: %w", label, err)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// MonthOf truncates a point in time to its calendar month.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Label renders the canonical wire form, e.g. "Dec 2024".
func (m Month) Label() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format(monthLayout)
}

// After reports whether m is strictly after o.
func (m Month) After(o Month) bool {
	return m.Year > o.Year || (m.Year == o.Year && m.Month > o.Month)
}

// Before reports whether m is strictly before o.
func (m Month) Before(o Month) bool {
	return o.After(m)
}

// Record is one month's entry in a tenant's rent history. Status is only ever
// Paid or Pending on a persisted record; Future and N/A months are classified
// dynamically and never stored. PaymentDate is set iff Status is Paid.
type Record struct {
	Month       string     `json:"month"`
	Amount      int64      `json:"amount"`
	Status      Status     `json:"status"`
	PaymentDate *time.Time `json:"paymentDate,omitempty"`
}

// Classify derives the display status of target for a tenant who joined on
// joinDate, evaluated at today. Precedence: Future, then N/A, then whatever
// the rent history says (absence of a record means Pending).
func Classify(joinDate, today time.Time, target Month, records []Record) Status {
	if target.After(MonthOf(today)) {
		return StatusFuture
	}
	if target.Before(MonthOf(joinDate)) {
		return StatusNotApplicable
	}
	if rec := find(records, target.Label()); rec != nil && rec.Status == StatusPaid {
		return StatusPaid
	}
	return StatusPending
}

// MarkPaid flips the record for label from Pending to Paid, stamping now as
// the payment date. The returned delta is the adjustment to apply to the
// tenant's total dues (always zero or negative). A missing or already-Paid
// record is a no-op, not an error.
func MarkPaid(records []Record, label string, now time.Time) (updated []Record, duesDelta int64, changed bool) {
	rec := find(records, label)
	if rec == nil || rec.Status != StatusPending {
		return records, 0, false
	}
	rec.Status = StatusPaid
	rec.PaymentDate = &now
	return records, -rec.Amount, true
}

// Toggle flips the payment state of the month identified by label.
//
// An existing Paid record becomes Pending again (the debt is re-established,
// dues go up by the record amount); a Pending record becomes Paid (dues go
// down). When no record exists yet the month is appended as Paid for
// rentAmount with dues unchanged, since an unrecorded month was never counted
// as owed. Months classifying as Future or N/A are rejected with
// ErrMonthOutOfRange rather than silently creating records outside the
// tenant's active range.
func Toggle(records []Record, label string, joinDate, today time.Time, rentAmount int64, now time.Time) ([]Record, int64, error) {
	target, err := ParseMonth(label)
	if err != nil {
		return records, 0, err
	}

	switch Classify(joinDate, today, target, records) {
	case StatusFuture, StatusNotApplicable:
		return records, 0, fmt.Errorf("%w: %s", ErrMonthOutOfRange, target.Label())
	}

	rec := find(records, target.Label())
	if rec == nil {
		return append(records, Record{
			Month:       target.Label(),
			Amount:      rentAmount,
			Status:      StatusPaid,
			PaymentDate: &now,
		}), 0, nil
	}

	if rec.Status == StatusPaid {
		rec.Status = StatusPending
		rec.PaymentDate = nil
		return records, rec.Amount, nil
	}
	rec.Status = StatusPaid
	rec.PaymentDate = &now
	return records, -rec.Amount, nil
}

// PendingTotal sums the amounts of all Pending records. Useful for auditing
// the incrementally maintained dues balance against the history itself.
func PendingTotal(records []Record) int64 {
	var total int64
	for _, rec := range records {
		if rec.Status == StatusPending {
			total += rec.Amount
		}
	}
	return total
}

func find(records []Record, label string) *Record {
	for i := range records {
		if records[i].Month == label {
			return &records[i]
		}
	}
	return nil
}
