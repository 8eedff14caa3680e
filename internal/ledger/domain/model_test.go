package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		name   string
		paid   float64
		amount float64
		want   TransactionStatus
	}{
		{name: "unpaid", paid: 0, amount: 100, want: StatusUnpaid},
		{name: "negative paid", paid: -5, amount: 100, want: StatusUnpaid},
		{name: "partial", paid: 40, amount: 100, want: StatusPartial},
		{name: "almost full", paid: 99.99, amount: 100, want: StatusPartial},
		{name: "exact", paid: 100, amount: 100, want: StatusPaid},
		{name: "overpaid", paid: 120, amount: 100, want: StatusPaid},
		{name: "zero amount", paid: 0, amount: 0, want: StatusPaid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DeriveStatus(tc.paid, tc.amount))
		})
	}
}
