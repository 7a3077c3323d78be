package entities

import "testing"

func TestTransactionReference_RemainingAmount(t *testing.T) {
	cases := []struct {
		amount, refunded, want float64
	}{
		{100, 0, 100},
		{100, 25, 75},
		{100, 100, 0},
		{100, 120, 0},
	}
	for _, tc := range cases {
		ref := TransactionReference{Amount: tc.amount, RefundedAmount: tc.refunded}
		if got := ref.RemainingAmount(); got != tc.want {
			t.Fatalf("RemainingAmount(%v, %v) = %v, want %v", tc.amount, tc.refunded, got, tc.want)
		}
	}
}
