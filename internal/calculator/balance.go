package calculator

import (
	"fmt"

	"github.com/mmynk/divvy/internal/models"
)

// Balances folds a period's transactions into a net balance per user,
// in cents. Positive means the pool owes the user, negative means the
// user owes the pool. The values always sum to zero because every cent
// credited to a payer is debited across participants.
//
// Only approved transactions count; anything else is skipped.
//
//   - expense: payer +amount, each participant -share
//   - deposit: payer +amount
//   - refund:  payer -amount
func Balances(txns []*models.Transaction) (map[int64]int64, error) {
	balances := make(map[int64]int64)

	for _, tx := range txns {
		if tx.Status != models.StatusApproved {
			continue
		}

		switch tx.Kind {
		case models.KindExpense:
			shares, err := ExpenseShares(tx)
			if err != nil {
				return nil, fmt.Errorf("failed to compute shares for transaction %d: %w", tx.ID, err)
			}
			balances[tx.PayerID] += tx.Amount
			for userID, share := range shares {
				balances[userID] -= share
			}

		case models.KindDeposit:
			balances[tx.PayerID] += tx.Amount

		case models.KindRefund:
			balances[tx.PayerID] -= tx.Amount

		default:
			return nil, fmt.Errorf("unknown transaction kind %q on transaction %d", tx.Kind, tx.ID)
		}
	}

	return balances, nil
}

// ApplySettlements folds executed settlement transfers into a balance
// map. A transfer moves the payer (debtor) toward zero from below and
// the payee (creditor) toward zero from above, so a fully settled
// period reads all zeros.
func ApplySettlements(balances map[int64]int64, settlements []*models.Settlement) {
	for _, s := range settlements {
		balances[s.PayerID] += s.Amount
		balances[s.PayeeID] -= s.Amount
	}
}
