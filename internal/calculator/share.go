// Package calculator implements the pure ledger arithmetic: expense
// share computation, balance aggregation, and settlement planning.
// Everything operates on integer cents; nothing here touches storage.
package calculator

import (
	"math"
	"sort"

	"github.com/mmynk/divvy/internal/apperr"
	"github.com/mmynk/divvy/internal/models"
)

// percentTolerance is the slack allowed when checking that percentage
// weights sum to 100, absorbing float representation noise.
const percentTolerance = 0.01

// ValidateShares checks an expense's split configuration at write time.
// Deposits and refunds carry no shares and always pass.
func ValidateShares(tx *models.Transaction) error {
	if tx.Amount < 0 {
		return apperr.Validationf("amount must not be negative, got %d", tx.Amount)
	}
	if tx.Kind != models.KindExpense {
		if len(tx.Shares) > 0 {
			return apperr.Validationf("%s transactions must not carry shares", tx.Kind)
		}
		return nil
	}

	switch tx.SplitKind {
	case models.SplitPersonal:
		return nil

	case models.SplitEqual:
		if len(tx.Shares) == 0 {
			return apperr.Validationf("equal split requires at least one participant")
		}
		return nil

	case models.SplitAmount:
		if len(tx.Shares) == 0 {
			return apperr.Validationf("amount split requires at least one participant")
		}
		var sum int64
		for _, share := range tx.Shares {
			if share.ShareAmount == nil {
				return apperr.Validationf("amount split requires share_amount for user %d", share.UserID)
			}
			if *share.ShareAmount < 0 {
				return apperr.Validationf("share_amount must not be negative for user %d", share.UserID)
			}
			sum += *share.ShareAmount
		}
		if sum != tx.Amount {
			return apperr.Validationf("share amounts sum to %d, want %d", sum, tx.Amount)
		}
		return nil

	case models.SplitPercentage:
		if len(tx.Shares) == 0 {
			return apperr.Validationf("percentage split requires at least one participant")
		}
		var sum float64
		for _, share := range tx.Shares {
			if share.SharePercentage == nil {
				return apperr.Validationf("percentage split requires share_percentage for user %d", share.UserID)
			}
			if *share.SharePercentage < 0 || *share.SharePercentage > 100 {
				return apperr.Validationf("share_percentage out of range for user %d: %v", share.UserID, *share.SharePercentage)
			}
			sum += *share.SharePercentage
		}
		if math.Abs(sum-100) > percentTolerance {
			return apperr.Validationf("share percentages sum to %v, want 100", sum)
		}
		return nil

	default:
		return apperr.Validationf("unknown split kind %q", tx.SplitKind)
	}
}

// ExpenseShares computes each participant's obligation in cents for an
// expense transaction. The returned map always sums exactly to the
// transaction amount. Leftover cents from integer division go to the
// participants with the lowest user IDs, one cent each, so the result
// is deterministic for a given transaction.
func ExpenseShares(tx *models.Transaction) (map[int64]int64, error) {
	if tx.Kind != models.KindExpense {
		return nil, apperr.Validationf("shares are only defined for expenses, got %s", tx.Kind)
	}
	if err := ValidateShares(tx); err != nil {
		return nil, err
	}

	switch tx.SplitKind {
	case models.SplitPersonal:
		return map[int64]int64{tx.PayerID: tx.Amount}, nil

	case models.SplitEqual:
		return equalShares(tx.Amount, participantIDs(tx.Shares)), nil

	case models.SplitAmount:
		shares := make(map[int64]int64, len(tx.Shares))
		for _, share := range tx.Shares {
			shares[share.UserID] += *share.ShareAmount
		}
		return shares, nil

	case models.SplitPercentage:
		return percentageShares(tx.Amount, tx.Shares), nil
	}

	return nil, apperr.Validationf("unknown split kind %q", tx.SplitKind)
}

// equalShares divides amount evenly among users. The first
// amount%len(users) users in ascending ID order carry one extra cent.
func equalShares(amount int64, users []int64) map[int64]int64 {
	n := int64(len(users))
	base := amount / n
	remainder := amount % n

	shares := make(map[int64]int64, n)
	for i, id := range users {
		shares[id] = base
		if int64(i) < remainder {
			shares[id]++
		}
	}
	return shares
}

// percentageShares converts percentage weights to cents: each user
// gets floor(amount * pct / sum(pct)), then the leftover cents are
// handed out one each by ascending user ID. Scaling by the actual
// weight sum rather than 100 keeps the total exact even when the
// weights pass the write-time tolerance slightly off 100, and the
// floor pass can never over-allocate.
func percentageShares(amount int64, expenseShares []models.ExpenseShare) map[int64]int64 {
	users := participantIDs(expenseShares)
	pctByUser := make(map[int64]float64, len(expenseShares))
	var pctSum float64
	for _, share := range expenseShares {
		pctByUser[share.UserID] += *share.SharePercentage
		pctSum += *share.SharePercentage
	}

	shares := make(map[int64]int64, len(users))
	var allocated int64
	for _, id := range users {
		// Nudge before flooring so exact percentages are not lost
		// to float representation (e.g. 10% of 1000).
		cents := int64(math.Floor(float64(amount)*pctByUser[id]/pctSum + 1e-9))
		shares[id] = cents
		allocated += cents
	}

	for remainder := amount - allocated; remainder > 0; {
		for _, id := range users {
			if remainder == 0 {
				break
			}
			shares[id]++
			remainder--
		}
	}
	return shares
}

// participantIDs returns the distinct share user IDs in ascending order.
func participantIDs(shares []models.ExpenseShare) []int64 {
	seen := make(map[int64]bool, len(shares))
	ids := make([]int64, 0, len(shares))
	for _, share := range shares {
		if !seen[share.UserID] {
			seen[share.UserID] = true
			ids = append(ids, share.UserID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
