package calculator

import (
	"container/heap"
	"fmt"

	"github.com/mmynk/divvy/internal/models"
)

// party is one side of the settlement matching: a user and the
// positive number of cents they still owe or are owed.
type party struct {
	id     int64
	amount int64
}

// partyHeap is a max-heap by amount, breaking ties by ascending user
// ID so plans come out identical for identical balances.
type partyHeap []party

func (h partyHeap) Len() int { return len(h) }

func (h partyHeap) Less(i, j int) bool {
	if h[i].amount != h[j].amount {
		return h[i].amount > h[j].amount
	}
	return h[i].id < h[j].id
}

func (h partyHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *partyHeap) Push(x any) { *h = append(*h, x.(party)) }

func (h *partyHeap) Pop() any {
	old := *h
	n := len(old)
	p := old[n-1]
	*h = old[:n-1]
	return p
}

// Plan computes the ordered transfer list that zeroes a balance map:
// repeatedly match the largest remaining creditor with the largest
// remaining debtor and transfer the smaller of the two outstanding
// amounts. Every transfer fully clears at least one side, so the plan
// never exceeds one fewer transfer than the number of users with a
// nonzero balance.
//
// The balances must sum to zero; anything else means the caller fed in
// a corrupted ledger and the plan fails fast.
func Plan(balances map[int64]int64) ([]models.Transfer, error) {
	var sum int64
	creditors := &partyHeap{}
	debtors := &partyHeap{}

	for id, balance := range balances {
		sum += balance
		switch {
		case balance > 0:
			*creditors = append(*creditors, party{id: id, amount: balance})
		case balance < 0:
			*debtors = append(*debtors, party{id: id, amount: -balance})
		}
	}
	if sum != 0 {
		return nil, fmt.Errorf("balances sum to %d cents, want 0", sum)
	}

	heap.Init(creditors)
	heap.Init(debtors)

	var plan []models.Transfer
	for debtors.Len() > 0 && creditors.Len() > 0 {
		debtor := heap.Pop(debtors).(party)
		creditor := heap.Pop(creditors).(party)

		amount := min(debtor.amount, creditor.amount)
		plan = append(plan, models.Transfer{
			PayerID: debtor.id,
			PayeeID: creditor.id,
			Amount:  amount,
		})

		if debtor.amount -= amount; debtor.amount > 0 {
			heap.Push(debtors, debtor)
		}
		if creditor.amount -= amount; creditor.amount > 0 {
			heap.Push(creditors, creditor)
		}
	}

	return plan, nil
}
