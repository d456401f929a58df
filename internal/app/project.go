package app

import "github.com/transfa/instruction-service/internal/domain"

// ProjectBalances walks the snapshot in its original order and emits
// fresh copies of the two accounts the instruction references, each
// carrying its pre-transfer balance. When shouldExecute is true the
// debit side loses the amount and the credit side gains it; otherwise
// balances are echoed unchanged. Uninvolved accounts are dropped, and the
// emitted pair keeps snapshot order, not debit/credit order.
func ProjectBalances(parsed domain.ParsedInstruction, accounts []domain.Account, shouldExecute bool) []domain.ProjectedAccount {
	projected := make([]domain.ProjectedAccount, 0, 2)

	for _, account := range accounts {
		switch account.ID {
		case parsed.DebitAccount:
			balance := account.Balance
			if shouldExecute {
				balance -= parsed.Amount
			}
			projected = append(projected, domain.ProjectedAccount{
				ID:            account.ID,
				Balance:       balance,
				BalanceBefore: account.Balance,
				Currency:      account.Currency,
			})
		case parsed.CreditAccount:
			balance := account.Balance
			if shouldExecute {
				balance += parsed.Amount
			}
			projected = append(projected, domain.ProjectedAccount{
				ID:            account.ID,
				Balance:       balance,
				BalanceBefore: account.Balance,
				Currency:      account.Currency,
			})
		}
	}

	return projected
}
