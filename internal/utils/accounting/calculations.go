package accounting

import (
	"fmt"

	"github.com/finledger/bookkeeping_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ValidateLineStructure checks the structural rules every journal must obey
// regardless of balance: at least two lines, at least two distinct accounts,
// and strictly positive amounts.
func ValidateLineStructure(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("journal must have at least two lines")
	}

	accounts := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if line.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("line amount must be positive for account %s", line.AccountID)
		}
		if line.LineType != domain.Debit && line.LineType != domain.Credit {
			return fmt.Errorf("line type must be DEBIT or CREDIT, got '%s'", line.LineType)
		}
		accounts[line.AccountID] = struct{}{}
	}

	if len(accounts) < 2 {
		return fmt.Errorf("journal must affect at least two different accounts")
	}
	return nil
}

// TotalsInCurrency sums debit and credit line amounts after converting each
// line into the target currency. rateFor supplies the conversion rate from a
// line's currency into the target; it is never called for lines already in
// the target currency.
func TotalsInCurrency(lines []domain.JournalLine, targetCurrency string, rateFor func(fromCurrency string) (decimal.Decimal, error)) (decimal.Decimal, decimal.Decimal, error) {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero

	for _, line := range lines {
		amount := line.Amount
		if line.CurrencyCode != targetCurrency {
			rate, err := rateFor(line.CurrencyCode)
			if err != nil {
				return decimal.Zero, decimal.Zero, fmt.Errorf("converting line %d (%s->%s): %w", line.LineNumber, line.CurrencyCode, targetCurrency, err)
			}
			amount = amount.Mul(rate)
		}

		switch line.LineType {
		case domain.Debit:
			totalDebit = totalDebit.Add(amount)
		case domain.Credit:
			totalCredit = totalCredit.Add(amount)
		default:
			return decimal.Zero, decimal.Zero, fmt.Errorf("unknown line type '%s' on line %d", line.LineType, line.LineNumber)
		}
	}

	return totalDebit, totalCredit, nil
}
