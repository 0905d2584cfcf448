// Package export defines the port to the spreadsheet mirror that receives
// exported transactions.
package export

import (
	"context"

	"wealthwallet/internal/core"
)

// TransactionWriter appends a transaction row to the export destination and
// returns a reference to the written row.
type TransactionWriter interface {
	Append(ctx context.Context, t core.Transaction) (string, error)
}
