package sheets

import (
	"context"

	"parksmart/internal/core"
)

// Ports for the off-device spend backup.
type (
	// SpendWriter appends one spend record to the backup sheet.
	SpendWriter interface {
		Append(ctx context.Context, rec core.SpendRecord) (rowRef string, err error)
	}

	// SpendDeleter removes a previously synced record by id.
	SpendDeleter interface {
		Delete(ctx context.Context, id string) error
	}
)
