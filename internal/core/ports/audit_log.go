package ports

import (
	"context"

	"shopfloor/internal/core/domain/model/audit"
	"shopfloor/internal/core/domain/model/kernel"
)

// AuditLog records audit entries for order state changes.
//
// Record is fire-and-forget: implementations log and swallow their own
// failures so an audit outage never fails the command that triggered it.
// Handlers call it after the transaction commits.
type AuditLog interface {
	Record(ctx context.Context, entry *audit.Entry)

	// GetByOrder retrieves the order's audit trail, newest first.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*audit.Entry, error)
}
