package auditrepo

import (
	"context"

	"shopfloor/internal/core/domain/model/audit"
	"shopfloor/internal/core/domain/model/kernel"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var recordedEntries = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "shopfloor_audit_entries_total",
	Help: "Audit entries recorded, by action.",
}, []string{"action"})

// GormAuditLog implements AuditLog using GORM. It writes on the main
// connection, never the command transaction.
type GormAuditLog struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewGormAuditLog creates a new GORM audit log.
func NewGormAuditLog(db *gorm.DB, log *zap.Logger) *GormAuditLog {
	return &GormAuditLog{db: db, log: log}
}

// Record persists an audit entry. Failures are logged and swallowed.
func (l *GormAuditLog) Record(ctx context.Context, entry *audit.Entry) {
	if err := entry.Validate(); err != nil {
		l.log.Error("dropping invalid audit entry", zap.Error(err))
		return
	}

	dto := fromDomain(entry)
	if err := l.db.WithContext(ctx).Create(&dto).Error; err != nil {
		l.log.Error("failed to record audit entry",
			zap.String("orderId", entry.OrderID().String()),
			zap.String("action", entry.Action()),
			zap.Error(err))
		return
	}

	recordedEntries.WithLabelValues(entry.Action()).Inc()
}

// GetByOrder retrieves the order's audit trail, newest first.
func (l *GormAuditLog) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*audit.Entry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EntryDTO
	err := l.db.WithContext(ctx).
		Order("occurred_at DESC").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*audit.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
