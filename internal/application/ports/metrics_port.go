package ports

// LedgerMetrics contadores del libro. Implementaciones deben ser seguras para uso concurrente.
type LedgerMetrics interface {
	MovementRecorded(direction string, qty int)
	MovementRejected(reason string)
}

// NopLedgerMetrics descarta las observaciones.
type NopLedgerMetrics struct{}

func (NopLedgerMetrics) MovementRecorded(string, int) {}
func (NopLedgerMetrics) MovementRejected(string)      {}
