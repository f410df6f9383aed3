package ports

// Metrics contadores de negocio.
type Metrics interface {
	ObserveTransition(from, to string)
	ObserveWithdrawal(qty int)
	ObserveReceipt(qty int)
	ObservePartOrderDelivered()
	ObservePromotion()
}

// NopMetrics descarta todo (tests, memoria sin /metrics).
type NopMetrics struct{}

func (NopMetrics) ObserveTransition(string, string) {}
func (NopMetrics) ObserveWithdrawal(int)            {}
func (NopMetrics) ObserveReceipt(int)               {}
func (NopMetrics) ObservePartOrderDelivered()       {}
func (NopMetrics) ObservePromotion()                {}
