package inventory

// Shortfall unidades que faltan para cubrir `needed` con `onHand`: max(0, needed-onHand).
func Shortfall(needed, onHand int) int {
	if needed <= onHand {
		return 0
	}
	return needed - onHand
}

// CanWithdraw true si el retiro no deja el stock negativo.
func CanWithdraw(qty, onHand int) bool {
	return qty > 0 && qty <= onHand
}
