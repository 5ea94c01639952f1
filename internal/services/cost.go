package services

import "pos_system/internal/models"

// ComputeTotal sums quantity × unit price over the given lines. Pure; the
// caller decides which lines count (active-only for running totals and
// confirmation, everything for audit views). An empty slice totals 0.
func ComputeTotal(lines []models.OrderLine) float64 {
	var total float64
	for _, line := range lines {
		total += line.Subtotal()
	}
	return total
}

// ActiveLines filters to the lines currently included in the order.
func ActiveLines(lines []models.OrderLine) []models.OrderLine {
	active := make([]models.OrderLine, 0, len(lines))
	for _, line := range lines {
		if line.Item.IsActive {
			active = append(active, line)
		}
	}
	return active
}
