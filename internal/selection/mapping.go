// Package selection bridges user-facing serial numbers and internal record
// identifiers. Raw identifiers are never shown to the user; listings carry a
// 1-based serial column instead, and the mapping translates a chosen serial
// back to the stable identifier.
package selection

import "expensetracker/internal/models"

// Mapping is a snapshot of one listing: serial n resolves to the identifier
// of the n-th transaction in that listing. It is only valid for the listing
// it was built from and must be rebuilt before every destructive operation.
type Mapping struct {
	ids []int64
}

// NewMapping builds the serial→identifier mapping for a listing snapshot.
func NewMapping(transactions []models.Transaction) Mapping {
	ids := make([]int64, len(transactions))
	for i, tx := range transactions {
		ids[i] = tx.ID
	}
	return Mapping{ids: ids}
}

// Resolve translates a 1-based serial number to its identifier. Serials
// outside [1, Len()] report no match.
func (m Mapping) Resolve(serial int) (int64, bool) {
	if serial < 1 || serial > len(m.ids) {
		return 0, false
	}
	return m.ids[serial-1], true
}

// Len is the number of selectable records in the snapshot.
func (m Mapping) Len() int {
	return len(m.ids)
}
