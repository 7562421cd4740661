package model

// TripBackup bundles a trip with everything it owns. Produced by the
// cloud document conversion during a restore and consumed by the local
// store's transactional reinsert.
type TripBackup struct {
	Trip       Trip
	Activities []Activity
	Expenses   []Expense
}
