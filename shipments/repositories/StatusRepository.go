package repositories

import "rebar-shipment-backend/db/models"

// StatusRepository is the durable arrival-status overlay: one row per record
// identity, holding the latest operator-entered status. Upsert is idempotent
// and last-write-wins; BatchUpsert applies one status to many identities and
// persists them together. Rows are never deleted by normal operation --
// identities orphaned by workbook edits simply stop matching.
type StatusRepository interface {
	GetAll() ([]models.ShipmentStatus, error)
	Upsert(identity, status string) error
	BatchUpsert(identities []string, status string) error
}
