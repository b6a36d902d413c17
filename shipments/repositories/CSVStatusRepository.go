package repositories

import (
	"encoding/csv"
	"fmt"
	"os"
	"sync"
	"time"

	"rebar-shipment-backend/db/models"
)

const statusTimeLayout = "2006-01-02 15:04:05"

// csvStatusRepository persists the overlay as the original flat file:
// logistics_status.csv, UTF-8, header row, rewritten in full on every save.
// A process-local mutex serializes read-modify-rewrite cycles; concurrent
// processes are not coordinated (single-admin deployment), which is why the
// Postgres-backed repository exists as the alternative.
type csvStatusRepository struct {
	path string
	mu   sync.Mutex
}

func NewCSVStatusRepository(path string) StatusRepository {
	return &csvStatusRepository{path: path}
}

func (r *csvStatusRepository) GetAll() ([]models.ShipmentStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *csvStatusRepository) Upsert(identity, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.load()
	if err != nil {
		return err
	}
	rows = applyUpsert(rows, identity, status, time.Now())
	return r.save(rows)
}

// BatchUpsert applies the status to every identity in memory first, then
// persists once, so a write failure leaves the file untouched rather than
// half-updated.
func (r *csvStatusRepository) BatchUpsert(identities []string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.load()
	if err != nil {
		return err
	}
	now := time.Now()
	for _, id := range identities {
		rows = applyUpsert(rows, id, status, now)
	}
	return r.save(rows)
}

// applyUpsert updates the matching row in place or appends a new one. The
// revision counter only matters to the Postgres store but is kept consistent
// here so exports carry it.
func applyUpsert(rows []models.ShipmentStatus, identity, status string, now time.Time) []models.ShipmentStatus {
	for i := range rows {
		if rows[i].Identity == identity {
			rows[i].Status = status
			rows[i].Revision++
			rows[i].UpdateTime = now
			return rows
		}
	}
	return append(rows, models.ShipmentStatus{
		Identity:   identity,
		Status:     status,
		Revision:   1,
		UpdateTime: now,
	})
}

// load reads the whole table. A missing file is an empty table, not an error.
func (r *csvStatusRepository) load() ([]models.ShipmentStatus, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.ShipmentStatus{}, nil
		}
		return nil, fmt.Errorf("open status file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	all, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read status file: %w", err)
	}
	if len(all) < 2 {
		return []models.ShipmentStatus{}, nil
	}

	rows := make([]models.ShipmentStatus, 0, len(all)-1)
	for _, rec := range all[1:] {
		if len(rec) < 3 || rec[0] == "" {
			continue
		}
		row := models.ShipmentStatus{Identity: rec[0], Status: rec[1], Revision: 1}
		if t, err := time.ParseInLocation(statusTimeLayout, rec[2], time.Local); err == nil {
			row.UpdateTime = t
		}
		if len(rec) > 3 {
			fmt.Sscanf(rec[3], "%d", &row.Revision)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// save rewrites the whole table. Errors bubble up to the caller so an edit
// that did not hit disk is never reported as saved.
func (r *csvStatusRepository) save(rows []models.ShipmentStatus) error {
	f, err := os.Create(r.path)
	if err != nil {
		return fmt.Errorf("create status file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write([]string{"record_id", "到货状态", "update_time", "revision"}); err != nil {
		return fmt.Errorf("write status header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.Identity,
			row.Status,
			row.UpdateTime.Format(statusTimeLayout),
			fmt.Sprintf("%d", row.Revision),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write status row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush status file: %w", err)
	}
	return f.Sync()
}
