package repositories

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCSVRepo(t *testing.T) StatusRepository {
	t.Helper()
	return NewCSVStatusRepository(filepath.Join(t.TempDir(), "logistics_status.csv"))
}

func TestGetAllMissingFileIsEmptyTable(t *testing.T) {
	repo := newTestCSVRepo(t)
	rows, err := repo.GetAll()
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestUpsertIdempotence(t *testing.T) {
	repo := newTestCSVRepo(t)

	require.NoError(t, repo.Upsert("abc123", "已到货"))
	require.NoError(t, repo.Upsert("abc123", "已到货"))

	rows, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, rows, 1, "repeated upsert must not duplicate the row")
	assert.Equal(t, "abc123", rows[0].Identity)
	assert.Equal(t, "已到货", rows[0].Status)
}

func TestUpsertLastWriteWins(t *testing.T) {
	repo := newTestCSVRepo(t)

	require.NoError(t, repo.Upsert("abc123", "公司统筹中"))
	require.NoError(t, repo.Upsert("abc123", "未到货"))

	rows, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "未到货", rows[0].Status)
	assert.Equal(t, int64(2), rows[0].Revision)
}

func TestBatchUpsert(t *testing.T) {
	repo := newTestCSVRepo(t)
	require.NoError(t, repo.Upsert("one", "公司统筹中"))

	require.NoError(t, repo.BatchUpsert([]string{"one", "two", "three"}, "运输装货中"))

	rows, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.Equal(t, "运输装货中", row.Status)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logistics_status.csv")
	repo := NewCSVStatusRepository(path)

	require.NoError(t, repo.Upsert("id-1", "钢厂已接单"))
	require.NoError(t, repo.Upsert("id-2", "已到货"))

	before, err := repo.GetAll()
	require.NoError(t, err)

	// A fresh repository over the same file sees identical contents.
	reopened := NewCSVStatusRepository(path)
	after, err := reopened.GetAll()
	require.NoError(t, err)
	assert.Equal(t, before, after)

	// The file is the documented flat table: header plus one line per row.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "record_id,到货状态,update_time")
}
