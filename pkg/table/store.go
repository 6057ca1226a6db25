package table

import (
	"context"

	"holdemtables-server/pkg/db"
)

// Insert records the table in the registry
func (t *Table) Insert(ctx context.Context) error {
	const query = `
INSERT INTO tables (uuid, name, status)
VALUES ($1, $2, $3)
RETURNING created`

	row := db.Instance().QueryRowContext(ctx, query, t.UUID, t.Name, string(t.status))
	return row.Scan(&t.Created)
}

// SaveStatus persists the table's lifecycle state
func (t *Table) SaveStatus(ctx context.Context) error {
	const query = `
UPDATE tables
SET status = $1,
    updated = (NOW() AT TIME ZONE 'utc')
WHERE uuid = $2`

	_, err := db.Instance().ExecContext(ctx, query, string(t.status), t.UUID)
	return err
}

// Delete removes the table from the registry once the last player leaves
func (t *Table) Delete(ctx context.Context) error {
	const query = `
DELETE FROM tables
WHERE uuid = $1`

	_, err := db.Instance().ExecContext(ctx, query, t.UUID)
	return err
}
