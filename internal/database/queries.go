package database

// Migration bookkeeping
const (
	CreateMigrationsTableSQL = `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			id SERIAL PRIMARY KEY,
			migration_name VARCHAR(255) NOT NULL UNIQUE,
			applied_at TIMESTAMPTZ DEFAULT NOW()
		)`

	SelectAppliedMigrationsSQL = `SELECT migration_name FROM schema_migrations`

	InsertMigrationSQL = `INSERT INTO schema_migrations (migration_name) VALUES ($1)`
)

// Menu document queries
const (
	GetMenuDocumentSQL = `
		SELECT document FROM menu_documents WHERE location = $1`

	UpsertMenuDocumentSQL = `
		INSERT INTO menu_documents (location, document, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (location) DO UPDATE SET
			document = EXCLUDED.document,
			updated_at = NOW()`
)
