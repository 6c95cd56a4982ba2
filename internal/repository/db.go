package repository

import "database/sql"

// DBTX is the query surface shared by *sql.DB and *sql.Tx. Repositories are
// built over it so the ingestion unit of work can rebind them to a transaction.
type DBTX interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}
