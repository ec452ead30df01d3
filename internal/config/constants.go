package config

const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./libris.db"

	// DefaultCommentMaxDepth bounds how deep reply chains are materialized
	DefaultCommentMaxDepth = 32
)
