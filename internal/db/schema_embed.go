package db

import _ "embed"

// Schema holds the product table DDL for integration tests and operators.
// The service itself never executes it; the table is expected to exist.
//
//go:embed schema.sql
var Schema string
