// Package sqldocs exposes the chemical inventory SQL bundle directly from the
// docs tree.
package sqldocs

import _ "embed"

// Postgres contains the chemical inventory Postgres DDL bundle.
//
//go:embed chemical_core.sql
var Postgres string
