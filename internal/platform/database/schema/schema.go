// Package schema names the tables and columns of the sitenav database.
//
// Repositories build their SQL from these definitions so a column rename is a
// one-line change here and in data/migrations.
package schema

import "strings"

// List joins columns for a SELECT or INSERT column list.
func List(columns []string) string {
	return strings.Join(columns, ", ")
}
