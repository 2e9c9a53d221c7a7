package connections

import (
	"github.com/dd0wney/strongties/pkg/table"
)

// Column names of a normalized connection table
const (
	ColumnName      = "name"
	ColumnCompany   = "company"
	ColumnPosition  = "position"
	ColumnEmail     = "email"
	ColumnOwner     = "owner_user_id"
	ColumnFirstName = "first_name"
	ColumnLastName  = "last_name"
	ColumnHashID    = "hash_id"
)

// leadingColumns fixes the display order; remaining columns follow in
// their existing order.
var leadingColumns = []string{ColumnName, ColumnCompany, ColumnPosition, ColumnEmail, ColumnOwner}

// ConnectionRecord is one normalized person entry contributed by one user.
type ConnectionRecord struct {
	Name        string
	Company     table.Cell
	Position    table.Cell
	OwnerUserID string

	// Extra holds the non-null passthrough columns.
	Extra map[string]string
}

// Records returns a typed view of a normalized table. Rows with a null name
// are skipped.
func Records(t *table.Table) []ConnectionRecord {
	cols := t.Columns()
	out := make([]ConnectionRecord, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		var rec ConnectionRecord
		named := false
		for ci, col := range cols {
			c := row[ci]
			switch col {
			case ColumnName:
				rec.Name, named = c.Value, c.Valid
			case ColumnCompany:
				rec.Company = c
			case ColumnPosition:
				rec.Position = c
			case ColumnOwner:
				rec.OwnerUserID = c.String()
			default:
				if !c.Valid {
					continue
				}
				if rec.Extra == nil {
					rec.Extra = make(map[string]string)
				}
				rec.Extra[col] = c.Value
			}
		}
		if named {
			out = append(out, rec)
		}
	}
	return out
}

// CanonicalOrder returns t with columns reordered to name, company,
// position, email, owner_user_id, then all others.
func CanonicalOrder(t *table.Table) *table.Table {
	order := make([]string, 0, len(t.Columns()))
	lead := make(map[string]struct{}, len(leadingColumns))
	for _, c := range leadingColumns {
		lead[c] = struct{}{}
		if t.Has(c) {
			order = append(order, c)
		}
	}
	for _, c := range t.Columns() {
		if _, ok := lead[c]; !ok {
			order = append(order, c)
		}
	}
	return t.Select(order...)
}
