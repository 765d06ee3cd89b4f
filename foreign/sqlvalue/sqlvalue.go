// Package sqlvalue exposes scanned database rows through the
// foreign-value protocol.
//
// Each row is a members-bearing value: columns become members, SQL
// NULL becomes the foreign null, TIMESTAMP columns scanned as
// time.Time answer the instant message, and BLOB columns expose
// buffer elements. Rows may carry a logical type name, which is the
// meta qualified name kona.toml mappings key on.
package sqlvalue

import (
	"database/sql"
	"fmt"

	"github.com/chazu/kona/foreign"
	"github.com/chazu/kona/foreign/hostvalue"
)

// Row adapts one scanned row. values holds the driver values in column
// order, as produced by scanning into *any. name may be empty for
// ad-hoc rows; when set it becomes the row's meta qualified name.
func Row(name string, columns []string, values []any) (foreign.Value, error) {
	if len(columns) != len(values) {
		return nil, fmt.Errorf("sqlvalue: %d columns, %d values", len(columns), len(values))
	}
	members := make(map[string]foreign.Value, len(columns))
	for i, c := range values {
		// The first occurrence wins for duplicate column names.
		if _, dup := members[columns[i]]; !dup {
			members[columns[i]] = hostvalue.Wrap(c)
		}
	}
	return &row{name: name, columns: columns, members: members}, nil
}

// ScanRows drains rows into foreign values, one per row. The caller
// keeps ownership of rows and should close them.
func ScanRows(name string, rows *sql.Rows) ([]foreign.Value, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("sqlvalue: reading columns: %w", err)
	}
	var out []foreign.Value
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("sqlvalue: scanning row: %w", err)
		}
		v, err := Row(name, columns, values)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlvalue: iterating rows: %w", err)
	}
	return out, nil
}

type row struct {
	foreign.Opaque
	name    string
	columns []string
	members map[string]foreign.Value
}

func (v *row) HasMembers() bool { return true }

func (v *row) MemberNames() ([]string, error) {
	return v.columns, nil
}

func (v *row) HasMember(name string) bool {
	_, ok := v.members[name]
	return ok
}

func (v *row) ReadMember(name string) (foreign.Value, error) {
	mv, ok := v.members[name]
	if !ok {
		return nil, fmt.Errorf("sqlvalue: no column %q", name)
	}
	return mv, nil
}

func (v *row) HasMetaObject() bool { return v.name != "" }

func (v *row) MetaObject() (foreign.Value, error) {
	if v.name == "" {
		return nil, foreign.ErrUnsupported
	}
	return metaObject{name: v.name}, nil
}

type metaObject struct {
	foreign.Opaque
	name string
}

func (v metaObject) IsMetaObject() bool { return true }
func (v metaObject) MetaQualifiedName() (string, error) {
	return v.name, nil
}
