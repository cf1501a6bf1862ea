// Package schema holds preloaded table metadata used to resolve bare column
// names against a model-bound query. Metadata is loaded once, up front, from
// a live database or from static configuration; lookups never touch the
// database again.
package schema

import (
	"fmt"
	"slices"
	"sort"
)

// Table is the known column set of one table.
type Table struct {
	Name    string
	Columns []string
}

// NewTable creates a Table with the given columns.
func NewTable(name string, columns ...string) *Table {
	return &Table{Name: name, Columns: columns}
}

// TableName returns the table's name. A nil table has no name.
func (t *Table) TableName() string {
	if t == nil {
		return ""
	}
	return t.Name
}

// HasColumn reports whether col is part of the table's known schema.
func (t *Table) HasColumn(col string) bool {
	if t == nil {
		return false
	}
	return slices.Contains(t.Columns, col)
}

// UnknownTableError is returned when a catalog has no entry for a table.
type UnknownTableError struct {
	Name string
}

func (e *UnknownTableError) Error() string {
	return fmt.Sprintf("unknown table %q", e.Name)
}

// Catalog is an immutable set of tables keyed by name.
type Catalog struct {
	tables map[string]*Table
}

// NewCatalog builds a catalog from the given tables. Later tables with the
// same name replace earlier ones.
func NewCatalog(tables ...*Table) *Catalog {
	c := &Catalog{tables: make(map[string]*Table, len(tables))}
	for _, t := range tables {
		if t == nil {
			continue
		}
		c.tables[t.Name] = t
	}
	return c
}

// FromMap builds a catalog from a table -> columns map, the shape used in
// configuration files.
func FromMap(m map[string][]string) *Catalog {
	tables := make([]*Table, 0, len(m))
	for name, cols := range m {
		tables = append(tables, NewTable(name, slices.Clone(cols)...))
	}
	return NewCatalog(tables...)
}

// Table returns the named table or an *UnknownTableError.
func (c *Catalog) Table(name string) (*Table, error) {
	if c != nil {
		if t, ok := c.tables[name]; ok {
			return t, nil
		}
	}
	return nil, &UnknownTableError{Name: name}
}

// Tables returns all tables sorted by name.
func (c *Catalog) Tables() []*Table {
	if c == nil {
		return nil
	}
	out := make([]*Table, 0, len(c.tables))
	for _, t := range c.tables {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of tables in the catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.tables)
}

// Merge returns a new catalog holding the tables of c overlaid by those of
// other. Neither input is modified.
func (c *Catalog) Merge(other *Catalog) *Catalog {
	tables := append(c.Tables(), other.Tables()...)
	return NewCatalog(tables...)
}
