package query

import (
	"fmt"
	"strconv"
)

// ParamType defines how a filter parameter matches its column.
type ParamType int

const (
	ParamString ParamType = iota // case-insensitive substring match
	ParamExact                   // exact match on a text/enum column
	ParamNumber                  // exact match on an integer column
)

// ParamConfig maps a filter parameter to its database column.
type ParamConfig struct {
	Type   ParamType
	Column string
}

// Builder assembles SQL for filtered list queries. It encapsulates the WHERE
// clause pattern shared by all repositories.
type Builder struct {
	table   string
	cols    string
	where   string
	args    []interface{}
	idx     int
	orderBy string
}

func NewBuilder(table, cols string) *Builder {
	return &Builder{
		table: table,
		cols:  cols,
		idx:   1,
	}
}

// Idx returns the next available placeholder index.
func (q *Builder) Idx() int { return q.idx }

// Add appends a raw WHERE clause fragment (without leading "AND"). The
// fragment must use placeholders starting at Idx().
func (q *Builder) Add(clause string, args ...interface{}) {
	q.where += " AND " + clause
	q.args = append(q.args, args...)
	q.idx += len(args)
}

// AddString adds a case-insensitive substring match on a text column.
func (q *Builder) AddString(column, value string) {
	q.where += fmt.Sprintf(" AND %s ILIKE '%%' || $%d || '%%'", column, q.idx)
	q.args = append(q.args, value)
	q.idx++
}

// AddExact adds an exact match clause.
func (q *Builder) AddExact(column string, value interface{}) {
	q.where += fmt.Sprintf(" AND %s = $%d", column, q.idx)
	q.args = append(q.args, value)
	q.idx++
}

// ApplyParams applies all recognized filter parameters from the given map.
// Unknown parameters and unparseable numeric values are ignored.
func (q *Builder) ApplyParams(params map[string]string, configs map[string]ParamConfig) {
	for name, value := range params {
		config, ok := configs[name]
		if !ok {
			continue
		}
		switch config.Type {
		case ParamString:
			q.AddString(config.Column, value)
		case ParamExact:
			q.AddExact(config.Column, value)
		case ParamNumber:
			n, err := strconv.Atoi(value)
			if err != nil {
				continue
			}
			q.AddExact(config.Column, n)
		}
	}
}

// OrderBy sets the ORDER BY clause (without the "ORDER BY" keyword).
func (q *Builder) OrderBy(orderBy string) {
	q.orderBy = orderBy
}

// SQL returns the data query with ORDER BY and LIMIT/OFFSET placeholders.
func (q *Builder) SQL() string {
	sql := fmt.Sprintf("SELECT %s FROM %s WHERE 1=1%s", q.cols, q.table, q.where)
	if q.orderBy != "" {
		sql += " ORDER BY " + q.orderBy
	}
	sql += fmt.Sprintf(" LIMIT $%d OFFSET $%d", q.idx, q.idx+1)
	return sql
}

// Args returns the argument list for SQL(), including limit and offset.
func (q *Builder) Args(limit, offset int) []interface{} {
	return append(append([]interface{}{}, q.args...), limit, offset)
}
