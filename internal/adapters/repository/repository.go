// Package repository implements the ports interfaces over the SQLite
// gateway. Every statement is parameterized; update statements are built
// from patch structs so only explicitly set fields are touched.
package repository

import "strings"

// assignments collects parameterized SET clauses for a partial update.
type assignments struct {
	sets []string
	args []interface{}
}

func (a *assignments) set(column string, value interface{}) {
	a.sets = append(a.sets, column+" = ?")
	a.args = append(a.args, value)
}

func (a *assignments) setRaw(expr string) {
	a.sets = append(a.sets, expr)
}

func (a *assignments) empty() bool {
	return len(a.sets) == 0
}

func (a *assignments) clause() string {
	return strings.Join(a.sets, ", ")
}
