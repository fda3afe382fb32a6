package model

import (
	"strconv"
	"strings"
)

const nilString = "<nil>"

// String возвращает каноническое представление колонки
func (c *Column) String() string {
	var b strings.Builder
	c.render(&b)
	return b.String()
}

// String возвращает каноническое представление таблицы
func (t *Table) String() string {
	var b strings.Builder
	t.render(&b)
	return b.String()
}

// String возвращает каноническое представление всей базы, например
// Database(tables=[Table(name=t0, remarks=r0, columns=[Column(name=c0, dataType=0, remarks=cr0)])])
func (d *Database) String() string {
	var b strings.Builder
	d.render(&b)
	return b.String()
}

func (c *Column) render(b *strings.Builder) {
	if c == nil {
		b.WriteString(nilString)
		return
	}
	b.WriteString("Column(name=")
	b.WriteString(c.Name)
	b.WriteString(", dataType=")
	b.WriteString(strconv.Itoa(c.DataType))
	b.WriteString(", remarks=")
	b.WriteString(c.Remarks)
	b.WriteString(")")
}

func (t *Table) render(b *strings.Builder) {
	if t == nil {
		b.WriteString(nilString)
		return
	}
	b.WriteString("Table(name=")
	b.WriteString(t.Name)
	b.WriteString(", remarks=")
	b.WriteString(t.Remarks)
	b.WriteString(", columns=[")
	for i, c := range t.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		c.render(b)
	}
	b.WriteString("])")
}

func (d *Database) render(b *strings.Builder) {
	if d == nil {
		b.WriteString(nilString)
		return
	}
	b.WriteString("Database(tables=[")
	for i, t := range d.Tables {
		if i > 0 {
			b.WriteString(", ")
		}
		t.render(b)
	}
	b.WriteString("])")
}
