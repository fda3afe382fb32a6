package model

// Column представляет колонку таблицы
type Column struct {
	Name     string `json:"name"`
	DataType int    `json:"dataType"` // код типа JDBC (java.sql.Types)
	Remarks  string `json:"remarks"`
}

// Table представляет таблицу с колонками
type Table struct {
	Name    string    `json:"name"`
	Remarks string    `json:"remarks"`
	Columns []*Column `json:"columns"` // Порядок сохранён
}

// Database корневой объект схемы
type Database struct {
	Tables []*Table `json:"tables"` // Порядок сохранён
}

// NewColumn возвращает пустую колонку
func NewColumn() *Column {
	return &Column{}
}

// NewTable возвращает пустую таблицу без колонок
func NewTable() *Table {
	return &Table{Columns: []*Column{}}
}

// NewDatabase возвращает пустую базу без таблиц
func NewDatabase() *Database {
	return &Database{Tables: []*Table{}}
}

// Clone делает глубокую копию колонки
func (c *Column) Clone() *Column {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// Clone делает глубокую копию таблицы вместе с колонками
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	cp := &Table{Name: t.Name, Remarks: t.Remarks, Columns: make([]*Column, len(t.Columns))}
	for i, c := range t.Columns {
		cp.Columns[i] = c.Clone()
	}
	return cp
}

// Clone делает глубокую копию базы
func (d *Database) Clone() *Database {
	if d == nil {
		return nil
	}
	cp := &Database{Tables: make([]*Table, len(d.Tables))}
	for i, t := range d.Tables {
		cp.Tables[i] = t.Clone()
	}
	return cp
}
