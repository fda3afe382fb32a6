package model

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Equal сравнивает колонки по значению всех полей
func (c *Column) Equal(o *Column) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.Name == o.Name && c.DataType == o.DataType && c.Remarks == o.Remarks
}

// Equal сравнивает таблицы; порядок колонок значим
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Name != o.Name || t.Remarks != o.Remarks || len(t.Columns) != len(o.Columns) {
		return false
	}
	for i := range t.Columns {
		if !t.Columns[i].Equal(o.Columns[i]) {
			return false
		}
	}
	return true
}

// Equal сравнивает базы; порядок таблиц значим
func (d *Database) Equal(o *Database) bool {
	if d == nil || o == nil {
		return d == o
	}
	if len(d.Tables) != len(o.Tables) {
		return false
	}
	for i := range d.Tables {
		if !d.Tables[i].Equal(o.Tables[i]) {
			return false
		}
	}
	return true
}

// Метки сущностей, чтобы пустая таблица и пустая база не совпадали по хешу.
const (
	tagNil byte = iota
	tagColumn
	tagTable
	tagDatabase
)

type hasher struct {
	d   *xxhash.Digest
	buf [8]byte
}

func newHasher(tag byte) *hasher {
	h := &hasher{d: xxhash.New()}
	h.d.Write([]byte{tag})
	return h
}

func (h *hasher) writeUint(v uint64) {
	binary.LittleEndian.PutUint64(h.buf[:], v)
	h.d.Write(h.buf[:])
}

// writeString пишет длину перед значением: ("ab","c") и ("a","bc") дают разные хеши.
func (h *hasher) writeString(s string) {
	h.writeUint(uint64(len(s)))
	h.d.WriteString(s)
}

func (h *hasher) sum() uint64 {
	return h.d.Sum64()
}

// Hash вычисляет хеш по текущим значениям полей
func (c *Column) Hash() uint64 {
	if c == nil {
		return newHasher(tagNil).sum()
	}
	h := newHasher(tagColumn)
	h.writeString(c.Name)
	h.writeUint(uint64(int64(c.DataType)))
	h.writeString(c.Remarks)
	return h.sum()
}

// Hash вычисляет хеш таблицы вместе с хешами колонок по порядку
func (t *Table) Hash() uint64 {
	if t == nil {
		return newHasher(tagNil).sum()
	}
	h := newHasher(tagTable)
	h.writeString(t.Name)
	h.writeString(t.Remarks)
	h.writeUint(uint64(len(t.Columns)))
	for _, c := range t.Columns {
		h.writeUint(c.Hash())
	}
	return h.sum()
}

// Hash вычисляет хеш базы; ничего не кешируется между вызовами
func (d *Database) Hash() uint64 {
	if d == nil {
		return newHasher(tagNil).sum()
	}
	h := newHasher(tagDatabase)
	h.writeUint(uint64(len(d.Tables)))
	for _, t := range d.Tables {
		h.writeUint(t.Hash())
	}
	return h.sum()
}
