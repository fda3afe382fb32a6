package model_test

import (
	"fmt"
	"testing"

	"dbtool/model"

	"github.com/stretchr/testify/require"
)

// testDatabase строит базу из трёх таблиц по пять колонок, как в testdata/database.xml.
func testDatabase() *model.Database {
	db := model.NewDatabase()
	for t := 0; t < 3; t++ {
		table := model.NewTable()
		table.Name = fmt.Sprintf("table%d", t)
		table.Remarks = fmt.Sprintf("table remarks %d", t)
		for c := 0; c < 5; c++ {
			col := model.NewColumn()
			col.Name = fmt.Sprintf("t%dc%d", t, c)
			col.DataType = c
			col.Remarks = fmt.Sprintf("Table %d column %d", t, c)
			table.Columns = append(table.Columns, col)
		}
		db.Tables = append(db.Tables, table)
	}
	return db
}

// singleDatabase - база из одной таблицы t0 с одной колонкой c0.
func singleDatabase() *model.Database {
	return &model.Database{Tables: []*model.Table{{
		Name:    "t0",
		Remarks: "r0",
		Columns: []*model.Column{{Name: "c0", DataType: 0, Remarks: "cr0"}},
	}}}
}

func TestNew(t *testing.T) {
	c := model.NewColumn()
	require.Equal(t, &model.Column{}, c)

	tbl := model.NewTable()
	require.Empty(t, tbl.Name)
	require.Empty(t, tbl.Remarks)
	require.NotNil(t, tbl.Columns)
	require.Empty(t, tbl.Columns)

	db := model.NewDatabase()
	require.NotNil(t, db.Tables)
	require.Empty(t, db.Tables)
}

func TestClone(t *testing.T) {
	db := testDatabase()
	cp := db.Clone()
	require.True(t, db.Equal(cp))
	require.Equal(t, db.Hash(), cp.Hash())

	cp.Tables[1].Columns[2].Remarks = "changed"
	require.False(t, db.Equal(cp))
	require.Equal(t, "Table 1 column 2", db.Tables[1].Columns[2].Remarks)

	var nilDB *model.Database
	require.Nil(t, nilDB.Clone())
}
