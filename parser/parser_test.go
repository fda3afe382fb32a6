package parser_test

import (
	"path/filepath"
	"testing"

	"dbtool/model"
	"dbtool/parser"

	"github.com/stretchr/testify/require"
)

func TestParseSQLSchema(t *testing.T) {
	db, err := parser.ParseSQLSchema(filepath.Join("testdata", "schema.sql"))
	require.NoError(t, err)

	expected := &model.Database{Tables: []*model.Table{
		{
			Name:    "users",
			Remarks: "Registered users",
			Columns: []*model.Column{
				{Name: "Id", DataType: parser.TypeInteger},
				{Name: "Name", DataType: parser.TypeNVarChar},
				{Name: "Email", DataType: parser.TypeVarChar, Remarks: "Contact e-mail, may be empty"},
				{Name: "CreatedAt", DataType: parser.TypeTimestamp},
			},
		},
		{
			Name: "orders",
			Columns: []*model.Column{
				{Name: "id", DataType: parser.TypeBigInt},
				{Name: "user_id", DataType: parser.TypeInteger},
				{Name: "total", DataType: parser.TypeNumeric, Remarks: "Order total; it's in cents"},
				{Name: "note", DataType: parser.TypeLongVarChar},
			},
		},
	}}
	require.True(t, expected.Equal(db), "got %s", db)
}

func TestParseSQLSchemaMissingFile(t *testing.T) {
	_, err := parser.ParseSQLSchema(filepath.Join(t.TempDir(), "missing.sql"))
	require.Error(t, err)
}

func TestParseSQLMySQL(t *testing.T) {
	db, err := parser.ParseSQL("CREATE TABLE `shop`.`items` (\n" +
		"  `id` int unsigned NOT NULL AUTO_INCREMENT COMMENT 'Item id',\n" +
		"  `title` varchar(64) NOT NULL DEFAULT '' COMMENT 'Title, short',\n" +
		"  `price` decimal(8,2),\n" +
		"  `unique_code` char(8),\n" +
		"  UNIQUE KEY `uq_code` (`unique_code`),\n" +
		"  KEY `idx_title` (`title`)\n" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COMMENT='Shop items';")
	require.NoError(t, err)
	require.Equal(t,
		"Database(tables=[Table(name=items, remarks=Shop items, columns=[Column(name=id, dataType=4, remarks=Item id), Column(name=title, dataType=12, remarks=Title, short), Column(name=price, dataType=3, remarks=), Column(name=unique_code, dataType=1, remarks=)])])",
		db.String(),
	)
}

func TestParseSQLPostgres(t *testing.T) {
	db, err := parser.ParseSQL(`
CREATE UNLOGGED TABLE "Events" (
	"Id" uuid,
	happened_at timestamp with time zone,
	ratio double precision,
	tags text[],
	payload jsonb,
	label character varying(20)
);
COMMENT ON TABLE "Events" IS 'first';
COMMENT ON TABLE "Events" IS 'second';
COMMENT ON COLUMN "Events"."Id" IS NULL;
COMMENT ON COLUMN missing.col IS 'ignored';
`)
	require.NoError(t, err)
	require.Len(t, db.Tables, 1)
	tbl := db.Tables[0]
	require.Equal(t, "Events", tbl.Name)
	require.Equal(t, "second", tbl.Remarks)

	var codes []int
	for _, c := range tbl.Columns {
		codes = append(codes, c.DataType)
	}
	require.Equal(t, []int{
		parser.TypeOther,
		parser.TypeTimestampWithTimezone,
		parser.TypeDouble,
		parser.TypeArray,
		parser.TypeOther,
		parser.TypeVarChar,
	}, codes)
	require.Equal(t, "Id", tbl.Columns[0].Name)
}

func TestParseSQLEmpty(t *testing.T) {
	db, err := parser.ParseSQL("-- nothing here\nSELECT 1;")
	require.NoError(t, err)
	require.True(t, model.NewDatabase().Equal(db))
}

func TestParseSQLErrors(t *testing.T) {
	_, err := parser.ParseSQL("CREATE TABLE broken (id int")
	require.EqualError(t, err, "parser: table broken: unbalanced parentheses")

	_, err = parser.ParseSQL("CREATE TABLE weird (123 int);")
	require.ErrorContains(t, err, `cannot parse column definition "123 int"`)
}

func TestTypeCode(t *testing.T) {
	tests := map[string]int{
		"INT":                         parser.TypeInteger,
		"int(11)":                     parser.TypeInteger,
		"smallint":                    parser.TypeSmallInt,
		"tinyint(1)":                  parser.TypeTinyInt,
		"BIGINT UNSIGNED":             parser.TypeBigInt,
		"bit":                         parser.TypeBit,
		"boolean":                     parser.TypeBoolean,
		"nvarchar(max)":               parser.TypeNVarChar,
		"varchar(255)":                parser.TypeVarChar,
		"Character  Varying (10)":     parser.TypeVarChar,
		"char(3)":                     parser.TypeChar,
		"text":                        parser.TypeLongVarChar,
		"date":                        parser.TypeDate,
		"time":                        parser.TypeTime,
		"datetime":                    parser.TypeTimestamp,
		"timestamp without time zone": parser.TypeTimestamp,
		"timestamptz":                 parser.TypeTimestampWithTimezone,
		"decimal(10,2)":               parser.TypeDecimal,
		"numeric":                     parser.TypeNumeric,
		"real":                        parser.TypeReal,
		"float":                       parser.TypeFloat,
		"double precision":            parser.TypeDouble,
		"bytea":                       parser.TypeBinary,
		"varbinary(16)":               parser.TypeVarBinary,
		"longblob":                    parser.TypeBlob,
		"xml":                         parser.TypeSQLXML,
		"int[]":                       parser.TypeArray,
		"uniqueidentifier":            parser.TypeOther,
		"geometry":                    parser.TypeOther,
	}
	for in, want := range tests {
		require.Equal(t, want, parser.TypeCode(in), in)
	}
}
