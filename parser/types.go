package parser

import (
	"regexp"
	"strings"
)

// Коды типов JDBC (java.sql.Types), которыми заполняется Column.DataType.
const (
	TypeBit                   = -7
	TypeTinyInt               = -6
	TypeBigInt                = -5
	TypeLongVarBinary         = -4
	TypeVarBinary             = -3
	TypeBinary                = -2
	TypeLongVarChar           = -1
	TypeChar                  = 1
	TypeNumeric               = 2
	TypeDecimal               = 3
	TypeInteger               = 4
	TypeSmallInt              = 5
	TypeFloat                 = 6
	TypeReal                  = 7
	TypeDouble                = 8
	TypeVarChar               = 12
	TypeBoolean               = 16
	TypeDate                  = 91
	TypeTime                  = 92
	TypeTimestamp             = 93
	TypeOther                 = 1111
	TypeArray                 = 2003
	TypeBlob                  = 2004
	TypeClob                  = 2005
	TypeSQLXML                = 2009
	TypeTimeWithTimezone      = 2013
	TypeTimestampWithTimezone = 2014
	TypeNChar                 = -15
	TypeNVarChar              = -9
	TypeLongNVarChar          = -16
)

var (
	reTypeArgs  = regexp.MustCompile(`\s*\([^)]*\)`)
	reTypeSpace = regexp.MustCompile(`\s+`)
)

// TypeCode переводит объявленный в DDL тип в код JDBC. Неизвестные типы дают TypeOther.
func TypeCode(sqlType string) int {
	t := strings.ToLower(strings.TrimSpace(sqlType))
	if strings.HasSuffix(t, "[]") {
		return TypeArray
	}
	t = reTypeArgs.ReplaceAllString(t, "")
	t = reTypeSpace.ReplaceAllString(strings.TrimSpace(t), " ")
	t = strings.TrimSuffix(t, " unsigned")

	switch t {
	case "int", "integer", "int4", "mediumint", "serial", "serial4":
		return TypeInteger
	case "smallint", "int2", "smallserial", "serial2":
		return TypeSmallInt
	case "tinyint":
		return TypeTinyInt
	case "bigint", "int8", "bigserial", "serial8":
		return TypeBigInt
	case "bit":
		return TypeBit
	case "bool", "boolean":
		return TypeBoolean
	case "char", "character", "bpchar":
		return TypeChar
	case "nchar", "national character":
		return TypeNChar
	case "varchar", "varchar2", "character varying", "char varying", "string":
		return TypeVarChar
	case "nvarchar", "nvarchar2", "national character varying":
		return TypeNVarChar
	case "text", "tinytext", "mediumtext", "longtext":
		return TypeLongVarChar
	case "ntext":
		return TypeLongNVarChar
	case "clob", "nclob":
		return TypeClob
	case "date":
		return TypeDate
	case "time", "time without time zone":
		return TypeTime
	case "timetz", "time with time zone":
		return TypeTimeWithTimezone
	case "timestamp", "datetime", "datetime2", "smalldatetime", "timestamp without time zone":
		return TypeTimestamp
	case "timestamptz", "timestamp with time zone", "datetimeoffset":
		return TypeTimestampWithTimezone
	case "decimal", "dec", "money", "smallmoney":
		return TypeDecimal
	case "numeric", "number":
		return TypeNumeric
	case "real", "float4":
		return TypeReal
	case "float":
		return TypeFloat
	case "double", "double precision", "float8":
		return TypeDouble
	case "binary", "bytea":
		return TypeBinary
	case "varbinary", "varbinary2":
		return TypeVarBinary
	case "image", "long raw":
		return TypeLongVarBinary
	case "blob", "tinyblob", "mediumblob", "longblob":
		return TypeBlob
	case "xml":
		return TypeSQLXML
	default:
		return TypeOther
	}
}
