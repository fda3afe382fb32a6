package parser

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"dbtool/model"
)

var (
	reCreateTable = regexp.MustCompile(`(?i)\bCREATE\s+(?:(?:GLOBAL\s+|LOCAL\s+)?(?:TEMP|TEMPORARY)\s+|UNLOGGED\s+)?TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?(` +
		identPart + `(?:\s*\.\s*` + identPart + `)*)\s*\(`)
	reColumn = regexp.MustCompile(`(?is)^\s*(` + identPart + `)\s+(` +
		`double\s+precision|character\s+varying|char\s+varying|national\s+character(?:\s+varying)?|` +
		`time(?:stamp)?\s+with(?:out)?\s+time\s+zone|long\s+raw|[A-Za-z_]\w*)` +
		`(\s*\([^)]*\))?(\s*\[\])?`)
	reConstraint   = regexp.MustCompile(`(?i)^\s*(PRIMARY\s+KEY|CONSTRAINT|FOREIGN\s+KEY|UNIQUE|CHECK|KEY|INDEX|FULLTEXT|SPATIAL|EXCLUDE|LIKE|PERIOD)\b`)
	reInlineRemark = regexp.MustCompile(`(?i)\bCOMMENT\s*=?\s*'((?:[^']|'')*)'`)
)

// ParseSQLSchema парсит CREATE TABLE из SQL файла
func ParseSQLSchema(path string) (*model.Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	db, err := ParseSQL(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return db, nil
}

// ParseSQL строит модель по тексту DDL: таблицы и колонки в порядке объявления,
// комментарии (COMMENT '...', COMMENT ON ...) попадают в Remarks
func ParseSQL(text string) (*model.Database, error) {
	text = stripComments(text)
	db := model.NewDatabase()

	for pos := 0; pos < len(text); {
		loc := reCreateTable.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		parts := identParts(text[pos+loc[2] : pos+loc[3]])
		name := parts[len(parts)-1]
		open := pos + loc[1] - 1
		end := matchParen(text, open)
		if end < 0 {
			return nil, fmt.Errorf("parser: table %s: unbalanced parentheses", name)
		}

		t := model.NewTable()
		t.Name = name
		for _, def := range splitTopLevel(text[open+1 : end]) {
			if strings.TrimSpace(def) == "" || reConstraint.MatchString(def) {
				continue
			}
			caps := reColumn.FindStringSubmatch(def)
			if caps == nil {
				return nil, fmt.Errorf("parser: table %s: cannot parse column definition %q", name, strings.TrimSpace(def))
			}
			c := model.NewColumn()
			c.Name = unquote(caps[1])
			c.DataType = TypeCode(caps[2] + caps[3] + caps[4])
			if m := reInlineRemark.FindStringSubmatch(def[len(caps[0]):]); m != nil {
				c.Remarks = unquoteString(m[1])
			}
			t.Columns = append(t.Columns, c)
		}

		stmtEnd := statementEnd(text, end+1)
		if m := reInlineRemark.FindStringSubmatch(text[end+1 : stmtEnd]); m != nil {
			t.Remarks = unquoteString(m[1])
		}
		db.Tables = append(db.Tables, t)
		pos = stmtEnd
	}

	applyComments(db, text)
	return db, nil
}
