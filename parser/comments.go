package parser

import (
	"regexp"
	"strings"

	"dbtool/model"
)

var reCommentOn = regexp.MustCompile(`(?is)\bCOMMENT\s+ON\s+(TABLE|COLUMN)\s+(` +
	identPart + `(?:\s*\.\s*` + identPart + `)*)\s+IS\s+(?:'((?:[^']|'')*)'|NULL)`)

// applyComments применяет COMMENT ON TABLE/COLUMN; более поздние операторы перекрывают ранние,
// комментарии к неизвестным объектам игнорируются
func applyComments(db *model.Database, text string) {
	for _, m := range reCommentOn.FindAllStringSubmatch(text, -1) {
		parts := identParts(m[2])
		remarks := unquoteString(m[3])

		if strings.EqualFold(m[1], "TABLE") {
			for _, t := range findTables(db, parts[len(parts)-1]) {
				t.Remarks = remarks
			}
			continue
		}
		if len(parts) < 2 {
			continue
		}
		col := parts[len(parts)-1]
		for _, t := range findTables(db, parts[len(parts)-2]) {
			for _, c := range t.Columns {
				if strings.EqualFold(c.Name, col) {
					c.Remarks = remarks
				}
			}
		}
	}
}

func findTables(db *model.Database, name string) []*model.Table {
	var found []*model.Table
	for _, t := range db.Tables {
		if strings.EqualFold(t.Name, name) {
			found = append(found, t)
		}
	}
	return found
}
