package parser

import (
	"regexp"
	"strings"
)

// identPart - одна часть имени: простое, "в кавычках", `в обратных` или [в скобках].
const identPart = "(?:[A-Za-z_][\\w$]*|\"[^\"]+\"|`[^`]+`|\\[[^\\]]+\\])"

var reIdentPart = regexp.MustCompile(identPart)

// identParts разбивает составное имя schema.table.column на части без кавычек
func identParts(name string) []string {
	parts := reIdentPart.FindAllString(name, -1)
	for i, p := range parts {
		parts[i] = unquote(p)
	}
	return parts
}

func unquote(s string) string {
	if len(s) >= 2 {
		switch {
		case s[0] == '"' && s[len(s)-1] == '"',
			s[0] == '`' && s[len(s)-1] == '`',
			s[0] == '[' && s[len(s)-1] == ']':
			return s[1 : len(s)-1]
		}
	}
	return s
}

// unquoteString снимает экранирование '' внутри строкового литерала
func unquoteString(s string) string {
	return strings.ReplaceAll(s, "''", "'")
}

// skipQuoted возвращает индекс после закрывающей кавычки, начиная с открывающей в позиции i.
// Удвоенная кавычка внутри литерала считается её экранированием.
func skipQuoted(text string, i int) int {
	q := text[i]
	for j := i + 1; j < len(text); j++ {
		if text[j] != q {
			continue
		}
		if j+1 < len(text) && text[j+1] == q {
			j++
			continue
		}
		return j + 1
	}
	return len(text)
}

func isQuote(c byte) bool {
	return c == '\'' || c == '"' || c == '`'
}

// stripComments убирает комментарии -- и /* */ вне строковых литералов
func stripComments(text string) string {
	var b strings.Builder
	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case isQuote(c):
			j := skipQuoted(text, i)
			b.WriteString(text[i:j])
			i = j
		case c == '-' && i+1 < len(text) && text[i+1] == '-':
			for i < len(text) && text[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(text) && text[i+1] == '*':
			end := strings.Index(text[i+2:], "*/")
			if end < 0 {
				return b.String()
			}
			i += end + 4
			b.WriteByte(' ')
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// matchParen находит закрывающую скобку для открывающей в позиции open, -1 если её нет
func matchParen(text string, open int) int {
	depth := 0
	for i := open; i < len(text); {
		c := text[i]
		switch {
		case isQuote(c):
			i = skipQuoted(text, i)
			continue
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return i
			}
		}
		i++
	}
	return -1
}

// splitTopLevel делит тело CREATE TABLE по запятым верхнего уровня
func splitTopLevel(body string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(body); {
		c := body[i]
		switch {
		case isQuote(c):
			i = skipQuoted(body, i)
			continue
		case c == '(':
			depth++
		case c == ')':
			depth--
		case c == ',' && depth == 0:
			parts = append(parts, body[start:i])
			start = i + 1
		}
		i++
	}
	return append(parts, body[start:])
}

// statementEnd возвращает позицию ';' вне литералов начиная с from, или конец текста
func statementEnd(text string, from int) int {
	for i := from; i < len(text); {
		c := text[i]
		if isQuote(c) {
			i = skipQuoted(text, i)
			continue
		}
		if c == ';' {
			return i
		}
		i++
	}
	return len(text)
}
