package model

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Имена элементов канонического документа.
const (
	elemDatabase = "database"
	elemTable    = "table"
	elemColumn   = "column"
	elemName     = "name"
	elemRemarks  = "remarks"
	elemDataType = "dataType"
)

// indent - шаг отступа. Строки всегда заканчиваются на "\n", на любой платформе.
const indent = "  "

// MalformedDocumentError возвращается при разборе некорректного XML-документа схемы
type MalformedDocumentError struct {
	Line    int    // строка, на которой остановился разбор
	Element string // элемент, в котором обнаружена ошибка
	Msg     string
	Err     error
}

func (e *MalformedDocumentError) Error() string {
	var b strings.Builder
	b.WriteString("model: malformed document")
	if e.Line > 0 {
		fmt.Fprintf(&b, ": line %d", e.Line)
	}
	if e.Element != "" {
		fmt.Fprintf(&b, ": <%s>", e.Element)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Err
}

// Marshal сериализует базу в канонический XML
func Marshal(d *Database) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal разбирает канонический XML в граф объектов
func Unmarshal(data []byte) (*Database, error) {
	return Decode(bytes.NewReader(data))
}

// Encode пишет базу в w в каноническом виде
func Encode(w io.Writer, d *Database) error {
	if d == nil {
		return errors.New("model: encode nil database")
	}
	if err := checkEncodable(d); err != nil {
		return err
	}
	enc := &encoder{w: bufio.NewWriter(w)}
	enc.raw(xml.Header)
	if len(d.Tables) == 0 {
		enc.raw("<" + elemDatabase + "></" + elemDatabase + ">\n")
		return enc.flush()
	}
	enc.open(0, elemDatabase)
	for _, t := range d.Tables {
		enc.open(1, elemTable)
		enc.field(2, elemName, t.Name)
		enc.field(2, elemRemarks, t.Remarks)
		for _, c := range t.Columns {
			enc.open(2, elemColumn)
			enc.field(3, elemName, c.Name)
			enc.field(3, elemDataType, strconv.Itoa(c.DataType))
			enc.field(3, elemRemarks, c.Remarks)
			enc.close(2, elemColumn)
		}
		enc.close(1, elemTable)
	}
	enc.close(0, elemDatabase)
	return enc.flush()
}

// checkEncodable проверяет граф до записи: nil-элементы и строки, которые XML 1.0
// не может передать, дают ошибку вместо молчаливой замены на U+FFFD.
func checkEncodable(d *Database) error {
	for i, t := range d.Tables {
		if t == nil {
			return fmt.Errorf("model: encode table %d: nil table", i)
		}
		if err := checkText(elemName, t.Name); err != nil {
			return fmt.Errorf("model: encode table %d: %w", i, err)
		}
		if err := checkText(elemRemarks, t.Remarks); err != nil {
			return fmt.Errorf("model: encode table %q: %w", t.Name, err)
		}
		for j, c := range t.Columns {
			if c == nil {
				return fmt.Errorf("model: encode table %q column %d: nil column", t.Name, j)
			}
			if err := checkText(elemName, c.Name); err != nil {
				return fmt.Errorf("model: encode table %q column %d: %w", t.Name, j, err)
			}
			if err := checkText(elemRemarks, c.Remarks); err != nil {
				return fmt.Errorf("model: encode table %q column %q: %w", t.Name, c.Name, err)
			}
		}
	}
	return nil
}

func checkText(field, s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("%s: invalid UTF-8", field)
	}
	for _, r := range s {
		if !isXMLChar(r) {
			return fmt.Errorf("%s: character %U is not allowed in XML", field, r)
		}
	}
	return nil
}

// isXMLChar - продукция Char из XML 1.0
func isXMLChar(r rune) bool {
	return r == '\t' || r == '\n' || r == '\r' ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= utf8.MaxRune
}

// encoder запоминает первую ошибку записи, остальные вызовы становятся no-op.
type encoder struct {
	w   *bufio.Writer
	err error
}

func (e *encoder) raw(s string) {
	if e.err == nil {
		_, e.err = e.w.WriteString(s)
	}
}

func (e *encoder) pad(depth int) {
	e.raw(strings.Repeat(indent, depth))
}

func (e *encoder) open(depth int, name string) {
	e.pad(depth)
	e.raw("<" + name + ">\n")
}

func (e *encoder) close(depth int, name string) {
	e.pad(depth)
	e.raw("</" + name + ">\n")
}

func (e *encoder) field(depth int, name, value string) {
	e.pad(depth)
	e.raw("<" + name + ">")
	if e.err == nil {
		e.err = xml.EscapeText(e.w, []byte(value))
	}
	e.raw("</" + name + ">\n")
}

func (e *encoder) flush() error {
	if e.err != nil {
		return e.err
	}
	return e.w.Flush()
}

// Decode читает документ из r и строит граф объектов
func Decode(r io.Reader) (*Database, error) {
	p := &docParser{dec: xml.NewDecoder(r)}
	return p.document()
}

type docParser struct {
	dec *xml.Decoder
}

func (p *docParser) errorf(elem string, cause error, format string, args ...any) error {
	line, _ := p.dec.InputPos()
	return &MalformedDocumentError{
		Line:    line,
		Element: elem,
		Msg:     fmt.Sprintf(format, args...),
		Err:     cause,
	}
}

// next возвращает следующий значимый токен: комментарии, инструкции и
// пробельный текст пропускаются. Непустой текст вне скалярных элементов - ошибка.
func (p *docParser) next(parent string) (xml.Token, error) {
	for {
		tok, err := p.dec.Token()
		if err != nil {
			if err == io.EOF && parent != "" {
				err = io.ErrUnexpectedEOF
			}
			return nil, err
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			if tok.Name.Space != "" {
				return nil, p.errorf(tok.Name.Local, nil, "unexpected namespace %q", tok.Name.Space)
			}
			return tok, nil
		case xml.EndElement:
			return tok, nil
		case xml.CharData:
			if len(bytes.TrimSpace(tok)) > 0 {
				return nil, p.errorf(parent, nil, "unexpected text %q", strings.TrimSpace(string(tok)))
			}
		}
	}
}

func (p *docParser) document() (*Database, error) {
	var db *Database
	for {
		tok, err := p.next("")
		if err == io.EOF {
			if db == nil {
				return nil, p.errorf("", nil, "no <%s> root element", elemDatabase)
			}
			return db, nil
		}
		if err != nil {
			return nil, p.wrap("", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if db != nil {
			return nil, p.errorf(se.Name.Local, nil, "unexpected element after </%s>", elemDatabase)
		}
		if se.Name.Local != elemDatabase {
			return nil, p.errorf(se.Name.Local, nil, "root element must be <%s>", elemDatabase)
		}
		if db, err = p.database(); err != nil {
			return nil, err
		}
	}
}

func (p *docParser) database() (*Database, error) {
	db := NewDatabase()
	for {
		tok, err := p.next(elemDatabase)
		if err != nil {
			return nil, p.wrap(elemDatabase, err)
		}
		switch tok := tok.(type) {
		case xml.EndElement:
			return db, nil
		case xml.StartElement:
			if tok.Name.Local != elemTable {
				return nil, p.errorf(elemDatabase, nil, "unexpected element <%s>", tok.Name.Local)
			}
			t, err := p.table()
			if err != nil {
				return nil, err
			}
			db.Tables = append(db.Tables, t)
		}
	}
}

func (p *docParser) table() (*Table, error) {
	t := NewTable()
	var hasName, hasRemarks bool
	for {
		tok, err := p.next(elemTable)
		if err != nil {
			return nil, p.wrap(elemTable, err)
		}
		switch tok := tok.(type) {
		case xml.EndElement:
			if !hasName {
				return nil, p.errorf(elemTable, nil, "missing <%s>", elemName)
			}
			if !hasRemarks {
				return nil, p.errorf(elemTable, nil, "table %q: missing <%s>", t.Name, elemRemarks)
			}
			return t, nil
		case xml.StartElement:
			switch tok.Name.Local {
			case elemName:
				if err := p.scalar(elemTable, elemName, &hasName, &t.Name); err != nil {
					return nil, err
				}
			case elemRemarks:
				if err := p.scalar(elemTable, elemRemarks, &hasRemarks, &t.Remarks); err != nil {
					return nil, err
				}
			case elemColumn:
				c, err := p.column()
				if err != nil {
					return nil, err
				}
				t.Columns = append(t.Columns, c)
			default:
				return nil, p.errorf(elemTable, nil, "unexpected element <%s>", tok.Name.Local)
			}
		}
	}
}

func (p *docParser) column() (*Column, error) {
	c := NewColumn()
	var hasName, hasType, hasRemarks bool
	var dataType string
	for {
		tok, err := p.next(elemColumn)
		if err != nil {
			return nil, p.wrap(elemColumn, err)
		}
		switch tok := tok.(type) {
		case xml.EndElement:
			switch {
			case !hasName:
				return nil, p.errorf(elemColumn, nil, "missing <%s>", elemName)
			case !hasType:
				return nil, p.errorf(elemColumn, nil, "column %q: missing <%s>", c.Name, elemDataType)
			case !hasRemarks:
				return nil, p.errorf(elemColumn, nil, "column %q: missing <%s>", c.Name, elemRemarks)
			}
			return c, nil
		case xml.StartElement:
			switch tok.Name.Local {
			case elemName:
				err = p.scalar(elemColumn, elemName, &hasName, &c.Name)
			case elemRemarks:
				err = p.scalar(elemColumn, elemRemarks, &hasRemarks, &c.Remarks)
			case elemDataType:
				if err = p.scalar(elemColumn, elemDataType, &hasType, &dataType); err != nil {
					break
				}
				if c.DataType, err = strconv.Atoi(strings.TrimSpace(dataType)); err != nil {
					err = p.errorf(elemDataType, err, "column %q: dataType is not an integer", c.Name)
				}
			default:
				err = p.errorf(elemColumn, nil, "unexpected element <%s>", tok.Name.Local)
			}
			if err != nil {
				return nil, err
			}
		}
	}
}

// scalar читает текстовое содержимое элемента, уже открытого токеном StartElement.
func (p *docParser) scalar(parent, name string, seen *bool, dst *string) error {
	if *seen {
		return p.errorf(parent, nil, "duplicate <%s>", name)
	}
	var b strings.Builder
	for {
		tok, err := p.dec.Token()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return p.wrap(name, err)
		}
		switch tok := tok.(type) {
		case xml.CharData:
			b.Write(tok)
		case xml.StartElement:
			return p.errorf(name, nil, "unexpected element <%s>", tok.Name.Local)
		case xml.EndElement:
			*seen = true
			*dst = b.String()
			return nil
		}
	}
}

// wrap превращает ошибки декодера в MalformedDocumentError, не оборачивая их повторно.
func (p *docParser) wrap(elem string, err error) error {
	var mde *MalformedDocumentError
	if errors.As(err, &mde) {
		return err
	}
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		return &MalformedDocumentError{Line: se.Line, Element: elem, Msg: se.Msg, Err: err}
	}
	return p.errorf(elem, err, "read")
}
