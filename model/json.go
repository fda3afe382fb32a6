package model

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// ToJSON сериализует базу в JSON с отступом в два пробела
func ToJSON(d *Database) ([]byte, error) {
	if d == nil {
		return nil, errors.New("model: encode nil database")
	}
	out, err := json.MarshalIndent(d, "", indent)
	if err != nil {
		return nil, fmt.Errorf("model: encode json: %w", err)
	}
	return append(out, '\n'), nil
}

// FromJSON восстанавливает базу из JSON, полученного через ToJSON
func FromJSON(data []byte) (*Database, error) {
	d := NewDatabase()
	if err := json.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("model: decode json: %w", err)
	}
	if d.Tables == nil {
		d.Tables = []*Table{}
	}
	return d, nil
}
