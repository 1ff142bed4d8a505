package db

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Metadata is the structured context payload of a pipeline log entry, stored
// as a JSON text column. It implements sql.Scanner and driver.Valuer so the
// log repository can pass it straight through sqlx.
type Metadata map[string]any

// Scan implements sql.Scanner. A NULL column yields an empty, non-nil map so
// readers never have to nil-check the context of a log entry.
func (m *Metadata) Scan(value any) error {
	if value == nil {
		*m = make(Metadata)
		return nil
	}

	switch v := value.(type) {
	case []byte:
		if err := json.Unmarshal(v, m); err != nil {
			return fmt.Errorf("decoding log context : %w", err)
		}
		return nil
	case string:
		if err := json.Unmarshal([]byte(v), m); err != nil {
			return fmt.Errorf("decoding log context : %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported type %T", v)
	}
}

// Value implements driver.Valuer. An empty map is written as "{}", matching
// the column default, so the context column never holds NULL for new rows.
func (m Metadata) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	return json.Marshal(m)
}
