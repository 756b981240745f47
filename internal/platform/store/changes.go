package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// Fields is a caller-supplied field map, keyed by column name. Values stay raw
// until a Columns set decodes them, so an explicit JSON null can be told apart
// from an absent field.
type Fields map[string]json.RawMessage

// Kind is the wire type a writable column accepts.
type Kind int

const (
	Text Kind = iota
	Integer
	Real
	Reference
	Date
	Clock
	Timestamp
)

// Wire formats for calendar values.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Column describes one writable attribute of an entity.
type Column struct {
	Name string
	Kind Kind
	// Required columns may never be stored null or empty.
	Required bool
	// Defaulted columns take their store default when omitted (or null) on insert.
	Defaulted bool
	// NonNegative rejects numeric values below zero.
	NonNegative bool
}

// Columns is the ordered set of writable attributes of one table.
type Columns []Column

// Lookup returns the column with the given name.
func (cs Columns) Lookup(name string) (Column, bool) {
	for _, c := range cs {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Only returns the subset of cs with the given names, in cs order.
func (cs Columns) Only(names ...string) Columns {
	keep := make(map[string]bool, len(names))
	for _, n := range names {
		keep[n] = true
	}
	var out Columns
	for _, c := range cs {
		if keep[c.Name] {
			out = append(out, c)
		}
	}
	return out
}

// Changes is a decoded, validated set of column assignments in column order.
type Changes struct {
	names  []string
	values []interface{}
	casts  []string
}

// Len returns the number of assignments.
func (ch Changes) Len() int { return len(ch.names) }

// Names returns the assigned column names.
func (ch Changes) Names() []string { return append([]string(nil), ch.names...) }

// Value returns the decoded value assigned to name.
func (ch Changes) Value(name string) (interface{}, bool) {
	for i, n := range ch.names {
		if n == name {
			return ch.values[i], true
		}
	}
	return nil, false
}

func (ch *Changes) add(c Column, v interface{}) {
	ch.names = append(ch.names, c.Name)
	ch.values = append(ch.values, v)
	ch.casts = append(ch.casts, castFor(c.Kind))
}

func castFor(k Kind) string {
	switch k {
	case Date:
		return "::date"
	case Clock:
		return "::time"
	}
	return ""
}

// ForInsert decodes the fields that belong to cs. Fields outside cs are
// ignored. Every required, non-defaulted column must be present and non-empty.
func (cs Columns) ForInsert(f Fields) (Changes, error) {
	var ch Changes
	for _, c := range cs {
		raw, ok := f[c.Name]
		if !ok || isNull(raw) {
			if c.Required && !c.Defaulted {
				return Changes{}, Invalid("missing required field: %s", c.Name)
			}
			if ok && !c.Defaulted {
				ch.add(c, nil)
			}
			continue
		}
		v, err := decode(c, raw)
		if err != nil {
			return Changes{}, err
		}
		ch.add(c, v)
	}
	return ch, nil
}

// ForUpdate decodes the fields that belong to cs. Fields outside cs are
// ignored; an update that touches no column of cs is rejected.
func (cs Columns) ForUpdate(f Fields) (Changes, error) {
	var ch Changes
	for _, c := range cs {
		raw, ok := f[c.Name]
		if !ok {
			continue
		}
		if isNull(raw) {
			if c.Required {
				return Changes{}, Invalid("missing required field: %s", c.Name)
			}
			ch.add(c, nil)
			continue
		}
		v, err := decode(c, raw)
		if err != nil {
			return Changes{}, err
		}
		ch.add(c, v)
	}
	if ch.Len() == 0 {
		return Changes{}, Invalid("No update fields provided")
	}
	return ch, nil
}

// InsertSQL renders an INSERT returning the generated key.
func (ch Changes) InsertSQL(table, key string) (string, []interface{}) {
	if ch.Len() == 0 {
		return fmt.Sprintf(`INSERT INTO %s DEFAULT VALUES RETURNING %s`, table, key), nil
	}
	ph := make([]string, len(ch.names))
	for i := range ch.names {
		ph[i] = fmt.Sprintf("$%d%s", i+1, ch.casts[i])
	}
	q := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING %s`,
		table, strings.Join(ch.names, ", "), strings.Join(ph, ", "), key)
	return q, append([]interface{}(nil), ch.values...)
}

// UpdateSQL renders a single UPDATE of the assigned columns for one key.
func (ch Changes) UpdateSQL(table, key string, id int64) (string, []interface{}) {
	set := make([]string, len(ch.names))
	for i, n := range ch.names {
		set[i] = fmt.Sprintf("%s = $%d%s", n, i+1, ch.casts[i])
	}
	q := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $%d`,
		table, strings.Join(set, ", "), key, len(ch.names)+1)
	args := append(append([]interface{}(nil), ch.values...), id)
	return q, args
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func decode(c Column, raw json.RawMessage) (interface{}, error) {
	switch c.Kind {
	case Integer, Reference:
		n, err := decodeInt(raw)
		if err != nil {
			return nil, Invalid("%s must be an integer", c.Name)
		}
		if c.Kind == Reference && n <= 0 {
			return nil, Invalid("%s must be a positive id", c.Name)
		}
		// Integer columns are 32-bit in the store; references are 64-bit ids.
		if c.Kind == Integer && (n < math.MinInt32 || n > math.MaxInt32) {
			return nil, Invalid("%s is out of range", c.Name)
		}
		if c.NonNegative && n < 0 {
			return nil, Invalid("%s must not be negative", c.Name)
		}
		return n, nil
	case Real:
		f, err := decodeFloat(raw)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, Invalid("%s must be a number", c.Name)
		}
		if c.NonNegative && f < 0 {
			return nil, Invalid("%s must not be negative", c.Name)
		}
		return f, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, Invalid("%s must be a string", c.Name)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		if c.Required {
			return nil, Invalid("missing required field: %s", c.Name)
		}
		if c.Kind != Text {
			return nil, nil
		}
		return s, nil
	}
	switch c.Kind {
	case Date:
		if _, err := ParseDate(s); err != nil {
			return nil, Invalid("%s must be a date in YYYY-MM-DD form", c.Name)
		}
	case Clock:
		if _, err := ParseClock(s); err != nil {
			return nil, Invalid("%s must be a time in HH:MM form", c.Name)
		}
	case Timestamp:
		t, err := ParseTimestamp(s)
		if err != nil {
			return nil, Invalid("%s must be a timestamp", c.Name)
		}
		return t, nil
	}
	return s, nil
}

func decodeInt(raw json.RawMessage) (int64, error) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		n = json.Number(strings.TrimSpace(s))
	}
	return strconv.ParseInt(n.String(), 10, 64)
}

func decodeFloat(raw json.RawMessage) (float64, error) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		n = json.Number(strings.TrimSpace(s))
	}
	return strconv.ParseFloat(n.String(), 64)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// ParseClock parses an HH:MM wall-clock time. HH:MM:SS is accepted only with
// zero seconds, since clocks are stored and returned to the minute.
func ParseClock(s string) (time.Time, error) {
	if t, err := time.Parse(ClockLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		return time.Time{}, err
	}
	if t.Second() != 0 {
		return time.Time{}, fmt.Errorf("clock %q has seconds", s)
	}
	return t, nil
}

// ParseTimestamp accepts RFC 3339 and the "YYYY-MM-DD HH:MM:SS" form the
// legacy data set uses.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", DateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

// BindFields reads the JSON request body into a field map. Path and query
// parameters are never merged in.
func BindFields(c echo.Context) (Fields, error) {
	f := Fields{}
	if err := (&echo.DefaultBinder{}).BindBody(c, &f); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "request body must be a JSON object")
	}
	return f, nil
}
