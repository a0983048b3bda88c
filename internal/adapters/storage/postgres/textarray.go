package postgres

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// textArray mueve un text[] de Postgres a través de database/sql: driver.Value
// solo transporta tipos planos, así que el array viaja como su literal
// ("{a,b}") y se parsea al leer.
type textArray []string

func (a textArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "{}", nil
	}

	sb := strings.Builder{}
	sb.WriteByte('{')
	for i, s := range a {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('"')
		s = strings.ReplaceAll(s, `\`, `\\`)
		s = strings.ReplaceAll(s, `"`, `\"`)
		sb.WriteString(s)
		sb.WriteByte('"')
	}
	sb.WriteByte('}')
	return sb.String(), nil
}

func (a *textArray) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = nil
		return nil
	case string:
		return a.parse(v)
	case []byte:
		return a.parse(string(v))
	default:
		return fmt.Errorf("textArray: cannot scan %T", src)
	}
}

func (a *textArray) parse(s string) error {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		return fmt.Errorf("textArray: malformed literal %q", s)
	}
	body := s[1 : len(s)-1]
	if body == "" {
		*a = []string{}
		return nil
	}

	out := make([]string, 0, 4)
	elem := strings.Builder{}
	quoted := false
	inQuotes := false
	escaped := false

	flush := func() {
		v := elem.String()
		if !quoted && v == "NULL" {
			v = ""
		}
		out = append(out, v)
		elem.Reset()
		quoted = false
	}

	for _, r := range body {
		switch {
		case escaped:
			elem.WriteRune(r)
			escaped = false
		case r == '\\' && inQuotes:
			escaped = true
		case r == '"':
			inQuotes = !inQuotes
			quoted = true
		case r == ',' && !inQuotes:
			flush()
		default:
			elem.WriteRune(r)
		}
	}
	if inQuotes {
		return fmt.Errorf("textArray: unterminated quote in %q", s)
	}
	flush()

	*a = out
	return nil
}
