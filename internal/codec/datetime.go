package codec

import (
	"time"

	gotoml "github.com/pelletier/go-toml/v2"
)

// BurntSushi marks local datetimes by decoding them into these zones.
const (
	burntSushiLocalDatetime = "datetime-local"
	burntSushiLocalDate     = "date-local"
	burntSushiLocalTime     = "time-local"
)

// normalizeDatetime maps a decoded datetime to the form every parser agrees
// on: go-toml's local types for local dates and times, and time.Time in a
// fixed zone for offset datetimes. Fractional precision is dropped since
// BurntSushi does not keep it. Other values are returned unchanged.
func normalizeDatetime(v any) any {
	switch val := v.(type) {
	case time.Time:
		switch val.Location().String() {
		case burntSushiLocalDatetime:
			return gotoml.LocalDateTime{LocalDate: localDate(val), LocalTime: localTime(val)}
		case burntSushiLocalDate:
			return localDate(val)
		case burntSushiLocalTime:
			return localTime(val)
		}
		_, offset := val.Zone()
		if offset == 0 {
			return val.UTC()
		}
		return val.In(time.FixedZone("", offset))
	case gotoml.LocalTime:
		val.Precision = 0
		return val
	case gotoml.LocalDateTime:
		val.Precision = 0
		return val
	default:
		return v
	}
}

func localDate(t time.Time) gotoml.LocalDate {
	return gotoml.LocalDate{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

func localTime(t time.Time) gotoml.LocalTime {
	return gotoml.LocalTime{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(), Nanosecond: t.Nanosecond()}
}

// normalizeTree rewrites a decoded TOML tree in place: arrays of tables,
// which BurntSushi decodes as []map[string]interface{}, become []any, and
// datetimes go through normalizeDatetime.
func normalizeTree(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, e := range val {
			val[k] = normalizeTree(e)
		}
		return val
	case []map[string]any:
		a := make([]any, len(val))
		for i, e := range val {
			a[i] = normalizeTree(e)
		}
		return a
	case []any:
		for i, e := range val {
			val[i] = normalizeTree(e)
		}
		return val
	default:
		return normalizeDatetime(val)
	}
}

// tomlLiteral is written verbatim by the BurntSushi encoder.
type tomlLiteral string

func (l tomlLiteral) MarshalTOML() ([]byte, error) { return []byte(l), nil }

// burntSushiLeaf renders go-toml's local datetime types as bare TOML
// literals. BurntSushi would otherwise quote them through MarshalText.
func burntSushiLeaf(v any) any {
	switch val := v.(type) {
	case gotoml.LocalDate:
		return tomlLiteral(val.String())
	case gotoml.LocalTime:
		return tomlLiteral(val.String())
	case gotoml.LocalDateTime:
		return tomlLiteral(val.String())
	default:
		return v
	}
}
