package sales

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DisplayLayout formato de fecha pt-BR usado en ProcessedSale.Data.
const DisplayLayout = "02/01/2006"

// CalendarDate fecha de calendario sin hora ni zona horaria.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDisplayDate reconstruye la fecha de un texto "dd/mm/yyyy".
// Devuelve ok=false si el texto no es una fecha real (ej. "31/02/2024", "abc").
func ParseDisplayDate(s string) (CalendarDate, bool) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return CalendarDate{}, false
	}
	day, errD := strconv.Atoi(parts[0])
	month, errM := strconv.Atoi(parts[1])
	year, errY := strconv.Atoi(parts[2])
	if errD != nil || errM != nil || errY != nil || year < 1 || month < 1 || month > 12 || day < 1 {
		return CalendarDate{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != time.Month(month) {
		return CalendarDate{}, false
	}
	return CalendarDate{Year: year, Month: time.Month(month), Day: day}, true
}

// DateOf fecha de calendario de un instante, en UTC.
func DateOf(t time.Time) CalendarDate {
	t = t.UTC()
	return CalendarDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Time medianoche UTC de la fecha.
func (d CalendarDate) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Weekday día de la semana (domingo = 0).
func (d CalendarDate) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// Compare devuelve -1, 0 o +1.
func (d CalendarDate) Compare(o CalendarDate) int {
	return d.Time().Compare(o.Time())
}

// After indica si d es posterior a o.
func (d CalendarDate) After(o CalendarDate) bool {
	return d.Compare(o) > 0
}

// MonthKey clave "mm/yyyy".
func (d CalendarDate) MonthKey() string {
	return fmt.Sprintf("%02d/%04d", int(d.Month), d.Year)
}

// String fecha en formato dd/mm/yyyy.
func (d CalendarDate) String() string {
	return d.Time().Format(DisplayLayout)
}

// timestampLayouts formatos "ISO-ish" aceptados en RawSale.Data.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp interpreta una marca de tiempo ISO. Sin zona explícita se
// asume UTC, de modo que la fecha de calendario no se desplaza un día.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDisplayDate convierte la marca de tiempo de la venta en "dd/mm/yyyy"
// (interpretación UTC). Un texto no reconocido se devuelve sin cambios.
func FormatDisplayDate(raw string) string {
	t, ok := ParseTimestamp(raw)
	if !ok {
		return raw
	}
	return t.UTC().Format(DisplayLayout)
}

// SortInstant instante usado para ordenar por fecha: primero "dd/mm/yyyy",
// luego formatos ISO. Texto no reconocido ordena como el más antiguo (cero).
func SortInstant(s string) time.Time {
	if d, ok := ParseDisplayDate(s); ok {
		return d.Time()
	}
	if t, ok := ParseTimestamp(s); ok {
		return t
	}
	return time.Time{}
}
