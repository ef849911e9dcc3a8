// Package dates formatea fechas para respuestas y documentos.
package dates

import "time"

// Layouts usados en la aplicación.
const (
	LayoutDate     = "2006-01-02"
	LayoutDateTime = "2006-01-02 15:04"
)

// FormatDate formatea t en la zona loc con el layout dado. Fecha cero devuelve "".
func FormatDate(t time.Time, layout string, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	if layout == "" {
		layout = LayoutDateTime
	}
	return t.In(loc).Format(layout)
}

// Bogota zona horaria de Colombia; UTC-5 fijo si la base de zonas no está disponible.
func Bogota() *time.Location {
	loc, err := time.LoadLocation("America/Bogota")
	if err != nil {
		return time.FixedZone("COT", -5*60*60)
	}
	return loc
}
