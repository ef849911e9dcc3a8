package usecase

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// normalizeName recorta espacios, colapsa los internos y compone acentos (NFC) para que
// "Piña" escrito con o sin combinación sea el mismo nombre en los índices únicos.
func normalizeName(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
