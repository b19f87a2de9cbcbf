package usecase

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	reSlugSep    = regexp.MustCompile(`[^a-z0-9]+`)
	reArchivoSep = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)
)

// sinAcentos quita diacríticos (Ñ → N, é → e).
func sinAcentos(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Slug "Centro Comercial Trapiche" → "centro-comercial-trapiche".
func Slug(s string) string {
	s = strings.ToLower(sinAcentos(strings.TrimSpace(s)))
	return strings.Trim(reSlugSep.ReplaceAllString(s, "-"), "-")
}

// SanitizarArchivo nombre seguro para una key de storage.
func SanitizarArchivo(nombre string) string {
	nombre = sinAcentos(strings.TrimSpace(nombre))
	nombre = reArchivoSep.ReplaceAllString(nombre, "_")
	nombre = strings.Trim(nombre, "_")
	if nombre == "" {
		return "archivo"
	}
	return nombre
}
