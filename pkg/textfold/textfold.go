// Package textfold normaliza texto para comparaciones insensibles a mayúsculas, tildes y espacios.
package textfold

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold devuelve s en minúsculas, sin marcas diacríticas (á→a, ñ→n) y con los espacios colapsados.
func Fold(s string) string {
	// transform.Chain guarda estado: se construye por llamada.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}

// Contains indica si needle aparece en haystack tras aplicar Fold a ambos.
func Contains(haystack, needle string) bool {
	n := Fold(needle)
	if n == "" {
		return false
	}
	return strings.Contains(Fold(haystack), n)
}

// SplitCSV separa una lista "a, b ,c" en términos plegados, descartando vacíos.
func SplitCSV(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if f := Fold(part); f != "" {
			out = append(out, f)
		}
	}
	return out
}
