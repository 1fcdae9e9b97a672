// Package slug normaliza identificadores legibles y seguros para URL.
package slug

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize pasa s a minúsculas, quita acentos y colapsa todo lo que no sea
// [a-z0-9] en un único "-". Devuelve "" si no queda nada utilizable.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, s)
	if err != nil {
		plain = s
	}

	var b strings.Builder
	b.Grow(len(plain))
	lastDash := true // evita "-" inicial
	for _, r := range strings.ToLower(plain) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// Candidate devuelve el slug a probar en el intento indicado: base en el 0, base-N después.
func Candidate(base string, attempt int) string {
	if attempt <= 0 {
		return base
	}
	return base + "-" + strconv.Itoa(attempt)
}
