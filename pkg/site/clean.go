package site

import (
	"fmt"
	"strconv"
	"strings"
)

// Sitelogs are maintained by hundreds of independent operators and contain
// encoding artifacts, template hint text and mis-rendered place names. The
// cleaner folds all of that to plain ASCII before any value is stored.

// placeholderValues are template hints that count as "no value".
var placeholderValues = map[string]bool{
	"(multiple lines)": true,
	"(a4)":             true,
	"(a9)":             true,
	"(a10)":            true,
	"(y or url)":       true,
	"(if external)":    true,
	"(a20, from rcvr_ant.tab; see instructions)": true,
	"(format: yyyy-mm-dd)":                       true,
	"(ccyy-mm-dd)":                               true,
	"(m)":                                        true,
	"(hpa)":                                      true,
	"(deg)":                                      true,
	"(+/- deg)":                                  true,
	"(% rel h)":                                  true,
	"(sec)":                                      true,
	"(name)":                                     true,
	"(unit + s/n)":                               true,
	"(if known)":                                 true,
}

// asciiFold maps characters outside ASCII to their common transliteration.
// A fixed table is used on purpose, locale based folding is not reproducible.
var asciiFold = map[rune]string{
	'á': "a", 'à': "a", 'â': "a", 'ä': "ae", 'ã': "a", 'å': "aa",
	'Á': "A", 'À': "A", 'Â': "A", 'Ä': "Ae", 'Ã': "A", 'Å': "Aa",
	'é': "e", 'è': "e", 'ê': "e", 'ë': "e",
	'É': "E", 'È': "E", 'Ê': "E", 'Ë': "E",
	'í': "i", 'ì': "i", 'î': "i", 'ï': "i",
	'Í': "I", 'Ì': "I", 'Î': "I", 'Ï': "I",
	'ó': "o", 'ò': "o", 'ô': "o", 'ö': "oe", 'õ': "o", 'ø': "oe",
	'Ó': "O", 'Ò': "O", 'Ô': "O", 'Ö': "Oe", 'Õ': "O", 'Ø': "Oe",
	'ú': "u", 'ù': "u", 'û': "u", 'ü': "ue",
	'Ú': "U", 'Ù': "U", 'Û': "U", 'Ü': "Ue",
	'ý': "y", 'ÿ': "y", 'Ý': "Y",
	'ç': "c", 'Ç': "C", 'ñ': "n", 'Ñ': "N", 'ß': "ss",
	'æ': "ae", 'Æ': "Ae", 'œ': "oe", 'Œ': "Oe", 'ð': "d", 'þ': "th",
	'°': " deg ", '′': "'", '″': "\"", 'µ': "u", '–': "-", '—': "-",
	'“': "\"", '”': "\"", '‘': "'", '’': "'", ' ': " ",
}

// placeNameFixups corrects place names that are known to arrive broken,
// mostly double-encoded UTF-8. First matching prefix wins; the order is part
// of the contract.
var placeNameFixups = []struct {
	prefix string
	name   string
}{
	{"ReykjavÃ", "Reykjavik"},
	{"Reykjav�", "Reykjavik"},
	{"HÃ¶fn", "Hoefn"},
	{"H�fn", "Hoefn"},
	{"Ny-Ã", "Ny-Aalesund"},
	{"Ny-�", "Ny-Aalesund"},
	{"ZÃ¼rich", "Zuerich"},
	{"SÃ£o", "Sao"},
	{"ConcepciÃ³n", "Concepcion"},
	{"KÃ¶tzting", "Koetzting"},
	{"BrasÃ­lia", "Brasilia"},
}

// cleanValue normalizes one extracted field value: template hints become
// empty, non-ASCII characters are folded and known broken place names are
// corrected.
func cleanValue(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if placeholderValues[strings.ToLower(s)] {
		return ""
	}

	for _, fix := range placeNameFixups {
		if strings.HasPrefix(s, fix.prefix) {
			// replace the whole broken word, keep anything after it
			rest := ""
			if idx := strings.IndexAny(s, " ,/"); idx >= 0 {
				rest = s[idx:]
			}
			s = fix.name + rest
			break
		}
	}

	if isASCII(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if folded, ok := asciiFold[r]; ok {
			b.WriteString(folded)
		} else if r < 0x80 {
			b.WriteRune(r)
		}
		// anything else unmapped is dropped
	}
	return strings.TrimSpace(strings.Join(strings.Fields(b.String()), " "))
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// parseFloat parses sitelog floats that usually come with units attached,
// e.g. "8.5 m", "0 deg", "1 sec" or "(hPa)".
func parseFloat(s string) (float64, error) {
	if s == "" || strings.ToLower(s) == "unknown" {
		return 0, nil
	}
	if !strings.ContainsAny(s, "0123456789") {
		// bracketed text is an unfilled unit hint, anything else is garbage
		if strings.HasPrefix(s, "(") {
			return 0, nil
		}
		return 0, fmt.Errorf("no numeric value in %q", s)
	}
	s = strings.NewReplacer(",", ".").Replace(s)
	s = strings.Trim(s, " %()acCdDeEgGhKlmMNOPrstUWw")
	return strconv.ParseFloat(s, 64)
}

// addMultipleLine appends a continuation line to a note field.
func addMultipleLine(note, newNote string) string {
	if newNote == "" {
		return note
	}
	if note != "" {
		return note + " " + newNote
	}
	return newNote
}
