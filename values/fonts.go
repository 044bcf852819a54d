package values

import "strings"

// genericFamilies are passed through lowercased and unquoted.
var genericFamilies = map[string]bool{
	"serif": true, "sans-serif": true, "monospace": true, "cursive": true,
	"fantasy": true, "system-ui": true, "math": true, "emoji": true,
	"fangsong": true,
	"ui-serif": true, "ui-sans-serif": true, "ui-monospace": true,
	"ui-rounded": true,
	"inherit": true, "initial": true, "unset": true, "revert": true,
}

// acronyms fixes title-cased words that are really initialisms.
var acronyms = map[string]string{
	"Ms": "MS",
	"Nt": "NT",
	"Ui": "UI",
}

// NormalizeFontFamily renders a font-family list. Generic families stay
// lowercase and bare; user-provided names have dashes converted to spaces
// and are title-cased, with multi-word names double-quoted.
func NormalizeFontFamily(tokens []string) string {
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		out = append(out, normalizeFamilyName(token))
	}
	return strings.Join(out, ", ")
}

func normalizeFamilyName(token string) string {
	token = strings.Trim(strings.TrimSpace(token), `"'`)
	lower := strings.ToLower(token)
	if genericFamilies[lower] {
		return lower
	}

	spaced := strings.ReplaceAll(token, "-", " ")
	words := strings.Fields(spaced)
	for i, word := range words {
		words[i] = titleWord(word)
	}
	name := strings.Join(words, " ")
	if len(words) > 1 {
		return `"` + name + `"`
	}
	return name
}

// titleWord uppercases the first letter, keeping anything already mixed
// case (`PT` in `PT-Sans`) as written, then applies the acronym fixes.
func titleWord(word string) string {
	if word == "" {
		return word
	}
	if word != strings.ToLower(word) {
		// Author already cased it; trust them
		return word
	}
	titled := strings.ToUpper(word[:1]) + word[1:]
	if fixed, ok := acronyms[titled]; ok {
		return fixed
	}
	return titled
}
