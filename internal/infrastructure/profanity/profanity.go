package profanity

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"unicode"
)

var (
	// Global instance for reuse (thread-safe)
	defaultFilter *Filter
	once          sync.Once
)

//go:embed words.json
var jsonData embed.FS

func LoadBannedWords() ([]string, error) {
	data, err := jsonData.ReadFile("words.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded word list: %w", err)
	}

	var bannedWords []string
	if err := json.Unmarshal(data, &bannedWords); err != nil {
		return nil, fmt.Errorf("unmarshal word list: %w", err)
	}
	return bannedWords, nil
}

// Filter matches whole words after undoing common obfuscation: accents,
// leetspeak, repeated letters and letters split by separators ("s.h.i.t").
type Filter struct {
	banned map[string]struct{}
}

// Default returns the shared filter built from the embedded word list.
func Default() *Filter {
	once.Do(func() {
		words, err := LoadBannedWords()
		if err != nil {
			panic(err)
		}
		defaultFilter = New(words)
	})

	return defaultFilter
}

func New(words []string) *Filter {
	f := &Filter{banned: make(map[string]struct{}, len(words))}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		f.banned[w] = struct{}{}
		f.banned[collapseRepeats(w)] = struct{}{}
	}

	return f
}

func (f *Filter) ContainsProfanity(text string) bool {
	if text == "" {
		return false
	}

	for _, word := range tokens(normalizeText(text)) {
		if f.isBanned(word) {
			return true
		}
	}

	return false
}

// Validate adapts the filter to the validate.Validator signature.
func (f *Filter) Validate(value string) error {
	if f.ContainsProfanity(value) {
		return fmt.Errorf("contains disallowed language")
	}
	return nil
}

func (f *Filter) isBanned(word string) bool {
	if _, ok := f.banned[word]; ok {
		return true
	}
	_, ok := f.banned[collapseRepeats(word)]
	return ok
}

var leet = strings.NewReplacer(
	"@", "a", "4", "a",
	"3", "e", "€", "e",
	"1", "i", "!", "i", "|", "i", "¡", "i",
	"0", "o",
	"$", "s", "5", "s",
	"7", "t", "+", "t",
	"ph", "f",
)

func normalizeText(text string) string {
	s := strings.ToLower(text)
	s = strings.Map(func(r rune) rune {
		switch r {
		case 'á', 'à', 'â', 'ä', 'ã', 'å':
			return 'a'
		case 'é', 'è', 'ê', 'ë':
			return 'e'
		case 'í', 'ì', 'î', 'ï':
			return 'i'
		case 'ó', 'ò', 'ô', 'ö', 'õ':
			return 'o'
		case 'ú', 'ù', 'û', 'ü':
			return 'u'
		case 'ñ':
			return 'n'
		case 'ç':
			return 'c'
		default:
			return r
		}
	}, s)

	return leet.Replace(s)
}

// tokens splits on anything that is not a letter and glues runs of single
// letters back together so spaced-out words are still caught.
func tokens(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return !unicode.IsLetter(r) })

	out := make([]string, 0, len(fields)+1)
	var run strings.Builder
	flush := func() {
		if run.Len() > 1 {
			out = append(out, run.String())
		}
		run.Reset()
	}

	for _, f := range fields {
		if len([]rune(f)) == 1 {
			run.WriteString(f)
			continue
		}
		flush()
		out = append(out, f)
	}
	flush()

	return out
}

func collapseRepeats(s string) string {
	var b strings.Builder
	var prev rune
	for i, r := range s {
		if i > 0 && r == prev {
			continue
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}
