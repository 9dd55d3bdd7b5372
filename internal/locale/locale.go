// Package locale resolves the display language and translates UI copy.
package locale

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys
const (
	EmptyTagline = "empty.tagline"
	EmptyMessage = "empty.message"
	EmptyButton  = "empty.button"
)

// Supported lists the languages with a full catalog. The first entry is the fallback.
var Supported = []language.Tag{
	language.English,
	language.BrazilianPortuguese,
}

var translations = map[language.Tag]map[string]string{
	language.English: {
		EmptyTagline: "Let's start",
		EmptyMessage: "You haven't registered any goals yet, how about registering one right now?!",
		EmptyButton:  "Register goal",
	},
	language.BrazilianPortuguese: {
		EmptyTagline: "Vamos começar",
		EmptyMessage: "Opa, você ainda não cadastrou nenhuma meta, vamos cadastrar uma agora mesmo?!",
		EmptyButton:  "Cadastrar Meta",
	},
}

var (
	matcher = language.NewMatcher(Supported)
	cat     = buildCatalog()
)

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(Supported[0]))
	for tag, msgs := range translations {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				panic("locale: invalid catalog entry " + key + ": " + err.Error())
			}
		}
	}
	return b
}

// Match picks the supported language closest to a POSIX locale ("pt_BR.UTF-8")
// or BCP 47 tag ("pt-BR"). Unknown or empty input falls back to English.
func Match(raw string) language.Tag {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexAny(raw, ".@"); i >= 0 {
		raw = raw[:i]
	}
	if raw == "" || raw == "C" || raw == "POSIX" {
		return Supported[0]
	}

	tag, err := language.Parse(strings.ReplaceAll(raw, "_", "-"))
	if err != nil {
		return Supported[0]
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return Supported[0]
	}
	return Supported[idx]
}

// Printer returns a printer that translates catalog keys into tag's language
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(cat))
}
