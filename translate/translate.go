// Package translate formats user visible messages for the S16 toolchain
// in the locale of the running user.
package translate

import (
	"io"
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

// LANGUAGE_DEFAULT is used when the user locale is unknown.
const LANGUAGE_DEFAULT = "en-US"

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("s16: locale: %v", err)
	}

	SetLanguage(locales...)
}

// SetLanguage selects the best match of the languages for later messages.
// With no languages, LANGUAGE_DEFAULT is used.
func SetLanguage(languages ...string) {
	if len(languages) == 0 {
		languages = []string{LANGUAGE_DEFAULT}
	}

	printer = message.NewPrinter(message.MatchLanguage(languages...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

// Fprintf translates an en-US Printf() format, and writes it to w.
func Fprintf(w io.Writer, key message.Reference, args ...any) (n int, err error) {
	return printer.Fprintf(w, key, args...)
}
