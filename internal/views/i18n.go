package views

import (
	"context"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys are the English source strings.
const (
	msgSettingsSaved = "Settings saved."
	msgSaveChanges   = "Save Changes"
	msgName          = "Name"
	msgEmail         = "Email"
	msgUsername      = "Username"
	msgPassword      = "Password"
	msgLogIn         = "Log In"
)

var supportedLanguages = []language.Tag{
	language.English,
	language.BrazilianPortuguese,
}

var (
	languageMatcher = language.NewMatcher(supportedLanguages)
	messages        = catalog.NewBuilder(catalog.Fallback(language.English))
)

func init() {
	Translate(language.BrazilianPortuguese, map[string]string{
		msgSettingsSaved: "Configurações salvas.",
		msgSaveChanges:   "Salvar alterações",
		msgName:          "Nome",
		msgEmail:         "E-mail",
		msgUsername:      "Nome de usuário",
		msgPassword:      "Senha",
		msgLogIn:         "Entrar",
	})
}

// Translate adds translations keyed by their English source string.
func Translate(tag language.Tag, msgs map[string]string) {
	for key, msg := range msgs {
		// SetString only fails on malformed tags.
		_ = messages.SetString(tag, key, msg)
	}
}

type ctxKeyLanguage struct{}

// WithLanguage sets the language pages render in.
func WithLanguage(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, ctxKeyLanguage{}, tag)
}

// LanguageFromContext defaults to English.
func LanguageFromContext(ctx context.Context) language.Tag {
	if tag, ok := ctx.Value(ctxKeyLanguage{}).(language.Tag); ok {
		return tag
	}
	return language.English
}

// HasLanguage reports whether a language was chosen for ctx.
func HasLanguage(ctx context.Context) bool {
	_, ok := ctx.Value(ctxKeyLanguage{}).(language.Tag)
	return ok
}

// MatchLanguage picks a supported language for an Accept-Language header.
func MatchLanguage(acceptLanguage string) language.Tag {
	acceptLanguage = strings.TrimSpace(acceptLanguage)
	if acceptLanguage == "" {
		return language.English
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, idx, conf := languageMatcher.Match(tags...)
	if conf == language.No {
		return language.English
	}
	return supportedLanguages[idx]
}

// Printer formats catalog messages in the language of ctx.
func Printer(ctx context.Context) *message.Printer {
	return message.NewPrinter(LanguageFromContext(ctx), message.Catalog(messages))
}
