// Package i18n renders user facing text from embedded locale files.
package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

var (
	bundle        *i18n.Bundle
	loadOnce      sync.Once
	loadErr       error
	defaultLocale = "en"
)

type ctxKey struct{}

// Init loads all locale files and sets the default locale. It is safe to
// call more than once; files are parsed a single time.
func Init(defLocale string) error {
	if defLocale != "" {
		defaultLocale = defLocale
	}
	loadOnce.Do(load)
	return loadErr
}

func load() {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		loadErr = fmt.Errorf("i18n: read locales dir: %w", err)
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + e.Name())
		if err != nil {
			loadErr = fmt.Errorf("i18n: read %s: %w", e.Name(), err)
			return
		}
		if _, err := b.ParseMessageFileBytes(data, e.Name()); err != nil {
			loadErr = fmt.Errorf("i18n: parse %s: %w", e.Name(), err)
			return
		}
	}
	bundle = b
	zap.L().Named("i18n").Info("locale files loaded",
		zap.Int("count", len(entries)),
		zap.String("default", defaultLocale),
	)
}

// WithLocale returns a context carrying locale (e.g. "en", "id").
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, ctxKey{}, locale)
}

// LocaleFromContext returns the context locale or the configured default.
func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKey{}).(string); ok && v != "" {
		return v
	}
	return defaultLocale
}

// T translates messageID using the locale from ctx. Unknown ids come back
// unchanged.
func T(ctx context.Context, messageID string, templateData ...map[string]any) string {
	loadOnce.Do(load)
	if bundle == nil {
		return messageID
	}

	l := i18n.NewLocalizer(bundle, LocaleFromContext(ctx), defaultLocale)

	cfg := &i18n.LocalizeConfig{MessageID: messageID}
	if len(templateData) > 0 && templateData[0] != nil {
		cfg.TemplateData = templateData[0]
	}

	msg, err := l.Localize(cfg)
	if err != nil {
		return messageID
	}
	return msg
}
