package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var fs embed.FS

const (
	// DefaultLang is used when nothing in the request selects a language
	DefaultLang = "ko"

	LocaleContextKey contextKey = "locale"
)

type contextKey string

// translations stores flattened keys: "ko" -> "form.name.label" -> "이름"
var (
	translations = make(map[string]map[string]string)
	mutex        sync.RWMutex
	loadOnce     sync.Once
	loadErr      error
)

// Load reads every embedded <lang>.json catalog. Safe to call more than once.
func Load() error {
	loadOnce.Do(func() {
		loadErr = load()
	})
	return loadErr
}

func load() error {
	mutex.Lock()
	defer mutex.Unlock()

	entries, err := fs.ReadDir(".")
	if err != nil {
		return fmt.Errorf("failed to read embedded locales: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		lang := strings.TrimSuffix(entry.Name(), ".json")
		content, err := fs.ReadFile(entry.Name())
		if err != nil {
			return fmt.Errorf("failed to read locale file %s: %w", entry.Name(), err)
		}

		var result map[string]interface{}
		if err := json.Unmarshal(content, &result); err != nil {
			return fmt.Errorf("failed to unmarshal locale %s: %w", entry.Name(), err)
		}

		flat := make(map[string]string)
		flatten("", result, flat)
		translations[lang] = flat
	}

	return nil
}

// flatten recursively flattens a nested map into dot-notation keys.
func flatten(prefix string, nested map[string]interface{}, result map[string]string) {
	for k, v := range nested {
		newKey := k
		if prefix != "" {
			newKey = prefix + "." + k
		}

		switch child := v.(type) {
		case map[string]interface{}:
			flatten(newKey, child, result)
		case string:
			result[newKey] = child
		default:
			result[newKey] = fmt.Sprintf("%v", child)
		}
	}
}

// Supported reports whether a catalog exists for lang
func Supported(lang string) bool {
	if err := Load(); err != nil {
		return false
	}
	mutex.RLock()
	defer mutex.RUnlock()
	_, ok := translations[lang]
	return ok
}

// Normalize maps a language tag such as "en-US" to a loaded catalog,
// falling back to DefaultLang.
func Normalize(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	if Supported(lang) {
		return lang
	}
	return DefaultLang
}

// T retrieves a translation for the given key using the language from the context.
// Supports named variable replacement {name} if args are provided.
func T(ctx context.Context, key string, args ...map[string]interface{}) string {
	return Translate(GetLocale(ctx), key, args...)
}

// Translate retrieves a translation for a specific language code.
// Missing keys fall back to the default language, then to the key itself.
func Translate(lang, key string, args ...map[string]interface{}) string {
	_ = Load()

	mutex.RLock()
	defer mutex.RUnlock()

	if trans, ok := translations[lang]; ok {
		if val, ok := trans[key]; ok {
			return format(val, args...)
		}
	}

	if lang != DefaultLang {
		if val, ok := translations[DefaultLang][key]; ok {
			return format(val, args...)
		}
	}

	return key
}

// format replaces {var} placeholders with values from args if present.
func format(text string, args ...map[string]interface{}) string {
	if len(args) == 0 {
		return text
	}

	for k, v := range args[0] {
		text = strings.ReplaceAll(text, "{"+k+"}", fmt.Sprintf("%v", v))
	}
	return text
}

// WithLocale returns a context carrying lang
func WithLocale(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, LocaleContextKey, lang)
}

// GetLocale extracts the locale set by the Locale middleware, defaulting to DefaultLang.
func GetLocale(ctx context.Context) string {
	if ctx == nil {
		return DefaultLang
	}
	if str, ok := ctx.Value(LocaleContextKey).(string); ok && str != "" {
		return str
	}
	return DefaultLang
}
