package i18n

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

//go:embed locales/*.json
var defaultLocales embed.FS

var (
	ErrInvalidLanguage                    = errors.New("invalid language in filename")
	ErrDefaultLanguageTranslationsMissing = errors.New("default language translations missing")
	ErrInvalidTranslations                = errors.New("invalid translations")
	ErrInvalidMessage                     = errors.New("invalid message")
	ErrFailedToSetString                  = errors.New("failed to set string")
	ErrExtraKey                           = errors.New("extra key")
	ErrMissingKey                         = errors.New("missing key")
)

// pluralOrder lists plural selectors in the order x/text evaluates them; "other" must come last.
var pluralOrder = []string{"=0", "=1", "zero", "one", "two", "few", "many", "other"}

// Bundle holds the message catalogue for every loaded language.
type Bundle struct {
	mu          sync.RWMutex
	defaultLang language.Tag
	keys        map[language.Tag]map[string]struct{}
	catalog     *catalog.Builder
	printers    map[language.Tag]*message.Printer
	supported   []language.Tag
	matcher     language.Matcher
}

var defaultBundle *Bundle

func init() {
	var err error
	defaultBundle, err = NewBundleWithFS(defaultLocales, "locales")
	if err != nil {
		panic("failed to load embedded locales: " + err.Error())
	}
}

// Default returns the bundle built from the embedded locales.
func Default() *Bundle {
	return defaultBundle
}

// NewBundle builds a fresh bundle from the embedded locales.
func NewBundle() (*Bundle, error) {
	return NewBundleWithFS(defaultLocales, "locales")
}

// NewBundleWithFS loads every <lang>.json file under dir. The English file is
// loaded first; every other language must carry exactly the same keys.
func NewBundleWithFS(fsys fs.FS, dir string) (*Bundle, error) {
	b := &Bundle{
		defaultLang: language.English,
		keys:        make(map[language.Tag]map[string]struct{}),
		catalog:     catalog.NewBuilder(catalog.Fallback(language.English)),
		printers:    make(map[language.Tag]*message.Printer),
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	type langFile struct {
		lang language.Tag
		path string
	}
	var files []langFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		lang, err := language.Parse(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidLanguage, entry.Name())
		}
		files = append(files, langFile{lang: lang, path: path.Join(dir, entry.Name())})
	}
	// the default language goes first so others can be checked against it
	slices.SortStableFunc(files, func(a, c langFile) int {
		switch {
		case a.lang == b.defaultLang:
			return -1
		case c.lang == b.defaultLang:
			return 1
		}
		return strings.Compare(a.lang.String(), c.lang.String())
	})

	for _, f := range files {
		data, err := fs.ReadFile(fsys, f.path)
		if err != nil {
			return nil, err
		}
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidTranslations, f.path, err)
		}
		if err := b.addMessages(f.lang, raw); err != nil {
			return nil, err
		}
	}

	if _, ok := b.keys[b.defaultLang]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrDefaultLanguageTranslationsMissing, b.defaultLang)
	}

	return b, nil
}

// AddLanguage adds plain string translations for lang. A language other than
// the default must provide the same keys as the default language.
func (b *Bundle) AddLanguage(lang language.Tag, translations map[string]string) error {
	raw := make(map[string]json.RawMessage, len(translations))
	for k, v := range translations {
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidMessage, k, err)
		}
		raw[k] = encoded
	}

	return b.addMessages(lang, raw)
}

func (b *Bundle) addMessages(lang language.Tag, raw map[string]json.RawMessage) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if lang != b.defaultLang {
		if errs := b.compareKeys(lang, raw); len(errs) > 0 {
			return fmt.Errorf("%w: %s: %w", ErrInvalidTranslations, lang, errors.Join(errs...))
		}
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	set := b.keys[lang]
	if set == nil {
		set = make(map[string]struct{}, len(keys))
	}
	for _, key := range keys {
		if err := b.setMessage(lang, key, raw[key]); err != nil {
			return err
		}
		set[key] = struct{}{}
	}

	if _, known := b.keys[lang]; !known {
		b.supported = append(b.supported, lang)
		b.matcher = language.NewMatcher(b.supported)
	}
	b.keys[lang] = set
	b.printers[lang] = message.NewPrinter(lang, message.Catalog(b.catalog))

	return nil
}

// setMessage stores either a plain string or a plural form object such as
// {"one": "...", "other": "..."} selected on the first format argument.
func (b *Bundle) setMessage(lang language.Tag, key string, raw json.RawMessage) error {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if err := b.catalog.SetString(lang, key, s); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrFailedToSetString, key, err)
		}
		return nil
	}

	var forms map[string]string
	if err := json.Unmarshal(raw, &forms); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidMessage, key)
	}
	if _, ok := forms["other"]; !ok {
		return fmt.Errorf("%w: %s: plural message needs an \"other\" form", ErrInvalidMessage, key)
	}

	cases := make([]any, 0, len(forms)*2)
	for _, selector := range pluralOrder {
		if msg, ok := forms[selector]; ok {
			cases = append(cases, selector, msg)
		}
	}
	if len(cases) != len(forms)*2 {
		return fmt.Errorf("%w: %s: unsupported plural selector", ErrInvalidMessage, key)
	}

	if err := b.catalog.Set(lang, key, plural.Selectf(1, "%d", cases...)); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFailedToSetString, key, err)
	}

	return nil
}

func (b *Bundle) compareKeys(lang language.Tag, raw map[string]json.RawMessage) []error {
	base, ok := b.keys[b.defaultLang]
	if !ok {
		return []error{fmt.Errorf("%w: %s", ErrDefaultLanguageTranslationsMissing, b.defaultLang)}
	}
	existing := b.keys[lang]

	var errs []error
	for key := range base {
		_, inRaw := raw[key]
		_, inExisting := existing[key]
		if !inRaw && !inExisting {
			errs = append(errs, fmt.Errorf("%w: %q", ErrMissingKey, key))
		}
	}
	for key := range raw {
		if _, ok := base[key]; !ok {
			errs = append(errs, fmt.Errorf("%w: %q", ErrExtraKey, key))
		}
	}
	slices.SortFunc(errs, func(a, c error) int { return strings.Compare(a.Error(), c.Error()) })

	return errs
}

// T returns the translation for the given key in the default language
func (b *Bundle) T(key string, args ...any) string {
	return b.TL(b.defaultLang, key, args...)
}

// TL returns the translation for the given language and key
func (b *Bundle) TL(lang language.Tag, key string, args ...any) string {
	return b.Printer(lang).Sprintf(key, args...)
}

// Printer returns a printer for the best supported match of lang.
func (b *Bundle) Printer(lang language.Tag) *message.Printer {
	lang = b.Match(lang)

	b.mu.RLock()
	defer b.mu.RUnlock()
	if p, ok := b.printers[lang]; ok {
		return p
	}

	return b.printers[b.defaultLang]
}

// Match returns the supported language closest to the given preferences,
// or the default language when nothing matches.
func (b *Bundle) Match(prefs ...language.Tag) language.Tag {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if len(prefs) == 0 || b.matcher == nil {
		return b.defaultLang
	}
	_, idx, conf := b.matcher.Match(prefs...)
	if conf == language.No {
		return b.defaultLang
	}

	return b.supported[idx]
}

// Languages returns the supported languages sorted by tag
func (b *Bundle) Languages() []language.Tag {
	b.mu.RLock()
	defer b.mu.RUnlock()

	langs := slices.Clone(b.supported)
	slices.SortFunc(langs, func(a, c language.Tag) int {
		return strings.Compare(a.String(), c.String())
	})

	return langs
}

// HasKey checks if a key exists in a language
func (b *Bundle) HasKey(lang language.Tag, key string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, ok := b.keys[lang][key]
	return ok
}

// DefaultLanguage returns the language used when no preference matches
func (b *Bundle) DefaultLanguage() language.Tag {
	return b.defaultLang
}

// SortStrings sorts names in place using the collation rules of lang,
// ignoring case.
func SortStrings(lang language.Tag, names []string) {
	collate.New(lang, collate.IgnoreCase).SortStrings(names)
}

// Comparer returns a case-insensitive comparison function following the
// collation rules of lang.
func Comparer(lang language.Tag) func(a, b string) int {
	c := collate.New(lang, collate.IgnoreCase)
	return c.CompareString
}
