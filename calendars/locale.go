package calendars

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/warp/region-engine/calendar"
)

// =============================================================================
// LOCALES - Territory week and weekend conventions
// =============================================================================

//go:embed locales.yaml
var defaultLocaleData []byte

var weekdayNames = map[string]int{
	"sun": 1, "mon": 2, "tue": 3, "wed": 4, "thu": 5, "fri": 6, "sat": 7,
}

type territoryEntry struct {
	FirstWeekday string `yaml:"first_weekday"`
	MinDays      int    `yaml:"min_days"`
	WeekendStart string `yaml:"weekend_start"`
	WeekendDays  int    `yaml:"weekend_days"`
}

type localeFile struct {
	Default     string                    `yaml:"default"`
	ZoneAliases map[string]string         `yaml:"time_zone_aliases"`
	Territories map[string]territoryEntry `yaml:"territories"`
}

// Locales maps locale ids to week rules through their CLDR territory.
// Resolved ids are memoized; a Locales is safe for concurrent use.
type Locales struct {
	fallback    string
	territories map[string]weekRules
	zoneAliases map[string]string

	mu    sync.RWMutex
	cache map[string]weekRules
}

var (
	defaultLocalesOnce sync.Once
	defaultLocales     *Locales
)

// DefaultLocales returns the embedded table, parsed once.
func DefaultLocales() *Locales {
	defaultLocalesOnce.Do(func() {
		l, err := ParseLocales(defaultLocaleData)
		if err != nil {
			panic(fmt.Sprintf("calendars: embedded locales.yaml: %v", err))
		}
		defaultLocales = l
	})
	return defaultLocales
}

// ParseLocales reads a locale table in the locales.yaml format.
func ParseLocales(data []byte) (*Locales, error) {
	var f localeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse locales: %w", err)
	}
	if f.Default == "" {
		f.Default = "001"
	}

	l := &Locales{
		fallback:    strings.ToUpper(f.Default),
		territories: make(map[string]weekRules, len(f.Territories)),
		zoneAliases: make(map[string]string, len(f.ZoneAliases)),
		cache:       make(map[string]weekRules),
	}
	for code, e := range f.Territories {
		rules, err := e.rules()
		if err != nil {
			return nil, fmt.Errorf("territory %s: %w", code, err)
		}
		l.territories[strings.ToUpper(code)] = rules
	}
	if _, ok := l.territories[l.fallback]; !ok {
		return nil, fmt.Errorf("default territory %s is not defined", l.fallback)
	}
	for alias, zone := range f.ZoneAliases {
		l.zoneAliases[strings.ToLower(alias)] = zone
	}
	return l, nil
}

func (e territoryEntry) rules() (weekRules, error) {
	first, ok := weekdayNames[strings.ToLower(e.FirstWeekday)]
	if !ok {
		return weekRules{}, fmt.Errorf("first_weekday %q", e.FirstWeekday)
	}
	if e.MinDays < 1 || e.MinDays > daysPerWeek {
		return weekRules{}, fmt.Errorf("min_days %d out of range", e.MinDays)
	}
	if e.WeekendDays < 0 || e.WeekendDays >= daysPerWeek {
		return weekRules{}, fmt.Errorf("weekend_days %d out of range", e.WeekendDays)
	}
	rules := weekRules{firstWeekday: first, minDays: e.MinDays, weekendDays: e.WeekendDays}
	if e.WeekendDays > 0 {
		start, ok := weekdayNames[strings.ToLower(e.WeekendStart)]
		if !ok {
			return weekRules{}, fmt.Errorf("weekend_start %q", e.WeekendStart)
		}
		rules.weekendStart = start
	}
	return rules, nil
}

// Territory returns the territory code a locale id resolves to. Ids use
// either "_" or "-" as separator; a locale without a region uses its likely
// one ("he" -> IL).
func (l *Locales) Territory(locale string) (string, error) {
	if strings.TrimSpace(locale) == "" {
		return "", fmt.Errorf("empty locale id")
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return "", err
	}
	region, conf := tag.Region()
	if conf == language.No {
		return l.fallback, nil
	}
	code := region.String()
	if _, ok := l.territories[code]; !ok {
		return l.fallback, nil
	}
	return code, nil
}

// maxCachedLocales bounds the memo of raw locale ids. Callers may send any
// number of distinct spellings, so the memo starts over when it fills.
const maxCachedLocales = 1024

// rules resolves a locale id, memoizing the result.
func (l *Locales) rules(r calendar.Region) (weekRules, error) {
	l.mu.RLock()
	rules, ok := l.cache[r.Locale]
	l.mu.RUnlock()
	if ok {
		return rules, nil
	}

	code, err := l.Territory(r.Locale)
	if err != nil {
		return weekRules{}, calendar.NewRegionError(r, "locale", calendar.ErrUnknownLocale, err)
	}
	rules = l.territories[code]

	l.mu.Lock()
	if len(l.cache) >= maxCachedLocales {
		clear(l.cache)
	}
	l.cache[r.Locale] = rules
	l.mu.Unlock()
	return rules, nil
}
