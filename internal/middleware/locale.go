package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

type localeContextKey struct{}

// LocaleKey stores the detected locale in the request context.
var LocaleKey = localeContextKey{}

// CountryLookup resolves ISO country codes for an IP address.
type CountryLookup func(ip string) (string, error)

var supportedLocales = []language.Tag{
	language.English, // first entry is the matcher fallback
	language.Indonesian,
	language.SimplifiedChinese,
	language.Spanish,
	language.Hindi,
}

var localeMatcher = language.NewMatcher(supportedLocales)

// Overrides for countries whose primary language the matcher cannot infer
// from request headers alone.
var countryLocales = map[string]string{
	"ID": "id",
	"CN": "zh",
	"ES": "es",
	"MX": "es",
	"AR": "es",
	"IN": "hi",
}

// Locale detects the caller's locale from the X-Locale header, the
// Accept-Language header, and finally an optional GeoIP country lookup, then
// stores it in the request context. The locale only steers prompt hints, so
// a wrong guess is harmless.
func Locale(defaultLocale string, lookup CountryLookup) func(http.Handler) http.Handler {
	if defaultLocale == "" {
		defaultLocale = "en"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := detectLocale(r, defaultLocale, lookup)
			ctx := context.WithValue(r.Context(), LocaleKey, locale)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LocaleFromContext returns the locale stored by Locale, defaulting to "en".
func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(LocaleKey).(string); ok && v != "" {
		return v
	}
	return "en"
}

func detectLocale(r *http.Request, fallback string, lookup CountryLookup) string {
	if v := strings.TrimSpace(r.Header.Get("X-Locale")); v != "" {
		if matched := matchLocale(v); matched != "" {
			return matched
		}
	}
	if header := r.Header.Get("Accept-Language"); header != "" {
		if tags, _, err := language.ParseAcceptLanguage(header); err == nil && len(tags) > 0 {
			if _, index, conf := localeMatcher.Match(tags...); conf > language.No {
				base, _ := supportedLocales[index].Base()
				return base.String()
			}
		}
	}
	if lookup != nil {
		if ip := ClientIP(r); ip != "" {
			if country, err := lookup(ip); err == nil {
				if locale, ok := countryLocales[strings.ToUpper(country)]; ok {
					return locale
				}
			}
		}
	}
	return fallback
}

func matchLocale(raw string) string {
	tag, err := language.Parse(raw)
	if err != nil {
		return ""
	}
	if _, index, conf := localeMatcher.Match(tag); conf > language.No {
		base, _ := supportedLocales[index].Base()
		return base.String()
	}
	return ""
}

// ClientIP returns the best-effort client IP address for the request.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		parts := strings.Split(xf, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
