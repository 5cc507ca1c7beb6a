package transcode

import "strings"

const quote = `"`

// Escape applies CSV quoting relative to delimiter.
//
// Quotes are doubled first; the result is wrapped in quotes when it
// contains the delimiter or a quote. An empty delimiter never matches, so
// only values holding a quote are wrapped.
func Escape(value, delimiter string) string {
	escaped := strings.ReplaceAll(value, quote, quote+quote)
	if (delimiter != "" && strings.Contains(escaped, delimiter)) || strings.Contains(escaped, quote) {
		return quote + escaped + quote
	}
	return escaped
}

// join escapes values and joins them with delimiter.
func join(values []string, delimiter string) string {
	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteString(delimiter)
		}
		b.WriteString(Escape(v, delimiter))
	}
	return b.String()
}
