// Package sanitize scrubs submitted field values before they reach the
// canonical record. Plain fields are stripped of all markup; rich text
// fields keep a small allow-list of formatting elements.
package sanitize

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy     = bluemonday.StrictPolicy()
	permissivePolicy = newPermissivePolicy()

	// The HTML tokenizer treats script and style bodies as opaque raw text
	// and the sanitizer discards them with the element. Plain tag stripping
	// keeps the inner text, so those tags are removed before sanitizing.
	rawTextTags = regexp.MustCompile(`(?i)</?(script|style)\b[^>]*>`)

	// The strict policy escapes quote characters in the text it keeps.
	// Plain fields hold text, not HTML, so those escapes are folded back.
	quoteEntities = strings.NewReplacer("&#34;", `"`, "&#39;", "'")
)

// newPermissivePolicy builds the rich-text allow-list: anchors with safe
// hrefs, inline emphasis, headings, lists, quotes and code. Script content
// and javascript: URLs never survive.
func newPermissivePolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowStandardURLs()
	p.AllowAttrs("href").OnElements("a")
	p.AllowElements(
		"b", "strong", "i", "em", "u", "s", "sub", "sup", "span",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"p", "br", "hr",
		"ul", "ol", "li", "dl", "dt", "dd",
		"blockquote", "cite", "code", "pre",
	)
	return p
}

// Strict strips every markup construct from s, retaining only text content.
func Strict(s string) string {
	return quoteEntities.Replace(strictPolicy.Sanitize(rawTextTags.ReplaceAllString(s, "")))
}

// Permissive keeps the rich-text allow-list and strips everything else.
func Permissive(s string) string {
	return permissivePolicy.Sanitize(rawTextTags.ReplaceAllString(s, ""))
}

// Value sanitizes a loosely typed field value. Strings are scrubbed by the
// selected policy; sequences and objects are scrubbed element-wise with the
// same policy. A nil value stays nil under the permissive policy and
// becomes the empty string under the strict one, matching how plain fields
// are cleared.
func Value(v any, permissive bool) any {
	switch t := v.(type) {
	case nil:
		if permissive {
			return nil
		}
		return ""
	case string:
		if permissive {
			return Permissive(t)
		}
		return Strict(t)
	case bool:
		return t
	case []string:
		out := make([]string, len(t))
		for i, s := range t {
			if permissive {
				out[i] = Permissive(s)
			} else {
				out[i] = Strict(s)
			}
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Value(e, permissive)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = Value(e, permissive)
		}
		return out
	default:
		return v
	}
}
