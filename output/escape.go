package output

import (
	"fmt"
	"strings"
)

// Escape converts value to text safe for element content and double-quoted
// attributes. nil yields "". Ampersands are replaced first so the entities
// produced for <, > and " are not escaped again; already-escaped input is
// escaped a second time.
func Escape(value any) string {
	var text string
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		text = v
	case fmt.Stringer:
		text = v.String()
	default:
		text = fmt.Sprint(v)
	}

	text = strings.ReplaceAll(text, "&", "&amp;")
	text = strings.ReplaceAll(text, "<", "&lt;")
	text = strings.ReplaceAll(text, ">", "&gt;")
	text = strings.ReplaceAll(text, `"`, "&quot;")
	return text
}

// SheetID derives the identifier used in element ids from a sheet name:
// spaces become underscores and apostrophes are dropped. Distinct names can
// map to the same id ("A B" and "A_B").
func SheetID(name string) string {
	id := strings.ReplaceAll(name, " ", "_")
	return strings.ReplaceAll(id, "'", "")
}
