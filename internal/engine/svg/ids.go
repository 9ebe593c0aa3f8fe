package svg

import (
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

var idAttribute = regexp.MustCompile(`\sid="(\S+)"`)

var idCounter atomic.Uint64

// SequentialIDs returns a generator producing prefix0, prefix1, and so on.
// The counter is shared by every generator in the process so IDs never repeat.
func SequentialIDs(prefix string) func(string) string {
	return func(string) string {
		return prefix + strconv.FormatUint(idCounter.Add(1)-1, 10)
	}
}

// ReplaceIDs gives every id declared in body a new value from newID and
// rewrites references to it (url(#id), href="#id", ;id, "id").
// A nil newID uses SequentialIDs("ikon").
func ReplaceIDs(body string, newID func(id string) string) string {
	matches := idAttribute.FindAllStringSubmatch(body, -1)
	if len(matches) == 0 {
		return body
	}
	if newID == nil {
		newID = SequentialIDs("ikon")
	}

	suffix := "suffix" + strings.ReplaceAll(uuid.NewString(), "-", "")
	for _, m := range matches {
		id := m[1]
		ref := regexp.MustCompile(`([#;"])(` + regexp.QuoteMeta(id) + `)([")]|\.[a-z])`)
		body = ref.ReplaceAllString(body, "${1}"+escapeReplacement(newID(id)+suffix)+"${3}")
	}
	return strings.ReplaceAll(body, suffix, "")
}

func escapeReplacement(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}
