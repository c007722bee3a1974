package output

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/abdul-hamid-achik/fetchquest/packages/core/errs"
	"github.com/tidwall/gjson"
)

// RenderHeaders prints a header mapping on one line, e.g.
// {"content-length": "5", "content-type": "text/plain"}. Names are lower-cased and
// sorted; every value of a repeated header is its own entry.
func RenderHeaders(h http.Header) string {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		li, lj := strings.ToLower(names[i]), strings.ToLower(names[j])
		if li != lj {
			return li < lj
		}
		return names[i] < names[j]
	})

	var b strings.Builder
	b.WriteByte('{')
	first := true
	for _, name := range names {
		for _, value := range h[name] {
			if !first {
				b.WriteString(", ")
			}
			first = false
			b.WriteString(strconv.Quote(strings.ToLower(name)))
			b.WriteString(": ")
			b.WriteString(strconv.Quote(value))
		}
	}
	b.WriteByte('}')
	return b.String()
}

// ApplyQuery extracts a gjson path from a JSON body. An empty path returns the body
// unchanged; a path that matches nothing yields "". Strings come back unquoted.
func ApplyQuery(body, path string) (string, error) {
	if path == "" {
		return body, nil
	}
	if !gjson.Valid(body) {
		return "", errs.Errorf(errs.KindEncoding, "query response body", "body is not valid JSON")
	}

	res := gjson.Get(body, path)
	if !res.Exists() {
		return "", nil
	}
	if res.Type == gjson.String {
		return res.Str, nil
	}
	return res.Raw, nil
}
