package format

import (
	"fmt"
	"sort"
	"strings"

	"github.com/maigus-labs/maigus/pkg/core"
	"github.com/maigus-labs/maigus/pkg/token"
)

// Tags lists the tagged spans of a parsed line against its original text,
// one "tag [start,end) text" row per span, ordered by tag then offset.
// Spans outside the text are shown without a quote.
func Tags(original string, tags map[core.TagKey][]token.TextSpan) string {
	if len(tags) == 0 {
		return ""
	}
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		spans := append([]token.TextSpan(nil), tags[core.TagKey(k)]...)
		sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
		for _, s := range spans {
			fmt.Fprintf(&b, "%s [%d,%d)", k, s.Start, s.End)
			if s.IsValid() && s.End <= len(original) {
				fmt.Fprintf(&b, " %q", original[s.Start:s.End])
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}
