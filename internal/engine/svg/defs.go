package svg

import "strings"

// SplitDefs removes every <defs> block from content and returns their joined contents.
func SplitDefs(content string) (defs, rest string) {
	var b strings.Builder
	for {
		index := strings.Index(content, "<defs")
		if index < 0 {
			break
		}
		start := strings.Index(content[index:], ">")
		if start < 0 {
			break
		}
		start += index
		if content[start-1] == '/' {
			content = strings.TrimSpace(content[:index]) + content[start+1:]
			continue
		}
		end := strings.Index(content[start:], "</defs")
		if end < 0 {
			break
		}
		end += start
		endEnd := strings.Index(content[end:], ">")
		if endEnd < 0 {
			break
		}
		endEnd += end

		b.WriteString(strings.TrimSpace(content[start+1 : end]))
		content = strings.TrimSpace(content[:index]) + content[endEnd+1:]
	}
	return b.String(), content
}

// MergeDefs prepends defs to content in a single <defs> block.
func MergeDefs(defs, content string) string {
	if defs == "" {
		return content
	}
	return "<defs>" + defs + "</defs>" + content
}

// WrapContent wraps body between start and end, keeping definitions outside the wrapper.
func WrapContent(body, start, end string) string {
	defs, content := SplitDefs(body)
	return MergeDefs(defs, start+content+end)
}
