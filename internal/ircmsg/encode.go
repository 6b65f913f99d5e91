package ircmsg

import "strings"

// EncodeTags formats a tag mapping as an outgoing "@k1=v1;k2=v2 " block,
// escape-encoding each value. Returns "" if tags is empty.
func EncodeTags(tags map[string]string) string {
	if len(tags) == 0 {
		return ""
	}
	parts := make([]string, 0, len(tags))
	for k, v := range tags {
		parts = append(parts, k+"="+Escape(v))
	}
	return "@" + strings.Join(parts, ";") + " "
}

// EncodeLine builds a raw IRC line from a command, positional params, and
// an optional trailing param (sent with a leading ':').
func EncodeLine(tags map[string]string, command string, params []string, trailing string, hasTrailing bool) string {
	var b strings.Builder
	b.WriteString(EncodeTags(tags))
	b.WriteString(command)
	for _, p := range params {
		b.WriteByte(' ')
		b.WriteString(p)
	}
	if hasTrailing {
		b.WriteString(" :")
		b.WriteString(trailing)
	}
	return b.String()
}
