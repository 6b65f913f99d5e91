package ircmsg

import "strings"

// Channel normalizes a channel name to its wire form: lowercase, with a
// single leading '#'. It is idempotent.
func Channel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "#")
	return "#" + s
}
