package ircmsg

import "strings"

// Prefix is the optional source of a message: either a bare server name
// (tmi.twitch.tv, jtv) or a full nick!user@host triple.
type Prefix struct {
	Raw  string
	Nick string
	User string
	Host string
}

// IsServer reports whether the prefix names a bare server (no "!").
func (p Prefix) IsServer() bool {
	return p.Raw != "" && p.Nick == "" && p.User == "" && p.Host == ""
}

// Message is an immutable, structurally-parsed IRC line. Tags is filled
// in by a call to Normalize (see value.go); until then it is nil and
// RawTags holds the unprocessed tag values.
type Message struct {
	Raw     string
	RawTags RawTags
	Tags    Tags
	Prefix  Prefix
	Command string
	Params  []string
}

// Trailing returns the last parameter, or "" if there are none. Twitch
// commands that carry a message body always put it last.
func (m *Message) Trailing() string {
	if len(m.Params) == 0 {
		return ""
	}
	return m.Params[len(m.Params)-1]
}

// Normalize fills in m.Tags from m.RawTags. Idempotent.
func (m *Message) Normalize() {
	m.Tags = Normalize(m.RawTags)
}

// Parse performs the positional scan described for the message parser:
// an optional "@tags " block, an optional ":prefix " block, a command
// token, and then space-delimited parameters (the last of which may be
// introduced by ':' and consume the remainder of the line verbatim).
//
// Parse never applies IRC-unescape to tag values; that happens in a
// separate call to Normalize once composite tags have been extracted.
//
// It returns (nil, false) for a malformed line: an "@" block with no
// following space, a ":" prefix with no following space, or no command
// token after the prefix.
func Parse(line string) (*Message, bool) {
	raw := line
	rest := strings.TrimRight(line, "\r\n")

	m := &Message{Raw: raw}

	if len(rest) > 0 && rest[0] == '@' {
		sp := strings.IndexByte(rest, ' ')
		if sp < 0 {
			return nil, false
		}
		m.RawTags = parseTags(rest[1:sp])
		rest = rest[sp+1:]
	}

	rest = strings.TrimLeft(rest, " ")

	if len(rest) > 0 && rest[0] == ':' {
		sp := strings.IndexByte(rest, ' ')
		if sp < 0 {
			return nil, false
		}
		m.Prefix = parsePrefix(rest[1:sp])
		rest = rest[sp+1:]
		rest = strings.TrimLeft(rest, " ")
	}

	if rest == "" {
		return nil, false
	}

	sp := strings.IndexByte(rest, ' ')
	if sp < 0 {
		m.Command = strings.ToUpper(rest)
		rest = ""
	} else {
		m.Command = strings.ToUpper(rest[:sp])
		rest = rest[sp+1:]
	}
	if m.Command == "" {
		return nil, false
	}

	for rest != "" {
		rest = strings.TrimLeft(rest, " ")
		if rest == "" {
			break
		}
		if rest[0] == ':' {
			m.Params = append(m.Params, rest[1:])
			break
		}
		sp := strings.IndexByte(rest, ' ')
		if sp < 0 {
			m.Params = append(m.Params, rest)
			break
		}
		m.Params = append(m.Params, rest[:sp])
		rest = rest[sp+1:]
	}

	return m, true
}

func parsePrefix(s string) Prefix {
	p := Prefix{Raw: s}
	bang := strings.IndexByte(s, '!')
	if bang < 0 {
		return p
	}
	p.Nick = s[:bang]
	rest := s[bang+1:]
	at := strings.IndexByte(rest, '@')
	if at < 0 {
		p.User = rest
		return p
	}
	p.User = rest[:at]
	p.Host = rest[at+1:]
	return p
}

func parseTags(s string) RawTags {
	if s == "" {
		return nil
	}
	tags := make(RawTags)
	for _, kv := range strings.Split(s, ";") {
		if kv == "" {
			continue
		}
		eq := strings.IndexByte(kv, '=')
		if eq < 0 {
			tags[kv] = RawTag{HasValue: false}
			continue
		}
		tags[kv[:eq]] = RawTag{Value: kv[eq+1:], HasValue: true}
	}
	return tags
}

// SplitLines splits a data frame that may contain multiple CRLF-separated
// IRC lines into individual (non-terminated) lines.
func SplitLines(data []byte) []string {
	raw := strings.Split(string(data), "\r\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}
