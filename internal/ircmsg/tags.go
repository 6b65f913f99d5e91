// Package ircmsg implements the IRCv3 tag codec and message parser used to
// turn a raw line from the Twitch chat gateway into a structured message.
package ircmsg

import (
	"strconv"
	"strings"
)

// Escape encodes the IRCv3 tag meta-alphabet: literal space, LF, semicolon
// and CR become \s, \n, \: and \r; a literal backslash becomes \\.
func Escape(s string) string {
	if !strings.ContainsAny(s, " \n;\r\\") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case ' ':
			b.WriteString(`\s`)
		case '\n':
			b.WriteString(`\n`)
		case ';':
			b.WriteString(`\:`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Unescape decodes the IRCv3 tag escape alphabet with a strict
// left-to-right scan. An unrecognized escape yields the escaped byte
// itself rather than an error. A trailing, unpaired backslash is dropped.
func Unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '\\' {
			b.WriteRune(r)
			continue
		}
		if i+1 >= len(runes) {
			break
		}
		i++
		switch runes[i] {
		case 's':
			b.WriteRune(' ')
		case 'n':
			b.WriteRune('\n')
		case ':':
			b.WriteRune(';')
		case 'r':
			b.WriteRune('\r')
		case '\\':
			b.WriteRune('\\')
		default:
			b.WriteRune(runes[i])
		}
	}
	return b.String()
}

// Badge is a single parsed badges/badge-info entry, in original order.
type Badge struct {
	Key     string
	Version string
	HasVersion bool
}

// BadgeSet is the parsed form of a badges or badge-info tag.
type BadgeSet struct {
	Badges []Badge
	Raw    string
}

// ParseBadges parses a badges/badge-info tag value: comma-separated
// key/version pairs, each split on the first slash.
func ParseBadges(raw string) BadgeSet {
	set := BadgeSet{Raw: raw}
	if raw == "" {
		return set
	}
	for _, pair := range strings.Split(raw, ",") {
		if pair == "" {
			continue
		}
		idx := strings.IndexByte(pair, '/')
		if idx < 0 {
			set.Badges = append(set.Badges, Badge{Key: pair})
			continue
		}
		set.Badges = append(set.Badges, Badge{
			Key:        pair[:idx],
			Version:    pair[idx+1:],
			HasVersion: true,
		})
	}
	return set
}

// String re-serializes the badge set, reproducing the original comma/slash
// form and pair ordering.
func (s BadgeSet) String() string {
	parts := make([]string, 0, len(s.Badges))
	for _, b := range s.Badges {
		if b.HasVersion {
			parts = append(parts, b.Key+"/"+b.Version)
		} else {
			parts = append(parts, b.Key)
		}
	}
	return strings.Join(parts, ",")
}

// Get returns the version string for a badge key, and whether it exists.
func (s BadgeSet) Get(key string) (string, bool) {
	for _, b := range s.Badges {
		if b.Key == key {
			return b.Version, true
		}
	}
	return "", false
}

// EmotePosition is one (start, end) occurrence of an emote in a message.
type EmotePosition struct {
	Start, End int
}

// EmoteOccurrence is a single emote id with its ordered occurrences,
// preserving the outer '/'-separated ordering of the original tag.
type EmoteOccurrence struct {
	ID        string
	Positions []EmotePosition
}

// EmoteSet is the parsed form of an emotes tag.
type EmoteSet struct {
	Emotes []EmoteOccurrence
	Raw    string
}

// ParseEmotes parses an emotes tag value: '/'-separated emote entries,
// each "id:start-end,start-end,...".
func ParseEmotes(raw string) EmoteSet {
	set := EmoteSet{Raw: raw}
	if raw == "" {
		return set
	}
	for _, entry := range strings.Split(raw, "/") {
		if entry == "" {
			continue
		}
		idx := strings.IndexByte(entry, ':')
		if idx < 0 {
			continue
		}
		id := entry[:idx]
		occ := EmoteOccurrence{ID: id}
		for _, posStr := range strings.Split(entry[idx+1:], ",") {
			dash := strings.IndexByte(posStr, '-')
			if dash < 0 {
				continue
			}
			start, err1 := strconv.Atoi(posStr[:dash])
			end, err2 := strconv.Atoi(posStr[dash+1:])
			if err1 != nil || err2 != nil {
				continue
			}
			occ.Positions = append(occ.Positions, EmotePosition{Start: start, End: end})
		}
		set.Emotes = append(set.Emotes, occ)
	}
	return set
}

// String re-serializes the emote set. The result is semantically
// equivalent to (though not guaranteed byte-identical to) the original,
// since the outer ordering is preserved but Twitch does not otherwise
// mandate a canonical form.
func (s EmoteSet) String() string {
	entries := make([]string, 0, len(s.Emotes))
	for _, occ := range s.Emotes {
		positions := make([]string, 0, len(occ.Positions))
		for _, p := range occ.Positions {
			positions = append(positions, strconv.Itoa(p.Start)+"-"+strconv.Itoa(p.End))
		}
		entries = append(entries, occ.ID+":"+strings.Join(positions, ","))
	}
	return strings.Join(entries, "/")
}

// Get returns the occurrences for an emote id, and whether it exists.
func (s EmoteSet) Get(id string) ([]EmotePosition, bool) {
	for _, e := range s.Emotes {
		if e.ID == id {
			return e.Positions, true
		}
	}
	return nil, false
}

// tags exempt from the '1'/'0'/bare-boolean normalization; these are kept
// as raw strings.
var rawStringTags = map[string]bool{
	"emote-sets":   true,
	"ban-duration": true,
	"bits":         true,
}
