package ircmsg

import "testing"

func TestEscapeUnescapeRoundTrip(t *testing.T) {
	cases := []string{
		"hello world",
		"line\nbreak",
		"a;b",
		"carriage\rreturn",
		`back\slash`,
		"plain",
		"",
		" leading and trailing ",
		"multi\\ \n;\r mix",
	}
	for _, s := range cases {
		escaped := Escape(s)
		for _, bad := range []byte{' ', '\n', ';', '\r'} {
			for i := 0; i < len(escaped); i++ {
				if escaped[i] == bad {
					t.Fatalf("Escape(%q) produced literal meta byte %q: %q", s, bad, escaped)
				}
			}
		}
		if got := Unescape(escaped); got != s {
			t.Fatalf("Unescape(Escape(%q)) = %q, want %q", s, got, s)
		}
	}
}

func TestUnescapeUnknownEscapeYieldsByte(t *testing.T) {
	if got := Unescape(`\x`); got != "x" {
		t.Fatalf("Unescape(\\x) = %q, want %q", got, "x")
	}
}

func TestUnescapeTrailingBackslashDropped(t *testing.T) {
	if got := Unescape(`abc\`); got != "abc" {
		t.Fatalf("Unescape(abc\\\\) = %q, want %q", got, "abc")
	}
}

func TestParseBadgesRoundTrip(t *testing.T) {
	raw := "broadcaster/1,subscriber/12,premium/1"
	set := ParseBadges(raw)
	if got := set.String(); got != raw {
		t.Fatalf("BadgeSet.String() = %q, want %q", got, raw)
	}
	if v, ok := set.Get("subscriber"); !ok || v != "12" {
		t.Fatalf("Get(subscriber) = %q, %v", v, ok)
	}
}

func TestParseBadgeInfoRoundTrip(t *testing.T) {
	raw := "subscriber/26"
	set := ParseBadges(raw)
	if got := set.String(); got != raw {
		t.Fatalf("BadgeSet.String() = %q, want %q", got, raw)
	}
}

func TestParseEmotes(t *testing.T) {
	raw := "25:0-4,12-16/1902:6-10"
	set := ParseEmotes(raw)
	if len(set.Emotes) != 2 {
		t.Fatalf("expected 2 emote occurrences, got %d", len(set.Emotes))
	}
	positions, ok := set.Get("25")
	if !ok || len(positions) != 2 {
		t.Fatalf("expected 2 positions for emote 25, got %v ok=%v", positions, ok)
	}
	if positions[0] != (EmotePosition{Start: 0, End: 4}) {
		t.Fatalf("unexpected first position: %+v", positions[0])
	}
	other, ok := set.Get("1902")
	if !ok || len(other) != 1 || other[0] != (EmotePosition{Start: 6, End: 10}) {
		t.Fatalf("unexpected emote 1902 positions: %v ok=%v", other, ok)
	}
}

func TestNormalizeScalarTags(t *testing.T) {
	raw := RawTags{
		"mod":         RawTag{Value: "1", HasValue: true},
		"turbo":       RawTag{Value: "0", HasValue: true},
		"historical":  RawTag{HasValue: false},
		"display-name": RawTag{Value: `escaped\sname`, HasValue: true},
		"bits":        RawTag{Value: "1", HasValue: true},
		"ban-duration": RawTag{Value: "600", HasValue: true},
	}
	tags := Normalize(raw)

	if !tags.Get("mod").Bool() {
		t.Fatalf("expected mod=true")
	}
	if tags.Get("turbo").Bool() {
		t.Fatalf("expected turbo=false")
	}
	if !tags.Get("historical").IsNull() {
		t.Fatalf("expected bare-boolean tag to normalize to null")
	}
	if s, _ := tags.Get("display-name").String(); s != "escaped name" {
		t.Fatalf("expected unescaped display-name, got %q", s)
	}
	// exempt tags stay raw strings, not bool-normalized
	if s, ok := tags.Get("bits").String(); !ok || s != "1" {
		t.Fatalf("expected bits to remain raw string \"1\", got %q ok=%v", s, ok)
	}
	if s, _ := tags.Get("ban-duration").String(); s != "600" {
		t.Fatalf("expected ban-duration raw string, got %q", s)
	}
}

func TestNormalizeBadgesAndRaw(t *testing.T) {
	raw := RawTags{
		"badges": RawTag{Value: "moderator/1,subscriber/6", HasValue: true},
	}
	tags := Normalize(raw)
	set, ok := tags.Get("badges").Badges()
	if !ok {
		t.Fatalf("expected badges compound value")
	}
	if v, ok := set.Get("moderator"); !ok || v != "1" {
		t.Fatalf("unexpected moderator badge: %q %v", v, ok)
	}
	if s, ok := tags.Get("badges-raw").String(); !ok || s != "moderator/1,subscriber/6" {
		t.Fatalf("expected badges-raw preserved, got %q %v", s, ok)
	}
}

func TestChannelNormalization(t *testing.T) {
	cases := map[string]string{
		"Foo":  "#foo",
		"#Foo": "#foo",
		"#foo": "#foo",
		" BAR": "#bar",
	}
	for in, want := range cases {
		if got := Channel(in); got != want {
			t.Fatalf("Channel(%q) = %q, want %q", in, got, want)
		}
		if got := Channel(Channel(in)); got != want {
			t.Fatalf("Channel(Channel(%q)) = %q, want %q (not idempotent)", in, got, want)
		}
	}
}
