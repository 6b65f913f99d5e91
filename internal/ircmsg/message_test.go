package ircmsg

import "testing"

func TestParseWellFormedLines(t *testing.T) {
	type item struct {
		line    string
		wantCmd string
		hasTags bool
	}
	items := []item{
		{"PING :tmi.twitch.tv\r\n", "PING", false},
		{":tmi.twitch.tv 376 justinfan1234 :>\r\n", "376", false},
		{"@badges=;color=;display-name=Foo;mod=0 :foo!foo@foo.tmi.twitch.tv PRIVMSG #bar :hello world\r\n", "PRIVMSG", true},
		{":nick!user@host.tmi.twitch.tv JOIN #channel", "JOIN", false},
		{"@msg-id=ban_success :tmi.twitch.tv NOTICE #local7000 :baduser", "NOTICE", true},
	}
	for _, it := range items {
		m, ok := Parse(it.line)
		if !ok {
			t.Fatalf("Parse(%q) failed unexpectedly", it.line)
		}
		if m.Command != it.wantCmd {
			t.Fatalf("Parse(%q).Command = %q, want %q", it.line, m.Command, it.wantCmd)
		}
		if it.hasTags && it.line[0] != '@' {
			t.Fatalf("test setup error: expected line to start with @")
		}
		if it.hasTags != (len(m.RawTags) > 0) {
			t.Fatalf("Parse(%q): hasTags mismatch, RawTags=%v", it.line, m.RawTags)
		}
	}
}

func TestParseMalformedLines(t *testing.T) {
	items := []string{
		"@badges=foo", // '@' with no following space
		":nick",       // ':' prefix with no following space
		"",
		"\r\n",
	}
	for _, line := range items {
		if _, ok := Parse(line); ok {
			t.Fatalf("Parse(%q) expected to fail", line)
		}
	}
}

func TestParseTrailingParamConsumesRemainder(t *testing.T) {
	m, ok := Parse(":nick!user@host PRIVMSG #chan :hello : world with colons")
	if !ok {
		t.Fatalf("expected successful parse")
	}
	if len(m.Params) != 2 {
		t.Fatalf("expected 2 params, got %v", m.Params)
	}
	if m.Params[0] != "#chan" {
		t.Fatalf("unexpected first param: %q", m.Params[0])
	}
	if m.Params[1] != "hello : world with colons" {
		t.Fatalf("unexpected trailing param: %q", m.Params[1])
	}
}

func TestParsePrefixForms(t *testing.T) {
	m, ok := Parse(":nick!user@host.name PRIVMSG #chan :hi")
	if !ok {
		t.Fatalf("parse failed")
	}
	if m.Prefix.Nick != "nick" || m.Prefix.User != "user" || m.Prefix.Host != "host.name" {
		t.Fatalf("unexpected prefix: %+v", m.Prefix)
	}

	m2, ok := Parse(":tmi.twitch.tv NOTICE * :bad")
	if !ok {
		t.Fatalf("parse failed")
	}
	if !m2.Prefix.IsServer() || m2.Prefix.Raw != "tmi.twitch.tv" {
		t.Fatalf("unexpected server prefix: %+v", m2.Prefix)
	}
}

func TestNormalizeAfterParse(t *testing.T) {
	m, ok := Parse("@mod=1;subscriber=0 :nick!user@host PRIVMSG #chan :hi")
	if !ok {
		t.Fatalf("parse failed")
	}
	if m.Tags != nil {
		t.Fatalf("expected Tags nil before Normalize is called")
	}
	m.Normalize()
	if !m.Tags.Get("mod").Bool() {
		t.Fatalf("expected mod normalized to true")
	}
}

func TestSplitLines(t *testing.T) {
	data := []byte("PING :tmi.twitch.tv\r\n:nick!user@host JOIN #chan\r\n")
	lines := SplitLines(data)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %v", len(lines), lines)
	}
}
