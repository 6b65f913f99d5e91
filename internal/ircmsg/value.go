package ircmsg

// Kind discriminates the variants a normalized tag value can take, per
// the "dynamic tag mapping" design note: string | bool | null | compound.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindNull
	KindBadges
	KindEmotes
)

// Value is a normalized IRCv3 tag value.
type Value struct {
	kind   Kind
	str    string
	boolv  bool
	badges BadgeSet
	emotes EmoteSet
}

func StringValue(s string) Value { return Value{kind: KindString, str: s} }
func BoolValue(b bool) Value     { return Value{kind: KindBool, boolv: b} }
func NullValue() Value           { return Value{kind: KindNull} }
func BadgesValue(b BadgeSet) Value { return Value{kind: KindBadges, badges: b} }
func EmotesValue(e EmoteSet) Value { return Value{kind: KindEmotes, emotes: e} }

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// String returns the string value and whether v held one.
func (v Value) String() (string, bool) {
	if v.kind == KindString {
		return v.str, true
	}
	return "", false
}

// Bool returns the bool value; a missing/non-bool value reads as false.
func (v Value) Bool() bool {
	return v.kind == KindBool && v.boolv
}

// Badges returns the parsed badge set and whether v held one.
func (v Value) Badges() (BadgeSet, bool) {
	if v.kind == KindBadges {
		return v.badges, true
	}
	return BadgeSet{}, false
}

// Emotes returns the parsed emote set and whether v held one.
func (v Value) Emotes() (EmoteSet, bool) {
	if v.kind == KindEmotes {
		return v.emotes, true
	}
	return EmoteSet{}, false
}

// RawTag is the value of a tag as produced by structural parsing, before
// composite extraction, unescaping, or boolean normalization.
type RawTag struct {
	Value    string
	HasValue bool // false when the tag appeared bare (no "=value")
}

// RawTags is the structural (pre-normalization) tag mapping.
type RawTags map[string]RawTag

// Tags is the fully normalized tag mapping exposed to consumers.
type Tags map[string]Value

// Get returns the value for key, defaulting to a null Value if absent.
func (t Tags) Get(key string) Value {
	if v, ok := t[key]; ok {
		return v
	}
	return NullValue()
}

// GetString is a convenience accessor returning "" for a missing or
// non-string tag.
func (t Tags) GetString(key string) string {
	s, _ := t.Get(key).String()
	return s
}

// Normalize turns raw structurally-parsed tags into the final Tags
// mapping: badges/badge-info/emotes are composite-parsed (badges and
// badge-info also keep their original strings under "badges-raw" and
// "badge-info-raw"; emotes has no "-raw" key), and every remaining
// scalar tag is normalized per the tag-value rules, except emote-sets,
// ban-duration and bits, which are kept as raw strings.
func Normalize(raw RawTags) Tags {
	out := make(Tags, len(raw)+2)
	for key, rt := range raw {
		switch key {
		case "badges", "badge-info":
			set := ParseBadges(rt.Value)
			out[key] = BadgesValue(set)
			out[key+"-raw"] = StringValue(rt.Value)
		case "emotes":
			out[key] = EmotesValue(ParseEmotes(rt.Value))
		default:
			out[key] = normalizeScalar(key, rt)
		}
	}
	return out
}

func normalizeScalar(key string, rt RawTag) Value {
	if rawStringTags[key] {
		return StringValue(rt.Value)
	}
	if !rt.HasValue {
		// bare-boolean true (tag present without "=value") normalizes to null.
		return NullValue()
	}
	switch rt.Value {
	case "1":
		return BoolValue(true)
	case "0":
		return BoolValue(false)
	case "":
		return NullValue()
	default:
		return StringValue(Unescape(rt.Value))
	}
}
