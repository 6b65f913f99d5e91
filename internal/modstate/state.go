// Package modstate holds the auxiliary connection state described in the
// data model: per-channel USERSTATE, the global USERSTATE, and the
// per-channel moderator roster. It is owned exclusively by the
// connection core's run loop; callers reading it from outside that loop
// must accept an eventually-consistent view (per the concurrency model,
// there is no additional locking beyond what the owner already applies).
package modstate

import "github.com/nduhart/tmigo/internal/ircmsg"

// State is the mutable auxiliary connection state.
type State struct {
	userstate       map[string]ircmsg.Tags
	globalUserstate ircmsg.Tags
	moderators      map[string]map[string]bool
	emoteSets       string // last-seen raw emote-sets tag
}

func New() *State {
	return &State{
		userstate:  make(map[string]ircmsg.Tags),
		moderators: make(map[string]map[string]bool),
	}
}

// SetUserstate records the USERSTATE tags observed for a channel.
func (s *State) SetUserstate(channel string, tags ircmsg.Tags) {
	s.userstate[channel] = tags
}

// Userstate returns the last-observed USERSTATE tags for a channel.
func (s *State) Userstate(channel string) (ircmsg.Tags, bool) {
	t, ok := s.userstate[channel]
	return t, ok
}

// HasUserstate reports whether USERSTATE has ever been seen for channel;
// used to detect first-join-after-login per the dispatcher rules.
func (s *State) HasUserstate(channel string) bool {
	_, ok := s.userstate[channel]
	return ok
}

// ClearUserstate drops a channel's recorded state, e.g. on PART.
func (s *State) ClearUserstate(channel string) {
	delete(s.userstate, channel)
	delete(s.moderators, channel)
}

// SetGlobalUserstate replaces the GLOBALUSERSTATE tag set, returning
// whether the emote-sets tag changed (callers use this to decide whether
// to emit "emotesets").
func (s *State) SetGlobalUserstate(tags ircmsg.Tags) (emoteSetsChanged bool) {
	s.globalUserstate = tags
	newSets := tags.GetString("emote-sets")
	changed := newSets != s.emoteSets
	s.emoteSets = newSets
	return changed
}

// GlobalUserstate returns the last GLOBALUSERSTATE tag set.
func (s *State) GlobalUserstate() ircmsg.Tags {
	return s.globalUserstate
}

// AddModerator adds username to a channel's moderator roster, without
// duplicating an existing entry.
func (s *State) AddModerator(channel, username string) {
	set := s.moderators[channel]
	if set == nil {
		set = make(map[string]bool)
		s.moderators[channel] = set
	}
	set[username] = true
}

// RemoveModerator removes username from a channel's moderator roster.
//
// The tmi.js source this behavior is modeled on builds the post-removal
// roster with a non-mutating filter and then discards the result, so
// "-o" never actually shrinks the roster there. This implementation
// fixes that bug rather than reproducing it: an explicit MODE -o should
// observably demote the user, and nothing in this spec's testable
// properties depends on the roster leaking stale entries.
func (s *State) RemoveModerator(channel, username string) {
	if set, ok := s.moderators[channel]; ok {
		delete(set, username)
	}
}

// SetModerators replaces a channel's roster wholesale, e.g. from a
// "/mods" reply. Deduplicates by construction.
func (s *State) SetModerators(channel string, usernames []string) {
	set := make(map[string]bool, len(usernames))
	for _, u := range usernames {
		set[u] = true
	}
	s.moderators[channel] = set
}

// Moderators returns the sorted-free set of moderators for a channel.
func (s *State) Moderators(channel string) []string {
	set := s.moderators[channel]
	out := make([]string, 0, len(set))
	for u := range set {
		out = append(out, u)
	}
	return out
}

// IsModerator reports whether username is a recorded moderator of channel.
func (s *State) IsModerator(channel, username string) bool {
	return s.moderators[channel][username]
}
