package tmi

import (
	"github.com/nduhart/tmigo/internal/bus"
	"github.com/nduhart/tmigo/internal/ircmsg"
)

// PrivateMessage is a channel chat message, either a plain chat line or
// a /me action (Action reports which).
type PrivateMessage struct {
	Channel string
	Tags    ircmsg.Tags
	Text    string
	Action  bool
	Self    bool
}

// WhisperMessage is a direct message delivered outside any channel.
type WhisperMessage struct {
	From string
	Tags ircmsg.Tags
	Text string
	Self bool
}

// JoinEvent reports a user (possibly the client itself) joining a
// channel's chat room.
type JoinEvent struct {
	Channel string
	User    string
	Self    bool
}

// PartEvent reports a user leaving a channel's chat room.
type PartEvent struct {
	Channel string
	User    string
	Self    bool
}

// NoticeEvent is a server-issued informational or error message, keyed
// by msg-id where Twitch provides one.
type NoticeEvent struct {
	Channel string
	MsgID   string
	Text    string
}

// ModerationEvent covers both /ban (Duration == "") and /timeout.
type ModerationEvent struct {
	Channel  string
	Target   string
	Duration string
}

// RoomStateEvent reports the current or changed settings for a channel.
type RoomStateEvent struct {
	Channel string
	Tags    ircmsg.Tags
}

// On registers a persistent listener on a raw bus topic, for events not
// covered by a typed On* method below.
func (c *Client) On(topic string, fn bus.Handler) *bus.Subscription {
	return c.conn.Bus().On(topic, fn)
}

// Once registers a one-shot listener on a raw bus topic.
func (c *Client) Once(topic string, fn bus.Handler) *bus.Subscription {
	return c.conn.Bus().Once(topic, fn)
}

func (c *Client) OnConnect(fn func(server string, port int)) *bus.Subscription {
	return c.conn.Bus().On("connected", func(a []interface{}) {
		server, _ := a[0].(string)
		port, _ := a[1].(int)
		fn(server, port)
	})
}

func (c *Client) OnDisconnect(fn func(reason string)) *bus.Subscription {
	return c.conn.Bus().On("disconnected", func(a []interface{}) {
		reason, _ := a[0].(string)
		fn(reason)
	})
}

func (c *Client) OnReconnecting(fn func()) *bus.Subscription {
	return c.conn.Bus().On("reconnect", func(a []interface{}) { fn() })
}

func (c *Client) OnJoin(fn func(JoinEvent)) *bus.Subscription {
	return c.conn.Bus().On("join", func(a []interface{}) {
		channel, _ := a[0].(string)
		user, _ := a[1].(string)
		self, _ := a[2].(bool)
		fn(JoinEvent{Channel: channel, User: user, Self: self})
	})
}

func (c *Client) OnPart(fn func(PartEvent)) *bus.Subscription {
	return c.conn.Bus().On("part", func(a []interface{}) {
		channel, _ := a[0].(string)
		user, _ := a[1].(string)
		self, _ := a[2].(bool)
		fn(PartEvent{Channel: channel, User: user, Self: self})
	})
}

// OnMessage fires for both chat lines and /me actions; Action
// distinguishes the two.
func (c *Client) OnMessage(fn func(PrivateMessage)) *bus.Subscription {
	return c.conn.Bus().On("message", func(a []interface{}) {
		channel, _ := a[0].(string)
		tags, _ := a[1].(ircmsg.Tags)
		text, _ := a[2].(string)
		self, _ := a[3].(bool)
		action, _ := a[4].(bool)
		fn(PrivateMessage{Channel: channel, Tags: tags, Text: text, Action: action, Self: self})
	})
}

func (c *Client) OnWhisper(fn func(WhisperMessage)) *bus.Subscription {
	return c.conn.Bus().On("whisper", func(a []interface{}) {
		from, _ := a[0].(string)
		tags, _ := a[1].(ircmsg.Tags)
		text, _ := a[2].(string)
		self, _ := a[3].(bool)
		fn(WhisperMessage{From: from, Tags: tags, Text: text, Self: self})
	})
}

func (c *Client) OnNotice(fn func(NoticeEvent)) *bus.Subscription {
	return c.conn.Bus().On("notice", func(a []interface{}) {
		channel, _ := a[0].(string)
		msgID, _ := a[1].(string)
		text, _ := a[2].(string)
		fn(NoticeEvent{Channel: channel, MsgID: msgID, Text: text})
	})
}

func (c *Client) OnBan(fn func(ModerationEvent)) *bus.Subscription {
	return c.conn.Bus().On("ban", func(a []interface{}) {
		channel, _ := a[0].(string)
		target, _ := a[1].(string)
		fn(ModerationEvent{Channel: channel, Target: target})
	})
}

func (c *Client) OnTimeout(fn func(ModerationEvent)) *bus.Subscription {
	return c.conn.Bus().On("timeout", func(a []interface{}) {
		channel, _ := a[0].(string)
		target, _ := a[1].(string)
		duration, _ := a[2].(string)
		fn(ModerationEvent{Channel: channel, Target: target, Duration: duration})
	})
}

func (c *Client) OnClearChat(fn func(channel string)) *bus.Subscription {
	return c.conn.Bus().On("clearchat", func(a []interface{}) {
		channel, _ := a[0].(string)
		fn(channel)
	})
}

func (c *Client) OnRoomState(fn func(RoomStateEvent)) *bus.Subscription {
	return c.conn.Bus().On("roomstate", func(a []interface{}) {
		channel, _ := a[0].(string)
		tags, _ := a[1].(ircmsg.Tags)
		fn(RoomStateEvent{Channel: channel, Tags: tags})
	})
}

func (c *Client) OnUserNotice(fn func(channel string, tags ircmsg.Tags, message string)) *bus.Subscription {
	return c.conn.Bus().On("usernotice", func(a []interface{}) {
		channel, _ := a[0].(string)
		tags, _ := a[1].(ircmsg.Tags)
		msg, _ := a[2].(string)
		fn(channel, tags, msg)
	})
}

func (c *Client) OnCheer(fn func(channel string, tags ircmsg.Tags, message string)) *bus.Subscription {
	return c.conn.Bus().On("cheer", func(a []interface{}) {
		channel, _ := a[0].(string)
		tags, _ := a[1].(ircmsg.Tags)
		msg, _ := a[2].(string)
		fn(channel, tags, msg)
	})
}
