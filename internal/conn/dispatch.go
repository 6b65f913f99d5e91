package conn

import (
	"strconv"
	"strings"

	"github.com/nduhart/tmigo/internal/ircmsg"
	"github.com/nduhart/tmigo/internal/transport"
)

// readLoop is the only goroutine, besides the owner loop and timers,
// touching the socket: it blocks on ReadMessage and forwards each frame
// to the owner goroutine as a posted closure, so dispatch always runs
// serialized with everything else.
func (c *Conn) readLoop(sock transport.Socket) {
	for {
		data, err := sock.ReadMessage()
		if err != nil {
			c.post(func() { c.handleReadError(sock, err) })
			return
		}
		frame := data
		c.post(func() { c.handleFrame(frame) })
	}
}

func (c *Conn) handleReadError(sock transport.Socket, err error) {
	if c.sock != sock {
		return // stale reader from a socket we've already replaced/closed
	}
	wasReady := c.connState == StateOpenReady || c.connState == StateOpenHandshaking
	c.connState = StateClosed
	c.sock = nil
	c.cancelPingTimers()
	if !wasReady {
		return
	}
	c.bus.Emit("disconnected", err.Error())
	c.maybeReconnect()
}

func (c *Conn) handleFrame(data []byte) {
	for _, line := range ircmsg.SplitLines(data) {
		if c.cfg.TraceLine != nil {
			c.cfg.TraceLine("recv", line)
		}
		m, ok := ircmsg.Parse(line)
		if !ok {
			c.log.Warnw("failed to parse IRC line", "line", line)
			continue
		}
		m.Normalize()
		c.bus.Emit("raw_message", m)
		c.dispatchMessage(m)
	}
}

func (c *Conn) dispatchMessage(m *ircmsg.Message) {
	switch {
	case m.Prefix.Raw == "":
		c.dispatchNoPrefix(m)
	case m.Prefix.Raw == "tmi.twitch.tv":
		c.dispatchServer(m)
	case m.Prefix.Raw == "jtv":
		c.dispatchJTV(m)
	default:
		c.dispatchUser(m)
	}
}

func (c *Conn) dispatchNoPrefix(m *ircmsg.Message) {
	switch m.Command {
	case "PING":
		c.rawSendLocked("PONG :" + m.Trailing())
		c.bus.Emit("ping")
	case "PONG":
		c.handlePong()
	}
}

func (c *Conn) dispatchServer(m *ircmsg.Message) {
	switch m.Command {
	case "002", "003", "004", "372", "375", "CAP":
		// ignored per spec
	case "001":
		if len(m.Params) > 0 {
			c.pendingUsername = m.Params[0]
		}
	case "376":
		c.connState = StateOpenReady
		c.assignedUsername = c.pendingUsername
		c.reconnects = 0
		c.reconnectTimer = c.cfg.ReconnectInterval
		c.reconnectOK = c.cfg.Reconnect
		c.armPing()
		c.drainChannelsIntoJoinQueue()
		c.bus.Emit(topicHandshakeOK, c.pendingUsername)
	case "NOTICE":
		c.dispatchNotice(m)
	case "USERNOTICE":
		c.dispatchUserNotice(m)
	case "HOSTTARGET":
		c.dispatchHostTarget(m)
	case "CLEARCHAT":
		c.dispatchClearChat(m)
	case "CLEARMSG":
		c.bus.Emit("messagedeleted", channelOrEmpty(m, 0), m.Trailing(), m.Tags.GetString("target-msg-id"))
	case "RECONNECT":
		c.scheduleServerRequestedReconnect()
	case "USERSTATE":
		c.dispatchUserstate(m)
	case "GLOBALUSERSTATE":
		c.dispatchGlobalUserstate(m)
	case "ROOMSTATE":
		c.dispatchRoomstate(m)
	}
}

func (c *Conn) dispatchNotice(m *ircmsg.Message) {
	channel := channelOrEmpty(m, 0)
	msgID := m.Tags.GetString("msg-id")
	text := m.Trailing()

	if isHandshakeFailure(text) {
		c.bus.Emit(topicHandshakeFail, text)
		return
	}

	c.bus.Emit("notice", channel, msgID, text)

	if msgID == "" {
		return
	}

	if isPermissionFailure(msgID) {
		for _, topic := range permissionFailureTopics(channel) {
			c.bus.Emit(topic, msgID, text)
		}
		return
	}

	if cmd, ok := successMsgIDs[msgID]; ok {
		c.bus.Emit(PromiseSuccessTopic(cmd, channel), msgID, text)
		return
	}
	if cmd, ok := failureMsgIDs[msgID]; ok {
		c.bus.Emit(PromiseFailTopic(cmd, channel), msgID, text)
	}
}

func (c *Conn) dispatchUserNotice(m *ircmsg.Message) {
	channel := channelOrEmpty(m, 0)
	msgID := m.Tags.GetString("msg-id")
	msg := m.Trailing()

	switch msgID {
	case "sub", "resub", "subgift", "anonsubgift", "submysterygift",
		"anonsubmysterygift", "primepaidupgrade", "giftpaidupgrade",
		"anongiftpaidupgrade", "announcement", "raid":
		c.bus.Emit(msgID, channel, m.Tags, msg)
	default:
		c.bus.Emit("usernotice", channel, m.Tags, msg)
	}
}

func (c *Conn) dispatchHostTarget(m *ircmsg.Message) {
	if len(m.Params) == 0 {
		return
	}
	channel := ircmsg.Channel(m.Params[0])
	target := ""
	if len(m.Params) > 1 {
		target = m.Params[1]
	}
	if strings.HasPrefix(target, "-") {
		c.bus.Emit("unhost", channel)
		return
	}
	fields := strings.Fields(target)
	targetChannel := ""
	viewers := 0
	if len(fields) > 0 {
		targetChannel = fields[0]
	}
	if len(fields) > 1 {
		viewers, _ = strconv.Atoi(fields[1])
	}
	c.bus.Emit("hosting", channel, targetChannel, viewers)
}

func (c *Conn) dispatchClearChat(m *ircmsg.Message) {
	channel := channelOrEmpty(m, 0)
	target := ""
	if len(m.Params) > 1 {
		target = m.Params[1]
	}
	_, hasBanDuration := m.Tags["ban-duration"]

	switch {
	case hasBanDuration:
		dur := m.Tags.GetString("ban-duration")
		c.bus.Emit("timeout", channel, target, dur)
	case target != "":
		c.bus.Emit("ban", channel, target)
	default:
		c.bus.Emit("clearchat", channel)
		c.bus.Emit(PromiseSuccessTopic("clear", channel))
	}
}

func (c *Conn) dispatchUserstate(m *ircmsg.Message) {
	channel := channelOrEmpty(m, 0)
	firstTime := !c.state.HasUserstate(channel)
	c.state.SetUserstate(channel, m.Tags)

	if m.Tags.GetString("user-type") == "mod" && c.pendingUsername != "" {
		c.state.AddModerator(channel, strings.ToLower(c.pendingUsername))
	}

	if firstTime && c.connState == StateOpenReady {
		self := c.assignedUsername
		c.bus.Emit("join", channel, self, true)
		c.channels[channel] = true
	}
}

func (c *Conn) dispatchGlobalUserstate(m *ircmsg.Message) {
	changed := c.state.SetGlobalUserstate(m.Tags)
	c.bus.Emit("globaluserstate", m.Tags)
	if changed {
		c.bus.Emit("emotesets", m.Tags.GetString("emote-sets"))
	}
}

func (c *Conn) dispatchRoomstate(m *ircmsg.Message) {
	channel := channelOrEmpty(m, 0)
	c.bus.Emit("roomstate", channel, m.Tags)

	if slow, ok := m.Tags.Get("slow").String(); ok {
		if slow == "0" || slow == "" {
			c.bus.Emit("slow", channel, false, 0)
		} else if n, err := strconv.Atoi(slow); err == nil {
			c.bus.Emit("slow", channel, true, n)
		}
	}
	if fo, ok := m.Tags.Get("followers-only").String(); ok {
		n, err := strconv.Atoi(fo)
		if err == nil {
			if n < 0 {
				c.bus.Emit("followersonly", channel, false, n)
			} else {
				c.bus.Emit("followersonly", channel, true, n)
			}
		}
	}

	// Any listener on this channel's join promise wants to know: a
	// ROOMSTATE both confirms a just-issued JOIN and reports later
	// settings changes, and only the former has a listener waiting.
	c.bus.Emit(PromiseSuccessTopic("join", channel))
}

func (c *Conn) dispatchJTV(m *ircmsg.Message) {
	switch m.Command {
	case "MODE":
		c.dispatchJTVMode(m)
	case "PRIVMSG":
		c.dispatchPrivmsg(m, "jtv")
	}
}

func (c *Conn) dispatchJTVMode(m *ircmsg.Message) {
	if len(m.Params) < 3 {
		return
	}
	channel := ircmsg.Channel(m.Params[0])
	mode := m.Params[1]
	username := m.Params[2]
	switch mode {
	case "+o":
		c.state.AddModerator(channel, username)
		c.bus.Emit("mod", channel, username)
	case "-o":
		c.state.RemoveModerator(channel, username)
		c.bus.Emit("unmod", channel, username)
	}
}

func (c *Conn) dispatchUser(m *ircmsg.Message) {
	nick := m.Prefix.Nick
	switch m.Command {
	case "JOIN":
		channel := channelOrEmpty(m, 0)
		self := strings.EqualFold(nick, c.assignedUsername)
		c.bus.Emit("join", channel, nick, self)
	case "PART":
		channel := channelOrEmpty(m, 0)
		self := strings.EqualFold(nick, c.assignedUsername)
		if self {
			delete(c.channels, channel)
			c.state.ClearUserstate(channel)
		}
		c.bus.Emit("part", channel, nick, self)
	case "353":
		c.dispatchNames(m)
	case "PRIVMSG":
		c.dispatchPrivmsg(m, nick)
	case "WHISPER":
		self := strings.EqualFold(nick, c.assignedUsername)
		c.bus.Emit("whisper", nick, m.Tags, m.Trailing(), self)
	}
}

func (c *Conn) dispatchNames(m *ircmsg.Message) {
	if len(m.Params) < 3 {
		return
	}
	channel := ircmsg.Channel(m.Params[2])
	users := strings.Fields(m.Trailing())
	c.bus.Emit("names", channel, users)
}

const actionMarker = "\x01ACTION "

func (c *Conn) dispatchPrivmsg(m *ircmsg.Message, nick string) {
	channel := channelOrEmpty(m, 0)
	self := strings.EqualFold(nick, c.assignedUsername)
	text := m.Trailing()

	if strings.EqualFold(m.Prefix.Raw, "jtv") && strings.Contains(text, "hosting you") {
		fields := strings.Fields(text)
		viewers := 0
		hostChannel := ""
		if len(fields) > 0 {
			hostChannel = strings.TrimPrefix(fields[0], "#")
		}
		for _, f := range fields {
			if n, err := strconv.Atoi(f); err == nil {
				viewers = n
			}
		}
		c.bus.Emit("hosted", hostChannel, viewers)
		return
	}

	if bits := m.Tags.GetString("bits"); bits != "" {
		c.bus.Emit("cheer", channel, m.Tags, text)
	}

	if strings.HasPrefix(text, actionMarker) && strings.HasSuffix(text, "\x01") {
		action := strings.TrimSuffix(strings.TrimPrefix(text, actionMarker), "\x01")
		c.bus.Emit("action", channel, m.Tags, action, self)
		c.bus.Emit("message", channel, m.Tags, action, self, true)
		return
	}

	c.bus.Emit("chat", channel, m.Tags, text, self)
	c.bus.Emit("message", channel, m.Tags, text, self, false)
}

func channelOrEmpty(m *ircmsg.Message, idx int) string {
	if len(m.Params) <= idx {
		return ""
	}
	return ircmsg.Channel(m.Params[idx])
}
