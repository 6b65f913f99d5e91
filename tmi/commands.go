package tmi

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/nduhart/tmigo/internal/correlate"
	"github.com/nduhart/tmigo/internal/ircmsg"
)

// Say sends a plain chat message. Messages longer than the wire limit
// are split into consecutive frames (see internal/conn's SayRaw).
func (c *Client) Say(channel, message string) error {
	return c.conn.SayRaw(channel, message)
}

// Action sends a /me-style action message.
func (c *Client) Action(channel, message string) error {
	return c.conn.SayRaw(channel, "\x01ACTION "+message+"\x01")
}

// Me is an alias for Action.
func (c *Client) Me(channel, message string) error { return c.Action(channel, message) }

// Reply sends message as a threaded reply to parentMsgID within channel.
func (c *Client) Reply(channel, parentMsgID, message string) error {
	if parentMsgID == "" {
		return &UsageError{Command: "reply", Reason: "missing reply-parent-msg-id"}
	}
	channel = ircmsg.Channel(channel)
	return c.conn.Send("@reply-parent-msg-id=" + parentMsgID + " PRIVMSG " + channel + " :" + message)
}

// Whisper sends a direct message outside any channel. Twitch never
// confirms a successful whisper with a NOTICE — only a rejection
// produces one — so a correlation timeout here is treated as success
// rather than propagated, per the documented alignment of tmi.js's
// "whisper timeout is swallowed" behavior (see DESIGN.md).
func (c *Client) Whisper(ctx context.Context, username, message string) error {
	if strings.EqualFold(username, c.opts.Identity.Username) {
		return &UsageError{Command: "whisper", Reason: "cannot whisper yourself"}
	}
	channel := ircmsg.Channel(c.opts.GlobalDefaultChannel)
	line := "PRIVMSG " + channel + " :/w " + username + " " + message
	_, err := correlate.Do(ctx, c.conn, "whisper", channel, line)
	if err == correlate.ErrNoResponse {
		return nil
	}
	return err
}

// Join joins one or more channels. Twitch receives all of them as a
// single wire JOIN; the call resolves only once every channel's
// ROOMSTATE has confirmed membership (or rejects on the first failure).
func (c *Client) Join(ctx context.Context, channels ...string) ([]string, error) {
	return correlate.DoJoin(ctx, c.conn, channels)
}

// Part leaves a channel. An alias, Leave, is provided for the same
// operation.
func (c *Client) Part(channel string) error { return c.conn.Part(channel) }

// Leave is an alias for Part.
func (c *Client) Leave(channel string) error { return c.conn.Part(channel) }

func (c *Client) doChannelCommand(ctx context.Context, cmd, channel, slashLine string) error {
	channel = ircmsg.Channel(channel)
	_, err := correlate.Do(ctx, c.conn, cmd, channel, "PRIVMSG "+channel+" :"+slashLine)
	return err
}

func (c *Client) Ban(ctx context.Context, channel, username, reason string) error {
	line := "/ban " + username
	if reason != "" {
		line += " " + reason
	}
	return c.doChannelCommand(ctx, "ban", channel, line)
}

func (c *Client) Unban(ctx context.Context, channel, username string) error {
	return c.doChannelCommand(ctx, "unban", channel, "/unban "+username)
}

func (c *Client) Timeout(ctx context.Context, channel, username string, duration time.Duration, reason string) error {
	line := "/timeout " + username
	if duration > 0 {
		line += " " + strconv.Itoa(int(duration.Seconds()))
	}
	if reason != "" {
		line += " " + reason
	}
	return c.doChannelCommand(ctx, "timeout", channel, line)
}

// Untimeout lifts a timeout early. Twitch has no distinct wire command
// for this — it's implemented, as tmi.js does, as an alias for Unban.
func (c *Client) Untimeout(ctx context.Context, channel, username string) error {
	return c.Unban(ctx, channel, username)
}

func (c *Client) Clear(ctx context.Context, channel string) error {
	return c.doChannelCommand(ctx, "clear", channel, "/clear")
}

func (c *Client) Color(ctx context.Context, color string) error {
	channel := ircmsg.Channel(c.opts.GlobalDefaultChannel)
	line := "PRIVMSG " + channel + " :/color " + color
	_, err := correlate.Do(ctx, c.conn, "color", channel, line)
	return err
}

func (c *Client) Commercial(ctx context.Context, channel string, length time.Duration) error {
	secs := 30
	if length > 0 {
		secs = int(length.Seconds())
	}
	return c.doChannelCommand(ctx, "commercial", channel, "/commercial "+strconv.Itoa(secs))
}

func (c *Client) EmoteOnly(ctx context.Context, channel string) error {
	return c.doChannelCommand(ctx, "emoteonly", channel, "/emoteonly")
}

func (c *Client) EmoteOnlyOff(ctx context.Context, channel string) error {
	return c.doChannelCommand(ctx, "emoteonlyoff", channel, "/emoteonlyoff")
}

func (c *Client) FollowersOnly(ctx context.Context, channel string, minutes int) error {
	line := "/followers"
	if minutes > 0 {
		line += " " + strconv.Itoa(minutes)
	}
	return c.doChannelCommand(ctx, "followersonly", channel, line)
}

func (c *Client) FollowersOnlyOff(ctx context.Context, channel string) error {
	return c.doChannelCommand(ctx, "followersonlyoff", channel, "/followersoff")
}

func (c *Client) Slow(ctx context.Context, channel string, seconds int) error {
	return c.doChannelCommand(ctx, "slow", channel, "/slow "+strconv.Itoa(seconds))
}

func (c *Client) SlowOff(ctx context.Context, channel string) error {
	return c.doChannelCommand(ctx, "slowoff", channel, "/slowoff")
}

// Slowmode is an alias for Slow.
func (c *Client) Slowmode(ctx context.Context, channel string, seconds int) error {
	return c.Slow(ctx, channel, seconds)
}

// SlowmodeOff is an alias for SlowOff.
func (c *Client) SlowmodeOff(ctx context.Context, channel string) error {
	return c.SlowOff(ctx, channel)
}

func (c *Client) SubscribersOnly(ctx context.Context, channel string) error {
	return c.doChannelCommand(ctx, "subscribers", channel, "/subscribers")
}

func (c *Client) SubscribersOnlyOff(ctx context.Context, channel string) error {
	return c.doChannelCommand(ctx, "subscribersoff", channel, "/subscribersoff")
}

func (c *Client) R9kBeta(ctx context.Context, channel string) error {
	return c.doChannelCommand(ctx, "r9kbeta", channel, "/r9kbeta")
}

func (c *Client) R9kBetaOff(ctx context.Context, channel string) error {
	return c.doChannelCommand(ctx, "r9kbetaoff", channel, "/r9kbetaoff")
}

// UniqueChat is an alias for R9kBeta.
func (c *Client) UniqueChat(ctx context.Context, channel string) error {
	return c.R9kBeta(ctx, channel)
}

// UniqueChatOff is an alias for R9kBetaOff. The source this behavior is
// modeled on aliases this to the *enable* command instead — almost
// certainly a copy-paste bug, since every other off-alias points at its
// matching off-command. Fixed here rather than reproduced (see
// DESIGN.md).
func (c *Client) UniqueChatOff(ctx context.Context, channel string) error {
	return c.R9kBetaOff(ctx, channel)
}

func (c *Client) Mod(ctx context.Context, channel, username string) error {
	return c.doChannelCommand(ctx, "mod", channel, "/mod "+username)
}

func (c *Client) Unmod(ctx context.Context, channel, username string) error {
	return c.doChannelCommand(ctx, "unmod", channel, "/unmod "+username)
}

func (c *Client) VIP(ctx context.Context, channel, username string) error {
	return c.doChannelCommand(ctx, "vip", channel, "/vip "+username)
}

func (c *Client) Unvip(ctx context.Context, channel, username string) error {
	return c.doChannelCommand(ctx, "unvip", channel, "/unvip "+username)
}

func (c *Client) Mods(ctx context.Context, channel string) ([]string, error) {
	channel = ircmsg.Channel(channel)
	text, err := correlate.Do(ctx, c.conn, "mods", channel, "PRIVMSG "+channel+" :/mods")
	if err != nil {
		return nil, err
	}
	mods := parseNameList(text)
	c.conn.ModState().SetModerators(channel, mods)
	return mods, nil
}

func (c *Client) VIPs(ctx context.Context, channel string) ([]string, error) {
	channel = ircmsg.Channel(channel)
	text, err := correlate.Do(ctx, c.conn, "vips", channel, "PRIVMSG "+channel+" :/vips")
	if err != nil {
		return nil, err
	}
	return parseNameList(text), nil
}

func (c *Client) Host(ctx context.Context, channel, target string) error {
	return c.doChannelCommand(ctx, "host", channel, "/host "+target)
}

func (c *Client) Unhost(ctx context.Context, channel string) error {
	return c.doChannelCommand(ctx, "unhost", channel, "/unhost")
}

func (c *Client) Raid(ctx context.Context, channel, target string) error {
	return c.doChannelCommand(ctx, "raid", channel, "/raid "+target)
}

func (c *Client) Unraid(ctx context.Context, channel string) error {
	return c.doChannelCommand(ctx, "unraid", channel, "/unraid")
}

// Announce posts a highlighted announcement. Twitch delivers it back to
// every viewer (including the sender) as a USERNOTICE rather than
// confirming it directly to the sender, so — like Say — this is
// fire-and-forget.
func (c *Client) Announce(channel, message string) error {
	channel = ircmsg.Channel(channel)
	return c.conn.Send("PRIVMSG " + channel + " :/announce " + message)
}

func (c *Client) DeleteMessage(ctx context.Context, channel, messageID string) error {
	return c.doChannelCommand(ctx, "delete", channel, "/delete "+messageID)
}

// Ping sends an explicit PING and resolves to the measured round trip.
func (c *Client) Ping(ctx context.Context) (time.Duration, error) {
	if !c.conn.IsConnected() {
		return 0, ErrNotConnected
	}
	ch := c.conn.PingOnce()
	timer := time.NewTimer(c.conn.CommandTimeout())
	defer timer.Stop()
	select {
	case latency := <-ch:
		return latency, nil
	case <-timer.C:
		return 0, ErrNoResponse
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// parseNameList extracts a comma-separated username list from a NOTICE
// like "The moderators of this channel are: alice, bob, carol", or
// returns nil for a "no moderators/vips" reply with no colon.
func parseNameList(text string) []string {
	idx := strings.LastIndex(text, ":")
	if idx < 0 {
		return nil
	}
	fields := strings.Split(text[idx+1:], ",")
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
