package conn

import (
	"strings"
	"time"

	"github.com/nduhart/tmigo/internal/ircmsg"
)

// MaxMessageBytes is the wire length (channel + PRIVMSG framing
// excluded) beyond which Twitch chat truncates a message. Longer
// messages are split into consecutive PRIVMSGs instead.
const MaxMessageBytes = 500

// splitRetryDelay is the pause between the head half of a split message
// and the recursive send of its tail, so Twitch's chat-line ordering
// preserves the split.
const splitRetryDelay = 350 * time.Millisecond

// SayRaw sends text to channel as PRIVMSG, splitting on whitespace into
// multiple messages if it exceeds MaxMessageBytes. The trailing
// fragments are sent asynchronously; SayRaw itself does not block on
// them.
func (c *Conn) SayRaw(channel, text string) error {
	channel = ircmsg.Channel(channel)
	if len(text) <= MaxMessageBytes {
		return c.Send("PRIVMSG " + channel + " :" + text)
	}

	head, tail := splitMessage(text)
	if err := c.Send("PRIVMSG " + channel + " :" + head); err != nil {
		return err
	}
	if tail == "" {
		return nil
	}
	time.AfterFunc(splitRetryDelay, func() {
		_ = c.SayRaw(channel, tail)
	})
	return nil
}

// splitMessage cuts text at the last space at or before MaxMessageBytes
// so words aren't broken mid-token; if no space exists in range it cuts
// at the byte limit.
func splitMessage(text string) (head, tail string) {
	if len(text) <= MaxMessageBytes {
		return text, ""
	}
	cut := strings.LastIndexByte(text[:MaxMessageBytes], ' ')
	if cut <= 0 {
		cut = MaxMessageBytes
	}
	return strings.TrimRight(text[:cut], " "), strings.TrimLeft(text[cut:], " ")
}
