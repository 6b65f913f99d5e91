package conn

// This file maps Twitch's NOTICE msg-id vocabulary onto the internal
// command-correlation topics used by the internal/correlate package.
// Twitch's IRC gateway never echoes a request id back to the sender
// (see design note in SPEC_FULL.md §4.4), so a pending command's
// completion is inferred from one of these msg-ids arriving on the
// same connection.

// allCommands enumerates every command name a NOTICE can complete or
// fail. Used by permissionFailureTopics to broadcast a
// connection-wide failure (one not tied to any single msg-id) to every
// command that might currently be waiting.
var allCommands = []string{
	"ban", "unban", "timeout", "delete",
	"emoteonly", "emoteonlyoff",
	"followersonly", "followersonlyoff",
	"host", "unhost",
	"r9kbeta", "r9kbetaoff",
	"slow", "slowoff",
	"subscribers", "subscribersoff",
	"color", "commercial",
	"mod", "unmod", "vip", "unvip", "mods", "vips",
	"raid", "unraid",
	"join", "clear", "whisper",
}

// successMsgIDs maps a NOTICE msg-id that signals successful
// completion to the command it completes.
var successMsgIDs = map[string]string{
	"ban_success":            "ban",
	"unban_success":          "unban",
	"timeout_success":        "timeout",
	"delete_message_success": "delete",
	"emote_only_on":          "emoteonly",
	"emote_only_off":         "emoteonlyoff",
	"followers_on":           "followersonly",
	"followers_on_zero":      "followersonly",
	"followers_off":          "followersonlyoff",
	"host_on":                "host",
	"host_off":               "unhost",
	"r9k_on":                 "r9kbeta",
	"r9k_off":                "r9kbetaoff",
	"slow_on":                "slow",
	"slow_off":               "slowoff",
	"subs_on":                "subscribers",
	"subs_off":               "subscribersoff",
	"color_changed":          "color",
	"commercial_success":     "commercial",
	"vip_success":            "vip",
	"unvip_success":          "unvip",
	"mod_success":            "mod",
	"unmod_success":          "unmod",
	"raid_started":           "raid",
	"unraid_success":         "unraid",
	"room_mods":              "mods",
	"no_mods":                "mods",
	"vips_success":           "vips",
	"no_vips":                "vips",
}

// failureMsgIDs maps a NOTICE msg-id that signals rejection of an
// in-flight command to that command.
var failureMsgIDs = map[string]string{
	"usage_ban":                      "ban",
	"already_banned":                 "ban",
	"bad_ban_admin":                  "ban",
	"bad_ban_broadcaster":            "ban",
	"bad_ban_global_mod":             "ban",
	"bad_ban_mod":                    "ban",
	"bad_ban_self":                   "ban",
	"bad_ban_staff":                  "ban",
	"usage_unban":                    "unban",
	"bad_unban_no_ban":               "unban",
	"usage_timeout":                  "timeout",
	"bad_timeout_admin":              "timeout",
	"bad_timeout_broadcaster":        "timeout",
	"bad_timeout_global_mod":         "timeout",
	"bad_timeout_mod":                "timeout",
	"bad_timeout_self":               "timeout",
	"bad_timeout_staff":              "timeout",
	"usage_delete":                   "delete",
	"bad_delete_message_error":       "delete",
	"bad_delete_message_broadcaster": "delete",
	"bad_delete_message_mod":         "delete",
	"usage_color":                    "color",
	"turbo_only_color":               "color",
	"usage_commercial":               "commercial",
	"bad_commercial_error":           "commercial",
	"usage_host":                     "host",
	"bad_host_hosting":               "host",
	"bad_host_rate_exceeded":         "host",
	"bad_host_error":                 "host",
	"usage_unhost":                   "unhost",
	"not_hosting":                    "unhost",
	"usage_mod":                      "mod",
	"bad_mod_banned":                 "mod",
	"bad_mod_mod":                    "mod",
	"usage_unmod":                    "unmod",
	"bad_unmod_mod":                  "unmod",
	"usage_vip":                      "vip",
	"bad_vip_grantee_banned":         "vip",
	"bad_vip_grantee_already_vip":    "vip",
	"usage_unvip":                    "unvip",
	"bad_unvip_grantee_not_vip":      "unvip",
	"usage_raid":                     "raid",
	"bad_raid_self":                  "raid",
	"bad_raid_notice_mature":         "raid",
	"usage_unraid":                   "unraid",
	"no_raid_pending":                "unraid",
	"usage_mods":                     "mods",
	"usage_vips":                     "vips",
	"whisper_restricted":             "whisper",
	"whisper_restricted_recipient":   "whisper",
}

// permissionFailurePhrases are msg-ids that reject an entire request
// out of hand rather than a specific command, so they can't be looked
// up in failureMsgIDs by msg-id alone.
var permissionFailurePhrases = map[string]bool{
	"no_permission":         true,
	"msg_banned":            true,
	"msg_channel_suspended": true,
	"msg_room_not_found":    true,
	"tos_ban":               true,
	"invalid_user":          true,
}

func isPermissionFailure(msgID string) bool {
	return permissionFailurePhrases[msgID]
}

// permissionFailureTopics returns the fail topic for every known
// command on channel, since a blanket permission NOTICE doesn't say
// which pending command it's rejecting.
func permissionFailureTopics(channel string) []string {
	topics := make([]string, 0, len(allCommands))
	for _, cmd := range allCommands {
		topics = append(topics, PromiseFailTopic(cmd, channel))
	}
	return topics
}

// PromiseSuccessTopic and PromiseFailTopic name the internal bus
// topics a pending command correlation waits on, per the
// "_promise<Command>[:channel]" scheme from SPEC_FULL.md §4.4.
// dispatchNotice always keys a NOTICE by the channel it arrived on, so
// commands that are not channel-scoped (color, whisper) are sent to and
// keyed on the global default channel. An empty channel yields the bare
// topic name.
func PromiseSuccessTopic(cmd, channel string) string {
	if channel == "" {
		return "_promise" + cmd
	}
	return "_promise" + cmd + ":" + channel
}

func PromiseFailTopic(cmd, channel string) string {
	if channel == "" {
		return "_promise" + cmd + "Fail"
	}
	return "_promise" + cmd + "Fail:" + channel
}
