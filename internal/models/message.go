package models

// RawMessage is a channel message as returned by the history and replies APIs.
type RawMessage struct {
	User       string // author id, empty for some bot and system messages
	Username   string // bot username, set when User is empty
	Text       string
	Timestamp  string // fixed-point seconds, e.g. "1671481775.000300"
	ReplyCount int
}

// NormalizedMessage is the canonical form consumed by the transcript formatter.
type NormalizedMessage struct {
	DisplayName   string  `json:"user"`
	FormattedTime string  `json:"timestamp"`
	SortKey       float64 `json:"-"`
	RawTimestamp  string  `json:"raw_ts"`
	Text          string  `json:"text"`
}

// UserProfile holds the name fields returned by a user lookup.
type UserProfile struct {
	DisplayName string
	RealName    string
}
