package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/agentx/slack-summarizer/internal/models"
)

const (
	unknownUser = "unknown_user"
	timeLayout  = "2006-01-02 15:04:05"
)

// Normalizer converts raw channel messages into their canonical form.
type Normalizer struct {
	loc *time.Location
}

// NewNormalizer renders timestamps in loc; nil means the process local zone.
func NewNormalizer(loc *time.Location) *Normalizer {
	if loc == nil {
		loc = time.Local
	}
	return &Normalizer{loc: loc}
}

// Normalize builds a NormalizedMessage for raw, attributed to displayName.
// A timestamp that does not parse, or parses to NaN or an infinity, is kept
// verbatim with a zero sort key.
func (n *Normalizer) Normalize(raw models.RawMessage, displayName string) models.NormalizedMessage {
	ts := raw.Timestamp
	if ts == "" {
		ts = "0"
	}

	msg := models.NormalizedMessage{
		DisplayName:   displayName,
		FormattedTime: ts,
		RawTimestamp:  ts,
		Text:          raw.Text,
	}

	key, err := strconv.ParseFloat(ts, 64)
	if err != nil || math.IsNaN(key) || math.IsInf(key, 0) {
		return msg
	}
	msg.SortKey = key

	if t, err := ParseSlackTimestamp(ts); err == nil {
		msg.FormattedTime = t.In(n.loc).Format(timeLayout)
	}
	return msg
}

// ParseSlackTimestamp converts "1671481775.000300" to a time without going
// through float rounding.
func ParseSlackTimestamp(ts string) (time.Time, error) {
	secPart, fracPart, _ := strings.Cut(ts, ".")
	sec, err := strconv.ParseInt(secPart, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", ts, err)
	}

	var nsec int64
	if fracPart != "" {
		frac := fracPart
		for len(frac) < 9 {
			frac += "0"
		}
		nsec, err = strconv.ParseInt(frac[:9], 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", ts, err)
		}
	}
	return time.Unix(sec, nsec), nil
}

// FormatSlackTimestamp renders t in the API's fixed-point seconds format.
func FormatSlackTimestamp(t time.Time) string {
	return fmt.Sprintf("%d.%06d", t.Unix(), t.Nanosecond()/int(time.Microsecond))
}
