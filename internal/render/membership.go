package render

import (
	"math"
	"time"
)

const (
	day = 24 * time.Hour

	// Window assumed when a membership has no start date
	defaultMembershipWindow = 30 * day
)

var (
	progressEmpty = RGB{R: 0xef, G: 0x44, B: 0x44} // #ef4444
	progressFull  = RGB{R: 0x22, G: 0xc5, B: 0x5e} // #22c55e
)

// MembershipBar is the time remaining until a membership expires.
type MembershipBar struct {
	Start    time.Time `json:"start"`
	Expiry   time.Time `json:"expiry"`
	Progress float64   `json:"progress"` // percent of the window still remaining, [0,100]
	DaysLeft int       `json:"daysLeft"`
	Expired  bool      `json:"expired"`
	Color    string    `json:"color"`
}

// Membership derives the progress bar. It returns nil when there is no
// expiry date. A missing start date means the window began 30 days before now.
// accent overrides the red-to-green gradient when set.
func Membership(start, expiry *time.Time, now time.Time, accent string) *MembershipBar {
	if expiry == nil {
		return nil
	}
	s := now.Add(-defaultMembershipWindow)
	if start != nil {
		s = *start
	}

	total := expiry.Sub(s)
	remaining := expiry.Sub(now)

	var progress float64
	switch {
	case total > 0:
		progress = float64(remaining) / float64(total) * 100
	case remaining > 0:
		progress = 100
	}
	progress = clampFloat(progress, 0, 100)

	color := accent
	if color == "" {
		color = ProgressColor(progress)
	}

	return &MembershipBar{
		Start:    s,
		Expiry:   *expiry,
		Progress: progress,
		DaysLeft: int(math.Ceil(float64(remaining) / float64(day))),
		Expired:  remaining <= 0,
		Color:    color,
	}
}

// ProgressColor blends red (empty) to green (full) for a progress in percent.
func ProgressColor(progress float64) string {
	return Lerp(progressEmpty, progressFull, clampFloat(progress, 0, 100)/100).Hex()
}

// ParseDate reads an ISO date or timestamp. Empty or malformed input gives nil.
func ParseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
