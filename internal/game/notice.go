package game

import "time"

// NoticeKind identifies a transient banner message.
type NoticeKind int

const (
	NoticeWelcome  NoticeKind = iota // Session (re)started
	NoticeLevelUp                    // A wave was cleared
	NoticeImpact                     // A rock hit the planet, lives remain
	NoticeRecord                     // Game over with a new best score
	NoticeGameOver                   // Game over without a record
)

func (k NoticeKind) String() string {
	switch k {
	case NoticeWelcome:
		return "welcome"
	case NoticeLevelUp:
		return "level up"
	case NoticeImpact:
		return "impact"
	case NoticeRecord:
		return "record"
	case NoticeGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Notice is a banner request. The numbers are the session values at the
// moment it was raised; the host decides the wording.
type Notice struct {
	Kind     NoticeKind
	Duration time.Duration
	Score    int
	Best     int
	Level    int
	Lives    int
}
