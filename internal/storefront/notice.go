package storefront

import "time"

// DefaultNoticeTTL is how long a notice stays visible.
const DefaultNoticeTTL = 1200 * time.Millisecond

// NoticeKind distinguishes confirmations from failures.
type NoticeKind string

const (
	NoticeInfo  NoticeKind = "info"
	NoticeError NoticeKind = "error"
)

// Notice is a transient message for the shopper. It expires on its own and
// never blocks further events.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Text    string     `json:"text"`
	Expires time.Time  `json:"-"`
}

// Active reports whether n is still visible at now.
func (n Notice) Active(now time.Time) bool {
	return n.Text != "" && now.Before(n.Expires)
}

// noticeBoard holds the latest notice. A newer notice replaces the older one.
type noticeBoard struct {
	clock Clock
	ttl   time.Duration
	cur   Notice
}

func (b *noticeBoard) post(kind NoticeKind, text string) Notice {
	if text == "" {
		return Notice{}
	}
	b.cur = Notice{Kind: kind, Text: text, Expires: b.clock.Now().Add(b.ttl)}
	return b.cur
}

func (b *noticeBoard) active() (Notice, bool) {
	if !b.cur.Active(b.clock.Now()) {
		return Notice{}, false
	}
	return b.cur, true
}
