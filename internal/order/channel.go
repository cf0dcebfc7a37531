package order

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/pkg/browser"
)

// ErrUnknownChannel is returned for channel names other than the known ones.
var ErrUnknownChannel = errors.New("unknown channel")

// Channel selects the messaging surface that receives the transcript.
type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelTelegram Channel = "telegram"
)

// Channels lists the supported channels.
var Channels = []Channel{ChannelWhatsApp, ChannelTelegram}

// ParseChannel validates a channel name.
func ParseChannel(s string) (Channel, error) {
	ch := Channel(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Channels {
		if ch == known {
			return ch, nil
		}
	}
	return "", fmt.Errorf("%w %q: must be one of %v", ErrUnknownChannel, s, Channels)
}

// Links holds the deep-link settings.
type Links struct {
	WhatsAppBase  string `json:"whatsapp_base"`
	WhatsAppPhone string `json:"whatsapp_phone"`
	TelegramBase  string `json:"telegram_base"`
	// PageURL is shared alongside the text on channels that support it.
	PageURL string `json:"page_url"`
}

// DefaultLinks returns the public share endpoints.
func DefaultLinks() Links {
	return Links{
		WhatsAppBase: "https://wa.me/",
		TelegramBase: "https://t.me/share/url",
	}
}

// Link builds the deep link carrying text for ch.
func (l Links) Link(ch Channel, text string) (string, error) {
	switch ch {
	case ChannelWhatsApp:
		return l.WhatsAppBase + digits(l.WhatsAppPhone) + "?text=" + EncodeComponent(text), nil
	case ChannelTelegram:
		if l.PageURL == "" {
			return l.TelegramBase + "?text=" + EncodeComponent(text), nil
		}
		return l.TelegramBase + "?url=" + EncodeComponent(l.PageURL) + "&text=" + EncodeComponent(text), nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownChannel, string(ch))
	}
}

// componentUnescaper restores the marks URI components leave literal.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeComponent percent-encodes s as a URI component: spaces become %20
// and only A-Z a-z 0-9 - _ . ! ~ * ' ( ) stay literal.
func EncodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

func digits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// Launcher opens a deep link in a new browsing context.
type Launcher interface {
	Open(link string) error
}

// LauncherFunc adapts a function to Launcher.
type LauncherFunc func(link string) error

// Open calls f.
func (f LauncherFunc) Open(link string) error {
	return f(link)
}

// BrowserLauncher opens links with the system browser.
type BrowserLauncher struct{}

// Open launches the default browser.
func (BrowserLauncher) Open(link string) error {
	if err := browser.OpenURL(link); err != nil {
		return fmt.Errorf("open %s: %w", link, err)
	}
	return nil
}
