// Package notify creates channel-specific notifiers by name.
package notify

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// ErrUnsupportedChannel is returned by Create for unknown channel names.
var ErrUnsupportedChannel = errors.New("unsupported channel")

// Notifier delivers a message to a recipient.
type Notifier interface {
	Send(to, message string) error
}

// Constructor builds a notifier that writes to w.
type Constructor func(w io.Writer) Notifier

// Factory maps channel names to notifier constructors.
type Factory struct {
	mu       sync.RWMutex
	out      io.Writer
	channels map[string]Constructor
}

// NewFactory returns a factory with the built-in channels registered.
// Notifiers it creates write their deliveries to out.
func NewFactory(out io.Writer) *Factory {
	f := &Factory{
		out:      out,
		channels: make(map[string]Constructor),
	}
	f.Register("sms", func(w io.Writer) Notifier { return &tagged{w: w, tag: "SMS"} })
	f.Register("email", func(w io.Writer) Notifier { return &tagged{w: w, tag: "EMAIL"} })
	wa := func(w io.Writer) Notifier { return &tagged{w: w, tag: "WHATSAPP"} }
	f.Register("wa", wa)
	f.Register("whatsapp", wa)
	return f
}

// Register adds or replaces a channel. Names are case-insensitive.
func (f *Factory) Register(channel string, c Constructor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.channels[normalize(channel)] = c
}

// Create returns a notifier for channel.
func (f *Factory) Create(channel string) (Notifier, error) {
	f.mu.RLock()
	c, ok := f.channels[normalize(channel)]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnsupportedChannel, channel, strings.Join(f.Channels(), ", "))
	}
	return c(f.out), nil
}

// Channels returns the registered channel names, sorted.
func (f *Factory) Channels() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.channels))
	for name := range f.channels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalize(channel string) string {
	return strings.ToLower(strings.TrimSpace(channel))
}

// tagged prints "[TAG] to <recipient>: <message>".
type tagged struct {
	w   io.Writer
	tag string
}

func (n *tagged) Send(to, message string) error {
	_, err := fmt.Fprintf(n.w, "[%s] to %s: %s\n", n.tag, to, message)
	return err
}
