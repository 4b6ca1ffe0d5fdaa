package notify

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestFactory_Create(t *testing.T) {
	tests := []struct {
		channel string
		want    string
	}{
		{"sms", "[SMS] to +593900000000: hi\n"},
		{"EMAIL", "[EMAIL] to +593900000000: hi\n"},
		{" wa ", "[WHATSAPP] to +593900000000: hi\n"},
		{"WhatsApp", "[WHATSAPP] to +593900000000: hi\n"},
	}

	for _, tt := range tests {
		t.Run(tt.channel, func(t *testing.T) {
			var buf bytes.Buffer
			n, err := NewFactory(&buf).Create(tt.channel)
			if err != nil {
				t.Fatalf("Create(%q) error = %v", tt.channel, err)
			}
			if err := n.Send("+593900000000", "hi"); err != nil {
				t.Fatalf("Send() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestFactory_Unsupported(t *testing.T) {
	_, err := NewFactory(io.Discard).Create("pigeon")
	if !errors.Is(err, ErrUnsupportedChannel) {
		t.Fatalf("Create(pigeon) error = %v, want ErrUnsupportedChannel", err)
	}
	if !strings.Contains(err.Error(), "sms") {
		t.Errorf("error %q should list available channels", err)
	}
}

type pushNotifier struct{ w io.Writer }

func (p pushNotifier) Send(to, message string) error {
	_, err := fmt.Fprintf(p.w, "push %s %s\n", to, message)
	return err
}

func TestFactory_Register(t *testing.T) {
	var buf bytes.Buffer
	f := NewFactory(&buf)
	f.Register("Push", func(w io.Writer) Notifier { return pushNotifier{w: w} })

	n, err := f.Create("push")
	if err != nil {
		t.Fatalf("Create(push) error = %v", err)
	}
	n.Send("device-1", "ping")
	if buf.String() != "push device-1 ping\n" {
		t.Errorf("output = %q", buf.String())
	}

	want := []string{"email", "push", "sms", "wa", "whatsapp"}
	got := f.Channels()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Channels() = %v, want %v", got, want)
	}
}
