package demo

import (
	"context"
	"strconv"

	"github.com/dshills/patternlab/internal/idgen"
	"github.com/dshills/patternlab/internal/notify"
)

func runFactory(_ context.Context, env Env) error {
	p := env.Printer
	f := notify.NewFactory(p.Writer())

	sends := []struct{ channel, to string }{
		{"sms", "+593900000000"},
		{"email", "fabo@example.com"},
		{"wa", "+593911111111"},
		{"pigeon", "rooftop"},
	}
	for _, s := range sends {
		n, err := f.Create(s.channel)
		if err != nil {
			p.Error(err)
			continue
		}
		if err := n.Send(s.to, "Hello Fabo, this is a test message."); err != nil {
			p.Error(err)
		}
	}
	return nil
}

func runSingleton(_ context.Context, env Env) error {
	p := env.Printer
	cfg := env.config().IDGen
	gen := idgen.New(idgen.WithWidth(cfg.Width), idgen.WithSeparator(cfg.Separator))

	// Two handles to the one generator, as separate modules would hold.
	tickets, claims := gen, gen
	p.Line("Same instance? %v", tickets == claims)

	p.Section("Initial creation")
	for _, c := range []struct{ label, prefix string }{
		{"Ticket", "TICKET"},
		{"Ticket", "TICKET"},
		{"Authorization", "AUTO"},
		{"Claim", "SIN"},
		{"Authorization", "AUTO"},
		{"Claim", "SIN"},
		{"Ticket", "TICKET"},
	} {
		p.Line("[%s] Created: %s", c.label, tickets.Next(c.prefix))
	}
	printSeries(env, gen)

	p.Section("From another handle")
	p.Line("TICKET current: %d", claims.Current("TICKET"))
	p.Line("Next TICKET: %s", claims.Next("TICKET"))

	p.Section("Set SIN start to 100")
	claims.SetStart("SIN", 100)
	p.Line("SIN current: %d", claims.Current("SIN"))
	p.Line("New SIN: %s", claims.Next("SIN"))
	printSeries(env, gen)
	return nil
}

func printSeries(env Env, gen *idgen.Generator) {
	state := gen.State()
	rows := make([][]string, len(state))
	for i, s := range state {
		rows[i] = []string{s.Prefix, strconv.Itoa(s.Current)}
	}
	env.Printer.Table([]string{"series", "current"}, rows)
}
