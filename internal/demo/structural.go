package demo

import (
	"context"
	"fmt"
	"strings"

	"github.com/dshills/patternlab/internal/health"
	"github.com/dshills/patternlab/internal/payment"
)

func runAdapter(_ context.Context, env Env) error {
	p := env.Printer

	cases := []struct {
		provider string
		amount   float64
		currency string
	}{
		{"stripe", 25.00, "USD"},
		{"paypal", 15.75, "EUR"},
		{"bank", 10.00, "USD"},
		{"bank", 10.00, "EUR"},
	}
	for _, c := range cases {
		p.Section(fmt.Sprintf("%s - %.2f %s", strings.ToUpper(c.provider), c.amount, c.currency))
		gw, err := payment.Get(c.provider)
		if err != nil {
			p.Result(false, err.Error())
			continue
		}
		ref, err := gw.Pay(c.amount, c.currency)
		if err != nil {
			p.Result(false, err.Error())
			continue
		}
		p.Result(true, "Payment succeeded. Ref: "+ref)
	}
	return nil
}

func runFacade(ctx context.Context, env Env) error {
	p := env.Printer
	cfg := env.config().Health

	f := health.NewFacade(
		health.WithChecks(health.DefaultChecks(cfg.ProbeDir, cfg.DNSHost, cfg.TCPAddr, cfg.Database)...),
		health.WithTimeout(cfg.TimeoutDuration()),
		health.WithLogger(env.logger().WithComponent("health")),
	)
	rep := f.Run(ctx)

	rows := make([][]string, len(rep.Results))
	for i, r := range rep.Results {
		rows[i] = []string{strings.ToUpper(r.Name), r.State(), r.Message}
	}
	p.Table([]string{"check", "state", "detail"}, rows)
	p.Line("Overall: %s", rep.Overall())
	return ctx.Err()
}
