package demo

import (
	"context"
	"fmt"

	"github.com/dshills/patternlab/internal/market"
	"github.com/dshills/patternlab/internal/scenario"
	"github.com/dshills/patternlab/internal/session"
)

func runObserver(ctx context.Context, env Env) error {
	p := env.Printer
	cfg := env.config().Market
	w := p.Writer()

	interval := cfg.DebounceInterval()
	m := market.New(w,
		market.WithDebounce(interval),
		market.WithLogger(env.logger().WithComponent("market")),
	)
	m.Attach(&market.Reprice{W: w, BaseFare: cfg.BaseFare})
	m.Attach(&market.Fleet{W: w})
	m.Attach(&market.ETA{W: w})
	m.Attach(&market.Faulty{})

	// Just over the debounce interval, so the following change is accepted.
	pause := interval + interval/5

	m.SetDemand(market.High)
	if err := env.sleep(ctx, pause); err != nil {
		return err
	}
	m.SetDemand(market.Medium)
	m.SetDemand(market.Low)
	if err := env.sleep(ctx, pause); err != nil {
		return err
	}
	m.SetDemand(market.Low)
	return nil
}

// CommandScenarios are replayed in order by the command demo.
var CommandScenarios = []string{"filesystem", "conflict"}

func runCommand(ctx context.Context, env Env) error {
	cfg := env.config()
	logger := env.logger().WithComponent("command")

	for _, name := range CommandScenarios {
		sc, err := scenario.Builtin(name)
		if err != nil {
			return fmt.Errorf("loading scenario %s: %w", name, err)
		}

		env.Printer.Section(sc.Description)
		s := session.New(env.Printer,
			session.WithMaxEntries(cfg.History.MaxEntries),
			session.WithLogger(logger),
		)
		sum, err := scenario.NewRunner(s, logger).Run(ctx, sc)
		if err != nil {
			return err
		}
		logger.Debug("scenario finished", "scenario", sc.Name, "steps", sum.Steps, "failed", sum.Failed)
	}
	return nil
}
