package scenario

import (
	"context"
	"fmt"

	"github.com/dshills/patternlab/internal/logging"
	"github.com/dshills/patternlab/internal/session"
)

// Summary counts what a run did.
type Summary struct {
	Steps  int
	Failed int
}

// Runner replays scenarios against a session.
type Runner struct {
	session *session.Session
	logger  *logging.Logger
}

// NewRunner creates a runner. A nil logger discards.
func NewRunner(s *session.Session, logger *logging.Logger) *Runner {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Runner{session: s, logger: logger}
}

// Run executes every step in order. Failed steps print "Error: <err>" and
// the run continues. Only context cancellation stops it early. A group
// still open after the last step is closed.
func (r *Runner) Run(ctx context.Context, sc *Scenario) (Summary, error) {
	var sum Summary
	p := r.session.Printer()

	for i, st := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		sum.Steps++
		if err := r.step(st); err != nil {
			sum.Failed++
			p.Error(err)
			r.logger.Debug("step failed", "scenario", sc.Name, "step", i+1, "kind", st.Kind(), "error", err)
		}
	}
	if r.session.Grouping() {
		r.logger.Warn("closing group left open", "scenario", sc.Name)
		r.session.EndGroup()
	}
	return sum, nil
}

func (r *Runner) step(st Step) error {
	s := r.session
	p := s.Printer()

	emit := func(out string, err error) error {
		if err != nil {
			return err
		}
		p.Line("%s", out)
		return nil
	}

	switch st.Kind() {
	case "create":
		return emit(s.Create(st.Create.Path, st.Create.Content))
	case "delete":
		return emit(s.Delete(st.Delete.Path))
	case "move":
		return emit(s.Move(st.Move.From, st.Move.To))
	case "write":
		return emit(s.Write(st.Write.Path, st.Write.Content), nil)
	case "undo":
		for i := 0; i < st.Undo; i++ {
			p.Line("%s", s.Undo())
		}
	case "redo":
		for i := 0; i < st.Redo; i++ {
			if err := emit(s.Redo()); err != nil {
				return err
			}
		}
	case "show":
		s.Show(st.Show)
	case "begin_group":
		s.BeginGroup(st.BeginGroup)
	case "end_group":
		s.EndGroup()
	case "history":
		s.ShowHistory(st.History)
	case "clear_history":
		p.Line("%s", s.ClearHistory())
	default:
		return fmt.Errorf("%w: exactly one action required", ErrInvalidStep)
	}
	return nil
}
