package market

import (
	"errors"
	"fmt"
	"io"
)

// DefaultBaseFare is the per-km fare before demand multipliers.
const DefaultBaseFare = 1.20

// Reprice recomputes the per-km fare.
type Reprice struct {
	W        io.Writer
	BaseFare float64
}

// Name implements Observer.
func (*Reprice) Name() string { return "Reprice" }

// Fare returns the fare for a level.
func (r *Reprice) Fare(level Level) float64 {
	base := r.BaseFare
	if base <= 0 {
		base = DefaultBaseFare
	}
	switch level {
	case High:
		return base * 1.5
	case Medium:
		return base * 1.2
	default:
		return base * 0.9
	}
}

// Update implements Observer.
func (r *Reprice) Update(level Level) error {
	_, err := fmt.Fprintf(r.W, "Reprice: fare per km = $%.2f\n", r.Fare(level))
	return err
}

// Fleet scales the number of active vehicles.
type Fleet struct {
	W io.Writer
}

// Name implements Observer.
func (*Fleet) Name() string { return "Fleet" }

// Update implements Observer.
func (f *Fleet) Update(level Level) error {
	var msg string
	switch level {
	case High:
		msg = "activate +20% units"
	case Medium:
		msg = "activate +5% units"
	default:
		msg = "reduce -15% units"
	}
	_, err := fmt.Fprintf(f.W, "Fleet: %s\n", msg)
	return err
}

// ETA adjusts estimated arrival times.
type ETA struct {
	W io.Writer
}

// Name implements Observer.
func (*ETA) Name() string { return "ETA" }

// Update implements Observer.
func (e *ETA) Update(level Level) error {
	var msg string
	switch level {
	case High:
		msg = "estimated times -10%"
	case Medium:
		msg = "estimated times stable"
	default:
		msg = "estimated times +10%"
	}
	_, err := fmt.Fprintf(e.W, "ETA: %s\n", msg)
	return err
}

// ErrSimulatedFailure is returned by Faulty.
var ErrSimulatedFailure = errors.New("simulated observer failure")

// Faulty always fails, by error or by panic.
type Faulty struct {
	Panic bool
}

// Name implements Observer.
func (*Faulty) Name() string { return "Faulty" }

// Update implements Observer.
func (f *Faulty) Update(Level) error {
	if f.Panic {
		panic(ErrSimulatedFailure.Error())
	}
	return ErrSimulatedFailure
}
