package health

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type stubCheck struct {
	name string
	msg  string
	err  error
}

func (s stubCheck) Name() string { return s.name }

func (s stubCheck) Run(context.Context) (string, error) { return s.msg, s.err }

type slowCheck struct{}

func (slowCheck) Name() string { return "slow" }

func (slowCheck) Run(ctx context.Context) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestFacade_Run(t *testing.T) {
	tests := []struct {
		name    string
		checks  []Check
		overall string
	}{
		{
			name:    "all pass",
			checks:  []Check{stubCheck{"a", "fine", nil}, stubCheck{"b", "fine", nil}},
			overall: StatusHealthy,
		},
		{
			name:    "one fails",
			checks:  []Check{stubCheck{"a", "fine", nil}, stubCheck{"b", "", errors.New("boom")}},
			overall: StatusProblems,
		},
		{
			name:    "no checks",
			checks:  nil,
			overall: StatusHealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := NewFacade(WithChecks(tt.checks...)).Run(context.Background())
			if got := report.Overall(); got != tt.overall {
				t.Errorf("Overall() = %q, want %q", got, tt.overall)
			}
			if len(report.Results) != len(tt.checks) {
				t.Fatalf("len(Results) = %d, want %d", len(report.Results), len(tt.checks))
			}
			for i, c := range tt.checks {
				if report.Results[i].Name != c.Name() {
					t.Errorf("Results[%d].Name = %q, want %q", i, report.Results[i].Name, c.Name())
				}
			}
		})
	}
}

func TestFacade_FailureMessage(t *testing.T) {
	report := NewFacade(WithChecks(stubCheck{"b", "", errors.New("boom")})).Run(context.Background())
	res := report.Results[0]
	if res.OK || res.State() != "ERROR" || res.Message != "boom" {
		t.Errorf("result = %+v, want failed with message boom", res)
	}
}

func TestFacade_Timeout(t *testing.T) {
	f := NewFacade(WithChecks(slowCheck{}), WithTimeout(20*time.Millisecond))

	start := time.Now()
	report := f.Run(context.Background())
	if time.Since(start) > time.Second {
		t.Fatal("timeout was not applied")
	}
	if report.Healthy() {
		t.Error("slow check should fail on timeout")
	}
}

func TestDiskCheck(t *testing.T) {
	dir := t.TempDir()

	msg, err := DiskCheck{Dir: dir}.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(msg, "OK") {
		t.Errorf("Run() = %q, want OK message", msg)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("probe left %d files behind", len(entries))
	}
}

func TestDiskCheck_MissingDir(t *testing.T) {
	_, err := DiskCheck{Dir: filepath.Join(t.TempDir(), "absent")}.Run(context.Background())
	if err == nil {
		t.Error("Run() in missing directory should fail")
	}
}

func TestNetworkCheck(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			c.Close()
		}
	}()

	msg, err := NetworkCheck{Addr: ln.Addr().String()}.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if msg != "TCP connection OK" {
		t.Errorf("Run() = %q, want %q", msg, "TCP connection OK")
	}
}

func TestNetworkCheck_Refused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := (NetworkCheck{Addr: addr}).Run(ctx); err == nil {
		t.Error("Run() against closed port should fail")
	}
}

func TestDatabaseCheck(t *testing.T) {
	msg, err := DatabaseCheck{}.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if msg != "basic operation OK, rows=1" {
		t.Errorf("Run() = %q", msg)
	}
}

func TestDefaultChecks(t *testing.T) {
	checks := DefaultChecks("", "example.com", "8.8.8.8:53", ":memory:")
	want := []string{"disk", "network", "sqlite"}
	for i, c := range checks {
		if c.Name() != want[i] {
			t.Errorf("checks[%d].Name() = %q, want %q", i, c.Name(), want[i])
		}
	}
}
