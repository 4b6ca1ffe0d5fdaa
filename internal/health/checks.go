package health

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

// DiskCheck writes, reads back and removes a temporary file.
type DiskCheck struct {
	// Dir is where the probe file is created. Empty means os.TempDir().
	Dir string
}

// Name implements Check.
func (DiskCheck) Name() string { return "disk" }

// Run implements Check.
func (d DiskCheck) Run(ctx context.Context) (string, error) {
	f, err := os.CreateTemp(d.Dir, "hc_*.tmp")
	if err != nil {
		return "", fmt.Errorf("could not write: %w", err)
	}
	name := f.Name()
	defer os.Remove(name)

	_, werr := f.WriteString("ok")
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		return "", fmt.Errorf("could not write: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("could not read: %w", err)
	}
	if string(data) != "ok" {
		return "", fmt.Errorf("unexpected content %q", data)
	}
	if err := os.Remove(name); err != nil {
		return "", fmt.Errorf("could not remove: %w", err)
	}
	return "write/read in directory OK", nil
}

// NetworkCheck resolves a host and opens a short TCP connection.
type NetworkCheck struct {
	// Host is resolved first. Empty skips the DNS step.
	Host string
	// Addr is dialed over TCP.
	Addr     string
	Resolver *net.Resolver
}

// Name implements Check.
func (NetworkCheck) Name() string { return "network" }

// Run implements Check.
func (n NetworkCheck) Run(ctx context.Context) (string, error) {
	resolver := n.Resolver
	if resolver == nil {
		resolver = net.DefaultResolver
	}

	steps := "TCP"
	if n.Host != "" {
		if _, err := resolver.LookupHost(ctx, n.Host); err != nil {
			return "", fmt.Errorf("dns lookup %s: %w", n.Host, err)
		}
		steps = "DNS and TCP"
	}

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", n.Addr)
	if err != nil {
		return "", fmt.Errorf("dial %s: %w", n.Addr, err)
	}
	conn.Close()
	return steps + " connection OK", nil
}

// DatabaseCheck performs a create/insert/count round trip on SQLite.
type DatabaseCheck struct {
	// DSN is passed to the sqlite3 driver. ":memory:" by default.
	DSN string
}

// Name implements Check.
func (DatabaseCheck) Name() string { return "sqlite" }

// Run implements Check.
func (d DatabaseCheck) Run(ctx context.Context) (string, error) {
	dsn := d.DSN
	if dsn == "" {
		dsn = ":memory:"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return "", fmt.Errorf("open: %w", err)
	}
	defer db.Close()
	// A second pooled connection to :memory: would see an empty database.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS hc_probe (id INTEGER PRIMARY KEY, v TEXT)"); err != nil {
		return "", fmt.Errorf("create table: %w", err)
	}
	if _, err := db.ExecContext(ctx, "INSERT INTO hc_probe (v) VALUES (?)", "hello"); err != nil {
		return "", fmt.Errorf("insert: %w", err)
	}

	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM hc_probe").Scan(&n); err != nil {
		return "", fmt.Errorf("count: %w", err)
	}
	if n < 1 {
		return "", fmt.Errorf("count: got %d rows", n)
	}
	return fmt.Sprintf("basic operation OK, rows=%d", n), nil
}

// DefaultChecks returns the disk, network and database probes.
func DefaultChecks(probeDir, dnsHost, tcpAddr, dsn string) []Check {
	return []Check{
		DiskCheck{Dir: probeDir},
		NetworkCheck{Host: dnsHost, Addr: tcpAddr},
		DatabaseCheck{DSN: dsn},
	}
}
