// Package printer sends raw ESC/POS tickets to a receipt printer.
package printer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"
)

// ErrNotConfigured is returned by the printer used when none is set up.
var ErrNotConfigured = errors.New("printer: no printer configured")

// Kinds accepted by New.
const (
	KindNone    = "none"
	KindUSB     = "usb"
	KindNetwork = "network"
)

// Printer delivers one ticket per call. Connections are not kept between jobs.
type Printer interface {
	Print(ctx context.Context, data []byte) error
	// Ping reports whether the printer can currently be reached.
	Ping(ctx context.Context) error
	Kind() string
}

// Config selects and addresses the printer
type Config struct {
	Kind       string
	DevicePath string // e.g. /dev/usb/lp0
	Address    string // e.g. 192.168.1.100:9100
}

// New returns the printer described by cfg. An empty kind means none.
func New(cfg Config) (Printer, error) {
	switch cfg.Kind {
	case KindUSB:
		if cfg.DevicePath == "" {
			return nil, errors.New("printer: device path is required for a usb printer")
		}
		return &DevicePrinter{Path: cfg.DevicePath}, nil
	case KindNetwork:
		if cfg.Address == "" {
			return nil, errors.New("printer: address is required for a network printer")
		}
		return &NetworkPrinter{Address: cfg.Address, DialTimeout: 5 * time.Second, WriteTimeout: 10 * time.Second}, nil
	case KindNone, "":
		return None{}, nil
	}
	return nil, fmt.Errorf("printer: unknown kind %q (use usb, network or none)", cfg.Kind)
}

// DevicePrinter writes to a character device such as a USB line printer
type DevicePrinter struct {
	Path string
}

func (p *DevicePrinter) Kind() string { return KindUSB }

func (p *DevicePrinter) Print(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.OpenFile(p.Path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return fmt.Errorf("printer: open %s: %w", p.Path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("printer: write %s: %w", p.Path, err)
	}
	return f.Close()
}

func (p *DevicePrinter) Ping(context.Context) error {
	_, err := os.Stat(p.Path)
	return err
}

// NetworkPrinter speaks raw TCP, usually on port 9100
type NetworkPrinter struct {
	Address      string
	DialTimeout  time.Duration
	WriteTimeout time.Duration
}

func (p *NetworkPrinter) Kind() string { return KindNetwork }

func (p *NetworkPrinter) dial(ctx context.Context) (net.Conn, error) {
	d := net.Dialer{Timeout: p.DialTimeout}
	conn, err := d.DialContext(ctx, "tcp", p.Address)
	if err != nil {
		return nil, fmt.Errorf("printer: connect %s: %w", p.Address, err)
	}
	return conn, nil
}

func (p *NetworkPrinter) Print(ctx context.Context, data []byte) error {
	conn, err := p.dial(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	deadline := time.Now().Add(p.WriteTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetWriteDeadline(deadline)

	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.Address, err)
	}
	return nil
}

func (p *NetworkPrinter) Ping(ctx context.Context) error {
	conn, err := p.dial(ctx)
	if err != nil {
		return err
	}
	return conn.Close()
}

// None is the printer used when nothing is configured
type None struct{}

func (None) Kind() string { return KindNone }

func (None) Print(context.Context, []byte) error { return ErrNotConfigured }

func (None) Ping(context.Context) error { return ErrNotConfigured }
