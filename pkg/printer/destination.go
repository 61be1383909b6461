// Package printer abstracts delivery of raw command blocks to a label
// printer. The rendering core only needs the [Destination] capability;
// device discovery and driver integration stay outside this module.
package printer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

// ErrTransmit wraps any failure to deliver a command block. Delivery has no
// rollback unit larger than one label, so callers treat it as fatal for the
// affected label only.
var ErrTransmit = errors.New("transmit failed")

// Destination receives printer-native command blocks.
type Destination interface {
	// Name identifies the destination for diagnostics.
	Name() string

	// Transmit delivers one command block. A non-nil error wraps
	// ErrTransmit; the block may have been partially written.
	Transmit(ctx context.Context, block []byte) error
}

// NetDestination delivers blocks over a raw TCP socket, the transport label
// printers conventionally expose on port 9100. Each Transmit opens a fresh
// connection so a dead printer never wedges a long-running process.
type NetDestination struct {
	addr    string
	timeout time.Duration
}

// NewNetDestination creates a destination for addr ("host:port"). A missing
// port defaults to 9100.
func NewNetDestination(addr string) *NetDestination {
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(addr, "9100")
	}
	return &NetDestination{addr: addr, timeout: 10 * time.Second}
}

// Name returns the destination address.
func (d *NetDestination) Name() string { return d.addr }

// Transmit writes block to the printer socket.
func (d *NetDestination) Transmit(ctx context.Context, block []byte) error {
	dialer := net.Dialer{Timeout: d.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", d.addr)
	if err != nil {
		return fmt.Errorf("%w: dial %s: %v", ErrTransmit, d.addr, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetWriteDeadline(deadline)
	} else {
		_ = conn.SetWriteDeadline(time.Now().Add(d.timeout))
	}

	if _, err := conn.Write(block); err != nil {
		return fmt.Errorf("%w: write to %s: %v", ErrTransmit, d.addr, err)
	}
	return nil
}

// MemoryDestination buffers transmitted blocks in memory. Useful for tests
// and for dry runs that preview the command stream.
type MemoryDestination struct {
	name   string
	blocks [][]byte

	// FailAfter makes Transmit fail once this many blocks were accepted.
	// Zero means never fail.
	FailAfter int
}

// NewMemoryDestination creates a buffering destination.
func NewMemoryDestination(name string) *MemoryDestination {
	return &MemoryDestination{name: name}
}

// Name returns the configured destination name.
func (d *MemoryDestination) Name() string { return d.name }

// Transmit appends block to the buffer.
func (d *MemoryDestination) Transmit(ctx context.Context, block []byte) error {
	if d.FailAfter > 0 && len(d.blocks) >= d.FailAfter {
		return fmt.Errorf("%w: %s rejected block", ErrTransmit, d.name)
	}
	cp := make([]byte, len(block))
	copy(cp, block)
	d.blocks = append(d.blocks, cp)
	return nil
}

// Blocks returns the transmitted blocks in delivery order.
func (d *MemoryDestination) Blocks() [][]byte { return d.blocks }

var (
	_ Destination = (*NetDestination)(nil)
	_ Destination = (*MemoryDestination)(nil)
)
