package tcpcheck

import (
	"net"
	"time"

	"github.com/vertti/servicecheck/pkg/check"
)

// DefaultTimeout bounds a single connect attempt when Check.Timeout is zero.
const DefaultTimeout = 1 * time.Second

// Dialer abstracts network dialing for testability.
type Dialer interface {
	DialTimeout(network, address string, timeout time.Duration) (net.Conn, error)
}

// RealDialer uses the real net package.
type RealDialer struct{}

// DialTimeout dials the network address with a timeout.
func (d *RealDialer) DialTimeout(network, address string, timeout time.Duration) (net.Conn, error) {
	return net.DialTimeout(network, address, timeout)
}

// Check verifies TCP connectivity to a host:port.
// No data is exchanged; the connection is closed as soon as it is up.
type Check struct {
	Address string        // host:port to connect to
	Timeout time.Duration // connection timeout (default 1s)
	Dialer  Dialer        // injected for testing
}

// Run executes the TCP connectivity check.
func (c *Check) Run() check.Result {
	result := check.Result{
		Name: "tcp: " + c.Address,
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	dialer := c.Dialer
	if dialer == nil {
		dialer = &RealDialer{}
	}

	conn, err := dialer.DialTimeout("tcp", c.Address, timeout)
	if err != nil {
		return result.Failf("connection failed: %w", err)
	}
	_ = conn.Close()

	result.Status = check.StatusOK
	result.AddDetailf("connected to %s", c.Address)
	return result
}
