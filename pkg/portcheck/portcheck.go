// Package portcheck probes a fixed set of local TCP ports and folds the
// outcomes into one overall status.
package portcheck

import (
	"net"
	"strconv"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/vertti/servicecheck/pkg/check"
	"github.com/vertti/servicecheck/pkg/tcpcheck"
)

// DefaultHost is the host every port is dialled on.
const DefaultHost = "localhost"

// DefaultPorts are the service ports checked by the probe, in check order.
var DefaultPorts = []Port{8001, 8002, 8003}

// Port is a TCP port number.
type Port int

// Valid reports whether p is in the range 1-65535.
func (p Port) Valid() bool {
	return p >= 1 && p <= 65535
}

func (p Port) String() string {
	return strconv.Itoa(int(p))
}

// Checker runs one TCP connect attempt per port, sequentially.
type Checker struct {
	Host    string          // defaults to DefaultHost
	Ports   []Port          // defaults to DefaultPorts
	Timeout time.Duration   // per-port connect timeout (default tcpcheck.DefaultTimeout)
	Dialer  tcpcheck.Dialer // injected for testing
	Logger  hclog.Logger
}

// New returns a Checker for the default ports on localhost.
func New(logger hclog.Logger) *Checker {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Checker{
		Host:    DefaultHost,
		Ports:   DefaultPorts,
		Timeout: tcpcheck.DefaultTimeout,
		Dialer:  &tcpcheck.RealDialer{},
		Logger:  logger,
	}
}

// CheckPort reports whether a connection to host:port could be established.
// Refusals, timeouts and any other network error all yield false.
func (c *Checker) CheckPort(port Port) bool {
	return c.check(port).OK()
}

// Results checks every configured port in order and returns one result per port.
// A failure does not stop the remaining ports from being checked.
func (c *Checker) Results() []check.Result {
	ports := c.ports()
	results := make([]check.Result, 0, len(ports))
	for _, p := range ports {
		results = append(results, c.check(p))
	}
	return results
}

// RunAll reports true only if every configured port accepted a connection.
func (c *Checker) RunAll() bool {
	ok := check.AllOK(c.Results())
	c.logger().Debug("checks complete", "ok", ok)
	return ok
}

func (c *Checker) check(port Port) check.Result {
	address := net.JoinHostPort(c.host(), port.String())
	logger := c.logger().With("port", int(port), "address", address)

	if !port.Valid() {
		result := check.Result{Name: "tcp: " + address}
		result = result.Failf("port %d out of range 1-65535", int(port))
		logger.Debug("port rejected", "error", result.Err)
		return result
	}

	var probe check.Checker = &tcpcheck.Check{
		Address: address,
		Timeout: c.Timeout,
		Dialer:  c.Dialer,
	}
	result := probe.Run()
	if result.OK() {
		logger.Debug("port reachable")
	} else {
		logger.Debug("port unreachable", "error", result.Err)
	}
	return result
}

func (c *Checker) host() string {
	if c.Host == "" {
		return DefaultHost
	}
	return c.Host
}

func (c *Checker) ports() []Port {
	if c.Ports == nil {
		return DefaultPorts
	}
	return c.Ports
}

func (c *Checker) logger() hclog.Logger {
	if c.Logger == nil {
		return hclog.NewNullLogger()
	}
	return c.Logger
}
