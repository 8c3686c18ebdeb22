package main

import (
	"bytes"
	"net"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vertti/servicecheck/pkg/portcheck"
)

func executeCommand(args ...string) (stdout, stderr string, err error) {
	outBuf, errBuf := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(outBuf)
	rootCmd.SetErr(errBuf)
	rootCmd.SetArgs(args)
	resetFlags(rootCmd)
	err = rootCmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// useChecker points the command at the given loopback ports for one test.
func useChecker(t *testing.T, host string, ports ...portcheck.Port) {
	t.Helper()
	old := newChecker
	t.Cleanup(func() { newChecker = old })
	newChecker = func(logger hclog.Logger) *portcheck.Checker {
		c := portcheck.New(logger)
		c.Host = host
		c.Ports = ports
		return c
	}
}

func listenPort(t *testing.T, addr string) (portcheck.Port, bool) {
	t.Helper()
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return 0, false
	}
	t.Cleanup(func() { _ = l.Close() })
	return portcheck.Port(l.Addr().(*net.TCPAddr).Port), true
}

func ephemeralPort(t *testing.T) portcheck.Port {
	t.Helper()
	p, ok := listenPort(t, "127.0.0.1:0")
	require.True(t, ok, "failed to bind loopback listener")
	return p
}

func unusedPort(t *testing.T) portcheck.Port {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	p := portcheck.Port(l.Addr().(*net.TCPAddr).Port)
	require.NoError(t, l.Close())
	return p
}

func TestVersionFlag(t *testing.T) {
	stdout, _, err := executeCommand("--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "servicecheck")
}

func TestHelpFlag(t *testing.T) {
	stdout, _, err := executeCommand("--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "servicecheck")
}

func TestRejectsArguments(t *testing.T) {
	_, _, err := executeCommand("8001")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCheckFailed)
}

func TestAllServicesRunning(t *testing.T) {
	useChecker(t, "127.0.0.1", ephemeralPort(t), ephemeralPort(t), ephemeralPort(t))

	stdout, stderr, err := executeCommand()

	require.NoError(t, err)
	assert.Equal(t, "All services are running\n", stdout)
	assert.Empty(t, stderr)
}

func TestNoServicesRunning(t *testing.T) {
	useChecker(t, "127.0.0.1", unusedPort(t), unusedPort(t), unusedPort(t))

	stdout, stderr, err := executeCommand()

	require.ErrorIs(t, err, ErrCheckFailed)
	assert.Equal(t, "One or more services are not running\n", stdout)
	assert.Empty(t, stderr)
}

func TestOnlyFirstServiceRunning(t *testing.T) {
	useChecker(t, "127.0.0.1", ephemeralPort(t), unusedPort(t), unusedPort(t))

	stdout, _, err := executeCommand()

	require.ErrorIs(t, err, ErrCheckFailed)
	assert.Equal(t, "One or more services are not running\n", stdout)
}

func TestIdempotent(t *testing.T) {
	useChecker(t, "127.0.0.1", ephemeralPort(t), unusedPort(t), ephemeralPort(t))

	first, _, firstErr := executeCommand()
	second, _, secondErr := executeCommand()

	assert.Equal(t, first, second)
	assert.Equal(t, firstErr, secondErr)
}

func TestVerboseWritesDetailToStderr(t *testing.T) {
	up := ephemeralPort(t)
	down := unusedPort(t)
	useChecker(t, "127.0.0.1", up, down)

	stdout, stderr, err := executeCommand("--verbose")

	require.ErrorIs(t, err, ErrCheckFailed)
	assert.Equal(t, "One or more services are not running\n", stdout)
	assert.Contains(t, stderr, "[OK]")
	assert.Contains(t, stderr, "[FAIL]")
	assert.Contains(t, stderr, down.String())
	assert.Contains(t, stderr, "port unreachable")
}

// The fixed ports are shared with whatever runs on the host, so these
// scenarios skip when they cannot be bound.
func TestFixedPorts(t *testing.T) {
	t.Run("all bound", func(t *testing.T) {
		for _, p := range portcheck.DefaultPorts {
			if _, ok := listenPort(t, net.JoinHostPort("localhost", p.String())); !ok {
				t.Skipf("port %d unavailable", p)
			}
		}

		stdout, _, err := executeCommand()

		require.NoError(t, err)
		assert.Equal(t, "All services are running\n", stdout)
	})

	t.Run("only 8001 bound", func(t *testing.T) {
		if _, ok := listenPort(t, "localhost:8001"); !ok {
			t.Skip("port 8001 unavailable")
		}
		c := portcheck.New(nil)
		if c.CheckPort(8002) || c.CheckPort(8003) {
			t.Skip("ports 8002/8003 in use on this host")
		}

		stdout, _, err := executeCommand()

		require.ErrorIs(t, err, ErrCheckFailed)
		assert.Equal(t, "One or more services are not running\n", stdout)
	})
}
