package check

// Checker is implemented by all probe types.
// Each probe tests one endpoint and returns a Result
// indicating whether it was reachable.
//
// Implementations:
//   - tcpcheck.Check: opens and closes a TCP connection
type Checker interface {
	Run() Result
}
