package engine

import "fmt"

// ConfigError reports invalid SimConfig values: construction fails fast
// rather than producing a broken Simulation.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("engine: invalid config: %s", e.Reason)
}

// NotAMember reports a mutation addressed to a peer outside the mesh,
// e.g. force_online on an unknown peer or send from a non-member
// source.
type NotAMember struct {
	Op   string
	Peer string
}

func (e *NotAMember) Error() string {
	return fmt.Sprintf("engine: %s: %q is not a member of the mesh", e.Op, e.Peer)
}

// InvalidSend reports a send_message call rejected before a packet was
// ever created.
type InvalidSend struct {
	Reason string
}

func (e *InvalidSend) Error() string {
	return fmt.Sprintf("engine: invalid send: %s", e.Reason)
}
