package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/trumanellis/indras-sim/engine"
	"github.com/trumanellis/indras-sim/mesh"
	"github.com/trumanellis/indras-sim/peer"
	"github.com/trumanellis/indras-sim/rng"
	"github.com/trumanellis/indras-sim/routing"
)

// meshSpec describes how to build the scenario's Mesh.
type meshSpec struct {
	Topology          string     `yaml:"topology"` // edges | line | full_mesh | random
	Peers             int        `yaml:"peers"`
	Edges             [][]string `yaml:"edges"`
	RandomProbability float64    `yaml:"random_probability"`
}

// configSpec mirrors engine.SimConfig for YAML decoding.
type configSpec struct {
	WakeProbability          float64 `yaml:"wake_probability"`
	SleepProbability         float64 `yaml:"sleep_probability"`
	InitialOnlineProbability float64 `yaml:"initial_online_probability"`
	Manual                   bool    `yaml:"manual"`
	MaxTicks                 int64   `yaml:"max_ticks"`
	TraceRouting             bool    `yaml:"trace_routing"`
	RoutingMode              string  `yaml:"routing_mode"` // default | prophet
	TTL                      int64   `yaml:"ttl"`
	RngSeed                  int64   `yaml:"rng_seed"`
}

// action is one driver call in the scenario's ordered list.
type action struct {
	Op       string `yaml:"op"`
	Peer     string `yaml:"peer"`
	Src      string `yaml:"src"`
	Dst      string `yaml:"dst"`
	Payload  string `yaml:"payload"`
	N        int    `yaml:"n"`
	Signer   string `yaml:"signer"`
	Verifier string `yaml:"verifier"`
	Initiator string `yaml:"initiator"`
	Target   string `yaml:"target"`
	LatencyUs int64  `yaml:"latency_us"`
	MessageBytes int `yaml:"message_bytes"`
	Success  bool   `yaml:"success"`
	Reason   string `yaml:"reason"`
}

// scenario is the top-level YAML document: a mesh, a SimConfig, and an
// ordered list of driver calls executed against a real engine.Simulation.
type scenario struct {
	Mesh    meshSpec   `yaml:"mesh"`
	Config  configSpec `yaml:"config"`
	Actions []action   `yaml:"actions"`
}

// ScenarioResult is the outcome of running a scenario file: the final
// stats and state summary, printed to stdout by the run subcommand.
type ScenarioResult struct {
	Stats   *simStatsView
	Summary engine.StateSummary
}

// simStatsView is a logging-friendly snapshot of the derived metrics:
// sent/delivered counts, rates, latency and hop averages.
type simStatsView struct {
	MessagesSent      int64
	MessagesDelivered int64
	MessagesDropped   int64
	DeliveryRate      float64
	AverageLatency    float64
	AverageHops       float64
}

// Print writes a human-readable report to stdout.
func (r *ScenarioResult) Print() {
	fmt.Printf("tick=%d sent=%d delivered=%d dropped=%d delivery_rate=%.3f avg_latency=%.2f avg_hops=%.2f\n",
		r.Summary.Tick, r.Stats.MessagesSent, r.Stats.MessagesDelivered, r.Stats.MessagesDropped,
		r.Stats.DeliveryRate, r.Stats.AverageLatency, r.Stats.AverageHops)
	for id, state := range r.Summary.Peers {
		fmt.Printf("  %s: online=%v held=%d\n", id, state.Online, state.HoldCount)
	}
}

// RunScenarioFile loads a YAML scenario from path and executes it
// against a fresh engine.Simulation.
func RunScenarioFile(path string) (*ScenarioResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}

	var sc scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}

	m, err := buildMesh(sc.Mesh, sc.Config.RngSeed)
	if err != nil {
		return nil, fmt.Errorf("building mesh: %w", err)
	}

	cfg := engine.SimConfig{
		WakeProbability:          sc.Config.WakeProbability,
		SleepProbability:         sc.Config.SleepProbability,
		InitialOnlineProbability: sc.Config.InitialOnlineProbability,
		Manual:                   sc.Config.Manual,
		MaxTicks:                 sc.Config.MaxTicks,
		TraceRouting:             sc.Config.TraceRouting,
		RoutingMode:              routingModeFrom(sc.Config.RoutingMode),
		TTL:                      sc.Config.TTL,
		RngSeed:                  sc.Config.RngSeed,
	}

	sim, err := engine.New(m, cfg)
	if err != nil {
		return nil, fmt.Errorf("constructing simulation: %w", err)
	}
	sim.Initialize()

	for i, a := range sc.Actions {
		if err := applyAction(sim, a); err != nil {
			return nil, fmt.Errorf("action %d (%s): %w", i, a.Op, err)
		}
	}

	st := sim.Stats()
	return &ScenarioResult{
		Stats: &simStatsView{
			MessagesSent:      st.MessagesSent,
			MessagesDelivered: st.MessagesDelivered,
			MessagesDropped:   st.MessagesDropped,
			DeliveryRate:      st.DeliveryRate(),
			AverageLatency:    st.AverageLatency(),
			AverageHops:       st.AverageHops(),
		},
		Summary: sim.StateSummary(),
	}, nil
}

func routingModeFrom(mode string) routing.Mode {
	if mode == string(routing.ModeProphet) {
		return routing.ModeProphet
	}
	return routing.ModeDefault
}

// buildMesh constructs the scenario's Mesh. For "random" topologies the
// edge draw uses its own RNG stream, seeded from the scenario's
// rng_seed but partitioned away from churn/routing/identity draws, so
// topology generation never perturbs the simulation's own sequence.
func buildMesh(spec meshSpec, seed int64) (*mesh.Mesh, error) {
	switch spec.Topology {
	case "edges", "":
		edges := make([]mesh.Edge, 0, len(spec.Edges))
		for _, pair := range spec.Edges {
			if len(pair) != 2 {
				return nil, fmt.Errorf("edge entry must have exactly two peers, got %v", pair)
			}
			edges = append(edges, mesh.Edge{A: peer.New(pair[0]), B: peer.New(pair[1])})
		}
		return mesh.FromEdges(edges)
	case "line":
		return mesh.NewBuilder(spec.Peers).Line(), nil
	case "full_mesh":
		return mesh.NewBuilder(spec.Peers).FullMesh(), nil
	case "random":
		source := rng.New(rng.NewSimulationKey(seed)).ForSubsystem(rng.SubsystemTopology)
		return mesh.NewBuilder(spec.Peers).Random(spec.RandomProbability, source), nil
	default:
		return nil, fmt.Errorf("unknown mesh topology %q", spec.Topology)
	}
}

func applyAction(sim *engine.Simulation, a action) error {
	switch a.Op {
	case "force_online":
		return sim.ForceOnline(peer.New(a.Peer))
	case "force_offline":
		return sim.ForceOffline(peer.New(a.Peer))
	case "send_message":
		return sim.SendMessage(peer.New(a.Src), peer.New(a.Dst), []byte(a.Payload))
	case "run_ticks":
		sim.RunTicks(a.N)
		return nil
	case "record_pq_signature":
		return sim.RecordPqSignature(peer.New(a.Signer), a.LatencyUs, a.MessageBytes)
	case "record_pq_verification":
		return sim.RecordPqVerification(peer.New(a.Verifier), peer.New(a.Signer), a.LatencyUs, a.Success)
	case "record_kem_encapsulation":
		return sim.RecordKemEncapsulation(peer.New(a.Initiator), peer.New(a.Target), a.LatencyUs)
	case "record_kem_decapsulation":
		return sim.RecordKemDecapsulation(peer.New(a.Target), peer.New(a.Initiator), a.LatencyUs, a.Success)
	case "record_invite_created":
		return sim.RecordInviteCreated(peer.New(a.Initiator))
	case "record_invite_accepted":
		return sim.RecordInviteAccepted(peer.New(a.Initiator), peer.New(a.Target))
	case "record_invite_failed":
		return sim.RecordInviteFailed(peer.New(a.Initiator), a.Reason)
	default:
		logrus.Warnf("unknown action %q, skipping", a.Op)
		return nil
	}
}
