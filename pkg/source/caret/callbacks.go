package caret

import (
	"io"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rosview/pkg/errors"
	"github.com/matzehuels/rosview/pkg/graph"
)

// MaxCallbackDetails is the number of callbacks listed per callback group
// before the list is truncated with a sentinel entry.
const MaxCallbackDetails = 50

// TooManyCallbacks is the sentinel appended when a callback group exceeds
// MaxCallbackDetails.
var TooManyCallbacks = graph.CallbackDetail{
	Name:        "Too many callbacks",
	Type:        "",
	Description: "Too many callbacks",
}

// DefaultSeed seeds executor colors when ExtendOptions.Seed is zero.
const DefaultSeed = 42

// ExtendOptions configures [ExtendCallbackGroups].
type ExtendOptions struct {
	// Seed for executor colors. Zero selects DefaultSeed.
	Seed uint64

	// DisplayNoneExecutor keeps callback groups without an executor,
	// labeled "None" and colored white. They are skipped by default.
	DisplayNoneExecutor bool

	// Logger receives warnings about unexpected callbacks. Nil discards them.
	Logger *log.Logger
}

type executorInfo struct {
	label string
	color graph.Color
}

// ExtendCallbackGroups attaches callback group details to every node of g.
//
// Every node in g must be described in arch; a missing node fails with
// ErrCodeInconsistent and leaves g untouched.
func ExtendCallbackGroups(arch *Architecture, g *graph.Graph, opts ExtendOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = DefaultSeed
	}

	executors := executorsByGroup(arch.Executors, rand.New(rand.NewPCG(seed, seed)))

	groups := make(map[string][]graph.CallbackGroup, len(arch.Nodes))
	for _, n := range arch.Nodes {
		groups[graph.Quote(n.Name)] = callbackGroups(n, executors, opts.DisplayNoneExecutor, logger)
	}

	nodes := g.Nodes()
	for _, n := range nodes {
		if _, ok := groups[n.ID]; !ok {
			return errors.New(errors.ErrCodeInconsistent, "node %s is not described in the architecture", n.ID)
		}
	}
	for _, n := range nodes {
		n.CallbackGroups = groups[n.ID]
	}
	return nil
}

// executorsByGroup maps callback group names to their executor label and
// color. Executors owning several groups get a random light color, single
// group executors get white.
func executorsByGroup(executors []Executor, rng *rand.Rand) map[string]executorInfo {
	out := make(map[string]executorInfo)
	for _, e := range executors {
		color := graph.White
		if len(e.CallbackGroupNames) > 1 {
			color = graph.Color{96 + rng.IntN(160), 96 + rng.IntN(160), rng.IntN(129)}
		}
		label := e.Name + ", " + e.Type[:min(len(e.Type), 6)]
		for _, name := range e.CallbackGroupNames {
			out[name] = executorInfo{label: label, color: color}
		}
	}
	return out
}

func callbackGroups(n Node, executors map[string]executorInfo, displayNone bool, logger *log.Logger) []graph.CallbackGroup {
	out := []graph.CallbackGroup{}
	if len(n.CallbackGroups) == 0 || len(n.Callbacks) == 0 {
		return out
	}

	for _, cbg := range n.CallbackGroups {
		info, ok := executors[cbg.Name]
		if !ok {
			if !displayNone {
				continue
			}
			info = executorInfo{label: "None", color: graph.White}
		}

		group := graph.CallbackGroup{
			Name:      cbg.Name,
			Type:      cbg.Type,
			Executor:  info.label,
			Color:     info.color,
			Callbacks: []graph.CallbackDetail{},
		}
		for _, name := range cbg.CallbackNames {
			detail, ok := callbackDetail(n.Callbacks, name, logger)
			if !ok {
				continue
			}
			switch {
			case len(group.Callbacks) < MaxCallbackDetails:
				group.Callbacks = append(group.Callbacks, detail)
			case len(group.Callbacks) == MaxCallbackDetails:
				logger.Warn("too many callbacks, ignoring the rest", "node", n.Name, "group", cbg.Name, "callback", name)
				group.Callbacks = append(group.Callbacks, TooManyCallbacks)
			}
		}
		out = append(out, group)
	}
	return out
}

func callbackDetail(callbacks []Callback, name string, logger *log.Logger) (graph.CallbackDetail, bool) {
	for _, cb := range callbacks {
		if cb.Name != name {
			continue
		}
		d := graph.CallbackDetail{Name: name}
		switch cb.Type {
		case "subscription_callback":
			d.Type = "sub"
			d.Description = cb.Topic
		case "timer_callback":
			d.Type = "timer"
			d.Description = formatMillis(cb.PeriodNs) + "ms"
		default:
			logger.Warn("unexpected callback type", "callback", name, "type", cb.Type)
			d.Type = cb.Type
		}
		return d, true
	}
	logger.Error("callback not found", "callback", name)
	return graph.CallbackDetail{}, false
}

// formatMillis renders a nanosecond period in milliseconds as a float with
// at least one decimal, e.g. 100000000 -> "100.0", 1500000 -> "1.5".
func formatMillis(ns int64) string {
	s := strconv.FormatFloat(float64(ns)/1e6, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
