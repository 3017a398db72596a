package caret

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/rosview/pkg/errors"
)

// Undefined marks a chain link without a publish or subscribe topic.
const Undefined = "UNDEFINED"

// AllGraph selects the whole system instead of a single named path.
const AllGraph = "all_graph"

// Architecture is the subset of a CARET architecture export that rosview reads.
type Architecture struct {
	Nodes      []Node      `yaml:"nodes"`
	Executors  []Executor  `yaml:"executors"`
	NamedPaths []NamedPath `yaml:"named_paths"`
}

// Node describes one ROS node.
type Node struct {
	Name           string          `yaml:"node_name"`
	Publishes      []TopicRef      `yaml:"publishes"`
	Subscribes     []TopicRef      `yaml:"subscribes"`
	CallbackGroups []CallbackGroup `yaml:"callback_groups"`
	Callbacks      []Callback      `yaml:"callbacks"`
}

// TopicRef names a topic a node publishes or subscribes.
type TopicRef struct {
	Topic string `yaml:"topic_name"`
}

// CallbackGroup lists the callbacks of one callback group.
type CallbackGroup struct {
	Name          string   `yaml:"callback_group_name"`
	Type          string   `yaml:"callback_group_type"`
	CallbackNames []string `yaml:"callback_names"`
}

// Callback is a subscription, timer or other callback of a node.
type Callback struct {
	Name     string `yaml:"callback_name"`
	Type     string `yaml:"callback_type"`
	Topic    string `yaml:"topic_name"`
	PeriodNs int64  `yaml:"period_ns"`
}

// Executor drives one or more callback groups.
type Executor struct {
	Name               string   `yaml:"executor_name"`
	Type               string   `yaml:"executor_type"`
	CallbackGroupNames []string `yaml:"callback_group_names"`
}

// NamedPath is a declared end-to-end chain of nodes.
type NamedPath struct {
	Name  string      `yaml:"path_name"`
	Chain []ChainLink `yaml:"node_chain"`
}

// ChainLink is one node of a named path. Either topic may be [Undefined].
type ChainLink struct {
	Node           string `yaml:"node_name"`
	PublishTopic   string `yaml:"publish_topic_name"`
	SubscribeTopic string `yaml:"subscribe_topic_name"`
}

// LoadFile reads and decodes an architecture YAML file.
func LoadFile(path string) (*Architecture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapRead(err, path)
	}
	arch, err := Decode(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse %s", path)
	}
	return arch, nil
}

// Decode parses architecture YAML from memory.
func Decode(data []byte) (*Architecture, error) {
	var arch Architecture
	if err := yaml.Unmarshal(data, &arch); err != nil {
		return nil, err
	}
	return &arch, nil
}

// path returns the named path called name.
func (a *Architecture) path(name string) (*NamedPath, bool) {
	for i := range a.NamedPaths {
		if a.NamedPaths[i].Name == name {
			return &a.NamedPaths[i], true
		}
	}
	return nil, false
}

// PathNames returns the declared named paths in file order.
func (a *Architecture) PathNames() []string {
	names := make([]string, 0, len(a.NamedPaths))
	for _, p := range a.NamedPaths {
		names = append(names, p.Name)
	}
	return names
}
