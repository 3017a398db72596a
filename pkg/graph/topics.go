package graph

import "slices"

// TopicIndex collects publishers and subscribers per topic and turns them
// into edges. Topics, publishers and subscribers keep first-seen order, and a
// node registered twice on the same side of a topic is recorded once.
type TopicIndex struct {
	topics []string
	pubs   map[string][]string
	subs   map[string][]string
}

// NewTopicIndex returns an empty index.
func NewTopicIndex() *TopicIndex {
	return &TopicIndex{
		pubs: make(map[string][]string),
		subs: make(map[string][]string),
	}
}

// AddPublisher records node as a publisher of topic.
func (t *TopicIndex) AddPublisher(topic, node string) {
	t.touch(topic)
	if !slices.Contains(t.pubs[topic], node) {
		t.pubs[topic] = append(t.pubs[topic], node)
	}
}

// AddSubscriber records node as a subscriber of topic.
func (t *TopicIndex) AddSubscriber(topic, node string) {
	t.touch(topic)
	if !slices.Contains(t.subs[topic], node) {
		t.subs[topic] = append(t.subs[topic], node)
	}
}

func (t *TopicIndex) touch(topic string) {
	if _, ok := t.pubs[topic]; ok {
		return
	}
	if _, ok := t.subs[topic]; ok {
		return
	}
	t.topics = append(t.topics, topic)
	t.pubs[topic] = nil
	t.subs[topic] = nil
}

// Topics returns topic names in first-seen order.
func (t *TopicIndex) Topics() []string { return slices.Clone(t.topics) }

// Publishers returns the publishers of topic.
func (t *TopicIndex) Publishers(topic string) []string { return slices.Clone(t.pubs[topic]) }

// Subscribers returns the subscribers of topic.
func (t *TopicIndex) Subscribers(topic string) []string { return slices.Clone(t.subs[topic]) }

// Connect adds one edge per (publisher, subscriber) pair of every topic,
// labeled with the topic name. Topics lacking either side add nothing.
// It returns the number of edges added.
func (t *TopicIndex) Connect(g *Graph) (int, error) {
	n := 0
	for _, topic := range t.topics {
		for _, pub := range t.pubs[topic] {
			for _, sub := range t.subs[topic] {
				if err := g.AddEdge(Edge{From: pub, To: sub, Label: topic}); err != nil {
					return n, err
				}
				n++
			}
		}
	}
	return n, nil
}
