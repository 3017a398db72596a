// Package live obtains DOT snapshots of a running ROS graph.
//
// Introspecting a live ROS system needs a middleware client, which rosview
// does not link. Instead a [Source] yields rqt_graph style DOT text that the
// DOT parser consumes. [Command] runs an external program (for example a
// small rclpy script around rqt_graph's dotcode generator) and reads its
// standard output.
package live

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/matzehuels/rosview/pkg/errors"
	"github.com/matzehuels/rosview/pkg/graph"
)

// Source yields a DOT snapshot of the running graph.
// Implementations may block; callers bound the wait through ctx.
type Source interface {
	Snapshot(ctx context.Context) ([]byte, error)

	// Observer returns the quoted key of the node the source itself adds
	// to the graph while introspecting, or "" if none.
	Observer() string
}

// Command runs an external program and returns its standard output.
type Command struct {
	Name string
	Args []string

	// ObserverNode is the ROS name of the introspection node started by
	// the program, removed from the resulting graph.
	ObserverNode string
}

// ParseCommand splits a command line such as "ros2 run rosview_bridge dump"
// on whitespace. An empty line yields an error with ErrCodeUnsupported.
func ParseCommand(line, observer string) (*Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, errors.New(errors.ErrCodeUnsupported, "no live graph command configured")
	}
	return &Command{Name: fields[0], Args: fields[1:], ObserverNode: observer}, nil
}

// Snapshot runs the command to completion.
func (c *Command) Snapshot(ctx context.Context) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, errors.Wrap(errors.ErrCodeDependencyUnavailable, err, "%s: %s", c.Name, msg)
		}
		return nil, errors.Wrap(errors.ErrCodeDependencyUnavailable, err, "run %s", c.Name)
	}
	return stdout.Bytes(), nil
}

// Observer returns the quoted observer node key.
func (c *Command) Observer() string {
	if c.ObserverNode == "" {
		return ""
	}
	return graph.Quote(c.ObserverNode)
}

// Static is a Source returning fixed DOT text. Useful for tests and for
// replaying a captured snapshot.
type Static struct {
	DOT          []byte
	ObserverNode string
}

// Snapshot returns the stored DOT text.
func (s Static) Snapshot(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.DOT, nil
}

// Observer returns the stored observer key.
func (s Static) Observer() string { return s.ObserverNode }
