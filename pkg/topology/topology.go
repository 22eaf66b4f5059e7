// Package topology holds the derived topology snapshot: nodes, degrees,
// shared-risk groups and termination points mirrored from device
// configurations. The snapshot is a disposable cache, rebuilt wholesale on
// every discovery run; the live device configuration stays the source of
// truth.
package topology

import (
	"sort"

	"github.com/bashar267/optical-topology-or/pkg/roadm"
)

// TerminationPoint mirrors a device interface with its parsed structural
// attributes. Zero index values mean the attribute is absent.
type TerminationPoint struct {
	Interface string          `json:"interface"`
	Layer     roadm.Layer     `json:"layer,omitempty"`
	DegreeID  int             `json:"degree_id,omitempty"`
	SRGID     int             `json:"srg_id,omitempty"`
	PPID      int             `json:"pp_id,omitempty"`
	Direction roadm.Direction `json:"direction,omitempty"`
	Frequency string          `json:"frequency,omitempty"`
}

// Node is the per-device topology entry.
type Node struct {
	Device  string                       `json:"device"`
	MgmtIP  string                       `json:"mgmt_ip,omitempty"`
	Degrees []int                        `json:"degrees,omitempty"`
	SRGs    []int                        `json:"srgs,omitempty"`
	TPs     map[string]*TerminationPoint `json:"tps,omitempty"`
}

// NewNode creates an empty node for a device.
func NewNode(device string) *Node {
	return &Node{
		Device: device,
		TPs:    make(map[string]*TerminationPoint),
	}
}

// EnsureDegree records a degree id, keeping the set sorted and unique.
func (n *Node) EnsureDegree(id int) {
	n.Degrees = ensureMember(n.Degrees, id)
}

// EnsureSRG records a shared-risk-group id, keeping the set sorted and unique.
func (n *Node) EnsureSRG(id int) {
	n.SRGs = ensureMember(n.SRGs, id)
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	out := NewNode(n.Device)
	out.MgmtIP = n.MgmtIP
	out.Degrees = append([]int(nil), n.Degrees...)
	out.SRGs = append([]int(nil), n.SRGs...)
	for name, tp := range n.TPs {
		cp := *tp
		out.TPs[name] = &cp
	}
	return out
}

// TPNames returns termination point names in sorted order.
func (n *Node) TPNames() []string {
	names := make([]string, 0, len(n.TPs))
	for name := range n.TPs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ensureMember(set []int, id int) []int {
	for _, v := range set {
		if v == id {
			return set
		}
	}
	set = append(set, id)
	sort.Ints(set)
	return set
}

// Connection mirrors a device's roadm-connection, scoped by device.
type Connection struct {
	Name        string `json:"name"`
	Device      string `json:"device"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

// Key returns the snapshot map key. Connection names are only unique per
// device, so the key carries the device.
func (c *Connection) Key() string {
	return c.Device + "/" + c.Name
}

// Topology is the whole snapshot across devices.
type Topology struct {
	Nodes       map[string]*Node       `json:"nodes,omitempty"`
	Connections map[string]*Connection `json:"connections,omitempty"`
}

// New creates an empty topology snapshot.
func New() *Topology {
	return &Topology{
		Nodes:       make(map[string]*Node),
		Connections: make(map[string]*Connection),
	}
}

// Clone returns a deep copy of the snapshot.
func (t *Topology) Clone() *Topology {
	out := New()
	for name, node := range t.Nodes {
		out.Nodes[name] = node.Clone()
	}
	for key, conn := range t.Connections {
		cp := *conn
		out.Connections[key] = &cp
	}
	return out
}

// NodeNames returns node names in sorted order.
func (t *Topology) NodeNames() []string {
	names := make([]string, 0, len(t.Nodes))
	for name := range t.Nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ConnectionNames returns connection names in sorted order.
func (t *Topology) ConnectionNames() []string {
	names := make([]string, 0, len(t.Connections))
	for name := range t.Connections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
