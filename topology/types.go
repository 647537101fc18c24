package topology

import (
	"fmt"

	"github.com/coreemu/coretk/api"
)

// Position is a point on the canvas.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Token identifies an edge by the unordered pair of its endpoint local ids.
type Token struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// NewToken returns the token of the edge between local ids a and b,
// regardless of the direction the edge was drawn in.
func NewToken(a, b int) Token {
	if a > b {
		a, b = b, a
	}
	return Token{Low: a, High: b}
}

// Has reports whether localID is one of the token's endpoints.
func (t Token) Has(localID int) bool {
	return t.Low == localID || t.High == localID
}

// Other returns the endpoint of the token that is not localID.
func (t Token) Other(localID int) int {
	if t.Low == localID {
		return t.High
	}
	return t.Low
}

func (t Token) String() string {
	return fmt.Sprintf("%d-%d", t.Low, t.High)
}

// Node is a node of the topology.
type Node struct {
	// LocalID is the canvas id of the node. It is assigned by the store and
	// never reused within a session.
	LocalID   int   `json:"local_id"`
	SessionID int32 `json:"session_id"`
	// NodeID is the id of the node in the remote session.
	NodeID   int32    `json:"node_id"`
	Kind     Kind     `json:"kind"`
	Name     string   `json:"name"`
	Position Position `json:"position"`
	// Interfaces is ordered by interface id. Only network layer nodes have
	// interfaces.
	Interfaces []*api.Interface `json:"interfaces,omitempty"`
	// Preexisting is set for nodes hydrated from a joined session.
	Preexisting bool     `json:"preexisting,omitempty"`
	Icon        string   `json:"icon,omitempty"`
	Image       string   `json:"image,omitempty"`
	Server      string   `json:"server,omitempty"`
	Services    []string `json:"services,omitempty"`
}

// Copy returns a deep copy of the node.
func (n *Node) Copy() *Node {
	if n == nil {
		return nil
	}
	c := *n
	if n.Interfaces != nil {
		c.Interfaces = make([]*api.Interface, len(n.Interfaces))
		for i, iface := range n.Interfaces {
			c.Interfaces[i] = iface.Copy()
		}
	}
	if n.Services != nil {
		c.Services = append([]string(nil), n.Services...)
	}
	return &c
}

// APINode returns the backend representation of the node.
func (n *Node) APINode() *api.Node {
	return &api.Node{
		ID:       n.NodeID,
		Name:     n.Name,
		Type:     n.Kind.NodeType(),
		Model:    n.Kind.Model(),
		Position: &api.Position{X: float32(n.Position.X), Y: float32(n.Position.Y)},
		Services: append([]string(nil), n.Services...),
		Icon:     n.Icon,
		Image:    n.Image,
		Server:   n.Server,
	}
}

// Edge is a link between two nodes. Endpoint one is the node the edge was
// drawn from.
type Edge struct {
	Token     Token `json:"token"`
	SessionID int32 `json:"session_id"`

	LocalID1 int   `json:"local_id1"`
	LocalID2 int   `json:"local_id2"`
	NodeID1  int32 `json:"node_id1"`
	NodeID2  int32 `json:"node_id2"`
	Kind1    Kind  `json:"kind1"`
	Kind2    Kind  `json:"kind2"`

	// Interface1 and Interface2 are only set for network layer endpoints.
	Interface1 *api.Interface `json:"interface1,omitempty"`
	Interface2 *api.Interface `json:"interface2,omitempty"`

	Type    api.LinkType     `json:"type"`
	Options *api.LinkOptions `json:"options,omitempty"`
}

// Copy returns a deep copy of the edge.
func (e *Edge) Copy() *Edge {
	if e == nil {
		return nil
	}
	c := *e
	c.Interface1 = e.Interface1.Copy()
	c.Interface2 = e.Interface2.Copy()
	if e.Options != nil {
		o := *e.Options
		c.Options = &o
	}
	return &c
}

// Wireless reports whether the edge was reported by a wireless model.
func (e *Edge) Wireless() bool {
	return e.Type == api.LinkTypeWireless
}

// APILink returns the backend representation of the edge.
func (e *Edge) APILink() *api.Link {
	link := &api.Link{
		NodeOneID:    e.NodeID1,
		NodeTwoID:    e.NodeID2,
		Type:         e.Type,
		InterfaceOne: e.Interface1.Copy(),
		InterfaceTwo: e.Interface2.Copy(),
	}
	if e.Options != nil {
		o := *e.Options
		link.Options = &o
	}
	return link
}
