package api

import (
	proto "github.com/gogo/protobuf/proto"
)

// NodeType is the type of a node as known by the session backend.
type NodeType int32

const (
	NodeTypeDefault     NodeType = 0
	NodeTypePhysical    NodeType = 1
	NodeTypeSwitch      NodeType = 4
	NodeTypeHub         NodeType = 5
	NodeTypeWirelessLAN NodeType = 6
	NodeTypeRJ45        NodeType = 7
	NodeTypeTunnel      NodeType = 8
	NodeTypeKTunnel     NodeType = 9
	NodeTypeEmane       NodeType = 10
	NodeTypeTapBridge   NodeType = 11
	NodeTypePeerToPeer  NodeType = 12
	NodeTypeControlNet  NodeType = 13
	NodeTypeEmaneNet    NodeType = 14
	NodeTypeDocker      NodeType = 15
	NodeTypeLXC         NodeType = 16
)

var nodeTypeNames = map[NodeType]string{
	NodeTypeDefault:     "DEFAULT",
	NodeTypePhysical:    "PHYSICAL",
	NodeTypeSwitch:      "SWITCH",
	NodeTypeHub:         "HUB",
	NodeTypeWirelessLAN: "WIRELESS_LAN",
	NodeTypeRJ45:        "RJ45",
	NodeTypeTunnel:      "TUNNEL",
	NodeTypeKTunnel:     "KTUNNEL",
	NodeTypeEmane:       "EMANE",
	NodeTypeTapBridge:   "TAP_BRIDGE",
	NodeTypePeerToPeer:  "PEER_TO_PEER",
	NodeTypeControlNet:  "CONTROL_NET",
	NodeTypeEmaneNet:    "EMANE_NET",
	NodeTypeDocker:      "DOCKER",
	NodeTypeLXC:         "LXC",
}

func (t NodeType) String() string {
	if name, ok := nodeTypeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// LinkType distinguishes wired links from links reported by a wireless
// model.
type LinkType int32

const (
	LinkTypeWireless LinkType = 0
	LinkTypeWired    LinkType = 1
)

func (t LinkType) String() string {
	if t == LinkTypeWireless {
		return "WIRELESS"
	}
	return "WIRED"
}

// MessageType qualifies node and link events.
type MessageType int32

const (
	MessageTypeNone   MessageType = 0
	MessageTypeAdd    MessageType = 1
	MessageTypeDelete MessageType = 2
	MessageTypeCRI    MessageType = 4
	MessageTypeLocal  MessageType = 8
	MessageTypeString MessageType = 16
	MessageTypeText   MessageType = 32
	MessageTypeTTY    MessageType = 64
)

// Position is a point on the canvas.
type Position struct {
	X   float32 `protobuf:"fixed32,1,opt,name=x,proto3" json:"x"`
	Y   float32 `protobuf:"fixed32,2,opt,name=y,proto3" json:"y"`
	Z   float32 `protobuf:"fixed32,3,opt,name=z,proto3" json:"z,omitempty"`
	Lat float32 `protobuf:"fixed32,4,opt,name=lat,proto3" json:"lat,omitempty"`
	Lon float32 `protobuf:"fixed32,5,opt,name=lon,proto3" json:"lon,omitempty"`
	Alt float32 `protobuf:"fixed32,6,opt,name=alt,proto3" json:"alt,omitempty"`
}

func (m *Position) Reset()         { *m = Position{} }
func (m *Position) String() string { return proto.CompactTextString(m) }
func (*Position) ProtoMessage()    {}

// Interface is a network interface attached to a node.
type Interface struct {
	ID      int32  `protobuf:"varint,1,opt,name=id,proto3" json:"id"`
	Name    string `protobuf:"bytes,2,opt,name=name,proto3" json:"name,omitempty"`
	MAC     string `protobuf:"bytes,3,opt,name=mac,proto3" json:"mac,omitempty"`
	IP4     string `protobuf:"bytes,4,opt,name=ip4,proto3" json:"ip4,omitempty"`
	IP4Mask int32  `protobuf:"varint,5,opt,name=ip4mask,proto3" json:"ip4mask,omitempty"`
	IP6     string `protobuf:"bytes,6,opt,name=ip6,proto3" json:"ip6,omitempty"`
	IP6Mask int32  `protobuf:"varint,7,opt,name=ip6mask,proto3" json:"ip6mask,omitempty"`
	NetID   int32  `protobuf:"varint,8,opt,name=netid,proto3" json:"netid,omitempty"`
	FlowID  int32  `protobuf:"varint,9,opt,name=flowid,proto3" json:"flowid,omitempty"`
	MTU     int32  `protobuf:"varint,10,opt,name=mtu,proto3" json:"mtu,omitempty"`
	NodeID  int32  `protobuf:"varint,11,opt,name=node_id,json=nodeId,proto3" json:"node_id,omitempty"`
}

func (m *Interface) Reset()         { *m = Interface{} }
func (m *Interface) String() string { return proto.CompactTextString(m) }
func (*Interface) ProtoMessage()    {}

// Copy returns a deep copy of the interface.
func (m *Interface) Copy() *Interface {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}

// Node is a node of a session as known by the backend.
type Node struct {
	ID       int32     `protobuf:"varint,1,opt,name=id,proto3" json:"id"`
	Name     string    `protobuf:"bytes,2,opt,name=name,proto3" json:"name,omitempty"`
	Type     NodeType  `protobuf:"varint,3,opt,name=type,proto3,enum=core.NodeType" json:"type"`
	Model    string    `protobuf:"bytes,4,opt,name=model,proto3" json:"model,omitempty"`
	Position *Position `protobuf:"bytes,5,opt,name=position,proto3" json:"position,omitempty"`
	Services []string  `protobuf:"bytes,6,rep,name=services,proto3" json:"services,omitempty"`
	Emane    string    `protobuf:"bytes,7,opt,name=emane,proto3" json:"emane,omitempty"`
	Icon     string    `protobuf:"bytes,8,opt,name=icon,proto3" json:"icon,omitempty"`
	Image    string    `protobuf:"bytes,9,opt,name=image,proto3" json:"image,omitempty"`
	Server   string    `protobuf:"bytes,10,opt,name=server,proto3" json:"server,omitempty"`
}

func (m *Node) Reset()         { *m = Node{} }
func (m *Node) String() string { return proto.CompactTextString(m) }
func (*Node) ProtoMessage()    {}

// Copy returns a deep copy of the node.
func (m *Node) Copy() *Node {
	if m == nil {
		return nil
	}
	c := *m
	if m.Position != nil {
		p := *m.Position
		c.Position = &p
	}
	if m.Services != nil {
		c.Services = append([]string(nil), m.Services...)
	}
	return &c
}

// LinkOptions carries the link-effect parameters of a link.
type LinkOptions struct {
	Delay          int64   `protobuf:"varint,1,opt,name=delay,proto3" json:"delay,omitempty"`
	Bandwidth      int64   `protobuf:"varint,2,opt,name=bandwidth,proto3" json:"bandwidth,omitempty"`
	Per            float32 `protobuf:"fixed32,3,opt,name=per,proto3" json:"per,omitempty"`
	Dup            int32   `protobuf:"varint,4,opt,name=dup,proto3" json:"dup,omitempty"`
	Jitter         int64   `protobuf:"varint,5,opt,name=jitter,proto3" json:"jitter,omitempty"`
	Unidirectional bool    `protobuf:"varint,6,opt,name=unidirectional,proto3" json:"unidirectional,omitempty"`
}

func (m *LinkOptions) Reset()         { *m = LinkOptions{} }
func (m *LinkOptions) String() string { return proto.CompactTextString(m) }
func (*LinkOptions) ProtoMessage()    {}

// Link connects two nodes of a session. Interfaces are only present for
// endpoints that carry addresses.
type Link struct {
	NodeOneID    int32        `protobuf:"varint,1,opt,name=node_one_id,json=nodeOneId,proto3" json:"node_one_id"`
	NodeTwoID    int32        `protobuf:"varint,2,opt,name=node_two_id,json=nodeTwoId,proto3" json:"node_two_id"`
	Type         LinkType     `protobuf:"varint,3,opt,name=type,proto3,enum=core.LinkType" json:"type"`
	InterfaceOne *Interface   `protobuf:"bytes,4,opt,name=interface_one,json=interfaceOne,proto3" json:"interface_one,omitempty"`
	InterfaceTwo *Interface   `protobuf:"bytes,5,opt,name=interface_two,json=interfaceTwo,proto3" json:"interface_two,omitempty"`
	Options      *LinkOptions `protobuf:"bytes,6,opt,name=options,proto3" json:"options,omitempty"`
}

func (m *Link) Reset()         { *m = Link{} }
func (m *Link) String() string { return proto.CompactTextString(m) }
func (*Link) ProtoMessage()    {}

// Session is a full snapshot of a remote session.
type Session struct {
	ID    int32        `protobuf:"varint,1,opt,name=id,proto3" json:"id"`
	State SessionState `protobuf:"varint,2,opt,name=state,proto3,enum=core.SessionState" json:"state"`
	Nodes []*Node      `protobuf:"bytes,3,rep,name=nodes,proto3" json:"nodes,omitempty"`
	Links []*Link      `protobuf:"bytes,4,rep,name=links,proto3" json:"links,omitempty"`
	Dir   string       `protobuf:"bytes,5,opt,name=dir,proto3" json:"dir,omitempty"`
}

func (m *Session) Reset()         { *m = Session{} }
func (m *Session) String() string { return proto.CompactTextString(m) }
func (*Session) ProtoMessage()    {}

// SessionSummary is the short form of a session returned by listings.
type SessionSummary struct {
	ID    int32        `protobuf:"varint,1,opt,name=id,proto3" json:"id"`
	State SessionState `protobuf:"varint,2,opt,name=state,proto3,enum=core.SessionState" json:"state"`
	Nodes int32        `protobuf:"varint,3,opt,name=nodes,proto3" json:"nodes"`
	File  string       `protobuf:"bytes,4,opt,name=file,proto3" json:"file,omitempty"`
}

func (m *SessionSummary) Reset()         { *m = SessionSummary{} }
func (m *SessionSummary) String() string { return proto.CompactTextString(m) }
func (*SessionSummary) ProtoMessage()    {}

// Hook is a script run by the backend when the session enters State.
type Hook struct {
	State SessionState `protobuf:"varint,1,opt,name=state,proto3,enum=core.SessionState" json:"state"`
	File  string       `protobuf:"bytes,2,opt,name=file,proto3" json:"file"`
	Data  string       `protobuf:"bytes,3,opt,name=data,proto3" json:"data,omitempty"`
}

func (m *Hook) Reset()         { *m = Hook{} }
func (m *Hook) String() string { return proto.CompactTextString(m) }
func (*Hook) ProtoMessage()    {}

// Service is a node service offered by the backend.
type Service struct {
	Group string `protobuf:"bytes,1,opt,name=group,proto3" json:"group"`
	Name  string `protobuf:"bytes,2,opt,name=name,proto3" json:"name"`
}

func (m *Service) Reset()         { *m = Service{} }
func (m *Service) String() string { return proto.CompactTextString(m) }
func (*Service) ProtoMessage()    {}

// WlanConfig holds the wireless model configuration of a WLAN node.
type WlanConfig struct {
	NodeID int32             `protobuf:"varint,1,opt,name=node_id,json=nodeId,proto3" json:"node_id"`
	Config map[string]string `protobuf:"bytes,2,rep,name=config,proto3" protobuf_key:"bytes,1,opt,name=key,proto3" protobuf_val:"bytes,2,opt,name=value,proto3" json:"config,omitempty"`
}

func (m *WlanConfig) Reset()         { *m = WlanConfig{} }
func (m *WlanConfig) String() string { return proto.CompactTextString(m) }
func (*WlanConfig) ProtoMessage()    {}

// MobilityConfig holds the mobility script configuration of a WLAN node.
type MobilityConfig struct {
	NodeID int32             `protobuf:"varint,1,opt,name=node_id,json=nodeId,proto3" json:"node_id"`
	Config map[string]string `protobuf:"bytes,2,rep,name=config,proto3" protobuf_key:"bytes,1,opt,name=key,proto3" protobuf_val:"bytes,2,opt,name=value,proto3" json:"config,omitempty"`
}

func (m *MobilityConfig) Reset()         { *m = MobilityConfig{} }
func (m *MobilityConfig) String() string { return proto.CompactTextString(m) }
func (*MobilityConfig) ProtoMessage()    {}
