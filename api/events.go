package api

import (
	proto "github.com/gogo/protobuf/proto"
)

// Event is a notification streamed by the backend for one session. At most
// one of the typed event fields is set.
type Event struct {
	SessionID    int32         `protobuf:"varint,1,opt,name=session_id,json=sessionId,proto3" json:"session_id"`
	NodeEvent    *NodeEvent    `protobuf:"bytes,2,opt,name=node_event,json=nodeEvent,proto3" json:"node_event,omitempty"`
	LinkEvent    *LinkEvent    `protobuf:"bytes,3,opt,name=link_event,json=linkEvent,proto3" json:"link_event,omitempty"`
	SessionEvent *SessionEvent `protobuf:"bytes,4,opt,name=session_event,json=sessionEvent,proto3" json:"session_event,omitempty"`
	Source       string        `protobuf:"bytes,5,opt,name=source,proto3" json:"source,omitempty"`
}

func (m *Event) Reset()         { *m = Event{} }
func (m *Event) String() string { return proto.CompactTextString(m) }
func (*Event) ProtoMessage()    {}

// NodeEvent reports a change to a node, typically a position update driven by
// a mobility model.
type NodeEvent struct {
	MessageType MessageType `protobuf:"varint,1,opt,name=message_type,json=messageType,proto3,enum=core.MessageType" json:"message_type"`
	Node        *Node       `protobuf:"bytes,2,opt,name=node,proto3" json:"node,omitempty"`
}

func (m *NodeEvent) Reset()         { *m = NodeEvent{} }
func (m *NodeEvent) String() string { return proto.CompactTextString(m) }
func (*NodeEvent) ProtoMessage()    {}

// LinkEvent reports a link being added or removed, for example when a
// wireless model brings two nodes in or out of range.
type LinkEvent struct {
	MessageType MessageType `protobuf:"varint,1,opt,name=message_type,json=messageType,proto3,enum=core.MessageType" json:"message_type"`
	Link        *Link       `protobuf:"bytes,2,opt,name=link,proto3" json:"link,omitempty"`
}

func (m *LinkEvent) Reset()         { *m = LinkEvent{} }
func (m *LinkEvent) String() string { return proto.CompactTextString(m) }
func (*LinkEvent) ProtoMessage()    {}

// SessionEvent reports a session level event. For state transitions Event
// holds the new SessionState value.
type SessionEvent struct {
	NodeID int32   `protobuf:"varint,1,opt,name=node_id,json=nodeId,proto3" json:"node_id,omitempty"`
	Event  int32   `protobuf:"varint,2,opt,name=event,proto3" json:"event"`
	Name   string  `protobuf:"bytes,3,opt,name=name,proto3" json:"name,omitempty"`
	Data   string  `protobuf:"bytes,4,opt,name=data,proto3" json:"data,omitempty"`
	Time   float32 `protobuf:"fixed32,5,opt,name=time,proto3" json:"time,omitempty"`
}

func (m *SessionEvent) Reset()         { *m = SessionEvent{} }
func (m *SessionEvent) String() string { return proto.CompactTextString(m) }
func (*SessionEvent) ProtoMessage()    {}
