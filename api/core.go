// Package api defines the messages and the grpc service of the session
// backend.
package api

import (
	proto "github.com/gogo/protobuf/proto"
)

type CreateSessionRequest struct {
	SessionID int32 `protobuf:"varint,1,opt,name=session_id,json=sessionId,proto3" json:"session_id,omitempty"`
}

func (m *CreateSessionRequest) Reset()         { *m = CreateSessionRequest{} }
func (m *CreateSessionRequest) String() string { return proto.CompactTextString(m) }
func (*CreateSessionRequest) ProtoMessage()    {}

type CreateSessionResponse struct {
	SessionID int32        `protobuf:"varint,1,opt,name=session_id,json=sessionId,proto3" json:"session_id"`
	State     SessionState `protobuf:"varint,2,opt,name=state,proto3,enum=core.SessionState" json:"state"`
}

func (m *CreateSessionResponse) Reset()         { *m = CreateSessionResponse{} }
func (m *CreateSessionResponse) String() string { return proto.CompactTextString(m) }
func (*CreateSessionResponse) ProtoMessage()    {}

type GetSessionRequest struct {
	SessionID int32 `protobuf:"varint,1,opt,name=session_id,json=sessionId,proto3" json:"session_id"`
}

func (m *GetSessionRequest) Reset()         { *m = GetSessionRequest{} }
func (m *GetSessionRequest) String() string { return proto.CompactTextString(m) }
func (*GetSessionRequest) ProtoMessage()    {}

type GetSessionResponse struct {
	Session *Session `protobuf:"bytes,1,opt,name=session,proto3" json:"session,omitempty"`
}

func (m *GetSessionResponse) Reset()         { *m = GetSessionResponse{} }
func (m *GetSessionResponse) String() string { return proto.CompactTextString(m) }
func (*GetSessionResponse) ProtoMessage()    {}

type GetSessionsRequest struct{}

func (m *GetSessionsRequest) Reset()         { *m = GetSessionsRequest{} }
func (m *GetSessionsRequest) String() string { return proto.CompactTextString(m) }
func (*GetSessionsRequest) ProtoMessage()    {}

type GetSessionsResponse struct {
	Sessions []*SessionSummary `protobuf:"bytes,1,rep,name=sessions,proto3" json:"sessions,omitempty"`
}

func (m *GetSessionsResponse) Reset()         { *m = GetSessionsResponse{} }
func (m *GetSessionsResponse) String() string { return proto.CompactTextString(m) }
func (*GetSessionsResponse) ProtoMessage()    {}

type DeleteSessionRequest struct {
	SessionID int32 `protobuf:"varint,1,opt,name=session_id,json=sessionId,proto3" json:"session_id"`
}

func (m *DeleteSessionRequest) Reset()         { *m = DeleteSessionRequest{} }
func (m *DeleteSessionRequest) String() string { return proto.CompactTextString(m) }
func (*DeleteSessionRequest) ProtoMessage()    {}

// ResultResponse is the response of every call that only reports whether it
// succeeded.
type ResultResponse struct {
	Result bool `protobuf:"varint,1,opt,name=result,proto3" json:"result"`
}

func (m *ResultResponse) Reset()         { *m = ResultResponse{} }
func (m *ResultResponse) String() string { return proto.CompactTextString(m) }
func (*ResultResponse) ProtoMessage()    {}

type SetSessionStateRequest struct {
	SessionID int32        `protobuf:"varint,1,opt,name=session_id,json=sessionId,proto3" json:"session_id"`
	State     SessionState `protobuf:"varint,2,opt,name=state,proto3,enum=core.SessionState" json:"state"`
}

func (m *SetSessionStateRequest) Reset()         { *m = SetSessionStateRequest{} }
func (m *SetSessionStateRequest) String() string { return proto.CompactTextString(m) }
func (*SetSessionStateRequest) ProtoMessage()    {}

type GetHooksRequest struct {
	SessionID int32 `protobuf:"varint,1,opt,name=session_id,json=sessionId,proto3" json:"session_id"`
}

func (m *GetHooksRequest) Reset()         { *m = GetHooksRequest{} }
func (m *GetHooksRequest) String() string { return proto.CompactTextString(m) }
func (*GetHooksRequest) ProtoMessage()    {}

type GetHooksResponse struct {
	Hooks []*Hook `protobuf:"bytes,1,rep,name=hooks,proto3" json:"hooks,omitempty"`
}

func (m *GetHooksResponse) Reset()         { *m = GetHooksResponse{} }
func (m *GetHooksResponse) String() string { return proto.CompactTextString(m) }
func (*GetHooksResponse) ProtoMessage()    {}

type AddNodeRequest struct {
	SessionID int32 `protobuf:"varint,1,opt,name=session_id,json=sessionId,proto3" json:"session_id"`
	Node      *Node `protobuf:"bytes,2,opt,name=node,proto3" json:"node,omitempty"`
}

func (m *AddNodeRequest) Reset()         { *m = AddNodeRequest{} }
func (m *AddNodeRequest) String() string { return proto.CompactTextString(m) }
func (*AddNodeRequest) ProtoMessage()    {}

type AddNodeResponse struct {
	NodeID int32 `protobuf:"varint,1,opt,name=node_id,json=nodeId,proto3" json:"node_id"`
}

func (m *AddNodeResponse) Reset()         { *m = AddNodeResponse{} }
func (m *AddNodeResponse) String() string { return proto.CompactTextString(m) }
func (*AddNodeResponse) ProtoMessage()    {}

type EditNodeRequest struct {
	SessionID int32     `protobuf:"varint,1,opt,name=session_id,json=sessionId,proto3" json:"session_id"`
	NodeID    int32     `protobuf:"varint,2,opt,name=node_id,json=nodeId,proto3" json:"node_id"`
	Position  *Position `protobuf:"bytes,3,opt,name=position,proto3" json:"position,omitempty"`
}

func (m *EditNodeRequest) Reset()         { *m = EditNodeRequest{} }
func (m *EditNodeRequest) String() string { return proto.CompactTextString(m) }
func (*EditNodeRequest) ProtoMessage()    {}

type DeleteNodeRequest struct {
	SessionID int32 `protobuf:"varint,1,opt,name=session_id,json=sessionId,proto3" json:"session_id"`
	NodeID    int32 `protobuf:"varint,2,opt,name=node_id,json=nodeId,proto3" json:"node_id"`
}

func (m *DeleteNodeRequest) Reset()         { *m = DeleteNodeRequest{} }
func (m *DeleteNodeRequest) String() string { return proto.CompactTextString(m) }
func (*DeleteNodeRequest) ProtoMessage()    {}

type AddLinkRequest struct {
	SessionID int32 `protobuf:"varint,1,opt,name=session_id,json=sessionId,proto3" json:"session_id"`
	Link      *Link `protobuf:"bytes,2,opt,name=link,proto3" json:"link,omitempty"`
}

func (m *AddLinkRequest) Reset()         { *m = AddLinkRequest{} }
func (m *AddLinkRequest) String() string { return proto.CompactTextString(m) }
func (*AddLinkRequest) ProtoMessage()    {}

type AddLinkResponse struct {
	Result       bool       `protobuf:"varint,1,opt,name=result,proto3" json:"result"`
	InterfaceOne *Interface `protobuf:"bytes,2,opt,name=interface_one,json=interfaceOne,proto3" json:"interface_one,omitempty"`
	InterfaceTwo *Interface `protobuf:"bytes,3,opt,name=interface_two,json=interfaceTwo,proto3" json:"interface_two,omitempty"`
}

func (m *AddLinkResponse) Reset()         { *m = AddLinkResponse{} }
func (m *AddLinkResponse) String() string { return proto.CompactTextString(m) }
func (*AddLinkResponse) ProtoMessage()    {}

type DeleteLinkRequest struct {
	SessionID      int32 `protobuf:"varint,1,opt,name=session_id,json=sessionId,proto3" json:"session_id"`
	NodeOneID      int32 `protobuf:"varint,2,opt,name=node_one_id,json=nodeOneId,proto3" json:"node_one_id"`
	NodeTwoID      int32 `protobuf:"varint,3,opt,name=node_two_id,json=nodeTwoId,proto3" json:"node_two_id"`
	InterfaceOneID int32 `protobuf:"varint,4,opt,name=interface_one_id,json=interfaceOneId,proto3" json:"interface_one_id"`
	InterfaceTwoID int32 `protobuf:"varint,5,opt,name=interface_two_id,json=interfaceTwoId,proto3" json:"interface_two_id"`
}

func (m *DeleteLinkRequest) Reset()         { *m = DeleteLinkRequest{} }
func (m *DeleteLinkRequest) String() string { return proto.CompactTextString(m) }
func (*DeleteLinkRequest) ProtoMessage()    {}

type StartSessionRequest struct {
	SessionID       int32             `protobuf:"varint,1,opt,name=session_id,json=sessionId,proto3" json:"session_id"`
	Nodes           []*Node           `protobuf:"bytes,2,rep,name=nodes,proto3" json:"nodes,omitempty"`
	Links           []*Link           `protobuf:"bytes,3,rep,name=links,proto3" json:"links,omitempty"`
	Hooks           []*Hook           `protobuf:"bytes,4,rep,name=hooks,proto3" json:"hooks,omitempty"`
	WlanConfigs     []*WlanConfig     `protobuf:"bytes,5,rep,name=wlan_configs,json=wlanConfigs,proto3" json:"wlan_configs,omitempty"`
	MobilityConfigs []*MobilityConfig `protobuf:"bytes,6,rep,name=mobility_configs,json=mobilityConfigs,proto3" json:"mobility_configs,omitempty"`
}

func (m *StartSessionRequest) Reset()         { *m = StartSessionRequest{} }
func (m *StartSessionRequest) String() string { return proto.CompactTextString(m) }
func (*StartSessionRequest) ProtoMessage()    {}

type StartSessionResponse struct {
	Result     bool     `protobuf:"varint,1,opt,name=result,proto3" json:"result"`
	Exceptions []string `protobuf:"bytes,2,rep,name=exceptions,proto3" json:"exceptions,omitempty"`
}

func (m *StartSessionResponse) Reset()         { *m = StartSessionResponse{} }
func (m *StartSessionResponse) String() string { return proto.CompactTextString(m) }
func (*StartSessionResponse) ProtoMessage()    {}

type StopSessionRequest struct {
	SessionID int32 `protobuf:"varint,1,opt,name=session_id,json=sessionId,proto3" json:"session_id"`
}

func (m *StopSessionRequest) Reset()         { *m = StopSessionRequest{} }
func (m *StopSessionRequest) String() string { return proto.CompactTextString(m) }
func (*StopSessionRequest) ProtoMessage()    {}

type SaveXMLRequest struct {
	SessionID int32 `protobuf:"varint,1,opt,name=session_id,json=sessionId,proto3" json:"session_id"`
}

func (m *SaveXMLRequest) Reset()         { *m = SaveXMLRequest{} }
func (m *SaveXMLRequest) String() string { return proto.CompactTextString(m) }
func (*SaveXMLRequest) ProtoMessage()    {}

type SaveXMLResponse struct {
	Data []byte `protobuf:"bytes,1,opt,name=data,proto3" json:"data,omitempty"`
}

func (m *SaveXMLResponse) Reset()         { *m = SaveXMLResponse{} }
func (m *SaveXMLResponse) String() string { return proto.CompactTextString(m) }
func (*SaveXMLResponse) ProtoMessage()    {}

type OpenXMLRequest struct {
	Data  []byte `protobuf:"bytes,1,opt,name=data,proto3" json:"data,omitempty"`
	Start bool   `protobuf:"varint,2,opt,name=start,proto3" json:"start,omitempty"`
	File  string `protobuf:"bytes,3,opt,name=file,proto3" json:"file,omitempty"`
}

func (m *OpenXMLRequest) Reset()         { *m = OpenXMLRequest{} }
func (m *OpenXMLRequest) String() string { return proto.CompactTextString(m) }
func (*OpenXMLRequest) ProtoMessage()    {}

type OpenXMLResponse struct {
	Result    bool  `protobuf:"varint,1,opt,name=result,proto3" json:"result"`
	SessionID int32 `protobuf:"varint,2,opt,name=session_id,json=sessionId,proto3" json:"session_id"`
}

func (m *OpenXMLResponse) Reset()         { *m = OpenXMLResponse{} }
func (m *OpenXMLResponse) String() string { return proto.CompactTextString(m) }
func (*OpenXMLResponse) ProtoMessage()    {}

type GetServicesRequest struct{}

func (m *GetServicesRequest) Reset()         { *m = GetServicesRequest{} }
func (m *GetServicesRequest) String() string { return proto.CompactTextString(m) }
func (*GetServicesRequest) ProtoMessage()    {}

type GetServicesResponse struct {
	Services []*Service `protobuf:"bytes,1,rep,name=services,proto3" json:"services,omitempty"`
}

func (m *GetServicesResponse) Reset()         { *m = GetServicesResponse{} }
func (m *GetServicesResponse) String() string { return proto.CompactTextString(m) }
func (*GetServicesResponse) ProtoMessage()    {}

type SetWlanConfigRequest struct {
	SessionID int32             `protobuf:"varint,1,opt,name=session_id,json=sessionId,proto3" json:"session_id"`
	NodeID    int32             `protobuf:"varint,2,opt,name=node_id,json=nodeId,proto3" json:"node_id"`
	Config    map[string]string `protobuf:"bytes,3,rep,name=config,proto3" protobuf_key:"bytes,1,opt,name=key,proto3" protobuf_val:"bytes,2,opt,name=value,proto3" json:"config,omitempty"`
}

func (m *SetWlanConfigRequest) Reset()         { *m = SetWlanConfigRequest{} }
func (m *SetWlanConfigRequest) String() string { return proto.CompactTextString(m) }
func (*SetWlanConfigRequest) ProtoMessage()    {}

type EventsRequest struct {
	SessionID int32 `protobuf:"varint,1,opt,name=session_id,json=sessionId,proto3" json:"session_id"`
}

func (m *EventsRequest) Reset()         { *m = EventsRequest{} }
func (m *EventsRequest) String() string { return proto.CompactTextString(m) }
func (*EventsRequest) ProtoMessage()    {}
