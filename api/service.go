package api

import (
	"context"

	proto "github.com/gogo/protobuf/proto"
	"google.golang.org/grpc"
)

// ServiceName is the fully qualified name of the session control service.
const ServiceName = "core.CoreApi"

// Method names of the CoreApi service.
const (
	MethodCreateSession   = "CreateSession"
	MethodGetSession      = "GetSession"
	MethodGetSessions     = "GetSessions"
	MethodDeleteSession   = "DeleteSession"
	MethodSetSessionState = "SetSessionState"
	MethodGetHooks        = "GetHooks"
	MethodAddNode         = "AddNode"
	MethodEditNode        = "EditNode"
	MethodDeleteNode      = "DeleteNode"
	MethodAddLink         = "AddLink"
	MethodDeleteLink      = "DeleteLink"
	MethodStartSession    = "StartSession"
	MethodStopSession     = "StopSession"
	MethodSaveXML         = "SaveXml"
	MethodOpenXML         = "OpenXml"
	MethodGetServices     = "GetServices"
	MethodSetWlanConfig   = "SetWlanConfig"
	MethodEvents          = "Events"
)

// FullMethod returns the grpc method path of a CoreApi method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// CoreAPIServer is the server API for the CoreApi service.
type CoreAPIServer interface {
	CreateSession(context.Context, *CreateSessionRequest) (*CreateSessionResponse, error)
	GetSession(context.Context, *GetSessionRequest) (*GetSessionResponse, error)
	GetSessions(context.Context, *GetSessionsRequest) (*GetSessionsResponse, error)
	DeleteSession(context.Context, *DeleteSessionRequest) (*ResultResponse, error)
	SetSessionState(context.Context, *SetSessionStateRequest) (*ResultResponse, error)
	GetHooks(context.Context, *GetHooksRequest) (*GetHooksResponse, error)
	AddNode(context.Context, *AddNodeRequest) (*AddNodeResponse, error)
	EditNode(context.Context, *EditNodeRequest) (*ResultResponse, error)
	DeleteNode(context.Context, *DeleteNodeRequest) (*ResultResponse, error)
	AddLink(context.Context, *AddLinkRequest) (*AddLinkResponse, error)
	DeleteLink(context.Context, *DeleteLinkRequest) (*ResultResponse, error)
	StartSession(context.Context, *StartSessionRequest) (*StartSessionResponse, error)
	StopSession(context.Context, *StopSessionRequest) (*ResultResponse, error)
	SaveXML(context.Context, *SaveXMLRequest) (*SaveXMLResponse, error)
	OpenXML(context.Context, *OpenXMLRequest) (*OpenXMLResponse, error)
	GetServices(context.Context, *GetServicesRequest) (*GetServicesResponse, error)
	SetWlanConfig(context.Context, *SetWlanConfigRequest) (*ResultResponse, error)
	Events(*EventsRequest, CoreAPI_EventsServer) error
}

// CoreAPI_EventsServer is the server side of the Events stream.
type CoreAPI_EventsServer interface {
	Send(*Event) error
	grpc.ServerStream
}

type coreAPIEventsServer struct {
	grpc.ServerStream
}

func (x *coreAPIEventsServer) Send(m *Event) error {
	return x.ServerStream.SendMsg(m)
}

// RegisterCoreAPIServer registers srv on s. The server must be created with
// grpc.ForceServerCodec(Codec{}).
func RegisterCoreAPIServer(s grpc.ServiceRegistrar, srv CoreAPIServer) {
	s.RegisterService(&CoreAPIServiceDesc, srv)
}

type message[T any] interface {
	*T
	proto.Message
}

func unary[T any, PT message[T], R any](method string, call func(CoreAPIServer, context.Context, PT) (R, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := PT(new(T))
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(CoreAPIServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(method),
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(CoreAPIServer), ctx, req.(PT))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

func eventsHandler(srv interface{}, stream grpc.ServerStream) error {
	m := new(EventsRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(CoreAPIServer).Events(m, &coreAPIEventsServer{stream})
}

// CoreAPIServiceDesc describes the CoreApi service.
var CoreAPIServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CoreAPIServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodCreateSession, CoreAPIServer.CreateSession),
		unary(MethodGetSession, CoreAPIServer.GetSession),
		unary(MethodGetSessions, CoreAPIServer.GetSessions),
		unary(MethodDeleteSession, CoreAPIServer.DeleteSession),
		unary(MethodSetSessionState, CoreAPIServer.SetSessionState),
		unary(MethodGetHooks, CoreAPIServer.GetHooks),
		unary(MethodAddNode, CoreAPIServer.AddNode),
		unary(MethodEditNode, CoreAPIServer.EditNode),
		unary(MethodDeleteNode, CoreAPIServer.DeleteNode),
		unary(MethodAddLink, CoreAPIServer.AddLink),
		unary(MethodDeleteLink, CoreAPIServer.DeleteLink),
		unary(MethodStartSession, CoreAPIServer.StartSession),
		unary(MethodStopSession, CoreAPIServer.StopSession),
		unary(MethodSaveXML, CoreAPIServer.SaveXML),
		unary(MethodOpenXML, CoreAPIServer.OpenXML),
		unary(MethodGetServices, CoreAPIServer.GetServices),
		unary(MethodSetWlanConfig, CoreAPIServer.SetWlanConfig),
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    MethodEvents,
			Handler:       eventsHandler,
			ServerStreams: true,
		},
	},
	Metadata: "core.proto",
}

// CoreAPIClient is the client API for the CoreApi service.
type CoreAPIClient interface {
	CreateSession(ctx context.Context, in *CreateSessionRequest, opts ...grpc.CallOption) (*CreateSessionResponse, error)
	GetSession(ctx context.Context, in *GetSessionRequest, opts ...grpc.CallOption) (*GetSessionResponse, error)
	GetSessions(ctx context.Context, in *GetSessionsRequest, opts ...grpc.CallOption) (*GetSessionsResponse, error)
	DeleteSession(ctx context.Context, in *DeleteSessionRequest, opts ...grpc.CallOption) (*ResultResponse, error)
	SetSessionState(ctx context.Context, in *SetSessionStateRequest, opts ...grpc.CallOption) (*ResultResponse, error)
	GetHooks(ctx context.Context, in *GetHooksRequest, opts ...grpc.CallOption) (*GetHooksResponse, error)
	AddNode(ctx context.Context, in *AddNodeRequest, opts ...grpc.CallOption) (*AddNodeResponse, error)
	EditNode(ctx context.Context, in *EditNodeRequest, opts ...grpc.CallOption) (*ResultResponse, error)
	DeleteNode(ctx context.Context, in *DeleteNodeRequest, opts ...grpc.CallOption) (*ResultResponse, error)
	AddLink(ctx context.Context, in *AddLinkRequest, opts ...grpc.CallOption) (*AddLinkResponse, error)
	DeleteLink(ctx context.Context, in *DeleteLinkRequest, opts ...grpc.CallOption) (*ResultResponse, error)
	StartSession(ctx context.Context, in *StartSessionRequest, opts ...grpc.CallOption) (*StartSessionResponse, error)
	StopSession(ctx context.Context, in *StopSessionRequest, opts ...grpc.CallOption) (*ResultResponse, error)
	SaveXML(ctx context.Context, in *SaveXMLRequest, opts ...grpc.CallOption) (*SaveXMLResponse, error)
	OpenXML(ctx context.Context, in *OpenXMLRequest, opts ...grpc.CallOption) (*OpenXMLResponse, error)
	GetServices(ctx context.Context, in *GetServicesRequest, opts ...grpc.CallOption) (*GetServicesResponse, error)
	SetWlanConfig(ctx context.Context, in *SetWlanConfigRequest, opts ...grpc.CallOption) (*ResultResponse, error)
	Events(ctx context.Context, in *EventsRequest, opts ...grpc.CallOption) (CoreAPI_EventsClient, error)
}

// EventStream delivers the events of one session until it fails or its
// context is canceled.
type EventStream interface {
	Recv() (*Event, error)
}

// CoreAPI_EventsClient is the client side of the Events stream.
type CoreAPI_EventsClient interface {
	EventStream
	grpc.ClientStream
}

type coreAPIClient struct {
	cc grpc.ClientConnInterface
}

// NewCoreAPIClient returns a CoreAPIClient on top of cc. Every call is
// encoded with Codec.
func NewCoreAPIClient(cc grpc.ClientConnInterface) CoreAPIClient {
	return &coreAPIClient{cc: cc}
}

func callOptions(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.ForceCodec(Codec{})}, opts...)
}

func (c *coreAPIClient) invoke(ctx context.Context, method string, in, out interface{}, opts []grpc.CallOption) error {
	return c.cc.Invoke(ctx, FullMethod(method), in, out, callOptions(opts)...)
}

func (c *coreAPIClient) CreateSession(ctx context.Context, in *CreateSessionRequest, opts ...grpc.CallOption) (*CreateSessionResponse, error) {
	out := new(CreateSessionResponse)
	if err := c.invoke(ctx, MethodCreateSession, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *coreAPIClient) GetSession(ctx context.Context, in *GetSessionRequest, opts ...grpc.CallOption) (*GetSessionResponse, error) {
	out := new(GetSessionResponse)
	if err := c.invoke(ctx, MethodGetSession, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *coreAPIClient) GetSessions(ctx context.Context, in *GetSessionsRequest, opts ...grpc.CallOption) (*GetSessionsResponse, error) {
	out := new(GetSessionsResponse)
	if err := c.invoke(ctx, MethodGetSessions, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *coreAPIClient) DeleteSession(ctx context.Context, in *DeleteSessionRequest, opts ...grpc.CallOption) (*ResultResponse, error) {
	out := new(ResultResponse)
	if err := c.invoke(ctx, MethodDeleteSession, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *coreAPIClient) SetSessionState(ctx context.Context, in *SetSessionStateRequest, opts ...grpc.CallOption) (*ResultResponse, error) {
	out := new(ResultResponse)
	if err := c.invoke(ctx, MethodSetSessionState, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *coreAPIClient) GetHooks(ctx context.Context, in *GetHooksRequest, opts ...grpc.CallOption) (*GetHooksResponse, error) {
	out := new(GetHooksResponse)
	if err := c.invoke(ctx, MethodGetHooks, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *coreAPIClient) AddNode(ctx context.Context, in *AddNodeRequest, opts ...grpc.CallOption) (*AddNodeResponse, error) {
	out := new(AddNodeResponse)
	if err := c.invoke(ctx, MethodAddNode, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *coreAPIClient) EditNode(ctx context.Context, in *EditNodeRequest, opts ...grpc.CallOption) (*ResultResponse, error) {
	out := new(ResultResponse)
	if err := c.invoke(ctx, MethodEditNode, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *coreAPIClient) DeleteNode(ctx context.Context, in *DeleteNodeRequest, opts ...grpc.CallOption) (*ResultResponse, error) {
	out := new(ResultResponse)
	if err := c.invoke(ctx, MethodDeleteNode, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *coreAPIClient) AddLink(ctx context.Context, in *AddLinkRequest, opts ...grpc.CallOption) (*AddLinkResponse, error) {
	out := new(AddLinkResponse)
	if err := c.invoke(ctx, MethodAddLink, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *coreAPIClient) DeleteLink(ctx context.Context, in *DeleteLinkRequest, opts ...grpc.CallOption) (*ResultResponse, error) {
	out := new(ResultResponse)
	if err := c.invoke(ctx, MethodDeleteLink, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *coreAPIClient) StartSession(ctx context.Context, in *StartSessionRequest, opts ...grpc.CallOption) (*StartSessionResponse, error) {
	out := new(StartSessionResponse)
	if err := c.invoke(ctx, MethodStartSession, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *coreAPIClient) StopSession(ctx context.Context, in *StopSessionRequest, opts ...grpc.CallOption) (*ResultResponse, error) {
	out := new(ResultResponse)
	if err := c.invoke(ctx, MethodStopSession, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *coreAPIClient) SaveXML(ctx context.Context, in *SaveXMLRequest, opts ...grpc.CallOption) (*SaveXMLResponse, error) {
	out := new(SaveXMLResponse)
	if err := c.invoke(ctx, MethodSaveXML, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *coreAPIClient) OpenXML(ctx context.Context, in *OpenXMLRequest, opts ...grpc.CallOption) (*OpenXMLResponse, error) {
	out := new(OpenXMLResponse)
	if err := c.invoke(ctx, MethodOpenXML, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *coreAPIClient) GetServices(ctx context.Context, in *GetServicesRequest, opts ...grpc.CallOption) (*GetServicesResponse, error) {
	out := new(GetServicesResponse)
	if err := c.invoke(ctx, MethodGetServices, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *coreAPIClient) SetWlanConfig(ctx context.Context, in *SetWlanConfigRequest, opts ...grpc.CallOption) (*ResultResponse, error) {
	out := new(ResultResponse)
	if err := c.invoke(ctx, MethodSetWlanConfig, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *coreAPIClient) Events(ctx context.Context, in *EventsRequest, opts ...grpc.CallOption) (CoreAPI_EventsClient, error) {
	stream, err := c.cc.NewStream(ctx, &CoreAPIServiceDesc.Streams[0], FullMethod(MethodEvents), callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	x := &coreAPIEventsClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type coreAPIEventsClient struct {
	grpc.ClientStream
}

func (x *coreAPIEventsClient) Recv() (*Event, error) {
	m := new(Event)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}
