package server

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "linguabridge.v1.DocumentService"

// DocumentServer is the server API of linguabridge.v1.DocumentService.
type DocumentServer interface {
	UploadDocument(context.Context, *UploadDocumentRequest) (*UploadDocumentResponse, error)
	GetMetadata(context.Context, *DocumentRequest) (*GetMetadataResponse, error)
	GetFile(context.Context, *GetFileRequest) (*FileResponse, error)
	Chat(context.Context, *ChatRequest) (*ChatResponse, error)
	ListDocuments(context.Context, *UserRequest) (*ListDocumentsResponse, error)
	GetChat(context.Context, *UserDocumentRequest) (*GetChatResponse, error)
	SaveMessage(context.Context, *SaveMessageRequest) (*SaveMessageResponse, error)
	DeleteDocument(context.Context, *UserDocumentRequest) (*DeleteDocumentResponse, error)
	SubmitFeedback(context.Context, *SubmitFeedbackRequest) (*SubmitFeedbackResponse, error)
	ListFeedback(context.Context, *UserRequest) (*ListFeedbackResponse, error)
	ExportDocument(context.Context, *DocumentRequest) (*ExportDocumentResponse, error)
	DownloadTranslation(context.Context, *DocumentRequest) (*FileResponse, error)
}

var _ DocumentServer = (*DocumentService)(nil)

// unary builds the MethodDesc for one RPC, decoding into a fresh Req.
func unary[Req, Resp any](name string, call func(DocumentServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(DocumentServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + name}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc is registered by hand; messages travel through the JSON codec.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DocumentServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("UploadDocument", DocumentServer.UploadDocument),
		unary("GetMetadata", DocumentServer.GetMetadata),
		unary("GetFile", DocumentServer.GetFile),
		unary("Chat", DocumentServer.Chat),
		unary("ListDocuments", DocumentServer.ListDocuments),
		unary("GetChat", DocumentServer.GetChat),
		unary("SaveMessage", DocumentServer.SaveMessage),
		unary("DeleteDocument", DocumentServer.DeleteDocument),
		unary("SubmitFeedback", DocumentServer.SubmitFeedback),
		unary("ListFeedback", DocumentServer.ListFeedback),
		unary("ExportDocument", DocumentServer.ExportDocument),
		unary("DownloadTranslation", DocumentServer.DownloadTranslation),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "linguabridge/v1/document.json",
}

func RegisterDocumentServer(s grpc.ServiceRegistrar, srv DocumentServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client calls DocumentService over an existing connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any](ctx context.Context, c *Client, method string, in any, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UploadDocument(ctx context.Context, in *UploadDocumentRequest, opts ...grpc.CallOption) (*UploadDocumentResponse, error) {
	return invoke[UploadDocumentResponse](ctx, c, "UploadDocument", in, opts...)
}

func (c *Client) GetMetadata(ctx context.Context, in *DocumentRequest, opts ...grpc.CallOption) (*GetMetadataResponse, error) {
	return invoke[GetMetadataResponse](ctx, c, "GetMetadata", in, opts...)
}

func (c *Client) GetFile(ctx context.Context, in *GetFileRequest, opts ...grpc.CallOption) (*FileResponse, error) {
	return invoke[FileResponse](ctx, c, "GetFile", in, opts...)
}

func (c *Client) Chat(ctx context.Context, in *ChatRequest, opts ...grpc.CallOption) (*ChatResponse, error) {
	return invoke[ChatResponse](ctx, c, "Chat", in, opts...)
}

func (c *Client) ListDocuments(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*ListDocumentsResponse, error) {
	return invoke[ListDocumentsResponse](ctx, c, "ListDocuments", in, opts...)
}

func (c *Client) GetChat(ctx context.Context, in *UserDocumentRequest, opts ...grpc.CallOption) (*GetChatResponse, error) {
	return invoke[GetChatResponse](ctx, c, "GetChat", in, opts...)
}

func (c *Client) SaveMessage(ctx context.Context, in *SaveMessageRequest, opts ...grpc.CallOption) (*SaveMessageResponse, error) {
	return invoke[SaveMessageResponse](ctx, c, "SaveMessage", in, opts...)
}

func (c *Client) DeleteDocument(ctx context.Context, in *UserDocumentRequest, opts ...grpc.CallOption) (*DeleteDocumentResponse, error) {
	return invoke[DeleteDocumentResponse](ctx, c, "DeleteDocument", in, opts...)
}

func (c *Client) SubmitFeedback(ctx context.Context, in *SubmitFeedbackRequest, opts ...grpc.CallOption) (*SubmitFeedbackResponse, error) {
	return invoke[SubmitFeedbackResponse](ctx, c, "SubmitFeedback", in, opts...)
}

func (c *Client) ListFeedback(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*ListFeedbackResponse, error) {
	return invoke[ListFeedbackResponse](ctx, c, "ListFeedback", in, opts...)
}

func (c *Client) ExportDocument(ctx context.Context, in *DocumentRequest, opts ...grpc.CallOption) (*ExportDocumentResponse, error) {
	return invoke[ExportDocumentResponse](ctx, c, "ExportDocument", in, opts...)
}

func (c *Client) DownloadTranslation(ctx context.Context, in *DocumentRequest, opts ...grpc.CallOption) (*FileResponse, error) {
	return invoke[FileResponse](ctx, c, "DownloadTranslation", in, opts...)
}
