package server

import (
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// New builds a gRPC server with DocumentService and the standard health service.
func New(svc DocumentServer, logger zerolog.Logger, opts ...grpc.ServerOption) (*grpc.Server, *health.Server) {
	base := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(UnaryInterceptor(logger)),
		grpc.MaxRecvMsgSize(MaxUploadBytes * 2),
		grpc.MaxSendMsgSize(MaxUploadBytes * 2),
	}
	srv := grpc.NewServer(append(base, opts...)...)
	RegisterDocumentServer(srv, svc)

	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	return srv, hs
}
