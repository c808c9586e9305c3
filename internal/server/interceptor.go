package server

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/joseph-ayodele/linguabridge/internal/common"
)

const requestIDHeader = "x-request-id"

// UnaryInterceptor tags each call with a request id, converts domain errors to
// status codes, recovers panics, and logs one line per call.
func UnaryInterceptor(logger zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		start := time.Now()
		rid := incomingRequestID(ctx)
		ctx = common.WithRequestID(ctx, rid)
		log := logger.With().Str("request_id", rid).Str("method", info.FullMethod).Logger()
		ctx = log.WithContext(ctx)
		_ = grpc.SetHeader(ctx, metadata.Pairs(requestIDHeader, rid))

		defer func() {
			if p := recover(); p != nil {
				log.Error().Str("panic", fmt.Sprint(p)).Msg("grpc.request.panic")
				resp, err = nil, status.Error(codes.Internal, "internal error")
			}
			code := status.Code(err)
			ev := log.Info()
			switch code {
			case codes.OK:
			case codes.Internal, codes.Unknown, codes.Unavailable:
				ev = log.Error().Err(err)
			default:
				ev = log.Warn().Err(err)
			}
			ev.Str("code", code.String()).
				Int64("elapsed_ms", time.Since(start).Milliseconds()).
				Msg("grpc.request")
		}()

		resp, err = handler(ctx, req)
		return resp, common.ToStatus(err)
	}
}

func incomingRequestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get(requestIDHeader); len(v) > 0 && v[0] != "" {
			return v[0]
		}
	}
	return uuid.NewString()
}
