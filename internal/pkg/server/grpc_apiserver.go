package server

import (
	"net"

	"google.golang.org/grpc"

	"github.com/lectern-ai/lectern/pkg/logger"
)

// GRPCAPIServer wraps a grpc.Server with its listen address.
type GRPCAPIServer struct {
	*grpc.Server
	address string
}

// NewGRPCAPIServer creates a GRPCAPIServer for the given address.
func NewGRPCAPIServer(srv *grpc.Server, address string) *GRPCAPIServer {
	return &GRPCAPIServer{Server: srv, address: address}
}

// Run starts serving and blocks until the server stops.
func (s *GRPCAPIServer) Run() {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		logger.Fatal("[Server] gRPC listen on %s failed: %v", s.address, err)
	}

	logger.Info("[Server] gRPC API serving on %s", s.address)
	if err := s.Serve(listener); err != nil {
		logger.Error("[Server] gRPC serve error: %v", err)
	}
}

// Stop gracefully stops the gRPC server.
func (s *GRPCAPIServer) Stop() {
	s.GracefulStop()
	logger.Info("[Server] gRPC API stopped on %s", s.address)
}
