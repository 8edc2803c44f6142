// Package pb holds the generated gRPC bindings for the tool service.
package pb

//go:generate protoc --go_out=. --go_opt=paths=source_relative --go-grpc_out=. --go-grpc_opt=paths=source_relative tool.proto
