// Package correlation derives a per-request correlation id from transport
// metadata and carries it through context.Context.
package correlation

import (
	"context"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

const (
	// Header is the HTTP header and gRPC metadata key holding the request id.
	Header = "x-request-id"
	// Sentinel is used when no usable request id was supplied.
	Sentinel = "none"
)

// Context is the correlation data of a single request.
type Context struct {
	RequestID string
}

// Extractor reads correlation ids from transport metadata.
type Extractor struct {
	// Generate, when set, produces an id for requests without a usable one.
	Generate func() string
}

// FromHeader extracts the correlation context from HTTP headers.
func (e Extractor) FromHeader(h http.Header) Context {
	return e.resolve(h.Get(Header))
}

// FromMetadata extracts the correlation context from gRPC metadata.
func (e Extractor) FromMetadata(md metadata.MD) Context {
	var value string
	if values := md.Get(Header); len(values) > 0 {
		value = values[0]
	}
	return e.resolve(value)
}

func (e Extractor) resolve(value string) Context {
	value = strings.TrimSpace(value)
	if valid(value) {
		return Context{RequestID: value}
	}
	if e.Generate != nil {
		if id := e.Generate(); valid(id) {
			return Context{RequestID: id}
		}
	}
	return Context{RequestID: Sentinel}
}

func valid(value string) bool {
	if value == "" || !utf8.ValidString(value) {
		return false
	}
	for _, r := range value {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

type contextKey struct{}

// With stores c in ctx.
func With(ctx context.Context, c Context) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// From returns the correlation context stored in ctx, or the sentinel.
func From(ctx context.Context) Context {
	if ctx != nil {
		if c, ok := ctx.Value(contextKey{}).(Context); ok && c.RequestID != "" {
			return c
		}
	}
	return Context{RequestID: Sentinel}
}

// RequestID is shorthand for From(ctx).RequestID.
func RequestID(ctx context.Context) string {
	return From(ctx).RequestID
}

// Middleware stores the correlation context of each request and echoes the id.
func Middleware(extractor Extractor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := extractor.FromHeader(r.Header)
			w.Header().Set(Header, c.RequestID)
			next.ServeHTTP(w, r.WithContext(With(r.Context(), c)))
		})
	}
}

// UnaryServerInterceptor is the gRPC counterpart of Middleware.
// The id is echoed in the response header metadata.
func UnaryServerInterceptor(extractor Extractor) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		md, _ := metadata.FromIncomingContext(ctx)
		c := extractor.FromMetadata(md)
		ctx = With(ctx, c)
		_ = grpc.SetHeader(ctx, metadata.Pairs(Header, c.RequestID))
		return handler(ctx, req)
	}
}
