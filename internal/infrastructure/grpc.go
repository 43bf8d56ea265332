package infrastructure

import (
	"context"
	"crypto/tls"
	"errors"
	"strings"
	"time"

	"github.com/krobus00/invest-orders/internal/config"
	"github.com/krobus00/invest-orders/internal/constant"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	defaultMaxRecvMsgSize = 16 << 20
)

var ErrMissingToken = errors.New("api token is required")

// NewGRPCConnection opens a client connection to the orders service. The
// connection is lazy, the first call establishes it.
func NewGRPCConnection(cfg config.APIConfig) (*grpc.ClientConn, error) {
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, ErrMissingToken
	}

	appName := strings.TrimSpace(cfg.AppName)
	if appName == "" {
		appName = constant.DefaultAppName
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = constant.DefaultCallTimeout
	}

	transportCreds := credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})
	if cfg.Insecure {
		transportCreds = insecure.NewCredentials()
	}

	target := cfg.ResolvedTarget()

	conn, err := grpc.NewClient(target,
		grpc.WithTransportCredentials(transportCreds),
		grpc.WithPerRPCCredentials(bearerToken{token: token, requireTLS: !cfg.Insecure}),
		grpc.WithDefaultCallOptions(grpc.MaxCallRecvMsgSize(defaultMaxRecvMsgSize)),
		grpc.WithChainUnaryInterceptor(
			appNameInterceptor(appName),
			timeoutInterceptor(timeout),
			loggingInterceptor(),
		),
	)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"target":   target,
		"app_name": appName,
		"sandbox":  cfg.Sandbox,
		"readonly": cfg.Readonly,
		"insecure": cfg.Insecure,
		"timeout":  timeout.String(),
		"token":    maskToken(token),
	}).Info("grpc client created")

	return conn, nil
}

// bearerToken attaches the API token to every call.
type bearerToken struct {
	token      string
	requireTLS bool
}

func (b bearerToken) GetRequestMetadata(_ context.Context, _ ...string) (map[string]string, error) {
	return map[string]string{
		constant.AuthorizationHeader: "Bearer " + b.token,
	}, nil
}

func (b bearerToken) RequireTransportSecurity() bool {
	return b.requireTLS
}

func appNameInterceptor(appName string) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		ctx = metadata.AppendToOutgoingContext(ctx, constant.AppNameHeader, appName)
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// timeoutInterceptor only applies when the caller has not set a deadline.
func timeoutInterceptor(timeout time.Duration) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

func loggingInterceptor() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		startedAt := time.Now()
		err := invoker(ctx, method, req, reply, cc, opts...)

		logger := logrus.WithFields(logrus.Fields{
			"method":   method,
			"code":     status.Code(err).String(),
			"duration": time.Since(startedAt).String(),
		})
		if err != nil {
			logger.Warnf("grpc call failed: %v", err)
			return err
		}

		logger.Debug("grpc call done")
		return nil
	}
}

func maskToken(token string) string {
	if len(token) <= 4 {
		return "***"
	}
	return token[:4] + "***"
}
