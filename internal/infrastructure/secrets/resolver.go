// Package secrets resolves named credentials through a cache, the process
// environment, and the SSM parameter store, in that order.
package secrets

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"go.uber.org/zap"
)

// ParameterStore is the slice of the SSM client the resolver uses.
type ParameterStore interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// Resolver resolves named secrets. Successful parameter store lookups are
// cached for the process lifetime; invalidation is a restart.
type Resolver struct {
	store       ParameterStore
	environment string
	logger      *zap.Logger

	mu    sync.RWMutex
	cache map[string]string
}

// NewResolver creates a resolver namespaced under the given deployment
// environment. store may be nil when no parameter store is configured, in
// which case only the environment fallback applies.
func NewResolver(store ParameterStore, environment string, logger *zap.Logger) *Resolver {
	return &Resolver{
		store:       store,
		environment: environment,
		logger:      logger,
		cache:       make(map[string]string),
	}
}

// parameterPath namespaces a secret name under the deployment environment.
func (r *Resolver) parameterPath(name string) string {
	return fmt.Sprintf("/%s/billing/%s", r.environment, name)
}

// Resolve returns the secret for name, reporting false when it cannot be
// found anywhere. Parameter store failures are treated as "not found", not as
// faults; callers decide whether an absent secret is fatal.
func (r *Resolver) Resolve(ctx context.Context, name string) (string, bool) {
	r.mu.RLock()
	if v, ok := r.cache[name]; ok {
		r.mu.RUnlock()
		return v, true
	}
	r.mu.RUnlock()

	if v := os.Getenv(name); v != "" {
		return v, true
	}

	if r.store == nil {
		return "", false
	}

	out, err := r.store.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(r.parameterPath(name)),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		r.logger.Warn("Parameter store lookup failed",
			zap.String("parameter", r.parameterPath(name)),
			zap.Error(err))
		return "", false
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", false
	}

	value := *out.Parameter.Value

	r.mu.Lock()
	r.cache[name] = value
	r.mu.Unlock()

	return value, true
}

// ResolveRequired resolves name and returns a configuration error when the
// secret is absent. Used for credentials the process cannot run without.
func (r *Resolver) ResolveRequired(ctx context.Context, name string) (string, error) {
	v, ok := r.Resolve(ctx, name)
	if !ok {
		return "", fmt.Errorf("required secret %q not found in environment or parameter store", name)
	}
	return v, nil
}
