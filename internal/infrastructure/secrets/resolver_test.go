package secrets

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeParameterStore struct {
	values map[string]string
	calls  int
	err    error
}

func (f *fakeParameterStore) GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.values[aws.ToString(params.Name)]
	if !ok {
		return nil, &types.ParameterNotFound{}
	}
	return &ssm.GetParameterOutput{
		Parameter: &types.Parameter{Value: aws.String(v)},
	}, nil
}

func TestResolver_StoreLookupCached(t *testing.T) {
	store := &fakeParameterStore{
		values: map[string]string{
			"/production/billing/STRIPE_SECRET_KEY": "sk_test_abc",
		},
	}
	r := NewResolver(store, "production", zap.NewNop())

	v, ok := r.Resolve(context.Background(), "STRIPE_SECRET_KEY")
	assert.True(t, ok)
	assert.Equal(t, "sk_test_abc", v)

	// Second call must be served from cache.
	v, ok = r.Resolve(context.Background(), "STRIPE_SECRET_KEY")
	assert.True(t, ok)
	assert.Equal(t, "sk_test_abc", v)
	assert.Equal(t, 1, store.calls)
}

func TestResolver_EnvTakesPrecedenceOverStore(t *testing.T) {
	t.Setenv("FROM_ENV_SECRET", "env-value")

	store := &fakeParameterStore{
		values: map[string]string{
			"/staging/billing/FROM_ENV_SECRET": "store-value",
		},
	}
	r := NewResolver(store, "staging", zap.NewNop())

	v, ok := r.Resolve(context.Background(), "FROM_ENV_SECRET")
	assert.True(t, ok)
	assert.Equal(t, "env-value", v)
	assert.Equal(t, 0, store.calls)
}

func TestResolver_StoreFailureMeansAbsent(t *testing.T) {
	store := &fakeParameterStore{
		err: errors.New("ssm unavailable"),
	}
	r := NewResolver(store, "production", zap.NewNop())

	_, ok := r.Resolve(context.Background(), "MISSING_SECRET")
	assert.False(t, ok)

	// Failures are not cached; the next call tries the store again.
	_, ok = r.Resolve(context.Background(), "MISSING_SECRET")
	assert.False(t, ok)
	assert.Equal(t, 2, store.calls)
}

func TestResolver_NilStore(t *testing.T) {
	r := NewResolver(nil, "development", zap.NewNop())

	_, ok := r.Resolve(context.Background(), "NOT_SET_ANYWHERE")
	assert.False(t, ok)
}

func TestResolver_ResolveRequired(t *testing.T) {
	r := NewResolver(nil, "development", zap.NewNop())

	_, err := r.ResolveRequired(context.Background(), "NOT_SET_ANYWHERE")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "NOT_SET_ANYWHERE")

	t.Setenv("PRESENT_SECRET", "value")
	v, err := r.ResolveRequired(context.Background(), "PRESENT_SECRET")
	assert.NoError(t, err)
	assert.Equal(t, "value", v)
}
