package wazero

import (
	"context"
	"testing"

	"github.com/wasmrt/wasmrt/internal/testing/require"
)

func TestHostModuleBuilderCompileIsReusable(t *testing.T) {
	ctx := context.Background()
	r := NewRuntime(ctx)
	defer r.Close(ctx)

	b := r.NewHostModuleBuilder("env").
		NewFunctionBuilder().WithFunc(func() uint32 { return 42 }).Export("answer")

	compiled, err := b.Compile(ctx)
	require.NoError(t, err)
	require.NotNil(t, compiled)

	compiled, err = b.Compile(ctx)
	require.NoError(t, err)
	require.NotNil(t, compiled)
}

func TestHostModuleBuilderInstantiateRejectsDuplicateName(t *testing.T) {
	ctx := context.Background()
	r := NewRuntime(ctx)
	defer r.Close(ctx)

	newBuilder := func() HostModuleBuilder {
		return r.NewHostModuleBuilder("env").
			NewFunctionBuilder().WithFunc(func() uint32 { return 42 }).Export("answer")
	}

	_, err := newBuilder().Instantiate(ctx)
	require.NoError(t, err)

	_, err = newBuilder().Instantiate(ctx)
	require.Error(t, err)
}

func TestHostModuleBuilderCompileRejectsNonFunc(t *testing.T) {
	ctx := context.Background()
	r := NewRuntime(ctx)
	defer r.Close(ctx)

	_, err := r.NewHostModuleBuilder("env").
		NewFunctionBuilder().WithFunc(42).Export("not-a-func").
		Compile(ctx)
	require.Error(t, err)
}
