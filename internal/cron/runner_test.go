package cronrunner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_AddRejectsBadSpec(t *testing.T) {
	r := New(nil, context.Background())
	_, err := r.Add("refresh", "not a schedule", func(context.Context) error { return nil })
	assert.Error(t, err)
	assert.Equal(t, 0, r.Len())
}

func TestRunner_AddDescriptor(t *testing.T) {
	r := New(nil, nil)
	_, err := r.Add("refresh", "@every 5m", func(context.Context) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())

	r.Start()
	r.Stop()
}
