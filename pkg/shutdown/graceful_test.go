package shutdown

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnDone_CallsStopWithDeadline(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var hadDeadline bool
	err := OnDone(ctx, time.Second, func(stopCtx context.Context) error {
		_, hadDeadline = stopCtx.Deadline()
		return nil
	})

	require.NoError(t, err)
	assert.True(t, hadDeadline)
}
