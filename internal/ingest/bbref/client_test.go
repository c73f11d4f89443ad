package bbref

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFetchRosterPageHonorsCancellation(t *testing.T) {
	client, err := NewClient()
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.FetchRosterPage(ctx, "LAL", 2025)
	require.Error(t, err)
}
