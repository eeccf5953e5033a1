package nats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubjects(t *testing.T) {
	require.Equal(t, "chainform.submission.basic", SubjectForMode("Basic"))
	require.Equal(t, "chainform.submission.advanced", SubjectForMode(" Advanced "))
	require.Equal(t, "chainform.submission.unknown", SubjectForMode(""))
	require.Equal(t, "chainform.submission.>", SubjectAll())
}

func TestEmbeddedStream(t *testing.T) {
	emb, err := Start(t.TempDir())
	require.NoError(t, err)
	defer func() { require.NoError(t, emb.Close()) }()

	ctx := context.Background()
	stream, err := SetupStream(ctx, emb.JS)
	require.NoError(t, err)

	_, err = emb.JS.Publish(ctx, SubjectForMode("Basic"), []byte(`{}`))
	require.NoError(t, err)

	info, err := stream.Info(ctx)
	require.NoError(t, err)
	require.Equal(t, StreamName, info.Config.Name)
	require.Equal(t, uint64(1), info.State.Msgs)
}
