package notify

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogNotifier(t *testing.T) {
	logger, hook := test.NewNullLogger()

	NewLogNotifier(logger).NotifyError(context.Background(), "Quantidade solicitada fora de estoque")

	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "Quantidade solicitada fora de estoque", entry.Message)
	assert.Equal(t, "error", entry.Data["notification"])
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.NotifyError(context.Background(), "first")
	r.NotifyError(context.Background(), "second")

	msgs := r.Messages()
	assert.Equal(t, []string{"first", "second"}, msgs)

	msgs[0] = "changed"
	assert.Equal(t, "first", r.Messages()[0])
}
