package jobs

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/ManivannanSenthilrajan/issueboard/internal/config"
)

type stubSyncer struct{ calls int }

func (s *stubSyncer) Sync(context.Context) (int, error) {
	s.calls++
	return 0, nil
}

func TestNewCronLogsBadSchedule(t *testing.T) {
	buf := &bytes.Buffer{}
	log := zerolog.New(buf)

	cfg := config.Config{TZ: "UTC", RefreshCron: "not a schedule"}
	cr := NewCron(cfg, log, &stubSyncer{}, nil)
	defer cr.Stop()

	assert.Contains(t, buf.String(), "bad refresh schedule")
}

func TestNewCronAcceptsValidSchedule(t *testing.T) {
	buf := &bytes.Buffer{}
	log := zerolog.New(buf)

	cfg := config.Config{TZ: "UTC", RefreshCron: "*/15 * * * *"}
	cr := NewCron(cfg, log, &stubSyncer{}, nil)
	defer cr.Stop()

	assert.NotContains(t, buf.String(), "bad refresh schedule")
}
