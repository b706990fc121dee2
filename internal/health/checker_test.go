package health

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChecker struct {
	name string
	err  error
}

func (f *fakeChecker) Name() string                    { return f.name }
func (f *fakeChecker) Check(ctx context.Context) error { return f.err }

func newTestManager() *Manager {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewManager(log)
}

func TestRunChecks(t *testing.T) {
	m := newTestManager()
	m.Register(&fakeChecker{name: "good"})
	m.Register(&fakeChecker{name: "bad", err: errors.New("down")})

	results := m.RunChecks(context.Background())
	require.Len(t, results, 2)

	assert.Equal(t, StatusOK, results["good"].Status)
	assert.Equal(t, StatusDown, results["bad"].Status)
	assert.Equal(t, "down", results["bad"].Message)
}

func TestOverallStatus(t *testing.T) {
	m := newTestManager()
	assert.Equal(t, StatusOK, m.GetOverallStatus(), "no results yet")

	m.Register(&fakeChecker{name: "good"})
	m.RunChecks(context.Background())
	assert.Equal(t, StatusOK, m.GetOverallStatus())

	m.Register(&fakeChecker{name: "bad", err: errors.New("down")})
	m.RunChecks(context.Background())
	assert.Equal(t, StatusDown, m.GetOverallStatus())
}

func TestMemoryChecker(t *testing.T) {
	unlimited := NewMemoryChecker(0)
	assert.NoError(t, unlimited.Check(context.Background()))

	tiny := NewMemoryChecker(1)
	assert.Error(t, tiny.Check(context.Background()), "one byte of heap is always exceeded")
}
