package signal

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEtcdRequiresName(t *testing.T) {
	_, err := NewEtcd(EtcdConfig{
		Endpoints: []string{"localhost:2379"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
}

func TestNewEtcdRequiresEndpointsOrClient(t *testing.T) {
	_, err := NewEtcd(EtcdConfig{
		Name: "quit",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "endpoints")
}

// etcdEndpoints returns the endpoints for integration tests, or skips the
// test when no cluster is configured.
func etcdEndpoints(t *testing.T) []string {
	t.Helper()
	raw := os.Getenv("WORKERSZ_ETCD_ENDPOINTS")
	if raw == "" {
		t.Skip("WORKERSZ_ETCD_ENDPOINTS not set; skipping etcd integration test")
	}
	return strings.Split(raw, ",")
}

func TestEtcdSignalRoundTrip(t *testing.T) {
	endpoints := etcdEndpoints(t)

	sig, err := NewEtcd(EtcdConfig{
		Endpoints: endpoints,
		Namespace: "workersz-test",
		Name:      "roundtrip",
	})
	require.NoError(t, err)
	defer sig.Close()

	sig.Clear()
	require.False(t, sig.IsSet())

	sig.Set()
	assert.True(t, sig.IsSet())

	// Idempotent set.
	sig.Set()
	assert.True(t, sig.IsSet())

	sig.Clear()
	assert.False(t, sig.IsSet())
	require.NoError(t, sig.Err())
}

func TestEtcdSignalWaitWokenBySet(t *testing.T) {
	endpoints := etcdEndpoints(t)

	sig, err := NewEtcd(EtcdConfig{
		Endpoints: endpoints,
		Namespace: "workersz-test",
		Name:      "wait",
	})
	require.NoError(t, err)
	defer sig.Close()

	sig.Clear()

	go func() {
		time.Sleep(50 * time.Millisecond)
		sig.Set()
	}()

	assert.True(t, sig.Wait(10*time.Second))
	sig.Clear()
}

func TestEtcdSignalWaitTimeout(t *testing.T) {
	endpoints := etcdEndpoints(t)

	sig, err := NewEtcd(EtcdConfig{
		Endpoints: endpoints,
		Namespace: "workersz-test",
		Name:      "wait-timeout",
	})
	require.NoError(t, err)
	defer sig.Close()

	sig.Clear()
	assert.False(t, sig.Wait(100*time.Millisecond))
}
