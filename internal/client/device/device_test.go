package device

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/fraudsentry/internal/client/repositories/slots"
	"github.com/dmitrijs2005/fraudsentry/internal/common"
	"github.com/dmitrijs2005/fraudsentry/internal/cryptox"
)

type memSlots struct {
	data   map[string][]byte
	getErr error
	setErr error
}

func newMemSlots() *memSlots { return &memSlots{data: map[string][]byte{}} }

func (m *memSlots) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.data[key], nil
}
func (m *memSlots) Set(_ context.Context, key string, value []byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}
func (m *memSlots) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}
func (m *memSlots) List(context.Context) (map[string][]byte, error) { return m.data, nil }

var _ slots.Repository = (*memSlots)(nil)

func stubHost(t *testing.T, hostOS string, files map[string]string, cmdOut string, cmdErr error) {
	t.Helper()
	origOS, origRead, origRun := goos, readFile, runCommand
	t.Cleanup(func() { goos, readFile, runCommand = origOS, origRead, origRun })

	goos = hostOS
	readFile = func(path string) ([]byte, error) {
		if v, ok := files[path]; ok {
			return []byte(v), nil
		}
		return nil, errors.New("no such file")
	}
	runCommand = func(string, ...string) ([]byte, error) { return []byte(cmdOut), cmdErr }
}

func stubUUID(t *testing.T, id string, err error) {
	t.Helper()
	orig := newUUID
	t.Cleanup(func() { newUUID = orig })
	newUUID = func() (string, error) { return id, err }
}

func TestResolve_LinuxProductUUID(t *testing.T) {
	stubHost(t, "linux", map[string]string{"/sys/class/dmi/id/product_uuid": "ABC-123\n"}, "", nil)

	id, err := Resolve(context.Background(), newMemSlots())
	require.NoError(t, err)
	assert.Equal(t, cryptox.DeviceDigest("ABC-123"), id)
}

func TestResolve_LinuxFallsBackToMachineID(t *testing.T) {
	stubHost(t, "linux", map[string]string{"/etc/machine-id": "m-1"}, "", nil)

	id, err := Resolve(context.Background(), newMemSlots())
	require.NoError(t, err)
	assert.Equal(t, cryptox.DeviceDigest("m-1"), id)
}

func TestResolve_Darwin(t *testing.T) {
	out := `  "IOPlatformSerialNumber" = "C02X"` + "\n" + `  "IOPlatformUUID" = "1111-2222"` + "\n"
	stubHost(t, "darwin", nil, out, nil)

	id, err := Resolve(context.Background(), newMemSlots())
	require.NoError(t, err)
	assert.Equal(t, cryptox.DeviceDigest("1111-2222"), id)
}

func TestResolve_Windows(t *testing.T) {
	stubHost(t, "windows", nil, "UUID\r\n4C4C-4544\r\n\r\n", nil)

	id, err := Resolve(context.Background(), newMemSlots())
	require.NoError(t, err)
	assert.Equal(t, cryptox.DeviceDigest("4C4C-4544"), id)
}

func TestResolve_NoFingerprintPersistsRandomID(t *testing.T) {
	stubHost(t, "plan9", nil, "", nil)
	stubUUID(t, "3f1c0b7e-1111-4222-8333-444455556666", nil)
	repo := newMemSlots()

	id, err := Resolve(context.Background(), repo)
	require.NoError(t, err)
	assert.Equal(t, "3f1c0b7e-1111-4222-8333-444455556666", id)
	assert.Equal(t, []byte(id), repo.data[slots.KeyDeviceID])

	stubUUID(t, "should-not-be-used", nil)
	again, err := Resolve(context.Background(), repo)
	require.NoError(t, err)
	assert.Equal(t, id, again, "persisted id must be reused")
}

func TestResolve_StorageFailureGivesUnknown(t *testing.T) {
	stubHost(t, "linux", nil, "", os.ErrNotExist)
	repo := newMemSlots()
	repo.getErr = errors.New("db down")

	id, err := Resolve(context.Background(), repo)
	require.Error(t, err)
	assert.Equal(t, common.UnknownDeviceID, id)
}

func TestResolve_SaveFailureGivesUnknown(t *testing.T) {
	stubHost(t, "linux", nil, "", nil)
	stubUUID(t, "x", nil)
	repo := newMemSlots()
	repo.setErr = errors.New("read-only")

	id, err := Resolve(context.Background(), repo)
	require.Error(t, err)
	assert.Equal(t, common.UnknownDeviceID, id)
}
