// Package device derives the best-effort stable identifier of the host the
// client runs on. The identifier is computed once per start and passed to
// the API at registration.
package device

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/fraudsentry/internal/client/repositories/slots"
	"github.com/dmitrijs2005/fraudsentry/internal/common"
	"github.com/dmitrijs2005/fraudsentry/internal/cryptox"
)

var errNoFingerprint = errors.New("no hardware fingerprint available")

// Test seams.
var (
	readFile   = os.ReadFile
	runCommand = func(name string, args ...string) ([]byte, error) {
		return exec.Command(name, args...).Output()
	}
	goos    = runtime.GOOS
	newUUID = func() (string, error) {
		id, err := uuid.NewRandom()
		if err != nil {
			return "", err
		}
		return id.String(), nil
	}
)

// Fingerprints returns raw hardware identifiers for the current host.
func Fingerprints() ([]string, error) {
	switch goos {
	case "linux":
		return linuxFingerprints()
	case "darwin":
		return darwinFingerprints()
	case "windows":
		return windowsFingerprints()
	default:
		return nil, errNoFingerprint
	}
}

func linuxFingerprints() ([]string, error) {
	for _, path := range []string{"/sys/class/dmi/id/product_uuid", "/etc/machine-id", "/var/lib/dbus/machine-id"} {
		b, err := readFile(path)
		if err != nil {
			continue
		}
		if id := strings.TrimSpace(string(b)); id != "" {
			return []string{id}, nil
		}
	}
	return nil, errNoFingerprint
}

func darwinFingerprints() ([]string, error) {
	out, err := runCommand("ioreg", "-rd1", "-c", "IOPlatformExpertDevice")
	if err != nil {
		return nil, err
	}
	for _, line := range strings.Split(string(out), "\n") {
		if !strings.Contains(line, "IOPlatformUUID") {
			continue
		}
		parts := strings.Split(line, "\"")
		if len(parts) >= 4 && parts[3] != "" {
			return []string{parts[3]}, nil
		}
	}
	return nil, errNoFingerprint
}

func windowsFingerprints() ([]string, error) {
	out, err := runCommand("wmic", "csproduct", "get", "UUID")
	if err != nil {
		return nil, err
	}
	for _, line := range bytes.Split(out, []byte("\n")) {
		s := strings.TrimSpace(string(line))
		if s != "" && !strings.EqualFold(s, "UUID") {
			return []string{s}, nil
		}
	}
	return nil, errNoFingerprint
}

// Resolve returns the device identifier: a digest of the hardware
// fingerprints when available, otherwise a random UUID persisted in repo so
// it stays stable across restarts. If both fail, common.UnknownDeviceID is
// returned together with the error that caused it.
func Resolve(ctx context.Context, repo slots.Repository) (string, error) {
	if fps, err := Fingerprints(); err == nil {
		if id := cryptox.DeviceDigest(fps...); id != "" {
			return id, nil
		}
	}

	stored, err := repo.Get(ctx, slots.KeyDeviceID)
	if err != nil {
		return common.UnknownDeviceID, err
	}
	if len(stored) > 0 {
		return string(stored), nil
	}

	id, err := newUUID()
	if err != nil {
		return common.UnknownDeviceID, err
	}
	if err := repo.Set(ctx, slots.KeyDeviceID, []byte(id)); err != nil {
		return common.UnknownDeviceID, err
	}
	return id, nil
}
