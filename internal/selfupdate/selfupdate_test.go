package selfupdate

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetNameFor(t *testing.T) {
	tests := []struct {
		name    string
		goos    string
		goarch  string
		want    string
		wantErr bool
	}{
		{"darwin amd64", "darwin", "amd64", "mockprep_Darwin_all.tar.gz", false},
		{"darwin arm64", "darwin", "arm64", "mockprep_Darwin_all.tar.gz", false},
		{"linux amd64", "linux", "amd64", "mockprep_Linux_x86_64.tar.gz", false},
		{"linux arm64", "linux", "arm64", "mockprep_Linux_arm64.tar.gz", false},
		{"linux 386", "linux", "386", "mockprep_Linux_i386.tar.gz", false},
		{"windows amd64", "windows", "amd64", "mockprep_Windows_x86_64.zip", false},
		{"unsupported os", "freebsd", "amd64", "", true},
		{"unsupported arch", "linux", "mips", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := assetNameFor(tt.goos, tt.goarch)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsNewer(t *testing.T) {
	tests := []struct {
		latest, current string
		want            bool
	}{
		{"v1.2.0", "v1.1.9", true},
		{"v1.2.0", "1.1.0", true},
		{"v1.2.0", "v1.2.0", false},
		{"v1.2.0", "v1.3.0", false},
		{"v1.2.0", DevVersion, false},
		{"nightly", "v1.0.0", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isNewer(tt.latest, tt.current), "%s vs %s", tt.latest, tt.current)
	}
}

func TestParseChecksums(t *testing.T) {
	got := parseChecksums([]byte("abc123  a.tar.gz\nbadline\n  \nfoo  bar  baz\ndef456  b.zip"))
	assert.Equal(t, map[string]string{"a.tar.gz": "abc123", "b.zip": "def456"}, got)
}

func TestVerifyChecksum(t *testing.T) {
	data := []byte("hello world")
	h := sha256.Sum256(data)

	assert.NoError(t, verifyChecksum(data, hex.EncodeToString(h[:])))
	assert.ErrorIs(t, verifyChecksum(data, "00"), ErrChecksum)
}

func TestExtractBinary(t *testing.T) {
	content := []byte("#!/bin/sh\necho mockprep")

	got, err := extractBinary(buildTarGz(t, "dist/mockprep", content), "mockprep_Linux_x86_64.tar.gz")
	require.NoError(t, err)
	assert.Equal(t, content, got)

	_, err = extractBinary(buildTarGz(t, "README.md", content), "mockprep_Linux_x86_64.tar.gz")
	assert.ErrorContains(t, err, "not found")
}

func TestApplyUpdate(t *testing.T) {
	target := filepath.Join(t.TempDir(), "mockprep")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o755))

	bin := []byte("new-binary")
	h := sha256.Sum256(bin)
	require.NoError(t, applyUpdate(bin, target, h[:]))

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, bin, got)
	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	wrong := sha256.Sum256([]byte("other"))
	assert.ErrorIs(t, applyUpdate(bin, target, wrong[:]), ErrChecksum)
}

func TestCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/abhisek/mockprep/releases/latest", r.URL.Path)
		_, _ = w.Write([]byte(`{"tag_name":"v0.3.0","html_url":"https://example.com/v0.3.0"}`))
	}))
	defer server.Close()

	res, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), &CheckInput{Version: "v0.2.1"})
	require.NoError(t, err)
	assert.True(t, res.UpdateAvailable)
	assert.Equal(t, "v0.3.0", res.LatestVersion)
	assert.Equal(t, "https://example.com/v0.3.0", res.ReleaseURL)
}

func TestUpdate(t *testing.T) {
	asset, err := assetName()
	if err != nil {
		t.Skipf("no release asset for %s/%s", runtime.GOOS, runtime.GOARCH)
	}
	if runtime.GOOS == "windows" {
		t.Skip("release test archive is a tarball")
	}

	content := []byte("new-mockprep-binary")
	archive := buildTarGz(t, "mockprep", content)
	sum := sha256.Sum256(archive)

	newServer := func(checksum string) *httptest.Server {
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/repos/abhisek/mockprep/releases/latest":
				_, _ = w.Write([]byte(`{"tag_name":"v2.0.0"}`))
			case "/abhisek/mockprep/releases/download/v2.0.0/" + asset:
				_, _ = w.Write(archive)
			case "/abhisek/mockprep/releases/download/v2.0.0/checksums.txt":
				_, _ = fmt.Fprintf(w, "%s  %s\n", checksum, asset)
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
	}

	t.Run("happy path", func(t *testing.T) {
		server := newServer(hex.EncodeToString(sum[:]))
		defer server.Close()
		execPath := filepath.Join(t.TempDir(), "mockprep")
		require.NoError(t, os.WriteFile(execPath, []byte("old"), 0o755))

		checker := NewChecker(
			WithBaseURL(server.URL),
			WithDownloadBaseURL(server.URL),
			withExecPath(func() (string, error) { return execPath, nil }),
		)
		var stages []string
		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(p UpdateProgress) {
			stages = append(stages, p.Stage)
		})
		require.NoError(t, err)

		got, err := os.ReadFile(execPath)
		require.NoError(t, err)
		assert.Equal(t, content, got)
		assert.Equal(t, []string{"check", "download", "verify", "extract", "apply", "done"}, stages)
	})

	t.Run("dev build", func(t *testing.T) {
		err := NewChecker().Update(context.Background(), &UpdateInput{CurrentVersion: DevVersion}, func(UpdateProgress) {})
		assert.ErrorIs(t, err, ErrDevBuild)
	})

	t.Run("already latest", func(t *testing.T) {
		server := newServer("")
		defer server.Close()
		err := NewChecker(WithBaseURL(server.URL)).
			Update(context.Background(), &UpdateInput{CurrentVersion: "v2.0.0"}, func(UpdateProgress) {})
		assert.ErrorIs(t, err, ErrAlreadyLatest)
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		server := newServer("0000")
		defer server.Close()
		err := NewChecker(WithBaseURL(server.URL), WithDownloadBaseURL(server.URL)).
			Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(UpdateProgress) {})
		assert.ErrorIs(t, err, ErrChecksum)
	})
}

func buildTarGz(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)

	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name:     name,
		Size:     int64(len(content)),
		Mode:     0o755,
		Typeflag: tar.TypeReg,
	}))
	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return buf.Bytes()
}
