package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/omf/endian"
	"github.com/arloliu/omf/errs"
	"github.com/arloliu/omf/format"
	"github.com/arloliu/omf/internal/omftest"
	"github.com/arloliu/omf/snapshot"
)

func sampleFile() omftest.File {
	return omftest.File{
		NX: 2, NY: 1, NZ: 1,
		Step:    [3]float64{1e-9, 1e-9, 1e-9},
		SimTime: "3e-12",
		Mode:    format.ModeBinary4,
		Engine:  endian.GetBigEndianEngine(),
		Vectors: omftest.Sequential(2, 0),
	}
}

func writeOMF(t *testing.T, dir, name string, f omftest.File) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, f.Bytes(), 0o600))

	return path
}

// run executes the CLI with an isolated config directory and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out bytes.Buffer
	err := newApp(&out, io.Discard).Run(context.Background(), append([]string{"omf"}, args...))

	return out.String(), err
}

func TestInspect(t *testing.T) {
	path := writeOMF(t, t.TempDir(), "m000001.omf", sampleFile())

	out, err := run(t, "inspect", path)
	require.NoError(t, err)
	require.Contains(t, out, "mode:        Binary 4")
	require.Contains(t, out, "byte order:  big")
	require.Contains(t, out, "dims:        2 x 1 x 1 (2 cells)")
	require.Contains(t, out, "sim time:    3e-12")
	require.Contains(t, out, "iteration:   n/a")
}

func TestInspect_JSON(t *testing.T) {
	path := writeOMF(t, t.TempDir(), "m000001.omf", sampleFile())

	out, err := run(t, "inspect", "--json", path)
	require.NoError(t, err)

	var got struct {
		File      string `json:"file"`
		Dims      [3]int `json:"dims"`
		Mode      string `json:"mode"`
		ByteOrder string `json:"byte_order"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, path, got.File)
	require.Equal(t, [3]int{2, 1, 1}, got.Dims)
	require.Equal(t, "Binary 4", got.Mode)
	require.Equal(t, "big", got.ByteOrder)
}

func TestInspect_Errors(t *testing.T) {
	_, err := run(t, "inspect")
	require.Error(t, err)

	f := sampleFile()
	f.Marker = "# Begin: Data Hex 4"
	path := writeOMF(t, t.TempDir(), "hex.omf", f)
	_, err = run(t, "inspect", path)
	require.ErrorIs(t, err, errs.ErrUnknownDataFormat)

	_, err = run(t, "--max-cells", "1", "inspect", writeOMF(t, t.TempDir(), "big.omf", sampleFile()))
	require.ErrorIs(t, err, errs.ErrGridTooLarge)
}

func TestConvert_MAT(t *testing.T) {
	dir := t.TempDir()
	path := writeOMF(t, dir, "m000001.omf", sampleFile())

	_, err := run(t, "convert", path)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "m000001.mat"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "MATLAB 5.0 MAT-file"))
}

func TestConvert_SnapshotWithCSV(t *testing.T) {
	dir := t.TempDir()
	path := writeOMF(t, dir, "m000001.omf", sampleFile())
	csvPath := filepath.Join(dir, "table.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("t,E\n0,1.5\n1e-12,2.5\n"), 0o600))
	out := filepath.Join(dir, "nested", "frame.omfs")

	_, err := run(t, "convert", "--format", "snapshot", "--compression", "lz4", "--encoding", "gorilla",
		"--csv", csvPath, "--row", "1", "--out", out, path)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	snap, err := snapshot.Decode(data)
	require.NoError(t, err)
	require.Equal(t, format.CompressionLZ4, snap.Compression)
	require.Equal(t, format.EncodingGorilla, snap.Encoding)
	require.Equal(t, []string{"t", "E"}, snap.Energy.Keys)
	require.Equal(t, 2.5, snap.Energy.Values[1])
	require.Equal(t, 5.0, snap.Grid.At(1, 0, 0, 2))
}

func TestConvert_Errors(t *testing.T) {
	dir := t.TempDir()
	path := writeOMF(t, dir, "m000001.omf", sampleFile())

	_, err := run(t, "convert", "--format", "hdf5", path)
	require.ErrorContains(t, err, "unsupported format")

	_, err = run(t, "convert", "--compression", "brotli", path)
	require.ErrorContains(t, err, "unsupported compression")

	_, err = run(t, "convert", "--encoding", "delta", path)
	require.ErrorContains(t, err, "unsupported encoding")

	csvPath := filepath.Join(dir, "table.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("t\n0\n"), 0o600))
	_, err = run(t, "convert", "--csv", csvPath, "--row", "3", path)
	require.ErrorContains(t, err, "out of range")

	f := sampleFile()
	f.Step = [3]float64{}
	_, err = run(t, "convert", writeOMF(t, dir, "nostep.omf", f))
	require.ErrorIs(t, err, errs.ErrMissingStepSize)
}

func TestBatch(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	for _, name := range []string{"m000002.omf", "m000001.omf", "m000003.omf"} {
		writeOMF(t, in, name, sampleFile())
	}
	csvPath := filepath.Join(t.TempDir(), "table.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("E\n1\n2\n"), 0o600))

	stdout, err := run(t, "batch", "--input", in, "--out", out, "--csv", csvPath, "--workers", "2")
	require.NoError(t, err)
	require.Contains(t, stdout, "2 converted, 0 failed, 1 skipped")

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	require.Equal(t, []string{"m000001.mat", "m000002.mat"}, names)
}

func TestBatch_Failures(t *testing.T) {
	in := t.TempDir()
	writeOMF(t, in, "m000001.omf", sampleFile())
	bad := sampleFile()
	bad.OmitNodes = []string{"ynodes"}
	writeOMF(t, in, "m000002.omf", bad)

	stdout, err := run(t, "batch", "--input", in, "--format", "snapshot")
	require.ErrorIs(t, err, errs.ErrMissingGridDimensions)
	require.ErrorContains(t, err, "1 of 2 files failed")
	require.Contains(t, stdout, "1 converted, 1 failed")

	_, err = os.Stat(filepath.Join(in, "m000001.omfs"))
	require.NoError(t, err)

	_, err = run(t, "batch", "--input", in, "--bucket", "frames")
	require.ErrorContains(t, err, "--minio-endpoint")
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(filepath.Join(dir, "missing.yaml"), false)
	require.NoError(t, err)
	require.Equal(t, Config{}, cfg)

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"), true)
	require.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: debug
format: snapshot
big_endian: true
workers: 3
minio:
  endpoint: localhost:9000
  secure: false
`), 0o600))
	cfg, err = LoadConfig(path, true)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "snapshot", cfg.Format)
	require.NotNil(t, cfg.BigEndian)
	require.True(t, *cfg.BigEndian)
	require.NotNil(t, cfg.Workers)
	require.Equal(t, int64(3), *cfg.Workers)
	require.Equal(t, "localhost:9000", cfg.MinIO.Endpoint)
	require.NotNil(t, cfg.MinIO.Secure)
	require.Nil(t, cfg.Rate)

	require.NoError(t, os.WriteFile(path, []byte("format: [\n"), 0o600))
	_, err = LoadConfig(path, true)
	require.ErrorContains(t, err, "parse config")
}

func TestConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeOMF(t, dir, "m000001.omf", sampleFile())
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("format: snapshot\nbig_endian: true\n"), 0o600))

	_, err := run(t, "--config", cfgPath, "convert", path)
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "m000001.omfs"))
	require.NoError(t, err)
	snap, err := snapshot.Decode(data)
	require.NoError(t, err)
	require.Equal(t, "big", endian.Name(snap.ByteOrder))

	// flags win over the config file
	_, err = run(t, "--config", cfgPath, "convert", "--format", "mat", path)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "m000001.mat"))
	require.NoError(t, err)

	_, err = run(t, "--config", filepath.Join(dir, "missing.yaml"), "inspect", path)
	require.ErrorIs(t, err, os.ErrNotExist)
}
