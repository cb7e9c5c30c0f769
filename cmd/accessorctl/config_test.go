package main

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/binderkit/binderrpc/accessor"
	rpcerrors "github.com/binderkit/binderrpc/errors"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "services.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDirectory(t *testing.T) {
	path := writeConfig(t, `
[[service]]
instance = "echo"
transport = "vsock"
cid = 2
port = 4000

[[service]]
instance = "storaged"
transport = "unix"
path = "/dev/socket/storaged"
`)

	dir, err := loadDirectory(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := dir.instances(); len(got) != 2 || got[0] != "echo" || got[1] != "storaged" {
		t.Fatalf("instances out of order: %v", got)
	}

	v, ok := dir.entries["echo"].(accessor.Vsock)
	if !ok || v.Addr.ContextID != 2 || v.Addr.Port != 4000 {
		t.Fatalf("echo entry mismatch: %#v", dir.entries["echo"])
	}
	u, ok := dir.entries["storaged"].(accessor.Unix)
	if !ok || u.Addr.Name != "/dev/socket/storaged" {
		t.Fatalf("storaged entry mismatch: %#v", dir.entries["storaged"])
	}

	resolver := dir.resolver()
	if resolver("echo") == nil {
		t.Fatal("resolver must cover configured instances")
	}
	if resolver("unknown") != nil {
		t.Fatal("resolver must decline unconfigured instances")
	}
}

func TestLoadDirectoryValidation(t *testing.T) {
	cases := []struct {
		name     string
		contents string
		kind     rpcerrors.Kind
	}{
		{
			name:     "empty",
			contents: "",
			kind:     rpcerrors.KindInvalidInput,
		},
		{
			name: "missing instance",
			contents: `
[[service]]
transport = "vsock"
port = 1
`,
			kind: rpcerrors.KindInvalidInput,
		},
		{
			name: "duplicate instance",
			contents: `
[[service]]
instance = "echo"
transport = "vsock"
port = 1

[[service]]
instance = "echo"
transport = "vsock"
port = 2
`,
			kind: rpcerrors.KindDuplicate,
		},
		{
			name: "vsock without port",
			contents: `
[[service]]
instance = "echo"
transport = "vsock"
cid = 2
`,
			kind: rpcerrors.KindInvalidInput,
		},
		{
			name: "unix without path",
			contents: `
[[service]]
instance = "echo"
transport = "unix"
`,
			kind: rpcerrors.KindInvalidInput,
		},
		{
			name: "unknown transport",
			contents: `
[[service]]
instance = "echo"
transport = "tcp"
`,
			kind: rpcerrors.KindUnsupported,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.contents)
			_, err := loadDirectory(path)
			if err == nil {
				t.Fatal("expected an error")
			}
			want := &rpcerrors.Error{Phase: rpcerrors.PhaseConfig, Kind: tc.kind}
			if !stderrors.Is(err, want) {
				t.Fatalf("wrong error: got %v, want phase=%s kind=%s", err, want.Phase, want.Kind)
			}
		})
	}
}

func TestLoadDirectoryBadTOML(t *testing.T) {
	path := writeConfig(t, "[[service\ninstance = ")
	_, err := loadDirectory(path)
	want := &rpcerrors.Error{Phase: rpcerrors.PhaseConfig, Kind: rpcerrors.KindInvalidData}
	if !stderrors.Is(err, want) {
		t.Fatalf("expected invalid_data for malformed TOML, got %v", err)
	}
}
