package main

import (
	"net"

	"github.com/BurntSushi/toml"
	"github.com/mdlayher/vsock"

	"github.com/binderkit/binderrpc/accessor"
	rpcerrors "github.com/binderkit/binderrpc/errors"
)

// accessorctl service directory: one [[service]] block per instance.
type fileConfig struct {
	Services []serviceConfig `toml:"service"`
}

type serviceConfig struct {
	Instance  string `toml:"instance"`
	Transport string `toml:"transport"`
	CID       uint32 `toml:"cid"`
	Port      uint32 `toml:"port"`
	Path      string `toml:"path"`
}

// directory is a loaded service directory, in file order.
type directory struct {
	entries map[string]accessor.ConnectionInfo
	order   []string
}

func loadDirectory(path string) (*directory, error) {
	var raw fileConfig
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, rpcerrors.Wrap(rpcerrors.PhaseConfig, rpcerrors.KindInvalidData, err, "parse service directory")
	}
	if len(raw.Services) == 0 {
		return nil, rpcerrors.InvalidInput(rpcerrors.PhaseConfig, "no [[service]] blocks")
	}

	d := &directory{entries: make(map[string]accessor.ConnectionInfo, len(raw.Services))}
	for _, svc := range raw.Services {
		if svc.Instance == "" {
			return nil, rpcerrors.InvalidInput(rpcerrors.PhaseConfig, "service block missing instance")
		}
		if _, dup := d.entries[svc.Instance]; dup {
			return nil, rpcerrors.New(rpcerrors.PhaseConfig, rpcerrors.KindDuplicate).
				Instance(svc.Instance).
				Detail("instance configured twice").
				Build()
		}

		var info accessor.ConnectionInfo
		switch svc.Transport {
		case "vsock":
			if svc.Port == 0 {
				return nil, rpcerrors.New(rpcerrors.PhaseConfig, rpcerrors.KindInvalidInput).
					Instance(svc.Instance).
					Detail("vsock service needs a port").
					Build()
			}
			info = accessor.Vsock{Addr: vsock.Addr{ContextID: svc.CID, Port: svc.Port}}
		case "unix":
			if svc.Path == "" {
				return nil, rpcerrors.New(rpcerrors.PhaseConfig, rpcerrors.KindInvalidInput).
					Instance(svc.Instance).
					Detail("unix service needs a path").
					Build()
			}
			info = accessor.Unix{Addr: net.UnixAddr{Name: svc.Path, Net: "unix"}}
		default:
			return nil, rpcerrors.New(rpcerrors.PhaseConfig, rpcerrors.KindUnsupported).
				Instance(svc.Instance).
				Detail("unknown transport %q", svc.Transport).
				Build()
		}

		d.entries[svc.Instance] = info
		d.order = append(d.order, svc.Instance)
	}
	return d, nil
}

func (d *directory) instances() []string {
	return append([]string(nil), d.order...)
}

func (d *directory) resolver() accessor.Resolver {
	return accessor.StaticResolver(d.entries)
}
