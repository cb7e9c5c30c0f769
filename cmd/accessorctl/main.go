package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/binderkit/binderrpc/accessor"
	"github.com/binderkit/binderrpc/binder"
	"github.com/binderkit/binderrpc/cookie"
	"github.com/binderkit/binderrpc/internal/sockaddr"
)

func main() {
	var (
		configFile  = flag.String("config", "", "Path to the service directory TOML")
		resolveName = flag.String("resolve", "", "Instance to resolve (default: all configured)")
		list        = flag.Bool("list", false, "List configured instances and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *configFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: accessorctl -config <services.toml> [-resolve name]")
		fmt.Fprintln(os.Stderr, "       accessorctl -config <services.toml> -list")
		fmt.Fprintln(os.Stderr, "       accessorctl -config <services.toml> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			accessor.SetLogger(logger)
			cookie.SetLogger(logger)
		}
	}

	if err := run(*configFile, *resolveName, *list, *interactive); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile, resolveName string, listOnly, interactive bool) error {
	dir, err := loadDirectory(configFile)
	if err != nil {
		return err
	}

	fmt.Printf("Service directory: %s\n", configFile)
	fmt.Printf("Instances: %d\n", len(dir.order))

	if listOnly {
		fmt.Println()
		for _, instance := range dir.order {
			fmt.Printf("  %s (%s)\n", instance, describe(dir.entries[instance]))
		}
		return nil
	}

	// Register one provider for the whole directory; the registry asks it
	// for an accessor each time an instance needs resolving.
	sm := binder.NewServiceManager()
	resolver := dir.resolver()
	provider, err := accessor.RegisterProvider(sm, dir.instances(), func(instance string) *accessor.Accessor {
		return accessor.New(instance, resolver)
	})
	if err != nil {
		return fmt.Errorf("register provider: %w", err)
	}
	defer provider.Unregister()

	if interactive {
		return runInteractive(sm, dir)
	}

	targets := dir.instances()
	if resolveName != "" {
		targets = []string{resolveName}
	}

	fmt.Println()
	for _, instance := range targets {
		info, ok := sm.GetConnection(instance)
		if !ok {
			fmt.Printf("  %s: no connection info\n", instance)
			continue
		}
		fmt.Printf("  %s: %s\n", instance, formatConnection(info))
	}
	return nil
}

// formatConnection renders a resolved address for display.
func formatConnection(info *binder.ConnectionInfo) string {
	switch info.Family() {
	case sockaddr.FamilyVsock:
		cid, port, _ := info.VsockAddr()
		return fmt.Sprintf("vsock cid=%d port=%d", cid, port)
	case sockaddr.FamilyUnix:
		name, _ := info.UnixName()
		return fmt.Sprintf("unix %s", name)
	default:
		return fmt.Sprintf("family %d (%d bytes)", info.Family(), len(info.Sockaddr()))
	}
}

// describe renders a configured descriptor for -list output.
func describe(info accessor.ConnectionInfo) string {
	switch v := info.(type) {
	case accessor.Vsock:
		return fmt.Sprintf("vsock cid=%d port=%d", v.Addr.ContextID, v.Addr.Port)
	case accessor.Unix:
		return fmt.Sprintf("unix %s", v.Addr.Name)
	default:
		return fmt.Sprintf("%T", info)
	}
}
