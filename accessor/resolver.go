package accessor

// StaticResolver returns a Resolver backed by a fixed instance table. The
// table is copied, so later mutation of the argument has no effect; the
// returned resolver is safe for concurrent calls.
func StaticResolver(services map[string]ConnectionInfo) Resolver {
	table := make(map[string]ConnectionInfo, len(services))
	for instance, info := range services {
		table[instance] = info
	}
	return func(instance string) ConnectionInfo {
		return table[instance]
	}
}
