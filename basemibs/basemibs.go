// Package basemibs bundles the foundational MIB modules every store
// loads at startup: the SMI base definitions, textual conventions, and
// the standard MIB-II / SNMPv2 module set.
package basemibs

import (
	"embed"
	"fmt"
)

//go:embed data
var files embed.FS

// names is the load order. Modules that define MACROs and OID roots come
// first so later modules compile against them.
var names = []string{
	"SNMPv2-SMI",
	"SNMPv2-TC",
	"RFC1155-SMI",
	"RFC1158-MIB",
	"RFC1212-MIB",
	"RFC1213-MIB",
	"SNMPv2-CONF",
	"SNMPv2-MIB",
	"INET-ADDRESS-MIB",
}

// Names returns the bundled module names in load order.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// ReadModule returns the bundled text of the named base module.
func ReadModule(name string) ([]byte, error) {
	data, err := files.ReadFile("data/" + name + ".mib")
	if err != nil {
		return nil, fmt.Errorf("basemibs: %s: %w", name, err)
	}
	return data, nil
}
