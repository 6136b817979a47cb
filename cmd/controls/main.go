// controls inspects and edits the game's key bindings file.
//
// Usage:
//
//	controls show [--profile name]     - Show the bindings of a profile
//	controls rebind <action> <key>...  - Bind keys to an action and save
//	controls reset                     - Restore the default bindings and save
//	controls keys                      - List every key name
//	controls use <profile>             - Switch the active profile and save
//	controls export [--copy]           - Print the controls file
//
// Global flags:
//
//	--file <path>        - Controls file (default: config/controls.json)
//	--log-level <level>  - debug, info, warn, error
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
