// rolegen generates rolelists from scripts.
//
// Usage:
//
//	rolegen generate [script|-] --catalog roles.yaml [--seed N] [--runs N]
//	rolegen check    [script|-] --db roles.db
//	rolegen import   --catalog roles.yaml --db roles.db
//	rolegen roles    --db roles.db [--faction Town]
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
