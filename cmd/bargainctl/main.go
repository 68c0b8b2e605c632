// Command bargainctl inspects and edits the local rating store and previews
// coupon and timeline computations.
package main

import (
	"os"

	"bargainbay/internal/config"
)

func main() {
	root := newRootCmd(func(args []string) (config.Config, error) {
		return config.LoadArgs(args)
	})
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
