// Command prefix evaluates prefix-notation expressions over x, y, and z.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
