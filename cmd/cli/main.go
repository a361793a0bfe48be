// Command cli is the policyctl binary.
package main

import (
	"os"

	"bi-demo/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
