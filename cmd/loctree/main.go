// Command loctree is the CLI entrypoint. All command logic lives under
// cmd/loctree/root and cmd/loctree/<name>; main only exits with the code
// root.Execute returns.
package main

import (
	"os"

	"github.com/1homsi/loctree/cmd/loctree/root"
)

func main() {
	os.Exit(root.Execute())
}
