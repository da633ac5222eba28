// Command toon is a CLI for the Token-Oriented Object Notation format:
// converting to and from JSON and YAML, and querying documents by path.
package main

import "github.com/go-toon/toon/cmd/toon/cmd"

func main() {
	cmd.Execute()
}
