// Command flarectl fetches DONKI flares and reports the most significant one.
package main

import "github.com/couchcryptid/solar-flare-service/internal/cli"

func main() {
	cli.Execute()
}
