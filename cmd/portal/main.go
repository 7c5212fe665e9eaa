// Command portal is the employee portal client.
//
// Usage:
//
//	portal login -u <username>
//	portal dashboard
//	portal complaints list
//	portal notifications list
//	portal watch
//
// Configuration is read from ./portal.yaml (or CONFIG_PATH), .env and the
// environment; see internal/config.
package main

import "github.com/Eiad-Soufan/bm-requests-frontend/internal/transport/cli"

func main() {
	cli.Execute()
}
