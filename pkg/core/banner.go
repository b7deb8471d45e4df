package core

import "fmt"

// PrintBanner prints the gnatfinder ASCII banner to stdout.
func PrintBanner() {
	banner := `
  ____ _   _    _  _____
 / ___| \ | |  / \|_   _|
| |  _|  \| | / _ \ | |
| |_| | |\  |/ ___ \| |
 \____|_| \_/_/   \_\_|

    second-order causal activity graphs
    ────────────────────────────────────
`
	fmt.Print(banner)
}
