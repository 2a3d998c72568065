package main

import (
	"fmt"
	"os"

	"github.com/rookeryos/rookpkg/internal/errmsg"
)

// printProgress prints an in-progress status line (→) unless quiet mode is
// enabled.
func printProgress(format string, a ...interface{}) {
	if !quietFlag {
		fmt.Printf("→ "+format+"\n", a...)
	}
}

// printSuccess prints a completed-step status line (✓) unless quiet mode is
// enabled.
func printSuccess(format string, a ...interface{}) {
	if !quietFlag {
		fmt.Printf("✓ "+format+"\n", a...)
	}
}

// printWarning prints a soft-warning status line (!). Shown even in quiet
// mode, since it signals a degraded but non-fatal outcome.
func printWarning(format string, a ...interface{}) {
	fmt.Printf("! "+format+"\n", a...)
}

// printNextSteps prints a trailing hint block pointing at follow-up work the
// CLI itself doesn't automate, such as regenerating the checksum placeholder
// a conversion leaves behind.
func printNextSteps(lines ...string) {
	if quietFlag || len(lines) == 0 {
		return
	}
	fmt.Println("\nNext steps:")
	for _, line := range lines {
		fmt.Printf("  - %s\n", line)
	}
}

// printError writes a formatted error with its suggestions to stderr.
func printError(err error) {
	errmsg.Fprint(os.Stderr, err)
}
