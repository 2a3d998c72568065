package main

import (
	"os"

	"github.com/rookeryos/rookpkg/internal/errs"
)

// Exit codes for different error kinds (§13). These let scripts distinguish
// failure modes without parsing stderr.
const (
	ExitSuccess        = 0
	ExitGeneral        = 1
	ExitUsage          = 2
	ExitIO             = 3
	ExitNetwork        = 4
	ExitParse          = 5
	ExitSignature      = 6
	ExitSkipList       = 7
	ExitMissingKey     = 8
	ExitAlreadyExists  = 9
	ExitNotARepository = 10
)

// exitCodeForKind maps a structured error kind to its process exit code.
// KindMalformedInput shares ExitParse with KindParse (§13).
func exitCodeForKind(kind errs.Kind) int {
	switch kind {
	case errs.KindIO:
		return ExitIO
	case errs.KindNetwork:
		return ExitNetwork
	case errs.KindParse, errs.KindMalformedInput:
		return ExitParse
	case errs.KindSignature:
		return ExitSignature
	case errs.KindSkipList:
		return ExitSkipList
	case errs.KindMissingKey:
		return ExitMissingKey
	case errs.KindAlreadyExists:
		return ExitAlreadyExists
	case errs.KindNotARepository:
		return ExitNotARepository
	default:
		return ExitGeneral
	}
}

// exitWithCode exits the process with the given code.
func exitWithCode(code int) {
	os.Exit(code)
}
