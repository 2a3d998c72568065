// Package errmsg formats errors with actionable suggestions for the CLI
// boundary, classifying both rookpkg's own structured errors (internal/errs)
// and raw network failures the same way this toolkit's registry client does.
package errmsg

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"

	"github.com/rookeryos/rookpkg/internal/errs"
)

// ErrorContext provides additional context for error formatting.
type ErrorContext struct {
	// PackageName is the upstream package name being converted, if any.
	PackageName string
}

// Format returns a formatted error message with possible causes and
// suggestions. ctx may be nil for generic formatting.
func Format(err error, ctx *ErrorContext) string {
	if err == nil {
		return ""
	}

	var structured *errs.Error
	if errors.As(err, &structured) {
		return formatByKind(structured, ctx)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return formatNetworkError(netErr)
	}

	return err.Error()
}

// Fprint writes the formatted error to w, trailing a newline.
func Fprint(w *os.File, err error) {
	fmt.Fprintln(w, Format(err, nil))
}

func formatByKind(e *errs.Error, ctx *ErrorContext) string {
	var sb strings.Builder
	sb.WriteString(e.Error())
	sb.WriteString("\n")

	switch e.Kind {
	case errs.KindNetwork:
		classified := classifyNetwork(e.Err)
		sb.WriteString(networkSuggestions(classified))
	case errs.KindSkipList:
		sb.WriteString("\nPossible causes:\n  - This package maps to a system component rookpkg does not convert\n")
		sb.WriteString("\nSuggestions:\n  - Skip it; this is expected for kernels, toolchains, and distro-specific tooling\n")
	case errs.KindMissingKey:
		sb.WriteString("\nPossible causes:\n  - No signing key is configured for this repository\n")
		sb.WriteString("\nSuggestions:\n  - Place a public key under the master-keys or packager-keys directory\n  - Or place one at ~/.config/rookpkg/signing-key.pub\n")
	case errs.KindAlreadyExists:
		sb.WriteString("\nPossible causes:\n  - A repository already exists at this path\n")
		sb.WriteString("\nSuggestions:\n  - Use 'repo refresh' to rebuild an existing repository instead of 'repo init'\n")
	case errs.KindNotARepository:
		sb.WriteString("\nPossible causes:\n  - The target directory has no repo.toml\n")
		sb.WriteString("\nSuggestions:\n  - Run 'repo init' first\n")
	case errs.KindParse, errs.KindMalformedInput:
		sb.WriteString("\nPossible causes:\n  - The input does not match the expected shell or TOML/JSON shape\n")
		sb.WriteString("\nSuggestions:\n  - Inspect the offending file; the parser degrades gracefully but cannot recover arbitrary syntax\n")
	case errs.KindSignature:
		sb.WriteString("\nPossible causes:\n  - The signature does not match the signed content\n  - The wrong public key was resolved\n")
		sb.WriteString("\nSuggestions:\n  - Re-run the signing step with the correct key\n")
	case errs.KindIO:
		sb.WriteString("\nPossible causes:\n  - Insufficient permissions or missing directory\n")
		sb.WriteString("\nSuggestions:\n  - Check file ownership and permissions at the target path\n")
	}

	if ctx != nil && ctx.PackageName != "" && e.Kind == errs.KindNetwork {
		sb.WriteString(fmt.Sprintf("  - Retry 'convert arch %s' once connectivity is restored\n", ctx.PackageName))
	}

	return sb.String()
}

func formatNetworkError(err net.Error) string {
	var sb strings.Builder
	sb.WriteString(err.Error())
	sb.WriteString("\n")
	sb.WriteString(networkSuggestions(classifyNetwork(err)))
	return sb.String()
}

type networkClass int

const (
	classGeneric networkClass = iota
	classTimeout
	classDNS
	classTLS
	classConnection
)

// classifyNetwork mirrors this toolkit's registry-client classification:
// unwrap DNS/TLS/OpError/url.Error to find the most specific cause.
func classifyNetwork(err error) networkClass {
	if err == nil {
		return classGeneric
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return classTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return classTimeout
		}
		return classDNS
	}

	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return classTLS
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Timeout() {
			return classTimeout
		}
		var innerDNS *net.DNSError
		if errors.As(opErr.Err, &innerDNS) {
			return classDNS
		}
		return classConnection
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return classTimeout
		}
		msg := strings.ToLower(urlErr.Err.Error())
		if strings.Contains(msg, "certificate") || strings.Contains(msg, "tls") || strings.Contains(msg, "x509") {
			return classTLS
		}
		return classifyNetwork(urlErr.Err)
	}

	return classGeneric
}

func networkSuggestions(c networkClass) string {
	var sb strings.Builder
	sb.WriteString("\nPossible causes:\n")
	switch c {
	case classTimeout:
		sb.WriteString("  - Request timed out\n  - Slow or unstable network connection\n")
	case classDNS:
		sb.WriteString("  - DNS resolution failure\n")
	case classTLS:
		sb.WriteString("  - TLS certificate validation failed; check your system clock\n")
	case classConnection:
		sb.WriteString("  - Connection refused or reset by the remote host\n")
	default:
		sb.WriteString("  - Network connectivity issue\n")
	}
	sb.WriteString("\nSuggestions:\n  - Check your internet connection\n  - Try again in a few minutes\n")
	return sb.String()
}
