// Package archsource fetches PKGBUILDs and package listings from Arch
// Linux's public package sources.
package archsource

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"net/url"
	"strings"

	"github.com/rookeryos/rookpkg/internal/errs"
)

// classifyNetwork examines an error and returns the most specific network
// failure cause, by unwrapping DNS/TLS/OpError/url.Error chains. Grounded on
// this toolkit's registry-client classification idiom; internal/errmsg
// mirrors it with its own enum for CLI-facing suggestions.
func classifyNetwork(err error) string {
	if err == nil {
		return "network"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	if errors.Is(err, context.Canceled) {
		return "network"
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return "timeout"
		}
		return "dns"
	}

	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return "tls"
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Timeout() {
			return "timeout"
		}
		var innerDNS *net.DNSError
		if errors.As(opErr.Err, &innerDNS) {
			return "dns"
		}
		return "connection"
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return "timeout"
		}
		msg := strings.ToLower(urlErr.Err.Error())
		if strings.Contains(msg, "certificate") || strings.Contains(msg, "tls") || strings.Contains(msg, "x509") {
			return "tls"
		}
		return classifyNetwork(urlErr.Err)
	}

	return "network"
}

// WrapNetworkError wraps a transport-level error as a structured
// errs.Error of kind Network, classifying the underlying cause for the
// CLI-facing error formatter.
func WrapNetworkError(err error, message string) *errs.Error {
	return errs.Wrap(errs.KindNetwork, message+" ("+classifyNetwork(err)+")", err)
}
