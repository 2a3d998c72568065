package archsource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rookeryos/rookpkg/internal/config"
	"github.com/rookeryos/rookpkg/internal/errs"
	"github.com/rookeryos/rookpkg/internal/httputil"
)

// DefaultPKGBUILDBaseURL is the Arch Linux GitLab packaging mirror this
// client fetches raw PKGBUILD text from.
const DefaultPKGBUILDBaseURL = "https://gitlab.archlinux.org/archlinux/packaging/packages"

// DefaultSearchBaseURL is the Arch Linux package search JSON API.
const DefaultSearchBaseURL = "https://archlinux.org/packages/search/json/"

// PageSize is the fixed page size the bulk conversion driver's search
// pagination uses; a short page (fewer than PageSize results) ends the scan.
const PageSize = 250

// Client fetches PKGBUILDs and package listings from Arch Linux's public
// package sources over a secure HTTP transport.
type Client struct {
	PKGBUILDBaseURL string
	SearchBaseURL   string
	httpClient      *http.Client
}

// NewClient builds a Client using this toolkit's secure HTTP client
// conventions: compression disabled, bounded dial/TLS/header timeouts.
func NewClient() *Client {
	return &Client{
		PKGBUILDBaseURL: DefaultPKGBUILDBaseURL,
		SearchBaseURL:   DefaultSearchBaseURL,
		httpClient:      newSecureHTTPClient(),
	}
}

// newSecureHTTPClient builds the SSRF-hardened client this toolkit's
// internal/httputil provides, configured with the API timeout from §5's
// synchronous-client model.
func newSecureHTTPClient() *http.Client {
	opts := httputil.DefaultOptions()
	opts.Timeout = config.GetAPITimeout()
	return httputil.NewSecureClient(opts)
}

// FetchPKGBUILD retrieves the raw PKGBUILD text for the named package.
func (c *Client) FetchPKGBUILD(ctx context.Context, name string) (string, error) {
	url := fmt.Sprintf("%s/%s/-/raw/main/PKGBUILD", c.PKGBUILDBaseURL, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errs.Wrap(errs.KindNetwork, "building PKGBUILD request", err)
	}
	req.Header.Set("User-Agent", "rookpkg/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", WrapNetworkError(err, fmt.Sprintf("fetching PKGBUILD for %s", name))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errs.New(errs.KindNetwork, fmt.Sprintf("failed to fetch PKGBUILD for %q: HTTP %d", name, resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errs.Wrap(errs.KindIO, "reading PKGBUILD response", err)
	}

	return string(data), nil
}

// PackageInfo is one result entry from the Arch package search API.
type PackageInfo struct {
	PkgName string `json:"pkgname"`
	PkgVer  string `json:"pkgver"`
	PkgRel  string `json:"pkgrel"`
	PkgDesc string `json:"pkgdesc"`
	Repo    string `json:"repo"`
	Arch    string `json:"arch"`
}

type searchResult struct {
	Results []PackageInfo `json:"results"`
}

// FetchPackageList paginates the search endpoint for the given repository
// name (e.g. "Core", "Extra") at PageSize per page, stopping when a page
// returns fewer than PageSize results or a non-success HTTP status.
func (c *Client) FetchPackageList(ctx context.Context, repo string) ([]PackageInfo, error) {
	var packages []PackageInfo
	page := 1

	for {
		url := fmt.Sprintf("%s?repo=%s&arch=x86_64&page=%d", c.SearchBaseURL, repo, page)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return packages, errs.Wrap(errs.KindNetwork, "building search request", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return packages, WrapNetworkError(err, fmt.Sprintf("fetching %s page %d", repo, page))
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			break
		}

		var result searchResult
		err = json.NewDecoder(resp.Body).Decode(&result)
		resp.Body.Close()
		if err != nil {
			return packages, errs.Wrap(errs.KindMalformedInput, "parsing search response", err)
		}

		if len(result.Results) == 0 {
			break
		}

		packages = append(packages, result.Results...)

		if len(result.Results) < PageSize {
			break
		}

		page++

		select {
		case <-ctx.Done():
			return packages, ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}

	return packages, nil
}
