// Package nistparser reads the NIST atomic weights and isotopic compositions
// table, either from the remote query service or from a downloaded text dump.
package nistparser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/stemerlini/fusion-plots/logging"
	"github.com/stemerlini/fusion-plots/metrics"
	"golang.org/x/text/encoding/charmap"
)

// DefaultURL queries every element with the isotopes NIST lists as "some".
const DefaultURL = "https://physics.nist.gov/cgi-bin/Compositions/stand_alone.pl?ele=&ascii=ascii2&isotype=some"

// Downloader retrieves the NIST line stream over HTTP.
type Downloader struct {
	client *http.Client
}

// NewDownloader creates a downloader whose requests give up after timeout.
func NewDownloader(timeout time.Duration) *Downloader {
	return &Downloader{
		client: &http.Client{Timeout: timeout},
	}
}

// NewDownloaderWithClient uses the given client as is.
func NewDownloaderWithClient(client *http.Client) *Downloader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Downloader{client: client}
}

// Fetch issues a GET to url and returns the response body split into lines.
// Anything but 200 OK is reported as a *TransportError before the body is read.
func (d *Downloader) Fetch(ctx context.Context, url string) ([]string, error) {
	start := time.Now()
	defer func() {
		metrics.FetchDuration.Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	response, err := d.client.Do(req)
	if err != nil {
		metrics.FetchFailuresTotal.WithLabelValues("error").Inc()
		return nil, &TransportError{URL: url, Err: err}
	}
	defer func() {
		if err := response.Body.Close(); err != nil {
			logging.Warn("Failed to close response body", "error", err)
		}
	}()

	if response.StatusCode != http.StatusOK {
		metrics.FetchFailuresTotal.WithLabelValues(strconv.Itoa(response.StatusCode)).Inc()
		return nil, &TransportError{URL: url, StatusCode: response.StatusCode}
	}

	bodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	// The service answers in UTF-8, older mirrors in ISO-8859-1
	var reader io.Reader
	if utf8.Valid(bodyBytes) {
		reader = bytes.NewReader(bodyBytes)
	} else {
		logging.Debug("Response body is not UTF-8, decoding as ISO-8859-1", "url", url)
		reader = charmap.ISO8859_1.NewDecoder().Reader(bytes.NewReader(bodyBytes))
	}

	lines, err := readLines(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to split response from %s: %w", url, err)
	}

	logging.Debug(fmt.Sprintf("%s downloaded without errors", url), "lines", len(lines))
	return lines, nil
}
