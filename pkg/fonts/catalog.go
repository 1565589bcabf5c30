package fonts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sina-salahshour/homer/internal/logger"
	"gopkg.in/yaml.v3"
)

// ErrUnexpectedStatus is returned for any non-2xx HTTP response.
var ErrUnexpectedStatus = errors.New("unexpected status code")

// CatalogClient fetches the font list and the current release version.
type CatalogClient struct {
	client *http.Client
}

func NewCatalogClient() *CatalogClient {
	return &CatalogClient{
		client: defaultClient,
	}
}

type catalogDocument struct {
	Fonts Catalog `json:"fonts"`
}

// FetchCatalog downloads and decodes the JSON catalog at url.
func (c *CatalogClient) FetchCatalog(ctx context.Context, url string) (Catalog, error) {
	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching font catalog: %w", err)
	}
	defer resp.Body.Close()

	var doc catalogDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding font catalog from %s: %w", url, err)
	}

	logger.Debug("[DEBUG] Catalog lists %d fonts\n", len(doc.Fonts))
	return doc.Fonts, nil
}

// FetchReleaseInfo downloads the YAML release descriptor at url and extracts
// the current version.
func (c *CatalogClient) FetchReleaseInfo(ctx context.Context, url string) (ReleaseInfo, error) {
	resp, err := c.get(ctx, url)
	if err != nil {
		return ReleaseInfo{}, fmt.Errorf("fetching release info: %w", err)
	}
	defer resp.Body.Close()

	var info ReleaseInfo
	if err := yaml.NewDecoder(resp.Body).Decode(&info); err != nil {
		return ReleaseInfo{}, fmt.Errorf("decoding release info from %s: %w", url, err)
	}

	// Archive URLs are built as v<version>; accept descriptors that already carry the prefix
	info.CurrentVersion = strings.TrimPrefix(strings.TrimSpace(info.CurrentVersion), "v")
	if info.CurrentVersion == "" {
		return ReleaseInfo{}, fmt.Errorf("decoding release info from %s: current_version is missing", url)
	}

	logger.Debug("[DEBUG] Current release is v%s\n", info.CurrentVersion)
	return info, nil
}

func (c *CatalogClient) get(ctx context.Context, url string) (*http.Response, error) {
	return httpGet(ctx, c.client, url)
}

func httpGet(ctx context.Context, client *http.Client, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", "homer/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("requesting %s: %w: %d", url, ErrUnexpectedStatus, resp.StatusCode)
	}
	return resp, nil
}
