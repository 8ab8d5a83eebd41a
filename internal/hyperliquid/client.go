package hyperliquid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// DefaultURL is the Hyperliquid info endpoint.
const DefaultURL = "https://api.hyperliquid.xyz/info"

const (
	snapshotKey        = "metaAndAssetCtxs"
	defaultTimeout     = 10 * time.Second
	defaultSnapshotTTL = 30 * time.Second
)

// Quote is one instrument's market context.
type Quote struct {
	FundingRatePercent float64 // hourly funding rate, percent
	MarkPrice          float64
}

// The info endpoint answers metaAndAssetCtxs with a two-element array:
// element 0 lists the universe, element 1 lists market contexts at the
// same indices.
type asset struct {
	Name string `json:"name"`
}

type meta struct {
	Universe []asset `json:"universe"`
}

type assetCtx struct {
	Funding string `json:"funding"`
	MarkPx  string `json:"markPx"`
}

type snapshot struct {
	universe []asset
	ctxs     []assetCtx
}

// Client fetches funding data from the Hyperliquid info API.
// The decoded snapshot is cached for a short TTL so a broadcast fan-out
// costs one upstream request.
type Client struct {
	url   string
	httpc *http.Client
	cache *gocache.Cache
	log   *zap.Logger
}

func New(url string, timeout, snapshotTTL time.Duration, log *zap.Logger) *Client {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if snapshotTTL <= 0 {
		snapshotTTL = defaultSnapshotTTL
	}
	return &Client{
		url:   url,
		httpc: &http.Client{Timeout: timeout},
		cache: gocache.New(snapshotTTL, 2*snapshotTTL),
		log:   log,
	}
}

// Fetch returns the quote for symbol. exists is false when the symbol is not
// listed in the universe; err covers transport and decode failures only.
func (c *Client) Fetch(ctx context.Context, symbol string) (Quote, bool, error) {
	snap, err := c.snapshot(ctx)
	if err != nil {
		return Quote{}, false, err
	}
	for i, a := range snap.universe {
		if a.Name != symbol {
			continue
		}
		if i >= len(snap.ctxs) {
			return Quote{}, false, fmt.Errorf("no market context at index %d for %s", i, symbol)
		}
		cx := snap.ctxs[i]
		funding, err := strconv.ParseFloat(cx.Funding, 64)
		if err != nil {
			return Quote{}, false, fmt.Errorf("parse funding %q: %w", cx.Funding, err)
		}
		price, err := strconv.ParseFloat(cx.MarkPx, 64)
		if err != nil {
			return Quote{}, false, fmt.Errorf("parse markPx %q: %w", cx.MarkPx, err)
		}
		// The API reports funding as a decimal fraction per hour.
		return Quote{FundingRatePercent: funding * 100, MarkPrice: price}, true, nil
	}
	return Quote{}, false, nil
}

// Exists reports whether symbol is listed in the universe, without reading
// its market context. Used to validate a symbol before subscribing.
func (c *Client) Exists(ctx context.Context, symbol string) (bool, error) {
	snap, err := c.snapshot(ctx)
	if err != nil {
		return false, err
	}
	for _, a := range snap.universe {
		if a.Name == symbol {
			return true, nil
		}
	}
	return false, nil
}

func (c *Client) snapshot(ctx context.Context) (*snapshot, error) {
	if v, ok := c.cache.Get(snapshotKey); ok {
		return v.(*snapshot), nil
	}

	body, err := json.Marshal(map[string]string{"type": "metaAndAssetCtxs"})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hyperliquid request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hyperliquid: unexpected status %d", resp.StatusCode)
	}

	var envelope []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if len(envelope) < 2 {
		return nil, fmt.Errorf("envelope has %d elements, want 2", len(envelope))
	}
	var m meta
	if err := json.Unmarshal(envelope[0], &m); err != nil {
		return nil, fmt.Errorf("decode universe: %w", err)
	}
	var ctxs []assetCtx
	if err := json.Unmarshal(envelope[1], &ctxs); err != nil {
		return nil, fmt.Errorf("decode asset contexts: %w", err)
	}

	snap := &snapshot{universe: m.Universe, ctxs: ctxs}
	c.cache.SetDefault(snapshotKey, snap)
	c.log.Debug("refreshed market snapshot", zap.Int("assets", len(snap.universe)))
	return snap, nil
}
