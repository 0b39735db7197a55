package classifiers

import (
	"fmt"
	"net"
	"strings"
	"time"

	"hit-analytics/internal/models"

	"github.com/dgraph-io/ristretto"
)

// Config holds classification policy. All thresholds are deploy-time
// configuration, not per-request input.
type Config struct {
	AllowLocal bool
	AllowFrame bool
	IgnoreIPs  []string

	DebounceWindow    time.Duration
	DebounceCacheSize int64

	BlockedUASubstrings []string
	BlockedUAPatterns   []string
}

// Classifier assigns exactly one Disposition per hit. It runs on every
// inbound request, including attack traffic, so every check is O(1)
// amortized: no network calls, signatures precompiled at construction.
//
//go:generate mockgen -source=classifier.go -destination=./mocks/classifier_mock.go -package=mocks
type Classifier interface {
	Classify(hit *models.RawHit, meta models.RequestMeta, fp models.Fingerprint) models.Disposition
	Close()
}

type classifier struct {
	cfg        Config
	ignoreIPs  map[string]struct{}
	signatures *signatureSet
	debounce   *ristretto.Cache
}

func NewClassifier(cfg Config) (Classifier, error) {
	signatures, err := newSignatureSet(cfg.BlockedUASubstrings, cfg.BlockedUAPatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to compile UA blocklist: %w", err)
	}

	// The debounce cache is cost-bounded: one entry costs one unit, so
	// MaxCost is the entry capacity. Under pressure ristretto evicts
	// regardless of TTL, which trades dedup accuracy for bounded memory.
	debounce, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: cfg.DebounceCacheSize * 10,
		MaxCost:     cfg.DebounceCacheSize,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize debounce cache: %w", err)
	}

	ignoreIPs := make(map[string]struct{}, len(cfg.IgnoreIPs))
	for _, ip := range cfg.IgnoreIPs {
		ignoreIPs[strings.TrimSpace(ip)] = struct{}{}
	}

	return &classifier{
		cfg:        cfg,
		ignoreIPs:  ignoreIPs,
		signatures: signatures,
		debounce:   debounce,
	}, nil
}

// Classify runs the checks cheapest-first; the first match wins.
func (c *classifier) Classify(hit *models.RawHit, meta models.RequestMeta, fp models.Fingerprint) models.Disposition {
	d := c.classify(hit, meta, fp)
	metricClassifiedTotal.WithLabelValues(d.String()).Inc()
	return d
}

func (c *classifier) classify(hit *models.RawHit, meta models.RequestMeta, fp models.Fingerprint) models.Disposition {
	if !c.cfg.AllowLocal && c.isLocalOrIgnored(meta.RemoteAddr) {
		return models.DispositionFilteredLocal
	}
	if !c.cfg.AllowFrame && meta.InFrame {
		return models.DispositionFilteredFrame
	}
	if meta.Prerender {
		return models.DispositionPrerender
	}
	if c.signatures.Match(meta.UserAgent) {
		return models.DispositionBot
	}
	if c.isDuplicate(hit, fp) {
		return models.DispositionDuplicate
	}
	return models.DispositionAccepted
}

func (c *classifier) Close() {
	c.debounce.Close()
}

func (c *classifier) isLocalOrIgnored(remoteAddr string) bool {
	if _, ok := c.ignoreIPs[remoteAddr]; ok {
		return true
	}
	return IsPrivateAddr(remoteAddr)
}

// isDuplicate reports whether an identical (site, path, fingerprint) triple
// was accepted within the debounce window, and records this one if not.
func (c *classifier) isDuplicate(hit *models.RawHit, fp models.Fingerprint) bool {
	key := hit.SiteID + "\x00" + hit.Path + "\x00" + string(fp)
	if _, seen := c.debounce.Get(key); seen {
		return true
	}
	c.debounce.SetWithTTL(key, struct{}{}, 1, c.cfg.DebounceWindow)
	// Sets are buffered; wait so an immediate retry of the same triple is
	// caught. The window is a correctness boundary, not a hint.
	c.debounce.Wait()
	return false
}

// IsPrivateAddr reports whether the address (host or host:port) is in a
// private, loopback or link-local range. Unparseable addresses are treated
// as local and filtered.
func IsPrivateAddr(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return true
	}
	return ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsUnspecified()
}
