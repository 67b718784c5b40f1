package pdga

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bcds-membership/core/cache"
	"bcds-membership/core/reconcile"
	"bcds-membership/core/utils"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

var (
	// ErrNotConfigured is returned for API calls without credentials.
	ErrNotConfigured = errors.New("pdga api credentials are not configured")
	// ErrUnauthorized is returned when the API refuses a fresh credential.
	ErrUnauthorized = errors.New("pdga api refused the session")
)

// Client talks to the PDGA registry: its JSON API and its public site.
type Client struct {
	cfg      Config
	http     *http.Client
	session  *Session
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewClient creates a registry client. A nil cache disables caching.
func NewClient(cfg Config, c cache.Cache, cacheTTL time.Duration, logger *zap.Logger) *Client {
	if c == nil {
		c = cache.Noop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	client := &Client{
		cfg:      cfg,
		http:     &http.Client{Timeout: cfg.Timeout()},
		cache:    c,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
	client.session = NewSession(client.login, cfg.SessionTTL())
	return client
}

// Tournament returns the event, or nil when the registry does not know it.
func (c *Client) Tournament(ctx context.Context, id string) (*Tournament, error) {
	key := "tournament:" + id

	var cached Tournament
	if hit, err := c.cache.GetJSON(ctx, key, &cached); err != nil {
		c.logger.Warn("Tournament cache read failed", zap.String("tournament_id", id), zap.Error(err))
	} else if hit {
		return &cached, nil
	}

	var resp eventsResponse
	if err := c.getJSON(ctx, "/event?tournament_id="+url.QueryEscape(id), &resp); err != nil {
		return nil, err
	}
	if len(resp.Events) == 0 {
		return nil, nil
	}

	t := resp.Events[0]
	c.store(ctx, key, t)
	return &t, nil
}

// Player returns the registry member with number, or nil.
func (c *Client) Player(ctx context.Context, number string) (*PlayerRecord, error) {
	var resp playersResponse
	if err := c.getJSON(ctx, "/players?pdga_number="+url.QueryEscape(number), &resp); err != nil {
		return nil, err
	}
	if len(resp.Players) == 0 {
		return nil, nil
	}
	return &resp.Players[0], nil
}

// TournamentPlayers scrapes the roster of a tournament from its public page.
// Players with a registry number appear as
//
//	<td class="player"><a href="/player/89924">Ted Moens</a></td>
//
// and players without one as plain text cells.
func (c *Client) TournamentPlayers(ctx context.Context, id string) ([]reconcile.ExternalPlayerRef, error) {
	key := "tournament:" + id + ":players"

	var cached []reconcile.ExternalPlayerRef
	if hit, err := c.cache.GetJSON(ctx, key, &cached); err != nil {
		c.logger.Warn("Roster cache read failed", zap.String("tournament_id", id), zap.Error(err))
	} else if hit {
		return cached, nil
	}

	page := strings.TrimRight(c.cfg.SiteURL, "/") + "/tour/event/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, page, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tournament page %s: %w", id, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tournament page %s returned status %d", id, resp.StatusCode)
	}

	players, err := ParseRoster(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tournament page %s: %w", id, err)
	}

	c.store(ctx, key, players)
	return players, nil
}

// ParseRoster extracts the players of a tournament page. A player listed in
// several divisions is returned once.
func ParseRoster(r io.Reader) ([]reconcile.ExternalPlayerRef, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	seen := make(map[reconcile.ExternalPlayerRef]struct{})
	players := make([]reconcile.ExternalPlayerRef, 0)
	doc.Find("td.player").Each(func(_ int, cell *goquery.Selection) {
		var ref reconcile.ExternalPlayerRef

		if link := cell.Find("a").First(); link.Length() > 0 {
			ref.Name = utils.NormalizeName(link.Text())
			if href, ok := link.Attr("href"); ok {
				ref.RegistryNumber = numberFromHref(href)
			}
		} else {
			ref.Name = utils.NormalizeName(cell.Text())
		}

		if ref.Name == "" {
			return
		}
		if _, dup := seen[ref]; dup {
			return
		}
		seen[ref] = struct{}{}
		players = append(players, ref)
	})
	return players, nil
}

// numberFromHref extracts N from ".../player/N".
func numberFromHref(href string) string {
	if u, err := url.Parse(href); err == nil {
		href = u.Path
	}
	const marker = "/player/"
	i := strings.LastIndex(href, marker)
	if i < 0 {
		return ""
	}
	number, ok := utils.ParseRegistryNumber(strings.Trim(href[i+len(marker):], "/"))
	if !ok {
		return ""
	}
	return number
}

// getJSON performs an authenticated API GET. A 401/403 drops the credential
// and retries once with a fresh login.
func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	for attempt := 0; attempt < 2; attempt++ {
		cred, err := c.session.Credential(ctx)
		if err != nil {
			return err
		}

		status, err := c.doJSON(ctx, http.MethodGet, path, nil, cred, dst)
		if err != nil {
			return err
		}
		if status == http.StatusUnauthorized || status == http.StatusForbidden {
			c.logger.Info("PDGA session rejected, logging in again", zap.Int("status", status))
			c.session.Invalidate(cred)
			continue
		}
		return nil
	}
	return ErrUnauthorized
}

func (c *Client) login(ctx context.Context) (*Credential, error) {
	if c.cfg.User == "" {
		return nil, ErrNotConfigured
	}
	c.logger.Info("Logging into PDGA API")

	var cred Credential
	status, err := c.doJSON(ctx, http.MethodPost, "/user/login", loginRequest{Username: c.cfg.User, Password: c.cfg.Password}, nil, &cred)
	if err != nil {
		return nil, fmt.Errorf("pdga login failed: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("pdga login failed: %w (status %d)", ErrUnauthorized, status)
	}
	return &cred, nil
}

// doJSON sends a request and decodes a 200 response into dst. Auth failures
// are returned as a status, not an error.
func (c *Client) doJSON(ctx context.Context, method, path string, body any, cred *Credential, dst any) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(c.cfg.APIURL, "/")+path, reader)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cred != nil {
		req.Header.Set("Cookie", cred.Cookie())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("pdga request %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return resp.StatusCode, nil
	case resp.StatusCode != http.StatusOK:
		return resp.StatusCode, fmt.Errorf("pdga request %s returned status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to decode pdga response %s: %w", path, err)
	}
	return resp.StatusCode, nil
}

func (c *Client) store(ctx context.Context, key string, v any) {
	if c.cacheTTL <= 0 {
		return
	}
	if err := c.cache.SetJSON(ctx, key, v, c.cacheTTL); err != nil {
		c.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}
