package registry

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL veřejný REST endpoint ARES v2 (zdroj Obchodní rejstřík).
const DefaultBaseURL = "https://ares.gov.cz/ekonomicke-subjekty-v2/ekonomicke-subjekty"

// DefaultUserAgent identifikace klienta vůči ARES.
const DefaultUserAgent = "cz-name-checker/1.3 (+contact: owner@example.com)"

// Record jeden záznam ekonomického subjektu vrácený rejstříkem.
// ICO je volitelné; záznam bez IČO se ponechává, záznam bez názvu nikoli.
type Record struct {
	Name string `json:"name"`
	ICO  string `json:"ico,omitempty"`
}

// RetryConfig konfigurace opakovaných pokusů s exponenciálním čekáním.
type RetryConfig struct {
	MaxRetries        int
	InitialDelay      time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64
}

// DefaultRetryConfig vrátí výchozí konfiguraci opakování: 3 opakování
// po prvním pokusu, počáteční prodleva 1.2 s, zdvojnásobení.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:        3,
		InitialDelay:      1200 * time.Millisecond,
		MaxDelay:          15 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// Client HTTP klient pro vyhledávání v ARES.
type Client struct {
	baseURL     string
	userAgent   string
	httpClient  *http.Client
	retryConfig RetryConfig
	limiter     *rate.Limiter
	logger      *slog.Logger
}

// NewClient vytvoří nového klienta ARES. Prázdné baseURL znamená veřejný
// endpoint ARES v2.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}

	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxConnsPerHost:     5,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 5,
	}

	return &Client{
		baseURL:     baseURL,
		userAgent:   DefaultUserAgent,
		retryConfig: DefaultRetryConfig(),
		// ARES je veřejná služba, držíme se pod 5 dotazy za sekundu.
		limiter: rate.NewLimiter(rate.Limit(5), 5),
		logger:  logger,
		httpClient: &http.Client{
			Timeout:   20 * time.Second,
			Transport: transport,
		},
	}
}

// SetRetryConfig nastaví konfiguraci opakovaných pokusů.
func (c *Client) SetRetryConfig(rc RetryConfig) {
	c.retryConfig = rc
}

// SetRateLimit nastaví maximální počet dotazů za sekundu.
func (c *Client) SetRateLimit(perSecond float64) {
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
}

// Search vyhledá ekonomické subjekty podle obchodního jména. Při selhání
// sítě, ne-2xx odpovědi nebo nečitelném těle opakuje pokus s exponenciálním
// čekáním; po vyčerpání pokusů vrátí chybu. Volající v RobustSearch ji
// převádí na měkké selhání (prázdný korpus + varování).
func (c *Client) Search(ctx context.Context, term string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 60
	}

	params := url.Values{}
	params.Set("obchodniJmeno", term)
	params.Set("pocet", strconv.Itoa(limit))
	params.Set("razeni", "obchodniJmeno@asc")
	params.Set("zdroj", "OR")
	requestURL := c.baseURL + "?" + params.Encode()

	var lastErr error
	delay := c.retryConfig.InitialDelay

	for attempt := 0; attempt <= c.retryConfig.MaxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Warn("ARES retry",
				"term", term,
				"attempt", attempt,
				"max_retries", c.retryConfig.MaxRetries,
				"delay", delay.String(),
				"error", lastErr,
			)
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("ares search cancelled: %w", ctx.Err())
			case <-time.After(delay):
			}
			delay = time.Duration(float64(delay) * c.retryConfig.BackoffMultiplier)
			if delay > c.retryConfig.MaxDelay {
				delay = c.retryConfig.MaxDelay
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("ares rate limiter: %w", err)
		}

		records, err := c.doSearch(ctx, requestURL)
		if err != nil {
			lastErr = err
			continue
		}
		return records, nil
	}

	return nil, fmt.Errorf("ares search %q failed after %d attempts: %w",
		term, c.retryConfig.MaxRetries+1, lastErr)
}

// doSearch provede jeden HTTP pokus a znormalizuje odpověď na []Record.
func (c *Client) doSearch(ctx context.Context, requestURL string) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("ares returned status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	return parseBody(resp.Header.Get("Content-Type"), body)
}

// aresSubject jeden subjekt v JSON odpovědi ARES. Název může přijít v poli
// obchodniJmeno nebo obchodniJmenoText, IČO jako řetězec i číslo.
type aresSubject struct {
	ObchodniJmeno     string     `json:"obchodniJmeno"`
	ObchodniJmenoText string     `json:"obchodniJmenoText"`
	ICO               flexibleID `json:"ico"`
}

// aresJSONResponse JSON odpověď ARES v2; starší tvar používá pole vysledky.
type aresJSONResponse struct {
	EkonomickeSubjekty []aresSubject `json:"ekonomickeSubjekty"`
	Vysledky           []aresSubject `json:"vysledky"`
}

// aresXMLResponse zjednodušené schéma legacy XML odpovědi.
type aresXMLResponse struct {
	Zaznamy []struct {
		ObchodniFirma string `xml:"Obchodni_firma"`
		ICO           string `xml:"ICO"`
	} `xml:"Odpoved>Zaznam"`
}

// flexibleID toleruje identifikátor zapsaný jako JSON řetězec i číslo.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == "" {
		*f = ""
		return nil
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*f = flexibleID(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexibleID(n.String())
	return nil
}

// parseBody znormalizuje JSON i legacy XML tělo na jednotný tvar []Record.
func parseBody(contentType string, body []byte) ([]Record, error) {
	mediaType := contentType
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		mediaType = mt
	}

	if strings.Contains(mediaType, "xml") {
		return parseXMLBody(body)
	}

	var decoded aresJSONResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		// Některé brány vracejí XML bez správného Content-Type.
		if records, xmlErr := parseXMLBody(body); xmlErr == nil {
			return records, nil
		}
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	subjects := decoded.EkonomickeSubjekty
	if len(subjects) == 0 {
		subjects = decoded.Vysledky
	}

	records := make([]Record, 0, len(subjects))
	for _, s := range subjects {
		name := s.ObchodniJmeno
		if name == "" {
			name = s.ObchodniJmenoText
		}
		if name == "" {
			continue
		}
		records = append(records, Record{Name: name, ICO: string(s.ICO)})
	}
	return records, nil
}

func parseXMLBody(body []byte) ([]Record, error) {
	var decoded aresXMLResponse
	if err := xml.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode xml response: %w", err)
	}

	records := make([]Record, 0, len(decoded.Zaznamy))
	for _, z := range decoded.Zaznamy {
		name := strings.TrimSpace(z.ObchodniFirma)
		if name == "" {
			continue
		}
		records = append(records, Record{Name: name, ICO: strings.TrimSpace(z.ICO)})
	}
	return records, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
