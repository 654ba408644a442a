package duckduckgo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-kratos/blades/tools"

	"github.com/riskreporter/service"
	"github.com/riskreporter/utils"
)

func init() {
	service.RegisterOptionsParser(service.DuckDuckGo, func(meta *toml.MetaData, primitive toml.Primitive) (interface{}, error) {
		return service.ParseOptions[Options](meta, primitive, service.DuckDuckGo)
	})

	service.RegisterService(service.DuckDuckGo, func(meta service.ServiceMeta, opts interface{}) (service.Service, error) {
		ddgOpts, ok := opts.(*Options)
		if !ok {
			return nil, fmt.Errorf("invalid duckduckgo options type, got %T", opts)
		}
		return NewService(meta, ddgOpts), nil
	})
}

// Options configure the DuckDuckGo Instant Answer client.
type Options struct {
	// BaseURL overrides the API endpoint. Tests point it at a fake.
	BaseURL    string         `toml:"base_url"`
	UserAgent  string         `toml:"user_agent"`
	MaxResults int            `toml:"max_results"`
	Timeout    utils.Duration `toml:"timeout"`
}

func (o *Options) applyDefaults() {
	if o.BaseURL == "" {
		o.BaseURL = "https://api.duckduckgo.com/"
	}
	if o.UserAgent == "" {
		o.UserAgent = "riskreporter/1.0"
	}
	if o.MaxResults <= 0 {
		o.MaxResults = 8
	}
	if o.Timeout.Duration == 0 {
		o.Timeout.Duration = 15 * time.Second
	}
}

// Service is the web search capability handed to the scout agent.
type Service struct {
	name        string
	description string
	opts        *Options
	client      *http.Client
}

func NewService(meta service.ServiceMeta, opts *Options) *Service {
	opts.applyDefaults()
	return &Service{
		name:        meta.Name,
		description: meta.Description,
		opts:        opts,
		client:      &http.Client{Timeout: opts.Timeout.Duration},
	}
}

func (s *Service) Name() string {
	return s.name
}

func (s *Service) Description() string {
	if s.description != "" {
		return s.description
	}
	return "Search for latest cyber security news with source links."
}

func (s *Service) Type() service.ServiceType {
	return service.DuckDuckGo
}

// instant answer API response, reduced to the fields we read
type apiResponse struct {
	Heading        string      `json:"Heading"`
	Abstract       string      `json:"Abstract"`
	AbstractText   string      `json:"AbstractText"`
	AbstractURL    string      `json:"AbstractURL"`
	AbstractSource string      `json:"AbstractSource"`
	Results        []apiResult `json:"Results"`
	RelatedTopics  []apiTopic  `json:"RelatedTopics"`
}

type apiResult struct {
	Text     string `json:"Text"`
	FirstURL string `json:"FirstURL"`
}

type apiTopic struct {
	Text     string     `json:"Text"`
	FirstURL string     `json:"FirstURL"`
	Topics   []apiTopic `json:"Topics"`
}

// Search runs one query and returns a best-effort text blob of
// "title - url" lines for the agent to read. It never shapes the
// results beyond that.
func (s *Service) Search(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")

	endpoint := strings.TrimRight(s.opts.BaseURL, "/") + "/?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("User-Agent", s.opts.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("search request: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read search response: %w", err)
	}

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("parse search response: %w", err)
	}

	return s.format(parsed), nil
}

func (s *Service) format(parsed apiResponse) string {
	var lines []string

	if parsed.Abstract != "" && parsed.AbstractURL != "" {
		lines = append(lines, fmt.Sprintf("%s - %s\n  %s", parsed.AbstractSource, parsed.AbstractURL, parsed.AbstractText))
	}

	for _, r := range parsed.Results {
		if len(lines) >= s.opts.MaxResults {
			break
		}
		if r.FirstURL != "" {
			lines = append(lines, fmt.Sprintf("%s - %s", r.Text, r.FirstURL))
		}
	}

	lines = appendTopics(lines, parsed.RelatedTopics, s.opts.MaxResults)

	if len(lines) == 0 {
		return "No results found."
	}
	return strings.Join(lines, "\n")
}

func appendTopics(lines []string, topics []apiTopic, max int) []string {
	for _, t := range topics {
		if len(lines) >= max {
			break
		}
		if t.FirstURL != "" && t.Text != "" {
			lines = append(lines, fmt.Sprintf("%s - %s", t.Text, t.FirstURL))
			continue
		}
		// disambiguation groups nest their topics one level down
		if len(t.Topics) > 0 {
			lines = appendTopics(lines, t.Topics, max)
		}
	}
	return lines
}

// AsTool exposes the search capability to the scout agent.
func (s *Service) AsTool() (tools.Tool, error) {
	return &searchTool{svc: s}, nil
}

func (s *Service) Health(ctx context.Context) error {
	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := s.Search(healthCtx, "connectivity check"); err != nil {
		return fmt.Errorf("duckduckgo health check failed: %w", err)
	}
	return nil
}

func (s *Service) Close() error {
	s.client.CloseIdleConnections()
	return nil
}
