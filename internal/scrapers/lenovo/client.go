// client.go talks to the pcsupport ibase info endpoint, everything past the
// HTTP call lives in the pure functions of this package.

package lenovo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"lenovo-report/internal/components/assert"
	"lenovo-report/internal/components/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

const (
	report_client_lookup     = "client.lookup"
	report_client_extract    = "client.extract"
	report_client_parse_spec = "client.parse-spec"
)

const ibaseInfoPath = "/api/v4/upsell/redport/getIbaseInfo"

var tracer = otel.Tracer("lenovo-report/scrapers/lenovo")

var lookupCounter, _ = otel.Meter("lenovo-report/scrapers/lenovo").Int64Counter(
	"lenovo.lookups",
	metric.WithDescription("ibase info lookups by outcome"),
)

type ClientOptions struct {
	// BaseUrl is the locale root, ex. https://pcsupport.lenovo.com/us/en
	BaseUrl   string
	UserAgent string
	Country   string
	Language  string
	Timeout   time.Duration
	// CloudflareBypass swaps the transport for one that mimics a browser TLS handshake.
	CloudflareBypass bool
	// HttpDump receives every HTTP exchange while debug logging is on, it may be nil.
	HttpDump telemetry.InstrumentOutput
}

type Client struct {
	baseUrl  string
	country  string
	language string
	http     *resty.Client
	tel      telemetry.API
}

func NewClient(opts ClientOptions, tel telemetry.API) (*Client, error) {
	assert.NotNil(tel, "tel")
	assert.NotEmptyStr(opts.BaseUrl, "opts.BaseUrl")

	tel = telemetry.NewScopedAPI("lenovo_client", tel)

	baseUrl := strings.TrimSuffix(opts.BaseUrl, "/")
	parsed, err := url.Parse(baseUrl)
	if err != nil {
		return nil, err
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", opts.BaseUrl)
	}

	country := opts.Country
	if country == "" {
		country = "us"
	}
	language := opts.Language
	if language == "" {
		language = "en"
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(baseUrl)
	if opts.CloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}
	httpClient.SetHeaders(map[string]string{
		"Accept":       "application/json, text/plain, */*",
		"Content-Type": "application/json",
		"Origin":       baseUrl,
		"Referer":      baseUrl + "/warranty-lookup",
	})
	if opts.UserAgent != "" {
		httpClient.SetHeader("User-Agent", opts.UserAgent)
	}
	httpClient.SetTimeout(timeout)

	telemetry.InstrumentResty(httpClient, tel, "lenovo-report/scrapers/lenovo/http", opts.HttpDump)

	return &Client{
		baseUrl:  baseUrl,
		country:  country,
		language: language,
		http:     httpClient,
		tel:      tel,
	}, nil
}

func (c *Client) BaseUrl() string {
	return c.baseUrl
}

type ibaseInfoRequest struct {
	SerialNumber string `json:"serialNumber"`
	Country      string `json:"country"`
	Language     string `json:"language"`
}

// FetchIbaseInfo makes the single POST for `serial` and returns the decoded
// JSON object. Failures are *TransportError or *MalformedResponseError.
func (c *Client) FetchIbaseInfo(ctx context.Context, serial string) (map[string]any, error) {
	ctx, span := tracer.Start(ctx, "FetchIbaseInfo")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		SetBody(ibaseInfoRequest{
			SerialNumber: serial,
			Country:      c.country,
			Language:     c.language,
		}).
		Post(ibaseInfoPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to make ibase info request")
		return nil, &TransportError{Err: err}
	}
	if !res.IsSuccess() {
		span.SetStatus(codes.Error, "ibase info request returned non-2xx")
		return nil, &TransportError{
			StatusCode: res.StatusCode(),
			Status:     res.Status(),
		}
	}

	raw, err := decodeObject(res.Body())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode ibase info response")
		return nil, err
	}
	return raw, nil
}

func decodeObject(body []byte) (map[string]any, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var value any
	err := decoder.Decode(&value)
	if err != nil {
		return nil, &MalformedResponseError{Reason: "body is not json", Err: err}
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, &MalformedResponseError{
			Reason: fmt.Sprintf("body is a json %s, wanted an object", jsonKind(value)),
		}
	}
	return obj, nil
}

// BuildLookup runs everything after the HTTP call: extraction, spec table
// parsing and canonicalization, product key and product url derivation.
func BuildLookup(raw map[string]any, baseUrl string) (Lookup, error) {
	record, err := Extract(raw)
	if err != nil {
		return Lookup{}, err
	}
	spec, err := ParseSpecTable(record.Specification)
	if err != nil {
		return Lookup{}, fmt.Errorf("parse spec table: %w", err)
	}

	return Lookup{
		Record:     record,
		Spec:       Canonicalize(spec),
		ProductKey: ProductKey(record.SubSeries, record.Specification),
		ProductUrl: ProductUrl(baseUrl, record),
	}, nil
}

// Lookup fetches and derives the full report data for `serial`, the serial
// is normalized first.
func (c *Client) Lookup(ctx context.Context, serial string) (Lookup, error) {
	ctx, span := tracer.Start(ctx, "Lookup")
	defer span.End()

	serial = NormSerial(serial)
	span.SetAttributes(attribute.String("serial", serial))

	raw, err := c.FetchIbaseInfo(ctx, serial)
	if err != nil {
		c.tel.ReportBroken(report_client_lookup, err, serial)
		lookupCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "failed")))
		return Lookup{}, err
	}

	lookup, err := BuildLookup(raw, c.baseUrl)
	if err != nil {
		c.tel.ReportBroken(report_client_extract, err, serial)
		lookupCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "malformed")))
		return Lookup{}, err
	}
	lookup.QueriedSerial = serial

	rec := lookup.Record
	if rec.Serial == "" && rec.Product == "" {
		c.tel.ReportWarning(report_client_extract, "response has no machine info", serial)
	}
	if rec.StartDate == "" && rec.EndDate == "" {
		c.tel.ReportWarning(report_client_extract, "response has no warranty dates", serial)
	}
	if rec.Specification != "" && lookup.Spec.Len() == 0 {
		c.tel.ReportWarning(report_client_parse_spec, "spec table has no usable rows", serial)
	}

	lookupCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "ok")))
	return lookup, nil
}
