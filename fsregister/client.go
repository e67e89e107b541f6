package fsregister

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Client is a typed client for the FS Register API. All methods issue a
// single blocking GET through the authenticated session; the zero-value
// http.Client timeout applies uniformly unless overridden with options.
type Client struct {
	baseURL string
	session *Session
	logger  zerolog.Logger
}

// Option configures a Client during construction.
type Option func(*Client)

// WithBaseURL overrides the production API base URL. Trailing slashes
// are stripped.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient replaces the session's underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.session.httpClient = httpClient
	}
}

// WithTimeout sets the per-request timeout on the session's HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.session.httpClient.Timeout = timeout
	}
}

// NewClient creates a new FS Register client. The API username is the
// email used to sign up on the developer portal
// (https://register.fca.org.uk/Developer/s/); the key comes from the
// registration profile there.
func NewClient(apiUsername, apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	session, err := NewSession(apiUsername, apiKey, logger)
	if err != nil {
		return nil, err
	}

	client := &Client{
		baseURL: DefaultBaseURL,
		session: session,
		logger:  logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Session returns the authenticated session the client issues requests
// through.
func (c *Client) Session() *Session {
	return c.session
}

// get issues a GET through the session and wraps transport failures as a
// *RequestError.
func (c *Client) get(ctx context.Context, requestURL string) (*Response, error) {
	raw, err := c.session.Get(ctx, requestURL)
	if err != nil {
		return nil, &RequestError{Message: "GET " + requestURL, Err: err}
	}
	return WrapResponse(raw)
}

// Ping verifies connectivity and credentials with a minimal search
// request. It is never called implicitly.
func (c *Client) Ping(ctx context.Context) error {
	res, err := c.CommonSearch(ctx, "bank", ResourceTypeFirm)
	if err != nil {
		return err
	}
	if !res.OK() {
		return &RequestError{Message: fmt.Sprintf("ping failed with status %d (%s)", res.StatusCode, res.Reason())}
	}
	return nil
}

// CommonSearch performs a case-insensitive name search for resources of
// the given type using the common search endpoint:
//
//	/V0.1/Search?q=<name>&type=<resourceType>
//
// The response is returned unfiltered; zero matches is a successful
// response with empty data.
func (c *Client) CommonSearch(ctx context.Context, name string, resourceType ResourceType) (*Response, error) {
	if !resourceType.Valid() {
		return nil, fmt.Errorf("%q: %w", resourceType, ErrInvalidResourceType)
	}

	params := url.Values{}
	params.Set("q", name)
	params.Set("type", resourceType.String())

	return c.get(ctx, fmt.Sprintf("%s/Search?%s", c.baseURL, params.Encode()))
}

// Resolution is the outcome of resolving a resource name to a reference
// number. Exactly one of ReferenceNumber and Candidates is set: a unique
// match yields the reference number, multiple matches yield the full
// candidate list for the caller to disambiguate.
type Resolution struct {
	// ReferenceNumber is the FRN/IRN/PRN of the uniquely matched resource
	ReferenceNumber string
	// Candidates holds all matched records when the name was ambiguous
	Candidates []Record
}

// Unique reports whether the resolution produced a single reference
// number.
func (r *Resolution) Unique() bool {
	return r.ReferenceNumber != ""
}

// ResolveReferenceNumber searches the register for resources of the
// given type matching name and resolves the result:
//
//   - exactly one match: the record's reference number
//   - multiple matches: the candidate records ("exactly one" is decided
//     purely by payload length; the upstream matching is authoritative)
//   - zero matches or a non-2xx search response: a *RequestError
//
// An invalid resource type fails with ErrInvalidResourceType before any
// network call. A uniquely matched record without a "Reference Number"
// field fails with a *ResponseError.
func (c *Client) ResolveReferenceNumber(ctx context.Context, name string, resourceType ResourceType) (*Resolution, error) {
	if !resourceType.Valid() {
		return nil, fmt.Errorf("%q: %w", resourceType, ErrInvalidResourceType)
	}

	res, err := c.CommonSearch(ctx, name, resourceType)
	if err != nil {
		// Already a *RequestError; do not wrap again.
		return nil, err
	}

	data, err := res.Data()
	if err != nil {
		return nil, &ResponseError{ResourceType: resourceType, Name: name, Message: err.Error()}
	}

	switch {
	case res.OK() && len(data) == 1:
		ref := data[0].ReferenceNumber()
		if ref == "" {
			return nil, &ResponseError{
				ResourceType: resourceType,
				Name:         name,
				Message:      `matched record has no "Reference Number" field`,
			}
		}
		return &Resolution{ReferenceNumber: ref}, nil
	case res.OK() && len(data) > 1:
		return &Resolution{Candidates: data}, nil
	case !res.OK():
		return nil, &RequestError{
			Message: fmt.Sprintf("search failed: %s; check the search parameters and try again", res.Reason()),
		}
	default:
		return nil, &RequestError{
			Message: "no data found in FS Register API response; check the search parameters and try again",
		}
	}
}

// SearchFRN resolves a firm name to its firm reference number.
func (c *Client) SearchFRN(ctx context.Context, firmName string) (*Resolution, error) {
	return c.ResolveReferenceNumber(ctx, firmName, ResourceTypeFirm)
}

// SearchIRN resolves an individual name to its individual reference
// number.
func (c *Client) SearchIRN(ctx context.Context, individualName string) (*Resolution, error) {
	return c.ResolveReferenceNumber(ctx, individualName, ResourceTypeIndividual)
}

// SearchPRN resolves a fund name to its product reference number.
func (c *Client) SearchPRN(ctx context.Context, fundName string) (*Resolution, error) {
	return c.ResolveReferenceNumber(ctx, fundName, ResourceTypeFund)
}

// resourceInfo is the shared URL builder behind every fixed-path
// accessor. It builds
//
//	<base>/<endpointSegment>/<refNumber>[/<modifier>]*
//
// stripping leading and trailing slashes from each modifier so malformed
// segments cannot produce a malformed URL. The reference number is
// passed through as given; an unknown reference number surfaces as a 2xx
// response with empty data, not as an error.
func (c *Client) resourceInfo(ctx context.Context, refNumber string, resourceType ResourceType, modifiers ...string) (*Response, error) {
	if !resourceType.Valid() {
		return nil, fmt.Errorf("%q: %w", resourceType, ErrInvalidResourceType)
	}

	requestURL := fmt.Sprintf("%s/%s/%s", c.baseURL, resourceType.endpointSegment(), refNumber)
	for _, m := range modifiers {
		if m = strings.Trim(m, "/"); m != "" {
			requestURL += "/" + m
		}
	}

	return c.get(ctx, requestURL)
}

// GetFirm returns the firm record for the given firm reference number.
func (c *Client) GetFirm(ctx context.Context, frn string) (*Response, error) {
	return c.resourceInfo(ctx, frn, ResourceTypeFirm)
}

// GetFirmNames returns the current and historical names of a firm.
func (c *Client) GetFirmNames(ctx context.Context, frn string) (*Response, error) {
	return c.resourceInfo(ctx, frn, ResourceTypeFirm, "Names")
}

// GetFirmAddresses returns the addresses registered for a firm.
func (c *Client) GetFirmAddresses(ctx context.Context, frn string) (*Response, error) {
	return c.resourceInfo(ctx, frn, ResourceTypeFirm, "Address")
}

// GetFirmControlledFunctions returns the controlled functions associated
// with a firm.
func (c *Client) GetFirmControlledFunctions(ctx context.Context, frn string) (*Response, error) {
	return c.resourceInfo(ctx, frn, ResourceTypeFirm, "CF")
}

// GetFirmIndividuals returns the individuals associated with a firm.
func (c *Client) GetFirmIndividuals(ctx context.Context, frn string) (*Response, error) {
	return c.resourceInfo(ctx, frn, ResourceTypeFirm, "Individuals")
}

// GetFirmPermissions returns the regulated activities a firm has
// permission for.
func (c *Client) GetFirmPermissions(ctx context.Context, frn string) (*Response, error) {
	return c.resourceInfo(ctx, frn, ResourceTypeFirm, "Permissions")
}

// GetFirmRequirements returns the requirements placed on a firm.
func (c *Client) GetFirmRequirements(ctx context.Context, frn string) (*Response, error) {
	return c.resourceInfo(ctx, frn, ResourceTypeFirm, "Requirements")
}

// GetFirmRequirementInvestmentTypes returns the investment types covered
// by a specific firm requirement.
func (c *Client) GetFirmRequirementInvestmentTypes(ctx context.Context, frn, requirementRef string) (*Response, error) {
	return c.resourceInfo(ctx, frn, ResourceTypeFirm, "Requirements", requirementRef, "InvestmentTypes")
}

// GetFirmRegulators returns the regulators of a firm.
func (c *Client) GetFirmRegulators(ctx context.Context, frn string) (*Response, error) {
	return c.resourceInfo(ctx, frn, ResourceTypeFirm, "Regulators")
}

// GetFirmPassports returns a firm's passports.
func (c *Client) GetFirmPassports(ctx context.Context, frn string) (*Response, error) {
	return c.resourceInfo(ctx, frn, ResourceTypeFirm, "Passports")
}

// GetFirmPassportPermissions returns a firm's passport permissions for
// the given country.
func (c *Client) GetFirmPassportPermissions(ctx context.Context, frn, country string) (*Response, error) {
	return c.resourceInfo(ctx, frn, ResourceTypeFirm, "Passports", country, "Permission")
}

// GetFirmWaivers returns the waivers applying to a firm.
func (c *Client) GetFirmWaivers(ctx context.Context, frn string) (*Response, error) {
	return c.resourceInfo(ctx, frn, ResourceTypeFirm, "Waivers")
}

// GetFirmExclusions returns the exclusions applying to a firm.
func (c *Client) GetFirmExclusions(ctx context.Context, frn string) (*Response, error) {
	return c.resourceInfo(ctx, frn, ResourceTypeFirm, "Exclusions")
}

// GetFirmDisciplinaryHistory returns the disciplinary history of a firm.
func (c *Client) GetFirmDisciplinaryHistory(ctx context.Context, frn string) (*Response, error) {
	return c.resourceInfo(ctx, frn, ResourceTypeFirm, "DisciplinaryHistory")
}

// GetFirmAppointedRepresentatives returns the appointed representatives
// of a firm.
func (c *Client) GetFirmAppointedRepresentatives(ctx context.Context, frn string) (*Response, error) {
	return c.resourceInfo(ctx, frn, ResourceTypeFirm, "AR")
}

// GetIndividual returns the individual record for the given individual
// reference number.
func (c *Client) GetIndividual(ctx context.Context, irn string) (*Response, error) {
	return c.resourceInfo(ctx, irn, ResourceTypeIndividual)
}

// GetIndividualControlledFunctions returns the controlled functions held
// by an individual.
func (c *Client) GetIndividualControlledFunctions(ctx context.Context, irn string) (*Response, error) {
	return c.resourceInfo(ctx, irn, ResourceTypeIndividual, "CF")
}

// GetIndividualDisciplinaryHistory returns the disciplinary history of
// an individual.
func (c *Client) GetIndividualDisciplinaryHistory(ctx context.Context, irn string) (*Response, error) {
	return c.resourceInfo(ctx, irn, ResourceTypeIndividual, "DisciplinaryHistory")
}

// GetFund returns the fund record for the given product reference
// number.
func (c *Client) GetFund(ctx context.Context, prn string) (*Response, error) {
	return c.resourceInfo(ctx, prn, ResourceTypeFund)
}

// GetFundNames returns the alternate and trading names of a fund.
func (c *Client) GetFundNames(ctx context.Context, prn string) (*Response, error) {
	return c.resourceInfo(ctx, prn, ResourceTypeFund, "Names")
}

// GetFundSubfunds returns the subfunds of a fund.
func (c *Client) GetFundSubfunds(ctx context.Context, prn string) (*Response, error) {
	return c.resourceInfo(ctx, prn, ResourceTypeFund, "Subfund")
}

// GetRegulatedMarkets returns the regulated markets recognised by the
// register, via a fixed search on the common search endpoint.
func (c *Client) GetRegulatedMarkets(ctx context.Context) (*Response, error) {
	return c.get(ctx, c.baseURL+"/CommonSearch?q=RM")
}
