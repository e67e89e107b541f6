package fsregister

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// searchEnvelope builds a search response envelope with the given
// records.
func searchEnvelope(records ...Record) map[string]any {
	return map[string]any{
		"Status":     "FSR-API-04-01-00",
		"Message":    "Ok. Search successful",
		"ResultInfo": map[string]any{"page": "1", "per_page": "20", "total_count": "1"},
		"Data":       records,
	}
}

// newTestClient starts an httptest server with the given handler and
// returns a client pointed at it.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("user@example.com", "test-key", zerolog.Nop(), WithBaseURL(server.URL))
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name        string
		apiUsername string
		apiKey      string
		wantErr     bool
	}{
		{
			name:        "valid credentials",
			apiUsername: "user@example.com",
			apiKey:      "test-key",
			wantErr:     false,
		},
		{
			name:        "missing username",
			apiUsername: "",
			apiKey:      "test-key",
			wantErr:     true,
		},
		{
			name:        "missing key",
			apiUsername: "user@example.com",
			apiKey:      "",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.apiUsername, tt.apiKey, zerolog.Nop())
			if tt.wantErr {
				require.ErrorIs(t, err, ErrMissingCredentials)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, DefaultBaseURL, client.baseURL)
			assert.Equal(t, tt.apiUsername, client.Session().APIUsername())
			assert.Equal(t, tt.apiKey, client.Session().APIKey())
		})
	}
}

func TestClientOptions(t *testing.T) {
	t.Run("with base URL", func(t *testing.T) {
		client, err := NewClient("user@example.com", "test-key", zerolog.Nop(), WithBaseURL("http://localhost:8080/"))
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080", client.baseURL)
	})

	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient("user@example.com", "test-key", zerolog.Nop(), WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.session.httpClient.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient("user@example.com", "test-key", zerolog.Nop(), WithHTTPClient(customClient))
		require.NoError(t, err)
		assert.Equal(t, customClient, client.session.httpClient)
	})
}

func TestCommonSearch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Search", r.URL.Path)
		assert.Equal(t, "Hastings Direct", r.URL.Query().Get("q"))
		assert.Equal(t, "firm", r.URL.Query().Get("type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "user@example.com", r.Header.Get("X-AUTH-EMAIL"))
		assert.Equal(t, "test-key", r.Header.Get("X-AUTH-KEY"))

		json.NewEncoder(w).Encode(searchEnvelope(Record{
			"Name":             "Hastings Insurance Services Limited",
			"Reference Number": "311492",
			"Status":           "Authorised",
		}))
	})

	res, err := client.CommonSearch(context.Background(), "Hastings Direct", ResourceTypeFirm)
	require.NoError(t, err)
	assert.True(t, res.OK())

	data, err := res.Data()
	require.NoError(t, err)
	require.Len(t, data, 1)
	assert.Equal(t, "311492", data[0].ReferenceNumber())
}

func TestCommonSearchInvalidResourceType(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	_, err := client.CommonSearch(context.Background(), "anything", ResourceType("bank"))
	require.ErrorIs(t, err, ErrInvalidResourceType)
	assert.Equal(t, int32(0), calls.Load(), "no network call should be made for an invalid resource type")
}

func TestCommonSearchTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // force a connection failure

	client, err := NewClient("user@example.com", "test-key", zerolog.Nop(), WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = client.CommonSearch(context.Background(), "anything", ResourceTypeFirm)
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Error(t, reqErr.Unwrap(), "transport cause should be preserved")
}

func TestResolveReferenceNumber(t *testing.T) {
	tests := []struct {
		name         string
		resourceType ResourceType
		searchName   string
		records      []Record
	}{
		{
			name:         "firm",
			resourceType: ResourceTypeFirm,
			searchName:   "Hastings Insurance Services Limited",
			records:      []Record{{"Reference Number": "311492", "Name": "Hastings Insurance Services Limited"}},
		},
		{
			name:         "individual",
			resourceType: ResourceTypeIndividual,
			searchName:   "Mark Carney",
			records:      []Record{{"Reference Number": "MXC29012", "Name": "Mark Carney"}},
		},
		{
			name:         "fund",
			resourceType: ResourceTypeFund,
			searchName:   "abbey life",
			records:      []Record{{"Reference Number": "635597", "Name": "Abbey Life"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.searchName, r.URL.Query().Get("q"))
				assert.Equal(t, tt.resourceType.String(), r.URL.Query().Get("type"))
				json.NewEncoder(w).Encode(searchEnvelope(tt.records...))
			})

			resolution, err := client.ResolveReferenceNumber(context.Background(), tt.searchName, tt.resourceType)
			require.NoError(t, err)
			assert.True(t, resolution.Unique())
			assert.Equal(t, tt.records[0].ReferenceNumber(), resolution.ReferenceNumber)
			assert.Empty(t, resolution.Candidates)
		})
	}
}

func TestResolveReferenceNumberAmbiguous(t *testing.T) {
	records := []Record{
		{"Reference Number": "202684", "Name": "Direct Line Insurance Group"},
		{"Reference Number": "311492", "Name": "Direct Line Insurance Limited"},
		{"Reference Number": "845674", "Name": "Direct Line Financial Services"},
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(searchEnvelope(records...))
	})

	resolution, err := client.ResolveReferenceNumber(context.Background(), "direct line", ResourceTypeFirm)
	require.NoError(t, err)
	assert.False(t, resolution.Unique())
	assert.Empty(t, resolution.ReferenceNumber)
	require.Len(t, resolution.Candidates, 3)
	assert.Equal(t, records, resolution.Candidates)
}

func TestResolveReferenceNumberNoData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(searchEnvelope())
	})

	resolution, err := client.ResolveReferenceNumber(context.Background(), "nonexistent company", ResourceTypeFirm)
	assert.Nil(t, resolution)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Contains(t, reqErr.Error(), "no data found")
}

func TestResolveReferenceNumberUpstreamFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	})

	_, err := client.ResolveReferenceNumber(context.Background(), "anything", ResourceTypeFirm)
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Contains(t, reqErr.Error(), "Bad Request")
}

func TestResolveReferenceNumberMissingReferenceNumber(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(searchEnvelope(Record{"Name": "Hastings Insurance Services Limited"}))
	})

	_, err := client.ResolveReferenceNumber(context.Background(), "Hastings Insurance Services Limited", ResourceTypeFirm)
	var resErr *ResponseError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, ResourceTypeFirm, resErr.ResourceType)
	assert.Equal(t, "Hastings Insurance Services Limited", resErr.Name)
	assert.Contains(t, resErr.Error(), "register.fca.org.uk/Developer")
}

func TestResolveReferenceNumberInvalidResourceType(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	_, err := client.ResolveReferenceNumber(context.Background(), "anything", ResourceType("company"))
	require.ErrorIs(t, err, ErrInvalidResourceType)
	assert.Equal(t, int32(0), calls.Load())
}

func TestSearchTypedWrappers(t *testing.T) {
	var gotType string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotType = r.URL.Query().Get("type")
		json.NewEncoder(w).Encode(searchEnvelope(Record{"Reference Number": "42"}))
	})

	ctx := context.Background()

	_, err := client.SearchFRN(ctx, "some firm")
	require.NoError(t, err)
	assert.Equal(t, "firm", gotType)

	_, err = client.SearchIRN(ctx, "some individual")
	require.NoError(t, err)
	assert.Equal(t, "individual", gotType)

	_, err = client.SearchPRN(ctx, "some fund")
	require.NoError(t, err)
	assert.Equal(t, "fund", gotType)
}

func TestFixedPathAccessors(t *testing.T) {
	tests := []struct {
		name     string
		call     func(context.Context, *Client) (*Response, error)
		wantPath string
	}{
		{
			name:     "firm",
			call:     func(ctx context.Context, c *Client) (*Response, error) { return c.GetFirm(ctx, "122702") },
			wantPath: "/Firm/122702",
		},
		{
			name:     "firm names",
			call:     func(ctx context.Context, c *Client) (*Response, error) { return c.GetFirmNames(ctx, "122702") },
			wantPath: "/Firm/122702/Names",
		},
		{
			name:     "firm addresses",
			call:     func(ctx context.Context, c *Client) (*Response, error) { return c.GetFirmAddresses(ctx, "122702") },
			wantPath: "/Firm/122702/Address",
		},
		{
			name: "firm controlled functions",
			call: func(ctx context.Context, c *Client) (*Response, error) {
				return c.GetFirmControlledFunctions(ctx, "122702")
			},
			wantPath: "/Firm/122702/CF",
		},
		{
			name:     "firm individuals",
			call:     func(ctx context.Context, c *Client) (*Response, error) { return c.GetFirmIndividuals(ctx, "122702") },
			wantPath: "/Firm/122702/Individuals",
		},
		{
			name:     "firm permissions",
			call:     func(ctx context.Context, c *Client) (*Response, error) { return c.GetFirmPermissions(ctx, "122702") },
			wantPath: "/Firm/122702/Permissions",
		},
		{
			name:     "firm requirements",
			call:     func(ctx context.Context, c *Client) (*Response, error) { return c.GetFirmRequirements(ctx, "122702") },
			wantPath: "/Firm/122702/Requirements",
		},
		{
			name: "firm requirement investment types",
			call: func(ctx context.Context, c *Client) (*Response, error) {
				return c.GetFirmRequirementInvestmentTypes(ctx, "122702", "OR-0262545")
			},
			wantPath: "/Firm/122702/Requirements/OR-0262545/InvestmentTypes",
		},
		{
			name:     "firm regulators",
			call:     func(ctx context.Context, c *Client) (*Response, error) { return c.GetFirmRegulators(ctx, "122702") },
			wantPath: "/Firm/122702/Regulators",
		},
		{
			name:     "firm passports",
			call:     func(ctx context.Context, c *Client) (*Response, error) { return c.GetFirmPassports(ctx, "122702") },
			wantPath: "/Firm/122702/Passports",
		},
		{
			name: "firm passport permissions",
			call: func(ctx context.Context, c *Client) (*Response, error) {
				return c.GetFirmPassportPermissions(ctx, "122702", "Gibraltar")
			},
			wantPath: "/Firm/122702/Passports/Gibraltar/Permission",
		},
		{
			name:     "firm waivers",
			call:     func(ctx context.Context, c *Client) (*Response, error) { return c.GetFirmWaivers(ctx, "122702") },
			wantPath: "/Firm/122702/Waivers",
		},
		{
			name:     "firm exclusions",
			call:     func(ctx context.Context, c *Client) (*Response, error) { return c.GetFirmExclusions(ctx, "122702") },
			wantPath: "/Firm/122702/Exclusions",
		},
		{
			name: "firm disciplinary history",
			call: func(ctx context.Context, c *Client) (*Response, error) {
				return c.GetFirmDisciplinaryHistory(ctx, "122702")
			},
			wantPath: "/Firm/122702/DisciplinaryHistory",
		},
		{
			name: "firm appointed representatives",
			call: func(ctx context.Context, c *Client) (*Response, error) {
				return c.GetFirmAppointedRepresentatives(ctx, "122702")
			},
			wantPath: "/Firm/122702/AR",
		},
		{
			name:     "individual",
			call:     func(ctx context.Context, c *Client) (*Response, error) { return c.GetIndividual(ctx, "MXC29012") },
			wantPath: "/Individuals/MXC29012",
		},
		{
			name: "individual controlled functions",
			call: func(ctx context.Context, c *Client) (*Response, error) {
				return c.GetIndividualControlledFunctions(ctx, "MXC29012")
			},
			wantPath: "/Individuals/MXC29012/CF",
		},
		{
			name: "individual disciplinary history",
			call: func(ctx context.Context, c *Client) (*Response, error) {
				return c.GetIndividualDisciplinaryHistory(ctx, "MXC29012")
			},
			wantPath: "/Individuals/MXC29012/DisciplinaryHistory",
		},
		{
			name:     "fund",
			call:     func(ctx context.Context, c *Client) (*Response, error) { return c.GetFund(ctx, "185045") },
			wantPath: "/CIS/185045",
		},
		{
			name:     "fund names",
			call:     func(ctx context.Context, c *Client) (*Response, error) { return c.GetFundNames(ctx, "185045") },
			wantPath: "/CIS/185045/Names",
		},
		{
			name:     "fund subfunds",
			call:     func(ctx context.Context, c *Client) (*Response, error) { return c.GetFundSubfunds(ctx, "185045") },
			wantPath: "/CIS/185045/Subfund",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				json.NewEncoder(w).Encode(searchEnvelope(Record{"Reference Number": "x"}))
			})

			res, err := tt.call(context.Background(), client)
			require.NoError(t, err)
			assert.True(t, res.OK())
			assert.Equal(t, tt.wantPath, gotPath)
		})
	}
}

func TestResourceInfoModifierNormalization(t *testing.T) {
	var paths []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		json.NewEncoder(w).Encode(searchEnvelope())
	})

	ctx := context.Background()

	_, err := client.resourceInfo(ctx, "122702", ResourceTypeFirm, "Names")
	require.NoError(t, err)
	_, err = client.resourceInfo(ctx, "122702", ResourceTypeFirm, "/Names/")
	require.NoError(t, err)
	_, err = client.resourceInfo(ctx, "122702", ResourceTypeFirm, "//Names")
	require.NoError(t, err)

	require.Len(t, paths, 3)
	assert.Equal(t, paths[0], paths[1], "leading/trailing slashes must not change the URL")
	assert.Equal(t, paths[0], paths[2])
}

func TestGetFirmBarclays(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/Firm/122702", r.URL.Path)
		json.NewEncoder(w).Encode(searchEnvelope(Record{
			"FRN":               "122702",
			"Organisation Name": "Barclays Bank Plc",
			"Status":            "Authorised",
		}))
	})

	res, err := client.GetFirm(context.Background(), "122702")
	require.NoError(t, err)
	require.True(t, res.OK())

	data, err := res.Data()
	require.NoError(t, err)
	require.Len(t, data, 1)
	assert.Equal(t, "Barclays Bank Plc", data[0].String("Organisation Name"))
}

func TestGetFirmNotFoundIsData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Unknown FRNs come back 2xx with a null Data field.
		json.NewEncoder(w).Encode(map[string]any{
			"Status":     "FSR-API-02-01-11",
			"Message":    "No search result found",
			"ResultInfo": map[string]any{},
			"Data":       nil,
		})
	})

	res, err := client.GetFirm(context.Background(), "1234567890")
	require.NoError(t, err, "an unknown reference number is not an error")
	assert.True(t, res.OK())

	data, err := res.Data()
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestGetRegulatedMarkets(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/CommonSearch", r.URL.Path)
		assert.Equal(t, "RM", r.URL.Query().Get("q"))
		json.NewEncoder(w).Encode(searchEnvelope(
			Record{"Name": "The London Metal Exchange"},
			Record{"Name": "ICE Futures Europe"},
		))
	})

	res, err := client.GetRegulatedMarkets(context.Background())
	require.NoError(t, err)

	data, err := res.Data()
	require.NoError(t, err)
	assert.Len(t, data, 2)
}

func TestPing(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(searchEnvelope())
		})
		require.NoError(t, client.Ping(context.Background()))
	})

	t.Run("unauthorized", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "forbidden", http.StatusForbidden)
		})

		err := client.Ping(context.Background())
		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr)
	})
}
