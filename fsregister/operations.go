package fsregister

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultProfileConcurrency limits the number of in-flight requests when
// assembling a firm profile.
const DefaultProfileConcurrency = 5

// Operations composes client calls into higher-level workflows.
type Operations struct {
	client API
	logger zerolog.Logger
}

// NewOperations creates an Operations helper around the given client.
func NewOperations(client API, logger zerolog.Logger) *Operations {
	return &Operations{
		client: client,
		logger: logger,
	}
}

// FirmProfile aggregates the firm record and its fixed sub-resources.
// Sections that came back 2xx with empty data are left nil.
type FirmProfile struct {
	FRN                 string
	Firm                []Record
	Names               []Record
	Addresses           []Record
	Individuals         []Record
	Permissions         []Record
	Requirements        []Record
	Regulators          []Record
	DisciplinaryHistory []Record
	AppointedReps       []Record
}

// FirmProfile fetches the firm record and its sub-resources
// concurrently. The session carries no per-request state and the
// underlying HTTP client is safe for concurrent use, so the fan-out
// shares one client. The first failing request cancels the rest.
func (o *Operations) FirmProfile(ctx context.Context, frn string) (*FirmProfile, error) {
	profile := &FirmProfile{FRN: frn}

	sections := []struct {
		name  string
		fetch func(context.Context, string) (*Response, error)
		dest  *[]Record
	}{
		{"firm", o.client.GetFirm, &profile.Firm},
		{"names", o.client.GetFirmNames, &profile.Names},
		{"addresses", o.client.GetFirmAddresses, &profile.Addresses},
		{"individuals", o.client.GetFirmIndividuals, &profile.Individuals},
		{"permissions", o.client.GetFirmPermissions, &profile.Permissions},
		{"requirements", o.client.GetFirmRequirements, &profile.Requirements},
		{"regulators", o.client.GetFirmRegulators, &profile.Regulators},
		{"disciplinary", o.client.GetFirmDisciplinaryHistory, &profile.DisciplinaryHistory},
		{"ar", o.client.GetFirmAppointedRepresentatives, &profile.AppointedReps},
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(DefaultProfileConcurrency)

	var mu sync.Mutex
	for _, section := range sections {
		g.Go(func() error {
			res, err := section.fetch(ctx, frn)
			if err != nil {
				return err
			}

			data, err := res.Data()
			if err != nil {
				o.logger.Warn().
					Err(err).
					Str("frn", frn).
					Str("section", section.name).
					Msg("Skipping undecodable profile section")
				return nil
			}

			mu.Lock()
			*section.dest = data
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return profile, nil
}
