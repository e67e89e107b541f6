package fsregister

import "context"

// API defines the FS Register operations the client implements, for
// callers that want to mock the register in tests.
type API interface {
	// CommonSearch performs a name search for resources of the given type
	CommonSearch(ctx context.Context, name string, resourceType ResourceType) (*Response, error)

	// ResolveReferenceNumber resolves a name search to a unique reference
	// number or a candidate list
	ResolveReferenceNumber(ctx context.Context, name string, resourceType ResourceType) (*Resolution, error)

	SearchFRN(ctx context.Context, firmName string) (*Resolution, error)
	SearchIRN(ctx context.Context, individualName string) (*Resolution, error)
	SearchPRN(ctx context.Context, fundName string) (*Resolution, error)

	GetFirm(ctx context.Context, frn string) (*Response, error)
	GetFirmNames(ctx context.Context, frn string) (*Response, error)
	GetFirmAddresses(ctx context.Context, frn string) (*Response, error)
	GetFirmControlledFunctions(ctx context.Context, frn string) (*Response, error)
	GetFirmIndividuals(ctx context.Context, frn string) (*Response, error)
	GetFirmPermissions(ctx context.Context, frn string) (*Response, error)
	GetFirmRequirements(ctx context.Context, frn string) (*Response, error)
	GetFirmRequirementInvestmentTypes(ctx context.Context, frn, requirementRef string) (*Response, error)
	GetFirmRegulators(ctx context.Context, frn string) (*Response, error)
	GetFirmPassports(ctx context.Context, frn string) (*Response, error)
	GetFirmPassportPermissions(ctx context.Context, frn, country string) (*Response, error)
	GetFirmWaivers(ctx context.Context, frn string) (*Response, error)
	GetFirmExclusions(ctx context.Context, frn string) (*Response, error)
	GetFirmDisciplinaryHistory(ctx context.Context, frn string) (*Response, error)
	GetFirmAppointedRepresentatives(ctx context.Context, frn string) (*Response, error)

	GetIndividual(ctx context.Context, irn string) (*Response, error)
	GetIndividualControlledFunctions(ctx context.Context, irn string) (*Response, error)
	GetIndividualDisciplinaryHistory(ctx context.Context, irn string) (*Response, error)

	GetFund(ctx context.Context, prn string) (*Response, error)
	GetFundNames(ctx context.Context, prn string) (*Response, error)
	GetFundSubfunds(ctx context.Context, prn string) (*Response, error)

	GetRegulatedMarkets(ctx context.Context) (*Response, error)
}

var _ API = (*Client)(nil)
