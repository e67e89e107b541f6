// Package fsregister provides a client for the FCA Financial Services
// Register API.
//
// The FS Register is the FCA's public record of regulated firms,
// approved individuals and collective investment schemes. This package
// implements a typed client over the register's REST API (V0.1).
//
// # Architecture
//
//   - Session: authenticated transport attaching the register's auth
//     headers to every request
//   - Response: envelope wrapper exposing the Status, Message,
//     ResultInfo and Data fields every endpoint returns
//   - Client: the name search, reference-number resolution and the
//     fixed-path sub-resource accessors
//   - Operations: concurrent composition of client calls
//
// # Usage
//
// Credentials come from the FCA developer portal at
// https://register.fca.org.uk/Developer/s/ — the username is the email
// registered there.
//
//	logger := zerolog.New(os.Stderr)
//	client, err := fsregister.NewClient(os.Getenv("FSREGISTER_API_USERNAME"), os.Getenv("FSREGISTER_API_KEY"), logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	resolution, err := client.SearchFRN(ctx, "Hastings Insurance Services Limited")
//	if err != nil {
//		log.Fatal(err)
//	}
//	if resolution.Unique() {
//		res, err := client.GetFirm(ctx, resolution.ReferenceNumber)
//		...
//	} else {
//		// Ambiguous name; resolution.Candidates holds the matches.
//	}
//
// # Error Handling
//
// An invalid resource type fails with ErrInvalidResourceType before any
// network call. Transport failures and failed searches surface as
// *RequestError (errors.As-able, Unwrap exposing the transport cause).
// Envelope shape drift surfaces as *ResponseError. A lookup of an
// unknown reference number is not an error: it returns a 2xx response
// whose Data is empty.
//
// The client never retries and never recovers locally; every failure is
// returned to the caller with enough context to act on.
package fsregister
