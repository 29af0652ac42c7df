package status

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/temirov/ghops/internal/jsonfield"
)

const (
	// DefaultFeedURL is the public GitHub status summary endpoint.
	DefaultFeedURL = "https://www.githubstatus.com/api/v2/status.json"

	indicatorFieldNameConstant    = "indicator"
	descriptionFieldNameConstant  = "description"
	feedRequestFailureTemplate    = "status feed request: %w"
	feedReadFailureTemplate       = "status feed read: %w"
	feedStatusFailureTemplate     = "status feed returned %d"
	feedResponseSizeLimitConstant = 1 << 20
	unknownIndicatorValueConstant = "unknown"
)

// FeedSummary carries the headline fields of the public status feed.
type FeedSummary struct {
	Indicator   string
	Description string
}

// FeedClient fetches the public GitHub status feed.
type FeedClient struct {
	httpClient *http.Client
	feedURL    string
}

// NewFeedClient builds a feed client; a nil HTTP client falls back to the
// default client and an empty URL falls back to DefaultFeedURL.
func NewFeedClient(httpClient *http.Client, feedURL string) *FeedClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if len(feedURL) == 0 {
		feedURL = DefaultFeedURL
	}
	return &FeedClient{httpClient: httpClient, feedURL: feedURL}
}

// Summary fetches the feed and extracts the first indicator and description
// scalars from the raw payload.
func (feedClient *FeedClient) Summary(executionContext context.Context) (FeedSummary, error) {
	feedRequest, requestError := http.NewRequestWithContext(executionContext, http.MethodGet, feedClient.feedURL, nil)
	if requestError != nil {
		return FeedSummary{}, fmt.Errorf(feedRequestFailureTemplate, requestError)
	}

	feedResponse, fetchError := feedClient.httpClient.Do(feedRequest)
	if fetchError != nil {
		return FeedSummary{}, fmt.Errorf(feedRequestFailureTemplate, fetchError)
	}
	defer feedResponse.Body.Close()

	if feedResponse.StatusCode != http.StatusOK {
		return FeedSummary{}, fmt.Errorf(feedStatusFailureTemplate, feedResponse.StatusCode)
	}

	feedPayload, readError := io.ReadAll(io.LimitReader(feedResponse.Body, feedResponseSizeLimitConstant))
	if readError != nil {
		return FeedSummary{}, fmt.Errorf(feedReadFailureTemplate, readError)
	}

	feedSummary := FeedSummary{
		Indicator:   jsonfield.FirstScalar(string(feedPayload), indicatorFieldNameConstant),
		Description: jsonfield.FirstScalar(string(feedPayload), descriptionFieldNameConstant),
	}
	if len(feedSummary.Indicator) == 0 {
		feedSummary.Indicator = unknownIndicatorValueConstant
	}

	return feedSummary, nil
}
