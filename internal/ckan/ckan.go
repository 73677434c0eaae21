// Package ckan is a minimal client for the CKAN datastore_search API that
// data.gov.il exposes. Only the pieces the data pipeline needs: paginated
// reads of one resource, preserving the upstream field order.
package ckan

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL is the Israeli government open-data API endpoint.
const DefaultBaseURL = "https://data.gov.il/api/3/action/datastore_search"

// Resource IDs of the vehicle recall datasets on data.gov.il.
const (
	RecallsResourceID           = "2c33523f-87aa-44ec-a736-edbb0a82975e"
	PrivateVehiclesResourceID   = "053cea08-09bc-40ec-8f7a-156f0677aff3"
	UnattendedRecallsResourceID = "36bf1404-0be4-49d2-82dc-2f1ead4a8b93"
)

// Client fetches records from a CKAN datastore.
type Client struct {
	BaseURL string
	// PageSize is the per-request record limit.
	PageSize int
	HTTP     *http.Client
}

// New creates a client against the given base URL ("" means data.gov.il).
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:  baseURL,
		PageSize: 5000,
		HTTP: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Table is a fetched resource: ordered field names plus row maps.
type Table struct {
	Fields  []string
	Records []map[string]any
}

type searchResponse struct {
	Success bool `json:"success"`
	Result  struct {
		Fields []struct {
			ID string `json:"id"`
		} `json:"fields"`
		Records []map[string]any `json:"records"`
	} `json:"result"`
}

// FetchAll pages through a resource until it is exhausted or maxRows records
// have been collected.
func (c *Client) FetchAll(ctx context.Context, resourceID string, maxRows int) (*Table, error) {
	table := &Table{}
	offset := 0

	for {
		page, err := c.fetchPage(ctx, resourceID, c.PageSize, offset)
		if err != nil {
			return nil, err
		}
		if table.Fields == nil {
			for _, f := range page.Result.Fields {
				table.Fields = append(table.Fields, f.ID)
			}
		}
		if len(page.Result.Records) == 0 {
			break
		}

		table.Records = append(table.Records, page.Result.Records...)
		offset += c.PageSize

		if maxRows > 0 && len(table.Records) >= maxRows {
			table.Records = table.Records[:maxRows]
			break
		}
	}
	return table, nil
}

func (c *Client) fetchPage(ctx context.Context, resourceID string, limit, offset int) (*searchResponse, error) {
	params := url.Values{}
	params.Set("resource_id", resourceID)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build datastore request: %w", err)
	}
	req.Header.Set("User-Agent", "Recallboard-Dataprep/1.0")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("datastore_search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("datastore_search: HTTP %s", resp.Status)
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode datastore response: %w", err)
	}
	if !out.Success {
		return nil, fmt.Errorf("datastore_search: success=false for resource %s", resourceID)
	}
	return &out, nil
}

// FieldString renders one record field as a string; CKAN returns numbers for
// numeric columns and null for missing values.
func FieldString(record map[string]any, field string) string {
	v, ok := record[field]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		// Plate numbers come back as JSON numbers; avoid exponent form.
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}
