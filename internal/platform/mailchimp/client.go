package mailchimp

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client talks to the Mailchimp Marketing API v3. Audience sync is a
// fire-and-forget concern: callers log failures and move on.
type Client struct {
	apiKey       string
	serverPrefix string
	audienceID   string
	http         *http.Client
}

func NewClient(apiKey, serverPrefix, audienceID string) *Client {
	return &Client{
		apiKey:       apiKey,
		serverPrefix: serverPrefix,
		audienceID:   audienceID,
		http:         &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether the integration is configured at all.
func (c *Client) Enabled() bool {
	return c.apiKey != "" && c.serverPrefix != "" && c.audienceID != ""
}

// AddToAudience upserts the member and applies the given tags.
func (c *Client) AddToAudience(ctx context.Context, email string, mergeFields map[string]string, tags []string) error {
	if !c.Enabled() {
		return nil
	}
	hash := subscriberHash(email)

	member := map[string]any{
		"email_address": email,
		"status_if_new": "subscribed",
	}
	if len(mergeFields) > 0 {
		member["merge_fields"] = mergeFields
	}
	url := fmt.Sprintf("https://%s.api.mailchimp.com/3.0/lists/%s/members/%s", c.serverPrefix, c.audienceID, hash)
	if err := c.do(ctx, http.MethodPut, url, member); err != nil {
		return err
	}

	if len(tags) == 0 {
		return nil
	}
	type tag struct {
		Name   string `json:"name"`
		Status string `json:"status"`
	}
	body := struct {
		Tags []tag `json:"tags"`
	}{}
	for _, t := range tags {
		body.Tags = append(body.Tags, tag{Name: t, Status: "active"})
	}
	return c.do(ctx, http.MethodPost, url+"/tags", body)
}

func (c *Client) do(ctx context.Context, method, url string, payload any) error {
	buf, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth("anystring", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("mailchimp: %s %s returned %s", method, url, resp.Status)
	}
	return nil
}

// subscriberHash matches the id scheme the old backend used: hex of the
// lowercased address.
func subscriberHash(email string) string {
	return hex.EncodeToString([]byte(strings.ToLower(email)))
}
