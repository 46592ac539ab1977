package apl

import (
	"context"
	"encoding/json"
	"fmt"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// SecretManager is an APL backed by GCP Secret Manager. One secret per
// backend installation, named after the API URL:
//
//	projects/{project}/secrets/{slug(api_url)}/versions/latest
//
// The payload is the AuthData record as JSON.
type SecretManager struct {
	Project string
}

// Get fetches and decodes the secret for the API URL.
func (s *SecretManager) Get(ctx context.Context, apiURL string) (*AuthData, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating secret manager client: %w", err)
	}
	defer client.Close()

	name := fmt.Sprintf("projects/%s/secrets/%s/versions/latest", s.Project, secretSlug(apiURL))

	result, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: name,
	})
	if err != nil {
		return nil, fmt.Errorf("accessing secret %s: %w", name, err)
	}

	var data AuthData
	if err := json.Unmarshal(result.Payload.Data, &data); err != nil {
		return nil, fmt.Errorf("parsing secret JSON: %w", err)
	}
	if data.Token == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoAuthData, apiURL)
	}
	if data.APIURL == "" {
		data.APIURL = apiURL
	}
	return &data, nil
}
