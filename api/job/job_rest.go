package job

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jenkins-release/jenkins-release/api/rest"
	"github.com/jenkins-release/jenkins-release/errs"
	"github.com/jenkins-release/jenkins-release/params"
	"github.com/jenkins-release/jenkins-release/settings"
)

type jobRestClient struct {
	client *rest.Client
}

var _ JobClient = &jobRestClient{}

// NewJobRestClient returns a new jobRestClient satisfying the JobClient
// interface via the Jenkins remote access API.
func NewJobRestClient(config settings.Config) (*jobRestClient, error) {
	client, err := rest.NewFromConfig(&config)
	if err != nil {
		return nil, err
	}
	return &jobRestClient{client: client}, nil
}

// BuildPath returns the buildWithParameters path of a job, relative to the
// server base URL.
func BuildPath(name string) string {
	return fmt.Sprintf("job/%s/buildWithParameters", name)
}

func (c *jobRestClient) TriggerBuild(ctx context.Context, name string, p *params.Params) (*TriggerInfo, error) {
	if p == nil {
		p = params.New()
	}

	req, err := c.client.NewRequest(ctx, http.MethodPost, &url.URL{Path: BuildPath(name), RawQuery: p.Query()})
	if err != nil {
		return nil, err
	}

	resp, err := c.client.DoRequest(req)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return &TriggerInfo{
			Job:           name,
			StatusCode:    resp.StatusCode,
			QueueLocation: resp.Header.Get("Location"),
		}, nil
	default:
		return nil, &errs.RemoteRejectionError{
			StatusCode: resp.StatusCode,
			Body:       string(resp.Body),
		}
	}
}
