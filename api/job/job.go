package job

import (
	"context"

	"github.com/jenkins-release/jenkins-release/params"
)

// TriggerInfo describes a build request Jenkins accepted.
type TriggerInfo struct {
	Job        string
	StatusCode int
	// QueueLocation is the queue item URL from the Location header, if any.
	QueueLocation string
}

// JobClient is the interface to trigger Jenkins jobs
type JobClient interface {
	TriggerBuild(ctx context.Context, name string, p *params.Params) (*TriggerInfo, error)
}
