//go:build hip && !levelzero

package discover

import (
	"github.com/7blacky7/cudashim/backend"
	"github.com/7blacky7/cudashim/backend/hip"
)

func newBackend() backend.Adapter {
	return hip.New()
}
