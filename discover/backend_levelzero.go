//go:build levelzero && !hip

package discover

import (
	"github.com/7blacky7/cudashim/backend"
	"github.com/7blacky7/cudashim/backend/levelzero"
)

func newBackend() backend.Adapter {
	return levelzero.New()
}
