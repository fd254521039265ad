package memkv

import (
	"testing"

	"github.com/mycelian/casefiles/internal/kv"
	"github.com/mycelian/casefiles/internal/kv/kvtest"
)

func TestMemKVCompliance(t *testing.T) {
	kvtest.Run(t, func(t *testing.T) kv.Store { return New() })
}
