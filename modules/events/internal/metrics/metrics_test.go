package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordRefresh(t *testing.T) {
	initial := testutil.ToFloat64(RefreshTotal.WithLabelValues(RefreshStale))
	RecordRefresh(RefreshStale, 0.2)
	assert.Equal(t, initial+1, testutil.ToFloat64(RefreshTotal.WithLabelValues(RefreshStale)))
}

func TestRecordAction(t *testing.T) {
	initial := testutil.ToFloat64(ActionsTotal.WithLabelValues("claim_poap", "failure"))
	RecordAction("claim_poap", false)
	assert.Equal(t, initial+1, testutil.ToFloat64(ActionsTotal.WithLabelValues("claim_poap", "failure")))
}
