package compdb

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func records(raws ...string) []Record {
	out := make([]Record, len(raws))
	for i, raw := range raws {
		out[i] = NewRecord([]byte(raw))
	}
	return out
}

func TestClassify_SplitsOnRebuildFlag(t *testing.T) {
	t.Parallel()

	p := Classify(nil, records(`{"rebuild": false}`, `{"rebuild": true}`, `{}`))

	if diff := cmp.Diff([]string{`{"rebuild": false}`, `{}`}, rawStrings(p.Success)); diff != "" {
		t.Errorf("success mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{`{"rebuild": true}`}, rawStrings(p.Fail)); diff != "" {
		t.Errorf("fail mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, p.Invalid)
}

func TestClassify_PartitionsEveryRecordInOrder(t *testing.T) {
	t.Parallel()

	var raws []string
	for i := range 50 {
		switch i % 4 {
		case 0:
			raws = append(raws, fmt.Sprintf(`{"i":%d,"arguments":[],"directory":"/","exec_result":0}`, i))
		case 1:
			raws = append(raws, fmt.Sprintf(`{"i":%d,"rebuild":true}`, i))
		case 2:
			raws = append(raws, fmt.Sprintf(`{"i":%d,"rebuild":0}`, i))
		default:
			raws = append(raws, fmt.Sprintf(`{"i":%d,"rebuild":"yes","arguments":[]}`, i))
		}
	}
	in := records(raws...)

	p := Classify(nil, in)

	require.Equal(t, len(in), p.Len())
	assertIncreasing(t, p.Success)
	assertIncreasing(t, p.Fail)
	for _, r := range p.Fail {
		assert.True(t, r.Rebuild(), "fail group holds %s", r)
	}
	for _, r := range p.Success {
		assert.False(t, r.Rebuild(), "success group holds %s", r)
	}
}

func assertIncreasing(t *testing.T, rs []Record) {
	t.Helper()
	last := -1
	for _, r := range rs {
		var i int
		_, err := fmt.Sscanf(r.String(), `{"i":%d`, &i)
		require.NoError(t, err)
		assert.Greater(t, i, last, "records out of input order")
		last = i
	}
}

func TestClassify_LogsInvalidRecordsWithoutDroppingThem(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	in := records(
		`{"arguments":["cc"],"directory":"/src","exec_result":0}`,
		`{"directory":"/src","rebuild":true}`,
	)

	p := Classify(zap.New(core), in)

	assert.Equal(t, 1, p.Invalid)
	require.Len(t, p.Success, 1)
	require.Len(t, p.Fail, 1)

	discarded := logs.FilterMessage("discard invalid command").All()
	require.Len(t, discarded, 1)
	assert.Equal(t, `{"directory":"/src","rebuild":true}`, discarded[0].ContextMap()["record"])
}

func TestClassify_ResplittingSuccessIsStable(t *testing.T) {
	t.Parallel()

	first := Classify(nil, records(`{"rebuild":true}`, `{"a":1}`, `{"rebuild":null}`))
	second := Classify(nil, first.Success)

	assert.Empty(t, second.Fail)
	assert.Equal(t, rawStrings(first.Success), rawStrings(second.Success))
}

func TestClassify_Empty(t *testing.T) {
	t.Parallel()

	p := Classify(nil, nil)
	assert.Empty(t, p.Success)
	assert.Empty(t, p.Fail)
	assert.Zero(t, p.Invalid)
}

func TestPreview_CompactsAndTruncates(t *testing.T) {
	t.Parallel()

	r := NewRecord([]byte("{\n  \"arguments\": [\"cc\", \"-c\", \"a.c\"]\n}"))
	assert.Equal(t, `{"arguments":["cc","-c","a.c"]}`, Preview(r, 0))

	long := NewRecord([]byte(`{"arguments":["` + strings.Repeat("x", 400) + `"]}`))
	got := Preview(long, 40)
	assert.LessOrEqual(t, len(got), 40)
	assert.True(t, strings.HasSuffix(got, "..."))
}
