package matching_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/lvgroup/affinity"
	"github.com/katalvlaran/lvgroup/matching"
	"github.com/katalvlaran/lvgroup/partition"
	"github.com/katalvlaran/lvgroup/rules"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestProcess_BothOrders(t *testing.T) {
	doc := load(t, "teams.json")
	rep, err := matching.New().Process(context.Background(), doc)
	require.NoError(t, err)

	_, err = uuid.Parse(rep.RunID)
	require.NoError(t, err)
	require.True(t, rep.Feasible)
	require.Equal(t, int32(36), rep.Score)
	// both orders reach 36; the tie goes to the first configured order
	require.Equal(t, partition.Ascending, rep.Order)
	require.Equal(t, [][]string{{"leo", "ada", "bo"}, {"mia", "cy", "ola"}}, rep.Groups)
	require.Equal(t, [][]int{{3, 0, 1}, {4, 2, 5}}, rep.Indices)
	require.Positive(t, rep.Nodes)
}

func TestProcess_SingleOrder(t *testing.T) {
	doc := load(t, "teams.yaml")
	p := matching.New(matching.WithOrders(partition.Descending, partition.Descending))
	require.Equal(t, []partition.Order{partition.Descending}, p.Orders())

	rep, err := p.Process(context.Background(), doc)
	require.NoError(t, err)
	require.Equal(t, partition.Descending, rep.Order)
	require.Equal(t, int32(36), rep.Score)
	require.Equal(t, [][]string{{"ada", "bo", "leo"}, {"cy", "mia", "ola"}}, rep.Groups)
}

func TestProcess_MatchingPairs(t *testing.T) {
	doc := &matching.Document{
		Elements: rules.Attributes{
			"a": {"k": "x"}, "b": {"k": "x"}, "c": {"k": "y"}, "d": {"k": "y"},
		},
		Rules:   []rules.Rule{{Severity: rules.Prefer, Field: "k", TargetField: "k", Operand: rules.Match}},
		Outputs: partition.Quota{2: partition.Unlimited},
	}
	rep, err := matching.New().Process(context.Background(), doc)
	require.NoError(t, err)
	require.True(t, rep.Feasible)
	require.Equal(t, int32(12), rep.Score)
	require.Equal(t, [][]string{{"a", "b"}, {"c", "d"}}, rep.Groups)
}

func TestProcess_Infeasible(t *testing.T) {
	doc := &matching.Document{
		Elements: rules.Attributes{"a": {}, "b": {}, "c": {}},
		Outputs:  partition.Quota{2: partition.Unlimited},
	}
	rep, err := matching.New().Process(context.Background(), doc)
	require.NoError(t, err)
	require.False(t, rep.Feasible)
	require.Equal(t, int32(math.MinInt32), rep.Score)
	require.Empty(t, rep.Groups)
	require.NotEmpty(t, rep.RunID)
}

func TestProcess_Errors(t *testing.T) {
	t.Run("missing field", func(t *testing.T) {
		doc := load(t, "teams.json")
		delete(doc.Elements["bo"], "lang")
		_, err := matching.New().Process(context.Background(), doc)
		require.ErrorIs(t, err, rules.ErrMissingField)
	})

	t.Run("invalid document", func(t *testing.T) {
		doc := load(t, "teams.json")
		doc.Outputs = nil
		_, err := matching.New().Process(context.Background(), doc)
		require.ErrorIs(t, err, matching.ErrInvalidDocument)
	})

	t.Run("no viable output", func(t *testing.T) {
		doc := load(t, "teams.json")
		doc.Outputs = partition.Quota{2: 1, 3: 1}
		_, err := matching.New().Process(context.Background(), doc)
		require.ErrorIs(t, err, partition.ErrNoViableOutput)
	})

	t.Run("no viable output stops at the first dead end", func(t *testing.T) {
		// 4+2 exists, but placing two pairs first strands the remaining two
		doc := load(t, "teams.json")
		doc.Outputs = partition.Quota{2: 1, 4: 1}
		_, err := matching.New().Process(context.Background(), doc)
		require.ErrorIs(t, err, partition.ErrNoViableOutput)

		p := matching.New(matching.WithSearchOptions(partition.WithSkipNoViable()))
		rep, err := p.Process(context.Background(), doc)
		require.NoError(t, err)
		require.True(t, rep.Feasible)
		require.Len(t, rep.Groups, 2)
	})

	t.Run("node limit", func(t *testing.T) {
		doc := load(t, "teams.json")
		p := matching.New(matching.WithSearchOptions(partition.WithNodeLimit(1)))
		_, err := p.Process(context.Background(), doc)
		require.ErrorIs(t, err, partition.ErrNodeLimit)
	})

	t.Run("canceled", func(t *testing.T) {
		doc := load(t, "teams.json")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := matching.New().Process(ctx, doc)
		require.True(t, errors.Is(err, context.Canceled))
	})
}

func TestBuild_LogsMatrixAtDebug(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	p := matching.New(matching.WithLogger(zap.New(core)), matching.WithLogger(nil))

	m, err := p.Build(load(t, "teams.json"))
	require.NoError(t, err)
	require.Equal(t, 6, m.Len())

	leo, _ := m.Index("leo")
	mia, _ := m.Index("mia")
	require.Equal(t, affinity.Min, m.Get(mia, leo))
	require.Equal(t, int16(1), m.Get(leo, mia), "exclusion is one-way")

	entries := logs.FilterMessage("affinity matrix built").All()
	require.Len(t, entries, 1)
	require.Equal(t, int64(6), entries[0].ContextMap()["elements"])
}

func TestProcess_ConcurrentCalls(t *testing.T) {
	doc := load(t, "teams.json")
	p := matching.New()

	errs := make(chan error, 8)
	for i := 0; i < cap(errs); i++ {
		go func() {
			rep, err := p.Process(context.Background(), doc)
			if err == nil && rep.Score != 36 {
				err = errors.New("unexpected score")
			}
			errs <- err
		}()
	}
	for i := 0; i < cap(errs); i++ {
		require.NoError(t, <-errs)
	}
}
