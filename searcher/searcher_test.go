package searcher

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"machikoro/experiments/metrics"
	"machikoro/game"
)

type mockMove struct {
	id         int
	stochastic bool
}

func (m mockMove) IsStochastic() bool {
	return m.stochastic
}

type mockState struct {
	player string
	moves  []game.Move
	hash   game.StateHash
	winner string
	next   map[int]*mockState
}

func (s *mockState) Player() string          { return s.player }
func (s *mockState) LegalMoves() []game.Move { return s.moves }
func (s *mockState) Hash() game.StateHash    { return s.hash }
func (s *mockState) Winner() string          { return s.winner }

func (s *mockState) Play(move game.Move) game.State {
	next, ok := s.next[move.(mockMove).id]
	if !ok {
		panic("mockState: no successor for move")
	}
	return next
}

func TestDecisionTerminal(t *testing.T) {
	state := &mockState{player: "Player0", winner: "Player0"}
	node := newDecision(nil, state.Player(), state)

	child, childState, selected := node.SelectOrExpand(state)

	require.Same(t, node, child.(*decision))
	require.Same(t, state, childState.(*mockState))
	require.False(t, selected)
}

func TestDecisionExpandsEachMoveOnce(t *testing.T) {
	leaf := &mockState{player: "Player1"}
	state := &mockState{
		player: "Player0",
		moves:  []game.Move{mockMove{id: 0}, mockMove{id: 1}},
		next:   map[int]*mockState{0: leaf, 1: leaf},
	}
	node := newDecision(nil, state.Player(), state)

	_, _, selected := node.SelectOrExpand(state)
	require.False(t, selected, "first call should expand")
	_, _, selected = node.SelectOrExpand(state)
	require.False(t, selected, "second call should expand")
	require.Len(t, node.children, 2)
}

func TestDecisionSelectsWhenFullyExpanded(t *testing.T) {
	leaf := &mockState{player: "Player1"}
	state := &mockState{
		player: "Player0",
		moves:  []game.Move{mockMove{id: 0}, mockMove{id: 1}},
		next:   map[int]*mockState{0: leaf, 1: leaf},
	}
	node := newDecision(nil, state.Player(), state)

	first, _, _ := node.SelectOrExpand(state)
	second, _, _ := node.SelectOrExpand(state)
	backup(first, "Player0", Win)
	backup(second, "Player0", Loss)

	child, childState, selected := node.SelectOrExpand(state)

	require.True(t, selected)
	require.Same(t, first, child, "should select the child with the winning record")
	require.Same(t, leaf, childState.(*mockState))
}

func TestDecisionStochasticMoveExpandsChanceNode(t *testing.T) {
	outcome := &mockState{player: "Player0", hash: 7}
	state := &mockState{
		player: "Player0",
		moves:  []game.Move{mockMove{id: 0, stochastic: true}},
		next:   map[int]*mockState{0: outcome},
	}
	node := newDecision(nil, state.Player(), state)

	child, childState, selected := node.SelectOrExpand(state)

	require.False(t, selected)
	require.IsType(t, &chance{}, child)
	require.Same(t, outcome, childState.(*mockState))
}

func TestChanceBranchesPerOutcome(t *testing.T) {
	node := newChance(nil, "Player0")
	outcomeA := &mockState{player: "Player1", hash: 1}
	outcomeB := &mockState{player: "Player1", hash: 2}

	childA, _, selected := node.SelectOrExpand(outcomeA)
	require.False(t, selected, "unseen outcome should expand")
	childB, _, selected := node.SelectOrExpand(outcomeB)
	require.False(t, selected)
	require.NotSame(t, childA, childB)

	again, _, selected := node.SelectOrExpand(outcomeA)
	require.True(t, selected, "seen outcome should select")
	require.Same(t, childA, again)
}

func TestBackupScoresByPlayer(t *testing.T) {
	state := &mockState{player: "Player0", moves: []game.Move{mockMove{id: 0}}}
	child := &mockState{player: "Player1", winner: "Player1"}
	state.next = map[int]*mockState{0: child}
	root := newDecision(nil, state.Player(), state)

	leaf, _, _ := root.SelectOrExpand(state)
	backup(leaf, "Player1", Win)

	require.Equal(t, 1.0, root.Visits())
	require.Equal(t, -Win, root.rewards, "opponent win counts against the root player")
	require.Equal(t, 1.0, leaf.Visits())
	require.Equal(t, -Win, leaf.(*decision).rewards, "the move into the leaf let the opponent win")
}

func TestVirtualLossIsReversedOnBackup(t *testing.T) {
	state := &mockState{player: "Player0", moves: []game.Move{mockMove{id: 0}}}
	state.next = map[int]*mockState{0: {player: "Player1"}}
	root := newDecision(nil, state.Player(), state)

	leaf, _, _ := root.SelectOrExpand(state)
	d := leaf.(*decision)
	require.Equal(t, 1.0, d.Visits(), "in-flight episode holds a virtual loss")
	require.Equal(t, Loss, d.rewards)

	backup(leaf, "Player0", Win)
	require.Equal(t, 1.0, d.Visits())
	require.Equal(t, Win, d.rewards)
}

func TestUCB1(t *testing.T) {
	require.True(t, math.IsInf(ucb1(0, 0, 1), 1), "unvisited node scores infinity")
	require.Greater(t, ucb1(1, 1, 2), ucb1(-1, 1, 2))
}

func TestRolloutStuckStateUsesEvaluation(t *testing.T) {
	stuck := &mockState{player: "Player0"}
	collector := metrics.NewCollector()
	mcts := NewMCTS(
		WithEvaluate(func(game.State) float64 { return 0.25 }),
		WithMetrics(collector),
	)
	collector.Start(1, DefaultCutoff)

	player, score := mcts.rollout(stuck)

	require.Equal(t, "Player0", player)
	require.Equal(t, 0.25, score)
	require.Zero(t, collector.Complete().FullPlayouts, "a stuck state is not a full playout")
}

func TestRolloutTerminalStateScoresWinner(t *testing.T) {
	won := &mockState{player: "Player1", winner: "Player1"}
	collector := metrics.NewCollector()
	mcts := NewMCTS(WithMetrics(collector))
	collector.Start(1, DefaultCutoff)

	player, score := mcts.rollout(won)

	require.Equal(t, "Player1", player)
	require.Equal(t, Win, score)
	require.Equal(t, 1, collector.Complete().FullPlayouts)
}

func TestPolicySumsToOne(t *testing.T) {
	state := game.NewGameState(2, game.WithSeed(42))
	mcts := NewMCTS(WithEpisodes(200), WithCutoff(50), WithMetrics(metrics.NewCollector()))

	policy, metric := mcts.Simulate(state)

	require.NotEmpty(t, policy)
	total := 0.0
	for move, prob := range policy {
		require.Contains(t, state.LegalMoves(), move)
		total += prob
	}
	require.InDelta(t, 1.0, total, 1e-9)
	require.Equal(t, 200, metric.Episodes)
}

func TestSearchByDuration(t *testing.T) {
	state := game.NewGameState(2, game.WithSeed(42))
	mcts := NewMCTS(WithDuration(20*time.Millisecond), WithCutoff(50), WithGoroutines(4), WithMetrics(metrics.NewCollector()))

	policy, metric := mcts.Simulate(state)

	require.NotEmpty(t, policy)
	require.Greater(t, metric.Episodes, 0)
	require.GreaterOrEqual(t, metric.Duration, 20*time.Millisecond)
}

func TestAgentPlaysLegalMove(t *testing.T) {
	state := game.NewGameState(2, game.WithSeed(42))
	agent := NewAgent(NewMCTS(WithEpisodes(100), WithCutoff(50), WithMetrics(metrics.NewCollector())))

	action := agent.Action(state)

	require.Contains(t, state.LegalMoves(), game.Move(action))
	require.Equal(t, 100, agent.LastSearch().Episodes)
}
