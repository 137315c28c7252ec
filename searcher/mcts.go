package searcher

import (
	"math/rand"
	"sync"
	"time"

	"machikoro/experiments/metrics"
	"machikoro/game"
)

// Search defaults. Cutoff bounds playout length so searches stay responsive
// even when random play takes long to crown a winner.
const (
	DefaultGoroutines = 1
	DefaultEpisodes   = 1000
	DefaultCutoff     = 500
)

// MCTS runs parallel upper confidence tree searches over game states. The
// zero value is not usable; construct with NewMCTS.
type MCTS struct {
	goroutines int
	episodes   int
	duration   time.Duration
	cutoff     int
	evaluate   game.Evaluate
	metrics    metrics.Collector
}

type Option func(*MCTS)

// WithGoroutines sets the number of concurrent search goroutines.
func WithGoroutines(goroutines int) Option {
	return func(m *MCTS) {
		m.goroutines = goroutines
	}
}

// WithEpisodes stops the search after a fixed number of episodes.
func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		m.episodes = episodes
		m.duration = 0
	}
}

// WithDuration stops the search after a time budget instead of an episode
// count.
func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		m.duration = duration
		m.episodes = 0
	}
}

// WithCutoff truncates playouts after the given number of moves; truncated
// playouts are scored by the evaluation function.
func WithCutoff(cutoff int) Option {
	return func(m *MCTS) {
		m.cutoff = cutoff
	}
}

// WithEvaluate sets the evaluation function for truncated playouts.
func WithEvaluate(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		m.evaluate = evaluate
	}
}

// WithMetrics sets the collector receiving search statistics.
func WithMetrics(collector metrics.Collector) Option {
	return func(m *MCTS) {
		m.metrics = collector
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{
		goroutines: DefaultGoroutines,
		episodes:   DefaultEpisodes,
		cutoff:     DefaultCutoff,
		evaluate:   game.EvaluateNetWorth,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Simulate searches from the given state and returns the visit distribution
// over its legal moves together with the search statistics.
func (m *MCTS) Simulate(state game.State) (map[game.Move]float64, metrics.SearchMetric) {
	m.metrics.Start(m.goroutines, m.cutoff)

	root := newDecision(nil, state.Player(), state)
	if m.duration > 0 {
		m.searchFor(root, state, m.duration)
	} else {
		m.searchCount(root, state, m.episodes)
	}
	return root.Policy(), m.metrics.Complete()
}

func (m *MCTS) searchCount(root *decision, state game.State, episodes int) {
	remaining := make(chan struct{}, episodes)
	for i := 0; i < episodes; i++ {
		remaining <- struct{}{}
	}
	close(remaining)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range remaining {
				m.simulate(root, state)
			}
		}()
	}
	wg.Wait()
}

func (m *MCTS) searchFor(root *decision, state game.State, duration time.Duration) {
	done := make(chan struct{})
	timer := time.AfterFunc(duration, func() { close(done) })
	defer timer.Stop()

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
					m.simulate(root, state)
				}
			}
		}()
	}
	wg.Wait()
}

// simulate runs one episode: descend to a leaf, play out, back up the score.
func (m *MCTS) simulate(root *decision, state game.State) {
	node, leafState := descend(root, state)
	player, score := m.rollout(leafState)
	backup(node, player, score)
	m.metrics.AddEpisode()
}

// descend walks the tree until a node is expanded or a terminal node is
// reached.
func descend(root *decision, state game.State) (Node, game.State) {
	var node Node = root
	child, childState, selected := node.SelectOrExpand(state)
	for selected && child != node {
		node, state = child, childState
		child, childState, selected = node.SelectOrExpand(state)
	}
	return child, childState
}

// rollout plays uniformly random moves until the game ends or the cutoff is
// reached, returning the player the score is for and the score itself.
func (m *MCTS) rollout(state game.State) (string, float64) {
	moves := state.LegalMoves()
	for depth := 0; len(moves) > 0; depth++ {
		if depth >= m.cutoff {
			return state.Player(), m.evaluate(state)
		}
		state = state.Play(moves[rand.Intn(len(moves))])
		moves = state.LegalMoves()
	}
	if winner := state.Winner(); winner != "" {
		m.metrics.AddFullPlayout()
		return winner, Win
	}
	// A moveless state without a winner is stuck, not won; score it like a
	// cutoff instead of crediting a win to nobody.
	return state.Player(), m.evaluate(state)
}

func backup(node Node, player string, score float64) {
	for node != nil {
		node = node.Backup(player, score)
	}
}
