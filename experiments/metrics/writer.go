package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// AgentConfig describes one seated agent for the record.
type AgentConfig struct {
	ID         int
	Kind       string
	Seed       uint64
	Goroutines int
	Episodes   int
	Duration   time.Duration
	Cutoff     int
}

// GameRecord ties one game to the agents seated at it, in seat order.
type GameRecord struct {
	GameMetric
	Agents []int
}

// MoveRecord ties one move to its game.
type MoveRecord struct {
	Game string
	MoveMetric
}

// Writer persists experiment results as CSV files under a timestamped
// directory.
type Writer struct {
	dir string
}

// NewWriter creates the output directory <baseDir>/<name>/<timestamp>.
func NewWriter(baseDir, name string) (*Writer, error) {
	dir := filepath.Join(baseDir, name, time.Now().Format("2006-01-02-15-04-05"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Writer{dir: dir}, nil
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

func (w *Writer) writeCSV(filename string, header []string, rows [][]string) error {
	file, err := os.Create(filepath.Join(w.dir, filename))
	if err != nil {
		return fmt.Errorf("creating %s: %w", filename, err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing %s header: %w", filename, err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("writing %s rows: %w", filename, err)
	}
	cw.Flush()
	return cw.Error()
}

// WriteAgentConfigs writes agent_configs.csv.
func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"agent", "kind", "seed", "goroutines", "episodes", "duration_ms", "cutoff"}
	rows := make([][]string, 0, len(configs))
	for _, c := range configs {
		rows = append(rows, []string{
			strconv.Itoa(c.ID),
			c.Kind,
			strconv.FormatUint(c.Seed, 10),
			strconv.Itoa(c.Goroutines),
			strconv.Itoa(c.Episodes),
			strconv.FormatInt(c.Duration.Milliseconds(), 10),
			strconv.Itoa(c.Cutoff),
		})
	}
	return w.writeCSV("agent_configs.csv", header, rows)
}

// WriteGameRecords writes game_records.csv. Seats are recorded as the agent
// ids joined by '+' in seat order.
func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"game", "agents", "winner", "total_moves", "illegal_moves", "duration_ms"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		seats := ""
		for i, agent := range r.Agents {
			if i > 0 {
				seats += "+"
			}
			seats += strconv.Itoa(agent)
		}
		rows = append(rows, []string{
			r.ID,
			seats,
			r.Winner,
			strconv.Itoa(r.TotalMoves),
			strconv.Itoa(r.IllegalMoves),
			strconv.FormatInt(r.Duration.Milliseconds(), 10),
		})
	}
	return w.writeCSV("game_records.csv", header, rows)
}

// WriteMoveRecords writes move_records.csv.
func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{
		"game", "step", "player", "action", "illegal",
		"goroutines", "duration_us", "episodes", "full_playouts", "cutoff",
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Game,
			strconv.Itoa(r.Step),
			strconv.Itoa(r.Player),
			strconv.Itoa(r.Action),
			strconv.FormatBool(r.Illegal),
			strconv.Itoa(r.Goroutines),
			strconv.FormatInt(r.SearchMetric.Duration.Microseconds(), 10),
			strconv.Itoa(r.Episodes),
			strconv.Itoa(r.FullPlayouts),
			strconv.Itoa(r.SearchMetric.Cutoff),
		})
	}
	return w.writeCSV("move_records.csv", header, rows)
}
