package delta

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"aniseek-core/fragment"
)

// ErrFormat is matched (errors.Is) by every FormatError.
var ErrFormat = errors.New("malformed delta file")

// FormatError reports an input line the parser could not interpret.
type FormatError struct {
	Line int
	Text string
	Msg  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("delta line %d: %s: %q", e.Line, e.Msg, e.Text)
}

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// Match is one alignment block reported for a fragment.
type Match struct {
	FragmentID      int
	AlignmentLength int
	NonIdentities   int
}

// Identities is the number of identical positions in the aligned span.
func (m Match) Identities() int { return m.AlignmentLength - m.NonIdentities }

// Policy decides which values a fragment's matches carry when the file
// holds several blocks for it.
type Policy int

const (
	// LastBlock reports every block of a fragment with the values of the
	// fragment's last block in the file.
	LastBlock Policy = iota
	// PerBlock keeps the values of each block.
	PerBlock
)

func (p Policy) String() string {
	switch p {
	case LastBlock:
		return "last-block"
	case PerBlock:
		return "per-block"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy maps a policy name (as printed by String) to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "last-block", "":
		return LastBlock, nil
	case "per-block":
		return PerBlock, nil
	}
	return 0, fmt.Errorf("unknown match policy %q (want last-block | per-block)", s)
}

// recordFields is the field count of an alignment coordinate line.
const recordFields = 7

// ParseFile opens path and parses it with Parse.
func ParseFile(path string, table fragment.Table, policy Policy) ([]Match, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	ms, err := Parse(fh, table, policy)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ms, nil
}

// Parse reads a delta file and returns one Match per alignment block whose
// query id is present in table, in file order. Blocks under a header whose
// id is unknown are skipped. Empty lines, headers without a query token and
// non-numeric ids or coordinates are reported as *FormatError.
func Parse(r io.Reader, table fragment.Table, policy Policy) ([]Match, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var (
		matches []Match
		current int
		set     bool
		ln      int
	)
	for sc.Scan() {
		ln++
		line := strings.TrimRight(sc.Text(), " \t\r")
		if line == "" {
			return nil, &FormatError{Line: ln, Text: line, Msg: "empty line"}
		}
		if line[0] == '>' {
			tok := strings.Fields(line)
			if len(tok) < 2 {
				return nil, &FormatError{Line: ln, Text: line, Msg: "header has no query id"}
			}
			id, err := strconv.Atoi(tok[1])
			if err != nil {
				return nil, &FormatError{Line: ln, Text: line, Msg: "query id is not an integer"}
			}
			_, set = table.Lookup(id)
			current = id
			continue
		}
		if !set {
			continue
		}
		cols := strings.Fields(line)
		if len(cols) != recordFields {
			continue
		}
		qStart, err1 := strconv.Atoi(cols[2])
		qStop, err2 := strconv.Atoi(cols[3])
		nonID, err3 := strconv.Atoi(cols[4])
		if err := errors.Join(err1, err2, err3); err != nil {
			return nil, &FormatError{Line: ln, Text: line, Msg: "non-numeric alignment field"}
		}
		matches = append(matches, Match{
			FragmentID:      current,
			AlignmentLength: abs(qStop-qStart) + 1,
			NonIdentities:   nonID,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("delta scan: %w", err)
	}
	if policy == LastBlock {
		applyLastBlock(matches)
	}
	return matches, nil
}

// applyLastBlock rewrites every match of a fragment with the values of that
// fragment's final block.
func applyLastBlock(ms []Match) {
	last := make(map[int]Match, len(ms))
	for _, m := range ms {
		last[m.FragmentID] = m
	}
	for i := range ms {
		ms[i] = last[ms[i].FragmentID]
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
