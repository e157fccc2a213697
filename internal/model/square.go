package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Square is a zero-based (row, column) pair. Row 0 is rank 1, column 0 is the a-file.
type Square struct {
	Row int
	Col int
}

func (s Square) Inside() bool {
	return s.Row >= 0 && s.Row < 8 && s.Col >= 0 && s.Col < 8
}

func (s Square) String() string {
	if !s.Inside() {
		return "invalid"
	}
	return fmt.Sprintf("%c%d", s.Col+'a', s.Row+1)
}

func (s Square) getFileNotation() string {
	return fmt.Sprintf("%c", s.Col+'a')
}

func (s Square) offset(d Direction) Square {
	return Square{Row: s.Row + d.Row, Col: s.Col + d.Col}
}

func (s Square) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Square) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidNotation, err)
	}
	parsed, err := ParseSquare(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSquare converts an algebraic name like "e2" into a Square. Only a
// lowercase file letter followed by a rank digit is accepted.
func ParseSquare(name string) (Square, error) {
	if len(name) != 2 {
		return Square{}, fmt.Errorf("%w: %q", ErrInvalidNotation, name)
	}
	file, rank := name[0], name[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return Square{}, fmt.Errorf("%w: %q", ErrInvalidNotation, name)
	}
	return Square{Row: int(rank - '1'), Col: int(file - 'a')}, nil
}

// ParseMove accepts "e2 e4" as well as the compact "e2e4".
func ParseMove(input string) (Square, Square, error) {
	fields := strings.Fields(input)
	if len(fields) == 1 && len(fields[0]) == 4 {
		fields = []string{fields[0][:2], fields[0][2:]}
	}
	if len(fields) != 2 {
		return Square{}, Square{}, fmt.Errorf("%w: %q", ErrInvalidNotation, input)
	}
	from, err := ParseSquare(fields[0])
	if err != nil {
		return Square{}, Square{}, err
	}
	to, err := ParseSquare(fields[1])
	if err != nil {
		return Square{}, Square{}, err
	}
	return from, to, nil
}
