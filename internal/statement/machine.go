package statement

import (
	"log/slog"
	"strings"
	"time"

	"github.com/cleared-dev/betterqif/internal/model"
)

// section is the kind of statement table being read.
type section int

const (
	sectionNone section = iota
	sectionDividend
	sectionActivity
)

func (s section) String() string {
	switch s {
	case sectionDividend:
		return "dividend"
	case sectionActivity:
		return "activity"
	default:
		return "none"
	}
}

// MachineOptions configures section detection.
type MachineOptions struct {
	Goals []model.Goal
	// DividendSections and ActivitySections are phrases that, when contained
	// in a line, switch the parser to that section.
	DividendSections []string
	ActivitySections []string
	// ExitGoals ends goal-scoped parsing when a line starts with it.
	ExitGoals string
}

// Machine walks statement lines once, tracking the current goal and section
// and feeding lines to the dividend or activity parser.
type Machine struct {
	parser   *Parser
	opts     MachineOptions
	goalToks [][]string
	exitToks []string
	logger   *slog.Logger
}

// NewMachine returns a Machine using parser for line classification.
func NewMachine(parser *Parser, opts MachineOptions, logger *slog.Logger) *Machine {
	if logger == nil {
		logger = slog.Default()
	}
	goalToks := make([][]string, len(opts.Goals))
	for i, g := range opts.Goals {
		goalToks[i] = g.HeaderTokens()
	}
	return &Machine{
		parser:   parser,
		opts:     opts,
		goalToks: goalToks,
		exitToks: strings.Fields(strings.ToLower(opts.ExitGoals)),
		logger:   logger,
	}
}

// parseState is the state carried between lines of one pass.
type parseState struct {
	goal      string // empty outside a goal
	section   section
	carryDate time.Time
	// subKind is the last kind that was not carried over. Only a goal header
	// clears it: fee sells after the first print as plain sells, and every
	// activity line after a harvest is part of the harvest.
	subKind model.Kind
}

func (s *parseState) enterGoal(key string) {
	s.goal = key
	s.section = sectionNone
	s.subKind = ""
}

// Parse classifies lines in order and returns the transactions found,
// followed by one fee transfer per goal and date that had fee sells.
// Lines that match nothing are skipped.
func (m *Machine) Parse(lines []model.Line) []model.Transaction {
	var (
		st     parseState
		txns   []model.Transaction
		misses int
	)

	for n, raw := range lines {
		line := raw.Lower()

		if key, ok := m.goalHeader(line); ok {
			st.enterGoal(key)
			m.logger.Debug("goal starts", "goal", key, "line", n+1)
		} else if line.HasPrefix(m.exitToks) {
			st.goal = ""
			m.logger.Debug("goals end", "line", n+1)
		}

		if st.goal == "" {
			continue
		}

		var (
			txn model.Transaction
			err error
		)
		switch st.section {
		case sectionDividend:
			txn, err = m.parser.ParseDividend(raw)
		case sectionActivity:
			txn, err = m.activity(&st, raw)
		default:
			err = ErrNoMatch
		}
		if err == nil {
			txn.Goal = st.goal
			txns = append(txns, txn)
		} else if st.section != sectionNone {
			misses++
			m.logger.Debug("line skipped", "line", n+1, "section", st.section.String(), "reason", err)
		}

		if s, ok := m.sectionHeader(line); ok {
			st.section = s
			m.logger.Debug("section starts", "goal", st.goal, "section", s.String(), "line", n+1)
		}
	}

	fees := AggregateFees(txns)
	m.logger.Debug("statement parsed",
		"lines", len(lines),
		"transactions", len(txns),
		"fee_transfers", len(fees),
		"skipped", misses,
	)
	return append(txns, fees...)
}

// activity parses an activity line and applies date and sub-type carry-over.
func (m *Machine) activity(st *parseState, line model.Line) (model.Transaction, error) {
	a, err := m.parser.ParseActivity(line)
	if err != nil {
		return model.Transaction{}, err
	}
	txn := a.Txn

	if a.Dated {
		st.carryDate = txn.Date
	} else {
		if st.carryDate.IsZero() {
			return model.Transaction{}, errNoCarryDate
		}
		txn.Date = st.carryDate
	}

	switch {
	case txn.Kind == model.KindSell && st.subKind == model.KindFeeSell:
		txn.Kind = model.KindFeeSell
	case st.subKind == model.KindTaxLossHarvest:
		// Buy or sell is decided from the share sign when records are emitted.
		txn.Kind = model.KindTaxLossHarvest
	default:
		st.subKind = txn.Kind
	}
	return txn, nil
}

func (m *Machine) goalHeader(line model.Line) (string, bool) {
	for i, toks := range m.goalToks {
		if line.HasPrefix(toks) {
			return m.opts.Goals[i].Key, true
		}
	}
	return "", false
}

// sectionHeader matches by containment because the header's position on the
// line differs between statement layouts.
func (m *Machine) sectionHeader(line model.Line) (section, bool) {
	text := line.Text()
	for _, p := range m.opts.DividendSections {
		if strings.Contains(text, strings.ToLower(p)) {
			return sectionDividend, true
		}
	}
	for _, p := range m.opts.ActivitySections {
		if strings.Contains(text, strings.ToLower(p)) {
			return sectionActivity, true
		}
	}
	return sectionNone, false
}
