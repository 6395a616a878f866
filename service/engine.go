package service

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/RjRDRG/sd2021-tp1/domain"
	"github.com/RjRDRG/sd2021-tp1/interfaces"
)

// Per-cell degradation markers. A bad cell never fails the whole sheet;
// it renders one of these instead.
const (
	MarkerCycle       = "#CYCLE!"
	MarkerUnavailable = "#UNAVAIL!"
	MarkerError       = "#ERROR!"
)

// Sentinels carried through the evaluation of one sheet; each maps to one
// display marker.
var (
	errCycle      = errors.New("formula cycle")
	errUnavail    = errors.New("referenced domain unavailable")
	errBadFormula = errors.New("malformed formula")
)

// Engine computes the display matrix of a spreadsheet. Formulas start with
// '=' and combine numbers, cell references, parentheses, the four basic
// operators and SUM/AVG over local or foreign ranges. Every call evaluates
// from scratch; nothing is cached across calls.
type Engine struct {
	factory interfaces.ClientFactory
	logger  log.Logger
}

// NewEngine creates an engine that reaches foreign spreadsheets through
// factory.
func NewEngine(factory interfaces.ClientFactory, logger log.Logger) *Engine {
	return &Engine{
		factory: factory,
		logger:  log.WithPrefix(logger, "component", "engine"),
	}
}

// ComputeValues evaluates every cell of the sheet. Literals display
// verbatim, formulas display their numeric result, broken cells display a
// marker. The result always has the sheet's full dimensions.
func (e *Engine) ComputeValues(ctx context.Context, sheet domain.Spreadsheet) [][]string {
	ev := &evaluation{
		engine:  e,
		ctx:     ctx,
		sheet:   sheet,
		colors:  make(map[CellCoord]cellColor),
		numbers: make(map[CellCoord]float64),
		failed:  make(map[CellCoord]error),
		foreign: make(map[string]foreignFetch),
	}

	out := make([][]string, sheet.Rows)
	for row := 0; row < sheet.Rows; row++ {
		out[row] = make([]string, sheet.Columns)
		for col := 0; col < sheet.Columns; col++ {
			out[row][col] = ev.displayCell(CellCoord{Row: row, Col: col})
		}
	}
	return out
}

type cellColor int

const (
	colorWhite cellColor = iota // not visited
	colorGrey                   // on the current DFS path
	colorBlack                  // finished
)

type foreignFetch struct {
	values [][]string
	err    error
}

// evaluation is the state of one ComputeValues call: DFS coloring for cycle
// detection, per-cell memoization and a memo of foreign fetches so each
// referenced (sheet, range) is requested at most once per call.
type evaluation struct {
	engine *Engine
	ctx    context.Context
	sheet  domain.Spreadsheet

	colors  map[CellCoord]cellColor
	numbers map[CellCoord]float64
	failed  map[CellCoord]error
	foreign map[string]foreignFetch
}

func (ev *evaluation) displayCell(c CellCoord) string {
	raw := ev.sheet.CellRawValue(c.Row, c.Col)
	if raw == "" {
		return ""
	}
	if !strings.HasPrefix(raw, "=") {
		return raw
	}

	v, err := ev.cellNumber(c)
	switch {
	case err == nil:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case errors.Is(err, errCycle):
		return MarkerCycle
	case errors.Is(err, errUnavail):
		return MarkerUnavailable
	default:
		return MarkerError
	}
}

// cellNumber returns the numeric value of a cell, running the three-color
// DFS. Hitting a grey cell means the reference chain closed on itself.
func (ev *evaluation) cellNumber(c CellCoord) (float64, error) {
	switch ev.colors[c] {
	case colorGrey:
		return 0, errCycle
	case colorBlack:
		if err, ok := ev.failed[c]; ok {
			return 0, err
		}
		return ev.numbers[c], nil
	}

	ev.colors[c] = colorGrey
	v, err := ev.computeCell(c)
	ev.colors[c] = colorBlack
	if err != nil {
		ev.failed[c] = err
		return 0, err
	}
	ev.numbers[c] = v
	return v, nil
}

func (ev *evaluation) computeCell(c CellCoord) (float64, error) {
	raw := ev.sheet.CellRawValue(c.Row, c.Col)
	if raw == "" {
		return 0, nil
	}
	if formula, ok := strings.CutPrefix(raw, "="); ok {
		return ev.evalFormula(formula)
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, errBadFormula
	}
	return v, nil
}

func (ev *evaluation) evalFormula(formula string) (float64, error) {
	p := &formulaParser{src: formula, ev: ev}
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpaces()
	if p.pos != len(p.src) {
		return 0, errBadFormula
	}
	return v, nil
}

// fetchForeign requests the computed values of a range in another domain's
// spreadsheet, memoized per evaluation. The referring sheet's owner is the
// requesting principal. Any failure renders as unavailable.
func (ev *evaluation) fetchForeign(domainID, sheetID, rawRange string) ([][]string, error) {
	key := domainID + "/" + sheetID + "!" + rawRange
	if fetch, ok := ev.foreign[key]; ok {
		return fetch.values, fetch.err
	}

	values, err := ev.doFetchForeign(domainID, sheetID, rawRange)
	ev.foreign[key] = foreignFetch{values: values, err: err}
	return values, err
}

func (ev *evaluation) doFetchForeign(domainID, sheetID, rawRange string) ([][]string, error) {
	client, err := ev.engine.factory.SpreadsheetsFor(domainID)
	if err != nil {
		level.Debug(ev.engine.logger).Log("msg", "cannot reach referenced domain", "domain", domainID, "err", err)
		return nil, errUnavail
	}
	values, err := client.GetReferencedSpreadsheetValues(ev.ctx, sheetID, ev.sheet.Owner, rawRange)
	if err != nil {
		level.Debug(ev.engine.logger).Log(
			"msg", "referenced values fetch failed",
			"domain", domainID,
			"sheet", sheetID,
			"err", err,
		)
		return nil, errUnavail
	}
	return values, nil
}

// aggregate folds SUM or AVG over a range reference. Empty cells are
// skipped; AVG divides by the number of non-empty cells.
func (ev *evaluation) aggregate(ref RangeRef, average bool) (float64, error) {
	var sum float64
	var count int

	if ref.Remote {
		values, err := ev.fetchForeign(ref.DomainID, ref.SheetID, ref.RawRange)
		if err != nil {
			return 0, err
		}
		for _, row := range values {
			for _, cell := range row {
				if cell == "" {
					continue
				}
				v, err := strconv.ParseFloat(cell, 64)
				if err != nil {
					return 0, errBadFormula
				}
				sum += v
				count++
			}
		}
	} else {
		for row := ref.Range.Start.Row; row <= ref.Range.End.Row && row < ev.sheet.Rows; row++ {
			for col := ref.Range.Start.Col; col <= ref.Range.End.Col && col < ev.sheet.Columns; col++ {
				if ev.sheet.CellRawValue(row, col) == "" {
					continue
				}
				v, err := ev.cellNumber(CellCoord{Row: row, Col: col})
				if err != nil {
					return 0, err
				}
				sum += v
				count++
			}
		}
	}

	if average {
		if count == 0 {
			return 0, nil
		}
		return sum / float64(count), nil
	}
	return sum, nil
}

// foreignCell resolves a single-cell reference into another domain's sheet
// by fetching the one-cell range around it.
func (ev *evaluation) foreignCell(domainID, sheetID, cellID string) (float64, error) {
	values, err := ev.fetchForeign(domainID, sheetID, cellID+":"+cellID)
	if err != nil {
		return 0, err
	}
	if len(values) == 0 || len(values[0]) == 0 || values[0][0] == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(values[0][0], 64)
	if err != nil {
		return 0, errBadFormula
	}
	return v, nil
}

// Reference shapes recognized inside formulas. Sheet ids may contain
// hyphens, so foreign references are matched as a unit before the operator
// scan ever sees their insides.
var (
	foreignRefPattern = regexp.MustCompile(`^([A-Za-z0-9_.-]+)/([A-Za-z0-9_.-]+)!([A-Za-z]+[0-9]+(?::[A-Za-z]+[0-9]+)?)`)
	cellRefPattern    = regexp.MustCompile(`^[A-Za-z]+[0-9]+`)
	funcNamePattern   = regexp.MustCompile(`^[A-Za-z]+\(`)
)

// formulaParser is a recursive-descent parser over one formula body:
//
//	expr   = term {("+"|"-") term}
//	term   = factor {("*"|"/") factor}
//	factor = number | cellRef | foreignRef | func "(" rangeRef ")" |
//	         "(" expr ")" | ("+"|"-") factor
type formulaParser struct {
	src string
	pos int
	ev  *evaluation
}

func (p *formulaParser) skipSpaces() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *formulaParser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *formulaParser) parseExpr() (float64, error) {
	v, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpaces()
		op := p.peek()
		if op != '+' && op != '-' {
			return v, nil
		}
		p.pos++
		rhs, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			v += rhs
		} else {
			v -= rhs
		}
	}
}

func (p *formulaParser) parseTerm() (float64, error) {
	v, err := p.parseFactor()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpaces()
		op := p.peek()
		if op != '*' && op != '/' {
			return v, nil
		}
		p.pos++
		rhs, err := p.parseFactor()
		if err != nil {
			return 0, err
		}
		if op == '*' {
			v *= rhs
		} else {
			if rhs == 0 {
				return 0, errBadFormula
			}
			v /= rhs
		}
	}
}

func (p *formulaParser) parseFactor() (float64, error) {
	p.skipSpaces()
	rest := p.src[p.pos:]

	switch {
	case p.peek() == '(':
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		p.skipSpaces()
		if p.peek() != ')' {
			return 0, errBadFormula
		}
		p.pos++
		return v, nil

	case p.peek() == '+':
		p.pos++
		return p.parseFactor()

	case p.peek() == '-':
		p.pos++
		v, err := p.parseFactor()
		return -v, err

	case p.peek() >= '0' && p.peek() <= '9', p.peek() == '.':
		return p.parseNumber()

	case funcNamePattern.MatchString(rest):
		return p.parseFunc()

	case foreignRefPattern.MatchString(rest):
		m := foreignRefPattern.FindStringSubmatch(rest)
		p.pos += len(m[0])
		if strings.Contains(m[3], ":") {
			return 0, errBadFormula
		}
		return p.ev.foreignCell(m[1], m[2], strings.ToUpper(m[3]))

	case cellRefPattern.MatchString(rest):
		ref := cellRefPattern.FindString(rest)
		p.pos += len(ref)
		coord, err := ParseCellID(ref)
		if err != nil {
			return 0, errBadFormula
		}
		if coord.Row >= p.ev.sheet.Rows || coord.Col >= p.ev.sheet.Columns {
			return 0, errBadFormula
		}
		return p.ev.cellNumber(coord)

	default:
		return 0, errBadFormula
	}
}

func (p *formulaParser) parseNumber() (float64, error) {
	start := p.pos
	for p.pos < len(p.src) {
		ch := p.src[p.pos]
		if (ch >= '0' && ch <= '9') || ch == '.' {
			p.pos++
			continue
		}
		break
	}
	v, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return 0, errBadFormula
	}
	return v, nil
}

// parseFunc handles SUM(...) and AVG(...). A function name's argument is
// the raw text up to the closing parenthesis, parsed as a range reference.
func (p *formulaParser) parseFunc() (float64, error) {
	open := strings.IndexByte(p.src[p.pos:], '(')
	name := strings.ToUpper(p.src[p.pos : p.pos+open])

	argStart := p.pos + open + 1
	closing := strings.IndexByte(p.src[argStart:], ')')
	if closing < 0 {
		return 0, errBadFormula
	}
	arg := strings.TrimSpace(p.src[argStart : argStart+closing])
	p.pos = argStart + closing + 1

	ref, err := ParseRangeRef(arg)
	if err != nil {
		return 0, errBadFormula
	}

	switch name {
	case "SUM":
		return p.ev.aggregate(ref, false)
	case "AVG":
		return p.ev.aggregate(ref, true)
	default:
		return 0, errBadFormula
	}
}
