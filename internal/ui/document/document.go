// Package document shows a page in a scrollable viewport and tracks the
// user's text selection over it, by mouse drag or by keyboard.
package document

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"github.com/riordanpawley/translate-ai/internal/domain"
	"github.com/riordanpawley/translate-ai/internal/ui/styles"
)

const (
	tabWidth    = 4
	wheelStep   = 3
	minWrapCols = 8
)

// Event reports what an input did to the document
type Event int

const (
	EventNone Event = iota
	// EventScrolled means the viewport moved; retained ranges need re-measuring
	EventScrolled
	// EventSelection means the selection changed
	EventSelection
)

// Pos is a position in wrapped content: line index and rune column
type Pos struct {
	Line int
	Col  int
}

// Before reports whether p comes strictly before o
func (p Pos) Before(o Pos) bool {
	return p.Line < o.Line || (p.Line == o.Line && p.Col < o.Col)
}

type line struct {
	text []rune
	// hard is set on the last wrapped piece of a source line
	hard bool
}

// Model is the page view. It is used through a pointer so ranges handed
// out by Selection stay attached to it.
type Model struct {
	styles *styles.Styles
	vp     viewport.Model

	raw    string
	lines  []line
	width  int
	height int
	layout uint64

	anchor   Pos
	head     Pos
	dragging bool
	keyboard bool
}

// New creates a document for text
func New(text string, s *styles.Styles) *Model {
	m := &Model{
		styles: s,
		vp:     viewport.New(0, 0),
		raw:    strings.ReplaceAll(text, "\t", strings.Repeat(" ", tabWidth)),
	}
	m.vp.MouseWheelEnabled = false
	m.relayout()
	return m
}

// SetSize resizes the viewport and re-wraps the text when the width changes
func (m *Model) SetSize(width, height int) {
	rewrap := width != m.width
	m.width, m.height = width, height
	m.vp.Width, m.vp.Height = width, height
	if rewrap {
		m.relayout()
	}
	m.refresh()
}

// SetText replaces the page text
func (m *Model) SetText(text string) {
	m.raw = strings.ReplaceAll(text, "\t", strings.Repeat(" ", tabWidth))
	m.relayout()
	m.vp.GotoTop()
}

// Text returns the page text
func (m *Model) Text() string {
	return m.raw
}

// Viewport returns the visible surface size
func (m *Model) Viewport() domain.Viewport {
	return domain.Viewport{Width: float64(m.width), Height: float64(m.height)}
}

// Offset returns the index of the top visible line
func (m *Model) Offset() int {
	return m.vp.YOffset
}

// LineCount returns the number of wrapped lines
func (m *Model) LineCount() int {
	return len(m.lines)
}

// Selecting reports whether a keyboard selection is being extended
func (m *Model) Selecting() bool {
	return m.keyboard
}

// HasSelection reports whether a non-empty selection exists
func (m *Model) HasSelection() bool {
	return m.anchor != m.head
}

func (m *Model) relayout() {
	m.lines = wrapLines(m.raw, m.width)
	m.layout++
	m.clearSelection()
	m.refresh()
}

func wrapLines(text string, width int) []line {
	var out []line
	for _, para := range strings.Split(text, "\n") {
		wrapped := para
		if width >= minWrapCols {
			wrapped = wrap.String(wordwrap.String(para, width), width)
		}
		parts := strings.Split(wrapped, "\n")
		for i, p := range parts {
			out = append(out, line{
				text: []rune(strings.TrimRight(p, " ")),
				hard: i == len(parts)-1,
			})
		}
	}
	return out
}

// Scroll moves the viewport by n lines
func (m *Model) Scroll(n int) Event {
	before := m.vp.YOffset
	m.vp.SetYOffset(before + n)
	if m.vp.YOffset == before {
		return EventNone
	}
	return EventScrolled
}

// HalfPage scrolls by half the viewport height in direction dir (+1 or -1)
func (m *Model) HalfPage(dir int) Event {
	return m.Scroll(dir * max(1, m.height/2))
}

// Top scrolls to the first line
func (m *Model) Top() Event {
	return m.Scroll(-m.vp.YOffset)
}

// Bottom scrolls to the last page
func (m *Model) Bottom() Event {
	return m.Scroll(len(m.lines))
}

// HandleMouse applies a mouse event. Dragging with the left button selects.
func (m *Model) HandleMouse(msg tea.MouseMsg) Event {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return m.Scroll(-wheelStep)
	case tea.MouseButtonWheelDown:
		return m.Scroll(wheelStep)
	}

	if msg.Y < 0 || msg.Y >= m.height {
		return EventNone
	}
	pos := m.posAt(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return EventNone
		}
		m.keyboard = false
		m.dragging = true
		m.anchor, m.head = pos, pos
		m.refresh()
		return EventSelection

	case tea.MouseActionMotion:
		if !m.dragging || pos == m.head {
			return EventNone
		}
		m.head = pos
		m.refresh()
		return EventSelection

	case tea.MouseActionRelease:
		if !m.dragging {
			return EventNone
		}
		m.dragging = false
		m.head = pos
		m.refresh()
		return EventSelection
	}
	return EventNone
}

// posAt maps a viewport cell to a content position
func (m *Model) posAt(x, y int) Pos {
	if len(m.lines) == 0 {
		return Pos{}
	}
	li := min(m.vp.YOffset+y, len(m.lines)-1)
	text := m.lines[li].text

	col, cells := 0, 0
	for col < len(text) {
		w := ansi.StringWidth(string(text[col]))
		if cells+w > x {
			break
		}
		cells += w
		col++
	}
	return Pos{Line: li, Col: col}
}

// StartSelect begins a keyboard selection at the top visible line
func (m *Model) StartSelect() {
	start := Pos{Line: min(m.vp.YOffset, max(0, len(m.lines)-1))}
	m.anchor, m.head = start, start
	m.keyboard = true
	m.dragging = false
	m.refresh()
}

// Move extends a keyboard selection by lines and columns
func (m *Model) Move(dLine, dCol int) Event {
	if !m.keyboard || len(m.lines) == 0 {
		return EventNone
	}
	h := m.head

	if dLine != 0 {
		h.Line = clamp(h.Line+dLine, 0, len(m.lines)-1)
		h.Col = min(h.Col, len(m.lines[h.Line].text))
	}
	for ; dCol > 0; dCol-- {
		h = m.next(h)
	}
	for ; dCol < 0; dCol++ {
		h = m.prev(h)
	}
	return m.setHead(h)
}

// WordForward moves the selection head past the next word
func (m *Model) WordForward() Event {
	if !m.keyboard {
		return EventNone
	}
	h := m.head
	for !m.atEnd(h) && m.isSpace(h) {
		h = m.next(h)
	}
	for !m.atEnd(h) && !m.isSpace(h) {
		h = m.next(h)
	}
	return m.setHead(h)
}

// WordBackward moves the selection head to the start of the previous word
func (m *Model) WordBackward() Event {
	if !m.keyboard {
		return EventNone
	}
	h := m.prev(m.head)
	for h != (Pos{}) && m.isSpace(h) {
		h = m.prev(h)
	}
	for h != (Pos{}) && !m.isSpace(m.prev(h)) {
		h = m.prev(h)
	}
	return m.setHead(h)
}

// LineEnd moves the selection head to the end of its line
func (m *Model) LineEnd() Event {
	if !m.keyboard || len(m.lines) == 0 {
		return EventNone
	}
	return m.setHead(Pos{Line: m.head.Line, Col: len(m.lines[m.head.Line].text)})
}

// LineStart moves the selection head to the start of its line
func (m *Model) LineStart() Event {
	if !m.keyboard {
		return EventNone
	}
	return m.setHead(Pos{Line: m.head.Line})
}

// Finish ends keyboard extension and keeps the selection
func (m *Model) Finish() {
	m.keyboard = false
	m.refresh()
}

// ClearSelection drops the selection
func (m *Model) ClearSelection() {
	m.clearSelection()
	m.refresh()
}

func (m *Model) clearSelection() {
	m.anchor, m.head = Pos{}, Pos{}
	m.dragging = false
	m.keyboard = false
}

func (m *Model) setHead(h Pos) Event {
	if h == m.head {
		return EventNone
	}
	m.head = h
	m.follow(h.Line)
	m.refresh()
	return EventSelection
}

// follow scrolls just enough to keep line visible
func (m *Model) follow(li int) {
	switch {
	case li < m.vp.YOffset:
		m.vp.SetYOffset(li)
	case m.height > 0 && li >= m.vp.YOffset+m.height:
		m.vp.SetYOffset(li - m.height + 1)
	}
}

func (m *Model) next(p Pos) Pos {
	if p.Col < len(m.lines[p.Line].text) {
		return Pos{Line: p.Line, Col: p.Col + 1}
	}
	if p.Line+1 < len(m.lines) {
		return Pos{Line: p.Line + 1}
	}
	return p
}

func (m *Model) prev(p Pos) Pos {
	if p.Col > 0 {
		return Pos{Line: p.Line, Col: p.Col - 1}
	}
	if p.Line > 0 {
		return Pos{Line: p.Line - 1, Col: len(m.lines[p.Line-1].text)}
	}
	return p
}

func (m *Model) atEnd(p Pos) bool {
	last := len(m.lines) - 1
	return p.Line == last && p.Col >= len(m.lines[last].text)
}

// isSpace treats line ends as whitespace
func (m *Model) isSpace(p Pos) bool {
	text := m.lines[p.Line].text
	return p.Col >= len(text) || text[p.Col] == ' '
}

// span returns the selection ordered start to end
func (m *Model) span() (Pos, Pos) {
	if m.head.Before(m.anchor) {
		return m.head, m.anchor
	}
	return m.anchor, m.head
}

// Selection returns the current selection and a live range over it, or
// nil when nothing but whitespace is selected
func (m *Model) Selection() (*domain.Selection, *Range) {
	if !m.HasSelection() {
		return nil, nil
	}
	start, end := m.span()
	r := &Range{doc: m, start: start, end: end, layout: m.layout}

	sel := domain.NewSelection(m.textBetween(start, end), r.BoundingRect())
	if sel == nil {
		return nil, nil
	}
	return sel, r
}

// textBetween joins soft-wrapped pieces with a space and keeps hard breaks
func (m *Model) textBetween(start, end Pos) string {
	var b strings.Builder
	for li := start.Line; li <= end.Line; li++ {
		text := m.lines[li].text
		from, to := 0, len(text)
		if li == start.Line {
			from = min(start.Col, len(text))
		}
		if li == end.Line {
			to = min(end.Col, len(text))
		}
		if from < to {
			b.WriteString(string(text[from:to]))
		}
		if li < end.Line {
			if m.lines[li].hard {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}

// cellX returns the cell column where rune col of line li starts
func (m *Model) cellX(li, col int) int {
	text := m.lines[li].text
	return ansi.StringWidth(string(text[:min(col, len(text))]))
}

// Update implements the scroll keys shared by every mode
func (m *Model) Update(msg tea.Msg) Event {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		return m.HandleMouse(msg)
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			return m.Scroll(1)
		case "k", "up":
			return m.Scroll(-1)
		case "ctrl+d", "pgdown":
			return m.HalfPage(1)
		case "ctrl+u", "pgup":
			return m.HalfPage(-1)
		case "g", "home":
			return m.Top()
		case "G", "end":
			return m.Bottom()
		}
	}
	return EventNone
}

// View renders the visible part of the page
func (m *Model) View() string {
	return m.vp.View()
}

func (m *Model) refresh() {
	rendered := make([]string, len(m.lines))
	start, end := m.span()
	has := m.HasSelection()

	for li, l := range m.lines {
		text := l.text
		switch {
		case has && li >= start.Line && li <= end.Line:
			from, to := 0, len(text)
			if li == start.Line {
				from = min(start.Col, len(text))
			}
			if li == end.Line {
				to = min(end.Col, len(text))
			}
			rendered[li] = m.styles.Page.Render(string(text[:from])) +
				m.styles.Selection.Render(string(text[from:to])) +
				m.styles.Page.Render(string(text[to:]))
		case m.keyboard && li == m.head.Line:
			col := min(m.head.Col, len(text))
			under := " "
			rest := ""
			if col < len(text) {
				under = string(text[col])
				rest = string(text[col+1:])
			}
			rendered[li] = m.styles.Page.Render(string(text[:col])) +
				m.styles.Cursor.Render(under) +
				m.styles.Page.Render(rest)
		default:
			rendered[li] = m.styles.Page.Render(string(text))
		}
	}

	offset := m.vp.YOffset
	m.vp.SetContent(strings.Join(rendered, "\n"))
	m.vp.SetYOffset(offset)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
