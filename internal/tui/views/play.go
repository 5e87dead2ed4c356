package views

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/maxwellsmart84/portfolio-2025/internal/assets"
	"github.com/maxwellsmart84/portfolio-2025/internal/game"
	"github.com/maxwellsmart84/portfolio-2025/internal/logger"
	"github.com/maxwellsmart84/portfolio-2025/internal/scores"
	"github.com/maxwellsmart84/portfolio-2025/internal/tui/banner"
	"github.com/mattn/go-runewidth"
	"github.com/sirupsen/logrus"
)

// World units per terminal cell.
const (
	unitsPerCol = 10.0
	unitsPerRow = 20.0
)

// Play view styles
var (
	playSkyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#3d5a80"))
	playPlatformStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a8dadc"))
	playHeroStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff6b6b")).Bold(true)
	playCoinStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffe66d")).Bold(true)
	playBallStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#c7f464"))

	playHUDStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	playScoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffe66d")).
			Bold(true)

	playDialogueStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#4ecdc4")).
				Padding(0, 1)

	playDialogueTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ff6b6b")).
				Bold(true)

	playHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true)

	playBannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffe66d"))

	playErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff6b6b"))
)

// Recorder stores finished runs. *scores.Store implements it.
type Recorder interface {
	Record(ctx context.Context, r scores.Run) (scores.Run, error)
}

// PlayOptions configures the play view.
type PlayOptions struct {
	TypeInterval time.Duration
	HoldTimeout  time.Duration // a key with no repeat for this long counts as released
	SpriteDir    string        // empty for the built-in sprites
	Recorder     Recorder      // nil disables run history
}

// RunRecordedMsg reports a finished run written to the history.
type RunRecordedMsg struct {
	Run scores.Run
	Err error
}

type frameMsg struct{ at time.Time }

type typeMsg struct{ gen int }

type spritesLoadedMsg struct {
	set *assets.Set
	err error
}

// PlayModel hosts a game session in the terminal. Terminals report key
// presses and auto-repeats but no releases, so a held key is released once
// it has not repeated for HoldTimeout.
type PlayModel struct {
	session *game.Session
	opts    PlayOptions

	sprites   *assets.Set
	spriteErr error

	width, height int
	originX       int

	started   bool
	closed    bool
	lastFrame time.Time
	startedAt time.Time
	held      map[string]time.Time

	// At most one typewriter tick is in flight; ticks from an older
	// generation are dropped.
	typeGen int
	typing  bool

	recorded  bool
	recordErr error

	now func() time.Time
	log *logrus.Entry
}

// NewPlayModel wraps session.
func NewPlayModel(session *game.Session, opts PlayOptions) PlayModel {
	if opts.TypeInterval <= 0 {
		opts.TypeInterval = game.DefaultTypeInterval
	}
	if opts.HoldTimeout <= 0 {
		opts.HoldTimeout = game.DefaultHoldTimeout
	}
	return PlayModel{
		session: session,
		opts:    opts,
		held:    make(map[string]time.Time),
		now:     time.Now,
		log:     logger.Log.WithField("component", "play"),
	}
}

// Init loads the sprites and starts the frame clock.
func (m PlayModel) Init() tea.Cmd {
	return tea.Batch(m.loadSprites(), m.frameTick())
}

func (m PlayModel) loadSprites() tea.Cmd {
	dir := m.opts.SpriteDir
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		set, err := assets.LoadOrDefault(ctx, dir)
		return spritesLoadedMsg{set: set, err: err}
	}
}

func (m PlayModel) frameTick() tea.Cmd {
	return tea.Tick(m.session.TickDuration(), func(t time.Time) tea.Msg {
		return frameMsg{at: t}
	})
}

func (m PlayModel) typeTick(gen int) tea.Cmd {
	return tea.Tick(m.opts.TypeInterval, func(time.Time) tea.Msg {
		return typeMsg{gen: gen}
	})
}

// SetSize sets the content area size.
func (m *PlayModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetOrigin sets the screen column the content area starts at, so mouse
// positions can be mapped onto the play area.
func (m *PlayModel) SetOrigin(x int) {
	m.originX = x
}

// Close stops every clock. Later ticks are dropped and not re-armed.
func (m *PlayModel) Close() {
	m.closed = true
	m.typing = false
}

// Closed reports whether Close was called.
func (m PlayModel) Closed() bool { return m.closed }

// Started reports whether the player has focused the game.
func (m PlayModel) Started() bool { return m.started }

// Session returns the hosted session.
func (m PlayModel) Session() *game.Session { return m.session }

// Update handles messages.
func (m PlayModel) Update(msg tea.Msg) (PlayModel, tea.Cmd) {
	if m.closed {
		return m, nil
	}

	switch msg := msg.(type) {
	case spritesLoadedMsg:
		if msg.err != nil {
			m.spriteErr = msg.err
			m.log.WithError(msg.err).Error("loading sprites, character and coins will not be drawn")
			return m, nil
		}
		m.sprites = msg.set
		return m, nil

	case frameMsg:
		if m.started {
			m.session.Advance(msg.at.Sub(m.lastFrame))
		}
		m.lastFrame = msg.at
		m.releaseStale(msg.at)
		cmd := m.afterStep()
		return m, tea.Batch(m.frameTick(), cmd)

	case typeMsg:
		if msg.gen != m.typeGen {
			return m, nil
		}
		m.typing = false
		if m.session.TypeTick() && m.session.Phase() == game.PhaseTyping {
			m.typing = true
			return m, m.typeTick(m.typeGen)
		}
		return m, nil

	case RunRecordedMsg:
		if msg.Err != nil {
			m.recordErr = msg.Err
			m.log.WithError(msg.Err).Error("recording run")
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	return m, nil
}

func (m PlayModel) handleKey(msg tea.KeyMsg) (PlayModel, tea.Cmd) {
	now := m.now()
	if !m.started {
		m.start(now)
		return m, nil
	}

	key := msg.String()
	if key == "r" {
		m.reset(now)
		return m, nil
	}

	if reserved := m.session.KeyDown(key); reserved && !game.ContinueKeys[key] {
		m.held[key] = now
	}
	cmd := m.afterStep()
	return m, cmd
}

func (m PlayModel) handleMouse(msg tea.MouseMsg) (PlayModel, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionRelease {
		return m, nil
	}
	now := m.now()
	switch msg.Action {
	case tea.MouseActionPress:
		if !m.started {
			m.start(now)
			return m, nil
		}
		frac := 0.5
		if m.width > 0 {
			frac = float64(msg.X-m.originX) / float64(m.width)
		}
		m.session.TouchStart(game.SideOf(frac), now)
	case tea.MouseActionRelease:
		m.session.TouchEnd()
	}
	cmd := m.afterStep()
	return m, cmd
}

func (m *PlayModel) start(now time.Time) {
	m.started = true
	m.lastFrame = now
	m.startedAt = now
	m.log.Info("game started")
}

func (m *PlayModel) reset(now time.Time) {
	m.session.Reset()
	clear(m.held)
	m.typeGen++
	m.typing = false
	m.recorded = false
	m.recordErr = nil
	m.startedAt = now
}

// releaseStale synthesizes key releases for keys that stopped repeating.
func (m *PlayModel) releaseStale(now time.Time) {
	for key, at := range m.held {
		if now.Sub(at) >= m.opts.HoldTimeout {
			m.session.KeyUp(key)
			delete(m.held, key)
		}
	}
}

// afterStep arms the typewriter and records a finished run as needed.
func (m *PlayModel) afterStep() tea.Cmd {
	var cmds []tea.Cmd
	phase := m.session.Phase()
	if phase == game.PhaseTyping && !m.typing {
		m.typeGen++
		m.typing = true
		cmds = append(cmds, m.typeTick(m.typeGen))
	}
	if phase == game.PhaseCelebrating && !m.recorded {
		m.recorded = true
		if cmd := m.record(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (m PlayModel) record() tea.Cmd {
	rec := m.opts.Recorder
	if rec == nil {
		return nil
	}
	snap := m.session.Snapshot()
	run := scores.Run{
		Level:      m.session.Level().Name,
		Score:      snap.Score,
		Coins:      snap.Collected,
		Total:      snap.Total,
		Ticks:      snap.Tick,
		Duration:   m.now().Sub(m.startedAt),
		FinishedAt: m.now(),
	}
	m.log.WithFields(logrus.Fields{"score": run.Score, "ticks": run.Ticks}).Info("run finished")
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		saved, err := rec.Record(ctx, run)
		return RunRecordedMsg{Run: saved, Err: err}
	}
}

// View renders the play area.
func (m PlayModel) View() string {
	snap := m.session.Snapshot()
	var b strings.Builder

	b.WriteString(m.renderHUD(snap))
	b.WriteString("\n")
	b.WriteString(m.renderWorld(snap))
	b.WriteString("\n")

	switch {
	case !m.started:
		b.WriteString(playHintStyle.Render("Click or press any key to start. ←/→ or a/d move, ↑/w/space jump."))
	case snap.Dialogue != nil:
		b.WriteString(m.renderDialogue(snap.Dialogue))
	case snap.Phase == game.PhaseCelebrating.String():
		b.WriteString(playBannerStyle.Render(banner.Render("NICE!", 4)))
		b.WriteString("\n")
		b.WriteString(playHintStyle.Render("Every coin found. Press r to play again."))
	}

	if m.spriteErr != nil {
		b.WriteString("\n")
		b.WriteString(playErrorStyle.Render("sprites unavailable: " + m.spriteErr.Error()))
	}
	if m.recordErr != nil {
		b.WriteString("\n")
		b.WriteString(playErrorStyle.Render("could not save run: " + m.recordErr.Error()))
	}
	return b.String()
}

func (m PlayModel) renderHUD(snap game.Snapshot) string {
	c := snap.Character
	ground := "air"
	if c.Grounded {
		ground = "ground"
	}
	pos := fmt.Sprintf("x:%4.0f y:%4.0f %-6s %s", c.Pos.X, c.Pos.Y, ground, snap.Animation)
	score := fmt.Sprintf("score %d  coins %d/%d", snap.Score, snap.Collected, snap.Total)
	line := playHUDStyle.Render(pos) + "   " + playScoreStyle.Render(score)
	if m.width > 0 && lipgloss.Width(line) > m.width {
		return runewidth.Truncate(pos+"   "+score, m.width, "…")
	}
	return line
}

type cellKind uint8

const (
	cellSky cellKind = iota
	cellPlatform
	cellHero
	cellCoin
	cellBall
)

var cellStyles = map[cellKind]lipgloss.Style{
	cellSky:      playSkyStyle,
	cellPlatform: playPlatformStyle,
	cellHero:     playHeroStyle,
	cellCoin:     playCoinStyle,
	cellBall:     playBallStyle,
}

type grid struct {
	cols, rows int
	runes      [][]rune
	kinds      [][]cellKind
}

func newGrid(cols, rows int) *grid {
	g := &grid{cols: cols, rows: rows}
	g.runes = make([][]rune, rows)
	g.kinds = make([][]cellKind, rows)
	for r := range g.runes {
		g.runes[r] = []rune(strings.Repeat(" ", cols))
		g.kinds[r] = make([]cellKind, cols)
	}
	return g
}

func (g *grid) set(col, row int, r rune, k cellKind) {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return
	}
	g.runes[row][col] = r
	g.kinds[row][col] = k
}

// blit draws frame with its bottom-left cell at (col, bottom). Spaces are
// transparent.
func (g *grid) blit(frame assets.Frame, col, bottom int, k cellKind) {
	top := bottom - len(frame) + 1
	for i, line := range frame {
		for j, r := range []rune(line) {
			if r != ' ' {
				g.set(col+j, top+i, r, k)
			}
		}
	}
}

func (g *grid) String() string {
	var b strings.Builder
	for r := 0; r < g.rows; r++ {
		start := 0
		for c := 1; c <= g.cols; c++ {
			if c == g.cols || g.kinds[r][c] != g.kinds[r][start] {
				b.WriteString(cellStyles[g.kinds[r][start]].Render(string(g.runes[r][start:c])))
				start = c
			}
		}
		if r < g.rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m PlayModel) viewCols() int {
	if m.width > 0 {
		return m.width
	}
	return 80
}

func (m PlayModel) renderWorld(snap game.Snapshot) string {
	t := m.session.Level().Tuning
	rows := int(t.WorldHeight / unitsPerRow)
	g := newGrid(m.viewCols(), rows)
	cam := snap.Camera

	colOf := func(x float64) int { return int((x - cam) / unitsPerCol) }
	rowOf := func(y float64) int { return int(y / unitsPerRow) }

	for _, p := range m.session.Level().Platforms {
		for r := rowOf(p.Top()); r <= rowOf(p.Top()+p.Height-1); r++ {
			ch := '█'
			if r == rowOf(p.Top()) && math.Mod(p.Top(), unitsPerRow) >= unitsPerRow/2 {
				ch = '▄'
			}
			for c := colOf(p.Left()); c < colOf(p.Right()); c++ {
				g.set(c, r, ch, cellPlatform)
			}
		}
	}

	for _, ball := range snap.Particles {
		g.set(colOf(ball.Pos.X), rowOf(ball.Pos.Y), 'o', cellBall)
	}

	if m.sprites != nil {
		if coin, ok := m.sprites.Frame(assets.SeqCoin, snap.Tick); ok {
			for _, cv := range snap.Coins {
				g.blit(coin, colOf(cv.Pos.X)-coin.Width()/2, rowOf(cv.Pos.Y), cellCoin)
			}
		}
		if hero, ok := m.sprites.Frame(snap.Animation, snap.Tick); ok {
			if snap.Character.Facing == game.FacingLeft {
				hero = hero.Mirror()
			}
			c := snap.Character.Pos
			g.blit(hero, colOf(c.X)-hero.Width()/2, rowOf(c.Y)-1, cellHero)
		}
	}

	return g.String()
}

func (m PlayModel) renderDialogue(d *game.DialogueView) string {
	width := 70
	if m.width > 0 && m.width-4 < width {
		width = m.width - 4
	}
	body := wordWrap(d.Text, width-4)
	hint := "enter, e or click to continue"
	if d.Typing {
		hint = "enter to skip"
	} else if d.Closing {
		hint = "enter to celebrate"
	}
	return playDialogueStyle.Width(width).Render(
		playDialogueTitleStyle.Render(d.Title) + "\n" + body + "\n" + playHintStyle.Render(hint),
	)
}

// wordWrap breaks s into lines of at most width cells.
func wordWrap(s string, width int) string {
	if width <= 0 {
		width = 60
	}
	var lines []string
	var currentLine strings.Builder
	currentWidth := 0

	for _, word := range strings.Fields(s) {
		wordWidth := runewidth.StringWidth(word)
		if currentWidth+wordWidth+1 > width && currentWidth > 0 {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
			currentWidth = 0
		}
		if currentWidth > 0 {
			currentLine.WriteString(" ")
			currentWidth++
		}
		currentLine.WriteString(word)
		currentWidth += wordWidth
	}
	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}
	return strings.Join(lines, "\n")
}
