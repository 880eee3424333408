package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/bossrush/internal/battle"
	"github.com/samdwyer/bossrush/internal/entity"
	"github.com/samdwyer/bossrush/internal/gamedata"
	"github.com/samdwyer/bossrush/internal/random"
	"github.com/samdwyer/bossrush/internal/telemetry"
	"github.com/samdwyer/bossrush/internal/ui"
)

// logLimit caps the battle log kept for display.
const logLimit = 200

// bossTurnSignal is posted as interrupt data once the boss delay has passed.
type bossTurnSignal struct {
	session uuid.UUID
}

// Game holds the entire game state.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	cfg      Config
	catalog  *gamedata.Catalog
	rng      *rand.Rand
	seed     int64
	state    State
	running  bool

	// Party assembly
	stage     *gamedata.StageDef
	members   []*entity.Member // Picked so far, in roster order
	picked    map[string]bool  // Character IDs already in the party
	pending   *entity.Member   // Picked member waiting for an item
	pendingID string
	notice    string // Feedback shown on the selection screens

	// Battle
	session       *battle.Session
	log           []string
	bossScheduled bool

	// Boss pacing hooks; replaced in tests
	after func(time.Duration, func())
	post  func(tcell.Event)
}

// New creates a new game instance.
func New(cfg Config) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	g, err := newGame(cfg)
	if err != nil {
		screen.Close()
		return nil, err
	}
	g.screen = screen
	g.renderer = ui.NewRenderer(screen)
	g.post = func(ev tcell.Event) {
		_ = screen.PostEvent(ev)
	}
	return g, nil
}

// newGame builds the game state without a terminal.
func newGame(cfg Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	catalog, err := gamedata.LoadCatalog()
	if err != nil {
		return nil, err
	}
	rng, seed, err := random.New(cfg.Seed)
	if err != nil {
		return nil, err
	}

	return &Game{
		cfg:     cfg,
		catalog: catalog,
		rng:     rng,
		seed:    seed,
		state:   StateStageSelect,
		running: true,
		picked:  make(map[string]bool),
		after: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
		post: func(tcell.Event) {},
	}, nil
}

// Seed returns the seed driving boss targeting, for replaying a run.
func (g *Game) Seed() int64 { return g.seed }

// Run executes the main game loop.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	_, initSpan := tracer.Start(ctx, "game.init")
	initSpan.SetAttributes(
		attribute.Int64("seed", g.seed),
		attribute.Int("catalog.characters", len(g.catalog.Characters())),
		attribute.Int("catalog.stages", len(g.catalog.Stages())),
		attribute.Int("catalog.items", len(g.catalog.Items())),
	)
	initSpan.End()

	for g.running {
		g.render()
		g.handleEvent(ctx, g.screen.PollEvent())
		g.scheduleBossTurn()
	}

	g.screen.Close()
	return nil
}

// handleEvent processes a single terminal event.
func (g *Game) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		if g.screen != nil {
			g.screen.Sync()
		}
	case *tcell.EventInterrupt:
		if sig, ok := ev.Data().(bossTurnSignal); ok {
			g.runBossTurn(ctx, sig)
		}
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		g.running = false
		return
	case tcell.KeyEscape:
		if g.state == StateTargetSelect {
			g.state = StateBattle
			return
		}
		g.running = false
		return
	case tcell.KeyRune:
	default:
		return
	}

	r := ev.Rune()
	if r == 'q' || r == 'Q' {
		g.running = false
		return
	}

	switch g.state {
	case StateStageSelect:
		g.selectStage(r)
	case StateRosterSelect:
		g.selectCharacter(r)
	case StateItemSelect:
		g.selectItem(ctx, r)
	case StateBattle:
		g.handleBattleKey(ctx, r)
	case StateTargetSelect:
		g.selectTarget(ctx, r)
	case StateBattleOver:
		if r == 'r' || r == 'R' {
			g.restart(ctx)
		}
	}
}

// =============================================================================
// Party assembly
// =============================================================================

func (g *Game) selectStage(r rune) {
	stages := g.catalog.Stages()
	idx, ok := choiceIndex(r, len(stages))
	if !ok {
		return
	}
	g.stage = &stages[idx]
	g.notice = ""
	g.state = StateRosterSelect
}

func (g *Game) selectCharacter(r rune) {
	characters := g.catalog.Characters()
	idx, ok := choiceIndex(r, len(characters))
	if !ok {
		return
	}
	def := &characters[idx]
	if g.picked[def.ID] {
		g.notice = def.Name + " is already in the party."
		return
	}

	m, err := def.NewMember()
	if err != nil {
		g.notice = err.Error()
		return
	}
	g.pending = m
	g.pendingID = def.ID
	g.notice = ""
	g.state = StateItemSelect
}

func (g *Game) selectItem(ctx context.Context, r rune) {
	items := g.catalog.Items()
	idx, ok := choiceIndex(r, len(items))
	if !ok {
		return
	}

	g.pending.Equip(items[idx].Item())
	g.members = append(g.members, g.pending)
	g.picked[g.pendingID] = true
	g.pending = nil
	g.pendingID = ""

	if len(g.members) < entity.PartySize {
		g.state = StateRosterSelect
		return
	}
	g.startBattle(ctx)
}

// startBattle creates a session for the assembled party against the chosen stage.
func (g *Game) startBattle(ctx context.Context) {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.battle_setup")
	defer span.End()

	names := make([]string, len(g.members))
	for i, m := range g.members {
		names[i] = m.Name
	}
	span.SetAttributes(
		attribute.String("stage", g.stage.ID),
		attribute.StringSlice("party", names),
		attribute.Int64("seed", g.seed),
	)

	g.log = nil
	opts := append(g.cfg.SessionOptions(),
		battle.WithRand(g.rng),
		battle.WithEventSink(g.recordEvent),
	)
	session, err := battle.New(ctx, g.members, g.stage.NewBoss(), opts...)
	if err != nil {
		span.RecordError(err)
		g.resetSelection()
		g.notice = err.Error()
		return
	}

	g.session = session
	g.state = StateBattle
}

// =============================================================================
// Battle
// =============================================================================

func (g *Game) handleBattleKey(ctx context.Context, r rune) {
	if g.session.Phase() != battle.PhasePlayer {
		return
	}
	actor := g.session.CurrentActor()

	switch r {
	case 'a', 'A', '1':
		g.submit(ctx, battle.BasicAttack(actor))
	case 's', 'S', '2':
		if g.session.NeedsAllyTarget(actor) {
			g.state = StateTargetSelect
			return
		}
		g.submit(ctx, battle.Skill(actor))
	case 'e', 'E', '3':
		g.submit(ctx, battle.Special(actor))
	}
}

func (g *Game) selectTarget(ctx context.Context, r rune) {
	idx, ok := choiceIndex(r, len(g.session.Party().Members))
	if !ok {
		return
	}
	g.state = StateBattle
	g.submit(ctx, battle.SkillOn(g.session.CurrentActor(), idx))
}

func (g *Game) submit(ctx context.Context, a battle.Action) {
	out := g.session.SubmitPlayerAction(ctx, a)
	if out.Status == battle.StatusRejected {
		g.addLog(out.Message)
	}
	g.checkBattleOver()
}

// scheduleBossTurn arms the boss timer once every living member has acted.
// The timer only posts an event; the session is advanced on the loop goroutine.
func (g *Game) scheduleBossTurn() {
	if g.session == nil || g.bossScheduled || g.session.Phase() != battle.PhaseBoss {
		return
	}
	g.bossScheduled = true
	sig := bossTurnSignal{session: g.session.ID()}
	post := g.post
	g.after(g.cfg.BossDelay, func() {
		post(tcell.NewEventInterrupt(sig))
	})
}

func (g *Game) runBossTurn(ctx context.Context, sig bossTurnSignal) {
	// A restart may have replaced the session while the timer was pending.
	if g.session == nil || sig.session != g.session.ID() {
		return
	}
	g.bossScheduled = false
	if g.session.AdvanceToBossTurnIfReady(ctx) == nil {
		return
	}
	g.checkBattleOver()
}

func (g *Game) checkBattleOver() {
	if g.session.CheckTerminal() != battle.ResultOngoing {
		g.state = StateBattleOver
	}
}

func (g *Game) recordEvent(ev battle.Event) {
	g.addLog(ev.Message)
}

func (g *Game) addLog(msg string) {
	if msg == "" {
		return
	}
	g.log = append(g.log, msg)
	if len(g.log) > logLimit {
		g.log = g.log[len(g.log)-logLimit:]
	}
}

// restart returns to stage selection. Members and boss are rebuilt from the
// catalog on the next run, so nothing carries over.
func (g *Game) restart(ctx context.Context) {
	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "game.restart")
	if g.session != nil {
		span.SetAttributes(
			attribute.String("previous_outcome", g.session.CheckTerminal().String()),
			attribute.Int("previous_rounds", g.session.Round()),
		)
	}
	span.End()

	g.session = nil
	g.bossScheduled = false
	g.log = nil
	g.resetSelection()
}

func (g *Game) resetSelection() {
	g.stage = nil
	g.members = nil
	g.picked = make(map[string]bool)
	g.pending = nil
	g.pendingID = ""
	g.notice = ""
	g.state = StateStageSelect
}

// =============================================================================
// Rendering
// =============================================================================

func (g *Game) render() {
	switch g.state {
	case StateStageSelect:
		g.renderer.RenderStageSelect(g.catalog.Stages(), g.notice)
	case StateRosterSelect:
		g.renderer.RenderRosterSelect(g.catalog.Characters(), g.picked, g.members, g.notice)
	case StateItemSelect:
		g.renderer.RenderItemSelect(g.pending, g.catalog.Items())
	default:
		g.renderer.RenderBattle(ui.BattleView{
			Session: g.session,
			Colors:  g.memberColors(),
			Log:     g.log,
			Prompt:  g.prompt(),
		})
	}
}

// memberColors maps party member names to their catalog colors.
func (g *Game) memberColors() map[string]tcell.Color {
	colors := make(map[string]tcell.Color, len(g.catalog.Characters())+1)
	for i := range g.catalog.Characters() {
		def := &g.catalog.Characters()[i]
		colors[def.Name] = def.TCellColor()
	}
	if g.stage != nil {
		colors[g.stage.Name] = g.stage.TCellColor()
	}
	return colors
}

// prompt describes what the player can do next.
func (g *Game) prompt() string {
	if g.session == nil {
		return ""
	}
	switch g.state {
	case StateBattleOver:
		if g.session.CheckTerminal() == battle.ResultVictory {
			return "Victory! [r] Restart  [q] Quit"
		}
		return "Defeat! [r] Restart  [q] Quit"
	case StateTargetSelect:
		actor := g.session.Party().Member(g.session.CurrentActor())
		return fmt.Sprintf("Choose an ally for %s's skill [1-%d], Esc to cancel", actor.Name, len(g.session.Party().Members))
	}

	if g.session.Phase() == battle.PhaseBoss {
		return g.session.Boss().Name + " is preparing to strike..."
	}
	actor := g.session.Party().Member(g.session.CurrentActor())
	if actor == nil {
		return ""
	}
	return fmt.Sprintf("%s's turn: [a] Basic Attack  [s] Skill  [e] Special  [q] Quit", actor.Name)
}

// choiceIndex maps the digit keys 1-9 and 0 onto menu positions 0-9.
func choiceIndex(r rune, n int) (int, bool) {
	var idx int
	switch {
	case r >= '1' && r <= '9':
		idx = int(r - '1')
	case r == '0':
		idx = 9
	default:
		return 0, false
	}
	return idx, idx < n
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
