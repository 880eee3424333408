package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/bossrush/internal/battle"
	"github.com/samdwyer/bossrush/internal/entity"
	"github.com/samdwyer/bossrush/internal/gamedata"
)

const (
	barWidth   = 20
	logLines   = 8
	leftMargin = 2
)

var (
	styleDefault = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleNotice  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleEnergy  = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleActive  = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
)

// BattleView is everything the battle screen shows.
type BattleView struct {
	Session *battle.Session
	Colors  map[string]tcell.Color // Display color by combatant name
	Log     []string
	Prompt  string
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// RenderStageSelect draws the boss list.
func (r *Renderer) RenderStageSelect(stages []gamedata.StageDef, notice string) {
	r.screen.Clear()

	r.drawText(leftMargin, 1, "=== BOSS RUSH ===", styleTitle)
	r.drawText(leftMargin, 3, "Choose a stage:", styleDefault)
	for i := range stages {
		s := &stages[i]
		line := fmt.Sprintf("%d. %-16s HP %3d  ATK %2d", i+1, s.Name, s.HP, s.Attack)
		r.drawText(leftMargin+2, 5+i, line, tcell.StyleDefault.Foreground(s.TCellColor()))
	}
	r.drawFooter(notice, fmt.Sprintf("[1-%d] Select  [q] Quit", len(stages)))

	r.screen.Show()
}

// RenderRosterSelect draws the character list and the party picked so far.
func (r *Renderer) RenderRosterSelect(characters []gamedata.CharacterDef, picked map[string]bool, party []*entity.Member, notice string) {
	r.screen.Clear()

	r.drawText(leftMargin, 1, fmt.Sprintf("Choose your team (%d/%d)", len(party), entity.PartySize), styleTitle)
	for i := range characters {
		c := &characters[i]
		style := tcell.StyleDefault.Foreground(c.TCellColor())
		if picked[c.ID] {
			style = styleDim
		}
		line := fmt.Sprintf("%s. %c %-8s %-8s", menuKey(i), c.SymbolRune(), c.Name, roleName(c.Role))
		r.drawText(leftMargin+2, 3+i, line, style)
	}

	y := 4 + len(characters)
	r.drawText(leftMargin, y, "Party:", styleDefault)
	for i, m := range party {
		r.drawText(leftMargin+2, y+1+i, memberSummary(m), styleDefault)
	}
	r.drawFooter(notice, "[1-9,0] Pick  [q] Quit")

	r.screen.Show()
}

// RenderItemSelect draws the equipment choice for a freshly picked member.
func (r *Renderer) RenderItemSelect(member *entity.Member, items []gamedata.ItemDef) {
	r.screen.Clear()

	r.drawText(leftMargin, 1, "Choose an item for "+member.Name, styleTitle)
	r.drawText(leftMargin, 2, memberSummary(member), styleDim)
	for i := range items {
		it := &items[i]
		r.drawText(leftMargin+2, 4+i, fmt.Sprintf("%d. %-8s %s", i+1, it.Name, it.Describe()), styleDefault)
	}
	r.drawFooter("", fmt.Sprintf("[1-%d] Equip  [q] Quit", len(items)))

	r.screen.Show()
}

// RenderBattle draws the boss, the party, the skill-point pool and the log tail.
func (r *Renderer) RenderBattle(view BattleView) {
	r.screen.Clear()
	s := view.Session
	if s == nil {
		r.screen.Show()
		return
	}

	boss := s.Boss()
	bossStyle := tcell.StyleDefault.Foreground(colorFor(view.Colors, boss.Name, tcell.ColorRed)).Bold(true)
	r.drawText(leftMargin, 1, fmt.Sprintf("Round %d", s.Round()), styleTitle)
	r.drawText(leftMargin, 3, fmt.Sprintf("%c %s", boss.Symbol, boss.Name), bossStyle)
	r.drawText(leftMargin+2, 4, fmt.Sprintf("HP  %s %d/%d", Bar(boss.HP, boss.MaxHP, barWidth), boss.HP, boss.MaxHP), bossStyle)
	r.drawText(leftMargin+2, 5, fmt.Sprintf("ATK %d", boss.Attack), styleDefault)

	current := s.CurrentActor()
	for i, m := range s.Party().Members {
		y := 7 + i*2
		style := tcell.StyleDefault.Foreground(colorFor(view.Colors, m.Name, tcell.ColorWhite))
		switch {
		case !m.IsAlive():
			style = styleDim
		case i == current:
			style = styleActive
		}
		r.drawText(leftMargin, y, fmt.Sprintf("%d. %c %-8s %-8s ATK %2d DEF %2d", i+1, m.Symbol, m.Name, m.Role, m.Attack, m.Defense), style)
		r.drawText(leftMargin+5, y+1, fmt.Sprintf("HP %s %3d/%d", Bar(m.HP, m.MaxHP, barWidth), m.HP, m.MaxHP), styleDefault)
		r.drawText(leftMargin+45, y+1, fmt.Sprintf("EN %s %3d", Bar(m.Energy, entity.MaxEnergy, 10), m.Energy), styleEnergy)
	}

	y := 8 + len(s.Party().Members)*2
	r.drawText(leftMargin, y, "Skill Points: "+Pips(s.SkillPoints(), s.MaxSkillPoints()), styleTitle)

	for i, line := range Tail(view.Log, logLines) {
		r.drawText(leftMargin, y+2+i, line, styleDefault)
	}
	r.drawFooter("", view.Prompt)

	r.screen.Show()
}

func (r *Renderer) drawFooter(notice, help string) {
	_, height := r.screen.Size()
	if notice != "" {
		r.drawText(leftMargin, height-3, notice, styleNotice)
	}
	r.drawText(leftMargin, height-2, help, styleDim)
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	width, height := r.screen.Size()
	if y < 0 || y >= height {
		return
	}
	for _, ch := range text {
		if x >= width {
			return
		}
		r.screen.SetContent(x, y, ch, style)
		x++
	}
}

// Bar draws a fixed-width gauge such as "[#####.....]".
func Bar(current, maximum, width int) string {
	if width <= 0 {
		return "[]"
	}
	filled := 0
	if maximum > 0 && current > 0 {
		filled = min(width, (current*width+maximum-1)/maximum)
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

// Pips draws the skill-point pool, e.g. "●●●○○ (3/5)".
func Pips(points, maximum int) string {
	points = min(max(points, 0), maximum)
	return strings.Repeat("●", points) + strings.Repeat("○", maximum-points) + fmt.Sprintf(" (%d/%d)", points, maximum)
}

// Tail returns the last n lines.
func Tail(lines []string, n int) []string {
	if len(lines) <= n {
		return lines
	}
	return lines[len(lines)-n:]
}

func memberSummary(m *entity.Member) string {
	items := make([]string, len(m.Items))
	for i, it := range m.Items {
		items[i] = it.Name
	}
	summary := fmt.Sprintf("%c %s (%s) HP %d ATK %d DEF %d", m.Symbol, m.Name, m.Role, m.MaxHP, m.Attack, m.Defense)
	if len(items) > 0 {
		summary += " [" + strings.Join(items, ", ") + "]"
	}
	return summary
}

func roleName(id string) string {
	if role, ok := entity.ParseRole(id); ok {
		return role.String()
	}
	return id
}

// menuKey labels the i-th menu row with its digit key.
func menuKey(i int) string {
	if i == 9 {
		return "0"
	}
	return fmt.Sprint(i + 1)
}

func colorFor(colors map[string]tcell.Color, name string, fallback tcell.Color) tcell.Color {
	if c, ok := colors[name]; ok {
		return c
	}
	return fallback
}
