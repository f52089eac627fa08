package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/Codelizard/HeroesOfCordan/pkg/content"
	"github.com/Codelizard/HeroesOfCordan/pkg/state"
)

const (
	GameName        = "HEROES OF CORDAN"
	PlaceHolderText = "Type a reply, or press Enter to pick the highlighted option..."
)

type entryRole int

const (
	roleGame entryRole = iota
	rolePlayer
	roleInfo
	roleError
)

type entry struct {
	role entryRole
	text string
}

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config       *ConsoleConfig
	client       *http.Client
	session      *state.Session
	transcript   []entry
	lastText     string
	options      []string
	rows         [][]string
	selected     int
	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	started      bool
	width        int
	height       int
	loading      bool

	showQuitModal bool

	progressTick int
}

type messageResponseMsg struct {
	response *MessageResponse
	err      error
}

type sessionMsg struct {
	session *state.Session
	err     error
}

type sessionDeletedMsg struct {
	err error
}

type progressTickMsg struct{}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	optionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	selectedOptionStyle = optionStyle.
				BorderForeground(lipgloss.Color("205")).
				Foreground(lipgloss.Color("205")).
				Bold(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		config:       cfg,
		client:       client,
		textarea:     ta,
		chatViewport: chatVp,
		metaViewport: metaVp,
	}
}

func writeMetadata(cfg *ConsoleConfig, s *state.Session) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("PARTY") + "\n\n")

	b.WriteString("Player:\n")
	b.WriteString(cfg.Platform + "/" + shortID(cfg.UserID) + "\n\n")

	if s == nil {
		b.WriteString("No game yet\n")
		return b.String()
	}

	b.WriteString("State:\n")
	b.WriteString(string(s.State) + "\n\n")

	if s.Floor > 0 {
		b.WriteString(fmt.Sprintf("Floor %d, %d kills\n\n", s.Floor, s.Kills))
	}

	if s.Party != nil && len(s.Party.Heroes) > 0 {
		b.WriteString(fmt.Sprintf("Level %d:\n", s.Party.Level))
		for _, h := range s.Party.Heroes {
			b.WriteString("• " + h.Title() + "\n")
		}
		b.WriteString("\n")
	}

	if s.Resources != nil {
		b.WriteString("Resources:\n")
		for _, r := range content.AllResources {
			b.WriteString(fmt.Sprintf("• %s: %d/%d\n", r.Name(), s.ResourceCount(r), s.ResourceMax(r)))
		}
		b.WriteString("\n")
	}

	if len(s.Equipment) > 0 {
		b.WriteString("Equipment:\n" + state.ListItems(s.Equipment, false) + "\n")
	}
	if len(s.Consumables) > 0 {
		b.WriteString("Consumables:\n" + state.ListItems(s.Consumables, false) + "\n")
	}

	b.WriteString("Keys:\n")
	b.WriteString("• Tab: Next option\n")
	b.WriteString("• Enter: Send\n")
	b.WriteString("• Ctrl+Y: Copy text\n")
	b.WriteString("• /help: Help\n")

	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8] + "..."
	}
	return id
}

// writeChatContent rebuilds the transcript for the current viewport width
func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6 // Account for left(3) + right(3) padding
	if chatWidth < 10 {
		chatWidth = 10
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(GameName) + "\n\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", chatWidth)) + "\n\n")

	for _, e := range m.transcript {
		wrapped := wordwrap.String(e.text, chatWidth)
		switch e.role {
		case rolePlayer:
			b.WriteString(userStyle.Render("> "+wrapped) + "\n\n")
		case roleInfo:
			b.WriteString(promptStyle.Render(wrapped) + "\n\n")
		case roleError:
			b.WriteString(errorStyle.Render("Error: "+wrapped) + "\n\n")
		default:
			b.WriteString(gameStyle.Render(wrapped) + "\n\n")
		}
	}

	if m.loading {
		b.WriteString(m.renderProgressBar())
	}

	m.chatViewport.SetContent(b.String())
	m.chatViewport.GotoBottom()
}

func (m ConsoleUI) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.refreshSession())
}

func (m *ConsoleUI) resize() {
	chatWidth := int(float64(m.width)*0.7) - 4
	metaWidth := m.width - chatWidth - 6

	m.chatViewport.Width = chatWidth - 2
	m.chatViewport.Height = m.height - 8 - m.optionsHeight()
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(chatWidth - 4)
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		m.writeChatContent()
		m.metaViewport.SetContent(writeMetadata(m.config, m.session))

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyTab:
			if len(m.options) > 0 {
				m.selected = (m.selected + 1) % len(m.options)
			}
			return m, nil
		case tea.KeyShiftTab:
			if len(m.options) > 0 {
				m.selected = (m.selected + len(m.options) - 1) % len(m.options)
			}
			return m, nil
		case tea.KeyCtrlY:
			m.copyLastText()
			return m, nil
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}

			input := strings.TrimSpace(m.textarea.Value())
			if input == "" && m.selected < len(m.options) {
				input = m.options[m.selected]
			}
			if input == "" {
				return m, nil
			}
			m.textarea.Reset()

			if strings.HasPrefix(input, "/") {
				if model, cmd, ok := m.handleCommand(input); ok {
					return model, cmd
				}
			}
			return m.send(input, true)
		}

	case messageResponseMsg:
		m.loading = false
		if msg.err != nil {
			m.transcript = append(m.transcript, entry{roleError, msg.err.Error()})
		} else {
			m.lastText = msg.response.Text
			m.transcript = append(m.transcript, entry{roleGame, msg.response.Text})
			m.options = msg.response.Options
			m.rows = msg.response.Rows
			m.selected = 0
			m.resize()
		}
		m.writeChatContent()
		return m, m.refreshSession()

	case sessionMsg:
		if msg.err != nil {
			m.transcript = append(m.transcript, entry{roleError, msg.err.Error()})
			m.writeChatContent()
			return m, nil
		}
		m.session = msg.session
		m.metaViewport.SetContent(writeMetadata(m.config, m.session))
		if !m.started {
			m.started = true
			if m.session == nil {
				return m.send("/start", false)
			}
			m.transcript = append(m.transcript, entry{roleInfo, "Resuming your saved game. Type /restart to begin again."})
			m.writeChatContent()
		}

	case sessionDeletedMsg:
		m.loading = false
		if msg.err != nil {
			m.transcript = append(m.transcript, entry{roleError, msg.err.Error()})
			m.writeChatContent()
			return m, nil
		}
		m.transcript = nil
		m.options = nil
		m.rows = nil
		return m.send("/start", false)

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			m.writeChatContent()
			return m, progressTick()
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

// send posts text to the game. echo adds it to the transcript first.
func (m ConsoleUI) send(text string, echo bool) (tea.Model, tea.Cmd) {
	if echo {
		m.transcript = append(m.transcript, entry{rolePlayer, text})
	}
	m.loading = true
	m.progressTick = 0
	m.writeChatContent()
	return m, tea.Batch(m.sendMessage(text), progressTick())
}

func (m *ConsoleUI) copyLastText() {
	if m.lastText == "" {
		return
	}
	if err := clipboard.WriteAll(m.lastText); err != nil {
		m.transcript = append(m.transcript, entry{roleError, "copy failed: " + err.Error()})
	} else {
		m.transcript = append(m.transcript, entry{roleInfo, "Copied to clipboard."})
	}
	m.writeChatContent()
}

// handleCommand runs console-only commands. Anything else starting with a
// slash goes to the game.
func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd, bool) {
	switch strings.ToLower(input) {
	case "/help":
		m.transcript = append(m.transcript, entry{roleInfo, `Commands:
• /help - Show this help
• /copy - Copy the last game text
• /forget - Delete your saved game and start over
• /start, /restart - Sent to the game
• Tab / Shift+Tab - Choose an option, Enter to send it
• Ctrl+C - Quit`})
		m.writeChatContent()
		return m, nil, true

	case "/copy":
		m.copyLastText()
		return m, nil, true

	case "/forget":
		m.loading = true
		return m, m.forgetSession(), true
	}
	return m, nil, false
}

func (m ConsoleUI) sendMessage(text string) tea.Cmd {
	return func() tea.Msg {
		resp, err := sendMessage(m.client, m.config, text)
		return messageResponseMsg{resp, err}
	}
}

func (m ConsoleUI) refreshSession() tea.Cmd {
	return func() tea.Msg {
		s, err := getSession(m.client, m.config)
		return sessionMsg{s, err}
	}
}

func (m ConsoleUI) forgetSession() tea.Cmd {
	return func() tea.Msg {
		return sessionDeletedMsg{deleteSession(m.client, m.config)}
	}
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(modalTitleStyle.Render("Quit Game?"))
	b.WriteString("\n\n")
	b.WriteString("Your party will wait for you in the dungeon.")
	b.WriteString("\n\n")
	b.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

// optionsHeight is the number of terminal lines the option buttons take.
func (m ConsoleUI) optionsHeight() int {
	if len(m.options) == 0 {
		return 0
	}
	rows := len(m.rows)
	if rows == 0 {
		rows = 1
	}
	return rows * 3
}

func (m ConsoleUI) renderOptions() string {
	rows := m.rows
	if len(rows) == 0 && len(m.options) > 0 {
		rows = [][]string{m.options}
	}

	var lines []string
	i := 0
	for _, row := range rows {
		var buttons []string
		for _, opt := range row {
			style := optionStyle
			if i == m.selected {
				style = selectedOptionStyle
			}
			buttons = append(buttons, style.Render(opt))
			i++
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.7) - 4
	metaWidth := m.width - chatWidth - 6

	parts := []string{m.chatViewport.View()}
	if len(m.options) > 0 {
		parts = append(parts, m.renderOptions())
	}
	parts = append(parts,
		separatorStyle.Render(strings.Repeat("─", chatWidth-4)),
		m.textarea.View(),
	)

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left, parts...),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}

// renderProgressBar creates an animated progress bar for loading states
func (m ConsoleUI) renderProgressBar() string {
	usable := m.chatViewport.Width - 6
	if usable <= 0 {
		usable = 30 // fallback before sizing
	}
	if usable > 60 {
		usable = 60
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		if i < filled {
			bar.WriteString("█")
		} else if i == filled && frame%4 < 2 {
			bar.WriteString("▓") // Blinking effect at the progress point
		} else {
			bar.WriteString("░")
		}
	}
	return loadingStyle.Render(bar.String())
}

// progressTick creates a command that sends a progress tick message
func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
