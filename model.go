package main

import (
	"context"

	"charm-wallet-connect/config"
	"charm-wallet-connect/provider"
	"charm-wallet-connect/views/connect"
	logview "charm-wallet-connect/views/log"
	"charm-wallet-connect/wallet"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// -------------------- MODEL --------------------

// model represents the application state following The Elm Architecture.
// It is the root that owns the wallet state and every task started for it.
type model struct {
	w, h int

	// wallet core
	machine  *wallet.Machine
	provider provider.Provider // nil when no wallet was detected
	scope    *wallet.Scope
	events   chan tea.Msg // watcher events, pumped into Update

	// connect button
	spin         spinner.Model
	rejected     bool                  // last connect request was not approved
	clickableBtn connect.ClickableArea // screen-absolute, set by View

	// connected extras
	showQR    bool
	copiedMsg string

	// config
	cfg        config.Config
	configPath string

	// add-provider form (only offered when no wallet was found)
	addingProvider bool
	form           *huh.Form
	formNotice     string

	// logger panel
	logEnabled  bool
	logger      *log.Logger
	logBuffer   *logview.Buffer
	logViewport viewport.Model
	logReady    bool
	logSpinner  spinner.Model
}

// -------------------- INIT --------------------

// newLogger creates the logger feeding the log panel
func newLogger(buf *logview.Buffer) *log.Logger {
	logger := log.NewWithOptions(buf, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "",
	})
	logger.SetLevel(log.DebugLevel)
	logger.SetStyles(&log.Styles{
		Timestamp: lipgloss.NewStyle().Foreground(cMuted),
		Caller:    lipgloss.NewStyle().Faint(true),
		Prefix:    lipgloss.NewStyle().Bold(true).Foreground(cAccent2),
		Message:   lipgloss.NewStyle().Foreground(cText),
		Key:       lipgloss.NewStyle().Foreground(cAccent),
		Value:     lipgloss.NewStyle().Foreground(cText),
		Separator: lipgloss.NewStyle().Faint(true),
		Levels: map[log.Level]lipgloss.Style{
			log.DebugLevel: lipgloss.NewStyle().Foreground(cMuted).SetString("DEBUG"),
			log.InfoLevel:  lipgloss.NewStyle().Foreground(cAccent2).SetString("INFO"),
			log.WarnLevel:  lipgloss.NewStyle().Foreground(cWarn).SetString("WARN"),
			log.ErrorLevel: lipgloss.NewStyle().Foreground(errorColor).SetString("ERROR"),
		},
	})
	return logger
}

// newModel builds the root from a detection result. Detection has already
// happened exactly once; a missing provider yields the terminal NoWallet state.
func newModel(d provider.Detection, cfg config.Config, configPath string, logger *log.Logger, buf *logview.Buffer) model {
	p, ok := provider.Handle(d)

	// spinner
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(cAccent2)

	// Initialize log viewport
	vp := viewport.New(0, 20) // Will be resized in Update on first WindowSizeMsg
	vp.Style = lipgloss.NewStyle().
		Foreground(cText).
		Background(cPanel)

	logSpin := spinner.New()
	logSpin.Spinner = spinner.Dot
	logSpin.Style = lipgloss.NewStyle().Foreground(cAccent2)

	m := model{
		machine:     wallet.NewMachine(ok),
		provider:    p,
		scope:       wallet.NewScope(context.Background()),
		events:      make(chan tea.Msg, 16),
		spin:        sp,
		cfg:         cfg,
		configPath:  configPath,
		logEnabled:  cfg.Logger,
		logger:      logger,
		logBuffer:   buf,
		logViewport: vp,
		logSpinner:  logSpin,
	}

	if ok {
		m.scope.OnRelease(p.Close)
	} else if u, isUnavailable := d.(provider.Unavailable); isUnavailable {
		logger.Warn("no wallet", "reason", u.Reason)
	}

	m.machine.Observe(func(tr wallet.Transition) {
		logger.Info("status", "from", tr.From, "to", tr.To, "cause", tr.Cause)
	})

	return m
}

// Init implements tea.Model interface and returns initial commands
func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick}
	if m.logEnabled {
		cmds = append(cmds, initLogViewport(), m.logSpinner.Tick)
	}
	if m.provider == nil {
		return tea.Batch(cmds...)
	}
	cmds = append(cmds,
		runInitialSync(m.scope, m.provider),
		watchAccounts(m.scope, m.provider, m.events, m.logger),
		watchChain(m.scope, m.provider, m.events, m.logger),
		listen(m.scope, m.events),
	)
	return tea.Batch(cmds...)
}

// shutdown releases every subscription and the provider. Safe to call twice.
func (m *model) shutdown() {
	m.scope.Release()
}
