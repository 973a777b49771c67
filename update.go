package main

import (
	"errors"

	"charm-wallet-connect/config"
	"charm-wallet-connect/helpers"
	"charm-wallet-connect/views/providers"
	"charm-wallet-connect/wallet"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// -------------------- UPDATE --------------------

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle add-provider form updates first
	if m.addingProvider && m.form != nil {
		// Intercept ESC key to cancel form
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
			m.closeForm()
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f

			if m.form.State == huh.StateCompleted {
				m.saveProvider(providers.TempName, providers.TempURL)
				m.closeForm()
				return m, nil
			}
			if m.form.State == huh.StateAborted {
				m.closeForm()
				return m, nil
			}
		}
		return m, cmd
	}

	switch msg := msg.(type) {

	case logInitMsg:
		if !m.logEnabled {
			return m, nil
		}
		m.logReady = true
		m.logger.Debug("logger enabled")
		m.updateLogViewport()
		return m, nil

	case initialSyncMsg:
		for _, err := range m.machine.ApplySync(msg.result) {
			m.logger.Warn("initial sync", "err", err)
		}
		m.updateLogViewport()
		return m, nil

	case connectResultMsg:
		if isShutdown(msg.err) {
			return m, nil
		}
		err := m.machine.ResolveConnect(msg.accounts, msg.err)
		m.rejected = errors.Is(err, wallet.ErrConnectRejected)
		switch {
		case errors.Is(err, wallet.ErrNoWallet):
		case err != nil:
			m.logger.Warn("connect request", "err", err)
		default:
			m.logger.Info("connected", "address", helpers.ShortenAddr(m.machine.Address()))
		}
		m.updateLogViewport()
		return m, nil

	case accountsChangedMsg:
		m.machine.ApplyAccounts(msg.accounts)
		m.logger.Debug("accountsChanged", "count", len(msg.accounts))
		if len(msg.accounts) == 0 {
			m.showQR = false
		}
		m.updateLogViewport()
		return m, listen(m.scope, m.events)

	case chainChangedMsg:
		m.machine.ApplyChain(msg.chainID)
		m.logger.Debug("chainChanged", "chain", msg.chainID)
		m.updateLogViewport()
		return m, listen(m.scope, m.events)

	case watchEndedMsg:
		if msg.err != nil && !isShutdown(msg.err) {
			m.logger.Warn("watcher stopped", "stream", msg.stream, "err", msg.err)
			m.updateLogViewport()
		}
		return m, nil

	case clipboardCopiedMsg:
		m.copiedMsg = "✓ Address copied to clipboard"
		return m, clearCopiedAfter()

	case clearCopiedMsg:
		m.copiedMsg = ""
		return m, nil

	case tea.WindowSizeMsg:
		m.w, m.h = msg.Width, msg.Height

		// Only size the viewport if log is enabled
		if m.logEnabled {
			// Width accounts for border and padding
			m.logViewport.Width = max(0, msg.Width-6)
			m.updateLogViewport()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		var cmds []tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)
		// Update log spinner too if log is enabled but not ready
		if m.logEnabled && !m.logReady {
			m.logSpinner, cmd = m.logSpinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		// watchers log from their own goroutines
		m.updateLogViewport()
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.shutdown()
			return m, tea.Quit

		case "enter", "c":
			return m, m.connect()

		case "l", "L":
			return m, m.toggleLog()

		case "y":
			if m.machine.Status() == wallet.Connected && helpers.IsValidEthAddress(m.machine.Address()) {
				return m, copyToClipboard(m.machine.Address())
			}
			return m, nil

		case "r":
			if m.machine.Status() == wallet.Connected {
				m.showQR = !m.showQR
			}
			return m, nil

		case "a":
			if m.machine.Status() == wallet.NoWallet {
				m.addingProvider = true
				m.formNotice = ""
				m.form = providers.CreateForm()
			}
			return m, nil

		case "pgup", "pgdown":
			// Allow scrolling in log viewport when enabled
			if m.logEnabled && m.logReady {
				var cmd tea.Cmd
				m.logViewport, cmd = m.logViewport.Update(msg)
				return m, cmd
			}
			return m, nil
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if m.clickableBtn.Contains(msg.X, msg.Y) {
				return m, m.connect()
			}
		}
		return m, nil
	}

	return m, nil
}

// connect starts a connect request. Ignored unless the wallet is disconnected.
func (m *model) connect() tea.Cmd {
	if m.provider == nil || !m.machine.RequestConnect() {
		return nil
	}
	m.rejected = false
	m.logger.Info("requesting accounts", "provider", m.provider.URL())
	m.updateLogViewport()
	return requestAccounts(m.scope, m.provider)
}

func (m *model) toggleLog() tea.Cmd {
	m.logEnabled = !m.logEnabled
	m.cfg.Logger = m.logEnabled
	m.saveConfig()

	if m.logEnabled {
		if m.w > 0 {
			m.logViewport.Width = m.w - 6
		}
		m.logReady = false
		return tea.Batch(initLogViewport(), m.logSpinner.Tick)
	}
	m.logReady = false
	return nil
}

// saveProvider stores a new endpoint; it is probed on the next launch
func (m *model) saveProvider(name, url string) {
	if !m.cfg.AddProvider(name, url) {
		m.formNotice = "Provider already configured"
		return
	}
	m.saveConfig()
	m.formNotice = "Saved. Restart to connect through the new provider."
	m.logger.Info("added provider", "url", url)
	m.updateLogViewport()
}

func (m *model) saveConfig() {
	if m.configPath == "" {
		return
	}
	if err := config.Save(m.configPath, m.cfg); err != nil {
		m.logger.Error("save config", "err", err)
	}
}

func (m *model) closeForm() {
	m.addingProvider = false
	m.form = nil
}

// updateLogViewport refreshes the viewport content from the log buffer
func (m *model) updateLogViewport() {
	if !m.logReady || m.logBuffer == nil {
		return
	}
	m.logViewport.SetContent(m.logBuffer.String())
	// Scroll to bottom to show latest entries
	m.logViewport.GotoBottom()
}
