package cmd

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/hooktools/hookman/cli"
	"github.com/hooktools/hookman/errors"
	"github.com/hooktools/hookman/logging"
	"github.com/hooktools/hookman/manifest"
	"github.com/hooktools/hookman/tui"
	"github.com/hooktools/hookman/tui/components"
	"github.com/hooktools/hookman/tui/theme"
)

func NewBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the hooks of a manifest interactively",
		Long: `Open an interactive view of the nearest manifest: every hook with its
repository, revision pin and resolved defaults. Press / to filter by
id, name or repository; the status line shows the validation outcome.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cli.ResolveManifest(cmd)
			if err != nil {
				return err
			}
			if path == "" {
				return errors.ManifestNotFound(strings.Join(manifest.DefaultFileNames, " or "))
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return errors.Wrap(err, errors.ErrCodeManifestNotFound, fmt.Sprintf("cannot read %s", path))
			}
			cfg, err := manifest.Parse(data)
			if err != nil {
				return err
			}
			cfg.SetDefaults()

			report := validateManifestFile(path, false)

			// Stray log output would corrupt the alternate screen; buffer it
			// and replay after the program exits.
			var logBuf bytes.Buffer
			logging.SetGlobalOutput(&logBuf)
			defer func() {
				logging.SetGlobalOutput(os.Stderr)
				if logBuf.Len() > 0 {
					fmt.Fprint(os.Stderr, logBuf.String())
				}
			}()

			tui.InitializeTUI()
			program := tea.NewProgram(newBrowseModel(path, cfg, report), tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return errors.Wrap(err, errors.ErrCodeInternal, "browse view failed")
			}
			return nil
		},
	}
}

// browseEntry pairs a hook with its repository entry for the detail pane.
type browseEntry struct {
	repo *manifest.Repo
	hook *manifest.Hook
}

type browseModel struct {
	manifestPath string
	report       FileReport

	entries []browseEntry
	visible []browseEntry

	table     table.Model
	filter    textinput.Model
	filtering bool

	width  int
	height int
}

func newBrowseModel(path string, cfg *manifest.Config, report FileReport) browseModel {
	var entries []browseEntry
	for i := range cfg.Repos {
		repo := &cfg.Repos[i]
		for j := range repo.Hooks {
			entries = append(entries, browseEntry{repo: repo, hook: &repo.Hooks[j]})
		}
	}

	t := theme.DefaultTheme

	tbl := table.New(
		table.WithColumns(browseColumns(80)),
		table.WithRows(browseRows(entries)),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Bold(true).
		BorderBottom(true).
		BorderForeground(t.Colors.Border)
	styles.Selected = styles.Selected.
		Background(t.Colors.SelectedBackground).
		Foreground(t.Colors.LightText)
	tbl.SetStyles(styles)

	filter := textinput.New()
	filter.Prompt = theme.IconFilter + " "
	filter.Placeholder = "filter by id, name or repo"
	filter.CharLimit = 64

	return browseModel{
		manifestPath: path,
		report:       report,
		entries:      entries,
		visible:      entries,
		table:        tbl,
		filter:       filter,
	}
}

func browseColumns(width int) []table.Column {
	repoWidth := width - 54
	if repoWidth < 20 {
		repoWidth = 20
	}
	return []table.Column{
		{Title: "ID", Width: 20},
		{Title: "REPO", Width: repoWidth},
		{Title: "REV", Width: 14},
		{Title: "STAGES", Width: 16},
	}
}

func browseRows(entries []browseEntry) []table.Row {
	rows := make([]table.Row, 0, len(entries))
	for _, entry := range entries {
		rev := entry.repo.Rev
		if rev == "" {
			rev = "-"
		}
		rows = append(rows, table.Row{
			entry.hook.ID,
			entry.repo.Repo,
			rev,
			formatStages(entry.hook.Stages),
		})
	}
	return rows
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetColumns(browseColumns(msg.Width - 4))
		m.table.SetWidth(msg.Width - 2)
		tableHeight := msg.Height - 14
		if tableHeight < 5 {
			tableHeight = 5
		}
		m.table.SetHeight(tableHeight)
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			switch msg.String() {
			case "enter":
				m.filtering = false
				m.filter.Blur()
				return m, nil
			case "esc":
				m.filtering = false
				m.filter.Blur()
				m.filter.SetValue("")
				m.applyFilter()
				return m, nil
			default:
				var cmd tea.Cmd
				m.filter, cmd = m.filter.Update(msg)
				m.applyFilter()
				return m, cmd
			}
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "/":
			m.filtering = true
			m.filter.Focus()
			return m, textinput.Blink
		case "esc":
			if m.filter.Value() != "" {
				m.filter.SetValue("")
				m.applyFilter()
				return m, nil
			}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *browseModel) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if query == "" {
		m.visible = m.entries
	} else {
		var visible []browseEntry
		for _, entry := range m.entries {
			haystack := strings.ToLower(entry.hook.ID + " " + entry.hook.Name + " " + entry.repo.Repo)
			if strings.Contains(haystack, query) {
				visible = append(visible, entry)
			}
		}
		m.visible = visible
	}
	m.table.SetRows(browseRows(m.visible))
	m.table.GotoTop()
}

func (m browseModel) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	b.WriteString(components.RenderHeader("hookman browse", m.manifestPath))
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")

	if detail := m.renderDetail(width); detail != "" {
		b.WriteString(detail)
		b.WriteString("\n")
	}

	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatus(width))
	b.WriteString(components.RenderFooter("↑/↓ move   / filter   esc clear   q quit", width))
	return b.String()
}

// renderDetail shows the selected hook's full definition under the table.
func (m browseModel) renderDetail(width int) string {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.visible) {
		return ""
	}
	entry := m.visible[cursor]
	hook := entry.hook

	lines := []string{
		components.RenderDivider(width),
		components.RenderKeyValue("hook", hook.ID),
		components.RenderKeyValue("name", hook.Name),
		components.RenderKeyValue("repo", entry.repo.Repo),
	}
	if entry.repo.Rev != "" {
		lines = append(lines, components.RenderKeyValue("rev", entry.repo.Rev))
	}
	if hook.Entry != "" {
		lines = append(lines, components.RenderKeyValue("entry", hook.Entry))
	}
	if hook.Language != "" {
		lines = append(lines, components.RenderKeyValue("language", hook.Language))
	}
	if hook.Files != "" {
		lines = append(lines, components.RenderKeyValue("files", hook.Files))
	}
	if hook.Exclude != "" && hook.Exclude != "^$" {
		lines = append(lines, components.RenderKeyValue("exclude", hook.Exclude))
	}
	if len(hook.Args) > 0 {
		lines = append(lines, components.RenderKeyValue("args", strings.Join(hook.Args, " ")))
	}
	lines = append(lines, components.RenderKeyValue("stages", formatStages(hook.Stages)))

	return strings.Join(lines, "\n")
}

func (m browseModel) renderStatus(width int) string {
	var left string
	switch {
	case m.report.Valid:
		left = theme.RenderStatus("success", theme.IconSuccess+" valid")
	case len(m.report.Problems) > 0:
		left = theme.RenderStatus("error", fmt.Sprintf("%s %d problem(s)", theme.IconError, len(m.report.Problems)))
	default:
		left = theme.RenderStatus("error", theme.IconError+" invalid")
	}

	center := fmt.Sprintf("%d/%d hooks", len(m.visible), len(m.entries))

	right := ""
	if query := m.filter.Value(); query != "" {
		right = fmt.Sprintf("filter: %s", query)
	}

	return components.RenderStatusBar(left, center, right, width)
}
