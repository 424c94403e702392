package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/spotlite/internal/catalog"
	"github.com/desertthunder/spotlite/internal/formatter"
	"github.com/desertthunder/spotlite/internal/models"
	"github.com/desertthunder/spotlite/internal/navigation"
	"github.com/desertthunder/spotlite/internal/services"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	EventListView ViewState = iota
	DetailsView
	ConfirmBuyView
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	view      ViewState
	catalog   *catalog.Catalog
	navigator navigation.Navigator
	genres    []string
	locations []string
	width     int
	height    int
	eventList list.Model
	search    textinput.Model
	searching bool
	loading   bool
	selected  models.Event
	notice    string
	noticeErr bool
	help      help.Model
	keys      keyMap
}

// NewModel creates a new TUI model. genres and locations are the filter choices
// cycled with g/G and l/L.
func NewModel(ctx context.Context, cat *catalog.Catalog, nav navigation.Navigator, genres, locations []string) *Model {
	search := textinput.New()
	search.Placeholder = "Search by name or location"
	search.Prompt = "/ "
	search.SetValue(cat.Filter().SearchTerm)

	eventList := list.New(eventItems(cat.Visible()), list.NewDefaultDelegate(), defaultWidth-4, defaultHeight-10)
	eventList.Title = "Events"
	eventList.SetFilteringEnabled(false)
	eventList.SetShowHelp(false)
	eventList.DisableQuitKeybindings()

	return &Model{
		ctx:       ctx,
		view:      EventListView,
		catalog:   cat,
		navigator: nav,
		genres:    genres,
		locations: locations,
		width:     defaultWidth,
		height:    defaultHeight,
		eventList: eventList,
		search:    search,
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init loads the catalog.
func (m *Model) Init() tea.Cmd {
	return m.refresh()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.eventList.SetSize(msg.Width-4, msg.Height-10)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case EventListView:
			if m.searching {
				return m.handleSearchKeys(msg)
			}
			return m.handleListKeys(msg)
		case DetailsView:
			return m.handleDetailsKeys(msg)
		case ConfirmBuyView:
			return m.handleConfirmKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	var cmd tea.Cmd
	m.eventList, cmd = m.eventList.Update(msg)
	return m, cmd
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgEventsFetched:
		m.loading = false
		if err, _ := msg.data.(error); err != nil {
			m.setNotice(services.Describe(err), true)
			return m, nil
		}
		m.setNotice(fmt.Sprintf("Loaded %d events", len(m.catalog.Events())), false)
		return m, m.rebuild()

	case MsgNavigated:
		nav := msg.data.(navigated)
		if nav.err != nil {
			m.setNotice(fmt.Sprintf("Could not open %s: %v", nav.target, nav.err), true)
			return m, nil
		}
		m.setNotice(fmt.Sprintf("Opened %s for %s", nav.target, nav.event.Name), false)
		if nav.target == navigation.TargetPayment {
			m.view = DetailsView
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	filter := m.catalog.Filter()

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.search):
		m.searching = true
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.genre):
		m.catalog.SetGenre(catalog.Cycle(filter.Genre, m.genres, 1))
		return m, m.rebuild()
	case key.Matches(msg, m.keys.genreBack):
		m.catalog.SetGenre(catalog.Cycle(filter.Genre, m.genres, -1))
		return m, m.rebuild()
	case key.Matches(msg, m.keys.location):
		m.catalog.SetLocation(catalog.Cycle(filter.Location, m.locations, 1))
		return m, m.rebuild()
	case key.Matches(msg, m.keys.locationBack):
		m.catalog.SetLocation(catalog.Cycle(filter.Location, m.locations, -1))
		return m, m.rebuild()
	case key.Matches(msg, m.keys.clear):
		m.catalog.ResetFilter()
		m.search.SetValue("")
		return m, m.rebuild()
	case key.Matches(msg, m.keys.refresh):
		if m.loading {
			return m, nil
		}
		return m, m.refresh()
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.eventList.SelectedItem().(eventItem); ok {
			m.selected = item.event
			m.view = DetailsView
		}
		return m, nil
	case key.Matches(msg, m.keys.buy):
		if item, ok := m.eventList.SelectedItem().(eventItem); ok {
			m.selected = item.event
			m.view = ConfirmBuyView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.eventList, cmd = m.eventList.Update(msg)
	return m, cmd
}

// handleSearchKeys edits the search term and re-filters after every keystroke.
func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.catalog.SetSearch("")
		return m, m.rebuild()
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.catalog.Filter().SearchTerm {
		m.catalog.SetSearch(m.search.Value())
		return m, tea.Batch(cmd, m.rebuild())
	}
	return m, cmd
}

func (m *Model) handleDetailsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = EventListView
	case key.Matches(msg, m.keys.buy):
		m.view = ConfirmBuyView
	case key.Matches(msg, m.keys.open):
		return m, m.navigate(navigation.TargetDetails, m.selected)
	}
	return m, nil
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		return m, m.navigate(navigation.TargetPayment, m.selected)
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.back):
		m.view = DetailsView
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeErr = isErr
}

// rebuild replaces the list items with the catalog's visible events.
func (m *Model) rebuild() tea.Cmd {
	cmd := m.eventList.SetItems(eventItems(m.catalog.Visible()))
	m.eventList.ResetSelected()
	return cmd
}

func (m *Model) refresh() tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		return eventsFetchedMsg(m.catalog.Refresh(m.ctx))
	}
}

func (m *Model) navigate(target navigation.Target, event models.Event) tea.Cmd {
	return func() tea.Msg {
		return navigatedMsg(target, event, m.navigator.Navigate(m.ctx, target, event))
	}
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch m.view {
	case EventListView:
		body = m.renderList()
	case DetailsView:
		body = m.renderDetails()
	case ConfirmBuyView:
		body = m.renderConfirm()
	}

	if m.notice != "" {
		style := styles.ok
		if m.noticeErr {
			style = styles.err
		}
		body = fmt.Sprintf("%s\n\n%s", body, style.Render(m.notice))
	}
	return body
}

func (m *Model) filterSummary() string {
	f := m.catalog.Filter()
	parts := []string{
		fmt.Sprintf("Genre: %s", f.Genre),
		fmt.Sprintf("Location: %s", f.Location),
		fmt.Sprintf("%d/%d shown", len(m.eventList.Items()), len(m.catalog.Events())),
	}
	if m.loading {
		parts = append(parts, "loading...")
	}
	return styles.filter.Render(strings.Join(parts, "  •  "))
}

func (m *Model) renderList() string {
	var b strings.Builder
	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	b.WriteString(m.filterSummary())
	b.WriteString("\n\n")

	if len(m.eventList.Items()) == 0 && !m.loading {
		b.WriteString(styles.warn.Render("No events match the current filters."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.eventList.View())
	}

	helpKeys := []key.Binding{m.keys.search, m.keys.genre, m.keys.location, m.keys.clear, m.keys.enter, m.keys.buy, m.keys.refresh, m.keys.quit}
	if m.searching {
		helpKeys = []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		}
	}
	return fmt.Sprintf("%s\n%s", b.String(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderDetails() string {
	title := styles.title.Render(m.selected.Name) + " " + styles.badge.Render(m.selected.Badge())
	details := formatter.EventDetails(m.selected)

	helpKeys := []key.Binding{m.keys.buy, m.keys.open, m.keys.back, m.keys.quit}
	return fmt.Sprintf("%s\n%s\n%s", title, details, m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Buy tickets for '%s'?", m.selected.Name))
	info := fmt.Sprintf("%s\n%s, %s %s\n", formatter.FormatPrice(m.selected.Price), m.selected.Location, m.selected.Date, m.selected.Time)

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	return fmt.Sprintf("%s\n%s\n%s", title, info, m.help.ShortHelpView(helpKeys))
}

// Selected returns the event shown in the details and confirm views.
func (m *Model) Selected() models.Event {
	return m.selected
}

// View state accessor for callers embedding the model.
func (m *Model) State() ViewState {
	return m.view
}
